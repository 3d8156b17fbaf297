// Package d2 holds the small 2D polygon helpers shared by the wall,
// boss and stand code.
package d2

import (
	"gonum.org/v1/gonum/spatial/r2"
)

// Area returns the signed shoelace area of a closed loop: positive for
// counter-clockwise winding, negative for clockwise.
func Area(pts []r2.Vec) float64 {
	var sum float64
	for i, a := range pts {
		b := pts[(i+1)%len(pts)]
		sum += a.X*b.Y - b.X*a.Y
	}
	return sum / 2
}

// EdgeNormal returns the unit left-turn normal of an edge vector, the
// outward direction for a clockwise loop. Zero edges get a zero normal.
func EdgeNormal(e r2.Vec) r2.Vec {
	if r2.Norm(e) < 1e-12 {
		return r2.Vec{}
	}
	return r2.Unit(r2.Vec{X: -e.Y, Y: e.X})
}

// OffsetLoop displaces each vertex of a clockwise loop along its local
// normal, the unit average of the adjacent edge normals. Positive d
// moves outward.
func OffsetLoop(pts []r2.Vec, d float64) []r2.Vec {
	n := len(pts)
	out := make([]r2.Vec, n)
	for i := 0; i < n; i++ {
		prev := pts[(i-1+n)%n]
		next := pts[(i+1)%n]
		ein := r2.Sub(pts[i], prev)
		eout := r2.Sub(next, pts[i])
		nrm := r2.Add(EdgeNormal(ein), EdgeNormal(eout))
		if r2.Norm(nrm) < 1e-9 {
			nrm = EdgeNormal(eout)
		}
		out[i] = r2.Add(pts[i], r2.Scale(d, r2.Unit(nrm)))
	}
	return out
}
