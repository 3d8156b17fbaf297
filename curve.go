package keywell

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/keywell/keywell/csg"
)

// BoundaryCurve is the back wall's upper boundary: a Lagrange
// interpolation through three anchor points derived from first-row key
// positions, with one intentional discontinuity between the second and
// third anchor. Outside the anchor range the polynomial extrapolates;
// that is accepted as-is.
type BoundaryCurve struct {
	ax, ay, az [3]float64
	splitX     float64
	drop       float64
}

// BackCurve derives the boundary curve from the outer-top edge of the
// first row's leftmost, middle and rightmost keys.
func (g *Generator) BackCurve() *BoundaryCurve {
	cols := [3]int{0, g.grid.Columns() / 2, g.grid.Columns() - 1}
	c := &BoundaryCurve{drop: g.cfg.BackCurveDrop}
	for k, col := range cols {
		p := g.Position(C(col, 0), LocalPoint{Y: 1, Z: 1})
		c.ax[k], c.ay[k], c.az[k] = p.X, p.Y, p.Z
	}
	c.splitX = (c.ax[1] + c.ax[2]) / 2
	return c
}

// Anchors returns the three (x,y,z) points the curve passes through,
// with the stylistic drop already applied to the third.
func (c *BoundaryCurve) Anchors() [3]r3.Vec {
	var out [3]r3.Vec
	for k := 0; k < 3; k++ {
		y, z := c.Evaluate(c.ax[k])
		out[k] = r3.Vec{X: c.ax[k], Y: y, Z: z}
	}
	return out
}

// Evaluate returns the interpolated (y,z) at world x using the standard
// Lagrange basis: weight k is the product over m != k of
// (x-x_m)/(x_k-x_m). Past the split point the z value drops by the
// configured constant; the step is intentional.
func (c *BoundaryCurve) Evaluate(x float64) (y, z float64) {
	for k := 0; k < 3; k++ {
		w := 1.0
		for m := 0; m < 3; m++ {
			if m != k {
				w *= (x - c.ax[m]) / (c.ax[k] - c.ax[m])
			}
		}
		y += w * c.ay[k]
		z += w * c.az[k]
	}
	if x > c.splitX {
		z -= c.drop
	}
	return y, z
}

// BackTrim sweeps a small bead along the boundary curve, the cosmetic
// rounding of the back wall's upper edge. Sampled at a fixed count and
// hull-stitched pairwise; the split shows up as a sheared step.
func (g *Generator) BackTrim() csg.Solid {
	const samples = 24
	c := g.BackCurve()
	x0, x1 := c.ax[0], c.ax[2]
	bead := csg.Sphere{R: g.cfg.Wall.Thickness / 2}
	var prev csg.Solid
	var hulls []csg.Solid
	for i := 0; i <= samples; i++ {
		x := x0 + (x1-x0)*float64(i)/samples
		y, z := c.Evaluate(x)
		cur := csg.Translate(bead, r3.Vec{X: x, Y: y, Z: z})
		if prev != nil {
			hulls = append(hulls, csg.Hull(prev, cur))
		}
		prev = cur
	}
	return csg.Union(hulls...)
}
