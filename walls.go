package keywell

import (
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/keywell/keywell/csg"
)

// Wall bracing: each adjacent segment pair along the traced perimeter
// becomes one panel, the union of two hulls. The first hull spans the
// inner (plate corner) and outer (offset) markers of both segments; the
// second drops the outer markers to the floor so the wall reaches z=0.

// floorPost is a segment's outer marker flattened to the floor and
// thin-extruded; the set of these defines the bottom cover boundary.
func (g *Generator) floorPost(s WallSegment) csg.Solid {
	p := g.OuterPoint(s)
	sz := g.cfg.Web.PostSize
	post := csg.Cube{Size: r3.Vec{X: sz, Y: sz, Z: floorPostHeight}, Center: true}
	return csg.Translate(post, r3.Vec{X: p.X, Y: p.Y, Z: floorPostHeight / 2})
}

const floorPostHeight = 0.1

// degeneratePair reports whether bracing a and b would yield a
// zero-width panel: the outer and inner markers of the pair coincide.
func (g *Generator) degeneratePair(a, b WallSegment) bool {
	const tol = 1e-9
	return r3.Norm(r3.Sub(g.OuterPoint(a), g.OuterPoint(b))) < tol &&
		r3.Norm(r3.Sub(g.InnerPoint(a), g.InnerPoint(b))) < tol
}

// Brace walks the traced loop pairwise and returns the wall panels.
func (g *Generator) Brace(sides []Side) []csg.Solid {
	var panels []csg.Solid
	for _, side := range sides {
		segs := side.Segments
		for i := 0; i+1 < len(segs); i++ {
			a, b := segs[i], segs[i+1]
			if g.degeneratePair(a, b) {
				continue
			}
			panel := csg.Union(
				csg.Hull(g.innerPost(a), g.wallPost(a), g.innerPost(b), g.wallPost(b)),
				csg.Hull(g.wallPost(a), g.floorPost(a), g.wallPost(b), g.floorPost(b)),
			)
			panels = append(panels, panel)
		}
	}
	return panels
}

// BottomOutline returns the flattened outer-marker loop, computed once
// per run. It is the bottom cover boundary and the stand sweep baseline.
func (g *Generator) BottomOutline() ([]r2.Vec, error) {
	return g.base.get(func() ([]r2.Vec, error) {
		sides, err := g.Trace()
		if err != nil {
			return nil, err
		}
		var pts []r2.Vec
		for _, side := range sides {
			segs := side.Segments
			// Drop each side's closing junction tuple: the next side
			// repeats it.
			for i := 0; i+1 < len(segs); i++ {
				p := g.OuterPoint(segs[i])
				pts = append(pts, r2.Vec{X: p.X, Y: p.Y})
			}
		}
		return pts, nil
	})
}

// BottomPlate extrudes the bottom cover from the outline.
func (g *Generator) BottomPlate() (csg.Solid, error) {
	pts, err := g.BottomOutline()
	if err != nil {
		return nil, err
	}
	return csg.LinearExtrude{Profile: pts, H: g.cfg.Wall.BottomThickness}, nil
}
