package keywell

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/keywell/keywell/csg"
)

// WallSegment is one point along the case boundary: a key plate corner
// plus the inward/outward offset triple steering the wall's outer
// marker. Off.X and Off.Y multiply the wall xy offset, Off.Z multiplies
// the wall z drop.
type WallSegment struct {
	C   Coord
	L   LocalPoint
	Off r3.Vec
}

// Side is one named stretch of the case perimeter.
type Side struct {
	Name     string
	Segments []WallSegment
}

// outerOffset is the local-frame displacement of a segment's outer wall
// marker relative to its plate corner.
func (g *Generator) outerOffset(s WallSegment) r3.Vec {
	return r3.Vec{
		X: s.Off.X * g.cfg.Wall.XYOffset,
		Y: s.Off.Y * g.cfg.Wall.XYOffset,
		Z: s.Off.Z * g.cfg.Wall.ZOffset,
	}
}

// OuterPoint is the world position of the segment's outer wall marker.
func (g *Generator) OuterPoint(s WallSegment) r3.Vec {
	p := pointPlacer{p: g.outerOffset(s)}
	g.placeInto(s.C, s.L, &p)
	return p.p
}

// InnerPoint is the world position of the segment's plate corner, where
// the wall panel meets the web.
func (g *Generator) InnerPoint(s WallSegment) r3.Vec {
	return g.Position(s.C, s.L)
}

// Trace emits the five case sides in loop order: back, right, front,
// thumb, left. Each side's first tuple repeats the previous side's last
// tuple so the sides concatenate into one closed loop with consistent
// winding. A junction mismatch is a configuration bug and aborts the
// trace.
func (g *Generator) Trace() ([]Side, error) {
	return g.perim.get(func() ([]Side, error) {
		sides := g.traceSides()
		const tol = 1e-6
		for i, side := range sides {
			prev := sides[(i+len(sides)-1)%len(sides)]
			last := prev.Segments[len(prev.Segments)-1]
			first := side.Segments[0]
			a, b := g.OuterPoint(last), g.OuterPoint(first)
			if r3.Norm(r3.Sub(a, b)) > tol {
				return nil, fmt.Errorf("wall sides %s/%s do not share a junction: %s ends at %v, %s starts at %v",
					prev.Name, side.Name, prev.Name, a, side.Name, b)
			}
		}
		return sides, nil
	})
}

func (g *Generator) traceSides() []Side {
	lastCol := g.grid.Columns() - 1
	palm := g.grid.Palm()

	// Shared junction tuples. Diagonal offsets keep the corner markers
	// clear of both adjoining wall directions.
	jBackLeft := WallSegment{C(0, 0), cornerTL, r3.Vec{X: -1, Y: 1, Z: 1}}
	jBackRight := WallSegment{C(lastCol, 0), cornerTR, r3.Vec{X: 1, Y: 1, Z: 1}}
	jFrontRight := WallSegment{palm, cornerBR, r3.Vec{X: 1, Y: -1, Z: 1}}
	jFrontThumb := WallSegment{C(2, g.bottomRow(2)), cornerBL, r3.Vec{X: -0.5, Y: -1, Z: 1}}
	jThumbLeft := WallSegment{T(0, 0), cornerTL, r3.Vec{X: -1, Y: 0.5, Z: 1}}

	back := Side{Name: "back", Segments: []WallSegment{jBackLeft}}
	for col := 0; col <= lastCol; col++ {
		if !g.grid.Exists(C(col, 0)) {
			continue
		}
		if col > 0 {
			back.Segments = append(back.Segments, WallSegment{C(col, 0), cornerTL, r3.Vec{Y: 1, Z: 1}})
		} else {
			back.Segments = append(back.Segments, WallSegment{C(col, 0), cornerTR, r3.Vec{Y: 1, Z: 1}})
			continue
		}
		if col < lastCol {
			back.Segments = append(back.Segments, WallSegment{C(col, 0), cornerTR, r3.Vec{Y: 1, Z: 1}})
		}
	}
	back.Segments = append(back.Segments, jBackRight)

	right := Side{Name: "right", Segments: []WallSegment{jBackRight}}
	for row := 0; row <= g.bottomRow(lastCol); row++ {
		if !g.grid.Exists(C(lastCol, row)) {
			continue
		}
		if row > 0 {
			right.Segments = append(right.Segments, WallSegment{C(lastCol, row), cornerTR, r3.Vec{X: 1, Z: 1}})
		}
		if C(lastCol, row) != palm {
			right.Segments = append(right.Segments, WallSegment{C(lastCol, row), cornerBR, r3.Vec{X: 1, Z: 1}})
		}
	}
	right.Segments = append(right.Segments, jFrontRight)

	// Front runs right to left along the bottom-most key of each column
	// until the thumb cluster takes over below column 2.
	front := Side{Name: "front", Segments: []WallSegment{jFrontRight}}
	front.Segments = append(front.Segments, WallSegment{palm, cornerBL, r3.Vec{Y: -1, Z: 1}})
	for col := lastCol - 1; col >= 2; col-- {
		row := g.bottomRow(col)
		front.Segments = append(front.Segments,
			WallSegment{C(col, row), cornerBR, r3.Vec{Y: -1, Z: 1}})
		if col > 2 {
			front.Segments = append(front.Segments,
				WallSegment{C(col, row), cornerBL, r3.Vec{Y: -1, Z: 1}})
		}
	}
	front.Segments = append(front.Segments, jFrontThumb)

	// The thumb boundary is irregular: shortened rows, oversize keys and
	// the seam into the main grid. Literal list, tuned by hand.
	thumb := Side{Name: "thumb", Segments: []WallSegment{
		jFrontThumb,
		{T(3, 0), cornerTR, r3.Vec{X: 1, Y: 0.5, Z: 1}},
		{T(3, 0), cornerBR, r3.Vec{X: 1, Y: -0.5, Z: 1}},
		{T(2, 1), cornerTR, r3.Vec{X: 1, Y: -0.5, Z: 1}},
		{T(2, 1), cornerBR, r3.Vec{X: 0.5, Y: -1, Z: 1}},
		{T(0, 2), cornerTR, r3.Vec{X: 1, Y: -1, Z: 1}},
		{T(0, 2), cornerBR, r3.Vec{Y: -1, Z: 1}},
		{T(0, 2), cornerBL, r3.Vec{X: -1, Y: -1, Z: 1}},
		{T(0, 1), cornerBL, r3.Vec{X: -1, Z: 1}},
		{T(0, 0), cornerBL, r3.Vec{X: -1, Z: 1}},
		jThumbLeft,
	}}

	// Left side climbs from the thumb seam back to the top left corner.
	left := Side{Name: "left", Segments: []WallSegment{
		jThumbLeft,
		{C(0, g.bottomRow(0)), cornerBL, r3.Vec{X: -1, Y: -0.5, Z: 1}},
	}}
	for row := g.bottomRow(0); row >= 0; row-- {
		if row < g.bottomRow(0) {
			left.Segments = append(left.Segments, WallSegment{C(0, row), cornerBL, r3.Vec{X: -1, Z: 1}})
		}
		if row > 0 {
			left.Segments = append(left.Segments, WallSegment{C(0, row), cornerTL, r3.Vec{X: -1, Z: 1}})
		}
	}
	left.Segments = append(left.Segments, jBackLeft)

	return []Side{back, right, front, thumb, left}
}

// bottomRow returns the last existing row of a main-grid column.
func (g *Generator) bottomRow(col int) int {
	for row := g.grid.Rows() - 1; row >= 0; row-- {
		if g.grid.Exists(C(col, row)) {
			return row
		}
	}
	return -1
}

// wallPost is the outer wall marker kernel for a segment: the web post
// displaced by the segment's offset triple.
func (g *Generator) wallPost(s WallSegment) csg.Solid {
	return g.Place(s.C, s.L, csg.Translate(g.webPost(), g.outerOffset(s)))
}

// innerPost is the wall marker coincident with the plate corner kernel.
func (g *Generator) innerPost(s WallSegment) csg.Solid {
	return g.post(s.C, s.L)
}
