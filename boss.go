package keywell

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/keywell/keywell/csg"
	"github.com/keywell/keywell/thread"
)

// BossDescriptor pins a screw boss to a wall segment pair by its
// unordered coordinate endpoints. Frac positions the boss along the
// pair (0 meaning the default midpoint); Inset displaces it inward as a
// multiple of the boss radius (0 meaning the default of one radius,
// just clearing the wall). The zero value always reads as the default:
// a boss exactly at an endpoint or flush with the wall line is not
// expressible, use a small epsilon instead.
type BossDescriptor struct {
	Name  string  `toml:"name"`
	A     Coord   `toml:"a"`
	B     Coord   `toml:"b"`
	Frac  float64 `toml:"frac"`
	Inset float64 `toml:"inset"`
}

func defaultBossTable() []BossDescriptor {
	return []BossDescriptor{
		{Name: "back-left", A: C(0, 0), B: C(1, 0)},
		{Name: "back-right", A: C(4, 0), B: C(5, 0)},
		{Name: "right", A: C(5, 2), B: C(5, 3)},
		{Name: "front-right", A: C(5, 4), B: C(4, 3), Frac: 0.4},
		{Name: "thumb", A: T(2, 1), B: T(0, 2), Inset: 1.2},
		{Name: "left", A: C(0, 2), B: C(0, 1)},
	}
}

// bossSite is a resolved boss location: the matched descriptor and the
// 2D center the features share.
type bossSite struct {
	d       BossDescriptor
	pos     r2.Vec
	wallMid r2.Vec
}

// matches reports whether the descriptor's endpoints equal the pair's
// coordinates in either order.
func (d BossDescriptor) matches(g *Generator, a, b Coord) bool {
	da, db := g.grid.Normalize(d.A), g.grid.Normalize(d.B)
	a, b = g.grid.Normalize(a), g.grid.Normalize(b)
	return (da == a && db == b) || (da == b && db == a)
}

// bossSites walks the traced loop pairwise, matching each segment pair
// against the descriptor table. A descriptor is consumed by its first
// matching pair; pairs with no descriptor place nothing.
func (g *Generator) bossSites() ([]bossSite, error) {
	sides, err := g.Trace()
	if err != nil {
		return nil, err
	}
	used := make(map[int]bool, len(g.cfg.Boss.Table))
	var sites []bossSite
	for _, side := range sides {
		segs := side.Segments
		for i := 0; i+1 < len(segs); i++ {
			a, b := segs[i], segs[i+1]
			for di, d := range g.cfg.Boss.Table {
				if used[di] || !d.matches(g, a.C, b.C) {
					continue
				}
				used[di] = true
				sites = append(sites, g.resolveSite(d, a, b))
			}
		}
	}
	return sites, nil
}

// resolveSite interpolates the pair's inner wall markers by the
// descriptor fraction and pushes the result inward along the 2D normal,
// the 90 degree rotation of the marker difference vector.
func (g *Generator) resolveSite(d BossDescriptor, a, b WallSegment) bossSite {
	frac := d.Frac
	if frac == 0 {
		frac = 0.5
	}
	inset := d.Inset
	if inset == 0 {
		inset = 1
	}
	pa, pb := g.InnerPoint(a), g.InnerPoint(b)
	ia := r2.Vec{X: pa.X, Y: pa.Y}
	ib := r2.Vec{X: pb.X, Y: pb.Y}
	mid := r2.Add(r2.Scale(1-frac, ia), r2.Scale(frac, ib))
	diff := r2.Sub(ib, ia)
	if r2.Norm(diff) < 1e-9 {
		diff = r2.Vec{X: 1}
	}
	// Right turn of the travel direction: the loop winds clockwise, so
	// the interior is on the right.
	normal := r2.Unit(r2.Vec{X: diff.Y, Y: -diff.X})
	pos := r2.Add(mid, r2.Scale(inset*g.cfg.Boss.Radius, normal))

	oa, ob := g.OuterPoint(a), g.OuterPoint(b)
	wallMid := r2.Scale(0.5, r2.Add(r2.Vec{X: oa.X, Y: oa.Y}, r2.Vec{X: ob.X, Y: ob.Y}))
	return bossSite{d: d, pos: pos, wallMid: wallMid}
}

// Bosses returns the structural screw bosses: each is the hull of the
// boss cylinder with a slice of its wall segment, the slice height
// picked so the gusset rises at 45 degrees.
func (g *Generator) Bosses() ([]csg.Solid, error) {
	sites, err := g.bossSites()
	if err != nil {
		return nil, err
	}
	bc := g.cfg.Boss
	var out []csg.Solid
	for _, s := range sites {
		run := math.Hypot(s.wallMid.X-s.pos.X, s.wallMid.Y-s.pos.Y)
		gussetH := bc.Height + run
		cyl := csg.Cylinder{H: bc.Height, R1: bc.Radius, R2: bc.Radius, Center: true}
		slice := csg.Cube{Size: r3.Vec{X: 1, Y: 1, Z: gussetH}, Center: true}
		out = append(out, csg.Hull(
			csg.Translate(cyl, r3.Vec{X: s.pos.X, Y: s.pos.Y, Z: bc.Height / 2}),
			csg.Translate(slice, r3.Vec{X: s.wallMid.X, Y: s.wallMid.Y, Z: gussetH / 2}),
		))
	}
	return out, nil
}

// BossHoles returns the fastener pilot holes cut through the bosses.
func (g *Generator) BossHoles() ([]csg.Solid, error) {
	sites, err := g.bossSites()
	if err != nil {
		return nil, err
	}
	bc := g.cfg.Boss
	var out []csg.Solid
	for _, s := range sites {
		hole := csg.Cylinder{H: bc.Height + 1, R1: bc.HoleRadius, R2: bc.HoleRadius, Center: true}
		out = append(out, csg.Translate(hole, r3.Vec{X: s.pos.X, Y: s.pos.Y, Z: bc.Height / 2}))
	}
	return out, nil
}

// Countersinks returns the bottom-cover fastener recesses: a through
// hole plus a conical seat letting the screw head sit flush.
func (g *Generator) Countersinks() ([]csg.Solid, error) {
	sites, err := g.bossSites()
	if err != nil {
		return nil, err
	}
	bc := g.cfg.Boss
	bt := g.cfg.Wall.BottomThickness
	var out []csg.Solid
	for _, s := range sites {
		shaft := csg.Cylinder{H: bt + 1, R1: bc.HoleRadius, R2: bc.HoleRadius, Center: true}
		seat := csg.Cylinder{H: bc.HeadDepth, R1: bc.HeadRadius, R2: bc.HoleRadius, Center: true}
		out = append(out, csg.Union(
			csg.Translate(shaft, r3.Vec{X: s.pos.X, Y: s.pos.Y, Z: bt / 2}),
			csg.Translate(seat, r3.Vec{X: s.pos.X, Y: s.pos.Y, Z: bc.HeadDepth / 2}),
		))
	}
	return out, nil
}

// ThreadCuts returns the helical internal threads, one per boss,
// subtracted from the pilot holes so machine screws bite directly.
func (g *Generator) ThreadCuts() ([]csg.Solid, error) {
	sites, err := g.bossSites()
	if err != nil {
		return nil, err
	}
	bc := g.cfg.Boss
	var out []csg.Solid
	for _, s := range sites {
		cut := thread.Internal(thread.Spec{
			Diameter: 2 * bc.HoleRadius,
			Pitch:    bc.ThreadPitch,
			Length:   bc.Height - 1,
			PerTurn:  g.cfg.Facet.Fragments(bc.HoleRadius),
		}, bc.ThreadClearance)
		out = append(out, csg.Translate(cut, r3.Vec{X: s.pos.X, Y: s.pos.Y, Z: 0.5}))
	}
	return out, nil
}

// TestCutouts returns oversized clearance volumes at each boss site, a
// debug aid for checking boss placement against the wall.
func (g *Generator) TestCutouts() ([]csg.Solid, error) {
	sites, err := g.bossSites()
	if err != nil {
		return nil, err
	}
	bc := g.cfg.Boss
	var out []csg.Solid
	for _, s := range sites {
		box := csg.Cube{Size: r3.Vec{X: 6 * bc.Radius, Y: 6 * bc.Radius, Z: 2 * bc.Height}, Center: true}
		out = append(out, csg.Translate(box, r3.Vec{X: s.pos.X, Y: s.pos.Y, Z: bc.Height}))
	}
	return out, nil
}

// siteByName returns the resolved site for a named descriptor.
func (g *Generator) siteByName(name string) (bossSite, bool) {
	sites, err := g.bossSites()
	if err != nil {
		return bossSite{}, false
	}
	for _, s := range sites {
		if s.d.Name == name {
			return s, true
		}
	}
	return bossSite{}, false
}
