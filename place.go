package keywell

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/keywell/keywell/csg"
)

// LocalPoint is a normalized position on a key plate, each component in
// [-1,1]. X grows toward the outer column edge, Y toward the top row
// edge, Z through the plate thickness. The point scales with the key's
// width/length multipliers so that {1,1,0} always lands on the plate's
// outer-top corner, whatever the key size.
type LocalPoint struct {
	X, Y, Z float64
}

// Generator computes placements and synthesizes the case shell from an
// immutable Config. Placement calls are pure functions of (coordinate,
// local point, config) and are safe to call concurrently; the memoized
// web/perimeter/baseline products are computed at most once per
// Generator.
type Generator struct {
	cfg  Config
	grid *Grid

	web   onceCell[[]csg.Solid]
	perim onceCell[[]Side]
	base  onceCell[[]r2.Vec]
}

// NewGenerator validates cfg and returns a Generator over it.
func NewGenerator(cfg Config) (*Generator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Generator{cfg: cfg, grid: newGrid(&cfg)}, nil
}

// Grid returns the topology gate for this generator's configuration.
func (g *Generator) Grid() *Grid { return g.grid }

// Config returns a copy of the generator's configuration.
func (g *Generator) Config() Config { return g.cfg }

// placer is the per-call placement strategy: the one placement formula
// is evaluated against either a solid (emitting csg transform nodes) or
// a bare point (multiplying matrices numerically). A placer value is
// scoped to a single placement call and never shared.
type placer interface {
	apply(m csg.M44)
}

type solidPlacer struct{ s csg.Solid }

func (p *solidPlacer) apply(m csg.M44) { p.s = csg.Transform(p.s, m) }

type pointPlacer struct{ p r3.Vec }

func (p *pointPlacer) apply(m csg.M44) { p.p = m.MulPosition(p.p) }

// Place returns s carried to coordinate c at local plate point lp.
// Coordinate validity is the caller's concern; gate with Grid.Exists.
func (g *Generator) Place(c Coord, lp LocalPoint, s csg.Solid) csg.Solid {
	p := solidPlacer{s: s}
	g.placeInto(c, lp, &p)
	return p.s
}

// PlaceKey places s at the key plate center of c.
func (g *Generator) PlaceKey(c Coord, s csg.Solid) csg.Solid {
	return g.Place(c, LocalPoint{}, s)
}

// Position returns the world point that Place would carry lp to. It is
// the compute-mode twin of Place: same formula, no geometry built.
func (g *Generator) Position(c Coord, lp LocalPoint) r3.Vec {
	p := pointPlacer{}
	g.placeInto(c, lp, &p)
	return p.p
}

// PlaceKeys invokes gen for every existing key coordinate and places
// each returned solid, skipping keys for which gen returns nil.
func (g *Generator) PlaceKeys(gen func(Coord) csg.Solid) []csg.Solid {
	var placed []csg.Solid
	for _, c := range append(g.grid.MainKeys(), g.grid.ThumbKeys()...) {
		if s := gen(c); s != nil {
			placed = append(placed, g.PlaceKey(c, s))
		}
	}
	return placed
}

func (g *Generator) placeInto(c Coord, lp LocalPoint, p placer) {
	c = g.grid.Normalize(c)
	p.apply(csg.Translate3d(g.localOffset(c, lp)))
	switch c.Section {
	case Main:
		g.placeMain(c, p)
	case Thumb:
		g.placeThumb(c, p)
	}
}

// localOffset scales the normalized local point by the key's plate
// footprint and size multipliers.
func (g *Generator) localOffset(c Coord, lp LocalPoint) r3.Vec {
	w, l := g.grid.scale(c)
	return r3.Vec{
		X: lp.X * w * g.cfg.PlateWidth / 2,
		Y: lp.Y * l * g.cfg.PlateLength / 2,
		Z: lp.Z * g.cfg.PlateThickness / 2,
	}
}

// arc is the angular width subtended by a chord of length l at radius r.
func arc(l, r float64) float64 {
	return 2 * math.Atan(l/(2*r))
}

// columnAngle is the cumulative sweep to the center of column col: every
// preceding key's angular width plus the inter-key gap at that column's
// radius, a half key for the target, and the column's constant phase.
func (g *Generator) columnAngle(col int) float64 {
	a := g.cfg.ColumnPhase[col] + arc(g.cfg.PlateWidth, g.cfg.ColumnRadius[col])/2
	for k := 0; k < col; k++ {
		r := g.cfg.ColumnRadius[k]
		a += arc(g.cfg.PlateWidth, r) + arc(g.cfg.GapX, r)
	}
	return a
}

// rowAngle is the same scheme evaluated on the single row radius.
func (g *Generator) rowAngle(row int) float64 {
	r := g.cfg.RowRadius
	key := arc(g.cfg.PlateLength, r)
	gap := arc(g.cfg.GapY, r)
	return g.cfg.RowPhase + key/2 + float64(row)*(key+gap)
}

// swingY rotates about the pivot point (0,0,radius) by angle, as a
// rotation about the y axis.
func swingY(p placer, angle, radius float64) {
	p.apply(csg.Translate3d(r3.Vec{Z: -radius}))
	p.apply(csg.RotateY(angle))
	p.apply(csg.Translate3d(r3.Vec{Z: radius}))
}

// swingX rotates about the pivot point (0,0,radius) by angle, as a
// rotation about the x axis.
func swingX(p placer, angle, radius float64) {
	p.apply(csg.Translate3d(r3.Vec{Z: -radius}))
	p.apply(csg.RotateX(angle))
	p.apply(csg.Translate3d(r3.Vec{Z: radius}))
}

const halfPi = math.Pi / 2

func (g *Generator) placeMain(c Coord, p placer) {
	if c == g.grid.Palm() {
		// The palm key sits sideways with its own hand-tuned offset.
		p.apply(csg.RotateZ(halfPi))
		p.apply(csg.Translate3d(g.cfg.PalmOffset))
	}
	swingY(p, -g.columnAngle(c.Col), g.cfg.ColumnRadius[c.Col])
	// Row rotation reuses the same pivot primitive inside a 90 degree
	// frame change, turning the y-axis swing into an x-axis one.
	p.apply(csg.RotateZ(halfPi))
	swingY(p, -g.rowAngle(c.Row), g.cfg.RowRadius)
	p.apply(csg.RotateZ(-halfPi))
	p.apply(csg.Translate3d(r3.Vec{Y: g.cfg.ColumnOffY[c.Col], Z: g.cfg.ColumnOffZ[c.Col]}))
	p.apply(csg.Translate3d(r3.Vec{Z: g.cfg.CaseHeight}))
}

// thumbKeyOffsets are the hand-tuned per-key offsets of the thumb
// cluster, keyed by normalized coordinate. The cluster is irregular;
// these do not follow from any sweep rule.
var thumbKeyOffsets = map[Coord]r3.Vec{
	T(0, 0): {X: 0, Y: 0, Z: 0},
	T(1, 0): {X: 20.5, Y: -3.5, Z: 1.2},
	T(2, 0): {X: 41.0, Y: -8.5, Z: 3.1},
	T(3, 0): {X: 60.5, Y: -15.0, Z: 6.4},
	T(0, 1): {X: 9.0, Y: -21.5, Z: 1.6},
	T(1, 1): {X: 30.0, Y: -26.0, Z: 3.4},
	T(2, 1): {X: 50.0, Y: -32.5, Z: 6.8},
	T(0, 2): {X: 19.5, Y: -46.0, Z: 4.2},
}

func (g *Generator) placeThumb(c Coord, p placer) {
	t := g.cfg.Thumb
	p.apply(csg.RotateX(t.Pitch))
	p.apply(csg.Translate3d(thumbKeyOffsets[c]))
	sweep := t.Phase0 + float64(c.Row)*t.PhaseStep[c.Col]
	p.apply(csg.RotateZ(t.Slant))
	swingX(p, sweep, t.Radius)
	p.apply(csg.RotateZ(-t.Slant))
	anchor := g.Position(C(t.AnchorColumn, t.AnchorRow), LocalPoint{X: -1, Y: -1})
	p.apply(csg.Translate3d(r3.Add(anchor, t.Offset)))
}
