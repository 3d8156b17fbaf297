package keywell

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/keywell/keywell/csg"
	"github.com/keywell/keywell/internal/d2"
)

// Tenting stand: a constant-width strip around the bottom outline,
// rotationally swept through the tent angle. Each swept section blends
// between pure pivot rotation and straight upward projection by the
// shape factor, so the stand underside can flare without pinching. A
// wedge clearance is carved under the resting case, and a thin boot
// liner shell holds the case in the stand.

// standStrip is the sweep cross-section: the baseline outline widened
// half a strip width in and out, as a thin extruded ring at z=0.
func (g *Generator) standStrip() (csg.Solid, error) {
	pts, err := g.BottomOutline()
	if err != nil {
		return nil, err
	}
	sc := g.cfg.Stand
	outer := d2.OffsetLoop(pts, sc.StripWidth/2)
	inner := d2.OffsetLoop(pts, -sc.StripWidth/2)
	ring := csg.Difference(
		csg.LinearExtrude{Profile: outer, H: sc.MinThickness},
		csg.Transform(
			csg.LinearExtrude{Profile: inner, H: sc.MinThickness + 2},
			csg.Translate3d(r3.Vec{Z: -1}),
		),
	)
	return ring, nil
}

// standPivot returns the sweep pivot: the y-axis line through the
// outline's greatest x, the edge that stays on the desk when tenting.
func (g *Generator) standPivot() (float64, error) {
	pts, err := g.BottomOutline()
	if err != nil {
		return 0, err
	}
	x := math.Inf(-1)
	for _, p := range pts {
		if p.X > x {
			x = p.X
		}
	}
	return x, nil
}

// sectionMatrix blends the section transform at angle a about the pivot
// line x=px: shape 0 is the pure rotation, shape 1 keeps the footprint
// in place and lifts it straight up by the rotated pivot-edge height.
func sectionMatrix(a, px, shape float64) csg.M44 {
	rot := csg.Translate3d(r3.Vec{X: px}).
		Mul(csg.RotateY(-a)).
		Mul(csg.Translate3d(r3.Vec{X: -px}))
	proj := csg.Translate3d(r3.Vec{Z: px * math.Sin(a) / 2})
	return lerpM44(rot, proj, shape)
}

func lerpM44(a, b csg.M44, t float64) csg.M44 {
	l := func(x, y float64) float64 { return x + (y-x)*t }
	return csg.M44{
		X00: l(a.X00, b.X00), X01: l(a.X01, b.X01), X02: l(a.X02, b.X02), X03: l(a.X03, b.X03),
		X10: l(a.X10, b.X10), X11: l(a.X11, b.X11), X12: l(a.X12, b.X12), X13: l(a.X13, b.X13),
		X20: l(a.X20, b.X20), X21: l(a.X21, b.X21), X22: l(a.X22, b.X22), X23: l(a.X23, b.X23),
		X30: l(a.X30, b.X30), X31: l(a.X31, b.X31), X32: l(a.X32, b.X32), X33: l(a.X33, b.X33),
	}
}

// StandSweep builds the stand body: the strip evaluated at each angle
// fraction of the tent sweep, adjacent sections hull-stitched, with the
// clearance wedge carved out so only the boot rim touches the case.
func (g *Generator) StandSweep() (csg.Solid, error) {
	sc := g.cfg.Stand
	strip, err := g.standStrip()
	if err != nil {
		return nil, err
	}
	px, err := g.standPivot()
	if err != nil {
		return nil, err
	}
	var prev csg.Solid
	var hulls []csg.Solid
	for i := 0; i <= sc.Sections; i++ {
		a := sc.TentAngle * float64(i) / float64(sc.Sections)
		cur := csg.Transform(strip, sectionMatrix(a, px, sc.Shape))
		if prev != nil {
			hulls = append(hulls, csg.Hull(prev, cur))
		}
		prev = cur
	}
	body := csg.Union(hulls...)

	wedge, err := g.clearanceWedge(px)
	if err != nil {
		return nil, err
	}
	return csg.Difference(body, wedge), nil
}

// clearanceWedge is the half-space above the resting plane of the
// tented case, backed off by the clearance angle and lifted by the boot
// floor so the liner survives the cut.
func (g *Generator) clearanceWedge(px float64) (csg.Solid, error) {
	sc := g.cfg.Stand
	pts, err := g.BottomOutline()
	if err != nil {
		return nil, err
	}
	span := 0.0
	for _, p := range pts {
		span = math.Max(span, math.Hypot(p.X, p.Y))
	}
	size := 4 * (span + sc.StripWidth)
	slab := csg.Translate(
		csg.Cube{Size: r3.Vec{X: size, Y: size, Z: size}, Center: true},
		r3.Vec{X: px, Z: size/2 + sc.BootFloor},
	)
	m := csg.Translate3d(r3.Vec{X: px}).
		Mul(csg.RotateY(-(sc.TentAngle - sc.ClearanceAngle))).
		Mul(csg.Translate3d(r3.Vec{X: -px}))
	return csg.Transform(slab, m), nil
}

// Boot builds the liner shell the case drops into: the outline offset
// outward by the boot wall, extruded to the rim height, minus the
// outline itself lifted above the boot floor. Screw pads rise under the
// named boss subset so the stand shares the case fasteners.
func (g *Generator) Boot() (csg.Solid, error) {
	pts, err := g.BottomOutline()
	if err != nil {
		return nil, err
	}
	sc := g.cfg.Stand
	rim := sc.BootFloor + sc.StripWidth // strip width doubles as rim height
	outer := d2.OffsetLoop(pts, sc.BootWall)
	shell := csg.Difference(
		csg.LinearExtrude{Profile: outer, H: rim},
		csg.Translate(csg.LinearExtrude{Profile: pts, H: rim}, r3.Vec{Z: sc.BootFloor}),
	)

	kids := []csg.Solid{shell}
	bc := g.cfg.Boss
	for _, name := range sc.Bosses {
		s, ok := g.siteByName(name)
		if !ok {
			continue
		}
		pad := csg.Cylinder{H: sc.BootFloor, R1: bc.Radius, R2: bc.Radius, Center: true}
		kids = append(kids, csg.Translate(pad, r3.Vec{X: s.pos.X, Y: s.pos.Y, Z: sc.BootFloor / 2}))
	}
	boot := csg.Union(kids...)

	var holes []csg.Solid
	for _, name := range sc.Bosses {
		s, ok := g.siteByName(name)
		if !ok {
			continue
		}
		hole := csg.Cylinder{H: sc.BootFloor + 2, R1: bc.HoleRadius, R2: bc.HoleRadius, Center: true}
		holes = append(holes, csg.Translate(hole, r3.Vec{X: s.pos.X, Y: s.pos.Y, Z: sc.BootFloor / 2}))
	}
	if len(holes) == 0 {
		return boot, nil
	}
	return csg.Difference(boot, csg.Union(holes...)), nil
}
