package keywell

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/keywell/keywell/csg"
)

// Case assembly: key plates, web, walls, bosses, bottom cover and the
// mirrored left half. Everything here is expression-tree plumbing; the
// placement math lives in place.go and friends.

// KeyPlate returns the mounting plate solid for one key, centered on
// the key origin: top and side walls around the square switch cutout,
// with retention nubs on the left and right cutout walls. Plate span
// follows the key's footprint scale.
func (g *Generator) KeyPlate(c Coord) csg.Solid {
	cfg := g.cfg
	w, l := g.grid.scale(c)
	outerW := cfg.PlateWidth * w
	outerL := cfg.PlateLength * l
	hole := cfg.MountHole
	t := cfg.PlateThickness

	sideW := (outerW - hole) / 2
	sideL := (outerL - hole) / 2

	top := csg.Translate(
		csg.Cube{Size: r3.Vec{X: outerW, Y: sideL, Z: t}, Center: true},
		r3.Vec{Y: (hole + sideL) / 2, Z: -t / 2},
	)
	bottom := csg.Translate(
		csg.Cube{Size: r3.Vec{X: outerW, Y: sideL, Z: t}, Center: true},
		r3.Vec{Y: -(hole + sideL) / 2, Z: -t / 2},
	)
	left := csg.Translate(
		csg.Cube{Size: r3.Vec{X: sideW, Y: outerL, Z: t}, Center: true},
		r3.Vec{X: -(hole + sideW) / 2, Z: -t / 2},
	)
	right := csg.Translate(
		csg.Cube{Size: r3.Vec{X: sideW, Y: outerL, Z: t}, Center: true},
		r3.Vec{X: (hole + sideW) / 2, Z: -t / 2},
	)

	// Switch retention nubs: small wedges protruding into the cutout so
	// the switch clips in without glue.
	nub := func(side float64) csg.Solid {
		body := csg.Cube{Size: r3.Vec{X: nubDepth, Y: nubWidth, Z: t - nubDrop}, Center: true}
		return csg.Translate(body, r3.Vec{
			X: side * (hole/2 + nubDepth/2 - nubBite),
			Z: -(t + nubDrop) / 2,
		})
	}
	return csg.Union(top, bottom, left, right, nub(1), nub(-1))
}

const (
	nubDepth = 2.75
	nubWidth = 5.0
	nubDrop  = 1.0
	nubBite  = 1.0
)

// RightHalf assembles the complete right-hand case body.
func (g *Generator) RightHalf() (csg.Solid, error) {
	plates := g.PlaceKeys(g.KeyPlate)
	web := g.Web()

	sides, err := g.Trace()
	if err != nil {
		return nil, err
	}
	panels := g.Brace(sides)

	bosses, err := g.Bosses()
	if err != nil {
		return nil, err
	}
	holes, err := g.BossHoles()
	if err != nil {
		return nil, err
	}
	threads, err := g.ThreadCuts()
	if err != nil {
		return nil, err
	}

	var kids []csg.Solid
	kids = append(kids, plates...)
	kids = append(kids, web...)
	kids = append(kids, panels...)
	kids = append(kids, bosses...)
	kids = append(kids, g.BackTrim())
	body := csg.Union(kids...)

	cuts := append(append([]csg.Solid{}, holes...), threads...)
	return csg.Difference(body, csg.Union(cuts...)), nil
}

// Bottom assembles the right-hand bottom cover with its countersinks.
func (g *Generator) Bottom() (csg.Solid, error) {
	plate, err := g.BottomPlate()
	if err != nil {
		return nil, err
	}
	sinks, err := g.Countersinks()
	if err != nil {
		return nil, err
	}
	return csg.Difference(plate, csg.Union(sinks...)), nil
}

// Assembly holds every solid one generator run emits. Left-hand parts
// are yz-plane mirrors of the right-hand ones.
type Assembly struct {
	Right       csg.Solid
	Left        csg.Solid
	BottomRight csg.Solid
	BottomLeft  csg.Solid
	// Stand and Boot are nil unless the stand is enabled.
	Stand csg.Solid
	Boot  csg.Solid
}

// Build runs the whole generator and returns the assembly.
func Build(cfg Config) (*Assembly, error) {
	g, err := NewGenerator(cfg)
	if err != nil {
		return nil, err
	}
	right, err := g.RightHalf()
	if err != nil {
		return nil, err
	}
	bottom, err := g.Bottom()
	if err != nil {
		return nil, err
	}
	asm := &Assembly{
		Right:       right,
		Left:        csg.MirrorYZ(right),
		BottomRight: bottom,
		BottomLeft:  csg.MirrorYZ(bottom),
	}
	if cfg.Stand.Enable {
		stand, err := g.StandSweep()
		if err != nil {
			return nil, err
		}
		boot, err := g.Boot()
		if err != nil {
			return nil, err
		}
		asm.Stand = stand
		asm.Boot = boot
	}
	return asm, nil
}
