package keywell

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/keywell/keywell/csg"
	"github.com/keywell/keywell/internal/d2"
)

func TestStandStripWidth(t *testing.T) {
	g := testGenerator(t)
	pts, err := g.BottomOutline()
	if err != nil {
		t.Fatal(err)
	}
	sw := g.Config().Stand.StripWidth
	outer := d2.OffsetLoop(pts, sw/2)
	inner := d2.OffsetLoop(pts, -sw/2)
	for i := range pts {
		gap := r2.Norm(r2.Sub(outer[i], inner[i]))
		// Vertex normals are averaged, so the measured width can only
		// shrink at sharp corners, never grow.
		if gap > sw+1e-9 {
			t.Errorf("strip width %g at vertex %d exceeds %g", gap, i, sw)
		}
		if gap < sw/4 {
			t.Errorf("strip collapsed to %g at vertex %d", gap, i)
		}
	}
}

func TestSectionMatrixEndpoints(t *testing.T) {
	const px = 120.0
	// At angle zero both blend endpoints are the identity.
	for _, shape := range []float64{0, 0.35, 1} {
		m := sectionMatrix(0, px, shape)
		if !m.EqualWithin(csg.Identity3d(), 1e-12) {
			t.Errorf("sectionMatrix(0, px, %g) is not identity", shape)
		}
	}
	// Shape zero is the pure pivot rotation.
	a := 0.61
	want := csg.Translate3d(r3.Vec{X: px}).
		Mul(csg.RotateY(-a)).
		Mul(csg.Translate3d(r3.Vec{X: -px}))
	if m := sectionMatrix(a, px, 0); !m.EqualWithin(want, 1e-12) {
		t.Errorf("shape 0 is not the pure rotation")
	}
	// Pivot line stays put under the pure rotation.
	p := want.MulPosition(r3.Vec{X: px, Y: 5})
	if math.Abs(p.X-px) > 1e-9 || math.Abs(p.Z) > 1e-9 {
		t.Errorf("pivot line moved to %v", p)
	}
}

func TestStandBuilds(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Stand.Enable = true
	g, err := NewGenerator(cfg)
	if err != nil {
		t.Fatal(err)
	}
	sweep, err := g.StandSweep()
	if err != nil {
		t.Fatal(err)
	}
	if sweep == nil {
		t.Fatal("nil stand sweep")
	}
	boot, err := g.Boot()
	if err != nil {
		t.Fatal(err)
	}
	if boot == nil {
		t.Fatal("nil boot")
	}
}

func TestStandSharesNamedBosses(t *testing.T) {
	g := testGenerator(t)
	for _, name := range g.Config().Stand.Bosses {
		if _, ok := g.siteByName(name); !ok {
			t.Errorf("stand references unknown boss %q", name)
		}
	}
}
