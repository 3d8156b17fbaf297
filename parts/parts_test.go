package parts

import (
	"testing"

	"github.com/keywell/keywell/csg"
)

func TestKeycapMeshes(t *testing.T) {
	s, err := Keycap(17.5)
	if err != nil {
		t.Fatal(err)
	}
	poly, ok := s.(csg.Polyhedron)
	if !ok {
		t.Fatalf("keycap is %T, want Polyhedron", s)
	}
	if len(poly.Points) == 0 || len(poly.Faces) == 0 {
		t.Fatal("empty keycap mesh")
	}
	for _, f := range poly.Faces {
		if len(f) != 3 {
			t.Fatalf("non-triangular face: %v", f)
		}
		for _, i := range f {
			if i < 0 || i >= len(poly.Points) {
				t.Fatalf("face index %d out of range", i)
			}
		}
	}
	// Welding must actually share vertices between triangles.
	if len(poly.Points) >= 3*len(poly.Faces) {
		t.Errorf("no vertices welded: %d points for %d faces", len(poly.Points), len(poly.Faces))
	}
	// The skirt bottom sits at z=0.
	minZ, maxZ := poly.Points[0].Z, poly.Points[0].Z
	for _, p := range poly.Points {
		if p.Z < minZ {
			minZ = p.Z
		}
		if p.Z > maxZ {
			maxZ = p.Z
		}
	}
	if minZ < -0.5 || minZ > 0.5 {
		t.Errorf("cap bottom at z=%g, want near 0", minZ)
	}
	if maxZ < 5 {
		t.Errorf("cap top at z=%g, want a full-height cap", maxZ)
	}
}

func TestSwitchBodyAndPCB(t *testing.T) {
	if SwitchBody() == nil {
		t.Fatal("nil switch body")
	}
	pcb := PCB(100, 80, 1.6)
	if pcb == nil {
		t.Fatal("nil pcb")
	}
}
