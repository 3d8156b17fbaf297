package thread

import (
	"math"
	"testing"

	"github.com/keywell/keywell/csg"
)

func TestSteps(t *testing.T) {
	for _, tc := range []struct {
		spec Spec
		want int
	}{
		{Spec{Diameter: 6.5, Pitch: 0.75, Length: 8, PerTurn: 16}, 341},
		{Spec{Diameter: 3.4, Pitch: 0.75, Length: 10, PerTurn: 24}, 640},
		{Spec{Diameter: 3.4, Pitch: 0.75, Length: 10}, 426}, // default 16/turn
	} {
		if got := tc.spec.Steps(); got != tc.want {
			t.Errorf("Steps(%+v) = %d, want %d", tc.spec, got, tc.want)
		}
	}
}

func TestProfileDepth(t *testing.T) {
	s := Spec{Diameter: 6, Pitch: 1}
	p := s.profile()
	crest := p[2][0]
	root := p[0][0]
	if crest != 3 {
		t.Errorf("crest radius = %g, want 3", crest)
	}
	if d := crest - root; d != 0.625 {
		t.Errorf("thread depth = %g, want 0.625", d)
	}
	if p[0][0] != p[4][0] || p[0][1] != -p[4][1] {
		t.Errorf("profile roots not mirrored: %v vs %v", p[0], p[4])
	}
}

func TestScrewTopology(t *testing.T) {
	s := Spec{Diameter: 3.4, Pitch: 0.75, Length: 10, PerTurn: 8}
	solid := Screw(s)
	poly, ok := solid.(csg.Polyhedron)
	if !ok {
		t.Fatalf("Screw returned %T, want Polyhedron", solid)
	}
	n := s.Steps()
	if want := 5*n + 2; len(poly.Points) != want {
		t.Errorf("vertex count = %d, want %d", len(poly.Points), want)
	}

	// A closed 2-manifold has every edge shared by exactly two faces.
	type edge struct{ a, b int }
	edges := make(map[edge]int)
	for _, f := range poly.Faces {
		for i := range f {
			a, b := f[i], f[(i+1)%len(f)]
			if a < 0 || a >= len(poly.Points) || b < 0 || b >= len(poly.Points) {
				t.Fatalf("face index out of range: %d,%d", a, b)
			}
			if a > b {
				a, b = b, a
			}
			edges[edge{a, b}]++
		}
	}
	for e, count := range edges {
		if count != 2 {
			t.Fatalf("edge %v shared by %d faces, want 2", e, count)
		}
	}
}

func TestScrewHelixRises(t *testing.T) {
	s := Spec{Diameter: 3.4, Pitch: 0.75, Length: 10, PerTurn: 8}
	poly := Screw(s).(csg.Polyhedron)
	n := s.Steps()
	// Crest vertices (profile index 2) must rise monotonically.
	prev := poly.Points[2].Z
	for i := 1; i < n; i++ {
		z := poly.Points[5*i+2].Z
		if z <= prev {
			t.Fatalf("crest z not monotonic at step %d: %g <= %g", i, z, prev)
		}
		prev = z
	}
}

func TestShortThreadFallsBack(t *testing.T) {
	s := Spec{Diameter: 3.4, Pitch: 0.75, Length: 1}
	if _, ok := Screw(s).(csg.Polyhedron); ok {
		t.Error("thread shorter than two pitches should not mesh a helix")
	}
	s = Spec{Diameter: 3.4, Pitch: 0.75, Length: 10, Draft: true}
	if _, ok := Screw(s).(csg.Polyhedron); ok {
		t.Error("draft mode should not mesh a helix")
	}
}

func TestInternalClearance(t *testing.T) {
	s := Spec{Diameter: 3.4, Pitch: 0.75, Length: 10, PerTurn: 8}
	ext := Screw(s).(csg.Polyhedron)
	inner := Internal(s, 0.3).(csg.Polyhedron)
	if len(inner.Points) != len(ext.Points) {
		t.Fatalf("clearance changed topology: %d vs %d vertices", len(inner.Points), len(ext.Points))
	}
	// Crest radius grows by exactly the clearance.
	re := math.Hypot(ext.Points[2].X, ext.Points[2].Y)
	ri := math.Hypot(inner.Points[2].X, inner.Points[2].Y)
	if diff := ri - re; math.Abs(diff-0.3) > 1e-9 {
		t.Errorf("crest radius grew by %g, want 0.3", diff)
	}
}
