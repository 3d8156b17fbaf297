package keywell

import (
	"testing"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/keywell/keywell/internal/d2"
)

func TestTraceClosedLoop(t *testing.T) {
	g := testGenerator(t)
	sides, err := g.Trace()
	if err != nil {
		t.Fatal(err)
	}
	if len(sides) != 5 {
		t.Fatalf("traced %d sides, want 5", len(sides))
	}
	total := 0
	for i, side := range sides {
		if len(side.Segments) < 2 {
			t.Fatalf("side %q has %d segments", side.Name, len(side.Segments))
		}
		total += len(side.Segments)
		// Each side opens where the previous one closed, wrapping at
		// the loop start.
		prev := sides[(i+len(sides)-1)%len(sides)]
		a := g.OuterPoint(prev.Segments[len(prev.Segments)-1])
		b := g.OuterPoint(side.Segments[0])
		if r3.Norm(r3.Sub(a, b)) > 1e-6 {
			t.Errorf("sides %q and %q do not share a junction: %v vs %v", prev.Name, side.Name, a, b)
		}
	}
	if total < 40 {
		t.Errorf("traced %d segments in total, want at least 40", total)
	}
}

func TestTraceSegmentsReferenceExistingKeys(t *testing.T) {
	g := testGenerator(t)
	sides, err := g.Trace()
	if err != nil {
		t.Fatal(err)
	}
	for _, side := range sides {
		for _, s := range side.Segments {
			if !g.Grid().Exists(s.C) {
				t.Errorf("side %q references missing key %v", side.Name, s.C)
			}
		}
	}
}

func TestBraceSkipsNothing(t *testing.T) {
	g := testGenerator(t)
	sides, err := g.Trace()
	if err != nil {
		t.Fatal(err)
	}
	want := 0
	for _, side := range sides {
		want += len(side.Segments) - 1
	}
	panels := g.Brace(sides)
	if len(panels) != want {
		t.Errorf("braced %d panels, want %d (no degenerate pairs in the reference table)", len(panels), want)
	}
}

func TestOuterOffsetDisplaces(t *testing.T) {
	g := testGenerator(t)
	sides, err := g.Trace()
	if err != nil {
		t.Fatal(err)
	}
	for _, side := range sides {
		for _, s := range side.Segments {
			in, out := g.InnerPoint(s), g.OuterPoint(s)
			if r3.Norm(r3.Sub(in, out)) < 1e-6 {
				t.Errorf("side %q segment at %v: wall has zero depth", side.Name, s.C)
			}
		}
	}
}

func TestBottomOutline(t *testing.T) {
	g := testGenerator(t)
	pts, err := g.BottomOutline()
	if err != nil {
		t.Fatal(err)
	}
	if len(pts) < 40 {
		t.Fatalf("outline has %d points, want at least 40", len(pts))
	}
	for i := range pts {
		a, b := pts[i], pts[(i+1)%len(pts)]
		dx, dy := b.X-a.X, b.Y-a.Y
		if dx*dx+dy*dy < 1e-12 {
			t.Errorf("outline points %d and %d coincide at (%g, %g)", i, (i+1)%len(pts), a.X, a.Y)
		}
	}
	// Boss inset and wall offsets both assume a clockwise loop.
	if a := d2.Area(pts); a >= 0 {
		t.Errorf("outline winds counter-clockwise (area %g)", a)
	}
}

func TestTraceMemoized(t *testing.T) {
	g := testGenerator(t)
	a, err := g.Trace()
	if err != nil {
		t.Fatal(err)
	}
	b, _ := g.Trace()
	if &a[0] != &b[0] {
		t.Error("perimeter recomputed between calls")
	}
}
