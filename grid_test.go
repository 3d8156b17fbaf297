package keywell

import "testing"

func testGenerator(t *testing.T) *Generator {
	t.Helper()
	g, err := NewGenerator(DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	return g
}

func TestGridKeyCounts(t *testing.T) {
	g := testGenerator(t)
	// Columns 2, 3 and 5 keep all five rows; 0, 1 and 4 stop at the
	// cutoff row.
	if got := len(g.Grid().MainKeys()); got != 27 {
		t.Errorf("main key count = %d, want 27", got)
	}
	if got := len(g.Grid().ThumbKeys()); got != 8 {
		t.Errorf("thumb key count = %d, want 8", got)
	}
}

func TestGridExists(t *testing.T) {
	g := testGenerator(t)
	for _, tc := range []struct {
		c    Coord
		want bool
	}{
		{C(0, 0), true},
		{C(0, 3), true},
		{C(0, 4), false}, // short column
		{C(2, 4), true},  // full-height column
		{C(5, 4), true},  // palm key
		{C(6, 0), false},
		{C(0, 5), false},
		{T(0, 0), true},
		{T(3, 0), true},
		{T(3, 1), false}, // row 1 has three keys
		{T(0, 2), true},
		{T(1, 2), false}, // row 2 has one key
		{T(0, 3), false},
	} {
		if got := g.Grid().Exists(tc.c); got != tc.want {
			t.Errorf("Exists(%v) = %v, want %v", tc.c, got, tc.want)
		}
	}
}

func TestGridNormalizeWrap(t *testing.T) {
	g := testGenerator(t)
	for _, tc := range []struct {
		in, want Coord
	}{
		{C(-1, -1), C(5, 4)},
		{C(-2, 0), C(4, 0)},
		{C(0, -5), C(0, 0)},
		{T(-1, 0), T(3, 0)},
		{T(-1, -3), T(3, 0)},
		{T(-1, -1), T(0, 2)}, // row 2 has a single key
		{C(3, 2), C(3, 2)},
	} {
		if got := g.Grid().Normalize(tc.in); got != tc.want {
			t.Errorf("Normalize(%v) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestGridScale(t *testing.T) {
	g := testGenerator(t)
	for _, tc := range []struct {
		c    Coord
		w, l float64
	}{
		{C(2, 2), 1, 1},
		{T(0, 0), 1, 1},
		{T(0, 1), 1, 1.5},
		{T(0, 2), 1, 2},
	} {
		w, l := g.Grid().scale(tc.c)
		if w != tc.w || l != tc.l {
			t.Errorf("scale(%v) = %g,%g, want %g,%g", tc.c, w, l, tc.w, tc.l)
		}
	}
}

func TestPalm(t *testing.T) {
	g := testGenerator(t)
	if got := g.Grid().Palm(); got != C(5, 4) {
		t.Errorf("Palm() = %v, want %v", got, C(5, 4))
	}
}

func TestValidateRejects(t *testing.T) {
	bad := DefaultConfig()
	bad.ColumnRadius = bad.ColumnRadius[:3]
	if _, err := NewGenerator(bad); err == nil {
		t.Error("short column_radius slice accepted")
	}

	bad = DefaultConfig()
	bad.ColumnRadius[0] = 10 // smaller than the plate
	if _, err := NewGenerator(bad); err == nil {
		t.Error("column radius below plate length accepted")
	}

	bad = DefaultConfig()
	bad.Facet = FacetConfig{}
	if _, err := NewGenerator(bad); err == nil {
		t.Error("zero faceting config accepted")
	}
}
