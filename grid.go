package keywell

// Section selects which curved surface a key belongs to.
type Section uint8

const (
	// Main is the toroidally curved finger grid.
	Main Section = iota
	// Thumb is the cylindrically curved thumb cluster.
	Thumb
)

func (s Section) String() string {
	if s == Thumb {
		return "thumb"
	}
	return "main"
}

// Coord addresses one key plate. Negative Col/Row index from the end of
// their axis, python style: Col -1 is the last column of the row.
// Whether a Coord exists is decided only by Grid.
type Coord struct {
	Section Section `toml:"section"`
	Col     int     `toml:"col"`
	Row     int     `toml:"row"`
}

// C is shorthand for a main-section coordinate.
func C(col, row int) Coord { return Coord{Section: Main, Col: col, Row: row} }

// T is shorthand for a thumb-section coordinate.
func T(col, row int) Coord { return Coord{Section: Thumb, Col: col, Row: row} }

// thumbRows is the irregular thumb cluster shape: keys per row.
var thumbRows = [3]int{4, 3, 1}

func thumbRowLen(row int) int {
	if row < 0 || row >= len(thumbRows) {
		return 0
	}
	return thumbRows[row]
}

// Grid is the topology gate: it decides which coordinates carry a key.
// Every component resolves coordinates through Grid before placing
// geometry; nothing may assume the grid is rectangular.
type Grid struct {
	cols, rows int
	cutoff     int
	full       map[int]bool
}

func newGrid(cfg *Config) *Grid {
	full := make(map[int]bool, len(cfg.FullHeightColumns))
	for _, c := range cfg.FullHeightColumns {
		full[c] = true
	}
	return &Grid{cols: cfg.Columns, rows: cfg.Rows, cutoff: cfg.BottomCutoffRow, full: full}
}

// Normalize resolves negative wrap-from-end indices to their canonical
// non-negative form. Out-of-range coordinates pass through unchanged;
// Exists rejects them.
func (g *Grid) Normalize(c Coord) Coord {
	switch c.Section {
	case Main:
		if c.Col < 0 {
			c.Col += g.cols
		}
		if c.Row < 0 {
			c.Row += g.rows
		}
	case Thumb:
		if c.Row < 0 {
			c.Row += len(thumbRows)
		}
		if c.Col < 0 {
			c.Col += thumbRowLen(c.Row)
		}
	}
	return c
}

// Exists reports whether a key plate sits at c.
func (g *Grid) Exists(c Coord) bool {
	c = g.Normalize(c)
	switch c.Section {
	case Main:
		if c.Col < 0 || c.Col >= g.cols || c.Row < 0 || c.Row >= g.rows {
			return false
		}
		return g.full[c.Col] || c.Row < g.cutoff
	case Thumb:
		return c.Row >= 0 && c.Row < len(thumbRows) && c.Col >= 0 && c.Col < thumbRowLen(c.Row)
	}
	return false
}

// Palm returns the palm key coordinate: last column, last row.
func (g *Grid) Palm() Coord { return C(g.cols-1, g.rows-1) }

// MainKeys returns every existing main-grid coordinate in column-major
// order.
func (g *Grid) MainKeys() []Coord {
	var keys []Coord
	for col := 0; col < g.cols; col++ {
		for row := 0; row < g.rows; row++ {
			if c := C(col, row); g.Exists(c) {
				keys = append(keys, c)
			}
		}
	}
	return keys
}

// ThumbKeys returns every thumb-cluster coordinate in row-major order.
func (g *Grid) ThumbKeys() []Coord {
	var keys []Coord
	for row := 0; row < len(thumbRows); row++ {
		for col := 0; col < thumbRowLen(row); col++ {
			keys = append(keys, T(col, row))
		}
	}
	return keys
}

// Columns returns the main grid column count.
func (g *Grid) Columns() int { return g.cols }

// Rows returns the main grid row count.
func (g *Grid) Rows() int { return g.rows }

// scale returns the per-key width/length multipliers. The thumb cluster
// carries taller keys on its inner rows; everything else is 1u.
func (g *Grid) scale(c Coord) (w, l float64) {
	c = g.Normalize(c)
	if c.Section == Thumb {
		switch c.Row {
		case 1:
			return 1, 1.5
		case 2:
			return 1, 2
		}
	}
	return 1, 1
}
