package keywell

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/keywell/keywell/csg"
)

// Connector synthesis ("web"): the gaps between adjacent key plates are
// filled by hulling small marker posts placed at plate corners. Regular
// gaps are generated from grid adjacency; the irregular spots (thumb
// seam, top-row junction, palm junction, thumb internals) are
// hand-authored marker lists.

// Plate corner local points.
var (
	cornerTR = LocalPoint{X: 1, Y: 1}
	cornerTL = LocalPoint{X: -1, Y: 1}
	cornerBR = LocalPoint{X: 1, Y: -1}
	cornerBL = LocalPoint{X: -1, Y: -1}
)

// webPost returns the marker kernel: a sliver of web thickness whose top
// face is flush with the plate top.
func (g *Generator) webPost() csg.Solid {
	s := g.cfg.Web.PostSize
	post := csg.Cube{Size: r3.Vec{X: s, Y: s, Z: g.cfg.Web.Thickness}, Center: true}
	top := g.cfg.PlateThickness/2 - g.cfg.Web.Thickness/2
	return csg.Translate(post, r3.Vec{Z: top})
}

// post places the marker kernel at a plate corner.
func (g *Generator) post(c Coord, lp LocalPoint) csg.Solid {
	return g.Place(c, lp, g.webPost())
}

// marker pairs a coordinate with a plate corner; hand-authored patch
// groups are ordered lists of these.
type marker struct {
	c  Coord
	lp LocalPoint
}

// triangleHulls hulls every consecutive overlapping triple of markers,
// approximating a triangulated patch without gaps or self-intersection.
func (g *Generator) triangleHulls(ms ...marker) []csg.Solid {
	if len(ms) < 3 {
		return nil
	}
	solids := make([]csg.Solid, len(ms))
	for i, m := range ms {
		solids[i] = g.post(m.c, m.lp)
	}
	hulls := make([]csg.Solid, 0, len(ms)-2)
	for i := 0; i+2 < len(ms); i++ {
		hulls = append(hulls, csg.Hull(solids[i], solids[i+1], solids[i+2]))
	}
	return hulls
}

// pairKey is an unordered coordinate pair in canonical order.
type pairKey struct{ a, b Coord }

func (g *Generator) pair(a, b Coord) pairKey {
	a, b = g.grid.Normalize(a), g.grid.Normalize(b)
	if b.Section < a.Section || (a.Section == b.Section && (b.Col < a.Col || (b.Col == a.Col && b.Row < a.Row))) {
		a, b = b, a
	}
	return pairKey{a, b}
}

// adjacentPairs enumerates every column-, row- and diagonally-adjacent
// pair of existing keys, both sections, topology-gated. A diagonal pair
// needs only its two endpoints; the off-diagonal quad keys may be
// absent.
func (g *Generator) adjacentPairs() []pairKey {
	var pairs []pairKey
	add := func(a, b Coord) {
		if g.grid.Exists(a) && g.grid.Exists(b) {
			pairs = append(pairs, g.pair(a, b))
		}
	}
	for col := 0; col < g.grid.Columns(); col++ {
		for row := 0; row < g.grid.Rows(); row++ {
			add(C(col, row), C(col+1, row))
			add(C(col, row), C(col, row+1))
			add(C(col, row), C(col+1, row+1))
		}
	}
	for row := 0; row < len(thumbRows); row++ {
		for col := 0; col < thumbRowLen(row); col++ {
			add(T(col, row), T(col+1, row))
			add(T(col, row), T(col, row+1))
			add(T(col, row), T(col+1, row+1))
			add(T(col+1, row), T(col, row+1))
		}
	}
	return pairs
}

// webException is one hand-authored patch region: the adjacency pairs
// it claims plus the ordered marker groups that fill it.
type webException struct {
	name   string
	pairs  []pairKey
	groups [][]marker
}

// webExceptions returns the hand-authored regions. These are irregular
// junctions with no sweep rule; the marker orders are tuned by eye.
func (g *Generator) webExceptions() []webException {
	palm := g.grid.Palm()
	prePalmCol := palm.Col - 1
	return []webException{
		{
			// Scale discontinuity where the thumb cluster meets the
			// bottom of the main grid.
			name: "thumb-seam",
			pairs: []pairKey{
				g.pair(T(3, 0), C(2, 4)),
				g.pair(T(3, 0), C(1, 3)),
			},
			groups: [][]marker{
				{
					{T(3, 0), cornerTR},
					{C(1, 3), cornerBL},
					{T(3, 0), LocalPoint{X: 1, Y: 0.4}},
					{C(1, 3), cornerBR},
					{C(2, 4), cornerTL},
					{C(2, 4), cornerBL},
				},
				{
					{T(3, 0), cornerBR},
					{C(2, 4), cornerBL},
					{T(3, 0), cornerTR},
					{C(2, 4), cornerTL},
				},
			},
		},
		{
			// Three-way junction at the top row where the column offset
			// jumps between the inner and outer columns.
			name:  "top-junction",
			pairs: []pairKey{g.pair(C(2, 0), C(3, 0))},
			groups: [][]marker{
				{
					{C(2, 0), cornerTR},
					{C(3, 0), cornerTL},
					{C(2, 0), LocalPoint{X: 1, Y: 0.55}},
					{C(3, 0), cornerBL},
					{C(2, 0), cornerBR},
				},
			},
		},
		{
			// Junction around the canted palm key.
			name: "palm-junction",
			pairs: []pairKey{
				g.pair(C(prePalmCol, 3), palm),
				g.pair(C(palm.Col, 3), palm),
			},
			groups: [][]marker{
				{
					{C(prePalmCol, 3), cornerBR},
					{palm, cornerTL},
					{C(palm.Col, 3), cornerBL},
					{palm, cornerTR},
					{C(palm.Col, 3), cornerBR},
				},
				{
					{C(prePalmCol, 3), cornerBL},
					{C(prePalmCol, 3), cornerBR},
					{palm, cornerTL},
				},
			},
		},
		{
			// The thumb cluster's internal adjacency is fully irregular:
			// unequal row lengths and key sizes. Enumerated outright.
			name:  "thumb-internal",
			pairs: g.thumbInternalPairs(),
			groups: [][]marker{
				// Row 0 column seams.
				{{T(0, 0), cornerTR}, {T(1, 0), cornerTL}, {T(0, 0), cornerBR}, {T(1, 0), cornerBL}},
				{{T(1, 0), cornerTR}, {T(2, 0), cornerTL}, {T(1, 0), cornerBR}, {T(2, 0), cornerBL}},
				{{T(2, 0), cornerTR}, {T(3, 0), cornerTL}, {T(2, 0), cornerBR}, {T(3, 0), cornerBL}},
				// Row 1 column seams.
				{{T(0, 1), cornerTR}, {T(1, 1), cornerTL}, {T(0, 1), cornerBR}, {T(1, 1), cornerBL}},
				{{T(1, 1), cornerTR}, {T(2, 1), cornerTL}, {T(1, 1), cornerBR}, {T(2, 1), cornerBL}},
				// Row 0 to row 1, stitched with the diagonals folded in.
				{
					{T(0, 0), cornerBL},
					{T(0, 0), cornerBR},
					{T(0, 1), cornerTL},
					{T(0, 1), cornerTR},
					{T(1, 0), cornerBL},
					{T(1, 1), cornerTL},
				},
				{
					{T(1, 0), cornerBL},
					{T(1, 0), cornerBR},
					{T(1, 1), cornerTL},
					{T(1, 1), cornerTR},
					{T(2, 0), cornerBL},
					{T(2, 1), cornerTL},
				},
				{
					{T(2, 0), cornerBL},
					{T(2, 0), cornerBR},
					{T(2, 1), cornerTL},
					{T(2, 1), cornerTR},
					{T(3, 0), cornerBL},
					{T(3, 0), cornerBR},
				},
				// Row 1 down to the single row 2 key.
				{
					{T(0, 1), cornerBL},
					{T(0, 1), cornerBR},
					{T(0, 2), cornerTL},
					{T(0, 2), cornerTR},
					{T(1, 1), cornerBL},
					{T(1, 1), cornerBR},
				},
				{
					{T(0, 2), cornerTR},
					{T(1, 1), cornerBR},
					{T(0, 2), cornerBR},
					{T(2, 1), cornerBL},
				},
			},
		},
	}
}

// thumbInternalPairs is every thumb/thumb adjacency.
func (g *Generator) thumbInternalPairs() []pairKey {
	var pairs []pairKey
	for _, p := range g.adjacentPairs() {
		if p.a.Section == Thumb && p.b.Section == Thumb {
			pairs = append(pairs, p)
		}
	}
	return pairs
}

// webPatches builds the generated per-adjacency patches plus the
// hand-authored ones. Generated patches skip any pair claimed by an
// exception.
func (g *Generator) webPatches() (generated map[pairKey][]csg.Solid, hand []csg.Solid) {
	excepted := make(map[pairKey]bool)
	for _, e := range g.webExceptions() {
		for _, p := range e.pairs {
			excepted[p] = true
		}
		for _, group := range e.groups {
			hand = append(hand, g.triangleHulls(group...)...)
		}
	}

	generated = make(map[pairKey][]csg.Solid)
	emit := func(key pairKey, ms ...marker) {
		if excepted[key] {
			return
		}
		if _, ok := generated[key]; ok {
			return
		}
		generated[key] = g.triangleHulls(ms...)
	}
	for _, p := range g.adjacentPairs() {
		a, b := p.a, p.b
		switch {
		case a.Row == b.Row && b.Col == a.Col+1: // column seam
			emit(p,
				marker{a, cornerTR}, marker{b, cornerTL},
				marker{a, cornerBR}, marker{b, cornerBL})
		case a.Col == b.Col && b.Row == a.Row+1: // row seam
			emit(p,
				marker{a, cornerBL}, marker{a, cornerBR},
				marker{b, cornerTL}, marker{b, cornerTR})
		case b.Col == a.Col+1 && b.Row == a.Row+1: // diagonal
			// The off-diagonal quad corners join the strip only when
			// those keys exist.
			right := Coord{Section: a.Section, Col: a.Col + 1, Row: a.Row}
			below := Coord{Section: a.Section, Col: a.Col, Row: a.Row + 1}
			ms := []marker{{a, cornerBR}}
			if g.grid.Exists(right) {
				ms = append(ms, marker{right, cornerBL})
			}
			if g.grid.Exists(below) {
				ms = append(ms, marker{below, cornerTR})
			}
			ms = append(ms, marker{b, cornerTL})
			emit(p, ms...)
		case b.Col == a.Col+1 && b.Row == a.Row-1: // anti-diagonal (thumb only)
			emit(p,
				marker{a, cornerTR}, marker{b, cornerBL},
				marker{a, cornerTL}, marker{b, cornerBR})
		}
	}
	return generated, hand
}

// Web returns the full connector patch set, computed once per run.
func (g *Generator) Web() []csg.Solid {
	patches, _ := g.web.get(func() ([]csg.Solid, error) {
		generated, hand := g.webPatches()
		var all []csg.Solid
		for _, p := range g.adjacentPairs() {
			if hulls, ok := generated[p]; ok {
				all = append(all, hulls...)
				delete(generated, p)
			}
		}
		all = append(all, hand...)
		return all, nil
	})
	return patches
}
