package core

import (
	"sort"

	"github.com/zyedidia/generic/mapset"
)

// MatchSet is an unordered, duplicate-free set of matched cells.
// The zero value is an empty set ready to use.
type MatchSet struct {
	set  mapset.Set[Coord]
	init bool
}

// NewMatchSet returns a set holding coords.
func NewMatchSet(coords ...Coord) MatchSet {
	var m MatchSet
	for _, c := range coords {
		m.Add(c)
	}
	return m
}

// Add inserts c.
func (m *MatchSet) Add(c Coord) {
	if !m.init {
		m.set = mapset.New[Coord]()
		m.init = true
	}
	m.set.Put(c)
}

// Has reports whether c is in the set.
func (m MatchSet) Has(c Coord) bool {
	return m.init && m.set.Has(c)
}

// Len returns the number of cells in the set.
func (m MatchSet) Len() int {
	if !m.init {
		return 0
	}
	return m.set.Size()
}

// Empty reports whether no cell matched.
func (m MatchSet) Empty() bool {
	return m.Len() == 0
}

// Coords returns the members in row-major order.
func (m MatchSet) Coords() []Coord {
	out := make([]Coord, 0, m.Len())
	if m.init {
		m.set.Each(func(c Coord) {
			out = append(out, c)
		})
	}
	sortCoords(out)
	return out
}

func sortCoords(cs []Coord) {
	sort.Slice(cs, func(i, j int) bool { return cs[i].Less(cs[j]) })
}

// compatible reports whether three tiles form a run: all occupied and every
// non-wild kind among them equal.
func compatible(tiles ...*Tile) bool {
	var color Kind
	seen := false
	for _, t := range tiles {
		if t == nil {
			return false
		}
		if t.Kind.IsWild() {
			continue
		}
		if !seen {
			color = t.Kind
			seen = true
			continue
		}
		if t.Kind != color {
			return false
		}
	}
	return true
}

// scanTriples visits every horizontal and vertical window of three matching
// cells. Returning false from visit stops the scan.
func scanTriples(g *Grid, visit func(a, b, c Coord) bool) {
	for r := 0; r < g.Rows; r++ {
		for c := 0; c+2 < g.Cols; c++ {
			a, b, d := C(r, c), C(r, c+1), C(r, c+2)
			if compatible(g.at(a), g.at(b), g.at(d)) && !visit(a, b, d) {
				return
			}
		}
	}
	for c := 0; c < g.Cols; c++ {
		for r := 0; r+2 < g.Rows; r++ {
			a, b, d := C(r, c), C(r+1, c), C(r+2, c)
			if compatible(g.at(a), g.at(b), g.at(d)) && !visit(a, b, d) {
				return
			}
		}
	}
}

// HasMatch reports whether any run of three exists, without building a set.
func HasMatch(g *Grid) bool {
	found := false
	scanTriples(g, func(_, _, _ Coord) bool {
		found = true
		return false
	})
	return found
}

// FindMatches returns every cell taking part in a run of three or more,
// plus the areas of special tiles caught in the match. A special caught in
// another special's area fires as well.
func FindMatches(g *Grid) MatchSet {
	var ms MatchSet
	scanTriples(g, func(a, b, c Coord) bool {
		ms.Add(a)
		ms.Add(b)
		ms.Add(c)
		return true
	})
	if ms.Empty() {
		return ms
	}
	expandSpecials(g, &ms)
	return ms
}

func expandSpecials(g *Grid, ms *MatchSet) {
	fired := mapset.New[Coord]()
	queue := make([]Coord, 0, ms.Len())
	for _, c := range ms.Coords() {
		if t := g.at(c); t != nil && t.IsSpecial() {
			queue = append(queue, c)
		}
	}
	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]
		if fired.Has(c) {
			continue
		}
		fired.Put(c)
		for _, hit := range Area(g, c) {
			if ms.Has(hit) {
				continue
			}
			ms.Add(hit)
			if t := g.at(hit); t != nil && t.IsSpecial() {
				queue = append(queue, hit)
			}
		}
	}
}

// Area returns the occupied cells cleared by the special tile at c.
// Plain and rainbow tiles clear nothing beyond themselves.
func Area(g *Grid, c Coord) []Coord {
	t, ok := g.Get(c)
	if !ok {
		return nil
	}
	var out []Coord
	add := func(p Coord) {
		if g.InBounds(p) && !g.Empty(p) {
			out = append(out, p)
		}
	}
	switch t.Special {
	case SpecialStripedH:
		for col := 0; col < g.Cols; col++ {
			add(C(c.Row, col))
		}
	case SpecialStripedV:
		for row := 0; row < g.Rows; row++ {
			add(C(row, c.Col))
		}
	case SpecialWrapped:
		block(c, 1, add)
	case SpecialBomb:
		block(c, 2, add)
	}
	return out
}

// block visits the square of the given radius centered on c.
func block(c Coord, radius int, visit func(Coord)) {
	for dr := -radius; dr <= radius; dr++ {
		for dc := -radius; dc <= radius; dc++ {
			visit(c.Add(dr, dc))
		}
	}
}
