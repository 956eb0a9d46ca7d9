package core

import (
	"fmt"
	"strings"
)

// Grid is a fixed-size board stored row-major. A nil cell is empty.
// The grid owns its tiles: Set copies in, Get copies out.
type Grid struct {
	Rows  int
	Cols  int
	cells []*Tile
}

// NewGrid creates an empty rows x cols board.
func NewGrid(rows, cols int) *Grid {
	if rows < 0 {
		rows = 0
	}
	if cols < 0 {
		cols = 0
	}
	return &Grid{
		Rows:  rows,
		Cols:  cols,
		cells: make([]*Tile, rows*cols),
	}
}

// InBounds reports whether c lies on the board.
func (g *Grid) InBounds(c Coord) bool {
	return c.Row >= 0 && c.Row < g.Rows && c.Col >= 0 && c.Col < g.Cols
}

func (g *Grid) index(c Coord) int {
	return c.Row*g.Cols + c.Col
}

// at returns the cell pointer. Out-of-bounds access is a programming error.
func (g *Grid) at(c Coord) *Tile {
	if !g.InBounds(c) {
		panic(fmt.Sprintf("core: coordinate %v out of bounds for %dx%d grid", c, g.Rows, g.Cols))
	}
	return g.cells[g.index(c)]
}

// Get returns a copy of the tile at c. ok is false for empty or
// out-of-bounds cells.
func (g *Grid) Get(c Coord) (Tile, bool) {
	if !g.InBounds(c) {
		return Tile{}, false
	}
	t := g.cells[g.index(c)]
	if t == nil {
		return Tile{}, false
	}
	return *t, true
}

// MustGet is Get for engine code that already knows c is valid.
// It panics when c is out of bounds.
func (g *Grid) MustGet(c Coord) (Tile, bool) {
	t := g.at(c)
	if t == nil {
		return Tile{}, false
	}
	return *t, true
}

// Set places a copy of t at c and records c as its position.
// Out-of-bounds coordinates are ignored.
func (g *Grid) Set(c Coord, t Tile) {
	if !g.InBounds(c) {
		return
	}
	t.Pos = c
	g.cells[g.index(c)] = &t
}

// Clear empties the cell at c.
func (g *Grid) Clear(c Coord) {
	if !g.InBounds(c) {
		return
	}
	g.cells[g.index(c)] = nil
}

// Empty reports whether c is an empty in-bounds cell.
func (g *Grid) Empty(c Coord) bool {
	return g.InBounds(c) && g.cells[g.index(c)] == nil
}

// Swap exchanges the occupants of a and b and updates their positions.
func (g *Grid) Swap(a, b Coord) {
	if !g.InBounds(a) || !g.InBounds(b) {
		return
	}
	ia, ib := g.index(a), g.index(b)
	g.cells[ia], g.cells[ib] = g.cells[ib], g.cells[ia]
	if t := g.cells[ia]; t != nil {
		t.Pos = a
	}
	if t := g.cells[ib]; t != nil {
		t.Pos = b
	}
}

// swapKinds exchanges only the colors of two occupied cells. Used for
// tentative move searches where specials stay put.
func (g *Grid) swapKinds(a, b Coord) bool {
	ta, tb := g.at(a), g.at(b)
	if ta == nil || tb == nil {
		return false
	}
	ta.Kind, tb.Kind = tb.Kind, ta.Kind
	return true
}

// Each calls fn for every cell in row-major order.
func (g *Grid) Each(fn func(c Coord, t Tile, ok bool)) {
	for r := 0; r < g.Rows; r++ {
		for col := 0; col < g.Cols; col++ {
			c := C(r, col)
			t, ok := g.Get(c)
			fn(c, t, ok)
		}
	}
}

// Full reports whether every cell is occupied.
func (g *Grid) Full() bool {
	for _, t := range g.cells {
		if t == nil {
			return false
		}
	}
	return true
}

// Clone returns a deep copy of the grid.
func (g *Grid) Clone() *Grid {
	out := NewGrid(g.Rows, g.Cols)
	for i, t := range g.cells {
		if t != nil {
			cp := *t
			out.cells[i] = &cp
		}
	}
	return out
}

// Equal reports whether two grids hold identical tiles in identical cells.
func (g *Grid) Equal(other *Grid) bool {
	if g == nil || other == nil {
		return g == other
	}
	if g.Rows != other.Rows || g.Cols != other.Cols {
		return false
	}
	for i := range g.cells {
		a, b := g.cells[i], other.cells[i]
		if (a == nil) != (b == nil) {
			return false
		}
		if a != nil && *a != *b {
			return false
		}
	}
	return true
}

// Parse builds a grid from one string per row. A cell is '.' when empty,
// '*' for a rainbow tile, or a kind letter (R G B Y P C) optionally followed
// by a special mark: '-' striped-h, '|' striped-v, '+' wrapped, '#' bomb.
func Parse(lines ...string) (*Grid, error) {
	if len(lines) == 0 {
		return NewGrid(0, 0), nil
	}
	rows := make([][]*Tile, len(lines))
	for r, line := range lines {
		cells, err := parseRow(line)
		if err != nil {
			return nil, fmt.Errorf("core: row %d %w", r, err)
		}
		if r > 0 && len(cells) != len(rows[0]) {
			return nil, fmt.Errorf("core: row %d has %d cells, want %d", r, len(cells), len(rows[0]))
		}
		rows[r] = cells
	}

	g := NewGrid(len(rows), len(rows[0]))
	for r, cells := range rows {
		for c, t := range cells {
			if t != nil {
				g.Set(C(r, c), *t)
			}
		}
	}
	return g, nil
}

func parseRow(line string) ([]*Tile, error) {
	runes := []rune(line)
	var cells []*Tile
	for i := 0; i < len(runes); i++ {
		if runes[i] == '.' {
			cells = append(cells, nil)
			continue
		}
		k, err := ParseKind(string(runes[i]))
		if err != nil {
			return nil, fmt.Errorf("col %d: %w", len(cells), err)
		}
		t := NewTile(k)
		switch {
		case k == KindWild:
			t = NewSpecial(k, SpecialRainbow)
		case i+1 < len(runes):
			if s, ok := specialForMark(runes[i+1]); ok {
				t = NewSpecial(k, s)
				i++
			}
		}
		cells = append(cells, &t)
	}
	return cells, nil
}

// MustParse is Parse that panics on malformed input. Intended for tests
// and fixed layouts.
func MustParse(lines ...string) *Grid {
	g, err := Parse(lines...)
	if err != nil {
		panic(err)
	}
	return g
}

// String renders the grid in the Parse format, one row per line. Rows
// holding specials are wider than the board.
func (g *Grid) String() string {
	var sb strings.Builder
	for r := 0; r < g.Rows; r++ {
		if r > 0 {
			sb.WriteByte('\n')
		}
		for c := 0; c < g.Cols; c++ {
			t := g.cells[g.index(C(r, c))]
			if t == nil {
				sb.WriteByte('.')
				continue
			}
			sb.WriteRune(t.Kind.Char())
			if m := t.Special.mark(); m != 0 {
				sb.WriteRune(m)
			}
		}
	}
	return sb.String()
}
