// Package core is the match-3 board engine: grid model, match detection,
// special-tile creation, cascade resolution and deadlock handling.
// It has no dependency on the terminal platform so it can be tested in
// isolation and driven deterministically from a seeded random source.
package core

import "fmt"

// Coord is a cell position on the board. Row 0 is the top row.
type Coord struct {
	Row int
	Col int
}

// C is a shorthand constructor for Coord.
func C(row, col int) Coord {
	return Coord{Row: row, Col: col}
}

// Add returns the coordinate offset by (dr, dc).
func (c Coord) Add(dr, dc int) Coord {
	return Coord{Row: c.Row + dr, Col: c.Col + dc}
}

// Adjacent reports whether o shares an edge with c.
func (c Coord) Adjacent(o Coord) bool {
	dr := c.Row - o.Row
	dc := c.Col - o.Col
	if dr < 0 {
		dr = -dr
	}
	if dc < 0 {
		dc = -dc
	}
	return dr+dc == 1
}

// Less orders coordinates row-major.
func (c Coord) Less(o Coord) bool {
	if c.Row != o.Row {
		return c.Row < o.Row
	}
	return c.Col < o.Col
}

func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.Row, c.Col)
}
