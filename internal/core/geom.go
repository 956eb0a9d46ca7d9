// Package core provides the screen buffer, input and geometry types shared by
// games and the terminal platform. It has no Bubble Tea dependency so game
// logic stays pure and testable.
package core

// Rect is an axis-aligned area of the screen in character cells.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate just past the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate just past the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Contains returns true if the point (x, y) is inside this rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Center returns the center point of the rectangle.
func (r Rect) Center() (int, int) {
	return r.X + r.W/2, r.Y + r.H/2
}

// Inset shrinks the rectangle by n cells on every side.
func (r Rect) Inset(n int) Rect {
	out := Rect{X: r.X + n, Y: r.Y + n, W: r.W - 2*n, H: r.H - 2*n}
	out.W = Max(out.W, 0)
	out.H = Max(out.H, 0)
	return out
}

// CellRect returns the sub-rectangle of a uniform grid of cw by ch cells
// laid out from the rectangle's top-left corner.
func (r Rect) CellRect(col, row, cw, ch int) Rect {
	return NewRect(r.X+col*cw, r.Y+row*ch, cw, ch)
}

// CellAt maps a point to the grid cell of size cw by ch containing it.
// ok is false when the point lies outside the rectangle.
func (r Rect) CellAt(x, y, cw, ch int) (col, row int, ok bool) {
	if !r.Contains(x, y) || cw <= 0 || ch <= 0 {
		return 0, 0, false
	}
	return (x - r.X) / cw, (y - r.Y) / ch, true
}

// Clamp restricts a value to be within [min, max].
func Clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// Abs returns the absolute value of an integer.
func Abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// Min returns the smaller of two integers.
func Min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// Max returns the larger of two integers.
func Max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
