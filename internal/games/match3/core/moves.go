package core

// Move is a swap of two adjacent cells.
type Move struct {
	A Coord
	B Coord
}

// tryMoves tries every right and bottom neighbor swap by exchanging
// colors only, then swaps back. visit returning false stops the search.
func tryMoves(g *Grid, visit func(Move) bool) {
	for r := 0; r < g.Rows; r++ {
		for c := 0; c < g.Cols; c++ {
			a := C(r, c)
			for _, b := range [2]Coord{C(r, c+1), C(r+1, c)} {
				if !g.InBounds(b) {
					continue
				}
				if !g.swapKinds(a, b) {
					continue
				}
				hit := HasMatch(g)
				g.swapKinds(a, b)
				if hit && !visit(Move{A: a, B: b}) {
					return
				}
			}
		}
	}
}

// HasAnyValidMove reports whether at least one adjacent swap creates a match.
func HasAnyValidMove(g *Grid) bool {
	found := false
	tryMoves(g, func(Move) bool {
		found = true
		return false
	})
	return found
}

// ValidMoves lists every adjacent swap that creates a match, row-major.
func ValidMoves(g *Grid) []Move {
	var moves []Move
	tryMoves(g, func(m Move) bool {
		moves = append(moves, m)
		return true
	})
	return moves
}

// ReshuffleResult reports how a reshuffle concluded.
type ReshuffleResult struct {
	Attempts int
	// Fallback is true when random redraws ran out and the greedy layout
	// was used instead.
	Fallback bool
}

// Shuffler deals fresh boards and redraws deadlocked ones.
type Shuffler struct {
	rules Rules
	rng   Rand
}

// NewShuffler returns a shuffler using rules and rng.
func NewShuffler(rules Rules, rng Rand) *Shuffler {
	return &Shuffler{rules: rules.Normalize(), rng: rng}
}

// Fill deals a complete board with no runs, regenerating until the match
// detector finds nothing. Existing tiles are discarded.
func (s *Shuffler) Fill(g *Grid) ReshuffleResult {
	for i := 1; i <= s.rules.FillAttempts; i++ {
		s.redraw(g)
		if !HasMatch(g) {
			return ReshuffleResult{Attempts: i}
		}
	}
	GreedyFill(g, s.rules.Palette)
	return ReshuffleResult{Attempts: s.rules.FillAttempts, Fallback: true}
}

// Reshuffle redraws every cell's color, discarding specials, until the
// board has no runs and at least one valid move. When the attempts run
// out the greedy layout is used instead.
func (s *Shuffler) Reshuffle(g *Grid) ReshuffleResult {
	for i := 1; i <= s.rules.ReshuffleAttempts; i++ {
		s.redraw(g)
		if !HasMatch(g) && HasAnyValidMove(g) {
			return ReshuffleResult{Attempts: i}
		}
	}
	GreedyFill(g, s.rules.Palette)
	return ReshuffleResult{Attempts: s.rules.ReshuffleAttempts, Fallback: true}
}

func (s *Shuffler) redraw(g *Grid) {
	kinds := Palette(s.rules.Palette)
	for r := 0; r < g.Rows; r++ {
		for c := 0; c < g.Cols; c++ {
			g.Set(C(r, c), NewTile(kinds[s.rng.Intn(len(kinds))]))
		}
	}
}

// GreedyFill assigns every cell, left to right and top to bottom, the first
// color starting at (row*cols+col) mod palette that does not complete a run
// with the cells already placed around it. Before that it plants two tiles
// of one color and a third beside the gap, so one swap always makes a run.
// With three or more colors a choice always exists, so the result has no
// runs and at least one valid move on boards large enough to hold the plant.
func GreedyFill(g *Grid, palette int) {
	kinds := Palette(palette)
	n := len(kinds)
	for i := range g.cells {
		g.cells[i] = nil
	}

	planted := make(map[Coord]bool)
	for _, c := range plantFor(g.Rows, g.Cols) {
		g.Set(c, NewTile(kinds[0]))
		planted[c] = true
	}

	for r := 0; r < g.Rows; r++ {
		for c := 0; c < g.Cols; c++ {
			if planted[C(r, c)] {
				continue
			}
			start := (r*g.Cols + c) % n
			chosen := kinds[start]
			for k := 0; k < n; k++ {
				cand := kinds[(start+k)%n]
				if completesRun(g, r, c, cand) {
					continue
				}
				chosen = cand
				break
			}
			g.Set(C(r, c), NewTile(chosen))
		}
	}
}

// plantFor returns three cells of one color that the swap of the last one
// with its neighbor turns into a run, or nil when the board is too small.
func plantFor(rows, cols int) []Coord {
	switch {
	case rows >= 2 && cols >= 3:
		// (1,2) swaps up into row 0.
		return []Coord{C(0, 0), C(0, 1), C(1, 2)}
	case rows >= 3 && cols >= 2:
		return []Coord{C(0, 0), C(1, 0), C(2, 1)}
	case cols >= 4:
		return []Coord{C(0, 0), C(0, 1), C(0, 3)}
	case rows >= 4:
		return []Coord{C(0, 0), C(1, 0), C(3, 0)}
	}
	return nil
}

// completesRun reports whether color k at (r, c) would line up three with
// placed neighbors in any horizontal or vertical window through the cell.
func completesRun(g *Grid, r, c int, k Kind) bool {
	same := func(p Coord) bool {
		t, ok := g.Get(p)
		return ok && t.Kind == k
	}
	for off := -2; off <= 0; off++ {
		h := true
		v := true
		for i := off; i < off+3; i++ {
			if i == 0 {
				continue
			}
			h = h && same(C(r, c+i))
			v = v && same(C(r+i, c))
		}
		if h || v {
			return true
		}
	}
	return false
}
