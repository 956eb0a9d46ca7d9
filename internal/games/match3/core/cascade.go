package core

import (
	"errors"
	"fmt"
)

// ErrCascadeLimit is returned when a resolution exceeds Rules.MaxCascades
// cycles. It signals a broken random source or rule set, not a game event.
var ErrCascadeLimit = errors.New("core: cascade did not settle")

// Removed records a cleared cell and the tile that occupied it.
type Removed struct {
	At   Coord
	Tile Tile
}

// Created records a special tile placed at a group's anchor.
type Created struct {
	At   Coord
	Tile Tile
}

// Fall records a tile dropping from one cell to another in the same column.
type Fall struct {
	From Coord
	To   Coord
	Tile Tile
}

// Spawn records a fresh tile dealt into an empty cell.
type Spawn struct {
	At   Coord
	Tile Tile
}

// Step describes one remove/gravity/refill cycle for the presentation layer.
type Step struct {
	Index   int
	Matched []Coord
	Created []Created
	Removed []Removed
	Fallen  []Fall
	Spawned []Spawn
	Points  int
	// Board is a snapshot taken after the refill.
	Board *Grid
}

// Cascade is the full result of resolving one triggering match.
type Cascade struct {
	Steps  []Step
	Points int
}

// Depth returns the number of cycles resolved.
func (c Cascade) Depth() int {
	return len(c.Steps)
}

// Resolver runs cascades to exhaustion.
type Resolver struct {
	rules   Rules
	rng     Rand
	creator *SpecialCreator
}

// NewResolver returns a resolver using rules and rng.
func NewResolver(rules Rules, rng Rand) *Resolver {
	rules = rules.Normalize()
	return &Resolver{
		rules:   rules,
		rng:     rng,
		creator: NewSpecialCreator(rules, rng),
	}
}

// Rules returns the normalized rules in use.
func (r *Resolver) Rules() Rules {
	return r.rules
}

// Run resolves the match set and every cascade it triggers, mutating g.
// An empty initial set is a no-op. On ErrCascadeLimit the steps completed
// so far are returned alongside the error.
func (r *Resolver) Run(g *Grid, initial MatchSet) (Cascade, error) {
	var out Cascade
	ms := initial
	for i := 0; !ms.Empty(); i++ {
		if i >= r.rules.MaxCascades {
			return out, fmt.Errorf("%w after %d cycles", ErrCascadeLimit, i)
		}
		step := r.cycle(g, ms)
		step.Index = i
		out.Steps = append(out.Steps, step)
		out.Points += step.Points
		ms = FindMatches(g)
	}
	return out, nil
}

func (r *Resolver) cycle(g *Grid, ms MatchSet) Step {
	step := Step{Matched: ms.Coords()}

	reserved := make(map[Coord]bool)
	for _, grp := range Groups(FindRuns(g)) {
		if !groupMatched(grp, ms) {
			continue
		}
		tile, anchor, ok := r.creator.Create(grp)
		if !ok || reserved[anchor] {
			continue
		}
		reserved[anchor] = true
		step.Created = append(step.Created, Created{At: anchor, Tile: tile})
	}

	for _, c := range step.Matched {
		if reserved[c] {
			continue
		}
		t, ok := g.MustGet(c)
		if !ok {
			continue
		}
		step.Removed = append(step.Removed, Removed{At: c, Tile: t})
		step.Points += r.rules.Points.For(t.Special)
		g.Clear(c)
	}
	for i := range step.Created {
		cr := &step.Created[i]
		cr.Tile.Pos = cr.At
		g.Set(cr.At, cr.Tile)
	}

	step.Fallen = Settle(g)
	step.Spawned = Refill(g, r.rules.Palette, r.rng)
	step.Board = g.Clone()
	return step
}

func groupMatched(grp Group, ms MatchSet) bool {
	for _, c := range grp.Coords {
		if !ms.Has(c) {
			return false
		}
	}
	return true
}

// Settle drops tiles into the empty cells below them, one compaction per
// column from the bottom up, and repeats until no column has a tile
// floating above a gap.
func Settle(g *Grid) []Fall {
	var falls []Fall
	for !Stable(g) {
		for c := 0; c < g.Cols; c++ {
			write := g.Rows - 1
			for r := g.Rows - 1; r >= 0; r-- {
				from := C(r, c)
				t, ok := g.MustGet(from)
				if !ok {
					continue
				}
				if r != write {
					to := C(write, c)
					g.Swap(from, to)
					t.Pos = to
					falls = append(falls, Fall{From: from, To: to, Tile: t})
				}
				write--
			}
		}
	}
	return falls
}

// Stable reports whether no tile sits above an empty cell.
func Stable(g *Grid) bool {
	for c := 0; c < g.Cols; c++ {
		gap := false
		for r := g.Rows - 1; r >= 0; r-- {
			empty := g.Empty(C(r, c))
			if empty {
				gap = true
			} else if gap {
				return false
			}
		}
	}
	return true
}

// Refill deals a uniformly random plain tile into every empty cell,
// column by column from the top.
func Refill(g *Grid, palette int, rng Rand) []Spawn {
	kinds := Palette(palette)
	var spawned []Spawn
	for c := 0; c < g.Cols; c++ {
		for r := 0; r < g.Rows; r++ {
			at := C(r, c)
			if !g.Empty(at) {
				continue
			}
			t := NewTile(kinds[rng.Intn(len(kinds))])
			g.Set(at, t)
			t.Pos = at
			spawned = append(spawned, Spawn{At: at, Tile: t})
		}
	}
	return spawned
}
