package core_test

import (
	"math/rand"

	"github.com/vovakirdan/tui-match3/internal/games/match3/core"
)

// scriptedRand replays fixed values, then defers to a seeded source.
type scriptedRand struct {
	ints     []int
	floats   []float64
	fallback *rand.Rand
}

func newScripted(ints []int, floats []float64) *scriptedRand {
	return &scriptedRand{ints: ints, floats: floats, fallback: rand.New(rand.NewSource(1))}
}

func (s *scriptedRand) Intn(n int) int {
	if len(s.ints) > 0 {
		v := s.ints[0] % n
		s.ints = s.ints[1:]
		return v
	}
	return s.fallback.Intn(n)
}

func (s *scriptedRand) Float64() float64 {
	if len(s.floats) > 0 {
		v := s.floats[0]
		s.floats = s.floats[1:]
		return v
	}
	return s.fallback.Float64()
}

// constRand always returns the same values.
type constRand struct {
	i int
	f float64
}

func (c constRand) Intn(n int) int   { return c.i % n }
func (c constRand) Float64() float64 { return c.f }

// randomGrid deals colors from the first palette kinds with no regard for runs.
func randomGrid(rng *rand.Rand, rows, cols, palette int) *core.Grid {
	g := core.NewGrid(rows, cols)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			g.Set(core.C(r, c), core.NewTile(core.Kind(rng.Intn(palette))))
		}
	}
	return g
}
