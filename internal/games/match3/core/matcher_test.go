package core_test

import (
	"math/rand"
	"testing"

	"github.com/vovakirdan/tui-match3/internal/games/match3/core"
)

func TestFindMatches(t *testing.T) {
	tests := []struct {
		name  string
		board []string
		want  []core.Coord
	}{
		{
			name:  "no runs",
			board: []string{"RGB", "GBR", "BRG"},
			want:  nil,
		},
		{
			name:  "horizontal three",
			board: []string{"RRRG", "GBGB", "BGBG"},
			want:  []core.Coord{core.C(0, 0), core.C(0, 1), core.C(0, 2)},
		},
		{
			name:  "vertical three",
			board: []string{"RGB", "RBG", "RGB"},
			want:  []core.Coord{core.C(0, 0), core.C(1, 0), core.C(2, 0)},
		},
		{
			name:  "run of four is one set",
			board: []string{"GGGG", "RBRB"},
			want:  []core.Coord{core.C(0, 0), core.C(0, 1), core.C(0, 2), core.C(0, 3)},
		},
		{
			name:  "crossing runs share a cell once",
			board: []string{"GRB", "RRR", "BRG"},
			want:  []core.Coord{core.C(0, 1), core.C(1, 0), core.C(1, 1), core.C(1, 2), core.C(2, 1)},
		},
		{
			name:  "gap breaks a run",
			board: []string{"RR.R"},
			want:  nil,
		},
		{
			name:  "two rows yield no vertical run",
			board: []string{"RG", "RG"},
			want:  nil,
		},
		{
			name:  "two columns yield no horizontal run",
			board: []string{"RR", "GB", "RR"},
			want:  nil,
		},
		{
			name:  "single cell",
			board: []string{"R"},
			want:  nil,
		},
		{
			name:  "rainbow in the middle",
			board: []string{"R*RG"},
			want:  []core.Coord{core.C(0, 0), core.C(0, 1), core.C(0, 2)},
		},
		{
			name:  "rainbow bridges only one color",
			board: []string{"R*GB"},
			want:  nil,
		},
		{
			name:  "two rainbows and a color",
			board: []string{"**BG"},
			want:  []core.Coord{core.C(0, 0), core.C(0, 1), core.C(0, 2)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := core.MustParse(tt.board...)
			got := core.FindMatches(g).Coords()
			if len(got) != len(tt.want) {
				t.Fatalf("FindMatches() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("FindMatches()[%d] = %v, want %v", i, got[i], tt.want[i])
				}
			}
			if core.HasMatch(g) != (len(tt.want) > 0) {
				t.Errorf("HasMatch() disagrees with FindMatches()")
			}
		})
	}
}

// bruteForceMatches marks every cell that lies in a horizontal or vertical
// line of at least three identical colors.
func bruteForceMatches(g *core.Grid) map[core.Coord]bool {
	out := make(map[core.Coord]bool)
	kindAt := func(r, c int) (core.Kind, bool) {
		t, ok := g.Get(core.C(r, c))
		return t.Kind, ok
	}
	for r := 0; r < g.Rows; r++ {
		for c := 0; c < g.Cols; c++ {
			k, ok := kindAt(r, c)
			if !ok {
				continue
			}
			// Horizontal extent through (r, c).
			left, right := c, c
			for left > 0 {
				if nk, ok := kindAt(r, left-1); ok && nk == k {
					left--
					continue
				}
				break
			}
			for right < g.Cols-1 {
				if nk, ok := kindAt(r, right+1); ok && nk == k {
					right++
					continue
				}
				break
			}
			up, down := r, r
			for up > 0 {
				if nk, ok := kindAt(up-1, c); ok && nk == k {
					up--
					continue
				}
				break
			}
			for down < g.Rows-1 {
				if nk, ok := kindAt(down+1, c); ok && nk == k {
					down++
					continue
				}
				break
			}
			if right-left+1 >= 3 || down-up+1 >= 3 {
				out[core.C(r, c)] = true
			}
		}
	}
	return out
}

func TestFindMatchesAgainstBruteForce(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 300; i++ {
		rows := 4 + rng.Intn(3)
		cols := 4 + rng.Intn(3)
		palette := 3 + rng.Intn(2)
		g := randomGrid(rng, rows, cols, palette)

		want := bruteForceMatches(g)
		got := core.FindMatches(g)

		if got.Len() != len(want) {
			t.Fatalf("grid %d: FindMatches found %d cells, brute force %d\n%s", i, got.Len(), len(want), g)
		}
		for c := range want {
			if !got.Has(c) {
				t.Fatalf("grid %d: missed %v\n%s", i, c, g)
			}
		}
	}
}

func TestFindRunsMatchesFindMatches(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	for i := 0; i < 200; i++ {
		g := randomGrid(rng, 6, 6, 4)
		ms := core.FindMatches(g)

		covered := make(map[core.Coord]bool)
		for _, run := range core.FindRuns(g) {
			if run.Len() < 3 {
				t.Fatalf("run shorter than three: %v", run)
			}
			for _, c := range run.Coords {
				covered[c] = true
			}
		}
		if len(covered) != ms.Len() {
			t.Fatalf("grid %d: runs cover %d cells, matches %d\n%s", i, len(covered), ms.Len(), g)
		}
	}
}

func TestSpecialExpansion(t *testing.T) {
	t.Run("striped horizontal clears its row", func(t *testing.T) {
		g := core.MustParse(
			"GBGBG",
			"RRRYP",
			"BGBGB",
		)
		g.Set(core.C(1, 1), core.NewSpecial(core.KindRed, core.SpecialStripedH))
		ms := core.FindMatches(g)
		if ms.Len() != 5 {
			t.Fatalf("Len() = %d, want 5: %v", ms.Len(), ms.Coords())
		}
		for col := 0; col < 5; col++ {
			if !ms.Has(core.C(1, col)) {
				t.Errorf("row cell (1,%d) not cleared", col)
			}
		}
	})

	t.Run("striped vertical clears its column", func(t *testing.T) {
		g := core.MustParse(
			"GBG",
			"RRR",
			"BGB",
		)
		g.Set(core.C(1, 0), core.NewSpecial(core.KindRed, core.SpecialStripedV))
		ms := core.FindMatches(g)
		for _, c := range []core.Coord{core.C(0, 0), core.C(2, 0), core.C(1, 1), core.C(1, 2)} {
			if !ms.Has(c) {
				t.Errorf("missing %v", c)
			}
		}
		if ms.Len() != 5 {
			t.Errorf("Len() = %d, want 5", ms.Len())
		}
	})

	t.Run("wrapped clips at the corner", func(t *testing.T) {
		g := core.MustParse(
			"RRRG",
			"GBGB",
			"BGBG",
		)
		g.Set(core.C(0, 0), core.NewSpecial(core.KindRed, core.SpecialWrapped))
		ms := core.FindMatches(g)
		// Run (0,0)-(0,2) plus the 2x2 corner block.
		want := []core.Coord{core.C(0, 0), core.C(0, 1), core.C(0, 2), core.C(1, 0), core.C(1, 1)}
		if ms.Len() != len(want) {
			t.Fatalf("Len() = %d, want %d: %v", ms.Len(), len(want), ms.Coords())
		}
		for _, c := range want {
			if !ms.Has(c) {
				t.Errorf("missing %v", c)
			}
		}
	})

	t.Run("bomb clears five by five", func(t *testing.T) {
		g := core.MustParse(
			"GBGBGB",
			"BGBGBG",
			"GRRRGB",
			"BGBGBG",
			"GBGBGB",
			"BGBGBG",
		)
		g.Set(core.C(2, 2), core.NewSpecial(core.KindRed, core.SpecialBomb))
		ms := core.FindMatches(g)
		for r := 0; r <= 4; r++ {
			for c := 0; c <= 4; c++ {
				if !ms.Has(core.C(r, c)) {
					t.Errorf("missing %v", core.C(r, c))
				}
			}
		}
		if ms.Len() != 25 {
			t.Errorf("Len() = %d, want 25", ms.Len())
		}
	})

	t.Run("specials chain", func(t *testing.T) {
		g := core.MustParse(
			"GBGBG",
			"BGBGB",
			"RRRYP",
			"BGBGB",
			"GBGBG",
		)
		g.Set(core.C(2, 0), core.NewSpecial(core.KindRed, core.SpecialStripedH))
		g.Set(core.C(2, 4), core.NewSpecial(core.KindPurple, core.SpecialStripedV))
		ms := core.FindMatches(g)
		for r := 0; r < 5; r++ {
			if !ms.Has(core.C(r, 4)) {
				t.Errorf("chained column cell (%d,4) not cleared", r)
			}
		}
		if ms.Len() != 9 {
			t.Errorf("Len() = %d, want 9", ms.Len())
		}
	})

	t.Run("unmatched special does nothing", func(t *testing.T) {
		g := core.MustParse(
			"RGB",
			"GBR",
			"BRG",
		)
		g.Set(core.C(1, 1), core.NewSpecial(core.KindBlue, core.SpecialBomb))
		if ms := core.FindMatches(g); !ms.Empty() {
			t.Errorf("FindMatches() = %v, want empty", ms.Coords())
		}
	})
}

func TestGroupsJoinShapes(t *testing.T) {
	g := core.MustParse(
		"RRR",
		"R.G",
		"RGB",
	)
	groups := core.Groups(core.FindRuns(g))
	if len(groups) != 1 {
		t.Fatalf("got %d groups, want 1", len(groups))
	}
	grp := groups[0]
	if grp.Kind != core.KindRed {
		t.Errorf("Kind = %v, want red", grp.Kind)
	}
	if grp.Size() != 5 {
		t.Errorf("Size() = %d, want 5", grp.Size())
	}
	if !grp.Shaped() {
		t.Error("L shape should join a horizontal and a vertical run")
	}
	if grp.Longest != 3 {
		t.Errorf("Longest = %d, want 3", grp.Longest)
	}
}

func TestFindRunsWithRainbowRestart(t *testing.T) {
	g := core.MustParse("R*GG")
	runs := core.FindRuns(g)
	if len(runs) != 1 {
		t.Fatalf("got %d runs, want 1: %v", len(runs), runs)
	}
	if runs[0].Kind != core.KindGreen || runs[0].Len() != 3 {
		t.Errorf("run = %v %d, want green of 3", runs[0].Kind, runs[0].Len())
	}
	if runs[0].Coords[0] != core.C(0, 1) {
		t.Errorf("run starts at %v, want (0,1)", runs[0].Coords[0])
	}
}
