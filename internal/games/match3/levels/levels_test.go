package levels

import (
	"math"
	"reflect"
	"testing"

	"github.com/vovakirdan/tui-match3/internal/config"
)

func TestTableServesConfiguredLevels(t *testing.T) {
	tbl := Default()
	if tbl.Len() != 5 {
		t.Fatalf("Len() = %d, want 5", tbl.Len())
	}

	tests := []struct {
		n        int
		grid     int
		moves    int
		time     int
		target   int
		chance   float64
		goalKeys []string
	}{
		{1, 6, 20, 0, 1000, 0.1, []string{"score"}},
		{2, 7, 25, 0, 2000, 0.15, []string{"red", "score"}},
		{3, 7, 30, 120, 3000, 0.2, []string{"score", "special"}},
		{4, 8, 25, 180, 4000, 0.2, []string{"score", "wrapped"}},
		{5, 8, 30, 240, 5000, 0.25, []string{"bomb", "score", "striped"}},
	}
	for _, tt := range tests {
		lvl := tbl.Level(tt.n)
		if lvl.Number != tt.n || lvl.Generated {
			t.Errorf("level %d: Number=%d Generated=%v", tt.n, lvl.Number, lvl.Generated)
		}
		if lvl.GridSize != tt.grid || lvl.Moves != tt.moves || lvl.TimeLimit != tt.time || lvl.TargetScore != tt.target {
			t.Errorf("level %d = %+v", tt.n, lvl)
		}
		if got := lvl.WrappedChance(-1); got != tt.chance {
			t.Errorf("level %d chance = %v, want %v", tt.n, got, tt.chance)
		}
		var keys []string
		for _, g := range lvl.Goals {
			keys = append(keys, g.Name)
		}
		if !reflect.DeepEqual(keys, tt.goalKeys) {
			t.Errorf("level %d goals = %v, want %v", tt.n, keys, tt.goalKeys)
		}
		if lvl.Timed() != (tt.time > 0) {
			t.Errorf("level %d Timed() = %v", tt.n, lvl.Timed())
		}
	}

	if got := tbl.Level(0); got.Number != 1 {
		t.Errorf("Level(0).Number = %d, want 1", got.Number)
	}
}

func TestGeneratedLevels(t *testing.T) {
	tbl := Default()

	six := tbl.Level(6)
	want := Level{
		Number:      6,
		GridSize:    8,
		Moves:       35,
		TimeLimit:   210,
		TargetScore: 6000,
		Goals: []Goal{
			{Name: "red", Target: 17},
			{Name: "score", Target: 6000},
			{Name: "special", Target: 3},
			{Name: "wrapped", Target: 3},
		},
		Generated: true,
	}
	if got := six.WrappedChance(-1); math.Abs(got-0.28) > 1e-9 {
		t.Errorf("chance = %v, want 0.28", got)
	}
	six.SpecialChance = nil
	if !reflect.DeepEqual(six, want) {
		t.Errorf("Level(6) =\n%+v\nwant\n%+v", six, want)
	}

	seven := tbl.Level(7)
	if seven.TimeLimit != 240 || seven.Moves != 35 {
		t.Errorf("Level(7) = %+v", seven)
	}
	if seven.Goals[len(seven.Goals)-1] != (Goal{Name: "striped", Target: 3}) {
		t.Errorf("Level(7) goals = %v", seven.Goals)
	}

	if got := tbl.Level(30); got.WrappedChance(-1) != 0.4 || got.GridSize != 8 {
		t.Errorf("Level(30) should hit the caps, got %+v", got)
	}

	if !reflect.DeepEqual(tbl.Level(11), tbl.Level(11)) {
		t.Error("generated levels must be deterministic")
	}
}

func TestUnsetChanceInheritsEngine(t *testing.T) {
	cfg := config.DefaultMatch3Config()
	cfg.Levels[0].SpecialChance = nil
	tbl := NewTable(cfg)

	first := tbl.Level(1)
	if first.SpecialChance != nil {
		t.Fatalf("SpecialChance = %v, want unset", *first.SpecialChance)
	}
	if got := first.WrappedChance(0.7); got != 0.7 {
		t.Errorf("WrappedChance(0.7) = %v, want the engine value", got)
	}
	if got := tbl.Level(2).WrappedChance(0.7); got != 0.15 {
		t.Errorf("level 2 chance = %v, want its own 0.15", got)
	}

	// The served level does not alias the configuration.
	*tbl.Level(2).SpecialChance = 0.9
	if *cfg.Levels[1].SpecialChance != 0.15 {
		t.Error("changing a served level changed the table")
	}
}

func TestGenerateFromEmptyTable(t *testing.T) {
	cfg := config.DefaultMatch3Config()
	cfg.Levels = nil
	first := NewTable(cfg).Level(1)
	if !first.Generated || first.GridSize != 6 || first.Moves != 20 || first.TimeLimit != 0 {
		t.Errorf("Level(1) = %+v", first)
	}
	if len(first.Goals) != 1 || first.Goals[0].Name != GoalScore {
		t.Errorf("Level(1) goals = %v, want only score", first.Goals)
	}
}

func TestStars(t *testing.T) {
	tests := []struct {
		score, target, want int
	}{
		{0, 1000, 0},
		{999, 1000, 0},
		{1000, 1000, 1},
		{1199, 1000, 1},
		{1200, 1000, 2},
		{1499, 1000, 2},
		{1500, 1000, 3},
		{9000, 1000, 3},
		{100, 0, 0},
	}
	for _, tt := range tests {
		if got := Stars(tt.score, tt.target); got != tt.want {
			t.Errorf("Stars(%d, %d) = %d, want %d", tt.score, tt.target, got, tt.want)
		}
	}
}
