package config

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := LoadMatch3("")
	if err != nil {
		t.Fatalf("LoadMatch3() failed: %v", err)
	}
	if !reflect.DeepEqual(cfg, DefaultMatch3Config()) {
		t.Errorf("embedded YAML and DefaultMatch3Config() differ:\n%+v\n%+v", cfg, DefaultMatch3Config())
	}
	if err := DefaultMatch3Config().Validate(); err != nil {
		t.Errorf("defaults do not validate: %v", err)
	}
}

func TestLoadMatch3CustomPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	data := `
engine:
  palette: 4
levels:
  - grid_size: 5
    moves: 9
    target_score: 300
    special_chance: 0.5
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadMatch3(path)
	if err != nil {
		t.Fatalf("LoadMatch3() failed: %v", err)
	}
	if cfg.Engine.Palette != 4 {
		t.Errorf("Palette = %d, want 4", cfg.Engine.Palette)
	}
	// Unset fields keep their defaults.
	if cfg.Engine.Points.Bomb != 100 || cfg.Animation.SwapTicks != 6 {
		t.Errorf("defaults lost: %+v %+v", cfg.Engine.Points, cfg.Animation)
	}
	if len(cfg.Levels) != 1 || cfg.Levels[0].Moves != 9 || cfg.Levels[0].TimeLimit != 0 {
		t.Errorf("Levels = %+v", cfg.Levels)
	}
	if sc := cfg.Levels[0].SpecialChance; sc == nil || *sc != 0.5 {
		t.Errorf("SpecialChance = %v, want 0.5", sc)
	}
}

func TestLevelWithoutChanceStaysUnset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	data := `
engine:
  wrapped_chance: 1
levels:
  - grid_size: 6
    moves: 10
    target_score: 500
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadMatch3(path)
	if err != nil {
		t.Fatalf("LoadMatch3() failed: %v", err)
	}
	if cfg.Levels[0].SpecialChance != nil {
		t.Errorf("SpecialChance = %v, want unset", *cfg.Levels[0].SpecialChance)
	}
	if cfg.Engine.WrappedChance != 1 {
		t.Errorf("WrappedChance = %v, want 1", cfg.Engine.WrappedChance)
	}
}

func TestLoadMatch3UserDirectory(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	dir := filepath.Join(home, ".match3", "configs")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "match3.yaml"), []byte("engine:\n  wrapped_chance: 0.5\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadMatch3("")
	if err != nil {
		t.Fatalf("LoadMatch3() failed: %v", err)
	}
	if cfg.Engine.WrappedChance != 0.5 {
		t.Errorf("WrappedChance = %v, want 0.5 from the user file", cfg.Engine.WrappedChance)
	}
}

func TestLoadMatch3Errors(t *testing.T) {
	dir := t.TempDir()

	if _, err := LoadMatch3(filepath.Join(dir, "missing.yaml")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("missing file error = %v, want ErrNotExist", err)
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("engine: [1, 2"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadMatch3(bad); err == nil || !strings.Contains(err.Error(), "failed to parse config") {
		t.Errorf("malformed YAML error = %v", err)
	}

	invalid := filepath.Join(dir, "invalid.yaml")
	if err := os.WriteFile(invalid, []byte("engine:\n  palette: 9\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadMatch3(invalid); err == nil || !strings.Contains(err.Error(), "engine.palette") {
		t.Errorf("invalid palette error = %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Match3Config)
		want   string
	}{
		{"wrapped chance", func(c *Match3Config) { c.Engine.WrappedChance = 1.5 }, "wrapped_chance"},
		{"rainbow size", func(c *Match3Config) { c.Engine.RainbowSize = 2 }, "rainbow_size"},
		{"grid size", func(c *Match3Config) { c.Levels[1].GridSize = 2 }, "levels[2].grid_size"},
		{"moves", func(c *Match3Config) { c.Levels[0].Moves = 0 }, "levels[1].moves"},
		{"target", func(c *Match3Config) { c.Levels[4].TargetScore = -1 }, "levels[5].target_score"},
		{"procedural grid", func(c *Match3Config) { c.Procedural.MaxGrid = 4 }, "procedural grid"},
		{"score per level", func(c *Match3Config) { c.Procedural.ScorePerLevel = 0 }, "procedural.score_per_level"},
		{"base moves", func(c *Match3Config) { c.Procedural.BaseMoves = -5 }, "procedural.base_moves"},
		{"base time", func(c *Match3Config) { c.Procedural.BaseTime = 0 }, "procedural.base_time"},
		{"time step", func(c *Match3Config) { c.Procedural.TimeStep = -1 }, "time_step"},
		{"level chance", func(c *Match3Config) { v := 2.0; c.Levels[2].SpecialChance = &v }, "levels[3].special_chance"},
		{"theme color", func(c *Match3Config) { c.Theme.Tiles["red"] = "crimson" }, "theme.tiles.red"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultMatch3Config()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Validate() = %v, want mention of %q", err, tt.want)
			}
		})
	}
}

func TestParseDifficulty(t *testing.T) {
	tests := []struct {
		in      string
		want    DifficultyPreset
		wantErr bool
	}{
		{"", DifficultyNormal, false},
		{"easy", DifficultyEasy, false},
		{" HARD ", DifficultyHard, false},
		{"nightmare", "", true},
	}
	for _, tt := range tests {
		got, err := ParseDifficulty(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseDifficulty(%q) error = %v", tt.in, err)
			continue
		}
		if tt.wantErr && !errors.Is(err, ErrUnknownPreset) {
			t.Errorf("ParseDifficulty(%q) error = %v, want ErrUnknownPreset", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("ParseDifficulty(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestApplyMatch3Preset(t *testing.T) {
	t.Run("easy", func(t *testing.T) {
		cfg := DefaultMatch3Config()
		if err := ApplyMatch3Preset(&cfg, DifficultyEasy); err != nil {
			t.Fatal(err)
		}
		first := cfg.Levels[0]
		if first.Moves != 25 || first.TimeLimit != 0 || first.TargetScore != 800 {
			t.Errorf("level 1 = %+v", first)
		}
		if first.Objectives["score"] != 800 {
			t.Errorf("score objective = %d, want 800", first.Objectives["score"])
		}
		if cfg.Levels[2].TimeLimit != 180 {
			t.Errorf("level 3 time = %d, want 180", cfg.Levels[2].TimeLimit)
		}
		if cfg.Procedural.BaseMoves != 25 || cfg.Procedural.ScorePerLevel != 800 {
			t.Errorf("procedural = %+v", cfg.Procedural)
		}
	})

	t.Run("hard", func(t *testing.T) {
		cfg := DefaultMatch3Config()
		if err := ApplyMatch3Preset(&cfg, DifficultyHard); err != nil {
			t.Fatal(err)
		}
		if lvl := cfg.Levels[3]; lvl.Moves != 20 || lvl.TimeLimit != 150 || lvl.TargetScore != 5000 {
			t.Errorf("level 4 = %+v", lvl)
		}
	})

	t.Run("normal leaves levels alone", func(t *testing.T) {
		cfg := DefaultMatch3Config()
		if err := ApplyMatch3Preset(&cfg, DifficultyNormal); err != nil {
			t.Fatal(err)
		}
		if !reflect.DeepEqual(cfg, DefaultMatch3Config()) {
			t.Error("normal preset changed the config")
		}
	})

	t.Run("unknown", func(t *testing.T) {
		cfg := DefaultMatch3Config()
		if err := ApplyMatch3Preset(&cfg, "fixed"); !errors.Is(err, ErrUnknownPreset) {
			t.Errorf("error = %v, want ErrUnknownPreset", err)
		}
	})
}
