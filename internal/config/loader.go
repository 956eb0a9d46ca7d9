package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/vovakirdan/tui-match3/internal/core"
	"gopkg.in/yaml.v3"
)

const match3File = "match3.yaml"

// LoadMatch3 loads the match-3 configuration.
// Search order: customPath -> ~/.match3/configs/match3.yaml -> ./configs/match3.yaml -> embedded default.
// Fields missing from a file keep their default values.
func LoadMatch3(customPath string) (Match3Config, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return Match3Config{}, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := parseMatch3(data)
		if err != nil {
			return Match3Config{}, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath(match3File); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := parseMatch3(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", match3File)); err == nil {
		if cfg, err := parseMatch3(data); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := parseMatch3(defaultMatch3YAML)
	if err != nil {
		return DefaultMatch3Config(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

func parseMatch3(data []byte) (Match3Config, error) {
	cfg := DefaultMatch3Config()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".match3", "configs", filename)
}

// Validate reports every value the engine cannot play with.
func (c Match3Config) Validate() error {
	var errs []error

	e := c.Engine
	if e.Palette < 3 || e.Palette > 6 {
		errs = append(errs, fmt.Errorf("engine.palette %d outside 3..6", e.Palette))
	}
	if e.WrappedChance < 0 || e.WrappedChance > 1 {
		errs = append(errs, fmt.Errorf("engine.wrapped_chance %v outside 0..1", e.WrappedChance))
	}
	if e.RainbowSize != 0 && e.RainbowSize < 4 {
		errs = append(errs, fmt.Errorf("engine.rainbow_size %d must be 0 or at least 4", e.RainbowSize))
	}
	if e.MaxCascades <= 0 {
		errs = append(errs, fmt.Errorf("engine.max_cascades must be positive"))
	}

	for i, lvl := range c.Levels {
		n := i + 1
		if lvl.GridSize < 3 || lvl.GridSize > 12 {
			errs = append(errs, fmt.Errorf("levels[%d].grid_size %d outside 3..12", n, lvl.GridSize))
		}
		if lvl.Moves <= 0 {
			errs = append(errs, fmt.Errorf("levels[%d].moves must be positive", n))
		}
		if lvl.TimeLimit < 0 {
			errs = append(errs, fmt.Errorf("levels[%d].time_limit must not be negative", n))
		}
		if lvl.TargetScore <= 0 {
			errs = append(errs, fmt.Errorf("levels[%d].target_score must be positive", n))
		}
		if sc := lvl.SpecialChance; sc != nil && (*sc < 0 || *sc > 1) {
			errs = append(errs, fmt.Errorf("levels[%d].special_chance %v outside 0..1", n, *sc))
		}
	}

	p := c.Procedural
	if p.MinGrid < 3 || p.MaxGrid < p.MinGrid || p.MaxGrid > 12 {
		errs = append(errs, fmt.Errorf("procedural grid range %d..%d invalid", p.MinGrid, p.MaxGrid))
	}
	if p.GridEvery <= 0 {
		errs = append(errs, fmt.Errorf("procedural.grid_every must be positive"))
	}
	if p.ScorePerLevel <= 0 {
		errs = append(errs, fmt.Errorf("procedural.score_per_level must be positive"))
	}
	if p.BaseMoves <= 0 {
		errs = append(errs, fmt.Errorf("procedural.base_moves must be positive"))
	}
	if p.BaseTime <= 0 {
		errs = append(errs, fmt.Errorf("procedural.base_time must be positive"))
	}
	if p.MovesStep < 0 || p.TimeStep < 0 {
		errs = append(errs, fmt.Errorf("procedural moves_step and time_step must not be negative"))
	}

	for kind, name := range c.Theme.Tiles {
		if _, err := core.ParseColor(name); err != nil {
			errs = append(errs, fmt.Errorf("theme.tiles.%s: %w", kind, err))
		}
	}

	return errors.Join(errs...)
}
