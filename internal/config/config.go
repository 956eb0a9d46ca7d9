// Package config provides YAML-based configuration loading and difficulty
// presets for the match-3 game.
package config

// Match3Config contains all configuration for the match-3 game.
type Match3Config struct {
	Engine     EngineConfig     `yaml:"engine"`
	Levels     []LevelConfig    `yaml:"levels"`
	Procedural ProceduralConfig `yaml:"procedural"`
	Animation  AnimationConfig  `yaml:"animation"`
	Theme      ThemeConfig      `yaml:"theme"`
}

// EngineConfig defines board rules shared by every level.
type EngineConfig struct {
	Palette           int          `yaml:"palette"`        // Number of tile colors, 3..6
	WrappedChance     float64      `yaml:"wrapped_chance"` // Chance a plain 3-run leaves a wrapped tile
	RainbowSize       int          `yaml:"rainbow_size"`   // Straight run length that makes a rainbow; 0 disables
	Points            PointsConfig `yaml:"points"`
	MaxCascades       int          `yaml:"max_cascades"`
	ReshuffleAttempts int          `yaml:"reshuffle_attempts"`
	FillAttempts      int          `yaml:"fill_attempts"`
}

// PointsConfig is the score for removing one tile of each type.
type PointsConfig struct {
	Normal  int `yaml:"normal"`
	Striped int `yaml:"striped"`
	Wrapped int `yaml:"wrapped"`
	Bomb    int `yaml:"bomb"`
	Rainbow int `yaml:"rainbow"`
}

// LevelConfig is one entry of the hand-authored level table.
type LevelConfig struct {
	GridSize      int            `yaml:"grid_size"`
	Moves         int            `yaml:"moves"`
	TimeLimit     int            `yaml:"time_limit"` // Seconds; 0 means untimed
	TargetScore   int            `yaml:"target_score"`
	SpecialChance *float64       `yaml:"special_chance,omitempty"` // Unset inherits engine.wrapped_chance
	Objectives    map[string]int `yaml:"objectives"`
}

// ProceduralConfig holds the constants used to generate levels past the table.
type ProceduralConfig struct {
	ScorePerLevel     int     `yaml:"score_per_level"`
	BaseMoves         int     `yaml:"base_moves"`
	MovesStep         int     `yaml:"moves_step"` // Added every second level
	TimedAfter        int     `yaml:"timed_after"`
	BaseTime          int     `yaml:"base_time"`
	TimeStep          int     `yaml:"time_step"`
	MinGrid           int     `yaml:"min_grid"`
	MaxGrid           int     `yaml:"max_grid"`
	GridEvery         int     `yaml:"grid_every"`
	BaseSpecialChance float64 `yaml:"base_special_chance"`
	SpecialChanceStep float64 `yaml:"special_chance_step"`
	MaxSpecialChance  float64 `yaml:"max_special_chance"`
}

// AnimationConfig sets the length of each presentation phase in ticks.
type AnimationConfig struct {
	SwapTicks       int `yaml:"swap_ticks"`
	InvalidTicks    int `yaml:"invalid_ticks"`
	ClearTicks      int `yaml:"clear_ticks"`
	FallTicks       int `yaml:"fall_ticks"`
	LevelClearTicks int `yaml:"level_clear_ticks"`
}

// ThemeConfig maps tile kind names to screen color names.
type ThemeConfig struct {
	Tiles map[string]string `yaml:"tiles"`
}
