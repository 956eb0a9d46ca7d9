package config

import (
	_ "embed"
)

//go:embed defaults/match3.yaml
var defaultMatch3YAML []byte

// DefaultMatch3Config returns the default match-3 configuration.
// It mirrors defaults/match3.yaml and is used if the embedded file fails to parse.
func DefaultMatch3Config() Match3Config {
	return Match3Config{
		Engine: EngineConfig{
			Palette:       6,
			WrappedChance: 0.1,
			RainbowSize:   0,
			Points: PointsConfig{
				Normal:  10,
				Striped: 30,
				Wrapped: 60,
				Bomb:    100,
				Rainbow: 200,
			},
			MaxCascades:       100,
			ReshuffleAttempts: 10,
			FillAttempts:      1000,
		},
		Levels: []LevelConfig{
			{GridSize: 6, Moves: 20, TimeLimit: 0, TargetScore: 1000, SpecialChance: chance(0.1),
				Objectives: map[string]int{"score": 1000}},
			{GridSize: 7, Moves: 25, TimeLimit: 0, TargetScore: 2000, SpecialChance: chance(0.15),
				Objectives: map[string]int{"score": 2000, "red": 10}},
			{GridSize: 7, Moves: 30, TimeLimit: 120, TargetScore: 3000, SpecialChance: chance(0.2),
				Objectives: map[string]int{"score": 3000, "special": 5}},
			{GridSize: 8, Moves: 25, TimeLimit: 180, TargetScore: 4000, SpecialChance: chance(0.2),
				Objectives: map[string]int{"score": 4000, "wrapped": 3}},
			{GridSize: 8, Moves: 30, TimeLimit: 240, TargetScore: 5000, SpecialChance: chance(0.25),
				Objectives: map[string]int{"score": 5000, "striped": 5, "bomb": 2}},
		},
		Procedural: ProceduralConfig{
			ScorePerLevel:     1000,
			BaseMoves:         20,
			MovesStep:         5,
			TimedAfter:        5,
			BaseTime:          180,
			TimeStep:          30,
			MinGrid:           6,
			MaxGrid:           8,
			GridEvery:         3,
			BaseSpecialChance: chance(0.1),
			SpecialChanceStep: 0.03,
			MaxSpecialChance:  0.4,
		},
		Animation: AnimationConfig{
			SwapTicks:       6,
			InvalidTicks:    8,
			ClearTicks:      8,
			FallTicks:       6,
			LevelClearTicks: 90, // 3 seconds at 30fps
		},
		Theme: ThemeConfig{
			Tiles: map[string]string{
				"red":     "bright-red",
				"green":   "bright-green",
				"blue":    "bright-blue",
				"yellow":  "bright-yellow",
				"purple":  "bright-magenta",
				"cyan":    "bright-cyan",
				"rainbow": "bright-white",
			},
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultMatch3YAML
}

func chance(v float64) *float64 { return &v }
