package config

import (
	"errors"
	"fmt"
	"strings"
)

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// ErrUnknownPreset is returned for a difficulty name that is not a preset.
var ErrUnknownPreset = errors.New("unknown difficulty preset")

// ParseDifficulty resolves a preset name. The empty string means normal.
func ParseDifficulty(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(strings.ToLower(strings.TrimSpace(s))); p {
	case "":
		return DifficultyNormal, nil
	case DifficultyEasy, DifficultyNormal, DifficultyHard:
		return p, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownPreset, s)
	}
}

// presetTuning is how a preset shifts the level budget.
type presetTuning struct {
	moves      int     // Added to every level's move budget
	time       int     // Seconds added to timed levels
	targetMult float64 // Applied to target scores
}

var presets = map[DifficultyPreset]presetTuning{
	DifficultyEasy:   {moves: 5, time: 60, targetMult: 0.8},
	DifficultyNormal: {moves: 0, time: 0, targetMult: 1.0},
	DifficultyHard:   {moves: -5, time: -30, targetMult: 1.25},
}

const (
	minMoves = 5
	minTime  = 30
)

// ApplyMatch3Preset adjusts move budgets, time limits and target scores of
// both the level table and the procedural generator. Untimed levels stay untimed.
func ApplyMatch3Preset(cfg *Match3Config, preset DifficultyPreset) error {
	tune, ok := presets[preset]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownPreset, string(preset))
	}

	for i := range cfg.Levels {
		lvl := &cfg.Levels[i]
		lvl.Moves = max(lvl.Moves+tune.moves, minMoves)
		if lvl.TimeLimit > 0 {
			lvl.TimeLimit = max(lvl.TimeLimit+tune.time, minTime)
		}
		lvl.TargetScore = scaleTarget(lvl.TargetScore, tune.targetMult)
		if _, ok := lvl.Objectives["score"]; ok {
			lvl.Objectives["score"] = lvl.TargetScore
		}
	}

	p := &cfg.Procedural
	p.BaseMoves = max(p.BaseMoves+tune.moves, minMoves)
	p.BaseTime = max(p.BaseTime+tune.time, minTime)
	p.ScorePerLevel = scaleTarget(p.ScorePerLevel, tune.targetMult)
	return nil
}

// scaleTarget multiplies and rounds to the nearest 50 points.
func scaleTarget(target int, mult float64) int {
	scaled := int(float64(target)*mult/50+0.5) * 50
	return max(scaled, 50)
}
