// Package levels turns the configured level table into playable level
// definitions and generates levels past the end of the table.
package levels

import (
	"math"
	"sort"

	"github.com/vovakirdan/tui-match3/internal/config"
)

// Objective names understood by the session. Color names ("red", "green",
// ...) count cleared tiles of that color.
const (
	GoalScore   = "score"
	GoalSpecial = "special"
	GoalStriped = "striped"
	GoalWrapped = "wrapped"
	GoalBomb    = "bomb"
	GoalRainbow = "rainbow"
)

// Goal is one objective and its target count.
type Goal struct {
	Name   string
	Target int
}

// Level is a fully resolved level definition.
type Level struct {
	Number        int
	GridSize      int
	Moves         int
	TimeLimit     int // Seconds; 0 means untimed
	TargetScore   int
	SpecialChance *float64 // Chance a plain 3-run leaves a wrapped tile; nil keeps the engine's
	Goals         []Goal   // Sorted by name
	Generated     bool     // True when produced by the procedural generator
}

// Timed reports whether the level has a countdown.
func (l Level) Timed() bool {
	return l.TimeLimit > 0
}

// WrappedChance returns the level's special chance, or engine when the
// level does not set one.
func (l Level) WrappedChance(engine float64) float64 {
	if l.SpecialChance == nil {
		return engine
	}
	return *l.SpecialChance
}

// Table serves levels from a configured list, generating the rest.
type Table struct {
	entries []config.LevelConfig
	proc    config.ProceduralConfig
}

// NewTable builds a provider from the level and procedural sections of cfg.
func NewTable(cfg config.Match3Config) *Table {
	return &Table{entries: cfg.Levels, proc: cfg.Procedural}
}

// Default returns a table over the built-in configuration.
func Default() *Table {
	return NewTable(config.DefaultMatch3Config())
}

// Len returns the number of hand-authored levels.
func (t *Table) Len() int {
	return len(t.entries)
}

// Level returns level n (1-based). Numbers below 1 are treated as 1.
// The same n always yields the same definition.
func (t *Table) Level(n int) Level {
	if n < 1 {
		n = 1
	}
	if n <= len(t.entries) {
		e := t.entries[n-1]
		var chance *float64
		if e.SpecialChance != nil {
			v := *e.SpecialChance
			chance = &v
		}
		return Level{
			Number:        n,
			GridSize:      e.GridSize,
			Moves:         e.Moves,
			TimeLimit:     e.TimeLimit,
			TargetScore:   e.TargetScore,
			SpecialChance: chance,
			Goals:         goalsFrom(e.Objectives),
		}
	}
	return Generate(n, t.proc)
}

// Generate builds level n from the procedural constants.
func Generate(n int, p config.ProceduralConfig) Level {
	target := p.ScorePerLevel * n
	chance := math.Min(p.MaxSpecialChance, p.BaseSpecialChance+float64(n)*p.SpecialChanceStep)
	lvl := Level{
		Number:        n,
		GridSize:      min(p.MaxGrid, p.MinGrid+n/max(p.GridEvery, 1)),
		Moves:         p.BaseMoves + (n/2)*p.MovesStep,
		TargetScore:   target,
		SpecialChance: &chance,
		Generated:     true,
	}
	if n > p.TimedAfter {
		lvl.TimeLimit = p.BaseTime + (n-p.TimedAfter)*p.TimeStep
	}

	goals := map[string]int{GoalScore: target}
	if n/2 > 0 {
		goals[GoalSpecial] = n / 2
	}
	if n%2 == 0 {
		goals["red"] = 5 + 2*n
	}
	switch n % 3 {
	case 0:
		goals[GoalWrapped] = n / 2
	case 1:
		goals[GoalStriped] = n / 2
	}
	lvl.Goals = goalsFrom(goals)
	return lvl
}

func goalsFrom(m map[string]int) []Goal {
	goals := make([]Goal, 0, len(m))
	for name, target := range m {
		if target <= 0 {
			continue
		}
		goals = append(goals, Goal{Name: name, Target: target})
	}
	sort.Slice(goals, func(i, j int) bool { return goals[i].Name < goals[j].Name })
	return goals
}

// Stars rates a final score against the level target: 3 at 150%, 2 at 120%,
// 1 at 100%, otherwise 0.
func Stars(score, target int) int {
	if target <= 0 {
		return 0
	}
	switch {
	case 2*score >= 3*target:
		return 3
	case 5*score >= 6*target:
		return 2
	case score >= target:
		return 1
	default:
		return 0
	}
}
