package session

import (
	"sync"

	"github.com/vovakirdan/tui-match3/internal/games/match3/core"
	"github.com/vovakirdan/tui-match3/internal/games/match3/levels"
)

// LevelProvider returns the definition of level n. It must return the same
// definition for the same n and never fail; undefined levels are generated.
type LevelProvider interface {
	Level(n int) levels.Level
}

// ProgressStore persists the highest unlocked level. A fresh store reports 1.
type ProgressStore interface {
	HighestUnlocked() (int, error)
	SetHighestUnlocked(level int) error
}

// Attempt summarizes one finished try at a level.
type Attempt struct {
	Level     int
	Score     int
	Stars     int
	Won       bool
	MovesUsed int
}

// AttemptRecorder receives every finished attempt. Failures are logged and
// never end play.
type AttemptRecorder interface {
	RecordAttempt(a Attempt) error
}

// Cue names a sound the presentation layer may play.
type Cue string

const (
	CueClick         Cue = "click"
	CueSwap          Cue = "swap"
	CueInvalid       Cue = "invalid"
	CueMatch         Cue = "match"
	CueSpecial       Cue = "special"
	CueLevelComplete Cue = "level-complete"
	CueGameOver      Cue = "game-over"
	CueShuffle       Cue = "shuffle"
)

// Observer receives presentation events. Calls happen synchronously on the
// goroutine driving the session.
type Observer interface {
	// Cue signals an audio trigger.
	Cue(c Cue)
	// Cascade delivers one resolved cascade cycle in order.
	Cascade(step core.Step)
	// Selection reports a cell becoming selected or deselected.
	Selection(at core.Coord, selected bool)
}

type nopObserver struct{}

func (nopObserver) Cue(Cue)                    {}
func (nopObserver) Cascade(core.Step)          {}
func (nopObserver) Selection(core.Coord, bool) {}

// MemoryStore is a ProgressStore kept in memory.
type MemoryStore struct {
	mu      sync.Mutex
	highest int
}

// NewMemoryStore returns a store with only level 1 unlocked.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{highest: 1}
}

func (m *MemoryStore) HighestUnlocked() (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.highest, nil
}

func (m *MemoryStore) SetHighestUnlocked(level int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.highest = level
	return nil
}
