// Package session drives one player through match-3 levels: it owns the
// board for the current attempt, turns input into swaps, runs cascades,
// keeps score, moves and time, and decides wins and losses.
//
// A Session is not safe for concurrent use. Presentation layers feed it
// from a single update loop.
package session

import (
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"
	"github.com/vovakirdan/tui-match3/internal/games/match3/core"
	"github.com/vovakirdan/tui-match3/internal/games/match3/levels"
)

// State is the session lifecycle position.
type State int

const (
	StateIdle State = iota
	StatePlaying
	StatePaused
	StateEnded
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StatePlaying:
		return "playing"
	case StatePaused:
		return "paused"
	case StateEnded:
		return "ended"
	default:
		return "unknown"
	}
}

// Outcome is how an ended attempt finished.
type Outcome int

const (
	OutcomeNone Outcome = iota
	OutcomeWin
	OutcomeLoss
)

func (o Outcome) String() string {
	switch o {
	case OutcomeWin:
		return "win"
	case OutcomeLoss:
		return "loss"
	default:
		return "none"
	}
}

// Option configures a Session.
type Option func(*Session)

// WithStore sets where unlocked progress is kept.
func WithStore(st ProgressStore) Option {
	return func(s *Session) { s.store = st }
}

// WithRecorder sets where finished attempts are reported.
func WithRecorder(r AttemptRecorder) Option {
	return func(s *Session) { s.recorder = r }
}

// WithObserver sets the receiver of cues, cascade steps and selection changes.
func WithObserver(o Observer) Option {
	return func(s *Session) { s.obs = o }
}

// WithLogger sets the logger. Sessions log nothing by default.
func WithLogger(l *log.Logger) Option {
	return func(s *Session) { s.logger = l }
}

// WithRand sets the random source for dealing, refills and special chances.
func WithRand(r core.Rand) Option {
	return func(s *Session) { s.rng = r }
}

// WithRules sets the board rules. A level that sets its own special chance
// overrides WrappedChance.
func WithRules(r core.Rules) Option {
	return func(s *Session) { s.rules = r }
}

// Session is one player's run through the levels.
type Session struct {
	levels   LevelProvider
	store    ProgressStore
	recorder AttemptRecorder
	obs      Observer
	logger   *log.Logger
	rng      core.Rand
	rules    core.Rules

	resolver *core.Resolver
	shuffler *core.Shuffler

	state   State
	outcome Outcome
	level   levels.Level
	grid    *core.Grid

	score     int
	movesLeft int
	timeLeft  int

	selected    core.Coord
	hasSelected bool

	resolving bool
	held      bool

	counts     map[string]int
	swaps      int
	reshuffles int
}

// New returns an idle session serving levels from provider.
func New(provider LevelProvider, opts ...Option) *Session {
	s := &Session{
		levels: provider,
		store:  NewMemoryStore(),
		obs:    nopObserver{},
		logger: log.New(io.Discard),
		rules:  core.DefaultRules(),
		counts: make(map[string]int),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.rng == nil {
		s.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return s
}

// Start begins an attempt at level n from any state. The dealt board has no
// runs and at least one valid move.
func (s *Session) Start(n int) {
	lvl := s.levels.Level(n)

	rules := s.rules
	rules.WrappedChance = lvl.WrappedChance(s.rules.WrappedChance)
	s.resolver = core.NewResolver(rules, s.rng)
	s.shuffler = core.NewShuffler(rules, s.rng)

	s.grid = core.NewGrid(lvl.GridSize, lvl.GridSize)
	fill := s.shuffler.Fill(s.grid)
	if !core.HasAnyValidMove(s.grid) {
		s.shuffler.Reshuffle(s.grid)
	}

	s.level = lvl
	s.score = 0
	s.movesLeft = lvl.Moves
	s.timeLeft = lvl.TimeLimit
	s.state = StatePlaying
	s.outcome = OutcomeNone
	s.hasSelected = false
	s.resolving = false
	s.held = false
	s.counts = make(map[string]int)
	s.swaps = 0
	s.reshuffles = 0

	s.logger.Debug("level started",
		"level", lvl.Number,
		"grid", lvl.GridSize,
		"moves", lvl.Moves,
		"time", lvl.TimeLimit,
		"target", lvl.TargetScore,
		"fill_attempts", fill.Attempts,
	)
}

// Restart begins the current level again. It does nothing before the first Start.
func (s *Session) Restart() {
	if s.grid == nil {
		return
	}
	s.Start(s.level.Number)
}

// NextLevel starts the following level after a win and reports whether it did.
func (s *Session) NextLevel() bool {
	if s.state != StateEnded || s.outcome != OutcomeWin {
		return false
	}
	s.Start(s.level.Number + 1)
	return true
}

// Pause suspends input and the countdown.
func (s *Session) Pause() {
	if s.state == StatePlaying {
		s.state = StatePaused
	}
}

// Resume continues a paused attempt.
func (s *Session) Resume() {
	if s.state == StatePaused {
		s.state = StatePlaying
	}
}

// Quit abandons the attempt and returns to idle. Unlocked progress is kept.
func (s *Session) Quit() {
	if s.state == StateIdle {
		return
	}
	s.clearSelection()
	s.state = StateIdle
	s.outcome = OutcomeNone
	s.resolving = false
	s.held = false
}

// Tick advances the countdown by one second on timed levels.
func (s *Session) Tick() {
	if s.state != StatePlaying || !s.level.Timed() || s.timeLeft <= 0 {
		return
	}
	s.timeLeft--
	if s.timeLeft == 0 {
		s.evaluateEnd()
	}
}

// Hold marks the presentation layer as busy animating; input is ignored
// until Release.
func (s *Session) Hold() { s.held = true }

// Release lets input through again after Hold.
func (s *Session) Release() { s.held = false }

// Busy reports whether input would be ignored because a swap is being
// resolved or the presentation layer holds the session.
func (s *Session) Busy() bool {
	return s.resolving || s.held
}

// State returns the lifecycle state.
func (s *Session) State() State { return s.state }

// Outcome returns how the last attempt ended, or OutcomeNone while it runs.
func (s *Session) Outcome() Outcome { return s.outcome }

// Level returns the definition of the current level.
func (s *Session) Level() levels.Level { return s.level }

// Score returns the points earned in the current attempt.
func (s *Session) Score() int { return s.score }

// MovesLeft returns the remaining move budget.
func (s *Session) MovesLeft() int { return s.movesLeft }

// TimeLeft returns the remaining seconds on timed levels.
func (s *Session) TimeLeft() int { return s.timeLeft }

// Swaps returns the number of committed swaps in the current attempt.
func (s *Session) Swaps() int { return s.swaps }

// Reshuffles returns how many deadlocks were broken in the current attempt.
func (s *Session) Reshuffles() int { return s.reshuffles }

// Stars rates the current score against the level target.
func (s *Session) Stars() int {
	return levels.Stars(s.score, s.level.TargetScore)
}

// Board returns a copy of the current grid, or nil before Start.
func (s *Session) Board() *core.Grid {
	if s.grid == nil {
		return nil
	}
	return s.grid.Clone()
}

// Selection returns the pending selected cell.
func (s *Session) Selection() (core.Coord, bool) {
	return s.selected, s.hasSelected
}

// GoalProgress is the current count toward one level objective.
type GoalProgress struct {
	levels.Goal
	Current int
}

// Done reports whether the objective is met.
func (g GoalProgress) Done() bool {
	return g.Current >= g.Target
}

// Goals returns progress on each objective of the current level. Objectives
// are informational; only the target score decides a win.
func (s *Session) Goals() []GoalProgress {
	out := make([]GoalProgress, 0, len(s.level.Goals))
	for _, g := range s.level.Goals {
		cur := s.counts[g.Name]
		if g.Name == levels.GoalScore {
			cur = s.score
		}
		out = append(out, GoalProgress{Goal: g, Current: cur})
	}
	return out
}

// Hint returns a swap that would make a run.
func (s *Session) Hint() (core.Move, bool) {
	if s.state != StatePlaying || s.grid == nil {
		return core.Move{}, false
	}
	moves := core.ValidMoves(s.grid)
	if len(moves) == 0 {
		return core.Move{}, false
	}
	return moves[0], true
}

// Unlocked returns the highest level the player may start, at least 1.
func (s *Session) Unlocked() int {
	n, err := s.store.HighestUnlocked()
	if err != nil {
		s.logger.Warn("failed to read progress", "err", err)
		return 1
	}
	return max(n, 1)
}
