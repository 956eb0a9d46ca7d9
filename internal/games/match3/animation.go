package match3

import (
	"github.com/vovakirdan/tui-match3/internal/config"
	"github.com/vovakirdan/tui-match3/internal/games/match3/core"
	"github.com/vovakirdan/tui-match3/internal/games/match3/session"
)

// AnimationPhase represents what the current animation frame shows.
type AnimationPhase int

const (
	PhaseNone AnimationPhase = iota
	PhaseSwap
	PhaseInvalid
	PhaseClear
	PhaseFall
	PhaseShuffle
)

func (p AnimationPhase) String() string {
	switch p {
	case PhaseSwap:
		return "swap"
	case PhaseInvalid:
		return "invalid"
	case PhaseClear:
		return "clear"
	case PhaseFall:
		return "fall"
	case PhaseShuffle:
		return "shuffle"
	default:
		return "none"
	}
}

// frame is one held picture of the board.
type frame struct {
	phase  AnimationPhase
	board  *core.Grid
	marked core.MatchSet
	ticks  int
}

// animator plays frames in order, each for its number of ticks.
type animator struct {
	frames  []frame
	elapsed int
}

func (a *animator) start(frames []frame) {
	a.frames = frames
	a.elapsed = 0
}

func (a *animator) stop() {
	a.frames = nil
	a.elapsed = 0
}

func (a *animator) active() bool {
	return len(a.frames) > 0
}

// current returns the frame on screen.
func (a *animator) current() (frame, bool) {
	if len(a.frames) == 0 {
		return frame{}, false
	}
	return a.frames[0], true
}

// progress returns how far the current frame is, from 0 to 1.
func (a *animator) progress() float64 {
	f, ok := a.current()
	if !ok || f.ticks <= 0 {
		return 1
	}
	return min(float64(a.elapsed)/float64(f.ticks), 1)
}

// advance moves the animation one tick and reports whether the last frame
// just finished.
func (a *animator) advance() bool {
	if len(a.frames) == 0 {
		return false
	}
	a.elapsed++
	if a.elapsed < a.frames[0].ticks {
		return false
	}
	a.frames = a.frames[1:]
	a.elapsed = 0
	return len(a.frames) == 0
}

// buildFrames lays out the animation of one attempted swap: the swap itself
// (or its rejection), then a clear and a fall for every cascade cycle, then
// a reshuffle if the board deadlocked.
func buildFrames(before *core.Grid, res session.MoveResult, after *core.Grid, cfg config.AnimationConfig) []frame {
	var frames []frame
	add := func(f frame) {
		if f.ticks > 0 && f.board != nil {
			frames = append(frames, f)
		}
	}

	if before == nil {
		return nil
	}
	swapped := before.Clone()
	swapped.Swap(res.Move.A, res.Move.B)
	pair := core.NewMatchSet(res.Move.A, res.Move.B)

	if !res.Valid {
		add(frame{phase: PhaseInvalid, board: swapped, marked: pair, ticks: cfg.InvalidTicks})
		return frames
	}

	add(frame{phase: PhaseSwap, board: swapped, marked: pair, ticks: cfg.SwapTicks})

	prev := swapped
	for _, step := range res.Cascade.Steps {
		cleared := core.NewMatchSet(step.Matched...)
		for _, rm := range step.Removed {
			cleared.Add(rm.At)
		}
		add(frame{phase: PhaseClear, board: prev, marked: cleared, ticks: cfg.ClearTicks})

		var spawned core.MatchSet
		for _, sp := range step.Spawned {
			spawned.Add(sp.At)
		}
		add(frame{phase: PhaseFall, board: step.Board, marked: spawned, ticks: cfg.FallTicks})
		if step.Board != nil {
			prev = step.Board
		}
	}

	if res.Reshuffled {
		add(frame{phase: PhaseShuffle, board: after, ticks: cfg.FallTicks})
	}
	return frames
}
