package session

import (
	"errors"

	"github.com/vovakirdan/tui-match3/internal/games/match3/core"
	"github.com/vovakirdan/tui-match3/internal/games/match3/levels"
)

// MoveResult describes what a selection or swipe did to the board.
type MoveResult struct {
	Move core.Move
	// Attempted is true when two adjacent cells were tried as a swap.
	Attempted bool
	// Valid is true when the swap made a run and was committed.
	Valid      bool
	Cascade    core.Cascade
	Reshuffled bool
	// Err is set when the cascade hit its cycle limit.
	Err error
}

func (s *Session) acceptsInput() bool {
	return s.state == StatePlaying && !s.Busy()
}

// SelectCell handles a click on a cell. The first click selects it; a click
// on an adjacent cell tries a swap; a click on any other cell moves the
// selection there; clicking the selected cell again deselects it.
func (s *Session) SelectCell(at core.Coord) MoveResult {
	if !s.acceptsInput() || !s.grid.InBounds(at) {
		return MoveResult{}
	}

	if !s.hasSelected {
		s.selectCell(at)
		return MoveResult{}
	}

	prev := s.selected
	switch {
	case prev == at:
		s.clearSelection()
		return MoveResult{}
	case prev.Adjacent(at):
		s.clearSelection()
		return s.trySwap(prev, at)
	default:
		s.clearSelection()
		s.selectCell(at)
		return MoveResult{}
	}
}

// Swipe tries to swap two cells directly. Non-adjacent pairs are ignored.
func (s *Session) Swipe(from, to core.Coord) MoveResult {
	if !s.acceptsInput() || !s.grid.InBounds(from) || !s.grid.InBounds(to) || !from.Adjacent(to) {
		return MoveResult{}
	}
	s.clearSelection()
	return s.trySwap(from, to)
}

func (s *Session) selectCell(at core.Coord) {
	s.selected = at
	s.hasSelected = true
	s.obs.Cue(CueClick)
	s.obs.Selection(at, true)
}

func (s *Session) clearSelection() {
	if !s.hasSelected {
		return
	}
	s.hasSelected = false
	s.obs.Selection(s.selected, false)
}

func (s *Session) trySwap(a, b core.Coord) MoveResult {
	res := MoveResult{Move: core.Move{A: a, B: b}, Attempted: true}

	s.resolving = true
	defer func() { s.resolving = false }()

	s.grid.Swap(a, b)
	if !core.HasMatch(s.grid) {
		s.grid.Swap(a, b)
		s.obs.Cue(CueInvalid)
		return res
	}

	res.Valid = true
	s.swaps++
	s.movesLeft--
	s.obs.Cue(CueSwap)

	cascade, err := s.resolver.Run(s.grid, core.FindMatches(s.grid))
	for _, step := range cascade.Steps {
		s.tally(step)
		s.obs.Cascade(step)
		s.obs.Cue(CueMatch)
		if len(step.Created) > 0 {
			s.obs.Cue(CueSpecial)
		}
	}
	s.score += cascade.Points
	res.Cascade = cascade
	if err != nil {
		res.Err = err
		if errors.Is(err, core.ErrCascadeLimit) {
			s.logger.Error("cascade did not settle", "level", s.level.Number, "cycles", cascade.Depth(), "err", err)
		}
	}
	s.logger.Debug("swap resolved", "move", res.Move, "cycles", cascade.Depth(), "points", cascade.Points, "score", s.score)

	if s.evaluateEnd() {
		return res
	}
	if !core.HasAnyValidMove(s.grid) {
		rr := s.shuffler.Reshuffle(s.grid)
		s.reshuffles++
		res.Reshuffled = true
		s.obs.Cue(CueShuffle)
		s.logger.Debug("board reshuffled", "attempts", rr.Attempts, "fallback", rr.Fallback)
	}
	return res
}

// tally counts cleared colors and created specials for the level goals.
func (s *Session) tally(step core.Step) {
	for _, rm := range step.Removed {
		if !rm.Tile.Kind.IsWild() {
			s.counts[rm.Tile.Kind.String()]++
		}
	}
	for _, cr := range step.Created {
		s.counts[levels.GoalSpecial]++
		switch cr.Tile.Special {
		case core.SpecialStripedH, core.SpecialStripedV:
			s.counts[levels.GoalStriped]++
		case core.SpecialWrapped:
			s.counts[levels.GoalWrapped]++
		case core.SpecialBomb:
			s.counts[levels.GoalBomb]++
		case core.SpecialRainbow:
			s.counts[levels.GoalRainbow]++
		}
	}
}

// evaluateEnd ends the attempt when the target is reached or a budget is
// spent. Reaching the target wins even if the last move spent the budget.
func (s *Session) evaluateEnd() bool {
	switch {
	case s.score >= s.level.TargetScore:
		s.win()
	case s.movesLeft <= 0, s.level.Timed() && s.timeLeft <= 0:
		s.lose()
	default:
		return false
	}
	return true
}

func (s *Session) win() {
	s.state = StateEnded
	s.outcome = OutcomeWin
	s.clearSelection()
	s.obs.Cue(CueLevelComplete)

	stored := s.Unlocked()
	if s.level.Number >= stored {
		if err := s.store.SetHighestUnlocked(s.level.Number + 1); err != nil {
			s.logger.Warn("failed to save progress", "level", s.level.Number+1, "err", err)
		}
	}
	s.record(true)
	s.logger.Info("level complete", "level", s.level.Number, "score", s.score, "stars", s.Stars())
}

func (s *Session) lose() {
	s.state = StateEnded
	s.outcome = OutcomeLoss
	s.clearSelection()
	s.obs.Cue(CueGameOver)
	s.record(false)
	s.logger.Info("level failed", "level", s.level.Number, "score", s.score, "target", s.level.TargetScore)
}

func (s *Session) record(won bool) {
	if s.recorder == nil {
		return
	}
	a := Attempt{
		Level:     s.level.Number,
		Score:     s.score,
		Stars:     s.Stars(),
		Won:       won,
		MovesUsed: s.swaps,
	}
	if err := s.recorder.RecordAttempt(a); err != nil {
		s.logger.Warn("failed to record attempt", "level", a.Level, "err", err)
	}
}
