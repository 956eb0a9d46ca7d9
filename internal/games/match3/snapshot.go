package match3

import (
	"github.com/vovakirdan/tui-match3/internal/games/match3/core"
	"github.com/vovakirdan/tui-match3/internal/games/match3/session"
)

// Snapshot captures the game state for determinism testing and replay.
type Snapshot struct {
	Tick       uint64
	Mode       string
	Level      int
	Score      int // Score of the current level
	RunScore   int // Score including cleared endless levels
	Target     int
	MovesLeft  int
	TimeLeft   int
	State      string
	Outcome    string
	Board      string
	Cursor     core.Coord
	Selected   bool
	Selection  core.Coord
	Goals      []session.GoalProgress
	Swaps      int
	Reshuffles int
	Animation  string
}

// Snapshot returns the current game snapshot.
func (g *Game) Snapshot() Snapshot {
	if g.sess == nil {
		return Snapshot{Mode: string(g.mode)}
	}

	sel, hasSel := g.sess.Selection()
	phase := PhaseNone
	if f, ok := g.anim.current(); ok {
		phase = f.phase
	}
	board := ""
	if b := g.sess.Board(); b != nil {
		board = b.String()
	}

	return Snapshot{
		Tick:       g.tick,
		Mode:       string(g.mode),
		Level:      g.sess.Level().Number,
		Score:      g.sess.Score(),
		RunScore:   g.Score(),
		Target:     g.sess.Level().TargetScore,
		MovesLeft:  g.sess.MovesLeft(),
		TimeLeft:   g.sess.TimeLeft(),
		State:      g.sess.State().String(),
		Outcome:    g.sess.Outcome().String(),
		Board:      board,
		Cursor:     g.cursor,
		Selected:   hasSel,
		Selection:  sel,
		Goals:      g.sess.Goals(),
		Swaps:      g.sess.Swaps(),
		Reshuffles: g.sess.Reshuffles(),
		Animation:  phase.String(),
	}
}
