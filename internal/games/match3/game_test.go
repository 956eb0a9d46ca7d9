package match3

import (
	"reflect"
	"slices"
	"strings"
	"testing"

	"github.com/vovakirdan/tui-match3/internal/config"
	platformcore "github.com/vovakirdan/tui-match3/internal/core"
	"github.com/vovakirdan/tui-match3/internal/games/match3/core"
	"github.com/vovakirdan/tui-match3/internal/games/match3/session"
	"github.com/vovakirdan/tui-match3/internal/registry"
)

func testEnv(mutate func(cfg *config.Match3Config)) registry.Env {
	env := registry.DefaultEnv()
	if mutate != nil {
		mutate(&env.Config)
	}
	return env
}

func runtimeConfig(level int) platformcore.RuntimeConfig {
	return platformcore.RuntimeConfig{ScreenW: 80, ScreenH: 30, TickRate: 30, Seed: 7, Level: level}
}

func inputs(actions ...platformcore.Action) platformcore.InputFrame {
	in := platformcore.NewInputFrame()
	for _, a := range actions {
		in.Set(a)
	}
	return in
}

// settle steps until the animation is over.
func settle(t *testing.T, g *Game) {
	t.Helper()
	for i := 0; g.anim.active(); i++ {
		if i > 1000 {
			t.Fatal("animation never finished")
		}
		g.Step(inputs())
	}
}

// screenPos returns the screen position of a cell's glyph.
func screenPos(g *Game, c core.Coord) (int, int) {
	cell := g.boardRect().CellRect(c.Col, c.Row, cellWidth, cellHeight)
	return cell.X + 1, cell.Y
}

func drag(g *Game, from, to core.Coord) platformcore.InputFrame {
	in := inputs()
	x, y := screenPos(g, from)
	in.AddPointer(platformcore.Pointer{X: x, Y: y, Kind: platformcore.PointerPress})
	x, y = screenPos(g, to)
	in.AddPointer(platformcore.Pointer{X: x, Y: y, Kind: platformcore.PointerRelease})
	return in
}

// invalidMove finds an adjacent swap that makes no run.
func invalidMove(t *testing.T, b *core.Grid) core.Move {
	t.Helper()
	for r := 0; r < b.Rows; r++ {
		for c := 0; c < b.Cols; c++ {
			for _, o := range []core.Coord{core.C(r, c+1), core.C(r+1, c)} {
				if !b.InBounds(o) {
					continue
				}
				trial := b.Clone()
				trial.Swap(core.C(r, c), o)
				if !core.HasMatch(trial) {
					return core.Move{A: core.C(r, c), B: o}
				}
			}
		}
	}
	t.Fatal("board has no invalid swap")
	return core.Move{}
}

// playHint makes the hinted swap with the keyboard.
func playHint(t *testing.T, g *Game) {
	t.Helper()
	mv, ok := g.sess.Hint()
	if !ok {
		t.Fatal("no hint available")
	}
	g.cursor = mv.A
	g.Step(inputs(platformcore.ActionSelect))
	g.cursor = mv.B
	g.Step(inputs(platformcore.ActionSelect))
}

func TestRegistered(t *testing.T) {
	for _, id := range []string{IDCampaign, IDEndless} {
		if !registry.Exists(id) {
			t.Fatalf("%s is not registered", id)
		}
		g, err := registry.Create(id, registry.DefaultEnv())
		if err != nil {
			t.Fatalf("Create(%s) failed: %v", id, err)
		}
		if g.ID() != id {
			t.Errorf("Create(%s).ID() = %s", id, g.ID())
		}
	}
}

func TestZeroEnvUsesDefaults(t *testing.T) {
	g := New(registry.Env{})
	g.Reset(runtimeConfig(1))
	if g.sess.Level().GridSize != 6 || g.sess.MovesLeft() != 20 {
		t.Errorf("level 1 = %+v", g.sess.Level())
	}
	if len(g.theme) == 0 {
		t.Error("default theme not loaded")
	}
}

func TestStartLevelCappedByProgress(t *testing.T) {
	store := session.NewMemoryStore()
	_ = store.SetHighestUnlocked(3)
	env := testEnv(nil)
	env.Progress = store

	tests := []struct {
		requested, want int
	}{
		{0, 1},
		{2, 2},
		{3, 3},
		{5, 3},
	}
	for _, tt := range tests {
		g := New(env)
		g.Reset(runtimeConfig(tt.requested))
		if got := g.State().Level; got != tt.want {
			t.Errorf("Reset(level %d) started level %d, want %d", tt.requested, got, tt.want)
		}
	}
}

func TestCursorMovementClamps(t *testing.T) {
	g := New(testEnv(nil))
	g.Reset(runtimeConfig(1))

	if g.cursor != core.C(3, 3) {
		t.Fatalf("cursor starts at %v, want (3,3)", g.cursor)
	}
	for range 10 {
		g.Step(inputs(platformcore.ActionUp))
		g.Step(inputs(platformcore.ActionLeft))
	}
	if g.cursor != core.C(0, 0) {
		t.Errorf("cursor = %v, want (0,0)", g.cursor)
	}
	for range 10 {
		g.Step(inputs(platformcore.ActionDown))
		g.Step(inputs(platformcore.ActionRight))
	}
	if g.cursor != core.C(5, 5) {
		t.Errorf("cursor = %v, want (5,5)", g.cursor)
	}
}

func TestClickSelectsCell(t *testing.T) {
	g := New(testEnv(nil))
	g.Reset(runtimeConfig(1))

	at := core.C(2, 4)
	g.Step(drag(g, at, at))

	sel, ok := g.sess.Selection()
	if !ok || sel != at {
		t.Errorf("Selection() = %v, %v; want %v", sel, ok, at)
	}
	if g.cursor != at {
		t.Errorf("cursor = %v, want %v", g.cursor, at)
	}

	// Releasing outside the board cancels the press.
	in := inputs()
	x, y := screenPos(g, core.C(0, 0))
	in.AddPointer(platformcore.Pointer{X: x, Y: y, Kind: platformcore.PointerPress})
	in.AddPointer(platformcore.Pointer{X: 0, Y: 0, Kind: platformcore.PointerRelease})
	g.Step(in)
	if sel, _ := g.sess.Selection(); sel != at {
		t.Errorf("cancelled drag changed the selection to %v", sel)
	}
}

type cueLog []session.Cue

func (l *cueLog) Cue(c session.Cue)          { *l = append(*l, c) }
func (l *cueLog) Cascade(core.Step)          {}
func (l *cueLog) Selection(core.Coord, bool) {}

func (l cueLog) has(c session.Cue) bool { return slices.Contains(l, c) }

func TestInvalidSwipeAnimatesAndCostsNothing(t *testing.T) {
	cues := &cueLog{}
	env := testEnv(nil)
	env.Observer = cues
	g := New(env)
	g.Reset(runtimeConfig(1))

	before := g.sess.Board()
	mv := invalidMove(t, before)
	res := g.Step(drag(g, mv.A, mv.B))

	if !res.Bell {
		t.Error("invalid swap should ring the bell")
	}
	if !cues.has(session.CueInvalid) {
		t.Errorf("observer cues = %v, want invalid", *cues)
	}
	if snap := g.Snapshot(); snap.Animation != "invalid" {
		t.Errorf("Animation = %q, want invalid", snap.Animation)
	}
	if !g.sess.Busy() {
		t.Error("session should be held while animating")
	}

	settle(t, g)
	if g.sess.Busy() {
		t.Error("session still held after the animation")
	}
	if g.sess.MovesLeft() != 20 || !g.sess.Board().Equal(before) {
		t.Error("invalid swap changed moves or board")
	}
}

func TestValidSwapAnimatesCascade(t *testing.T) {
	g := New(testEnv(nil))
	g.Reset(runtimeConfig(1))

	playHint(t, g)

	snap := g.Snapshot()
	if snap.Animation != "swap" {
		t.Fatalf("Animation = %q, want swap", snap.Animation)
	}
	if snap.MovesLeft != 19 || snap.Swaps != 1 {
		t.Errorf("moves %d swaps %d after one swap", snap.MovesLeft, snap.Swaps)
	}
	if snap.Score == 0 {
		t.Error("a valid swap must score")
	}

	// Input during the animation is ignored.
	g.Step(inputs(platformcore.ActionSelect))
	if _, sel := g.sess.Selection(); sel {
		t.Error("selection accepted while animating")
	}

	settle(t, g)
	if g.sess.Busy() {
		t.Error("session still held after the cascade")
	}
	if core.HasMatch(g.sess.Board()) {
		t.Error("board has runs after the cascade")
	}
}

func TestHintHighlights(t *testing.T) {
	g := New(testEnv(nil))
	g.Reset(runtimeConfig(1))

	g.Step(inputs(platformcore.ActionHint))
	if g.hintTicks == 0 {
		t.Fatal("hint not shown")
	}
	want, _ := g.sess.Hint()
	if g.hint != want {
		t.Errorf("hint = %v, want %v", g.hint, want)
	}
	for range 2 * 30 {
		g.Step(inputs())
	}
	if g.hintTicks != 0 {
		t.Errorf("hint still shown after two seconds (%d ticks left)", g.hintTicks)
	}
}

func TestCountdownAndPause(t *testing.T) {
	store := session.NewMemoryStore()
	_ = store.SetHighestUnlocked(3)
	env := testEnv(nil)
	env.Progress = store
	g := New(env)
	g.Reset(runtimeConfig(3))

	if g.sess.TimeLeft() != 120 {
		t.Fatalf("TimeLeft() = %d, want 120", g.sess.TimeLeft())
	}
	for range 30 {
		g.Step(inputs())
	}
	if g.sess.TimeLeft() != 119 {
		t.Errorf("TimeLeft() = %d after one second, want 119", g.sess.TimeLeft())
	}

	if !g.Step(inputs(platformcore.ActionPause)).State.Paused {
		t.Fatal("pause not reported")
	}
	for range 60 {
		g.Step(inputs())
	}
	if g.sess.TimeLeft() != 119 {
		t.Errorf("countdown ran while paused: %d", g.sess.TimeLeft())
	}
	if g.Step(inputs(platformcore.ActionPause)).State.Paused {
		t.Error("resume not reported")
	}
}

func TestCampaignWinWaitsForNext(t *testing.T) {
	g := New(testEnv(func(cfg *config.Match3Config) {
		cfg.Levels[0].TargetScore = 10
	}))
	g.Reset(runtimeConfig(1))

	playHint(t, g)
	settle(t, g)

	st := g.State()
	if !st.GameOver || !st.Won {
		t.Fatalf("state after winning swap = %+v", st)
	}
	if unlocked := g.sess.Unlocked(); unlocked != 2 {
		t.Errorf("Unlocked() = %d, want 2", unlocked)
	}

	g.Step(inputs())
	if g.State().Level != 1 {
		t.Error("campaign advanced without input")
	}

	g.Step(inputs(platformcore.ActionNext))
	st = g.State()
	if st.Level != 2 || st.GameOver || st.Score != 0 {
		t.Errorf("after Next: %+v", st)
	}
}

func TestEndlessAdvancesAutomatically(t *testing.T) {
	g := NewEndless(testEnv(func(cfg *config.Match3Config) {
		cfg.Levels[0].TargetScore = 10
		cfg.Animation.LevelClearTicks = 5
	}))
	g.Reset(runtimeConfig(1))

	playHint(t, g)
	settle(t, g)

	st := g.State()
	if st.GameOver || !st.Won {
		t.Fatalf("endless win should be transient, got %+v", st)
	}
	banked := g.sess.Score()

	for range 5 {
		g.Step(inputs())
	}
	st = g.State()
	if st.Level != 2 || st.Won {
		t.Fatalf("after level clear: %+v", st)
	}
	if g.Score() != banked || g.runScore != banked {
		t.Errorf("run score = %d, want %d banked", g.Score(), banked)
	}
}

type attempts []session.Attempt

func (a *attempts) RecordAttempt(at session.Attempt) error {
	*a = append(*a, at)
	return nil
}

func TestLossAndRestart(t *testing.T) {
	var recorded attempts
	env := testEnv(func(cfg *config.Match3Config) {
		cfg.Levels[0].Moves = 1
		cfg.Levels[0].TargetScore = 100000
	})
	env.Recorder = &recorded
	g := New(env)
	g.Reset(runtimeConfig(1))

	playHint(t, g)
	settle(t, g)

	st := g.State()
	if !st.GameOver || st.Won {
		t.Fatalf("state after last move = %+v", st)
	}
	if len(recorded) != 1 || recorded[0].Won || recorded[0].MovesUsed != 1 {
		t.Errorf("recorded attempts = %+v", recorded)
	}

	screen := platformcore.NewScreen(80, 30)
	g.Render(screen)
	if !strings.Contains(screen.String(), "GAME OVER") {
		t.Error("game over overlay not drawn")
	}

	g.Step(inputs(platformcore.ActionRestart))
	st = g.State()
	if st.GameOver || st.Score != 0 || g.sess.MovesLeft() != 1 {
		t.Errorf("after restart: %+v moves %d", st, g.sess.MovesLeft())
	}
}

func TestSameSeedSameGame(t *testing.T) {
	play := func() Snapshot {
		g := New(testEnv(nil))
		g.Reset(runtimeConfig(1))
		for range 3 {
			playHint(t, g)
			settle(t, g)
		}
		return g.Snapshot()
	}
	a, b := play(), play()
	if !reflect.DeepEqual(a, b) {
		t.Errorf("same seed diverged:\n%+v\n%+v", a, b)
	}
}

func TestRender(t *testing.T) {
	g := New(testEnv(nil))
	g.Reset(runtimeConfig(1))

	screen := platformcore.NewScreen(80, 30)
	g.Render(screen)
	out := screen.String()
	for _, want := range []string{"MATCH-3", "Level 1", "Moves 20", "Goals:", "●"} {
		if !strings.Contains(out, want) {
			t.Errorf("screen missing %q", want)
		}
	}

	x, y := screenPos(g, g.cursor)
	if screen.Get(x-1, y) != '‹' || screen.Get(x+1, y) != '›' {
		t.Error("cursor brackets not drawn")
	}
	tile, _ := g.sess.Board().Get(g.cursor)
	if got := screen.GetCell(x, y).Color; got != g.tileColor(tile) {
		t.Errorf("tile color = %v, want %v", got, g.tileColor(tile))
	}
}

func TestTooSmall(t *testing.T) {
	g := New(testEnv(nil))
	cfg := runtimeConfig(1)
	cfg.ScreenW = 20
	g.Reset(cfg)

	if !g.State().Paused {
		t.Error("small window should pause the game")
	}
	screen := platformcore.NewScreen(20, 30)
	g.Render(screen)
	if !strings.Contains(screen.String(), "Window too small") {
		t.Error("too-small message not drawn")
	}
}

func TestResizeKeepsProgress(t *testing.T) {
	g := New(testEnv(nil))
	cfg := runtimeConfig(1)
	g.Reset(cfg)
	before := g.Snapshot().Board

	g.Resize(20, 30)
	if !g.State().Paused {
		t.Fatal("shrinking below the board should pause")
	}
	g.Resize(80, 30)
	if g.State().Paused {
		t.Error("growing back should resume")
	}
	if g.Snapshot().Board != before {
		t.Error("resize must not deal a new board")
	}
}
