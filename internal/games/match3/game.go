// Package match3 adapts the match-3 session to the terminal platform. It maps
// platform actions and mouse input onto cell selection and swipes, plays the
// cascade animation and draws the board.
package match3

import (
	"math/rand"

	"github.com/vovakirdan/tui-match3/internal/config"
	platformcore "github.com/vovakirdan/tui-match3/internal/core"
	"github.com/vovakirdan/tui-match3/internal/games/match3/core"
	"github.com/vovakirdan/tui-match3/internal/games/match3/levels"
	"github.com/vovakirdan/tui-match3/internal/games/match3/session"
	"github.com/vovakirdan/tui-match3/internal/registry"
)

// Mode represents the game mode.
type Mode string

const (
	ModeCampaign Mode = "campaign"
	ModeEndless  Mode = "endless"
)

// Registry IDs for the two modes.
const (
	IDCampaign = "match3"
	IDEndless  = "match3_endless"
)

// Game implements registry.Game for match-3.
type Game struct {
	mode  Mode
	env   registry.Env
	table *levels.Table
	rules core.Rules
	theme map[core.Kind]platformcore.Color

	sess *session.Session
	rng  *rand.Rand

	tick        uint64
	tickRate    int
	secondTicks int
	startLevel  int

	screenW  int
	screenH  int
	tooSmall bool

	cursor   core.Coord
	pressed  core.Coord
	hasPress bool

	hint      core.Move
	hintTicks int

	anim       animator
	clearTicks int // Ticks spent on the endless level-clear banner
	runScore   int // Points banked from levels cleared earlier in an endless run
	bell       bool
}

func init() {
	registry.Register(IDCampaign, func(env registry.Env) registry.Game {
		return New(env)
	})
	registry.Register(IDEndless, func(env registry.Env) registry.Game {
		return NewEndless(env)
	})
}

// New creates a campaign game. Winning a level ends the run until the
// player continues with the next one.
func New(env registry.Env) *Game {
	return newGame(ModeCampaign, env)
}

// NewEndless creates an endless game that advances automatically after each
// cleared level and ends on the first failure.
func NewEndless(env registry.Env) *Game {
	return newGame(ModeEndless, env)
}

func newGame(mode Mode, env registry.Env) *Game {
	def := registry.DefaultEnv()
	if env.Progress == nil {
		env.Progress = def.Progress
	}
	if env.Logger == nil {
		env.Logger = def.Logger
	}
	if env.Config.Levels == nil && env.Config.Engine.Palette == 0 {
		env.Config = def.Config
	}
	return &Game{
		mode:  mode,
		env:   env,
		table: levels.NewTable(env.Config),
		rules: rulesFrom(env.Config.Engine),
		theme: themeFrom(env.Config.Theme),
	}
}

// rulesFrom converts the engine section of the configuration.
func rulesFrom(c config.EngineConfig) core.Rules {
	return core.Rules{
		Palette:       c.Palette,
		WrappedChance: c.WrappedChance,
		RainbowSize:   c.RainbowSize,
		Points: core.PointTable{
			Normal:  c.Points.Normal,
			Striped: c.Points.Striped,
			Wrapped: c.Points.Wrapped,
			Bomb:    c.Points.Bomb,
			Rainbow: c.Points.Rainbow,
		},
		MaxCascades:       c.MaxCascades,
		ReshuffleAttempts: c.ReshuffleAttempts,
		FillAttempts:      c.FillAttempts,
	}.Normalize()
}

// themeFrom resolves tile colors. Unknown names fall back to the default color.
func themeFrom(t config.ThemeConfig) map[core.Kind]platformcore.Color {
	out := make(map[core.Kind]platformcore.Color, len(t.Tiles))
	for name, colorName := range t.Tiles {
		k, err := core.ParseKind(name)
		if err != nil {
			continue
		}
		c, err := platformcore.ParseColor(colorName)
		if err != nil {
			continue
		}
		out[k] = c
	}
	return out
}

// ID returns the game identifier.
func (g *Game) ID() string {
	if g.mode == ModeEndless {
		return IDEndless
	}
	return IDCampaign
}

// Title returns the display name.
func (g *Game) Title() string {
	if g.mode == ModeEndless {
		return "Match-3 (Endless)"
	}
	return "Match-3"
}

// Mode returns the game mode.
func (g *Game) Mode() Mode {
	return g.mode
}

// Levels returns the level table the game plays through.
func (g *Game) Levels() *levels.Table {
	return g.table
}

// Reset starts a new run at cfg.Level, capped to the highest unlocked level.
func (g *Game) Reset(cfg platformcore.RuntimeConfig) {
	g.rng = rand.New(rand.NewSource(cfg.Seed))
	g.tickRate = cfg.TickRate
	if g.tickRate <= 0 {
		g.tickRate = platformcore.DefaultConfig().TickRate
	}
	g.screenW = cfg.ScreenW
	g.screenH = cfg.ScreenH
	g.tick = 0
	g.runScore = 0
	g.bell = false

	opts := []session.Option{
		session.WithRand(g.rng),
		session.WithRules(g.rules),
		session.WithStore(g.env.Progress),
		session.WithObserver(cueObserver{g: g, next: g.env.Observer}),
		session.WithLogger(g.env.Logger.With("mode", string(g.mode))),
	}
	if g.env.Recorder != nil {
		opts = append(opts, session.WithRecorder(g.env.Recorder))
	}
	g.sess = session.New(g.table, opts...)

	start := max(cfg.Level, 1)
	start = min(start, g.sess.Unlocked())
	g.startLevel = start
	g.sess.Start(start)
	g.levelStarted()
}

// levelStarted clears per-level presentation state after the session deals
// a board.
func (g *Game) levelStarted() {
	g.anim.stop()
	g.secondTicks = 0
	g.clearTicks = 0
	g.hasPress = false
	g.hintTicks = 0
	n := g.sess.Level().GridSize
	g.cursor = core.C(n/2, n/2)
	g.checkScreenSize()
}

// checkScreenSize checks if the screen can hold the board and HUD.
func (g *Game) checkScreenSize() {
	n := g.sess.Level().GridSize
	minW := max(n*cellWidth+2, 48)
	minH := hudHeight + n*cellHeight + footerHeight + 2
	g.tooSmall = g.screenW < minW || g.screenH < minH
}

// Resize adapts the layout to a new terminal size without restarting.
func (g *Game) Resize(w, h int) {
	g.screenW = w
	g.screenH = h
	if g.sess != nil {
		g.checkScreenSize()
	}
}

// Session exposes the underlying session.
func (g *Game) Session() *session.Session {
	return g.sess
}

// Step advances the game by one tick.
func (g *Game) Step(in platformcore.InputFrame) platformcore.StepResult {
	g.tick++
	g.bell = false

	if g.tooSmall {
		return g.result()
	}

	if in.Has(platformcore.ActionPause) {
		switch g.sess.State() {
		case session.StatePlaying:
			g.sess.Pause()
		case session.StatePaused:
			g.sess.Resume()
		}
	}
	if g.sess.State() == session.StatePaused {
		return g.result()
	}

	if in.Has(platformcore.ActionRestart) {
		g.restart()
		return g.result()
	}

	g.countdown()

	if g.anim.active() {
		if g.anim.advance() {
			g.sess.Release()
		}
		return g.result()
	}

	if g.hintTicks > 0 {
		g.hintTicks--
	}

	if g.sess.State() == session.StateEnded {
		g.stepEnded(in)
		return g.result()
	}

	g.handleInput(in)
	return g.result()
}

func (g *Game) result() platformcore.StepResult {
	return platformcore.StepResult{State: g.State(), Bell: g.bell}
}

// countdown feeds whole seconds to the session on timed levels.
func (g *Game) countdown() {
	if g.sess.State() != session.StatePlaying || !g.sess.Level().Timed() {
		return
	}
	g.secondTicks++
	if g.secondTicks >= g.tickRate {
		g.secondTicks = 0
		g.sess.Tick()
	}
}

// restart replays the current level in campaign mode and starts the run
// over in endless mode.
func (g *Game) restart() {
	if g.mode == ModeEndless {
		g.runScore = 0
		g.sess.Start(g.startLevel)
	} else {
		g.sess.Restart()
	}
	g.levelStarted()
}

// stepEnded handles the result screen.
func (g *Game) stepEnded(in platformcore.InputFrame) {
	if g.sess.Outcome() != session.OutcomeWin {
		return
	}
	if g.mode == ModeEndless {
		g.clearTicks++
		if g.clearTicks >= g.env.Config.Animation.LevelClearTicks {
			g.advance()
		}
		return
	}
	if in.Has(platformcore.ActionNext) || in.Has(platformcore.ActionConfirm) {
		g.advance()
	}
}

func (g *Game) advance() {
	score := g.sess.Score()
	if g.sess.NextLevel() {
		if g.mode == ModeEndless {
			g.runScore += score
		}
		g.levelStarted()
	}
}

// handleInput applies cursor movement, selection, hints and mouse input.
func (g *Game) handleInput(in platformcore.InputFrame) {
	if g.sess.Busy() {
		return
	}

	n := g.sess.Level().GridSize
	switch {
	case in.Has(platformcore.ActionUp):
		g.cursor.Row = platformcore.Clamp(g.cursor.Row-1, 0, n-1)
	case in.Has(platformcore.ActionDown):
		g.cursor.Row = platformcore.Clamp(g.cursor.Row+1, 0, n-1)
	case in.Has(platformcore.ActionLeft):
		g.cursor.Col = platformcore.Clamp(g.cursor.Col-1, 0, n-1)
	case in.Has(platformcore.ActionRight):
		g.cursor.Col = platformcore.Clamp(g.cursor.Col+1, 0, n-1)
	}

	if in.Has(platformcore.ActionHint) {
		if mv, ok := g.sess.Hint(); ok {
			g.hint = mv
			g.hintTicks = 2 * g.tickRate
		}
	}

	if in.Has(platformcore.ActionSelect) {
		g.play(func() session.MoveResult { return g.sess.SelectCell(g.cursor) })
		return
	}

	for _, p := range in.Pointers {
		if g.handlePointer(p) {
			return
		}
	}
}

// handlePointer turns a press and release into a click or a swipe. It
// reports whether a swap was attempted.
func (g *Game) handlePointer(p platformcore.Pointer) bool {
	at, ok := g.cellAt(p.X, p.Y)
	switch p.Kind {
	case platformcore.PointerPress:
		g.hasPress = ok
		if ok {
			g.pressed = at
			g.cursor = at
		}
		return false
	case platformcore.PointerRelease:
		if !g.hasPress {
			return false
		}
		g.hasPress = false
		if !ok {
			return false
		}
		from := g.pressed
		switch {
		case at == from:
			return g.play(func() session.MoveResult { return g.sess.SelectCell(at) })
		case at.Adjacent(from):
			g.cursor = at
			return g.play(func() session.MoveResult { return g.sess.Swipe(from, at) })
		}
	}
	return false
}

// play runs one input against the session and queues the animation of what
// it did. It reports whether a swap was attempted.
func (g *Game) play(input func() session.MoveResult) bool {
	before := g.sess.Board()
	res := input()
	if !res.Attempted {
		return false
	}
	g.hintTicks = 0
	frames := buildFrames(before, res, g.sess.Board(), g.env.Config.Animation)
	if len(frames) > 0 {
		g.anim.start(frames)
		g.sess.Hold()
	}
	return true
}

// Score returns the run score: the current level plus, in endless mode,
// every level cleared before it.
func (g *Game) Score() int {
	if g.sess == nil {
		return 0
	}
	return g.runScore + g.sess.Score()
}

// State returns the current game state. An endless win is transient and
// not reported as game over.
func (g *Game) State() platformcore.GameState {
	if g.sess == nil {
		return platformcore.GameState{}
	}
	ended := g.sess.State() == session.StateEnded
	won := ended && g.sess.Outcome() == session.OutcomeWin
	return platformcore.GameState{
		Score:    g.Score(),
		Level:    g.sess.Level().Number,
		GameOver: ended && (!won || g.mode == ModeCampaign),
		Won:      won,
		Paused:   g.sess.State() == session.StatePaused || g.tooSmall,
	}
}

// cueObserver rings the bell on notable cues and forwards everything to the
// configured observer.
type cueObserver struct {
	g    *Game
	next session.Observer
}

func (o cueObserver) Cue(c session.Cue) {
	switch c {
	case session.CueInvalid, session.CueLevelComplete, session.CueGameOver:
		o.g.bell = true
	}
	if o.next != nil {
		o.next.Cue(c)
	}
}

func (o cueObserver) Cascade(step core.Step) {
	if o.next != nil {
		o.next.Cascade(step)
	}
}

func (o cueObserver) Selection(at core.Coord, selected bool) {
	if o.next != nil {
		o.next.Selection(at, selected)
	}
}
