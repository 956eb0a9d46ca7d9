package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-match3/internal/core"
	"github.com/vovakirdan/tui-match3/internal/games/match3"
	"github.com/vovakirdan/tui-match3/internal/platform/tui"
	"github.com/vovakirdan/tui-match3/internal/registry"
	"github.com/vovakirdan/tui-match3/internal/storage"
)

var (
	flagLevel   int
	flagEndless bool
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play match-3",
	Long: `Start playing right away, skipping the menu.

The campaign starts at the highest level you have unlocked, or at --level
if that level is unlocked. Endless mode starts at level 1 and moves on after
every cleared level until you run out of moves or time.

Controls:
  Arrows/WASD  - Move the cursor
  Space        - Select a tile, then a neighbor to swap
  Mouse        - Click two tiles, or drag one onto a neighbor
  H            - Show a hint
  N/Enter      - Next level (campaign, after a win)
  P            - Pause
  R            - Restart the level
  Ctrl+S       - Save a screenshot
  Q/Ctrl+C     - Quit

Examples:
  match3 play
  match3 play --level 2
  match3 play --endless --seed 42
  match3 play --difficulty easy --profile guest`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().IntVar(&flagLevel, "level", 0, "Level to start on (0 = highest unlocked)")
	playCmd.Flags().BoolVar(&flagEndless, "endless", false, "Play endless mode")
}

// openStore opens the database, or returns nil with a warning so the game
// still runs without persistence.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open database: %v\n", err)
		return nil
	}
	return store
}

// terminalConfig sizes the runtime config from the terminal.
func terminalConfig() core.RuntimeConfig {
	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width, height = w, h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

func runPlay(_ *cobra.Command, _ []string) error {
	env, closer, err := buildEnv(true)
	if err != nil {
		return err
	}
	defer closer.Close()

	store := openStore()
	if store != nil {
		defer store.Close()
	}
	player := tui.NewPlayer(store, profileName(), env)

	gameID := match3.IDCampaign
	cfg := terminalConfig()
	switch {
	case flagEndless:
		gameID = match3.IDEndless
		cfg.Level = 1
	case flagLevel > 0:
		cfg.Level = flagLevel
		if unlocked := player.Unlocked(); flagLevel > unlocked {
			fmt.Fprintf(os.Stderr, "Level %d is locked; starting at level %d.\n", flagLevel, unlocked)
		}
	default:
		cfg.Level = player.Unlocked()
	}

	game, err := registry.Create(gameID, player.Env)
	if err != nil {
		return fmt.Errorf("creating game: %w", err)
	}

	player.Env.Logger.Debug("starting game", "game", gameID, "level", cfg.Level, "seed", cfg.Seed)
	if err := tui.Run(game, player, cfg); err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}
