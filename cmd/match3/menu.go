package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-match3/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start with the interactive menu",
	Long: `Start match-3 in interactive menu mode.

Continue the campaign, start an endless run, pick any unlocked level or
browse the high scores. After a game you return to the menu.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select
  Tab          - High scores
  B/Esc        - Back to menu (when paused or game over)
  Q            - Quit

Examples:
  match3 menu
  match3 menu --fps 60
  match3 menu --db ./match3.db --profile alice`,
	Args: cobra.NoArgs,
	RunE: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) error {
	env, closer, err := buildEnv(true)
	if err != nil {
		return err
	}
	defer closer.Close()

	store := openStore()
	if store != nil {
		defer store.Close()
	}

	return tui.RunSession(tui.NewPlayer(store, profileName(), env), terminalConfig())
}
