// match3 is a tile-matching puzzle game for the terminal.
//
// Usage:
//
//	match3                  - Open the menu (same as "match3 menu")
//	match3 play             - Play the campaign from the highest unlocked level
//	match3 play --endless   - Play endless mode
//	match3 levels           - Show the level table and your best results
//	match3 scores           - Show high scores
//	match3 serve            - Start SSH server for remote play
//	match3 config           - Print the default configuration
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 30)
//	--seed <value>        - Set RNG seed for reproducible boards
//	--db <path>           - Set database path (default: ~/.match3/match3.db)
//	--config <path>       - Load a custom YAML configuration
//	--difficulty <name>   - easy, normal or hard
//	--profile <name>      - Progress and score profile
//	--log-level <level>   - debug, info, warn or error
//	--log-file <path>     - Write logs to a file
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-match3/internal/config"
	// Import the game to register it
	_ "github.com/vovakirdan/tui-match3/internal/games/match3"
	"github.com/vovakirdan/tui-match3/internal/registry"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagProfile    string
	flagLogLevel   string
	flagLogFile    string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "match3",
	Short: "Match-3 - swap tiles, match colors, clear levels",
	Long: `Match-3 is a tile-matching puzzle game for the terminal.

Swap two neighboring tiles to line up three or more of the same color.
Longer lines leave special tiles behind; chain reactions score more.
Reach the target score before you run out of moves (or time) to unlock
the next level.

Available commands:
  menu     - Interactive menu (default)
  play     - Start playing directly
  levels   - Show the level table and your best results
  scores   - View high scores
  serve    - Start SSH server for remote play
  config   - Print the default configuration

Examples:
  match3
  match3 play --level 3
  match3 play --endless --difficulty hard
  match3 scores --endless
  match3 serve --ssh :2222`,
	SilenceUsage: true,
	RunE:         runMenu,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 30, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.match3/match3.db", "Path to scores and progress database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom match-3 config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
	rootCmd.PersistentFlags().StringVar(&flagProfile, "profile", "", "Player profile (default: $USER)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")

	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(configCmd)
}

// loadGameConfig reads the YAML configuration and applies the difficulty preset.
func loadGameConfig() (config.Match3Config, error) {
	cfg, err := config.LoadMatch3(flagConfig)
	if err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config: %w", err)
	}

	preset, err := config.ParseDifficulty(flagDifficulty)
	if err != nil {
		return cfg, err
	}
	if err := config.ApplyMatch3Preset(&cfg, preset); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// newLogger builds the logger from the log flags. Interactive commands pass
// quiet so log lines never land on the game screen; they log only to a file.
func newLogger(quiet bool) (*log.Logger, io.Closer, error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid log level %q: %w", flagLogLevel, err)
	}

	var (
		out    io.Writer = os.Stderr
		closer io.Closer = io.NopCloser(nil)
	)
	switch {
	case flagLogFile != "":
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return nil, nil, fmt.Errorf("cannot open log file: %w", err)
		}
		out, closer = f, f
	case quiet:
		out = io.Discard
	}

	logger := log.NewWithOptions(out, log.Options{
		ReportTimestamp: true,
		Prefix:          "match3",
		Level:           level,
	})
	return logger, closer, nil
}

// profileName returns the --profile flag, falling back to the login name.
func profileName() string {
	if flagProfile != "" {
		return flagProfile
	}
	if u := os.Getenv("USER"); u != "" {
		return u
	}
	return ""
}

// buildEnv assembles the game environment shared by every command.
func buildEnv(quiet bool) (registry.Env, io.Closer, error) {
	cfg, err := loadGameConfig()
	if err != nil {
		return registry.Env{}, nil, err
	}
	logger, closer, err := newLogger(quiet)
	if err != nil {
		return registry.Env{}, nil, err
	}

	env := registry.DefaultEnv()
	env.Config = cfg
	env.Logger = logger
	return env, closer, nil
}
