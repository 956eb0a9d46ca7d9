package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-match3/internal/games/match3/levels"
	"github.com/vovakirdan/tui-match3/internal/storage"
)

var (
	flagLevelCount int
	flagReset      bool
)

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "Show the level table and your best results",
	Long: `List the levels with their board size, move and time budget, target
score and goals, plus the best result of the current profile.

Levels past the configured table are generated; use --count to preview
more of them.

Examples:
  match3 levels
  match3 levels --count 12
  match3 levels --difficulty hard
  match3 levels --profile alice --reset`,
	Args: cobra.NoArgs,
	RunE: runLevels,
}

func init() {
	levelsCmd.Flags().IntVar(&flagLevelCount, "count", 0, "Number of levels to show (default: table size or highest unlocked)")
	levelsCmd.Flags().BoolVar(&flagReset, "reset", false, "Reset the profile's unlocked levels")
}

func runLevels(_ *cobra.Command, _ []string) error {
	cfg, err := loadGameConfig()
	if err != nil {
		return err
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer store.Close()

	profile := profileName()
	if profile == "" {
		profile = storage.DefaultProfile
	}
	if flagReset {
		if err := store.ResetProgress(profile); err != nil {
			return err
		}
		fmt.Printf("Progress of %q reset.\n", profile)
		return nil
	}

	unlocked, err := store.HighestUnlocked(profile)
	if err != nil {
		return err
	}
	best, err := store.BestResults(profile)
	if err != nil {
		return err
	}
	byLevel := make(map[int]storage.LevelBest, len(best))
	for _, b := range best {
		byLevel[b.Level] = b
	}

	table := levels.NewTable(cfg)
	count := flagLevelCount
	if count <= 0 {
		count = max(table.Len(), unlocked)
	}

	fmt.Printf("Levels - profile %s (unlocked: %d)\n\n", profile, unlocked)
	fmt.Printf("  %-5s  %-5s  %-5s  %-5s  %-7s  %-6s  %-7s  %s\n",
		"Level", "Board", "Moves", "Time", "Target", "Best", "Stars", "Goals")
	fmt.Printf("  %-5s  %-5s  %-5s  %-5s  %-7s  %-6s  %-7s  %s\n",
		"-----", "-----", "-----", "----", "------", "----", "-----", "-----")

	for n := 1; n <= count; n++ {
		lvl := table.Level(n)

		timeStr := "-"
		if lvl.Timed() {
			timeStr = fmt.Sprintf("%d:%02d", lvl.TimeLimit/60, lvl.TimeLimit%60)
		}

		bestStr, starStr := "-", "locked"
		if n <= unlocked {
			starStr = "☆☆☆"
			if b, ok := byLevel[n]; ok {
				bestStr = fmt.Sprintf("%d", b.BestScore)
				got := max(min(b.BestStars, 3), 0)
				starStr = strings.Repeat("★", got) + strings.Repeat("☆", 3-got)
			}
		}

		goals := make([]string, 0, len(lvl.Goals))
		for _, g := range lvl.Goals {
			goals = append(goals, fmt.Sprintf("%s %d", g.Name, g.Target))
		}

		board := fmt.Sprintf("%dx%d", lvl.GridSize, lvl.GridSize)
		fmt.Printf("  %-5d  %-5s  %-5d  %-5s  %-7d  %-6s  %-7s  %s\n",
			n, board, lvl.Moves, timeStr, lvl.TargetScore, bestStr, starStr, strings.Join(goals, ", "))
	}

	if n := table.Len(); count > n {
		fmt.Printf("\nLevels after %d are generated.\n", n)
	}
	return nil
}
