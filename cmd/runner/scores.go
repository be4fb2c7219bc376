package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/lane-runner/internal/registry"
	"github.com/vovakirdan/lane-runner/internal/storage"
)

var (
	flagScoresLimit int
	flagScoresClear bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores <mode>",
	Short: "Show the best runs of a mode",
	Long: `Display the best stored runs and overall stats for the specified mode.

Examples:
  runner scores runner
  runner scores runner_endless --limit 25
  runner scores runner --clear`,
	Args: cobra.ExactArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of runs to show")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete all stored runs of the mode")
}

func runScores(_ *cobra.Command, args []string) {
	mode := args[0]
	if !registry.Exists(mode) {
		fmt.Fprintf(os.Stderr, "Error: unknown mode %q\n", mode)
		fmt.Fprintln(os.Stderr, "Run 'runner list' to see available modes.")
		os.Exit(1)
	}

	game, err := registry.Create(mode)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening run database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagScoresClear {
		if err := store.ClearRuns(mode); err != nil {
			fmt.Fprintf(os.Stderr, "Error clearing runs: %v\n", err)
			return
		}
		fmt.Printf("Cleared all runs of %s.\n", game.Title())
		return
	}

	runs, err := store.TopRuns(mode, flagScoresLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving runs: %v\n", err)
		return
	}

	fmt.Printf("Best Runs - %s\n", game.Title())
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'runner play %s' to set the first high score!\n", mode)
		return
	}

	fmt.Printf("  %-4s  %-8s  %-8s  %-5s  %-5s  %s\n", "Rank", "Score", "Dist", "Lvl", "Gems", "Date")
	fmt.Printf("  %-4s  %-8s  %-8s  %-5s  %-5s  %s\n", "----", "-----", "----", "---", "----", "----")
	for i, r := range runs {
		lvl := fmt.Sprintf("%d", r.Level)
		if r.Victory {
			lvl += "*"
		}
		fmt.Printf("  %-4d  %-8d  %-8.0f  %-5s  %-5d  %s\n",
			i+1, r.Score, r.Distance, lvl, r.Gems, r.CreatedAt.Local().Format("2006-01-02 15:04"))
	}

	stats, err := store.Stats(mode)
	if err != nil {
		return
	}
	fmt.Println()
	fmt.Printf("Runs: %d  Best: %d  Average: %.0f  Best level: %d  Victories: %d\n",
		stats.RunsCount, stats.HighScore, stats.AvgScore, stats.BestLevel, stats.Victories)
	fmt.Printf("Longest run: %.0f  Last played: %s\n",
		stats.MaxDistance, stats.LastPlayed.Local().Format("2006-01-02 15:04"))
}
