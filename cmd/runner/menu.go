package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/lane-runner/internal/games/runner"
	"github.com/vovakirdan/lane-runner/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Pick a mode and browse scores interactively",
	Long: `Start in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to start a run and Tab for the
scoreboard. Pause or finish a run and press Esc to return to the menu.

Examples:
  runner menu
  runner menu --fps 30
  runner menu --db ./runs.db`,
	Run: runMenu,
}

func init() {
	menuCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom runner config YAML")
	menuCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	menuCmd.Flags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file while the TUI is running")
}

func runMenu(_ *cobra.Command, _ []string) {
	runner.SetConfigPath(flagConfig)
	runner.SetDifficultyPreset(flagDifficulty)

	tlog, closeLog, err := tuiLogger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening log file: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	store := openStoreOrWarn()
	runErr := tui.RunSession(store, terminalConfig(), tlog)
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", runErr)
		os.Exit(1)
	}
}
