// runner is an endless lane runner for the terminal.
//
// Usage:
//
//	runner list              - List game modes
//	runner play <mode>       - Play a mode in this terminal
//	runner menu              - Pick modes and browse scores interactively
//	runner sim               - Run the autopilot headless
//	runner replay <file>     - Re-simulate a recorded run
//	runner scores <mode>     - Show the best runs of a mode
//	runner serve             - Start the SSH server
//	runner watch             - Stream an autopilot run over websocket
//
// Global flags:
//
//	--fps <rate>        - Set tick rate (default: 60)
//	--seed <value>      - Set RNG seed for reproducible runs
//	--db <path>         - Set database path (default: ~/.runner/runs.db)
//	--log-level <level> - debug, info, warn or error
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	// Register game modes
	_ "github.com/vovakirdan/lane-runner/internal/games/runner"
)

var (
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagLogLevel string

	logger = log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: true, Prefix: "runner"})
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "runner",
	Short: "Lane Runner - dodge, jump and collect in your terminal",
	Long: `Lane Runner is a lane-based endless runner for the terminal.

Switch lanes and jump to dodge obstacles, aliens and their missiles,
collect gems and the letters of the level word, then shop at the portal.

Available commands:
  list     - Show all game modes
  play     - Play a mode directly
  menu     - Interactive mode picker and scoreboard
  sim      - Headless autopilot run
  replay   - Re-simulate a recorded run
  scores   - View the best runs
  serve    - Start SSH server for remote play
  watch    - Websocket spectator stream

Examples:
  runner list
  runner play runner
  runner play runner_endless --record run.rpl
  runner replay run.rpl
  runner serve --ssh :2222`,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		level, err := log.ParseLevel(flagLogLevel)
		if err != nil {
			return fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
		}
		logger.SetLevel(level)
		return nil
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.runner/runs.db", "Path to run history database")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(simCmd)
	rootCmd.AddCommand(replayCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(watchCmd)
}
