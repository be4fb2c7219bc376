package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/lane-runner/internal/core"
	"github.com/vovakirdan/lane-runner/internal/games/runner"
	"github.com/vovakirdan/lane-runner/internal/platform/tui"
	"github.com/vovakirdan/lane-runner/internal/registry"
	"github.com/vovakirdan/lane-runner/internal/storage"
)

var (
	flagConfig     string
	flagDifficulty string
	flagRecord     string
	flagLogFile    string
)

var playCmd = &cobra.Command{
	Use:   "play <mode>",
	Short: "Play a game mode",
	Long: `Start a run of the specified mode.

Controls:
  A/D, Left/Right  - Change lane (left/right in the shop)
  Space/W/Up       - Jump, again in the air with Double Jump (buy in the shop)
  E/Shift+Tab      - Activate Immortal
  Enter            - Start / leave the shop
  P                - Pause
  R                - Restart after game over
  Ctrl+S           - Save a screenshot to ~/.runner/screenshots
  Q/Ctrl+C         - Quit

Difficulty options:
  easy   - Gentle speed ramp
  normal - Config defaults
  hard   - Starts fast, ramps quickly
  fixed  - No speed ramp inside a level

Examples:
  runner play runner
  runner play runner_endless --difficulty hard
  runner play runner --config ./my-runner.yaml
  runner play runner --seed 42 --record run.rpl`,
	Args: cobra.ExactArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom runner config YAML")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	playCmd.Flags().StringVar(&flagRecord, "record", "", "Write a replay of the session to this file")
	playCmd.Flags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file while the TUI is running")
}

func runPlay(_ *cobra.Command, args []string) {
	mode := args[0]
	if !registry.Exists(mode) {
		fmt.Fprintf(os.Stderr, "Error: unknown mode %q\n", mode)
		fmt.Fprintln(os.Stderr, "Run 'runner list' to see available modes.")
		os.Exit(1)
	}

	runner.SetConfigPath(flagConfig)
	runner.SetDifficultyPreset(flagDifficulty)

	game, err := registry.Create(mode)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	tlog, closeLog, err := tuiLogger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening log file: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()
	if rg, ok := game.(*runner.Game); ok {
		rg.SetLogger(tlog)
	}

	store := openStoreOrWarn()

	runErr := tui.Run(game, terminalConfig(), tui.Options{
		Store:      store,
		Logger:     tlog,
		RecordPath: flagRecord,
	})

	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
	if flagRecord != "" {
		fmt.Printf("Replay written to %s\n", flagRecord)
	}
}

// terminalConfig sizes the runtime config to the current terminal.
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

// tuiLogger returns a logger that cannot draw over the alternate screen:
// the --log-file target when set, otherwise nothing.
func tuiLogger() (*log.Logger, func(), error) {
	if flagLogFile == "" {
		return log.New(io.Discard), func() {}, nil
	}
	f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, nil, err
	}
	l := log.NewWithOptions(f, log.Options{ReportTimestamp: true, Prefix: "runner"})
	l.SetLevel(logger.GetLevel())
	return l, func() { f.Close() }, nil
}

// openStoreOrWarn opens the run history; runs still work without it.
func openStoreOrWarn() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open run database", "path", flagDBPath, "error", err)
		return nil
	}
	return store
}
