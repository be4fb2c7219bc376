package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/lane-runner/internal/core"
	"github.com/vovakirdan/lane-runner/internal/games/runner"
	"github.com/vovakirdan/lane-runner/internal/platform/observer"
)

var (
	flagWatchAddr   string
	flagWatchRemote bool
	flagWatchMode   string
	flagWatchDelay  time.Duration
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Stream an autopilot run to websocket spectators",
	Long: `Run the autopilot forever and publish every frame.

Endpoints:
  GET /snapshot  - latest frame as JSON
  GET /ws        - websocket stream of frames

Only loopback clients are accepted unless --remote is set.

Examples:
  runner watch
  runner watch --addr 127.0.0.1:8090 --mode runner_endless
  runner watch --addr :8090 --remote`,
	Run: runWatch,
}

func init() {
	watchCmd.Flags().StringVar(&flagWatchAddr, "addr", "127.0.0.1:8090", "HTTP listen address")
	watchCmd.Flags().BoolVar(&flagWatchRemote, "remote", false, "Accept non-loopback clients")
	watchCmd.Flags().StringVar(&flagWatchMode, "mode", runner.ModeEndless, "Mode to run")
	watchCmd.Flags().DurationVar(&flagWatchDelay, "restart-delay", 3*time.Second, "Pause on the end screen before the next run")
	watchCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom runner config YAML")
	watchCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
}

func runWatch(_ *cobra.Command, _ []string) {
	var endless bool
	switch flagWatchMode {
	case runner.ModeCampaign:
	case runner.ModeEndless:
		endless = true
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown mode %q\n", flagWatchMode)
		os.Exit(1)
	}

	runner.SetConfigPath(flagConfig)
	runner.SetDifficultyPreset(flagDifficulty)

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	wlog := logger.WithPrefix("runner-watch")

	game := runner.New(endless)
	game.SetLogger(wlog)
	game.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: flagFPS, Seed: seed})

	srv := observer.NewServer(game, wlog,
		observer.WithRemoteClients(flagWatchRemote),
		observer.WithRestartDelay(flagWatchDelay),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Printf("Watch server on http://%s (ws at /ws)\n", flagWatchAddr)
	fmt.Println("Press Ctrl+C to stop")

	if err := srv.ListenAndServe(ctx, flagWatchAddr); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}
