package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/lane-runner/internal/core"
	"github.com/vovakirdan/lane-runner/internal/games/runner"
	"github.com/vovakirdan/lane-runner/internal/platform/tui"
	"github.com/vovakirdan/lane-runner/internal/replay"
)

var (
	flagSimFrames int
	flagSimMode   string
	flagSimRecord string
	flagSimSave   bool
)

var simCmd = &cobra.Command{
	Use:   "sim",
	Short: "Run the autopilot headless",
	Long: `Play one run with the built-in autopilot, without a terminal UI.

The run stops when it ends or after --frames frames. The autopilot never
shops. With --record the inputs are written as a replay that
'runner replay' reproduces exactly.

Examples:
  runner sim
  runner sim --mode runner_endless --frames 36000 --seed 7
  runner sim --seed 7 --record bot.rpl`,
	Run: runSim,
}

func init() {
	simCmd.Flags().IntVar(&flagSimFrames, "frames", 60*60*5, "Maximum number of frames to simulate")
	simCmd.Flags().StringVar(&flagSimMode, "mode", runner.ModeCampaign, "Mode to simulate")
	simCmd.Flags().StringVar(&flagSimRecord, "record", "", "Write a replay of the run to this file")
	simCmd.Flags().BoolVar(&flagSimSave, "save", true, "Store the finished run in the database")
	simCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom runner config YAML")
	simCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
}

func runSim(_ *cobra.Command, _ []string) {
	var endless bool
	switch flagSimMode {
	case runner.ModeCampaign:
	case runner.ModeEndless:
		endless = true
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown mode %q\n", flagSimMode)
		os.Exit(1)
	}

	runner.SetConfigPath(flagConfig)
	runner.SetDifficultyPreset(flagDifficulty)

	cfg := core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: flagFPS, Seed: flagSeed}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	game := runner.New(endless)
	game.SetLogger(logger)
	game.Reset(cfg)
	runnerCfg := game.Config()
	pilot := runner.NewAutopilot(&runnerCfg)

	var rec *replay.Recorder
	if flagSimRecord != "" {
		header, err := replay.NewHeader(game.ID(), cfg, runnerCfg)
		if err == nil {
			rec, err = replay.Create(flagSimRecord, header)
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating replay: %v\n", err)
			os.Exit(1)
		}
	}

	start := time.Now()
	frames := 0
	for frames < flagSimFrames && !game.State().Finished() {
		in := simInput(game, pilot)
		if rec != nil {
			if err := rec.Record(in); err != nil {
				logger.Error("replay recording stopped", "error", err)
				//nolint:errcheck // Already failing
				rec.Close()
				rec = nil
			}
		}
		game.Step(in)
		frames++
	}
	if rec != nil {
		if err := rec.Close(); err != nil {
			logger.Error("could not finish replay", "error", err)
		}
	}

	st := game.State()
	sess := game.Session()
	logger.Debug("simulation done", "frames", frames, "elapsed", time.Since(start))

	fmt.Printf("Mode:      %s\n", game.ID())
	fmt.Printf("Seed:      %d\n", cfg.Seed)
	fmt.Printf("Frames:    %d (%s simulated)\n", frames, time.Duration(frames)*game.FrameDuration())
	fmt.Printf("Status:    %s\n", sess.Status())
	fmt.Printf("Score:     %d\n", st.Score)
	fmt.Printf("Distance:  %.1f\n", st.Distance)
	fmt.Printf("Level:     %d\n", st.Level)
	fmt.Printf("Gems:      %d\n", sess.Gems())
	fmt.Printf("Lives:     %d\n", sess.Lives())
	if err := sess.Fault(); err != nil {
		fmt.Printf("Fault:     %v\n", err)
	}
	if flagSimRecord != "" {
		fmt.Printf("Replay:    %s\n", flagSimRecord)
	}

	if !flagSimSave || !st.Finished() || st.Score <= 0 {
		return
	}
	store := openStoreOrWarn()
	if store == nil {
		return
	}
	defer store.Close()
	if _, err := store.SaveRun(tui.RunRecord(game, st, cfg.Seed)); err != nil {
		logger.Warn("could not save run", "error", err)
	}
}

// simInput starts the run, leaves the shop and otherwise asks the pilot.
func simInput(game *runner.Game, pilot *runner.Autopilot) core.InputFrame {
	switch game.Session().Status() {
	case runner.StatusMenu, runner.StatusShop:
		f := core.NewInputFrame()
		f.Set(core.ActionConfirm)
		return f
	case runner.StatusPlaying:
		return pilot.Decide(game.Snapshot()).Frame()
	}
	return core.NewInputFrame()
}
