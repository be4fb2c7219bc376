package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/lane-runner/internal/replay"
)

var replayCmd = &cobra.Command{
	Use:   "replay <file>",
	Short: "Re-simulate a recorded run",
	Long: `Load a replay written by 'play --record' or 'sim --record' and run the
recorded inputs through a fresh game with the recorded seed, tick rate and
config. The result is the same run, frame for frame.

Examples:
  runner replay run.rpl`,
	Args: cobra.ExactArgs(1),
	Run:  runReplay,
}

func runReplay(_ *cobra.Command, args []string) {
	header, frames, err := replay.Load(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading replay: %v\n", err)
		os.Exit(1)
	}
	logger.Debug("replay loaded", "mode", header.Mode, "seed", header.Seed, "frames", len(frames))

	res, err := replay.Verify(header, frames, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error replaying: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Mode:      %s\n", header.Mode)
	fmt.Printf("Recorded:  %s\n", header.CreatedAt.Local().Format("2006-01-02 15:04:05"))
	fmt.Printf("Seed:      %d\n", header.Seed)
	fmt.Printf("Tick rate: %d\n", header.TickRate)
	fmt.Printf("Frames:    %d\n", res.Frames)
	fmt.Printf("Status:    %s\n", res.Status)
	fmt.Printf("Score:     %d\n", res.Score)
	fmt.Printf("Distance:  %.1f\n", res.Distance)
	fmt.Printf("Level:     %d\n", res.Level)
	if res.Victory {
		fmt.Println("Victory!")
	}
}
