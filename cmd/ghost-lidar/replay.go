package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"ghostlidar-sim/internal/sim"
)

var (
	replayInput   string
	replaySpeed   float64
	replayNoColor bool
)

var replayCmd = &cobra.Command{
	Use:   "replay",
	Short: "Replay a recorded tick history",
	Long:  "replay renders a JSONL history written by simulate --history back to the console.",
	RunE: func(cmd *cobra.Command, args []string) error {
		if replayInput == "" {
			return fmt.Errorf("input file required")
		}
		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		n, err := sim.ReplayHistoryFile(ctx, replayInput, sim.NewStdoutConsole(replayNoColor), replaySpeed)
		if err != nil && ctx.Err() == nil {
			return fmt.Errorf("replay %s: %w", replayInput, err)
		}
		fmt.Fprintf(os.Stderr, "replayed %d ticks\n", n)
		return nil
	},
}

func init() {
	replayCmd.Flags().StringVar(&replayInput, "input", "", "Path to a JSONL tick history")
	replayCmd.Flags().Float64Var(&replaySpeed, "speed", 1.0, "Playback speed multiplier (0 replays without delay)")
	replayCmd.Flags().BoolVar(&replayNoColor, "no-color", false, "Disable colored console output")
	replayCmd.MarkFlagRequired("input")
}
