package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"ghostlidar-sim/internal/config"
	"ghostlidar-sim/internal/logging"
	"ghostlidar-sim/internal/sim"
)

var (
	simOpts            = config.DefaultOptions()
	simProfilePath     string
	simTUI             bool
	simNoColor         bool
	simValidateHandoff bool
	simLogLevel        string
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run the phased drafting simulation",
	Long: "simulate walks the six drafting phases, rewriting a JSON snapshot and appending\n" +
		"to the event log every tick. A single man-overboard stop is injected during\n" +
		"cargo loading unless --no-mob is given.",
	RunE: func(cmd *cobra.Command, args []string) error {
		level, err := logging.ParseLevel(simLogLevel)
		if err != nil {
			return err
		}
		cfg, err := resolveConfig(simOpts, simProfilePath, cmd.Flags().Changed)
		if err != nil {
			return err
		}
		if err := cfg.PrepareOutput(); err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		ctx, cancel := context.WithCancel(ctx)
		defer cancel()

		// The dashboard owns the terminal while it runs.
		var logOut io.Writer = os.Stderr
		if simTUI {
			logOut = io.Discard
		}
		log := logging.New(logOut, level)
		ctx = logging.NewContext(ctx, log)

		var display sim.StateWriter
		var tui *sim.TUIWriter
		if simTUI {
			tui = sim.NewTUIWriter(cancel)
			display = tui
		} else {
			display = sim.NewStdoutConsole(simNoColor)
		}

		chain, err := newWriters(cfg, sinkOptions{ValidateHandoff: simValidateHandoff}, display, log)
		if err != nil {
			if tui != nil {
				tui.Close()
			}
			return err
		}

		simulator := sim.NewSimulator(cfg, chain.writer)
		summary, runErr := simulator.Run(ctx)
		if tui != nil {
			tui.Close()
		}
		if err := chain.Close(); err != nil {
			log.Error("closing sinks", "err", err)
		}
		if chain.handoff != nil {
			accepted, rejected := chain.handoff.Counts()
			log.Info("geometry handoff", "accepted", accepted, "rejected", rejected)
		}
		if runErr != nil {
			return runErr
		}

		fmt.Fprintln(cmd.OutOrStdout(), summary.String())
		return nil
	},
}

// resolveConfig layers the run parameters: flags, then the profile for any
// flag left unset, then the environment.
func resolveConfig(o config.Options, profilePath string, changed func(string) bool) (config.RuntimeConfig, error) {
	if profilePath != "" {
		p, err := config.LoadProfile(profilePath)
		if err != nil {
			return config.RuntimeConfig{}, err
		}
		o = p.Merge(o, changed)
	}
	if err := config.ApplyEnv(&o); err != nil {
		return config.RuntimeConfig{}, err
	}
	return config.New(o)
}

func init() {
	f := simulateCmd.Flags()
	f.BoolVar(&simOpts.Fast, "fast", false, "Compress the cycle into 60 simulated seconds")
	f.Float64Var(&simOpts.Tick, "tick", simOpts.Tick, "Simulated seconds per tick (min 0.1; 0 runs unpaced)")
	f.BoolVar(&simOpts.DisableMOB, "no-mob", false, "Disable the man-overboard emergency stop")
	f.BoolVar(&simOpts.NoPacing, "no-pace", false, "Do not sleep between ticks")
	f.StringVar(&simOpts.OutputPath, "output", simOpts.OutputPath, "Path of the JSON state snapshot")
	f.StringVar(&simOpts.EventLogPath, "event-log", "", "Path of the event log (default: sol_event.log beside --output)")
	f.StringVar(&simOpts.HistoryPath, "history", "", "Optional JSONL file recording every tick")
	f.StringVar(&simProfilePath, "config", "", "Optional YAML run profile")
	f.BoolVar(&simTUI, "tui", false, "Show a live terminal dashboard instead of console lines")
	f.BoolVar(&simNoColor, "no-color", false, "Disable colored console output")
	f.BoolVar(&simValidateHandoff, "validate-handoff", false, "Validate each tick's geometry against the drafting pipeline limits")
	f.StringVar(&simLogLevel, "log-level", "info", "Log level (debug, info, warn, error)")
}
