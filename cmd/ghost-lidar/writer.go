package main

import (
	"errors"
	"log/slog"

	"ghostlidar-sim/internal/config"
	"ghostlidar-sim/internal/sim"
)

type sinkOptions struct {
	ValidateHandoff bool
}

// sinks is the writer chain for one run plus the resources it holds open.
type sinks struct {
	writer  sim.StateWriter
	handoff *sim.HandoffWriter
	closers []func() error
}

// Close releases every sink in reverse order of creation.
func (s *sinks) Close() error {
	var errs []error
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// newWriters builds the per-tick writer chain. The snapshot and event log
// come first and their errors end the run; display, history and handoff
// validation are best effort.
func newWriters(cfg config.RuntimeConfig, opts sinkOptions, display sim.StateWriter, log *slog.Logger) (*sinks, error) {
	s := &sinks{}
	ws := []sim.StateWriter{
		sim.NewSnapshotWriter(cfg.OutputPath),
		sim.NewEventLogWriter(cfg.EventLogPath),
	}
	if display != nil {
		ws = append(ws, sim.BestEffort(display, log))
	}
	if cfg.HistoryPath != "" {
		hw, err := sim.NewHistoryWriter(cfg.HistoryPath)
		if err != nil {
			return nil, err
		}
		s.closers = append(s.closers, hw.Close)
		ws = append(ws, sim.BestEffort(hw, log))
	}
	if opts.ValidateHandoff {
		s.handoff = sim.NewHandoffWriter(log)
		ws = append(ws, s.handoff)
	}
	s.writer = sim.NewMultiWriter(ws...)
	return s, nil
}
