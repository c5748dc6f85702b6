package sim

import (
	"context"
	"fmt"
	"time"

	"ghostlidar-sim/internal/logging"
)

// Run emits ticks until the simulated duration is exceeded or ctx is
// cancelled. Cancellation is observed between ticks, so the in-flight tick is
// always fully written. A write error from the sink ends the run.
func (s *Simulator) Run(ctx context.Context) (Summary, error) {
	log := logging.FromContext(ctx).With("run_id", s.runID)
	log.Info("starting ghost lidar",
		"tick_seconds", s.cfg.TickSeconds,
		"total_seconds", s.cfg.TotalSimSeconds,
		"mob_enabled", !s.cfg.DisableMOB,
		"paced", !s.cfg.NoPacing)

	started := s.wall()
	summary := func(interrupted bool) Summary {
		return Summary{
			RunID:        s.runID,
			Ticks:        s.tick,
			Duration:     s.wall().Sub(started),
			MOBTriggered: s.MOBTriggered(),
			Interrupted:  interrupted,
		}
	}
	interval := time.Duration(s.cfg.TickSeconds * float64(time.Second))

	for {
		if ctx.Err() != nil {
			log.Info("interrupted", "tick", s.tick)
			return summary(true), nil
		}
		elapsed := float64(s.tick) * s.cfg.TickSeconds
		if elapsed > float64(s.cfg.TotalSimSeconds) {
			break
		}

		st, ev := s.next(elapsed)
		switch ev {
		case eventTripped:
			log.Warn("emergency stop: human detected in operational zone",
				"tick", st.Tick, "phase", st.Phase, "phase_progress", st.PhaseProgress, "hold_ticks", s.hold)
		case eventResumed:
			log.Info("emergency hold cleared, operations resuming", "tick", st.Tick)
		}

		if err := s.writer.WriteState(st); err != nil {
			return summary(false), fmt.Errorf("write tick %d: %w", st.Tick, err)
		}
		s.last = st
		s.haveLast = true
		s.tick++

		if !s.cfg.NoPacing && !s.sleep(interval, ctx.Done()) {
			log.Info("interrupted", "tick", s.tick)
			return summary(true), nil
		}
	}

	log.Info("run complete", "ticks", s.tick, "mob_triggered", s.MOBTriggered())
	return summary(false), nil
}

// sleepUnlessDone waits for d and reports false if done closed first.
func sleepUnlessDone(d time.Duration, done <-chan struct{}) bool {
	if d <= 0 {
		return true
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return true
	case <-done:
		return false
	}
}
