package sim

import (
	"fmt"
	"os"
	"strings"

	"ghostlidar-sim/internal/telemetry"
)

// FormatEventLines renders one tick as the six subsystem log lines.
func FormatEventLines(st telemetry.SimulationState) []string {
	d := st.DraftReadings
	c := st.CraneSignals
	s := st.Stability
	return []string{
		fmt.Sprintf("[SOL.GhostLiDAR] tick=%d phase=%s progress=%.2f", st.Tick, st.Phase, st.PhaseProgress),
		fmt.Sprintf("[SOL.DraftMonitor] draft_readings: fore=%.2fft aft=%.2fft mean=%.2fft", d.Fore, d.Aft, d.Mean),
		fmt.Sprintf("[SOL.CraneController] signal=%s load=%dt boom=%.1f g_code=%s", c.SignalCode, c.LoadWeight, c.BoomAngle, c.GCode),
		fmt.Sprintf("[SOL.StabilityAnalyzer] trim=%.3f heel=%.3f GM=%.2fm status=%s", s.Trim, s.Heel, s.GM, s.Status),
		fmt.Sprintf("[SOL.WorkflowEngine] phase_active: %s - %s", st.Phase, st.Workflow.StepLabel),
		watchdogLine(st.Watchdog),
	}
}

func watchdogLine(w telemetry.Watchdog) string {
	const prefix = "[SOL.WatchdogAgent] safety_check: "
	if w.Status == telemetry.WatchdogStop {
		return prefix + "STOP - human detected in operational zone"
	}
	if w.SafetyMessage == "" {
		return prefix + w.Status
	}
	return prefix + w.Status + " - " + w.SafetyMessage
}

// EventLogWriter appends each tick's rendering to a text log. The file is
// opened and closed per tick.
type EventLogWriter struct {
	path string
}

// NewEventLogWriter appends to path, creating it if needed.
func NewEventLogWriter(path string) *EventLogWriter {
	return &EventLogWriter{path: path}
}

// WriteState appends the record for st.
func (w *EventLogWriter) WriteState(st telemetry.SimulationState) (err error) {
	f, err := os.OpenFile(w.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open event log: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close event log: %w", cerr)
		}
	}()
	if _, err := f.WriteString(strings.Join(FormatEventLines(st), "\n") + "\n"); err != nil {
		return fmt.Errorf("append event log: %w", err)
	}
	return nil
}
