package sim

import (
	"log/slog"

	"ghostlidar-sim/internal/telemetry"
)

// MultiWriter fans each snapshot out to several writers in order. It stops at
// the first error so a failed snapshot is never followed by a log record for
// the same tick.
type MultiWriter struct {
	writers []StateWriter
}

// NewMultiWriter creates a MultiWriter, skipping nil writers.
func NewMultiWriter(ws ...StateWriter) *MultiWriter {
	mw := &MultiWriter{}
	for _, w := range ws {
		if w != nil {
			mw.writers = append(mw.writers, w)
		}
	}
	return mw
}

// WriteState sends st to all writers.
func (mw *MultiWriter) WriteState(st telemetry.SimulationState) error {
	for _, w := range mw.writers {
		if err := w.WriteState(st); err != nil {
			return err
		}
	}
	return nil
}

// BestEffort wraps a writer whose failures must not stop the run. Errors are
// logged and dropped.
func BestEffort(w StateWriter, log *slog.Logger) StateWriter {
	return StateWriterFunc(func(st telemetry.SimulationState) error {
		if err := w.WriteState(st); err != nil {
			log.Error("optional sink write failed", "tick", st.Tick, "err", err)
		}
		return nil
	})
}
