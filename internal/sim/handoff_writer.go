package sim

import (
	"log/slog"

	"ghostlidar-sim/internal/pipeline"
	"ghostlidar-sim/internal/telemetry"
)

// HandoffWriter checks each tick's geometry against the drafting pipeline's
// validation contract. Rejections are logged and counted, never returned.
type HandoffWriter struct {
	log      *slog.Logger
	limits   pipeline.Limits
	accepted int
	rejected int
}

// NewHandoffWriter validates against pipeline.DefaultLimits.
func NewHandoffWriter(log *slog.Logger) *HandoffWriter {
	return &HandoffWriter{log: log, limits: pipeline.DefaultLimits}
}

// WriteState validates st's geometry record.
func (h *HandoffWriter) WriteState(st telemetry.SimulationState) error {
	rec := st.Geometry()
	res := h.limits.Validate(rec)
	if !res.Valid {
		h.rejected++
		h.log.Warn("geometry handoff rejected", "tick", rec.Tick, "phase", rec.Phase, "reason", res.Message)
		return nil
	}
	h.accepted++
	h.log.Debug("geometry handoff accepted", "tick", rec.Tick, "draft_m", rec.Draft, "trim", rec.Trim, "heel", rec.Heel)
	return nil
}

// Counts returns the number of accepted and rejected records.
func (h *HandoffWriter) Counts() (accepted, rejected int) {
	return h.accepted, h.rejected
}
