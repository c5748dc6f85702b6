package sim

import (
	"encoding/json"
	"os"

	"ghostlidar-sim/internal/telemetry"
)

// HistoryWriter records every tick as one JSON line, for replay and offline
// analysis.
type HistoryWriter struct {
	f   *os.File
	enc *json.Encoder
}

// NewHistoryWriter truncates or creates the history file at path.
func NewHistoryWriter(path string) (*HistoryWriter, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	return &HistoryWriter{f: f, enc: json.NewEncoder(f)}, nil
}

// WriteState appends st.
func (h *HistoryWriter) WriteState(st telemetry.SimulationState) error {
	return h.enc.Encode(st)
}

// Close closes the underlying file.
func (h *HistoryWriter) Close() error {
	if h.f == nil {
		return nil
	}
	return h.f.Close()
}
