package sim

import "ghostlidar-sim/internal/telemetry"

// StateWriter consumes one snapshot per tick.
type StateWriter interface {
	WriteState(telemetry.SimulationState) error
}

// StateWriterFunc adapts a function to StateWriter.
type StateWriterFunc func(telemetry.SimulationState) error

// WriteState calls f(st).
func (f StateWriterFunc) WriteState(st telemetry.SimulationState) error { return f(st) }
