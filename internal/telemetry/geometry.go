package telemetry

import "ghostlidar-sim/internal/workflow"

// FeetToMeters converts draft readings to the metric units used downstream.
const FeetToMeters = 0.3048

// GeometryRecord is the subset of a tick handed to the drafting pipeline's
// geometry validation stage.
type GeometryRecord struct {
	Tick  int            `json:"tick"`
	Phase workflow.Phase `json:"phase"`
	Draft float64        `json:"draft"` // meters
	Trim  float64        `json:"trim"`  // degrees
	Heel  float64        `json:"heel"`  // degrees
}

// Geometry extracts the downstream geometry record from s.
func (s SimulationState) Geometry() GeometryRecord {
	return GeometryRecord{
		Tick:  s.Tick,
		Phase: s.Phase,
		Draft: round(s.DraftReadings.Mean*FeetToMeters, 3),
		Trim:  s.Stability.Trim,
		Heel:  s.Stability.Heel,
	}
}
