// Package pipeline holds the contract the drafting pipeline expects from
// simulator output. Validation failures are values, never errors.
package pipeline

import (
	"fmt"
	"math"

	"ghostlidar-sim/internal/telemetry"
)

// Limits bounds acceptable geometry.
type Limits struct {
	MaxDraftMeters float64
	MaxTrimDeg     float64
	MaxHeelDeg     float64
}

// DefaultLimits mirrors the geometry validation stage's defaults.
var DefaultLimits = Limits{MaxDraftMeters: 15.0, MaxTrimDeg: 10.0, MaxHeelDeg: 10.0}

// Result is a validation verdict.
type Result struct {
	Valid   bool   `json:"is_valid"`
	Message string `json:"message"`
}

// ValidateGeometry checks a record against DefaultLimits.
func ValidateGeometry(rec telemetry.GeometryRecord) Result {
	return DefaultLimits.Validate(rec)
}

// Validate checks draft range first, then trim, then heel.
func (l Limits) Validate(rec telemetry.GeometryRecord) Result {
	if rec.Draft < 0 || rec.Draft > l.MaxDraftMeters {
		return Result{Message: fmt.Sprintf("Draft out of range: %.3fm (max: %.1fm)", rec.Draft, l.MaxDraftMeters)}
	}
	if trim := math.Abs(rec.Trim); trim > l.MaxTrimDeg {
		return Result{Message: fmt.Sprintf("Excessive trim angle: %.3f°", trim)}
	}
	if heel := math.Abs(rec.Heel); heel > l.MaxHeelDeg {
		return Result{Message: fmt.Sprintf("Excessive heel angle: %.3f°", heel)}
	}
	return Result{Valid: true, Message: "Geometry validation passed"}
}
