package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"ghostlidar-sim/internal/telemetry"
)

func TestValidateGeometry(t *testing.T) {
	tests := []struct {
		name    string
		rec     telemetry.GeometryRecord
		valid   bool
		message string
	}{
		{"nominal", telemetry.GeometryRecord{Draft: 3.5, Trim: 0.2, Heel: -0.1}, true, "Geometry validation passed"},
		{"draft at limit", telemetry.GeometryRecord{Draft: 15}, true, "Geometry validation passed"},
		{"negative draft", telemetry.GeometryRecord{Draft: -0.1}, false, "Draft out of range"},
		{"deep draft", telemetry.GeometryRecord{Draft: 15.01}, false, "Draft out of range"},
		{"trim", telemetry.GeometryRecord{Draft: 3, Trim: -10.5}, false, "Excessive trim angle"},
		{"heel", telemetry.GeometryRecord{Draft: 3, Heel: 11}, false, "Excessive heel angle"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := ValidateGeometry(tt.rec)
			assert.Equal(t, tt.valid, res.Valid)
			assert.Contains(t, res.Message, tt.message)
		})
	}
}

func TestCustomLimits(t *testing.T) {
	l := Limits{MaxDraftMeters: 4, MaxTrimDeg: 1, MaxHeelDeg: 1}
	assert.False(t, l.Validate(telemetry.GeometryRecord{Draft: 4.2}).Valid)
	assert.True(t, l.Validate(telemetry.GeometryRecord{Draft: 3.9, Trim: 0.5, Heel: 0.5}).Valid)
}
