// Telemetry records emitted once per simulator tick
package telemetry

import (
	"time"

	"ghostlidar-sim/internal/workflow"
)

// SimulationState is one tick's snapshot. It contains only value fields so a
// plain assignment yields an independent copy.
type SimulationState struct {
	RunID         string         `json:"run_id"`
	Tick          int            `json:"tick"`
	Timestamp     time.Time      `json:"timestamp"`
	Phase         workflow.Phase `json:"phase"`
	PhaseProgress float64        `json:"phase_progress"`
	DraftReadings DraftReadings  `json:"draft_readings"`
	CraneSignals  CraneSignals   `json:"crane_signals"`
	Stability     Stability      `json:"stability"`
	Watchdog      Watchdog       `json:"watchdog"`
	Workflow      Workflow       `json:"workflow"`
}

// DraftReadings holds the four hull-corner drafts and their mean, in feet.
type DraftReadings struct {
	Fore      float64 `json:"fore"`
	Aft       float64 `json:"aft"`
	Port      float64 `json:"port"`
	Starboard float64 `json:"starboard"`
	Mean      float64 `json:"mean"`
	Unit      string  `json:"unit"`
}

// CraneSignals describes crane geometry, load and the current motion command.
type CraneSignals struct {
	LoadWeight  int     `json:"load_weight"`
	MaxCapacity int     `json:"max_capacity"`
	BoomAngle   float64 `json:"boom_angle"`
	SlewBearing float64 `json:"slew_bearing"`
	HookHeight  float64 `json:"hook_height"`
	Status      string  `json:"status"`
	SignalCode  string  `json:"signal_code"`
	GCode       string  `json:"g_code"`
}

// Stability holds hull attitude and metacentric height.
type Stability struct {
	Trim         float64 `json:"trim"`
	Heel         float64 `json:"heel"`
	Displacement int     `json:"displacement"`
	GM           float64 `json:"gm"`
	Status       string  `json:"status"`
}

// Watchdog is the safety agent's verdict for the tick.
type Watchdog struct {
	Status               string `json:"status"`
	HumanDetected        bool   `json:"human_detected"`
	TimeElapsedSeconds   int    `json:"time_elapsed_seconds"`
	TimeRemainingSeconds int    `json:"time_remaining_seconds"`
	SafetyMessage        string `json:"safety_message"`
	HoldRemaining        int    `json:"hold_remaining,omitempty"`
}

// Workflow reports step progress for operator dashboards.
type Workflow struct {
	CurrentStep    int     `json:"current_step"`
	TotalSteps     int     `json:"total_steps"`
	StepLabel      string  `json:"step_label"`
	ElapsedMinutes float64 `json:"elapsed_minutes"`
	TargetMinutes  float64 `json:"target_minutes"`
}

// Watchdog status constants.
const (
	WatchdogPass = "PASS"
	WatchdogStop = "STOP"
)

// Crane status constants.
const (
	CraneIdle          = "IDLE"
	CranePositioning   = "POSITIONING"
	CraneLoading       = "LOADING"
	CraneTrimAdjust    = "TRIM_ADJUST"
	CraneReturning     = "RETURNING"
	CraneEmergencyStop = "EMERGENCY_STOP"
)

// Crane signal codes.
const (
	SignalIdle  = "SIG-IDLE"
	SignalPos   = "SIG-POS"
	SignalLoad  = "SIG-LOAD"
	SignalTrim  = "SIG-TRIM"
	SignalFinal = "SIG-FINAL"
	SignalEStop = "SIG-ESTOP"
)

// Stability status constants.
const (
	StabilityNominal = "NOMINAL"
	StabilityCaution = "CAUTION"
)

const (
	// MaxCraneCapacity is the rated crane capacity in tonnes.
	MaxCraneCapacity = 3200
	// GMThreshold is the minimum metacentric height for NOMINAL stability.
	GMThreshold = 3.2
	// FeedRate is the fixed feed rate used in crane motion commands.
	FeedRate = 500
	// HardStopCommand halts crane motion immediately.
	HardStopCommand = "M00 STOP"
	// DraftUnit is the unit of DraftReadings values.
	DraftUnit = "ft"
)
