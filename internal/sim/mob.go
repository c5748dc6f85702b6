package sim

import (
	"ghostlidar-sim/internal/telemetry"
	"ghostlidar-sim/internal/workflow"
)

// mobPhase tracks the man-overboard emergency stop. It only moves forward:
// normal -> tripped -> resumed.
type mobPhase int

const (
	mobNormal mobPhase = iota
	mobTripped
	mobResumed
)

func (p mobPhase) String() string {
	switch p {
	case mobTripped:
		return "tripped"
	case mobResumed:
		return "resumed"
	default:
		return "normal"
	}
}

// event marks a MOB transition that happened on a tick.
type event int

const (
	eventNone event = iota
	eventTripped
	eventResumed
)

const (
	// MOBTriggerProgress is the CARGO-LOAD progress at which a person is
	// detected in the operational zone.
	MOBTriggerProgress = 0.65
	// MOBHoldSeconds is the simulated length of the emergency hold.
	MOBHoldSeconds = 10.0
	// StopMessage is the watchdog message while stopped.
	StopMessage = "Human detected in operational zone - EMERGENCY STOP"
	// ResumeMessage is the watchdog message on the tick operations resume.
	ResumeMessage = "all clear, operations resuming"
)

func (s *Simulator) shouldTrip(pos workflow.Position) bool {
	return !s.cfg.DisableMOB &&
		s.mob == mobNormal &&
		pos.Step.Phase == workflow.CargoLoad &&
		pos.Progress >= MOBTriggerProgress
}

// trip stops the crane and starts the hold countdown.
func (s *Simulator) trip(st *telemetry.SimulationState) {
	s.mob = mobTripped
	s.hold = s.holdTicks()

	st.Watchdog.Status = telemetry.WatchdogStop
	st.Watchdog.HumanDetected = true
	st.Watchdog.SafetyMessage = StopMessage
	st.Watchdog.HoldRemaining = s.hold

	st.CraneSignals.Status = telemetry.CraneEmergencyStop
	st.CraneSignals.SignalCode = telemetry.SignalEStop
	st.CraneSignals.GCode = telemetry.HardStopCommand
}

// resume clears the stop on the final held tick. The crane command is rebuilt
// from the frozen geometry.
func (s *Simulator) resume(st *telemetry.SimulationState) {
	s.mob = mobResumed

	st.Watchdog.Status = telemetry.WatchdogPass
	st.Watchdog.HumanDetected = false
	st.Watchdog.SafetyMessage = ResumeMessage
	st.Watchdog.HoldRemaining = 0

	c := &st.CraneSignals
	c.Status = telemetry.CraneLoading
	c.SignalCode = telemetry.SignalLoad
	c.GCode = telemetry.MotionCommand(c.SlewBearing, c.BoomAngle, c.HookHeight)
}
