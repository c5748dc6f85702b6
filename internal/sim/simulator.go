// Simulator driving the phased Ghost LiDAR workflow
package sim

import (
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"ghostlidar-sim/internal/config"
	"ghostlidar-sim/internal/telemetry"
	"ghostlidar-sim/internal/workflow"
)

// Simulator emits one telemetry snapshot per tick for a six-phase loading
// workflow and injects at most one MOB emergency stop per run.
//
// A Simulator is driven by a single goroutine through Run and is not safe for
// concurrent use.
type Simulator struct {
	cfg    config.RuntimeConfig
	runID  string
	gen    *telemetry.Generator
	writer StateWriter

	tick int
	mob  mobPhase
	hold int // ticks left in the emergency hold

	last     telemetry.SimulationState
	haveLast bool

	wall  func() time.Time
	sleep func(d time.Duration, done <-chan struct{}) bool
}

// Summary reports how a run ended.
type Summary struct {
	RunID        string
	Ticks        int
	Duration     time.Duration
	MOBTriggered bool
	Interrupted  bool
}

// String renders the shutdown line printed at the end of a run.
func (s Summary) String() string {
	return fmt.Sprintf("[SOL.GhostLiDAR] shutdown ticks=%d duration_seconds=%.2f mob_triggered=%t",
		s.Ticks, s.Duration.Seconds(), s.MOBTriggered)
}

// NewSimulator prepares a run. cfg is assumed validated by config.New.
func NewSimulator(cfg config.RuntimeConfig, writer StateWriter) *Simulator {
	runID := uuid.NewString()
	return &Simulator{
		cfg:    cfg,
		runID:  runID,
		gen:    telemetry.NewGenerator(runID, float64(cfg.TotalSimSeconds)),
		writer: writer,
		wall:   time.Now,
		sleep:  sleepUnlessDone,
	}
}

// SetClock overrides the clock used for snapshot timestamps.
func (s *Simulator) SetClock(now func() time.Time) {
	s.gen.SetClock(now)
}

// RunID identifies this run in every snapshot.
func (s *Simulator) RunID() string { return s.runID }

// Ticks returns the number of ticks emitted so far.
func (s *Simulator) Ticks() int { return s.tick }

// MOBTriggered reports whether the emergency stop has fired.
func (s *Simulator) MOBTriggered() bool { return s.mob != mobNormal }

// holdTicks converts the fixed hold duration into ticks. At least one held
// tick is kept so every trip is followed by a resume.
func (s *Simulator) holdTicks() int {
	return max(1, int(math.RoundToEven(MOBHoldSeconds/s.cfg.TickSeconds)))
}

// next produces the state for the current tick.
func (s *Simulator) next(elapsed float64) (telemetry.SimulationState, event) {
	if s.hold > 0 && s.haveLast {
		st := s.held(elapsed)
		s.hold--
		if s.hold == 0 {
			s.resume(&st)
			return st, eventResumed
		}
		return st, eventNone
	}

	st := s.gen.Generate(s.tick, elapsed)
	pos := workflow.Locate(workflow.GlobalProgress(elapsed, float64(s.cfg.TotalSimSeconds)))
	if s.shouldTrip(pos) {
		s.trip(&st)
		return st, eventTripped
	}
	return st, eventNone
}

// held derives a hold tick from the previous snapshot. Only the tick,
// timestamp and watchdog timing move; every operational value stays frozen.
func (s *Simulator) held(elapsed float64) telemetry.SimulationState {
	st := s.last
	st.Tick = s.tick
	st.Timestamp = s.gen.Now()
	s.gen.StampTime(&st.Watchdog, elapsed)
	st.Watchdog.SafetyMessage = fmt.Sprintf("%s | Safety hold: %d", StopMessage, s.hold)
	st.Watchdog.HoldRemaining = s.hold
	return st
}
