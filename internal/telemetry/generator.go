package telemetry

import (
	"fmt"
	"hash/fnv"
	"math"
	"math/rand/v2"
	"strconv"
	"time"

	"ghostlidar-sim/internal/workflow"
)

// Generator synthesizes nominal per-tick state for a run. Every signal is a
// pure function of phase, phase progress and tick, so two generators with the
// same total duration produce identical telemetry apart from timestamps.
type Generator struct {
	RunID        string
	TotalSeconds float64
	now          func() time.Time
}

// NewGenerator creates a generator for a run of totalSeconds simulated time.
func NewGenerator(runID string, totalSeconds float64) *Generator {
	return &Generator{RunID: runID, TotalSeconds: totalSeconds, now: time.Now}
}

// SetClock overrides the timestamp source.
func (g *Generator) SetClock(now func() time.Time) {
	if now != nil {
		g.now = now
	}
}

// Now returns the generator clock's current UTC time.
func (g *Generator) Now() time.Time {
	return g.now().UTC()
}

// Generate builds the nominal state for tick at elapsed simulated seconds.
// The watchdog always reports PASS; safety overrides are applied by the caller.
func (g *Generator) Generate(tick int, elapsed float64) SimulationState {
	pos := workflow.Locate(workflow.GlobalProgress(elapsed, g.TotalSeconds))
	phase := pos.Step.Phase
	p := pos.Progress

	return SimulationState{
		RunID:         g.RunID,
		Tick:          tick,
		Timestamp:     g.Now(),
		Phase:         phase,
		PhaseProgress: round(p, 3),
		DraftReadings: Drafts(phase, p, tick),
		CraneSignals:  Crane(phase, p),
		Stability:     StabilityFor(phase, p),
		Watchdog:      g.Watchdog(elapsed),
		Workflow: Workflow{
			CurrentStep:    pos.Number(),
			TotalSteps:     workflow.TotalSteps(),
			StepLabel:      pos.Step.Label,
			ElapsedMinutes: round(elapsed/60, 2),
			TargetMinutes:  workflow.TargetMinutes,
		},
	}
}

// Watchdog returns a passing watchdog with time fields for elapsed seconds.
func (g *Generator) Watchdog(elapsed float64) Watchdog {
	w := Watchdog{Status: WatchdogPass}
	g.StampTime(&w, elapsed)
	return w
}

// StampTime refreshes the elapsed and remaining time fields of w.
func (g *Generator) StampTime(w *Watchdog, elapsed float64) {
	e := int(elapsed)
	w.TimeElapsedSeconds = e
	w.TimeRemainingSeconds = max(0, int(g.TotalSeconds)-e)
}

// JitterSeed derives the draft jitter seed for a tick from the key
// "draft-<tick>".
func JitterSeed(tick int) uint64 {
	h := fnv.New64a()
	h.Write([]byte("draft-" + strconv.Itoa(tick)))
	return h.Sum64()
}

func jitterSource(tick int) *rand.Rand {
	seed := JitterSeed(tick)
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

func uniform(r *rand.Rand, lo, hi float64) float64 {
	return lo + (hi-lo)*r.Float64()
}

// Drafts returns the four corner drafts for a phase with tick-seeded jitter.
func Drafts(phase workflow.Phase, p float64, tick int) DraftReadings {
	var base float64
	switch phase {
	case workflow.PreSurvey:
		base = 10.0 + 0.5*p
	case workflow.BallastAdj:
		base = 10.4 + 0.1*math.Sin(p*math.Pi)
	case workflow.CranePos:
		base = 10.5 + 0.02*math.Sin(p*6.0)
	case workflow.CargoLoad:
		base = 10.5 + 2.0*p
	case workflow.TrimCorr:
		base = 12.45 + 0.05*math.Sin(p*math.Pi)
	default:
		base = 12.5 + 0.02*math.Sin(p*4.0)
	}

	r := jitterSource(tick)
	fore := base + uniform(r, -0.06, 0.03)
	aft := base + uniform(r, -0.03, 0.07)
	port := base + uniform(r, -0.04, 0.05)
	starboard := base + uniform(r, -0.04, 0.05)
	mean := (fore + aft + port + starboard) / 4

	return DraftReadings{
		Fore:      round(fore, 2),
		Aft:       round(aft, 2),
		Port:      round(port, 2),
		Starboard: round(starboard, 2),
		Mean:      round(mean, 2),
		Unit:      DraftUnit,
	}
}

// Crane returns crane geometry, status and motion command for a phase.
func Crane(phase workflow.Phase, p float64) CraneSignals {
	var (
		load             int
		boom, slew, hook float64
		status, signal   string
	)
	switch phase {
	case workflow.PreSurvey, workflow.BallastAdj:
		load, boom, slew, hook = 0, 25.0, 180.0, 18.0
		status, signal = CraneIdle, SignalIdle
	case workflow.CranePos:
		load = 120
		boom = 28.0 + 14.0*p
		slew = 180.0 + 20.0*p
		hook = 18.0 - 2.0*p
		status, signal = CranePositioning, SignalPos
	case workflow.CargoLoad:
		load = int(200 + 3000*p)
		boom = 36.0 + 8.0*p
		slew = 190.0 + 12.0*p
		hook = 16.0 - 3.0*p
		status, signal = CraneLoading, SignalLoad
	case workflow.TrimCorr:
		load = 2900
		boom = 34.0 + 2.0*math.Sin(p*math.Pi)
		slew = 202.0 - 6.0*p
		hook = 13.2
		status, signal = CraneTrimAdjust, SignalTrim
	default:
		load = 2800
		boom = 30.0 - 6.0*p
		slew = 196.0 - 16.0*p
		hook = 14.0 + 4.0*p
		status, signal = CraneReturning, SignalFinal
	}

	return CraneSignals{
		LoadWeight:  load,
		MaxCapacity: MaxCraneCapacity,
		BoomAngle:   round(boom, 1),
		SlewBearing: round(slew, 1),
		HookHeight:  round(hook, 1),
		Status:      status,
		SignalCode:  signal,
		GCode:       MotionCommand(slew, boom, hook),
	}
}

// MotionCommand formats a linear crane move to slew/boom/hook.
func MotionCommand(slew, boom, hook float64) string {
	return fmt.Sprintf("G01 X%.1f Y%.1f Z%.1f F%d", slew, boom, hook, FeedRate)
}

// StabilityFor returns trim, heel, displacement and GM for a phase.
func StabilityFor(phase workflow.Phase, p float64) Stability {
	var trim, heel, gm float64
	var displacement int
	switch phase {
	case workflow.CargoLoad:
		trim = 0.02 + 0.23*p
		heel = -0.01 - 0.12*p
		gm = 4.2 - 0.9*p
		displacement = 2500 + int(1000*p)
	case workflow.TrimCorr:
		trim = 0.18 - 0.13*p
		heel = -0.09 + 0.08*p
		gm = 3.4 + 0.35*p
		displacement = 3450
	case workflow.FinalSurv:
		trim = 0.05 - 0.02*p
		heel = -0.02 + 0.01*p
		gm = 3.75
		displacement = 3450
	default:
		trim = 0.01 * math.Sin(p*math.Pi)
		heel = -0.01 * math.Sin(p*math.Pi)
		gm = 4.3
		displacement = 2200
	}

	return Stability{
		Trim:         round(trim, 3),
		Heel:         round(heel, 3),
		Displacement: displacement,
		GM:           round(gm, 2),
		Status:       StabilityStatus(gm),
	}
}

// StabilityStatus classifies a metacentric height.
func StabilityStatus(gm float64) string {
	if gm >= GMThreshold {
		return StabilityNominal
	}
	return StabilityCaution
}

func round(v float64, places int) float64 {
	scale := math.Pow(10, float64(places))
	return math.Round(v*scale) / scale
}
