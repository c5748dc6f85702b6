package telemetry

import (
	"math"
	"strings"
	"testing"
	"time"

	"ghostlidar-sim/internal/workflow"
)

func TestGenerate(t *testing.T) {
	gen := NewGenerator("run-1", 60)
	fixed := time.Date(2026, 1, 2, 3, 4, 5, 0, time.FixedZone("x", 3600))
	gen.SetClock(func() time.Time { return fixed })

	st := gen.Generate(39, 39)

	if st.RunID != "run-1" || st.Tick != 39 {
		t.Errorf("unexpected identity: %+v", st)
	}
	if !st.Timestamp.Equal(fixed) || st.Timestamp.Location() != time.UTC {
		t.Errorf("expected UTC timestamp, got %v", st.Timestamp)
	}
	if st.Phase != workflow.CargoLoad {
		t.Errorf("expected CARGO-LOAD, got %s", st.Phase)
	}
	if st.PhaseProgress != 0.9 {
		t.Errorf("expected progress 0.9, got %v", st.PhaseProgress)
	}
	if st.Watchdog.Status != WatchdogPass || st.Watchdog.HumanDetected {
		t.Errorf("expected passing watchdog, got %+v", st.Watchdog)
	}
	if st.Watchdog.TimeElapsedSeconds != 39 || st.Watchdog.TimeRemainingSeconds != 21 {
		t.Errorf("unexpected watchdog times: %+v", st.Watchdog)
	}
	if st.Workflow.CurrentStep != 4 || st.Workflow.TotalSteps != 6 || st.Workflow.TargetMinutes != 15.0 {
		t.Errorf("unexpected workflow: %+v", st.Workflow)
	}
	if st.Workflow.ElapsedMinutes != 0.65 {
		t.Errorf("expected 0.65 minutes, got %v", st.Workflow.ElapsedMinutes)
	}
	if st.Workflow.StepLabel != workflow.Label(workflow.CargoLoad) {
		t.Errorf("unexpected label %q", st.Workflow.StepLabel)
	}
}

func TestWatchdogRemainingNeverNegative(t *testing.T) {
	gen := NewGenerator("r", 60)
	w := gen.Watchdog(75)
	if w.TimeRemainingSeconds != 0 {
		t.Fatalf("expected 0 remaining, got %d", w.TimeRemainingSeconds)
	}
}

func TestDraftsDeterministic(t *testing.T) {
	for tick := 0; tick < 50; tick++ {
		a := Drafts(workflow.CargoLoad, 0.5, tick)
		b := Drafts(workflow.CargoLoad, 0.5, tick)
		if a != b {
			t.Fatalf("tick %d jitter not reproducible: %+v vs %+v", tick, a, b)
		}
	}
	if Drafts(workflow.CargoLoad, 0.5, 1) == Drafts(workflow.CargoLoad, 0.5, 2) {
		t.Fatalf("expected different jitter for different ticks")
	}
}

func TestDraftsJitterBounds(t *testing.T) {
	const eps = 0.005 + 1e-9 // rounding to 2 dp
	for tick := 0; tick < 500; tick++ {
		d := Drafts(workflow.CargoLoad, 0, tick) // base 10.5
		check := func(name string, v, lo, hi float64) {
			if v < 10.5+lo-eps || v > 10.5+hi+eps {
				t.Fatalf("tick %d %s=%v outside [%v,%v]", tick, name, v, 10.5+lo, 10.5+hi)
			}
		}
		check("fore", d.Fore, -0.06, 0.03)
		check("aft", d.Aft, -0.03, 0.07)
		check("port", d.Port, -0.04, 0.05)
		check("starboard", d.Starboard, -0.04, 0.05)
		mean := (d.Fore + d.Aft + d.Port + d.Starboard) / 4
		if math.Abs(mean-d.Mean) > 0.011 {
			t.Fatalf("tick %d mean %v far from corner average %v", tick, d.Mean, mean)
		}
		if d.Unit != DraftUnit {
			t.Fatalf("unexpected unit %q", d.Unit)
		}
	}
}

func TestDraftBaseByPhase(t *testing.T) {
	cases := map[workflow.Phase][2]float64{
		workflow.PreSurvey:  {10.0, 10.5},
		workflow.BallastAdj: {10.4, 10.5},
		workflow.CranePos:   {10.48, 10.52},
		workflow.CargoLoad:  {10.5, 12.5},
		workflow.TrimCorr:   {12.45, 12.5},
		workflow.FinalSurv:  {12.48, 12.52},
	}
	for phase, rng := range cases {
		for _, p := range []float64{0, 0.25, 0.5, 0.75, 1} {
			d := Drafts(phase, p, 7)
			if d.Mean < rng[0]-0.1 || d.Mean > rng[1]+0.1 {
				t.Errorf("%s p=%v mean %v outside %v", phase, p, d.Mean, rng)
			}
		}
	}
}

func TestCrane(t *testing.T) {
	c := Crane(workflow.CargoLoad, 0.5)
	if c.LoadWeight != 1700 || c.MaxCapacity != MaxCraneCapacity {
		t.Errorf("unexpected load: %+v", c)
	}
	if c.BoomAngle != 40.0 || c.SlewBearing != 196.0 || c.HookHeight != 14.5 {
		t.Errorf("unexpected geometry: %+v", c)
	}
	if c.Status != CraneLoading || c.SignalCode != SignalLoad {
		t.Errorf("unexpected status: %+v", c)
	}
	if c.GCode != "G01 X196.0 Y40.0 Z14.5 F500" {
		t.Errorf("unexpected g-code %q", c.GCode)
	}

	statuses := map[workflow.Phase]string{
		workflow.PreSurvey:  CraneIdle,
		workflow.BallastAdj: CraneIdle,
		workflow.CranePos:   CranePositioning,
		workflow.CargoLoad:  CraneLoading,
		workflow.TrimCorr:   CraneTrimAdjust,
		workflow.FinalSurv:  CraneReturning,
	}
	for phase, want := range statuses {
		got := Crane(phase, 0.3)
		if got.Status != want {
			t.Errorf("%s status=%s, want %s", phase, got.Status, want)
		}
		if !strings.HasPrefix(got.GCode, "G01 X") || !strings.HasSuffix(got.GCode, " F500") {
			t.Errorf("%s malformed g-code %q", phase, got.GCode)
		}
	}
}

func TestStability(t *testing.T) {
	s := StabilityFor(workflow.CargoLoad, 1)
	if s.GM != 3.3 || s.Displacement != 3500 || s.Status != StabilityNominal {
		t.Errorf("unexpected cargo stability: %+v", s)
	}
	if s.Trim != 0.25 || s.Heel != -0.13 {
		t.Errorf("unexpected attitude: %+v", s)
	}
	if got := StabilityFor(workflow.PreSurvey, 0.5); got.GM != 4.3 || got.Displacement != 2200 {
		t.Errorf("unexpected idle stability: %+v", got)
	}
}

func TestStabilityStatus(t *testing.T) {
	cases := map[float64]string{
		4.0:   StabilityNominal,
		3.2:   StabilityNominal,
		3.199: StabilityCaution,
		0:     StabilityCaution,
	}
	for gm, want := range cases {
		if got := StabilityStatus(gm); got != want {
			t.Errorf("StabilityStatus(%v)=%s, want %s", gm, got, want)
		}
	}
}

func TestGeometry(t *testing.T) {
	st := SimulationState{
		Tick:          3,
		Phase:         workflow.TrimCorr,
		DraftReadings: DraftReadings{Mean: 10},
		Stability:     Stability{Trim: 0.12, Heel: -0.05},
	}
	g := st.Geometry()
	if g.Draft != 3.048 || g.Trim != 0.12 || g.Heel != -0.05 || g.Tick != 3 || g.Phase != workflow.TrimCorr {
		t.Fatalf("unexpected geometry record: %+v", g)
	}
}
