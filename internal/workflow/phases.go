// Package workflow defines the ordered barge-loading phases and maps run
// progress onto them.
package workflow

import "math"

// Phase identifies one stage of the drafting workflow.
type Phase string

// Phase codes in workflow order.
const (
	PreSurvey  Phase = "PRE-SURVEY"
	BallastAdj Phase = "BALLAST-ADJ"
	CranePos   Phase = "CRANE-POS"
	CargoLoad  Phase = "CARGO-LOAD"
	TrimCorr   Phase = "TRIM-CORR"
	FinalSurv  Phase = "FINAL-SURV"
)

// Step pairs a phase code with its operator-facing label.
type Step struct {
	Phase Phase
	Label string
}

var steps = []Step{
	{PreSurvey, "Pre-Load Draft Survey"},
	{BallastAdj, "Ballast Adjustment"},
	{CranePos, "Crane Positioning"},
	{CargoLoad, "Cargo Loading and Monitoring"},
	{TrimCorr, "Trim Correction"},
	{FinalSurv, "Final Draft Survey"},
}

// TargetMinutes is the canonical drafting cycle duration reported to
// operators, independent of the simulated duration.
const TargetMinutes = 15.0

// Steps returns a copy of the ordered workflow steps.
func Steps() []Step {
	out := make([]Step, len(steps))
	copy(out, steps)
	return out
}

// TotalSteps is the number of phases in the workflow.
func TotalSteps() int { return len(steps) }

// Label returns the human-readable label of p, or "" for an unknown phase.
func Label(p Phase) string {
	for _, s := range steps {
		if s.Phase == p {
			return s.Label
		}
	}
	return ""
}

// Index returns the zero-based position of p, or -1 if unknown.
func Index(p Phase) int {
	for i, s := range steps {
		if s.Phase == p {
			return i
		}
	}
	return -1
}

// Position is where a run currently sits within the workflow.
type Position struct {
	Index    int
	Step     Step
	Progress float64 // within the phase, [0,1]
}

// Number is the 1-based step number.
func (p Position) Number() int { return p.Index + 1 }

// GlobalProgress converts elapsed simulated seconds into overall run progress
// in [0,1].
func GlobalProgress(elapsed, total float64) float64 {
	if total <= 0 {
		return 1
	}
	return clamp01(elapsed / total)
}

// Locate splits overall progress into equal-width phase bins and reports the
// active phase and the fraction completed within it.
func Locate(global float64) Position {
	n := len(steps)
	size := 1 / float64(n)
	idx := int(math.Floor(global / size))
	if idx < 0 {
		idx = 0
	}
	if idx > n-1 {
		idx = n - 1
	}
	progress := clamp01((global - float64(idx)*size) / size)
	return Position{Index: idx, Step: steps[idx], Progress: progress}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
