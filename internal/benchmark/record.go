package benchmark

import (
	"time"

	"github.com/dxcbench/faultbench/internal/statistics"
)

// Status classifies the outcome of one scenario evaluation.
type Status string

const (
	// StatusScored means the engine answered in time with a valid group.
	StatusScored Status = "scored"

	// StatusTimedOut means the engine exceeded its budget; score is 0.
	StatusTimedOut Status = "timed_out"

	// StatusSkipped means the scenario was not evaluated (no ground truth
	// or malformed); it does not count toward averages.
	StatusSkipped Status = "skipped"

	// StatusInvalid means the engine answered with a malformed group or
	// failed outright; score is 0.
	StatusInvalid Status = "invalid"
)

// Evaluated reports whether the status counts toward score averages.
func (s Status) Evaluated() bool {
	return s == StatusScored || s == StatusTimedOut || s == StatusInvalid
}

// ScoreRecord is the result of one scenario evaluation. Immutable once
// appended to a ModelResult.
type ScoreRecord struct {
	Scenario string
	Status   Status
	Score    float64
	Duration time.Duration

	// Detail carries the skip or failure reason, empty when scored.
	Detail string
}

// ModelResult collects one engine's records over one model's scenarios.
type ModelResult struct {
	Model          string
	ComponentCount int
	Engine         string
	Records        []ScoreRecord
}

// Scores returns the evaluated scenarios' scores, in record order.
func (r *ModelResult) Scores() []float64 {
	var scores []float64
	for _, rec := range r.Records {
		if rec.Status.Evaluated() {
			scores = append(scores, rec.Score)
		}
	}
	return scores
}

// Count returns the number of records with the given status.
func (r *ModelResult) Count(s Status) int {
	var n int
	for _, rec := range r.Records {
		if rec.Status == s {
			n++
		}
	}
	return n
}

// Evaluated returns the number of scenarios that count toward the average.
func (r *ModelResult) Evaluated() int {
	var n int
	for _, rec := range r.Records {
		if rec.Status.Evaluated() {
			n++
		}
	}
	return n
}

// AverageScore returns the mean over evaluated scenarios, 0 when none were.
func (r *ModelResult) AverageScore() float64 {
	return statistics.Mean(r.Scores())
}

// EngineSummary is one engine's aggregate across every model in a run.
type EngineSummary struct {
	Engine string

	// Score is the overall aggregate, weighted per the run's aggregation
	// mode.
	Score float64

	// CI is the bootstrap confidence interval over the pooled per-scenario
	// scores; degenerate when fewer than 2 scenarios were evaluated.
	CI statistics.ConfidenceInterval

	Evaluated int
	Skipped   int
	TimedOut  int
	Invalid   int
}

// RunOutcome is the complete result of one benchmark run.
type RunOutcome struct {
	RunID       string
	StartedAt   time.Time
	Duration    time.Duration
	Aggregation string

	// Results holds one entry per (model, engine) pair.
	Results []ModelResult

	// Summaries holds one overall entry per engine, in engine order.
	Summaries []EngineSummary
}

// Recorder persists run outcomes. The sqlite store implements it; the
// runner treats persistence failures as non-fatal.
type Recorder interface {
	RecordRun(outcome *RunOutcome) error
}
