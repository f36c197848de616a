// Package benchmark orchestrates the evaluation of diagnosis engines over
// circuit models and scenarios, enforcing per-scenario time budgets and
// aggregating utility scores.
package benchmark

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/dxcbench/faultbench/internal/circuit"
	"github.com/dxcbench/faultbench/internal/config"
	"github.com/dxcbench/faultbench/internal/diagnosis"
	"github.com/dxcbench/faultbench/internal/discovery"
	"github.com/dxcbench/faultbench/internal/scenario"
	"github.com/dxcbench/faultbench/internal/scoring"
	"github.com/dxcbench/faultbench/internal/statistics"
)

// Runner evaluates a set of diagnosis engines over discovered benchmark
// targets. Models are immutable and safely shared; each engine invocation
// runs in its own goroutine so a timed-out diagnosis cannot leak into the
// next scenario's result.
type Runner struct {
	cfg      *config.Config
	engines  []diagnosis.Engine
	timeout  time.Duration
	recorder Recorder
	logger   *slog.Logger

	// Progress tracking
	progressMu sync.Mutex
	listeners  []ProgressListener
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithRecorder persists every run outcome through rec. Persistence
// failures are logged, not fatal.
func WithRecorder(rec Recorder) RunnerOption {
	return func(r *Runner) {
		r.recorder = rec
	}
}

// WithLogger overrides the default slog logger.
func WithLogger(logger *slog.Logger) RunnerOption {
	return func(r *Runner) {
		r.logger = logger
	}
}

// NewRunner creates a runner for the given config and engine list.
func NewRunner(cfg *config.Config, engines []diagnosis.Engine, opts ...RunnerOption) *Runner {
	r := &Runner{
		cfg:       cfg,
		engines:   engines,
		timeout:   time.Duration(cfg.TimeoutSec) * time.Second,
		logger:    slog.Default(),
		listeners: []ProgressListener{},
	}
	for _, o := range opts {
		o(r)
	}
	return r
}

// Run discovers the configured data dir and evaluates every engine over
// every model.
func (r *Runner) Run(ctx context.Context) (*RunOutcome, error) {
	targets, err := discovery.Discover(r.cfg.DataDir)
	if err != nil {
		return nil, err
	}
	return r.RunTargets(ctx, targets)
}

// RunTargets evaluates every engine over the given targets. A model that
// fails to load aborts that model only; the error is reported through
// progress events and the model is absent from the outcome.
func (r *Runner) RunTargets(ctx context.Context, targets []discovery.Target) (*RunOutcome, error) {
	outcome := &RunOutcome{
		RunID:       uuid.NewString(),
		StartedAt:   time.Now(),
		Aggregation: string(r.cfg.Aggregation),
	}

	r.notifyProgress(ProgressEvent{
		EventType:   EventBenchmarkStart,
		TotalModels: len(targets),
	})

	// Per-target result slots; parallel workers never share a slot, so the
	// merge below needs no locking.
	perTarget := make([][]ModelResult, len(targets))

	workers := 1
	if r.cfg.Parallel {
		workers = r.cfg.Workers
		if workers <= 0 {
			workers = runtime.NumCPU()
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, target := range targets {
		g.Go(func() error {
			results, err := r.runModel(gctx, target, i+1, len(targets))
			if err != nil {
				if gctx.Err() != nil {
					return gctx.Err()
				}
				r.logger.Warn("model failed to load, skipping",
					"model", target.ModelName, "error", err)
				r.notifyProgress(ProgressEvent{
					EventType: EventModelFailed,
					Model:     target.ModelName,
					ModelNum:  i + 1,
					Detail:    err.Error(),
				})
				return nil
			}
			perTarget[i] = results
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	for _, results := range perTarget {
		outcome.Results = append(outcome.Results, results...)
	}
	outcome.Summaries = r.summarize(outcome.Results)
	outcome.Duration = time.Since(outcome.StartedAt)

	if r.recorder != nil {
		if err := r.recorder.RecordRun(outcome); err != nil {
			r.logger.Warn("failed to persist run outcome", "run_id", outcome.RunID, "error", err)
		}
	}

	r.notifyProgress(ProgressEvent{
		EventType:   EventBenchmarkComplete,
		TotalModels: len(targets),
		Duration:    outcome.Duration,
	})

	return outcome, nil
}

// loadedScenario keeps a scenario next to its load or validation error so
// every engine sees the same skip.
type loadedScenario struct {
	name string
	sc   *scenario.Scenario
	err  error
}

func (r *Runner) runModel(ctx context.Context, target discovery.Target, modelNum, totalModels int) ([]ModelResult, error) {
	m, err := circuit.Load(target.ModelPath)
	if err != nil {
		return nil, err
	}

	scenarios := make([]loadedScenario, 0, len(target.ScenarioPaths))
	for _, path := range target.ScenarioPaths {
		sc, err := scenario.LoadFile(path)
		ls := loadedScenario{sc: sc, err: err}
		if err != nil {
			ls.name = path
		} else {
			ls.name = sc.Name
			if verr := sc.Validate(m); verr != nil {
				ls.err = verr
			}
		}
		scenarios = append(scenarios, ls)
	}

	r.notifyProgress(ProgressEvent{
		EventType:      EventModelStart,
		Model:          m.Name(),
		ModelNum:       modelNum,
		TotalModels:    totalModels,
		TotalScenarios: len(scenarios),
	})

	results := make([]ModelResult, 0, len(r.engines))
	for _, eng := range r.engines {
		result, err := r.runEngine(ctx, m, eng, scenarios)
		if err != nil {
			return nil, err
		}
		results = append(results, result)
	}

	r.notifyProgress(ProgressEvent{
		EventType:   EventModelComplete,
		Model:       m.Name(),
		ModelNum:    modelNum,
		TotalModels: totalModels,
	})

	return results, nil
}

func (r *Runner) runEngine(ctx context.Context, m *circuit.Model, eng diagnosis.Engine, scenarios []loadedScenario) (ModelResult, error) {
	result := ModelResult{
		Model:          m.Name(),
		ComponentCount: m.ComponentCount(),
		Engine:         eng.Name(),
	}

	for i, ls := range scenarios {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		rec := r.evaluateScenario(ctx, m, eng, ls)
		if err := ctx.Err(); err != nil {
			return result, err
		}
		result.Records = append(result.Records, rec)

		r.notifyProgress(ProgressEvent{
			EventType:      EventScenarioComplete,
			Model:          m.Name(),
			Engine:         eng.Name(),
			Scenario:       rec.Scenario,
			ScenarioNum:    i + 1,
			TotalScenarios: len(scenarios),
			Status:         rec.Status,
			Score:          rec.Score,
			Duration:       rec.Duration,
			Detail:         rec.Detail,
		})
	}

	return result, nil
}

func (r *Runner) evaluateScenario(ctx context.Context, m *circuit.Model, eng diagnosis.Engine, ls loadedScenario) ScoreRecord {
	if ls.err != nil {
		r.logger.Warn("skipping malformed scenario",
			"model", m.Name(), "scenario", ls.name, "error", ls.err)
		return ScoreRecord{Scenario: ls.name, Status: StatusSkipped, Detail: ls.err.Error()}
	}

	sc := ls.sc
	if !sc.HasGroundTruth() || len(sc.GroundTruth) == 0 {
		return ScoreRecord{Scenario: sc.Name, Status: StatusSkipped, Detail: ErrMissingGroundTruth.Error()}
	}

	group, elapsed, err := r.diagnose(ctx, m, eng, sc)
	if err != nil {
		if ctx.Err() != nil {
			// The run itself is being torn down; the record is discarded
			// by the caller's ctx check.
			return ScoreRecord{Scenario: sc.Name, Status: StatusSkipped, Detail: err.Error()}
		}
		status := StatusInvalid
		if errors.Is(err, ErrDiagnosisTimeout) {
			status = StatusTimedOut
		}
		return ScoreRecord{Scenario: sc.Name, Status: status, Score: 0, Duration: elapsed, Detail: err.Error()}
	}

	if err := scoring.ValidateDiagnosis(m, group); err != nil {
		r.logger.Warn("engine returned invalid diagnosis",
			"model", m.Name(), "engine", eng.Name(), "scenario", sc.Name, "error", err)
		return ScoreRecord{Scenario: sc.Name, Status: StatusInvalid, Score: 0, Duration: elapsed, Detail: err.Error()}
	}

	score, err := scoring.Score(group, sc.GroundTruth, m.ComponentCount(), sc.Normalization)
	if err != nil {
		r.logger.Warn("scenario could not be scored",
			"model", m.Name(), "scenario", sc.Name, "error", err)
		return ScoreRecord{Scenario: sc.Name, Status: StatusSkipped, Duration: elapsed, Detail: err.Error()}
	}

	return ScoreRecord{Scenario: sc.Name, Status: StatusScored, Score: score, Duration: elapsed}
}

type diagnoseResult struct {
	group circuit.AmbiguityGroup
	err   error
}

// diagnose runs one engine invocation under the per-scenario budget. The
// result channel is buffered so a straggler that answers after the deadline
// parks its result for the garbage collector instead of blocking, and
// nothing it does can reach shared state.
func (r *Runner) diagnose(ctx context.Context, m *circuit.Model, eng diagnosis.Engine, sc *scenario.Scenario) (circuit.AmbiguityGroup, time.Duration, error) {
	scnCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	ch := make(chan diagnoseResult, 1)
	start := time.Now()

	go func() {
		group, err := eng.Diagnose(scnCtx, m, sc)
		ch <- diagnoseResult{group: group, err: err}
	}()

	select {
	case res := <-ch:
		if res.err != nil {
			if scnCtx.Err() != nil && ctx.Err() == nil {
				return nil, time.Since(start), fmt.Errorf("%w after %s", ErrDiagnosisTimeout, r.timeout)
			}
			return nil, time.Since(start), res.err
		}
		return res.group, time.Since(start), nil
	case <-scnCtx.Done():
		if ctx.Err() != nil {
			return nil, time.Since(start), ctx.Err()
		}
		return nil, time.Since(start), fmt.Errorf("%w after %s", ErrDiagnosisTimeout, r.timeout)
	}
}

// summarize builds the per-engine overall aggregates.
func (r *Runner) summarize(results []ModelResult) []EngineSummary {
	summaries := make([]EngineSummary, 0, len(r.engines))

	for _, eng := range r.engines {
		summary := EngineSummary{Engine: eng.Name()}

		var modelMeans []float64
		var modelWeights []int
		var pooled []float64

		for _, res := range results {
			if res.Engine != eng.Name() {
				continue
			}

			summary.Skipped += res.Count(StatusSkipped)
			summary.TimedOut += res.Count(StatusTimedOut)
			summary.Invalid += res.Count(StatusInvalid)

			scores := res.Scores()
			if len(scores) == 0 {
				continue
			}
			summary.Evaluated += len(scores)
			modelMeans = append(modelMeans, statistics.Mean(scores))
			modelWeights = append(modelWeights, len(scores))
			pooled = append(pooled, scores...)
		}

		switch r.cfg.Aggregation {
		case config.AggregationModels:
			summary.Score = statistics.Mean(modelMeans)
		default:
			summary.Score = statistics.WeightedMean(modelMeans, modelWeights)
		}
		summary.CI = statistics.BootstrapCI(pooled, 0.95)

		summaries = append(summaries, summary)
	}

	return summaries
}
