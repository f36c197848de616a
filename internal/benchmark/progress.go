package benchmark

import "time"

// ProgressListener receives progress updates
type ProgressListener func(event ProgressEvent)

// EventType represents the type of progress event
type EventType string

// EventType constants
const (
	EventBenchmarkStart    EventType = "benchmark_start"
	EventBenchmarkComplete EventType = "benchmark_complete"
	EventModelStart        EventType = "model_start"
	EventModelComplete     EventType = "model_complete"
	EventModelFailed       EventType = "model_failed"
	EventScenarioComplete  EventType = "scenario_complete"
)

// ProgressEvent represents a progress update
type ProgressEvent struct {
	EventType      EventType
	Model          string
	Engine         string
	Scenario       string
	ScenarioNum    int
	TotalScenarios int
	ModelNum       int
	TotalModels    int
	Status         Status
	Score          float64
	Duration       time.Duration
	Detail         string
}

func (r *Runner) notifyProgress(event ProgressEvent) {
	r.progressMu.Lock()
	listeners := make([]ProgressListener, len(r.listeners))
	copy(listeners, r.listeners)
	r.progressMu.Unlock()

	for _, listener := range listeners {
		listener(event)
	}
}

// OnProgress registers a progress listener
func (r *Runner) OnProgress(listener ProgressListener) {
	r.progressMu.Lock()
	defer r.progressMu.Unlock()
	r.listeners = append(r.listeners, listener)
}
