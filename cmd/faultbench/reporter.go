package main

import (
	"fmt"
	"io"
	"os"
	"sync"

	"golang.org/x/term"

	"github.com/dxcbench/faultbench/internal/benchmark"
)

// progressReporter turns runner progress events into console output: a
// compact dot stream on a tty, per-scenario lines when verbose.
type progressReporter struct {
	w       io.Writer
	verbose bool
	isTTY   bool

	mu      sync.Mutex
	dots    int
	failed  []string
}

func newProgressReporter(w io.Writer, verbose bool) *progressReporter {
	isTTY := false
	if f, ok := w.(*os.File); ok {
		isTTY = term.IsTerminal(int(f.Fd()))
	}
	return &progressReporter{w: w, verbose: verbose, isTTY: isTTY}
}

func statusGlyph(s benchmark.Status) string {
	switch s {
	case benchmark.StatusScored:
		return "."
	case benchmark.StatusTimedOut:
		return "T"
	case benchmark.StatusInvalid:
		return "!"
	default:
		return "s"
	}
}

func (r *progressReporter) handleEvent(ev benchmark.ProgressEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()

	switch ev.EventType {
	case benchmark.EventBenchmarkStart:
		fmt.Fprintf(r.w, "Benchmarking %d model(s)\n", ev.TotalModels)
	case benchmark.EventModelStart:
		if r.verbose {
			fmt.Fprintf(r.w, "[%d/%d] %s (%d scenarios)\n",
				ev.ModelNum, ev.TotalModels, ev.Model, ev.TotalScenarios)
		}
	case benchmark.EventModelFailed:
		r.failed = append(r.failed, ev.Model)
		r.breakDots()
		fmt.Fprintf(r.w, "model %s failed: %s\n", ev.Model, ev.Detail)
	case benchmark.EventScenarioComplete:
		if r.verbose {
			fmt.Fprintf(r.w, "  %s/%s %s: %s score=%.4f (%v)\n",
				ev.Model, ev.Engine, ev.Scenario, ev.Status, ev.Score, ev.Duration.Round(1e6))
			return
		}
		if r.isTTY {
			fmt.Fprint(r.w, statusGlyph(ev.Status))
			r.dots++
		}
	}
}

// finish terminates the dot stream so the summary starts on its own line.
func (r *progressReporter) finish() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.breakDots()
}

func (r *progressReporter) breakDots() {
	if r.dots > 0 {
		fmt.Fprintln(r.w)
		r.dots = 0
	}
}

func (r *progressReporter) failedModels() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.failed...)
}
