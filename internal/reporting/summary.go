// Package reporting renders benchmark outcomes for humans (console) and
// machines (CSV).
package reporting

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/dxcbench/faultbench/internal/benchmark"
)

// OverallModel names the aggregate rows in reports.
const OverallModel = "(overall)"

// Row is one report line: a (model, engine) pair or an engine's overall
// aggregate.
type Row struct {
	Model     string
	Engine    string
	Gates     int
	AvgScore  float64
	Evaluated int
	Skipped   int
	TimedOut  int
	Invalid   int
}

// Rows flattens an outcome into report rows: one per (model, engine) pair
// in result order, then one overall row per engine.
func Rows(outcome *benchmark.RunOutcome) []Row {
	rows := make([]Row, 0, len(outcome.Results)+len(outcome.Summaries))

	for _, res := range outcome.Results {
		rows = append(rows, Row{
			Model:     res.Model,
			Engine:    res.Engine,
			Gates:     res.ComponentCount,
			AvgScore:  res.AverageScore(),
			Evaluated: res.Evaluated(),
			Skipped:   res.Count(benchmark.StatusSkipped),
			TimedOut:  res.Count(benchmark.StatusTimedOut),
			Invalid:   res.Count(benchmark.StatusInvalid),
		})
	}

	for _, s := range outcome.Summaries {
		rows = append(rows, Row{
			Model:     OverallModel,
			Engine:    s.Engine,
			AvgScore:  s.Score,
			Evaluated: s.Evaluated,
			Skipped:   s.Skipped,
			TimedOut:  s.TimedOut,
			Invalid:   s.Invalid,
		})
	}

	return rows
}

// InterpretScore returns a plain-language label for a normalized utility
// score (0-1).
func InterpretScore(score float64) string {
	pct := score * 100
	switch {
	case pct > 90:
		return "Excellent (>90%)"
	case pct >= 70:
		return "Good (70-90%)"
	case pct >= 50:
		return "Needs Work (50-70%)"
	default:
		return "Poor (<50%)"
	}
}

// FormatSummary produces the console run report.
func FormatSummary(outcome *benchmark.RunOutcome) string {
	p := message.NewPrinter(language.English)
	var b strings.Builder

	b.WriteString("=== Benchmark Summary ===\n\n")
	b.WriteString(fmt.Sprintf("Run:         %s\n", outcome.RunID))
	b.WriteString(fmt.Sprintf("Duration:    %v\n", outcome.Duration.Round(1e6)))
	b.WriteString(fmt.Sprintf("Aggregation: %s\n\n", outcome.Aggregation))

	for _, res := range outcome.Results {
		b.WriteString(p.Sprintf("  %s × %s (%d gates): %.4f over %d scenarios",
			res.Model, res.Engine, res.ComponentCount, res.AverageScore(), res.Evaluated()))

		var notes []string
		if n := res.Count(benchmark.StatusSkipped); n > 0 {
			notes = append(notes, p.Sprintf("%d skipped", n))
		}
		if n := res.Count(benchmark.StatusTimedOut); n > 0 {
			notes = append(notes, p.Sprintf("%d timed out", n))
		}
		if n := res.Count(benchmark.StatusInvalid); n > 0 {
			notes = append(notes, p.Sprintf("%d invalid", n))
		}
		if len(notes) > 0 {
			b.WriteString(" (" + strings.Join(notes, ", ") + ")")
		}
		b.WriteString("\n")
	}

	b.WriteString("\nOverall:\n")
	for _, s := range outcome.Summaries {
		b.WriteString(p.Sprintf("  %s: %.4f — %s\n", s.Engine, s.Score, InterpretScore(s.Score)))
		b.WriteString(p.Sprintf("      evaluated %d, skipped %d, timed out %d, invalid %d\n",
			s.Evaluated, s.Skipped, s.TimedOut, s.Invalid))
		if s.CI.NumBootstraps > 0 {
			b.WriteString(p.Sprintf("      95%% CI [%.4f, %.4f]\n", s.CI.Lower, s.CI.Upper))
		}
	}

	return b.String()
}
