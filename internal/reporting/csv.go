package reporting

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/dxcbench/faultbench/internal/benchmark"
)

var csvHeader = []string{
	"model", "engine", "gates", "avg_score", "evaluated", "skipped", "timed_out", "invalid",
}

// WriteCSV writes the report rows as CSV: one row per (model, engine) pair
// plus one overall row per engine. Overall rows carry an empty gates column.
func WriteCSV(w io.Writer, outcome *benchmark.RunOutcome) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(csvHeader); err != nil {
		return err
	}

	for _, row := range Rows(outcome) {
		gates := strconv.Itoa(row.Gates)
		if row.Model == OverallModel {
			gates = ""
		}

		record := []string{
			row.Model,
			row.Engine,
			gates,
			strconv.FormatFloat(row.AvgScore, 'f', 6, 64),
			strconv.Itoa(row.Evaluated),
			strconv.Itoa(row.Skipped),
			strconv.Itoa(row.TimedOut),
			strconv.Itoa(row.Invalid),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteCSVFile writes the CSV report to a file path.
func WriteCSVFile(path string, outcome *benchmark.RunOutcome) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating report: %w", err)
	}

	if err := WriteCSV(f, outcome); err != nil {
		f.Close()
		return err
	}

	return f.Close()
}
