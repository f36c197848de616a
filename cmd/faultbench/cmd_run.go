package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dxcbench/faultbench/internal/benchmark"
	"github.com/dxcbench/faultbench/internal/config"
	"github.com/dxcbench/faultbench/internal/diagnosis"
	"github.com/dxcbench/faultbench/internal/reporting"
	"github.com/dxcbench/faultbench/internal/results"
)

var (
	runDataDir   string
	runTimeout   int
	runParallel  bool
	runWorkers   int
	runReport    string
	runStore     string
	runFailUnder float64
	runVerbose   bool
)

func newRunCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run <bench.yaml>",
		Short: "Run the diagnosis benchmark",
		Long: `Run the benchmark described by a config file.

The config names a data directory (models/ plus scenarios/), the engines to
evaluate, the per-scenario timeout and the aggregation mode. Most settings
can be overridden with flags.`,
		Args: cobra.ExactArgs(1),
		RunE: runCommandE,
	}

	cmd.Flags().StringVar(&runDataDir, "data-dir", "", "Override the config's data directory")
	cmd.Flags().IntVar(&runTimeout, "timeout", 0, "Per-scenario timeout in seconds (overrides config)")
	cmd.Flags().BoolVar(&runParallel, "parallel", false, "Evaluate models concurrently")
	cmd.Flags().IntVar(&runWorkers, "workers", 0, "Number of concurrent workers (requires --parallel)")
	cmd.Flags().StringVarP(&runReport, "report", "o", "", "Write the CSV report to this path (overrides config)")
	cmd.Flags().StringVar(&runStore, "store", "", "Append score records to this sqlite database (overrides config)")
	cmd.Flags().Float64Var(&runFailUnder, "fail-under", 0, "Exit non-zero when any engine's overall score is below this value")
	cmd.Flags().BoolVarP(&runVerbose, "verbose", "v", false, "Verbose output with per-scenario progress")

	return cmd
}

func runCommandE(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(args[0])
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// CLI flags override the config
	if runDataDir != "" {
		cfg.DataDir = runDataDir
	}
	if runTimeout > 0 {
		cfg.TimeoutSec = runTimeout
	}
	if runParallel {
		cfg.Parallel = true
	}
	if runWorkers > 0 {
		cfg.Workers = runWorkers
	}
	if runReport != "" {
		cfg.ReportPath = runReport
	}
	if runStore != "" {
		cfg.StorePath = runStore
	}

	engines, err := buildEngines(cfg)
	if err != nil {
		return err
	}

	var opts []benchmark.RunnerOption
	if cfg.StorePath != "" {
		store, err := results.Open(cfg.StorePath)
		if err != nil {
			return fmt.Errorf("failed to open score store: %w", err)
		}
		defer store.Close()
		opts = append(opts, benchmark.WithRecorder(store))
	}

	runner := benchmark.NewRunner(cfg, engines, opts...)

	reporter := newProgressReporter(cmd.OutOrStdout(), runVerbose)
	runner.OnProgress(reporter.handleEvent)

	outcome, err := runner.Run(cmd.Context())
	if err != nil {
		return err
	}
	reporter.finish()

	fmt.Fprintln(cmd.OutOrStdout())
	fmt.Fprint(cmd.OutOrStdout(), reporting.FormatSummary(outcome))

	if cfg.ReportPath != "" {
		if err := reporting.WriteCSVFile(cfg.ReportPath, outcome); err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "\nReport written to %s\n", cfg.ReportPath)
	}

	if failed := reporter.failedModels(); len(failed) > 0 {
		return &BenchmarkFailureError{
			Message: fmt.Sprintf("%d model(s) failed to load: %v", len(failed), failed),
		}
	}

	if runFailUnder > 0 {
		for _, s := range outcome.Summaries {
			if s.Score < runFailUnder {
				return &BenchmarkFailureError{
					Message: fmt.Sprintf("engine %s scored %.4f, below threshold %.4f",
						s.Engine, s.Score, runFailUnder),
				}
			}
		}
	}

	return nil
}

// buildEngines instantiates the configured engine list.
func buildEngines(cfg *config.Config) ([]diagnosis.Engine, error) {
	engines := make([]diagnosis.Engine, 0, len(cfg.Engines))
	for _, ec := range cfg.Engines {
		eng, err := diagnosis.New(diagnosis.Kind(ec.Kind), ec.Name, ec.Params)
		if err != nil {
			return nil, fmt.Errorf("failed to create engine %q: %w", ec.Kind, err)
		}
		engines = append(engines, eng)
	}
	return engines, nil
}
