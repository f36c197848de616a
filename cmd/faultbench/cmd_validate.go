package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dxcbench/faultbench/internal/circuit"
	"github.com/dxcbench/faultbench/internal/discovery"
	"github.com/dxcbench/faultbench/internal/scenario"
)

func newValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <data-dir>",
		Short: "Validate benchmark data without running any engine",
		Long: `Validate parses every model and scenario under a data directory and
reports structural problems: malformed netlists, scenarios referencing
unknown wires, missing assignments, bad ambiguity groups.`,
		Args: cobra.ExactArgs(1),
		RunE: validateCommandE,
	}
}

func validateCommandE(cmd *cobra.Command, args []string) error {
	targets, err := discovery.Discover(args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	var problems int

	for _, target := range targets {
		m, err := circuit.Load(target.ModelPath)
		if err != nil {
			problems++
			fmt.Fprintf(out, "FAIL  %s: %v\n", target.ModelName, err)
			continue
		}

		fmt.Fprintf(out, "ok    %s (%d gates, %d scenarios)\n",
			target.ModelName, m.ComponentCount(), len(target.ScenarioPaths))

		for _, path := range target.ScenarioPaths {
			sc, err := scenario.LoadFile(path)
			if err == nil {
				err = sc.Validate(m)
			}
			if err != nil {
				problems++
				fmt.Fprintf(out, "FAIL    %v\n", err)
			}
		}
	}

	if problems > 0 {
		return &BenchmarkFailureError{
			Message: fmt.Sprintf("%d problem(s) found in %s", problems, args[0]),
		}
	}

	fmt.Fprintf(out, "all %d model(s) valid\n", len(targets))
	return nil
}
