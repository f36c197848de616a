package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dxcbench/faultbench/internal/discovery"
	"github.com/dxcbench/faultbench/internal/results"
)

var listStore string

func newListCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list <data-dir>",
		Short: "List discovered models and scenarios",
		Args:  cobra.ExactArgs(1),
		RunE:  listCommandE,
	}

	cmd.Flags().StringVar(&listStore, "store", "", "Also list past runs from this sqlite database")

	return cmd
}

func listCommandE(cmd *cobra.Command, args []string) error {
	targets, err := discovery.Discover(args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()

	for _, target := range targets {
		fmt.Fprintf(out, "%s\t%d scenario(s)\n", target.ModelName, len(target.ScenarioPaths))
	}
	if len(targets) == 0 {
		fmt.Fprintln(out, "no models found")
	}

	if listStore != "" {
		store, err := results.Open(listStore)
		if err != nil {
			return fmt.Errorf("failed to open score store: %w", err)
		}
		defer store.Close()

		runs, err := store.Runs()
		if err != nil {
			return err
		}

		fmt.Fprintln(out, "\nPast runs:")
		for _, r := range runs {
			fmt.Fprintf(out, "%s\t%s\t%d score(s)\t%v\n",
				r.RunID, r.StartedAt.Format("2006-01-02 15:04:05"), r.Scores, r.Duration)
		}
		if len(runs) == 0 {
			fmt.Fprintln(out, "(none)")
		}
	}

	return nil
}
