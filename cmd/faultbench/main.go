package main

import (
	"errors"
	"fmt"
	"os"
)

// Exit codes for different failure modes
const (
	ExitSuccess     = 0 // Benchmark completed and passed
	ExitBenchFailed = 1 // Benchmark ran, but a model failed or a threshold was missed
	ExitError       = 2 // Configuration or runtime error
)

// BenchmarkFailureError indicates that the benchmark itself ran, but a
// model could not be evaluated or a score threshold was not met.
type BenchmarkFailureError struct {
	Message string
}

func (e *BenchmarkFailureError) Error() string {
	return e.Message
}

func main() {
	if err := execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)

		var benchErr *BenchmarkFailureError
		if errors.As(err, &benchErr) {
			os.Exit(ExitBenchFailed)
		}

		// All other errors are configuration/runtime errors
		os.Exit(ExitError)
	}
}
