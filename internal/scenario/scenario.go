// Package scenario loads and validates benchmark scenarios: an input
// assignment, the observed outputs, and optionally the ground-truth
// ambiguity group a diagnoser is scored against.
package scenario

import (
	"errors"
	"fmt"

	"github.com/dxcbench/faultbench/internal/circuit"
	"github.com/dxcbench/faultbench/internal/simulate"
)

// ErrMalformed is wrapped by scenario parse and validation failures. A
// malformed scenario is skipped with a warning; it never aborts a model run.
var ErrMalformed = errors.New("malformed scenario")

// Scenario is one test case. Read-only after load.
type Scenario struct {
	Name     string
	Inputs   simulate.Assignment
	Observed simulate.Assignment

	// GroundTruth is nil when the scenario carries no ambiguity group (or an
	// explicit timeout marker); such scenarios are skipped, not scored.
	GroundTruth circuit.AmbiguityGroup

	// Normalization is the precomputed m_utl(T,T) denominator, or 0 when the
	// scenario file does not carry one and it must be computed on demand.
	Normalization float64
}

// HasGroundTruth reports whether the scenario can be scored.
func (s *Scenario) HasGroundTruth() bool {
	return s.GroundTruth != nil
}

// Validate checks the scenario against a model: assignments may only
// reference the model's primary wires, every primary input must be assigned,
// at least one output must be observed, and ground-truth hypotheses may only
// name gates the model has.
func (s *Scenario) Validate(m *circuit.Model) error {
	for w := range s.Inputs {
		if !m.IsInput(w) {
			return fmt.Errorf("%w: %s: %q is not a primary input of model %s",
				ErrMalformed, s.Name, w, m.Name())
		}
	}
	for _, w := range m.Inputs() {
		if _, ok := s.Inputs[w]; !ok {
			return fmt.Errorf("%w: %s: input %q is unassigned", ErrMalformed, s.Name, w)
		}
	}

	if len(s.Observed) == 0 {
		return fmt.Errorf("%w: %s: no observed outputs", ErrMalformed, s.Name)
	}
	for w := range s.Observed {
		if !m.IsOutput(w) {
			return fmt.Errorf("%w: %s: %q is not a primary output of model %s",
				ErrMalformed, s.Name, w, m.Name())
		}
	}

	for _, h := range s.GroundTruth {
		for _, g := range h {
			if !m.HasGate(g) {
				return fmt.Errorf("%w: %s: ground truth names unknown gate %q",
					ErrMalformed, s.Name, g)
			}
		}
	}

	return nil
}
