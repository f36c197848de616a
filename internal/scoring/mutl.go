// Package scoring implements the normalized m_utl utility metric that
// compares a predicted ambiguity group against a scenario's ground truth.
package scoring

import (
	"errors"
	"fmt"

	"github.com/dxcbench/faultbench/internal/circuit"
)

// ErrInvalidDiagnosis marks an ambiguity group that is not a well-formed
// answer for the model it claims to diagnose. The runner records such an
// answer as score 0 rather than crashing.
var ErrInvalidDiagnosis = errors.New("invalid diagnosis")

// ErrEmptyGroundTruth marks a scenario whose ground-truth group has no
// hypotheses. That is a data error, not a zero score.
var ErrEmptyGroundTruth = errors.New("empty ground truth")

// Pair computes m_utl for one (predicted, truth) hypothesis pair over a
// model with f components:
//
//	m_utl = 1 - n(N+1)/(f(n+1)) - n̄(N̄+1)/(f(n̄+1))
//
// where n counts false positives (gates predicted but not in truth), n̄
// counts false negatives, N = |predicted| and N̄ = f - N. The value is 1
// exactly when the hypotheses are equal, and decreases with every gate
// wrongly included or missed.
func Pair(predicted, truth circuit.Hypothesis, f int) float64 {
	var falsePos int
	for _, g := range predicted {
		if !truth.Contains(g) {
			falsePos++
		}
	}

	var falseNeg int
	for _, g := range truth {
		if !predicted.Contains(g) {
			falseNeg++
		}
	}

	n := float64(falsePos)
	nBar := float64(falseNeg)
	N := float64(len(predicted))
	NBar := float64(f) - N
	ff := float64(f)

	return 1 - n*(N+1)/(ff*(n+1)) - nBar*(NBar+1)/(ff*(nBar+1))
}

// Group computes m_utl between two ambiguity groups: the arithmetic mean of
// Pair over the full cross product. An empty predicted group scores 0; an
// empty truth returns ErrEmptyGroundTruth.
func Group(predicted, truth circuit.AmbiguityGroup, f int) (float64, error) {
	if len(truth) == 0 {
		return 0, ErrEmptyGroundTruth
	}
	if len(predicted) == 0 {
		return 0, nil
	}

	var sum float64
	for _, p := range predicted {
		for _, tr := range truth {
			sum += Pair(p, tr, f)
		}
	}
	return sum / float64(len(predicted)*len(truth)), nil
}

// Score normalizes Group(predicted, truth) by the best achievable value for
// this truth, so an exact reproduction of the truth always scores 1. When
// normalization is positive it is used as the precomputed denominator;
// otherwise the denominator is Group(truth, truth).
func Score(predicted, truth circuit.AmbiguityGroup, f int, normalization float64) (float64, error) {
	numerator, err := Group(predicted, truth, f)
	if err != nil {
		return 0, err
	}

	denominator := normalization
	if denominator <= 0 {
		denominator, err = Group(truth, truth, f)
		if err != nil {
			return 0, err
		}
	}
	if denominator <= 0 {
		return 0, fmt.Errorf("%w: non-positive normalization %g", ErrEmptyGroundTruth, denominator)
	}

	return numerator / denominator, nil
}

// ValidateDiagnosis checks that a predicted group is a well-formed answer
// for the model: every hypothesis names only gates the model has, and no
// hypothesis appears twice.
func ValidateDiagnosis(m *circuit.Model, group circuit.AmbiguityGroup) error {
	seen := make(map[string]bool, len(group))

	for _, h := range group {
		for _, g := range h {
			if !m.HasGate(g) {
				return fmt.Errorf("%w: hypothesis %s names unknown gate %q", ErrInvalidDiagnosis, h, g)
			}
		}

		key := h.Key()
		if seen[key] {
			return fmt.Errorf("%w: duplicate hypothesis %s", ErrInvalidDiagnosis, h)
		}
		seen[key] = true
	}

	return nil
}
