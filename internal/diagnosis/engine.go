// Package diagnosis defines the diagnostic-algorithm interface and the
// built-in baseline engines.
package diagnosis

import (
	"context"
	"fmt"

	"github.com/go-viper/mapstructure/v2"

	"github.com/dxcbench/faultbench/internal/circuit"
	"github.com/dxcbench/faultbench/internal/scenario"
)

type Kind string

const (
	// KindSingleFault is the consistency-based baseline: it searches the
	// single stuck-at fault candidates for ones reproducing the observation.
	KindSingleFault Kind = "single-fault"

	// KindNull always answers "no fault".
	KindNull Kind = "null"

	// KindRandom picks one random single-gate hypothesis.
	KindRandom Kind = "random"

	// KindWorst blames every gate at once. Useful as a scoring floor.
	KindWorst Kind = "worst"
)

// Engine is a diagnostic algorithm. Diagnose returns the ambiguity group
// the engine believes explains the scenario's observation. The deadline
// arrives through ctx; well-behaved engines return ctx.Err() promptly, but
// the runner enforces the budget regardless.
type Engine interface {
	Name() string
	Kind() Kind
	Diagnose(ctx context.Context, m *circuit.Model, sc *scenario.Scenario) (circuit.AmbiguityGroup, error)
}

// New creates an engine by kind. An empty name defaults to the kind.
func New(kind Kind, name string, params map[string]any) (Engine, error) {
	if name == "" {
		name = string(kind)
	}

	switch kind {
	case KindSingleFault:
		return NewSingleFault(name), nil
	case KindNull:
		return &nullEngine{name: name}, nil
	case KindRandom:
		var v *struct {
			Seed *int64 `mapstructure:"seed"`
		}

		if err := mapstructure.Decode(params, &v); err != nil {
			return nil, err
		}

		if v != nil && v.Seed != nil {
			return NewRandomWithSeed(name, *v.Seed), nil
		}

		return NewRandom(name), nil
	case KindWorst:
		return &worstEngine{name: name}, nil
	default:
		return nil, fmt.Errorf("'%s' is not a valid engine kind", kind)
	}
}
