package diagnosis

import (
	"context"

	"github.com/dxcbench/faultbench/internal/circuit"
	"github.com/dxcbench/faultbench/internal/scenario"
	"github.com/dxcbench/faultbench/internal/simulate"
)

// SingleFault is the reference consistency-based diagnoser. It first checks
// whether the nominal circuit already explains the observation; if so the
// answer is the nominal group {∅}. Otherwise it tries, for every gate in
// declaration order, forcing the gate's output stuck at 1 and then stuck
// at 0, keeping each gate for which either faulty simulation reproduces the
// observation. The result may legitimately be empty when no single stuck-at
// fault explains the observation.
type SingleFault struct {
	name string
}

func NewSingleFault(name string) *SingleFault {
	return &SingleFault{name: name}
}

func (e *SingleFault) Name() string { return e.name }

func (e *SingleFault) Kind() Kind { return KindSingleFault }

func (e *SingleFault) Diagnose(ctx context.Context, m *circuit.Model, sc *scenario.Scenario) (circuit.AmbiguityGroup, error) {
	nominal := simulate.Evaluate(m, sc.Inputs, nil)
	if simulate.Consistent(m, nominal, sc.Observed) {
		return circuit.AmbiguityGroup{circuit.NewHypothesis()}, nil
	}

	var group circuit.AmbiguityGroup

	for _, g := range m.Gates() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		for _, forced := range []circuit.Value{circuit.True, circuit.False} {
			faulty := simulate.Evaluate(m, sc.Inputs, simulate.Overrides{g.ID: forced})
			if simulate.Consistent(m, faulty, sc.Observed) {
				group = group.Add(circuit.NewHypothesis(g.ID))
				break
			}
		}
	}

	return group, nil
}
