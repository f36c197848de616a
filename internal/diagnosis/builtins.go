package diagnosis

import (
	"context"
	"math/rand"

	"github.com/dxcbench/faultbench/internal/circuit"
	"github.com/dxcbench/faultbench/internal/scenario"
)

// nullEngine always answers "no fault". It scores well on nominal
// scenarios and poorly everywhere else, which makes it a useful sanity
// baseline for the scoring pipeline.
type nullEngine struct {
	name string
}

func (e *nullEngine) Name() string { return e.name }

func (e *nullEngine) Kind() Kind { return KindNull }

func (e *nullEngine) Diagnose(_ context.Context, _ *circuit.Model, _ *scenario.Scenario) (circuit.AmbiguityGroup, error) {
	return circuit.AmbiguityGroup{circuit.NewHypothesis()}, nil
}

// randomEngine answers one uniformly random single-gate hypothesis.
type randomEngine struct {
	name string
	rng  *rand.Rand
}

func NewRandom(name string) Engine {
	return &randomEngine{name: name}
}

// NewRandomWithSeed returns a random engine with a fixed seed, for
// reproducible runs.
func NewRandomWithSeed(name string, seed int64) Engine {
	return &randomEngine{name: name, rng: rand.New(rand.NewSource(seed))}
}

func (e *randomEngine) Name() string { return e.name }

func (e *randomEngine) Kind() Kind { return KindRandom }

func (e *randomEngine) Diagnose(_ context.Context, m *circuit.Model, _ *scenario.Scenario) (circuit.AmbiguityGroup, error) {
	gates := m.Gates()

	var i int
	if e.rng != nil {
		i = e.rng.Intn(len(gates))
	} else {
		i = rand.Intn(len(gates))
	}

	return circuit.AmbiguityGroup{circuit.NewHypothesis(gates[i].ID)}, nil
}

// worstEngine blames every gate in a single hypothesis, the answer with
// the least diagnostic value. Its score approaches zero as circuits grow.
type worstEngine struct {
	name string
}

func (e *worstEngine) Name() string { return e.name }

func (e *worstEngine) Kind() Kind { return KindWorst }

func (e *worstEngine) Diagnose(_ context.Context, m *circuit.Model, _ *scenario.Scenario) (circuit.AmbiguityGroup, error) {
	all := make([]circuit.GateID, 0, m.ComponentCount())
	for _, g := range m.Gates() {
		all = append(all, g.ID)
	}
	return circuit.AmbiguityGroup{circuit.NewHypothesis(all...)}, nil
}
