package circuit

import (
	"errors"
	"fmt"
)

// ErrMalformed is wrapped by every structural parse or consistency failure.
// A model that fails to load aborts that model's benchmark run only.
var ErrMalformed = errors.New("malformed model")

// GateID names a gate within a model.
type GateID string

// WireID names a wire. A wire joins exactly one producer (a gate output or a
// primary input) to one or more consumers (gate inputs or primary outputs).
type WireID string

// Gate is one logic gate. Immutable once the model is built.
type Gate struct {
	ID     GateID
	Kind   GateKind
	Inputs []WireID
	Output WireID
}

// Model is the structural description of a combinatorial circuit. It is
// immutable after New returns and safe to share across goroutines.
type Model struct {
	name    string
	gates   []Gate
	byID    map[GateID]int
	inputs  []WireID
	outputs []WireID
	order   []GateID
}

// New validates the wiring and returns a Model. Gates keep their declaration
// order; the topological order breaks ties by that declaration order so that
// evaluation and diagnosis enumeration are deterministic.
//
// Validation failures wrap ErrMalformed: arity mismatches, doubly-driven or
// dangling wires, cycles.
func New(name string, gates []Gate, inputs, outputs []WireID) (*Model, error) {
	m := &Model{
		name:    name,
		gates:   append([]Gate(nil), gates...),
		byID:    make(map[GateID]int, len(gates)),
		inputs:  append([]WireID(nil), inputs...),
		outputs: append([]WireID(nil), outputs...),
	}

	producer := make(map[WireID]GateID, len(gates))
	for i, g := range m.gates {
		if g.ID == "" {
			return nil, fmt.Errorf("%w: gate %d has no id", ErrMalformed, i)
		}
		if _, dup := m.byID[g.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate gate id %q", ErrMalformed, g.ID)
		}
		m.byID[g.ID] = i

		if min := g.Kind.minArity(); len(g.Inputs) < min {
			return nil, fmt.Errorf("%w: gate %q (%s) has %d inputs, needs at least %d",
				ErrMalformed, g.ID, g.Kind, len(g.Inputs), min)
		}
		if max := g.Kind.maxArity(); max > 0 && len(g.Inputs) > max {
			return nil, fmt.Errorf("%w: gate %q (%s) has %d inputs, allows at most %d",
				ErrMalformed, g.ID, g.Kind, len(g.Inputs), max)
		}
		if g.Output == "" {
			return nil, fmt.Errorf("%w: gate %q has no output wire", ErrMalformed, g.ID)
		}
		if prev, driven := producer[g.Output]; driven {
			return nil, fmt.Errorf("%w: wire %q driven by both %q and %q",
				ErrMalformed, g.Output, prev, g.ID)
		}
		producer[g.Output] = g.ID
	}

	for _, w := range m.inputs {
		if g, driven := producer[w]; driven {
			return nil, fmt.Errorf("%w: primary input %q driven by gate %q", ErrMalformed, w, g)
		}
	}

	// Every gate input must be driven by a gate or declared as a primary input.
	primary := make(map[WireID]bool, len(m.inputs))
	for _, w := range m.inputs {
		primary[w] = true
	}
	for _, g := range m.gates {
		for _, w := range g.Inputs {
			if !primary[w] {
				if _, driven := producer[w]; !driven {
					return nil, fmt.Errorf("%w: gate %q reads undriven wire %q", ErrMalformed, g.ID, w)
				}
			}
		}
	}
	for _, w := range m.outputs {
		if !primary[w] {
			if _, driven := producer[w]; !driven {
				return nil, fmt.Errorf("%w: primary output %q is undriven", ErrMalformed, w)
			}
		}
	}

	order, err := m.sortTopological(producer)
	if err != nil {
		return nil, err
	}
	m.order = order

	return m, nil
}

// sortTopological runs Kahn's algorithm over the gate dependency graph,
// visiting ready gates in declaration order.
func (m *Model) sortTopological(producer map[WireID]GateID) ([]GateID, error) {
	indegree := make([]int, len(m.gates))
	dependents := make(map[GateID][]int)

	for i, g := range m.gates {
		for _, w := range g.Inputs {
			if p, ok := producer[w]; ok {
				dependents[p] = append(dependents[p], i)
				indegree[i]++
			}
		}
	}

	// ready is kept sorted by declaration index by construction: gates are
	// seeded in declaration order and appended as their dependencies resolve.
	var ready []int
	for i := range m.gates {
		if indegree[i] == 0 {
			ready = append(ready, i)
		}
	}

	order := make([]GateID, 0, len(m.gates))
	for len(ready) > 0 {
		i := ready[0]
		ready = ready[1:]
		order = append(order, m.gates[i].ID)
		for _, dep := range dependents[m.gates[i].ID] {
			indegree[dep]--
			if indegree[dep] == 0 {
				ready = append(ready, dep)
			}
		}
	}

	if len(order) != len(m.gates) {
		return nil, fmt.Errorf("%w: circuit contains a cycle", ErrMalformed)
	}
	return order, nil
}

// Name returns the model's name (typically the file stem it was loaded from).
func (m *Model) Name() string { return m.name }

// ComponentCount is f in the utility metric: the number of gates.
func (m *Model) ComponentCount() int { return len(m.gates) }

// Gates returns the gates in declaration order. Callers must not mutate the
// returned slice.
func (m *Model) Gates() []Gate { return m.gates }

// Gate looks a gate up by id.
func (m *Model) Gate(id GateID) (Gate, bool) {
	i, ok := m.byID[id]
	if !ok {
		return Gate{}, false
	}
	return m.gates[i], true
}

// HasGate reports whether id names a gate in this model.
func (m *Model) HasGate(id GateID) bool {
	_, ok := m.byID[id]
	return ok
}

// TopologicalOrder returns gate ids in a producer-before-consumer order.
func (m *Model) TopologicalOrder() []GateID { return m.order }

// Inputs returns the primary input wires in declaration order.
func (m *Model) Inputs() []WireID { return m.inputs }

// Outputs returns the primary output wires in declaration order.
func (m *Model) Outputs() []WireID { return m.outputs }

// IsInput reports whether w is a primary input wire.
func (m *Model) IsInput(w WireID) bool {
	for _, in := range m.inputs {
		if in == w {
			return true
		}
	}
	return false
}

// IsOutput reports whether w is a primary output wire.
func (m *Model) IsOutput(w WireID) bool {
	for _, out := range m.outputs {
		if out == w {
			return true
		}
	}
	return false
}
