// Package simulate evaluates a combinatorial circuit over three-valued
// logic, with optional forced gate outputs for fault injection.
package simulate

import (
	"github.com/dxcbench/faultbench/internal/circuit"
)

// Assignment maps wires to logic values. Wires not present are Unknown.
type Assignment map[circuit.WireID]circuit.Value

// Get returns the value of w, defaulting to Unknown.
func (a Assignment) Get(w circuit.WireID) circuit.Value {
	if v, ok := a[w]; ok {
		return v
	}
	return circuit.Unknown
}

// Overrides forces the listed gates' outputs to the given values instead of
// their computed function. Forcing Unknown models a fully unconstrained
// (don't-care) fault; forcing True/False models a stuck-at fault.
type Overrides map[circuit.GateID]circuit.Value

// Evaluate computes every wire's value for the given primary input
// assignment, walking gates in topological order. It is a pure function:
// identical arguments always produce identical results. Missing primary
// inputs evaluate to Unknown rather than failing; scenario validation is the
// place that insists on complete assignments.
func Evaluate(m *circuit.Model, inputs Assignment, overrides Overrides) Assignment {
	values := make(Assignment, len(inputs)+m.ComponentCount())
	for _, w := range m.Inputs() {
		values[w] = inputs.Get(w)
	}

	for _, id := range m.TopologicalOrder() {
		g, _ := m.Gate(id)
		if forced, ok := overrides[id]; ok {
			values[g.Output] = forced
			continue
		}
		in := make([]circuit.Value, len(g.Inputs))
		for i, w := range g.Inputs {
			in[i] = values.Get(w)
		}
		values[g.Output] = g.Kind.Eval(in)
	}

	return values
}

// Consistent reports whether the simulated values could have produced the
// observed primary outputs: every observed output either matches the
// simulated value or the simulated value is Unknown. An Unknown simulated
// output can never falsify a hypothesis.
func Consistent(m *circuit.Model, simulated Assignment, observed Assignment) bool {
	for _, w := range m.Outputs() {
		obs, ok := observed[w]
		if !ok || !obs.Known() {
			continue
		}
		if sim := simulated.Get(w); sim.Known() && sim != obs {
			return false
		}
	}
	return true
}
