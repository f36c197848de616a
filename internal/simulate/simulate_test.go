package simulate

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dxcbench/faultbench/internal/circuit"
)

// andNotOr builds: n1 = AND(a, b); n2 = NOT(c); z = OR(n1, n2).
func andNotOr(t *testing.T) *circuit.Model {
	t.Helper()
	m, err := circuit.New("andnotor", []circuit.Gate{
		{ID: "g1", Kind: circuit.KindAnd, Inputs: []circuit.WireID{"a", "b"}, Output: "n1"},
		{ID: "g2", Kind: circuit.KindNot, Inputs: []circuit.WireID{"c"}, Output: "n2"},
		{ID: "g3", Kind: circuit.KindOr, Inputs: []circuit.WireID{"n1", "n2"}, Output: "z"},
	}, []circuit.WireID{"a", "b", "c"}, []circuit.WireID{"z"})
	require.NoError(t, err)
	return m
}

func TestEvaluateNominal(t *testing.T) {
	m := andNotOr(t)

	got := Evaluate(m, Assignment{"a": circuit.True, "b": circuit.True, "c": circuit.True}, nil)
	assert.Equal(t, circuit.True, got["n1"])
	assert.Equal(t, circuit.False, got["n2"])
	assert.Equal(t, circuit.True, got["z"])

	got = Evaluate(m, Assignment{"a": circuit.False, "b": circuit.True, "c": circuit.True}, nil)
	assert.Equal(t, circuit.False, got["z"])
}

func TestEvaluateStuckOverride(t *testing.T) {
	m := andNotOr(t)
	inputs := Assignment{"a": circuit.False, "b": circuit.True, "c": circuit.True}

	// Nominal z is 0; forcing g1 stuck at 1 flips it.
	got := Evaluate(m, inputs, Overrides{"g1": circuit.True})
	assert.Equal(t, circuit.True, got["n1"])
	assert.Equal(t, circuit.True, got["z"])
}

func TestEvaluateUnknownPropagates(t *testing.T) {
	m := andNotOr(t)
	inputs := Assignment{"a": circuit.False, "b": circuit.True, "c": circuit.True}

	got := Evaluate(m, inputs, Overrides{"g1": circuit.Unknown})
	assert.Equal(t, circuit.Unknown, got["n1"])
	// n2 is 0, so the OR sees {X, 0} and stays unknown.
	assert.Equal(t, circuit.Unknown, got["z"])

	// With c=0 the NOT feeds a controlling 1 into the OR: the unknown
	// branch no longer matters.
	inputs["c"] = circuit.False
	got = Evaluate(m, inputs, Overrides{"g1": circuit.Unknown})
	assert.Equal(t, circuit.True, got["z"])
}

func TestEvaluateMissingInputIsUnknown(t *testing.T) {
	m := andNotOr(t)
	got := Evaluate(m, Assignment{"a": circuit.True, "b": circuit.True}, nil)
	assert.Equal(t, circuit.True, got["n1"])
	assert.Equal(t, circuit.Unknown, got["n2"])
}

func TestEvaluateDeterminism(t *testing.T) {
	m := andNotOr(t)
	inputs := Assignment{"a": circuit.True, "b": circuit.False, "c": circuit.True}
	overrides := Overrides{"g2": circuit.True}

	first := Evaluate(m, inputs, overrides)
	for i := 0; i < 50; i++ {
		again := Evaluate(m, inputs, overrides)
		if diff := cmp.Diff(first, again); diff != "" {
			t.Fatalf("evaluation not deterministic (-first +again):\n%s", diff)
		}
	}
}

func TestConsistent(t *testing.T) {
	m := andNotOr(t)
	inputs := Assignment{"a": circuit.True, "b": circuit.True, "c": circuit.True}
	sim := Evaluate(m, inputs, nil) // z = 1

	assert.True(t, Consistent(m, sim, Assignment{"z": circuit.True}))
	assert.False(t, Consistent(m, sim, Assignment{"z": circuit.False}))

	// Unknown simulated outputs never falsify.
	simX := Evaluate(m, inputs, Overrides{"g3": circuit.Unknown})
	assert.True(t, Consistent(m, simX, Assignment{"z": circuit.True}))
	assert.True(t, Consistent(m, simX, Assignment{"z": circuit.False}))

	// Unobserved outputs are ignored.
	assert.True(t, Consistent(m, sim, Assignment{}))
}
