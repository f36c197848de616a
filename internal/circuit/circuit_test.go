package circuit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func twoGateModel(t *testing.T) *Model {
	t.Helper()
	m, err := New("tiny", []Gate{
		{ID: "g1", Kind: KindAnd, Inputs: []WireID{"a", "b"}, Output: "n1"},
		{ID: "g2", Kind: KindNot, Inputs: []WireID{"n1"}, Output: "z"},
	}, []WireID{"a", "b"}, []WireID{"z"})
	require.NoError(t, err)
	return m
}

func TestNewValidModel(t *testing.T) {
	m := twoGateModel(t)

	assert.Equal(t, 2, m.ComponentCount())
	assert.Equal(t, []GateID{"g1", "g2"}, m.TopologicalOrder())
	assert.True(t, m.HasGate("g1"))
	assert.False(t, m.HasGate("g9"))
	assert.True(t, m.IsInput("a"))
	assert.True(t, m.IsOutput("z"))
	assert.False(t, m.IsOutput("n1"))
}

func TestTopologicalOrderRespectsDependencies(t *testing.T) {
	// g3 is declared first but depends on g1 and g2.
	m, err := New("ord", []Gate{
		{ID: "g3", Kind: KindOr, Inputs: []WireID{"n1", "n2"}, Output: "z"},
		{ID: "g1", Kind: KindNot, Inputs: []WireID{"a"}, Output: "n1"},
		{ID: "g2", Kind: KindNot, Inputs: []WireID{"b"}, Output: "n2"},
	}, []WireID{"a", "b"}, []WireID{"z"})
	require.NoError(t, err)

	assert.Equal(t, []GateID{"g1", "g2", "g3"}, m.TopologicalOrder())
}

func TestNewRejectsMalformedModels(t *testing.T) {
	inputs := []WireID{"a", "b"}
	outputs := []WireID{"z"}

	tests := []struct {
		name  string
		gates []Gate
	}{
		{
			name: "arity mismatch",
			gates: []Gate{
				{ID: "g1", Kind: KindNot, Inputs: []WireID{"a", "b"}, Output: "z"},
			},
		},
		{
			name: "too few inputs",
			gates: []Gate{
				{ID: "g1", Kind: KindAnd, Inputs: []WireID{"a"}, Output: "z"},
			},
		},
		{
			name: "doubly driven wire",
			gates: []Gate{
				{ID: "g1", Kind: KindNot, Inputs: []WireID{"a"}, Output: "z"},
				{ID: "g2", Kind: KindNot, Inputs: []WireID{"b"}, Output: "z"},
			},
		},
		{
			name: "dangling input wire",
			gates: []Gate{
				{ID: "g1", Kind: KindAnd, Inputs: []WireID{"a", "ghost"}, Output: "z"},
			},
		},
		{
			name: "cycle",
			gates: []Gate{
				{ID: "g1", Kind: KindAnd, Inputs: []WireID{"a", "n2"}, Output: "n1"},
				{ID: "g2", Kind: KindAnd, Inputs: []WireID{"b", "n1"}, Output: "n2"},
				{ID: "g3", Kind: KindOr, Inputs: []WireID{"n1", "n2"}, Output: "z"},
			},
		},
		{
			name: "duplicate gate id",
			gates: []Gate{
				{ID: "g1", Kind: KindNot, Inputs: []WireID{"a"}, Output: "n1"},
				{ID: "g1", Kind: KindNot, Inputs: []WireID{"n1"}, Output: "z"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New("bad", tt.gates, inputs, outputs)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrMalformed)
		})
	}
}

func TestNewRejectsUndrivenPrimaryOutput(t *testing.T) {
	_, err := New("bad", []Gate{
		{ID: "g1", Kind: KindNot, Inputs: []WireID{"a"}, Output: "n1"},
	}, []WireID{"a"}, []WireID{"z"})
	require.ErrorIs(t, err, ErrMalformed)
}
