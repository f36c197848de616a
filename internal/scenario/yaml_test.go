package scenario

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dxcbench/faultbench/internal/circuit"
)

func TestParseYAML(t *testing.T) {
	const src = `
inputs:
  a: "1"
  b: "0"
  c: x
observed:
  z: "1"
ground_truth:
  - [g1]
  - [g2, g3]
normalization: 0.75
`

	sc, err := ParseYAML(strings.NewReader(src), "sample")
	require.NoError(t, err)

	assert.Equal(t, circuit.True, sc.Inputs.Get("a"))
	assert.Equal(t, circuit.False, sc.Inputs.Get("b"))
	assert.Equal(t, circuit.Unknown, sc.Inputs.Get("c"))
	assert.Equal(t, circuit.True, sc.Observed.Get("z"))

	require.True(t, sc.HasGroundTruth())
	assert.True(t, sc.GroundTruth.Contains(circuit.NewHypothesis("g1")))
	assert.True(t, sc.GroundTruth.Contains(circuit.NewHypothesis("g2", "g3")))
	assert.InDelta(t, 0.75, sc.Normalization, 1e-12)
}

func TestParseYAMLNoGroundTruth(t *testing.T) {
	const src = `
inputs:
  a: "1"
observed:
  z: "0"
`

	sc, err := ParseYAML(strings.NewReader(src), "unscored")
	require.NoError(t, err)
	assert.False(t, sc.HasGroundTruth())
}

func TestParseYAMLEmptyGroundTruth(t *testing.T) {
	// An explicit empty list is a known, empty ambiguity group.
	const src = `
inputs:
  a: "1"
observed:
  z: "0"
ground_truth: []
`

	sc, err := ParseYAML(strings.NewReader(src), "empty")
	require.NoError(t, err)
	assert.True(t, sc.HasGroundTruth())
	assert.Empty(t, sc.GroundTruth)
}

func TestParseYAMLMalformed(t *testing.T) {
	testCases := []struct {
		name string
		src  string
	}{
		{"unknown field", "verdict: guilty"},
		{"bad input value", "inputs:\n  a: \"9\""},
		{"bad observed value", "observed:\n  z: maybe"},
		{"not yaml", ": ["},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseYAML(strings.NewReader(tc.src), tc.name)
			require.ErrorIs(t, err, ErrMalformed)
		})
	}
}
