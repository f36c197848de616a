package scenario

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dxcbench/faultbench/internal/circuit"
)

func TestParseSCN(t *testing.T) {
	const src = `
# sample scenario
inputValues = a=1, b=0, c=x;
observedValues = z=0;
ambiguityGroup = [[g1], [g2, g3]];
normalizationFactor = 0.912345;
`

	sc, err := ParseSCN(strings.NewReader(src), "sample")
	require.NoError(t, err)

	assert.Equal(t, "sample", sc.Name)
	assert.Equal(t, circuit.True, sc.Inputs.Get("a"))
	assert.Equal(t, circuit.False, sc.Inputs.Get("b"))
	assert.Equal(t, circuit.Unknown, sc.Inputs.Get("c"))
	assert.Equal(t, circuit.False, sc.Observed.Get("z"))

	require.True(t, sc.HasGroundTruth())
	assert.True(t, sc.GroundTruth.Contains(circuit.NewHypothesis("g1")))
	assert.True(t, sc.GroundTruth.Contains(circuit.NewHypothesis("g3", "g2")))
	assert.Len(t, sc.GroundTruth, 2)

	assert.InDelta(t, 0.912345, sc.Normalization, 1e-12)
}

func TestParseSCNMultiLineStatement(t *testing.T) {
	const src = `
inputValues = a=1,
	b=0;
observedValues = z=1;
ambiguityGroup = [[g1],
	[g2]];
`

	sc, err := ParseSCN(strings.NewReader(src), "wrapped")
	require.NoError(t, err)

	assert.Equal(t, circuit.True, sc.Inputs.Get("a"))
	assert.Equal(t, circuit.False, sc.Inputs.Get("b"))
	assert.Len(t, sc.GroundTruth, 2)
}

func TestParseSCNTimeoutMarker(t *testing.T) {
	const src = `
inputValues = a=1;
observedValues = z=1;
ambiguityGroup = timeout;
`

	sc, err := ParseSCN(strings.NewReader(src), "timedout")
	require.NoError(t, err)
	assert.False(t, sc.HasGroundTruth())
}

func TestParseSCNNominalTruth(t *testing.T) {
	// [[]] is the nominal "no fault" ground truth, distinct from no truth.
	const src = `
inputValues = a=0;
observedValues = z=0;
ambiguityGroup = [[]];
`

	sc, err := ParseSCN(strings.NewReader(src), "nominal")
	require.NoError(t, err)
	require.True(t, sc.HasGroundTruth())
	require.Len(t, sc.GroundTruth, 1)
	assert.Empty(t, sc.GroundTruth[0])
}

func TestParseSCNApproximateNormalization(t *testing.T) {
	const src = `
inputValues = a=1;
observedValues = z=1;
ambiguityGroup = [[g1]];
normalizationFactor = 0.5, approximate = true;
`

	sc, err := ParseSCN(strings.NewReader(src), "approx")
	require.NoError(t, err)
	assert.InDelta(t, 0.5, sc.Normalization, 1e-12)
}

func TestParseSCNIgnoresUnknownKeys(t *testing.T) {
	const src = `
faultMode = stuck-at;
inputValues = a=1;
observedValues = z=1;
`

	sc, err := ParseSCN(strings.NewReader(src), "forward")
	require.NoError(t, err)
	assert.Equal(t, circuit.True, sc.Inputs.Get("a"))
}

func TestParseSCNMalformed(t *testing.T) {
	testCases := []struct {
		name string
		src  string
	}{
		{"unterminated statement", "inputValues = a=1"},
		{"bad logic value", "inputValues = a=2;"},
		{"bare key", "inputValues;"},
		{"unbalanced group", "ambiguityGroup = [[g1];"},
		{"empty group", "ambiguityGroup = [];"},
		{"negative normalization", "normalizationFactor = -1.0;"},
		{"non-numeric normalization", "normalizationFactor = lots;"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseSCN(strings.NewReader(tc.src), tc.name)
			require.ErrorIs(t, err, ErrMalformed)
		})
	}
}

func TestParseAmbiguityGroupDedupes(t *testing.T) {
	ag, err := ParseAmbiguityGroup("[[g2, g1], [g1, g2]]")
	require.NoError(t, err)
	require.Len(t, ag, 1)
	assert.Equal(t, "g1,g2", ag[0].Key())
}
