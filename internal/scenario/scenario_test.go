package scenario

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dxcbench/faultbench/internal/circuit"
	"github.com/dxcbench/faultbench/internal/simulate"
)

// twoGateModel builds z = NOT(AND(a, b)) out of two named gates.
func twoGateModel(t *testing.T) *circuit.Model {
	t.Helper()

	and, _, err := circuit.ParseGateKind("and2")
	require.NoError(t, err)
	not, _, err := circuit.ParseGateKind("not1")
	require.NoError(t, err)

	m, err := circuit.New("twogate", []circuit.Gate{
		{ID: "g1", Kind: and, Inputs: []circuit.WireID{"a", "b"}, Output: "n1"},
		{ID: "g2", Kind: not, Inputs: []circuit.WireID{"n1"}, Output: "z"},
	}, []circuit.WireID{"a", "b"}, []circuit.WireID{"z"})
	require.NoError(t, err)
	return m
}

func TestValidate(t *testing.T) {
	m := twoGateModel(t)

	valid := &Scenario{
		Name:        "ok",
		Inputs:      simulate.Assignment{"a": circuit.True, "b": circuit.False},
		Observed:    simulate.Assignment{"z": circuit.True},
		GroundTruth: circuit.AmbiguityGroup{circuit.NewHypothesis("g1")},
	}
	require.NoError(t, valid.Validate(m))

	testCases := []struct {
		name    string
		mutate  func(s *Scenario)
		wantMsg string
	}{
		{
			name:    "input not a primary input",
			mutate:  func(s *Scenario) { s.Inputs["n1"] = circuit.True },
			wantMsg: "not a primary input",
		},
		{
			name:    "unassigned input",
			mutate:  func(s *Scenario) { delete(s.Inputs, "b") },
			wantMsg: "unassigned",
		},
		{
			name:    "no observations",
			mutate:  func(s *Scenario) { s.Observed = simulate.Assignment{} },
			wantMsg: "no observed outputs",
		},
		{
			name:    "observation not a primary output",
			mutate:  func(s *Scenario) { s.Observed = simulate.Assignment{"n1": circuit.True} },
			wantMsg: "not a primary output",
		},
		{
			name: "ground truth names unknown gate",
			mutate: func(s *Scenario) {
				s.GroundTruth = circuit.AmbiguityGroup{circuit.NewHypothesis("g9")}
			},
			wantMsg: "unknown gate",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			s := &Scenario{
				Name:        tc.name,
				Inputs:      simulate.Assignment{"a": circuit.True, "b": circuit.False},
				Observed:    simulate.Assignment{"z": circuit.True},
				GroundTruth: valid.GroundTruth,
			}
			tc.mutate(s)

			err := s.Validate(m)
			require.ErrorIs(t, err, ErrMalformed)
			assert.Contains(t, err.Error(), tc.wantMsg)
		})
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()

	scnPath := filepath.Join(dir, "case1.scn")
	require.NoError(t, os.WriteFile(scnPath, []byte(
		"inputValues = a=1;\nobservedValues = z=0;\nambiguityGroup = [[g1]];\n"), 0o600))

	yamlPath := filepath.Join(dir, "case2.yaml")
	require.NoError(t, os.WriteFile(yamlPath, []byte(
		"inputs:\n  a: \"0\"\nobserved:\n  z: \"1\"\n"), 0o600))

	sc, err := LoadFile(scnPath)
	require.NoError(t, err)
	assert.Equal(t, "case1", sc.Name)
	assert.True(t, sc.HasGroundTruth())

	sc, err = LoadFile(yamlPath)
	require.NoError(t, err)
	assert.Equal(t, "case2", sc.Name)
	assert.False(t, sc.HasGroundTruth())

	badPath := filepath.Join(dir, "case3.txt")
	require.NoError(t, os.WriteFile(badPath, []byte("whatever"), 0o600))
	_, err = LoadFile(badPath)
	require.ErrorIs(t, err, ErrMalformed)

	_, err = LoadFile(filepath.Join(dir, "missing.scn"))
	require.Error(t, err)
}

func TestLoadDirSortedByName(t *testing.T) {
	dir := t.TempDir()

	write := func(name, body string) {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o600))
	}
	write("b.scn", "inputValues = a=1;\nobservedValues = z=0;\n")
	write("a.scn", "inputValues = a=0;\nobservedValues = z=1;\n")
	write("notes.md", "ignored")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0o700))

	scenarios, err := LoadDir(dir)
	require.NoError(t, err)
	require.Len(t, scenarios, 2)

	var names []string
	for _, sc := range scenarios {
		names = append(names, sc.Name)
	}
	assert.Equal(t, []string{"a", "b"}, names)
}

func TestLoadDirPropagatesParseError(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.scn"),
		[]byte("inputValues = a=1"), 0o600))

	_, err := LoadDir(dir)
	require.ErrorIs(t, err, ErrMalformed)
	assert.True(t, strings.Contains(err.Error(), "bad"))
}
