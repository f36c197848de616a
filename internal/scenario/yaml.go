package scenario

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/dxcbench/faultbench/internal/circuit"
	"github.com/dxcbench/faultbench/internal/simulate"
)

type yamlScenario struct {
	Inputs        map[string]string `yaml:"inputs"`
	Observed      map[string]string `yaml:"observed"`
	GroundTruth   *[][]string       `yaml:"ground_truth"`
	Normalization float64           `yaml:"normalization"`
}

// ParseYAML reads a scenario from its YAML representation. A missing
// ground_truth key means the truth is unavailable, while an explicit
// empty list means the known truth is the empty ambiguity group.
func ParseYAML(r io.Reader, name string) (*Scenario, error) {
	var doc yamlScenario

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %s: %s", ErrMalformed, name, err)
	}

	sc := &Scenario{
		Name:          name,
		Inputs:        simulate.Assignment{},
		Observed:      simulate.Assignment{},
		Normalization: doc.Normalization,
	}

	for wire, raw := range doc.Inputs {
		v, err := parseValue(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: input %s: %s", ErrMalformed, name, wire, err)
		}
		sc.Inputs[circuit.WireID(wire)] = v
	}

	for wire, raw := range doc.Observed {
		v, err := parseValue(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: observed %s: %s", ErrMalformed, name, wire, err)
		}
		sc.Observed[circuit.WireID(wire)] = v
	}

	if doc.GroundTruth != nil {
		ag := circuit.AmbiguityGroup{}

		for _, hyp := range *doc.GroundTruth {
			gates := make([]circuit.GateID, 0, len(hyp))
			for _, g := range hyp {
				gates = append(gates, circuit.GateID(g))
			}
			ag = ag.Add(circuit.NewHypothesis(gates...))
		}

		sc.GroundTruth = ag
	}

	return sc, nil
}
