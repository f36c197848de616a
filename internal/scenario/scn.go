package scenario

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/dxcbench/faultbench/internal/circuit"
	"github.com/dxcbench/faultbench/internal/simulate"
)

// The .scn grammar: "key = value;" statements, one per line (a statement may
// span lines until its terminating semicolon), "#" comments. Known keys:
//
//	inputValues = a=1, b=0, c=x;
//	observedValues = z=0;
//	ambiguityGroup = [[g1], [g2, g3]];
//	normalizationFactor = 0.9876543210;
//
// ambiguityGroup may also hold the literal "timeout", marking scenarios
// whose ground truth could not be computed; those are treated as having no
// ground truth and are skipped by the runner.

// ParseSCN reads a .scn scenario.
func ParseSCN(r io.Reader, name string) (*Scenario, error) {
	s := &Scenario{
		Name:     name,
		Inputs:   make(simulate.Assignment),
		Observed: make(simulate.Assignment),
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	var pending strings.Builder

	flush := func() error {
		stmt := strings.TrimSpace(pending.String())
		pending.Reset()
		if stmt == "" {
			return nil
		}
		return s.applyStatement(stmt)
	}

	for scanner.Scan() {
		line := scanner.Text()
		if i := strings.Index(line, "#"); i >= 0 {
			line = line[:i]
		}
		for {
			semi := strings.Index(line, ";")
			if semi < 0 {
				pending.WriteString(line)
				pending.WriteString(" ")
				break
			}
			pending.WriteString(line[:semi])
			if err := flush(); err != nil {
				return nil, err
			}
			line = line[semi+1:]
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMalformed, name, err)
	}
	if strings.TrimSpace(pending.String()) != "" {
		return nil, fmt.Errorf("%w: %s: unterminated statement %q", ErrMalformed, name, strings.TrimSpace(pending.String()))
	}

	return s, nil
}

func (s *Scenario) applyStatement(stmt string) error {
	key, value, ok := strings.Cut(stmt, "=")
	if !ok {
		return fmt.Errorf("%w: %s: expected key = value, got %q", ErrMalformed, s.Name, stmt)
	}
	key = strings.TrimSpace(key)
	value = strings.TrimSpace(value)

	switch key {
	case "inputValues":
		return parseAssignmentList(s.Name, value, s.Inputs)
	case "observedValues":
		return parseAssignmentList(s.Name, value, s.Observed)
	case "ambiguityGroup":
		if strings.EqualFold(value, "timeout") {
			s.GroundTruth = nil
			return nil
		}
		ag, err := ParseAmbiguityGroup(value)
		if err != nil {
			return fmt.Errorf("%w: %s: %v", ErrMalformed, s.Name, err)
		}
		s.GroundTruth = ag
		return nil
	case "normalizationFactor":
		// An optional ", approximate = true" marker may follow the number.
		numStr, _, _ := strings.Cut(value, ",")
		f, err := strconv.ParseFloat(strings.TrimSpace(numStr), 64)
		if err != nil || f <= 0 {
			return fmt.Errorf("%w: %s: bad normalizationFactor %q", ErrMalformed, s.Name, value)
		}
		s.Normalization = f
		return nil
	default:
		// Unknown keys are ignored for forward compatibility.
		return nil
	}
}

func parseAssignmentList(name, list string, into simulate.Assignment) error {
	for _, pair := range strings.Split(list, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		wire, raw, ok := strings.Cut(pair, "=")
		if !ok {
			return fmt.Errorf("%w: %s: expected wire=value, got %q", ErrMalformed, name, pair)
		}
		v, err := parseValue(strings.TrimSpace(raw))
		if err != nil {
			return fmt.Errorf("%w: %s: %v", ErrMalformed, name, err)
		}
		into[circuit.WireID(strings.TrimSpace(wire))] = v
	}
	return nil
}

func parseValue(raw string) (circuit.Value, error) {
	switch strings.ToLower(raw) {
	case "0", "false":
		return circuit.False, nil
	case "1", "true":
		return circuit.True, nil
	case "x", "?":
		return circuit.Unknown, nil
	}
	return circuit.Unknown, fmt.Errorf("bad logic value %q", raw)
}

// ParseAmbiguityGroup parses the bracketed set-of-sets syntax:
// [[g1], [g2, g3]]. The empty hypothesis is written [].
func ParseAmbiguityGroup(raw string) (circuit.AmbiguityGroup, error) {
	raw = strings.TrimSpace(raw)
	if !strings.HasPrefix(raw, "[") || !strings.HasSuffix(raw, "]") {
		return nil, fmt.Errorf("ambiguity group must be bracketed, got %q", raw)
	}
	inner := strings.TrimSpace(raw[1 : len(raw)-1])

	var ag circuit.AmbiguityGroup
	for inner != "" {
		start := strings.Index(inner, "[")
		if start < 0 {
			break
		}
		end := strings.Index(inner[start:], "]")
		if end < 0 {
			return nil, fmt.Errorf("unbalanced brackets in %q", raw)
		}
		var gates []circuit.GateID
		for _, g := range strings.Split(inner[start+1:start+end], ",") {
			g = strings.TrimSpace(g)
			if g != "" {
				gates = append(gates, circuit.GateID(g))
			}
		}
		ag = ag.Add(circuit.NewHypothesis(gates...))
		inner = inner[start+end+1:]
	}
	if ag == nil {
		return nil, fmt.Errorf("empty ambiguity group %q", raw)
	}
	return ag, nil
}
