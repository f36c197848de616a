package circuit

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// Matches gate statements of the form:
//
//	V0 = AND(A, X1)
//	V1 = NOT(X1)
//
// capturing the output signal, the gate type, and the argument list.
var gateRE = regexp.MustCompile(`^(\w+)\s*=\s*(\w+)\s*\(([\w\s,]+)\)$`)

// Matches INPUT(a) / OUTPUT(z) declarations.
var inOutRE = regexp.MustCompile(`^(INPUT|OUTPUT)\s*\((\w+)\)$`)

// LoadBench parses a .bench netlist into a Model. The model name is the
// file stem.
func LoadBench(path string) (*Model, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	defer f.Close() //nolint:errcheck

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return ParseBench(f, name)
}

// ParseBench reads the classic bench netlist grammar: INPUT/OUTPUT
// declarations and "out = TYPE(in, ...)" gate lines, with "#" comments.
// Signals are wires; each gate is named after the signal it drives. DFF
// lines are rejected: the benchmark covers combinatorial circuits only.
func ParseBench(r io.Reader, name string) (*Model, error) {
	var gates []Gate
	var inputs, outputs []WireID

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if i := strings.Index(line, "#"); i >= 0 {
			line = strings.TrimSpace(line[:i])
		}
		if line == "" {
			continue
		}

		if m := inOutRE.FindStringSubmatch(line); m != nil {
			if m[1] == "INPUT" {
				inputs = append(inputs, WireID(m[2]))
			} else {
				outputs = append(outputs, WireID(m[2]))
			}
			continue
		}

		m := gateRE.FindStringSubmatch(line)
		if m == nil {
			return nil, fmt.Errorf("%w: line %d: cannot parse %q", ErrMalformed, lineNo, line)
		}

		out, typeName := m[1], m[2]
		if strings.EqualFold(typeName, "dff") {
			return nil, fmt.Errorf("%w: line %d: DFF makes the circuit sequential", ErrMalformed, lineNo)
		}
		kind, _, err := ParseGateKind(typeName)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrMalformed, lineNo, err)
		}

		var ins []WireID
		for _, arg := range strings.Split(m[3], ",") {
			arg = strings.TrimSpace(arg)
			if arg == "" {
				return nil, fmt.Errorf("%w: line %d: empty argument", ErrMalformed, lineNo)
			}
			ins = append(ins, WireID(arg))
		}

		gates = append(gates, Gate{
			ID:     GateID(out),
			Kind:   kind,
			Inputs: ins,
			Output: WireID(out),
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	return New(name, gates, inputs, outputs)
}

// Load reads a circuit model file, dispatching on the extension: .xml for
// DX system descriptions, .bench for netlists.
func Load(path string) (*Model, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xml":
		return LoadXML(path)
	case ".bench":
		return LoadBench(path)
	default:
		return nil, fmt.Errorf("%w: unsupported model format %q", ErrMalformed, filepath.Ext(path))
	}
}
