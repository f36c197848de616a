package circuit

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// The DX system description format: a flat list of components (ports,
// gates, and per-gate pin components named gateN.i1, gateN.i2, ..., gateN.o)
// plus undirected connections between component names. Ports whose names
// start with "i" are primary inputs, "o" primary outputs.

type xmlComponent struct {
	Name string `xml:"name"`
	Type string `xml:"componentType"`
}

type xmlConnection struct {
	C1 string `xml:"c1"`
	C2 string `xml:"c2"`
}

type xmlSystem struct {
	Name        string          `xml:"name"`
	Components  []xmlComponent  `xml:"component"`
	Connections []xmlConnection `xml:"connection"`
}

type xmlDocument struct {
	xmlSystem
	Systems []xmlSystem `xml:"system"`
}

// LoadXML parses a DX system description file into a Model. The model name
// is the file stem.
func LoadXML(path string) (*Model, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	defer f.Close() //nolint:errcheck

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return ParseXML(f, name)
}

// ParseXML reads a DX system description from r. The <system> element may be
// the document root or nested a level below (systemDescription wrapper).
func ParseXML(r io.Reader, name string) (*Model, error) {
	var doc xmlDocument
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: xml: %v", ErrMalformed, err)
	}

	sys := doc.xmlSystem
	if len(sys.Components) == 0 && len(doc.Systems) > 0 {
		sys = doc.Systems[0]
	}
	if len(sys.Components) == 0 {
		return nil, fmt.Errorf("%w: no system element with components", ErrMalformed)
	}
	if name == "" {
		name = sys.Name
	}

	return buildFromSystem(name, sys)
}

func buildFromSystem(name string, sys xmlSystem) (*Model, error) {
	types := make(map[string]string, len(sys.Components))
	declared := make([]string, 0, len(sys.Components))
	for _, c := range sys.Components {
		if c.Name == "" {
			return nil, fmt.Errorf("%w: component without a name", ErrMalformed)
		}
		if _, dup := types[c.Name]; dup {
			return nil, fmt.Errorf("%w: duplicate component %q", ErrMalformed, c.Name)
		}
		types[c.Name] = c.Type
		declared = append(declared, c.Name)
	}

	// Connections are undirected links between component names; transitively
	// connected endpoints form one wire.
	uf := newUnionFind()
	for _, conn := range sys.Connections {
		if _, ok := types[conn.C1]; !ok {
			return nil, fmt.Errorf("%w: connection references unknown component %q", ErrMalformed, conn.C1)
		}
		if _, ok := types[conn.C2]; !ok {
			return nil, fmt.Errorf("%w: connection references unknown component %q", ErrMalformed, conn.C2)
		}
		uf.union(conn.C1, conn.C2)
	}

	canon := canonicalWireNames(declared, types, uf)

	var gates []Gate
	var inputs, outputs []WireID

	for _, compName := range declared {
		compType := types[compName]
		if strings.Contains(compName, ".") {
			continue // gate pin, handled with its gate
		}
		if strings.EqualFold(compType, "port") {
			switch {
			case strings.HasPrefix(compName, "i"):
				inputs = append(inputs, canon[uf.find(compName)])
			case strings.HasPrefix(compName, "o"):
				outputs = append(outputs, canon[uf.find(compName)])
			}
			continue
		}

		kind, arity, err := ParseGateKind(compType)
		if err != nil {
			return nil, fmt.Errorf("%w: component %q: %v", ErrMalformed, compName, err)
		}

		var pins []WireID
		for i := 1; ; i++ {
			pin := fmt.Sprintf("%s.i%d", compName, i)
			if _, ok := types[pin]; !ok {
				break
			}
			pins = append(pins, canon[uf.find(pin)])
		}
		if arity > 0 && len(pins) != arity {
			return nil, fmt.Errorf("%w: gate %q (%s) declares %d inputs but has %d pins",
				ErrMalformed, compName, compType, arity, len(pins))
		}

		outPin := compName + ".o"
		if _, ok := types[outPin]; !ok {
			return nil, fmt.Errorf("%w: gate %q has no output pin", ErrMalformed, compName)
		}

		gates = append(gates, Gate{
			ID:     GateID(compName),
			Kind:   kind,
			Inputs: pins,
			Output: canon[uf.find(outPin)],
		})
	}

	sortWiresNaturally(inputs)
	sortWiresNaturally(outputs)

	return New(name, gates, inputs, outputs)
}

// canonicalWireNames picks one name per connected component class: a port
// name when the class contains one (inputs preferred), otherwise a gate
// output pin, otherwise the first declared member. Port names win so that
// scenario files can reference primary wires by their port names.
func canonicalWireNames(declared []string, types map[string]string, uf *unionFind) map[string]WireID {
	members := make(map[string][]string)
	for _, name := range declared {
		root := uf.find(name)
		members[root] = append(members[root], name)
	}

	canon := make(map[string]WireID, len(members))
	for root, names := range members {
		best := names[0]
		bestRank := wireNameRank(best, types[best])
		for _, n := range names[1:] {
			if r := wireNameRank(n, types[n]); r < bestRank {
				best, bestRank = n, r
			}
		}
		canon[root] = WireID(best)
	}
	return canon
}

func wireNameRank(name, compType string) int {
	switch {
	case strings.EqualFold(compType, "port") && strings.HasPrefix(name, "i"):
		return 0
	case strings.EqualFold(compType, "port"):
		return 1
	case strings.HasSuffix(name, ".o"):
		return 2
	default:
		return 3
	}
}

// sortWiresNaturally orders w1, w2, ... w10 the way a human counts: shorter
// names first, lexicographic within a length.
func sortWiresNaturally(ws []WireID) {
	sort.Slice(ws, func(i, j int) bool {
		if len(ws[i]) != len(ws[j]) {
			return len(ws[i]) < len(ws[j])
		}
		return ws[i] < ws[j]
	})
}

type unionFind struct {
	parent map[string]string
}

func newUnionFind() *unionFind {
	return &unionFind{parent: make(map[string]string)}
}

func (u *unionFind) find(x string) string {
	p, ok := u.parent[x]
	if !ok || p == x {
		return x
	}
	root := u.find(p)
	u.parent[x] = root
	return root
}

func (u *unionFind) union(a, b string) {
	ra, rb := u.find(a), u.find(b)
	if ra != rb {
		// Deterministic root choice keeps canonical naming stable.
		if ra < rb {
			u.parent[rb] = ra
		} else {
			u.parent[ra] = rb
		}
	}
}
