package circuit

import (
	"sort"
	"strings"
)

// Hypothesis is a set of gates assumed faulty. The empty hypothesis is the
// nominal "no fault" case. Hypotheses are kept as sorted, deduplicated
// slices so that equality and scoring are independent of construction order.
type Hypothesis []GateID

// NewHypothesis builds a canonical hypothesis from the given gate ids.
func NewHypothesis(gates ...GateID) Hypothesis {
	if len(gates) == 0 {
		return Hypothesis{}
	}
	seen := make(map[GateID]bool, len(gates))
	h := make(Hypothesis, 0, len(gates))
	for _, g := range gates {
		if !seen[g] {
			seen[g] = true
			h = append(h, g)
		}
	}
	sort.Slice(h, func(i, j int) bool { return h[i] < h[j] })
	return h
}

// Contains reports whether g is part of the hypothesis.
func (h Hypothesis) Contains(g GateID) bool {
	for _, id := range h {
		if id == g {
			return true
		}
	}
	return false
}

// Key returns a canonical string form, usable for set membership.
func (h Hypothesis) Key() string {
	parts := make([]string, len(h))
	for i, g := range h {
		parts[i] = string(g)
	}
	return strings.Join(parts, ",")
}

func (h Hypothesis) String() string {
	return "{" + h.Key() + "}"
}

// AmbiguityGroup is a set of fault hypotheses, each consistent with an
// observation and minimal. Construction through Add keeps it duplicate-free.
type AmbiguityGroup []Hypothesis

// Add appends h unless an equal hypothesis is already present.
func (ag AmbiguityGroup) Add(h Hypothesis) AmbiguityGroup {
	key := h.Key()
	for _, existing := range ag {
		if existing.Key() == key {
			return ag
		}
	}
	return append(ag, h)
}

// Contains reports whether an equal hypothesis is in the group.
func (ag AmbiguityGroup) Contains(h Hypothesis) bool {
	key := h.Key()
	for _, existing := range ag {
		if existing.Key() == key {
			return true
		}
	}
	return false
}

func (ag AmbiguityGroup) String() string {
	parts := make([]string, len(ag))
	for i, h := range ag {
		parts[i] = h.String()
	}
	return "[" + strings.Join(parts, " ") + "]"
}
