package circuit

import (
	"fmt"
	"strconv"
	"strings"
)

// GateKind is the logic function a gate computes.
type GateKind string

const (
	KindAnd  GateKind = "and"
	KindOr   GateKind = "or"
	KindNand GateKind = "nand"
	KindNor  GateKind = "nor"
	KindXor  GateKind = "xor"
	KindXnor GateKind = "xnor"
	KindNot  GateKind = "not"
	KindBuf  GateKind = "buf"
)

// ParseGateKind resolves a component type name to a gate kind and its
// declared arity. Names follow the DX convention (and2, nand3, not1,
// inverter, buffer) or the bare bench convention (AND, NOT), in which case
// the arity is unconstrained and returned as 0.
func ParseGateKind(name string) (GateKind, int, error) {
	lower := strings.ToLower(strings.TrimSpace(name))

	switch lower {
	case "inverter", "not", "not1":
		return KindNot, 1, nil
	case "buffer", "buf", "buf1", "buff":
		return KindBuf, 1, nil
	}

	base := strings.TrimRight(lower, "0123456789")
	arity := 0
	if base != lower {
		n, err := strconv.Atoi(lower[len(base):])
		if err != nil || n < 2 {
			return "", 0, fmt.Errorf("gate type %q: bad arity suffix", name)
		}
		arity = n
	}

	switch base {
	case "and", "or", "nand", "nor", "xor", "xnor":
		return GateKind(base), arity, nil
	}
	return "", 0, fmt.Errorf("unknown gate type %q", name)
}

// minArity is the smallest legal input count for a kind.
func (k GateKind) minArity() int {
	switch k {
	case KindNot, KindBuf:
		return 1
	default:
		return 2
	}
}

// maxArity is the largest legal input count, or 0 for unbounded.
func (k GateKind) maxArity() int {
	switch k {
	case KindNot, KindBuf:
		return 1
	default:
		return 0
	}
}

// Eval computes the gate function over three-valued inputs. An Unknown input
// only yields an Unknown output when the known inputs do not already force
// the result (controlling values short-circuit: a known 0 into an AND gives
// 0 regardless of the rest).
func (k GateKind) Eval(in []Value) Value {
	switch k {
	case KindNot:
		return in[0].Not()
	case KindBuf:
		return in[0]
	case KindAnd:
		return evalAnd(in)
	case KindNand:
		return evalAnd(in).Not()
	case KindOr:
		return evalOr(in)
	case KindNor:
		return evalOr(in).Not()
	case KindXor:
		return evalXor(in)
	case KindXnor:
		return evalXor(in).Not()
	}
	return Unknown
}

func evalAnd(in []Value) Value {
	anyUnknown := false
	for _, v := range in {
		switch v {
		case False:
			return False
		case Unknown:
			anyUnknown = true
		}
	}
	if anyUnknown {
		return Unknown
	}
	return True
}

func evalOr(in []Value) Value {
	anyUnknown := false
	for _, v := range in {
		switch v {
		case True:
			return True
		case Unknown:
			anyUnknown = true
		}
	}
	if anyUnknown {
		return Unknown
	}
	return False
}

func evalXor(in []Value) Value {
	parity := False
	for _, v := range in {
		if !v.Known() {
			return Unknown
		}
		if v == True {
			parity = parity.Not()
		}
	}
	return parity
}
