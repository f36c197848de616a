package circuit

// Value is a three-valued logic level. Unknown models an unconstrained
// signal, such as the output of a gate assumed faulty: it propagates through
// downstream gates and can never contradict an observation.
type Value uint8

const (
	False Value = iota
	True
	Unknown
)

func (v Value) String() string {
	switch v {
	case False:
		return "0"
	case True:
		return "1"
	default:
		return "X"
	}
}

// Known reports whether v is a concrete logic level.
func (v Value) Known() bool {
	return v == False || v == True
}

// Not returns the three-valued negation of v.
func (v Value) Not() Value {
	switch v {
	case False:
		return True
	case True:
		return False
	default:
		return Unknown
	}
}

// BoolValue converts a Go bool to a Value.
func BoolValue(b bool) Value {
	if b {
		return True
	}
	return False
}
