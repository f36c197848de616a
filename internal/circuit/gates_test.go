package circuit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseGateKind(t *testing.T) {
	tests := []struct {
		name  string
		kind  GateKind
		arity int
	}{
		{"and2", KindAnd, 2},
		{"nand3", KindNand, 3},
		{"or4", KindOr, 4},
		{"nor8", KindNor, 8},
		{"xor2", KindXor, 2},
		{"not1", KindNot, 1},
		{"inverter", KindNot, 1},
		{"buf1", KindBuf, 1},
		{"buffer", KindBuf, 1},
		{"AND", KindAnd, 0},
		{"XNOR", KindXnor, 0},
	}
	for _, tt := range tests {
		kind, arity, err := ParseGateKind(tt.name)
		require.NoError(t, err, tt.name)
		assert.Equal(t, tt.kind, kind, tt.name)
		assert.Equal(t, tt.arity, arity, tt.name)
	}

	for _, bad := range []string{"", "mux2", "and1", "frob"} {
		_, _, err := ParseGateKind(bad)
		assert.Error(t, err, bad)
	}
}

func TestGateEval(t *testing.T) {
	tests := []struct {
		kind GateKind
		in   []Value
		want Value
	}{
		{KindAnd, []Value{True, True}, True},
		{KindAnd, []Value{True, False}, False},
		{KindAnd, []Value{False, Unknown}, False}, // controlling value wins
		{KindAnd, []Value{True, Unknown}, Unknown},
		{KindNand, []Value{True, True}, False},
		{KindNand, []Value{False, Unknown}, True},
		{KindOr, []Value{False, False}, False},
		{KindOr, []Value{True, Unknown}, True},
		{KindOr, []Value{False, Unknown}, Unknown},
		{KindNor, []Value{False, False}, True},
		{KindXor, []Value{True, False}, True},
		{KindXor, []Value{True, True}, False},
		{KindXor, []Value{True, Unknown}, Unknown},
		{KindXnor, []Value{True, True}, True},
		{KindNot, []Value{True}, False},
		{KindNot, []Value{Unknown}, Unknown},
		{KindBuf, []Value{False}, False},
		{KindAnd, []Value{True, True, True, False}, False},
		{KindOr, []Value{False, False, False, True}, True},
	}
	for _, tt := range tests {
		got := tt.kind.Eval(tt.in)
		assert.Equalf(t, tt.want, got, "%s%v", tt.kind, tt.in)
	}
}
