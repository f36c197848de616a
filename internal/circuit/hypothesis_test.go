package circuit

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewHypothesisCanonicalizes(t *testing.T) {
	a := NewHypothesis("g2", "g1", "g2")
	b := NewHypothesis("g1", "g2")

	assert.Equal(t, a, b)
	assert.Equal(t, "g1,g2", a.Key())
	assert.True(t, a.Contains("g1"))
	assert.False(t, a.Contains("g3"))
}

func TestEmptyHypothesisIsNominal(t *testing.T) {
	h := NewHypothesis()
	assert.Len(t, h, 0)
	assert.Equal(t, "", h.Key())
	assert.Equal(t, "{}", h.String())
}

func TestAmbiguityGroupAddDeduplicates(t *testing.T) {
	var ag AmbiguityGroup
	ag = ag.Add(NewHypothesis("g1"))
	ag = ag.Add(NewHypothesis("g2", "g3"))
	ag = ag.Add(NewHypothesis("g3", "g2")) // same set, different order

	assert.Len(t, ag, 2)
	assert.True(t, ag.Contains(NewHypothesis("g1")))
	assert.True(t, ag.Contains(NewHypothesis("g2", "g3")))
	assert.False(t, ag.Contains(NewHypothesis("g2")))
}
