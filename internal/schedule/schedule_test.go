package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConstant(t *testing.T) {
	c := Constant(0.01)
	assert.Equal(t, 0.01, c.Value(0))
	assert.Equal(t, 0.01, c.Value(1_000_000))
	assert.Equal(t, "constant(0.01)", c.String())
}

func TestDecaySteps(t *testing.T) {
	// 100 samples, 20% held out, batch 1, decay every 100 epochs.
	assert.Equal(t, 8000, DecaySteps(100, 0.20, 1, 100))
	assert.Equal(t, 2000, DecaySteps(100, 0.20, 4, 100))
	assert.Equal(t, 0, DecaySteps(100, 0.20, 0, 100))
}

func TestExponentialDecay(t *testing.T) {
	e := ExponentialDecay{Base: 0.1, Factor: 0.01, DecaySteps: 8000}

	assert.InDelta(t, 0.1, e.Value(0), 1e-12)
	assert.InDelta(t, 0.1, e.Value(7999), 1e-12)
	assert.InDelta(t, 0.001, e.Value(8000), 1e-12)
	assert.InDelta(t, 0.00001, e.Value(16000), 1e-15)

	// Degenerate intervals never decay.
	assert.Equal(t, 0.1, ExponentialDecay{Base: 0.1, Factor: 0.5}.Value(10))
}
