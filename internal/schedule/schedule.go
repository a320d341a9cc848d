// Package schedule implements learning-rate schedules handed to the tensor
// engine alongside the topology.
package schedule

import (
	"fmt"
	"math"
)

// Schedule yields the learning rate for a global training step.
type Schedule interface {
	// Value returns the learning rate at step.
	Value(step int) float64

	// String returns a description such as "constant(0.001)".
	String() string
}

// Constant is a fixed learning rate.
type Constant float64

// Value returns the constant rate regardless of step.
func (c Constant) Value(int) float64 {
	return float64(c)
}

func (c Constant) String() string {
	return fmt.Sprintf("constant(%g)", float64(c))
}

// ExponentialDecay multiplies Base by Factor once every DecaySteps steps
// (staircase decay):
//
//	lr(step) = Base * Factor^floor(step / DecaySteps)
type ExponentialDecay struct {
	Base       float64
	Factor     float64
	DecaySteps int
}

// Value returns the decayed rate at step.
func (e ExponentialDecay) Value(step int) float64 {
	if e.DecaySteps <= 0 || step < 0 {
		return e.Base
	}
	return e.Base * math.Pow(e.Factor, float64(step/e.DecaySteps))
}

func (e ExponentialDecay) String() string {
	return fmt.Sprintf("exponential_decay(base=%g, factor=%g, decay_steps=%d)", e.Base, e.Factor, e.DecaySteps)
}

// DecaySteps converts an epoch-based decay interval to steps.
//
// The training set is what remains after removing round(total*testSplit)
// samples; one step consumes one batch:
//
//	steps = epochsPerDecay * floor(trainSamples / batchSize)
func DecaySteps(totalSamples int, testSplit float64, batchSize, epochsPerDecay int) int {
	if batchSize <= 0 {
		return 0
	}
	train := totalSamples - int(math.Round(float64(totalSamples)*testSplit))
	return epochsPerDecay * (train / batchSize)
}
