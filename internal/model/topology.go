package model

import (
	"fmt"
	"strings"

	"github.com/born-ml/phenomics/internal/layers"
	"github.com/born-ml/phenomics/internal/problem"
	"github.com/born-ml/phenomics/internal/schedule"
	"github.com/born-ml/phenomics/internal/validate"
)

// PrepareLearningRate builds the learning-rate schedule.
//
// Without decay settings the schedule is the constant learning rate. With
// them, the decay interval is converted from epochs to steps, which needs the
// sample count of a loaded dataset.
func (m *Model) PrepareLearningRate() error {
	if m.hp.EpochsPerDecay == 0 {
		m.hp.Schedule = schedule.Constant(m.hp.LearningRate)
		return nil
	}
	if m.hp.TotalSamples == 0 {
		return validate.Statef("set_learning_rate", "learning rate decay needs a loaded dataset")
	}

	steps := schedule.DecaySteps(m.hp.TotalSamples, m.hp.TestSplit, m.hp.BatchSize, m.hp.EpochsPerDecay)
	if steps <= 0 {
		return validate.Statef("set_learning_rate",
			"training set of %d samples is smaller than one batch of %d", m.hp.TotalSamples, m.hp.BatchSize)
	}
	m.hp.DecaySteps = steps
	m.hp.Schedule = schedule.ExponentialDecay{
		Base:       m.hp.LearningRate,
		Factor:     m.hp.DecayFactor,
		DecaySteps: steps,
	}
	return nil
}

// Topology is the finished configuration handed to the tensor engine.
type Topology struct {
	RunID           string
	ProblemType     problem.Type
	Layers          []layers.Layer
	Hyperparameters Hyperparameters
}

// Output returns the terminal layer.
func (t *Topology) Output() layers.Layer {
	return t.Layers[len(t.Layers)-1]
}

// String renders a layer-by-layer summary.
func (t *Topology) String() string {
	var b strings.Builder
	hp := t.Hyperparameters
	fmt.Fprintf(&b, "Run %s (%s)\n", t.RunID, t.ProblemType)
	fmt.Fprintf(&b, "  optimizer=%s loss=%s initializer=%s learning_rate=%s batch_size=%d epochs=%d\n",
		hp.Optimizer, hp.LossFunction, hp.WeightInitializer, hp.Schedule, hp.BatchSize, hp.MaxEpochs)
	for _, l := range t.Layers {
		fmt.Fprintf(&b, "  %-12s %s\n", l.Name(), l)
	}
	return b.String()
}

// Topology validates that configuration is complete and returns the layer
// sequence and hyperparameters. The learning-rate schedule is prepared as a
// side effect.
func (m *Model) Topology() (*Topology, error) {
	const op = "topology"
	if m.registry.Empty() {
		return nil, validate.Statef(op, "no input layer")
	}
	if m.policy.RequiresOutputLayer() && !layers.IsOutput(m.registry.Last()) {
		return nil, validate.Statef(op, "%s models need an output layer", m.policy.Type)
	}
	if err := m.PrepareLearningRate(); err != nil {
		return nil, err
	}

	return &Topology{
		RunID:           m.id,
		ProblemType:     m.policy.Type,
		Layers:          m.registry.Layers(),
		Hyperparameters: m.Hyperparameters(),
	}, nil
}
