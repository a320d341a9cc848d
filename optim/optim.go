// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package optim

import (
	"slices"

	"github.com/born-ml/phenomics/internal/model"
	"github.com/born-ml/phenomics/internal/schedule"
)

// Schedule maps a global training step to a learning rate.
type Schedule = schedule.Schedule

// Constant is a fixed learning rate.
type Constant = schedule.Constant

// ExponentialDecay multiplies Base by Factor every DecaySteps steps.
type ExponentialDecay = schedule.ExponentialDecay

// DecaySteps converts a decay interval in epochs to steps.
func DecaySteps(totalSamples int, testSplit float64, batchSize, epochsPerDecay int) int {
	return schedule.DecaySteps(totalSamples, testSplit, batchSize, epochsPerDecay)
}

// Optimizers lists the recognized optimizer names.
func Optimizers() []string {
	return slices.Clone(model.Optimizers)
}

// WeightInitializers lists the recognized weight initializer names.
func WeightInitializers() []string {
	return slices.Clone(model.WeightInitializers)
}
