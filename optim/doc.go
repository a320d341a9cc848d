// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package optim provides optimizer names and learning-rate schedules.
//
// # Overview
//
// This package contains:
//   - Optimizers: adam, adagrad, adadelta, sgd, sgd_momentum
//   - Weight initializers: normal, xavier
//   - Schedules: Constant and staircase ExponentialDecay
//
// # Learning-Rate Decay
//
// Decay is configured in epochs and applied in steps. With 100 samples, a
// 0.2 test split and batch size 1, one epoch is 80 steps, so decaying every
// 100 epochs means every 8000 steps:
//
//	steps := optim.DecaySteps(100, 0.2, 1, 100) // 8000
//	lr := optim.ExponentialDecay{Base: 0.1, Factor: 0.5, DecaySteps: steps}
//	lr.Value(0)    // 0.1
//	lr.Value(8000) // 0.05
package optim
