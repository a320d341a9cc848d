// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package optim_test

import (
	"math"
	"slices"
	"testing"

	"github.com/born-ml/phenomics/optim"
)

// TestDecaySchedule tests the documented decay example.
func TestDecaySchedule(t *testing.T) {
	steps := optim.DecaySteps(100, 0.2, 1, 100)
	if steps != 8000 {
		t.Fatalf("DecaySteps() = %d, want 8000", steps)
	}

	var lr optim.Schedule = optim.ExponentialDecay{Base: 0.1, Factor: 0.5, DecaySteps: steps}
	tests := []struct {
		step int
		want float64
	}{
		{0, 0.1},
		{7999, 0.1},
		{8000, 0.05},
		{16000, 0.025},
	}
	for _, tt := range tests {
		if got := lr.Value(tt.step); math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("Value(%d) = %v, want %v", tt.step, got, tt.want)
		}
	}
}

// TestNames tests the recognized optimizer and initializer names.
func TestNames(t *testing.T) {
	if !slices.Contains(optim.Optimizers(), "sgd_momentum") {
		t.Errorf("Optimizers() = %v, missing sgd_momentum", optim.Optimizers())
	}
	if !slices.Equal(optim.WeightInitializers(), []string{"normal", "xavier"}) {
		t.Errorf("WeightInitializers() = %v", optim.WeightInitializers())
	}
	if got := optim.Constant(0.01).Value(123); got != 0.01 {
		t.Errorf("Constant.Value() = %v, want 0.01", got)
	}
}
