// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package nn_test

import (
	"testing"

	"github.com/born-ml/phenomics/nn"
)

// TestLayerInterface verifies that every descriptor implements Layer.
func TestLayerInterface(t *testing.T) {
	in, err := nn.NewInput(2, 8, 8, 3)
	if err != nil {
		t.Fatalf("NewInput failed: %v", err)
	}
	prev := in.OutputSize()

	conv, err := nn.NewConvolutional(prev, [4]int{3, 3, 3, 4}, 2, "relu", 0)
	if err != nil {
		t.Fatalf("NewConvolutional failed: %v", err)
	}
	block, err := nn.NewParallelConvBlock(prev, [4]int{1, 1, 3, 2}, [4]int{3, 3, 3, 2}, "relu")
	if err != nil {
		t.Fatalf("NewParallelConvBlock failed: %v", err)
	}
	pool, err := nn.NewPooling(prev, 2, 2, "avg")
	if err != nil {
		t.Fatalf("NewPooling failed: %v", err)
	}
	norm, err := nn.NewNormalization(prev)
	if err != nil {
		t.Fatalf("NewNormalization failed: %v", err)
	}
	drop, err := nn.NewDropout(prev, 0.5)
	if err != nil {
		t.Fatalf("NewDropout failed: %v", err)
	}
	bn, err := nn.NewBatchNorm(prev)
	if err != nil {
		t.Fatalf("NewBatchNorm failed: %v", err)
	}
	fc, err := nn.NewFullyConnected(prev, 10, "tanh", 0)
	if err != nil {
		t.Fatalf("NewFullyConnected failed: %v", err)
	}

	tests := []struct {
		name  string
		layer nn.Layer
		kind  nn.Kind
		want  nn.Shape
	}{
		{"Input", in, nn.KindInput, nn.Shape{2, 8, 8, 3}},
		{"Convolutional", conv, nn.KindConvolutional, nn.Shape{2, 4, 4, 4}},
		{"ParallelConvBlock", block, nn.KindParallelConvBlock, nn.Shape{2, 8, 8, 4}},
		{"Pooling", pool, nn.KindPooling, nn.Shape{2, 4, 4, 3}},
		{"Normalization", norm, nn.KindNormalization, nn.Shape{2, 8, 8, 3}},
		{"Dropout", drop, nn.KindDropout, nn.Shape{2, 8, 8, 3}},
		{"BatchNorm", bn, nn.KindBatchNorm, nn.Shape{2, 8, 8, 3}},
		{"FullyConnected", fc, nn.KindFullyConnected, nn.Shape{2, 10}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.layer.Kind() != tt.kind {
				t.Errorf("Kind() = %v, want %v", tt.layer.Kind(), tt.kind)
			}
			if !tt.layer.OutputSize().Equal(tt.want) {
				t.Errorf("OutputSize() = %v, want %v", tt.layer.OutputSize(), tt.want)
			}
			if tt.layer.String() == "" {
				t.Error("String() returned empty string")
			}
			if nn.IsOutput(tt.layer) {
				t.Error("IsOutput() = true for a hidden layer")
			}
		})
	}
}

// TestRegistryNaming verifies per-kind layer names.
func TestRegistryNaming(t *testing.T) {
	r := nn.NewRegistry()
	in, _ := nn.NewInput(1, 4, 4, 1)
	r.Append(in)
	d1, _ := nn.NewDropout(in.OutputSize(), 0.1)
	r.Append(d1)
	d2, _ := nn.NewDropout(d1.OutputSize(), 0.1)
	r.Append(d2)

	names := []string{"input1", "drop1", "drop2"}
	for i, l := range r.Layers() {
		if l.Name() != names[i] {
			t.Errorf("layer %d name = %q, want %q", i, l.Name(), names[i])
		}
	}
}

// TestListsAreCopies verifies that callers cannot mutate the recognized names.
func TestListsAreCopies(t *testing.T) {
	a := nn.Activations()
	a[0] = "changed"
	if nn.Activations()[0] == "changed" {
		t.Error("Activations() returned shared slice")
	}
	if len(nn.PoolingTypes()) != 2 {
		t.Errorf("PoolingTypes() = %v", nn.PoolingTypes())
	}
}
