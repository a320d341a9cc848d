// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package nn

import (
	"github.com/born-ml/phenomics/internal/layers"
)

// Layer is the common interface of all layer descriptors.
type Layer = layers.Layer

// Shape is a layer output size.
type Shape = layers.Shape

// Kind identifies the type of a layer.
type Kind = layers.Kind

// Layer kinds.
const (
	KindInput             = layers.KindInput
	KindConvolutional     = layers.KindConvolutional
	KindParallelConvBlock = layers.KindParallelConvBlock
	KindPooling           = layers.KindPooling
	KindNormalization     = layers.KindNormalization
	KindDropout           = layers.KindDropout
	KindBatchNorm         = layers.KindBatchNorm
	KindFullyConnected    = layers.KindFullyConnected
)

// Descriptor types.
type (
	Input             = layers.Input
	Convolutional     = layers.Convolutional
	ParallelConvBlock = layers.ParallelConvBlock
	Pooling           = layers.Pooling
	Normalization     = layers.Normalization
	Dropout           = layers.Dropout
	BatchNorm         = layers.BatchNorm
	FullyConnected    = layers.FullyConnected
)

// Registry is an ordered layer sequence.
type Registry = layers.Registry

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return layers.NewRegistry()
}

// Activations lists the recognized activation functions.
func Activations() []string {
	return append([]string(nil), layers.Activations...)
}

// PoolingTypes lists the recognized pooling types.
func PoolingTypes() []string {
	return append([]string(nil), layers.PoolingTypes...)
}

// IsOutput reports whether l is an output layer.
func IsOutput(l Layer) bool {
	return layers.IsOutput(l)
}

// NewInput creates an input layer for images of the given size.
func NewInput(batch, height, width, channels int) (*Input, error) {
	return layers.NewInput(batch, height, width, channels)
}

// NewConvolutional creates a convolution over prev.
// filter is [height, width, in_channels, out_channels].
func NewConvolutional(prev Shape, filter [4]int, stride int, activation string, reg float64) (*Convolutional, error) {
	return layers.NewConvolutional(prev, filter, stride, activation, reg)
}

// NewParallelConvBlock creates two parallel stride-1 convolutions over prev.
func NewParallelConvBlock(prev Shape, filter1, filter2 [4]int, activation string) (*ParallelConvBlock, error) {
	return layers.NewParallelConvBlock(prev, filter1, filter2, activation)
}

// NewPooling creates a pooling layer over prev.
func NewPooling(prev Shape, kernelSize, stride int, poolingType string) (*Pooling, error) {
	return layers.NewPooling(prev, kernelSize, stride, poolingType)
}

// NewNormalization creates a local response normalization layer.
func NewNormalization(prev Shape) (*Normalization, error) {
	return layers.NewNormalization(prev)
}

// NewDropout creates a dropout layer.
func NewDropout(prev Shape, rate float64) (*Dropout, error) {
	return layers.NewDropout(prev, rate)
}

// NewBatchNorm creates a batch normalization layer.
func NewBatchNorm(prev Shape) (*BatchNorm, error) {
	return layers.NewBatchNorm(prev)
}

// NewFullyConnected creates a dense layer over prev.
func NewFullyConnected(prev Shape, units int, activation string, reg float64) (*FullyConnected, error) {
	return layers.NewFullyConnected(prev, units, activation, reg)
}
