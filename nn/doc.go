// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package nn provides the layer descriptors of a phenotyping network.
//
// # Overview
//
// Descriptors carry the settings and the computed output size of one layer;
// they hold no weights. Sizes are [batch, height, width, channels] for
// spatial layers and [batch, units] after a fully connected layer.
//
// This package contains:
//   - Layers: Input, Convolutional, ParallelConvBlock, Pooling,
//     Normalization, Dropout, BatchNorm, FullyConnected
//   - Registry: the ordered layer sequence with per-kind naming
//
// # Basic Usage
//
//	import "github.com/born-ml/phenomics/nn"
//
//	func main() {
//	    in, _ := nn.NewInput(1, 5, 5, 1)
//	    pool, _ := nn.NewPooling(in.OutputSize(), 2, 2, "max")
//	    fmt.Println(pool.OutputSize()) // [1, 3, 3, 1]
//	}
//
// # Output Sizes
//
// Convolution and pooling use "same" padding: each spatial side becomes
// ceil(side / stride) regardless of the kernel size. A parallel conv block
// concatenates the channels of its two stride-1 convolutions.
package nn
