// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package model configures plant phenotyping models.
//
// # Overview
//
// A Model is created for one problem type and configured step by step:
//   - Hyperparameters: batch size, epochs, learning rate and decay, optimizer,
//     loss function, regularization, splits
//   - Augmentations: flips, crops, brightness and contrast, rotation
//   - Layers: input, convolutional, parallel conv blocks, pooling,
//     normalization, dropout, batch norm, fully connected, output
//   - Datasets: image directory with CSV labels, IPPN leaf counts
//
// Every call validates its arguments first and leaves the model untouched on
// failure. Errors match ErrType, ErrValue or ErrState with errors.Is.
//
// # Basic Usage
//
//	import "github.com/born-ml/phenomics/model"
//
//	func main() {
//	    m := model.NewRegression()
//	    if err := m.SetImageDimensions(128, 128, 3); err != nil {
//	        log.Fatal(err)
//	    }
//	    _ = m.SetMaximumTrainingEpochs(100)
//	    _ = m.LoadIPPNLeafCountDataset("data/Ara2013-Canon")
//
//	    _ = m.AddInputLayer()
//	    _ = m.AddConvolutionalLayer([4]int{5, 5, 3, 32}, 1, "tanh")
//	    _ = m.AddPoolingLayer(3, 2, "max")
//	    _ = m.AddOutputLayer(model.OutputConfig{})
//
//	    top, err := m.Topology()
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    fmt.Print(top)
//	}
//
// # Problem Types
//
// The problem type decides which loss functions and augmentations are legal
// and what the output layer looks like:
//
//	Classification         fully connected, one unit per class
//	Regression             fully connected, one unit per regression output
//	SemanticSegmentation   1x1 convolution at input resolution
//	ObjectDetection        1x1 convolution onto the YOLO grid
//	CountCeption           none
//	HeatmapObjectCounting  1x1 convolution to a single-channel density map
//
// # Configuration Documents
//
// LoadConfig reads the same configuration from YAML:
//
//	cfg, err := model.LoadConfig("leaves.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	m, err := cfg.Build()
package model
