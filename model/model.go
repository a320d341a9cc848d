// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package model

import (
	"log/slog"

	"github.com/born-ml/phenomics/internal/model"
	"github.com/born-ml/phenomics/internal/problem"
)

// Model is the configuration of one training run.
type Model = model.Model

// Option configures a Model at construction.
type Option = model.Option

// Hyperparameters is a snapshot of every scalar setting of a model.
type Hyperparameters = model.Hyperparameters

// Augmentations holds the augmentation flags.
type Augmentations = model.Augmentations

// OutputConfig holds the optional arguments of Model.AddOutputLayer.
type OutputConfig = model.OutputConfig

// YOLOParameters configures the detection grid, classes and anchor boxes.
type YOLOParameters = model.YOLOParameters

// Warning is a non-fatal notice that a supplied parameter will be ignored.
type Warning = model.Warning

// Topology is the finished configuration handed to the tensor engine.
type Topology = model.Topology

// ProblemType selects the learning task.
type ProblemType = problem.Type

// Problem types.
const (
	Classification        ProblemType = problem.Classification
	Regression            ProblemType = problem.Regression
	SemanticSegmentation  ProblemType = problem.SemanticSegmentation
	ObjectDetection       ProblemType = problem.ObjectDetection
	CountCeption          ProblemType = problem.CountCeption
	HeatmapObjectCounting ProblemType = problem.HeatmapObjectCounting
)

// ParseProblemType parses a problem type name such as "semantic_segmentation".
func ParseProblemType(s string) (ProblemType, error) {
	return problem.Parse(s)
}

// New creates a model for problem type t.
func New(t ProblemType, opts ...Option) (*Model, error) {
	return model.New(t, opts...)
}

// NewClassification creates a classification model.
func NewClassification(opts ...Option) *Model { return model.NewClassification(opts...) }

// NewRegression creates a regression model.
func NewRegression(opts ...Option) *Model { return model.NewRegression(opts...) }

// NewSemanticSegmentation creates a semantic segmentation model.
func NewSemanticSegmentation(opts ...Option) *Model {
	return model.NewSemanticSegmentation(opts...)
}

// NewObjectDetection creates a YOLO-style object detection model.
func NewObjectDetection(opts ...Option) *Model { return model.NewObjectDetection(opts...) }

// NewCountCeption creates a CountCeption object counting model.
func NewCountCeption(opts ...Option) *Model { return model.NewCountCeption(opts...) }

// NewHeatmapObjectCounting creates a density-heatmap object counting model.
func NewHeatmapObjectCounting(opts ...Option) *Model {
	return model.NewHeatmapObjectCounting(opts...)
}

// WithLogger sets the logger that receives warnings. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return model.WithLogger(l)
}

// WithSeed sets the seed of the train/test shuffle.
func WithSeed(seed uint64) Option {
	return model.WithSeed(seed)
}

// DefaultYOLOParameters returns a 7x7 grid with one "plant" class and five
// anchors.
func DefaultYOLOParameters() YOLOParameters {
	return model.DefaultYOLOParameters()
}

// ParameterNames returns the names accepted by Model.SetParameter.
func ParameterNames() []string {
	return model.ParameterNames()
}
