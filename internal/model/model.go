// Package model implements the configuration surface of a phenotyping model.
//
// A Model is created for one problem type and configured step by step. Every
// setter validates its arguments before touching state, so a failed call
// leaves the model exactly as it was. Layers are appended to an ordered
// registry that starts with the input layer; each descriptor's output size is
// computed from its predecessor. When configuration is complete, Topology
// hands the finished layer sequence and hyperparameters to the tensor engine.
package model

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/google/uuid"

	"github.com/born-ml/phenomics/internal/dataset"
	"github.com/born-ml/phenomics/internal/layers"
	"github.com/born-ml/phenomics/internal/problem"
	"github.com/born-ml/phenomics/internal/schedule"
)

// Defaults applied at construction.
const (
	DefaultBatchSize        = 1
	DefaultLearningRate     = 0.001
	DefaultTestSplit        = 0.10
	DefaultNumThreads       = 1
	DefaultOptimizer        = "adam"
	DefaultInitializer      = "xavier"
	DefaultCropRatio        = 0.75
	DefaultDensitySigma     = 5.0
	DefaultPoolingType      = "max"
	DefaultConvActivation   = "relu"
	DefaultOutputActivation = "linear"
)

// Recognized optimizers and weight initializers.
var (
	Optimizers         = []string{"adam", "adagrad", "adadelta", "sgd", "sgd_momentum"}
	WeightInitializers = []string{"normal", "xavier"}
)

// Augmentations holds the augmentation flags.
type Augmentations struct {
	FlipHorizontal     bool
	FlipVertical       bool
	Crop               bool
	CropRatio          float64
	BrightnessContrast bool
	Rotate             bool
	RotateCropBorders  bool
}

// Hyperparameters is a snapshot of every scalar setting of a model.
type Hyperparameters struct {
	ProblemType problem.Type

	BatchSize      int
	MaxEpochs      int // 0 until set
	NumThreads     int
	LearningRate   float64
	DecayFactor    float64
	EpochsPerDecay int // 0 when no decay is configured
	DecaySteps     int // Computed by PrepareLearningRate
	Schedule       schedule.Schedule

	Optimizer                 string
	WeightInitializer         string
	LossFunction              string
	RegularizationCoefficient float64

	ImageDimensions         [3]int // height, width, depth; zero until set
	OriginalImageDimensions [2]int
	PatchSize               [2]int
	CropOrPadImages         bool
	ResizeImages            bool
	ProcessedImagesDir      string

	TestSplit       float64
	ValidationSplit float64
	Augmentations   Augmentations

	NumRegressionOutputs int
	DensityMapSigma      float64
	YOLO                 *YOLOParameters // nil until set
	NumClasses           int             // From YOLO class names or a loaded classification dataset
	TotalSamples         int             // From a loaded dataset
}

// Warning is a non-fatal notice that a supplied parameter will be ignored.
type Warning struct {
	Op      string
	Message string
}

func (w Warning) String() string {
	return fmt.Sprintf("%s: %s", w.Op, w.Message)
}

// Model is the configuration of one training run.
//
// A Model is not safe for concurrent use; it is owned by its caller.
type Model struct {
	id       string
	policy   problem.Policy
	hp       Hyperparameters
	registry *layers.Registry
	data     *dataset.Dataset
	seed     uint64

	logger   *slog.Logger
	warnings []Warning
}

// Option configures a Model at construction.
type Option func(*Model)

// WithLogger sets the logger that receives warnings. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(m *Model) {
		if l != nil {
			m.logger = l
		}
	}
}

// WithSeed sets the seed of the train/test shuffle.
func WithSeed(seed uint64) Option {
	return func(m *Model) {
		m.seed = seed
	}
}

// New creates a model for problem type t.
func New(t problem.Type, opts ...Option) (*Model, error) {
	policy, err := problem.Lookup(t)
	if err != nil {
		return nil, err
	}

	m := &Model{
		id:       uuid.NewString(),
		policy:   policy,
		registry: layers.NewRegistry(),
		seed:     1,
		logger:   slog.Default(),
		hp: Hyperparameters{
			ProblemType:          t,
			BatchSize:            DefaultBatchSize,
			NumThreads:           DefaultNumThreads,
			LearningRate:         DefaultLearningRate,
			Optimizer:            DefaultOptimizer,
			WeightInitializer:    DefaultInitializer,
			LossFunction:         policy.DefaultLoss(),
			TestSplit:            DefaultTestSplit,
			NumRegressionOutputs: 1,
			DensityMapSigma:      DefaultDensitySigma,
			Augmentations:        Augmentations{CropRatio: DefaultCropRatio},
		},
	}
	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}

func mustNew(t problem.Type, opts []Option) *Model {
	m, err := New(t, opts...)
	if err != nil {
		panic(err)
	}
	return m
}

// NewClassification creates a classification model.
func NewClassification(opts ...Option) *Model { return mustNew(problem.Classification, opts) }

// NewRegression creates a regression model.
func NewRegression(opts ...Option) *Model { return mustNew(problem.Regression, opts) }

// NewSemanticSegmentation creates a semantic segmentation model.
func NewSemanticSegmentation(opts ...Option) *Model {
	return mustNew(problem.SemanticSegmentation, opts)
}

// NewObjectDetection creates a YOLO-style object detection model.
func NewObjectDetection(opts ...Option) *Model { return mustNew(problem.ObjectDetection, opts) }

// NewCountCeption creates a CountCeption object counting model.
func NewCountCeption(opts ...Option) *Model { return mustNew(problem.CountCeption, opts) }

// NewHeatmapObjectCounting creates a density-heatmap object counting model.
func NewHeatmapObjectCounting(opts ...Option) *Model {
	return mustNew(problem.HeatmapObjectCounting, opts)
}

// ID returns the run identifier assigned at construction.
func (m *Model) ID() string {
	return m.id
}

// ProblemType returns the problem type fixed at construction.
func (m *Model) ProblemType() problem.Type {
	return m.policy.Type
}

// Policy returns the problem-type policy of the model.
func (m *Model) Policy() problem.Policy {
	return m.policy
}

// Hyperparameters returns a snapshot of the current settings.
func (m *Model) Hyperparameters() Hyperparameters {
	hp := m.hp
	if hp.YOLO != nil {
		y := hp.YOLO.clone()
		hp.YOLO = &y
	}
	return hp
}

// Warnings returns the warnings emitted so far.
func (m *Model) Warnings() []Warning {
	return slices.Clone(m.warnings)
}

func (m *Model) warn(op, format string, args ...any) {
	w := Warning{Op: op, Message: fmt.Sprintf(format, args...)}
	m.warnings = append(m.warnings, w)
	m.logger.Warn(w.Message, "op", op, "model", m.id, "problem_type", m.policy.Type.String())
}

func (m *Model) imageDimensionsSet() bool {
	return m.hp.ImageDimensions[0] > 0
}
