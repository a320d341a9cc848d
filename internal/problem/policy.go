// Package problem holds the problem-type policy table.
//
// A model's problem type is fixed at construction and decides which loss
// functions are legal, which augmentations are supported, how the output layer
// is shaped, and which variant-only settings exist. Every validator consults
// the same table instead of branching on the type itself.
package problem

import (
	"slices"

	"github.com/born-ml/phenomics/internal/validate"
)

// Type is the task variant of a model.
type Type int

// Problem types.
const (
	Classification Type = iota
	Regression
	SemanticSegmentation
	ObjectDetection
	CountCeption
	HeatmapObjectCounting
)

// String returns the canonical problem type name.
func (t Type) String() string {
	switch t {
	case Classification:
		return "classification"
	case Regression:
		return "regression"
	case SemanticSegmentation:
		return "semantic_segmentation"
	case ObjectDetection:
		return "object_detection"
	case CountCeption:
		return "countception"
	case HeatmapObjectCounting:
		return "heatmap_object_counting"
	default:
		return "unknown"
	}
}

// Types lists every problem type in declaration order.
var Types = []Type{
	Classification, Regression, SemanticSegmentation,
	ObjectDetection, CountCeption, HeatmapObjectCounting,
}

// Parse returns the problem type named s (case-insensitive).
func Parse(s string) (Type, error) {
	c := validate.Canonical(s)
	for _, t := range Types {
		if t.String() == c {
			return t, nil
		}
	}
	names := make([]string, len(Types))
	for i, t := range Types {
		names[i] = t.String()
	}
	_, err := validate.Enum("problem_type", s, names)
	return 0, err
}

// Augmentation is an image augmentation applied while training.
type Augmentation int

// Augmentations.
const (
	FlipHorizontal Augmentation = iota
	FlipVertical
	Crop
	BrightnessContrast
	Rotation
)

// String returns the augmentation name.
func (a Augmentation) String() string {
	switch a {
	case FlipHorizontal:
		return "flip_horizontal"
	case FlipVertical:
		return "flip_vertical"
	case Crop:
		return "crop"
	case BrightnessContrast:
		return "brightness_and_contrast"
	case Rotation:
		return "rotation"
	default:
		return "unknown"
	}
}

// OutputRule describes how the output layer of a problem type is shaped.
type OutputRule int

// Output rules.
const (
	// OutputFullyConnected appends a dense layer; its size may be given explicitly.
	OutputFullyConnected OutputRule = iota
	// OutputConvolutional appends a 1x1 convolution at input resolution; the
	// size is implicit.
	OutputConvolutional
	// OutputGrid appends a 1x1 convolution producing YOLO grid predictions; the
	// size is implicit.
	OutputGrid
	// OutputNone appends nothing; the architecture is fixed by the engine.
	OutputNone
)

// Feature is a setting that only exists for some problem types.
type Feature int

// Variant-only features.
const (
	RegressionOutputs Feature = iota
	DensityMap
	YOLO
)

// Policy is the immutable rule set of one problem type.
type Policy struct {
	Type          Type
	Losses        []string // Legal loss functions, default first
	Augmentations []Augmentation
	Output        OutputRule

	// UsesOutputRegularization is false when a regularization coefficient
	// passed to the output layer is ignored.
	UsesOutputRegularization bool

	Features []Feature
}

var table = map[Type]Policy{
	Classification: {
		Type:                     Classification,
		Losses:                   []string{"softmax cross entropy"},
		Augmentations:            []Augmentation{FlipHorizontal, FlipVertical, Crop, BrightnessContrast, Rotation},
		Output:                   OutputFullyConnected,
		UsesOutputRegularization: true,
	},
	Regression: {
		Type:                     Regression,
		Losses:                   []string{"l2", "l1", "smooth l1", "log loss"},
		Augmentations:            []Augmentation{FlipHorizontal, FlipVertical, Crop, BrightnessContrast, Rotation},
		Output:                   OutputFullyConnected,
		UsesOutputRegularization: true,
		Features:                 []Feature{RegressionOutputs},
	},
	SemanticSegmentation: {
		Type:          SemanticSegmentation,
		Losses:        []string{"sigmoid cross entropy", "softmax cross entropy"},
		Augmentations: []Augmentation{BrightnessContrast},
		Output:        OutputConvolutional,
	},
	ObjectDetection: {
		Type:          ObjectDetection,
		Losses:        []string{"yolo"},
		Augmentations: []Augmentation{BrightnessContrast},
		Output:        OutputGrid,
		Features:      []Feature{YOLO},
	},
	CountCeption: {
		Type:   CountCeption,
		Losses: []string{"l1"},
		Output: OutputNone,
	},
	HeatmapObjectCounting: {
		Type:          HeatmapObjectCounting,
		Losses:        []string{"sigmoid cross entropy", "l2", "pixelwise l2"},
		Augmentations: []Augmentation{BrightnessContrast},
		Output:        OutputConvolutional,
		Features:      []Feature{DensityMap},
	},
}

// Lookup returns the policy of t.
func Lookup(t Type) (Policy, error) {
	p, ok := table[t]
	if !ok {
		return Policy{}, validate.Valuef("problem_type", "unknown problem type %d", int(t))
	}
	return p, nil
}

// DefaultLoss returns the loss function used when none is set.
func (p Policy) DefaultLoss() string {
	return p.Losses[0]
}

// CheckLoss normalizes name and checks that it is legal for p.
func (p Policy) CheckLoss(name string) (string, error) {
	return validate.Enum("loss_function", name, p.Losses)
}

// CheckAugmentation fails with ErrState when a is unsupported by p.
func (p Policy) CheckAugmentation(a Augmentation) error {
	if !slices.Contains(p.Augmentations, a) {
		return validate.Statef("augmentation_"+a.String(),
			"augmentation is not supported for %s models", p.Type)
	}
	return nil
}

// CheckFeature fails with ErrState when f does not exist for p.
func (p Policy) CheckFeature(op string, f Feature) error {
	if !slices.Contains(p.Features, f) {
		return validate.Statef(op, "not available for %s models", p.Type)
	}
	return nil
}

// ImplicitOutputSize reports whether the output layer size is derived from
// the input rather than supplied by the caller.
func (p Policy) ImplicitOutputSize() bool {
	return p.Output != OutputFullyConnected
}

// RequiresOutputLayer reports whether a finished topology must end in an
// output layer.
func (p Policy) RequiresOutputLayer() bool {
	return p.Output != OutputNone
}
