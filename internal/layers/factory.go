package layers

import (
	"github.com/born-ml/phenomics/internal/validate"
)

// Recognized activation functions.
var Activations = []string{"relu", "tanh", "lrelu", "selu", "linear"}

// Recognized pooling types.
var PoolingTypes = []string{"max", "avg"}

// NewInput creates the input layer descriptor for images of the given size.
func NewInput(batch, height, width, channels int) (*Input, error) {
	for _, d := range []struct {
		name string
		v    int
	}{{"batch_size", batch}, {"image_height", height}, {"image_width", width}, {"image_depth", channels}} {
		if err := validate.Positive(d.name, d.v); err != nil {
			return nil, err
		}
	}

	return &Input{base: base{outputSize: Shape{batch, height, width, channels}}}, nil
}

// NewConvolutional creates a convolution over prev.
//
// Output size: [batch, ceil(height/stride), ceil(width/stride), filter[3]].
func NewConvolutional(prev Shape, filter [4]int, stride int, activation string, reg float64) (*Convolutional, error) {
	if err := checkFilter("filter_dimension", filter); err != nil {
		return nil, err
	}
	if err := validate.Positive("stride_length", stride); err != nil {
		return nil, err
	}
	act, err := validate.Enum("activation_function", activation, Activations)
	if err != nil {
		return nil, err
	}
	if err := validate.NonNegative("regularization_coefficient", reg); err != nil {
		return nil, err
	}
	if err := checkSpatial("convolutional", prev); err != nil {
		return nil, err
	}
	if err := checkInChannels("filter_dimension", prev, filter); err != nil {
		return nil, err
	}

	return &Convolutional{
		base: base{outputSize: Shape{
			prev.Batch(),
			sameOutput(prev.Height(), stride),
			sameOutput(prev.Width(), stride),
			filter[3],
		}},
		Filter:                    filter,
		Stride:                    stride,
		Activation:                act,
		RegularizationCoefficient: reg,
	}, nil
}

// NewConvolutionalOutput creates a 1x1 output convolution over prev that
// resamples to height x width with the given number of channels. It is used
// by problem types whose output is a map (segmentation masks, density maps,
// detection grids) rather than a vector.
func NewConvolutionalOutput(prev Shape, height, width, channels int) (*Convolutional, error) {
	if err := checkSpatial("add_output_layer", prev); err != nil {
		return nil, err
	}
	for _, d := range []int{height, width, channels} {
		if err := validate.Positive("output_size", d); err != nil {
			return nil, err
		}
	}

	return &Convolutional{
		base:       base{outputSize: Shape{prev.Batch(), height, width, channels}},
		Filter:     [4]int{1, 1, prev.Channels(), channels},
		Stride:     1,
		Activation: "linear",
		Output:     true,
	}, nil
}

// NewParallelConvBlock creates two parallel stride-1 convolutions over prev.
//
// Output size: [batch, height, width, filter1[3] + filter2[3]].
func NewParallelConvBlock(prev Shape, filter1, filter2 [4]int, activation string) (*ParallelConvBlock, error) {
	if err := checkFilter("filter_dimension_1", filter1); err != nil {
		return nil, err
	}
	if err := checkFilter("filter_dimension_2", filter2); err != nil {
		return nil, err
	}
	act, err := validate.Enum("activation_function", activation, Activations)
	if err != nil {
		return nil, err
	}
	if err := checkSpatial("paral_conv_block", prev); err != nil {
		return nil, err
	}
	if err := checkInChannels("filter_dimension_1", prev, filter1); err != nil {
		return nil, err
	}
	if err := checkInChannels("filter_dimension_2", prev, filter2); err != nil {
		return nil, err
	}

	return &ParallelConvBlock{
		base: base{outputSize: Shape{
			prev.Batch(), prev.Height(), prev.Width(), filter1[3] + filter2[3],
		}},
		Filter1:    filter1,
		Filter2:    filter2,
		Activation: act,
	}, nil
}

// NewPooling creates a pooling layer over prev.
//
// Output size: [batch, ceil(height/stride), ceil(width/stride), channels].
// With a 5x5 input: kernel 2 stride 2 gives 3x3, kernel 3 stride 3 gives 2x2,
// kernel 2 stride 1 gives 5x5.
func NewPooling(prev Shape, kernelSize, stride int, poolingType string) (*Pooling, error) {
	if err := validate.Positive("kernel_size", kernelSize); err != nil {
		return nil, err
	}
	if err := validate.Positive("stride_length", stride); err != nil {
		return nil, err
	}
	pt, err := validate.Enum("pooling_type", poolingType, PoolingTypes)
	if err != nil {
		return nil, err
	}
	if err := checkSpatial("pooling", prev); err != nil {
		return nil, err
	}

	return &Pooling{
		base: base{outputSize: Shape{
			prev.Batch(),
			sameOutput(prev.Height(), stride),
			sameOutput(prev.Width(), stride),
			prev.Channels(),
		}},
		KernelSize:  kernelSize,
		Stride:      stride,
		PoolingType: pt,
	}, nil
}

// NewNormalization creates a shape-preserving local response normalization.
func NewNormalization(prev Shape) (*Normalization, error) {
	if err := checkSpatial("normalization", prev); err != nil {
		return nil, err
	}
	return &Normalization{base: base{outputSize: prev.Clone()}}, nil
}

// NewDropout creates a shape-preserving dropout layer.
func NewDropout(prev Shape, rate float64) (*Dropout, error) {
	if err := validate.Probability("dropout_rate", rate); err != nil {
		return nil, err
	}
	return &Dropout{base: base{outputSize: prev.Clone()}, Rate: rate}, nil
}

// NewBatchNorm creates a shape-preserving batch normalization layer.
func NewBatchNorm(prev Shape) (*BatchNorm, error) {
	return &BatchNorm{base: base{outputSize: prev.Clone()}}, nil
}

// NewFullyConnected creates a dense layer over prev, flattening spatial input.
//
// Output size: [batch, units].
func NewFullyConnected(prev Shape, units int, activation string, reg float64) (*FullyConnected, error) {
	if err := validate.Positive("output_size", units); err != nil {
		return nil, err
	}
	act, err := validate.Enum("activation_function", activation, Activations)
	if err != nil {
		return nil, err
	}
	if err := validate.NonNegative("regularization_coefficient", reg); err != nil {
		return nil, err
	}

	return &FullyConnected{
		base:                      base{outputSize: Shape{prev.Batch(), units}},
		Units:                     units,
		Activation:                act,
		RegularizationCoefficient: reg,
	}, nil
}

func checkFilter(param string, filter [4]int) error {
	for _, d := range filter {
		if d <= 0 {
			return validate.Valuef(param, "all dimensions must be positive, got %v", filter)
		}
	}
	return nil
}

func checkSpatial(op string, prev Shape) error {
	if !prev.IsSpatial() {
		return validate.Statef(op, "requires a spatial input, previous layer outputs %s", prev)
	}
	return nil
}

func checkInChannels(param string, prev Shape, filter [4]int) error {
	if filter[2] != prev.Channels() {
		return validate.Valuef(param, "filter expects %d input channels, previous layer outputs %d",
			filter[2], prev.Channels())
	}
	return nil
}
