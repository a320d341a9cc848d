package model

import (
	"github.com/born-ml/phenomics/internal/layers"
	"github.com/born-ml/phenomics/internal/problem"
	"github.com/born-ml/phenomics/internal/validate"
)

// LastLayer returns the terminal layer of the topology, or nil when empty.
func (m *Model) LastLayer() layers.Layer {
	return m.registry.Last()
}

// Layers returns the ordered layer descriptors.
func (m *Model) Layers() []layers.Layer {
	return m.registry.Layers()
}

// NumLayers returns the number of layers added.
func (m *Model) NumLayers() int {
	return m.registry.Len()
}

// requireInput returns the previous layer's output size, failing when there
// is no input layer yet or the output layer already closed the topology.
func (m *Model) requireInput(op string) (layers.Shape, error) {
	last := m.registry.Last()
	if last == nil {
		return nil, validate.Statef(op, "no input layer; call AddInputLayer first")
	}
	if layers.IsOutput(last) {
		return nil, validate.Statef(op, "the output layer has already been added")
	}
	return last.OutputSize(), nil
}

// AddInputLayer starts the topology. Image dimensions must be set and no
// layer may have been added before.
func (m *Model) AddInputLayer() error {
	const op = "add_input_layer"
	if !m.registry.Empty() {
		return validate.Statef(op, "input layer already added")
	}
	if !m.imageDimensionsSet() {
		return validate.Statef(op, "image dimensions must be set first")
	}

	d := m.hp.ImageDimensions
	l, err := layers.NewInput(m.hp.BatchSize, d[0], d[1], d[2])
	if err != nil {
		return err
	}
	m.registry.Append(l)
	return nil
}

// AddConvolutionalLayer appends a convolution. filter is
// [height, width, in_channels, out_channels]; in_channels must match the
// previous layer.
func (m *Model) AddConvolutionalLayer(filter [4]int, stride int, activation string) error {
	prev, err := m.requireInput("add_convolutional_layer")
	if err != nil {
		return err
	}
	l, err := layers.NewConvolutional(prev, filter, stride, activation, m.hp.RegularizationCoefficient)
	if err != nil {
		return err
	}
	m.registry.Append(l)
	return nil
}

// AddParallelConvBlock appends two parallel stride-1 convolutions whose
// outputs are concatenated.
func (m *Model) AddParallelConvBlock(filter1, filter2 [4]int) error {
	prev, err := m.requireInput("add_paral_conv_block")
	if err != nil {
		return err
	}
	l, err := layers.NewParallelConvBlock(prev, filter1, filter2, DefaultConvActivation)
	if err != nil {
		return err
	}
	m.registry.Append(l)
	return nil
}

// AddPoolingLayer appends a pooling layer. An empty poolingType means "max".
func (m *Model) AddPoolingLayer(kernelSize, stride int, poolingType string) error {
	prev, err := m.requireInput("add_pooling_layer")
	if err != nil {
		return err
	}
	if poolingType == "" {
		poolingType = DefaultPoolingType
	}
	l, err := layers.NewPooling(prev, kernelSize, stride, poolingType)
	if err != nil {
		return err
	}
	m.registry.Append(l)
	return nil
}

// AddNormalizationLayer appends a local response normalization layer.
func (m *Model) AddNormalizationLayer() error {
	prev, err := m.requireInput("add_normalization_layer")
	if err != nil {
		return err
	}
	l, err := layers.NewNormalization(prev)
	if err != nil {
		return err
	}
	m.registry.Append(l)
	return nil
}

// AddDropoutLayer appends a dropout layer with the given drop probability.
func (m *Model) AddDropoutLayer(rate float64) error {
	prev, err := m.requireInput("add_dropout_layer")
	if err != nil {
		return err
	}
	l, err := layers.NewDropout(prev, rate)
	if err != nil {
		return err
	}
	m.registry.Append(l)
	return nil
}

// AddBatchNormLayer appends a batch normalization layer.
func (m *Model) AddBatchNormLayer() error {
	prev, err := m.requireInput("add_batch_norm_layer")
	if err != nil {
		return err
	}
	l, err := layers.NewBatchNorm(prev)
	if err != nil {
		return err
	}
	m.registry.Append(l)
	return nil
}

// AddFullyConnectedLayer appends a dense layer.
func (m *Model) AddFullyConnectedLayer(units int, activation string, regularization float64) error {
	prev, err := m.requireInput("add_fully_connected_layer")
	if err != nil {
		return err
	}
	l, err := layers.NewFullyConnected(prev, units, activation, regularization)
	if err != nil {
		return err
	}
	m.registry.Append(l)
	return nil
}

// OutputConfig holds the optional arguments of AddOutputLayer. Zero values
// mean "not supplied".
type OutputConfig struct {
	// RegularizationCoefficient overrides the model default for a fully
	// connected output. Ignored, with a warning, by spatial-output problem types.
	RegularizationCoefficient float64

	// OutputSize overrides the number of outputs of a fully connected output.
	// Supplying it to a problem type whose output shape is implicit fails.
	OutputSize int
}

// AddOutputLayer closes the topology with the output layer demanded by the
// problem type:
//   - classification, regression: fully connected with OutputSize units
//     (default: number of classes, number of regression outputs)
//   - semantic segmentation, heatmap counting: 1x1 convolution at input
//     resolution
//   - object detection: 1x1 convolution onto the YOLO grid
//   - countception: nothing; the engine owns the architecture
func (m *Model) AddOutputLayer(cfg OutputConfig) error {
	const op = "add_output_layer"
	prev, err := m.requireInput(op)
	if err != nil {
		return err
	}
	if err := validate.NonNegative("regularization_coefficient", cfg.RegularizationCoefficient); err != nil {
		return err
	}
	if cfg.OutputSize < 0 {
		return validate.Valuef("output_size", "must be a positive integer, got %d", cfg.OutputSize)
	}
	if cfg.OutputSize != 0 && m.policy.ImplicitOutputSize() {
		return validate.Statef(op, "output size is implicit for %s models", m.policy.Type)
	}

	var out layers.Layer
	switch m.policy.Output {
	case problem.OutputFullyConnected:
		out, err = m.denseOutput(prev, cfg)
	case problem.OutputConvolutional:
		channels := 1
		if m.policy.Type == problem.SemanticSegmentation && m.hp.NumClasses > 1 {
			channels = m.hp.NumClasses
		}
		d := m.hp.ImageDimensions
		out, err = layers.NewConvolutionalOutput(prev, d[0], d[1], channels)
	case problem.OutputGrid:
		y := DefaultYOLOParameters()
		if m.hp.YOLO != nil {
			y = *m.hp.YOLO
		}
		out, err = layers.NewConvolutionalOutput(prev, y.GridSize[0], y.GridSize[1], y.OutputChannels())
	case problem.OutputNone:
	}
	if err != nil {
		return err
	}

	if cfg.RegularizationCoefficient != 0 && !m.policy.UsesOutputRegularization {
		m.warn(op, "regularization coefficient %g is ignored for %s models",
			cfg.RegularizationCoefficient, m.policy.Type)
	}
	if out != nil {
		m.registry.Append(out)
	}
	return nil
}

func (m *Model) denseOutput(prev layers.Shape, cfg OutputConfig) (layers.Layer, error) {
	size := cfg.OutputSize
	if size == 0 {
		switch m.policy.Type {
		case problem.Regression:
			size = m.hp.NumRegressionOutputs
		default:
			size = m.hp.NumClasses
		}
	}
	if size == 0 {
		return nil, validate.Statef("add_output_layer",
			"number of classes is unknown; load a dataset or pass an output size")
	}

	reg := m.hp.RegularizationCoefficient
	if cfg.RegularizationCoefficient != 0 {
		reg = cfg.RegularizationCoefficient
	}
	l, err := layers.NewFullyConnected(prev, size, DefaultOutputActivation, reg)
	if err != nil {
		return nil, err
	}
	l.Output = true
	return l, nil
}
