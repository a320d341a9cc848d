package layers

import "fmt"

// Kind identifies the variant of a layer descriptor.
type Kind int

// Layer kinds.
const (
	KindInput Kind = iota
	KindConvolutional
	KindParallelConvBlock
	KindPooling
	KindNormalization
	KindDropout
	KindBatchNorm
	KindFullyConnected
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindInput:
		return "input"
	case KindConvolutional:
		return "convolutional"
	case KindParallelConvBlock:
		return "paral_conv_block"
	case KindPooling:
		return "pooling"
	case KindNormalization:
		return "normalization"
	case KindDropout:
		return "dropout"
	case KindBatchNorm:
		return "batch_norm"
	case KindFullyConnected:
		return "fully_connected"
	default:
		return "unknown"
	}
}

// prefix is used to name layers: conv1, pool2, ...
func (k Kind) prefix() string {
	switch k {
	case KindInput:
		return "input"
	case KindConvolutional:
		return "conv"
	case KindParallelConvBlock:
		return "paral_conv"
	case KindPooling:
		return "pool"
	case KindNormalization:
		return "norm"
	case KindDropout:
		return "drop"
	case KindBatchNorm:
		return "bn"
	case KindFullyConnected:
		return "fc"
	default:
		return "layer"
	}
}

// Layer is a descriptor of one stage of the network topology.
//
// Descriptors are pure configuration: they carry the parameters the tensor
// engine needs to materialize the stage and the output size computed from the
// preceding layer. The set of implementations is closed.
type Layer interface {
	// Kind returns the variant tag.
	Kind() Kind

	// Name returns the registry-assigned name (e.g. "conv1").
	Name() string

	// OutputSize returns the computed output shape.
	OutputSize() Shape

	// String returns a one-line description.
	String() string

	setName(name string)
}

// base carries the fields shared by all descriptors.
type base struct {
	name       string
	outputSize Shape
}

func (b *base) Name() string { return b.name }
func (b *base) OutputSize() Shape { return b.outputSize.Clone() }
func (b *base) setName(n string) { b.name = n }

// Input is the first layer of every topology.
type Input struct {
	base
}

// Kind returns KindInput.
func (l *Input) Kind() Kind { return KindInput }

func (l *Input) String() string {
	return fmt.Sprintf("Input(output_size=%s)", l.outputSize)
}

// Convolutional is a 2D convolution with "same" padding.
//
// Filter is [height, width, in_channels, out_channels]. When Output is set the
// layer is the terminal output layer of a spatial-output problem type.
type Convolutional struct {
	base
	Filter                    [4]int
	Stride                    int
	Activation                string
	RegularizationCoefficient float64
	Output                    bool
}

// Kind returns KindConvolutional.
func (l *Convolutional) Kind() Kind { return KindConvolutional }

func (l *Convolutional) String() string {
	return fmt.Sprintf("Convolutional(filter=%v, stride=%d, activation=%s, output=%t, output_size=%s)",
		l.Filter, l.Stride, l.Activation, l.Output, l.outputSize)
}

// ParallelConvBlock runs two stride-1 convolutions side by side and
// concatenates their outputs along the channel axis.
type ParallelConvBlock struct {
	base
	Filter1    [4]int
	Filter2    [4]int
	Activation string
}

// Kind returns KindParallelConvBlock.
func (l *ParallelConvBlock) Kind() Kind { return KindParallelConvBlock }

func (l *ParallelConvBlock) String() string {
	return fmt.Sprintf("ParallelConvBlock(filter1=%v, filter2=%v, activation=%s, output_size=%s)",
		l.Filter1, l.Filter2, l.Activation, l.outputSize)
}

// Pooling is a max or average pooling layer.
type Pooling struct {
	base
	KernelSize  int
	Stride      int
	PoolingType string
}

// Kind returns KindPooling.
func (l *Pooling) Kind() Kind { return KindPooling }

func (l *Pooling) String() string {
	return fmt.Sprintf("Pooling(kernel_size=%d, stride=%d, type=%s, output_size=%s)",
		l.KernelSize, l.Stride, l.PoolingType, l.outputSize)
}

// Normalization is a local response normalization layer.
type Normalization struct {
	base
}

// Kind returns KindNormalization.
func (l *Normalization) Kind() Kind { return KindNormalization }

func (l *Normalization) String() string {
	return fmt.Sprintf("Normalization(output_size=%s)", l.outputSize)
}

// Dropout randomly zeroes activations during training.
type Dropout struct {
	base
	Rate float64
}

// Kind returns KindDropout.
func (l *Dropout) Kind() Kind { return KindDropout }

func (l *Dropout) String() string {
	return fmt.Sprintf("Dropout(rate=%g, output_size=%s)", l.Rate, l.outputSize)
}

// BatchNorm is a batch normalization layer.
type BatchNorm struct {
	base
}

// Kind returns KindBatchNorm.
func (l *BatchNorm) Kind() Kind { return KindBatchNorm }

func (l *BatchNorm) String() string {
	return fmt.Sprintf("BatchNorm(output_size=%s)", l.outputSize)
}

// FullyConnected is a dense layer. When Output is set it is the terminal
// output layer of a flat-output problem type.
type FullyConnected struct {
	base
	Units                     int
	Activation                string
	RegularizationCoefficient float64
	Output                    bool
}

// Kind returns KindFullyConnected.
func (l *FullyConnected) Kind() Kind { return KindFullyConnected }

func (l *FullyConnected) String() string {
	return fmt.Sprintf("FullyConnected(units=%d, activation=%s, regularization=%g, output=%t, output_size=%s)",
		l.Units, l.Activation, l.RegularizationCoefficient, l.Output, l.outputSize)
}

// IsOutput reports whether l is a terminal output layer.
func IsOutput(l Layer) bool {
	switch v := l.(type) {
	case *Convolutional:
		return v.Output
	case *FullyConnected:
		return v.Output
	default:
		return false
	}
}
