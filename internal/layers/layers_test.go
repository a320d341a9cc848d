package layers

import (
	"testing"

	"github.com/born-ml/phenomics/internal/validate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustInput(t *testing.T, batch, h, w, c int) *Input {
	t.Helper()
	in, err := NewInput(batch, h, w, c)
	require.NoError(t, err)
	return in
}

// TestPoolingOutputSize checks the "same" padding table on a 5x5 input.
func TestPoolingOutputSize(t *testing.T) {
	tests := []struct {
		kernel, stride, want int
	}{
		{2, 2, 3},
		{3, 3, 2},
		{2, 1, 5},
	}

	in := mustInput(t, 1, 5, 5, 1)
	for _, tt := range tests {
		pool, err := NewPooling(in.OutputSize(), tt.kernel, tt.stride, "max")
		require.NoError(t, err)
		assert.Equal(t, Shape{1, tt.want, tt.want, 1}, pool.OutputSize(),
			"kernel=%d stride=%d", tt.kernel, tt.stride)
	}
}

func TestPoolingValidation(t *testing.T) {
	prev := Shape{1, 5, 5, 1}

	_, err := NewPooling(prev, -1, 1, "max")
	require.ErrorIs(t, err, validate.ErrValue)

	_, err = NewPooling(prev, 1, -1, "max")
	require.ErrorIs(t, err, validate.ErrValue)

	_, err = NewPooling(prev, 1, 1, "Nico")
	require.ErrorIs(t, err, validate.ErrValue)

	pool, err := NewPooling(prev, 1, 1, "AVG")
	require.NoError(t, err)
	assert.Equal(t, "avg", pool.PoolingType)

	_, err = NewPooling(Shape{1, 10}, 2, 2, "max")
	require.ErrorIs(t, err, validate.ErrState)
}

func TestConvolutionalOutputSize(t *testing.T) {
	// 128x128x3 -> 5x5x3x32 stride 2 -> 64x64x32
	conv, err := NewConvolutional(Shape{4, 128, 128, 3}, [4]int{5, 5, 3, 32}, 2, "tanh", 0)
	require.NoError(t, err)
	assert.Equal(t, Shape{4, 64, 64, 32}, conv.OutputSize())
	assert.Equal(t, "tanh", conv.Activation)

	// Odd sizes round up.
	conv, err = NewConvolutional(Shape{1, 5, 7, 1}, [4]int{3, 3, 1, 8}, 2, "relu", 0)
	require.NoError(t, err)
	assert.Equal(t, Shape{1, 3, 4, 8}, conv.OutputSize())
}

func TestConvolutionalValidation(t *testing.T) {
	prev := Shape{1, 1, 1, 1}

	tests := []struct {
		name    string
		filter  [4]int
		stride  int
		act     string
		reg     float64
		wantErr error
	}{
		{"negative stride", [4]int{1, 1, 1, 1}, -1, "relu", 0, validate.ErrValue},
		{"zero filter", [4]int{1, 0, 1, 1}, 1, "relu", 0, validate.ErrValue},
		{"unknown activation", [4]int{1, 1, 1, 1}, 1, "Nico", 0, validate.ErrValue},
		{"negative regularization", [4]int{1, 1, 1, 1}, 1, "relu", -1, validate.ErrValue},
		{"channel mismatch", [4]int{1, 1, 3, 4}, 1, "relu", 0, validate.ErrValue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewConvolutional(prev, tt.filter, tt.stride, tt.act, tt.reg)
			require.ErrorIs(t, err, tt.wantErr)
		})
	}

	_, err := NewConvolutional(Shape{1, 8}, [4]int{1, 1, 1, 1}, 1, "relu", 0)
	require.ErrorIs(t, err, validate.ErrState)
}

func TestParallelConvBlock(t *testing.T) {
	block, err := NewParallelConvBlock(Shape{2, 9, 9, 4}, [4]int{1, 1, 4, 8}, [4]int{3, 3, 4, 16}, "relu")
	require.NoError(t, err)
	assert.Equal(t, Shape{2, 9, 9, 24}, block.OutputSize())

	_, err = NewParallelConvBlock(Shape{2, 9, 9, 4}, [4]int{1, 1, 4, 8}, [4]int{3, 3, 2, 16}, "relu")
	require.ErrorIs(t, err, validate.ErrValue)
}

func TestShapePreservingLayers(t *testing.T) {
	prev := Shape{1, 7, 7, 3}

	norm, err := NewNormalization(prev)
	require.NoError(t, err)
	assert.Equal(t, prev, norm.OutputSize())

	bn, err := NewBatchNorm(prev)
	require.NoError(t, err)
	assert.Equal(t, prev, bn.OutputSize())

	drop, err := NewDropout(prev, 0.4)
	require.NoError(t, err)
	assert.Equal(t, prev, drop.OutputSize())

	_, err = NewDropout(prev, 1.5)
	require.ErrorIs(t, err, validate.ErrValue)

	_, err = NewDropout(prev, 0)
	require.NoError(t, err)
}

func TestFullyConnected(t *testing.T) {
	fc, err := NewFullyConnected(Shape{1, 5, 5, 3}, 10, "TANH", 0.3)
	require.NoError(t, err)
	assert.Equal(t, Shape{1, 10}, fc.OutputSize())
	assert.Equal(t, "tanh", fc.Activation)

	_, err = NewFullyConnected(Shape{1, 5, 5, 3}, -3, "relu", 1.8)
	require.ErrorIs(t, err, validate.ErrValue)

	_, err = NewFullyConnected(Shape{1, 5, 5, 3}, 3, "Nico", 1.8)
	require.ErrorIs(t, err, validate.ErrValue)

	_, err = NewFullyConnected(Shape{1, 5, 5, 3}, 3, "relu", -1.5)
	require.ErrorIs(t, err, validate.ErrValue)
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	assert.True(t, r.Empty())
	assert.Nil(t, r.Last())

	in := mustInput(t, 1, 4, 4, 1)
	r.Append(in)

	conv, err := NewConvolutional(in.OutputSize(), [4]int{3, 3, 1, 2}, 1, "relu", 0)
	require.NoError(t, err)
	r.Append(conv)

	conv2, err := NewConvolutional(conv.OutputSize(), [4]int{3, 3, 2, 2}, 1, "relu", 0)
	require.NoError(t, err)
	r.Append(conv2)

	assert.Equal(t, 3, r.Len())
	assert.Same(t, conv2, r.Last())
	assert.Equal(t, "input1", in.Name())
	assert.Equal(t, "conv1", conv.Name())
	assert.Equal(t, "conv2", conv2.Name())
	assert.Equal(t, 2, r.Count(KindConvolutional))

	// Layers returns a copy.
	ls := r.Layers()
	ls[0] = nil
	assert.NotNil(t, r.Layers()[0])
}

func TestOutputSizeIsCopied(t *testing.T) {
	in := mustInput(t, 1, 4, 4, 1)
	s := in.OutputSize()
	s[1] = 100
	assert.Equal(t, Shape{1, 4, 4, 1}, in.OutputSize())
}

func TestIsOutput(t *testing.T) {
	fc, err := NewFullyConnected(Shape{1, 2}, 1, "linear", 0)
	require.NoError(t, err)
	assert.False(t, IsOutput(fc))
	fc.Output = true
	assert.True(t, IsOutput(fc))
	assert.False(t, IsOutput(mustInput(t, 1, 1, 1, 1)))
}

func TestConvolutionalOutput(t *testing.T) {
	out, err := NewConvolutionalOutput(Shape{2, 3, 3, 16}, 12, 12, 1)
	require.NoError(t, err)
	assert.True(t, out.Output)
	assert.Equal(t, [4]int{1, 1, 16, 1}, out.Filter)
	assert.Equal(t, Shape{2, 12, 12, 1}, out.OutputSize())

	_, err = NewConvolutionalOutput(Shape{2, 16}, 12, 12, 1)
	require.ErrorIs(t, err, validate.ErrState)

	_, err = NewConvolutionalOutput(Shape{2, 3, 3, 16}, 12, 12, 0)
	require.ErrorIs(t, err, validate.ErrValue)
}
