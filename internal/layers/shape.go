package layers

import (
	"fmt"
	"slices"
	"strings"
)

// Shape is the output size of a layer.
//
// Spatial layers produce [batch, height, width, channels]; fully connected
// layers produce [batch, units].
type Shape []int

// IsSpatial reports whether the shape carries height, width and channels.
func (s Shape) IsSpatial() bool {
	return len(s) == 4
}

// Batch returns the batch dimension.
func (s Shape) Batch() int {
	return s[0]
}

// Height returns the spatial height. Only valid for spatial shapes.
func (s Shape) Height() int {
	return s[1]
}

// Width returns the spatial width. Only valid for spatial shapes.
func (s Shape) Width() int {
	return s[2]
}

// Channels returns the trailing dimension: channels for spatial shapes,
// units for flat shapes.
func (s Shape) Channels() int {
	return s[len(s)-1]
}

// Elements returns the number of values per sample (product of all but batch).
func (s Shape) Elements() int {
	n := 1
	for _, d := range s[1:] {
		n *= d
	}
	return n
}

// Clone returns a copy of the shape.
func (s Shape) Clone() Shape {
	return slices.Clone(s)
}

// Equal reports whether two shapes have identical dimensions.
func (s Shape) Equal(other Shape) bool {
	return slices.Equal(s, other)
}

// String returns the shape as [a, b, c, d].
func (s Shape) String() string {
	parts := make([]string, len(s))
	for i, d := range s {
		parts[i] = fmt.Sprint(d)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// sameOutput computes the spatial output size of a sliding window with
// "same" padding: ceil(in / stride). The window size does not enter.
func sameOutput(in, stride int) int {
	return (in + stride - 1) / stride
}
