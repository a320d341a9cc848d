package layers

import (
	"fmt"
	"slices"
)

// Registry is the ordered sequence of layers of a topology under construction.
//
// Layers are appended monotonically; there is no removal or reordering. The
// last appended layer is the terminal node and is the predecessor of the next
// one.
type Registry struct {
	layers []Layer
	counts map[Kind]int
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{counts: make(map[Kind]int)}
}

// Append names l after its kind and position (conv1, conv2, pool1, ...) and
// adds it to the end of the sequence.
func (r *Registry) Append(l Layer) {
	r.counts[l.Kind()]++
	l.setName(fmt.Sprintf("%s%d", l.Kind().prefix(), r.counts[l.Kind()]))
	r.layers = append(r.layers, l)
}

// Last returns the most recently appended layer, or nil when empty.
func (r *Registry) Last() Layer {
	if len(r.layers) == 0 {
		return nil
	}
	return r.layers[len(r.layers)-1]
}

// Len returns the number of layers.
func (r *Registry) Len() int {
	return len(r.layers)
}

// Empty reports whether no layer has been appended.
func (r *Registry) Empty() bool {
	return len(r.layers) == 0
}

// Layers returns a copy of the ordered sequence.
func (r *Registry) Layers() []Layer {
	return slices.Clone(r.layers)
}

// Count returns how many layers of kind k were appended.
func (r *Registry) Count(k Kind) int {
	return r.counts[k]
}
