// Package dataset validates image/label sources and prepares them for the
// tensor engine.
//
// Loaders are eager and synchronous: they list the image directory, verify
// each image header decodes, parse the label file, and pair images with
// labels. Decoding pixels into tensors is left to the engine.
package dataset

import (
	"fmt"
	"math/rand/v2"
	"slices"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/born-ml/phenomics/internal/validate"
)

// Dataset pairs image files with their labels.
type Dataset struct {
	Images []string // Image file paths
	Labels []string // Raw label per image, same order as Images
}

// Len returns the number of samples.
func (d *Dataset) Len() int {
	return len(d.Images)
}

// Split shuffles the samples deterministically with seed and separates the
// last round(len*testRatio) of them as the test set.
func (d *Dataset) Split(testRatio float64, seed uint64) (*Dataset, *Dataset, error) {
	if err := validate.Probability("test_split", testRatio); err != nil {
		return nil, nil, err
	}

	order := make([]int, d.Len())
	for i := range order {
		order[i] = i
	}
	//nolint:gosec // Shuffling samples is not security-critical.
	r := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	r.Shuffle(len(order), func(i, j int) { order[i], order[j] = order[j], order[i] })

	numTest := int(float64(d.Len())*testRatio + 0.5)
	splitIdx := d.Len() - numTest

	pick := func(idx []int) *Dataset {
		out := &Dataset{Images: make([]string, len(idx)), Labels: make([]string, len(idx))}
		for i, k := range idx {
			out.Images[i] = d.Images[k]
			out.Labels[i] = d.Labels[k]
		}
		return out
	}
	return pick(order[:splitIdx]), pick(order[splitIdx:]), nil
}

// RegressionLabels parses every label as a number.
func (d *Dataset) RegressionLabels() ([]float64, error) {
	out := make([]float64, len(d.Labels))
	for i, l := range d.Labels {
		v, err := strconv.ParseFloat(strings.TrimSpace(l), 64)
		if err != nil {
			return nil, validate.Valuef("labels", "label %d (%q) is not a number", i, l)
		}
		out[i] = v
	}
	return out, nil
}

// ClassLabels maps labels to class indices. Classes are sorted by name.
func (d *Dataset) ClassLabels() ([]int, []string) {
	classes := slices.Clone(d.Labels)
	for i := range classes {
		classes[i] = strings.TrimSpace(classes[i])
	}
	slices.Sort(classes)
	classes = slices.Compact(classes)

	idx := make([]int, len(d.Labels))
	for i, l := range d.Labels {
		idx[i], _ = slices.BinarySearch(classes, strings.TrimSpace(l))
	}
	return idx, classes
}

// LabelStats summarizes numeric labels.
type LabelStats struct {
	Count  int
	Mean   float64
	StdDev float64
	Min    float64
	Max    float64
}

// String returns a one-line summary.
func (s LabelStats) String() string {
	return fmt.Sprintf("n=%d mean=%.4g std=%.4g min=%.4g max=%.4g", s.Count, s.Mean, s.StdDev, s.Min, s.Max)
}

// Stats computes a summary of the numeric labels.
func (d *Dataset) Stats() (LabelStats, error) {
	values, err := d.RegressionLabels()
	if err != nil {
		return LabelStats{}, err
	}
	if len(values) == 0 {
		return LabelStats{}, validate.Valuef("labels", "dataset is empty")
	}

	mean, std := stat.MeanStdDev(values, nil)
	if len(values) == 1 {
		std = 0
	}
	return LabelStats{
		Count:  len(values),
		Mean:   mean,
		StdDev: std,
		Min:    floats.Min(values),
		Max:    floats.Max(values),
	}, nil
}
