// Package loader provides dataset loading for phenotyping models.
//
// This package wraps the internal dataset loaders and exports a clean public
// API for listing images and pairing them with labels.
//
// Example usage:
//
//	import "github.com/born-ml/phenomics/loader"
//
//	// Images of a directory paired with the first CSV column
//	data, err := loader.FromDirectoryWithCSVLabels("images", "labels.csv", 0)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Leaf count statistics
//	stats, err := data.Stats()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(stats)
//
//	// 80/20 split, reproducible for a given seed
//	train, test, err := data.Split(0.2, 42)
package loader

import (
	"github.com/born-ml/phenomics/internal/dataset"
)

// Dataset is a list of image paths with one label each.
type Dataset = dataset.Dataset

// Loader reads datasets, verifying image headers on Workers goroutines
// (zero means one per CPU).
//
//	data, err := loader.Loader{Workers: 4}.IPPNLeafCount("Ara2013-Canon")
type Loader = dataset.Loader

// LabelStats summarizes numeric labels.
type LabelStats = dataset.LabelStats

// IPPN Ara2013 layout.
const (
	IPPNLabelFile   = dataset.IPPNLabelFile
	IPPNImageSuffix = dataset.IPPNImageSuffix
)

// FromDirectoryWithCSVLabels pairs the images of imageDir, in sorted file
// name order, with the given column of the CSV file at labelPath.
//
// The number of images and label rows must match.
func FromDirectoryWithCSVLabels(imageDir, labelPath string, column int) (*Dataset, error) {
	return dataset.FromDirectoryWithCSVLabels(imageDir, labelPath, column)
}

// IPPNLeafCount loads the leaf counting dataset of the IPPN plant phenotyping
// challenge: Leaf_counts.csv rows name each plant and its count, and images
// are named "<plant>_rgb.png".
func IPPNLeafCount(dir string) (*Dataset, error) {
	return dataset.IPPNLeafCount(dir)
}

// ListImages returns the sorted image files directly inside dir.
func ListImages(dir string) ([]string, error) {
	return dataset.ListImages(dir)
}
