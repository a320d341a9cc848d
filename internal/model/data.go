package model

import (
	"github.com/born-ml/phenomics/internal/dataset"
	"github.com/born-ml/phenomics/internal/problem"
	"github.com/born-ml/phenomics/internal/validate"
)

// LoadDatasetFromDirectoryWithCSVLabels loads the images of imageDir paired,
// in sorted file name order, with the first column of the CSV at labelPath.
func (m *Model) LoadDatasetFromDirectoryWithCSVLabels(imageDir, labelPath string) error {
	return m.LoadDatasetFromDirectoryWithCSVColumn(imageDir, labelPath, 0)
}

// LoadDatasetFromDirectoryWithCSVColumn is LoadDatasetFromDirectoryWithCSVLabels
// reading labels from the given column.
func (m *Model) LoadDatasetFromDirectoryWithCSVColumn(imageDir, labelPath string, column int) error {
	d, err := m.loader().FromDirectoryWithCSVLabels(imageDir, labelPath, column)
	if err != nil {
		return err
	}
	return m.attach(d)
}

// LoadIPPNLeafCountDataset loads the IPPN Ara2013 leaf counting dataset from
// dir. Image dimensions and the maximum number of training epochs must be
// set first; batch size, test split and learning rate fall back to their
// defaults.
func (m *Model) LoadIPPNLeafCountDataset(dir string) error {
	const op = "load_ippn_leaf_count_dataset_from_directory"
	if !m.imageDimensionsSet() {
		return validate.Statef(op, "image dimensions must be set first")
	}
	if m.hp.MaxEpochs == 0 {
		return validate.Statef(op, "maximum training epochs must be set first")
	}

	d, err := m.loader().IPPNLeafCount(dir)
	if err != nil {
		return err
	}
	return m.attach(d)
}

// loader verifies images on NumThreads goroutines.
func (m *Model) loader() dataset.Loader {
	return dataset.Loader{Workers: m.hp.NumThreads}
}

// attach validates d against the problem type and records it.
func (m *Model) attach(d *dataset.Dataset) error {
	numClasses := m.hp.NumClasses
	switch m.policy.Type {
	case problem.Regression, problem.CountCeption:
		if _, err := d.RegressionLabels(); err != nil {
			return err
		}
	case problem.Classification:
		_, classes := d.ClassLabels()
		numClasses = len(classes)
	}

	m.data = d
	m.hp.TotalSamples = d.Len()
	m.hp.NumClasses = numClasses
	m.hp.DecaySteps = 0
	m.logger.Debug("dataset loaded", "model", m.id, "samples", d.Len(), "classes", numClasses)
	return nil
}

// Dataset returns the loaded dataset, or nil.
func (m *Model) Dataset() *dataset.Dataset {
	return m.data
}

// SplitDataset separates the loaded dataset into train and test sets using
// the configured test split.
func (m *Model) SplitDataset() (train, test *dataset.Dataset, err error) {
	if m.data == nil {
		return nil, nil, validate.Statef("split_dataset", "no dataset loaded")
	}
	return m.data.Split(m.hp.TestSplit, m.seed)
}
