package model

import (
	"github.com/born-ml/phenomics/internal/problem"
	"github.com/born-ml/phenomics/internal/validate"
)

// SetNumberOfThreads sets the number of data-loading threads, which also
// verify images while a dataset is loaded.
func (m *Model) SetNumberOfThreads(n int) error {
	if err := validate.Positive("number_of_threads", n); err != nil {
		return err
	}
	m.hp.NumThreads = n
	return nil
}

// SetProcessedImagesDir sets where preprocessed images are cached.
func (m *Model) SetProcessedImagesDir(dir string) error {
	if dir == "" {
		return validate.Valuef("processed_images_dir", "must not be empty")
	}
	m.hp.ProcessedImagesDir = dir
	return nil
}

// SetBatchSize sets the training batch size.
func (m *Model) SetBatchSize(n int) error {
	if err := validate.Positive("batch_size", n); err != nil {
		return err
	}
	m.hp.BatchSize = n
	return nil
}

// SetNumRegressionOutputs sets the number of regression targets. Regression only.
func (m *Model) SetNumRegressionOutputs(n int) error {
	if err := validate.Positive("num_regression_outputs", n); err != nil {
		return err
	}
	if err := m.policy.CheckFeature("set_num_regression_outputs", problem.RegressionOutputs); err != nil {
		return err
	}
	m.hp.NumRegressionOutputs = n
	return nil
}

// SetDensityMapSigma sets the Gaussian sigma used to render ground-truth
// density maps. Heatmap object counting only.
func (m *Model) SetDensityMapSigma(sigma float64) error {
	if err := validate.PositiveFloat("density_map_sigma", sigma); err != nil {
		return err
	}
	if err := m.policy.CheckFeature("set_density_map_sigma", problem.DensityMap); err != nil {
		return err
	}
	m.hp.DensityMapSigma = sigma
	return nil
}

// SetMaximumTrainingEpochs sets the number of training epochs.
func (m *Model) SetMaximumTrainingEpochs(n int) error {
	if err := validate.Positive("maximum_training_epochs", n); err != nil {
		return err
	}
	m.hp.MaxEpochs = n
	return nil
}

// SetLearningRate sets the base learning rate.
func (m *Model) SetLearningRate(lr float64) error {
	if err := validate.PositiveFloat("learning_rate", lr); err != nil {
		return err
	}
	m.hp.LearningRate = lr
	return nil
}

// SetLearningRateDecay configures staircase decay: the learning rate is
// multiplied by factor every epochsPerDecay epochs. The schedule itself is
// built by PrepareLearningRate once the sample count is known.
func (m *Model) SetLearningRateDecay(factor float64, epochsPerDecay int) error {
	if err := validate.NonNegative("decay_factor", factor); err != nil {
		return err
	}
	if err := validate.Positive("epochs_per_decay", epochsPerDecay); err != nil {
		return err
	}
	m.hp.DecayFactor = factor
	m.hp.EpochsPerDecay = epochsPerDecay
	m.hp.DecaySteps = 0
	return nil
}

// SetCropOrPadImages toggles cropping or padding images to the configured size.
func (m *Model) SetCropOrPadImages(enabled bool) error {
	m.hp.CropOrPadImages = enabled
	return nil
}

// SetResizeImages toggles resizing images to the configured size.
func (m *Model) SetResizeImages(enabled bool) error {
	m.hp.ResizeImages = enabled
	return nil
}

// SetRegularizationCoefficient sets the default L2 regularization coefficient.
func (m *Model) SetRegularizationCoefficient(c float64) error {
	if err := validate.NonNegative("regularization_coefficient", c); err != nil {
		return err
	}
	m.hp.RegularizationCoefficient = c
	return nil
}

// SetOptimizer sets the optimizer. Names are case-insensitive and stored in
// lowercase: "SGD", "sgd" and "sGd" all yield "sgd".
func (m *Model) SetOptimizer(name string) error {
	c, err := validate.Enum("optimizer", name, Optimizers)
	if err != nil {
		return err
	}
	m.hp.Optimizer = c
	return nil
}

// SetWeightInitializer sets the weight initializer (case-insensitive).
func (m *Model) SetWeightInitializer(name string) error {
	c, err := validate.Enum("weight_initializer", name, WeightInitializers)
	if err != nil {
		return err
	}
	m.hp.WeightInitializer = c
	return nil
}

// SetLossFunction sets the loss function. It must be legal for the model's
// problem type.
func (m *Model) SetLossFunction(name string) error {
	c, err := m.policy.CheckLoss(name)
	if err != nil {
		return err
	}
	m.hp.LossFunction = c
	return nil
}

// SetImageDimensions sets the height, width and depth of input images.
func (m *Model) SetImageDimensions(height, width, depth int) error {
	if err := validate.Positive("image_height", height); err != nil {
		return err
	}
	if err := validate.Positive("image_width", width); err != nil {
		return err
	}
	if err := validate.Positive("image_depth", depth); err != nil {
		return err
	}
	m.hp.ImageDimensions = [3]int{height, width, depth}
	return nil
}

// SetOriginalImageDimensions sets the size of images before resizing.
func (m *Model) SetOriginalImageDimensions(height, width int) error {
	if err := validate.Positive("original_image_height", height); err != nil {
		return err
	}
	if err := validate.Positive("original_image_width", width); err != nil {
		return err
	}
	m.hp.OriginalImageDimensions = [2]int{height, width}
	return nil
}

// SetPatchSize sets the size of patches cut from large images.
func (m *Model) SetPatchSize(height, width int) error {
	if err := validate.Positive("patch_height", height); err != nil {
		return err
	}
	if err := validate.Positive("patch_width", width); err != nil {
		return err
	}
	m.hp.PatchSize = [2]int{height, width}
	return nil
}

// SetTestSplit sets the fraction of samples held out for testing.
func (m *Model) SetTestSplit(ratio float64) error {
	if err := validate.Probability("test_split", ratio); err != nil {
		return err
	}
	m.hp.TestSplit = ratio
	return nil
}

// SetValidationSplit sets the fraction of samples held out for validation.
func (m *Model) SetValidationSplit(ratio float64) error {
	if err := validate.Probability("validation_split", ratio); err != nil {
		return err
	}
	m.hp.ValidationSplit = ratio
	return nil
}
