package model

import (
	"maps"
	"slices"
	"strings"

	"github.com/born-ml/phenomics/internal/validate"
)

// setter applies one dynamically typed parameter.
type setter func(m *Model, param string, v any) error

// parameters maps parameter names to their setters. Each entry coerces the
// value first, so a value of the wrong kind fails with validate.ErrType and
// never reaches the typed setter.
var parameters = map[string]setter{
	"number_of_threads":       intSetter((*Model).SetNumberOfThreads),
	"batch_size":              intSetter((*Model).SetBatchSize),
	"num_regression_outputs":  intSetter((*Model).SetNumRegressionOutputs),
	"maximum_training_epochs": intSetter((*Model).SetMaximumTrainingEpochs),

	"learning_rate":              floatSetter((*Model).SetLearningRate),
	"density_map_sigma":          floatSetter((*Model).SetDensityMapSigma),
	"regularization_coefficient": floatSetter((*Model).SetRegularizationCoefficient),
	"test_split":                 floatSetter((*Model).SetTestSplit),
	"validation_split":           floatSetter((*Model).SetValidationSplit),

	"crop_or_pad_images":                   boolSetter((*Model).SetCropOrPadImages),
	"resize_images":                        boolSetter((*Model).SetResizeImages),
	"augmentation_flip_horizontal":         boolSetter((*Model).SetAugmentationFlipHorizontal),
	"augmentation_flip_vertical":           boolSetter((*Model).SetAugmentationFlipVertical),
	"augmentation_brightness_and_contrast": boolSetter((*Model).SetAugmentationBrightnessAndContrast),

	"processed_images_dir": stringSetter((*Model).SetProcessedImagesDir),
	"optimizer":            stringSetter((*Model).SetOptimizer),
	"weight_initializer":   stringSetter((*Model).SetWeightInitializer),
	"loss_function":        stringSetter((*Model).SetLossFunction),

	"image_dimensions": func(m *Model, param string, v any) error {
		d, err := validate.IntVector(param, v, 3)
		if err != nil {
			return err
		}
		return m.SetImageDimensions(d[0], d[1], d[2])
	},
	"original_image_dimensions": func(m *Model, param string, v any) error {
		d, err := validate.IntVector(param, v, 2)
		if err != nil {
			return err
		}
		return m.SetOriginalImageDimensions(d[0], d[1])
	},
	"patch_size": func(m *Model, param string, v any) error {
		d, err := validate.IntVector(param, v, 2)
		if err != nil {
			return err
		}
		return m.SetPatchSize(d[0], d[1])
	},
	"augmentation_crop":     setAugmentationCrop,
	"augmentation_rotation": setAugmentationRotation,
	"learning_rate_decay":   setLearningRateDecay,
	"yolo_parameters":       setYOLOParameters,
}

// ParameterNames returns the names accepted by SetParameter, sorted.
func ParameterNames() []string {
	return slices.Sorted(maps.Keys(parameters))
}

// SetParameter sets a parameter from a dynamically typed value, as decoded
// from a configuration document. Integers may not be given as floats or
// strings, flags must be booleans, and so on; mismatches fail with
// validate.ErrType. Range and state checks are those of the typed setter.
func (m *Model) SetParameter(name string, value any) error {
	set, ok := parameters[name]
	if !ok {
		return validate.Valuef(name, "unknown parameter")
	}
	return set(m, name, value)
}

func intSetter(f func(*Model, int) error) setter {
	return func(m *Model, param string, v any) error {
		n, err := validate.Int(param, v)
		if err != nil {
			return err
		}
		return f(m, n)
	}
}

func floatSetter(f func(*Model, float64) error) setter {
	return func(m *Model, param string, v any) error {
		x, err := validate.Float(param, v)
		if err != nil {
			return err
		}
		return f(m, x)
	}
}

func boolSetter(f func(*Model, bool) error) setter {
	return func(m *Model, param string, v any) error {
		b, err := validate.Bool(param, v)
		if err != nil {
			return err
		}
		return f(m, b)
	}
}

func stringSetter(f func(*Model, string) error) setter {
	return func(m *Model, param string, v any) error {
		s, err := validate.String(param, v)
		if err != nil {
			return err
		}
		return f(m, s)
	}
}

// args reads named fields of a mapping value.
type args struct {
	param string
	m     map[string]any
}

func argsOf(param string, v any) (args, error) {
	m, ok := v.(map[string]any)
	if !ok {
		return args{}, validate.Typef(param, "must be a mapping, got %T", v)
	}
	return args{param: param, m: m}, nil
}

func (a args) key(k string) string {
	return a.param + "." + k
}

func (a args) has(k string) bool {
	_, ok := a.m[k]
	return ok
}

func (a args) intArg(k string, def int) (int, error) {
	if !a.has(k) {
		return def, nil
	}
	return validate.Int(a.key(k), a.m[k])
}

func (a args) floatArg(k string, def float64) (float64, error) {
	if !a.has(k) {
		return def, nil
	}
	return validate.Float(a.key(k), a.m[k])
}

func (a args) boolArg(k string, def bool) (bool, error) {
	if !a.has(k) {
		return def, nil
	}
	return validate.Bool(a.key(k), a.m[k])
}

func (a args) stringArg(k, def string) (string, error) {
	if !a.has(k) {
		return def, nil
	}
	return validate.String(a.key(k), a.m[k])
}

func (a args) requiredString(k string) (string, error) {
	if !a.has(k) {
		return "", validate.Valuef(a.key(k), "is required")
	}
	return validate.String(a.key(k), a.m[k])
}

func (a args) requiredInt(k string) (int, error) {
	if !a.has(k) {
		return 0, validate.Valuef(a.key(k), "is required")
	}
	return validate.Int(a.key(k), a.m[k])
}

func (a args) filter(k string) ([4]int, error) {
	if !a.has(k) {
		return [4]int{}, validate.Valuef(a.key(k), "is required")
	}
	d, err := validate.IntVector(a.key(k), a.m[k], 4)
	if err != nil {
		return [4]int{}, err
	}
	return [4]int{d[0], d[1], d[2], d[3]}, nil
}

// checkKeys rejects fields outside allowed.
func (a args) checkKeys(allowed ...string) error {
	for k := range a.m {
		if !slices.Contains(allowed, k) {
			return validate.Valuef(a.param, "unknown field %q, expected one of %s", k, strings.Join(allowed, ", "))
		}
	}
	return nil
}

// setAugmentationCrop accepts a flag or {enabled, crop_ratio}.
func setAugmentationCrop(m *Model, param string, v any) error {
	ratio := m.hp.Augmentations.CropRatio
	if b, ok := v.(bool); ok {
		return m.SetAugmentationCrop(b, ratio)
	}
	a, err := argsOf(param, v)
	if err != nil {
		return validate.Typef(param, "must be a boolean or a mapping, got %T", v)
	}
	if err := a.checkKeys("enabled", "crop_ratio"); err != nil {
		return err
	}
	enabled, err := a.boolArg("enabled", true)
	if err != nil {
		return err
	}
	if ratio, err = a.floatArg("crop_ratio", ratio); err != nil {
		return err
	}
	return m.SetAugmentationCrop(enabled, ratio)
}

// setAugmentationRotation accepts a flag or {enabled, crop_borders}.
func setAugmentationRotation(m *Model, param string, v any) error {
	if b, ok := v.(bool); ok {
		return m.SetAugmentationRotation(b, false)
	}
	a, err := argsOf(param, v)
	if err != nil {
		return validate.Typef(param, "must be a boolean or a mapping, got %T", v)
	}
	if err := a.checkKeys("enabled", "crop_borders"); err != nil {
		return err
	}
	enabled, err := a.boolArg("enabled", true)
	if err != nil {
		return err
	}
	crop, err := a.boolArg("crop_borders", false)
	if err != nil {
		return err
	}
	return m.SetAugmentationRotation(enabled, crop)
}

// setLearningRateDecay accepts {decay_factor, epochs_per_decay}.
func setLearningRateDecay(m *Model, param string, v any) error {
	a, err := argsOf(param, v)
	if err != nil {
		return err
	}
	if err := a.checkKeys("decay_factor", "epochs_per_decay"); err != nil {
		return err
	}
	if !a.has("decay_factor") || !a.has("epochs_per_decay") {
		return validate.Valuef(param, "decay_factor and epochs_per_decay are both required")
	}
	factor, err := a.floatArg("decay_factor", 0)
	if err != nil {
		return err
	}
	epochs, err := a.intArg("epochs_per_decay", 0)
	if err != nil {
		return err
	}
	return m.SetLearningRateDecay(factor, epochs)
}

// setYOLOParameters accepts nil for the defaults or
// {grid_size, class_names, anchors}.
func setYOLOParameters(m *Model, param string, v any) error {
	if v == nil {
		return m.SetYOLOParameters(YOLOParameters{})
	}
	a, err := argsOf(param, v)
	if err != nil {
		return err
	}
	if err := a.checkKeys("grid_size", "class_names", "anchors"); err != nil {
		return err
	}

	var p YOLOParameters
	if a.has("grid_size") {
		g, err := validate.IntVector(a.key("grid_size"), a.m["grid_size"], 2)
		if err != nil {
			return err
		}
		p.GridSize = [2]int{g[0], g[1]}
	}
	if a.has("class_names") {
		if p.ClassNames, err = validate.StringList(a.key("class_names"), a.m["class_names"]); err != nil {
			return err
		}
	}
	if a.has("anchors") {
		if p.Anchors, err = validate.Pairs(a.key("anchors"), a.m["anchors"]); err != nil {
			return err
		}
	}
	return m.SetYOLOParameters(p)
}

// layerBuilders maps layer kinds to builders reading their arguments.
var layerBuilders = map[string]func(m *Model, a args) error{
	"input": func(m *Model, a args) error {
		if err := a.checkKeys(); err != nil {
			return err
		}
		return m.AddInputLayer()
	},
	"convolutional": func(m *Model, a args) error {
		if err := a.checkKeys("filter_dimension", "stride_length", "activation_function"); err != nil {
			return err
		}
		filter, err := a.filter("filter_dimension")
		if err != nil {
			return err
		}
		stride, err := a.requiredInt("stride_length")
		if err != nil {
			return err
		}
		act, err := a.stringArg("activation_function", DefaultConvActivation)
		if err != nil {
			return err
		}
		return m.AddConvolutionalLayer(filter, stride, act)
	},
	"paral_conv_block": func(m *Model, a args) error {
		if err := a.checkKeys("filter_dimension_1", "filter_dimension_2"); err != nil {
			return err
		}
		f1, err := a.filter("filter_dimension_1")
		if err != nil {
			return err
		}
		f2, err := a.filter("filter_dimension_2")
		if err != nil {
			return err
		}
		return m.AddParallelConvBlock(f1, f2)
	},
	"pooling": func(m *Model, a args) error {
		if err := a.checkKeys("kernel_size", "stride_length", "pooling_type"); err != nil {
			return err
		}
		kernel, err := a.requiredInt("kernel_size")
		if err != nil {
			return err
		}
		stride, err := a.requiredInt("stride_length")
		if err != nil {
			return err
		}
		pt, err := a.stringArg("pooling_type", DefaultPoolingType)
		if err != nil {
			return err
		}
		return m.AddPoolingLayer(kernel, stride, pt)
	},
	"normalization": func(m *Model, a args) error {
		if err := a.checkKeys(); err != nil {
			return err
		}
		return m.AddNormalizationLayer()
	},
	"dropout": func(m *Model, a args) error {
		if err := a.checkKeys("dropout_rate"); err != nil {
			return err
		}
		if !a.has("dropout_rate") {
			return validate.Valuef(a.key("dropout_rate"), "is required")
		}
		rate, err := a.floatArg("dropout_rate", 0)
		if err != nil {
			return err
		}
		return m.AddDropoutLayer(rate)
	},
	"batch_norm": func(m *Model, a args) error {
		if err := a.checkKeys(); err != nil {
			return err
		}
		return m.AddBatchNormLayer()
	},
	"fully_connected": func(m *Model, a args) error {
		if err := a.checkKeys("output_size", "activation_function", "regularization_coefficient"); err != nil {
			return err
		}
		units, err := a.requiredInt("output_size")
		if err != nil {
			return err
		}
		act, err := a.stringArg("activation_function", DefaultConvActivation)
		if err != nil {
			return err
		}
		reg, err := a.floatArg("regularization_coefficient", m.hp.RegularizationCoefficient)
		if err != nil {
			return err
		}
		return m.AddFullyConnectedLayer(units, act, reg)
	},
	"output": func(m *Model, a args) error {
		if err := a.checkKeys("output_size", "regularization_coefficient"); err != nil {
			return err
		}
		var cfg OutputConfig
		var err error
		if cfg.OutputSize, err = a.intArg("output_size", 0); err != nil {
			return err
		}
		if cfg.RegularizationCoefficient, err = a.floatArg("regularization_coefficient", 0); err != nil {
			return err
		}
		return m.AddOutputLayer(cfg)
	},
}

// AddLayerFrom appends a layer of the named kind with arguments given as a
// mapping. A nil params means no arguments.
func (m *Model) AddLayerFrom(kind string, params map[string]any) error {
	build, ok := layerBuilders[validate.Canonical(kind)]
	if !ok {
		return validate.Valuef("layer", "unknown layer kind %q", kind)
	}
	return build(m, args{param: validate.Canonical(kind), m: params})
}

// LoadDatasetFrom loads a dataset in the named format with arguments given as
// a mapping.
//
// Formats:
//   - directory_with_csv_labels: image_dir, labels_file, column (default 0)
//   - ippn_leaf_count: dir
func (m *Model) LoadDatasetFrom(format string, params map[string]any) error {
	a := args{param: "dataset", m: params}
	switch validate.Canonical(format) {
	case "directory_with_csv_labels":
		if err := a.checkKeys("image_dir", "labels_file", "column"); err != nil {
			return err
		}
		dir, err := a.requiredString("image_dir")
		if err != nil {
			return err
		}
		labels, err := a.requiredString("labels_file")
		if err != nil {
			return err
		}
		column, err := a.intArg("column", 0)
		if err != nil {
			return err
		}
		return m.LoadDatasetFromDirectoryWithCSVColumn(dir, labels, column)
	case "ippn_leaf_count":
		if err := a.checkKeys("dir"); err != nil {
			return err
		}
		dir, err := a.requiredString("dir")
		if err != nil {
			return err
		}
		return m.LoadIPPNLeafCountDataset(dir)
	default:
		return validate.Valuef("dataset", "unknown format %q", format)
	}
}
