package model

import (
	"slices"

	"github.com/born-ml/phenomics/internal/problem"
	"github.com/born-ml/phenomics/internal/validate"
)

// SetAugmentationFlipHorizontal toggles random horizontal flips.
func (m *Model) SetAugmentationFlipHorizontal(enabled bool) error {
	if err := m.policy.CheckAugmentation(problem.FlipHorizontal); err != nil {
		return err
	}
	m.hp.Augmentations.FlipHorizontal = enabled
	return nil
}

// SetAugmentationFlipVertical toggles random vertical flips.
func (m *Model) SetAugmentationFlipVertical(enabled bool) error {
	if err := m.policy.CheckAugmentation(problem.FlipVertical); err != nil {
		return err
	}
	m.hp.Augmentations.FlipVertical = enabled
	return nil
}

// SetAugmentationCrop toggles random crops keeping ratio of each side.
func (m *Model) SetAugmentationCrop(enabled bool, ratio float64) error {
	if err := validate.Probability("crop_ratio", ratio); err != nil {
		return err
	}
	if err := m.policy.CheckAugmentation(problem.Crop); err != nil {
		return err
	}
	m.hp.Augmentations.Crop = enabled
	m.hp.Augmentations.CropRatio = ratio
	return nil
}

// SetAugmentationBrightnessAndContrast toggles random brightness and
// contrast jitter.
func (m *Model) SetAugmentationBrightnessAndContrast(enabled bool) error {
	if err := m.policy.CheckAugmentation(problem.BrightnessContrast); err != nil {
		return err
	}
	m.hp.Augmentations.BrightnessContrast = enabled
	return nil
}

// SetAugmentationRotation toggles random rotations. With cropBorders the
// rotated image is cropped to remove the empty corners.
func (m *Model) SetAugmentationRotation(enabled, cropBorders bool) error {
	if err := m.policy.CheckAugmentation(problem.Rotation); err != nil {
		return err
	}
	m.hp.Augmentations.Rotate = enabled
	m.hp.Augmentations.RotateCropBorders = cropBorders
	return nil
}

// YOLOParameters configures the detection grid, classes and anchor boxes.
type YOLOParameters struct {
	GridSize   [2]int       // Cells along height and width
	ClassNames []string     // Detected class names
	Anchors    [][2]float64 // Anchor box (width, height) in pixels
}

// DefaultYOLOParameters returns a 7x7 grid with one "plant" class and five
// anchors.
func DefaultYOLOParameters() YOLOParameters {
	return YOLOParameters{
		GridSize:   [2]int{7, 7},
		ClassNames: []string{"plant"},
		Anchors:    [][2]float64{{159, 157}, {103, 133}, {91, 89}, {64, 65}, {142, 101}},
	}
}

func (p YOLOParameters) clone() YOLOParameters {
	p.ClassNames = slices.Clone(p.ClassNames)
	p.Anchors = slices.Clone(p.Anchors)
	return p
}

// OutputChannels returns the depth of the grid prediction:
// anchors * (5 + classes).
func (p YOLOParameters) OutputChannels() int {
	return len(p.Anchors) * (5 + len(p.ClassNames))
}

// SetYOLOParameters configures object detection. Zero-valued fields take the
// defaults of DefaultYOLOParameters. Image dimensions must already be set.
func (m *Model) SetYOLOParameters(p YOLOParameters) error {
	const op = "set_yolo_parameters"
	if err := m.policy.CheckFeature(op, problem.YOLO); err != nil {
		return err
	}
	if !m.imageDimensionsSet() {
		return validate.Statef(op, "image dimensions must be set first")
	}

	def := DefaultYOLOParameters()
	if p.GridSize == [2]int{} {
		p.GridSize = def.GridSize
	}
	if len(p.ClassNames) == 0 {
		p.ClassNames = def.ClassNames
	}
	if len(p.Anchors) == 0 {
		p.Anchors = def.Anchors
	}

	for _, g := range p.GridSize {
		if err := validate.Positive("grid_size", g); err != nil {
			return err
		}
	}
	for i, name := range p.ClassNames {
		if name == "" {
			return validate.Valuef("class_names", "class %d has an empty name", i)
		}
	}
	for i, a := range p.Anchors {
		if a[0] <= 0 || a[1] <= 0 {
			return validate.Valuef("anchors", "anchor %d must have positive width and height, got %v", i, a)
		}
	}

	p = p.clone()
	m.hp.YOLO = &p
	m.hp.NumClasses = len(p.ClassNames)
	return nil
}
