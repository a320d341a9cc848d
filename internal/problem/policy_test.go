package problem

import (
	"testing"

	"github.com/born-ml/phenomics/internal/validate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLossPairing(t *testing.T) {
	tests := []struct {
		typ      Type
		badLoss  string
		goodLoss string
	}{
		{Classification, "l2", "softmax cross entropy"},
		{Regression, "softmax cross entropy", "l2"},
		{SemanticSegmentation, "l2", "sigmoid cross entropy"},
		{ObjectDetection, "l2", "yolo"},
		{CountCeption, "l2", "l1"},
		{HeatmapObjectCounting, "l1", "sigmoid cross entropy"},
	}

	for _, tt := range tests {
		t.Run(tt.typ.String(), func(t *testing.T) {
			p, err := Lookup(tt.typ)
			require.NoError(t, err)

			_, err = p.CheckLoss(tt.badLoss)
			require.ErrorIs(t, err, validate.ErrValue)

			got, err := p.CheckLoss(tt.goodLoss)
			require.NoError(t, err)
			assert.Equal(t, tt.goodLoss, got)
		})
	}
}

func TestEveryTypeHasPolicy(t *testing.T) {
	for _, typ := range Types {
		p, err := Lookup(typ)
		require.NoError(t, err, typ.String())
		assert.Equal(t, typ, p.Type)
		assert.NotEmpty(t, p.Losses, typ.String())
	}

	_, err := Lookup(Type(99))
	require.ErrorIs(t, err, validate.ErrValue)
}

func TestAugmentations(t *testing.T) {
	reg, _ := Lookup(Regression)
	seg, _ := Lookup(SemanticSegmentation)
	cc, _ := Lookup(CountCeption)

	for _, a := range []Augmentation{FlipHorizontal, FlipVertical, Crop, Rotation} {
		assert.NoError(t, reg.CheckAugmentation(a))
		assert.ErrorIs(t, seg.CheckAugmentation(a), validate.ErrState)
	}
	assert.NoError(t, seg.CheckAugmentation(BrightnessContrast))
	assert.ErrorIs(t, cc.CheckAugmentation(BrightnessContrast), validate.ErrState)
}

func TestOutputRules(t *testing.T) {
	cls, _ := Lookup(Classification)
	assert.False(t, cls.ImplicitOutputSize())
	assert.True(t, cls.RequiresOutputLayer())

	seg, _ := Lookup(SemanticSegmentation)
	assert.True(t, seg.ImplicitOutputSize())
	assert.False(t, seg.UsesOutputRegularization)

	cc, _ := Lookup(CountCeption)
	assert.False(t, cc.RequiresOutputLayer())
}

func TestFeatures(t *testing.T) {
	det, _ := Lookup(ObjectDetection)
	require.NoError(t, det.CheckFeature("set_yolo_parameters", YOLO))
	require.ErrorIs(t, det.CheckFeature("set_density_map_sigma", DensityMap), validate.ErrState)
}

func TestParse(t *testing.T) {
	typ, err := Parse("Semantic_Segmentation")
	require.NoError(t, err)
	assert.Equal(t, SemanticSegmentation, typ)

	_, err = Parse("clustering")
	require.ErrorIs(t, err, validate.ErrValue)
}
