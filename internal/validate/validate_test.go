package validate

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInt(t *testing.T) {
	tests := []struct {
		name    string
		in      any
		want    int
		wantErr error
	}{
		{"int", 5, 5, nil},
		{"int64", int64(7), 7, nil},
		{"uint8", uint8(3), 3, nil},
		{"negative int is still an int", -1, -1, nil},
		{"integral float", 5.0, 0, ErrType},
		{"float32", float32(1), 0, ErrType},
		{"string", "5", 0, ErrType},
		{"bool", true, 0, ErrType},
		{"nil", nil, 0, ErrType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Int("batch_size", tt.in)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFloat(t *testing.T) {
	f, err := Float("learning_rate", 3)
	require.NoError(t, err)
	assert.Equal(t, 3.0, f)

	f, err = Float("learning_rate", float32(0.5))
	require.NoError(t, err)
	assert.InDelta(t, 0.5, f, 1e-9)

	_, err = Float("learning_rate", "5")
	require.ErrorIs(t, err, ErrType)

	_, err = Float("learning_rate", false)
	require.ErrorIs(t, err, ErrType)

	_, err = Float("learning_rate", map[string]any{})
	require.ErrorIs(t, err, ErrType)
}

func TestBoolAndString(t *testing.T) {
	_, err := Bool("resize_images", "True")
	require.ErrorIs(t, err, ErrType)

	b, err := Bool("resize_images", true)
	require.NoError(t, err)
	assert.True(t, b)

	_, err = String("processed_images_dir", 5)
	require.ErrorIs(t, err, ErrType)

	s, err := String("processed_images_dir", "out/")
	require.NoError(t, err)
	assert.Equal(t, "out/", s)
}

func TestIntVector(t *testing.T) {
	v, err := IntVector("filter_dimension", []any{1, 2, 3, 4}, 4)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3, 4}, v)

	v, err = IntVector("filter_dimension", [4]int{1, 1, 1, 1}, 4)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 1, 1, 1}, v)

	_, err = IntVector("filter_dimension", []any{1, 2.0, 3, 4}, 4)
	require.ErrorIs(t, err, ErrType)

	_, err = IntVector("filter_dimension", []int{1, 2}, 4)
	require.ErrorIs(t, err, ErrType)

	_, err = IntVector("filter_dimension", 1, 4)
	require.ErrorIs(t, err, ErrType)
}

func TestStringList(t *testing.T) {
	got, err := StringList("class_names", []any{"plant", "knat"})
	require.NoError(t, err)
	assert.Equal(t, []string{"plant", "knat"}, got)

	_, err = StringList("class_names", "plant")
	require.ErrorIs(t, err, ErrType)

	_, err = StringList("class_names", []any{"plant", 2})
	require.ErrorIs(t, err, ErrType)
}

func TestPairs(t *testing.T) {
	got, err := Pairs("anchors", []any{[]any{100, 30}, []any{200, 10.5}})
	require.NoError(t, err)
	assert.Equal(t, [][2]float64{{100, 30}, {200, 10.5}}, got)

	bad := []any{
		100,
		[]any{[]any{100, 30}, 50},
		[]any{[]any{100, 30}, []any{145}},
		[]any{[]any{100, 30}, []any{145, "a"}},
	}
	for _, b := range bad {
		_, err := Pairs("anchors", b)
		assert.ErrorIs(t, err, ErrType, "input %v", b)
	}
}

func TestRangeChecks(t *testing.T) {
	require.NoError(t, Positive("batch_size", 1))
	require.ErrorIs(t, Positive("batch_size", 0), ErrValue)
	require.ErrorIs(t, Positive("batch_size", -1), ErrValue)

	require.NoError(t, NonNegative("regularization_coefficient", 0))
	require.ErrorIs(t, NonNegative("regularization_coefficient", -0.001), ErrValue)

	require.ErrorIs(t, PositiveFloat("learning_rate", 0), ErrValue)
	require.NoError(t, PositiveFloat("learning_rate", 0.01))

	for _, p := range []float64{0, 0.5, 1} {
		assert.NoError(t, Probability("dropout_rate", p))
	}
	for _, p := range []float64{-0.0001, 1.0001, 1.5, -1} {
		assert.ErrorIs(t, Probability("dropout_rate", p), ErrValue)
	}
}

func TestEnum(t *testing.T) {
	allowed := []string{"adam", "sgd"}
	for _, in := range []string{"SGD", "sgd", "sGd", " sgd "} {
		got, err := Enum("optimizer", in, allowed)
		require.NoError(t, err)
		assert.Equal(t, "sgd", got)
	}

	_, err := Enum("optimizer", "Nico", allowed)
	require.ErrorIs(t, err, ErrValue)
}

func TestErrorFormatting(t *testing.T) {
	err := Valuef("batch_size", "must be a positive integer, got %d", -1)

	var verr *Error
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "batch_size", verr.Param)
	assert.Equal(t, "value error: batch_size: must be a positive integer, got -1", err.Error())

	err = &Error{Kind: ErrState, Details: "no input layer"}
	assert.Equal(t, "state error: no input layer", err.Error())
}
