package tensor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShape_NumElements(t *testing.T) {
	assert.Equal(t, 1, Shape{}.NumElements())
	assert.Equal(t, 6, Shape{2, 3}.NumElements())
	assert.Error(t, Shape{2, 0}.Validate())
}

func TestShape_String(t *testing.T) {
	assert.Equal(t, "()", Shape{}.String())
	assert.Equal(t, "(3,)", Shape{3}.String())
	assert.Equal(t, "(2, 3)", Shape{2, 3}.String())
}

func TestBroadcastShapes(t *testing.T) {
	tests := []struct {
		a, b      Shape
		want      Shape
		broadcast bool
		wantErr   bool
	}{
		{Shape{3, 1}, Shape{3, 5}, Shape{3, 5}, true, false},
		{Shape{3, 5}, Shape{}, Shape{3, 5}, true, false},
		{Shape{5}, Shape{3, 5}, Shape{3, 5}, true, false},
		{Shape{3, 5}, Shape{3, 5}, Shape{3, 5}, false, false},
		{Shape{3, 4}, Shape{3, 5}, nil, false, true},
	}
	for _, tt := range tests {
		got, broadcast, err := BroadcastShapes(tt.a, tt.b)
		if tt.wantErr {
			assert.Error(t, err, "%v vs %v", tt.a, tt.b)
			continue
		}
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
		assert.Equal(t, tt.broadcast, broadcast, "%v vs %v", tt.a, tt.b)
	}
}

func TestCanBroadcastTo(t *testing.T) {
	assert.True(t, Shape{}.CanBroadcastTo(Shape{2, 3}))
	assert.True(t, Shape{1, 3}.CanBroadcastTo(Shape{2, 3}))
	assert.False(t, Shape{2, 3}.CanBroadcastTo(Shape{3}))
	assert.False(t, Shape{2}.CanBroadcastTo(Shape{2, 3}))
}

func TestFromData(t *testing.T) {
	raw, err := FromData([][]float64{{1, 2, 3}, {4, 5, 6}})
	require.NoError(t, err)
	assert.Equal(t, Shape{2, 3}, raw.Shape())
	assert.Equal(t, Float64, raw.DType())
	assert.Equal(t, 6.0, raw.At(1, 2))

	raw, err = FromData(float32(1.5))
	require.NoError(t, err)
	assert.True(t, raw.IsScalar())
	assert.Equal(t, Float32, raw.DType())

	raw, err = FromData([]int{1, 2})
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2}, raw.Data())

	_, err = FromData([][]float64{{1, 2}, {3}})
	assert.Error(t, err, "ragged")
	_, err = FromData("abc")
	assert.Error(t, err)
	_, err = FromData([]float64{})
	assert.Error(t, err)
	_, err = FromData(nil)
	assert.Error(t, err)
}

func TestFromSlice(t *testing.T) {
	raw, err := FromSlice([]float64{1, 2, 3, 4}, Shape{2, 2})
	require.NoError(t, err)
	assert.Equal(t, 4, raw.NumElements())
	assert.Equal(t, 2, raw.Len())

	_, err = FromSlice([]float64{1, 2, 3}, Shape{2, 2})
	assert.Error(t, err)

	f32, err := FromSliceAs([]float64{0.1}, Shape{1}, Float32)
	require.NoError(t, err)
	assert.Equal(t, float64(float32(0.1)), f32.Data()[0])
}

func TestLikeConstructors(t *testing.T) {
	raw, err := FromSliceAs([]float64{1, 2, 3}, Shape{3}, Float32)
	require.NoError(t, err)

	ones := OnesLike(raw)
	assert.Equal(t, []float64{1, 1, 1}, ones.Data())
	assert.Equal(t, Float32, ones.DType())

	zeros := ZerosLike(raw)
	assert.Equal(t, []float64{0, 0, 0}, zeros.Data())
	assert.Equal(t, Shape{3}, zeros.Shape())

	full, err := Full(Shape{2}, 7, Float64)
	require.NoError(t, err)
	assert.Equal(t, []float64{7, 7}, full.Data())
}

func TestIsScalar(t *testing.T) {
	assert.True(t, IsScalar(1))
	assert.True(t, IsScalar(2.5))
	assert.False(t, IsScalar([]float64{1}))
	assert.True(t, FromScalar(1).IsScalar())
	assert.Panics(t, func() { FromScalar(1).Len() })
}

func TestString(t *testing.T) {
	assert.Equal(t, "2.5", FromScalar(2.5).String())

	raw, err := FromSlice([]float64{1, 2, 3}, Shape{3})
	require.NoError(t, err)
	assert.Equal(t, "[1 2 3]", raw.String())

	raw, err = FromSlice([]float64{1, 2, 3, 4}, Shape{2, 2})
	require.NoError(t, err)
	assert.Equal(t, "[[1 2]\n [3 4]]", raw.String())

	raw, err = FromSlice([]float64{1, 2, 3, 4, 5, 6, 7, 8}, Shape{2, 2, 2})
	require.NoError(t, err)
	assert.Equal(t, "[[[1 2]\n  [3 4]]\n\n [[5 6]\n  [7 8]]]", raw.String())
}

func TestAllClose(t *testing.T) {
	a, _ := FromSlice([]float64{1, 2}, Shape{2})
	b, _ := FromSlice([]float64{1.0005, 2}, Shape{2})
	assert.True(t, AllClose(a, b, 0, 1e-3))
	assert.False(t, AllClose(a, b, 0, 1e-4))
	assert.False(t, AllClose(a, FromScalar(1), 0, 1))
}
