package cpu

import (
	"math"
	"testing"

	"github.com/born-ml/autograd/internal/tensor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustRaw(t *testing.T, data []float64, shape ...int) *tensor.RawTensor {
	t.Helper()
	raw, err := tensor.FromSlice(data, shape)
	require.NoError(t, err)
	return raw
}

func TestCPUBackend_Name(t *testing.T) {
	assert.Equal(t, "CPU", New().Name())
}

func TestCPUBackend_Binary(t *testing.T) {
	b := New()
	x := mustRaw(t, []float64{1, 2, 3, 4}, 2, 2)
	y := mustRaw(t, []float64{4, 3, 2, 1}, 2, 2)

	tests := []struct {
		name string
		op   func(a, b *tensor.RawTensor) (*tensor.RawTensor, error)
		want []float64
	}{
		{"add", b.Add, []float64{5, 5, 5, 5}},
		{"sub", b.Sub, []float64{-3, -1, 1, 3}},
		{"mul", b.Mul, []float64{4, 6, 6, 4}},
		{"div", b.Div, []float64{0.25, 2.0 / 3.0, 1.5, 4}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.op(x, y)
			require.NoError(t, err)
			assert.Equal(t, tensor.Shape{2, 2}, got.Shape())
			assert.InDeltaSlice(t, tt.want, got.Data(), 1e-12)
		})
	}
}

func TestCPUBackend_Broadcast(t *testing.T) {
	b := New()
	col := mustRaw(t, []float64{10, 20}, 2, 1)
	row := mustRaw(t, []float64{1, 2, 3}, 3)

	got, err := b.Add(col, row)
	require.NoError(t, err)
	assert.Equal(t, tensor.Shape{2, 3}, got.Shape())
	assert.Equal(t, []float64{11, 12, 13, 21, 22, 23}, got.Data())

	got, err = b.Mul(row, tensor.FromScalar(2))
	require.NoError(t, err)
	assert.Equal(t, tensor.Shape{3}, got.Shape())
	assert.Equal(t, []float64{2, 4, 6}, got.Data())
}

func TestCPUBackend_ShapeMismatch(t *testing.T) {
	_, err := New().Add(mustRaw(t, []float64{1, 2, 3}, 3), mustRaw(t, []float64{1, 2}, 2))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "add:")
}

func TestCPUBackend_DTypePromotion(t *testing.T) {
	b := New()
	f32, err := tensor.FromSliceAs([]float64{1, 2}, tensor.Shape{2}, tensor.Float32)
	require.NoError(t, err)
	f64 := mustRaw(t, []float64{1, 2}, 2)

	got, err := b.Add(f32, f64)
	require.NoError(t, err)
	assert.Equal(t, tensor.Float64, got.DType())

	got, err = b.Mul(f32, tensor.FromScalar(0.1))
	require.NoError(t, err)
	assert.Equal(t, tensor.Float32, got.DType())
	assert.Equal(t, float64(float32(0.1)), got.Data()[0])
}

func TestCPUBackend_Unary(t *testing.T) {
	b := New()
	x := mustRaw(t, []float64{0.5, 1, 2}, 3)

	assert.Equal(t, []float64{-0.5, -1, -2}, b.Neg(x).Data())
	assert.Equal(t, []float64{0.25, 1, 4}, b.Pow(x, 2).Data())
	assert.InDeltaSlice(t, []float64{0.125, 1, 8}, b.Pow(x, 3).Data(), 1e-12)
	assert.InDeltaSlice(t, []float64{math.Exp(0.5), math.E, math.Exp(2)}, b.Exp(x).Data(), 1e-12)
	assert.InDeltaSlice(t, []float64{math.Log(0.5), 0, math.Log(2)}, b.Log(x).Data(), 1e-12)
	assert.InDelta(t, math.Sin(1), b.Sin(x).Data()[1], 1e-12)
	assert.InDelta(t, math.Cos(1), b.Cos(x).Data()[1], 1e-12)
	assert.InDelta(t, math.Tanh(2), b.Tanh(x).Data()[2], 1e-12)

	// Inputs are never mutated.
	assert.Equal(t, []float64{0.5, 1, 2}, x.Data())
}

func TestCPUBackend_SumTo(t *testing.T) {
	b := New()
	x := mustRaw(t, []float64{1, 2, 3, 4, 5, 6}, 2, 3)

	tests := []struct {
		shape tensor.Shape
		want  []float64
	}{
		{tensor.Shape{3}, []float64{5, 7, 9}},
		{tensor.Shape{2, 1}, []float64{6, 15}},
		{tensor.Shape{1, 3}, []float64{5, 7, 9}},
		{tensor.Shape{}, []float64{21}},
		{tensor.Shape{2, 3}, []float64{1, 2, 3, 4, 5, 6}},
	}
	for _, tt := range tests {
		got, err := b.SumTo(x, tt.shape)
		require.NoError(t, err, "%v", tt.shape)
		assert.Equal(t, tt.shape, got.Shape())
		assert.Equal(t, tt.want, got.Data(), "%v", tt.shape)
	}

	_, err := b.SumTo(x, tensor.Shape{2})
	assert.Error(t, err)
}

func TestCPUBackend_BroadcastTo(t *testing.T) {
	b := New()

	got, err := b.BroadcastTo(mustRaw(t, []float64{1, 2, 3}, 3), tensor.Shape{2, 3})
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2, 3, 1, 2, 3}, got.Data())

	got, err = b.BroadcastTo(tensor.FromScalar(7), tensor.Shape{2})
	require.NoError(t, err)
	assert.Equal(t, []float64{7, 7}, got.Data())

	_, err = b.BroadcastTo(mustRaw(t, []float64{1, 2}, 2), tensor.Shape{2, 3})
	assert.Error(t, err)
}

func TestSumTo_IsAdjointOfBroadcastTo(t *testing.T) {
	b := New()
	x := mustRaw(t, []float64{1, 2}, 2, 1)

	wide, err := b.BroadcastTo(x, tensor.Shape{2, 4})
	require.NoError(t, err)
	back, err := b.SumTo(wide, x.Shape())
	require.NoError(t, err)
	assert.Equal(t, []float64{4, 8}, back.Data())
}

func TestBroadcastView(t *testing.T) {
	assert.Equal(t, []int{0, 1}, newBroadcastView(tensor.Shape{3}, tensor.Shape{2, 3}).inStrides)
	assert.Equal(t, []int{1, 0}, newBroadcastView(tensor.Shape{2, 1}, tensor.Shape{2, 3}).inStrides)
	assert.Equal(t, []int{0, 0}, newBroadcastView(tensor.Shape{}, tensor.Shape{2, 3}).inStrides)

	v := newBroadcastView(tensor.Shape{2, 1}, tensor.Shape{2, 3})
	got := make([]int, 6)
	for i := range got {
		got[i] = v.index(i)
	}
	assert.Equal(t, []int{0, 0, 0, 1, 1, 1}, got)
}
