package autodiff_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/autograd/internal/autodiff"
	"github.com/born-ml/autograd/internal/tensor"
)

// TestBuiltinGradients compares every built-in rule against a central
// difference estimate.
func TestBuiltinGradients(t *testing.T) {
	tests := []struct {
		name string
		f    func(xs ...*autodiff.Variable) *autodiff.Variable
		in   [][]float64
	}{
		{"add", func(xs ...*autodiff.Variable) *autodiff.Variable { return xs[0].Add(xs[1]) }, [][]float64{{1, 2}, {3, 4}}},
		{"sub", func(xs ...*autodiff.Variable) *autodiff.Variable { return xs[0].Sub(xs[1]) }, [][]float64{{1, 2}, {3, 4}}},
		{"rsub", func(xs ...*autodiff.Variable) *autodiff.Variable { return xs[0].RSub(5) }, [][]float64{{1, 2}}},
		{"mul", func(xs ...*autodiff.Variable) *autodiff.Variable { return xs[0].Mul(xs[1]) }, [][]float64{{1, 2}, {3, 4}}},
		{"div", func(xs ...*autodiff.Variable) *autodiff.Variable { return xs[0].Div(xs[1]) }, [][]float64{{1, 2}, {3, 4}}},
		{"rdiv", func(xs ...*autodiff.Variable) *autodiff.Variable { return xs[0].RDiv(2) }, [][]float64{{1, 2}}},
		{"neg", func(xs ...*autodiff.Variable) *autodiff.Variable { return xs[0].Neg() }, [][]float64{{1, -2}}},
		{"pow", func(xs ...*autodiff.Variable) *autodiff.Variable { return xs[0].Pow(3) }, [][]float64{{1.5, 2}}},
		{"pow_fractional", func(xs ...*autodiff.Variable) *autodiff.Variable { return xs[0].Pow(0.5) }, [][]float64{{1.5, 4}}},
		{"square", func(xs ...*autodiff.Variable) *autodiff.Variable { return xs[0].Square() }, [][]float64{{-1, 3}}},
		{"exp", func(xs ...*autodiff.Variable) *autodiff.Variable { return xs[0].Exp() }, [][]float64{{0.5, -1}}},
		{"log", func(xs ...*autodiff.Variable) *autodiff.Variable { return xs[0].Log() }, [][]float64{{0.5, 3}}},
		{"sin", func(xs ...*autodiff.Variable) *autodiff.Variable { return xs[0].Sin() }, [][]float64{{0.3, 2}}},
		{"cos", func(xs ...*autodiff.Variable) *autodiff.Variable { return xs[0].Cos() }, [][]float64{{0.3, 2}}},
		{"tanh", func(xs ...*autodiff.Variable) *autodiff.Variable { return xs[0].Tanh() }, [][]float64{{0.3, -1}}},
		{"broadcast_add", func(xs ...*autodiff.Variable) *autodiff.Variable { return xs[0].Add(xs[1]) }, [][]float64{{1, 2, 3}, {4}}},
		{"broadcast_div", func(xs ...*autodiff.Variable) *autodiff.Variable { return xs[0].Div(xs[1]) }, [][]float64{{1, 2, 3}, {4}}},
		{"sum_to", func(xs ...*autodiff.Variable) *autodiff.Variable {
			return xs[0].SumTo(tensor.Shape{1}).Mul(xs[0].SumTo(tensor.Shape{1}))
		}, [][]float64{{1, 2, 3}}},
		{"broadcast_to", func(xs ...*autodiff.Variable) *autodiff.Variable {
			return xs[0].BroadcastTo(tensor.Shape{3}).Mul(xs[1])
		}, [][]float64{{2}, {1, 2, 3}}},
		{"composite", func(xs ...*autodiff.Variable) *autodiff.Variable {
			return xs[0].Mul(xs[1]).Add(xs[0].Div(xs[1])).Sub(xs[1].Exp())
		}, [][]float64{{0.5, 1.5}, {1, 2}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newGraph()
			xs := make([]*autodiff.Variable, len(tt.in))
			for i, data := range tt.in {
				xs[i] = vector(t, g, data...)
			}

			y := tt.f(xs...)
			require.NoError(t, y.Backward())

			num, err := g.NumericalGrad(func(xs ...*autodiff.Variable) (*autodiff.Variable, error) {
				return tt.f(xs...), nil
			}, 1e-4, xs...)
			require.NoError(t, err)

			for i, x := range xs {
				require.NotNil(t, x.Grad(), "input %d has no gradient", i)
				assert.Equal(t, x.Shape(), x.Grad().Shape(), "input %d gradient shape", i)
				assert.True(t, tensor.AllClose(x.Grad().Data(), num[i], 1e-3, 1e-3),
					"input %d: autodiff %v, numerical %v", i, x.Grad().Data(), num[i])
			}
		})
	}
}

// TestDivBackward checks the closed form gy * (-x0 / x1²).
func TestDivBackward(t *testing.T) {
	g := newGraph()
	x0 := scalar(t, g, 3)
	x1 := scalar(t, g, 2)

	y := x0.Div(x1)
	require.NoError(t, y.Backward())

	assert.Equal(t, 1.5, y.Item())
	assert.Equal(t, 0.5, x0.Grad().Item())
	assert.Equal(t, -0.75, x1.Grad().Item())
}

// TestPowReadsCurrentInput verifies the rule uses the operation's input
// Variable, so its gradient is differentiable again.
func TestPowReadsCurrentInput(t *testing.T) {
	g := newGraph()
	x := scalar(t, g, 3)

	y := x.Pow(3)
	require.NoError(t, y.Backward(autodiff.WithCreateGraph()))
	gx := x.Grad()
	assert.Equal(t, 27.0, gx.Item()) // 3x²

	x.ClearGrad()
	require.NoError(t, gx.Backward(autodiff.WithCreateGraph()))
	ggx := x.Grad()
	assert.Equal(t, 18.0, ggx.Item()) // 6x

	x.ClearGrad()
	require.NoError(t, ggx.Backward())
	assert.Equal(t, 6.0, x.Grad().Item())
}

func TestSecondOrder_Exp(t *testing.T) {
	g := newGraph()
	x := scalar(t, g, 0.5)

	y := x.Exp()
	require.NoError(t, y.Backward(autodiff.WithCreateGraph()))
	gx := x.Grad()

	x.ClearGrad()
	require.NoError(t, gx.Backward())
	assert.InDelta(t, y.Item(), x.Grad().Item(), 1e-12)
}

func TestSecondOrder_Sin(t *testing.T) {
	g := newGraph()
	x := scalar(t, g, 1)

	y := x.Sin()
	require.NoError(t, y.Backward(autodiff.WithCreateGraph()))
	gx := x.Grad()

	x.ClearGrad()
	require.NoError(t, gx.Backward())
	assert.InDelta(t, -y.Item(), x.Grad().Item(), 1e-12) // d²/dx² sin = -sin
}

func TestFloat32Preserved(t *testing.T) {
	g := newGraph()
	raw, err := tensor.FromSliceAs([]float64{1, 2}, tensor.Shape{2}, tensor.Float32)
	require.NoError(t, err)
	x, err := g.NewVariable(raw)
	require.NoError(t, err)

	y := x.Mul(3).Add(1)
	assert.Equal(t, tensor.Float32, y.DType())
	require.NoError(t, y.Backward())
	assert.Equal(t, tensor.Float32, x.Grad().DType())
	assert.Equal(t, []float64{3, 3}, x.Grad().Data().Data())
}
