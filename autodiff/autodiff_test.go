package autodiff_test

import (
	"testing"

	"github.com/born-ml/autograd/autodiff"
	"github.com/born-ml/autograd/backend/cpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublicAPI_SecondOrder(t *testing.T) {
	g := autodiff.NewGraph(cpu.New())
	x, err := g.AsVariable(2.0)
	require.NoError(t, err)

	y := x.Pow(4).Sub(x.Square().Mul(2))
	require.NoError(t, y.Backward(autodiff.WithCreateGraph()))
	gx := x.Grad()
	assert.Equal(t, 24.0, gx.Item())

	x.ClearGrad()
	require.NoError(t, gx.Backward())
	assert.Equal(t, 44.0, x.Grad().Item())
}

func TestPublicAPI_Errors(t *testing.T) {
	g := autodiff.NewGraph(cpu.New())
	_, err := g.NewVariable(1.0)
	assert.ErrorIs(t, err, autodiff.ErrUnsupportedType)

	ys, err := g.Apply(autodiff.Add{}, 1.0, 2.0)
	require.NoError(t, err)
	require.Len(t, ys, 1)
	assert.Equal(t, 3.0, ys[0].Item())
}
