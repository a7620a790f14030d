package main

import (
	"errors"

	"github.com/born-ml/autograd/autodiff"
	"github.com/born-ml/autograd/internal/benchfn"
	"github.com/born-ml/autograd/tensor"
)

var errFlatCurvature = errors.New("newton: second derivative is zero")

// newton runs iters Newton steps x ← x - f'(x)/f''(x) on the quartic
// benchmark, taking both derivatives from the graph. each is called with the
// iterate before every step and once more with the final value.
func newton(g *autodiff.Graph, x0 float64, iters int, each func(i int, x float64)) (float64, error) {
	x, err := g.NewVariable(tensor.FromScalar(x0), autodiff.WithName("x"))
	if err != nil {
		return 0, err
	}

	for i := 0; i < iters; i++ {
		each(i, x.Item())

		y := benchfn.Quartic(x)
		x.ClearGrad()
		if err := y.Backward(autodiff.WithCreateGraph()); err != nil {
			return 0, err
		}
		gx := x.Grad()

		x.ClearGrad()
		if err := gx.Backward(); err != nil {
			return 0, err
		}
		gx2 := x.Grad().Item()
		if gx2 == 0 {
			return 0, errFlatCurvature
		}

		x.SetData(tensor.FromScalar(x.Item() - gx.Item()/gx2))
		g.Reset()
	}
	each(iters, x.Item())
	return x.Item(), nil
}
