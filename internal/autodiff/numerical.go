package autodiff

import (
	"fmt"

	"github.com/born-ml/autograd/internal/tensor"
)

// NumericalGrad estimates the gradient of sum(f(xs...)) with respect to
// every input by central differences:
//
//	∂f/∂xᵢ ≈ (f(x + eps·eᵢ) - f(x - eps·eᵢ)) / 2eps
//
// f is evaluated with recording disabled on perturbed copies, so neither
// xs nor the graph are modified. The result has one tensor per input,
// shaped like that input.
func (g *Graph) NumericalGrad(f func(xs ...*Variable) (*Variable, error), eps float64, xs ...*Variable) ([]*tensor.RawTensor, error) {
	defer g.NoGrad()()

	grads := make([]*tensor.RawTensor, len(xs))
	for i, x := range xs {
		if x.data == nil {
			return nil, fmt.Errorf("numerical grad: input %d: %w", i, ErrPlaceholder)
		}
		grad, err := tensor.NewRaw(x.data.Shape(), tensor.Float64)
		if err != nil {
			return nil, fmt.Errorf("numerical grad: %w", err)
		}

		for j := range x.data.Data() {
			hi, err := g.evalPerturbed(f, xs, i, j, eps)
			if err != nil {
				return nil, err
			}
			lo, err := g.evalPerturbed(f, xs, i, j, -eps)
			if err != nil {
				return nil, err
			}
			grad.Data()[j] = (hi - lo) / (2 * eps)
		}
		grads[i] = grad
	}
	return grads, nil
}

// NumericalDiff is NumericalGrad for a single input.
func (g *Graph) NumericalDiff(f func(x *Variable) (*Variable, error), x *Variable, eps float64) (*tensor.RawTensor, error) {
	grads, err := g.NumericalGrad(func(xs ...*Variable) (*Variable, error) {
		return f(xs[0])
	}, eps, x)
	if err != nil {
		return nil, err
	}
	return grads[0], nil
}

// evalPerturbed evaluates sum(f) with element j of input i shifted by delta.
func (g *Graph) evalPerturbed(f func(xs ...*Variable) (*Variable, error), xs []*Variable, i, j int, delta float64) (float64, error) {
	args := make([]*Variable, len(xs))
	copy(args, xs)

	shifted := xs[i].data.Clone()
	shifted.Data()[j] += delta
	args[i] = &Variable{data: shifted, graph: g}

	y, err := f(args...)
	if err != nil {
		return 0, fmt.Errorf("numerical grad: %w", err)
	}
	if y.data == nil {
		return 0, fmt.Errorf("numerical grad: %w", ErrPlaceholder)
	}

	sum := 0.0
	for _, v := range y.data.Data() {
		sum += v
	}
	return sum, nil
}
