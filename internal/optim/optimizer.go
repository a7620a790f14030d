// Package optim implements first-order optimizers that update leaf
// Variables from the gradients a backward pass left on them.
//
// This package provides:
//   - Optimizer interface: Base interface for all optimizers
//   - SGD: Gradient descent with optional momentum
//   - Adam: Adaptive Moment Estimation
//
// Example usage:
//
//	x, _ := g.AsVariable(0.0)
//	y, _ := g.AsVariable(2.0)
//	opt := optim.NewSGD([]*autodiff.Variable{x, y}, optim.SGDConfig{LR: 0.001})
//
//	for range iters {
//	    loss := benchfn.Rosenbrock(x, y)
//	    opt.ZeroGrad()
//	    if err := loss.Backward(); err != nil {
//	        return err
//	    }
//	    if err := opt.Step(); err != nil {
//	        return err
//	    }
//	    g.Reset()
//	}
package optim

import (
	"github.com/born-ml/autograd/internal/autodiff"
	"github.com/born-ml/autograd/internal/tensor"
)

// Optimizer is the base interface for all optimization algorithms.
type Optimizer interface {
	// Step updates every parameter that currently holds a gradient.
	// Parameters without one did not take part in the last backward pass
	// and are left untouched.
	Step() error

	// ZeroGrad clears all parameter gradients. Gradients accumulate across
	// backward passes, so call it once per iteration.
	ZeroGrad()

	// GetLR returns the current learning rate.
	GetLR() float64
}

// Config is the base configuration for all optimizers.
type Config struct {
	LR float64 // Learning rate
}

// getGradient returns the raw gradient of param, or nil when it has none.
func getGradient(param *autodiff.Variable) *tensor.RawTensor {
	if param == nil || param.Grad() == nil {
		return nil
	}
	return param.Grad().Data()
}

func zeroGrad(params []*autodiff.Variable) {
	for _, param := range params {
		param.ClearGrad()
	}
}
