package optim

import (
	"fmt"

	"github.com/born-ml/autograd/internal/autodiff"
	"github.com/born-ml/autograd/internal/tensor"
)

// SGD implements gradient descent with optional momentum.
//
// Update rule without momentum:
//
//	param = param - lr * gradient
//
// Update rule with momentum:
//
//	velocity = momentum * velocity + gradient
//	param = param - lr * velocity
type SGD struct {
	params     []*autodiff.Variable
	lr         float64
	momentum   float64
	velocities map[*autodiff.Variable]*tensor.RawTensor
}

// SGDConfig holds configuration for SGD optimizer.
type SGDConfig struct {
	LR       float64 // Learning rate (default: 0.01)
	Momentum float64 // Momentum factor (default: 0.0, range: [0, 1))
}

// NewSGD creates a new SGD optimizer over params.
func NewSGD(params []*autodiff.Variable, config SGDConfig) *SGD {
	if config.LR == 0 {
		config.LR = 0.01
	}

	return &SGD{
		params:     params,
		lr:         config.LR,
		momentum:   config.Momentum,
		velocities: make(map[*autodiff.Variable]*tensor.RawTensor),
	}
}

// Step performs a single optimization step. The arithmetic runs on each
// parameter's graph backend outside of recording, so updates never enter
// the computation graph.
func (s *SGD) Step() error {
	for i, param := range s.params {
		grad := getGradient(param)
		if grad == nil {
			continue
		}

		b := param.Graph().Backend()
		if s.momentum != 0 {
			var err error
			if grad, err = s.velocity(b, param, grad); err != nil {
				return fmt.Errorf("sgd: parameter %d: %w", i, err)
			}
		}

		update, err := b.Mul(grad, tensor.FromScalar(s.lr))
		if err != nil {
			return fmt.Errorf("sgd: parameter %d: %w", i, err)
		}
		updated, err := b.Sub(param.Data(), update)
		if err != nil {
			return fmt.Errorf("sgd: parameter %d: %w", i, err)
		}
		param.SetData(updated)
	}
	return nil
}

// velocity advances the momentum buffer of param and returns it.
func (s *SGD) velocity(b tensor.Backend, param *autodiff.Variable, grad *tensor.RawTensor) (*tensor.RawTensor, error) {
	velocity, exists := s.velocities[param]
	if !exists {
		velocity = tensor.ZerosLike(param.Data())
	}

	scaled, err := b.Mul(velocity, tensor.FromScalar(s.momentum))
	if err != nil {
		return nil, err
	}
	next, err := b.Add(scaled, grad)
	if err != nil {
		return nil, err
	}
	s.velocities[param] = next
	return next, nil
}

// ZeroGrad clears gradients for all parameters.
func (s *SGD) ZeroGrad() {
	zeroGrad(s.params)
}

// GetLR returns the current learning rate.
func (s *SGD) GetLR() float64 {
	return s.lr
}

// SetLR updates the learning rate.
func (s *SGD) SetLR(lr float64) {
	s.lr = lr
}
