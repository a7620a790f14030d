package optim

import (
	"fmt"
	"math"

	"github.com/born-ml/autograd/internal/autodiff"
	"github.com/born-ml/autograd/internal/tensor"
)

// Adam implements the Adam (Adaptive Moment Estimation) optimizer.
//
// Update rule:
//
//	m_t = beta1 * m_{t-1} + (1-beta1) * gradient       // First moment
//	v_t = beta2 * v_{t-1} + (1-beta2) * gradient²      // Second moment
//	m_hat = m_t / (1 - beta1^t)                        // Bias correction
//	v_hat = v_t / (1 - beta2^t)                        // Bias correction
//	param = param - lr * m_hat / (sqrt(v_hat) + eps)  // Parameter update
//
// Reference: "Adam: A Method for Stochastic Optimization" (Kingma & Ba, 2014)
type Adam struct {
	params []*autodiff.Variable
	lr     float64
	beta1  float64
	beta2  float64
	eps    float64
	t      int                                      // Timestep for bias correction
	m      map[*autodiff.Variable]*tensor.RawTensor // First moment estimates
	v      map[*autodiff.Variable]*tensor.RawTensor // Second moment estimates
}

// AdamConfig holds configuration for Adam optimizer.
type AdamConfig struct {
	LR    float64    // Learning rate (default: 0.001)
	Betas [2]float64 // Coefficients for computing running averages (default: [0.9, 0.999])
	Eps   float64    // Term for numerical stability (default: 1e-8)
}

// NewAdam creates a new Adam optimizer, filling unset hyperparameters with
// their defaults.
func NewAdam(params []*autodiff.Variable, config AdamConfig) *Adam {
	if config.LR == 0 {
		config.LR = 0.001
	}
	if config.Betas[0] == 0 {
		config.Betas[0] = 0.9
	}
	if config.Betas[1] == 0 {
		config.Betas[1] = 0.999
	}
	if config.Eps == 0 {
		config.Eps = 1e-8
	}

	return &Adam{
		params: params,
		lr:     config.LR,
		beta1:  config.Betas[0],
		beta2:  config.Betas[1],
		eps:    config.Eps,
		m:      make(map[*autodiff.Variable]*tensor.RawTensor),
		v:      make(map[*autodiff.Variable]*tensor.RawTensor),
	}
}

// Step performs a single optimization step using Adam algorithm.
func (a *Adam) Step() error {
	a.t++

	biasCorrection1 := 1.0 - math.Pow(a.beta1, float64(a.t))
	biasCorrection2 := 1.0 - math.Pow(a.beta2, float64(a.t))

	for i, param := range a.params {
		grad := getGradient(param)
		if grad == nil {
			continue
		}
		if !grad.Shape().Equal(param.Shape()) {
			return fmt.Errorf("adam: parameter %d: gradient shape %v does not match %v",
				i, grad.Shape(), param.Shape())
		}

		m, ok := a.m[param]
		if !ok {
			m = tensor.ZerosLike(param.Data())
			a.m[param] = m
		}
		v, ok := a.v[param]
		if !ok {
			v = tensor.ZerosLike(param.Data())
			a.v[param] = v
		}

		a.updateParameter(param, grad, m, v, biasCorrection1, biasCorrection2)
	}
	return nil
}

// updateParameter writes the new value into a copy of the parameter's data
// and swaps it in. m and v are optimizer-owned and updated in place.
func (a *Adam) updateParameter(
	param *autodiff.Variable,
	grad, m, v *tensor.RawTensor,
	biasCorrection1, biasCorrection2 float64,
) {
	updated := param.Data().Clone()
	gradData, mData, vData, paramData := grad.Data(), m.Data(), v.Data(), updated.Data()
	dtype := updated.DType()

	for i := range paramData {
		g := gradData[i]

		mData[i] = a.beta1*mData[i] + (1.0-a.beta1)*g
		vData[i] = a.beta2*vData[i] + (1.0-a.beta2)*g*g

		mHat := mData[i] / biasCorrection1
		vHat := vData[i] / biasCorrection2

		paramData[i] = dtype.Round(paramData[i] - a.lr*mHat/(math.Sqrt(vHat)+a.eps))
	}
	param.SetData(updated)
}

// ZeroGrad clears gradients for all parameters.
func (a *Adam) ZeroGrad() {
	zeroGrad(a.params)
}

// GetLR returns the current learning rate.
func (a *Adam) GetLR() float64 {
	return a.lr
}

// SetLR updates the learning rate.
func (a *Adam) SetLR(lr float64) {
	a.lr = lr
}

// GetTimestep returns the current timestep.
func (a *Adam) GetTimestep() int {
	return a.t
}
