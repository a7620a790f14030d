package cpu

import (
	"math"

	"github.com/born-ml/autograd/internal/tensor"
)

// Neg computes element-wise negation: -x.
func (cpu *CPUBackend) Neg(x *tensor.RawTensor) *tensor.RawTensor {
	return x.Map(func(v float64) float64 { return -v })
}

// Pow raises every element to the fixed real exponent c.
func (cpu *CPUBackend) Pow(x *tensor.RawTensor, c float64) *tensor.RawTensor {
	switch c {
	case 1:
		return x.Clone()
	case 2:
		return x.Map(func(v float64) float64 { return v * v })
	}
	return x.Map(func(v float64) float64 { return math.Pow(v, c) })
}

// Exp computes element-wise exponential: exp(x).
func (cpu *CPUBackend) Exp(x *tensor.RawTensor) *tensor.RawTensor {
	return x.Map(math.Exp)
}

// Log computes element-wise natural logarithm: ln(x).
// Non-positive inputs yield -Inf or NaN as in math.Log.
func (cpu *CPUBackend) Log(x *tensor.RawTensor) *tensor.RawTensor {
	return x.Map(math.Log)
}

// Sin computes element-wise sine.
func (cpu *CPUBackend) Sin(x *tensor.RawTensor) *tensor.RawTensor {
	return x.Map(math.Sin)
}

// Cos computes element-wise cosine.
func (cpu *CPUBackend) Cos(x *tensor.RawTensor) *tensor.RawTensor {
	return x.Map(math.Cos)
}

// Tanh computes element-wise hyperbolic tangent.
func (cpu *CPUBackend) Tanh(x *tensor.RawTensor) *tensor.RawTensor {
	return x.Map(math.Tanh)
}
