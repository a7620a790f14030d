// Package cpu implements the tensor.Backend interface in pure Go.
package cpu

import (
	"fmt"

	"github.com/born-ml/autograd/internal/tensor"
)

// CPUBackend implements tensor operations on CPU.
// It holds no state, so a single value may be shared freely.
type CPUBackend struct{}

// New creates a new CPU backend.
func New() *CPUBackend {
	return &CPUBackend{}
}

// Name returns the backend name.
func (cpu *CPUBackend) Name() string {
	return "CPU"
}

// Add performs element-wise addition with NumPy-style broadcasting.
func (cpu *CPUBackend) Add(a, b *tensor.RawTensor) (*tensor.RawTensor, error) {
	return binary("add", a, b, func(x, y float64) float64 { return x + y })
}

// Sub performs element-wise subtraction with broadcasting.
func (cpu *CPUBackend) Sub(a, b *tensor.RawTensor) (*tensor.RawTensor, error) {
	return binary("sub", a, b, func(x, y float64) float64 { return x - y })
}

// Mul performs element-wise multiplication with broadcasting.
func (cpu *CPUBackend) Mul(a, b *tensor.RawTensor) (*tensor.RawTensor, error) {
	return binary("mul", a, b, func(x, y float64) float64 { return x * y })
}

// Div performs element-wise division with broadcasting.
// Division by zero follows IEEE 754 (±Inf or NaN).
func (cpu *CPUBackend) Div(a, b *tensor.RawTensor) (*tensor.RawTensor, error) {
	return binary("div", a, b, func(x, y float64) float64 { return x / y })
}

// binary applies fn element-wise over the broadcast of a and b.
func binary(name string, a, b *tensor.RawTensor, fn func(x, y float64) float64) (*tensor.RawTensor, error) {
	outShape, needsBroadcast, err := tensor.BroadcastShapes(a.Shape(), b.Shape())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}

	dtype := resultType(a, b)
	result, err := tensor.NewRaw(outShape, dtype)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to create result tensor: %w", name, err)
	}

	dst, av, bv := result.Data(), a.Data(), b.Data()
	if !needsBroadcast {
		// Fast path: identical shapes.
		for i := range dst {
			dst[i] = dtype.Round(fn(av[i], bv[i]))
		}
		return result, nil
	}

	aView := newBroadcastView(a.Shape(), outShape)
	bView := newBroadcastView(b.Shape(), outShape)
	for i := range dst {
		dst[i] = dtype.Round(fn(av[aView.index(i)], bv[bView.index(i)]))
	}
	return result, nil
}

// resultType picks the dtype of a binary result. A 0-d operand does not
// upcast an n-d one, so float32 arrays stay float32 when combined with Go
// scalars.
func resultType(a, b *tensor.RawTensor) tensor.DataType {
	switch {
	case a.IsScalar() && !b.IsScalar():
		return b.DType()
	case b.IsScalar() && !a.IsScalar():
		return a.DType()
	}
	return tensor.Promote(a.DType(), b.DType())
}
