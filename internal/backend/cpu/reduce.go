package cpu

import (
	"fmt"

	"github.com/born-ml/autograd/internal/tensor"
)

// SumTo sums x over the axes that broadcasting would have expanded to turn
// shape into x.Shape(). It is the adjoint of BroadcastTo.
//
// Example:
//
//	x[2,3] -> SumTo(x, (3,))   sums axis 0
//	x[2,3] -> SumTo(x, (2,1))  sums axis 1, keeping it
//	x[2,3] -> SumTo(x, ())     sums everything
func (cpu *CPUBackend) SumTo(x *tensor.RawTensor, shape tensor.Shape) (*tensor.RawTensor, error) {
	if x.Shape().Equal(shape) {
		return x.Clone(), nil
	}
	if !shape.CanBroadcastTo(x.Shape()) {
		return nil, fmt.Errorf("sum_to: cannot reduce %v to %v", x.Shape(), shape)
	}

	result, err := tensor.NewRaw(shape, x.DType())
	if err != nil {
		return nil, fmt.Errorf("sum_to: failed to create result tensor: %w", err)
	}

	src, dst := x.Data(), result.Data()
	view := newBroadcastView(shape, x.Shape())
	for i, v := range src {
		dst[view.index(i)] += v
	}
	for i := range dst {
		dst[i] = x.DType().Round(dst[i])
	}
	return result, nil
}

// BroadcastTo repeats x along its size-1 and missing leading axes to
// produce a tensor of the given shape.
func (cpu *CPUBackend) BroadcastTo(x *tensor.RawTensor, shape tensor.Shape) (*tensor.RawTensor, error) {
	if x.Shape().Equal(shape) {
		return x.Clone(), nil
	}
	if !x.Shape().CanBroadcastTo(shape) {
		return nil, fmt.Errorf("broadcast_to: cannot broadcast %v to %v", x.Shape(), shape)
	}

	result, err := tensor.NewRaw(shape, x.DType())
	if err != nil {
		return nil, fmt.Errorf("broadcast_to: failed to create result tensor: %w", err)
	}

	src, dst := x.Data(), result.Data()
	view := newBroadcastView(x.Shape(), shape)
	for i := range dst {
		dst[i] = src[view.index(i)]
	}
	return result, nil
}
