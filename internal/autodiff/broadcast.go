package autodiff

import "github.com/born-ml/autograd/internal/tensor"

// SumTo sums its input down to Shape over the axes broadcasting expanded.
// It is how broadcast gradients are reduced to their operand's shape.
//
// Backward: gy broadcast back to the input's shape.
type SumTo struct {
	Shape tensor.Shape
}

// Name implements Function.
func (SumTo) Name() string { return "SumTo" }

// Forward implements Function.
func (s SumTo) Forward(b tensor.Backend, xs ...*tensor.RawTensor) ([]*tensor.RawTensor, error) {
	if err := expectInputs("SumTo", xs, 1); err != nil {
		return nil, err
	}
	return single(b.SumTo(xs[0], s.Shape))
}

// Backward implements Function.
func (SumTo) Backward(op *Operation, gys ...*Variable) ([]*Variable, error) {
	return []*Variable{gys[0].BroadcastTo(op.inputs[0].Shape())}, nil
}

// BroadcastTo repeats its input to Shape.
//
// Backward: gy summed back to the input's shape.
type BroadcastTo struct {
	Shape tensor.Shape
}

// Name implements Function.
func (BroadcastTo) Name() string { return "BroadcastTo" }

// Forward implements Function.
func (s BroadcastTo) Forward(b tensor.Backend, xs ...*tensor.RawTensor) ([]*tensor.RawTensor, error) {
	if err := expectInputs("BroadcastTo", xs, 1); err != nil {
		return nil, err
	}
	return single(b.BroadcastTo(xs[0], s.Shape))
}

// Backward implements Function.
func (BroadcastTo) Backward(op *Operation, gys ...*Variable) ([]*Variable, error) {
	return []*Variable{gys[0].SumTo(op.inputs[0].Shape())}, nil
}

// SumTo returns v summed down to shape.
func (v *Variable) SumTo(shape tensor.Shape) *Variable {
	if v.Shape().Equal(shape) {
		return v
	}
	return v.graph.mustCall(SumTo{Shape: shape.Clone()}, v)
}

// BroadcastTo returns v repeated to shape.
func (v *Variable) BroadcastTo(shape tensor.Shape) *Variable {
	if v.Shape().Equal(shape) {
		return v
	}
	return v.graph.mustCall(BroadcastTo{Shape: shape.Clone()}, v)
}
