package autodiff

import "github.com/born-ml/autograd/internal/tensor"

// Add computes x0 + x1 with broadcasting.
//
// Backward: (gy, gy), each summed back to its input's shape.
type Add struct{}

// Name implements Function.
func (Add) Name() string { return "Add" }

// Forward implements Function.
func (Add) Forward(b tensor.Backend, xs ...*tensor.RawTensor) ([]*tensor.RawTensor, error) {
	if err := expectInputs("Add", xs, 2); err != nil {
		return nil, err
	}
	return single(b.Add(xs[0], xs[1]))
}

// Backward implements Function.
func (Add) Backward(op *Operation, gys ...*Variable) ([]*Variable, error) {
	x0, x1 := op.inputs[0], op.inputs[1]
	gy := gys[0]
	return []*Variable{sumToShape(gy, x0.Shape()), sumToShape(gy, x1.Shape())}, nil
}

// Sub computes x0 - x1 with broadcasting.
//
// Backward: (gy, -gy).
type Sub struct{}

// Name implements Function.
func (Sub) Name() string { return "Sub" }

// Forward implements Function.
func (Sub) Forward(b tensor.Backend, xs ...*tensor.RawTensor) ([]*tensor.RawTensor, error) {
	if err := expectInputs("Sub", xs, 2); err != nil {
		return nil, err
	}
	return single(b.Sub(xs[0], xs[1]))
}

// Backward implements Function.
func (Sub) Backward(op *Operation, gys ...*Variable) ([]*Variable, error) {
	x0, x1 := op.inputs[0], op.inputs[1]
	gy := gys[0]
	return []*Variable{sumToShape(gy, x0.Shape()), sumToShape(gy.Neg(), x1.Shape())}, nil
}

// Mul computes x0 * x1 with broadcasting.
//
// Backward: (gy * x1, gy * x0).
type Mul struct{}

// Name implements Function.
func (Mul) Name() string { return "Mul" }

// Forward implements Function.
func (Mul) Forward(b tensor.Backend, xs ...*tensor.RawTensor) ([]*tensor.RawTensor, error) {
	if err := expectInputs("Mul", xs, 2); err != nil {
		return nil, err
	}
	return single(b.Mul(xs[0], xs[1]))
}

// Backward implements Function.
func (Mul) Backward(op *Operation, gys ...*Variable) ([]*Variable, error) {
	x0, x1 := op.inputs[0], op.inputs[1]
	gy := gys[0]
	return []*Variable{sumToShape(gy.Mul(x1), x0.Shape()), sumToShape(gy.Mul(x0), x1.Shape())}, nil
}

// Div computes x0 / x1 with broadcasting.
//
// Backward: (gy / x1, gy * (-x0 / x1²)).
type Div struct{}

// Name implements Function.
func (Div) Name() string { return "Div" }

// Forward implements Function.
func (Div) Forward(b tensor.Backend, xs ...*tensor.RawTensor) ([]*tensor.RawTensor, error) {
	if err := expectInputs("Div", xs, 2); err != nil {
		return nil, err
	}
	return single(b.Div(xs[0], xs[1]))
}

// Backward implements Function.
func (Div) Backward(op *Operation, gys ...*Variable) ([]*Variable, error) {
	x0, x1 := op.inputs[0], op.inputs[1]
	gy := gys[0]
	gx0 := gy.Div(x1)
	gx1 := gy.Mul(x0.Neg().Div(x1.Pow(2)))
	return []*Variable{sumToShape(gx0, x0.Shape()), sumToShape(gx1, x1.Shape())}, nil
}

// Neg computes -x.
//
// Backward: -gy.
type Neg struct{}

// Name implements Function.
func (Neg) Name() string { return "Neg" }

// Forward implements Function.
func (Neg) Forward(b tensor.Backend, xs ...*tensor.RawTensor) ([]*tensor.RawTensor, error) {
	if err := expectInputs("Neg", xs, 1); err != nil {
		return nil, err
	}
	return single(b.Neg(xs[0]), nil)
}

// Backward implements Function.
func (Neg) Backward(_ *Operation, gys ...*Variable) ([]*Variable, error) {
	return []*Variable{gys[0].Neg()}, nil
}

// Pow computes x^C for a fixed real exponent C.
//
// Backward: C * x^(C-1) * gy, with x read from the operation's input.
type Pow struct {
	C float64
}

// Name implements Function.
func (Pow) Name() string { return "Pow" }

// Forward implements Function.
func (p Pow) Forward(b tensor.Backend, xs ...*tensor.RawTensor) ([]*tensor.RawTensor, error) {
	if err := expectInputs("Pow", xs, 1); err != nil {
		return nil, err
	}
	return single(b.Pow(xs[0], p.C), nil)
}

// Backward implements Function.
func (p Pow) Backward(op *Operation, gys ...*Variable) ([]*Variable, error) {
	x := op.inputs[0]
	return []*Variable{x.Pow(p.C - 1).Mul(p.C).Mul(gys[0])}, nil
}

// Square computes x².
//
// Backward: 2 * x * gy.
type Square struct{}

// Name implements Function.
func (Square) Name() string { return "Square" }

// Forward implements Function.
func (Square) Forward(b tensor.Backend, xs ...*tensor.RawTensor) ([]*tensor.RawTensor, error) {
	if err := expectInputs("Square", xs, 1); err != nil {
		return nil, err
	}
	return single(b.Pow(xs[0], 2), nil)
}

// Backward implements Function.
func (Square) Backward(op *Operation, gys ...*Variable) ([]*Variable, error) {
	x := op.inputs[0]
	return []*Variable{x.Mul(2).Mul(gys[0])}, nil
}

// Add returns v + other. other is coerced with AsVariable.
// Panics if the operands cannot be combined.
func (v *Variable) Add(other any) *Variable {
	return v.graph.mustCall(Add{}, v, other)
}

// Sub returns v - other.
func (v *Variable) Sub(other any) *Variable {
	return v.graph.mustCall(Sub{}, v, other)
}

// RSub returns other - v.
func (v *Variable) RSub(other any) *Variable {
	return v.graph.mustCall(Sub{}, other, v)
}

// Mul returns v * other.
func (v *Variable) Mul(other any) *Variable {
	return v.graph.mustCall(Mul{}, v, other)
}

// Div returns v / other.
func (v *Variable) Div(other any) *Variable {
	return v.graph.mustCall(Div{}, v, other)
}

// RDiv returns other / v.
func (v *Variable) RDiv(other any) *Variable {
	return v.graph.mustCall(Div{}, other, v)
}

// Neg returns -v.
func (v *Variable) Neg() *Variable {
	return v.graph.mustCall(Neg{}, v)
}

// Pow returns v^c.
func (v *Variable) Pow(c float64) *Variable {
	return v.graph.mustCall(Pow{C: c}, v)
}

// Square returns v².
func (v *Variable) Square() *Variable {
	return v.graph.mustCall(Square{}, v)
}

// sumToShape reduces a broadcast gradient back to shape, passing it through
// untouched when the shapes already agree.
func sumToShape(gx *Variable, shape tensor.Shape) *Variable {
	if gx.Shape().Equal(shape) {
		return gx
	}
	return gx.SumTo(shape)
}
