package autodiff

import "github.com/born-ml/autograd/internal/tensor"

// Exp computes eˣ.
//
// Backward: gy * y, using the recorded output.
type Exp struct{}

// Name implements Function.
func (Exp) Name() string { return "Exp" }

// Forward implements Function.
func (Exp) Forward(b tensor.Backend, xs ...*tensor.RawTensor) ([]*tensor.RawTensor, error) {
	if err := expectInputs("Exp", xs, 1); err != nil {
		return nil, err
	}
	return single(b.Exp(xs[0]), nil)
}

// Backward implements Function.
func (Exp) Backward(op *Operation, gys ...*Variable) ([]*Variable, error) {
	outs, err := op.Outputs()
	if err != nil {
		return nil, err
	}
	return []*Variable{gys[0].Mul(outs[0])}, nil
}

// Log computes the natural logarithm.
//
// Backward: gy / x.
type Log struct{}

// Name implements Function.
func (Log) Name() string { return "Log" }

// Forward implements Function.
func (Log) Forward(b tensor.Backend, xs ...*tensor.RawTensor) ([]*tensor.RawTensor, error) {
	if err := expectInputs("Log", xs, 1); err != nil {
		return nil, err
	}
	return single(b.Log(xs[0]), nil)
}

// Backward implements Function.
func (Log) Backward(op *Operation, gys ...*Variable) ([]*Variable, error) {
	return []*Variable{gys[0].Div(op.inputs[0])}, nil
}

// Sin computes sin(x).
//
// Backward: gy * cos(x).
type Sin struct{}

// Name implements Function.
func (Sin) Name() string { return "Sin" }

// Forward implements Function.
func (Sin) Forward(b tensor.Backend, xs ...*tensor.RawTensor) ([]*tensor.RawTensor, error) {
	if err := expectInputs("Sin", xs, 1); err != nil {
		return nil, err
	}
	return single(b.Sin(xs[0]), nil)
}

// Backward implements Function.
func (Sin) Backward(op *Operation, gys ...*Variable) ([]*Variable, error) {
	return []*Variable{gys[0].Mul(op.inputs[0].Cos())}, nil
}

// Cos computes cos(x).
//
// Backward: -gy * sin(x).
type Cos struct{}

// Name implements Function.
func (Cos) Name() string { return "Cos" }

// Forward implements Function.
func (Cos) Forward(b tensor.Backend, xs ...*tensor.RawTensor) ([]*tensor.RawTensor, error) {
	if err := expectInputs("Cos", xs, 1); err != nil {
		return nil, err
	}
	return single(b.Cos(xs[0]), nil)
}

// Backward implements Function.
func (Cos) Backward(op *Operation, gys ...*Variable) ([]*Variable, error) {
	return []*Variable{gys[0].Mul(op.inputs[0].Sin().Neg())}, nil
}

// Tanh computes tanh(x).
//
// Backward: gy * (1 - y²), using the recorded output.
type Tanh struct{}

// Name implements Function.
func (Tanh) Name() string { return "Tanh" }

// Forward implements Function.
func (Tanh) Forward(b tensor.Backend, xs ...*tensor.RawTensor) ([]*tensor.RawTensor, error) {
	if err := expectInputs("Tanh", xs, 1); err != nil {
		return nil, err
	}
	return single(b.Tanh(xs[0]), nil)
}

// Backward implements Function.
func (Tanh) Backward(op *Operation, gys ...*Variable) ([]*Variable, error) {
	outs, err := op.Outputs()
	if err != nil {
		return nil, err
	}
	y := outs[0]
	return []*Variable{gys[0].Mul(y.Mul(y).RSub(1))}, nil
}

// Exp returns eᵛ.
func (v *Variable) Exp() *Variable {
	return v.graph.mustCall(Exp{}, v)
}

// Log returns ln(v).
func (v *Variable) Log() *Variable {
	return v.graph.mustCall(Log{}, v)
}

// Sin returns sin(v).
func (v *Variable) Sin() *Variable {
	return v.graph.mustCall(Sin{}, v)
}

// Cos returns cos(v).
func (v *Variable) Cos() *Variable {
	return v.graph.mustCall(Cos{}, v)
}

// Tanh returns tanh(v).
func (v *Variable) Tanh() *Variable {
	return v.graph.mustCall(Tanh{}, v)
}
