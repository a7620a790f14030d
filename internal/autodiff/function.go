package autodiff

import (
	"fmt"

	"github.com/born-ml/autograd/internal/tensor"
)

// Function is a differentiable rule.
//
// Forward maps raw input tensors to raw outputs. It must not mutate its
// inputs and may return any number of outputs.
//
// Backward receives the gradient of every output, in Forward's output
// order, and returns one gradient per input in Forward's input order. A nil
// entry means no gradient flows to that input. Values from the forward pass
// must be read through op.Inputs() (and op.Outputs()), never captured as raw
// tensors, so that with WithCreateGraph the gradient expression is itself
// recorded and differentiable.
type Function interface {
	// Name identifies the function in errors, logs and graph dumps.
	Name() string

	Forward(b tensor.Backend, xs ...*tensor.RawTensor) ([]*tensor.RawTensor, error)

	Backward(op *Operation, gys ...*Variable) ([]*Variable, error)
}

// UnimplementedFunction can be embedded in a Function implementation to
// satisfy the interface before both rules exist. The missing rules fail
// with ErrNotImplemented.
type UnimplementedFunction struct{}

// Name returns "Function".
func (UnimplementedFunction) Name() string { return "Function" }

// Forward returns ErrNotImplemented.
func (UnimplementedFunction) Forward(tensor.Backend, ...*tensor.RawTensor) ([]*tensor.RawTensor, error) {
	return nil, ErrNotImplemented
}

// Backward returns ErrNotImplemented.
func (UnimplementedFunction) Backward(*Operation, ...*Variable) ([]*Variable, error) {
	return nil, ErrNotImplemented
}

// Operation records one application of a Function: the inputs it consumed
// (held strongly, needed to evaluate the backward rule), handles to the
// outputs it produced (not owned) and its generation, which is the largest
// generation among its inputs.
type Operation struct {
	fn         Function
	inputs     []*Variable
	outputs    []Handle
	generation int
	id         int
	tape       *tape
}

// Function returns the rule this operation applied.
func (op *Operation) Function() Function {
	return op.fn
}

// Name returns the rule's name.
func (op *Operation) Name() string {
	return op.fn.Name()
}

// Inputs returns the input Variables.
func (op *Operation) Inputs() []*Variable {
	return op.inputs
}

// OutputHandles returns the arena handles of the outputs.
func (op *Operation) OutputHandles() []Handle {
	return op.outputs
}

// Outputs resolves the output handles. It fails with ErrOutputReleased when
// the arena no longer holds them.
func (op *Operation) Outputs() ([]*Variable, error) {
	outs := make([]*Variable, len(op.outputs))
	for i, h := range op.outputs {
		y, ok := op.tape.resolve(h)
		if !ok {
			return nil, fmt.Errorf("%s output %d (%v): %w", op.Name(), i, h, ErrOutputReleased)
		}
		outs[i] = y
	}
	return outs, nil
}

// Generation returns the operation's generation.
func (op *Operation) Generation() int {
	return op.generation
}

// ID returns the operation's position in the recording order.
func (op *Operation) ID() int {
	return op.id
}

// Apply evaluates fn on inputs and returns its outputs in rule order.
//
// Inputs are coerced with AsVariable. When recording is enabled an
// Operation is recorded and set as the creator of every output; otherwise
// the outputs are plain leaves and nothing is retained.
func (g *Graph) Apply(fn Function, inputs ...any) ([]*Variable, error) {
	vars := make([]*Variable, len(inputs))
	xs := make([]*tensor.RawTensor, len(inputs))
	for i, in := range inputs {
		v, err := g.AsVariable(in)
		if err != nil {
			return nil, fmt.Errorf("%s: input %d: %w", fn.Name(), i, err)
		}
		if v.data == nil {
			return nil, fmt.Errorf("%s: input %d: %w", fn.Name(), i, ErrPlaceholder)
		}
		vars[i], xs[i] = v, v.data
	}

	ys, err := fn.Forward(g.backend, xs...)
	if err != nil {
		return nil, fmt.Errorf("%s: forward: %w", fn.Name(), err)
	}
	if len(ys) == 0 {
		return nil, fmt.Errorf("%s: forward: %w: no outputs", fn.Name(), ErrOutputCount)
	}

	outputs := make([]*Variable, len(ys))
	for i, y := range ys {
		if y == nil {
			return nil, fmt.Errorf("%s: forward: output %d is nil", fn.Name(), i)
		}
		outputs[i] = &Variable{data: y, graph: g}
	}

	if g.enableBackprop {
		g.tape.record(fn, vars, outputs)
	}
	return outputs, nil
}

// Call is Apply for single-output functions.
func (g *Graph) Call(fn Function, inputs ...any) (*Variable, error) {
	outs, err := g.Apply(fn, inputs...)
	if err != nil {
		return nil, err
	}
	if len(outs) != 1 {
		return nil, fmt.Errorf("%s: %w: got %d outputs", fn.Name(), ErrOutputCount, len(outs))
	}
	return outs[0], nil
}

// mustCall backs the Variable operator methods, which panic on failure like
// tensor arithmetic does.
func (g *Graph) mustCall(fn Function, inputs ...any) *Variable {
	y, err := g.Call(fn, inputs...)
	if err != nil {
		panic(err)
	}
	return y
}

// expectInputs checks a forward rule's arity.
func expectInputs(name string, xs []*tensor.RawTensor, n int) error {
	if len(xs) != n {
		return fmt.Errorf("%s: expected %d inputs, got %d", name, n, len(xs))
	}
	return nil
}

// single wraps one forward result.
func single(y *tensor.RawTensor, err error) ([]*tensor.RawTensor, error) {
	if err != nil {
		return nil, err
	}
	return []*tensor.RawTensor{y}, nil
}
