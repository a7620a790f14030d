package autodiff

import (
	"fmt"
	"strings"

	"github.com/born-ml/autograd/internal/tensor"
)

// Variable is a vertex of the computation graph. It wraps a tensor value
// (nil for a placeholder), an optional gradient, the Operation that produced
// it and its generation.
//
// The gradient is itself a Variable, so when backward runs with
// WithCreateGraph the gradient computation is recorded and can be
// differentiated again.
//
// Variables are identified by pointer, never by value.
type Variable struct {
	data       *tensor.RawTensor
	name       string
	grad       *Variable
	creator    *Operation
	generation int
	graph      *Graph
}

// VariableOption configures a Variable at construction.
type VariableOption func(*Variable)

// WithName sets the Variable's display name.
func WithName(name string) VariableOption {
	return func(v *Variable) {
		v.name = name
	}
}

// NewVariable creates a leaf Variable. data must be a *tensor.RawTensor or
// nil (a placeholder); anything else fails with ErrUnsupportedType.
func (g *Graph) NewVariable(data any, opts ...VariableOption) (*Variable, error) {
	var raw *tensor.RawTensor
	switch d := data.(type) {
	case nil:
	case *tensor.RawTensor:
		raw = d
	default:
		return nil, fmt.Errorf("%w: %T is not supported", ErrUnsupportedType, data)
	}

	v := &Variable{data: raw, graph: g}
	for _, opt := range opts {
		opt(v)
	}
	return v, nil
}

// AsVariable coerces v into a Variable of this graph. Variables pass
// through; tensors, Go scalars and nested numeric slices are wrapped in a
// new leaf.
func (g *Graph) AsVariable(v any) (*Variable, error) {
	switch x := v.(type) {
	case *Variable:
		if x.graph != g {
			return nil, ErrGraphMismatch
		}
		return x, nil
	case nil, *tensor.RawTensor:
		return g.NewVariable(x)
	}

	raw, err := tensor.FromData(v)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnsupportedType, err)
	}
	return g.NewVariable(raw)
}

// Data returns the wrapped tensor, or nil for a placeholder.
func (v *Variable) Data() *tensor.RawTensor {
	return v.data
}

// SetData replaces the wrapped tensor.
func (v *Variable) SetData(data *tensor.RawTensor) {
	v.data = data
}

// Name returns the display name.
func (v *Variable) Name() string {
	return v.name
}

// SetName sets the display name.
func (v *Variable) SetName(name string) {
	v.name = name
}

// Grad returns the gradient, or nil if none has been computed.
func (v *Variable) Grad() *Variable {
	return v.grad
}

// SetGrad sets the gradient. Setting it before Backward overrides the
// default seed of ones.
func (v *Variable) SetGrad(grad *Variable) {
	v.grad = grad
}

// ClearGrad unsets the gradient.
func (v *Variable) ClearGrad() {
	v.grad = nil
}

// Creator returns the Operation that produced v, or nil for a leaf.
func (v *Variable) Creator() *Operation {
	return v.creator
}

// Generation returns the distance from the graph's leaves.
func (v *Variable) Generation() int {
	return v.generation
}

// Graph returns the Graph this Variable belongs to.
func (v *Variable) Graph() *Graph {
	return v.graph
}

// setCreator links v to op and places it one generation after op.
func (v *Variable) setCreator(op *Operation) {
	v.creator = op
	v.generation = op.generation + 1
}

// Shape returns the shape of the wrapped tensor.
// Panics on a placeholder.
func (v *Variable) Shape() tensor.Shape {
	return v.mustData("shape").Shape()
}

// NDim returns the number of dimensions.
func (v *Variable) NDim() int {
	return v.mustData("ndim").NDim()
}

// Size returns the number of elements.
func (v *Variable) Size() int {
	return v.mustData("size").NumElements()
}

// DType returns the element type.
func (v *Variable) DType() tensor.DataType {
	return v.mustData("dtype").DType()
}

// Len returns the size of the first dimension.
func (v *Variable) Len() int {
	return v.mustData("len").Len()
}

// Item returns the single element of a one-element Variable.
func (v *Variable) Item() float64 {
	return v.mustData("item").Item()
}

// String renders the value as variable(...), indenting continuation lines
// so multi-dimensional values stay aligned.
func (v *Variable) String() string {
	if v.data == nil {
		return "variable(nil)"
	}
	p := strings.ReplaceAll(v.data.String(), "\n", "\n"+strings.Repeat(" ", 9))
	return "variable(" + p + ")"
}

// Backward computes the gradient of v with respect to every ancestor.
// See Graph.Backward.
func (v *Variable) Backward(opts ...BackwardOption) error {
	return v.graph.Backward(v, opts...)
}

func (v *Variable) mustData(what string) *tensor.RawTensor {
	if v.data == nil {
		panic(fmt.Sprintf("%s: %v", what, ErrPlaceholder))
	}
	return v.data
}
