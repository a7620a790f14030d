package autodiff

import "fmt"

// Handle addresses a recorded output Variable inside a Graph's arena.
// Operations refer to their outputs only through Handles, so an Operation
// never owns the Variables it produced. A Handle stays valid until the
// Graph is Reset.
type Handle struct {
	index int
	epoch uint64
}

// String implements fmt.Stringer.
func (h Handle) String() string {
	return fmt.Sprintf("handle(%d@%d)", h.index, h.epoch)
}

// tape is the arena of recorded operations and the Variables they
// produced, in execution order.
type tape struct {
	epoch   uint64
	outputs []*Variable
	ops     []*Operation
}

func newTape() tape {
	return tape{
		outputs: make([]*Variable, 0, 64), // Pre-allocate for common case
		ops:     make([]*Operation, 0, 64),
	}
}

// record creates the Operation for one application of fn, registers its
// outputs in the arena and links them to it.
func (t *tape) record(fn Function, inputs, outputs []*Variable) *Operation {
	generation := 0
	for _, x := range inputs {
		generation = max(generation, x.generation)
	}

	op := &Operation{
		fn:         fn,
		inputs:     inputs,
		outputs:    make([]Handle, len(outputs)),
		generation: generation,
		id:         len(t.ops),
		tape:       t,
	}
	for i, y := range outputs {
		op.outputs[i] = Handle{index: len(t.outputs), epoch: t.epoch}
		t.outputs = append(t.outputs, y)
		y.setCreator(op)
	}
	t.ops = append(t.ops, op)
	return op
}

// resolve returns the Variable behind h, or false when h belongs to a
// released epoch.
func (t *tape) resolve(h Handle) (*Variable, bool) {
	if h.epoch != t.epoch || h.index < 0 || h.index >= len(t.outputs) {
		return nil, false
	}
	return t.outputs[h.index], true
}

// Reset releases every recorded operation and output held by the arena.
// Recording state is preserved. Variables still referenced by the caller
// keep their values, but backward through operations recorded before the
// reset fails with ErrOutputReleased.
func (g *Graph) Reset() {
	g.tape.epoch++
	g.tape.outputs = make([]*Variable, 0, 64)
	g.tape.ops = make([]*Operation, 0, 64)
}

// NumOps returns the number of operations recorded since the last Reset.
func (g *Graph) NumOps() int {
	return len(g.tape.ops)
}

// NumVariables returns the number of recorded output Variables held by the
// arena.
func (g *Graph) NumVariables() int {
	return len(g.tape.outputs)
}

// Operations returns the recorded operations in execution order.
func (g *Graph) Operations() []*Operation {
	ops := make([]*Operation, len(g.tape.ops))
	copy(ops, g.tape.ops)
	return ops
}

// Resolve returns the recorded Variable addressed by h.
func (g *Graph) Resolve(h Handle) (*Variable, error) {
	v, ok := g.tape.resolve(h)
	if !ok {
		return nil, fmt.Errorf("%v: %w", h, ErrOutputReleased)
	}
	return v, nil
}
