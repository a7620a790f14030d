package autodiff

import (
	"container/heap"
	"fmt"
	"log/slog"

	"github.com/born-ml/autograd/internal/tensor"
)

// BackwardOption configures a backward pass.
type BackwardOption func(*backwardOptions)

type backwardOptions struct {
	retainGrad  bool
	createGraph bool
}

// WithRetainGrad keeps the gradient of every Variable an operation
// produced, the root included. By default only leaves keep theirs.
func WithRetainGrad() BackwardOption {
	return func(o *backwardOptions) {
		o.retainGrad = true
	}
}

// WithCreateGraph records the gradient computation itself, so the
// resulting gradients can be differentiated again.
func WithCreateGraph() BackwardOption {
	return func(o *backwardOptions) {
		o.createGraph = true
	}
}

// Backward propagates gradients from root to every ancestor reachable
// through recorded operations.
//
// Algorithm:
//  1. Seed root's gradient with ones shaped like its value, unless set
//  2. Keep pending operations in a max-heap keyed by generation
//  3. Pop the highest generation; every consumer of its outputs has a
//     generation at least as high, so all output gradients are complete
//  4. Run its backward rule and accumulate into each input's gradient
//  5. Enqueue each input's creator once
//
// Each operation is processed exactly once. Backward on a leaf only seeds
// its gradient.
func (g *Graph) Backward(root *Variable, opts ...BackwardOption) error {
	options := backwardOptions{}
	for _, opt := range opts {
		opt(&options)
	}

	if root.graph != g {
		return fmt.Errorf("backward: %w", ErrGraphMismatch)
	}
	if root.data == nil {
		return fmt.Errorf("backward: %w", ErrPlaceholder)
	}
	if root.grad == nil {
		root.grad = &Variable{data: tensor.OnesLike(root.data), graph: g}
	}
	if root.creator == nil {
		return nil
	}

	g.logger.Debug("backward: start",
		slog.String("root", root.creator.Name()),
		slog.Int("generation", root.generation),
		slog.Bool("retain_grad", options.retainGrad),
		slog.Bool("create_graph", options.createGraph))

	pending := &opQueue{}
	seen := make(map[*Operation]struct{})
	enqueue := func(op *Operation) {
		if _, ok := seen[op]; ok {
			return
		}
		seen[op] = struct{}{}
		heap.Push(pending, op)
	}
	enqueue(root.creator)

	processed := 0
	for pending.Len() > 0 {
		op := heap.Pop(pending).(*Operation)
		if err := g.backwardStep(op, options, enqueue); err != nil {
			return err
		}
		processed++
		g.logger.Debug("backward: processed",
			slog.String("op", op.Name()),
			slog.Int("generation", op.generation),
			slog.Int("pending", pending.Len()))
	}

	g.logger.Debug("backward: done", slog.Int("ops", processed))
	return nil
}

// backwardStep runs one operation's backward rule and accumulates the
// resulting gradients. The recording flag is createGraph for the duration,
// so gradient arithmetic is recorded only for higher-order use.
func (g *Graph) backwardStep(op *Operation, options backwardOptions, enqueue func(*Operation)) error {
	defer g.UsingConfig(options.createGraph)()

	outputs, err := op.Outputs()
	if err != nil {
		return fmt.Errorf("backward: %w", err)
	}

	gys := make([]*Variable, len(outputs))
	for i, y := range outputs {
		gys[i] = y.grad
		if gys[i] == nil {
			// Output never consumed downstream: it contributes nothing.
			gys[i] = &Variable{data: tensor.ZerosLike(y.data), graph: g}
		}
	}

	gxs, err := op.fn.Backward(op, gys...)
	if err != nil {
		return fmt.Errorf("backward: %s: %w", op.Name(), err)
	}
	if len(gxs) != len(op.inputs) {
		return fmt.Errorf("backward: %s: %w: got %d gradients for %d inputs",
			op.Name(), ErrGradCount, len(gxs), len(op.inputs))
	}

	for i, x := range op.inputs {
		gx := gxs[i]
		if gx == nil {
			continue
		}
		if gx.graph != g {
			return fmt.Errorf("backward: %s: gradient %d: %w", op.Name(), i, ErrGraphMismatch)
		}

		if x.grad == nil {
			x.grad = gx
		} else {
			sum, err := g.Call(Add{}, x.grad, gx)
			if err != nil {
				return fmt.Errorf("backward: %s: accumulate gradient %d: %w", op.Name(), i, err)
			}
			x.grad = sum
		}

		if x.creator != nil {
			enqueue(x.creator)
		}
	}

	if !options.retainGrad {
		for _, y := range outputs {
			y.grad = nil
		}
	}
	return nil
}

// opQueue is a max-heap of operations ordered by generation. Ties go to
// the operation recorded last.
type opQueue []*Operation

func (q opQueue) Len() int { return len(q) }

func (q opQueue) Less(i, j int) bool {
	if q[i].generation != q[j].generation {
		return q[i].generation > q[j].generation
	}
	return q[i].id > q[j].id
}

func (q opQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

func (q *opQueue) Push(x any) { *q = append(*q, x.(*Operation)) }

func (q *opQueue) Pop() any {
	old := *q
	n := len(old)
	op := old[n-1]
	old[n-1] = nil
	*q = old[:n-1]
	return op
}
