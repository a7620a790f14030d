// Package autodiff implements define-by-run reverse-mode automatic
// differentiation.
//
// Architecture:
//   - Graph: owns the recording flag and the arena of recorded operations
//   - Variable: a graph vertex holding a tensor value and an optional gradient
//   - Function: a forward/backward rule; Operation records one application of it
//   - Backward: generation-ordered reverse traversal from a root Variable
//
// Expressions are evaluated eagerly. While recording is enabled every
// Function application links its outputs to an Operation, so a later call to
// Backward can walk the graph in decreasing generation order and accumulate
// gradients into every ancestor.
//
// Usage:
//
//	g := autodiff.NewGraph(cpu.New())
//	x, _ := g.NewVariable(tensor.FromScalar(3))
//	y := x.Square()       // y = x²
//	_ = y.Backward()
//	fmt.Println(x.Grad()) // variable(6)
//
// A Graph is not safe for concurrent use. Give each goroutine its own Graph.
package autodiff

import (
	"log/slog"

	"github.com/born-ml/autograd/internal/tensor"
)

// Graph is the differentiation context. It carries the backend used for
// forward evaluation, the flag that controls whether operations are
// recorded, and the arena that owns recorded operations and their outputs.
type Graph struct {
	backend        tensor.Backend
	enableBackprop bool
	logger         *slog.Logger
	tape           tape
}

// GraphOption configures a Graph.
type GraphOption func(*graphOptions)

type graphOptions struct {
	logger *slog.Logger
}

// WithLogger sets the logger used for backward-pass tracing.
func WithLogger(l *slog.Logger) GraphOption {
	return func(o *graphOptions) {
		o.logger = l
	}
}

// NewGraph creates a Graph evaluating on backend with recording enabled.
func NewGraph(backend tensor.Backend, opts ...GraphOption) *Graph {
	options := &graphOptions{
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(options)
	}

	return &Graph{
		backend:        backend,
		enableBackprop: true,
		logger:         options.logger,
		tape:           newTape(),
	}
}

// Backend returns the backend used for forward evaluation.
func (g *Graph) Backend() tensor.Backend {
	return g.backend
}

// IsRecording reports whether function applications are currently recorded.
func (g *Graph) IsRecording() bool {
	return g.enableBackprop
}

// UsingConfig installs enable as the recording flag and returns a function
// that restores the previous value. Intended for use with defer so the old
// value comes back on every exit path, panics included:
//
//	defer g.UsingConfig(false)()
func (g *Graph) UsingConfig(enable bool) (restore func()) {
	old := g.enableBackprop
	g.enableBackprop = enable
	return func() {
		g.enableBackprop = old
	}
}

// NoGrad disables recording until the returned function is called.
//
//	defer g.NoGrad()()
func (g *Graph) NoGrad() (restore func()) {
	return g.UsingConfig(false)
}

// WithoutGrad runs fn with recording disabled. The previous flag is restored
// when fn returns, fails or panics.
func (g *Graph) WithoutGrad(fn func() error) error {
	defer g.NoGrad()()
	return fn()
}
