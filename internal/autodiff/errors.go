package autodiff

import "errors"

// Sentinel errors returned by the engine. Callers match them with errors.Is;
// the returned errors wrap them with the operation and position involved.
var (
	// ErrUnsupportedType is returned when a Variable is built from a value
	// that is neither a tensor nor nil.
	ErrUnsupportedType = errors.New("unsupported type")

	// ErrNotImplemented is returned by functions that do not provide a
	// forward or backward rule.
	ErrNotImplemented = errors.New("not implemented")

	// ErrOutputReleased is returned when backward reaches an operation whose
	// outputs are no longer held by the graph (for example after Reset).
	ErrOutputReleased = errors.New("operation output released")

	// ErrGradCount is returned when a backward rule yields a different number
	// of gradients than the operation has inputs.
	ErrGradCount = errors.New("gradient count mismatch")

	// ErrOutputCount is returned by Call when a function does not produce
	// exactly one output.
	ErrOutputCount = errors.New("output count mismatch")

	// ErrPlaceholder is returned when a placeholder (data-less) Variable is
	// used where a value is required.
	ErrPlaceholder = errors.New("variable holds no data")

	// ErrGraphMismatch is returned when Variables from different graphs are
	// combined.
	ErrGraphMismatch = errors.New("variable belongs to another graph")
)
