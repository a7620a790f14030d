package tensor

// Backend defines the array arithmetic the autodiff engine consumes.
// Backends never mutate their operands; every call returns a fresh tensor.
//
// Implementations:
//   - CPU: pure Go kernels with NumPy-style broadcasting (internal/backend/cpu)
type Backend interface {
	// Name returns the backend name.
	Name() string

	// Element-wise binary operations with broadcasting.
	Add(a, b *RawTensor) (*RawTensor, error)
	Sub(a, b *RawTensor) (*RawTensor, error)
	Mul(a, b *RawTensor) (*RawTensor, error)
	Div(a, b *RawTensor) (*RawTensor, error)

	// Element-wise unary operations.
	Neg(x *RawTensor) *RawTensor
	Pow(x *RawTensor, c float64) *RawTensor
	Exp(x *RawTensor) *RawTensor
	Log(x *RawTensor) *RawTensor
	Sin(x *RawTensor) *RawTensor
	Cos(x *RawTensor) *RawTensor
	Tanh(x *RawTensor) *RawTensor

	// Shape operations.
	SumTo(x *RawTensor, shape Shape) (*RawTensor, error)       // sum broadcast axes away
	BroadcastTo(x *RawTensor, shape Shape) (*RawTensor, error) // repeat along size-1 axes
}
