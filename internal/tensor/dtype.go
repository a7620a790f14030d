// Package tensor provides the n-dimensional array type consumed by the autodiff engine.
//
// A RawTensor holds a shape, a runtime data type and a flat row-major
// buffer. Arithmetic lives behind the Backend interface.
package tensor

// DataType represents runtime type information for tensors.
type DataType int

// Supported data types for tensors.
const (
	Float32 DataType = iota
	Float64
)

// Size returns the byte size of the data type.
func (dt DataType) Size() int {
	switch dt {
	case Float32:
		return 4
	case Float64:
		return 8
	default:
		panic("unknown data type")
	}
}

// String returns a human-readable name for the data type.
func (dt DataType) String() string {
	switch dt {
	case Float32:
		return "float32"
	case Float64:
		return "float64"
	default:
		return "unknown"
	}
}

// Promote returns the data type of a binary result, NumPy style:
// float64 wins over float32.
func Promote(a, b DataType) DataType {
	if a == Float64 || b == Float64 {
		return Float64
	}
	return Float32
}

// Round narrows v to the precision of dt.
func (dt DataType) Round(v float64) float64 {
	if dt == Float32 {
		return float64(float32(v))
	}
	return v
}
