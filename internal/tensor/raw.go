package tensor

import "fmt"

// RawTensor is the low-level tensor representation used by backends and the
// autodiff engine. Elements are stored row-major in a float64 buffer; a
// Float32 tensor keeps every element rounded to float32 precision.
//
// A RawTensor is treated as immutable once a backend has returned it.
type RawTensor struct {
	shape Shape
	dtype DataType
	data  []float64
}

// NewRaw creates a new zero-filled RawTensor with the given shape and type.
func NewRaw(shape Shape, dtype DataType) (*RawTensor, error) {
	if err := shape.Validate(); err != nil {
		return nil, fmt.Errorf("invalid shape: %w", err)
	}
	if dtype != Float32 && dtype != Float64 {
		return nil, fmt.Errorf("unsupported dtype %d", dtype)
	}

	return &RawTensor{
		shape: shape.Clone(),
		dtype: dtype,
		data:  make([]float64, shape.NumElements()),
	}, nil
}

// Shape returns the tensor's shape.
func (r *RawTensor) Shape() Shape {
	return r.shape
}

// NDim returns the number of dimensions (0 for a scalar).
func (r *RawTensor) NDim() int {
	return len(r.shape)
}

// DType returns the tensor's data type.
func (r *RawTensor) DType() DataType {
	return r.dtype
}

// NumElements returns the total number of elements.
func (r *RawTensor) NumElements() int {
	return len(r.data)
}

// Len returns the size of the first dimension.
// Panics for a 0-d tensor, which has no length.
func (r *RawTensor) Len() int {
	if len(r.shape) == 0 {
		panic("len() of unsized object")
	}
	return r.shape[0]
}

// IsScalar reports whether the tensor is 0-dimensional.
func (r *RawTensor) IsScalar() bool {
	return len(r.shape) == 0
}

// Data returns the flat element buffer.
// WARNING: Direct access to underlying memory. Do not mutate tensors that
// have been handed to the autodiff engine.
func (r *RawTensor) Data() []float64 {
	return r.data
}

// At returns the element at the given multi-dimensional index.
func (r *RawTensor) At(idx ...int) float64 {
	if len(idx) != len(r.shape) {
		panic(fmt.Sprintf("at: got %d indices for %d-d tensor", len(idx), len(r.shape)))
	}
	strides := r.shape.ComputeStrides()
	off := 0
	for i, v := range idx {
		if v < 0 || v >= r.shape[i] {
			panic(fmt.Sprintf("at: index %d out of range for dimension %d of size %d", v, i, r.shape[i]))
		}
		off += v * strides[i]
	}
	return r.data[off]
}

// Item returns the single element of a one-element tensor.
func (r *RawTensor) Item() float64 {
	if len(r.data) != 1 {
		panic(fmt.Sprintf("item: tensor has %d elements", len(r.data)))
	}
	return r.data[0]
}

// Clone creates a deep copy of the tensor.
func (r *RawTensor) Clone() *RawTensor {
	data := make([]float64, len(r.data))
	copy(data, r.data)
	return &RawTensor{shape: r.shape.Clone(), dtype: r.dtype, data: data}
}

// Map returns a new tensor of the same shape and dtype with fn applied to
// every element.
func (r *RawTensor) Map(fn func(float64) float64) *RawTensor {
	out := &RawTensor{shape: r.shape.Clone(), dtype: r.dtype, data: make([]float64, len(r.data))}
	for i, v := range r.data {
		out.data[i] = r.dtype.Round(fn(v))
	}
	return out
}

// Fill sets every element to v and returns the receiver.
func (r *RawTensor) Fill(v float64) *RawTensor {
	v = r.dtype.Round(v)
	for i := range r.data {
		r.data[i] = v
	}
	return r
}

// AllClose reports whether both tensors have the same shape and every pair
// of elements differs by at most atol + rtol*|b|.
func AllClose(a, b *RawTensor, rtol, atol float64) bool {
	if !a.shape.Equal(b.shape) {
		return false
	}
	for i := range a.data {
		diff := a.data[i] - b.data[i]
		if diff < 0 {
			diff = -diff
		}
		ref := b.data[i]
		if ref < 0 {
			ref = -ref
		}
		if diff > atol+rtol*ref {
			return false
		}
	}
	return true
}
