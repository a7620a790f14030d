package tensor

import (
	"fmt"
	"reflect"
)

// FromSlice creates a Float64 tensor holding a copy of data with the given shape.
func FromSlice(data []float64, shape Shape) (*RawTensor, error) {
	return FromSliceAs(data, shape, Float64)
}

// FromSliceAs creates a tensor of the given dtype holding a copy of data.
func FromSliceAs(data []float64, shape Shape, dtype DataType) (*RawTensor, error) {
	raw, err := NewRaw(shape, dtype)
	if err != nil {
		return nil, err
	}
	if len(data) != raw.NumElements() {
		return nil, fmt.Errorf("data length %d does not match shape %v (%d elements)",
			len(data), shape, raw.NumElements())
	}
	for i, v := range data {
		raw.data[i] = dtype.Round(v)
	}
	return raw, nil
}

// FromScalar creates a 0-dimensional Float64 tensor.
func FromScalar(v float64) *RawTensor {
	return &RawTensor{shape: Shape{}, dtype: Float64, data: []float64{v}}
}

// Full creates a tensor filled with a specific value.
func Full(shape Shape, value float64, dtype DataType) (*RawTensor, error) {
	raw, err := NewRaw(shape, dtype)
	if err != nil {
		return nil, err
	}
	return raw.Fill(value), nil
}

// OnesLike creates a tensor of ones with the shape and dtype of t.
func OnesLike(t *RawTensor) *RawTensor {
	return t.Map(func(float64) float64 { return 1 })
}

// ZerosLike creates a tensor of zeros with the shape and dtype of t.
func ZerosLike(t *RawTensor) *RawTensor {
	return &RawTensor{shape: t.shape.Clone(), dtype: t.dtype, data: make([]float64, len(t.data))}
}

// IsScalar reports whether v is a Go numeric scalar accepted by FromData.
func IsScalar(v any) bool {
	switch v.(type) {
	case float64, float32, int, int32, int64:
		return true
	}
	return false
}

// FromData builds a tensor from a Go scalar or from (possibly nested)
// rectangular numeric slices such as [][]float64.
//
// float32 scalars and slices produce a Float32 tensor; every other numeric
// kind produces Float64.
func FromData(v any) (*RawTensor, error) {
	if raw, ok := v.(*RawTensor); ok {
		return raw, nil
	}

	rv := reflect.ValueOf(v)
	if !rv.IsValid() {
		return nil, fmt.Errorf("%T is not array-like", v)
	}

	var shape Shape
	elem := rv
	for elem.Kind() == reflect.Slice || elem.Kind() == reflect.Array {
		if elem.Len() == 0 {
			return nil, fmt.Errorf("empty dimension in %T", v)
		}
		shape = append(shape, elem.Len())
		elem = elem.Index(0)
	}

	dtype := Float64
	switch elem.Kind() {
	case reflect.Float32:
		dtype = Float32
	case reflect.Float64, reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
	default:
		return nil, fmt.Errorf("%T is not array-like", v)
	}

	raw, err := NewRaw(shape, dtype)
	if err != nil {
		return nil, err
	}
	flat := raw.data[:0]
	if err := flatten(rv, shape, &flat); err != nil {
		return nil, fmt.Errorf("%T: %w", v, err)
	}
	for i := range raw.data {
		raw.data[i] = dtype.Round(raw.data[i])
	}
	return raw, nil
}

func flatten(rv reflect.Value, shape Shape, out *[]float64) error {
	if len(shape) == 0 {
		switch rv.Kind() {
		case reflect.Float32, reflect.Float64:
			*out = append(*out, rv.Float())
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			*out = append(*out, float64(rv.Int()))
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			*out = append(*out, float64(rv.Uint()))
		default:
			return fmt.Errorf("unexpected element kind %s", rv.Kind())
		}
		return nil
	}
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return fmt.Errorf("ragged data: expected a sequence of length %d", shape[0])
	}
	if rv.Len() != shape[0] {
		return fmt.Errorf("ragged data: got length %d, want %d", rv.Len(), shape[0])
	}
	for i := 0; i < rv.Len(); i++ {
		if err := flatten(rv.Index(i), shape[1:], out); err != nil {
			return err
		}
	}
	return nil
}
