// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import (
	"github.com/born-ml/autograd/internal/tensor"
)

// RawTensor is a dense n-dimensional array.
type RawTensor = tensor.RawTensor

// Shape represents the dimensions of a tensor.
type Shape = tensor.Shape

// DataType represents the element type of a tensor.
type DataType = tensor.DataType

// Data type constants.
const (
	Float32 DataType = tensor.Float32
	Float64 DataType = tensor.Float64
)

// NewRaw creates a zero-filled tensor.
func NewRaw(shape Shape, dtype DataType) (*RawTensor, error) {
	return tensor.NewRaw(shape, dtype)
}

// FromSlice creates a Float64 tensor holding a copy of data.
func FromSlice(data []float64, shape Shape) (*RawTensor, error) {
	return tensor.FromSlice(data, shape)
}

// FromScalar creates a 0-dimensional Float64 tensor.
func FromScalar(v float64) *RawTensor {
	return tensor.FromScalar(v)
}

// FromData builds a tensor from a Go scalar or nested numeric slices.
//
// Example:
//
//	x, err := tensor.FromData([][]float32{{1, 2}, {3, 4}}) // Float32, (2, 2)
func FromData(v any) (*RawTensor, error) {
	return tensor.FromData(v)
}

// OnesLike creates a tensor of ones with the shape and dtype of t.
func OnesLike(t *RawTensor) *RawTensor {
	return tensor.OnesLike(t)
}

// ZerosLike creates a tensor of zeros with the shape and dtype of t.
func ZerosLike(t *RawTensor) *RawTensor {
	return tensor.ZerosLike(t)
}

// BroadcastShapes computes the NumPy broadcast of two shapes.
func BroadcastShapes(a, b Shape) (Shape, bool, error) {
	return tensor.BroadcastShapes(a, b)
}

// AllClose reports whether a and b have equal shapes and elements within
// atol + rtol*|b|.
func AllClose(a, b *RawTensor, rtol, atol float64) bool {
	return tensor.AllClose(a, b, rtol, atol)
}
