// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides the array type the autodiff engine computes on.
//
// # Overview
//
// A RawTensor is a dense, row-major block of float64 values tagged with a
// DataType. Float32 tensors store float64 values rounded to float32
// precision, so arithmetic on them behaves like float32 arithmetic.
//
// # Basic Usage
//
//	x, _ := tensor.FromData([][]float64{{1, 2, 3}, {4, 5, 6}})
//	fmt.Println(x.Shape()) // (2, 3)
//	fmt.Println(x)         // [[1 2 3]
//	                       //  [4 5 6]]
//
// # Broadcasting
//
// Backends follow NumPy broadcasting rules:
//
//	(3, 1) + (3, 4) -> (3, 4)
//	(4,)   + ()     -> (4,)
//	(3, 4) + (3, 5) -> error
//
// SumTo reduces a broadcast result back to an operand's shape and
// BroadcastTo expands it again, which is how gradients of broadcast
// operations are routed.
package tensor
