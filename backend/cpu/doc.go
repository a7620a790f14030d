// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package cpu provides a pure Go CPU backend for tensor operations.
//
// # Overview
//
// The backend implements element-wise arithmetic with NumPy-compatible
// broadcasting, a fixed set of unary math functions, and the SumTo and
// BroadcastTo pair used to route gradients through broadcast operations.
// It supports Float32 and Float64 tensors; combining a 0-d tensor with an
// n-d one keeps the n-d operand's dtype.
//
// # Thread Safety
//
// The CPU backend holds no state and is safe for concurrent use. Each
// operation allocates a fresh result.
package cpu
