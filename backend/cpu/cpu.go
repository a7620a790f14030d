// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package cpu

import (
	internalcpu "github.com/born-ml/autograd/internal/backend/cpu"
	"github.com/born-ml/autograd/tensor"
)

// Backend is the pure Go CPU implementation of tensor.Backend.
type Backend = internalcpu.CPUBackend

// Compile-time check that Backend implements tensor.Backend.
var _ tensor.Backend = (*Backend)(nil)

// New creates a new CPU backend.
//
// Example:
//
//	g := autodiff.NewGraph(cpu.New())
func New() *Backend {
	return internalcpu.New()
}
