// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import "github.com/born-ml/autograd/internal/tensor"

// Backend defines the array operations the autodiff engine consumes.
// Binary operations broadcast their operands and return an error when the
// shapes are incompatible.
//
// Implementations:
//   - backend/cpu: Pure Go
type Backend = tensor.Backend
