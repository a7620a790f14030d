// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package optim provides first-order optimizers for autodiff Variables.
//
// # Overview
//
// This package contains:
//   - SGD: Gradient descent with optional momentum
//   - Adam: Adaptive Moment Estimation with bias correction
//   - Optimizer interface for custom optimizers
//
// # Basic Usage
//
//	g := autodiff.NewGraph(cpu.New())
//	x, _ := g.AsVariable(0.0)
//	y, _ := g.AsVariable(2.0)
//	opt := optim.NewAdam([]*autodiff.Variable{x, y}, optim.AdamConfig{LR: 0.01})
//
//	for range 1000 {
//	    loss := y.Sub(x.Square()).Square().Mul(100).Add(x.RSub(1).Square())
//	    opt.ZeroGrad()
//	    _ = loss.Backward()
//	    _ = opt.Step()
//	    g.Reset()
//	}
//
// Optimizers replace a parameter's data with a new tensor on every step.
// Updates run outside the graph and are never recorded.
package optim
