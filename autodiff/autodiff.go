// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package autodiff provides define-by-run reverse-mode automatic
// differentiation.
//
// Expressions built from Variables are evaluated eagerly on a backend. While
// the Graph is recording, each operation links its outputs to the inputs it
// consumed, and Backward walks those links in reverse to accumulate
// gradients.
//
// Example:
//
//	import (
//	    "github.com/born-ml/autograd/autodiff"
//	    "github.com/born-ml/autograd/backend/cpu"
//	)
//
//	func main() {
//	    g := autodiff.NewGraph(cpu.New())
//	    x, _ := g.AsVariable(2.0)
//
//	    y := x.Pow(4).Sub(x.Square().Mul(2)) // y = x⁴ - 2x²
//	    _ = y.Backward(autodiff.WithCreateGraph())
//
//	    gx := x.Grad() // 24
//	    x.ClearGrad()
//	    _ = gx.Backward()
//	    fmt.Println(x.Grad()) // variable(44)
//	}
package autodiff

import (
	"github.com/born-ml/autograd/internal/autodiff"
	"github.com/born-ml/autograd/tensor"
)

// Graph is the differentiation context: the backend, the recording flag and
// the arena of recorded operations.
type Graph = autodiff.Graph

// Variable is a vertex of the computation graph.
type Variable = autodiff.Variable

// Function is a differentiable forward/backward rule.
type Function = autodiff.Function

// UnimplementedFunction can be embedded in custom functions. Its rules
// return ErrNotImplemented.
type UnimplementedFunction = autodiff.UnimplementedFunction

// Operation records one application of a Function.
type Operation = autodiff.Operation

// Handle addresses a recorded output inside its Graph.
type Handle = autodiff.Handle

// Option types.
type (
	GraphOption    = autodiff.GraphOption
	VariableOption = autodiff.VariableOption
	BackwardOption = autodiff.BackwardOption
)

// Built-in functions.
type (
	Add         = autodiff.Add
	Sub         = autodiff.Sub
	Mul         = autodiff.Mul
	Div         = autodiff.Div
	Neg         = autodiff.Neg
	Pow         = autodiff.Pow
	Square      = autodiff.Square
	Exp         = autodiff.Exp
	Log         = autodiff.Log
	Sin         = autodiff.Sin
	Cos         = autodiff.Cos
	Tanh        = autodiff.Tanh
	SumTo       = autodiff.SumTo
	BroadcastTo = autodiff.BroadcastTo
)

// Errors.
var (
	ErrUnsupportedType = autodiff.ErrUnsupportedType
	ErrNotImplemented  = autodiff.ErrNotImplemented
	ErrOutputReleased  = autodiff.ErrOutputReleased
	ErrGradCount       = autodiff.ErrGradCount
	ErrOutputCount     = autodiff.ErrOutputCount
	ErrPlaceholder     = autodiff.ErrPlaceholder
	ErrGraphMismatch   = autodiff.ErrGraphMismatch
)

// NewGraph creates a recording Graph that evaluates on backend.
func NewGraph(backend tensor.Backend, opts ...GraphOption) *Graph {
	return autodiff.NewGraph(backend, opts...)
}

// WithLogger sets the logger used for backward-pass tracing.
var WithLogger = autodiff.WithLogger

// WithName sets a Variable's name.
var WithName = autodiff.WithName

// WithRetainGrad keeps the gradients of intermediate Variables.
var WithRetainGrad = autodiff.WithRetainGrad

// WithCreateGraph records the backward pass so gradients can be
// differentiated again.
var WithCreateGraph = autodiff.WithCreateGraph

// DotGraph renders the graph that produced output in Graphviz DOT format.
func DotGraph(output *Variable, verbose bool) (string, error) {
	return autodiff.DotGraph(output, verbose)
}
