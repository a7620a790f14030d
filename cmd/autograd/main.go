// Package main provides the autograd CLI: gradients, graph rendering and a
// Newton's method demo on top of the autodiff engine.
package main

import (
	"os"
)

const version = "v0.1.0-dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
