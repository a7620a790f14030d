// Package benchfn provides classic optimization test functions written in
// Variable arithmetic, so their gradients come from the autodiff engine.
package benchfn

import (
	"errors"
	"fmt"
	"sort"

	"github.com/born-ml/autograd/internal/autodiff"
)

// ErrUnknownFunction is returned by Lookup for an unregistered name.
var ErrUnknownFunction = errors.New("unknown function")

// Func is a named scalar objective of a fixed number of inputs.
type Func struct {
	Name        string
	Arity       int
	Description string
	fn          func(xs ...*autodiff.Variable) *autodiff.Variable
}

// Eval applies the function. Operator panics raised while building the
// expression (shape mismatches and the like) are returned as errors.
func (f Func) Eval(xs ...*autodiff.Variable) (y *autodiff.Variable, err error) {
	if len(xs) != f.Arity {
		return nil, fmt.Errorf("%s: expected %d inputs, got %d", f.Name, f.Arity, len(xs))
	}
	defer func() {
		if r := recover(); r != nil {
			y, err = nil, fmt.Errorf("%s: %v", f.Name, r)
		}
	}()
	return f.fn(xs...), nil
}

// Sphere computes x² + y².
func Sphere(x, y *autodiff.Variable) *autodiff.Variable {
	return x.Square().Add(y.Square())
}

// Matyas computes 0.26(x² + y²) - 0.48xy.
func Matyas(x, y *autodiff.Variable) *autodiff.Variable {
	return Sphere(x, y).Mul(0.26).Sub(x.Mul(y).Mul(0.48))
}

// GoldsteinPrice computes the Goldstein-Price function. Its global minimum
// is 3 at (0, -1).
func GoldsteinPrice(x, y *autodiff.Variable) *autodiff.Variable {
	a := x.Add(y).Add(1).Square()
	b := x.Mul(-14).Add(19).
		Add(x.Square().Mul(3)).
		Sub(y.Mul(14)).
		Add(x.Mul(y).Mul(6)).
		Add(y.Square().Mul(3))
	c := x.Mul(2).Sub(y.Mul(3)).Square()
	d := x.Mul(-32).Add(18).
		Add(x.Square().Mul(12)).
		Add(y.Mul(48)).
		Sub(x.Mul(y).Mul(36)).
		Add(y.Square().Mul(27))
	return a.Mul(b).Add(1).Mul(c.Mul(d).Add(30))
}

// Rosenbrock computes 100(y - x²)² + (1 - x)². Its minimum is 0 at (1, 1).
func Rosenbrock(x, y *autodiff.Variable) *autodiff.Variable {
	return y.Sub(x.Square()).Square().Mul(100).Add(x.RSub(1).Square())
}

// Quartic computes x⁴ - 2x², whose minima sit at x = ±1.
func Quartic(x *autodiff.Variable) *autodiff.Variable {
	return x.Pow(4).Sub(x.Square().Mul(2))
}

func binary(f func(x, y *autodiff.Variable) *autodiff.Variable) func(xs ...*autodiff.Variable) *autodiff.Variable {
	return func(xs ...*autodiff.Variable) *autodiff.Variable { return f(xs[0], xs[1]) }
}

var registry = map[string]Func{
	"sphere": {
		Name: "sphere", Arity: 2, Description: "x² + y²",
		fn: binary(Sphere),
	},
	"matyas": {
		Name: "matyas", Arity: 2, Description: "0.26(x² + y²) - 0.48xy",
		fn: binary(Matyas),
	},
	"goldstein": {
		Name: "goldstein", Arity: 2, Description: "Goldstein-Price",
		fn: binary(GoldsteinPrice),
	},
	"rosenbrock": {
		Name: "rosenbrock", Arity: 2, Description: "100(y - x²)² + (1 - x)²",
		fn: binary(Rosenbrock),
	},
	"quartic": {
		Name: "quartic", Arity: 1, Description: "x⁴ - 2x²",
		fn: func(xs ...*autodiff.Variable) *autodiff.Variable { return Quartic(xs[0]) },
	},
}

// Lookup returns the registered function with the given name.
func Lookup(name string) (Func, error) {
	f, ok := registry[name]
	if !ok {
		return Func{}, fmt.Errorf("%w: %q (available: %v)", ErrUnknownFunction, name, Names())
	}
	return f, nil
}

// Names lists the registered functions in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
