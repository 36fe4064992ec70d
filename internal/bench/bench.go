// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package bench provides benchmark objectives for exercising line searches.
package bench

import (
	"fmt"
	"slices"
	"strings"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/optimize/functions"

	"github.com/curioloop/linesearch/linesearch"
)

// Objective pairs a value function with its analytic gradient.
type Objective struct {
	Name  string
	Dim   int
	Value linesearch.ValueFunc
	Grad  linesearch.GradFunc
	// Start is the standard starting point for the objective.
	Start []float64
}

// gonumFunc is the shape of the test functions in gonum/optimize/functions.
type gonumFunc interface {
	Func(x []float64) float64
	Grad(grad, x []float64)
}

type entry struct {
	// fixed dimension or 0 when any dimension ≥ minDim works
	dim, minDim int
	build       func(n int) Objective
}

var registry = map[string]entry{
	"quadratic": {minDim: 1, build: func(n int) Objective {
		return Objective{
			Value: func(x []float64) (float64, error) { return floats.Dot(x, x), nil },
			Grad: func(x []float64) ([]float64, error) {
				g := make([]float64, len(x))
				floats.AddScaled(g, 2, x)
				return g, nil
			},
			Start: slices.Repeat([]float64{1}, n),
		}
	}},
	"rosenbrock": {minDim: 2, build: func(n int) Objective {
		o := fromGonum(functions.ExtendedRosenbrock{})
		o.Start = alternate(n, -1.2, 1)
		return o
	}},
	"generalized-rosenbrock": {minDim: 2, build: func(n int) Objective {
		return Objective{
			Value: func(x []float64) (float64, error) { return GeneralizedRosenbrock(x), nil },
			Grad: func(x []float64) ([]float64, error) {
				g := make([]float64, len(x))
				GeneralizedRosenbrockGrad(g, x)
				return g, nil
			},
			Start: alternate(n, -1.2, 1),
		}
	}},
	"beale": {dim: 2, build: func(int) Objective {
		o := fromGonum(functions.Beale{})
		o.Start = []float64{1, 1}
		return o
	}},
}

// Names lists the registered objectives in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Lookup returns the objective registered under name with dimension n.
// For fixed dimension objectives n may be 0.
func Lookup(name string, n int) (Objective, error) {
	e, ok := registry[name]
	switch {
	case !ok:
		return Objective{}, fmt.Errorf("unknown objective %q (one of %s)", name, strings.Join(Names(), ", "))
	case e.dim > 0 && n != 0 && n != e.dim:
		return Objective{}, fmt.Errorf("objective %q has dimension %d, got %d", name, e.dim, n)
	case e.dim == 0 && n < e.minDim:
		return Objective{}, fmt.Errorf("objective %q needs dimension ≥ %d, got %d", name, e.minDim, n)
	}
	if e.dim > 0 {
		n = e.dim
	}

	o := e.build(n)
	o.Name, o.Dim = name, n
	o.Value = checkDim(n, o.Value)
	return o, nil
}

func fromGonum(fn gonumFunc) Objective {
	return Objective{
		Value: func(x []float64) (float64, error) { return fn.Func(x), nil },
		Grad: func(x []float64) ([]float64, error) {
			g := make([]float64, len(x))
			fn.Grad(g, x)
			return g, nil
		},
	}
}

// checkDim turns the dimension panics of the gonum functions into errors.
func checkDim(n int, f linesearch.ValueFunc) linesearch.ValueFunc {
	return func(x []float64) (float64, error) {
		if len(x) != n {
			return 0, fmt.Errorf("%w: objective has dimension %d, got %d", linesearch.ErrDimensionMismatch, n, len(x))
		}
		return f(x)
	}
}

func alternate(n int, a, b float64) []float64 {
	x := make([]float64, n)
	for i := range x {
		if i%2 == 0 {
			x[i] = a
		} else {
			x[i] = b
		}
	}
	return x
}
