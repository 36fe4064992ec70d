// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package linesearch

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// probe records every evaluator call so tests can inspect the trial sequence.
type probe struct {
	f      func(x []float64) float64
	g      func(x []float64) []float64
	values []float64
	grads  int
}

func (p *probe) value(x []float64) (float64, error) {
	v := p.f(x)
	p.values = append(p.values, v)
	return v, nil
}

func (p *probe) grad(x []float64) ([]float64, error) {
	p.grads++
	return p.g(x), nil
}

// square is f(x) = Σ xᵢ².
func square() *probe {
	return &probe{
		f: func(x []float64) float64 { return floats.Dot(x, x) },
		g: func(x []float64) []float64 {
			g := make([]float64, len(x))
			floats.AddScaled(g, 2, x)
			return g
		},
	}
}

// ellipse is f(x) = x₀² + 10x₁².
func ellipse() *probe {
	return &probe{
		f: func(x []float64) float64 { return x[0]*x[0] + 10*x[1]*x[1] },
		g: func(x []float64) []float64 { return []float64{2 * x[0], 20 * x[1]} },
	}
}

func negated(v []float64) []float64 {
	d := make([]float64, len(v))
	floats.ScaleTo(d, -1, v)
	return d
}

// trialStep returns the m-th step of the default schedule βᵐs.
func trialStep(p Params, m int) float64 {
	return math.Pow(p.Contraction, float64(m)) * p.Scale
}
