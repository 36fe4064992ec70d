// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package linesearch

import (
	"fmt"
	"math"

	"github.com/go-logr/logr"
	"gonum.org/v1/gonum/floats"
)

// acceptFunc decides whether the trial point x = x₀ + λd is acceptable.
type acceptFunc func(alpha float64, x []float64) (bool, error)

// check validates the configuration and the dimensions of a search call.
func (p *Params) check(x0, g0, dir []float64) (err error) {
	switch {
	case !(p.Scale > 0):
		err = fmt.Errorf("%w: step scale %g must be > 0", ErrInvalidArgument, p.Scale)
	case len(g0) != len(x0):
		err = fmt.Errorf("%w: gradient has %d elements, point has %d", ErrDimensionMismatch, len(g0), len(x0))
	case len(dir) != len(x0):
		err = fmt.Errorf("%w: direction has %d elements, point has %d", ErrDimensionMismatch, len(dir), len(x0))
	}
	return
}

// backtrack walks the step sequence λₘ = βᵐs until accept returns true.
// The first trial always runs; later trials run only while the previous
// step is above MinStep and fewer than MaxIter trials have been made.
func (p *Params) backtrack(log logr.Logger, x0, dir []float64, accept acceptFunc) (float64, error) {
	n := len(x0)
	for m := 0; m < p.MaxIter; m++ {
		alpha := math.Pow(p.Contraction, float64(m)) * p.Scale

		x := make([]float64, n)
		floats.AddScaledTo(x, x0, alpha, dir) // x = x₀ + λd

		ok, err := accept(alpha, x)
		if err != nil {
			return 0, err
		}
		if ok {
			log.V(LogResult).Info("step accepted", "step", alpha, "trials", m+1)
			return alpha, nil
		}
		if alpha <= p.MinStep {
			log.V(LogResult).Info("step fell below minimum", "step", alpha, "minStep", p.MinStep, "trials", m+1)
			return 0, nil
		}
	}
	log.V(LogResult).Info("iteration limit reached", "maxIter", p.MaxIter)
	return 0, nil
}
