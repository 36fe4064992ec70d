// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package linesearch

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// Wolfe is a backtracking search that enforces both
//   - sufficient decrease condition: f₀ - f(x₀ + λd) ≥ -c₁ λ g₀ᵀd
//   - curvature condition: ∇f(x₀ + λd)ᵀd ≥ c₂ g₀ᵀd
//
// The curvature condition is the one-sided form, not the strong Wolfe
// form with absolute values. The gradient is only evaluated at trial
// points that already pass the sufficient decrease condition.
type Wolfe struct {
	Params
	// Curvature is the constant c₂ of the curvature condition.
	Curvature float64
	Value     ValueFunc
	Grad      GradFunc
}

// NewWolfe returns a Wolfe search bound to value and grad with the default
// configuration: Scale=1, MinStep=0.1, Contraction=0.5, Decrease=1e-5,
// Curvature=0.9 and MaxIter=10000.
func NewWolfe(value ValueFunc, grad GradFunc) *Wolfe {
	return &Wolfe{
		Params:    defaultParams(),
		Curvature: defaultCurvature,
		Value:     value,
		Grad:      grad,
	}
}

// Search returns the first step along dir that satisfies both Wolfe
// conditions, or 0 if none was found.
func (w *Wolfe) Search(f0 float64, x0, g0, dir []float64) (float64, error) {

	switch {
	case w.Value == nil:
		return 0, fmt.Errorf("%w: value function is required", ErrInvalidArgument)
	case w.Grad == nil:
		return 0, fmt.Errorf("%w: gradient function is required", ErrInvalidArgument)
	}
	if err := w.check(x0, g0, dir); err != nil {
		return 0, err
	}

	log := w.Logger.WithName("wolfe")
	gd := floats.Dot(g0, dir)

	return w.backtrack(log, x0, dir, func(alpha float64, x []float64) (bool, error) {
		v, err := w.Value(x)
		if err != nil {
			return false, &EvalError{Op: OpValue, Step: alpha, Err: err}
		}
		if !ArmijoConditionMet(v, f0, gd, alpha, w.Decrease) {
			log.V(LogTrial).Info("insufficient decrease", "step", alpha, "value", v, "target", f0+w.Decrease*alpha*gd)
			return false, nil
		}

		g, err := w.Grad(x)
		if err != nil {
			return false, &EvalError{Op: OpGradient, Step: alpha, Err: err}
		}
		if len(g) != len(x) {
			return false, fmt.Errorf("%w: gradient at step %g has %d elements, point has %d",
				ErrDimensionMismatch, alpha, len(g), len(x))
		}

		gdx := floats.Dot(g, dir)
		log.V(LogTrial).Info("trial", "step", alpha, "value", v, "slope", gdx, "target", w.Curvature*gd)
		return CurvatureConditionMet(gdx, gd, w.Curvature), nil
	})
}
