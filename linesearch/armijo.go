// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package linesearch

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// Armijo is a backtracking search that only enforces the sufficient
// decrease condition:
//
//	f₀ - f(x₀ + λd) ≥ -c₁ λ g₀ᵀd
//
// Only the objective value is evaluated at trial points, which makes it
// a good fit when gradients are expensive.
type Armijo struct {
	Params
	Value ValueFunc
}

// NewArmijo returns an Armijo search bound to value with the default
// configuration: Scale=1, MinStep=0.1, Contraction=0.5, Decrease=1e-5
// and MaxIter=10000.
func NewArmijo(value ValueFunc) *Armijo {
	return &Armijo{Params: defaultParams(), Value: value}
}

// Search returns the first step along dir that satisfies the sufficient
// decrease condition, or 0 if none was found.
func (a *Armijo) Search(f0 float64, x0, g0, dir []float64) (float64, error) {

	if a.Value == nil {
		return 0, fmt.Errorf("%w: value function is required", ErrInvalidArgument)
	}
	if err := a.check(x0, g0, dir); err != nil {
		return 0, err
	}

	log := a.Logger.WithName("armijo")
	gd := floats.Dot(g0, dir)

	return a.backtrack(log, x0, dir, func(alpha float64, x []float64) (bool, error) {
		v, err := a.Value(x)
		if err != nil {
			return false, &EvalError{Op: OpValue, Step: alpha, Err: err}
		}
		log.V(LogTrial).Info("trial", "step", alpha, "value", v, "target", f0+a.Decrease*alpha*gd)
		return ArmijoConditionMet(v, f0, gd, alpha, a.Decrease), nil
	})
}
