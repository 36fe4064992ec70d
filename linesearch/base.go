// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package linesearch implements backtracking step-length searches used
// inside gradient based optimizers.
//
// Given a start point x₀ with value f₀ and gradient g₀, and a descent
// direction d, a search picks λ from the geometric sequence
//
//	λₘ = βᵐ s   (m = 0, 1, 2, …)
//
// and returns the first λₘ that the search accepts:
//
//   - Armijo accepts when f₀ - f(x₀ + λd) ≥ -c₁ λ g₀ᵀd
//   - Wolfe additionally requires ∇f(x₀ + λd)ᵀd ≥ c₂ g₀ᵀd
//
// A returned step of 0 means no acceptable step was found within the
// iteration limit or before λ fell to the minimum step.
package linesearch

import (
	"github.com/go-logr/logr"
)

const (
	defaultScale       = 1.0
	defaultMinStep     = 0.1
	defaultContraction = 0.5
	defaultDecrease    = 1e-5
	defaultCurvature   = 0.9
	defaultMaxIter     = 10000
)

// Verbosity levels passed to Params.Logger.V.
const (
	// LogResult logs one line when a search accepts a step or gives up.
	LogResult = 1
	// LogTrial logs every trial step including the value and its target.
	LogTrial = 2
)

// ValueFunc evaluates the objective at x.
type ValueFunc func(x []float64) (float64, error)

// GradFunc evaluates the gradient at x.
// The returned slice must have the same length as x.
type GradFunc func(x []float64) ([]float64, error)

// Searcher finds a step length along dir starting from x0,
// where f0 and g0 are the objective value and gradient at x0.
type Searcher interface {
	Search(f0 float64, x0, g0, dir []float64) (float64, error)
}

// Params holds the configuration shared by the backtracking searches.
// Fields may be changed between calls to Search but not during one.
type Params struct {
	// Scale is the initial step s. It must be positive.
	Scale float64
	// MinStep stops the search once a rejected step is at or below it.
	MinStep float64
	// Contraction is the factor β ∈ (0,1) applied to the step after each rejection.
	Contraction float64
	// Decrease is the constant c₁ of the sufficient decrease condition.
	Decrease float64
	// MaxIter caps the number of trial steps.
	MaxIter int
	// Logger receives diagnostics at LogResult and LogTrial verbosity.
	Logger logr.Logger
}

func defaultParams() Params {
	return Params{
		Scale:       defaultScale,
		MinStep:     defaultMinStep,
		Contraction: defaultContraction,
		Decrease:    defaultDecrease,
		MaxIter:     defaultMaxIter,
		Logger:      logr.Discard(),
	}
}

// ArmijoConditionMet reports whether the value v at step alpha satisfies
// the sufficient decrease condition f₀ - v ≥ -c₁ λ g₀ᵀd, where gd is g₀ᵀd.
func ArmijoConditionMet(v, f0, gd, alpha, decrease float64) bool {
	return f0-v >= -decrease*alpha*gd
}

// CurvatureConditionMet reports whether the directional derivative gdx at
// the trial point satisfies ∇f(x)ᵀd ≥ c₂ g₀ᵀd, where gd is g₀ᵀd.
func CurvatureConditionMet(gdx, gd, curvature float64) bool {
	return gdx >= curvature*gd
}

var (
	_ Searcher = (*Armijo)(nil)
	_ Searcher = (*Wolfe)(nil)
)
