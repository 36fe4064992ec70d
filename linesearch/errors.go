// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package linesearch

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidArgument signifies a search was called with an unusable
	// configuration, such as a non-positive step scale or a missing evaluator.
	ErrInvalidArgument = errors.New("linesearch: invalid argument")

	// ErrDimensionMismatch signifies that the start point, gradient, direction
	// or an evaluated gradient do not have the same length.
	ErrDimensionMismatch = errors.New("linesearch: dimension mismatch")
)

// Evaluator operations reported by EvalError.
const (
	OpValue    = "value"
	OpGradient = "gradient"
)

// EvalError is returned when a caller supplied evaluator fails.
type EvalError struct {
	Op   string  // OpValue or OpGradient
	Step float64 // Step length of the trial point
	Err  error
}

func (e *EvalError) Error() string {
	return fmt.Sprintf("linesearch: %s evaluation failed at step %g: %v", e.Op, e.Step, e.Err)
}

func (e *EvalError) Unwrap() error {
	return e.Err
}
