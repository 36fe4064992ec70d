// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package evalcount counts objective and gradient evaluations made by a
// line search and exports the counts as Prometheus metrics.
package evalcount

import (
	"go.uber.org/atomic"

	"github.com/curioloop/linesearch/linesearch"
)

// Counter counts calls through the evaluators it wraps.
// It is safe for concurrent use.
type Counter struct {
	values atomic.Int64
	grads  atomic.Int64
}

// Value returns an evaluator that counts each call before delegating to f.
func (c *Counter) Value(f linesearch.ValueFunc) linesearch.ValueFunc {
	return func(x []float64) (float64, error) {
		c.values.Inc()
		return f(x)
	}
}

// Grad returns an evaluator that counts each call before delegating to g.
func (c *Counter) Grad(g linesearch.GradFunc) linesearch.GradFunc {
	return func(x []float64) ([]float64, error) {
		c.grads.Inc()
		return g(x)
	}
}

// Values returns the number of value evaluations.
func (c *Counter) Values() int64 { return c.values.Load() }

// Grads returns the number of gradient evaluations.
func (c *Counter) Grads() int64 { return c.grads.Load() }

// Total returns the number of value and gradient evaluations.
func (c *Counter) Total() int64 { return c.Values() + c.Grads() }

// Reset zeroes both counts.
func (c *Counter) Reset() {
	c.values.Store(0)
	c.grads.Store(0)
}
