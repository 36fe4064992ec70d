// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package evalcount

import (
	"strings"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/curioloop/linesearch/linesearch"
)

func square(x []float64) (float64, error) {
	return x[0] * x[0], nil
}

func squareGrad(x []float64) ([]float64, error) {
	return []float64{2 * x[0]}, nil
}

func TestCounterWrapsSearch(t *testing.T) {
	var c Counter
	w := linesearch.NewWolfe(c.Value(square), c.Grad(squareGrad))

	// Steps 1 and ½ overshoot, ¼ is accepted.
	alpha, err := w.Search(4, []float64{2}, []float64{4}, []float64{-10})
	require.NoError(t, err)
	assert.Equal(t, 0.25, alpha)
	assert.EqualValues(t, 3, c.Values())
	assert.EqualValues(t, 1, c.Grads())
	assert.EqualValues(t, 4, c.Total())

	c.Reset()
	assert.Zero(t, c.Total())
}

func TestCounterConcurrent(t *testing.T) {
	var c Counter
	f := c.Value(square)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				_, _ = f([]float64{1})
			}
		}()
	}
	wg.Wait()
	assert.EqualValues(t, 800, c.Values())
}

func TestCollector(t *testing.T) {
	var c Counter
	a := linesearch.NewArmijo(c.Value(square))
	_, err := a.Search(4, []float64{2}, []float64{4}, []float64{1})
	require.NoError(t, err)

	reg := prometheus.NewPedanticRegistry()
	require.NoError(t, reg.Register(NewCollector("linesearch", &c)))

	expected := `
# HELP linesearch_gradient_evaluations_total Number of gradient evaluations.
# TYPE linesearch_gradient_evaluations_total counter
linesearch_gradient_evaluations_total 0
# HELP linesearch_value_evaluations_total Number of objective value evaluations.
# TYPE linesearch_value_evaluations_total counter
linesearch_value_evaluations_total 5
`
	assert.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected)))
	assert.Equal(t, 2, testutil.CollectAndCount(NewCollector("linesearch", &c)))
}
