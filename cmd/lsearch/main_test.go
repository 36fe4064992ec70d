// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/curioloop/linesearch/linesearch"
	"github.com/curioloop/linesearch/numdiff"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&bytes.Buffer{})
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func searchYAML(t *testing.T, args ...string) searchReport {
	t.Helper()
	out, err := execute(t, append([]string{"search", "-o", "yaml"}, args...)...)
	require.NoError(t, err)
	var rep searchReport
	require.NoError(t, yaml.Unmarshal([]byte(out), &rep))
	return rep
}

func TestSearchQuadratic(t *testing.T) {
	// f = Σxᵢ² from (1,1,1): the unit step lands on f = 3 and is rejected,
	// the half step lands on the minimizer.
	rep := searchYAML(t, "--func", "quadratic", "--dim", "3", "--method", "armijo")
	assert.Equal(t, "armijo", rep.Method)
	assert.Equal(t, 3.0, rep.Value)
	assert.Equal(t, -12.0, rep.Slope)
	assert.Equal(t, 0.5, rep.Step)
	assert.True(t, rep.Accepted)
	assert.Equal(t, 3.0, rep.Decrease)
	assert.EqualValues(t, 2, rep.Values)
	assert.Zero(t, rep.Grads)

	rep = searchYAML(t, "--func", "quadratic", "--dim", "3", "--method", "wolfe")
	assert.Equal(t, 0.5, rep.Step)
	assert.EqualValues(t, 2, rep.Values)
	assert.EqualValues(t, 1, rep.Grads)
}

func TestSearchExhausted(t *testing.T) {
	// The steepest descent direction at (-1.2, 1) is far too long for steps ≥ 1/16.
	rep := searchYAML(t, "--func", "rosenbrock")
	assert.False(t, rep.Accepted)
	assert.Zero(t, rep.Step)
	assert.EqualValues(t, 5, rep.Values)
	assert.Zero(t, rep.Grads)

	out, err := execute(t, "search", "--func", "rosenbrock", "--metrics", "-v", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "no acceptable step")
}

func TestSearchConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lsearch.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
method: armijo
function: rosenbrock
search:
  min_step: 0
  max_iter: 100
`), 0o600))

	rep := searchYAML(t, "--config", path)
	assert.Equal(t, "armijo", rep.Method)
	require.True(t, rep.Accepted)
	assert.Greater(t, rep.Decrease, 0.0)
	assert.Less(t, rep.Step, 0.0625)
}

func TestSearchErrors(t *testing.T) {
	_, err := execute(t, "search", "--func", "himmelblau")
	assert.Error(t, err)

	_, err = execute(t, "search", "--scale", "0")
	assert.ErrorIs(t, err, linesearch.ErrInvalidArgument)

	_, err = execute(t, "search", "--func", "beale", "--start", "1,2,3", "--dim", "3")
	assert.Error(t, err)

	_, err = execute(t, "search", "--log-level", "chatty")
	assert.Error(t, err)
}

func TestGradCheck(t *testing.T) {
	out, err := execute(t, "gradcheck", "--func", "generalized-rosenbrock", "--dim", "5", "-o", "yaml")
	require.NoError(t, err)

	var rep gradReport
	require.NoError(t, yaml.Unmarshal([]byte(out), &rep))
	assert.True(t, rep.OK)
	assert.Len(t, rep.Rows, 5)
	assert.LessOrEqual(t, rep.Error, rep.Tol)

	out, err = execute(t, "gradcheck", "--func", "beale", "--diff", "forward")
	require.NoError(t, err)
	assert.Contains(t, out, "Analytic")

	// A step this large cannot resolve the curvature of Rosenbrock.
	_, err = execute(t, "gradcheck", "--func", "rosenbrock", "--diff", "forward", "--diff-step", "0.5")
	assert.ErrorIs(t, err, numdiff.ErrGradMismatch)
}
