// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/floats"

	"github.com/curioloop/linesearch/internal/config"
	"github.com/curioloop/linesearch/linesearch"
)

type searchReport struct {
	Method    string    `yaml:"method"`
	Function  string    `yaml:"function"`
	Start     []float64 `yaml:"start"`
	Value     float64   `yaml:"value"`
	Slope     float64   `yaml:"slope"`
	Step      float64   `yaml:"step"`
	Accepted  bool      `yaml:"accepted"`
	NextValue float64   `yaml:"next_value,omitempty"`
	Decrease  float64   `yaml:"decrease,omitempty"`
	Values    int64     `yaml:"value_evaluations"`
	Grads     int64     `yaml:"gradient_evaluations"`
}

func newSearchCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search",
		Short: "Search along the negative gradient from a start point",
		Args:  cobra.NoArgs,
		RunE:  a.runSearch,
	}
	addProblemFlags(cmd)

	f := cmd.Flags()
	f.String("method", config.MethodWolfe, "Line search (armijo, wolfe)")
	f.Float64("scale", 1, "Initial step scale (> 0)")
	f.Float64("min-step", 0.1, "Stop once a rejected step is at or below this")
	f.Float64("contraction", 0.5, "Step contraction factor in (0,1)")
	f.Float64("decrease", 1e-5, "Sufficient decrease constant c1")
	f.Float64("curvature", 0.9, "Curvature constant c2 (wolfe only)")
	f.Int("max-iter", 10000, "Maximum number of trial steps")
	return cmd
}

// newSearcher builds the configured search on top of the given evaluators.
func (a *app) newSearcher(cfg *config.Config, value linesearch.ValueFunc, grad linesearch.GradFunc) linesearch.Searcher {
	if cfg.Method == config.MethodArmijo {
		s := linesearch.NewArmijo(value)
		cfg.Search.Apply(&s.Params)
		s.Logger = a.log
		return s
	}
	s := linesearch.NewWolfe(value, grad)
	cfg.Search.Apply(&s.Params)
	s.Curvature = cfg.Search.Curvature
	s.Logger = a.log
	return s
}

func (a *app) runSearch(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(a.cfgFile, cmd.Flags())
	if err != nil {
		return err
	}
	obj, start, err := objective(cfg)
	if err != nil {
		return err
	}

	f0, err := obj.Value(start)
	if err != nil {
		return fmt.Errorf("evaluate %s at start: %w", obj.Name, err)
	}
	g0, err := obj.Grad(start)
	if err != nil {
		return fmt.Errorf("evaluate %s gradient at start: %w", obj.Name, err)
	}
	dir := make([]float64, len(g0))
	floats.ScaleTo(dir, -1, g0)

	a.counter.Reset()
	s := a.newSearcher(cfg, a.counter.Value(obj.Value), a.counter.Grad(obj.Grad))
	alpha, err := s.Search(f0, start, g0, dir)
	if err != nil {
		return err
	}

	rep := searchReport{
		Method:   cfg.Method,
		Function: obj.Name,
		Start:    start,
		Value:    f0,
		Slope:    floats.Dot(g0, dir),
		Step:     alpha,
		Accepted: alpha > 0,
		Values:   a.counter.Values(),
		Grads:    a.counter.Grads(),
	}
	if rep.Accepted {
		x := make([]float64, len(start))
		floats.AddScaledTo(x, start, alpha, dir)
		if rep.NextValue, err = obj.Value(x); err != nil {
			return err
		}
		rep.Decrease = f0 - rep.NextValue
	}
	a.log.V(linesearch.LogResult).Info("search finished", "method", cfg.Method, "step", alpha)

	return writeReport(cmd.OutOrStdout(), cfg.Output, rep, func(p printer) {
		p("method:     %s\n", rep.Method)
		p("function:   %s (dim %d)\n", rep.Function, len(rep.Start))
		p("f(x0):      %g\n", rep.Value)
		p("g0·d:       %g\n", rep.Slope)
		if rep.Accepted {
			p("step:       %g\n", rep.Step)
			p("f(x1):      %g (decrease %g)\n", rep.NextValue, rep.Decrease)
		} else {
			p("step:       0 (no acceptable step)\n")
		}
		p("evaluations: %d value, %d gradient\n", rep.Values, rep.Grads)
	})
}
