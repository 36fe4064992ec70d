// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/curioloop/linesearch/internal/config"
	"github.com/curioloop/linesearch/numdiff"
)

type gradRow struct {
	Dim      int     `yaml:"dim"`
	Analytic float64 `yaml:"analytic"`
	Numeric  float64 `yaml:"numeric"`
}

type gradReport struct {
	Function string    `yaml:"function"`
	Method   string    `yaml:"method"`
	Error    float64   `yaml:"error"`
	Tol      float64   `yaml:"tol"`
	OK       bool      `yaml:"ok"`
	Rows     []gradRow `yaml:"rows"`
}

func newGradCheckCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gradcheck",
		Short: "Compare an objective's gradient with finite differences",
		Args:  cobra.NoArgs,
		RunE:  a.runGradCheck,
	}
	addProblemFlags(cmd)

	f := cmd.Flags()
	f.String("diff", "central", "Finite difference method (forward, central)")
	f.Float64("diff-step", 0, "Absolute difference step (default: chosen per coordinate)")
	f.Float64("tol", 1e-4, "Largest accepted distance between the gradients")
	return cmd
}

func (a *app) runGradCheck(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(a.cfgFile, cmd.Flags())
	if err != nil {
		return err
	}
	obj, start, err := objective(cfg)
	if err != nil {
		return err
	}
	method, err := cfg.DiffMethod()
	if err != nil {
		return err
	}

	a.counter.Reset()
	value := numdiff.Func(a.counter.Value(obj.Value))
	grad := numdiff.GradFunc(a.counter.Grad(obj.Grad))

	gs := numdiff.GradSpec{Method: method, AbsStep: cfg.GradCheck.Step, Tol: cfg.GradCheck.Tol}
	numeric := make([]float64, len(start))
	if err := gs.Gradient(value, start, numeric); err != nil {
		return err
	}
	analytic, err := grad(start)
	if err != nil {
		return err
	}

	dist, checkErr := gs.Check(value, grad, start)
	if checkErr != nil && !errors.Is(checkErr, numdiff.ErrGradMismatch) {
		return checkErr
	}

	rep := gradReport{
		Function: obj.Name,
		Method:   cfg.GradCheck.Method,
		Error:    dist,
		Tol:      cfg.GradCheck.Tol,
		OK:       checkErr == nil,
	}
	for i := range start {
		rep.Rows = append(rep.Rows, gradRow{Dim: i, Analytic: analytic[i], Numeric: numeric[i]})
	}

	err = writeReport(cmd.OutOrStdout(), cfg.Output, rep, func(p printer) {
		p("%10s%14s%14s\n", "Dim", "Analytic", "Numeric")
		for _, r := range rep.Rows {
			p("%10d%14.6g%14.6g\n", r.Dim, r.Analytic, r.Numeric)
		}
		p("error %g (tol %g)\n", rep.Error, rep.Tol)
	})
	if err != nil {
		return err
	}
	if checkErr != nil {
		return fmt.Errorf("%s: %w", obj.Name, checkErr)
	}
	return nil
}
