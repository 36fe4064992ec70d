// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/curioloop/linesearch/evalcount"
	"github.com/curioloop/linesearch/internal/bench"
	"github.com/curioloop/linesearch/internal/config"
)

// app carries the state shared by the subcommands of one invocation.
type app struct {
	cfgFile   string
	logLevel  string
	verbosity int
	metrics   bool

	zap     *zap.Logger
	log     logr.Logger
	counter evalcount.Counter
}

func newRootCmd() *cobra.Command {
	a := &app{log: logr.Discard()}

	root := &cobra.Command{
		Use:   "lsearch",
		Short: "Backtracking line searches on benchmark objectives",
		Long: `lsearch evaluates an objective at a start point and searches along the
negative gradient with the Armijo or Wolfe backtracking line search.`,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
		PersistentPostRun: a.teardown,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.cfgFile, "config", "", "Configuration file (yaml, json or toml)")
	pf.StringVar(&a.logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	pf.IntVarP(&a.verbosity, "verbose", "v", 0, "Search log verbosity (1: results, 2: every trial)")
	pf.BoolVar(&a.metrics, "metrics", false, "Log evaluation counters on exit")

	root.AddCommand(newSearchCmd(a), newGradCheckCmd(a))
	return root
}

func (a *app) setup(cmd *cobra.Command, _ []string) error {
	level, err := zapcore.ParseLevel(a.logLevel)
	if err != nil {
		return err
	}
	if v := zapcore.Level(-a.verbosity); a.verbosity > 0 && v < level {
		level = v
	}

	zc := zap.NewDevelopmentConfig()
	zc.Level = zap.NewAtomicLevelAt(level)
	zc.OutputPaths = []string{"stderr"}
	if a.zap, err = zc.Build(); err != nil {
		return fmt.Errorf("build logger: %w", err)
	}
	a.log = zapr.NewLogger(a.zap).WithName(cmd.Name())
	return nil
}

func (a *app) teardown(*cobra.Command, []string) {
	if a.metrics {
		a.dumpMetrics()
	}
	if a.zap != nil {
		_ = a.zap.Sync()
	}
}

// dumpMetrics gathers the evaluation counters through a Prometheus registry.
func (a *app) dumpMetrics() {
	reg := prometheus.NewRegistry()
	if err := reg.Register(evalcount.NewCollector("lsearch", &a.counter)); err != nil {
		a.log.Error(err, "register collector")
		return
	}
	families, err := reg.Gather()
	if err != nil {
		a.log.Error(err, "gather metrics")
		return
	}
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			a.log.Info("metric", "name", mf.GetName(), "value", m.GetCounter().GetValue())
		}
	}
}

// objective resolves the configured benchmark objective and start point.
func objective(cfg *config.Config) (bench.Objective, []float64, error) {
	dim := cfg.Dim
	if len(cfg.Start) > 0 {
		dim = len(cfg.Start)
	}
	obj, err := bench.Lookup(cfg.Function, dim)
	if err != nil {
		return bench.Objective{}, nil, err
	}
	start := cfg.Start
	if len(start) == 0 {
		start = obj.Start
	}
	if len(start) != obj.Dim {
		return bench.Objective{}, nil, fmt.Errorf("start point has %d elements, %s has dimension %d", len(start), obj.Name, obj.Dim)
	}
	return obj, start, nil
}

// addProblemFlags registers the flags selecting the objective and output.
func addProblemFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.String("func", "rosenbrock", fmt.Sprintf("Objective %v", bench.Names()))
	f.Int("dim", 2, "Objective dimension")
	f.StringSlice("start", nil, "Start point, comma separated (default: the objective's standard start)")
	f.StringP("output", "o", config.OutputText, "Output format (text, yaml)")
}
