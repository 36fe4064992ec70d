// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config loads the lsearch tool configuration from a file, the
// environment and command line flags.
package config

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/curioloop/linesearch/linesearch"
	"github.com/curioloop/linesearch/numdiff"
)

// EnvPrefix prefixes the environment variables read by Load, e.g. LSEARCH_METHOD.
const EnvPrefix = "LSEARCH"

// Search methods.
const (
	MethodArmijo = "armijo"
	MethodWolfe  = "wolfe"
)

// Output formats.
const (
	OutputText = "text"
	OutputYAML = "yaml"
)

// Search mirrors the tunable fields of linesearch.Params and linesearch.Wolfe.
type Search struct {
	Scale       float64 `mapstructure:"scale" yaml:"scale"`
	MinStep     float64 `mapstructure:"min_step" yaml:"min_step"`
	Contraction float64 `mapstructure:"contraction" yaml:"contraction"`
	Decrease    float64 `mapstructure:"decrease" yaml:"decrease"`
	Curvature   float64 `mapstructure:"curvature" yaml:"curvature"`
	MaxIter     int     `mapstructure:"max_iter" yaml:"max_iter"`
}

// GradCheck configures the finite difference gradient check.
type GradCheck struct {
	Method string  `mapstructure:"method" yaml:"method"`
	Step   float64 `mapstructure:"step" yaml:"step"`
	Tol    float64 `mapstructure:"tol" yaml:"tol"`
}

// Config is the complete tool configuration.
type Config struct {
	Method    string    `mapstructure:"method" yaml:"method"`
	Function  string    `mapstructure:"function" yaml:"function"`
	Dim       int       `mapstructure:"dim" yaml:"dim"`
	Start     []float64 `mapstructure:"start" yaml:"start,omitempty"`
	Output    string    `mapstructure:"output" yaml:"output"`
	Search    Search    `mapstructure:"search" yaml:"search"`
	GradCheck GradCheck `mapstructure:"gradcheck" yaml:"gradcheck"`
}

// SetDefaults registers the default configuration on v.
// The search defaults are taken from a fresh linesearch.Wolfe.
func SetDefaults(v *viper.Viper) {
	w := linesearch.NewWolfe(nil, nil)
	v.SetDefault("method", MethodWolfe)
	v.SetDefault("function", "rosenbrock")
	v.SetDefault("dim", 2)
	v.SetDefault("output", OutputText)
	v.SetDefault("search.scale", w.Scale)
	v.SetDefault("search.min_step", w.MinStep)
	v.SetDefault("search.contraction", w.Contraction)
	v.SetDefault("search.decrease", w.Decrease)
	v.SetDefault("search.curvature", w.Curvature)
	v.SetDefault("search.max_iter", w.MaxIter)
	v.SetDefault("gradcheck.method", "central")
	v.SetDefault("gradcheck.tol", 1e-4)
}

// flagKeys maps command line flags to configuration keys.
var flagKeys = map[string]string{
	"method":      "method",
	"func":        "function",
	"dim":         "dim",
	"start":       "start",
	"output":      "output",
	"scale":       "search.scale",
	"min-step":    "search.min_step",
	"contraction": "search.contraction",
	"decrease":    "search.decrease",
	"curvature":   "search.curvature",
	"max-iter":    "search.max_iter",
	"diff":        "gradcheck.method",
	"diff-step":   "gradcheck.step",
	"tol":         "gradcheck.tol",
}

// Load reads the configuration file at path (if not empty), then the
// environment, then the flags of fs that were set explicitly.
func Load(path string, fs *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	SetDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	if fs != nil {
		for name, key := range flagKeys {
			if f := fs.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("bind flag %s: %w", name, err)
				}
			}
		}
	}

	cfg := new(Config)
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration for values the tool cannot run with.
// The step scale is left to the search itself, which rejects it per call.
func (c *Config) Validate() (err error) {
	switch {
	case c.Method != MethodArmijo && c.Method != MethodWolfe:
		err = fmt.Errorf("unknown search method %q", c.Method)
	case c.Output != OutputText && c.Output != OutputYAML:
		err = fmt.Errorf("unknown output format %q", c.Output)
	case c.Dim < 0:
		err = errors.New("dimension must not less than 0")
	case len(c.Start) > 0 && c.Dim > 0 && len(c.Start) != c.Dim:
		err = fmt.Errorf("start point has %d elements, dimension is %d", len(c.Start), c.Dim)
	case c.Search.MaxIter < 0:
		err = errors.New("max iteration must not less than 0")
	case !(c.Search.Contraction > 0 && c.Search.Contraction < 1):
		err = errors.New("contraction must be in (0,1)")
	case c.GradCheck.Tol < 0 || math.IsNaN(c.GradCheck.Tol):
		err = errors.New("gradient tolerance must not less than 0")
	}
	if err == nil {
		_, err = c.DiffMethod()
	}
	return
}

// DiffMethod returns the finite difference method named by GradCheck.Method.
func (c *Config) DiffMethod() (numdiff.Method, error) {
	switch strings.ToLower(c.GradCheck.Method) {
	case "forward":
		return numdiff.Forward, nil
	case "central":
		return numdiff.Central, nil
	}
	return 0, fmt.Errorf("unknown difference method %q", c.GradCheck.Method)
}

// Apply copies the search configuration onto p.
func (s Search) Apply(p *linesearch.Params) {
	p.Scale = s.Scale
	p.MinStep = s.MinStep
	p.Contraction = s.Contraction
	p.Decrease = s.Decrease
	p.MaxIter = s.MaxIter
}
