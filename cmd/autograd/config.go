package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/born-ml/autograd/internal/benchfn"
)

// RunConfig describes one evaluation. It can be loaded from a YAML file and
// every field can be overridden by the matching command-line flag.
type RunConfig struct {
	Function    string    `yaml:"function" validate:"required"`
	Point       []float64 `yaml:"point" validate:"required,min=1"`
	RetainGrad  bool      `yaml:"retain_grad"`
	CreateGraph bool      `yaml:"create_graph"`
	Verbose     bool      `yaml:"verbose"`
	LogLevel    string    `yaml:"log_level" validate:"omitempty,oneof=debug info warn error"`
}

var configValidate = validator.New()

func defaultRunConfig() RunConfig {
	return RunConfig{
		Function: "goldstein",
		Point:    []float64{1, 1},
		LogLevel: "warn",
	}
}

// loadRunConfig reads a YAML run file on top of the defaults. An empty path
// returns the defaults.
func loadRunConfig(path string) (RunConfig, error) {
	cfg := defaultRunConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks field constraints and that Point matches the function's
// arity.
func (c *RunConfig) Validate() error {
	c.LogLevel = strings.ToLower(c.LogLevel)
	if err := configValidate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	f, err := benchfn.Lookup(c.Function)
	if err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if len(c.Point) != f.Arity {
		return fmt.Errorf("invalid config: %s takes %d inputs, point has %d", f.Name, f.Arity, len(c.Point))
	}
	return nil
}

// resolveRunConfig loads the file named by --config and applies any flags
// the user set explicitly.
func resolveRunConfig(cmd *cobra.Command) (RunConfig, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := loadRunConfig(path)
	if err != nil {
		return cfg, err
	}

	flags := cmd.Flags()
	if flags.Changed("func") {
		cfg.Function, _ = flags.GetString("func")
	}
	if flags.Changed("point") {
		cfg.Point, _ = flags.GetFloat64Slice("point")
	} else if flags.Changed("func") && path == "" {
		if f, err := benchfn.Lookup(cfg.Function); err == nil {
			cfg.Point = ones(f.Arity)
		}
	}
	if flags.Changed("retain-grad") {
		cfg.RetainGrad, _ = flags.GetBool("retain-grad")
	}
	if flags.Changed("create-graph") {
		cfg.CreateGraph, _ = flags.GetBool("create-graph")
	}
	if flags.Changed("verbose") {
		cfg.Verbose, _ = flags.GetBool("verbose")
	}
	if flags.Changed("log-level") {
		cfg.LogLevel, _ = flags.GetString("log-level")
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func ones(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = 1
	}
	return out
}

// newLogger builds a text logger writing to w at the given level.
func newLogger(level string, w io.Writer) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl})), nil
}
