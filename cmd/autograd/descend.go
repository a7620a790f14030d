package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/born-ml/autograd/autodiff"
	"github.com/born-ml/autograd/backend/cpu"
	"github.com/born-ml/autograd/internal/benchfn"
	"github.com/born-ml/autograd/optim"
	"github.com/born-ml/autograd/tensor"
)

// descentOptions selects the optimizer used by descend.
type descentOptions struct {
	optimizer string
	lr        float64
	momentum  float64
	iters     int
}

func newOptimizer(params []*autodiff.Variable, opts descentOptions) (optim.Optimizer, error) {
	switch opts.optimizer {
	case "sgd":
		return optim.NewSGD(params, optim.SGDConfig{LR: opts.lr, Momentum: opts.momentum}), nil
	case "adam":
		return optim.NewAdam(params, optim.AdamConfig{LR: opts.lr}), nil
	}
	return nil, fmt.Errorf("unknown optimizer %q (available: sgd, adam)", opts.optimizer)
}

// descend minimises f starting at point and returns the final point and
// value. The graph is reset after every step so memory stays flat.
func descend(g *autodiff.Graph, f benchfn.Func, point []float64, opts descentOptions, logger *slog.Logger) ([]float64, float64, error) {
	xs := make([]*autodiff.Variable, len(point))
	for i, v := range point {
		x, err := g.NewVariable(tensor.FromScalar(v), autodiff.WithName(fmt.Sprintf("x%d", i)))
		if err != nil {
			return nil, 0, err
		}
		xs[i] = x
	}
	opt, err := newOptimizer(xs, opts)
	if err != nil {
		return nil, 0, err
	}

	for i := 0; i < opts.iters; i++ {
		y, err := f.Eval(xs...)
		if err != nil {
			return nil, 0, err
		}
		opt.ZeroGrad()
		if err := y.Backward(); err != nil {
			return nil, 0, fmt.Errorf("iteration %d: %w", i, err)
		}
		if err := opt.Step(); err != nil {
			return nil, 0, fmt.Errorf("iteration %d: %w", i, err)
		}
		g.Reset()

		if (i+1)%100 == 0 {
			logger.Info("descend", slog.Int("iter", i+1), slog.Float64("loss", y.Item()))
		}
	}

	final := make([]float64, len(xs))
	for i, x := range xs {
		final[i] = x.Item()
	}
	var y *autodiff.Variable
	if err := g.WithoutGrad(func() error {
		var err error
		y, err = f.Eval(xs...)
		return err
	}); err != nil {
		return nil, 0, err
	}
	return final, y.Item(), nil
}

func newDescendCmd() *cobra.Command {
	opts := descentOptions{}
	cmd := &cobra.Command{
		Use:   "descend",
		Short: "Minimise a function with a first-order optimizer",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := resolveRunConfig(cmd)
			if err != nil {
				return err
			}
			logger, err := newLogger(cfg.LogLevel, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			f, err := benchfn.Lookup(cfg.Function)
			if err != nil {
				return err
			}

			g := autodiff.NewGraph(cpu.New(), autodiff.WithLogger(logger))
			point, value, err := descend(g, f, cfg.Point, opts, logger)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s%v = %.8g\n", f.Name, formatPoint(point), value)
			return nil
		},
	}
	addFuncFlags(cmd)
	cmd.Flags().StringVar(&opts.optimizer, "optimizer", "sgd", "optimizer (sgd, adam)")
	cmd.Flags().Float64Var(&opts.lr, "lr", 0.001, "learning rate")
	cmd.Flags().Float64Var(&opts.momentum, "momentum", 0, "SGD momentum")
	cmd.Flags().IntVar(&opts.iters, "iters", 1000, "number of iterations")
	return cmd
}

func formatPoint(point []float64) string {
	out := "["
	for i, v := range point {
		if i > 0 {
			out += " "
		}
		out += fmt.Sprintf("%.6g", v)
	}
	return out + "]"
}
