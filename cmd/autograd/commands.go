package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/born-ml/autograd/autodiff"
	"github.com/born-ml/autograd/backend/cpu"
	"github.com/born-ml/autograd/internal/benchfn"
	"github.com/born-ml/autograd/tensor"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "autograd",
		Short: "Reverse-mode automatic differentiation playground",
		Long: `autograd evaluates benchmark functions on a define-by-run
computation graph and reports their gradients.`,
		SilenceUsage: true,
	}
	root.PersistentFlags().String("config", "", "YAML run file")
	root.PersistentFlags().String("log-level", "warn", "log level (debug, info, warn, error)")

	root.AddCommand(newVersionCmd(), newGradCmd(), newDotCmd(), newNewtonCmd(), newDescendCmd(), newSweepCmd())
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "autograd %s\n", version)
		},
	}
}

func addFuncFlags(cmd *cobra.Command) {
	cmd.Flags().String("func", "goldstein", fmt.Sprintf("function to evaluate %v", benchfn.Names()))
	cmd.Flags().Float64Slice("point", nil, "input point, e.g. 1,1 (defaults to all ones)")
}

// build evaluates the configured function on a fresh graph and returns the
// graph, its inputs and the output.
func build(cmd *cobra.Command, cfg RunConfig) (*autodiff.Graph, benchfn.Func, []*autodiff.Variable, *autodiff.Variable, error) {
	logger, err := newLogger(cfg.LogLevel, cmd.ErrOrStderr())
	if err != nil {
		return nil, benchfn.Func{}, nil, nil, err
	}
	f, err := benchfn.Lookup(cfg.Function)
	if err != nil {
		return nil, benchfn.Func{}, nil, nil, err
	}

	g := autodiff.NewGraph(cpu.New(), autodiff.WithLogger(logger))
	xs := make([]*autodiff.Variable, len(cfg.Point))
	for i, v := range cfg.Point {
		x, err := g.NewVariable(tensor.FromScalar(v), autodiff.WithName(fmt.Sprintf("x%d", i)))
		if err != nil {
			return nil, f, nil, nil, err
		}
		xs[i] = x
	}
	y, err := f.Eval(xs...)
	if err != nil {
		return nil, f, nil, nil, err
	}
	y.SetName("y")
	logger.Info("evaluated", slog.String("func", f.Name), slog.Int("ops", g.NumOps()))
	return g, f, xs, y, nil
}

func newGradCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "grad",
		Short: "Print a function's value and gradient at a point",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := resolveRunConfig(cmd)
			if err != nil {
				return err
			}
			g, f, xs, y, err := build(cmd, cfg)
			if err != nil {
				return err
			}

			var opts []autodiff.BackwardOption
			if cfg.RetainGrad {
				opts = append(opts, autodiff.WithRetainGrad())
			}
			if cfg.CreateGraph {
				opts = append(opts, autodiff.WithCreateGraph())
			}
			if err := y.Backward(opts...); err != nil {
				return fmt.Errorf("backward: %w", err)
			}
			num, err := g.NumericalGrad(f.Eval, 1e-4, xs...)
			if err != nil {
				return fmt.Errorf("numerical grad: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s%v = %s\n", f.Name, cfg.Point, y.Data())
			for i, x := range xs {
				fmt.Fprintf(out, "d/d%s = %s (numerical %s)\n", x.Name(), x.Grad().Data(), num[i])
			}
			if cfg.RetainGrad {
				fmt.Fprintf(out, "d/dy = %s\n", y.Grad().Data())
			}
			return nil
		},
	}
	addFuncFlags(cmd)
	cmd.Flags().Bool("retain-grad", false, "keep gradients of intermediate values")
	cmd.Flags().Bool("create-graph", false, "record the backward pass")
	return cmd
}

func newDotCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dot",
		Short: "Print the computation graph in Graphviz DOT format",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := resolveRunConfig(cmd)
			if err != nil {
				return err
			}
			_, _, _, y, err := build(cmd, cfg)
			if err != nil {
				return err
			}
			dot, err := autodiff.DotGraph(y, cfg.Verbose)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), dot)
			return nil
		},
	}
	addFuncFlags(cmd)
	cmd.Flags().Bool("verbose", false, "label variables with shape and dtype")
	return cmd
}

func newNewtonCmd() *cobra.Command {
	var (
		x0    float64
		iters int
	)
	cmd := &cobra.Command{
		Use:   "newton",
		Short: "Minimise x⁴ - 2x² with Newton's method using second derivatives",
		RunE: func(cmd *cobra.Command, _ []string) error {
			level, _ := cmd.Flags().GetString("log-level")
			logger, err := newLogger(level, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			g := autodiff.NewGraph(cpu.New(), autodiff.WithLogger(logger))
			out := cmd.OutOrStdout()
			_, err = newton(g, x0, iters, func(i int, x float64) {
				fmt.Fprintf(out, "%d %.10g\n", i, x)
			})
			return err
		},
	}
	cmd.Flags().Float64Var(&x0, "x0", 2, "starting point")
	cmd.Flags().IntVar(&iters, "iters", 10, "number of iterations")
	return cmd
}
