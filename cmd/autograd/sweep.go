package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/born-ml/autograd/autodiff"
	"github.com/born-ml/autograd/backend/cpu"
	"github.com/born-ml/autograd/internal/benchfn"
	"github.com/born-ml/autograd/internal/parallel"
	"github.com/born-ml/autograd/tensor"
)

type sweepResult struct {
	Point []float64
	Value float64
	Grad  []float64
}

// linspace returns steps evenly spaced values from lo to hi inclusive.
func linspace(lo, hi float64, steps int) []float64 {
	if steps == 1 {
		return []float64{lo}
	}
	out := make([]float64, steps)
	for i := range out {
		out[i] = lo + (hi-lo)*float64(i)/float64(steps-1)
	}
	return out
}

// gradAt evaluates f and its gradient at point on a private Graph.
func gradAt(f benchfn.Func, point []float64) (sweepResult, error) {
	g := autodiff.NewGraph(cpu.New())
	xs := make([]*autodiff.Variable, len(point))
	for i, v := range point {
		x, err := g.NewVariable(tensor.FromScalar(v))
		if err != nil {
			return sweepResult{}, err
		}
		xs[i] = x
	}
	y, err := f.Eval(xs...)
	if err != nil {
		return sweepResult{}, err
	}
	if err := y.Backward(); err != nil {
		return sweepResult{}, err
	}

	res := sweepResult{Point: point, Value: y.Item(), Grad: make([]float64, len(xs))}
	for i, x := range xs {
		res.Grad[i] = x.Grad().Item()
	}
	return res, nil
}

// sweep evaluates f along one axis of base, one Graph per point.
func sweep(f benchfn.Func, base []float64, axis int, values []float64, cfg parallel.Config) ([]sweepResult, error) {
	if axis < 0 || axis >= len(base) {
		return nil, fmt.Errorf("sweep: axis %d out of range for %d inputs", axis, len(base))
	}
	return parallel.Map(len(values), func(i int) (sweepResult, error) {
		point := append([]float64(nil), base...)
		point[axis] = values[i]
		return gradAt(f, point)
	}, cfg)
}

func newSweepCmd() *cobra.Command {
	var (
		axis     int
		from, to float64
		steps    int
		workers  int
	)
	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Evaluate value and gradient along one input axis, in parallel",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := resolveRunConfig(cmd)
			if err != nil {
				return err
			}
			if steps < 1 {
				return fmt.Errorf("--steps must be positive, got %d", steps)
			}
			f, err := benchfn.Lookup(cfg.Function)
			if err != nil {
				return err
			}

			pcfg := parallel.DefaultConfig()
			if cmd.Flags().Changed("workers") {
				pcfg.NumWorkers = workers
				pcfg.Enabled = workers > 1
			}
			results, err := sweep(f, cfg.Point, axis, linspace(from, to, steps), pcfg)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, r := range results {
				fmt.Fprintf(out, "%s %.8g %s\n", formatPoint(r.Point), r.Value, formatPoint(r.Grad))
			}
			return nil
		},
	}
	addFuncFlags(cmd)
	cmd.Flags().IntVar(&axis, "axis", 0, "input index to vary")
	cmd.Flags().Float64Var(&from, "from", -2, "first value")
	cmd.Flags().Float64Var(&to, "to", 2, "last value")
	cmd.Flags().IntVar(&steps, "steps", 9, "number of points")
	cmd.Flags().IntVar(&workers, "workers", 0, "worker goroutines (default: one per CPU)")
	return cmd
}
