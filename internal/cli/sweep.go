package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/aalvaropc/recur/internal/domain"
	"github.com/aalvaropc/recur/internal/infra/logger"
	"github.com/aalvaropc/recur/internal/infra/promfile"
	"github.com/aalvaropc/recur/internal/usecase"
)

func sweepCmd() *cobra.Command {
	var workspace string
	var grid domain.SweepGrid
	var tolerance float64
	var concurrency int
	var maxFailures int
	var format string
	var metricsFile string

	c := &cobra.Command{
		Use:   "sweep",
		Short: "Check that both evaluators agree over a grid of parameters",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ws, err := loadOptionalWorkspace(workspace)
			if err != nil {
				return err
			}

			opts := []usecase.SweepOption{
				usecase.WithMaxFailures(maxFailures),
				usecase.WithSweepLogger(logger.L()),
			}
			if ws != nil {
				opts = append(opts,
					usecase.WithSweepTolerance(ws.cfg.Defaults.Tolerance),
					usecase.WithConcurrency(ws.cfg.Sweep.Concurrency),
				)
			}
			// Flags win over the workspace config.
			opts = append(opts,
				usecase.WithSweepTolerance(tolerance),
				usecase.WithConcurrency(concurrency),
			)

			res, err := usecase.NewSweep(opts...).Execute(cmd.Context(), grid)
			if err != nil {
				return err
			}

			if metricsFile != "" {
				if err := promfile.WriteSweep(metricsFile, res); err != nil {
					return err
				}
			}
			if err := printSweep(cmd.OutOrStdout(), res, format); err != nil {
				return err
			}
			if res.Disagreed > 0 {
				return fmt.Errorf("%d of %d cells disagree", res.Disagreed, res.Total)
			}
			return nil
		},
	}

	c.Flags().StringVarP(&workspace, "workspace", "w", "", "Workspace root (optional; autodetected if omitted)")
	c.Flags().IntSliceVar(&grid.N, "n", []int{0, 1, 10, 100}, "Step counts")
	c.Flags().Float64SliceVar(&grid.Y0, "y0", []float64{0, 1}, "Initial values")
	c.Flags().Float64SliceVar(&grid.X0, "x0", []float64{0, 1.0001}, "Constant terms")
	c.Flags().Float64SliceVar(&grid.Beta, "beta", []float64{0, 0.006}, "Linear coefficients")
	c.Flags().Float64SliceVar(&grid.Alpha, "alpha", []float64{0.1, 0.5, 0.9, 0.99, 1.1}, "Multipliers")
	c.Flags().Float64Var(&tolerance, "tolerance", 0, "Agreement tolerance (default: workspace, then 1e-6)")
	c.Flags().IntVar(&concurrency, "concurrency", 0, "Cells evaluated at once (default: workspace, then 4)")
	c.Flags().IntVar(&maxFailures, "max-failures", 20, "Disagreeing cells to report")
	c.Flags().StringVar(&format, "format", "pretty", "Output format: pretty|json")
	c.Flags().StringVar(&metricsFile, "metrics-file", "", "Also write the summary as Prometheus text to this file")

	return c
}

func printSweep(w io.Writer, res domain.SweepResult, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	case "pretty", "":
		fmt.Fprintf(w, "Cells:      %d\n", res.Total)
		fmt.Fprintf(w, "Agreed:     %d\n", res.Agreed)
		fmt.Fprintf(w, "Disagreed:  %d\n", res.Disagreed)
		fmt.Fprintf(w, "Singular:   %d\n", res.Singular)
		fmt.Fprintf(w, "Tolerance:  %g\n", res.Tolerance)
		if res.Worst != nil {
			fmt.Fprintf(w, "Worst:      rel diff %.3g at %s\n", res.Worst.RelDiff, res.Worst.Params)
		}
		for _, f := range res.Failures {
			msg := fmt.Sprintf("rel diff %.3g", f.RelDiff)
			if f.Error != "" {
				msg = f.Error
			}
			fmt.Fprintf(w, "  ✗ %s: %s\n", f.Params, msg)
		}
		fmt.Fprintln(w)
		if res.Disagreed > 0 {
			fmt.Fprintln(w, failStyle.Render("FAIL"))
		} else {
			fmt.Fprintln(w, passStyle.Render("AGREE"))
		}
		return nil
	default:
		return fmt.Errorf("unsupported format %q (expected pretty|json)", format)
	}
}
