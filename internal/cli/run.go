package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/aalvaropc/recur/internal/domain"
	"github.com/aalvaropc/recur/internal/infra/logger"
	"github.com/aalvaropc/recur/internal/infra/observe"
	"github.com/aalvaropc/recur/internal/recurrence"
	"github.com/aalvaropc/recur/internal/usecase"
)

var (
	passStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42"))
	failStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))
	dimStyle  = lipgloss.NewStyle().Faint(true)
)

// paramFlags holds the --n/--y0/--x0/--beta/--alpha overrides. Only flags
// the user actually set are applied.
type paramFlags struct {
	n                   int
	y0, x0, beta, alpha float64
}

func (f *paramFlags) register(cmd *cobra.Command) {
	d := domain.DefaultParams()
	cmd.Flags().IntVar(&f.n, "n", d.N, "Number of steps")
	cmd.Flags().Float64Var(&f.y0, "y0", d.Y0, "Initial value")
	cmd.Flags().Float64Var(&f.x0, "x0", d.X0, "Constant additive term")
	cmd.Flags().Float64Var(&f.beta, "beta", d.Beta, "Coefficient of the i*beta term")
	cmd.Flags().Float64Var(&f.alpha, "alpha", d.Alpha, "Multiplier applied to the previous value")
}

func (f *paramFlags) apply(cmd *cobra.Command, p domain.Params) domain.Params {
	fs := cmd.Flags()
	if fs.Changed("n") {
		p.N = f.n
	}
	if fs.Changed("y0") {
		p.Y0 = f.y0
	}
	if fs.Changed("x0") {
		p.X0 = f.x0
	}
	if fs.Changed("beta") {
		p.Beta = f.beta
	}
	if fs.Changed("alpha") {
		p.Alpha = f.alpha
	}
	return p
}

func runCmd() *cobra.Command {
	var workspace string
	var scenario string
	var env string
	var tolerance float64
	var noSave bool
	var quiet bool
	var format string
	var pf paramFlags

	c := &cobra.Command{
		Use:   "run",
		Short: "Evaluate a scenario iteratively and in closed form and compare the results",
		Long: "Evaluate a scenario iteratively and in closed form and compare the results.\n\n" +
			"Without --scenario the built-in reference parameters are used; the\n" +
			"parameter flags override either source.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if format != "pretty" && format != "json" && format != "" {
				return fmt.Errorf("unsupported format %q (expected pretty|json)", format)
			}
			out := cmd.OutOrStdout()

			var trace recurrence.Observer
			if format != "json" && !quiet {
				trace = observe.NewWriter(out)
			}
			log := logger.L()
			obs := recurrence.Multi(trace, observe.NewSlog(log))

			var (
				run   domain.RunArtifact
				runID string
				err   error
			)

			if scenario == "" {
				ws, werr := loadOptionalWorkspace(workspace)
				if werr != nil {
					return werr
				}
				tol := tolerance
				if tol <= 0 && ws != nil {
					tol = ws.cfg.Defaults.Tolerance
				}
				run, err = runAdHoc(cmd, pf.apply(cmd, domain.DefaultParams()), tol, obs)
			} else {
				ws, werr := loadWorkspace(workspace)
				if werr != nil {
					return werr
				}
				run, runID, err = runScenario(cmd, ws, scenario, env, tolerance, noSave, &pf, obs)
			}
			if err != nil {
				log.Error("run.failed", "scenario", scenario, "err", err)
				return err
			}

			log.Info("run.completed",
				"scenario", run.ScenarioName,
				"env", run.EnvironmentName,
				"agree", run.Comparison.Agree,
				"abs_diff", run.Comparison.AbsDiff,
				"run_id", runID,
			)

			if err := printRun(out, run, runID, format); err != nil {
				return err
			}

			if run.Comparison.Failed() {
				return fmt.Errorf("comparison failed for %s", run.ScenarioName)
			}
			return nil
		},
	}

	c.Flags().StringVarP(&workspace, "workspace", "w", "", "Workspace root (optional; autodetected if omitted)")
	c.Flags().StringVarP(&scenario, "scenario", "s", "", "Scenario name or path (optional; reference parameters if omitted)")
	c.Flags().StringVarP(&env, "env", "e", "", "Environment name or path (optional; defaults to workspace default env)")
	c.Flags().Float64Var(&tolerance, "tolerance", 0, "Agreement tolerance (default: scenario, then workspace, then 1e-6)")
	c.Flags().BoolVar(&noSave, "no-save", false, "Do not save run artifact under runs/")
	c.Flags().BoolVarP(&quiet, "quiet", "q", false, "Do not print the trace")
	c.Flags().StringVar(&format, "format", "pretty", "Output format: pretty|json")
	pf.register(c)

	return c
}

func runAdHoc(cmd *cobra.Command, p domain.Params, tol float64, obs recurrence.Observer) (domain.RunArtifact, error) {
	uc := usecase.NewCompare(nil, nil, nil, usecase.WithObserver(obs))

	run := domain.RunArtifact{ScenarioName: "reference", StartedAt: time.Now()}
	cmp, err := uc.CompareParams(cmd.Context(), run.ScenarioName, p, tol)
	run.EndedAt = time.Now()
	if err != nil {
		return run, err
	}
	run.Comparison = cmp
	return run, nil
}

func runScenario(
	cmd *cobra.Command,
	ws *workspaceCtx,
	scenario, env string,
	tolerance float64,
	noSave bool,
	pf *paramFlags,
	obs recurrence.Observer,
) (domain.RunArtifact, string, error) {
	scenarioPath, err := resolveScenarioPath(ws, scenario)
	if err != nil {
		return domain.RunArtifact{}, "", err
	}
	envArg := resolveEnvironmentArg(ws, env)

	opts := []usecase.CompareOption{
		usecase.WithObserver(obs),
		usecase.WithTolerance(ws.cfg.Defaults.Tolerance),
		usecase.WithParamOverride(func(p domain.Params) domain.Params { return pf.apply(cmd, p) }),
	}
	if tolerance > 0 {
		opts = append(opts, usecase.WithToleranceOverride(tolerance))
	}
	if !noSave {
		opts = append(opts, usecase.WithStore(ws.store))
	}

	uc := usecase.NewCompare(ws.scenarios, ws.envs, ws.resolver, opts...)
	return uc.Execute(cmd.Context(), scenarioPath, envArg)
}

func printRun(w io.Writer, run domain.RunArtifact, runID string, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		payload := map[string]any{
			"run_id": runID,
			"run":    run,
		}
		return enc.Encode(payload)
	case "pretty", "":
		printPrettyRun(w, run, runID)
		return nil
	default:
		return fmt.Errorf("unsupported format %q (expected pretty|json)", format)
	}
}

func printPrettyRun(w io.Writer, run domain.RunArtifact, runID string) {
	c := run.Comparison

	fmt.Fprintf(w, "iterative %s\n", observe.FormatFloat(c.Iterative))
	if c.Error == "" {
		fmt.Fprintf(w, "closed_form %s\n", observe.FormatFloat(c.ClosedForm))
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "Scenario:   %s\n", run.ScenarioName)
	if run.EnvironmentName != "" {
		fmt.Fprintf(w, "Env:        %s\n", run.EnvironmentName)
	}
	fmt.Fprintf(w, "Params:     %s\n", c.Params)
	if c.Error != "" {
		fmt.Fprintf(w, "Error:      %s\n", c.Error)
	} else {
		fmt.Fprintf(w, "Abs diff:   %.3g\n", c.AbsDiff)
		fmt.Fprintf(w, "Rel diff:   %.3g\n", c.RelDiff)
	}
	fmt.Fprintf(w, "Tolerance:  %g\n", c.Tolerance)
	if c.Stationary != nil {
		fmt.Fprintf(w, "Stationary: x=%.6g value=%.6g\n", c.Stationary.X, c.Stationary.Value)
	}
	if runID != "" {
		fmt.Fprintf(w, "Run ID:     %s\n", runID)
	}

	if len(c.Checks) > 0 {
		pass, fail := countCheckPassFail(c.Checks)
		fmt.Fprintf(w, "Checks:     %d pass / %d fail\n", pass, fail)
		for _, ch := range c.Checks {
			mark := "✓"
			if !ch.Passed {
				mark = "✗"
			}
			fmt.Fprintf(w, "  %s %s: %s\n", mark, ch.Name, dimStyle.Render(ch.Message))
		}
	}

	fmt.Fprintln(w)
	if c.Failed() {
		fmt.Fprintln(w, failStyle.Render("FAIL"))
	} else {
		fmt.Fprintln(w, passStyle.Render("AGREE"))
	}
}

func countCheckPassFail(in []domain.CheckResult) (pass int, fail int) {
	for _, ch := range in {
		if ch.Passed {
			pass++
		} else {
			fail++
		}
	}
	return pass, fail
}
