package cli

import (
	"fmt"

	"github.com/aalvaropc/recur/internal/usecase"
	"github.com/spf13/cobra"
)

func validateCmd() *cobra.Command {
	var workspace string
	var scenario string
	var env string

	c := &cobra.Command{
		Use:   "validate",
		Short: "Resolve a scenario against an environment without evaluating it",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ws, err := loadWorkspace(workspace)
			if err != nil {
				return err
			}

			scenarioPath, err := resolveScenarioPath(ws, scenario)
			if err != nil {
				return err
			}

			uc := usecase.NewValidateScenario(ws.scenarios, ws.envs, ws.resolver)
			p, err := uc.Execute(cmd.Context(), scenarioPath, resolveEnvironmentArg(ws, env))
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "OK")
			fmt.Fprintf(out, "Params: %s\n", p)
			if p.Alpha == 1 {
				fmt.Fprintln(out, "warning: alpha == 1, the closed form is undefined")
			}
			return nil
		},
	}

	c.Flags().StringVarP(&workspace, "workspace", "w", "", "Workspace root (optional; autodetected if omitted)")
	c.Flags().StringVarP(&scenario, "scenario", "s", "", "Scenario name or path (required)")
	c.Flags().StringVarP(&env, "env", "e", "", "Environment name or path (optional; defaults to workspace default env)")

	_ = c.MarkFlagRequired("scenario")
	return c
}
