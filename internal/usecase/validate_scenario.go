package usecase

import (
	"context"

	"github.com/aalvaropc/recur/internal/domain"
	"github.com/aalvaropc/recur/internal/ports"
)

type ValidateScenario struct {
	scenarios ports.ScenarioLoader
	envs      ports.EnvironmentLoader
	resolver  ports.ParamResolver
}

func NewValidateScenario(sl ports.ScenarioLoader, el ports.EnvironmentLoader, pr ports.ParamResolver) *ValidateScenario {
	return &ValidateScenario{
		scenarios: sl,
		envs:      el,
		resolver:  pr,
	}
}

// Execute resolves a scenario + environment pair without evaluating the
// recurrence and returns the parameters it would run with.
func (uc *ValidateScenario) Execute(ctx context.Context, scenarioPath string, envNameOrPath string) (domain.Params, error) {
	if err := ctx.Err(); err != nil {
		return domain.Params{}, err
	}

	_, _, p, err := resolveScenario(uc.scenarios, uc.envs, uc.resolver, scenarioPath, envNameOrPath)
	if err != nil {
		return domain.Params{}, err
	}
	return p, nil
}
