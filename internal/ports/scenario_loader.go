package ports

import "github.com/aalvaropc/recur/internal/domain"

// ScenarioLoader loads scenarios from a source (e.g., filesystem).
type ScenarioLoader interface {
	LoadScenario(path string) (domain.Scenario, error)
	ListScenarios(root string) ([]domain.ScenarioRef, error)
}

// ParamResolver turns a scenario's parameter expressions into numbers.
type ParamResolver interface {
	Resolve(exprs domain.ParamExprs, vars domain.Vars) (domain.Params, error)
}
