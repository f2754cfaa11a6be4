package usecase

import (
	"github.com/aalvaropc/recur/internal/domain"
	"github.com/aalvaropc/recur/internal/ports"
)

type fakeScenarioLoader struct {
	sc    domain.Scenario
	err   error
	calls int
}

func (f *fakeScenarioLoader) LoadScenario(_ string) (domain.Scenario, error) {
	f.calls++
	return f.sc, f.err
}

func (f *fakeScenarioLoader) ListScenarios(_ string) ([]domain.ScenarioRef, error) {
	return nil, nil
}

type fakeEnvLoader struct {
	env domain.Environment
	err error
}

func (f fakeEnvLoader) LoadEnvironment(_ string) (domain.Environment, error) {
	return f.env, f.err
}

// fakeResolver returns fixed params and captures the vars it was given.
type fakeResolver struct {
	params domain.Params
	err    error
	vars   domain.Vars
}

func (f *fakeResolver) Resolve(_ domain.ParamExprs, vars domain.Vars) (domain.Params, error) {
	f.vars = vars
	return f.params, f.err
}

type fakeStore struct {
	saved bool
	last  domain.RunArtifact
	err   error
}

func (s *fakeStore) SaveRun(run domain.RunArtifact) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	s.saved = true
	s.last = run
	return "run-123", nil
}

var (
	_ ports.ScenarioLoader    = (*fakeScenarioLoader)(nil)
	_ ports.EnvironmentLoader = fakeEnvLoader{}
	_ ports.ParamResolver     = (*fakeResolver)(nil)
	_ ports.ArtifactStore     = (*fakeStore)(nil)
)
