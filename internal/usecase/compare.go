package usecase

import (
	"context"
	"math"
	"time"

	"github.com/aalvaropc/recur/internal/domain"
	"github.com/aalvaropc/recur/internal/ports"
	"github.com/aalvaropc/recur/internal/recurrence"
	ucassert "github.com/aalvaropc/recur/internal/usecase/assert"
)

type Compare struct {
	scenarios ports.ScenarioLoader
	envs      ports.EnvironmentLoader
	resolver  ports.ParamResolver
	store     ports.ArtifactStore

	observer  recurrence.Observer
	override  func(domain.Params) domain.Params
	tolerance float64
	forceTol  float64
	now       func() time.Time
}

type CompareOption func(*Compare)

// WithStore persists every comparison made by Execute.
func WithStore(s ports.ArtifactStore) CompareOption {
	return func(uc *Compare) { uc.store = s }
}

// WithObserver receives the trace alongside the in-memory recorder.
func WithObserver(o recurrence.Observer) CompareOption {
	return func(uc *Compare) { uc.observer = o }
}

// WithParamOverride adjusts resolved scenario parameters before evaluation.
func WithParamOverride(fn func(domain.Params) domain.Params) CompareOption {
	return func(uc *Compare) { uc.override = fn }
}

// WithTolerance sets the tolerance used when a scenario has none.
func WithTolerance(tol float64) CompareOption {
	return func(uc *Compare) {
		if tol > 0 {
			uc.tolerance = tol
		}
	}
}

// WithToleranceOverride sets a tolerance that wins over the scenario's own.
func WithToleranceOverride(tol float64) CompareOption {
	return func(uc *Compare) {
		if tol > 0 {
			uc.forceTol = tol
		}
	}
}

func WithClock(now func() time.Time) CompareOption {
	return func(uc *Compare) {
		if now != nil {
			uc.now = now
		}
	}
}

func NewCompare(sl ports.ScenarioLoader, el ports.EnvironmentLoader, pr ports.ParamResolver, opts ...CompareOption) *Compare {
	uc := &Compare{
		scenarios: sl,
		envs:      el,
		resolver:  pr,
		tolerance: domain.DefaultTolerance,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// Execute loads a scenario, resolves its parameters against the environment
// and compares both evaluators. The artifact is saved when a store is set;
// the returned id is empty otherwise.
func (uc *Compare) Execute(ctx context.Context, scenarioPath string, envNameOrPath string) (domain.RunArtifact, string, error) {
	run := domain.RunArtifact{
		ScenarioPath: scenarioPath,
		StartedAt:    uc.now(),
	}

	if err := ctx.Err(); err != nil {
		run.EndedAt = uc.now()
		return run, "", err
	}

	sc, env, params, err := resolveScenario(uc.scenarios, uc.envs, uc.resolver, scenarioPath, envNameOrPath)
	if err != nil {
		run.EndedAt = uc.now()
		return run, "", err
	}
	run.ScenarioName = sc.Name
	run.EnvironmentName = env.Name
	if uc.override != nil {
		params = uc.override(params)
	}

	tol := uc.tolerance
	switch {
	case uc.forceTol > 0:
		tol = uc.forceTol
	case sc.Tolerance > 0:
		tol = sc.Tolerance
	}

	cmp, err := uc.CompareParams(ctx, sc.Name, params, tol)
	if err != nil {
		run.EndedAt = uc.now()
		return run, "", err
	}
	cmp.Checks = ucassert.Evaluate(sc.Checks, cmp)

	run.Comparison = cmp
	run.EndedAt = uc.now()

	if uc.store == nil {
		return run, "", nil
	}
	id, err := uc.store.SaveRun(run)
	if err != nil {
		return run, "", err
	}
	return run, id, nil
}

// CompareParams runs both evaluators on p and records the trace. tol <= 0
// falls back to the configured tolerance. A singular alpha is reported in
// the comparison, not as an error.
func (uc *Compare) CompareParams(ctx context.Context, name string, p domain.Params, tol float64) (domain.Comparison, error) {
	if err := ctx.Err(); err != nil {
		return domain.Comparison{}, err
	}
	if err := p.Validate(); err != nil {
		return domain.Comparison{}, err
	}
	if tol <= 0 {
		tol = uc.tolerance
	}

	rec := &recurrence.Recorder{}
	cmp := compare(name, p, tol, recurrence.Multi(rec, uc.observer))
	cmp.Steps = rec.Steps()
	cmp.Terms = rec.Terms()
	return cmp, nil
}

// compare evaluates p with both methods. It does not fill Steps or Terms.
func compare(name string, p domain.Params, tol float64, obs recurrence.Observer) domain.Comparison {
	cmp := domain.Comparison{
		Scenario:  name,
		Params:    p,
		Tolerance: tol,
	}

	cmp.Iterative = recurrence.Iterate(p, obs)

	closed, err := recurrence.ClosedForm(p, obs)
	if err != nil {
		cmp.Error = err.Error()
		return cmp
	}
	cmp.ClosedForm = closed
	cmp.AbsDiff = math.Abs(cmp.Iterative - closed)
	cmp.RelDiff = relDiff(cmp.Iterative, closed)
	cmp.Agree = domain.WithinTolerance(cmp.Iterative, closed, tol)

	if s, err := recurrence.StationaryPoint(p); err == nil {
		cmp.Stationary = &s
	}
	return cmp
}

// relDiff is |a-b| scaled the way WithinTolerance scales it.
func relDiff(a, b float64) float64 {
	if a == b {
		return 0
	}
	return math.Abs(a-b) / math.Max(1, math.Max(math.Abs(a), math.Abs(b)))
}

func resolveScenario(
	sl ports.ScenarioLoader,
	el ports.EnvironmentLoader,
	pr ports.ParamResolver,
	scenarioPath, envNameOrPath string,
) (domain.Scenario, domain.Environment, domain.Params, error) {
	sc, err := sl.LoadScenario(scenarioPath)
	if err != nil {
		return domain.Scenario{}, domain.Environment{}, domain.Params{}, err
	}

	env, err := el.LoadEnvironment(envNameOrPath)
	if err != nil {
		return sc, domain.Environment{}, domain.Params{}, err
	}

	// scenario vars < env vars
	vars := domain.Merge(sc.Vars, env.Vars)

	p, err := pr.Resolve(sc.Exprs, vars)
	if err != nil {
		return sc, env, domain.Params{}, err
	}
	return sc, env, p, nil
}
