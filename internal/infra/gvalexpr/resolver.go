package gvalexpr

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/PaesslerAG/gval"

	"github.com/aalvaropc/recur/internal/domain"
	"github.com/aalvaropc/recur/internal/ports"
)

// MaxSteps bounds n so a typo cannot start a near-endless iteration.
const MaxSteps = 100_000_000

// Resolver evaluates parameter expressions such as "10001000 / scale"
// against a set of vars.
type Resolver struct {
	lang gval.Language
}

func NewResolver() *Resolver {
	return &Resolver{lang: gval.NewLanguage(gval.Full(), gval.VariableSelector(strictVariable))}
}

// unknownVarError is raised by strictVariable for identifiers with no var.
type unknownVarError struct {
	name string
}

func (e *unknownVarError) Error() string { return "unknown parameter " + e.name }

// strictVariable looks identifiers up in the flat vars map. gval's default
// selector yields nil for absent map keys, which would surface later as a
// type error instead of a missing variable.
func strictVariable(path gval.Evaluables) gval.Evaluable {
	return func(c context.Context, v interface{}) (interface{}, error) {
		keys, err := path.EvalStrings(c, v)
		if err != nil {
			return nil, err
		}
		name := strings.Join(keys, ".")
		vars, _ := v.(map[string]interface{})
		val, ok := vars[name]
		if !ok {
			return nil, &unknownVarError{name: name}
		}
		return val, nil
	}
}

var _ ports.ParamResolver = (*Resolver)(nil)

// Resolve evaluates every expression. n and alpha are required; y0, x0 and
// beta default to 0 when empty.
func (r *Resolver) Resolve(exprs domain.ParamExprs, vars domain.Vars) (domain.Params, error) {
	params := make(map[string]interface{}, len(vars))
	for k, v := range vars {
		params[k] = v
	}

	n, err := r.eval("n", exprs.N, params, true)
	if err != nil {
		return domain.Params{}, err
	}
	if n != math.Trunc(n) || n < 0 || n > MaxSteps {
		return domain.Params{}, &domain.OpError{
			Op:   "gvalexpr.resolve",
			Kind: domain.KindInvalidParams,
			Err:  fmt.Errorf("field n: must be an integer in [0, %d], got %v: %w", MaxSteps, n, domain.ErrInvalidParams),
		}
	}

	out := domain.Params{N: int(n)}
	for _, f := range []struct {
		name     string
		expr     string
		dst      *float64
		required bool
	}{
		{"y0", exprs.Y0, &out.Y0, false},
		{"x0", exprs.X0, &out.X0, false},
		{"beta", exprs.Beta, &out.Beta, false},
		{"alpha", exprs.Alpha, &out.Alpha, true},
	} {
		v, err := r.eval(f.name, f.expr, params, f.required)
		if err != nil {
			return domain.Params{}, err
		}
		*f.dst = v
	}

	if err := out.Validate(); err != nil {
		return domain.Params{}, err
	}
	return out, nil
}

// Eval evaluates a single expression to a number.
func (r *Resolver) Eval(expr string, vars domain.Vars) (float64, error) {
	params := make(map[string]interface{}, len(vars))
	for k, v := range vars {
		params[k] = v
	}
	return r.eval("expr", expr, params, true)
}

func (r *Resolver) eval(field, expr string, params map[string]interface{}, required bool) (float64, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		if required {
			return 0, &domain.OpError{
				Op:   "gvalexpr.resolve",
				Kind: domain.KindInvalidConfig,
				Err:  fmt.Errorf("field %s: expression is required: %w", field, domain.ErrInvalidConfig),
			}
		}
		return 0, nil
	}

	ev, err := r.lang.NewEvaluable(expr)
	if err != nil {
		return 0, &domain.OpError{
			Op:   "gvalexpr.parse",
			Kind: domain.KindInvalidConfig,
			Err:  fmt.Errorf("field %s: %q: %v: %w", field, expr, err, domain.ErrInvalidConfig),
		}
	}

	v, err := ev(context.Background(), params)
	if err != nil {
		var uv *unknownVarError
		if errors.As(err, &uv) || strings.Contains(err.Error(), "unknown parameter") {
			return 0, &domain.OpError{
				Op:   "gvalexpr.eval",
				Kind: domain.KindMissingVar,
				Err:  fmt.Errorf("field %s: %q: %v: %w", field, expr, err, domain.ErrMissingVar),
			}
		}
		return 0, &domain.OpError{
			Op:   "gvalexpr.eval",
			Kind: domain.KindInvalidConfig,
			Err:  fmt.Errorf("field %s: %q: %v: %w", field, expr, err, domain.ErrInvalidConfig),
		}
	}

	f, ok := toFloat(v)
	if !ok {
		return 0, &domain.OpError{
			Op:   "gvalexpr.eval",
			Kind: domain.KindInvalidConfig,
			Err:  fmt.Errorf("field %s: %q evaluates to %T, want a number: %w", field, expr, v, domain.ErrInvalidConfig),
		}
	}
	return f, nil
}

func toFloat(v interface{}) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case float32:
		return float64(t), true
	case int:
		return float64(t), true
	case int64:
		return float64(t), true
	default:
		return 0, false
	}
}
