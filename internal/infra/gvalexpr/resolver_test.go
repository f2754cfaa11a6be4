package gvalexpr

import (
	"math"
	"strings"
	"testing"

	"github.com/aalvaropc/recur/internal/domain"
)

func TestResolve_ReferenceScenario(t *testing.T) {
	r := NewResolver()
	got, err := r.Resolve(domain.ParamExprs{
		N:     "10",
		Y0:    "0",
		X0:    "10001000 / scale",
		Beta:  "60000 / scale",
		Alpha: "0.9",
	}, domain.Vars{"scale": 10000000})
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}

	want := domain.DefaultParams()
	if got.N != want.N || got.Y0 != want.Y0 || got.Alpha != want.Alpha {
		t.Fatalf("unexpected params: %s", got)
	}
	if math.Abs(got.X0-want.X0) > 1e-15 || math.Abs(got.Beta-want.Beta) > 1e-15 {
		t.Fatalf("unexpected x0/beta: %s", got)
	}
}

func TestResolve_Defaults(t *testing.T) {
	got, err := NewResolver().Resolve(domain.ParamExprs{N: "3", Alpha: "0.5"}, nil)
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}
	if got != (domain.Params{N: 3, Alpha: 0.5}) {
		t.Fatalf("unexpected params: %s", got)
	}
}

func TestResolve_Arithmetic(t *testing.T) {
	got, err := NewResolver().Resolve(domain.ParamExprs{
		N:     "2 * steps",
		Y0:    "-1.5",
		Beta:  "(1 - rate) / 2",
		Alpha: "rate",
	}, domain.Vars{"steps": 4, "rate": 0.8})
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}
	if got.N != 8 || got.Y0 != -1.5 || got.Alpha != 0.8 {
		t.Fatalf("unexpected params: %s", got)
	}
	if math.Abs(got.Beta-0.1) > 1e-12 {
		t.Fatalf("unexpected beta: %v", got.Beta)
	}
}

func TestResolve_Errors(t *testing.T) {
	cases := []struct {
		name  string
		exprs domain.ParamExprs
		kinds []domain.ErrorKind
	}{
		{"missing n", domain.ParamExprs{Alpha: "0.5"}, []domain.ErrorKind{domain.KindInvalidConfig}},
		{"missing alpha", domain.ParamExprs{N: "1"}, []domain.ErrorKind{domain.KindInvalidConfig}},
		{"fractional n", domain.ParamExprs{N: "2.5", Alpha: "0.5"}, []domain.ErrorKind{domain.KindInvalidParams}},
		{"negative n", domain.ParamExprs{N: "-1", Alpha: "0.5"}, []domain.ErrorKind{domain.KindInvalidParams}},
		{"syntax", domain.ParamExprs{N: "1", Alpha: "0.5 +"}, []domain.ErrorKind{domain.KindInvalidConfig}},
		{"boolean", domain.ParamExprs{N: "1", Alpha: "1 < 2"}, []domain.ErrorKind{domain.KindInvalidConfig}},
		{"unknown var", domain.ParamExprs{N: "1", Alpha: "nope"}, []domain.ErrorKind{domain.KindMissingVar}},
	}
	for _, c := range cases {
		_, err := NewResolver().Resolve(c.exprs, domain.Vars{})
		if err == nil {
			t.Errorf("%s: expected error", c.name)
			continue
		}
		matched := false
		for _, k := range c.kinds {
			if domain.IsKind(err, k) {
				matched = true
			}
		}
		if !matched {
			t.Errorf("%s: unexpected error kind: %v", c.name, err)
		}
	}
}

func TestEval(t *testing.T) {
	v, err := NewResolver().Eval("a * 2 + 1", domain.Vars{"a": 3})
	if err != nil {
		t.Fatalf("Eval error: %v", err)
	}
	if v != 7 {
		t.Fatalf("expected 7, got %v", v)
	}
}

func TestResolve_UnknownVarInsideExpression(t *testing.T) {
	for _, expr := range []string{"rate", "rate * 2", "1 / rate", "rate + 1", "-rate"} {
		_, err := NewResolver().Resolve(domain.ParamExprs{N: "1", Alpha: expr}, nil)
		if !domain.IsKind(err, domain.KindMissingVar) {
			t.Errorf("%q: expected missing variable, got %v", expr, err)
			continue
		}
		if !strings.Contains(err.Error(), "rate") {
			t.Errorf("%q: expected var name in error, got %v", expr, err)
		}
	}
}

func TestResolve_UnknownVarInN(t *testing.T) {
	_, err := NewResolver().Resolve(domain.ParamExprs{N: "steps", Alpha: "0.5"}, domain.Vars{"rate": 0.5})
	if !domain.IsKind(err, domain.KindMissingVar) {
		t.Fatalf("expected missing variable, got %v", err)
	}
}
