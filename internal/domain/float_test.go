package domain

import (
	"encoding/json"
	"math"
	"strings"
	"testing"
)

func TestFloat_MarshalJSON(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{1.5, `1.5`},
		{0, `0`},
		{1e-300, `1e-300`},
		{math.Inf(1), `"+Inf"`},
		{math.Inf(-1), `"-Inf"`},
		{math.NaN(), `"NaN"`},
	}
	for _, c := range cases {
		b, err := json.Marshal(Float(c.in))
		if err != nil {
			t.Fatalf("Marshal(%v): %v", c.in, err)
		}
		if string(b) != c.want {
			t.Errorf("Marshal(%v) = %s, want %s", c.in, b, c.want)
		}
	}
}

func TestFloat_UnmarshalJSON(t *testing.T) {
	var f Float
	if err := json.Unmarshal([]byte(`"-Inf"`), &f); err != nil || !math.IsInf(float64(f), -1) {
		t.Fatalf("expected -Inf, got %v (%v)", f, err)
	}
	if err := json.Unmarshal([]byte(`"NaN"`), &f); err != nil || !math.IsNaN(float64(f)) {
		t.Fatalf("expected NaN, got %v (%v)", f, err)
	}
	if err := json.Unmarshal([]byte(`2.25`), &f); err != nil || f != 2.25 {
		t.Fatalf("expected 2.25, got %v (%v)", f, err)
	}
	if err := json.Unmarshal([]byte(`"many"`), &f); err == nil {
		t.Fatal("expected an error for a non-numeric string")
	}
}

func TestComparison_JSONWithOverflow(t *testing.T) {
	c := Comparison{
		Scenario:   "blow",
		Params:     Params{N: 400, X0: 1, Alpha: 10},
		Steps:      []Step{{I: 1, Value: 1}, {I: 400, Value: math.Inf(1)}},
		Terms:      []Term{{Label: "c3", Value: math.NaN()}},
		Iterative:  math.Inf(1),
		ClosedForm: math.NaN(),
		AbsDiff:    math.NaN(),
		RelDiff:    math.NaN(),
		Tolerance:  1e-6,
		Stationary: &Stationary{X: 2, Value: math.Inf(-1)},
		Checks:     []CheckResult{{Name: "jsonpath.exists", Passed: true}},
	}

	b, err := json.Marshal(c)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	for _, want := range []string{`"iterative":"+Inf"`, `"closed_form":"NaN"`, `"tolerance":0.000001`, `"value":"-Inf"`, `"scenario":"blow"`} {
		if !strings.Contains(string(b), want) {
			t.Errorf("expected %s in %s", want, b)
		}
	}

	var got Comparison
	if err := json.Unmarshal(b, &got); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if !math.IsInf(got.Iterative, 1) || !math.IsNaN(got.ClosedForm) || got.Tolerance != 1e-6 {
		t.Fatalf("unexpected floats after round trip: %+v", got)
	}
	if got.Params != c.Params || got.Scenario != "blow" || len(got.Checks) != 1 {
		t.Fatalf("unexpected fields after round trip: %+v", got)
	}
	if len(got.Steps) != 2 || !math.IsInf(got.Steps[1].Value, 1) || !math.IsNaN(got.Terms[0].Value) {
		t.Fatalf("unexpected trace after round trip: %+v %+v", got.Steps, got.Terms)
	}
	if got.Stationary == nil || !math.IsInf(got.Stationary.Value, -1) {
		t.Fatalf("unexpected stationary: %+v", got.Stationary)
	}
}
