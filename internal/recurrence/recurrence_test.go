package recurrence

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/aalvaropc/recur/internal/domain"
)

var approx = cmpopts.EquateApprox(0, 1e-12)

func TestIterate_ReferenceScenarioTrace(t *testing.T) {
	rec := &Recorder{}
	got := Iterate(domain.DefaultParams(), rec)

	want := []domain.Step{
		{I: 1, Value: 1.0061},
		{I: 2, Value: 1.91759},
		{I: 3, Value: 2.743931},
		{I: 4, Value: 3.4936379},
		{I: 5, Value: 4.17437411},
		{I: 6, Value: 4.793036699},
		{I: 7, Value: 5.3558330291},
		{I: 8, Value: 5.86834972619},
		{I: 9, Value: 6.335614753571},
		{I: 10, Value: 6.7621532782139},
	}
	if diff := cmp.Diff(want, rec.Steps(), approx); diff != "" {
		t.Fatalf("trace mismatch (-want +got):\n%s", diff)
	}
	if math.Abs(got-6.762153278213899) > 1e-12 {
		t.Fatalf("expected final 6.762153278213899, got %v", got)
	}
	if len(rec.Terms()) != 0 {
		t.Fatalf("iterative evaluator must not emit terms")
	}
}

func TestIterate_ZeroSteps(t *testing.T) {
	rec := &Recorder{}
	p := domain.Params{N: 0, Y0: 3.5, X0: 1, Beta: 2, Alpha: 0.4}

	if got := Iterate(p, rec); got != 3.5 {
		t.Fatalf("expected y0, got %v", got)
	}
	if len(rec.Steps()) != 0 {
		t.Fatalf("expected no observations, got %v", rec.Steps())
	}
}

func TestIterate_NilObserver(t *testing.T) {
	p := domain.Params{N: 3, Y0: 2, X0: 1, Beta: 0.5, Alpha: 0.5}
	if got := Iterate(p, nil); got != 4.125 {
		t.Fatalf("expected 4.125, got %v", got)
	}
}

func TestClosedForm_ReferenceScenario(t *testing.T) {
	rec := &Recorder{}
	p := domain.DefaultParams()

	got, err := ClosedForm(p, rec)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	iter := Iterate(p, nil)
	if math.Abs(got-iter) > 1e-6 {
		t.Fatalf("closed form %v disagrees with iterative %v", got, iter)
	}

	want := []domain.Term{
		{Label: TermC1, Value: 65.13215599},
		{Label: TermC2, Value: 96.513215599},
		{Label: TermC3, Value: 41.381059609},
	}
	if diff := cmp.Diff(want, rec.Terms(), approx); diff != "" {
		t.Fatalf("terms mismatch (-want +got):\n%s", diff)
	}
	if len(rec.Steps()) != 0 {
		t.Fatalf("closed form must not emit steps")
	}
}

func TestClosedForm_ZeroStepsReducesToY0(t *testing.T) {
	for _, alpha := range []float64{-2, -0.5, 0, 0.3, 0.9, 1.5} {
		p := domain.Params{N: 0, Y0: -7.25, X0: 3, Beta: 11, Alpha: alpha}
		got, err := ClosedForm(p, nil)
		if err != nil {
			t.Fatalf("alpha=%v: unexpected error: %v", alpha, err)
		}
		if math.Abs(got-p.Y0) > 1e-9 {
			t.Fatalf("alpha=%v: expected %v, got %v", alpha, p.Y0, got)
		}
	}
}

func TestClosedForm_AlphaOneIsAnError(t *testing.T) {
	rec := &Recorder{}
	p := domain.Params{N: 5, Y0: 1, X0: 1, Beta: 1, Alpha: 1}

	_, err := ClosedForm(p, rec)
	if err == nil {
		t.Fatal("expected error for alpha == 1")
	}
	if !errors.Is(err, domain.ErrSingularAlpha) {
		t.Fatalf("expected ErrSingularAlpha, got %v", err)
	}
	if !domain.IsKind(err, domain.KindArithmetic) {
		t.Fatalf("expected arithmetic kind, got %v", err)
	}
	if len(rec.Terms()) != 0 {
		t.Fatalf("expected no diagnostics on failure, got %v", rec.Terms())
	}
}

func TestClosedForm_AgreesWithIterate(t *testing.T) {
	rng := rand.New(rand.NewSource(20260218))

	for k := 0; k < 2000; k++ {
		alpha := rng.Float64()*2.6 - 1.3
		if math.Abs(1-alpha) < 0.05 {
			continue
		}
		p := domain.Params{
			N:     rng.Intn(41),
			Y0:    rng.Float64()*20 - 10,
			X0:    rng.Float64()*20 - 10,
			Beta:  rng.Float64()*2 - 1,
			Alpha: alpha,
		}

		iter := Iterate(p, nil)
		closed, err := ClosedForm(p, nil)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", p, err)
		}
		if !domain.WithinTolerance(iter, closed, 1e-6) {
			t.Fatalf("%s: iterative %v vs closed %v", p, iter, closed)
		}
	}
}

func TestIterate_NonDecreasingForDecayingAlpha(t *testing.T) {
	for _, alpha := range []float64{0.1, 0.5, 0.9, 0.99} {
		rec := &Recorder{}
		p := domain.Params{N: 50, Y0: 0, X0: 1.0001, Beta: 0.006, Alpha: alpha}
		Iterate(p, rec)

		prev := p.Y0
		for _, s := range rec.Steps() {
			if s.Value < prev {
				t.Fatalf("alpha=%v: step %d decreased: %v < %v", alpha, s.I, s.Value, prev)
			}
			prev = s.Value
		}
	}
}

func TestCoefficientMatchesWeightedSum(t *testing.T) {
	for _, alpha := range []float64{-1.2, -0.3, 0, 0.25, 0.9, 1.1} {
		for n := 0; n <= 30; n++ {
			c := Coefficient(alpha, n)
			w := WeightedSum(alpha, n)
			if !domain.WithinTolerance(c, w, 1e-9) {
				t.Fatalf("alpha=%v n=%d: coefficient %v vs weighted sum %v", alpha, n, c, w)
			}
		}
	}
}

func TestGeometricSum(t *testing.T) {
	cases := []struct {
		alpha float64
		n     int
		want  float64
	}{
		{0.5, 0, 0},
		{0.5, 1, 1},
		{0.5, 3, 1.75},
		{2, 4, 15},
		{-1, 3, 1},
	}
	for _, c := range cases {
		if got := GeometricSum(c.alpha, c.n); math.Abs(got-c.want) > 1e-12 {
			t.Errorf("GeometricSum(%v, %d) = %v, want %v", c.alpha, c.n, got, c.want)
		}
	}
}

func TestWeightedSumAlphaOne(t *testing.T) {
	// Triangular numbers.
	if got := WeightedSum(1, 10); got != 55 {
		t.Fatalf("expected 55, got %v", got)
	}
}
