package recurrence

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/aalvaropc/recur/internal/domain"
)

func TestMultiFansOutAndSkipsNil(t *testing.T) {
	a, b := &Recorder{}, &Recorder{}
	obs := Multi(a, nil, b)

	obs.Step(1, 2.5)
	obs.Term("c1", 7)

	for _, r := range []*Recorder{a, b} {
		if diff := cmp.Diff([]domain.Step{{I: 1, Value: 2.5}}, r.Steps()); diff != "" {
			t.Fatalf("steps mismatch (-want +got):\n%s", diff)
		}
		if diff := cmp.Diff([]domain.Term{{Label: "c1", Value: 7}}, r.Terms()); diff != "" {
			t.Fatalf("terms mismatch (-want +got):\n%s", diff)
		}
	}
}

func TestRecorderCopiesAndReset(t *testing.T) {
	r := &Recorder{}
	r.Step(1, 1)

	steps := r.Steps()
	steps[0].Value = 99
	if r.Steps()[0].Value != 1 {
		t.Fatalf("expected Steps to return a copy")
	}

	r.Term("c1", 1)
	r.Reset()
	if len(r.Steps()) != 0 || len(r.Terms()) != 0 {
		t.Fatalf("expected empty recorder after Reset")
	}
}

func TestDiscardIsNoop(t *testing.T) {
	Discard.Step(1, 1)
	Discard.Term("x", 1)
}
