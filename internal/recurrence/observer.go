package recurrence

import "github.com/aalvaropc/recur/internal/domain"

// Observer receives diagnostic values while an evaluator runs.
type Observer interface {
	// Step is called after each iteration with the running value.
	Step(i int, value float64)
	// Term is called with a labelled intermediate of the closed form.
	Term(label string, value float64)
}

// Discard drops every observation.
var Discard Observer = discard{}

type discard struct{}

func (discard) Step(int, float64)    {}
func (discard) Term(string, float64) {}

func orDiscard(obs Observer) Observer {
	if obs == nil {
		return Discard
	}
	return obs
}

// Multi fans observations out to every non-nil observer, in order.
func Multi(obs ...Observer) Observer {
	out := make(multi, 0, len(obs))
	for _, o := range obs {
		if o != nil {
			out = append(out, o)
		}
	}
	return out
}

type multi []Observer

func (m multi) Step(i int, value float64) {
	for _, o := range m {
		o.Step(i, value)
	}
}

func (m multi) Term(label string, value float64) {
	for _, o := range m {
		o.Term(label, value)
	}
}

// Recorder keeps every observation in memory. Not safe for concurrent use.
type Recorder struct {
	steps []domain.Step
	terms []domain.Term
}

func (r *Recorder) Step(i int, value float64) {
	r.steps = append(r.steps, domain.Step{I: i, Value: value})
}

func (r *Recorder) Term(label string, value float64) {
	r.terms = append(r.terms, domain.Term{Label: label, Value: value})
}

// Steps returns a copy of the recorded steps.
func (r *Recorder) Steps() []domain.Step {
	out := make([]domain.Step, len(r.steps))
	copy(out, r.steps)
	return out
}

// Terms returns a copy of the recorded terms.
func (r *Recorder) Terms() []domain.Term {
	out := make([]domain.Term, len(r.terms))
	copy(out, r.terms)
	return out
}

// Reset clears the recorder for reuse.
func (r *Recorder) Reset() {
	r.steps = r.steps[:0]
	r.terms = r.terms[:0]
}
