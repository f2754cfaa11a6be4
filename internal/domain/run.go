package domain

import "time"

// Step is one iteration of the recurrence: result_I = Value.
type Step struct {
	I     int     `json:"i"`
	Value float64 `json:"value"`
}

// Term is a labelled diagnostic emitted by the closed-form evaluator.
type Term struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// Stationary is where the continuous extension of the recurrence has zero
// slope, and the value it takes there.
type Stationary struct {
	X     float64 `json:"x"`
	Value float64 `json:"value"`
}

// CheckResult is the output of a single scenario check.
type CheckResult struct {
	Name    string `json:"name"`
	Passed  bool   `json:"passed"`
	Message string `json:"message"`
}

// Comparison is the result of running both evaluators on one parameter set.
type Comparison struct {
	Scenario string `json:"scenario"`
	Params   Params `json:"params"`

	Steps []Step `json:"steps"`
	Terms []Term `json:"terms"`

	Iterative  float64 `json:"iterative"`
	ClosedForm float64 `json:"closed_form"`
	AbsDiff    float64 `json:"abs_diff"`
	RelDiff    float64 `json:"rel_diff"`
	Tolerance  float64 `json:"tolerance"`
	Agree      bool    `json:"agree"`

	Stationary *Stationary `json:"stationary,omitempty"`

	// Error is set when the closed form could not be evaluated.
	Error string `json:"error,omitempty"`

	Checks []CheckResult `json:"checks,omitempty"`
}

// Failed reports whether the comparison disagrees or any check failed.
func (c Comparison) Failed() bool {
	if !c.Agree {
		return true
	}
	for _, ch := range c.Checks {
		if !ch.Passed {
			return true
		}
	}
	return false
}

// RunArtifact is a persisted comparison.
type RunArtifact struct {
	ScenarioName    string    `json:"scenario_name"`
	ScenarioPath    string    `json:"scenario_path,omitempty"`
	EnvironmentName string    `json:"environment_name,omitempty"`
	StartedAt       time.Time `json:"started_at"`
	EndedAt         time.Time `json:"ended_at"`

	Comparison Comparison `json:"comparison"`
}

// SweepGrid lists the values each parameter takes in a sweep; the sweep
// visits the cartesian product.
type SweepGrid struct {
	N     []int
	Y0    []float64
	X0    []float64
	Beta  []float64
	Alpha []float64
}

// Size is the number of grid cells.
func (g SweepGrid) Size() int {
	return len(g.N) * len(g.Y0) * len(g.X0) * len(g.Beta) * len(g.Alpha)
}

// Cell returns the parameters of grid cell i in [0, Size()). Alpha varies
// fastest and N slowest.
func (g SweepGrid) Cell(i int) Params {
	var p Params
	p.Alpha, i = g.Alpha[i%len(g.Alpha)], i/len(g.Alpha)
	p.Beta, i = g.Beta[i%len(g.Beta)], i/len(g.Beta)
	p.X0, i = g.X0[i%len(g.X0)], i/len(g.X0)
	p.Y0, i = g.Y0[i%len(g.Y0)], i/len(g.Y0)
	p.N = g.N[i%len(g.N)]
	return p
}

// SweepResult summarizes a sweep.
type SweepResult struct {
	Total     int `json:"total"`
	Agreed    int `json:"agreed"`
	Disagreed int `json:"disagreed"`
	Singular  int `json:"singular"`

	Tolerance float64 `json:"tolerance"`

	// Worst is the cell with the largest relative difference.
	Worst *Comparison `json:"worst,omitempty"`
	// Failures holds up to a bounded number of disagreeing cells.
	Failures []Comparison `json:"failures,omitempty"`
}
