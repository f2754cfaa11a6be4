package domain

// ParamExprs holds the unevaluated parameter expressions of a scenario,
// e.g. X0: "10001000 / scale".
type ParamExprs struct {
	N     string
	Y0    string
	X0    string
	Beta  string
	Alpha string
}

// Check is a JSONPath assertion evaluated against a comparison document.
// Path is an expression such as "$.closed_form" or "$.steps[9].value".
type Check struct {
	Path   string
	Exists bool
	Eq     *string
	Gt     *float64
	Lt     *float64

	// Approx passes when the value is within ApproxTol (default
	// DefaultTolerance) of Approx.
	Approx    *float64
	ApproxTol *float64
}

// Scenario is a named parameter set loaded from a workspace file.
type Scenario struct {
	Name string
	Path string

	Vars  Vars
	Exprs ParamExprs

	// Tolerance overrides the workspace default when > 0.
	Tolerance float64
	Checks    []Check
}

// ScenarioRef identifies a scenario file inside a workspace.
type ScenarioRef struct {
	Name string
	Path string
}
