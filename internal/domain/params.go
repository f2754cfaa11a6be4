package domain

import (
	"fmt"
	"math"
)

// Params are the five scalar inputs of the recurrence
//
//	result_0 = Y0
//	result_i = result_{i-1}*Alpha + X0 + i*Beta
type Params struct {
	N     int     `json:"n"`
	Y0    float64 `json:"y0"`
	X0    float64 `json:"x0"`
	Beta  float64 `json:"beta"`
	Alpha float64 `json:"alpha"`
}

// DefaultParams is the reference scenario the tool was built around.
func DefaultParams() Params {
	return Params{
		N:     10,
		Y0:    0,
		X0:    10001000 / 1e7,
		Beta:  60000 / 1e7,
		Alpha: 0.9,
	}
}

// DefaultTolerance is the agreement threshold used when a scenario sets none.
const DefaultTolerance = 1e-6

// Validate checks N >= 0 and that every real parameter is finite.
// Alpha == 1 is valid here; only the closed form rejects it.
func (p Params) Validate() error {
	if p.N < 0 {
		return invalidParam("n", fmt.Sprintf("must be >= 0, got %d", p.N))
	}
	for _, f := range []struct {
		name string
		v    float64
	}{
		{"y0", p.Y0},
		{"x0", p.X0},
		{"beta", p.Beta},
		{"alpha", p.Alpha},
	} {
		if math.IsNaN(f.v) || math.IsInf(f.v, 0) {
			return invalidParam(f.name, fmt.Sprintf("must be finite, got %v", f.v))
		}
	}
	return nil
}

func (p Params) String() string {
	return fmt.Sprintf("n=%d y0=%g x0=%g beta=%g alpha=%g", p.N, p.Y0, p.X0, p.Beta, p.Alpha)
}

func invalidParam(field, msg string) error {
	return &OpError{
		Op:   "params.validate",
		Kind: KindInvalidParams,
		Err:  fmt.Errorf("field %s: %s: %w", field, msg, ErrInvalidParams),
	}
}

// WithinTolerance reports whether a and b agree to tol, absolute for
// magnitudes up to 1 and relative above.
func WithinTolerance(a, b, tol float64) bool {
	if math.IsNaN(a) || math.IsNaN(b) {
		return false
	}
	if a == b {
		return true
	}
	if math.IsInf(a, 0) || math.IsInf(b, 0) {
		return false
	}
	scale := math.Max(1, math.Max(math.Abs(a), math.Abs(b)))
	return math.Abs(a-b) <= tol*scale
}
