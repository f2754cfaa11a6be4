package domain

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// Float is a float64 that survives JSON when it is not finite. Overflowing
// runs produce ±Inf and NaN, which encoding/json rejects; those are written
// as the strings "+Inf", "-Inf" and "NaN" instead.
type Float float64

func (f Float) MarshalJSON() ([]byte, error) {
	v := float64(f)
	switch {
	case math.IsNaN(v):
		return []byte(`"NaN"`), nil
	case math.IsInf(v, 1):
		return []byte(`"+Inf"`), nil
	case math.IsInf(v, -1):
		return []byte(`"-Inf"`), nil
	}
	return json.Marshal(v)
}

func (f *Float) UnmarshalJSON(b []byte) error {
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return fmt.Errorf("float %q: %w", s, err)
		}
		*f = Float(v)
		return nil
	}
	var v float64
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*f = Float(v)
	return nil
}

type stepJSON struct {
	I     int   `json:"i"`
	Value Float `json:"value"`
}

func (s Step) MarshalJSON() ([]byte, error) {
	return json.Marshal(stepJSON{I: s.I, Value: Float(s.Value)})
}

func (s *Step) UnmarshalJSON(b []byte) error {
	var w stepJSON
	if err := json.Unmarshal(b, &w); err != nil {
		return err
	}
	*s = Step{I: w.I, Value: float64(w.Value)}
	return nil
}

type termJSON struct {
	Label string `json:"label"`
	Value Float  `json:"value"`
}

func (t Term) MarshalJSON() ([]byte, error) {
	return json.Marshal(termJSON{Label: t.Label, Value: Float(t.Value)})
}

func (t *Term) UnmarshalJSON(b []byte) error {
	var w termJSON
	if err := json.Unmarshal(b, &w); err != nil {
		return err
	}
	*t = Term{Label: w.Label, Value: float64(w.Value)}
	return nil
}

type stationaryJSON struct {
	X     Float `json:"x"`
	Value Float `json:"value"`
}

func (s Stationary) MarshalJSON() ([]byte, error) {
	return json.Marshal(stationaryJSON{X: Float(s.X), Value: Float(s.Value)})
}

func (s *Stationary) UnmarshalJSON(b []byte) error {
	var w stationaryJSON
	if err := json.Unmarshal(b, &w); err != nil {
		return err
	}
	*s = Stationary{X: float64(w.X), Value: float64(w.Value)}
	return nil
}

// comparisonFields has Comparison's fields without its methods.
type comparisonFields Comparison

// comparisonJSON shadows the float fields of the embedded struct; the
// shallower field wins in encoding/json.
type comparisonJSON struct {
	comparisonFields
	Iterative  Float `json:"iterative"`
	ClosedForm Float `json:"closed_form"`
	AbsDiff    Float `json:"abs_diff"`
	RelDiff    Float `json:"rel_diff"`
	Tolerance  Float `json:"tolerance"`
}

func (c Comparison) MarshalJSON() ([]byte, error) {
	return json.Marshal(comparisonJSON{
		comparisonFields: comparisonFields(c),
		Iterative:        Float(c.Iterative),
		ClosedForm:       Float(c.ClosedForm),
		AbsDiff:          Float(c.AbsDiff),
		RelDiff:          Float(c.RelDiff),
		Tolerance:        Float(c.Tolerance),
	})
}

func (c *Comparison) UnmarshalJSON(b []byte) error {
	var w comparisonJSON
	if err := json.Unmarshal(b, &w); err != nil {
		return err
	}
	out := Comparison(w.comparisonFields)
	out.Iterative = float64(w.Iterative)
	out.ClosedForm = float64(w.ClosedForm)
	out.AbsDiff = float64(w.AbsDiff)
	out.RelDiff = float64(w.RelDiff)
	out.Tolerance = float64(w.Tolerance)
	*c = out
	return nil
}
