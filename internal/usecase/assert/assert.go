package assert

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"

	"github.com/PaesslerAG/jsonpath"
	"github.com/aalvaropc/recur/internal/domain"
)

// Document returns the generic JSON form of a comparison, the shape check
// paths are written against.
func Document(c domain.Comparison) (any, error) {
	b, err := json.Marshal(c)
	if err != nil {
		return nil, err
	}
	var doc any
	if err := json.Unmarshal(b, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// Evaluate applies checks in order against the comparison. Checks already
// recorded on c are not part of the document.
func Evaluate(checks []domain.Check, c domain.Comparison) []domain.CheckResult {
	if len(checks) == 0 {
		return nil
	}

	c.Checks = nil
	doc, err := Document(c)
	if err != nil {
		out := make([]domain.CheckResult, 0, len(checks))
		for _, ch := range checks {
			out = append(out, pathChecks(ch, nil, fmt.Errorf("comparison is not representable as JSON: %v", err))...)
		}
		return out
	}

	var out []domain.CheckResult
	for _, ch := range checks {
		val, getErr := jsonpath.Get(ch.Path, doc)
		out = append(out, pathChecks(ch, val, getErr)...)
	}
	return out
}

func pathChecks(ch domain.Check, val any, getErr error) []domain.CheckResult {
	var out []domain.CheckResult
	if ch.Exists {
		out = append(out, checkExists(ch.Path, val, getErr))
	}
	if ch.Eq != nil {
		out = append(out, checkEq(ch.Path, val, getErr, *ch.Eq))
	}
	if ch.Gt != nil {
		out = append(out, checkGt(ch.Path, val, getErr, *ch.Gt))
	}
	if ch.Lt != nil {
		out = append(out, checkLt(ch.Path, val, getErr, *ch.Lt))
	}
	if ch.Approx != nil {
		tol := domain.DefaultTolerance
		if ch.ApproxTol != nil {
			tol = *ch.ApproxTol
		}
		out = append(out, checkApprox(ch.Path, val, getErr, *ch.Approx, tol))
	}
	return out
}

func checkExists(expr string, val any, getErr error) domain.CheckResult {
	if getErr != nil {
		return domain.CheckResult{
			Name:    "jsonpath.exists",
			Passed:  false,
			Message: fmt.Sprintf("invalid jsonpath %q: %v", expr, getErr),
		}
	}
	if isEmptyJSONPathValue(val) {
		return domain.CheckResult{
			Name:    "jsonpath.exists",
			Passed:  false,
			Message: fmt.Sprintf("jsonpath %q: expected value to exist, got empty", expr),
		}
	}
	return domain.CheckResult{
		Name:    "jsonpath.exists",
		Passed:  true,
		Message: fmt.Sprintf("jsonpath %q exists", expr),
	}
}

func checkEq(expr string, val any, getErr error, expected string) domain.CheckResult {
	if getErr != nil {
		return domain.CheckResult{
			Name:    "jsonpath.eq",
			Passed:  false,
			Message: fmt.Sprintf("jsonpath %q: %v", expr, getErr),
		}
	}
	s, err := jsonPathToString(val)
	if err != nil {
		return domain.CheckResult{
			Name:    "jsonpath.eq",
			Passed:  false,
			Message: fmt.Sprintf("jsonpath %q: %v", expr, err),
		}
	}
	if s == expected {
		return domain.CheckResult{
			Name:    "jsonpath.eq",
			Passed:  true,
			Message: fmt.Sprintf("jsonpath %q eq %q", expr, expected),
		}
	}
	return domain.CheckResult{
		Name:    "jsonpath.eq",
		Passed:  false,
		Message: fmt.Sprintf("jsonpath %q: expected %q, got %q", expr, expected, s),
	}
}

func checkGt(expr string, val any, getErr error, threshold float64) domain.CheckResult {
	f, res, ok := numeric("jsonpath.gt", expr, val, getErr)
	if !ok {
		return res
	}
	if f > threshold {
		return domain.CheckResult{
			Name:    "jsonpath.gt",
			Passed:  true,
			Message: fmt.Sprintf("jsonpath %q: %v > %v", expr, f, threshold),
		}
	}
	return domain.CheckResult{
		Name:    "jsonpath.gt",
		Passed:  false,
		Message: fmt.Sprintf("jsonpath %q: expected > %v, got %v", expr, threshold, f),
	}
}

func checkLt(expr string, val any, getErr error, threshold float64) domain.CheckResult {
	f, res, ok := numeric("jsonpath.lt", expr, val, getErr)
	if !ok {
		return res
	}
	if f < threshold {
		return domain.CheckResult{
			Name:    "jsonpath.lt",
			Passed:  true,
			Message: fmt.Sprintf("jsonpath %q: %v < %v", expr, f, threshold),
		}
	}
	return domain.CheckResult{
		Name:    "jsonpath.lt",
		Passed:  false,
		Message: fmt.Sprintf("jsonpath %q: expected < %v, got %v", expr, threshold, f),
	}
}

func checkApprox(expr string, val any, getErr error, target, tol float64) domain.CheckResult {
	f, res, ok := numeric("jsonpath.approx", expr, val, getErr)
	if !ok {
		return res
	}
	if d := math.Abs(f - target); d <= tol {
		return domain.CheckResult{
			Name:    "jsonpath.approx",
			Passed:  true,
			Message: fmt.Sprintf("jsonpath %q: %v ≈ %v (|d|=%.3g)", expr, f, target, d),
		}
	}
	return domain.CheckResult{
		Name:    "jsonpath.approx",
		Passed:  false,
		Message: fmt.Sprintf("jsonpath %q: expected %v ± %v, got %v", expr, target, tol, f),
	}
}

func numeric(name, expr string, val any, getErr error) (float64, domain.CheckResult, bool) {
	if getErr != nil {
		return 0, domain.CheckResult{
			Name:    name,
			Passed:  false,
			Message: fmt.Sprintf("jsonpath %q: %v", expr, getErr),
		}, false
	}
	f, err := jsonPathToFloat64(val)
	if err != nil {
		return 0, domain.CheckResult{
			Name:    name,
			Passed:  false,
			Message: fmt.Sprintf("jsonpath %q: %v", expr, err),
		}, false
	}
	return f, domain.CheckResult{}, true
}

func jsonPathToString(val any) (string, error) {
	switch v := val.(type) {
	case string:
		return v, nil
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), nil
	case bool:
		return strconv.FormatBool(v), nil
	case nil:
		return "", fmt.Errorf("value is null")
	default:
		return fmt.Sprint(v), nil
	}
}

func jsonPathToFloat64(val any) (float64, error) {
	switch v := val.(type) {
	case float64:
		return v, nil
	case string:
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0, fmt.Errorf("value %q is not numeric", v)
		}
		return f, nil
	default:
		return 0, fmt.Errorf("value of type %T is not numeric", val)
	}
}

func isEmptyJSONPathValue(v any) bool {
	if v == nil {
		return true
	}

	switch t := v.(type) {
	case string:
		return t == ""
	case []any:
		return len(t) == 0
	case map[string]any:
		return len(t) == 0
	default:
		return false
	}
}
