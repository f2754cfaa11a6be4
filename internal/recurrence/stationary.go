package recurrence

import (
	"fmt"
	"math"

	"github.com/aalvaropc/recur/internal/domain"
)

// StationaryPoint finds x* where the closed form, extended to real x, has
// zero derivative:
//
//	x* = ln(((alpha-1)*beta) / (ln(alpha)*((alpha-1)^2*y0 + (alpha-1)*x0 + alpha*beta))) / ln(alpha)
//
// It needs 0 < alpha != 1 and a positive finite log argument; otherwise the
// curve is monotone and ErrNoStationaryPoint is returned.
func StationaryPoint(p domain.Params) (domain.Stationary, error) {
	a := p.Alpha
	if a <= 0 || a == 1 {
		return domain.Stationary{}, noStationary(fmt.Sprintf("alpha must be positive and != 1, got %g", a))
	}

	lnA := math.Log(a)
	den := lnA * ((a-1)*(a-1)*p.Y0 + (a-1)*p.X0 + a*p.Beta)
	if den == 0 {
		return domain.Stationary{}, noStationary("derivative has no root")
	}

	arg := (a - 1) * p.Beta / den
	if !(arg > 0) || math.IsInf(arg, 0) {
		return domain.Stationary{}, noStationary("derivative has no root")
	}

	x := math.Log(arg) / lnA
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return domain.Stationary{}, noStationary("root is not finite")
	}

	t := terms(a, x)
	v := t.an*p.Y0 + p.X0*t.geom + p.Beta*t.cn
	return domain.Stationary{X: x, Value: v}, nil
}

func noStationary(msg string) error {
	return &domain.OpError{
		Op:   "recurrence.stationary",
		Kind: domain.KindArithmetic,
		Err:  fmt.Errorf("%s: %w", msg, domain.ErrNoStationaryPoint),
	}
}
