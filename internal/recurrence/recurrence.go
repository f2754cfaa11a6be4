package recurrence

import (
	"math"

	"github.com/aalvaropc/recur/internal/domain"
)

// Diagnostic labels emitted by ClosedForm.
const (
	TermC1 = "c1" // n*(1-alpha^n)/(1-alpha)
	TermC2 = "c2" // c1 + (n-1)/(1-alpha)*alpha^n
	TermC3 = "c3" // C_n
)

// Iterate runs the recurrence for p.N steps and returns result_N.
// Each step is reported to obs; n = 0 returns p.Y0 without observations.
// Overflow follows IEEE-754 (±Inf/NaN propagate).
func Iterate(p domain.Params, obs Observer) float64 {
	obs = orDiscard(obs)

	result := p.Y0
	for i := 1; i <= p.N; i++ {
		result = result*p.Alpha + p.X0 + float64(i)*p.Beta
		obs.Step(i, result)
	}
	return result
}

// ClosedForm computes result_N without iterating. It reports c1, c2 and c3
// to obs before returning. alpha == 1 is rejected with ErrSingularAlpha.
func ClosedForm(p domain.Params, obs Observer) (float64, error) {
	if p.Alpha == 1 {
		return 0, &domain.OpError{
			Op:   "recurrence.closed_form",
			Kind: domain.KindArithmetic,
			Err:  domain.ErrSingularAlpha,
		}
	}
	obs = orDiscard(obs)

	t := terms(p.Alpha, float64(p.N))
	obs.Term(TermC1, t.c1)
	obs.Term(TermC2, t.c1+t.tail)
	obs.Term(TermC3, t.cn)

	return t.an*p.Y0 + p.X0*t.geom + p.Beta*t.cn, nil
}

// GeometricSum returns (1-alpha^n)/(1-alpha), the sum of alpha^k for k < n.
// alpha must not be 1.
func GeometricSum(alpha float64, n int) float64 {
	return terms(alpha, float64(n)).geom
}

// Coefficient returns C_n, the closed form of sum_{i=1..n} i*alpha^(n-i).
// alpha must not be 1.
func Coefficient(alpha float64, n int) float64 {
	return terms(alpha, float64(n)).cn
}

// WeightedSum computes sum_{i=1..n} i*alpha^(n-i) by Horner's rule.
// It is the iterative counterpart of Coefficient and is defined for any alpha.
func WeightedSum(alpha float64, n int) float64 {
	s := 0.0
	for i := 1; i <= n; i++ {
		s = s*alpha + float64(i)
	}
	return s
}

type closedTerms struct {
	an   float64 // alpha^x
	geom float64 // (1-alpha^x)/(1-alpha)
	c1   float64
	tail float64 // (x-1)/(1-alpha)*alpha^x
	cn   float64
}

// terms evaluates the closed-form pieces at a real x so the same code serves
// integer step counts and the continuous extension.
func terms(alpha, x float64) closedTerms {
	an := math.Pow(alpha, x)
	d := 1 - alpha
	geom := (1 - an) / d
	c1 := x * geom
	tail := (x - 1) / d * an
	return closedTerms{
		an:   an,
		geom: geom,
		c1:   c1,
		tail: tail,
		cn:   c1 - (alpha-an)/(d*d) + tail,
	}
}
