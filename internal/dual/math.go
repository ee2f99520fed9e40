package dual

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// unitNormal is the standard normal distribution used by NormCdf and
// NormInvCdf. distuv.UnitNormal is stateless and safe for concurrent use.
var unitNormal = distuv.UnitNormal

// applyUnary dispatches a closed-form scalar transform across the three
// representations. f is the transform value at the real part, df and d2f
// its first and second derivatives there.
func applyUnary(n Number, f, df, d2f float64) Number {
	switch v := n.(type) {
	case *Dual:
		return chain1(v, f, df)
	case *Dual2:
		return chain2(v, f, df, d2f)
	default:
		return Real(f)
	}
}

// Exp returns e**n.
func Exp(n Number) Number {
	e := math.Exp(n.Real())
	return applyUnary(n, e, e, e)
}

// Log returns the natural logarithm of n. It fails with ErrDomain when the
// real part is not strictly positive.
func Log(n Number) (Number, error) {
	v := n.Real()
	if v <= 0 {
		return nil, fmt.Errorf("log of %g: %w", v, ErrDomain)
	}
	return applyUnary(n, math.Log(v), 1/v, -1/(v*v)), nil
}

// PowReal returns n**p for a plain exponent p.
func PowReal(n Number, p float64) Number {
	v := n.Real()
	return applyUnary(n, math.Pow(v, p), p*math.Pow(v, p-1), p*(p-1)*math.Pow(v, p-2))
}

// Pow returns a**b. A plain-valued exponent uses the power rule directly;
// a differentiable exponent evaluates exp(b·log a), which requires a's real
// part to be strictly positive.
func Pow(a, b Number) (Number, error) {
	if b.Order() == 0 {
		return PowReal(a, b.Real()), nil
	}
	la, err := Log(a)
	if err != nil {
		return nil, fmt.Errorf("pow with differentiable exponent: %w", err)
	}
	return Exp(Mul(b, la)), nil
}

// Neg returns -n.
func Neg(n Number) Number {
	switch v := n.(type) {
	case *Dual:
		return v.MulScalar(-1)
	case *Dual2:
		return v.MulScalar(-1)
	default:
		return Real(-n.Real())
	}
}

// Abs returns the magnitude of n's real part as a plain float. The sign is
// not differentiable at zero, so no sensitivity is propagated.
func Abs(n Number) float64 {
	return math.Abs(n.Real())
}

// NormCdf returns Φ(n), the standard normal cumulative distribution at n.
// Φ' is the normal density φ and Φ'' is -x·φ(x).
func NormCdf(n Number) Number {
	v := n.Real()
	pdf := unitNormal.Prob(v)
	return applyUnary(n, unitNormal.CDF(v), pdf, -v*pdf)
}

// NormInvCdf returns Φ⁻¹(n), the standard normal quantile at n. It fails
// with ErrDomain unless the real part lies strictly inside (0, 1).
// With q = Φ⁻¹(p): dq/dp = 1/φ(q) and d²q/dp² = q/φ(q)².
func NormInvCdf(n Number) (Number, error) {
	p := n.Real()
	if p <= 0 || p >= 1 {
		return nil, fmt.Errorf("inverse normal cdf of %g: %w", p, ErrDomain)
	}
	q := unitNormal.Quantile(p)
	pdf := unitNormal.Prob(q)
	return applyUnary(n, q, 1/pdf, q/(pdf*pdf)), nil
}
