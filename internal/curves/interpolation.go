package curves

import (
	"fmt"

	"github.com/abrowley/rateslib/internal/dual"
)

// Interpolation selects the policy used to value a curve between nodes.
type Interpolation int

// The closed set of interpolation policies.
const (
	// InterpLinear interpolates node values linearly in time.
	InterpLinear Interpolation = iota
	// InterpLogLinear interpolates the logarithm of node values linearly,
	// the standard policy for discount factors.
	InterpLogLinear
	// InterpLinearZeroRate interpolates continuously compounded zero rates
	// implied by discount-factor nodes linearly in time.
	InterpLinearZeroRate
	// InterpFlatForward carries the left node's value forward.
	InterpFlatForward
	// InterpFlatBackward carries the right node's value backward.
	InterpFlatBackward
	// InterpNull performs exact node lookup only; querying between nodes
	// is an error.
	InterpNull
	// InterpSpline fits a natural cubic spline through the nodes
	// (log-space for discount-factor curves).
	InterpSpline
)

var interpNames = map[Interpolation]string{
	InterpLinear:         "linear",
	InterpLogLinear:      "log_linear",
	InterpLinearZeroRate: "linear_zero_rate",
	InterpFlatForward:    "flat_forward",
	InterpFlatBackward:   "flat_backward",
	InterpNull:           "null",
	InterpSpline:         "spline",
}

// String returns the policy's wire name.
func (p Interpolation) String() string {
	if s, ok := interpNames[p]; ok {
		return s
	}
	return fmt.Sprintf("Interpolation(%d)", int(p))
}

// ParseInterpolation resolves a wire name back to a policy.
func ParseInterpolation(s string) (Interpolation, error) {
	for p, name := range interpNames {
		if name == s {
			return p, nil
		}
	}
	return 0, fmt.Errorf("unknown interpolation %q: %w", s, dual.ErrDomain)
}

// interpolate applies the policy formula for a query coordinate x between
// the bracketing nodes (x1, y1) and (x2, y2). Coordinates are year
// fractions measured from the curve start, so the start sits at zero.
// The result's AD order follows the node values' order.
func interpolate(x, x1 float64, y1 dual.Number, x2 float64, y2 dual.Number, p Interpolation) (dual.Number, error) {
	switch p {
	case InterpLinear:
		w := (x - x1) / (x2 - x1)
		return dual.Add(y1, dual.Mul(dual.Sub(y2, y1), dual.Real(w))), nil

	case InterpLogLinear:
		l1, err := dual.Log(y1)
		if err != nil {
			return nil, fmt.Errorf("log-linear interpolation: %w", err)
		}
		l2, err := dual.Log(y2)
		if err != nil {
			return nil, fmt.Errorf("log-linear interpolation: %w", err)
		}
		w := (x - x1) / (x2 - x1)
		return dual.Exp(dual.Add(l1, dual.Mul(dual.Sub(l2, l1), dual.Real(w)))), nil

	case InterpLinearZeroRate:
		// z_i = -log(y_i)/x_i is the continuously compounded zero rate at
		// node i. The first interval has no zero rate at x=0 and uses the
		// right node's rate flat.
		l2, err := dual.Log(y2)
		if err != nil {
			return nil, fmt.Errorf("zero-rate interpolation: %w", err)
		}
		zr2, err := dual.Div(dual.Neg(l2), dual.Real(x2))
		if err != nil {
			return nil, fmt.Errorf("zero-rate interpolation: %w", err)
		}
		var zr1 dual.Number
		if x1 == 0 {
			zr1 = zr2
		} else {
			l1, err := dual.Log(y1)
			if err != nil {
				return nil, fmt.Errorf("zero-rate interpolation: %w", err)
			}
			zr1, err = dual.Div(dual.Neg(l1), dual.Real(x1))
			if err != nil {
				return nil, fmt.Errorf("zero-rate interpolation: %w", err)
			}
		}
		w := (x - x1) / (x2 - x1)
		z := dual.Add(zr1, dual.Mul(dual.Sub(zr2, zr1), dual.Real(w)))
		return dual.Exp(dual.Mul(z, dual.Real(-x))), nil

	case InterpFlatForward:
		if x >= x2 {
			return y2, nil
		}
		return y1, nil

	case InterpFlatBackward:
		if x <= x1 {
			return y1, nil
		}
		return y2, nil

	default:
		return nil, fmt.Errorf("policy %v has no pairwise formula: %w", p, dual.ErrDomain)
	}
}
