package curves

import (
	"fmt"

	"github.com/abrowley/rateslib/internal/dual"
	"github.com/abrowley/rateslib/internal/splines"
)

// nodeSpline adapts a solved PPSpline of the curve's element type behind a
// uniform evaluation interface, so Curve does not need to be generic over
// its AD order.
type nodeSpline interface {
	eval(x float64) (dual.Number, error)
}

type realSpline struct{ s *splines.PPSpline[dual.Real] }

func (r realSpline) eval(x float64) (dual.Number, error) { return r.s.PPEvSingle(x) }

type dualSpline struct{ s *splines.PPSpline[*dual.Dual] }

func (d dualSpline) eval(x float64) (dual.Number, error) { return d.s.PPEvSingle(x) }

type dual2Spline struct{ s *splines.PPSpline[*dual.Dual2] }

func (d dual2Spline) eval(x float64) (dual.Number, error) { return d.s.PPEvSingle(x) }

// solveNodeSpline fits a natural cubic spline through the node coordinates
// xs and values ys. Discount-factor curves spline the log of the values.
// The collocation system is augmented with one second-derivative row at
// each boundary, clamped to zero, which exactly consumes the two extra
// degrees of freedom of the clamped cubic knot vector.
func solveNodeSpline(xs []float64, ys []dual.Number, order int, logSpace bool) (nodeSpline, error) {
	if len(xs) < 2 {
		return nil, fmt.Errorf("spline interpolation needs at least 2 nodes: %w", dual.ErrDimensionMismatch)
	}
	const degree = 3

	first, last := xs[0], xs[len(xs)-1]
	t := make([]float64, 0, len(xs)+2*degree)
	for i := 0; i <= degree; i++ {
		t = append(t, first)
	}
	t = append(t, xs[1:len(xs)-1]...)
	for i := 0; i <= degree; i++ {
		t = append(t, last)
	}

	tau := make([]float64, 0, len(xs)+2)
	tau = append(tau, first)
	tau = append(tau, xs...)
	tau = append(tau, last)

	// The duplicated boundary sites carry the second-derivative rows; their
	// targets are zero (natural boundary).
	vals := make([]dual.Number, 0, len(ys)+2)
	vals = append(vals, dual.Real(0))
	for _, y := range ys {
		if logSpace {
			l, err := dual.Log(y)
			if err != nil {
				return nil, fmt.Errorf("spline on log values: %w", err)
			}
			y = l
		}
		vals = append(vals, dual.Promote(y, order))
	}
	vals = append(vals, dual.Real(0))

	switch order {
	case 0:
		y := make([]dual.Real, len(vals))
		for i, v := range vals {
			y[i] = dual.Real(v.Real())
		}
		s, err := splines.NewPPSpline[dual.Real](degree, t, nil)
		if err != nil {
			return nil, err
		}
		if err := s.Csolve(tau, y, 2, 2, false); err != nil {
			return nil, err
		}
		return realSpline{s}, nil
	case 1:
		y := make([]*dual.Dual, len(vals))
		for i, v := range vals {
			y[i] = dual.Promote(v, 1).(*dual.Dual)
		}
		s, err := splines.NewPPSpline[*dual.Dual](degree, t, nil)
		if err != nil {
			return nil, err
		}
		if err := s.Csolve(tau, y, 2, 2, false); err != nil {
			return nil, err
		}
		return dualSpline{s}, nil
	case 2:
		y := make([]*dual.Dual2, len(vals))
		for i, v := range vals {
			y[i] = dual.Promote(v, 2).(*dual.Dual2)
		}
		s, err := splines.NewPPSpline[*dual.Dual2](degree, t, nil)
		if err != nil {
			return nil, err
		}
		if err := s.Csolve(tau, y, 2, 2, false); err != nil {
			return nil, err
		}
		return dual2Spline{s}, nil
	default:
		return nil, fmt.Errorf("AD order %d not in {0, 1, 2}: %w", order, dual.ErrDomain)
	}
}
