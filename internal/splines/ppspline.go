package splines

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/mat"

	"github.com/abrowley/rateslib/internal/dual"
	"github.com/abrowley/rateslib/internal/linalg"
	"github.com/abrowley/rateslib/internal/parallel"
)

// Num is the arithmetic capability set a spline element type must provide.
// It is satisfied by dual.Real, *dual.Dual and *dual.Dual2, letting one
// spline implementation serve plain and differentiable coefficients alike.
type Num[T any] interface {
	Add(T) T
	Sub(T) T
	MulScalar(float64) T
	Zero() T
	Equal(T) bool
	Number() dual.Number
}

// PPSpline is a piecewise polynomial spline in B-spline representation:
// degree k, non-decreasing knot vector t, and n = len(t)-k-1 coefficients
// of element type T. Coefficients are absent until Csolve runs or they are
// supplied explicitly; after that the spline is immutable and safe for
// concurrent evaluation.
type PPSpline[T Num[T]] struct {
	k int
	t []float64
	n int
	c []T // nil until solved or assigned
}

// NewPPSpline constructs a spline of degree k on knot vector t. c may be
// nil (solve later via Csolve) or a coefficient vector of length
// len(t)-k-1.
func NewPPSpline[T Num[T]](k int, t []float64, c []T) (*PPSpline[T], error) {
	if k < 0 {
		return nil, fmt.Errorf("degree %d: %w", k, ErrInvalidKnotVector)
	}
	n := len(t) - k - 1
	if n < 1 {
		return nil, fmt.Errorf("%d knots for degree %d: %w", len(t), k, ErrInvalidKnotVector)
	}
	for i := 1; i < len(t); i++ {
		if t[i] < t[i-1] {
			return nil, fmt.Errorf("knots decrease at index %d: %w", i, ErrInvalidKnotVector)
		}
	}
	if t[0] == t[len(t)-1] {
		return nil, fmt.Errorf("knot vector spans an empty domain: %w", ErrInvalidKnotVector)
	}
	kt := make([]float64, len(t))
	copy(kt, t)
	s := &PPSpline[T]{k: k, t: kt, n: n}
	if c != nil {
		if len(c) != n {
			return nil, fmt.Errorf("%d coefficients for %d basis functions: %w", len(c), n, dual.ErrDimensionMismatch)
		}
		s.c = make([]T, n)
		copy(s.c, c)
	}
	return s, nil
}

// K returns the spline degree.
func (s *PPSpline[T]) K() int { return s.k }

// T returns a copy of the knot vector.
func (s *PPSpline[T]) T() []float64 {
	out := make([]float64, len(s.t))
	copy(out, s.t)
	return out
}

// N returns the number of basis functions (and coefficients).
func (s *PPSpline[T]) N() int { return s.n }

// C returns a copy of the coefficient vector, or nil when unsolved.
func (s *PPSpline[T]) C() []T {
	if s.c == nil {
		return nil
	}
	out := make([]T, len(s.c))
	copy(out, s.c)
	return out
}

// BsplMatrix builds the collocation matrix for sites tau: one row per site,
// one column per basis function. The first and last rows evaluate the
// leftN-th and rightN-th derivatives of the basis at the boundary sites
// (order 0 is plain evaluation), carrying the boundary derivative
// constraints of Csolve.
func (s *PPSpline[T]) BsplMatrix(tau []float64, leftN, rightN int) *mat.Dense {
	b := mat.NewDense(len(tau), s.n, nil)
	for r, x := range tau {
		m := 0
		switch r {
		case 0:
			m = leftN
		case len(tau) - 1:
			m = rightN
		}
		for i := 0; i < s.n; i++ {
			b.Set(r, i, bspldnevSingle(x, i, s.k, s.t, m, s.k))
		}
	}
	return b
}

// Csolve determines the spline coefficients by collocation: the spline (or
// its boundary derivatives, per leftN/rightN) matches y at the strictly
// increasing sites tau. Square systems solve exactly; when allowLSQ is set
// and the system is non-square, the least-squares path returns the
// minimum-residual or minimum-norm solution instead.
//
// The element type decides how sensitivities flow: solving against Dual or
// Dual2 values propagates their gradients (and Hessians) through the solve,
// so the resulting coefficients are themselves differentiable.
func (s *PPSpline[T]) Csolve(tau []float64, y []T, leftN, rightN int, allowLSQ bool) error {
	if len(tau) != len(y) {
		return fmt.Errorf("%d sites with %d values: %w", len(tau), len(y), dual.ErrDimensionMismatch)
	}
	if len(tau) == 0 {
		return fmt.Errorf("no collocation sites: %w", dual.ErrDimensionMismatch)
	}
	for i := 1; i < len(tau); i++ {
		if tau[i] > tau[i-1] {
			continue
		}
		// A repeated boundary site is allowed when it carries a derivative
		// constraint row rather than a second value row.
		if tau[i] == tau[i-1] && ((i == 1 && leftN > 0) || (i == len(tau)-1 && rightN > 0)) {
			continue
		}
		return fmt.Errorf("collocation sites must strictly increase at index %d: %w", i, dual.ErrDomain)
	}
	if len(tau) != s.n && !allowLSQ {
		return fmt.Errorf("%d sites for %d coefficients without least squares: %w", len(tau), s.n, dual.ErrDimensionMismatch)
	}
	useLSQ := allowLSQ && len(tau) != s.n

	b := s.BsplMatrix(tau, leftN, rightN)

	switch ys := any(y).(type) {
	case []dual.Real:
		rhs := make([]float64, len(ys))
		for i, v := range ys {
			rhs[i] = float64(v)
		}
		sol, err := linalg.SolveReal(b, rhs, useLSQ)
		if err != nil {
			return fmt.Errorf("collocation solve: %w", err)
		}
		c := make([]dual.Real, len(sol))
		for i, v := range sol {
			c[i] = dual.Real(v)
		}
		s.c = any(c).([]T)
	case []*dual.Dual:
		sol, err := linalg.SolveDual(b, ys, useLSQ)
		if err != nil {
			return fmt.Errorf("collocation solve: %w", err)
		}
		s.c = any(sol).([]T)
	case []*dual.Dual2:
		sol, err := linalg.SolveDual2(b, ys, useLSQ)
		if err != nil {
			return fmt.Errorf("collocation solve: %w", err)
		}
		s.c = any(sol).([]T)
	default:
		return fmt.Errorf("unsupported element type %T: %w", y, dual.ErrDomain)
	}
	return nil
}

// spanIndex returns the index ℓ of the knot span containing x, clamped so
// that the nonzero bases at x are exactly ℓ-k..ℓ.
func (s *PPSpline[T]) spanIndex(x float64) int {
	l := sort.Search(len(s.t), func(i int) bool { return s.t[i] > x }) - 1
	if l > s.n-1 {
		l = s.n - 1
	}
	if l < s.k {
		l = s.k
	}
	return l
}

// PPEvSingle evaluates the spline at x, summing only the at most k+1
// locally nonzero basis functions. Sites outside the knot domain evaluate
// to zero: the basis has no support there and extrapolation is a separate
// policy choice, not a spline concern.
func (s *PPSpline[T]) PPEvSingle(x float64) (T, error) {
	return s.evalSingle(x, 0)
}

// PPDNevSingle evaluates the m-th derivative of the spline at x.
func (s *PPSpline[T]) PPDNevSingle(x float64, m int) (T, error) {
	return s.evalSingle(x, m)
}

func (s *PPSpline[T]) evalSingle(x float64, m int) (T, error) {
	if s.c == nil {
		var zero T
		return zero.Zero(), fmt.Errorf("evaluating spline at %g: %w", x, ErrNotSolved)
	}
	return s.evalSolved(x, m), nil
}

// evalSolved requires s.c to be populated.
func (s *PPSpline[T]) evalSolved(x float64, m int) T {
	var zero T
	sum := zero.Zero()
	if x < s.t[0] || x > s.t[len(s.t)-1] {
		return sum
	}
	l := s.spanIndex(x)
	for i := l - s.k; i <= l; i++ {
		if i < 0 || i >= s.n {
			continue
		}
		sum = sum.Add(s.c[i].MulScalar(bspldnevSingle(x, i, s.k, s.t, m, s.k)))
	}
	return sum
}

// PPEv evaluates the spline at each site in xs. Large site vectors are
// evaluated across goroutines; a solved spline is immutable, so sites are
// independent.
func (s *PPSpline[T]) PPEv(xs []float64) ([]T, error) {
	return s.evalBulk(xs, 0)
}

// PPDNev evaluates the m-th derivative of the spline at each site in xs.
func (s *PPSpline[T]) PPDNev(xs []float64, m int) ([]T, error) {
	return s.evalBulk(xs, m)
}

func (s *PPSpline[T]) evalBulk(xs []float64, m int) ([]T, error) {
	if s.c == nil {
		return nil, fmt.Errorf("evaluating spline at %d sites: %w", len(xs), ErrNotSolved)
	}
	out := make([]T, len(xs))
	parallel.For(len(xs), func(i int) {
		out[i] = s.evalSolved(xs[i], m)
	}, parallel.DefaultConfig())
	return out, nil
}

// Equal reports whether two splines have the same degree, knot vector and
// coefficient sequence, coefficients compared under Number equality. Two
// unsolved splines with matching degree and knots are equal.
func (s *PPSpline[T]) Equal(o *PPSpline[T]) bool {
	if s.k != o.k || len(s.t) != len(o.t) {
		return false
	}
	for i := range s.t {
		if s.t[i] != o.t[i] {
			return false
		}
	}
	if (s.c == nil) != (o.c == nil) {
		return false
	}
	for i := range s.c {
		if !s.c[i].Equal(o.c[i]) {
			return false
		}
	}
	return true
}

// PPEvSingleDual evaluates the spline at x and re-expresses the result at
// AD order 1, so splines of mixed element types combine uniformly in one
// computation graph. A plain result gains an empty variable set with zero
// sensitivity.
func PPEvSingleDual[T Num[T]](s *PPSpline[T], x float64) (*dual.Dual, error) {
	v, err := s.PPEvSingle(x)
	if err != nil {
		return nil, err
	}
	return dual.Promote(v.Number(), 1).(*dual.Dual), nil
}

// PPEvSingleDual2 evaluates the spline at x and re-expresses the result at
// AD order 2.
func PPEvSingleDual2[T Num[T]](s *PPSpline[T], x float64) (*dual.Dual2, error) {
	v, err := s.PPEvSingle(x)
	if err != nil {
		return nil, err
	}
	return dual.Promote(v.Number(), 2).(*dual.Dual2), nil
}

// PPDNevSingleDual evaluates the m-th derivative at x at AD order 1.
func PPDNevSingleDual[T Num[T]](s *PPSpline[T], x float64, m int) (*dual.Dual, error) {
	v, err := s.PPDNevSingle(x, m)
	if err != nil {
		return nil, err
	}
	return dual.Promote(v.Number(), 1).(*dual.Dual), nil
}

// PPDNevSingleDual2 evaluates the m-th derivative at x at AD order 2.
func PPDNevSingleDual2[T Num[T]](s *PPSpline[T], x float64, m int) (*dual.Dual2, error) {
	v, err := s.PPDNevSingle(x, m)
	if err != nil {
		return nil, err
	}
	return dual.Promote(v.Number(), 2).(*dual.Dual2), nil
}
