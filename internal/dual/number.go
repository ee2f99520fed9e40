// Package dual implements exact forward-mode automatic differentiation at
// orders zero, one and two over named variables.
//
// A Number is one of three concrete representations:
//   - Real: a plain float64 with no sensitivity information.
//   - Dual: a value plus a gradient against an ordered set of variable names.
//   - Dual2: a value plus a gradient and a symmetric Hessian.
//
// Binary operations unify the operands' variable sets in first-seen order
// (left operand first) and promote mixed orders to the higher order, so
// arbitrary arithmetic chains compose without bookkeeping by the caller.
// All values are immutable; every operation returns a new Number.
package dual

import "fmt"

// Number is the closed set of differentiable value representations.
// It is implemented by Real, *Dual and *Dual2 only.
type Number interface {
	// Real returns the order-zero (value) part.
	Real() float64
	// Order returns the differentiation order carried: 0, 1 or 2.
	Order() int

	isNumber()
}

// Real is a plain value carrying no sensitivities. It behaves as a Dual or
// Dual2 with an empty variable set when combined with higher-order operands.
type Real float64

// Real returns the value itself.
func (r Real) Real() float64 { return float64(r) }

// Order returns 0.
func (r Real) Order() int { return 0 }

func (r Real) isNumber() {}

// Arithmetic on Real, satisfying the same capability set as Dual and Dual2
// so that generic code can be instantiated with plain values.

// Add returns r + o.
func (r Real) Add(o Real) Real { return r + o }

// Sub returns r - o.
func (r Real) Sub(o Real) Real { return r - o }

// MulScalar returns r scaled by a.
func (r Real) MulScalar(a float64) Real { return r * Real(a) }

// Zero returns the additive identity.
func (r Real) Zero() Real { return 0 }

// Equal reports exact equality.
func (r Real) Equal(o Real) bool { return r == o }

// Number returns r as a Number.
func (r Real) Number() Number { return r }

// maxOrder returns the higher of the two operands' orders.
func maxOrder(a, b Number) int {
	if a.Order() >= b.Order() {
		return a.Order()
	}
	return b.Order()
}

// Promote returns n re-expressed at the given order. Promotion keeps the
// existing variable set and zero-fills the new gradient or Hessian; demotion
// truncates. Promote(n, n.Order()) returns n unchanged.
func Promote(n Number, order int) Number {
	if order == n.Order() {
		return n
	}
	switch order {
	case 0:
		return Real(n.Real())
	case 1:
		switch v := n.(type) {
		case Real:
			return &Dual{real: float64(v)}
		case *Dual2:
			d := make([]float64, len(v.dual))
			copy(d, v.dual)
			return &Dual{real: v.real, vars: v.vars, dual: d}
		}
	case 2:
		switch v := n.(type) {
		case Real:
			return &Dual2{real: float64(v)}
		case *Dual:
			m := len(v.vars)
			d := make([]float64, m)
			copy(d, v.dual)
			return &Dual2{real: v.real, vars: v.vars, dual: d, dual2: make([]float64, m*m)}
		}
	}
	panic(fmt.Sprintf("dual: invalid AD order %d", order))
}

// Seed returns a fresh Number of the given order whose value is real and
// whose gradient is the identity seed over vars (unit diagonal, zero
// Hessian). Order 0 ignores vars. Used to (re)initialise calibration
// variables, e.g. curve nodes.
func Seed(real float64, vars []string, order int) (Number, error) {
	switch order {
	case 0:
		return Real(real), nil
	case 1:
		return NewDual(real, vars, nil)
	case 2:
		return NewDual2(real, vars, nil, nil)
	default:
		return nil, fmt.Errorf("AD order %d not in {0, 1, 2}: %w", order, ErrDomain)
	}
}

// Add returns a + b, unifying variable sets and promoting mixed orders.
func Add(a, b Number) Number {
	switch maxOrder(a, b) {
	case 0:
		return Real(a.Real() + b.Real())
	case 1:
		return Promote(a, 1).(*Dual).Add(Promote(b, 1).(*Dual))
	default:
		return Promote(a, 2).(*Dual2).Add(Promote(b, 2).(*Dual2))
	}
}

// Sub returns a - b.
func Sub(a, b Number) Number {
	switch maxOrder(a, b) {
	case 0:
		return Real(a.Real() - b.Real())
	case 1:
		return Promote(a, 1).(*Dual).Sub(Promote(b, 1).(*Dual))
	default:
		return Promote(a, 2).(*Dual2).Sub(Promote(b, 2).(*Dual2))
	}
}

// Mul returns a * b.
func Mul(a, b Number) Number {
	switch maxOrder(a, b) {
	case 0:
		return Real(a.Real() * b.Real())
	case 1:
		return Promote(a, 1).(*Dual).Mul(Promote(b, 1).(*Dual))
	default:
		return Promote(a, 2).(*Dual2).Mul(Promote(b, 2).(*Dual2))
	}
}

// Div returns a / b. It fails with ErrDivisionByZero when b's real part is
// exactly zero.
func Div(a, b Number) (Number, error) {
	if b.Real() == 0 {
		return nil, fmt.Errorf("dividing by %v: %w", b, ErrDivisionByZero)
	}
	switch maxOrder(a, b) {
	case 0:
		return Real(a.Real() / b.Real()), nil
	case 1:
		return Promote(a, 1).(*Dual).Div(Promote(b, 1).(*Dual))
	default:
		return Promote(a, 2).(*Dual2).Div(Promote(b, 2).(*Dual2))
	}
}

// Comparisons order Numbers by real part only.

// Less reports a < b by real part.
func Less(a, b Number) bool { return a.Real() < b.Real() }

// LessEq reports a <= b by real part.
func LessEq(a, b Number) bool { return a.Real() <= b.Real() }

// Greater reports a > b by real part.
func Greater(a, b Number) bool { return a.Real() > b.Real() }

// GreaterEq reports a >= b by real part.
func GreaterEq(a, b Number) bool { return a.Real() >= b.Real() }

// Equal reports value equality. Variable sets are compared as sets: both
// operands are reindexed onto the union ordering before the gradient and
// Hessian entries are compared, so two Numbers with differently ordered but
// equivalent manifolds compare equal. An order-0 value equals a higher-order
// value whose sensitivities are all zero; order-1 and order-2 values are
// never equal to each other.
func Equal(a, b Number) bool {
	oa, ob := a.Order(), b.Order()
	if oa != ob && oa != 0 && ob != 0 {
		return false
	}
	if a.Real() != b.Real() {
		return false
	}
	switch maxOrder(a, b) {
	case 0:
		return true
	case 1:
		da := Promote(a, 1).(*Dual)
		db := Promote(b, 1).(*Dual)
		union := unionVars(da.vars, db.vars)
		ga := spreadGrad(da.dual, da.vars, union)
		gb := spreadGrad(db.dual, db.vars, union)
		for i := range ga {
			if ga[i] != gb[i] {
				return false
			}
		}
		return true
	default:
		da := Promote(a, 2).(*Dual2)
		db := Promote(b, 2).(*Dual2)
		union := unionVars(da.vars, db.vars)
		ga := spreadGrad(da.dual, da.vars, union)
		gb := spreadGrad(db.dual, db.vars, union)
		for i := range ga {
			if ga[i] != gb[i] {
				return false
			}
		}
		ha := spreadHess(da.dual2, da.vars, union)
		hb := spreadHess(db.dual2, db.vars, union)
		for i := range ha {
			if ha[i] != hb[i] {
				return false
			}
		}
		return true
	}
}

// Grad1 projects n's gradient onto the requested ordered variable list,
// inserting zero for any variable absent from n's own manifold. An order-0
// value projects to an all-zero gradient.
func Grad1(n Number, vars []string) []float64 {
	switch v := n.(type) {
	case *Dual:
		return spreadGrad(v.dual, v.vars, vars)
	case *Dual2:
		return spreadGrad(v.dual, v.vars, vars)
	default:
		return make([]float64, len(vars))
	}
}

// Grad2 projects n's Hessian onto the requested ordered variable list as a
// row-major len(vars)×len(vars) matrix, zero-filled for absent variables.
// Values of order below 2 project to an all-zero matrix.
func Grad2(n Number, vars []string) []float64 {
	if v, ok := n.(*Dual2); ok {
		return spreadHess(v.dual2, v.vars, vars)
	}
	return make([]float64, len(vars)*len(vars))
}

// VarsUnion returns the interned first-seen-order union of the variable
// sets of the given Numbers.
func VarsUnion(ns ...Number) []string {
	var union []string
	for _, n := range ns {
		switch v := n.(type) {
		case *Dual:
			union = unionVars(union, v.vars)
		case *Dual2:
			union = unionVars(union, v.vars)
		}
	}
	return union
}
