// Copyright 2026 The rateslib-go Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package dual provides forward-mode automatic differentiation at orders
// zero, one and two over named variables.
//
// Values are immutable. Binary operations unify the operands' variable sets
// in first-seen order and promote mixed AD orders, so arithmetic chains
// compose freely:
//
//	x, _ := dual.NewDual(1.0, []string{"x"}, nil)
//	y, _ := dual.NewDual(2.0, []string{"y"}, nil)
//	z := dual.Mul(x, y)
//	// z.Real() == 2.0, dual.Grad1(z, []string{"x", "y"}) == [2.0, 1.0]
package dual

import (
	"github.com/abrowley/rateslib/internal/dual"
)

// Number is the closed set of differentiable value representations:
// Real, *Dual and *Dual2.
type Number = dual.Number

// Real is a plain value carrying no sensitivities.
type Real = dual.Real

// Dual is a first-order differentiable value: a real part plus a gradient
// against named variables.
type Dual = dual.Dual

// Dual2 is a second-order differentiable value: a real part plus a gradient
// and a symmetric Hessian against named variables.
type Dual2 = dual.Dual2

// Common errors.
var (
	ErrDomain            = dual.ErrDomain
	ErrDivisionByZero    = dual.ErrDivisionByZero
	ErrDimensionMismatch = dual.ErrDimensionMismatch
)

// NewDual returns a first-order value over the given variables. A nil grad
// is the identity seed: one unit sensitivity per variable.
func NewDual(real float64, vars []string, grad []float64) (*Dual, error) {
	return dual.NewDual(real, vars, grad)
}

// NewDual2 returns a second-order value over the given variables. A nil
// grad is the identity seed; a nil hess is the zero Hessian. hess is
// row-major len(vars)×len(vars).
func NewDual2(real float64, vars []string, grad, hess []float64) (*Dual2, error) {
	return dual.NewDual2(real, vars, grad, hess)
}

// Seed returns a fresh identity-seeded Number of the given order.
func Seed(real float64, vars []string, order int) (Number, error) {
	return dual.Seed(real, vars, order)
}

// Promote returns n re-expressed at the given AD order: promotion
// zero-fills the new gradient or Hessian, demotion truncates.
func Promote(n Number, order int) Number { return dual.Promote(n, order) }

// Add returns a + b.
func Add(a, b Number) Number { return dual.Add(a, b) }

// Sub returns a - b.
func Sub(a, b Number) Number { return dual.Sub(a, b) }

// Mul returns a * b.
func Mul(a, b Number) Number { return dual.Mul(a, b) }

// Div returns a / b, failing with ErrDivisionByZero when b's real part is
// exactly zero.
func Div(a, b Number) (Number, error) { return dual.Div(a, b) }

// Pow returns a**b.
func Pow(a, b Number) (Number, error) { return dual.Pow(a, b) }

// PowReal returns n**p for a plain exponent.
func PowReal(n Number, p float64) Number { return dual.PowReal(n, p) }

// Exp returns e**n.
func Exp(n Number) Number { return dual.Exp(n) }

// Log returns the natural logarithm of n, failing with ErrDomain for a
// non-positive real part.
func Log(n Number) (Number, error) { return dual.Log(n) }

// Neg returns -n.
func Neg(n Number) Number { return dual.Neg(n) }

// Abs returns the magnitude of n's real part as a plain float; the sign is
// not differentiable at zero, so no sensitivity is propagated.
func Abs(n Number) float64 { return dual.Abs(n) }

// NormCdf returns the standard normal cumulative distribution at n.
func NormCdf(n Number) Number { return dual.NormCdf(n) }

// NormInvCdf returns the standard normal quantile at n, failing with
// ErrDomain unless the real part lies strictly inside (0, 1).
func NormInvCdf(n Number) (Number, error) { return dual.NormInvCdf(n) }

// Less reports a < b by real part; comparisons ignore sensitivities.
func Less(a, b Number) bool { return dual.Less(a, b) }

// LessEq reports a <= b by real part.
func LessEq(a, b Number) bool { return dual.LessEq(a, b) }

// Greater reports a > b by real part.
func Greater(a, b Number) bool { return dual.Greater(a, b) }

// GreaterEq reports a >= b by real part.
func GreaterEq(a, b Number) bool { return dual.GreaterEq(a, b) }

// Equal reports value equality with variable sets compared as sets: both
// operands are reindexed onto a common ordering before gradients and
// Hessians are compared.
func Equal(a, b Number) bool { return dual.Equal(a, b) }

// Grad1 projects n's gradient onto the requested ordered variable list,
// zero-filled for variables absent from n's manifold.
func Grad1(n Number, vars []string) []float64 { return dual.Grad1(n, vars) }

// Grad2 projects n's Hessian onto the requested ordered variable list as a
// row-major matrix, zero-filled for absent variables.
func Grad2(n Number, vars []string) []float64 { return dual.Grad2(n, vars) }

// VarsUnion returns the first-seen-order union of the variable sets of the
// given Numbers.
func VarsUnion(ns ...Number) []string { return dual.VarsUnion(ns...) }

// MarshalNumber encodes n as JSON; UnmarshalNumber round-trips it to an
// equal-by-value instance.
func MarshalNumber(n Number) ([]byte, error) { return dual.MarshalNumber(n) }

// UnmarshalNumber decodes a Number previously encoded by MarshalNumber.
func UnmarshalNumber(data []byte) (Number, error) { return dual.UnmarshalNumber(data) }
