// Package linalg solves dense linear systems whose right-hand side carries
// first- or second-order sensitivities.
//
// With A a plain real matrix and x = A⁻¹b, the sensitivities of the
// solution follow from the implicit function theorem with A held fixed:
// ∂x/∂v = A⁻¹·∂b/∂v and likewise for the Hessian of each solution entry.
// Every gradient and Hessian column is therefore just an extra right-hand
// side, and one factorisation solves them all.
package linalg

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/abrowley/rateslib/internal/dual"
)

// ErrSingularMatrix is returned by the exact path when A is numerically
// singular and least squares was not requested.
var ErrSingularMatrix = errors.New("matrix is singular to working precision")

// solveColumns solves A·X = B for a multi-column right-hand side. The exact
// path requires A square and full rank. The least-squares path accepts any
// shape, returning the minimum-residual (over-determined) or minimum-norm
// (under-determined) solution; ill-conditioning is reported by gonum as a
// mat.Condition warning with the result still populated, which is accepted.
func solveColumns(a *mat.Dense, b *mat.Dense, allowLSQ bool) (*mat.Dense, error) {
	ar, ac := a.Dims()
	br, bc := b.Dims()
	if ar != br {
		return nil, fmt.Errorf("matrix has %d rows but rhs has %d: %w", ar, br, dual.ErrDimensionMismatch)
	}

	var x mat.Dense
	if !allowLSQ {
		if ar != ac {
			return nil, fmt.Errorf("exact solve of %d×%d system without least squares: %w", ar, ac, dual.ErrDimensionMismatch)
		}
		var lu mat.LU
		lu.Factorize(a)
		if err := lu.SolveTo(&x, false, b); err != nil {
			return nil, fmt.Errorf("%d×%d system: %w", ar, ac, ErrSingularMatrix)
		}
		return &x, nil
	}

	if err := x.Solve(a, b); err != nil {
		var cond mat.Condition
		if !errors.As(err, &cond) {
			return nil, fmt.Errorf("least-squares solve of %d×%d system with %d rhs columns: %w", ar, ac, bc, err)
		}
	}
	return &x, nil
}

// SolveReal solves A·x = b for a plain right-hand side.
func SolveReal(a *mat.Dense, b []float64, allowLSQ bool) ([]float64, error) {
	rhs := mat.NewDense(len(b), 1, nil)
	for i, v := range b {
		rhs.Set(i, 0, v)
	}
	x, err := solveColumns(a, rhs, allowLSQ)
	if err != nil {
		return nil, err
	}
	n, _ := x.Dims()
	out := make([]float64, n)
	for i := range out {
		out[i] = x.At(i, 0)
	}
	return out, nil
}

// SolveDual solves A·x = b for a first-order right-hand side, propagating
// the gradient of every entry of b through the solve. Identical inputs
// always yield bit-identical outputs.
func SolveDual(a *mat.Dense, b []*dual.Dual, allowLSQ bool) ([]*dual.Dual, error) {
	vars := varsOf(b)
	m := len(vars)

	// Columns: value, then one gradient column per variable.
	rhs := mat.NewDense(len(b), 1+m, nil)
	for i, bi := range b {
		rhs.Set(i, 0, bi.Real())
		for j, g := range dual.Grad1(bi, vars) {
			rhs.Set(i, 1+j, g)
		}
	}

	x, err := solveColumns(a, rhs, allowLSQ)
	if err != nil {
		return nil, err
	}
	n, _ := x.Dims()
	out := make([]*dual.Dual, n)
	for i := range out {
		grad := make([]float64, m)
		for j := range grad {
			grad[j] = x.At(i, 1+j)
		}
		out[i], err = dual.NewDual(x.At(i, 0), vars, grad)
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

// SolveDual2 solves A·x = b for a second-order right-hand side, propagating
// gradients and Hessians through the solve.
func SolveDual2(a *mat.Dense, b []*dual.Dual2, allowLSQ bool) ([]*dual.Dual2, error) {
	vars := varsOf(b)
	m := len(vars)

	// Columns: value, m gradient columns, then m² Hessian columns.
	rhs := mat.NewDense(len(b), 1+m+m*m, nil)
	for i, bi := range b {
		rhs.Set(i, 0, bi.Real())
		for j, g := range dual.Grad1(bi, vars) {
			rhs.Set(i, 1+j, g)
		}
		for j, h := range dual.Grad2(bi, vars) {
			rhs.Set(i, 1+m+j, h)
		}
	}

	x, err := solveColumns(a, rhs, allowLSQ)
	if err != nil {
		return nil, err
	}
	n, _ := x.Dims()
	out := make([]*dual.Dual2, n)
	for i := range out {
		grad := make([]float64, m)
		for j := range grad {
			grad[j] = x.At(i, 1+j)
		}
		hess := make([]float64, m*m)
		for j := range hess {
			hess[j] = x.At(i, 1+m+j)
		}
		out[i], err = dual.NewDual2(x.At(i, 0), vars, grad, hess)
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

// varsOf returns the first-seen-order union of the variable sets in b.
func varsOf[T dual.Number](b []T) []string {
	ns := make([]dual.Number, len(b))
	for i, v := range b {
		ns[i] = v
	}
	return dual.VarsUnion(ns...)
}
