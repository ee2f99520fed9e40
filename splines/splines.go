// Copyright 2026 The rateslib-go Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package splines provides B-spline basis evaluation and a piecewise
// polynomial spline generic over the numeric element type, so spline
// coefficients can be plain or differentiable values.
//
// Example:
//
//	t := []float64{0, 0, 0, 0, 2, 4, 4, 4, 4}
//	s, _ := splines.NewPPSpline[dual.Real](3, t, nil)
//	err := s.Csolve([]float64{0, 1, 2, 3, 4},
//	    []dual.Real{0, 1, 0, 1, 0}, 2, 2, false)
//	v, _ := s.PPEvSingle(2.0)
package splines

import (
	"github.com/abrowley/rateslib/internal/dual"
	"github.com/abrowley/rateslib/internal/linalg"
	"github.com/abrowley/rateslib/internal/splines"
)

// Num is the arithmetic capability set a spline element type must provide.
// dual.Real, *dual.Dual and *dual.Dual2 satisfy it.
type Num[T any] = splines.Num[T]

// PPSpline is a piecewise polynomial spline in B-spline representation
// with coefficients of element type T.
type PPSpline[T Num[T]] = splines.PPSpline[T]

// Common errors.
var (
	ErrNotSolved         = splines.ErrNotSolved
	ErrInvalidKnotVector = splines.ErrInvalidKnotVector
	ErrSingularMatrix    = linalg.ErrSingularMatrix
)

// NewPPSpline constructs a spline of degree k on knot vector t. c may be
// nil (solve later via Csolve) or a coefficient vector of length
// len(t)-k-1.
func NewPPSpline[T Num[T]](k int, t []float64, c []T) (*PPSpline[T], error) {
	return splines.NewPPSpline[T](k, t, c)
}

// ImportPPSpline decodes a spline previously encoded by its MarshalJSON.
func ImportPPSpline[T Num[T]](data []byte) (*PPSpline[T], error) {
	return splines.ImportPPSpline[T](data)
}

// BSplevSingle evaluates the i-th B-spline basis function of degree k on
// knot vector t at x by the Cox–de Boor recursion.
func BSplevSingle(x float64, i, k int, t []float64) float64 {
	return splines.BSplevSingle(x, i, k, t)
}

// BSpldnevSingle evaluates the m-th derivative of the i-th B-spline basis
// function of degree k on knot vector t at x.
func BSpldnevSingle(x float64, i, k int, t []float64, m int) float64 {
	return splines.BSpldnevSingle(x, i, k, t, m)
}

// PPEvSingleDual evaluates s at x and re-expresses the result at AD order
// 1, with zero sensitivity when the element type carries none.
func PPEvSingleDual[T Num[T]](s *PPSpline[T], x float64) (*dual.Dual, error) {
	return splines.PPEvSingleDual[T](s, x)
}

// PPEvSingleDual2 evaluates s at x and re-expresses the result at AD
// order 2.
func PPEvSingleDual2[T Num[T]](s *PPSpline[T], x float64) (*dual.Dual2, error) {
	return splines.PPEvSingleDual2[T](s, x)
}

// PPDNevSingleDual evaluates the m-th derivative of s at x at AD order 1.
func PPDNevSingleDual[T Num[T]](s *PPSpline[T], x float64, m int) (*dual.Dual, error) {
	return splines.PPDNevSingleDual[T](s, x, m)
}

// PPDNevSingleDual2 evaluates the m-th derivative of s at x at AD order 2.
func PPDNevSingleDual2[T Num[T]](s *PPSpline[T], x float64, m int) (*dual.Dual2, error) {
	return splines.PPDNevSingleDual2[T](s, x, m)
}
