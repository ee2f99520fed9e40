package splines

import "errors"

// Common errors.
var (
	ErrNotSolved        = errors.New("spline coefficients not yet solved or assigned")
	ErrInvalidKnotVector = errors.New("invalid knot vector")
)
