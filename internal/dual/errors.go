package dual

import "errors"

// Common errors.
var (
	ErrDomain            = errors.New("argument outside the function's domain")
	ErrDivisionByZero    = errors.New("division by a value with zero real part")
	ErrDimensionMismatch = errors.New("dimension mismatch")
)
