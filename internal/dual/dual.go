package dual

import "fmt"

// Dual is a first-order differentiable value: a real part and a gradient
// index-aligned to an ordered set of unique variable names. Duals are
// immutable; arithmetic returns new values.
type Dual struct {
	real float64
	vars []string // interned canonical slice, shared, never mutated
	dual []float64
}

// NewDual returns a first-order value over the given variables. A nil grad
// is the identity seed: one unit sensitivity per variable. Otherwise grad
// must match vars in length and vars must be unique.
func NewDual(real float64, vars []string, grad []float64) (*Dual, error) {
	if grad == nil {
		grad = make([]float64, len(vars))
		for i := range grad {
			grad[i] = 1
		}
	}
	if err := validateVars(vars, len(grad)); err != nil {
		return nil, err
	}
	d := make([]float64, len(grad))
	copy(d, grad)
	return &Dual{real: real, vars: internVars(vars), dual: d}, nil
}

// Real returns the value part.
func (d *Dual) Real() float64 { return d.real }

// Order returns 1.
func (d *Dual) Order() int { return 1 }

func (d *Dual) isNumber() {}

// Vars returns a copy of the ordered variable names.
func (d *Dual) Vars() []string {
	out := make([]string, len(d.vars))
	copy(out, d.vars)
	return out
}

// Dual returns a copy of the gradient, index-aligned to Vars.
func (d *Dual) Dual() []float64 {
	out := make([]float64, len(d.dual))
	copy(out, d.dual)
	return out
}

// String implements fmt.Stringer.
func (d *Dual) String() string {
	return fmt.Sprintf("Dual(%g, %v, %v)", d.real, d.vars, d.dual)
}

// align re-expresses both operands' gradients over the unified variable
// basis. The returned slices are fresh and safe to mutate.
func (d *Dual) align(o *Dual) (vars []string, gd, go_ []float64) {
	vars = unionVars(d.vars, o.vars)
	return vars, spreadGrad(d.dual, d.vars, vars), spreadGrad(o.dual, o.vars, vars)
}

// Add returns d + o.
func (d *Dual) Add(o *Dual) *Dual {
	vars, gd, go_ := d.align(o)
	for i := range gd {
		gd[i] += go_[i]
	}
	return &Dual{real: d.real + o.real, vars: vars, dual: gd}
}

// Sub returns d - o.
func (d *Dual) Sub(o *Dual) *Dual {
	vars, gd, go_ := d.align(o)
	for i := range gd {
		gd[i] -= go_[i]
	}
	return &Dual{real: d.real - o.real, vars: vars, dual: gd}
}

// Mul returns d * o by the product rule.
func (d *Dual) Mul(o *Dual) *Dual {
	vars, gd, go_ := d.align(o)
	for i := range gd {
		gd[i] = gd[i]*o.real + go_[i]*d.real
	}
	return &Dual{real: d.real * o.real, vars: vars, dual: gd}
}

// Div returns d / o by the quotient rule. It fails with ErrDivisionByZero
// when o's real part is exactly zero.
func (d *Dual) Div(o *Dual) (*Dual, error) {
	if o.real == 0 {
		return nil, fmt.Errorf("dividing by %v: %w", o, ErrDivisionByZero)
	}
	vars, gd, go_ := d.align(o)
	q := d.real / o.real
	for i := range gd {
		gd[i] = (gd[i] - q*go_[i]) / o.real
	}
	return &Dual{real: q, vars: vars, dual: gd}, nil
}

// MulScalar returns d scaled by a.
func (d *Dual) MulScalar(a float64) *Dual {
	g := make([]float64, len(d.dual))
	for i, v := range d.dual {
		g[i] = v * a
	}
	return &Dual{real: d.real * a, vars: d.vars, dual: g}
}

// Zero returns the additive identity. Usable on a nil receiver so that
// generic accumulators can start from a zero value.
func (d *Dual) Zero() *Dual { return &Dual{} }

// Equal reports value equality up to variable reordering.
func (d *Dual) Equal(o *Dual) bool { return Equal(d, o) }

// Number returns d as a Number.
func (d *Dual) Number() Number { return d }

// chain1 applies a scalar transform with value f and derivative df to d,
// propagating the gradient by the chain rule.
func chain1(d *Dual, f, df float64) *Dual {
	g := make([]float64, len(d.dual))
	for i, v := range d.dual {
		g[i] = df * v
	}
	return &Dual{real: f, vars: d.vars, dual: g}
}
