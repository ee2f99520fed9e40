package dual

import "fmt"

// Dual2 is a second-order differentiable value: a real part, a gradient and
// a symmetric Hessian, both index-aligned to an ordered set of unique
// variable names. The Hessian is stored dense row-major (m×m for m vars).
type Dual2 struct {
	real  float64
	vars  []string // interned canonical slice, shared, never mutated
	dual  []float64
	dual2 []float64 // row-major m×m, symmetric
}

// NewDual2 returns a second-order value over the given variables. A nil
// grad is the identity seed (unit sensitivities); a nil hess is the zero
// Hessian. Otherwise grad must match vars and hess must be a row-major
// len(vars)×len(vars) matrix.
func NewDual2(real float64, vars []string, grad, hess []float64) (*Dual2, error) {
	if grad == nil {
		grad = make([]float64, len(vars))
		for i := range grad {
			grad[i] = 1
		}
	}
	if err := validateVars(vars, len(grad)); err != nil {
		return nil, err
	}
	m := len(vars)
	if hess == nil {
		hess = make([]float64, m*m)
	}
	if len(hess) != m*m {
		return nil, fmt.Errorf("hessian of length %d for %d vars: %w", len(hess), m, ErrDimensionMismatch)
	}
	d := make([]float64, len(grad))
	copy(d, grad)
	h := make([]float64, len(hess))
	copy(h, hess)
	return &Dual2{real: real, vars: internVars(vars), dual: d, dual2: h}, nil
}

// Real returns the value part.
func (d *Dual2) Real() float64 { return d.real }

// Order returns 2.
func (d *Dual2) Order() int { return 2 }

func (d *Dual2) isNumber() {}

// Vars returns a copy of the ordered variable names.
func (d *Dual2) Vars() []string {
	out := make([]string, len(d.vars))
	copy(out, d.vars)
	return out
}

// Dual returns a copy of the gradient, index-aligned to Vars.
func (d *Dual2) Dual() []float64 {
	out := make([]float64, len(d.dual))
	copy(out, d.dual)
	return out
}

// Dual2 returns a copy of the row-major Hessian, index-aligned to Vars.
func (d *Dual2) Dual2() []float64 {
	out := make([]float64, len(d.dual2))
	copy(out, d.dual2)
	return out
}

// String implements fmt.Stringer.
func (d *Dual2) String() string {
	return fmt.Sprintf("Dual2(%g, %v, %v, %v)", d.real, d.vars, d.dual, d.dual2)
}

// align re-expresses both operands' gradients and Hessians over the unified
// variable basis. The returned slices are fresh and safe to mutate.
func (d *Dual2) align(o *Dual2) (vars []string, gd, go_, hd, ho []float64) {
	vars = unionVars(d.vars, o.vars)
	gd = spreadGrad(d.dual, d.vars, vars)
	go_ = spreadGrad(o.dual, o.vars, vars)
	hd = spreadHess(d.dual2, d.vars, vars)
	ho = spreadHess(o.dual2, o.vars, vars)
	return vars, gd, go_, hd, ho
}

// Add returns d + o.
func (d *Dual2) Add(o *Dual2) *Dual2 {
	vars, gd, go_, hd, ho := d.align(o)
	for i := range gd {
		gd[i] += go_[i]
	}
	for i := range hd {
		hd[i] += ho[i]
	}
	return &Dual2{real: d.real + o.real, vars: vars, dual: gd, dual2: hd}
}

// Sub returns d - o.
func (d *Dual2) Sub(o *Dual2) *Dual2 {
	vars, gd, go_, hd, ho := d.align(o)
	for i := range gd {
		gd[i] -= go_[i]
	}
	for i := range hd {
		hd[i] -= ho[i]
	}
	return &Dual2{real: d.real - o.real, vars: vars, dual: gd, dual2: hd}
}

// Mul returns d * o. For f = a·b the Hessian is
// a·Hb + b·Ha + ∇a∇bᵀ + ∇b∇aᵀ.
func (d *Dual2) Mul(o *Dual2) *Dual2 {
	vars, gd, go_, hd, ho := d.align(o)
	m := len(vars)
	h := make([]float64, m*m)
	for i := 0; i < m; i++ {
		for j := 0; j < m; j++ {
			h[i*m+j] = d.real*ho[i*m+j] + o.real*hd[i*m+j] + gd[i]*go_[j] + go_[i]*gd[j]
		}
	}
	g := make([]float64, m)
	for i := range g {
		g[i] = gd[i]*o.real + go_[i]*d.real
	}
	return &Dual2{real: d.real * o.real, vars: vars, dual: g, dual2: h}
}

// Div returns d / o as d · o⁻¹. It fails with ErrDivisionByZero when o's
// real part is exactly zero.
func (d *Dual2) Div(o *Dual2) (*Dual2, error) {
	if o.real == 0 {
		return nil, fmt.Errorf("dividing by %v: %w", o, ErrDivisionByZero)
	}
	// d/dx (1/b) = -b'/b², d²/dxdy (1/b) = 2·bx·by/b³ - Hb/b².
	v := o.real
	inv := chain2(o, 1/v, -1/(v*v), 2/(v*v*v))
	return d.Mul(inv), nil
}

// MulScalar returns d scaled by a.
func (d *Dual2) MulScalar(a float64) *Dual2 {
	g := make([]float64, len(d.dual))
	for i, v := range d.dual {
		g[i] = v * a
	}
	h := make([]float64, len(d.dual2))
	for i, v := range d.dual2 {
		h[i] = v * a
	}
	return &Dual2{real: d.real * a, vars: d.vars, dual: g, dual2: h}
}

// Zero returns the additive identity. Usable on a nil receiver.
func (d *Dual2) Zero() *Dual2 { return &Dual2{} }

// Equal reports value equality up to variable reordering.
func (d *Dual2) Equal(o *Dual2) bool { return Equal(d, o) }

// Number returns d as a Number.
func (d *Dual2) Number() Number { return d }

// chain2 applies a scalar transform with value f, derivative df and second
// derivative d2f to d. The Hessian propagates as df·Hx + d2f·∇x∇xᵀ.
func chain2(d *Dual2, f, df, d2f float64) *Dual2 {
	m := len(d.vars)
	g := make([]float64, m)
	for i, v := range d.dual {
		g[i] = df * v
	}
	h := make([]float64, m*m)
	for i := 0; i < m; i++ {
		for j := 0; j < m; j++ {
			h[i*m+j] = df*d.dual2[i*m+j] + d2f*d.dual[i]*d.dual[j]
		}
	}
	return &Dual2{real: f, vars: d.vars, dual: g, dual2: h}
}
