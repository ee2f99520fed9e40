// Package curves maps dates to differentiable values through a node map and
// an interpolation policy. Day-count and business-day arithmetic come from
// external collaborators; the curve only turns dates into time coordinates
// and applies a policy formula, so every produced value stays differentiable
// with respect to the curve's calibration variables.
package curves

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/abrowley/rateslib/internal/dual"
)

// CurveType distinguishes what the node values represent.
type CurveType int

const (
	// CurveTypeDF nodes are discount factors; the first node is
	// conventionally 1.0 at the curve start.
	CurveTypeDF CurveType = iota
	// CurveTypeValues nodes are plain values (e.g. rates or fixings)
	// interpolated directly.
	CurveTypeValues
)

var curveTypeNames = map[CurveType]string{
	CurveTypeDF:     "discount_factors",
	CurveTypeValues: "values",
}

// String returns the type's wire name.
func (t CurveType) String() string {
	if s, ok := curveTypeNames[t]; ok {
		return s
	}
	return fmt.Sprintf("CurveType(%d)", int(t))
}

// CurveParams configures a Curve. The zero value is a discount-factor curve
// with log-linear interpolation, ACT/365F time axis and AD order 0.
type CurveParams struct {
	Interpolation Interpolation
	Type          CurveType
	ID            string // prefix for node variable names, e.g. "sofr"
	Calendar      Calendar
	Convention    DayCounter // nil means Act365Fixed
	Modifier      string     // business-day modifier for derived dates, e.g. "MF"
	ADOrder       int
}

// Curve is an ordered mapping from dates to differentiable Numbers under an
// interpolation policy. A Curve is safe for concurrent evaluation once
// constructed; SetADOrder mutates node values in place and must not run
// concurrently with evaluation of the same instance (use Copy for that).
type Curve struct {
	dates  []time.Time
	values []dual.Number
	params CurveParams
	spline nodeSpline // non-nil iff params.Interpolation == InterpSpline
}

// NewCurve constructs a curve from a node map with strictly increasing
// (hence unique) dates. When params.ADOrder > 0, plain node values are
// seeded as calibration variables named "<ID><index>"; values supplied
// already carrying sensitivities keep their own variables.
func NewCurve(nodes map[time.Time]dual.Number, params CurveParams) (*Curve, error) {
	if len(nodes) < 2 {
		return nil, fmt.Errorf("curve needs at least 2 nodes, got %d: %w", len(nodes), dual.ErrDimensionMismatch)
	}
	if params.ADOrder < 0 || params.ADOrder > 2 {
		return nil, fmt.Errorf("AD order %d not in {0, 1, 2}: %w", params.ADOrder, dual.ErrDomain)
	}
	if params.Convention == nil {
		params.Convention = Act365Fixed{}
	}
	dates := make([]time.Time, 0, len(nodes))
	for d := range nodes {
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
	values := make([]dual.Number, len(dates))
	for i, d := range dates {
		values[i] = nodes[d]
	}
	c := &Curve{dates: dates, values: values, params: params}
	if err := c.SetADOrder(params.ADOrder); err != nil {
		return nil, err
	}
	return c, nil
}

// ID returns the curve identifier.
func (c *Curve) ID() string { return c.params.ID }

// ADOrder returns the configured differentiation order.
func (c *Curve) ADOrder() int { return c.params.ADOrder }

// Interpolation returns the configured policy.
func (c *Curve) Interpolation() Interpolation { return c.params.Interpolation }

// Type returns the curve type.
func (c *Curve) Type() CurveType { return c.params.Type }

// Nodes returns the node dates and values in date order. The returned
// slices are copies; the Numbers themselves are immutable.
func (c *Curve) Nodes() ([]time.Time, []dual.Number) {
	dates := make([]time.Time, len(c.dates))
	copy(dates, c.dates)
	values := make([]dual.Number, len(c.values))
	copy(values, c.values)
	return dates, values
}

// timeAt maps a date to the curve's time coordinate: the year fraction from
// the first node under the day-count convention.
func (c *Curve) timeAt(date time.Time) float64 {
	return c.params.Convention.YearFraction(c.dates[0], date)
}

// Value returns the curve value at the given date. The result's AD order
// matches the curve's configured order for dates inside the node domain.
//
// Dates before the first node value to zero for discount-factor curves (no
// discounting before the initial date) and to the first node's value for
// values curves. Dates beyond the last node extrapolate with the final
// bracketing pair's formula, except for spline curves whose basis has no
// support there.
func (c *Curve) Value(date time.Time) (dual.Number, error) {
	x := c.timeAt(date)

	if c.params.Interpolation == InterpNull {
		i := sort.Search(len(c.dates), func(i int) bool { return !c.dates[i].Before(date) })
		if i < len(c.dates) && c.dates[i].Equal(date) {
			return c.values[i], nil
		}
		return nil, fmt.Errorf("date %s is not a curve node: %w", date.Format("2006-01-02"), dual.ErrDomain)
	}

	if date.Before(c.dates[0]) {
		if c.params.Type == CurveTypeDF {
			return dual.Real(0), nil
		}
		return c.values[0], nil
	}

	if c.spline != nil {
		v, err := c.spline.eval(x)
		if err != nil {
			return nil, err
		}
		if c.params.Type == CurveTypeDF {
			return dual.Exp(v), nil
		}
		return v, nil
	}

	// Bracketing span; queries beyond the last node reuse the final pair.
	j := sort.Search(len(c.dates), func(i int) bool { return c.dates[i].After(date) }) - 1
	if j > len(c.dates)-2 {
		j = len(c.dates) - 2
	}
	x1, x2 := c.timeAt(c.dates[j]), c.timeAt(c.dates[j+1])
	return interpolate(x, x1, c.values[j], x2, c.values[j+1], c.params.Interpolation)
}

// Rate returns the simple-compounded forward rate, in percent, between
// effective and the date terminationMonths calendar months later, derived
// from discount factors. The termination date is rolled onto a business day
// when a calendar and modifier are configured. For a values curve, Rate
// returns the interpolated value at effective.
func (c *Curve) Rate(effective time.Time, terminationMonths int) (dual.Number, error) {
	if c.params.Type == CurveTypeValues {
		return c.Value(effective)
	}
	termination := effective.AddDate(0, terminationMonths, 0)
	if c.params.Calendar != nil {
		termination = c.params.Calendar.Roll(termination, c.params.Modifier)
	}
	d1, err := c.Value(effective)
	if err != nil {
		return nil, err
	}
	d2, err := c.Value(termination)
	if err != nil {
		return nil, err
	}
	yf := c.params.Convention.YearFraction(effective, termination)
	if yf == 0 {
		return nil, fmt.Errorf("zero accrual between %s and %s: %w",
			effective.Format("2006-01-02"), termination.Format("2006-01-02"), dual.ErrDivisionByZero)
	}
	ratio, err := dual.Div(d1, d2)
	if err != nil {
		return nil, fmt.Errorf("forward rate: %w", err)
	}
	return dual.Mul(dual.Sub(ratio, dual.Real(1)), dual.Real(100/yf)), nil
}

// Shift returns a new curve with all rates moved in parallel by the given
// number of basis points. Discount-factor nodes are multiplied by
// exp(-s·x_i) with s the shift as a continuously compounded rate; values
// nodes are translated by s in percent units. Node sensitivities propagate
// through the shift.
func (c *Curve) Shift(basisPoints float64) (*Curve, error) {
	s := basisPoints / 10000
	shifted := &Curve{
		dates:  make([]time.Time, len(c.dates)),
		values: make([]dual.Number, len(c.values)),
		params: c.params,
	}
	copy(shifted.dates, c.dates)
	for i, v := range c.values {
		if c.params.Type == CurveTypeDF {
			x := c.timeAt(c.dates[i])
			shifted.values[i] = dual.Mul(v, dual.Real(math.Exp(-s*x)))
		} else {
			shifted.values[i] = dual.Add(v, dual.Real(basisPoints/100))
		}
	}
	if err := shifted.rebuildSpline(); err != nil {
		return nil, err
	}
	return shifted, nil
}

// SetADOrder re-derives every node's representation at the given order in
// place: plain values promoted to order 1 or 2 become fresh calibration
// variables named "<ID><index>" with an identity seed; values already
// carrying sensitivities keep their variables across order changes; order 0
// strips sensitivities entirely. Used to cheaply drop AD overhead for
// repeated evaluation and restore it for calibration.
func (c *Curve) SetADOrder(order int) error {
	if order < 0 || order > 2 {
		return fmt.Errorf("AD order %d not in {0, 1, 2}: %w", order, dual.ErrDomain)
	}
	for i, v := range c.values {
		if v.Order() == 0 && order > 0 {
			seeded, err := dual.Seed(v.Real(), []string{fmt.Sprintf("%s%d", c.params.ID, i)}, order)
			if err != nil {
				return err
			}
			c.values[i] = seeded
		} else {
			c.values[i] = dual.Promote(v, order)
		}
	}
	c.params.ADOrder = order
	return c.rebuildSpline()
}

// Copy returns a deep value copy sharing no mutable state, so the copy can
// run at a different AD order concurrently with the original.
func (c *Curve) Copy() (*Curve, error) {
	cp := &Curve{
		dates:  make([]time.Time, len(c.dates)),
		values: make([]dual.Number, len(c.values)),
		params: c.params,
	}
	copy(cp.dates, c.dates)
	copy(cp.values, c.values) // Numbers are immutable; sharing them is safe
	if err := cp.rebuildSpline(); err != nil {
		return nil, err
	}
	return cp, nil
}

// Equal reports value equality: identifier, type, policy, AD order,
// modifier, convention name, and the node map under Number equality.
// Collaborator objects themselves are externally owned and not compared.
func (c *Curve) Equal(o *Curve) bool {
	if c.params.ID != o.params.ID ||
		c.params.Type != o.params.Type ||
		c.params.Interpolation != o.params.Interpolation ||
		c.params.ADOrder != o.params.ADOrder ||
		c.params.Modifier != o.params.Modifier ||
		c.params.Convention.Name() != o.params.Convention.Name() ||
		len(c.dates) != len(o.dates) {
		return false
	}
	for i := range c.dates {
		if !c.dates[i].Equal(o.dates[i]) || !dual.Equal(c.values[i], o.values[i]) {
			return false
		}
	}
	return true
}

// rebuildSpline refits the node spline when the spline policy is active.
func (c *Curve) rebuildSpline() error {
	if c.params.Interpolation != InterpSpline {
		c.spline = nil
		return nil
	}
	xs := make([]float64, len(c.dates))
	for i, d := range c.dates {
		xs[i] = c.timeAt(d)
	}
	s, err := solveNodeSpline(xs, c.values, c.params.ADOrder, c.params.Type == CurveTypeDF)
	if err != nil {
		return fmt.Errorf("fitting curve spline: %w", err)
	}
	c.spline = s
	return nil
}
