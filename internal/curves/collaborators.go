package curves

import "time"

// DayCounter supplies the day-count convention used to map date pairs onto
// year-fraction time coordinates. Implementations are owned by the caller;
// the curve only consumes YearFraction.
type DayCounter interface {
	// YearFraction returns the elapsed year fraction from start to end
	// under the convention.
	YearFraction(start, end time.Time) float64
	// Name identifies the convention, e.g. "ACT/365F". Used for curve
	// serialization and equality.
	Name() string
}

// Calendar supplies business-day arithmetic. It is consumed only to roll
// derived dates (e.g. forward-rate terminations) onto good business days;
// holiday data and rolling rules live with the caller.
type Calendar interface {
	IsBusinessDay(t time.Time) bool
	// Add advances t by the given number of business days.
	Add(t time.Time, businessDays int) time.Time
	// Roll adjusts t onto a business day under the given modifier
	// (e.g. "F", "MF", "P").
	Roll(t time.Time, modifier string) time.Time
}

// Act365Fixed is the ACT/365F day-count convention, the standard time basis
// for curve interpolation axes. It is the default when no convention is
// supplied.
type Act365Fixed struct{}

// YearFraction returns actual days divided by 365.
func (Act365Fixed) YearFraction(start, end time.Time) float64 {
	return end.Sub(start).Hours() / 24 / 365
}

// Name returns "ACT/365F".
func (Act365Fixed) Name() string { return "ACT/365F" }
