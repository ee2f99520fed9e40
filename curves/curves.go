// Copyright 2026 The rateslib-go Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package curves maps dates to differentiable values through an ordered
// node map and an interpolation policy.
//
// Day-count conventions and business-day calendars are external
// collaborators consumed through small interfaces; the curve itself only
// converts dates into time coordinates and applies a policy formula, so
// curve values remain differentiable with respect to the curve's
// calibration variables.
//
// Example:
//
//	nodes := map[time.Time]dual.Number{
//	    d1: dual.Real(1.00),
//	    d2: dual.Real(0.98),
//	}
//	c, _ := curves.NewCurve(nodes, curves.CurveParams{
//	    Interpolation: curves.InterpLogLinear,
//	    ID:            "sofr",
//	    ADOrder:       1,
//	})
//	df, _ := c.Value(d1.AddDate(0, 6, 0))
package curves

import (
	"time"

	"github.com/abrowley/rateslib/internal/curves"
	"github.com/abrowley/rateslib/internal/dual"
)

// Curve is an ordered mapping from dates to differentiable Numbers under an
// interpolation policy.
type Curve = curves.Curve

// CurveParams configures a Curve.
type CurveParams = curves.CurveParams

// CurveType distinguishes what the node values represent.
type CurveType = curves.CurveType

// Curve types.
const (
	CurveTypeDF     = curves.CurveTypeDF
	CurveTypeValues = curves.CurveTypeValues
)

// Interpolation selects the policy used to value a curve between nodes.
type Interpolation = curves.Interpolation

// The closed set of interpolation policies.
const (
	InterpLinear         = curves.InterpLinear
	InterpLogLinear      = curves.InterpLogLinear
	InterpLinearZeroRate = curves.InterpLinearZeroRate
	InterpFlatForward    = curves.InterpFlatForward
	InterpFlatBackward   = curves.InterpFlatBackward
	InterpNull           = curves.InterpNull
	InterpSpline         = curves.InterpSpline
)

// DayCounter supplies the day-count convention mapping date pairs onto
// year-fraction time coordinates.
type DayCounter = curves.DayCounter

// Calendar supplies business-day arithmetic for derived dates.
type Calendar = curves.Calendar

// Act365Fixed is the ACT/365F day-count convention, the default time axis.
type Act365Fixed = curves.Act365Fixed

// ImportOptions re-attaches externally owned collaborators on import.
type ImportOptions = curves.ImportOptions

// NewCurve constructs a curve from a node map with unique dates.
func NewCurve(nodes map[time.Time]dual.Number, params CurveParams) (*Curve, error) {
	return curves.NewCurve(nodes, params)
}

// ParseInterpolation resolves a policy wire name.
func ParseInterpolation(s string) (Interpolation, error) {
	return curves.ParseInterpolation(s)
}

// ImportCurve decodes a curve previously encoded by its MarshalJSON into an
// equal-by-value instance.
func ImportCurve(data []byte, opts ImportOptions) (*Curve, error) {
	return curves.ImportCurve(data, opts)
}
