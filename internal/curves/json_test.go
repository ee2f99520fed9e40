package curves

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abrowley/rateslib/internal/dual"
)

func TestCurveRoundTrip(t *testing.T) {
	c := dfCurve(t, CurveParams{
		Interpolation: InterpLogLinear,
		ID:            "sofr",
		Modifier:      "MF",
		ADOrder:       1,
	}, 1.0, 0.98, 0.95)

	data, err := json.Marshal(c)
	require.NoError(t, err)

	got, err := ImportCurve(data, ImportOptions{})
	require.NoError(t, err)
	assert.True(t, c.Equal(got))

	// The seeded node variables survive the round trip.
	_, values := got.Nodes()
	assert.Equal(t, []string{"sofr1"}, dual.VarsUnion(values[1]))
}

func TestCurveRoundTripSpline(t *testing.T) {
	c := dfCurve(t, CurveParams{Interpolation: InterpSpline, ID: "ois"}, 1.0, 0.98, 0.95)

	data, err := json.Marshal(c)
	require.NoError(t, err)

	got, err := ImportCurve(data, ImportOptions{})
	require.NoError(t, err)
	assert.True(t, c.Equal(got))

	// The refitted spline evaluates identically.
	d := anchor.AddDate(0, 7, 0)
	want, err := c.Value(d)
	require.NoError(t, err)
	v, err := got.Value(d)
	require.NoError(t, err)
	assert.InDelta(t, want.Real(), v.Real(), 1e-12)
}

func TestImportCurveErrors(t *testing.T) {
	c := dfCurve(t, CurveParams{Interpolation: InterpLinear, ID: "x"}, 1.0, 0.98)
	data, err := json.Marshal(c)
	require.NoError(t, err)

	t.Run("version", func(t *testing.T) {
		_, err := ImportCurve([]byte(`{"version": 9}`), ImportOptions{})
		require.ErrorIs(t, err, dual.ErrDomain)
	})

	t.Run("convention mismatch", func(t *testing.T) {
		_, err := ImportCurve(data, ImportOptions{Convention: act360{}})
		require.ErrorIs(t, err, dual.ErrDomain)
	})

	t.Run("unknown interpolation", func(t *testing.T) {
		var raw map[string]any
		require.NoError(t, json.Unmarshal(data, &raw))
		raw["interpolation"] = "monotone_convex"
		bad, err := json.Marshal(raw)
		require.NoError(t, err)
		_, err = ImportCurve(bad, ImportOptions{})
		require.ErrorIs(t, err, dual.ErrDomain)
	})
}

type act360 struct{}

func (act360) YearFraction(start, end time.Time) float64 {
	return end.Sub(start).Hours() / 24 / 360
}

func (act360) Name() string { return "ACT/360" }
