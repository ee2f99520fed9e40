package curves

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abrowley/rateslib/internal/dual"
)

func TestInterpolate(t *testing.T) {
	tests := []struct {
		name      string
		x, x1, x2 float64
		y1, y2    float64
		policy    Interpolation
		want      float64
	}{
		{"linear midpoint", 1, 0, 2, 1, 3, InterpLinear, 2},
		{"linear quarter", 0.5, 0, 2, 1, 3, InterpLinear, 1.5},
		{"log linear", 1, 0, 2, 1, math.Exp(-0.2), InterpLogLinear, math.Exp(-0.1)},
		{"zero rate", 2, 1, 3, math.Exp(-0.01), math.Exp(-0.09), InterpLinearZeroRate, math.Exp(-0.04)},
		{"zero rate flat at origin", 1, 0, 2, 1, math.Exp(-0.04), InterpLinearZeroRate, math.Exp(-0.02)},
		{"flat forward inside", 1.5, 0, 2, 5, 7, InterpFlatForward, 5},
		{"flat forward at right node", 2, 0, 2, 5, 7, InterpFlatForward, 7},
		{"flat backward inside", 0.5, 0, 2, 5, 7, InterpFlatBackward, 7},
		{"flat backward at left node", 0, 0, 2, 5, 7, InterpFlatBackward, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := interpolate(tt.x, tt.x1, dual.Real(tt.y1), tt.x2, dual.Real(tt.y2), tt.policy)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got.Real(), 1e-12)
		})
	}
}

func TestInterpolatePropagatesSensitivities(t *testing.T) {
	y1, err := dual.NewDual(1, []string{"a"}, nil)
	require.NoError(t, err)
	y2, err := dual.NewDual(3, []string{"b"}, nil)
	require.NoError(t, err)

	got, err := interpolate(0.5, 0, y1, 2, y2, InterpLinear)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{0.75, 0.25}, dual.Grad1(got, []string{"a", "b"}), 1e-12)
}

func TestInterpolateLogDomain(t *testing.T) {
	_, err := interpolate(1, 0, dual.Real(-1), 2, dual.Real(1), InterpLogLinear)
	require.ErrorIs(t, err, dual.ErrDomain)
}

func TestParseInterpolation(t *testing.T) {
	for p, name := range interpNames {
		got, err := ParseInterpolation(name)
		require.NoError(t, err)
		assert.Equal(t, p, got)
		assert.Equal(t, name, got.String())
	}

	_, err := ParseInterpolation("cubic_hermite")
	require.ErrorIs(t, err, dual.ErrDomain)
}
