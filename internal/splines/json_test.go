package splines

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abrowley/rateslib/internal/dual"
)

func TestPPSplineRoundTrip(t *testing.T) {
	t.Run("real coefficients", func(t *testing.T) {
		s, err := NewPPSpline[dual.Real](3, clampedCubic, []dual.Real{1, -2, 0.5, 3, 4})
		require.NoError(t, err)

		data, err := json.Marshal(s)
		require.NoError(t, err)

		got, err := ImportPPSpline[dual.Real](data)
		require.NoError(t, err)
		assert.True(t, s.Equal(got))
	})

	t.Run("dual coefficients", func(t *testing.T) {
		s, err := NewPPSpline[*dual.Dual](3, clampedCubic, nil)
		require.NoError(t, err)
		tau := []float64{0, 1, 2, 3, 4}
		y := make([]*dual.Dual, len(tau))
		for i, x := range tau {
			y[i], err = dual.NewDual(x*x, []string{"v"}, []float64{x})
			require.NoError(t, err)
		}
		require.NoError(t, s.Csolve(tau, y, 0, 0, false))

		data, err := json.Marshal(s)
		require.NoError(t, err)

		got, err := ImportPPSpline[*dual.Dual](data)
		require.NoError(t, err)
		assert.True(t, s.Equal(got))
	})

	t.Run("unsolved", func(t *testing.T) {
		s := realSpline(t, 3, clampedCubic)
		data, err := json.Marshal(s)
		require.NoError(t, err)

		got, err := ImportPPSpline[dual.Real](data)
		require.NoError(t, err)
		assert.True(t, s.Equal(got))
		assert.Nil(t, got.C())
	})
}

func TestImportPPSplineErrors(t *testing.T) {
	t.Run("version", func(t *testing.T) {
		_, err := ImportPPSpline[dual.Real]([]byte(`{"version": 99, "k": 3, "t": [0, 0, 1, 1]}`))
		require.ErrorIs(t, err, dual.ErrDomain)
	})

	t.Run("element order mismatch", func(t *testing.T) {
		s, err := NewPPSpline[dual.Real](1, []float64{0, 0, 1, 1}, []dual.Real{1, 2})
		require.NoError(t, err)
		data, err := json.Marshal(s)
		require.NoError(t, err)

		_, err = ImportPPSpline[*dual.Dual](data)
		require.ErrorIs(t, err, dual.ErrDimensionMismatch)
	})
}
