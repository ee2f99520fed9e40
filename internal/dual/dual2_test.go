package dual

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustDual2(t *testing.T, real float64, vars []string, grad, hess []float64) *Dual2 {
	t.Helper()
	d, err := NewDual2(real, vars, grad, hess)
	require.NoError(t, err)
	return d
}

func TestNewDual2(t *testing.T) {
	t.Run("identity seed with zero hessian", func(t *testing.T) {
		d := mustDual2(t, 1.0, []string{"x", "y"}, nil, nil)
		assert.Equal(t, []float64{1, 1}, d.Dual())
		assert.Equal(t, []float64{0, 0, 0, 0}, d.Dual2())
		assert.Equal(t, 2, d.Order())
	})

	t.Run("hessian shape mismatch", func(t *testing.T) {
		_, err := NewDual2(1.0, []string{"x", "y"}, []float64{1, 1}, []float64{1, 2, 3})
		require.ErrorIs(t, err, ErrDimensionMismatch)
	})
}

func TestDual2MulHessian(t *testing.T) {
	// f = x·y for seeded x and y: Hessian is [[0 1] [1 0]].
	x := mustDual2(t, 3.0, []string{"x"}, nil, nil)
	y := mustDual2(t, 5.0, []string{"y"}, nil, nil)

	f := x.Mul(y)

	assert.Equal(t, 15.0, f.Real())
	assert.Equal(t, []string{"x", "y"}, f.Vars())
	assert.Equal(t, []float64{5, 3}, f.Dual())
	assert.Equal(t, []float64{0, 1, 1, 0}, f.Dual2())
}

func TestDual2SquareHessian(t *testing.T) {
	// f = x·x: d²f/dx² = 2.
	x := mustDual2(t, 7.0, []string{"x"}, nil, nil)
	f := x.Mul(x)

	assert.Equal(t, 49.0, f.Real())
	assert.Equal(t, []float64{14}, f.Dual())
	assert.Equal(t, []float64{2}, f.Dual2())
}

func TestDual2DivInverseHessian(t *testing.T) {
	// f = 1/x at x=2: f' = -1/4, f'' = 2/8 = 0.25.
	one := mustDual2(t, 1.0, nil, nil, nil)
	x := mustDual2(t, 2.0, []string{"x"}, nil, nil)

	f, err := one.Div(x)
	require.NoError(t, err)

	assert.InDelta(t, 0.5, f.Real(), 1e-15)
	assert.InDeltaSlice(t, []float64{-0.25}, f.Dual(), 1e-15)
	assert.InDeltaSlice(t, []float64{0.25}, f.Dual2(), 1e-15)
}

func TestDual2HessianSymmetry(t *testing.T) {
	a := mustDual2(t, 1.2, []string{"x", "y"}, []float64{1, 2}, []float64{0.5, 1, 1, -0.5})
	b := mustDual2(t, -0.7, []string{"y", "z"}, []float64{3, 4}, nil)

	f := a.Mul(b)
	vars := f.Vars()
	h := f.Dual2()
	m := len(vars)
	for i := 0; i < m; i++ {
		for j := 0; j < m; j++ {
			assert.Equal(t, h[i*m+j], h[j*m+i], "hessian not symmetric at (%d,%d)", i, j)
		}
	}
}

func TestDual2CommutativityAcrossVarOrderings(t *testing.T) {
	a := mustDual2(t, 2.0, []string{"x", "y"}, []float64{1, 2}, []float64{1, 0.5, 0.5, 2})
	ap := mustDual2(t, 2.0, []string{"y", "x"}, []float64{2, 1}, []float64{2, 0.5, 0.5, 1})
	b := mustDual2(t, 3.0, []string{"z"}, nil, nil)

	require.True(t, Equal(a, ap))

	assert.True(t, Equal(a.Mul(b), b.Mul(ap)))
	assert.True(t, Equal(a.Add(b), b.Add(ap)))
}
