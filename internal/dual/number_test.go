package dual

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGrad1Projection(t *testing.T) {
	d := mustDual(t, 1.0, []string{"b", "a"}, []float64{2, 3})

	t.Run("own ordering", func(t *testing.T) {
		assert.Equal(t, []float64{2, 3}, Grad1(d, []string{"b", "a"}))
	})

	t.Run("reordered", func(t *testing.T) {
		assert.Equal(t, []float64{3, 2}, Grad1(d, []string{"a", "b"}))
	})

	t.Run("superset zero fills", func(t *testing.T) {
		// Projection onto a portfolio-wide universe equals direct
		// construction over that universe.
		got := Grad1(d, []string{"a", "b", "c"})
		direct := mustDual(t, 1.0, []string{"a", "b", "c"}, []float64{3, 2, 0})
		assert.Equal(t, direct.Dual(), got)
	})

	t.Run("order zero projects to zeros", func(t *testing.T) {
		assert.Equal(t, []float64{0, 0}, Grad1(Real(5), []string{"a", "b"}))
	})
}

func TestGrad2Projection(t *testing.T) {
	d := mustDual2(t, 1.0, []string{"x", "y"}, []float64{1, 2}, []float64{1, 2, 2, 4})

	t.Run("superset zero fills", func(t *testing.T) {
		h := Grad2(d, []string{"y", "x", "z"})
		want := []float64{
			4, 2, 0,
			2, 1, 0,
			0, 0, 0,
		}
		assert.Equal(t, want, h)
	})

	t.Run("lower order projects to zeros", func(t *testing.T) {
		assert.Equal(t, make([]float64, 4), Grad2(mustDual(t, 1, []string{"x"}, nil), []string{"x", "y"}))
	})
}

func TestPromote(t *testing.T) {
	t.Run("real to dual2 and back", func(t *testing.T) {
		n := Promote(Real(3), 2)
		require.Equal(t, 2, n.Order())
		assert.Equal(t, 3.0, n.Real())
		back := Promote(n, 0)
		assert.Equal(t, Real(3), back)
	})

	t.Run("dual to dual2 keeps vars", func(t *testing.T) {
		d := mustDual(t, 2, []string{"x"}, []float64{5})
		n := Promote(d, 2).(*Dual2)
		assert.Equal(t, []string{"x"}, n.Vars())
		assert.Equal(t, []float64{5}, n.Dual())
		assert.Equal(t, []float64{0}, n.Dual2())
	})

	t.Run("dual2 to dual truncates hessian", func(t *testing.T) {
		d2 := mustDual2(t, 2, []string{"x"}, []float64{5}, []float64{7})
		n := Promote(d2, 1).(*Dual)
		assert.Equal(t, []float64{5}, n.Dual())
	})

	t.Run("identity", func(t *testing.T) {
		d := mustDual(t, 2, []string{"x"}, nil)
		assert.Same(t, d, Promote(d, 1).(*Dual))
	})
}

func TestSeed(t *testing.T) {
	n, err := Seed(4.2, []string{"v"}, 2)
	require.NoError(t, err)
	d := n.(*Dual2)
	assert.Equal(t, []float64{1}, d.Dual())
	assert.Equal(t, []float64{0}, d.Dual2())

	_, err = Seed(1, nil, 3)
	require.ErrorIs(t, err, ErrDomain)
}

func TestMixedOrderPromotionInOps(t *testing.T) {
	d := mustDual(t, 2.0, []string{"x"}, nil)

	sum := Add(d, Real(3))
	require.Equal(t, 1, sum.Order())
	assert.Equal(t, 5.0, sum.Real())
	assert.Equal(t, []float64{1}, sum.(*Dual).Dual())

	d2 := mustDual2(t, 4.0, []string{"y"}, nil, nil)
	prod := Mul(d, d2)
	require.Equal(t, 2, prod.Order())
	assert.Equal(t, 8.0, prod.Real())
	assert.Equal(t, []float64{4, 2}, Grad1(prod, []string{"x", "y"}))
}

func TestEqual(t *testing.T) {
	t.Run("real vs zero-gradient dual", func(t *testing.T) {
		d := mustDual(t, 2.0, []string{"x"}, []float64{0})
		assert.True(t, Equal(Real(2), d))
		assert.False(t, Equal(Real(2), mustDual(t, 2.0, []string{"x"}, []float64{1})))
	})

	t.Run("dual vs dual2 never equal", func(t *testing.T) {
		d := mustDual(t, 2.0, []string{"x"}, nil)
		d2 := mustDual2(t, 2.0, []string{"x"}, nil, nil)
		assert.False(t, Equal(d, d2))
	})

	t.Run("different reals", func(t *testing.T) {
		assert.False(t, Equal(Real(1), Real(2)))
	})
}

func TestVarsUnionFirstSeenOrder(t *testing.T) {
	a := mustDual(t, 1, []string{"c", "a"}, nil)
	b := mustDual(t, 1, []string{"b", "a"}, nil)
	assert.Equal(t, []string{"c", "a", "b"}, VarsUnion(a, b))
	assert.Empty(t, VarsUnion(Real(1), Real(2)))
}

func TestInternedVarsShareStorage(t *testing.T) {
	a := mustDual(t, 1, []string{"x", "y"}, nil)
	b := mustDual(t, 2, []string{"x", "y"}, nil)
	// Both canonical slices come from the intern table.
	assert.True(t, sameVars(a.vars, b.vars))
}
