package splines

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var clampedCubic = []float64{0, 0, 0, 0, 2, 4, 4, 4, 4}

func TestBSplevSinglePartitionOfUnity(t *testing.T) {
	n := len(clampedCubic) - 3 - 1
	for _, x := range []float64{0, 0.5, 1, 2, 3.25, 4} {
		var sum float64
		for i := 0; i < n; i++ {
			b := BSplevSingle(x, i, 3, clampedCubic)
			assert.GreaterOrEqual(t, b, 0.0, "x=%g i=%d", x, i)
			sum += b
		}
		assert.InDelta(t, 1.0, sum, 1e-12, "x=%g", x)
	}
}

func TestBSplevSingleEndpoints(t *testing.T) {
	n := len(clampedCubic) - 3 - 1

	// Clamped left end: only the first basis function is nonzero.
	assert.Equal(t, 1.0, BSplevSingle(0, 0, 3, clampedCubic))
	for i := 1; i < n; i++ {
		assert.Equal(t, 0.0, BSplevSingle(0, i, 3, clampedCubic), "i=%d", i)
	}

	// The right endpoint is attained: the last basis function is one there,
	// all others zero.
	assert.Equal(t, 1.0, BSplevSingle(4, n-1, 3, clampedCubic))
	for i := 0; i < n-1; i++ {
		assert.Equal(t, 0.0, BSplevSingle(4, i, 3, clampedCubic), "i=%d", i)
	}
}

func TestBSplevSingleOutsideDomain(t *testing.T) {
	for i := 0; i < 5; i++ {
		assert.Equal(t, 0.0, BSplevSingle(-0.1, i, 3, clampedCubic))
		assert.Equal(t, 0.0, BSplevSingle(4.1, i, 3, clampedCubic))
	}
}

func TestBSplevSingleDegreeZero(t *testing.T) {
	t0 := []float64{0, 1, 2}
	assert.Equal(t, 1.0, BSplevSingle(0.5, 0, 0, t0))
	assert.Equal(t, 0.0, BSplevSingle(1.0, 0, 0, t0))
	assert.Equal(t, 1.0, BSplevSingle(1.0, 1, 0, t0))
}

func TestBSpldnevSingleHatFunction(t *testing.T) {
	// Degree-1 hat on [0,2] peaking at 1: slope +1 then -1.
	t1 := []float64{0, 1, 2}
	assert.InDelta(t, 0.5, BSplevSingle(0.5, 0, 1, t1), 1e-15)
	assert.InDelta(t, 1.0, BSpldnevSingle(0.5, 0, 1, t1, 1), 1e-15)
	assert.InDelta(t, -1.0, BSpldnevSingle(1.5, 0, 1, t1, 1), 1e-15)
}

func TestBSpldnevSingleSumsToZero(t *testing.T) {
	// Derivatives of a partition of unity sum to zero.
	n := len(clampedCubic) - 3 - 1
	for _, m := range []int{1, 2} {
		for _, x := range []float64{0.5, 2, 3.1} {
			var sum float64
			for i := 0; i < n; i++ {
				sum += BSpldnevSingle(x, i, 3, clampedCubic, m)
			}
			assert.InDelta(t, 0.0, sum, 1e-12, "m=%d x=%g", m, x)
		}
	}
}

func TestBSpldnevSingleOrderBeyondDegree(t *testing.T) {
	assert.Equal(t, 0.0, BSpldnevSingle(1, 0, 3, clampedCubic, 4))
}
