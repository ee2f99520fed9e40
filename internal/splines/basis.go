// Package splines implements B-spline basis evaluation and a generic
// piecewise-polynomial spline whose coefficients may be plain or
// differentiable values.
package splines

// bsplevSingle evaluates the single B-spline basis function B_{i,k} at x by
// the Cox–de Boor recursion, for knot vector t and degree k, without
// building the full basis matrix.
//
// Each support interval is half open, [t_i, t_{i+1}), except the final
// interval which is closed at both ends so that the right endpoint of the
// domain is attained. orgK carries the original (un-reduced) degree through
// the recursion: the endpoint rule must identify the last basis function of
// the original-degree basis even while the recursion works at lower degree.
// Outside [t_0, t_n] every basis function is zero.
func bsplevSingle(x float64, i, k int, t []float64, orgK int) float64 {
	// Local support shortcut.
	if x < t[i] || x > t[i+k+1] {
		return 0
	}

	// Closed right endpoint: only the final original-degree basis function
	// is nonzero there.
	if x == t[len(t)-1] {
		last := len(t) - orgK - 2
		if i == last {
			return 1
		}
		if i > last {
			return 0
		}
	}

	if k == 0 {
		if t[i] <= x && x < t[i+1] {
			return 1
		}
		return 0
	}

	var left, right float64
	if t[i+k] != t[i] {
		left = (x - t[i]) / (t[i+k] - t[i]) * bsplevSingle(x, i, k-1, t, k-1)
	}
	if t[i+k+1] != t[i+1] {
		right = (t[i+k+1] - x) / (t[i+k+1] - t[i+1]) * bsplevSingle(x, i+1, k-1, t, k-1)
	}
	return left + right
}

// bspldnevSingle evaluates the m-th derivative of B_{i,k} at x. The m-th
// derivative of a degree-k basis function is expressed through degree-(k-m)
// basis functions, so the recursion reduces the degree while orgK stays
// anchored at the top-level degree for endpoint handling.
func bspldnevSingle(x float64, i, k int, t []float64, m, orgK int) float64 {
	if m == 0 {
		return bsplevSingle(x, i, k, t, orgK)
	}
	if k == 0 || m > k {
		return 0
	}

	var r float64
	div1 := t[i+k] - t[i]
	div2 := t[i+k+1] - t[i+1]
	if m == 1 {
		if div1 != 0 {
			r += bsplevSingle(x, i, k-1, t, orgK) / div1
		}
		if div2 != 0 {
			r -= bsplevSingle(x, i+1, k-1, t, orgK) / div2
		}
	} else {
		if div1 != 0 {
			r += bspldnevSingle(x, i, k-1, t, m-1, orgK) / div1
		}
		if div2 != 0 {
			r -= bspldnevSingle(x, i+1, k-1, t, m-1, orgK) / div2
		}
	}
	return r * float64(k)
}

// BSplevSingle evaluates the i-th B-spline basis function of degree k on
// knot vector t at x.
func BSplevSingle(x float64, i, k int, t []float64) float64 {
	return bsplevSingle(x, i, k, t, k)
}

// BSpldnevSingle evaluates the m-th derivative of the i-th B-spline basis
// function of degree k on knot vector t at x.
func BSpldnevSingle(x float64, i, k int, t []float64, m int) float64 {
	return bspldnevSingle(x, i, k, t, m, k)
}
