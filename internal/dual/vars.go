package dual

import (
	"fmt"
	"strings"
	"sync"
)

// Variable name sequences are interned: constructing the same ordered set of
// names twice yields the same canonical slice. Interning makes the common
// "both operands carry identical vars" case a pointer comparison instead of
// an elementwise string comparison, and lets many Number values share one
// backing array without any ownership graph between them.
//
// Canonical slices are never mutated after insertion.

var internTable sync.Map // string key -> []string

// internVars returns the canonical shared slice for the given ordered
// variable names. The input slice is copied, never retained.
func internVars(names []string) []string {
	if len(names) == 0 {
		return nil
	}
	key := strings.Join(names, "\x1f")
	if v, ok := internTable.Load(key); ok {
		return v.([]string)
	}
	canon := make([]string, len(names))
	copy(canon, names)
	v, _ := internTable.LoadOrStore(key, canon)
	return v.([]string)
}

// sameVars reports whether a and b are the identical canonical slice.
// Interned slices of equal content are always identical, so this is a
// constant-time check.
func sameVars(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	if len(a) == 0 {
		return true
	}
	return &a[0] == &b[0]
}

// validateVars checks that names are unique and match the gradient length.
func validateVars(names []string, gradLen int) error {
	if len(names) != gradLen {
		return fmt.Errorf("%d vars with gradient of length %d: %w", len(names), gradLen, ErrDimensionMismatch)
	}
	if len(names) < 2 {
		return nil
	}
	seen := make(map[string]struct{}, len(names))
	for _, name := range names {
		if _, dup := seen[name]; dup {
			return fmt.Errorf("duplicate variable %q: %w", name, ErrDimensionMismatch)
		}
		seen[name] = struct{}{}
	}
	return nil
}

// unionVars returns the interned first-seen-order union of a and b:
// all of a's names in their original order, then any names of b not in a,
// in b's original order. The ordering is deterministic so that chained
// operations yield reproducible gradients regardless of evaluation shape.
func unionVars(a, b []string) []string {
	if sameVars(a, b) {
		return a
	}
	if len(a) == 0 {
		return internVars(b)
	}
	if len(b) == 0 {
		return internVars(a)
	}
	union := make([]string, len(a), len(a)+len(b))
	copy(union, a)
	seen := make(map[string]struct{}, len(a)+len(b))
	for _, name := range a {
		seen[name] = struct{}{}
	}
	for _, name := range b {
		if _, ok := seen[name]; !ok {
			seen[name] = struct{}{}
			union = append(union, name)
		}
	}
	return internVars(union)
}

// varIndices maps each name in from to its position in to, or -1 when absent.
func varIndices(from, to []string) []int {
	idx := make([]int, len(from))
	pos := make(map[string]int, len(to))
	for i, name := range to {
		pos[name] = i
	}
	for i, name := range from {
		if j, ok := pos[name]; ok {
			idx[i] = j
		} else {
			idx[i] = -1
		}
	}
	return idx
}

// spreadGrad re-expresses a gradient indexed by from onto the basis to,
// zero-filling entries for names absent from from.
func spreadGrad(grad []float64, from, to []string) []float64 {
	if sameVars(from, to) {
		out := make([]float64, len(grad))
		copy(out, grad)
		return out
	}
	out := make([]float64, len(to))
	for i, j := range varIndices(from, to) {
		if j >= 0 {
			out[j] = grad[i]
		}
	}
	return out
}

// spreadHess re-expresses a row-major m×m Hessian indexed by from onto the
// basis to, zero-filling rows and columns for names absent from from.
func spreadHess(hess []float64, from, to []string) []float64 {
	m := len(from)
	n := len(to)
	if sameVars(from, to) {
		out := make([]float64, len(hess))
		copy(out, hess)
		return out
	}
	out := make([]float64, n*n)
	idx := varIndices(from, to)
	for i := 0; i < m; i++ {
		if idx[i] < 0 {
			continue
		}
		for j := 0; j < m; j++ {
			if idx[j] < 0 {
				continue
			}
			out[idx[i]*n+idx[j]] = hess[i*m+j]
		}
	}
	return out
}
