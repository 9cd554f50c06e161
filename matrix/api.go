// SPDX-License-Identifier: MIT
// Package matrix - public API facades.
//
// Purpose:
//   - Provide thin entry points for the broadcast and comparison kernels.
//   - Avoid any logic duplication: each facade delegates to the canonical implementation.
//
// Determinism & Policy:
//   - Facades never change the loop orders or numeric policy of underlying kernels.
//   - Validation is performed in the kernels; facades only compose or forward.

package matrix

// NewIdentity returns an n×n identity matrix.
func NewIdentity(n int) (*Dense, error) {
	m, err := NewDense(n, n)
	if err != nil {
		return nil, err
	}
	for i := 0; i < n; i++ {
		m.data[i*n+i] = 1.0
	}
	return m, nil
}

// SubColumns returns X with v[j] subtracted from every element of column j.
// Time: O(r*c). Space: O(r*c).
func SubColumns(X Matrix, v []float64) (*Dense, error) { return ewBroadcastSubCols(X, v) }

// AddColumns returns X with v[j] added to every element of column j.
func AddColumns(X Matrix, v []float64) (*Dense, error) { return ewBroadcastAddCols(X, v) }

// ScaleColumns returns X with every element of column j multiplied by s[j].
func ScaleColumns(X Matrix, s []float64) (*Dense, error) { return ewScaleCols(X, s) }

// AllClose checks element-wise |a-b| ≤ atol + rtol*|b| for identical shapes.
// NaN is never close to anything; +Inf equals +Inf; -Inf equals -Inf.
// Time: O(r*c). Space: O(1). Deterministic.
func AllClose(a, b Matrix, rtol, atol float64) (bool, error) {
	return ewAllClose(a, b, rtol, atol)
}
