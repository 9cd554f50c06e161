// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//   - Provide small, *private* element-wise and broadcast kernels (ew*) so the
//     tight loops used by scaling and comparison live in one place.
//   - Keep all loops deterministic and cache-friendly with Dense fast-paths.
//
// Design:
//   - All ew* are UNEXPORTED (internal micro-kernels).
//   - Public API uses these via thin wrappers in api.go.
//
// Determinism & Performance:
//   - Fixed loop orders (i→j or flat 0..n-1).
//   - Dense fast-path operates on a single flat buffer (row-major).
//   - No hidden allocations beyond the output Dense; O(r*c) time and space.

package matrix

import (
	"math"
)

const (
	opBroadcastSubCols = "SubColumns"
	opScaleCols        = "ScaleColumns"
	opBroadcastAddCols = "AddColumns"
	opAllClose         = "AllClose"
)

// ewBroadcastCols applies out[i,j] = f(X[i,j], vec[j]).
// Time: O(r*c). Space: O(r*c). Deterministic i→j loops.
func ewBroadcastCols(tag string, X Matrix, vec []float64, f func(x, v float64) float64) (*Dense, error) {
	if err := ValidateNotNil(X); err != nil {
		return nil, matrixErrorf(tag, err)
	}
	r, c := X.Rows(), X.Cols()
	if len(vec) != c {
		return nil, matrixErrorf(tag, ErrDimensionMismatch)
	}
	out, err := NewDense(r, c)
	if err != nil {
		return nil, matrixErrorf(tag, err)
	}

	// Dense fast-path: single pass over the flat row-major buffer.
	if d, ok := X.(*Dense); ok {
		for i := 0; i < r; i++ {
			base := i * c
			for j := 0; j < c; j++ {
				out.data[base+j] = f(d.data[base+j], vec[j])
			}
		}
		return out, nil
	}

	// Generic fallback via At (still deterministic).
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			v, e := X.At(i, j)
			if e != nil {
				return nil, matrixErrorf(tag, e)
			}
			out.data[i*c+j] = f(v, vec[j])
		}
	}
	return out, nil
}

// ewBroadcastSubCols computes out[i,j] = X[i,j] - colMeans[j].
// NaN cells stay NaN.
func ewBroadcastSubCols(X Matrix, colMeans []float64) (*Dense, error) {
	return ewBroadcastCols(opBroadcastSubCols, X, colMeans, func(x, m float64) float64 { return x - m })
}

// ewBroadcastAddCols computes out[i,j] = X[i,j] + shift[j].
func ewBroadcastAddCols(X Matrix, shift []float64) (*Dense, error) {
	return ewBroadcastCols(opBroadcastAddCols, X, shift, func(x, m float64) float64 { return x + m })
}

// ewScaleCols computes out[i,j] = X[i,j] * scale[j].
// Use factors 1/std for unit-variance scaling.
func ewScaleCols(X Matrix, scale []float64) (*Dense, error) {
	return ewBroadcastCols(opScaleCols, X, scale, func(x, s float64) float64 { return x * s })
}

// ewAllClose checks element-wise |a-b| ≤ atol + rtol*|b| for identical shapes.
// Returns (true,nil) if all elements satisfy the relation; (false,nil) otherwise.
//
// Policy:
//   - a and b must be non-nil and have identical shapes.
//   - rtol, atol are treated as |rtol|, |atol| (negative values are normalized).
//   - NaN is never close to anything, including another NaN.
func ewAllClose(a, b Matrix, rtol, atol float64) (bool, error) {
	if math.IsNaN(rtol) || math.IsNaN(atol) || math.IsInf(rtol, 0) || math.IsInf(atol, 0) {
		return false, matrixErrorf(opAllClose, ErrNaNInf)
	}
	rtol, atol = math.Abs(rtol), math.Abs(atol)

	if err := ValidateBinarySameShape(a, b); err != nil {
		return false, matrixErrorf(opAllClose, err)
	}

	near := func(av, bv float64) bool {
		if math.IsNaN(av) || math.IsNaN(bv) {
			return false
		}
		if av == bv { // covers matching infinities
			return true
		}
		return math.Abs(av-bv) <= atol+rtol*math.Abs(bv)
	}

	if da, okA := a.(*Dense); okA {
		if db, okB := b.(*Dense); okB {
			for idx := range da.data {
				if !near(da.data[idx], db.data[idx]) {
					return false, nil // early-exit on first violation
				}
			}
			return true, nil
		}
	}

	r, c := a.Rows(), a.Cols()
	var av, bv float64
	var err error
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			if av, err = a.At(i, j); err != nil {
				return false, matrixErrorf(opAllClose, err)
			}
			if bv, err = b.At(i, j); err != nil {
				return false, matrixErrorf(opAllClose, err)
			}
			if !near(av, bv) {
				return false, nil
			}
		}
	}

	return true, nil
}
