// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//   - Sum-of-squares reductions used for variance-explained bookkeeping.
//   - NaN detection for callers that must reject or encode missing data.
//
// Determinism & Performance:
//   - Fixed i→j traversal for all explicit loops.
//   - Dense fast-paths operate on the flat row-major buffer.

package matrix

import "math"

const (
	opSumSquares    = "SumSquares"
	opColSumSquares = "ColSumSquares"
	opHasNaN        = "HasNaN"
	opColNorms      = "ColNorms"
)

// SumSquares returns Σ_ij X[i,j]². NaN propagates.
// Complexity: O(r*c).
func SumSquares(X Matrix) (float64, error) {
	if err := ValidateNotNil(X); err != nil {
		return 0, matrixErrorf(opSumSquares, err)
	}
	if d, ok := X.(*Dense); ok {
		acc := ZeroSum
		for _, v := range d.data {
			acc += v * v
		}
		return acc, nil
	}

	colSS, err := ColSumSquares(X)
	if err != nil {
		return 0, matrixErrorf(opSumSquares, err)
	}
	acc := ZeroSum
	for _, v := range colSS {
		acc += v
	}
	return acc, nil
}

// ColSumSquares returns the vector s with s[j] = Σ_i X[i,j]².
// Complexity: O(r*c), Space O(c).
func ColSumSquares(X Matrix) ([]float64, error) {
	if err := ValidateNotNil(X); err != nil {
		return nil, matrixErrorf(opColSumSquares, err)
	}
	r, c := X.Rows(), X.Cols()
	out := make([]float64, c)

	if d, ok := X.(*Dense); ok {
		var base int
		for i := 0; i < r; i++ {
			base = i * c
			for j := 0; j < c; j++ {
				v := d.data[base+j]
				out[j] += v * v
			}
		}
		return out, nil
	}

	var v float64
	var err error
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			if v, err = X.At(i, j); err != nil {
				return nil, matrixErrorf(opColSumSquares, err)
			}
			out[j] += v * v
		}
	}
	return out, nil
}

// ColNorms returns the Euclidean norm of every column.
func ColNorms(X Matrix) ([]float64, error) {
	ss, err := ColSumSquares(X)
	if err != nil {
		return nil, matrixErrorf(opColNorms, err)
	}
	for j := range ss {
		ss[j] = math.Sqrt(ss[j])
	}
	return ss, nil
}

// HasNaN reports whether any element of X is NaN.
func HasNaN(X Matrix) (bool, error) {
	if err := ValidateNotNil(X); err != nil {
		return false, matrixErrorf(opHasNaN, err)
	}
	if d, ok := X.(*Dense); ok {
		for _, v := range d.data {
			if math.IsNaN(v) {
				return true, nil
			}
		}
		return false, nil
	}

	r, c := X.Rows(), X.Cols()
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			v, err := X.At(i, j)
			if err != nil {
				return false, matrixErrorf(opHasNaN, err)
			}
			if math.IsNaN(v) {
				return true, nil
			}
		}
	}
	return false, nil
}

// Norm returns the Euclidean norm of a vector.
func Norm(v []float64) float64 {
	acc := ZeroSum
	for _, x := range v {
		acc += x * x
	}
	return math.Sqrt(acc)
}

// Dot returns Σ a[i]*b[i]. The caller guarantees equal lengths.
func Dot(a, b []float64) float64 {
	acc := ZeroSum
	for i := range a {
		acc += a[i] * b[i]
	}
	return acc
}
