// SPDX-License-Identifier: MIT

package moments

import (
	"math"

	"github.com/katalvlaran/lvphi/matrix"
	"github.com/montanaflynn/stats"
)

const (
	opMean   = "Mean"
	opStd    = "Std"
	opCounts = "Counts"
)

// observedColumns splits X into per-column slices of non-NaN values.
// Stage 1 validates; Stage 2 walks each column top to bottom.
func observedColumns(op string, X matrix.Matrix) ([]stats.Float64Data, error) {
	if err := matrix.ValidateNotNil(X); err != nil {
		return nil, momentsErrorf(op, ErrNilInput)
	}
	r, c := X.Rows(), X.Cols()
	cols := make([]stats.Float64Data, c)
	for j := 0; j < c; j++ {
		col := make(stats.Float64Data, 0, r)
		for i := 0; i < r; i++ {
			v, err := X.At(i, j)
			if err != nil {
				return nil, momentsErrorf(op, err)
			}
			if !math.IsNaN(v) {
				col = append(col, v)
			}
		}
		cols[j] = col
	}

	return cols, nil
}

// Mean returns the missing-aware mean of every column (len = X.Cols()).
//
// Complexity: O(r*c) time, O(r*c) scratch.
func Mean(X matrix.Matrix) ([]float64, error) {
	cols, err := observedColumns(opMean, X)
	if err != nil {
		return nil, err
	}
	out := make([]float64, len(cols))
	for j, col := range cols {
		if len(col) == 0 {
			continue // all missing: mean 0
		}
		if out[j], err = stats.Mean(col); err != nil {
			return nil, momentsErrorf(opMean, err)
		}
	}

	return out, nil
}

// Std returns the missing-aware sample standard deviation of every column,
// using count-1 as the denominator.
func Std(X matrix.Matrix) ([]float64, error) {
	cols, err := observedColumns(opStd, X)
	if err != nil {
		return nil, err
	}
	out := make([]float64, len(cols))
	for j, col := range cols {
		if len(col) < 2 {
			continue // undefined sample std: 0
		}
		if out[j], err = stats.StandardDeviationSample(col); err != nil {
			return nil, momentsErrorf(opStd, err)
		}
	}

	return out, nil
}

// Counts returns the number of observed (non-NaN) entries per column.
func Counts(X matrix.Matrix) ([]int, error) {
	cols, err := observedColumns(opCounts, X)
	if err != nil {
		return nil, err
	}
	out := make([]int, len(cols))
	for j, col := range cols {
		out[j] = len(col)
	}

	return out, nil
}
