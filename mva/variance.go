// SPDX-License-Identifier: MIT

package mva

import (
	"github.com/katalvlaran/lvphi/matrix"
)

// varianceTracker accumulates explained variance against the total sum of
// squares of the scaled (zero-filled) matrix captured at construction.
// Values are recorded cumulatively and turned into increments by finish.
type varianceTracker struct {
	tss       float64
	tssPerVar []float64
	r2        []float64
	r2PerVar  *matrix.Dense // vars × components
}

func newVarianceTracker(X *matrix.Dense, components int) (*varianceTracker, error) {
	tss, err := matrix.SumSquares(X)
	if err != nil {
		return nil, err
	}
	perVar, err := matrix.ColSumSquares(X)
	if err != nil {
		return nil, err
	}
	pv, err := matrix.NewDense(X.Cols(), components)
	if err != nil {
		return nil, err
	}
	return &varianceTracker{
		tss:       tss,
		tssPerVar: perVar,
		r2:        make([]float64, components),
		r2PerVar:  pv,
	}, nil
}

// record stores the cumulative R² of component a given the residual matrix.
// A zero reference sum of squares yields 0 rather than NaN.
func (v *varianceTracker) record(a int, residual *matrix.Dense) error {
	rss, err := matrix.SumSquares(residual)
	if err != nil {
		return err
	}
	if v.tss > 0 {
		v.r2[a] = 1 - rss/v.tss
	}
	perVar, err := matrix.ColSumSquares(residual)
	if err != nil {
		return err
	}
	for j, ss := range perVar {
		r := 0.0
		if v.tssPerVar[j] > 0 {
			r = 1 - ss/v.tssPerVar[j]
		}
		if err = v.r2PerVar.Set(j, a, r); err != nil {
			return err
		}
	}
	return nil
}

// finish converts cumulative values to per-component increments, walking
// from the last component down.
func (v *varianceTracker) finish() {
	for a := len(v.r2) - 1; a > 0; a-- {
		v.r2[a] -= v.r2[a-1]
		for j := 0; j < v.r2PerVar.Rows(); j++ {
			cur, _ := v.r2PerVar.At(j, a)
			prev, _ := v.r2PerVar.At(j, a-1)
			_ = v.r2PerVar.Set(j, a, cur-prev)
		}
	}
}
