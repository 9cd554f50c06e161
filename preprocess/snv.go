// SPDX-License-Identifier: MIT

package preprocess

import (
	"fmt"

	"github.com/montanaflynn/stats"

	"github.com/katalvlaran/lvphi/matrix"
)

const (
	opSNV       = "SNV"
	opSNVVector = "SNVVector"
)

// SNV centers every row on its mean and divides it by its sample standard
// deviation. A constant row is centered and left at zero.
func SNV(X *matrix.Dense) (*matrix.Dense, error) {
	if err := matrix.ValidateNotNil(X); err != nil {
		return nil, fmt.Errorf("%s: %w", opSNV, ErrNilInput)
	}
	out := X.Copy()
	for i := 0; i < X.Rows(); i++ {
		row, err := X.Row(i)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", opSNV, err)
		}
		if row, err = snv(row); err != nil {
			return nil, fmt.Errorf("%s: row %d: %w", opSNV, i, err)
		}
		for j, v := range row {
			_ = out.Set(i, j, v)
		}
	}
	return out, nil
}

// SNVVector applies SNV to a single signal.
func SNVVector(x []float64) ([]float64, error) {
	if x == nil {
		return nil, fmt.Errorf("%s: %w", opSNVVector, ErrNilInput)
	}
	out, err := snv(append([]float64(nil), x...))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opSNVVector, err)
	}
	return out, nil
}

// snv transforms x in place and returns it.
func snv(x []float64) ([]float64, error) {
	if len(x) < 2 {
		return nil, ErrTooShort
	}
	mean, err := stats.Mean(x)
	if err != nil {
		return nil, err
	}
	sd, err := stats.StandardDeviationSample(x)
	if err != nil {
		return nil, err
	}
	if sd == 0 {
		sd = 1
	}
	for i := range x {
		x[i] = (x[i] - mean) / sd
	}
	return x, nil
}
