// SPDX-License-Identifier: MIT

package missing

import (
	"errors"
	"fmt"
	"math"

	"github.com/katalvlaran/lvphi/matrix"
)

// ErrShapeMismatch is returned when a mask and its matrix differ in shape.
var ErrShapeMismatch = errors.New("missing: mask shape mismatch")

const (
	opToZero   = "ToZero"
	opToNaN    = "ToNaN"
	opObserved = "Observed"
)

// Indicator values stored in a mask.
const (
	Present = 0.0
	Absent  = 1.0
)

// ToZero replaces every NaN in X with 0 in place and returns the missing
// indicator mask (1 = missing) of the same shape.
func ToZero(X *matrix.Dense) (*matrix.Dense, error) {
	if err := matrix.ValidateNotNil(X); err != nil {
		return nil, fmt.Errorf("%s: %w", opToZero, err)
	}
	mask, err := matrix.NewDense(X.Rows(), X.Cols())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opToZero, err)
	}
	X.Apply(func(i, j int, v float64) float64 {
		if !math.IsNaN(v) {
			return v
		}
		_ = mask.Set(i, j, Absent) // same shape, cannot fail
		return 0
	})

	return mask, nil
}

// ToNaN writes NaN into X wherever mask is 1. X is modified in place.
func ToNaN(X, mask *matrix.Dense) error {
	if err := matrix.ValidateBinarySameShape(X, mask); err != nil {
		if errors.Is(err, matrix.ErrDimensionMismatch) {
			return fmt.Errorf("%s: %w", opToNaN, ErrShapeMismatch)
		}
		return fmt.Errorf("%s: %w", opToNaN, err)
	}
	mask.Do(func(i, j int, v float64) bool {
		if v == Absent {
			_ = X.Set(i, j, math.NaN())
		}
		return true
	})

	return nil
}

// Observed returns the complement of mask: 1 where a value is present.
func Observed(mask *matrix.Dense) (*matrix.Dense, error) {
	if err := matrix.ValidateNotNil(mask); err != nil {
		return nil, fmt.Errorf("%s: %w", opObserved, err)
	}
	out := mask.Copy()
	out.Apply(func(_, _ int, v float64) float64 { return 1 - v })

	return out, nil
}

// Count returns the number of missing cells recorded in mask.
func Count(mask *matrix.Dense) int {
	n := 0
	mask.Do(func(_, _ int, v float64) bool {
		if v == Absent {
			n++
		}
		return true
	})
	return n
}

// Any reports whether mask records at least one missing cell.
func Any(mask *matrix.Dense) bool {
	found := false
	mask.Do(func(_, _ int, v float64) bool {
		found = v == Absent
		return !found
	})
	return found
}
