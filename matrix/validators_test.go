// SPDX-License-Identifier: MIT
// Package matrix_test contains unit tests for the matrix validators.
package matrix_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/lvphi/matrix"
	"github.com/stretchr/testify/require"
)

// TestValidateBinarySameShape covers nil inputs, matching and mismatched dimensions.
func TestValidateBinarySameShape(t *testing.T) {
	t.Parallel()

	var typedNil *matrix.Dense
	tests := []struct {
		name    string
		a, b    matrix.Matrix
		wantErr error
	}{
		{"both nil", nil, nil, matrix.ErrNilMatrix},
		{"first nil", nil, MustDense(t, 2, 2), matrix.ErrNilMatrix},
		{"typed nil", typedNil, MustDense(t, 2, 2), matrix.ErrNilMatrix},
		{"second nil", MustDense(t, 2, 2), nil, matrix.ErrNilMatrix},
		{"equal 2x3", MustDense(t, 2, 3), MustDense(t, 2, 3), nil},
		{"row mismatch", MustDense(t, 2, 3), MustDense(t, 3, 3), matrix.ErrDimensionMismatch},
		{"col mismatch", MustDense(t, 2, 3), MustDense(t, 2, 4), matrix.ErrDimensionMismatch},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			err := matrix.ValidateBinarySameShape(tc.a, tc.b)
			if tc.wantErr == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tc.wantErr)
		})
	}
}

// TestValidateSameRows ensures only row counts are compared.
func TestValidateSameRows(t *testing.T) {
	t.Parallel()
	require.NoError(t, matrix.ValidateSameRows(MustDense(t, 4, 2), MustDense(t, 4, 7)))
	require.ErrorIs(t, matrix.ValidateSameRows(MustDense(t, 4, 2), MustDense(t, 3, 2)), matrix.ErrDimensionMismatch)
	require.ErrorIs(t, matrix.ValidateSameRows(nil, MustDense(t, 3, 2)), matrix.ErrNilMatrix)
}

// TestValidateMulCompatibleAndVecLen covers the product and vector contracts.
func TestValidateMulCompatibleAndVecLen(t *testing.T) {
	t.Parallel()
	require.NoError(t, matrix.ValidateMulCompatible(MustDense(t, 2, 3), MustDense(t, 3, 5)))
	require.ErrorIs(t, matrix.ValidateMulCompatible(MustDense(t, 2, 3), MustDense(t, 2, 3)), matrix.ErrDimensionMismatch)

	require.NoError(t, matrix.ValidateVecLen([]float64{1, 2}, 2))
	require.ErrorIs(t, matrix.ValidateVecLen(nil, 0), matrix.ErrNilMatrix)
	require.ErrorIs(t, matrix.ValidateVecLen([]float64{1}, 2), matrix.ErrDimensionMismatch)
}

// TestValidateTolerance rejects non-finite tolerances.
func TestValidateTolerance(t *testing.T) {
	t.Parallel()
	require.NoError(t, matrix.ValidateTolerance(1e-10))
	require.ErrorIs(t, matrix.ValidateTolerance(math.NaN()), matrix.ErrNaNInf)
	require.ErrorIs(t, matrix.ValidateTolerance(math.Inf(1)), matrix.ErrNaNInf)
}
