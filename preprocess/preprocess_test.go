// SPDX-License-Identifier: MIT
package preprocess_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvphi/matrix"
	"github.com/katalvlaran/lvphi/preprocess"
)

func TestSNV(t *testing.T) {
	t.Parallel()

	X, err := matrix.NewFromRows([][]float64{{1, 2, 3, 4}, {10, 30, 20, 40}, {5, 5, 5, 5}})
	require.NoError(t, err)

	out, err := preprocess.SNV(X)
	require.NoError(t, err)
	for i := 0; i < 2; i++ {
		row, _ := out.Row(i)
		mean := (row[0] + row[1] + row[2] + row[3]) / 4
		ss := 0.0
		for _, v := range row {
			ss += (v - mean) * (v - mean)
		}
		require.InDelta(t, 0.0, mean, 1e-12)
		require.InDelta(t, 1.0, math.Sqrt(ss/3), 1e-12)
	}
	row, _ := out.Row(2)
	require.Equal(t, []float64{0, 0, 0, 0}, row)

	// Input untouched.
	v, _ := X.At(1, 1)
	require.Equal(t, 30.0, v)
}

func TestSNVVector(t *testing.T) {
	t.Parallel()

	out, err := preprocess.SNVVector([]float64{2, 4, 6})
	require.NoError(t, err)
	require.InDeltaSlice(t, []float64{-1, 0, 1}, out, 1e-12)

	_, err = preprocess.SNVVector([]float64{1})
	require.ErrorIs(t, err, preprocess.ErrTooShort)
	_, err = preprocess.SNVVector(nil)
	require.ErrorIs(t, err, preprocess.ErrNilInput)
}

func TestWindowCoefficients_Classic(t *testing.T) {
	t.Parallel()

	c, err := preprocess.WindowCoefficients(2, 0, 2)
	require.NoError(t, err)
	want := []float64{-3.0 / 35, 12.0 / 35, 17.0 / 35, 12.0 / 35, -3.0 / 35}
	require.InDeltaSlice(t, want, c, 1e-12)

	// First derivative, linear fit: central difference weights.
	c, err = preprocess.WindowCoefficients(1, 1, 1)
	require.NoError(t, err)
	require.InDeltaSlice(t, []float64{-0.5, 0, 0.5}, c, 1e-12)
}

// TestSavitzkyGolay_Polynomial reproduces a quadratic and its derivatives.
func TestSavitzkyGolay_Polynomial(t *testing.T) {
	t.Parallel()

	const L, w = 10, 2
	f := func(x float64) float64 { return x*x + 3*x + 1 }
	row := make([]float64, L)
	for i := range row {
		row[i] = f(float64(i))
	}
	data, err := matrix.NewFromRows([][]float64{row, row})
	require.NoError(t, err)

	smooth, M, err := preprocess.SavitzkyGolay(w, 0, 2, data)
	require.NoError(t, err)
	require.Equal(t, L-2*w, M.Rows())
	require.Equal(t, L, M.Cols())
	require.Equal(t, 2, smooth.Rows())
	require.Equal(t, L-2*w, smooth.Cols())
	got, _ := smooth.Row(1)
	require.InDeltaSlice(t, row[w:L-w], got, 1e-9)

	d1, _, err := preprocess.SavitzkyGolayVector(w, 1, 2, row)
	require.NoError(t, err)
	for i, v := range d1 {
		require.InDelta(t, 2*float64(i+w)+3, v, 1e-9)
	}

	d2, _, err := preprocess.SavitzkyGolayVector(w, 2, 2, row)
	require.NoError(t, err)
	for _, v := range d2 {
		require.InDelta(t, 2.0, v, 1e-9)
	}
}

func TestSavitzkyGolay_Validation(t *testing.T) {
	t.Parallel()

	x := []float64{1, 2, 3, 4, 5}
	_, _, err := preprocess.SavitzkyGolayVector(0, 0, 1, x)
	require.ErrorIs(t, err, preprocess.ErrInvalidWindow)
	_, _, err = preprocess.SavitzkyGolayVector(3, 0, 1, x)
	require.ErrorIs(t, err, preprocess.ErrInvalidWindow)
	_, _, err = preprocess.SavitzkyGolayVector(1, 0, 3, x)
	require.ErrorIs(t, err, preprocess.ErrInvalidOrder)
	_, _, err = preprocess.SavitzkyGolayVector(1, 2, 1, x)
	require.ErrorIs(t, err, preprocess.ErrInvalidOrder)
	_, _, err = preprocess.SavitzkyGolay(1, 0, 1, nil)
	require.ErrorIs(t, err, preprocess.ErrNilInput)
}
