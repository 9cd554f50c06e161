// SPDX-License-Identifier: MIT

package preprocess

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/lvphi/matrix"
)

const (
	opSavitzkyGolay       = "SavitzkyGolay"
	opSavitzkyGolayVector = "SavitzkyGolayVector"
)

// SavitzkyGolay smooths (derivOrder 0) or differentiates every row of data
// with a least-squares polynomial of order polyOrder fitted over a window of
// 2·halfWidth+1 points.
//
// It returns the filtered rows, each halfWidth points shorter at both ends,
// and the (L−2w)×L band matrix M such that every filtered row is M·row.
// Each band row holds the window coefficients, the derivOrder-th row of the
// least-squares pseudo-inverse of the window Vandermonde matrix scaled by
// derivOrder!, shifted one column per output position.
//
// Errors:
//   - ErrNilInput for nil data.
//   - ErrInvalidWindow if halfWidth < 1 or the row length is below 2w+1.
//   - ErrInvalidOrder if polyOrder < 0, polyOrder ≥ 2w+1, derivOrder < 0
//     or derivOrder > polyOrder.
func SavitzkyGolay(halfWidth, derivOrder, polyOrder int, data *matrix.Dense) (smoothed, coeffs *matrix.Dense, err error) {
	if err = matrix.ValidateNotNil(data); err != nil {
		return nil, nil, fmt.Errorf("%s: %w", opSavitzkyGolay, ErrNilInput)
	}
	M, err := bandMatrix(halfWidth, derivOrder, polyOrder, data.Cols())
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", opSavitzkyGolay, err)
	}
	mt, err := matrix.Transpose(M)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", opSavitzkyGolay, err)
	}
	if smoothed, err = matrix.Mul(data, mt); err != nil {
		return nil, nil, fmt.Errorf("%s: %w", opSavitzkyGolay, err)
	}
	return smoothed, M, nil
}

// SavitzkyGolayVector filters a single signal; see SavitzkyGolay.
func SavitzkyGolayVector(halfWidth, derivOrder, polyOrder int, x []float64) ([]float64, *matrix.Dense, error) {
	if x == nil {
		return nil, nil, fmt.Errorf("%s: %w", opSavitzkyGolayVector, ErrNilInput)
	}
	M, err := bandMatrix(halfWidth, derivOrder, polyOrder, len(x))
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", opSavitzkyGolayVector, err)
	}
	out, err := matrix.MatVec(M, x)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", opSavitzkyGolayVector, err)
	}
	return out, M, nil
}

// WindowCoefficients returns the 2w+1 filter weights for offsets −w…w.
func WindowCoefficients(halfWidth, derivOrder, polyOrder int) ([]float64, error) {
	if halfWidth < 1 {
		return nil, ErrInvalidWindow
	}
	size := 2*halfWidth + 1
	if polyOrder < 0 || polyOrder >= size || derivOrder < 0 || derivOrder > polyOrder {
		return nil, ErrInvalidOrder
	}

	// Vandermonde over offsets −w…w: V[k, o] = offset_k^o.
	V := mat.NewDense(size, polyOrder+1, nil)
	for k := 0; k < size; k++ {
		x := float64(k - halfWidth)
		pow := 1.0
		for o := 0; o <= polyOrder; o++ {
			V.Set(k, o, pow)
			pow *= x
		}
	}
	eye := mat.NewDiagDense(size, nil)
	for k := 0; k < size; k++ {
		eye.SetDiag(k, 1)
	}
	// Least-squares solve gives (VᵀV)⁻¹Vᵀ.
	var pinv mat.Dense
	if err := pinv.Solve(V, eye); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidOrder, err)
	}

	scale := 1.0
	for o := 2; o <= derivOrder; o++ {
		scale *= float64(o)
	}
	coeffs := mat.Row(nil, derivOrder, &pinv)
	for k := range coeffs {
		coeffs[k] *= scale
	}
	return coeffs, nil
}

// bandMatrix lays the window coefficients along the diagonal of an
// (L−2w)×L matrix.
func bandMatrix(halfWidth, derivOrder, polyOrder, length int) (*matrix.Dense, error) {
	coeffs, err := WindowCoefficients(halfWidth, derivOrder, polyOrder)
	if err != nil {
		return nil, err
	}
	rows := length - 2*halfWidth
	if rows < 1 {
		return nil, ErrInvalidWindow
	}
	M, err := matrix.NewDense(rows, length)
	if err != nil {
		return nil, err
	}
	for i := 0; i < rows; i++ {
		for k, c := range coeffs {
			if err = M.Set(i, i+k, c); err != nil {
				return nil, err
			}
		}
	}
	return M, nil
}
