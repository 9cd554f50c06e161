// SPDX-License-Identifier: MIT
// Package: matrix
//
// Bridge between Dense and gonum's mat.Dense. Factorizations (SVD, solves)
// run in gonum; everything else stays in this package's kernels.

package matrix

import (
	"gonum.org/v1/gonum/mat"
)

const opToGonum = "ToGonum"

// ToGonum copies m into a new *mat.Dense.
// NaN cells are rejected with ErrNaNInf: gonum's LAPACK routines give
// undefined results on them.
func ToGonum(m *Dense) (*mat.Dense, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opToGonum, err)
	}
	has, _ := HasNaN(m)
	if has {
		return nil, matrixErrorf(opToGonum, ErrNaNInf)
	}
	buf := make([]float64, len(m.data))
	copy(buf, m.data)
	return mat.NewDense(m.r, m.c, buf), nil
}

// FromGonum copies any gonum matrix into a new *Dense.
func FromGonum(g mat.Matrix) *Dense {
	r, c := g.Dims()
	out := &Dense{r: r, c: c, data: make([]float64, r*c)}
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			out.data[i*c+j] = g.At(i, j)
		}
	}
	return out
}
