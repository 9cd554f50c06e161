// SPDX-License-Identifier: MIT

package mva

import (
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/lvphi/matrix"
)

// gram returns XᵀX (transposeLeft) or XXᵀ computed in gonum.
func gram(X *matrix.Dense, transposeLeft bool) (*mat.Dense, error) {
	g, err := matrix.ToGonum(X)
	if err != nil {
		return nil, err
	}
	var out mat.Dense
	if transposeLeft {
		out.Mul(g.T(), g)
	} else {
		out.Mul(g, g.T())
	}
	return &out, nil
}

// symmetricSVD factorizes a symmetric positive semi-definite matrix and
// returns its singular vectors as columns, highest singular value first,
// together with the singular values.
func symmetricSVD(s mat.Matrix) (*mat.Dense, []float64, error) {
	var svd mat.SVD
	if ok := svd.Factorize(s, mat.SVDFull); !ok {
		return nil, nil, ErrFactorization
	}
	var v mat.Dense
	svd.VTo(&v)
	return &v, svd.Values(nil), nil
}

// rankExhausted reports whether singular value v of a Gram-type matrix is
// negligible next to the reference lead. Gram values carry rounding of order
// eps·lead, so the ratio is taken on the values themselves.
func rankExhausted(v, lead float64) bool {
	if lead <= 0 {
		return true
	}
	return v <= degenerateRatio*lead
}

// deflate returns X − t·pᵀ. When observed is non-nil the result is
// multiplied by it so missing cells stay zero.
func deflate(X *matrix.Dense, t, p []float64, observed *matrix.Dense) (*matrix.Dense, error) {
	tp, err := matrix.Outer(t, p)
	if err != nil {
		return nil, err
	}
	res, err := matrix.Sub(X, tp)
	if err != nil {
		return nil, err
	}
	if observed == nil {
		return res, nil
	}
	return matrix.Hadamard(res, observed)
}
