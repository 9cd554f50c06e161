// SPDX-License-Identifier: MIT

package mva

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/lvphi/matrix"
	"github.com/katalvlaran/lvphi/missing"
	"github.com/katalvlaran/lvphi/moments"
	"github.com/katalvlaran/lvphi/scaling"
)

const opPLS = "PLS"

// PLSModel is the result of a PLS fit. Column a of every component matrix
// belongs to latent variable a, in extraction order.
type PLSModel struct {
	T *matrix.Dense // X scores, observations × components
	P *matrix.Dense // X loadings, x-variables × components
	Q *matrix.Dense // Y loadings, y-variables × components
	W *matrix.Dense // X weights, x-variables × components
	U *matrix.Dense // Y scores, observations × components

	R2X       []float64
	R2XPerVar *matrix.Dense
	ScalingX  scaling.Params

	R2Y       []float64
	R2YPerVar *matrix.Dense
	ScalingY  scaling.Params
}

// Components returns the number of extracted latent variables.
func (m *PLSModel) Components() int { return len(m.R2X) }

// FittedY returns T·Qᵀ mapped back to the original Y units.
func (m *PLSModel) FittedY() (*matrix.Dense, error) {
	qt, err := matrix.Transpose(m.Q)
	if err != nil {
		return nil, mvaErrorf("FittedY", err)
	}
	yhat, err := matrix.Mul(m.T, qt)
	if err != nil {
		return nil, mvaErrorf("FittedY", err)
	}
	out, err := m.ScalingY.Inverse(yhat)
	if err != nil {
		return nil, mvaErrorf("FittedY", err)
	}
	return out, nil
}

// plsState holds the pre-sized component matrices filled column by column.
type plsState struct {
	T, P, Q, W, U *matrix.Dense
	trX, trY      *varianceTracker
}

func newPLSState(X, Y *matrix.Dense, A int) (*plsState, error) {
	n, p := X.Shape()
	m := Y.Cols()
	s := &plsState{}
	var err error
	for _, d := range []struct {
		dst  **matrix.Dense
		rows int
	}{{&s.T, n}, {&s.P, p}, {&s.Q, m}, {&s.W, p}, {&s.U, n}} {
		if *d.dst, err = matrix.NewDense(d.rows, A); err != nil {
			return nil, err
		}
	}
	if s.trX, err = newVarianceTracker(X, A); err != nil {
		return nil, err
	}
	if s.trY, err = newVarianceTracker(Y, A); err != nil {
		return nil, err
	}
	return s, nil
}

// store writes latent variable a into the component matrices.
func (s *plsState) store(a int, t, p, q, w, u []float64) error {
	return errors.Join(
		s.T.SetCol(a, t),
		s.P.SetCol(a, p),
		s.Q.SetCol(a, q),
		s.W.SetCol(a, w),
		s.U.SetCol(a, u),
	)
}

func (s *plsState) record(a int, X, Y *matrix.Dense) error {
	if err := s.trX.record(a, X); err != nil {
		return err
	}
	return s.trY.record(a, Y)
}

func (s *plsState) model() *PLSModel {
	s.trX.finish()
	s.trY.finish()
	return &PLSModel{
		T: s.T, P: s.P, Q: s.Q, W: s.W, U: s.U,
		R2X: s.trX.r2, R2XPerVar: s.trX.r2PerVar,
		R2Y: s.trY.r2, R2YPerVar: s.trY.r2PerVar,
	}
}

// PLS fits a partial least squares model of Y on X.
//
// Implementation:
//   - Stage 1: validate; scale copies of X and Y independently.
//   - Stage 2: neither matrix has missing values and iteration is not
//     forced → exact path; otherwise NIPALS (or ErrNotImplemented).
//   - Stage 3: deflate both blocks per latent variable; R² increments for
//     X and Y separately.
//
// Errors:
//   - ErrNilInput, ErrRowMismatch, ErrInvalidComponents
//     (1 ≤ components ≤ min(rows, cols of X)).
//   - ErrNotImplemented when the iterative path is needed with AlgorithmNLP.
//   - ErrFactorization if the SVD does not converge.
func PLS(X, Y *matrix.Dense, components int, opts ...Option) (*PLSModel, error) {
	if matrix.ValidateNotNil(X) != nil || matrix.ValidateNotNil(Y) != nil {
		return nil, mvaErrorf(opPLS, ErrNilInput)
	}
	if err := matrix.ValidateSameRows(X, Y); err != nil {
		return nil, mvaErrorf(opPLS, ErrRowMismatch)
	}
	if components < 1 || components > min(X.Rows(), X.Cols()) {
		return nil, mvaErrorf(opPLS, ErrInvalidComponents)
	}
	o := gatherOptions(opts...)
	r := newRun(enginePLS, o)

	xs, px, err := scaling.Apply(X, o.scalingX)
	if err != nil {
		return nil, mvaErrorf(opPLS, err)
	}
	ys, py, err := scaling.Apply(Y, o.scalingY)
	if err != nil {
		return nil, mvaErrorf(opPLS, err)
	}
	xMissing, _ := matrix.HasNaN(xs)
	yMissing, _ := matrix.HasNaN(ys)

	var m *PLSModel
	if !xMissing && !yMissing && !o.forceIterative {
		r.choosePath(PathExact)
		m, err = plsExact(xs, ys, components, r)
	} else {
		if o.algorithm != AlgorithmNIPALS {
			return nil, mvaErrorf(opPLS, ErrNotImplemented)
		}
		r.choosePath(PathIterative)
		m, err = plsNIPALS(xs, ys, components, o, r)
	}
	if err != nil {
		return nil, mvaErrorf(opPLS, err)
	}
	m.ScalingX, m.ScalingY = px, py

	return m, nil
}

// plsExact takes each weight vector as the dominant singular vector of
// (XᵀY)(YᵀX) of the current deflated blocks.
//
//	t = Xw, q = Yᵀt/tᵀt, u = Yq/qᵀq, p = Xᵀt/tᵀt
//	X ← X − tpᵀ, Y ← Y − tqᵀ
func plsExact(X, Y *matrix.Dense, A int, r *run) (*PLSModel, error) {
	s, err := newPLSState(X, Y, A)
	if err != nil {
		return nil, err
	}
	n, p := X.Shape()
	m := Y.Cols()
	lead := 0.0

	for a := 0; a < A; a++ {
		xg, err := matrix.ToGonum(X)
		if err != nil {
			return nil, err
		}
		yg, err := matrix.ToGonum(Y)
		if err != nil {
			return nil, err
		}
		var xty, cross mat.Dense
		xty.Mul(xg.T(), yg)
		cross.Mul(&xty, xty.T())
		vecs, values, err := symmetricSVD(&cross)
		if err != nil {
			return nil, err
		}

		if a == 0 {
			lead = values[0]
		}

		w := mat.Col(nil, 0, vecs)
		t, err := matrix.MatVec(X, w)
		if err != nil {
			return nil, err
		}
		tt := floats.Dot(t, t)
		if tt == 0 || rankExhausted(values[0], lead) {
			if err = s.store(a, zeros(n), zeros(p), zeros(m), zeros(p), zeros(n)); err != nil {
				return nil, err
			}
			if err = s.record(a, X, Y); err != nil {
				return nil, err
			}
			r.component(a, componentStatus{converged: true, degenerate: true})
			continue
		}

		q, err := matrix.MatTVec(Y, t)
		if err != nil {
			return nil, err
		}
		floats.Scale(1/tt, q)
		u, err := matrix.MatVec(Y, q)
		if err != nil {
			return nil, err
		}
		if qq := floats.Dot(q, q); qq > 0 {
			floats.Scale(1/qq, u)
		}
		pa, err := matrix.MatTVec(X, t)
		if err != nil {
			return nil, err
		}
		floats.Scale(1/tt, pa)

		if X, err = deflate(X, t, pa, nil); err != nil {
			return nil, err
		}
		if Y, err = deflate(Y, t, q, nil); err != nil {
			return nil, err
		}
		if err = s.store(a, t, pa, q, w, u); err != nil {
			return nil, err
		}
		if err = s.record(a, X, Y); err != nil {
			return nil, err
		}
		r.component(a, componentStatus{converged: true})
	}

	return s.model(), nil
}

// plsNIPALS runs the masked NIPALS iteration on zero-filled copies of X and Y.
func plsNIPALS(X, Y *matrix.Dense, A int, o Options, r *run) (*PLSModel, error) {
	maskX, err := missing.ToZero(X)
	if err != nil {
		return nil, err
	}
	maskY, err := missing.ToZero(Y)
	if err != nil {
		return nil, err
	}
	obsX, err := missing.Observed(maskX)
	if err != nil {
		return nil, err
	}
	obsY, err := missing.Observed(maskY)
	if err != nil {
		return nil, err
	}
	s, err := newPLSState(X, Y, A)
	if err != nil {
		return nil, err
	}
	floor := degenerateRatio * math.Sqrt(s.trY.tss)

	for a := 0; a < A; a++ {
		lv, st, err := nipalsPLSComponent(X, Y, obsX, obsY, floor, o)
		if err != nil {
			return nil, err
		}
		if !st.degenerate {
			if X, err = deflate(X, lv.t, lv.p, obsX); err != nil {
				return nil, err
			}
			if Y, err = deflate(Y, lv.t, lv.q, obsY); err != nil {
				return nil, err
			}
		}
		if err = s.store(a, lv.t, lv.p, lv.q, lv.w, lv.u); err != nil {
			return nil, err
		}
		if err = s.record(a, X, Y); err != nil {
			return nil, err
		}
		r.component(a, st)
	}

	return s.model(), nil
}

// latent holds the vectors of one PLS latent variable.
type latent struct {
	t, p, q, w, u []float64
}

func zeroLatent(n, p, m int) latent {
	return latent{t: zeros(n), p: zeros(p), q: zeros(m), w: zeros(p), u: zeros(n)}
}

// nipalsPLSComponent iterates, with masked denominators throughout,
//
//	w = Xᵀu/Σ(u∘obsX)², w ← w/‖w‖
//	t = Xw/Σ(w∘obsX)²
//	q = Yᵀt/Σ(t∘obsY)²
//	u' = Yq/Σ(q∘obsY)²
//
// until |‖u‖−‖u'‖|/‖u‖ < tol or the cap is reached, then computes the
// X loading p = Xᵀt/Σ(t∘obsX)². The seed u is the column of Y with the
// largest standard deviation.
func nipalsPLSComponent(X, Y, obsX, obsY *matrix.Dense, floor float64, o Options) (latent, componentStatus, error) {
	n, p := X.Shape()
	m := Y.Cols()
	var st componentStatus

	std, err := moments.Std(Y)
	if err != nil {
		return latent{}, st, err
	}
	u, err := Y.Col(floats.MaxIdx(std))
	if err != nil {
		return latent{}, st, err
	}

	// masked computes Aᵀv (transposed) or Av over observed cells only.
	masked := func(A, obs *matrix.Dense, v []float64, transposed bool) ([]float64, error) {
		op := matrix.MatVec
		if transposed {
			op = matrix.MatTVec
		}
		num, err := op(A, v)
		if err != nil {
			return nil, err
		}
		den, err := op(obs, squares(v))
		if err != nil {
			return nil, err
		}
		return maskedRatio(num, den), nil
	}
	degenerate := func() (latent, componentStatus, error) {
		return zeroLatent(n, p, m), componentStatus{iterations: st.iterations, degenerate: true}, nil
	}

	var lv latent
	for {
		nu := floats.Norm(u, 2)
		if nu <= floor || !finite(u) {
			return degenerate()
		}
		if lv.w, err = masked(X, obsX, u, true); err != nil {
			return latent{}, st, err
		}
		if normalize(lv.w) == 0 {
			return degenerate()
		}
		if lv.t, err = masked(X, obsX, lv.w, false); err != nil {
			return latent{}, st, err
		}
		if lv.q, err = masked(Y, obsY, lv.t, true); err != nil {
			return latent{}, st, err
		}
		if lv.u, err = masked(Y, obsY, lv.q, false); err != nil {
			return latent{}, st, err
		}
		if !finite(lv.w, lv.t, lv.q, lv.u) {
			return degenerate()
		}

		if math.Abs(nu-floats.Norm(lv.u, 2))/nu < o.tol {
			st.converged = true
			break
		}
		if st.iterations >= o.maxIter {
			break
		}
		st.iterations++
		u = lv.u
	}

	if lv.p, err = masked(X, obsX, lv.t, true); err != nil {
		return latent{}, st, err
	}
	return lv, st, nil
}
