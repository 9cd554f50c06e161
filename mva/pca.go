// SPDX-License-Identifier: MIT

package mva

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/lvphi/matrix"
	"github.com/katalvlaran/lvphi/missing"
	"github.com/katalvlaran/lvphi/moments"
	"github.com/katalvlaran/lvphi/scaling"
)

const opPCA = "PCA"

// PCAModel is the result of a PCA fit. Column a of every component matrix
// belongs to component a, in extraction order.
type PCAModel struct {
	T        *matrix.Dense // scores, observations × components
	P        *matrix.Dense // loadings, variables × components
	R2       []float64     // variance explained per component (increments)
	R2PerVar *matrix.Dense // per-variable increments, variables × components
	Scaling  scaling.Params
}

// Components returns the number of extracted components.
func (m *PCAModel) Components() int { return len(m.R2) }

// Reconstruct returns T·Pᵀ mapped back to the original units.
func (m *PCAModel) Reconstruct() (*matrix.Dense, error) {
	pt, err := matrix.Transpose(m.P)
	if err != nil {
		return nil, mvaErrorf("Reconstruct", err)
	}
	xhat, err := matrix.Mul(m.T, pt)
	if err != nil {
		return nil, mvaErrorf("Reconstruct", err)
	}
	out, err := m.Scaling.Inverse(xhat)
	if err != nil {
		return nil, mvaErrorf("Reconstruct", err)
	}
	return out, nil
}

// PCA fits a principal component model with the given number of components.
//
// Implementation:
//   - Stage 1: validate; scale a copy of X (missing-aware).
//   - Stage 2: complete data and no forced iteration → exact SVD path;
//     otherwise NIPALS (or ErrNotImplemented for AlgorithmNLP).
//   - Stage 3: per-component deflation and R² bookkeeping; increments.
//
// Errors:
//   - ErrNilInput, ErrInvalidComponents (1 ≤ components ≤ min(rows, cols)).
//   - ErrNotImplemented when the iterative path is needed with AlgorithmNLP.
//   - ErrFactorization if the SVD does not converge.
//
// Rank deficiency and non-convergence are not errors; they are reported as
// Event flags and WARN log records.
func PCA(X *matrix.Dense, components int, opts ...Option) (*PCAModel, error) {
	if err := matrix.ValidateNotNil(X); err != nil {
		return nil, mvaErrorf(opPCA, ErrNilInput)
	}
	if components < 1 || components > min(X.Rows(), X.Cols()) {
		return nil, mvaErrorf(opPCA, ErrInvalidComponents)
	}
	o := gatherOptions(opts...)
	r := newRun(enginePCA, o)

	xs, params, err := scaling.Apply(X, o.scalingX)
	if err != nil {
		return nil, mvaErrorf(opPCA, err)
	}
	hasMissing, err := matrix.HasNaN(xs)
	if err != nil {
		return nil, mvaErrorf(opPCA, err)
	}

	var m *PCAModel
	if !hasMissing && !o.forceIterative {
		r.choosePath(PathExact)
		m, err = pcaExact(xs, components, r)
	} else {
		if o.algorithm != AlgorithmNIPALS {
			return nil, mvaErrorf(opPCA, ErrNotImplemented)
		}
		r.choosePath(PathIterative)
		m, err = pcaNIPALS(xs, components, o, r)
	}
	if err != nil {
		return nil, mvaErrorf(opPCA, err)
	}
	m.Scaling = params

	return m, nil
}

// pcaExact takes loadings from the SVD of the smaller Gram matrix.
// With more variables than observations the SVD of XXᵀ yields score
// directions u, and each loading is Xᵀu normalized to unit length.
func pcaExact(X *matrix.Dense, A int, r *run) (*PCAModel, error) {
	n, p := X.Shape()
	tracker, err := newVarianceTracker(X, A)
	if err != nil {
		return nil, err
	}
	P, err := matrix.NewDense(p, A)
	if err != nil {
		return nil, err
	}

	wide := p > n
	g, err := gram(X, !wide)
	if err != nil {
		return nil, err
	}
	vecs, values, err := symmetricSVD(g)
	if err != nil {
		return nil, err
	}
	for a := 0; a < A; a++ {
		v := mat.Col(nil, a, vecs)
		if wide {
			if v, err = matrix.MatTVec(X, v); err != nil {
				return nil, err
			}
			normalize(v)
		}
		if err = P.SetCol(a, v); err != nil {
			return nil, err
		}
	}
	T, err := matrix.Mul(X, P)
	if err != nil {
		return nil, err
	}

	work := X
	for a := 0; a < A; a++ {
		t, _ := T.Col(a)
		pa, _ := P.Col(a)
		if work, err = deflate(work, t, pa, nil); err != nil {
			return nil, err
		}
		if err = tracker.record(a, work); err != nil {
			return nil, err
		}
		r.component(a, componentStatus{converged: true, degenerate: rankExhausted(values[a], values[0])})
	}
	tracker.finish()

	return &PCAModel{T: T, P: P, R2: tracker.r2, R2PerVar: tracker.r2PerVar}, nil
}

// pcaNIPALS extracts components one at a time from the zero-filled matrix.
func pcaNIPALS(X *matrix.Dense, A int, o Options, r *run) (*PCAModel, error) {
	n, p := X.Shape()
	work := X
	mask, err := missing.ToZero(work)
	if err != nil {
		return nil, err
	}
	obs, err := missing.Observed(mask)
	if err != nil {
		return nil, err
	}
	tracker, err := newVarianceTracker(work, A)
	if err != nil {
		return nil, err
	}
	floor := degenerateRatio * math.Sqrt(tracker.tss)

	T, err := matrix.NewDense(n, A)
	if err != nil {
		return nil, err
	}
	P, err := matrix.NewDense(p, A)
	if err != nil {
		return nil, err
	}

	for a := 0; a < A; a++ {
		t, pa, st, err := nipalsPCAComponent(work, obs, floor, o)
		if err != nil {
			return nil, err
		}
		if err = T.SetCol(a, t); err != nil {
			return nil, err
		}
		if err = P.SetCol(a, pa); err != nil {
			return nil, err
		}
		if !st.degenerate {
			if work, err = deflate(work, t, pa, obs); err != nil {
				return nil, err
			}
		}
		if err = tracker.record(a, work); err != nil {
			return nil, err
		}
		r.component(a, st)
	}
	tracker.finish()

	return &PCAModel{T: T, P: P, R2: tracker.r2, R2PerVar: tracker.r2PerVar}, nil
}

// nipalsPCAComponent iterates
//
//	p = Xᵀt / Σ(t∘obs)²   (per column), then p ← p/‖p‖
//	t' = Xp / Σ(p∘obs)²   (per row)
//
// until |‖t‖−‖t'‖|/‖t‖ < tol or the iteration cap is reached. The seed is
// the column of X with the largest standard deviation. The returned score is
// the iterate that produced the returned loading.
func nipalsPCAComponent(X, obs *matrix.Dense, floor float64, o Options) (t, p []float64, st componentStatus, err error) {
	n, m := X.Shape()
	std, err := moments.Std(X)
	if err != nil {
		return nil, nil, st, err
	}
	if t, err = X.Col(floats.MaxIdx(std)); err != nil {
		return nil, nil, st, err
	}

	var num, den, tn []float64
	for {
		nt := floats.Norm(t, 2)
		if nt <= floor || !finite(t) {
			return zeros(n), zeros(m), componentStatus{iterations: st.iterations, degenerate: true}, nil
		}

		// Step 1. loadings from current scores.
		if num, err = matrix.MatTVec(X, t); err != nil {
			return nil, nil, st, err
		}
		if den, err = matrix.MatTVec(obs, squares(t)); err != nil {
			return nil, nil, st, err
		}
		p = maskedRatio(num, den)
		// Step 2. unit length.
		if normalize(p) == 0 {
			return zeros(n), zeros(m), componentStatus{iterations: st.iterations, degenerate: true}, nil
		}
		// Step 3. new scores from loadings.
		if num, err = matrix.MatVec(X, p); err != nil {
			return nil, nil, st, err
		}
		if den, err = matrix.MatVec(obs, squares(p)); err != nil {
			return nil, nil, st, err
		}
		tn = maskedRatio(num, den)
		if !finite(p, tn) {
			return zeros(n), zeros(m), componentStatus{iterations: st.iterations, degenerate: true}, nil
		}

		if math.Abs(nt-floats.Norm(tn, 2))/nt < o.tol {
			st.converged = true
			return t, p, st, nil
		}
		if st.iterations >= o.maxIter {
			return t, p, st, nil
		}
		st.iterations++
		t = tn
	}
}
