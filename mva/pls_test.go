// SPDX-License-Identifier: MIT
package mva_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/katalvlaran/lvphi/matrix"
	"github.com/katalvlaran/lvphi/mva"
	"github.com/katalvlaran/lvphi/scaling"
)

// PLSSuite exercises both PLS paths.
type PLSSuite struct {
	suite.Suite
	rec *recorder
}

func (s *PLSSuite) SetupTest() { s.rec = &recorder{} }

func (s *PLSSuite) opts(extra ...mva.Option) []mva.Option {
	return append([]mva.Option{mva.WithObserver(s.rec.observe), mva.WithLogger(nil)}, extra...)
}

// TestExactShapesAndVariance checks component shapes and R² bookkeeping.
func (s *PLSSuite) TestExactShapesAndVariance() {
	t := s.T()
	X, Y := regression(t)

	m, err := mva.PLS(X, Y, 2, s.opts()...)
	require.NoError(t, err)
	require.Equal(t, mva.PathExact, s.rec.kind(mva.EventPath)[0].Path)
	require.Equal(t, "pls", s.rec.kind(mva.EventPath)[0].Engine)

	for _, c := range []struct {
		m    *matrix.Dense
		rows int
	}{{m.T, 6}, {m.U, 6}, {m.P, 3}, {m.W, 3}, {m.Q, 1}} {
		require.Equal(t, c.rows, c.m.Rows())
		require.Equal(t, 2, c.m.Cols())
	}
	require.Equal(t, 2, m.Components())
	require.Len(t, m.R2X, 2)
	require.Len(t, m.R2Y, 2)
	require.LessOrEqual(t, sum(m.R2X), 1+1e-12)
	require.LessOrEqual(t, sum(m.R2Y), 1+1e-12)
	require.Greater(t, m.R2Y[0], 0.9) // y is almost linear in X

	// Weights are unit length and scores are orthogonal.
	for a := 0; a < 2; a++ {
		w, _ := m.W.Col(a)
		require.InDelta(t, 1.0, matrix.Norm(w), 1e-12)
	}
	t0, _ := m.T.Col(0)
	t1, _ := m.T.Col(1)
	require.InDelta(t, 0.0, matrix.Dot(t0, t1), 1e-9)
}

// TestIncrementsSumToCumulative compares increments of a larger fit with the
// cumulative totals of a smaller one.
func (s *PLSSuite) TestIncrementsSumToCumulative() {
	t := s.T()
	X, Y := regression(t)

	full, err := mva.PLS(X, Y, 3, s.opts()...)
	require.NoError(t, err)
	require.LessOrEqual(t, sum(full.R2X), 1+1e-10)

	two, err := mva.PLS(X, Y, 2, s.opts()...)
	require.NoError(t, err)
	require.InDelta(t, sum(full.R2X[:2]), sum(two.R2X), 1e-10)
	require.InDelta(t, sum(full.R2Y[:2]), sum(two.R2Y), 1e-10)
	for j := 0; j < 3; j++ {
		fullRow, _ := full.R2XPerVar.Row(j)
		twoRow, _ := two.R2XPerVar.Row(j)
		require.InDelta(t, sum(fullRow[:2]), sum(twoRow), 1e-10)
	}
}

// TestNIPALSMatchesExact: with a single response the iteration reaches the
// exact fixed point after one update.
func (s *PLSSuite) TestNIPALSMatchesExact() {
	t := s.T()
	X, Y := regression(t)

	exact, err := mva.PLS(X, Y, 2, s.opts()...)
	require.NoError(t, err)
	iter, err := mva.PLS(X, Y, 2, s.opts(mva.WithForceIterative())...)
	require.NoError(t, err)

	requireSameUpToSign(t, exact.W, iter.W, 1e-6)
	requireSameUpToSign(t, exact.T, iter.T, 1e-6)
	requireSameUpToSign(t, exact.P, iter.P, 1e-6)
	requireSameUpToSign(t, exact.Q, iter.Q, 1e-6)
	requireSameUpToSign(t, exact.U, iter.U, 1e-6)
	require.InDeltaSlice(t, exact.R2X, iter.R2X, 1e-6)
	require.InDeltaSlice(t, exact.R2Y, iter.R2Y, 1e-6)

	for _, ev := range s.rec.kind(mva.EventComponent) {
		require.True(t, ev.Converged)
	}
}

// TestMissingMultiResponse runs NIPALS with gaps in both blocks.
func (s *PLSSuite) TestMissingMultiResponse() {
	t := s.T()
	nan := math.NaN()
	X := mustRows(t, [][]float64{
		{1.0, 2.1, 0.3},
		{2.0, nan, 1.1},
		{3.1, 4.2, 0.2},
		{4.0, 3.8, 2.4},
		{5.2, 6.1, nan},
		{5.9, 5.7, 3.2},
	})
	Y := mustRows(t, [][]float64{
		{1.9, 0.4}, {3.4, 1.0}, {4.6, nan}, {7.1, 2.2}, {8.2, 2.5}, {10.3, 3.4},
	})

	m, err := mva.PLS(X, Y, 2, s.opts()...)
	require.NoError(t, err)
	require.Equal(t, mva.PathIterative, s.rec.kind(mva.EventPath)[0].Path)
	requireFinite(t, m.T, m.P, m.Q, m.W, m.U, m.R2XPerVar, m.R2YPerVar)
	require.Equal(t, 2, m.Q.Rows())
	for _, ev := range s.rec.kind(mva.EventComponent) {
		require.True(t, ev.Converged)
	}

	yhat, err := m.FittedY()
	require.NoError(t, err)
	require.Equal(t, 6, yhat.Rows())
	require.Equal(t, 2, yhat.Cols())

	v, _ := Y.At(2, 1)
	require.True(t, math.IsNaN(v), "input must not be modified")
}

// TestIndependentScaling applies separate modes to X and Y.
func (s *PLSSuite) TestIndependentScaling() {
	t := s.T()
	X, Y := regression(t)

	m, err := mva.PLS(X, Y, 1, s.opts(
		mva.WithScalingX(scaling.Center),
		mva.WithScalingY(scaling.None),
	)...)
	require.NoError(t, err)
	require.Equal(t, scaling.Center, m.ScalingX.Mode)
	require.Equal(t, []float64{1, 1, 1}, m.ScalingX.Std)
	require.Equal(t, scaling.None, m.ScalingY.Mode)
	require.Equal(t, []float64{0}, m.ScalingY.Mean)
}

// TestValidation covers the argument contract.
func (s *PLSSuite) TestValidation() {
	t := s.T()
	X, Y := regression(t)

	_, err := mva.PLS(X, mustRows(t, [][]float64{{1}, {2}}), 1)
	require.ErrorIs(t, err, mva.ErrRowMismatch)
	_, err = mva.PLS(X, Y, 4)
	require.ErrorIs(t, err, mva.ErrInvalidComponents)
	_, err = mva.PLS(nil, Y, 1)
	require.ErrorIs(t, err, mva.ErrNilInput)

	Y2 := Y.Copy()
	require.NoError(t, Y2.Set(0, 0, math.NaN()))
	_, err = mva.PLS(X, Y2, 1, mva.WithAlgorithm(mva.AlgorithmNLP))
	require.ErrorIs(t, err, mva.ErrNotImplemented)
}

func TestPLSSuite(t *testing.T) {
	suite.Run(t, new(PLSSuite))
}
