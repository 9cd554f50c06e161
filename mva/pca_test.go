// SPDX-License-Identifier: MIT
package mva_test

import (
	"bytes"
	"log/slog"
	"math"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/katalvlaran/lvphi/matrix"
	"github.com/katalvlaran/lvphi/mva"
	"github.com/katalvlaran/lvphi/scaling"
)

// PCASuite exercises both PCA paths and their diagnostics.
type PCASuite struct {
	suite.Suite
	rec *recorder
}

func (s *PCASuite) SetupTest() { s.rec = &recorder{} }

func (s *PCASuite) opts(extra ...mva.Option) []mva.Option {
	return append([]mva.Option{mva.WithObserver(s.rec.observe), mva.WithLogger(nil)}, extra...)
}

// TestExactRecoversKnownComponents checks loadings and scores of a matrix
// with known singular structure.
func (s *PCASuite) TestExactRecoversKnownComponents() {
	t := s.T()
	X := separated(t)

	m, err := mva.PCA(X, 3, s.opts(mva.WithScaling(scaling.None))...)
	require.NoError(t, err)

	wantP := mustRows(t, [][]float64{
		{2.0 / 3, 1.0 / 3, 2.0 / 3},
		{1.0 / 3, 2.0 / 3, -2.0 / 3},
		{2.0 / 3, -2.0 / 3, -1.0 / 3},
	})
	requireSameUpToSign(t, wantP, m.P, 1e-10)

	wantR2 := []float64{1e4 / 10101, 1e2 / 10101, 1.0 / 10101}
	require.InDeltaSlice(t, wantR2, m.R2, 1e-12)
	require.Equal(t, 3, m.Components())

	paths := s.rec.kind(mva.EventPath)
	require.Len(t, paths, 1)
	require.Equal(t, mva.PathExact, paths[0].Path)
	require.Equal(t, "pca", paths[0].Engine)
	require.NotEmpty(t, paths[0].RunID)
	require.Len(t, s.rec.kind(mva.EventComponent), 3)
}

// TestFullReconstruction: square, full rank, no missing, all components.
func (s *PCASuite) TestFullReconstruction() {
	t := s.T()
	X := mustRows(t, [][]float64{{2, 1, 0}, {1, 3, 1}, {0, 1, 4}})

	for _, mode := range []scaling.Mode{scaling.None, scaling.Autoscale} {
		m, err := mva.PCA(X, 3, s.opts(mva.WithScaling(mode))...)
		require.NoError(t, err)
		back, err := m.Reconstruct()
		require.NoError(t, err)
		require.InDeltaSlice(t, X.RawRowMajor(), back.RawRowMajor(), 1e-9, mode.String())
	}
}

// TestIncrementsSumToCumulative compares increments of a large fit with the
// cumulative totals of smaller fits.
func (s *PCASuite) TestIncrementsSumToCumulative() {
	t := s.T()
	X := mustRows(t, [][]float64{
		{1, 5, 2}, {2, 3, 7}, {4, 4, 1}, {3, 8, 5}, {6, 2, 4},
	})

	full, err := mva.PCA(X, 3, s.opts()...)
	require.NoError(t, err)
	require.InDelta(t, 1.0, sum(full.R2), 1e-10)
	for j := 0; j < 3; j++ {
		row, _ := full.R2PerVar.Row(j)
		require.InDelta(t, 1.0, sum(row), 1e-10)
	}

	for k := 1; k <= 2; k++ {
		part, err := mva.PCA(X, k, s.opts()...)
		require.NoError(t, err)
		require.InDelta(t, sum(full.R2[:k]), sum(part.R2), 1e-10)
	}
}

// TestScaleOnlyExactPath is the 4×3 worked example with ScaleOnly scaling.
func (s *PCASuite) TestScaleOnlyExactPath() {
	t := s.T()
	X := mustRows(t, [][]float64{{1, 2, 3}, {4, 5, 6}, {7, 8, 9}, {10, 11, 12}})

	m, err := mva.PCA(X, 2, s.opts(mva.WithScaling(scaling.ScaleOnly))...)
	require.NoError(t, err)
	require.Equal(t, mva.PathExact, s.rec.kind(mva.EventPath)[0].Path)
	require.Len(t, m.R2, 2)
	require.GreaterOrEqual(t, m.R2[0], m.R2[1])
	require.LessOrEqual(t, sum(m.R2), 1+1e-12)
	require.Equal(t, []float64{0, 0, 0}, m.Scaling.Mean)
}

// TestMissingValueNIPALS is the same matrix with one missing cell.
func (s *PCASuite) TestMissingValueNIPALS() {
	t := s.T()
	X := mustRows(t, [][]float64{{1, 2, 3}, {4, math.NaN(), 6}, {7, 8, 9}, {10, 11, 12}})

	m, err := mva.PCA(X, 1, s.opts()...)
	require.NoError(t, err)
	require.Equal(t, mva.PathIterative, s.rec.kind(mva.EventPath)[0].Path)
	require.Equal(t, 4, m.T.Rows())
	require.Equal(t, 1, m.T.Cols())
	requireFinite(t, m.T, m.P, m.R2PerVar)

	comp := s.rec.kind(mva.EventComponent)
	require.Len(t, comp, 1)
	require.True(t, comp[0].Converged)
	require.Less(t, comp[0].Iterations, mva.DefaultMaxIterations)

	// Caller input is untouched.
	v, _ := X.At(1, 1)
	require.True(t, math.IsNaN(v))
	v, _ = X.At(3, 2)
	require.Equal(t, 12.0, v)
}

// TestNIPALSMatchesExact forces the iterative path on complete data, in both
// the tall and the wide orientation. The stopping rule bounds the relative
// change of the score norm, so directions agree to about sqrt(tol); scores
// are compared as unit columns since their scale is the singular value.
func (s *PCASuite) TestNIPALSMatchesExact() {
	t := s.T()
	for _, X := range []*matrix.Dense{separated(t), mustTranspose(t, separated(t))} {
		exact, err := mva.PCA(X, 2, s.opts(mva.WithScaling(scaling.None))...)
		require.NoError(t, err)
		iter, err := mva.PCA(X, 2, s.opts(
			mva.WithScaling(scaling.None),
			mva.WithForceIterative(),
			mva.WithTolerance(1e-14),
		)...)
		require.NoError(t, err)

		requireSameUpToSign(t, exact.P, iter.P, 1e-6)
		requireSameUpToSign(t, unitColumns(t, exact.T), unitColumns(t, iter.T), 1e-6)
		require.InDeltaSlice(t, exact.R2, iter.R2, 1e-8)
	}
}

// TestAllMissingColumn never divides by zero counts nor leaks NaN.
func (s *PCASuite) TestAllMissingColumn() {
	t := s.T()
	nan := math.NaN()
	X := mustRows(t, [][]float64{
		{1, 5, nan}, {2, 3, nan}, {4, 4, nan}, {3, 8, nan}, {6, 2, nan},
	})

	m, err := mva.PCA(X, 2, s.opts()...)
	require.NoError(t, err)
	requireFinite(t, m.T, m.P, m.R2PerVar)
	for _, r := range m.R2 {
		require.False(t, math.IsNaN(r))
	}
	row, _ := m.R2PerVar.Row(2)
	require.Equal(t, []float64{0, 0}, row)
}

// TestNLPNotImplemented fails only when the iterative path is needed.
func (s *PCASuite) TestNLPNotImplemented() {
	t := s.T()
	X := mustRows(t, [][]float64{{1, 2}, {3, math.NaN()}, {5, 7}})

	_, err := mva.PCA(X, 1, s.opts(mva.WithAlgorithm(mva.AlgorithmNLP))...)
	require.ErrorIs(t, err, mva.ErrNotImplemented)

	complete := mustRows(t, [][]float64{{1, 2}, {3, 4}, {5, 7}})
	_, err = mva.PCA(complete, 1, s.opts(mva.WithAlgorithm(mva.AlgorithmNLP))...)
	require.NoError(t, err)
}

// TestIterationCap ends the loop without error and reports non-convergence.
func (s *PCASuite) TestIterationCap() {
	t := s.T()
	_, err := mva.PCA(separated(t), 1, s.opts(
		mva.WithScaling(scaling.None),
		mva.WithForceIterative(),
		mva.WithMaxIterations(1),
		mva.WithTolerance(1e-300),
	)...)
	require.NoError(t, err)

	comp := s.rec.kind(mva.EventComponent)
	require.Len(t, comp, 1)
	require.False(t, comp[0].Converged)
	require.Equal(t, 1, comp[0].Iterations)
}

// TestDegenerateComponents flags components beyond the data rank.
func (s *PCASuite) TestDegenerateComponents() {
	t := s.T()

	// Autoscaled 3×3 data has rank ≤ 2 after centering.
	X := mustRows(t, [][]float64{{2, 1, 0}, {1, 3, 1}, {0, 1, 4}})
	_, err := mva.PCA(X, 3, s.opts()...)
	require.NoError(t, err)
	comp := s.rec.kind(mva.EventComponent)
	require.False(t, comp[0].Degenerate)
	require.True(t, comp[2].Degenerate)

	// Constant data is all zeros once centered.
	s.rec = &recorder{}
	flat := mustRows(t, [][]float64{{3, 3}, {3, 3}, {3, 3}})
	m, err := mva.PCA(flat, 1, s.opts(mva.WithForceIterative())...)
	require.NoError(t, err)
	require.True(t, s.rec.kind(mva.EventComponent)[0].Degenerate)
	require.Equal(t, []float64{0}, m.R2)
	require.Equal(t, []float64{0, 0, 0}, m.T.RawRowMajor())
}

// TestValidation covers the argument contract.
func (s *PCASuite) TestValidation() {
	t := s.T()
	X := mustRows(t, [][]float64{{1, 2}, {3, 4}, {5, 7}})

	_, err := mva.PCA(X, 0)
	require.ErrorIs(t, err, mva.ErrInvalidComponents)
	_, err = mva.PCA(X, 3)
	require.ErrorIs(t, err, mva.ErrInvalidComponents)
	_, err = mva.PCA(nil, 1)
	require.ErrorIs(t, err, mva.ErrNilInput)
}

// TestLogging checks the structured records carry the fit identity.
func (s *PCASuite) TestLogging() {
	t := s.T()
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	_, err := mva.PCA(separated(t), 2, mva.WithLogger(logger))
	require.NoError(t, err)
	out := buf.String()
	require.Contains(t, out, "engine=pca")
	require.Contains(t, out, "path=svd")
	require.Contains(t, out, "run_id=")
	require.Contains(t, out, "component=2")
}

func TestPCASuite(t *testing.T) {
	suite.Run(t, new(PCASuite))
}

func mustTranspose(t *testing.T, m *matrix.Dense) *matrix.Dense {
	t.Helper()
	out, err := matrix.Transpose(m)
	require.NoError(t, err)
	return out
}

// unitColumns returns a copy of m with every column scaled to unit norm.
func unitColumns(t *testing.T, m *matrix.Dense) *matrix.Dense {
	t.Helper()
	out := m.Copy()
	for a := 0; a < m.Cols(); a++ {
		c, err := m.Col(a)
		require.NoError(t, err)
		n := matrix.Norm(c)
		require.Positive(t, n)
		for i := range c {
			c[i] /= n
		}
		require.NoError(t, out.SetCol(a, c))
	}
	return out
}
