// SPDX-License-Identifier: MIT
package mva_test

import (
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvphi/matrix"
	"github.com/katalvlaran/lvphi/mva"
)

func mustRows(t *testing.T, rows [][]float64) *matrix.Dense {
	t.Helper()
	m, err := matrix.NewFromRows(rows)
	require.NoError(t, err)
	return m
}

// separated returns a 4×3 matrix with singular values 100, 10 and 1:
// X = 100·h2·v1ᵀ + 10·h3·v2ᵀ + h4·v3ᵀ with zero-mean orthonormal h and
// orthonormal v. Fit it unscaled to know the exact components.
func separated(t *testing.T) *matrix.Dense {
	t.Helper()
	h := [][]float64{
		{0.5, -0.5, 0.5, -0.5},
		{0.5, 0.5, -0.5, -0.5},
		{0.5, -0.5, -0.5, 0.5},
	}
	v := [][]float64{
		{2.0 / 3, 1.0 / 3, 2.0 / 3},
		{1.0 / 3, 2.0 / 3, -2.0 / 3},
		{2.0 / 3, -2.0 / 3, -1.0 / 3},
	}
	sigma := []float64{100, 10, 1}
	rows := make([][]float64, 4)
	for i := range rows {
		rows[i] = make([]float64, 3)
		for j := 0; j < 3; j++ {
			for k := 0; k < 3; k++ {
				rows[i][j] += sigma[k] * h[k][i] * v[k][j]
			}
		}
	}
	return mustRows(t, rows)
}

// regression returns a 6×3 predictor block and a response y = Xβ + e.
func regression(t *testing.T) (*matrix.Dense, *matrix.Dense) {
	t.Helper()
	X := mustRows(t, [][]float64{
		{1.0, 2.1, 0.3},
		{2.0, 1.9, 1.1},
		{3.1, 4.2, 0.2},
		{4.0, 3.8, 2.4},
		{5.2, 6.1, 1.3},
		{5.9, 5.7, 3.2},
	})
	Y := mustRows(t, [][]float64{{1.9}, {3.4}, {4.6}, {7.1}, {8.2}, {10.3}})
	return X, Y
}

// requireSameUpToSign compares matrices column by column, allowing each
// column of got to be the negation of want.
func requireSameUpToSign(t *testing.T, want, got *matrix.Dense, tol float64) {
	t.Helper()
	require.Equal(t, want.Rows(), got.Rows())
	require.Equal(t, want.Cols(), got.Cols())
	for a := 0; a < want.Cols(); a++ {
		w, _ := want.Col(a)
		g, _ := got.Col(a)
		if matrix.Dot(w, g) < 0 {
			for i := range g {
				g[i] = -g[i]
			}
		}
		require.InDeltaSlice(t, w, g, tol, "column %d", a)
	}
}

func requireFinite(t *testing.T, ms ...*matrix.Dense) {
	t.Helper()
	for _, m := range ms {
		has, err := matrix.HasNaN(m)
		require.NoError(t, err)
		require.False(t, has)
		for _, v := range m.RawRowMajor() {
			require.False(t, math.IsInf(v, 0))
		}
	}
}

func sum(v []float64) float64 {
	s := 0.0
	for _, x := range v {
		s += x
	}
	return s
}

// recorder collects events; safe for batch fits.
type recorder struct {
	mu     sync.Mutex
	events []mva.Event
}

func (r *recorder) observe(ev mva.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
}

func (r *recorder) kind(k mva.EventKind) []mva.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []mva.Event
	for _, ev := range r.events {
		if ev.Kind == k {
			out = append(out, ev)
		}
	}
	return out
}
