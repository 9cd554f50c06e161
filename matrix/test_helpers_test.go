// SPDX-License-Identifier: MIT
// Package matrix_test contains test helpers
//
// Purpose:
//   • Provide small, deterministic test fixtures for the kernels.
//   • Force the generic (non-*Dense) code paths where a test needs them.

package matrix_test

import (
	"testing"

	"github.com/katalvlaran/lvphi/matrix"
	"github.com/stretchr/testify/require"
)

// Default tolerances for AllClose-based comparisons.
const (
	rtol = 1e-12
	atol = 1e-12
)

// hide wraps any Matrix to hide its concrete type from type assertions.
// Use hide{X} to force the At-based fallback instead of the *Dense fast-path.
type hide struct{ matrix.Matrix }

// MustDense allocates an r×c *Dense or fails the test.
func MustDense(t *testing.T, r, c int) *matrix.Dense {
	t.Helper()
	m, err := matrix.NewDense(r, c)
	require.NoError(t, err)
	return m
}

// MustRows builds a *Dense from literal rows or fails the test.
func MustRows(t *testing.T, rows [][]float64) *matrix.Dense {
	t.Helper()
	m, err := matrix.NewFromRows(rows)
	require.NoError(t, err)
	return m
}

// RequireClose asserts AllClose(a, b) with the package tolerances.
func RequireClose(t *testing.T, want, got matrix.Matrix) {
	t.Helper()
	ok, err := matrix.AllClose(got, want, rtol, atol)
	require.NoError(t, err)
	require.True(t, ok, "want:\n%v\ngot:\n%v", want, got)
}
