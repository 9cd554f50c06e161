// SPDX-License-Identifier: MIT

package mva

import (
	"errors"
	"fmt"
)

var (
	// ErrNotImplemented is returned when the iterative path is needed and the
	// selected missing-data algorithm has no implementation (AlgorithmNLP).
	ErrNotImplemented = errors.New("mva: algorithm not implemented")

	// ErrInvalidComponents indicates a component count outside 1..min(rows, cols).
	ErrInvalidComponents = errors.New("mva: invalid number of components")

	// ErrNilInput indicates a nil data matrix.
	ErrNilInput = errors.New("mva: nil input matrix")

	// ErrRowMismatch indicates X and Y with different observation counts.
	ErrRowMismatch = errors.New("mva: X and Y row counts differ")

	// ErrFactorization is returned when the exact-path SVD fails to converge.
	ErrFactorization = errors.New("mva: SVD factorization failed")

	// ErrUnknownAlgorithm is returned by ParseAlgorithm.
	ErrUnknownAlgorithm = errors.New("mva: unknown algorithm")
)

func mvaErrorf(op string, err error) error {
	return fmt.Errorf("%s: %w", op, err)
}
