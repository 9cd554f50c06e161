// SPDX-License-Identifier: MIT

package preprocess

import "errors"

var (
	// ErrInvalidWindow is returned for a half-width below 1 or a window
	// wider than the signal.
	ErrInvalidWindow = errors.New("preprocess: invalid window")

	// ErrInvalidOrder is returned when the polynomial order does not fit the
	// window or the derivative order exceeds the polynomial order.
	ErrInvalidOrder = errors.New("preprocess: invalid polynomial or derivative order")

	// ErrTooShort is returned by SNV for signals with fewer than two points.
	ErrTooShort = errors.New("preprocess: signal too short")

	// ErrNilInput indicates a nil matrix or vector.
	ErrNilInput = errors.New("preprocess: nil input")
)
