// SPDX-License-Identifier: MIT

package moments

import (
	"errors"
	"fmt"
)

// ErrNilInput is returned when a nil matrix is passed to a reduction.
var ErrNilInput = errors.New("moments: nil input")

func momentsErrorf(op string, err error) error {
	return fmt.Errorf("%s: %w", op, err)
}
