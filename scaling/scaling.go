// SPDX-License-Identifier: MIT

package scaling

import (
	"errors"
	"fmt"
	"strings"

	"github.com/katalvlaran/lvphi/matrix"
	"github.com/katalvlaran/lvphi/moments"
)

// Mode selects which parts of the column scaling are applied.
type Mode int

const (
	// Autoscale centers and scales every column (mean 0, std 1).
	Autoscale Mode = iota
	// None leaves the data untouched.
	None
	// Center subtracts column means only.
	Center
	// ScaleOnly divides by column std only.
	ScaleOnly
)

var (
	// ErrUnknownMode is returned by ParseMode for unrecognized names.
	ErrUnknownMode = errors.New("scaling: unknown mode")
	// ErrParamsMismatch signals Params whose length differs from the data width.
	ErrParamsMismatch = errors.New("scaling: params do not match column count")
)

const (
	opApply     = "Apply"
	opTransform = "Transform"
	opInverse   = "Inverse"
)

// String returns the canonical name accepted by ParseMode.
func (m Mode) String() string {
	switch m {
	case Autoscale:
		return "true"
	case None:
		return "false"
	case Center:
		return "center"
	case ScaleOnly:
		return "autoscale"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode maps a mode name to a Mode. "true" and "mcs" mean Autoscale,
// "false" and "none" mean None, "center" is Center, and "autoscale" is
// ScaleOnly (divide by std without centering). Matching is case-insensitive.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "mcs", "":
		return Autoscale, nil
	case "false", "none":
		return None, nil
	case "center":
		return Center, nil
	case "autoscale":
		return ScaleOnly, nil
	}
	return 0, fmt.Errorf("%q: %w", s, ErrUnknownMode)
}

// Params holds the per-column vectors that were actually applied.
type Params struct {
	Mode Mode
	Mean []float64
	Std  []float64
}

// Apply returns a scaled copy of X and the parameters used.
//
// Implementation:
//   - Stage 1: missing-aware moments of the original X.
//   - Stage 2: zero-std columns get divisor 1; placeholders for unused parts.
//   - Stage 3: Transform a fresh copy.
func Apply(X matrix.Matrix, mode Mode) (*matrix.Dense, Params, error) {
	if err := matrix.ValidateNotNil(X); err != nil {
		return nil, Params{}, fmt.Errorf("%s: %w", opApply, err)
	}
	c := X.Cols()
	p := Params{Mode: mode, Mean: make([]float64, c), Std: ones(c)}

	var err error
	switch mode {
	case None:
	case Autoscale, Center, ScaleOnly:
		if mode != ScaleOnly {
			if p.Mean, err = moments.Mean(X); err != nil {
				return nil, Params{}, fmt.Errorf("%s: %w", opApply, err)
			}
		}
		if mode != Center {
			if p.Std, err = moments.Std(X); err != nil {
				return nil, Params{}, fmt.Errorf("%s: %w", opApply, err)
			}
			for j, s := range p.Std {
				if s == 0 {
					p.Std[j] = 1
				}
			}
		}
	default:
		return nil, Params{}, fmt.Errorf("%s: %v: %w", opApply, mode, ErrUnknownMode)
	}

	out, err := p.Transform(X)
	if err != nil {
		return nil, Params{}, fmt.Errorf("%s: %w", opApply, err)
	}

	return out, p, nil
}

// Transform applies (X - Mean) / Std column-wise to a copy of X.
func (p Params) Transform(X matrix.Matrix) (*matrix.Dense, error) {
	if err := p.check(X); err != nil {
		return nil, fmt.Errorf("%s: %w", opTransform, err)
	}
	centered, err := matrix.SubColumns(X, p.Mean)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opTransform, err)
	}
	inv := make([]float64, len(p.Std))
	for j, s := range p.Std {
		inv[j] = 1 / s
	}
	out, err := matrix.ScaleColumns(centered, inv)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opTransform, err)
	}

	return out, nil
}

// Inverse maps scaled data back to original units: X*Std + Mean.
func (p Params) Inverse(X matrix.Matrix) (*matrix.Dense, error) {
	if err := p.check(X); err != nil {
		return nil, fmt.Errorf("%s: %w", opInverse, err)
	}
	scaled, err := matrix.ScaleColumns(X, p.Std)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opInverse, err)
	}
	out, err := matrix.AddColumns(scaled, p.Mean)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opInverse, err)
	}

	return out, nil
}

func (p Params) check(X matrix.Matrix) error {
	if err := matrix.ValidateNotNil(X); err != nil {
		return err
	}
	if len(p.Mean) != X.Cols() || len(p.Std) != X.Cols() {
		return ErrParamsMismatch
	}
	return nil
}

func ones(n int) []float64 {
	v := make([]float64, n)
	for i := range v {
		v[i] = 1
	}
	return v
}
