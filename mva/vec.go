// SPDX-License-Identifier: MIT

package mva

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// degenerateRatio is the relative size below which a component is treated
// as numerically zero (rank exhausted).
const degenerateRatio = 1e-10

// maskedRatio returns num[i]/den[i], or 0 where den[i] is 0 (no observed
// cell contributed to that entry).
func maskedRatio(num, den []float64) []float64 {
	out := make([]float64, len(num))
	for i := range num {
		if den[i] != 0 {
			out[i] = num[i] / den[i]
		}
	}
	return out
}

func squares(v []float64) []float64 {
	out := make([]float64, len(v))
	floats.MulTo(out, v, v)
	return out
}

// normalize scales v to unit length in place and returns its prior norm.
// A zero or non-finite norm leaves v untouched.
func normalize(v []float64) float64 {
	n := floats.Norm(v, 2)
	if n > 0 && !math.IsInf(n, 0) {
		floats.Scale(1/n, v)
	}
	return n
}

func finite(vs ...[]float64) bool {
	for _, v := range vs {
		for _, x := range v {
			if math.IsNaN(x) || math.IsInf(x, 0) {
				return false
			}
		}
	}
	return true
}

func zeros(n int) []float64 { return make([]float64, n) }
