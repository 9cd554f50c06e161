// Package moments computes per-column means and sample standard deviations
// that ignore missing entries.
//
// Missing values are the NaN sentinel. Each column is reduced over its
// observed entries only, so the effective denominator is the per-column
// count of observed values (count for the mean, count-1 for the std).
// Without missing data the results equal the ordinary column mean and
// sample standard deviation.
//
// Edge policy:
//   - A column with no observed entries has mean 0.
//   - A column with fewer than two observed entries has std 0.
//
// Inputs are never mutated.
package moments
