// Package preprocess holds row-wise spectral preprocessing utilities:
// standard normal variate (SNV) scaling and Savitzky-Golay smoothing and
// differentiation.
//
// Both operate on rows as signals (one spectrum per row) and return new
// matrices; inputs are never modified. Neither function handles missing
// values: NaN propagates.
package preprocess
