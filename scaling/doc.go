// Package scaling applies per-column centering and unit-variance scaling.
//
// Four modes are supported:
//
//	Autoscale  subtract column means, divide by column std (default)
//	None       pass the data through; Params carry mean 0 / std 1
//	Center     subtract column means only; Params.Std is all ones
//	ScaleOnly  divide by column std only; Params.Mean is all zeros
//
// Means and standard deviations are computed missing-aware with the moments
// package, from the original (unscaled) data. NaN cells stay NaN. A column
// with zero std is divided by 1, and 1 is what Params.Std records.
//
// Params can be reapplied to new observations (Transform) or used to map
// model output back to the original units (Inverse).
package scaling
