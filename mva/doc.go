// Package mva fits Principal Component Analysis (PCA) and Partial Least
// Squares (PLS) models, with or without missing data.
//
// Each engine has two paths:
//
//   - Exact: when the scaled data contain no missing values (and the caller
//     did not force the iterative path), components come from a singular
//     value decomposition computed with gonum.
//   - Iterative: otherwise the NIPALS algorithm extracts one component at a
//     time. Missing cells (NaN) are set to zero and every sum uses per-row
//     and per-column denominators restricted to observed cells, so missing
//     values neither contribute nor dilute.
//
// Both paths deflate the working matrix after each component and record the
// variance explained, overall and per variable. The returned R2 values are
// per-component increments; their sum is the cumulative fraction explained.
//
// Fits are synchronous. Inputs are copied on entry and never modified.
// Diagnostics (chosen path, iterations per component, convergence and
// degeneracy flags) are reported through an injected *slog.Logger and an
// optional observer callback. PCABatch and PLSBatch fit independent
// datasets concurrently.
//
// Example:
//
//	model, err := mva.PCA(X, 2, mva.WithScaling(scaling.Autoscale))
//	if err != nil { ... }
//	fmt.Println(model.R2)
package mva
