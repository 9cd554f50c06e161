// Package matrix provides the dense numeric data model shared by the lvphi
// decomposition engines and preprocessing utilities.
//
// The matrix package provides:
//
//   - Dense, a row-major float64 matrix with bounds-checked At/Set that
//     return errors instead of panicking.
//   - Allocation-only kernels (Mul, Transpose, MatVec, Sub, Scale, Hadamard)
//     with a *Dense fast-path and a generic Matrix fallback.
//   - Sum-of-squares reductions used for variance-explained bookkeeping.
//   - A bridge to gonum (ToGonum/FromGonum) for the factorizations.
//
// Missing values are represented by NaN. Dense never rejects NaN: the
// sentinel is legal data, and the missing and moments packages interpret it.
//
// See the examples in this package for usage patterns.
package matrix
