// Package lvphi is a latent-variable modelling toolkit for chemometrics and
// process data: Principal Component Analysis and Partial Least Squares with
// first-class support for missing measurements, plus the preprocessing that
// usually precedes them.
//
// What is inside
//
//   - matrix/     - dense row-major data model, NaN-aware helpers, gonum bridge
//   - missing/    - NaN ⇄ 0 codec with a 0/1 observation mask
//   - moments/    - column mean and sample std that skip missing cells
//   - scaling/    - autoscale, center, scale-only and identity column scaling
//   - mva/        - PCA and PLS engines: SVD for complete data, NIPALS otherwise
//   - preprocess/ - SNV and Savitzky-Golay smoothing / derivatives
//   - dataio/     - CSV and XLSX table loading
//   - cmd/lvphi   - command-line front end
//
// Quick example:
//
//	X, _ := matrix.NewFromRows(rows)           // NaN marks a missing cell
//	m, err := mva.PCA(X, 3)                    // autoscaled, path chosen by data
//	if err != nil { ... }
//	fmt.Println(m.R2)                          // variance explained per component
//
// Fits log through log/slog (mva.WithLogger) and can stream per-component
// diagnostics to an observer (mva.WithObserver).
//
//	go get github.com/katalvlaran/lvphi
package lvphi
