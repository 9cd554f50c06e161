// SPDX-License-Identifier: MIT

// Command lvphi fits PCA and PLS models and applies spectral preprocessing to
// numeric tables stored as CSV or XLSX files.
//
// Example:
//
//	lvphi pca data.csv --components 3 --row-labels
//	lvphi pls x.xlsx y.xlsx --components 2 --scaling-y center
//	lvphi savgol spectra.csv --window 5 --deriv 1 --order 2 > d1.csv
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
