// Package dataio loads numeric tables from CSV and Excel (XLSX) files into
// matrix.Dense values ready for the decomposition engines.
//
// Empty cells and the tokens NaN, NA, N/A and null (case-insensitive) become
// the NaN missing-value sentinel; the token set is configurable. Any other
// cell that does not parse as a float is an error naming its position.
package dataio
