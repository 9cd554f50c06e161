// SPDX-License-Identifier: MIT

package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/katalvlaran/lvphi/dataio"
	"github.com/katalvlaran/lvphi/matrix"
	"github.com/katalvlaran/lvphi/mva"
)

type tableRef struct {
	path  string
	table *dataio.Table
}

func componentNames(prefix string, n int) []string {
	names := make([]string, n)
	for a := range names {
		names[a] = fmt.Sprintf("%s%d", prefix, a+1)
	}
	return names
}

func rowNames(t *dataio.Table) []string {
	if len(t.RowLabels) > 0 {
		return t.RowLabels
	}
	return componentNames("obs", t.Data.Rows())
}

// writeVariance prints per-component and cumulative explained variance.
func writeVariance(tw *tabwriter.Writer, label string, r2 []float64) {
	fmt.Fprintf(tw, "%s\tR2\tcumulative\n", label)
	cum := 0.0
	for a, v := range r2 {
		cum += v
		fmt.Fprintf(tw, "%d\t%.4f\t%.4f\n", a+1, v, cum)
	}
}

// writeMatrix prints m with row and column labels.
func writeMatrix(tw *tabwriter.Writer, corner string, rows, cols []string, m *matrix.Dense) {
	fmt.Fprint(tw, corner)
	for _, c := range cols {
		fmt.Fprintf(tw, "\t%s", c)
	}
	fmt.Fprintln(tw)
	for i, name := range rows {
		fmt.Fprint(tw, name)
		for j := range cols {
			v, _ := m.At(i, j)
			fmt.Fprintf(tw, "\t%.5f", v)
		}
		fmt.Fprintln(tw)
	}
}

func writePCA(w io.Writer, src *tableRef, m *mva.PCAModel, path string, scores bool) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "# %s: PCA, %d components, scaling %s", src.path, m.Components(), m.Scaling.Mode)
	if path != "" {
		fmt.Fprintf(tw, ", path %s", path)
	}
	fmt.Fprintln(tw)

	writeVariance(tw, "component", m.R2)
	fmt.Fprintln(tw)
	pcs := componentNames("PC", m.Components())
	writeMatrix(tw, "loading", src.table.Headers, pcs, m.P)
	if scores {
		fmt.Fprintln(tw)
		writeMatrix(tw, "score", rowNames(src.table), pcs, m.T)
	}
	return tw.Flush()
}

func writePLS(w io.Writer, x, y *tableRef, m *mva.PLSModel, path string, scores bool) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "# %s ~ %s: PLS, %d components, scaling X %s, Y %s", y.path, x.path,
		m.Components(), m.ScalingX.Mode, m.ScalingY.Mode)
	if path != "" {
		fmt.Fprintf(tw, ", path %s", path)
	}
	fmt.Fprintln(tw)

	fmt.Fprintln(tw, "component\tR2X\tR2Y\tcumulative R2Y")
	cum := 0.0
	for a := range m.R2X {
		cum += m.R2Y[a]
		fmt.Fprintf(tw, "%d\t%.4f\t%.4f\t%.4f\n", a+1, m.R2X[a], m.R2Y[a], cum)
	}
	fmt.Fprintln(tw)

	lvs := componentNames("LV", m.Components())
	writeMatrix(tw, "weight", x.table.Headers, lvs, m.W)
	fmt.Fprintln(tw)
	writeMatrix(tw, "y-loading", y.table.Headers, lvs, m.Q)
	if scores {
		fmt.Fprintln(tw)
		writeMatrix(tw, "score", rowNames(x.table), lvs, m.T)
	}
	return tw.Flush()
}

// writeCSV emits a table in the same layout it was read with.
func writeCSV(w io.Writer, headers, labels []string, m *matrix.Dense) error {
	cw := csv.NewWriter(w)
	if len(headers) > 0 {
		rec := headers
		if len(labels) > 0 {
			rec = append([]string{""}, headers...)
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	r, c := m.Shape()
	for i := 0; i < r; i++ {
		rec := make([]string, 0, c+1)
		if len(labels) > 0 {
			rec = append(rec, labels[i])
		}
		for j := 0; j < c; j++ {
			v, _ := m.At(i, j)
			rec = append(rec, strconv.FormatFloat(v, 'g', -1, 64))
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
