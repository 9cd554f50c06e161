// SPDX-License-Identifier: MIT

package main

import (
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/lvphi/dataio"
)

// readFlags are shared by every subcommand that loads a table.
type readFlags struct {
	noHeader  bool
	rowLabels bool
	sheet     string
	missing   []string
}

func (f *readFlags) options() []dataio.Option {
	opts := []dataio.Option{dataio.WithHeader(!f.noHeader)}
	if f.rowLabels {
		opts = append(opts, dataio.WithRowLabels())
	}
	if f.sheet != "" {
		opts = append(opts, dataio.WithSheet(f.sheet))
	}
	if len(f.missing) > 0 {
		opts = append(opts, dataio.WithMissingTokens(f.missing...))
	}
	return opts
}

func (f *readFlags) read(path string) (*dataio.Table, error) {
	return dataio.ReadFile(path, f.options()...)
}

func newRootCmd() *cobra.Command {
	var (
		verbose bool
		rf      readFlags
	)

	root := &cobra.Command{
		Use:           "lvphi",
		Short:         "Latent-variable models (PCA, PLS) and spectral preprocessing",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := root.PersistentFlags()
	pf.BoolVarP(&verbose, "verbose", "v", false, "Log per-component diagnostics")
	pf.BoolVar(&rf.noHeader, "no-header", false, "First row holds data, not column names")
	pf.BoolVar(&rf.rowLabels, "row-labels", false, "First column holds observation labels")
	pf.StringVar(&rf.sheet, "sheet", "", "Worksheet name for XLSX input (default: first sheet)")
	pf.StringSliceVar(&rf.missing, "missing", nil, "Cell tokens read as missing (default: NaN,NA,N/A,null)")

	logger := func(cmd *cobra.Command) *slog.Logger {
		return newLogger(cmd.ErrOrStderr(), verbose)
	}

	root.AddCommand(
		newPCACmd(&rf, logger),
		newPLSCmd(&rf, logger),
		newSNVCmd(&rf),
		newSavGolCmd(&rf),
	)

	return root
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
