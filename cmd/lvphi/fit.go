// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/lvphi/matrix"
	"github.com/katalvlaran/lvphi/mva"
	"github.com/katalvlaran/lvphi/scaling"
)

// fitFlags are the engine settings shared by pca and pls.
type fitFlags struct {
	components int
	scalingX   string
	algorithm  string
	nipals     bool
	tol        float64
	maxIter    int
	scores     bool
	jobs       int
}

func (f *fitFlags) register(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.IntVarP(&f.components, "components", "a", 2, "Number of components to extract")
	fl.StringVar(&f.scalingX, "scaling", mva.DefaultScaling.String(), "Scaling mode: true|mcs, center, autoscale, false|none")
	fl.StringVar(&f.algorithm, "algorithm", mva.DefaultAlgorithm.String(), "Missing-data algorithm: nipals, nlp")
	fl.BoolVar(&f.nipals, "force-nipals", false, "Use NIPALS even when the data is complete")
	fl.Float64Var(&f.tol, "tol", mva.DefaultTolerance, "NIPALS convergence tolerance")
	fl.IntVar(&f.maxIter, "max-iter", mva.DefaultMaxIterations, "NIPALS iteration cap per component")
	fl.BoolVar(&f.scores, "scores", false, "Also print the score matrix")
	fl.IntVarP(&f.jobs, "jobs", "j", 0, "Concurrent fits when several datasets are given (default: GOMAXPROCS)")
}

// options validates flag values up front so the engine option setters never
// see nonsense.
func (f *fitFlags) options(log *slog.Logger) ([]mva.Option, error) {
	if f.components < 1 {
		return nil, fmt.Errorf("--components must be >= 1, got %d", f.components)
	}
	if !(f.tol > 0) {
		return nil, fmt.Errorf("--tol must be > 0, got %g", f.tol)
	}
	if f.maxIter < 1 {
		return nil, fmt.Errorf("--max-iter must be >= 1, got %d", f.maxIter)
	}
	mode, err := scaling.ParseMode(f.scalingX)
	if err != nil {
		return nil, fmt.Errorf("--scaling: %w", err)
	}
	alg, err := mva.ParseAlgorithm(f.algorithm)
	if err != nil {
		return nil, fmt.Errorf("--algorithm: %w", err)
	}

	opts := []mva.Option{
		mva.WithScalingX(mode),
		mva.WithAlgorithm(alg),
		mva.WithTolerance(f.tol),
		mva.WithMaxIterations(f.maxIter),
		mva.WithLogger(log),
	}
	if f.nipals {
		opts = append(opts, mva.WithForceIterative())
	}
	if f.jobs > 0 {
		opts = append(opts, mva.WithConcurrency(f.jobs))
	}
	return opts, nil
}

// pathTracker records the path each fit took, keyed by run id.
type pathTracker struct {
	paths map[string]mva.Path
	order []string
}

func newPathTracker() *pathTracker { return &pathTracker{paths: map[string]mva.Path{}} }

func (p *pathTracker) observe(ev mva.Event) {
	if ev.Kind != mva.EventPath {
		return
	}
	p.paths[ev.RunID] = ev.Path
	p.order = append(p.order, ev.RunID)
}

func (p *pathTracker) last() string {
	if len(p.order) == 0 {
		return "?"
	}
	return p.paths[p.order[len(p.order)-1]].String()
}

func newPCACmd(rf *readFlags, logger func(*cobra.Command) *slog.Logger) *cobra.Command {
	var ff fitFlags

	cmd := &cobra.Command{
		Use:   "pca FILE [FILE...]",
		Short: "Fit a PCA model",
		Long: `Fit a Principal Component Analysis model to each input table.

Complete data is decomposed by SVD; tables with missing cells (or --force-nipals)
use NIPALS. Several files are fitted concurrently with the same settings.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := ff.options(logger(cmd))
			if err != nil {
				return err
			}
			tables := make([]*tableRef, 0, len(args))
			data := make([]*matrix.Dense, 0, len(args))
			for _, path := range args {
				t, err := rf.read(path)
				if err != nil {
					return err
				}
				tables = append(tables, &tableRef{path: path, table: t})
				data = append(data, t.Data)
			}

			out := cmd.OutOrStdout()
			if len(data) == 1 {
				tr := newPathTracker()
				m, err := mva.PCA(data[0], ff.components, append(opts, mva.WithObserver(tr.observe))...)
				if err != nil {
					return fmt.Errorf("%s: %w", args[0], err)
				}
				return writePCA(out, tables[0], m, tr.last(), ff.scores)
			}

			models, err := mva.PCABatch(cmd.Context(), data, ff.components, opts...)
			if err != nil {
				return err
			}
			for i, m := range models {
				if i > 0 {
					fmt.Fprintln(out)
				}
				if err := writePCA(out, tables[i], m, "", ff.scores); err != nil {
					return err
				}
			}
			return nil
		},
	}
	ff.register(cmd)

	return cmd
}

func newPLSCmd(rf *readFlags, logger func(*cobra.Command) *slog.Logger) *cobra.Command {
	var (
		ff       fitFlags
		scalingY string
	)

	cmd := &cobra.Command{
		Use:   "pls XFILE YFILE",
		Short: "Fit a PLS model",
		Long: `Fit a Partial Least Squares model relating the predictor table XFILE to the
response table YFILE. Both tables must have the same number of rows.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := ff.options(logger(cmd))
			if err != nil {
				return err
			}
			modeY, err := scaling.ParseMode(scalingY)
			if err != nil {
				return fmt.Errorf("--scaling-y: %w", err)
			}
			x, err := rf.read(args[0])
			if err != nil {
				return err
			}
			y, err := rf.read(args[1])
			if err != nil {
				return err
			}

			tr := newPathTracker()
			opts = append(opts, mva.WithScalingY(modeY), mva.WithObserver(tr.observe))
			m, err := mva.PLS(x.Data, y.Data, ff.components, opts...)
			if err != nil {
				return err
			}
			return writePLS(cmd.OutOrStdout(), &tableRef{path: args[0], table: x}, &tableRef{path: args[1], table: y}, m, tr.last(), ff.scores)
		},
	}
	ff.register(cmd)
	cmd.Flags().StringVar(&scalingY, "scaling-y", mva.DefaultScaling.String(), "Scaling mode for Y")

	return cmd
}
