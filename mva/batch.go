// SPDX-License-Identifier: MIT

package mva

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/lvphi/matrix"
)

// PLSInput pairs the predictor and response blocks of one PLS dataset.
type PLSInput struct {
	X, Y *matrix.Dense
}

// PCABatch fits one PCA model per dataset, running up to WithConcurrency
// fits at a time. Each fit is independent and sequential internally.
// Results are returned in input order. The first failure cancels the
// remaining fits and is returned with the index of its dataset.
func PCABatch(ctx context.Context, datasets []*matrix.Dense, components int, opts ...Option) ([]*PCAModel, error) {
	out := make([]*PCAModel, len(datasets))
	err := runBatch(ctx, len(datasets), opts, func(i int) error {
		m, err := PCA(datasets[i], components, opts...)
		if err != nil {
			return err
		}
		out[i] = m
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// PLSBatch is the PLS counterpart of PCABatch.
func PLSBatch(ctx context.Context, datasets []PLSInput, components int, opts ...Option) ([]*PLSModel, error) {
	out := make([]*PLSModel, len(datasets))
	err := runBatch(ctx, len(datasets), opts, func(i int) error {
		m, err := PLS(datasets[i].X, datasets[i].Y, components, opts...)
		if err != nil {
			return err
		}
		out[i] = m
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func runBatch(ctx context.Context, n int, opts []Option, fit func(i int) error) error {
	o := gatherOptions(opts...)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(o.concurrency)
	for i := 0; i < n; i++ {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			if err := fit(i); err != nil {
				return fmt.Errorf("dataset %d: %w", i, err)
			}
			return nil
		})
	}
	return g.Wait()
}
