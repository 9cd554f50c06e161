// SPDX-License-Identifier: MIT

// Package mva: functional configuration for the decomposition engines.
// This file defines:
//   - Option / Options (functional options with internal state),
//   - documented defaults (constants),
//   - WithX constructors with strong validation (panic on nonsensical values),
//   - gatherOptions helper (internal) that resolves defaults.
//
// Design goals:
//   - Deterministic behavior: no global state, no implicit randomness.
//   - Safe by construction: panic only on invalid parameters (programmer error).
package mva

import (
	"io"
	"log/slog"
	"math"
	"runtime"

	"github.com/katalvlaran/lvphi/scaling"
)

// ---------- Defaults (single source of truth) ----------

const (
	// DefaultScaling centers and scales every column.
	DefaultScaling = scaling.Autoscale

	// DefaultAlgorithm is the missing-data algorithm used on the iterative path.
	DefaultAlgorithm = AlgorithmNIPALS

	// DefaultTolerance is the NIPALS convergence threshold on the relative
	// change of the score-vector norm between iterations.
	DefaultTolerance = 1e-10

	// DefaultMaxIterations caps NIPALS iterations per component. Reaching the
	// cap ends the loop without error; the component is reported unconverged.
	DefaultMaxIterations = 10000
)

// ---------- Internal panic messages (no magic strings) ----------

const (
	panicToleranceInvalid   = "mva: WithTolerance: tol must be finite and > 0"
	panicMaxIterInvalid     = "mva: WithMaxIterations: n must be > 0"
	panicConcurrencyInvalid = "mva: WithConcurrency: n must be > 0"
	panicAlgorithmInvalid   = "mva: WithAlgorithm: unknown algorithm"
)

// Option mutates internal options. Safe to apply repeatedly (idempotent).
type Option func(*Options)

// Options stores the effective configuration after applying Option setters.
// Public entry points accept ...Option and resolve them via gatherOptions.
type Options struct {
	scalingX       scaling.Mode // DefaultScaling
	scalingY       scaling.Mode // DefaultScaling
	algorithm      Algorithm    // DefaultAlgorithm
	forceIterative bool
	tol            float64 // DefaultTolerance
	maxIter        int     // DefaultMaxIterations

	logger      *slog.Logger // slog.Default() when unset
	observer    func(Event)
	concurrency int // GOMAXPROCS when unset; batch fits only
}

// WithScaling sets the scaling mode of both X and Y.
func WithScaling(m scaling.Mode) Option {
	return func(o *Options) { o.scalingX, o.scalingY = m, m }
}

// WithScalingX sets the scaling mode of X only.
func WithScalingX(m scaling.Mode) Option {
	return func(o *Options) { o.scalingX = m }
}

// WithScalingY sets the scaling mode of the PLS response Y.
func WithScalingY(m scaling.Mode) Option {
	return func(o *Options) { o.scalingY = m }
}

// WithAlgorithm selects the missing-data algorithm for the iterative path.
// The choice has no effect when the exact path is taken.
func WithAlgorithm(a Algorithm) Option {
	if a != AlgorithmNIPALS && a != AlgorithmNLP {
		panic(panicAlgorithmInvalid)
	}
	return func(o *Options) { o.algorithm = a }
}

// WithForceIterative routes complete data through the iterative path.
func WithForceIterative() Option {
	return func(o *Options) { o.forceIterative = true }
}

// WithTolerance sets the NIPALS convergence threshold.
func WithTolerance(tol float64) Option {
	if math.IsNaN(tol) || math.IsInf(tol, 0) || tol <= 0 {
		panic(panicToleranceInvalid)
	}
	return func(o *Options) { o.tol = tol }
}

// WithMaxIterations sets the NIPALS per-component iteration cap.
func WithMaxIterations(n int) Option {
	if n <= 0 {
		panic(panicMaxIterInvalid)
	}
	return func(o *Options) { o.maxIter = n }
}

// WithLogger sets the structured logger for path and component diagnostics.
// A nil logger discards all records.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) {
		if l == nil {
			l = slog.New(slog.NewTextHandler(io.Discard, nil))
		}
		o.logger = l
	}
}

// WithObserver registers a callback invoked synchronously for every Event.
// Batch fits call it from several goroutines.
func WithObserver(fn func(Event)) Option {
	return func(o *Options) { o.observer = fn }
}

// WithConcurrency bounds the number of datasets fitted at once by the
// batch entry points.
func WithConcurrency(n int) Option {
	if n <= 0 {
		panic(panicConcurrencyInvalid)
	}
	return func(o *Options) { o.concurrency = n }
}

func defaultOptions() Options {
	return Options{
		scalingX:    DefaultScaling,
		scalingY:    DefaultScaling,
		algorithm:   DefaultAlgorithm,
		tol:         DefaultTolerance,
		maxIter:     DefaultMaxIterations,
		concurrency: runtime.GOMAXPROCS(0),
	}
}

// gatherOptions applies opts over the defaults.
func gatherOptions(opts ...Option) Options {
	o := defaultOptions()
	for _, fn := range opts {
		if fn != nil {
			fn(&o)
		}
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}
	return o
}
