// SPDX-License-Identifier: MIT

package mva

import (
	"log/slog"

	"github.com/google/uuid"
)

const (
	enginePCA = "pca"
	enginePLS = "pls"
)

// run carries the per-fit identity and diagnostics sinks.
type run struct {
	engine    string
	id        string
	path      Path
	algorithm Algorithm
	log       *slog.Logger
	observer  func(Event)
}

func newRun(engine string, o Options) *run {
	id := uuid.NewString()
	return &run{
		engine:    engine,
		id:        id,
		algorithm: o.algorithm,
		log:       o.logger.With(slog.String("engine", engine), slog.String("run_id", id)),
		observer:  o.observer,
	}
}

func (r *run) emit(ev Event) {
	ev.Engine, ev.RunID = r.engine, r.id
	ev.Path, ev.Algorithm = r.path, r.algorithm
	if r.observer != nil {
		r.observer(ev)
	}
}

// choosePath records and announces the selected path.
func (r *run) choosePath(p Path) {
	r.path = p
	attrs := []any{slog.String("path", p.String())}
	if p == PathIterative {
		attrs = append(attrs, slog.String("algorithm", r.algorithm.String()))
	}
	r.log.Info("fit path selected", attrs...)
	r.emit(Event{Kind: EventPath})
}

// component reports one extracted component.
func (r *run) component(a int, st componentStatus) {
	attrs := []any{
		slog.Int("component", a+1),
		slog.Int("iterations", st.iterations),
	}
	switch {
	case st.degenerate:
		r.log.Warn("degenerate component: data rank exhausted", attrs...)
	case !st.converged:
		r.log.Warn("component did not converge within iteration cap", attrs...)
	default:
		r.log.Debug("component extracted", attrs...)
	}
	r.emit(Event{
		Kind:       EventComponent,
		Component:  a,
		Iterations: st.iterations,
		Converged:  st.converged,
		Degenerate: st.degenerate,
	})
}

// componentStatus is the per-component outcome shared by both paths.
type componentStatus struct {
	iterations int
	converged  bool
	degenerate bool
}
