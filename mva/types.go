// SPDX-License-Identifier: MIT

package mva

import (
	"fmt"
	"strings"
)

// Path is the computation route taken by a fit.
type Path int

const (
	// PathExact is the SVD route used for complete data.
	PathExact Path = iota
	// PathIterative is the NIPALS route used for missing data or on request.
	PathIterative
)

func (p Path) String() string {
	switch p {
	case PathExact:
		return "svd"
	case PathIterative:
		return "nipals"
	default:
		return fmt.Sprintf("Path(%d)", int(p))
	}
}

// Algorithm selects the missing-data algorithm for the iterative path.
type Algorithm int

const (
	// AlgorithmNIPALS is the masked NIPALS iteration.
	AlgorithmNIPALS Algorithm = iota
	// AlgorithmNLP names the nonlinear-programming estimator. It is accepted
	// but not implemented: selecting it on the iterative path fails.
	AlgorithmNLP
)

func (a Algorithm) String() string {
	switch a {
	case AlgorithmNIPALS:
		return "nipals"
	case AlgorithmNLP:
		return "nlp"
	default:
		return fmt.Sprintf("Algorithm(%d)", int(a))
	}
}

// ParseAlgorithm maps "nipals" or "nlp" (case-insensitive) to an Algorithm.
func ParseAlgorithm(s string) (Algorithm, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "nipals", "":
		return AlgorithmNIPALS, nil
	case "nlp":
		return AlgorithmNLP, nil
	}
	return 0, fmt.Errorf("%q: %w", s, ErrUnknownAlgorithm)
}

// EventKind distinguishes the diagnostics a fit emits.
type EventKind int

const (
	// EventPath is emitted once per fit, after the path is chosen.
	EventPath EventKind = iota
	// EventComponent is emitted after every extracted component.
	EventComponent
)

// Event is one diagnostic record. Component is zero-based; Iterations,
// Converged and Degenerate are meaningful for EventComponent only.
// Exact-path components always report Converged with zero iterations.
type Event struct {
	Engine     string
	RunID      string
	Kind       EventKind
	Path       Path
	Algorithm  Algorithm
	Component  int
	Iterations int
	Converged  bool
	Degenerate bool
}
