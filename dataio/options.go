// SPDX-License-Identifier: MIT

package dataio

import "strings"

// Defaults.
const (
	// DefaultHeader treats the first row as column names.
	DefaultHeader = true
	// DefaultRowLabels treats all columns as numeric data.
	DefaultRowLabels = false
)

// DefaultMissingTokens are the cell values read as missing, besides "".
var DefaultMissingTokens = []string{"nan", "na", "n/a", "null"}

// Option configures a read.
type Option func(*Options)

// Options holds the resolved read configuration.
type Options struct {
	header    bool
	rowLabels bool
	sheet     string // first sheet when empty
	missing   map[string]struct{}
}

// WithHeader sets whether the first row holds column names.
func WithHeader(on bool) Option {
	return func(o *Options) { o.header = on }
}

// WithRowLabels takes the first column as observation labels instead of data.
func WithRowLabels() Option {
	return func(o *Options) { o.rowLabels = true }
}

// WithSheet selects the worksheet of an XLSX workbook by name.
func WithSheet(name string) Option {
	return func(o *Options) { o.sheet = name }
}

// WithMissingTokens replaces the set of tokens read as missing. Matching is
// case-insensitive; the empty cell is always missing.
func WithMissingTokens(tokens ...string) Option {
	return func(o *Options) { o.missing = tokenSet(tokens) }
}

func tokenSet(tokens []string) map[string]struct{} {
	set := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		set[strings.ToLower(strings.TrimSpace(t))] = struct{}{}
	}
	return set
}

func gatherOptions(opts ...Option) Options {
	o := Options{
		header:    DefaultHeader,
		rowLabels: DefaultRowLabels,
		missing:   tokenSet(DefaultMissingTokens),
	}
	for _, fn := range opts {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}
