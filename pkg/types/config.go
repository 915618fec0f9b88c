// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines the publication model and the configuration structs
// shared by the publist pipeline stages: normalization, ordering, rendering
// and the catalog.
package types

import (
	"errors"
	"fmt"
	"slices"
)

// ErrUnknownDialect is returned when the output format is not one of the
// supported dialects.
var ErrUnknownDialect = errors.New("unknown output dialect")

// Dialect selects the output format of a render run.
type Dialect string

const (
	DialectHTML  Dialect = "html"
	DialectLaTeX Dialect = "latex"
	DialectWiki  Dialect = "wiki"
)

// Dialects lists the supported output formats.
var Dialects = []Dialect{DialectHTML, DialectLaTeX, DialectWiki}

// ParseDialect validates a dialect name.
func ParseDialect(s string) (Dialect, error) {
	d := Dialect(s)
	if !slices.Contains(Dialects, d) {
		return "", fmt.Errorf("%w %q: use html, latex or wiki", ErrUnknownDialect, s)
	}
	return d, nil
}

// NormalizeConfig holds settings for turning raw records into publications.
type NormalizeConfig struct {
	// Owner is the last name of the list owner (e.g. "Guha").
	Owner string `json:"myself" yaml:"myself"`

	// StrictJournal skips records without a journal instead of defaulting
	// the journal to empty text.
	StrictJournal bool `json:"strict_journal" yaml:"strict_journal"`
}

// RenderConfig holds settings for a render run. It is built once from flags,
// environment and config file and passed explicitly to every stage.
type RenderConfig struct {
	NormalizeConfig `yaml:",inline"`

	// Dialect selects html, latex or wiki output.
	Dialect Dialect `json:"type" yaml:"type"`

	// Output is the destination file path.
	Output string `json:"out" yaml:"out"`

	// DimCoAuthors greys out co-authors in LaTeX output.
	DimCoAuthors bool `json:"color" yaml:"color"`

	// ShowAbstract adds an abstract toggle to each HTML entry.
	ShowAbstract bool `json:"abstract" yaml:"abstract"`

	// Fragment emits the HTML list without the page template.
	Fragment bool `json:"fragment" yaml:"fragment"`

	// Template is an optional path to an HTML page template replacing the
	// built-in one.
	Template string `json:"template,omitempty" yaml:"template,omitempty"`

	// EntrySpacer is the vertical space in em after each LaTeX entry
	// (default 0.7).
	EntrySpacer float64 `json:"spacer" yaml:"spacer"`
}

// CatalogConfig holds settings for the publication catalog.
type CatalogConfig struct {
	// Path is the SQLite database file (default "publist.db").
	Path string `json:"db" yaml:"db"`

	// MaxResults is the default maximum number of search results (default 50).
	MaxResults int `json:"max_results" yaml:"max_results"`
}
