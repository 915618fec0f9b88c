// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package render formats an ordered publication collection as an HTML
// listing, a LaTeX rubric or wiki markup. The three renderers share no
// state; each one produces a single string and reports only encoding
// failures.
package render

import (
	"fmt"

	"github.com/pdiddy/publist/pkg/types"
)

// Renderer converts an ordered publication collection into one output
// document in a particular dialect.
type Renderer interface {
	Render(pubs []types.Publication) (string, error)

	// Extension returns the conventional file extension (e.g. ".html").
	Extension() string
}

// New returns the renderer selected by cfg.Dialect. For HTML it also loads
// the page template unless cfg.Fragment is set.
func New(cfg types.RenderConfig) (Renderer, error) {
	switch cfg.Dialect {
	case types.DialectHTML:
		h := &HTML{ShowAbstract: cfg.ShowAbstract}
		if cfg.Fragment {
			return h, nil
		}
		page := DefaultPage()
		if cfg.Template != "" {
			var err error
			if page, err = LoadPage(cfg.Template); err != nil {
				return nil, err
			}
		}
		h.Page = page
		return h, nil
	case types.DialectLaTeX:
		return &LaTeX{DimCoAuthors: cfg.DimCoAuthors, Spacer: cfg.EntrySpacer}, nil
	case types.DialectWiki:
		return &Wiki{}, nil
	}
	return nil, fmt.Errorf("%w %q", types.ErrUnknownDialect, cfg.Dialect)
}
