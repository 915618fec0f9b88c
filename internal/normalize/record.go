// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package normalize turns raw Endnote records into canonical publications.
// Normalization is best effort: absent optional fields default to empty
// text, odd author names degrade to initials, and only non-article records
// (and, in strict mode, records without a journal) are skipped.
package normalize

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/pdiddy/publist/internal/endnote"
	"github.com/pdiddy/publist/pkg/types"
)

// ArticleType is the type marker of records that are processed.
const ArticleType = "article"

var (
	// ErrNotArticle marks a record whose type marker is not "article".
	ErrNotArticle = errors.New("not an article")

	// ErrMissingJournal marks a record skipped in strict mode because it
	// has no journal.
	ErrMissingJournal = errors.New("no journal")
)

// Normalize maps one raw record to a Publication. It returns ErrNotArticle or
// ErrMissingJournal when the record must be skipped.
func Normalize(r endnote.Record, cfg types.NormalizeConfig) (types.Publication, error) {
	if kind := r.Text(endnote.FieldType); kind != ArticleType {
		return types.Publication{}, fmt.Errorf("%w: type %q", ErrNotArticle, kind)
	}

	journal, ok := r.Field(endnote.FieldJournal)
	if !ok && cfg.StrictJournal {
		return types.Publication{}, ErrMissingJournal
	}

	authors := make([]types.Author, 0, len(r.Authors))
	for _, raw := range r.Authors {
		authors = append(authors, ShortenName(raw))
	}

	pages := strings.ReplaceAll(r.Text(endnote.FieldPages), "--", "-")

	p := types.Publication{
		Authors:   authors,
		Title:     ASCII(r.Text(endnote.FieldTitle)),
		Journal:   strings.ReplaceAll(journal, "~", " "),
		Year:      r.Text(endnote.FieldYear),
		Volume:    r.Text(endnote.FieldVolume),
		Number:    r.Text(endnote.FieldNumber),
		Pages:     pages,
		StartPage: types.ParseStartPage(pages),
		Keywords:  r.Keywords,
		URL:       r.Text(endnote.FieldURL),
		DOIField:  r.Text(endnote.FieldDOI),
		Abstract:  r.Text(endnote.FieldAbstract),
	}
	p.SetOwner(cfg.Owner)
	return p, nil
}

// Summary holds counts from a normalization run.
type Summary struct {
	Accepted       int
	NotArticle     int
	MissingJournal int
}

// Total returns the number of records seen.
func (s Summary) Total() int {
	return s.Accepted + s.NotArticle + s.MissingJournal
}

// Skipped returns the number of records that produced no publication.
func (s Summary) Skipped() int {
	return s.NotArticle + s.MissingJournal
}

func (s Summary) String() string {
	return fmt.Sprintf("records: %d, accepted: %d, not article: %d, missing journal: %d",
		s.Total(), s.Accepted, s.NotArticle, s.MissingJournal)
}

// All normalizes every record in document order. Skipped records and
// recoverable oddities are reported on log one by one so the publication
// count can be audited against the source.
func All(records []endnote.Record, cfg types.NormalizeConfig, log zerolog.Logger) ([]types.Publication, Summary) {
	var (
		pubs    []types.Publication
		summary Summary
	)

	for i, r := range records {
		title := r.Text(endnote.FieldTitle)

		p, err := Normalize(r, cfg)
		switch {
		case errors.Is(err, ErrNotArticle):
			log.Debug().Int("record", i).Str("title", title).Str("reason", err.Error()).Msg("skipped")
			summary.NotArticle++
			continue
		case errors.Is(err, ErrMissingJournal):
			log.Warn().Int("record", i).Str("title", title).Str("reason", err.Error()).Msg("skipped")
			summary.MissingJournal++
			continue
		}

		if len(p.Authors) == 0 {
			log.Warn().Int("record", i).Str("title", title).Msg("no authors")
		}
		if p.Title == "" {
			log.Warn().Int("record", i).Msg("no title")
		}
		if p.Year == "" {
			log.Warn().Int("record", i).Str("title", title).Msg("no year")
		}
		if p.StartPage.IsText {
			log.Debug().Int("record", i).Str("title", title).Str("pages", p.Pages).Msg("non-numeric start page")
		}

		pubs = append(pubs, p)
		summary.Accepted++
	}

	return pubs, summary
}
