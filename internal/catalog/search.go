// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/pdiddy/publist/pkg/types"
)

// QueryOptions holds parameters for catalog searches.
type QueryOptions struct {
	// Query is an FTS match expression over title, journal and abstract.
	Query string

	// Author filters by a substring of an author's last name.
	Author string

	// Year filters by publication year.
	Year string

	// MaxResults limits result count. Zero uses the store default.
	MaxResults int
}

// IsEmpty reports whether the query has no search terms or filters.
func (q QueryOptions) IsEmpty() bool {
	return q.Query == "" && q.Author == "" && q.Year == ""
}

// Search returns matching publications, newest first.
func (s *Store) Search(ctx context.Context, opts QueryOptions) ([]types.Publication, error) {
	maxResults := opts.MaxResults
	if maxResults <= 0 {
		maxResults = s.maxResults
	}
	return s.query(ctx, opts, maxResults)
}

// All returns the whole catalog in display order.
func (s *Store) All(ctx context.Context) ([]types.Publication, error) {
	return s.query(ctx, QueryOptions{}, -1)
}

func (s *Store) query(ctx context.Context, opts QueryOptions, limit int) ([]types.Publication, error) {
	var (
		qb   strings.Builder
		args []any
	)

	qb.WriteString(
		`SELECT p.display_index, p.title, p.journal, p.year, p.volume, p.number,
			p.pages, p.start_page, p.keywords, p.url, p.doi, p.abstract
		FROM publications p`)

	if opts.Query != "" {
		qb.WriteString(` JOIN publications_fts ON publications_fts.docid = p.display_index
			WHERE publications_fts MATCH ?`)
		args = append(args, opts.Query)
	} else {
		qb.WriteString(` WHERE 1=1`)
	}

	if opts.Author != "" {
		qb.WriteString(` AND EXISTS (SELECT 1 FROM authors a WHERE a.display_index = p.display_index AND a.last LIKE ?)`)
		args = append(args, "%"+opts.Author+"%")
	}

	if opts.Year != "" {
		qb.WriteString(` AND p.year = ?`)
		args = append(args, opts.Year)
	}

	qb.WriteString(` ORDER BY p.display_index DESC LIMIT ?`)
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, qb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("querying catalog: %w", err)
	}
	defer rows.Close()

	var pubs []types.Publication
	for rows.Next() {
		var (
			p         types.Publication
			journal   sql.NullString
			year      sql.NullString
			volume    sql.NullString
			number    sql.NullString
			pages     sql.NullString
			startJSON sql.NullString
			kwdsJSON  sql.NullString
			url       sql.NullString
			doi       sql.NullString
			abstract  sql.NullString
		)
		if err := rows.Scan(
			&p.DisplayIndex, &p.Title, &journal, &year, &volume, &number,
			&pages, &startJSON, &kwdsJSON, &url, &doi, &abstract,
		); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}

		p.Journal = journal.String
		p.Year = year.String
		p.Volume = volume.String
		p.Number = number.String
		p.Pages = pages.String
		p.URL = url.String
		p.DOIField = doi.String
		p.Abstract = abstract.String
		if startJSON.Valid {
			json.Unmarshal([]byte(startJSON.String), &p.StartPage)
		}
		if kwdsJSON.Valid {
			json.Unmarshal([]byte(kwdsJSON.String), &p.Keywords)
		}

		pubs = append(pubs, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	rows.Close()

	for i := range pubs {
		authors, err := s.authors(ctx, pubs[i].DisplayIndex)
		if err != nil {
			return nil, err
		}
		pubs[i].Authors = authors
	}
	return pubs, nil
}

func (s *Store) authors(ctx context.Context, displayIndex int) ([]types.Author, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT first, last FROM authors WHERE display_index = ? ORDER BY position`, displayIndex)
	if err != nil {
		return nil, fmt.Errorf("querying authors: %w", err)
	}
	defer rows.Close()

	authors := []types.Author{}
	for rows.Next() {
		var (
			a     types.Author
			first sql.NullString
		)
		if err := rows.Scan(&first, &a.Last); err != nil {
			return nil, fmt.Errorf("scanning author: %w", err)
		}
		a.First = first.String
		authors = append(authors, a)
	}
	return authors, rows.Err()
}
