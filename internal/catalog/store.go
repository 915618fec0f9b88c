// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package catalog keeps a SQLite snapshot of the normalized publication
// collection so it can be searched and exported without re-reading the
// Endnote file.
package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/publist/pkg/types"
)

const (
	defaultPath       = "publist.db"
	defaultMaxResults = 50
)

// Store manages the catalog database.
type Store struct {
	db         *sql.DB
	maxResults int
}

// NewStore opens or creates the catalog database at cfg.Path and creates the
// schema if it does not exist.
func NewStore(cfg types.CatalogConfig) (*Store, error) {
	path := cfg.Path
	if path == "" {
		path = defaultPath
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating catalog directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = defaultMaxResults
	}

	s := &Store{db: db, maxResults: maxResults}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS publications (
			display_index INTEGER PRIMARY KEY,
			title TEXT NOT NULL,
			journal TEXT,
			year TEXT,
			volume TEXT,
			number TEXT,
			pages TEXT,
			start_page TEXT,
			keywords TEXT,
			url TEXT,
			doi TEXT,
			abstract TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS authors (
			display_index INTEGER NOT NULL REFERENCES publications(display_index) ON DELETE CASCADE,
			position INTEGER NOT NULL,
			first TEXT,
			last TEXT NOT NULL,
			PRIMARY KEY (display_index, position)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_authors_last ON authors(last)`,
		`CREATE INDEX IF NOT EXISTS idx_publications_year ON publications(year)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}

	// FTS4 table kept in sync by triggers. FTS4 ships with the default
	// go-sqlite3 build; FTS5 needs the sqlite_fts5 tag.
	var ftsExists int
	if err := s.db.QueryRow(
		`SELECT count(*) FROM sqlite_master WHERE type='table' AND name='publications_fts'`,
	).Scan(&ftsExists); err != nil {
		return fmt.Errorf("checking FTS table: %w", err)
	}

	if ftsExists == 0 {
		ftsStatements := []string{
			`CREATE VIRTUAL TABLE publications_fts USING fts4(title, journal, abstract)`,
			`CREATE TRIGGER publications_ai AFTER INSERT ON publications BEGIN
				INSERT INTO publications_fts(docid, title, journal, abstract)
				VALUES (new.display_index, new.title, new.journal, new.abstract);
			END`,
			`CREATE TRIGGER publications_ad AFTER DELETE ON publications BEGIN
				DELETE FROM publications_fts WHERE docid = old.display_index;
			END`,
		}
		for _, stmt := range ftsStatements {
			if _, err := s.db.Exec(stmt); err != nil {
				return fmt.Errorf("creating FTS infrastructure: %w", err)
			}
		}
	}

	return nil
}

// Replace stores pubs as the new catalog contents in one transaction.
// Publications must carry their display index.
func (s *Store) Replace(ctx context.Context, pubs []types.Publication) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM authors`); err != nil {
		return fmt.Errorf("clearing authors: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM publications`); err != nil {
		return fmt.Errorf("clearing publications: %w", err)
	}

	pubStmt, err := tx.PrepareContext(ctx,
		`INSERT INTO publications (display_index, title, journal, year, volume, number, pages, start_page, keywords, url, doi, abstract)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing publication insert: %w", err)
	}
	defer pubStmt.Close()

	authorStmt, err := tx.PrepareContext(ctx,
		`INSERT INTO authors (display_index, position, first, last) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing author insert: %w", err)
	}
	defer authorStmt.Close()

	for _, p := range pubs {
		if p.DisplayIndex <= 0 {
			return fmt.Errorf("publication %q has no display index", p.Title)
		}
		startJSON, _ := json.Marshal(p.StartPage)
		var kwds any
		if p.Keywords != nil {
			kwJSON, _ := json.Marshal(p.Keywords)
			kwds = string(kwJSON)
		}
		_, err := pubStmt.ExecContext(ctx,
			p.DisplayIndex, p.Title, p.Journal, p.Year, p.Volume, p.Number,
			p.Pages, string(startJSON), kwds, p.URL, p.DOIField, p.Abstract,
		)
		if err != nil {
			return fmt.Errorf("inserting publication %d: %w", p.DisplayIndex, err)
		}
		for pos, a := range p.Authors {
			if _, err := authorStmt.ExecContext(ctx, p.DisplayIndex, pos, a.First, a.Last); err != nil {
				return fmt.Errorf("inserting author of %d: %w", p.DisplayIndex, err)
			}
		}
	}

	return tx.Commit()
}
