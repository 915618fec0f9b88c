// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/publist/pkg/types"
)

// ExportYAML writes the whole catalog to w as a YAML list.
func (s *Store) ExportYAML(ctx context.Context, w io.Writer) error {
	pubs, err := s.exportAll(ctx)
	if err != nil {
		return err
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(pubs); err != nil {
		return fmt.Errorf("marshaling YAML: %w", err)
	}
	return enc.Close()
}

// ExportJSON writes the whole catalog to w as an indented JSON array.
func (s *Store) ExportJSON(ctx context.Context, w io.Writer) error {
	pubs, err := s.exportAll(ctx)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(pubs); err != nil {
		return fmt.Errorf("marshaling JSON: %w", err)
	}
	return nil
}

// ExportCSL writes the catalog as a CSL-YAML list that Pandoc and reference
// managers can consume.
func (s *Store) ExportCSL(ctx context.Context, w io.Writer) error {
	pubs, err := s.exportAll(ctx)
	if err != nil {
		return err
	}
	items := make([]CSLItem, len(pubs))
	for i := range pubs {
		items[i] = toCSLItem(&pubs[i])
	}
	enc := yaml.NewEncoder(w)
	defer enc.Close()
	if err := enc.Encode(items); err != nil {
		return fmt.Errorf("marshaling CSL: %w", err)
	}
	return nil
}

func (s *Store) exportAll(ctx context.Context) ([]types.Publication, error) {
	pubs, err := s.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("querying for export: %w", err)
	}
	if pubs == nil {
		pubs = []types.Publication{}
	}
	return pubs, nil
}

// CSLItem is a bibliographic entry in CSL-YAML form.
type CSLItem struct {
	ID             string    `yaml:"id"`
	Type           string    `yaml:"type"`
	Title          string    `yaml:"title"`
	Author         []CSLName `yaml:"author,omitempty"`
	ContainerTitle string    `yaml:"container-title,omitempty"`
	Volume         string    `yaml:"volume,omitempty"`
	Issue          string    `yaml:"issue,omitempty"`
	Page           string    `yaml:"page,omitempty"`
	Issued         *CSLDate  `yaml:"issued,omitempty"`
	Status         string    `yaml:"status,omitempty"`
	DOI            string    `yaml:"DOI,omitempty"`
	URL            string    `yaml:"URL,omitempty"`
	Abstract       string    `yaml:"abstract,omitempty"`
	Keyword        string    `yaml:"keyword,omitempty"`
}

// CSLName is a person's name in CSL form.
type CSLName struct {
	Family string `yaml:"family,omitempty"`
	Given  string `yaml:"given,omitempty"`
}

// CSLDate holds either numeric date-parts or a literal date.
type CSLDate struct {
	DateParts [][]int `yaml:"date-parts,omitempty"`
	Literal   string  `yaml:"literal,omitempty"`
}

func toCSLItem(p *types.Publication) CSLItem {
	item := CSLItem{
		ID:             "pub" + strconv.Itoa(p.DisplayIndex),
		Type:           "article-journal",
		Title:          p.Title,
		ContainerTitle: p.Journal,
		Issue:          p.Number,
		URL:            p.URL,
		Abstract:       p.Abstract,
		Keyword:        strings.Join(p.Keywords, ", "),
	}

	for _, a := range p.Authors {
		item.Author = append(item.Author, CSLName{Family: a.Last, Given: a.First})
	}

	if p.IsPublished() {
		item.Volume = p.Volume
		item.Page = p.Pages
	} else {
		item.Status = p.Volume
	}

	if y := strings.TrimSpace(p.Year); y != "" {
		if n, err := strconv.Atoi(y); err == nil {
			item.Issued = &CSLDate{DateParts: [][]int{{n}}}
		} else {
			item.Issued = &CSLDate{Literal: y}
		}
	}

	if doi, kind := p.DOI(); kind == types.LinkDOI {
		item.DOI = doi
	}

	return item
}
