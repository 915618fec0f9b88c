// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"net/url"
	"slices"
	"strconv"
	"strings"
)

// IgnoreKeyword marks a publication that is normalized but kept out of the
// HTML and LaTeX listings.
const IgnoreKeyword = "ignore"

// unpublishedVolumes are volume sentinels used for papers that have not
// appeared in an issue yet.
var unpublishedVolumes = []string{"submitted", "in press", "ASAP"}

// doiHosts are resolver hosts whose URL path is a DOI.
var doiHosts = []string{"dx.doi.org", "doi.org"}

// Author is one entry of a publication's author list.
type Author struct {
	// First holds the abbreviated given names (e.g. "R.K.").
	First string `json:"first" yaml:"first"`

	// Last is the family name, ASCII only.
	Last string `json:"last" yaml:"last"`
}

// String formats the author as "Last, First".
func (a Author) String() string {
	return a.Last + ", " + a.First
}

// StartPage is the first page of a publication's page range. Most journals
// use plain numbers; some use article identifiers like "e1003" that cannot be
// parsed, in which case the raw text is kept.
type StartPage struct {
	Num    int    `json:"num,omitempty" yaml:"num,omitempty"`
	Text   string `json:"text,omitempty" yaml:"text,omitempty"`
	IsText bool   `json:"is_text,omitempty" yaml:"is_text,omitempty"`
}

// ParseStartPage derives the start page from a normalized page range. An
// empty range gives page 0.
func ParseStartPage(pages string) StartPage {
	first, _, _ := strings.Cut(pages, "-")
	first = strings.TrimSpace(first)
	if first == "" {
		return StartPage{}
	}
	n, err := strconv.Atoi(first)
	if err != nil {
		return StartPage{Text: first, IsText: true}
	}
	return StartPage{Num: n}
}

// Compare orders start pages. Numeric pages sort before text pages; pages of
// the same kind compare naturally.
func (p StartPage) Compare(o StartPage) int {
	switch {
	case p.IsText && o.IsText:
		return strings.Compare(p.Text, o.Text)
	case p.IsText:
		return 1
	case o.IsText:
		return -1
	}
	switch {
	case p.Num < o.Num:
		return -1
	case p.Num > o.Num:
		return 1
	}
	return 0
}

func (p StartPage) String() string {
	if p.IsText {
		return p.Text
	}
	return strconv.Itoa(p.Num)
}

// Publication is the canonical form of one accepted journal article.
type Publication struct {
	Authors []Author `json:"authors" yaml:"authors"`
	Title   string   `json:"title" yaml:"title"`
	Journal string   `json:"journal" yaml:"journal"`
	Year    string   `json:"year" yaml:"year"`
	Volume  string   `json:"volume" yaml:"volume"`
	Number  string   `json:"number" yaml:"number"`

	// Pages is the page range with single-hyphen separators.
	Pages string `json:"pages" yaml:"pages"`

	// StartPage is derived from Pages once at construction.
	StartPage StartPage `json:"start_page" yaml:"start_page"`

	// Keywords is nil when the record carried no keywords.
	Keywords []string `json:"keywords,omitempty" yaml:"keywords,omitempty"`

	URL      string `json:"url,omitempty" yaml:"url,omitempty"`
	DOIField string `json:"doi,omitempty" yaml:"doi,omitempty"`
	Abstract string `json:"abstract,omitempty" yaml:"abstract,omitempty"`

	// DisplayIndex is assigned after ordering; zero means unassigned.
	DisplayIndex int `json:"display_index" yaml:"display_index"`

	// Owner is the last name of the list owner, matched as a substring
	// against each author's last name.
	Owner string `json:"-" yaml:"-"`
}

// SetOwner records the list owner used for author highlighting.
func (p *Publication) SetOwner(lastName string) {
	p.Owner = lastName
}

// IsOwner reports whether a is the list owner.
func (p *Publication) IsOwner(a Author) bool {
	return p.Owner != "" && strings.Contains(a.Last, p.Owner)
}

// IsPublished reports whether the volume is a real volume rather than one of
// the submitted/in press/ASAP placeholders.
func (p *Publication) IsPublished() bool {
	return !slices.Contains(unpublishedVolumes, p.Volume)
}

// Ignored reports whether the publication carries the ignore keyword.
func (p *Publication) Ignored() bool {
	return slices.Contains(p.Keywords, IgnoreKeyword)
}

// LinkKind classifies the external link of a publication.
type LinkKind int

const (
	LinkNone LinkKind = iota
	LinkDOI
	LinkURL
)

// DOI resolves the publication's DOI from the DOI field or, failing that,
// from a URL pointing at a DOI resolver. It returns the link kind alongside:
// LinkURL with the raw URL when only a non-resolver URL exists.
func (p *Publication) DOI() (string, LinkKind) {
	if p.DOIField != "" {
		return p.DOIField, LinkDOI
	}
	if p.URL == "" {
		return "", LinkNone
	}
	if u, err := url.Parse(p.URL); err == nil && slices.Contains(doiHosts, strings.ToLower(u.Host)) {
		if doi := strings.TrimPrefix(u.Path, "/"); doi != "" {
			return doi, LinkDOI
		}
	}
	return p.URL, LinkURL
}

// CountVisible returns how many publications are not ignored.
func CountVisible(pubs []Publication) int {
	n := 0
	for i := range pubs {
		if !pubs[i].Ignored() {
			n++
		}
	}
	return n
}
