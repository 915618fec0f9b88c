// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import (
	"fmt"
	"strings"

	"github.com/pdiddy/publist/pkg/types"
)

// DefaultEntrySpacer is the vertical space in em after each LaTeX entry.
const DefaultEntrySpacer = 0.7

// LaTeX renders a CV rubric with one \entry* per visible publication. Text
// is passed through unescaped since Endnote fields already carry TeX.
type LaTeX struct {
	// DimCoAuthors greys out every author except the owner.
	DimCoAuthors bool

	// Spacer is the space after each entry in em; zero uses
	// DefaultEntrySpacer.
	Spacer float64
}

func (l *LaTeX) Extension() string { return ".tex" }

func (l *LaTeX) Render(pubs []types.Publication) (string, error) {
	spacer := l.Spacer
	if spacer <= 0 {
		spacer = DefaultEntrySpacer
	}

	var b strings.Builder
	b.WriteString("\\rubricalignment{l}\n\\begin{rubric}{Publications}\n")

	n := types.CountVisible(pubs)
	for i := range pubs {
		p := &pubs[i]
		if p.Ignored() {
			continue
		}
		b.WriteString(l.entry(p, n))
		fmt.Fprintf(&b, "\n\\vspace{%.1fem}\n", spacer)
		n--
	}

	b.WriteString("\\end{rubric}\n")
	return encode(b.String(), dropNonASCII)
}

func (l *LaTeX) entry(p *types.Publication, counter int) string {
	segments := []string{l.authors(p) + "; ``" + p.Title + "''"}
	if j := latexJournal(p.Journal); j != "" {
		segments = append(segments, j)
	}
	segments = append(segments, `\textbf{`+p.Year+`}`)

	if p.IsPublished() {
		if p.Volume != "" {
			segments = append(segments, `\textit{`+p.Volume+`}`)
		}
		if p.Pages != "" {
			segments = append(segments, strings.ReplaceAll(p.Pages, "-", "--"))
		}
	} else if p.Volume != "" {
		segments = append(segments, p.Volume)
	}

	return fmt.Sprintf("\\entry*[%d.] \\raggedright{%s}", counter, strings.Join(segments, ", "))
}

func (l *LaTeX) authors(p *types.Publication) string {
	names := make([]string, len(p.Authors))
	for i, a := range p.Authors {
		switch {
		case p.IsOwner(a):
			names[i] = `\textbf{` + a.String() + `}`
		case l.DimCoAuthors:
			names[i] = `\textcolor[rgb]{0.6, 0.6, 0.6}{` + a.String() + `}`
		default:
			names[i] = a.String()
		}
	}
	return strings.Join(names, "; ")
}

// latexJournal italicizes a non-empty journal; the separating comma is
// added by the entry.
func latexJournal(journal string) string {
	if journal == "" {
		return ""
	}
	return `\textit{` + journal + `}`
}
