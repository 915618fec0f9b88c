// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import (
	"fmt"
	"html"
	"strings"

	"github.com/pdiddy/publist/pkg/types"
)

const pspacer = "\n\n<div class='pspacer'></div>\n\n"

// badge embeds the Dimensions citation counter for a DOI.
const badge = ` <span style='display:inline; float: right' class="__dimensions_badge_embed__" data-doi="%s" data-hide-zero-citations="false" data-style="small_circle"></span><script async src="https://badge.dimensions.ai/badge.js" charset="utf-8"></script>`

// HTML renders one <div class='paper'> block per visible publication.
// Ignored publications are left out and the visible entries are numbered
// from the visible count down to 1.
type HTML struct {
	// ShowAbstract adds an abstract toggle and a hidden abstract block.
	ShowAbstract bool

	// Page wraps the listing; nil emits the fragment alone.
	Page *Page
}

func (h *HTML) Extension() string { return ".html" }

func (h *HTML) Render(pubs []types.Publication) (string, error) {
	var b strings.Builder
	b.WriteString(pspacer)

	n := types.CountVisible(pubs)
	for i := range pubs {
		p := &pubs[i]
		if p.Ignored() {
			continue
		}
		h.writeEntry(&b, p, n)
		b.WriteString(pspacer)
		n--
	}

	out := b.String()
	if h.Page != nil {
		var err error
		if out, err = h.Page.Assemble(out); err != nil {
			return "", err
		}
	}
	return encode(out, replaceNonASCII)
}

func (h *HTML) writeEntry(b *strings.Builder, p *types.Publication, counter int) {
	doi, kind := p.DOI()

	b.WriteString("<div class='paper'>\n")

	title := strings.NewReplacer("{", "", "}", "").Replace(p.Title)
	fmt.Fprintf(b, "<div class='ptitle'><span class='pubindex'>%d.</span> %s", counter, html.EscapeString(title))
	if kind == types.LinkDOI {
		fmt.Fprintf(b, badge, html.EscapeString(doi))
	}
	b.WriteString("</div>\n")

	b.WriteString("<div class='pdetails'>\n")
	fmt.Fprintf(b, "<div class='pauthor'>\n%s\n</div>\n", htmlAuthors(p))

	year := html.EscapeString(p.Year)
	volume := html.EscapeString(p.Volume)
	if p.IsPublished() {
		fmt.Fprintf(b, "<div class='pjournal'>%s<b>%s</b>, <i>%s</i>%s, %s</div>\n",
			htmlJournal(p.Journal), year, volume, htmlNumber(p.Number), html.EscapeString(p.Pages))
	} else {
		fmt.Fprintf(b, "<div class='pjournal'>%s<b>%s</b>, %s</div>\n",
			htmlJournal(p.Journal), year, volume)
	}

	b.WriteString("<div class='pmisc'>\n")
	if h.ShowAbstract {
		fmt.Fprintf(b, "[ <a href=\"javascript:toggleLayer('abstract%d');\">Abstract</a> ]\n", counter)
	}
	switch kind {
	case types.LinkDOI:
		href := p.URL
		if href == "" {
			href = "https://doi.org/" + doi
		}
		fmt.Fprintf(b, "[DOI <a href=\"%s\">%s</a> ]\n", html.EscapeString(href), html.EscapeString(doi))
	case types.LinkURL:
		fmt.Fprintf(b, "[ <a href=\"%s\">Link</a> ]\n", html.EscapeString(p.URL))
	}
	if h.ShowAbstract {
		fmt.Fprintf(b, "<div id='abstract%d' class='absdiv'>%s</div>\n", counter, html.EscapeString(p.Abstract))
	}
	b.WriteString("</div>\n</div>\n</div>")
}

// htmlAuthors joins the author list, wrapping the owner in a lead span.
func htmlAuthors(p *types.Publication) string {
	names := make([]string, len(p.Authors))
	for i, a := range p.Authors {
		name := html.EscapeString(a.String())
		if p.IsOwner(a) {
			name = `<span class="lead">` + name + `</span>`
		}
		names[i] = name
	}
	return strings.Join(names, "; ")
}

// htmlJournal italicizes a journal with one trailing comma. LaTeX-escaped
// ampersands are unescaped first.
func htmlJournal(journal string) string {
	if journal == "" {
		return ""
	}
	j := strings.ReplaceAll(journal+",", ",,", ",")
	j = strings.ReplaceAll(j, `\&`, "&")
	return "<i>" + html.EscapeString(j) + "</i> "
}

func htmlNumber(number string) string {
	if number == "" {
		return ""
	}
	return "(" + html.EscapeString(number) + ")"
}
