// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import (
	"fmt"
	"net/url"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/pdiddy/publist/pkg/types"
)

// minorWords stay lowercase in wiki journal titles.
var minorWords = map[string]bool{"in": true, "and": true, "of": true}

var titleCaser = cases.Title(language.Und)

// Wiki renders one MediaWiki numbered-list line per publication.
//
// Unlike HTML and LaTeX, Wiki does not drop publications tagged "ignore";
// existing wiki pages are generated that way and rely on it.
type Wiki struct{}

func (w *Wiki) Extension() string { return ".wiki" }

func (w *Wiki) Render(pubs []types.Publication) (string, error) {
	var b strings.Builder
	for i := range pubs {
		b.WriteString(wikiEntry(&pubs[i]))
		b.WriteString("\n")
	}
	return encode(b.String(), nil)
}

func wikiEntry(p *types.Publication) string {
	names := make([]string, len(p.Authors))
	for i, a := range p.Authors {
		names[i] = a.String()
	}

	line := fmt.Sprintf("# \"%s\"<br>'''%s'''<br>''%s'', '''%s''', ''%s'',  %s",
		p.Title, strings.Join(names, "; "),
		strings.ReplaceAll(capitalizeJournal(p.Journal), `\`, ""),
		p.Year, p.Volume, p.Pages)
	if link := wikiLink(p.URL); link != "" {
		line += " " + link
	}
	return line
}

// capitalizeJournal capitalizes each word except "in", "and" and "of".
func capitalizeJournal(journal string) string {
	words := strings.Fields(journal)
	for i, word := range words {
		if minorWords[strings.ToLower(word)] {
			words[i] = strings.ToLower(word)
		} else {
			words[i] = titleCaser.String(word)
		}
	}
	return strings.Join(words, " ")
}

// wikiLink formats a percent-decoded URL as a bracketed external link.
func wikiLink(raw string) string {
	u := strings.TrimSpace(raw)
	if u == "" {
		return ""
	}
	if decoded, err := url.PathUnescape(u); err == nil {
		u = decoded
	}
	return fmt.Sprintf("([%s DOI])", u)
}
