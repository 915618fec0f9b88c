// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import (
	_ "embed"
	"fmt"
	"os"
	"strings"
	"text/template"
)

// DefaultTitle is the page title filled into the template.
const DefaultTitle = "Publications &amp; Reports"

//go:embed page.html.tmpl
var defaultPageTemplate string

// Page wraps a rendered HTML listing in a static page. The template sees
// two fields: .Title and .Content, the already-escaped listing. It is a
// text/template so that server-side include comments survive.
type Page struct {
	tmpl *template.Template
}

// DefaultPage returns the built-in page template.
func DefaultPage() *Page {
	return &Page{tmpl: template.Must(template.New("page").Parse(defaultPageTemplate))}
}

// LoadPage reads a page template from path.
func LoadPage(path string) (*Page, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading page template: %w", err)
	}
	tmpl, err := template.New("page").Option("missingkey=error").Parse(string(data))
	if err != nil {
		return nil, fmt.Errorf("parsing page template %s: %w", path, err)
	}
	return &Page{tmpl: tmpl}, nil
}

// Assemble fills the template's content slot.
func (p *Page) Assemble(content string) (string, error) {
	var b strings.Builder
	err := p.tmpl.Execute(&b, struct {
		Title   string
		Content string
	}{DefaultTitle, content})
	if err != nil {
		return "", fmt.Errorf("assembling page: %w", err)
	}
	return b.String(), nil
}
