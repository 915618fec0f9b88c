// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/publist/pkg/types"
)

const sampleXML = `<?xml version="1.0" encoding="UTF-8" ?>
<xml><records>
<record>
  <contributors><authors>
    <author>Guha, Ramit K</author>
    <author>Smith, John</author>
  </authors></contributors>
  <titles>
    <title>A Study of Widgets</title>
    <secondary-title>Journal of Widgets</secondary-title>
  </titles>
  <custom3>article</custom3>
  <volume>5</volume>
  <number>2</number>
  <dates><year>2020</year></dates>
  <pages>10--20</pages>
  <urls><related-urls><url>http://dx.doi.org/10.1000/widgets.5</url></related-urls></urls>
</record>
<record>
  <contributors><authors><author>Doe, Jane</author></authors></contributors>
  <titles><title>Widget Handbook</title></titles>
  <custom3>book</custom3>
  <dates><year>2018</year></dates>
</record>
<record>
  <contributors><authors><author>Guha, R.</author></authors></contributors>
  <titles><title>Untitled Preprint</title></titles>
  <custom3>article</custom3>
  <volume>submitted</volume>
  <dates><year>2021</year></dates>
</record>
</records></xml>
`

func writeSample(t *testing.T) (dir, path string) {
	t.Helper()
	dir = t.TempDir()
	path = filepath.Join(dir, "pubs.xml")
	require.NoError(t, os.WriteFile(path, []byte(sampleXML), 0o644))
	return dir, path
}

func TestRenderFileHTML(t *testing.T) {
	dir, input := writeSample(t)
	cfg := types.RenderConfig{
		NormalizeConfig: types.NormalizeConfig{Owner: "Guha"},
		Dialect:         types.DialectHTML,
		Output:          filepath.Join(dir, "pubs.html"),
	}

	var stdout bytes.Buffer
	require.NoError(t, renderFile(input, cfg, &stdout, zerolog.Nop()))

	assert.Equal(t,
		"2 publications [article]\nrecords: 3, accepted: 2, not article: 1, missing journal: 0\n",
		stdout.String())

	data, err := os.ReadFile(cfg.Output)
	require.NoError(t, err)
	out := string(data)
	assert.True(t, strings.HasPrefix(out, "<html>"))
	assert.Equal(t, 2, strings.Count(out, "<div class='paper'>"))

	// Newest first: the 2021 preprint precedes the 2020 article.
	assert.Less(t, strings.Index(out, "Untitled Preprint"), strings.Index(out, "A Study of Widgets"))
	assert.NotContains(t, out, "Widget Handbook")
}

func TestRenderFileStrictJournal(t *testing.T) {
	dir, input := writeSample(t)
	cfg := types.RenderConfig{
		NormalizeConfig: types.NormalizeConfig{Owner: "Guha", StrictJournal: true},
		Dialect:         types.DialectWiki,
		Output:          filepath.Join(dir, "pubs.wiki"),
	}

	var stdout bytes.Buffer
	require.NoError(t, renderFile(input, cfg, &stdout, zerolog.Nop()))
	assert.Contains(t, stdout.String(), "1 publications [article]")
	assert.Contains(t, stdout.String(), "missing journal: 1")

	data, err := os.ReadFile(cfg.Output)
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(string(data), "\n"))
}

func TestRenderFileKeepsOutputOnFailure(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "pubs.tex")
	require.NoError(t, os.WriteFile(out, []byte("previous"), 0o644))

	cfg := types.RenderConfig{Dialect: types.DialectLaTeX, Output: out}
	err := renderFile(filepath.Join(dir, "missing.xml"), cfg, &bytes.Buffer{}, zerolog.Nop())
	require.Error(t, err)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "previous", string(data))
}

func TestWriteOutput(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pubs.txt")

	require.NoError(t, writeOutput(path, "first"))
	require.NoError(t, writeOutput(path, "second"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "second", string(data))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary files must not be left behind")
}

func TestWriteOutputMissingDir(t *testing.T) {
	err := writeOutput(filepath.Join(t.TempDir(), "nope", "pubs.txt"), "x")
	require.Error(t, err)
}

func TestFormatSearchOutput(t *testing.T) {
	pubs := []types.Publication{{
		Authors:      []types.Author{{First: "R.K.", Last: "Guha"}},
		Title:        "A Study of Widgets",
		Journal:      "Journal of Widgets",
		Year:         "2020",
		DisplayIndex: 7,
	}}

	var buf bytes.Buffer
	require.NoError(t, formatSearchOutput(&buf, pubs, false))
	assert.Contains(t, buf.String(), "A Study of Widgets")
	assert.Contains(t, buf.String(), "Guha, R.K.")
	assert.Contains(t, buf.String(), "1 results")

	buf.Reset()
	require.NoError(t, formatSearchOutput(&buf, nil, false))
	assert.Equal(t, "No results found.\n", buf.String())

	buf.Reset()
	require.NoError(t, formatSearchOutput(&buf, nil, true))
	assert.Equal(t, "[]\n", buf.String())
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcdefg...", truncate("abcdefghijklmnop", 10))
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs(append(args, "--log-level", "off"))
	err := rootCmd.Execute()
	return out.String(), err
}

func TestRenderCommand(t *testing.T) {
	dir, input := writeSample(t)
	out := filepath.Join(dir, "pubs.tex")

	_, err := execute(t, "render", "-t", "bogus", "-o", out, filepath.Join(dir, "missing.xml"))
	require.ErrorIs(t, err, types.ErrUnknownDialect)

	stdout, err := execute(t, "render", "-t", "latex", "-o", out, input)
	require.NoError(t, err)
	assert.Contains(t, stdout, "2 publications [article]")

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), `\begin{rubric}{Publications}`)
	assert.Contains(t, string(data), `\textbf{Guha, R.K.}`)
}

func TestCatalogCommands(t *testing.T) {
	dir, input := writeSample(t)
	db := filepath.Join(dir, "publist.db")

	stdout, err := execute(t, "catalog", "index", "--db", db, input)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Indexed 2 publications")

	stdout, err = execute(t, "catalog", "search", "--db", db, "--json", "widgets")
	require.NoError(t, err)
	var found []types.Publication
	require.NoError(t, json.Unmarshal([]byte(stdout), &found))
	require.Len(t, found, 1)
	assert.Equal(t, "A Study of Widgets", found[0].Title)
	assert.Equal(t, 1, found[0].DisplayIndex)

	stdout, err = execute(t, "catalog", "export", "--db", db, "--format", "csl")
	require.NoError(t, err)
	assert.Contains(t, stdout, "container-title: Journal of Widgets")
	assert.Contains(t, stdout, "DOI: 10.1000/widgets.5")
	assert.Contains(t, stdout, "status: submitted")

	_, err = execute(t, "catalog", "export", "--db", db, "--format", "bibtex")
	require.Error(t, err)
}

func TestCatalogSearchNeedsQuery(t *testing.T) {
	_, err := execute(t, "catalog", "search", "--db", filepath.Join(t.TempDir(), "x.db"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "query or filter required")
}
