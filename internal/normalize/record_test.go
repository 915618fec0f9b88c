// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package normalize

import (
	"bytes"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/publist/internal/endnote"
	"github.com/pdiddy/publist/pkg/types"
)

func articleRecord() endnote.Record {
	return endnote.Record{
		Authors: []string{"Guha, Ramit K", "Smith, John"},
		Fields: map[string]string{
			endnote.FieldType:    "article",
			endnote.FieldTitle:   "A Study of Widgets",
			endnote.FieldJournal: "Journal~of~Widgets",
			endnote.FieldYear:    "2020",
			endnote.FieldVolume:  "5",
			endnote.FieldNumber:  "2",
			endnote.FieldPages:   "10--20",
		},
	}
}

var lenient = types.NormalizeConfig{Owner: "Guha"}

func TestNormalize(t *testing.T) {
	p, err := Normalize(articleRecord(), lenient)
	require.NoError(t, err)

	assert.Equal(t, []types.Author{{First: "R.K.", Last: "Guha"}, {First: "J.", Last: "Smith"}}, p.Authors)
	assert.Equal(t, "A Study of Widgets", p.Title)
	assert.Equal(t, "Journal of Widgets", p.Journal)
	assert.Equal(t, "2020", p.Year)
	assert.Equal(t, "5", p.Volume)
	assert.Equal(t, "2", p.Number)
	assert.Equal(t, "10-20", p.Pages)
	assert.Equal(t, types.StartPage{Num: 10}, p.StartPage)
	assert.Equal(t, "Guha", p.Owner)
	assert.Nil(t, p.Keywords)
	assert.Empty(t, p.URL)
	assert.Empty(t, p.DOIField)
	assert.Empty(t, p.Abstract)
	assert.Zero(t, p.DisplayIndex)
}

func TestNormalizeSkipsNonArticles(t *testing.T) {
	for _, kind := range []string{"book", "Article", ""} {
		t.Run(kind, func(t *testing.T) {
			r := articleRecord()
			r.Fields[endnote.FieldType] = kind
			_, err := Normalize(r, lenient)
			assert.True(t, errors.Is(err, ErrNotArticle), "got %v", err)
		})
	}

	r := articleRecord()
	delete(r.Fields, endnote.FieldType)
	_, err := Normalize(r, lenient)
	assert.True(t, errors.Is(err, ErrNotArticle))
}

func TestNormalizeJournalStrictness(t *testing.T) {
	r := articleRecord()
	delete(r.Fields, endnote.FieldJournal)

	p, err := Normalize(r, lenient)
	require.NoError(t, err)
	assert.Equal(t, "", p.Journal)

	_, err = Normalize(r, types.NormalizeConfig{Owner: "Guha", StrictJournal: true})
	assert.True(t, errors.Is(err, ErrMissingJournal))

	r.Fields[endnote.FieldJournal] = ""
	_, err = Normalize(r, types.NormalizeConfig{StrictJournal: true})
	assert.NoError(t, err, "an empty journal element is present")
}

func TestNormalizeRecovery(t *testing.T) {
	r := endnote.Record{
		Fields: map[string]string{
			endnote.FieldType:  "article",
			endnote.FieldTitle: "Naïve widgets",
			endnote.FieldPages: "e1003--e1010",
		},
		Keywords: []string{"ignore"},
	}

	p, err := Normalize(r, lenient)
	require.NoError(t, err)
	assert.Empty(t, p.Authors)
	assert.Equal(t, "Nave widgets", p.Title)
	assert.Equal(t, "e1003-e1010", p.Pages)
	assert.Equal(t, types.StartPage{Text: "e1003", IsText: true}, p.StartPage)
	assert.True(t, p.Ignored())
}

func TestAll(t *testing.T) {
	book := articleRecord()
	book.Fields[endnote.FieldType] = "book"
	noJournal := articleRecord()
	delete(noJournal.Fields, endnote.FieldJournal)
	noJournal.Fields[endnote.FieldTitle] = "Orphan"

	records := []endnote.Record{articleRecord(), book, noJournal, articleRecord()}

	var buf bytes.Buffer
	log := zerolog.New(&buf).Level(zerolog.WarnLevel)

	pubs, summary := All(records, types.NormalizeConfig{Owner: "Guha", StrictJournal: true}, log)

	assert.Len(t, pubs, 2)
	assert.Equal(t, Summary{Accepted: 2, NotArticle: 1, MissingJournal: 1}, summary)
	assert.Equal(t, 4, summary.Total())
	assert.Equal(t, 2, summary.Skipped())
	assert.Contains(t, buf.String(), `"title":"Orphan"`)
	assert.Contains(t, buf.String(), `"reason":"no journal"`)
	assert.NotContains(t, buf.String(), "not an article", "non-article skips log at debug")
	assert.Contains(t, summary.String(), "accepted: 2")
}

func TestAllWarnsOnEmptyAuthors(t *testing.T) {
	r := articleRecord()
	r.Authors = nil

	var buf bytes.Buffer
	pubs, _ := All([]endnote.Record{r}, lenient, zerolog.New(&buf))
	require.Len(t, pubs, 1)
	assert.Contains(t, buf.String(), "no authors")
}
