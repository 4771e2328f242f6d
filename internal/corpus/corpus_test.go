package corpus_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/javijec/new-biblia/internal/corpus"
)

func TestTestamentKind(t *testing.T) {
	tests := []struct {
		label corpus.Testament
		want  corpus.TestamentKind
	}{
		{corpus.OldTestament, corpus.TestamentOld},
		{corpus.NewTestament, corpus.TestamentNew},
		{"ANTIGUO TESTAMENTO", corpus.TestamentOld},
		{"El Nuevo Testamento", corpus.TestamentNew},
		{"Introducción", corpus.TestamentUnknown},
		{"", corpus.TestamentUnknown},
	}

	for _, tt := range tests {
		t.Run(string(tt.label), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.label.Kind())
		})
	}
}

func TestSlug(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{"GENESIS", "genesis"},
		{"PRIMER LIBRO DE SAMUEL", "primer-libro-de-samuel"},
		{"Cantar de  los\tCantares", "cantar-de-los-cantares"},
		{"ESDRAS/NEHEMIAS", "esdras-nehemias"},
		{`Reyes \ Crónicas / 2`, "reyes-crónicas-2"},
		{"", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, corpus.Slug(tt.title), "title %q", tt.title)
	}
}

func TestValidID(t *testing.T) {
	for _, id := range []string{"genesis", "1-samuel", "index-1"} {
		assert.True(t, corpus.ValidID(id), id)
	}
	for _, id := range []string{"", ".", "..", "index", "a/b", `a\b`} {
		assert.False(t, corpus.ValidID(id), id)
	}
}

func TestNormalizeReferenceFile(t *testing.T) {
	assert.Equal(t, "__P001.HTM", corpus.NormalizeReferenceFile("_P001.HTM"))
	assert.Equal(t, "__P001.HTM", corpus.NormalizeReferenceFile("__P001.HTM"))
	assert.Equal(t, "P001.HTM", corpus.NormalizeReferenceFile("P001.HTM"))
	assert.Equal(t, "___P1.HTM", corpus.NormalizeReferenceFile("___P1.HTM"))
}

func TestReferenceKey(t *testing.T) {
	key := corpus.ReferenceKey(corpus.NormalizeReferenceFile("_P001.HTM"), 5)
	assert.Equal(t, "__P001.HTM:5", key)
}

func TestReferenceMapMergeAppends(t *testing.T) {
	m := corpus.ReferenceMap{}
	m.Add("__P1.HTM:1", corpus.Reference{Href: "a.htm", Text: "a"})
	m.Add("__P1.HTM:2")

	m.Merge(corpus.ReferenceMap{
		"__P1.HTM:1": {{Href: "b.htm", Text: "b"}},
		"__P2.HTM:3": {{Href: "c.htm", Text: "c"}},
	})

	require.Len(t, m, 2, "empty adds create no key")
	assert.Equal(t, []corpus.Reference{{Href: "a.htm", Text: "a"}, {Href: "b.htm", Text: "b"}}, m["__P1.HTM:1"])
	assert.Equal(t, m["__P1.HTM:1"], m.Lookup("_P1.HTM", 1))
	assert.Equal(t, m["__P2.HTM:3"], m.Lookup("__P2.HTM", 3))
	assert.Nil(t, m.Lookup("_P9.HTM", 1))
}

func TestChapterJSONOmitsUnsetMetadata(t *testing.T) {
	data, err := json.Marshal(corpus.Chapter{
		File:   "__P0.HTM",
		Verses: []corpus.Verse{{Number: 1, Text: "Prólogo"}},
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{"file":"__P0.HTM","verses":[{"number":1,"text":"Prólogo"}]}`, string(data))
}

func TestBookHelpers(t *testing.T) {
	book := corpus.Book{
		ID: "rut",
		Chapters: []corpus.BookChapter{
			{Number: 1, Verses: []corpus.Verse{{Number: 1}, {Number: 2}}},
			{Number: 2, Verses: []corpus.Verse{{Number: 1}}},
		},
	}

	ch, ok := book.Chapter(2)
	require.True(t, ok)
	assert.Equal(t, 2, ch.Number)

	_, ok = book.Chapter(3)
	assert.False(t, ok)
	assert.Equal(t, 3, book.VerseCount())

	raw := corpus.RawCorpus{Chapters: []corpus.Chapter{{Verses: make([]corpus.Verse, 4)}, {Verses: make([]corpus.Verse, 2)}}}
	assert.Equal(t, 6, raw.VerseCount())

	idx := corpus.BookIndex{Books: []corpus.BookIndexEntry{{ID: "rut", Chapters: 2}}}
	e, ok := idx.Entry("rut")
	require.True(t, ok)
	assert.Equal(t, 2, e.Chapters)
	_, ok = idx.Entry("job")
	assert.False(t, ok)
}

func TestAbbreviation(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"GENESIS", "Gn"},
		{"Génesis", "Gn"},
		{"EVANGELIO SEGÚN SAN MATEO", "Mt"},
		{"primera carta  a los corintios", "1 Co"},
		{"Éxodo", "Ex"},
		{"Prólogo", "Pró"},
		{"Ab", "Ab"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, corpus.Abbreviation(tt.name))
		})
	}
}
