package parser_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/javijec/new-biblia/builder/internal/parser"
	"github.com/javijec/new-biblia/internal/corpus"
)

func parse(t *testing.T, html string) *parser.Page {
	t.Helper()
	page, err := parser.New().ParseHTML(html, "__P1.HTM")
	require.NoError(t, err)
	return page
}

const breadcrumbPage = `<html><head>
<meta name="part" content="Nuevo Testamento>Evangelio según san Juan>9">
</head><body>
<ul TYPE=SQUARE>
  <li>Antiguo Testamento
    <ul><li>GENESIS
      <ul><li>1 <span>(creación)</span></li></ul>
    </li></ul>
  </li>
</ul>
<p class="Enunciado">CAPITULO 7</p>
<p class="TtulodelLibro">OTRO TITULO</p>
</body></html>`

func TestResolveBreadcrumbTakesPrecedence(t *testing.T) {
	got := parser.Resolve(parse(t, breadcrumbPage))

	assert.Equal(t, parser.Metadata{
		Testament:     corpus.OldTestament,
		BookTitle:     "GENESIS",
		ChapterNumber: 1,
	}, got)
	assert.True(t, got.Complete())
}

func TestResolveDeclaredPart(t *testing.T) {
	page := parse(t, `<html><head>
<meta name="part" content="Antiguo Testamento>Salmos>23">
</head><body><p>1 El Señor es mi pastor, nada me puede faltar.</p></body></html>`)

	assert.Equal(t, parser.Metadata{
		Testament:     corpus.OldTestament,
		BookTitle:     "Salmos",
		ChapterNumber: 23,
	}, parser.Resolve(page))
}

func TestDeclaredPartCanonicalizesTestament(t *testing.T) {
	tests := []struct {
		content string
		want    corpus.Testament
	}{
		{"ANTIGUO TEST.>Job>1", corpus.OldTestament},
		{"el nuevo testamento>Hechos>2", corpus.NewTestament},
		{"Introducción>Prólogo", "Introducción"},
	}

	for _, tt := range tests {
		page := parse(t, `<html><head><meta NAME="Part" content="`+tt.content+`"></head><body></body></html>`)
		got := parser.DeclaredPart(page, parser.Metadata{})
		assert.Equal(t, tt.want, got.Testament, tt.content)
	}
}

func TestBreadcrumbPartialFillsFromLaterHeuristics(t *testing.T) {
	page := parse(t, `<html><head>
<meta name="part" content="Nuevo Testamento>Marcos>4">
</head><body>
<ul type="square"><li>Antiguo Testamento<ul><li>Rut<ul><li>Introducción</li></ul></li></ul></li></ul>
</body></html>`)

	got := parser.Resolve(page)
	assert.Equal(t, corpus.OldTestament, got.Testament, "breadcrumb wins")
	assert.Equal(t, "Rut", got.BookTitle, "breadcrumb wins")
	assert.Equal(t, 4, got.ChapterNumber, "non-numeric breadcrumb chapter falls through to meta")
}

func TestResolveCaptionAndTitle(t *testing.T) {
	page := parse(t, `<html><body>
<p class="TtulodelLibro">SALMOS</p>
<p class="Enunciado">SALMO  15 </p>
<p class="Enunciado">SALMO 16</p>
</body></html>`)

	got := parser.Resolve(page)
	assert.Equal(t, parser.Metadata{BookTitle: "SALMOS", ChapterNumber: 15}, got)
	assert.False(t, got.Complete())
}

func TestResolveEmptyPage(t *testing.T) {
	got := parser.Resolve(parse(t, `<html><body><p>Ilustración</p></body></html>`))
	assert.Equal(t, parser.Metadata{}, got)
}

func TestHeuristicsNeverOverwrite(t *testing.T) {
	page := parse(t, breadcrumbPage)
	set := parser.Metadata{Testament: "X", BookTitle: "Y", ChapterNumber: 99}

	for i, h := range parser.DefaultHeuristics {
		assert.Equal(t, set, h(page, set), "heuristic %d", i)
	}
}

func TestResolveWithCustomOrder(t *testing.T) {
	page := parse(t, breadcrumbPage)
	got := parser.ResolveWith(page, []parser.Heuristic{parser.DeclaredPart, parser.Breadcrumb})

	assert.Equal(t, corpus.NewTestament, got.Testament)
	assert.Equal(t, "Evangelio según san Juan", got.BookTitle)
	assert.Equal(t, 9, got.ChapterNumber)
}
