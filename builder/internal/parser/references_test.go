package parser_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/javijec/new-biblia/builder/internal/parser"
	"github.com/javijec/new-biblia/internal/corpus"
)

func TestExtractReferences(t *testing.T) {
	page, err := parser.New().ParseHTML(`<html><body>
<p class="MsoNormal"><a href="x">5</a> Jesús lloró <a href=" NOTAS.HTM#1 "> a </a></p>
<p class="MsoNormal">6&nbsp;Y dijeron <a href="__P010.HTM#3">cf. Jn 3</a><a href="">vacío</a></p>
<p class="MsoNormal">Sin número <a href="y.HTM">b</a></p>
<p class="Otro">7 <a href="z.HTM">c</a></p>
<p class="MsoNormal">8 sin enlaces</p>
</body></html>`, "_P001.HTM")
	require.NoError(t, err)

	got := parser.ExtractReferences(page, "_P001.HTM")

	assert.Equal(t, corpus.ReferenceMap{
		"__P001.HTM:5": {
			{Href: "x", Text: "5"},
			{Href: "NOTAS.HTM#1", Text: "a"},
		},
		"__P001.HTM:6": {
			{Href: "__P010.HTM#3", Text: "cf. Jn 3"},
		},
	}, got)
	assert.Len(t, got.Lookup("_P001.HTM", 5), 2)
}

func TestExtractReferencesAppendsRepeatedVerse(t *testing.T) {
	page, err := parser.New().ParseHTML(`
<p class="MsoNormal">0 <a href="intro.HTM">i</a></p>
<p class="MsoNormal">3 <a href="a.HTM">a</a></p>
<p class="MsoNormal">3 <a href="b.HTM">b</a></p>`, "__P002.HTM")
	require.NoError(t, err)

	got := parser.ExtractReferences(page, "__P002.HTM")

	assert.Equal(t, []corpus.Reference{{Href: "intro.HTM", Text: "i"}}, got["__P002.HTM:0"])
	assert.Equal(t, []corpus.Reference{
		{Href: "a.HTM", Text: "a"},
		{Href: "b.HTM", Text: "b"},
	}, got["__P002.HTM:3"])
}

func TestExtractReferencesNone(t *testing.T) {
	page, err := parser.New().ParseHTML(`<p>1 En el principio</p>`, "_P003.HTM")
	require.NoError(t, err)
	assert.Empty(t, parser.ExtractReferences(page, "_P003.HTM"))
}
