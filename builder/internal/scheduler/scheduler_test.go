package scheduler_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/javijec/new-biblia/builder/internal/fetcher"
	"github.com/javijec/new-biblia/builder/internal/parser"
	"github.com/javijec/new-biblia/builder/internal/scheduler"
	"github.com/javijec/new-biblia/internal/corpus"
)

// Chapter files are windows-1252 encoded, so accented letters are single bytes.
const (
	genesis1 = "<html><head><meta name=\"part\" content=\"Antiguo Testamento>GENESIS>1\"></head><body>" +
		"<p class=\"MsoNormal\">1 Al principio Dios cre\xf3 el cielo y la tierra.</p>" +
		"<p class=\"MsoNormal\">2 La tierra era algo informe y vac\xedo.</p>" +
		"</body></html>"
	genesis2 = "<html><body><p class=\"Enunciado\">CAPITULO 2</p>" +
		"<p>1 As\xed fueron acabados el cielo y la tierra.</p></body></html>"
	intro = "<html><head><meta name=\"part\" content=\"Antiguo Testamento>EXODO>1\"></head>" +
		"<body><p>Introducci\xf3n al libro</p></body></html>"
	exodus2 = "<html><body><p class=\"Enunciado\">CAPITULO 2</p><p>1 Un hombre de la tribu de Lev\xed.</p></body></html>"
)

func writeFiles(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
	return dir
}

func newScheduler(t *testing.T) *scheduler.Scheduler {
	t.Helper()
	f, err := fetcher.New("windows-1252")
	require.NoError(t, err)
	return scheduler.New(f, &scheduler.Config{Version: "1.0", Language: "es", Source: "test"})
}

// failingSource reads files through a real fetcher except for the named ones.
type failingSource struct {
	*fetcher.Fetcher
	fail map[string]bool
}

func (f failingSource) Fetch(ctx context.Context, path string) (*fetcher.Document, error) {
	if f.fail[filepath.Base(path)] {
		return nil, errors.New("read error")
	}
	return f.Fetcher.Fetch(ctx, path)
}

func newFailingScheduler(t *testing.T, names ...string) *scheduler.Scheduler {
	t.Helper()
	f, err := fetcher.New("windows-1252")
	require.NoError(t, err)
	fail := make(map[string]bool, len(names))
	for _, name := range names {
		fail[name] = true
	}
	return scheduler.New(failingSource{Fetcher: f, fail: fail}, &scheduler.Config{Version: "1.0", Language: "es", Source: "test"})
}

func TestExtractCarriesState(t *testing.T) {
	p := parser.New()

	first, err := p.ParseHTML(`<html><head><meta name="part" content="Nuevo Testamento>MARCOS>1"></head><body><p>1 Comienzo</p></body></html>`, "__P1.HTM")
	require.NoError(t, err)
	second, err := p.ParseHTML(`<html><body><p class="Enunciado">CAPITULO 2</p><p>1 Entró</p></body></html>`, "__P2.HTM")
	require.NoError(t, err)

	ch1, state := scheduler.Extract(first, scheduler.CarryState{})
	assert.Equal(t, scheduler.CarryState{Testament: corpus.NewTestament, BookTitle: "MARCOS"}, state)
	assert.Equal(t, 1, ch1.ChapterNumber)

	ch2, state := scheduler.Extract(second, state)
	assert.Equal(t, corpus.Chapter{
		File:          "__P2.HTM",
		Testament:     corpus.NewTestament,
		BookTitle:     "MARCOS",
		ChapterNumber: 2,
		Verses:        []corpus.Verse{{Number: 1, Text: "Entró"}},
	}, ch2)
	assert.Equal(t, "MARCOS", state.BookTitle)
}

func TestExtractWithoutStateLeavesFieldsUnset(t *testing.T) {
	page, err := parser.New().ParseHTML(`<p>1 Sin contexto</p>`, "__P9.HTM")
	require.NoError(t, err)

	ch, state := scheduler.Extract(page, scheduler.CarryState{})
	assert.Empty(t, ch.Testament)
	assert.Empty(t, ch.BookTitle)
	assert.Zero(t, ch.ChapterNumber)
	assert.Len(t, ch.Verses, 1)
	assert.Equal(t, scheduler.CarryState{}, state)
}

func TestBuild(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"__P10.HTM": exodus2,
		"__P2.HTM":  genesis2,
		"__P1.HTM":  genesis1,
		"__p3.htm":  intro,
		"_P1.HTM":   "<p>1 linked variant</p>",
		"notes.txt": "1 not a chapter",
	})

	raw, stats, err := newScheduler(t).Build(context.Background(), dir)
	require.NoError(t, err)

	assert.Equal(t, "1.0", raw.Version)
	assert.Equal(t, "es", raw.Language)
	require.Len(t, raw.Chapters, 3)

	files := []string{raw.Chapters[0].File, raw.Chapters[1].File, raw.Chapters[2].File}
	assert.Equal(t, []string{"__P1.HTM", "__P2.HTM", "__P10.HTM"}, files)

	assert.Equal(t, "Al principio Dios creó el cielo y la tierra.", raw.Chapters[0].Verses[0].Text)
	assert.Equal(t, "GENESIS", raw.Chapters[1].BookTitle)
	assert.Equal(t, 2, raw.Chapters[1].ChapterNumber)

	// The empty introduction page still moved the carried book to EXODO.
	assert.Equal(t, "EXODO", raw.Chapters[2].BookTitle)
	assert.Equal(t, corpus.OldTestament, raw.Chapters[2].Testament)
	assert.Equal(t, "Un hombre de la tribu de Leví.", raw.Chapters[2].Verses[0].Text)

	assert.Equal(t, scheduler.Stats{Files: 4, Processed: 4, Empty: 1, Verses: 4}, stats)
	assert.Equal(t, stats.Verses, raw.VerseCount())
}

func TestBuildCountsVerseIssues(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"__P1.HTM": `<p>1 uno</p><p>3 tres</p><p>3 otra vez</p>`,
	})

	raw, stats, err := newScheduler(t).Build(context.Background(), dir)
	require.NoError(t, err)
	assert.Len(t, raw.Chapters[0].Verses, 3, "verses are kept as found")
	assert.Equal(t, 2, stats.VerseIssues)
}

func TestBuildSkipsUnreadableFiles(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"__P1.HTM":  genesis1,
		"__P2.HTM":  genesis2,
		"__P10.HTM": exodus2,
	})

	raw, stats, err := newFailingScheduler(t, "__P2.HTM").Build(context.Background(), dir)
	require.NoError(t, err)

	require.Len(t, raw.Chapters, 2)
	assert.Equal(t, "__P1.HTM", raw.Chapters[0].File)
	assert.Equal(t, "__P10.HTM", raw.Chapters[1].File)
	// The carried book survives the failed file.
	assert.Equal(t, "GENESIS", raw.Chapters[1].BookTitle)
	assert.Equal(t, 2, raw.Chapters[1].ChapterNumber)

	assert.Equal(t, scheduler.Stats{Files: 3, Processed: 2, Verses: 3, Errors: 1}, stats)
}

func TestBuildEmptyDirectory(t *testing.T) {
	raw, stats, err := newScheduler(t).Build(context.Background(), t.TempDir())
	require.NoError(t, err)
	assert.NotNil(t, raw.Chapters)
	assert.Empty(t, raw.Chapters)
	assert.Zero(t, stats.Files)
}

func TestBuildMissingDirectory(t *testing.T) {
	_, _, err := newScheduler(t).Build(context.Background(), filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}

func TestBuildCancelled(t *testing.T) {
	dir := writeFiles(t, map[string]string{"__P1.HTM": genesis1})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	raw, _, err := newScheduler(t).Build(ctx, dir)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, raw)
}

func TestReferences(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"_P001.HTM":  `<p class="MsoNormal"><a href="x">5</a> texto <a href="NOTAS.HTM#1">a</a></p>`,
		"_P002.HTM":  `<p class="MsoNormal">3 <a href="__P010.HTM">Jn 3</a></p>`,
		"_P003.HTM":  `<p>sin referencias</p>`,
		"__P001.HTM": `<p class="MsoNormal">5 <a href="ignored">primary</a></p>`,
	})

	refs, stats, err := newScheduler(t).References(context.Background(), dir)
	require.NoError(t, err)

	assert.Equal(t, corpus.ReferenceMap{
		"__P001.HTM:5": {{Href: "x", Text: "5"}, {Href: "NOTAS.HTM#1", Text: "a"}},
		"__P002.HTM:3": {{Href: "__P010.HTM", Text: "Jn 3"}},
	}, refs)
	assert.Equal(t, 3, stats.Files)
	assert.Equal(t, 1, stats.Empty)
	assert.Equal(t, 3, stats.References)
}

func TestReferencesSkipsUnreadableFiles(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"_P001.HTM": `<p class="MsoNormal">5 <a href="x">uno</a></p>`,
		"_P002.HTM": `<p class="MsoNormal">3 <a href="y">dos</a></p>`,
	})

	refs, stats, err := newFailingScheduler(t, "_P001.HTM").References(context.Background(), dir)
	require.NoError(t, err)

	assert.Equal(t, corpus.ReferenceMap{
		"__P002.HTM:3": {{Href: "y", Text: "dos"}},
	}, refs)
	assert.Equal(t, 2, stats.Files)
	assert.Equal(t, 1, stats.Processed)
	assert.Equal(t, 1, stats.Errors)
	assert.Equal(t, 1, stats.References)
}
