package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/javijec/new-biblia/internal/artifacts"
	"github.com/javijec/new-biblia/internal/corpus"
	"github.com/javijec/new-biblia/searcher/internal/search"
)

func writeData(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	store := artifacts.NewStore(dir, artifacts.CompressionZstd)

	book := &corpus.Book{
		ID: "genesis", Name: "GENESIS",
		Chapters: []corpus.BookChapter{{Number: 1, File: "__P1.HTM", Verses: []corpus.Verse{
			{Number: 1, Text: "Al principio Dios creó el cielo y la tierra."},
			{Number: 2, Text: "La tierra era algo informe y vacío."},
			{Number: 3, Text: "Entonces Dios dijo: «Que exista la luz»."},
		}}},
	}
	_, err := store.WriteBook(book)
	require.NoError(t, err)
	require.NoError(t, store.WriteIndex(&corpus.BookIndex{Books: []corpus.BookIndexEntry{{ID: "genesis", Name: "GENESIS", Chapters: 1}}}))
	return dir
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(append(args, "--config", filepath.Join(t.TempDir(), "missing.toml"), "--log-level", "error"))
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		dataDir = ""
		queryOffset, queryLimit = 0, search.DefaultLimit
		queryJSON, queryProgress, queryRanked = false, false, false
	})

	err := rootCmd.Execute()
	return buf.String(), err
}

func TestQueryCommand(t *testing.T) {
	data := writeData(t)

	out, err := execute(t, "query", "--data", data, "tierra")
	require.NoError(t, err)
	assert.Contains(t, out, "GENESIS 1:1  Al principio Dios creó el cielo y la tierra.")
	assert.Contains(t, out, "GENESIS 1:2  La tierra era algo informe y vacío.")
	assert.Contains(t, out, `2 results for "tierra"`)
}

func TestQueryCommandJSON(t *testing.T) {
	data := writeData(t)

	out, err := execute(t, "query", "--data", data, "--json", "--offset", "1", "--limit", "5", "Dios")
	require.NoError(t, err)

	var page search.Page
	require.NoError(t, json.Unmarshal([]byte(out), &page))
	assert.Equal(t, 2, page.Total)
	require.Len(t, page.Results, 1)
	assert.Equal(t, 3, page.Results[0].VerseNumber)
}

func TestQueryCommandProgress(t *testing.T) {
	data := writeData(t)
	conf := filepath.Join(t.TempDir(), "biblia.toml")
	require.NoError(t, os.WriteFile(conf, []byte("[search]\nprogress_every = 1\n"), 0o644))

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"query", "--config", conf, "--data", data, "--progress", "luz"})
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		dataDir = ""
		queryProgress = false
	})

	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, buf.String(), "searched 1/1 books, 1 matches")
}

func TestQueryCommandMissingData(t *testing.T) {
	_, err := execute(t, "query", "--data", t.TempDir(), "luz")
	assert.Error(t, err)
}

func TestRankedWithoutIndex(t *testing.T) {
	_, err := execute(t, "query", "--ranked", "luz")
	assert.Error(t, err)
}

func TestCommandsRegistered(t *testing.T) {
	for _, name := range []string{"query", "serve"} {
		cmd, _, err := rootCmd.Find([]string{name})
		require.NoError(t, err)
		assert.Equal(t, name, cmd.Name())
	}
}
