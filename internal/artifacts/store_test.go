package artifacts_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/javijec/new-biblia/internal/artifacts"
	"github.com/javijec/new-biblia/internal/corpus"
	berrors "github.com/javijec/new-biblia/internal/errors"
)

func sampleBook() *corpus.Book {
	return &corpus.Book{
		ID:           "genesis",
		Name:         "GENESIS",
		Testament:    corpus.OldTestament,
		Abbreviation: "Gn",
		Chapters: []corpus.BookChapter{
			{Number: 1, File: "__P1.HTM", Verses: []corpus.Verse{{Number: 1, Text: "Al principio Dios creó el cielo y la tierra."}}},
		},
	}
}

func TestWriteAndLoadBook(t *testing.T) {
	for _, c := range []artifacts.Compression{artifacts.CompressionNone, artifacts.CompressionZstd} {
		t.Run(string(c), func(t *testing.T) {
			dir := t.TempDir()
			store := artifacts.NewStore(dir, c)

			sum, err := store.WriteBook(sampleBook())
			require.NoError(t, err)
			assert.Len(t, sum, 64)

			name := filepath.Join(dir, "books", "genesis.json")
			if c == artifacts.CompressionZstd {
				name += ".zst"
			}
			assert.FileExists(t, name)

			got, err := store.LoadBook("genesis")
			require.NoError(t, err)
			assert.Equal(t, sampleBook(), got)
		})
	}
}

func TestChecksumIgnoresCompression(t *testing.T) {
	plain, err := artifacts.NewStore(t.TempDir(), artifacts.CompressionNone).WriteBook(sampleBook())
	require.NoError(t, err)
	packed, err := artifacts.NewStore(t.TempDir(), artifacts.CompressionZstd).WriteBook(sampleBook())
	require.NoError(t, err)
	assert.Equal(t, plain, packed)

	data, err := artifacts.Encode(sampleBook())
	require.NoError(t, err)
	assert.Equal(t, artifacts.Checksum(data), plain)
}

func TestLoaderReadsEitherVariant(t *testing.T) {
	dir := t.TempDir()
	_, err := artifacts.NewStore(dir, artifacts.CompressionZstd).WriteBook(sampleBook())
	require.NoError(t, err)

	got, err := artifacts.NewStore(dir, artifacts.CompressionNone).LoadBook("genesis")
	require.NoError(t, err)
	assert.Equal(t, "GENESIS", got.Name)
}

func TestLoadMissingBook(t *testing.T) {
	_, err := artifacts.NewStore(t.TempDir(), artifacts.CompressionNone).LoadBook("rut")
	require.Error(t, err)
	assert.True(t, berrors.IsNotFound(err))
}

func TestLoadCorruptBook(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "books"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "books", "job.json"), []byte("{not json"), 0o644))

	_, err := artifacts.NewStore(dir, artifacts.CompressionNone).LoadBook("job")
	var pe *berrors.ParseError
	assert.ErrorAs(t, err, &pe)
}

func TestInvalidBookID(t *testing.T) {
	store := artifacts.NewStore(t.TempDir(), artifacts.CompressionNone)
	for _, id := range []string{"", "..", "../etc", `a\b`} {
		_, err := store.LoadBook(id)
		assert.True(t, berrors.IsInvalidInput(err), "id %q", id)
	}
}

func TestIndexCorpusAndReferences(t *testing.T) {
	dir := t.TempDir()
	store := artifacts.NewStore(dir, artifacts.CompressionNone)

	raw := &corpus.RawCorpus{Version: "v", Language: "es", Source: "s", Chapters: []corpus.Chapter{}}
	require.NoError(t, store.WriteCorpus(raw))
	gotRaw, err := store.LoadCorpus()
	require.NoError(t, err)
	assert.Equal(t, raw, gotRaw)

	idx := &corpus.BookIndex{Version: "v", Books: []corpus.BookIndexEntry{{ID: "genesis", Name: "GENESIS", Chapters: 50}}}
	require.NoError(t, store.WriteIndex(idx))
	gotIdx, err := store.LoadIndex()
	require.NoError(t, err)
	assert.Equal(t, idx, gotIdx)

	require.NoError(t, store.WriteReferences(nil))
	data, err := os.ReadFile(filepath.Join(dir, "verse-refs.json"))
	require.NoError(t, err)
	assert.JSONEq(t, `{}`, string(data))

	refs := corpus.ReferenceMap{"__P1.HTM:1": {{Href: "NOTAS.HTM#1", Text: "a"}}}
	require.NoError(t, store.WriteReferences(refs))
	gotRefs, err := store.LoadReferences()
	require.NoError(t, err)
	assert.Equal(t, refs, gotRefs)
}

func TestEncodeKeepsMarkupCharacters(t *testing.T) {
	data, err := artifacts.Encode(corpus.Verse{Number: 1, Text: "a < b & c"})
	require.NoError(t, err)
	assert.Contains(t, string(data), "a < b & c")
}

func TestWriteLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	store := artifacts.NewStore(dir, artifacts.CompressionNone)
	require.NoError(t, store.WriteReport(map[string]int{"duplicates": 0}))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "duplicates.json", entries[0].Name())
}

func TestParseCompression(t *testing.T) {
	c, err := artifacts.ParseCompression("ZSTD")
	require.NoError(t, err)
	assert.Equal(t, artifacts.CompressionZstd, c)

	c, err = artifacts.ParseCompression("")
	require.NoError(t, err)
	assert.Equal(t, artifacts.CompressionNone, c)

	_, err = artifacts.ParseCompression("gzip")
	assert.ErrorIs(t, err, berrors.ErrUnsupported)
}
