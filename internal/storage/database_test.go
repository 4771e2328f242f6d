package storage_test

import (
	"path/filepath"
	"reflect"
	"testing"

	"github.com/javijec/new-biblia/internal/corpus"
	"github.com/javijec/new-biblia/internal/storage"
)

func TestCorpusDB(t *testing.T) {
	db, err := storage.NewCorpusDB(filepath.Join(t.TempDir(), "corpus.db"))
	if err != nil {
		t.Fatalf("Failed to create database: %v", err)
	}
	defer db.Close()

	books := []corpus.Book{
		{
			ID: "genesis", Name: "GENESIS", Testament: corpus.OldTestament, Abbreviation: "Gn",
			Chapters: []corpus.BookChapter{
				{Number: 1, File: "__P1.HTM", Verses: []corpus.Verse{{Number: 1, Text: "a"}, {Number: 2, Text: "b"}}},
				{Number: 2, File: "__P2.HTM", Verses: []corpus.Verse{{Number: 1, Text: "c"}}},
			},
		},
		{
			ID: "rut", Name: "RUT", Testament: corpus.OldTestament,
			Chapters: []corpus.BookChapter{{Number: 1, File: "__P9.HTM", Verses: []corpus.Verse{{Number: 1, Text: "d"}}}},
		},
	}

	first, err := db.SaveBooks(books)
	if err != nil {
		t.Fatalf("Failed to save books: %v", err)
	}

	count, err := db.GetVerseCount()
	if err != nil || count != 4 {
		t.Errorf("Expected 4 verses, got %d (%v)", count, err)
	}

	// Saving again replaces rather than appends, under a new build id.
	second, err := db.SaveBooks(books[:1])
	if err != nil {
		t.Fatalf("Failed to resave books: %v", err)
	}
	if first == second || second == "" {
		t.Errorf("Expected a fresh build id, got %q then %q", first, second)
	}
	stored, err := db.BuildID()
	if err != nil || stored != second {
		t.Errorf("BuildID() = %q, %v; want %q", stored, err, second)
	}

	bookCount, _ := db.GetBookCount()
	verseCount, _ := db.GetVerseCount()
	if bookCount != 1 || verseCount != 3 {
		t.Errorf("Expected 1 book and 3 verses after resave, got %d and %d", bookCount, verseCount)
	}
}

func TestCorpusDBReferences(t *testing.T) {
	db, err := storage.NewCorpusDB(filepath.Join(t.TempDir(), "corpus.db"))
	if err != nil {
		t.Fatalf("Failed to create database: %v", err)
	}
	defer db.Close()

	id, err := db.BuildID()
	if err != nil || id != "" {
		t.Errorf("Expected no build id on a fresh database, got %q (%v)", id, err)
	}

	refs := corpus.ReferenceMap{
		"__P001.HTM:5": {{Href: "NOTAS.HTM#5a", Text: "a"}, {Href: "NOTAS.HTM#5b", Text: "b"}},
	}
	if err := db.SaveReferences(refs); err != nil {
		t.Fatalf("Failed to save references: %v", err)
	}

	got, err := db.GetReferences("_P001.HTM", 5)
	if err != nil {
		t.Fatalf("Failed to get references: %v", err)
	}
	if !reflect.DeepEqual(got, refs["__P001.HTM:5"]) {
		t.Errorf("GetReferences = %v, want %v", got, refs["__P001.HTM:5"])
	}

	missing, err := db.GetReferences("__P001.HTM", 6)
	if err != nil || len(missing) != 0 {
		t.Errorf("Expected no references for verse 6, got %v (%v)", missing, err)
	}
}
