// Package corpus defines the structured Bible corpus shared by the builder,
// indexer and searcher: chapters as extracted, books as consolidated, the
// book index and the verse reference map.
package corpus

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/javijec/new-biblia/internal/textnorm"
)

// Testament is the label a chapter declares for its top-level division. It is
// kept as found in the source so non-canonical labels survive; use Kind to
// classify it.
type Testament string

const (
	OldTestament Testament = "Antiguo Testamento"
	NewTestament Testament = "Nuevo Testamento"
)

// TestamentKind classifies a Testament label.
type TestamentKind int

const (
	TestamentUnknown TestamentKind = iota
	TestamentOld
	TestamentNew
)

func (k TestamentKind) String() string {
	switch k {
	case TestamentOld:
		return "old"
	case TestamentNew:
		return "new"
	}
	return "unknown"
}

// Kind matches the label against "antiguo" and "nuevo", ignoring case and accents.
func (t Testament) Kind() TestamentKind {
	folded := textnorm.Fold(string(t))
	switch {
	case strings.Contains(folded, "antiguo"):
		return TestamentOld
	case strings.Contains(folded, "nuevo"):
		return TestamentNew
	}
	return TestamentUnknown
}

type Verse struct {
	Number int    `json:"number"`
	Text   string `json:"text"`
}

// Chapter is one extracted source file. Testament, BookTitle and ChapterNumber
// are zero when neither the page nor the carried state supplied them.
type Chapter struct {
	File          string    `json:"file"`
	Testament     Testament `json:"testament,omitempty"`
	BookTitle     string    `json:"bookTitle,omitempty"`
	ChapterNumber int       `json:"chapterNumber,omitempty"`
	Verses        []Verse   `json:"verses"`
}

// RawCorpus is the flat, not yet deduplicated output of a build pass.
type RawCorpus struct {
	Version  string    `json:"version"`
	Language string    `json:"language"`
	Source   string    `json:"source"`
	Chapters []Chapter `json:"chapters"`
}

// VerseCount sums the verses of every chapter.
func (c *RawCorpus) VerseCount() int {
	n := 0
	for _, ch := range c.Chapters {
		n += len(ch.Verses)
	}
	return n
}

type BookChapter struct {
	Number int     `json:"number"`
	File   string  `json:"file"`
	Verses []Verse `json:"verses"`
}

// Book groups the chapters of one title. Chapter numbers are unique and ascending.
type Book struct {
	ID           string        `json:"id"`
	Name         string        `json:"name"`
	Testament    Testament     `json:"testament,omitempty"`
	Abbreviation string        `json:"abbreviation,omitempty"`
	Chapters     []BookChapter `json:"chapters"`
}

// Chapter returns the chapter with the given number.
func (b *Book) Chapter(number int) (BookChapter, bool) {
	for _, ch := range b.Chapters {
		if ch.Number == number {
			return ch, true
		}
	}
	return BookChapter{}, false
}

func (b *Book) VerseCount() int {
	n := 0
	for _, ch := range b.Chapters {
		n += len(ch.Verses)
	}
	return n
}

type BookIndexEntry struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Testament    Testament `json:"testament,omitempty"`
	Abbreviation string    `json:"abbreviation,omitempty"`
	Chapters     int       `json:"chapters"`
	Checksum     string    `json:"checksum,omitempty"`
}

type Totals struct {
	Books    int `json:"books"`
	Chapters int `json:"chapters"`
	Verses   int `json:"verses"`
}

// BookIndex lists every book in corpus order without verse text.
type BookIndex struct {
	Version  string           `json:"version"`
	Language string           `json:"language"`
	Source   string           `json:"source"`
	Totals   Totals           `json:"totals"`
	Books    []BookIndexEntry `json:"books"`
}

// Entry returns the index entry for a book id.
func (idx *BookIndex) Entry(id string) (BookIndexEntry, bool) {
	for _, e := range idx.Books {
		if e.ID == id {
			return e, true
		}
	}
	return BookIndexEntry{}, false
}

var slugSepRe = regexp.MustCompile(`[\s/\\]+`)

// IndexID names the book index file, so no book may use it.
const IndexID = "index"

// Slug derives a book id: lower-case with runs of whitespace and path
// separators replaced by "-".
func Slug(title string) string {
	return slugSepRe.ReplaceAllString(strings.ToLower(title), "-")
}

// ValidID reports whether id can name a book file.
func ValidID(id string) bool {
	return id != "" && id != "." && id != ".." && id != IndexID && !strings.ContainsAny(id, `/\`)
}

// Reference is one outbound link found next to a verse.
type Reference struct {
	Href string `json:"href"`
	Text string `json:"text"`
}

// ReferenceMap is keyed by ReferenceKey.
type ReferenceMap map[string][]Reference

// Add appends refs under key.
func (m ReferenceMap) Add(key string, refs ...Reference) {
	if len(refs) == 0 {
		return
	}
	m[key] = append(m[key], refs...)
}

// Merge appends every entry of other, keeping existing entries for shared keys.
func (m ReferenceMap) Merge(other ReferenceMap) {
	for k, refs := range other {
		m.Add(k, refs...)
	}
}

// Lookup returns the references for a verse of a file named in either the
// primary or the linked naming convention.
func (m ReferenceMap) Lookup(file string, verse int) []Reference {
	return m[ReferenceKey(NormalizeReferenceFile(file), verse)]
}

// ReferenceKey formats "file:verse".
func ReferenceKey(file string, verse int) string {
	return file + ":" + strconv.Itoa(verse)
}

// NormalizeReferenceFile maps the linked variant's file names onto the primary
// corpus names: exactly one leading underscore becomes two.
func NormalizeReferenceFile(file string) string {
	if strings.HasPrefix(file, "_") && !strings.HasPrefix(file, "__") {
		return "_" + file
	}
	return file
}
