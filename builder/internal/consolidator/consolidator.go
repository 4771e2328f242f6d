// Package consolidator groups extracted chapters into books, resolves
// duplicate chapter numbers and builds the book index.
package consolidator

import (
	"fmt"
	"slices"
	"sort"
	"strings"

	"github.com/javijec/new-biblia/internal/corpus"
	berrors "github.com/javijec/new-biblia/internal/errors"
)

// Policy decides which chapter survives when a book has two chapters with the
// same number.
type Policy string

const (
	PolicyFirst   Policy = "first"
	PolicyLast    Policy = "last"
	PolicyLongest Policy = "longest"
)

func ParsePolicy(s string) (Policy, error) {
	switch p := Policy(strings.ToLower(strings.TrimSpace(s))); p {
	case "":
		return PolicyFirst, nil
	case PolicyFirst, PolicyLast, PolicyLongest:
		return p, nil
	}
	return "", berrors.NewValidation("duplicate_policy", fmt.Sprintf("unknown policy %q (want first, last or longest)", s))
}

type Options struct {
	Policy Policy
}

// Duplicate records one chapter dropped in favour of another with the same number.
type Duplicate struct {
	BookID        string `json:"bookId"`
	BookName      string `json:"bookName"`
	Chapter       int    `json:"chapter"`
	Kept          string `json:"kept"`
	KeptVerses    int    `json:"keptVerses"`
	Dropped       string `json:"dropped"`
	DroppedVerses int    `json:"droppedVerses"`
}

// Skipped is a chapter that could not be placed in a book.
type Skipped struct {
	File   string `json:"file"`
	Reason string `json:"reason"`
}

// TitleCount is how many chapters declared a book title.
type TitleCount struct {
	Title    string `json:"title"`
	Chapters int    `json:"chapters"`
}

type Report struct {
	Policy     Policy        `json:"policy"`
	Totals     corpus.Totals `json:"totals"`
	Duplicates []Duplicate   `json:"duplicates"`
	Skipped    []Skipped     `json:"skipped"`
	Titles     []TitleCount  `json:"titles"`
}

type Result struct {
	Books  []corpus.Book
	Index  *corpus.BookIndex
	Report *Report
}

const (
	reasonNoTitle   = "missing book title"
	reasonNoChapter = "missing chapter number"
	reasonBadID     = "unusable book id"
)

type bookState struct {
	book     corpus.Book
	byNumber map[int]int
}

// Consolidate groups raw chapters by book slug in first-appearance order. Book
// chapters end up unique and ascending by number. The output depends only on
// the input and options.
func Consolidate(raw *corpus.RawCorpus, opts Options) *Result {
	policy := opts.Policy
	if policy == "" {
		policy = PolicyFirst
	}

	report := &Report{
		Policy:     policy,
		Duplicates: []Duplicate{},
		Skipped:    []Skipped{},
	}
	titles := make(map[string]int)

	books := make(map[string]*bookState)
	var order []string

	for _, ch := range raw.Chapters {
		title := strings.TrimSpace(ch.BookTitle)
		if title == "" {
			report.Skipped = append(report.Skipped, Skipped{File: ch.File, Reason: reasonNoTitle})
			continue
		}
		titles[title]++
		if ch.ChapterNumber <= 0 {
			report.Skipped = append(report.Skipped, Skipped{File: ch.File, Reason: reasonNoChapter})
			continue
		}

		id := corpus.Slug(title)
		if !corpus.ValidID(id) {
			report.Skipped = append(report.Skipped, Skipped{File: ch.File, Reason: reasonBadID})
			continue
		}
		st, ok := books[id]
		if !ok {
			st = &bookState{
				book: corpus.Book{
					ID:           id,
					Name:         title,
					Testament:    ch.Testament,
					Abbreviation: corpus.Abbreviation(title),
					Chapters:     []corpus.BookChapter{},
				},
				byNumber: make(map[int]int),
			}
			books[id] = st
			order = append(order, id)
		}
		if st.book.Testament == "" {
			st.book.Testament = ch.Testament
		}

		incoming := corpus.BookChapter{Number: ch.ChapterNumber, File: ch.File, Verses: ch.Verses}
		pos, seen := st.byNumber[ch.ChapterNumber]
		if !seen {
			st.byNumber[ch.ChapterNumber] = len(st.book.Chapters)
			st.book.Chapters = append(st.book.Chapters, incoming)
			continue
		}

		kept := st.book.Chapters[pos]
		if replaces(policy, kept, incoming) {
			st.book.Chapters[pos] = incoming
			kept, incoming = incoming, kept
		}
		report.Duplicates = append(report.Duplicates, Duplicate{
			BookID:        id,
			BookName:      st.book.Name,
			Chapter:       ch.ChapterNumber,
			Kept:          kept.File,
			KeptVerses:    len(kept.Verses),
			Dropped:       incoming.File,
			DroppedVerses: len(incoming.Verses),
		})
	}

	result := &Result{
		Books: make([]corpus.Book, 0, len(order)),
		Index: &corpus.BookIndex{
			Version:  raw.Version,
			Language: raw.Language,
			Source:   raw.Source,
			Books:    make([]corpus.BookIndexEntry, 0, len(order)),
		},
		Report: report,
	}

	var totals corpus.Totals
	for _, id := range order {
		book := books[id].book
		slices.SortStableFunc(book.Chapters, func(a, b corpus.BookChapter) int {
			return a.Number - b.Number
		})

		totals.Books++
		totals.Chapters += len(book.Chapters)
		totals.Verses += book.VerseCount()

		result.Books = append(result.Books, book)
		result.Index.Books = append(result.Index.Books, corpus.BookIndexEntry{
			ID:           book.ID,
			Name:         book.Name,
			Testament:    book.Testament,
			Abbreviation: book.Abbreviation,
			Chapters:     len(book.Chapters),
		})
	}
	result.Index.Totals = totals
	report.Totals = totals
	report.Titles = titleCounts(titles)

	return result
}

func replaces(policy Policy, kept, incoming corpus.BookChapter) bool {
	switch policy {
	case PolicyLast:
		return true
	case PolicyLongest:
		return len(incoming.Verses) > len(kept.Verses)
	}
	return false
}

// titleCounts orders titles by chapter count, most frequent first, then by name.
func titleCounts(titles map[string]int) []TitleCount {
	out := make([]TitleCount, 0, len(titles))
	for title, n := range titles {
		out = append(out, TitleCount{Title: title, Chapters: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Chapters != out[j].Chapters {
			return out[i].Chapters > out[j].Chapters
		}
		return out[i].Title < out[j].Title
	})
	return out
}
