package scheduler

import (
	"github.com/javijec/new-biblia/builder/internal/parser"
	"github.com/javijec/new-biblia/internal/corpus"
)

// CarryState is the testament and book most recently declared by a page.
// Pages that omit them inherit these values.
type CarryState struct {
	Testament corpus.Testament
	BookTitle string
}

// Extract resolves a page into a chapter, back-filling testament and book from
// state, and returns the state for the next page.
func Extract(page *parser.Page, state CarryState) (corpus.Chapter, CarryState) {
	meta := parser.Resolve(page)

	if meta.Testament == "" {
		meta.Testament = state.Testament
	}
	if meta.BookTitle == "" {
		meta.BookTitle = state.BookTitle
	}

	next := CarryState{Testament: meta.Testament, BookTitle: meta.BookTitle}

	return corpus.Chapter{
		File:          page.FileID,
		Testament:     meta.Testament,
		BookTitle:     meta.BookTitle,
		ChapterNumber: meta.ChapterNumber,
		Verses:        parser.Segment(page),
	}, next
}
