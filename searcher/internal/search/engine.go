// Package search runs morphology-aware whole-word queries over the per-book
// corpus artifacts, with progressive delivery and newest-query-wins sessions.
package search

import (
	"context"
	"sync"

	"github.com/javijec/new-biblia/internal/corpus"
	"github.com/javijec/new-biblia/internal/logging"
	"github.com/javijec/new-biblia/internal/textnorm"
	"github.com/javijec/new-biblia/searcher/internal/conjugation"
)

const DefaultProgressEvery = 5

// Result is one matching verse. Text is the verse as stored, not folded.
type Result struct {
	BookID        string `json:"bookId"`
	BookTitle     string `json:"bookTitle"`
	ChapterNumber int    `json:"chapterNumber"`
	VerseNumber   int    `json:"verseNumber"`
	Text          string `json:"text"`
	Query         string `json:"query"`
}

// Progress is delivered after every ProgressEvery books. Results holds the
// matches found so far.
type Progress struct {
	Current int      `json:"current"`
	Total   int      `json:"total"`
	Results []Result `json:"results"`
}

type ProgressFunc func(Progress)

// State is the stage a query has reached.
type State int

const (
	StateIdle State = iota
	StateNormalizing
	StateExpanding
	StateScanning
	StateComplete
	StateCancelled
)

func (s State) String() string {
	switch s {
	case StateNormalizing:
		return "normalizing"
	case StateExpanding:
		return "expanding"
	case StateScanning:
		return "scanning"
	case StateComplete:
		return "complete"
	case StateCancelled:
		return "cancelled"
	}
	return "idle"
}

type Options struct {
	ProgressEvery int
	CacheSize     int
}

type Engine struct {
	loader        Loader
	table         *conjugation.Table
	cache         *BookCache
	progressEvery int

	mu    sync.Mutex
	index *corpus.BookIndex
}

// NewEngine returns an engine reading books through loader. A nil table means
// conjugation.Default().
func NewEngine(loader Loader, table *conjugation.Table, opts Options) *Engine {
	if table == nil {
		table = conjugation.Default()
	}
	if opts.ProgressEvery <= 0 {
		opts.ProgressEvery = DefaultProgressEvery
	}
	return &Engine{
		loader:        loader,
		table:         table,
		cache:         NewBookCache(loader, opts.CacheSize),
		progressEvery: opts.ProgressEvery,
	}
}

// Index returns the book index, loading it on first use.
func (e *Engine) Index() (*corpus.BookIndex, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.index != nil {
		return e.index, nil
	}
	idx, err := e.loader.LoadIndex()
	if err != nil {
		return nil, err
	}
	e.index = idx
	return idx, nil
}

// Book returns a book through the engine's cache.
func (e *Engine) Book(id string) (*corpus.Book, error) {
	return e.cache.Get(id)
}

func (e *Engine) CacheStats() CacheStats {
	return e.cache.Stats()
}

// Terms folds query and expands it with the conjugation table. A blank query
// has no terms.
func (e *Engine) Terms(query string) []string {
	normalized := textnorm.FoldQuery(query)
	if normalized == "" {
		return nil
	}
	return e.table.Expand(normalized)
}

// Search returns every verse matching query, in book index order.
func (e *Engine) Search(ctx context.Context, query string) ([]Result, error) {
	return e.run(ctx, query, nil, nil)
}

// SearchProgressive is Search with fn called after every ProgressEvery books.
// fn is never called once ctx is done.
func (e *Engine) SearchProgressive(ctx context.Context, query string, fn ProgressFunc) ([]Result, error) {
	return e.run(ctx, query, fn, nil)
}

func (e *Engine) run(ctx context.Context, query string, fn ProgressFunc, track func(State)) ([]Result, error) {
	if track == nil {
		track = func(State) {}
	}

	track(StateNormalizing)
	normalized := textnorm.FoldQuery(query)
	if normalized == "" {
		track(StateComplete)
		return []Result{}, nil
	}

	track(StateExpanding)
	terms := e.table.Expand(normalized)

	idx, err := e.Index()
	if err != nil {
		return nil, err
	}

	track(StateScanning)
	results := make([]Result, 0)
	total := len(idx.Books)
	for i, entry := range idx.Books {
		if err := ctx.Err(); err != nil {
			track(StateCancelled)
			return nil, err
		}

		book, err := e.cache.Get(entry.ID)
		if err != nil {
			logging.Warn("skipping book", "book", entry.ID, "error", err)
		} else if results, err = appendMatches(ctx, results, book, terms, query); err != nil {
			track(StateCancelled)
			return nil, err
		}

		if fn != nil && (i+1)%e.progressEvery == 0 {
			if err := ctx.Err(); err != nil {
				track(StateCancelled)
				return nil, err
			}
			n := len(results)
			fn(Progress{Current: i + 1, Total: total, Results: results[:n:n]})
		}
	}

	if err := ctx.Err(); err != nil {
		track(StateCancelled)
		return nil, err
	}
	track(StateComplete)
	return results, nil
}

func appendMatches(ctx context.Context, results []Result, book *corpus.Book, terms []string, query string) ([]Result, error) {
	for _, ch := range book.Chapters {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		for _, v := range ch.Verses {
			if !matchesAny(textnorm.Fold(v.Text), terms) {
				continue
			}
			results = append(results, Result{
				BookID:        book.ID,
				BookTitle:     book.Name,
				ChapterNumber: ch.Number,
				VerseNumber:   v.Number,
				Text:          v.Text,
				Query:         query,
			})
		}
	}
	return results, nil
}
