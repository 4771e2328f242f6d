// Package scheduler drives the sequential build passes over the legacy source
// files: the corpus pass (metadata carry-state fold plus verse segmentation)
// and the cross-reference pass over the linked variant.
package scheduler

import (
	"context"
	"fmt"

	"github.com/javijec/new-biblia/builder/internal/fetcher"
	"github.com/javijec/new-biblia/builder/internal/frontier"
	"github.com/javijec/new-biblia/builder/internal/parser"
	"github.com/javijec/new-biblia/internal/corpus"
	"github.com/javijec/new-biblia/internal/logging"
)

const (
	DefaultPattern       = "__P*.HTM"
	DefaultLinkedPattern = "_P*.HTM"
	defaultProgressEvery = 100
)

type Config struct {
	Pattern       string
	LinkedPattern string
	Version       string
	Language      string
	Source        string
	ProgressEvery int
}

// Stats counts what a pass did. Processed includes empty chapters; Errors are
// files that could not be read or parsed and were skipped.
type Stats struct {
	Files       int `json:"files"`
	Processed   int `json:"processed"`
	Empty       int `json:"empty"`
	Errors      int `json:"errors"`
	Verses      int `json:"verses"`
	VerseIssues int `json:"verseIssues"`
	References  int `json:"references"`
}

// Source reads and decodes one file. *fetcher.Fetcher satisfies it.
type Source interface {
	Fetch(ctx context.Context, path string) (*fetcher.Document, error)
}

type Scheduler struct {
	config  *Config
	fetcher Source
	parser  *parser.Parser
}

func New(f Source, config *Config) *Scheduler {
	if config.Pattern == "" {
		config.Pattern = DefaultPattern
	}
	if config.LinkedPattern == "" {
		config.LinkedPattern = DefaultLinkedPattern
	}
	if config.ProgressEvery <= 0 {
		config.ProgressEvery = defaultProgressEvery
	}

	return &Scheduler{
		config:  config,
		fetcher: f,
		parser:  parser.New(),
	}
}

// Build extracts every chapter file in dir, in natural file order, into a raw
// corpus. Chapters without verses advance the carry state but are not emitted.
func (s *Scheduler) Build(ctx context.Context, dir string) (*corpus.RawCorpus, Stats, error) {
	queue, err := s.queue(dir, s.config.Pattern)
	if err != nil {
		return nil, Stats{}, err
	}

	raw := &corpus.RawCorpus{
		Version:  s.config.Version,
		Language: s.config.Language,
		Source:   s.config.Source,
		Chapters: make([]corpus.Chapter, 0, queue.Size()),
	}
	stats := Stats{Files: queue.Size()}
	logging.Info("building corpus", "dir", dir, "pattern", s.config.Pattern, "files", stats.Files)

	var state CarryState
	for {
		if err := ctx.Err(); err != nil {
			logging.Warn("corpus build cancelled", "processed", stats.Processed)
			return nil, stats, err
		}

		path, ok := queue.GetNext()
		if !ok {
			break
		}

		page, err := s.load(ctx, path)
		if err != nil {
			logging.Error("skipping chapter file", "path", path, "error", err)
			stats.Errors++
			continue
		}

		var ch corpus.Chapter
		ch, state = Extract(page, state)
		stats.Processed++

		for _, issue := range parser.CheckVerses(ch.Verses) {
			logging.Warn("verse numbering", "file", ch.File, "issue", issue.String())
			stats.VerseIssues++
		}

		if len(ch.Verses) == 0 {
			logging.Debug("chapter has no verses", "file", ch.File)
			stats.Empty++
		} else {
			raw.Chapters = append(raw.Chapters, ch)
			stats.Verses += len(ch.Verses)
		}

		if stats.Processed%s.config.ProgressEvery == 0 {
			logging.Info("build progress", "processed", stats.Processed, "of", stats.Files)
		}
	}

	logging.Info("corpus build finished",
		"processed", stats.Processed,
		"chapters", len(raw.Chapters),
		"empty", stats.Empty,
		"errors", stats.Errors,
		"verses", stats.Verses,
	)
	return raw, stats, nil
}

// References runs the reference extractor over the linked variant files in dir
// and merges the per-file maps in natural file order.
func (s *Scheduler) References(ctx context.Context, dir string) (corpus.ReferenceMap, Stats, error) {
	queue, err := s.queue(dir, s.config.LinkedPattern)
	if err != nil {
		return nil, Stats{}, err
	}

	refs := corpus.ReferenceMap{}
	stats := Stats{Files: queue.Size()}
	logging.Info("extracting references", "dir", dir, "pattern", s.config.LinkedPattern, "files", stats.Files)

	for {
		if err := ctx.Err(); err != nil {
			return nil, stats, err
		}

		path, ok := queue.GetNext()
		if !ok {
			break
		}

		page, err := s.load(ctx, path)
		if err != nil {
			logging.Error("skipping linked file", "path", path, "error", err)
			stats.Errors++
			continue
		}

		found := parser.ExtractReferences(page, page.FileID)
		stats.Processed++
		if len(found) == 0 {
			stats.Empty++
		}
		for _, links := range found {
			stats.References += len(links)
		}
		refs.Merge(found)
	}

	logging.Info("reference extraction finished",
		"processed", stats.Processed,
		"verses", len(refs),
		"references", stats.References,
		"errors", stats.Errors,
	)
	return refs, stats, nil
}

func (s *Scheduler) queue(dir, pattern string) (*frontier.Frontier, error) {
	paths, err := fetcher.List(dir, pattern)
	if err != nil {
		return nil, fmt.Errorf("list source files: %w", err)
	}
	f := frontier.New(nil)
	f.AddFiles(paths)
	return f, nil
}

func (s *Scheduler) load(ctx context.Context, path string) (*parser.Page, error) {
	doc, err := s.fetcher.Fetch(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("fetch failed: %w", err)
	}
	page, err := s.parser.ParseHTML(doc.HTML, doc.FileID)
	if err != nil {
		return nil, fmt.Errorf("parse failed: %w", err)
	}
	return page, nil
}
