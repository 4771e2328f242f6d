package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/javijec/new-biblia/internal/corpus"
	berrors "github.com/javijec/new-biblia/internal/errors"
	"github.com/javijec/new-biblia/internal/logging"
	"github.com/javijec/new-biblia/internal/storage"
	"github.com/javijec/new-biblia/searcher/internal/search"
)

type HealthResponse struct {
	Status string            `json:"status"`
	Books  int               `json:"books"`
	Ranked bool              `json:"ranked"`
	Cache  search.CacheStats `json:"cache"`
}

type ChapterResponse struct {
	BookID    string         `json:"bookId"`
	BookName  string         `json:"bookName"`
	Number    int            `json:"number"`
	File      string         `json:"file"`
	Verses    []corpus.Verse `json:"verses"`
	Testament string         `json:"testament,omitempty"`
}

type RefsResponse struct {
	File       string             `json:"file"`
	Verse      int                `json:"verse"`
	References []corpus.Reference `json:"references"`
}

// RankedHit is a verse from the TF-IDF index.
type RankedHit struct {
	BookID        string  `json:"bookId"`
	BookTitle     string  `json:"bookTitle"`
	ChapterNumber int     `json:"chapterNumber"`
	VerseNumber   int     `json:"verseNumber"`
	Text          string  `json:"text"`
	Score         float64 `json:"score"`
}

type RankedResponse struct {
	Terms  []string    `json:"terms"`
	Offset int         `json:"offset"`
	Limit  int         `json:"limit"`
	Hits   []RankedHit `json:"hits"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	resp := HealthResponse{
		Status: "ok",
		Ranked: s.index != nil,
		Cache:  s.engine.CacheStats(),
	}
	idx, err := s.engine.Index()
	if err != nil {
		resp.Status = "degraded"
		logging.WarnContext(r.Context(), "book index unavailable", "error", err)
	} else {
		resp.Books = len(idx.Books)
	}
	respond(w, http.StatusOK, resp)
}

func (s *Server) handleBooks(w http.ResponseWriter, r *http.Request) {
	idx, err := s.engine.Index()
	if err != nil {
		s.respondLoadError(w, r, err)
		return
	}
	respondWithTotal(w, http.StatusOK, idx.Books, len(idx.Books))
}

func (s *Server) handleBook(w http.ResponseWriter, r *http.Request) {
	book, err := s.engine.Book(chi.URLParam(r, "id"))
	if err != nil {
		s.respondLoadError(w, r, err)
		return
	}
	respond(w, http.StatusOK, book)
}

func (s *Server) handleChapter(w http.ResponseWriter, r *http.Request) {
	number, err := strconv.Atoi(chi.URLParam(r, "number"))
	if err != nil || number <= 0 {
		respondError(w, http.StatusBadRequest, codeInvalidInput, "chapter number must be a positive integer")
		return
	}

	book, err := s.engine.Book(chi.URLParam(r, "id"))
	if err != nil {
		s.respondLoadError(w, r, err)
		return
	}
	ch, ok := book.Chapter(number)
	if !ok {
		respondError(w, http.StatusNotFound, codeNotFound, "chapter not found: "+book.ID+" "+strconv.Itoa(number))
		return
	}

	respondWithTotal(w, http.StatusOK, ChapterResponse{
		BookID:    book.ID,
		BookName:  book.Name,
		Number:    ch.Number,
		File:      ch.File,
		Verses:    ch.Verses,
		Testament: string(book.Testament),
	}, len(ch.Verses))
}

func (s *Server) handleRefs(w http.ResponseWriter, r *http.Request) {
	verse, err := strconv.Atoi(chi.URLParam(r, "verse"))
	if err != nil || verse < 0 {
		respondError(w, http.StatusBadRequest, codeInvalidInput, "verse must be a non-negative integer")
		return
	}
	if s.refLoader == nil {
		respondError(w, http.StatusServiceUnavailable, codeUnavailable, "cross-references are not available")
		return
	}

	refs, err := s.references()
	if err != nil {
		s.respondLoadError(w, r, err)
		return
	}

	file := chi.URLParam(r, "file")
	found := refs.Lookup(file, verse)
	if found == nil {
		found = []corpus.Reference{}
	}
	respondWithTotal(w, http.StatusOK, RefsResponse{
		File:       corpus.NormalizeReferenceFile(file),
		Verse:      verse,
		References: found,
	}, len(found))
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	offset, limit, ok := pageParams(w, r)
	if !ok {
		return
	}

	results, err := s.engine.Search(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		if r.Context().Err() != nil {
			return
		}
		s.respondLoadError(w, r, err)
		return
	}

	page := search.Paginate(results, offset, limit)
	respondWithTotal(w, http.StatusOK, page, page.Total)
}

func (s *Server) handleRanked(w http.ResponseWriter, r *http.Request) {
	offset, limit, ok := pageParams(w, r)
	if !ok {
		return
	}
	if limit == 0 {
		limit = search.DefaultLimit
	}
	if s.index == nil {
		respondError(w, http.StatusServiceUnavailable, codeUnavailable, "ranked search index is not available")
		return
	}

	terms := s.processor.QueryTerms(r.URL.Query().Get("q"))
	resp := RankedResponse{Terms: terms, Offset: offset, Limit: limit, Hits: []RankedHit{}}
	if terms == nil {
		resp.Terms = []string{}
	}

	hits, total, err := s.index.Search(terms, limit, offset)
	if err != nil {
		logging.ErrorContext(r.Context(), "ranked search failed", "error", err)
		respondError(w, http.StatusInternalServerError, codeInternal, "ranked search failed")
		return
	}
	for _, h := range hits {
		resp.Hits = append(resp.Hits, rankedHit(h))
	}
	respondWithTotal(w, http.StatusOK, resp, total)
}

func rankedHit(h storage.Hit) RankedHit {
	return RankedHit{
		BookID:        h.BookID,
		BookTitle:     h.BookName,
		ChapterNumber: h.Chapter,
		VerseNumber:   h.Verse,
		Text:          h.Text,
		Score:         h.Score,
	}
}

// pageParams reads offset and limit. A missing value is zero.
func pageParams(w http.ResponseWriter, r *http.Request) (offset, limit int, ok bool) {
	q := r.URL.Query()
	for _, p := range []struct {
		name string
		dst  *int
	}{{"offset", &offset}, {"limit", &limit}} {
		raw := strings.TrimSpace(q.Get(p.name))
		if raw == "" {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			respondError(w, http.StatusBadRequest, codeInvalidInput, p.name+" must be a non-negative integer")
			return 0, 0, false
		}
		*p.dst = n
	}
	return offset, limit, true
}

func (s *Server) respondLoadError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case berrors.IsNotFound(err):
		respondError(w, http.StatusNotFound, codeNotFound, err.Error())
	case berrors.IsInvalidInput(err):
		respondError(w, http.StatusBadRequest, codeInvalidInput, err.Error())
	default:
		logging.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "error", err)
		respondError(w, http.StatusInternalServerError, codeInternal, "failed to load data")
	}
}
