// Package api serves the corpus and the search engine over HTTP and websockets.
package api

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/javijec/new-biblia/internal/corpus"
	"github.com/javijec/new-biblia/internal/logging"
	"github.com/javijec/new-biblia/internal/storage"
	"github.com/javijec/new-biblia/internal/textprocessor"
	"github.com/javijec/new-biblia/searcher/internal/search"
)

// ReferenceLoader reads the cross-reference map. *artifacts.Store satisfies it.
type ReferenceLoader interface {
	LoadReferences() (corpus.ReferenceMap, error)
}

type Server struct {
	engine    *search.Engine
	refLoader ReferenceLoader
	index     *storage.IndexDB
	processor *textprocessor.TextProcessor
	router    chi.Router

	mu   sync.Mutex
	refs corpus.ReferenceMap
}

// NewServer wires the routes. refs and index may be nil; the endpoints that
// need them then answer 503.
func NewServer(engine *search.Engine, refs ReferenceLoader, index *storage.IndexDB) *Server {
	s := &Server{
		engine:    engine,
		refLoader: refs,
		index:     index,
		processor: textprocessor.NewTextProcessor(),
	}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(logging.RequestIDMiddleware)
	r.Use(logging.LoggingMiddleware)
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		respondError(w, http.StatusNotFound, codeNotFound, "no such endpoint")
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", s.handleHealth)
		r.Get("/books", s.handleBooks)
		r.Get("/books/{id}", s.handleBook)
		r.Get("/books/{id}/chapters/{number}", s.handleChapter)
		r.Get("/refs/{file}/{verse}", s.handleRefs)
		r.Get("/search", s.handleSearch)
		r.Get("/search/ranked", s.handleRanked)
		r.Get("/search/ws", s.handleSearchSocket)
	})
	return r
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe serves on addr until ctx is done, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logging.Info("server listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	logging.Info("server stopped")
	return nil
}

// references loads the reference map once. Failures are retried on the next call.
func (s *Server) references() (corpus.ReferenceMap, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.refs != nil {
		return s.refs, nil
	}
	refs, err := s.refLoader.LoadReferences()
	if err != nil {
		return nil, err
	}
	s.refs = refs
	return refs, nil
}
