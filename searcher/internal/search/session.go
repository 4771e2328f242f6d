package search

import (
	"context"
	"errors"
	"sync"
)

// ErrSuperseded is returned by a query that a newer submission or Cancel replaced.
var ErrSuperseded = errors.New("search superseded by a newer query")

// Session runs one query at a time. Starting a new query cancels the previous
// one, and once Prepare or Cancel returns no progress from the replaced query
// is delivered. Progress callbacks must not call back into the Session.
type Session struct {
	engine *Engine

	// deliverMu is held while a progress callback runs and while the
	// generation changes, so a callback never outlives its generation.
	deliverMu sync.Mutex

	mu         sync.Mutex
	generation uint64
	cancel     context.CancelFunc
	state      State
}

func NewSession(engine *Engine) *Session {
	return &Session{engine: engine}
}

// Submit cancels any running query and runs query to completion.
func (s *Session) Submit(ctx context.Context, query string, fn ProgressFunc) ([]Result, error) {
	return s.Prepare(ctx, query, fn)()
}

// Prepare makes query the current one immediately, cancelling its
// predecessor, and returns the function that runs it. Callers that run queries
// on their own goroutines use it so that submission order, not scheduling,
// decides which query wins.
func (s *Session) Prepare(ctx context.Context, query string, fn ProgressFunc) func() ([]Result, error) {
	ctx, cancel := context.WithCancel(ctx)

	s.deliverMu.Lock()
	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
	}
	s.generation++
	gen := s.generation
	s.cancel = cancel
	s.state = StateIdle
	s.mu.Unlock()
	s.deliverMu.Unlock()

	return func() ([]Result, error) {
		defer cancel()
		return s.run(ctx, gen, query, fn)
	}
}

func (s *Session) run(ctx context.Context, gen uint64, query string, fn ProgressFunc) ([]Result, error) {
	track := func(st State) {
		s.mu.Lock()
		if s.generation == gen {
			s.state = st
		}
		s.mu.Unlock()
	}

	var progress ProgressFunc
	if fn != nil {
		progress = func(p Progress) {
			s.deliverMu.Lock()
			defer s.deliverMu.Unlock()
			if s.current(gen) {
				fn(p)
			}
		}
	}

	results, err := s.engine.run(ctx, query, progress, track)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.generation != gen {
		return nil, ErrSuperseded
	}
	s.cancel = nil
	return results, err
}

// Cancel stops the running query, if any. Its Submit returns ErrSuperseded.
func (s *Session) Cancel() {
	s.deliverMu.Lock()
	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
		s.state = StateCancelled
	}
	s.generation++
	s.mu.Unlock()
	s.deliverMu.Unlock()
}

func (s *Session) current(gen uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.generation == gen
}

// State reports the stage of the most recent query.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}
