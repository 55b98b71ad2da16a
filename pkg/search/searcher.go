package search

import (
	"context"
	"sync"
	"time"

	"github.com/webdevcom01-cell/aifreshdaily-web/pkg/domain"
	"github.com/webdevcom01-cell/aifreshdaily-web/pkg/news"
)

const (
	// DefaultDebounce is how long input must pause before a search runs.
	DefaultDebounce = 300 * time.Millisecond

	// corpusSize bounds the session-scoped article cache the fuzzy path
	// searches against.
	corpusSize = 100
)

// Result is one completed search delivery.
type Result struct {
	Query    string
	Articles []domain.Article
}

// Searcher drives the search overlay: keystrokes go in via Search, at most
// one Result per settled query comes out through the callback.
//
// Last keystroke wins: a new keystroke during the debounce window restarts
// the timer, and a keystroke during an in-flight search supersedes its
// delivery. Superseded results are discarded outright, never merged —
// enforced with a sequence number rather than assuming network ordering.
//
// The article corpus is fetched once per Searcher (one client session) and
// reused across overlay openings; accepted staleness for snappy reopens.
type Searcher struct {
	svc      *news.Service
	Debounce time.Duration

	corpusOnce sync.Once
	corpus     []domain.Article

	mu    sync.Mutex
	seq   uint64
	timer *time.Timer
}

// NewSearcher builds a Searcher over the news service.
func NewSearcher(svc *news.Service) *Searcher {
	return &Searcher{svc: svc, Debounce: DefaultDebounce}
}

// ensureCorpus populates the session cache on first use. A failed fetch
// leaves an empty corpus; the store-side fallback still runs per query.
func (s *Searcher) ensureCorpus(ctx context.Context) []domain.Article {
	s.corpusOnce.Do(func() {
		s.corpus = s.svc.ListRecent(ctx, corpusSize)
	})
	return s.corpus
}

// Search registers a keystroke. After the debounce window passes with no
// newer keystroke, the query runs and deliver is called exactly once with
// its result. Empty queries cancel any pending search and deliver an empty
// result immediately (the overlay's idle state).
func (s *Searcher) Search(ctx context.Context, query string, deliver func(Result)) {
	s.mu.Lock()
	s.seq++
	mine := s.seq
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}

	if isBlank(query) {
		s.mu.Unlock()
		deliver(Result{Query: query})
		return
	}

	s.timer = time.AfterFunc(s.Debounce, func() {
		s.run(ctx, mine, query, deliver)
	})
	s.mu.Unlock()
}

func isBlank(q string) bool {
	for _, r := range q {
		if r != ' ' && r != '\t' && r != '\n' {
			return false
		}
	}
	return true
}

// run executes a settled query and delivers unless superseded.
func (s *Searcher) run(ctx context.Context, mine uint64, query string, deliver func(Result)) {
	if s.stale(mine) {
		return
	}

	articles := Fuzzy(query, s.ensureCorpus(ctx))
	if len(articles) == 0 {
		// Store-side search catches articles outside the cached window.
		// Errors already degrade to empty inside the service; here an
		// error is just a no-results state.
		articles = s.svc.SearchHeadlines(ctx, query, MaxResults)
	}

	// Re-check after the slow part: a newer keystroke may have arrived
	// while the store call was in flight.
	if s.stale(mine) {
		return
	}
	deliver(Result{Query: query, Articles: articles})
}

func (s *Searcher) stale(mine uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.seq != mine
}

// Cancel drops any pending debounce timer, used when the overlay closes.
// An in-flight search is not aborted, but its result will be discarded on
// the next Search call's sequence bump.
func (s *Searcher) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}
