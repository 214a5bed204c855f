package widget

import (
	"context"
	"sync"
	"time"

	"github.com/jfmanager/web/helpers"
)

// Searcher debounces keystrokes into remote lookups. Every debounce that
// fires starts a new generation and cancels the previous in-flight fetch;
// only the latest generation may publish, so stale responses can never
// overwrite newer results.
type Searcher[T any] struct {
	mu sync.Mutex

	delay  time.Duration
	minLen int

	fetch   func(ctx context.Context, query string) ([]T, error)
	publish func(results []T)

	timer  *time.Timer
	gen    uint64
	cancel context.CancelFunc
}

func NewSearcher[T any](
	delay time.Duration,
	fetch func(ctx context.Context, query string) ([]T, error),
	publish func(results []T),
) *Searcher[T] {
	return &Searcher[T]{
		delay:   delay,
		minLen:  helpers.MinQueryLength,
		fetch:   fetch,
		publish: publish,
	}
}

// Input registers a keystroke. Queries shorter than the minimum length
// only reset the pending timer, like the original fields.
func (s *Searcher[T]) Input(query string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.timer != nil {
		s.timer.Stop()
	}
	if len([]rune(query)) < s.minLen {
		return
	}

	s.timer = time.AfterFunc(s.delay, func() {
		s.run(query)
	})
}

// Flush fires a pending query immediately. Tests and form submission use
// it to avoid waiting out the debounce.
func (s *Searcher[T]) Flush(query string) {
	s.mu.Lock()
	if s.timer != nil {
		s.timer.Stop()
	}
	s.mu.Unlock()

	if len([]rune(query)) < s.minLen {
		return
	}
	s.run(query)
}

func (s *Searcher[T]) run(query string) {
	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
	}
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.gen++
	gen := s.gen
	s.mu.Unlock()

	results, err := s.fetch(ctx, query)
	if err != nil {
		return
	}

	s.mu.Lock()
	latest := gen == s.gen
	s.mu.Unlock()

	if latest {
		s.publish(results)
	}
}

// Stop cancels any pending timer and in-flight fetch.
func (s *Searcher[T]) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.timer != nil {
		s.timer.Stop()
	}
	if s.cancel != nil {
		s.cancel()
	}
}
