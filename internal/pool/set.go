package pool

import (
	"sync"

	"github.com/arcanaland/bingomancer/internal/card"
)

// Set is a concurrency-safe set of card fingerprints. It only grows.
type Set struct {
	mu   sync.Mutex
	seen map[card.Fingerprint]struct{}
}

// NewSet returns an empty Set.
func NewSet() *Set {
	return &Set{seen: make(map[card.Fingerprint]struct{})}
}

// Add inserts fp and reports whether it was absent. The check and the
// insert happen under one lock, so of several callers adding the same
// fingerprint exactly one gets true.
func (s *Set) Add(fp card.Fingerprint) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.seen[fp]; ok {
		return false
	}
	s.seen[fp] = struct{}{}
	return true
}

// Has reports whether fp is in the set.
func (s *Set) Has(fp card.Fingerprint) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.seen[fp]
	return ok
}

// Len returns the number of fingerprints in the set.
func (s *Set) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.seen)
}
