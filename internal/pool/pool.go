// Package pool hands out bingo cards that are pairwise distinct within a
// session.
//
// A Pool wraps a card builder and keeps the fingerprint of every card it has
// accepted. Candidates whose fingerprint was already seen are discarded and
// rebuilt. The seen set lives as long as the Pool; nothing is persisted.
//
// Example:
//
//	p := pool.New(builder.NewSeeded(12345))
//	cards, err := p.NextBatch(1000)
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Println(pool.IsAllUnique(cards)) // true
package pool

import (
	"errors"
	"fmt"
	"sync"

	"github.com/arcanaland/bingomancer/internal/card"
)

// ErrUniquenessExhausted is returned when no unseen card turned up within
// the retry limit. It means the session is close to running out of
// distinct cards, or the builder keeps repeating itself.
var ErrUniquenessExhausted = errors.New("card uniqueness exhausted")

// DefaultRetries is the number of candidates tried per card before giving up.
const DefaultRetries = 10000

// bytesPerFingerprint approximates the map cost of one seen fingerprint.
const bytesPerFingerprint = 16

// Builder produces structurally valid cards.
type Builder interface {
	Build() (card.Card, error)
}

// Progress is called after each accepted card with the number of cards
// done so far and the number requested.
type Progress func(done, total int)

// Option configures a Pool.
type Option func(*Pool)

// WithRetries sets the per-card retry limit. Non-positive values are ignored.
func WithRetries(n int) Option {
	return func(p *Pool) {
		if n > 0 {
			p.retries = n
		}
	}
}

// WithProgress installs a progress callback used by NextBatch and Fill.
func WithProgress(fn Progress) Option {
	return func(p *Pool) {
		p.progress = fn
	}
}

// Pool yields cards that have not been seen before in this session.
// It is safe for concurrent use.
type Pool struct {
	mu       sync.Mutex
	builder  Builder
	seen     *Set
	cards    []card.Card
	retries  int
	rejected int
	progress Progress
}

// Stats summarises a session.
type Stats struct {
	Accepted    int // Cards handed out
	Rejected    int // Valid candidates discarded as duplicates
	MemoryBytes int // Approximate size of the seen set
}

// New creates an empty Pool backed by b.
func New(b Builder, opts ...Option) *Pool {
	p := &Pool{
		builder: b,
		seen:    NewSet(),
		retries: DefaultRetries,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Next returns a card whose fingerprint has not been seen by this Pool and
// records it. Builder errors are returned unchanged.
func (p *Pool) Next() (card.Card, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.next()
}

func (p *Pool) next() (card.Card, error) {
	for attempt := 0; attempt < p.retries; attempt++ {
		c, err := p.builder.Build()
		if err != nil {
			return card.Card{}, err
		}
		if p.seen.Add(c.Fingerprint()) {
			p.cards = append(p.cards, c)
			return c, nil
		}
		p.rejected++
	}
	return card.Card{}, fmt.Errorf("%w: no unseen card after %d attempts", ErrUniquenessExhausted, p.retries)
}

// NextBatch returns n unseen cards. A zero n yields an empty slice. On error
// the cards already accepted stay in the session but are not returned.
func (p *Pool) NextBatch(n int) ([]card.Card, error) {
	if n < 0 {
		return nil, fmt.Errorf("invalid batch size %d", n)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	cards := make([]card.Card, 0, n)
	for i := 0; i < n; i++ {
		c, err := p.next()
		if err != nil {
			return nil, fmt.Errorf("card %d of %d: %w", i+1, n, err)
		}
		cards = append(cards, c)
		if p.progress != nil {
			p.progress(i+1, n)
		}
	}
	return cards, nil
}

// Len returns the number of cards accepted so far.
func (p *Pool) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.cards)
}

// Cards returns a copy of every accepted card in acceptance order.
func (p *Pool) Cards() []card.Card {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]card.Card(nil), p.cards...)
}

// Stats returns counters for the session.
func (p *Pool) Stats() Stats {
	p.mu.Lock()
	defer p.mu.Unlock()
	n := p.seen.Len()
	return Stats{
		Accepted:    len(p.cards),
		Rejected:    p.rejected,
		MemoryBytes: n * bytesPerFingerprint,
	}
}

// IsAllUnique reports whether the cards are pairwise distinct. It works from
// the cards alone and ignores any Pool state.
func IsAllUnique(cards []card.Card) bool {
	seen := make(map[card.Fingerprint]struct{}, len(cards))
	for i := range cards {
		fp := cards[i].Fingerprint()
		if _, ok := seen[fp]; ok {
			return false
		}
		seen[fp] = struct{}{}
	}
	return true
}

// Duplicates maps the index of every repeated card to the index of its
// first occurrence.
func Duplicates(cards []card.Card) map[int]int {
	first := make(map[card.Fingerprint]int, len(cards))
	dups := make(map[int]int)
	for i := range cards {
		fp := cards[i].Fingerprint()
		if j, ok := first[fp]; ok {
			dups[i] = j
			continue
		}
		first[fp] = i
	}
	return dups
}
