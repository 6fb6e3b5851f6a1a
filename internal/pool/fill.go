package pool

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/arcanaland/bingomancer/internal/card"
)

// Fill generates n unseen cards on several goroutines and appends them to
// the session. Each worker gets its own builder from newBuilder; workers
// share the seen set, whose Add is the only arbiter of uniqueness.
//
// Card order depends on scheduling, so Fill is not reproducible from a
// seed the way NextBatch is. The returned cards are still pairwise distinct
// and distinct from everything accepted earlier. If any worker fails, no
// cards are appended, but fingerprints already claimed stay in the seen set.
func (p *Pool) Fill(ctx context.Context, n, workers int, newBuilder func(worker int) Builder) ([]card.Card, error) {
	if n < 0 {
		return nil, fmt.Errorf("invalid batch size %d", n)
	}
	if workers < 1 {
		workers = 1
	}
	if n == 0 {
		return []card.Card{}, nil
	}

	results := make([]card.Card, n)
	var (
		next       atomic.Int64
		done       atomic.Int64
		rejected   atomic.Int64
		progressMu sync.Mutex
	)

	g, ctx := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		b := newBuilder(w)
		g.Go(func() error {
			for {
				if err := ctx.Err(); err != nil {
					return err
				}
				slot := int(next.Add(1)) - 1
				if slot >= n {
					return nil
				}

				c, dropped, err := p.claim(b)
				rejected.Add(int64(dropped))
				if err != nil {
					return fmt.Errorf("card %d of %d: %w", slot+1, n, err)
				}
				results[slot] = c

				d := int(done.Add(1))
				if p.progress != nil {
					progressMu.Lock()
					p.progress(d, n)
					progressMu.Unlock()
				}
			}
		})
	}
	err := g.Wait()

	p.mu.Lock()
	defer p.mu.Unlock()
	p.rejected += int(rejected.Load())
	if err != nil {
		return nil, err
	}
	p.cards = append(p.cards, results...)
	return results, nil
}

// claim builds candidates with b until one wins a fresh fingerprint.
func (p *Pool) claim(b Builder) (card.Card, int, error) {
	dropped := 0
	for attempt := 0; attempt < p.retries; attempt++ {
		c, err := b.Build()
		if err != nil {
			return card.Card{}, dropped, err
		}
		if p.seen.Add(c.Fingerprint()) {
			return c, dropped, nil
		}
		dropped++
	}
	return card.Card{}, dropped, fmt.Errorf("%w: no unseen card after %d attempts", ErrUniquenessExhausted, p.retries)
}
