// Package event prepares the full run of cards for a bingo event.
//
// A Manager owns one uniqueness pool for the whole event, generates cards in
// batches with progress logging, and keeps the prepared cards for lookup by
// index.
package event

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"math/rand"

	"github.com/arcanaland/bingomancer/internal/builder"
	"github.com/arcanaland/bingomancer/internal/card"
	"github.com/arcanaland/bingomancer/internal/pool"
)

// ErrIndexOutOfRange is returned for card lookups past the prepared set.
var ErrIndexOutOfRange = errors.New("card index out of range")

const (
	DefaultBatchSize = 1000
	progressEvery    = 100
)

// Config holds the generation settings for an event.
type Config struct {
	Seed      int64
	BatchSize int // Cards per batch, logged separately
	Workers   int // Goroutines per batch, 1 keeps output reproducible
	Limits    builder.Limits
	Retries   int // Per-card uniqueness retries
}

// Manager prepares and serves the cards of one event.
type Manager struct {
	cfg     Config
	logger  *log.Logger
	pool    *pool.Pool
	workers []pool.Builder
	cards   []card.Card
	base    int // Cards accepted before the running batch
}

// NewManager creates a Manager. A nil logger discards progress output.
func NewManager(cfg Config, logger *log.Logger) *Manager {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = DefaultBatchSize
	}
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}

	m := &Manager{cfg: cfg, logger: logger}
	b := builder.NewWithLimits(rand.New(rand.NewSource(cfg.Seed)), cfg.Limits)
	m.pool = pool.New(b, pool.WithRetries(cfg.Retries), pool.WithProgress(m.logProgress))
	return m
}

func (m *Manager) logProgress(done, total int) {
	if done%progressEvery == 0 && done < total {
		m.logger.Printf("Generated %d/%d cards (%d unique so far)", done, total, m.base+done)
	}
}

// Prepare generates total unique cards in batches and replaces the prepared
// set with them. Cards stay unique against every earlier Prepare on the same
// Manager.
func (m *Manager) Prepare(ctx context.Context, total int) ([]card.Card, error) {
	if total < 0 {
		return nil, fmt.Errorf("invalid card count %d", total)
	}

	all := make([]card.Card, 0, total)
	for remaining := total; remaining > 0; {
		size := min(m.cfg.BatchSize, remaining)
		m.logger.Printf("Generating %d unique bingo cards...", size)

		batch, err := m.batch(ctx, size)
		if err != nil {
			return nil, fmt.Errorf("prepare %d cards: %w", total, err)
		}
		all = append(all, batch...)
		remaining -= size

		m.logger.Printf("Successfully generated %d unique cards", len(batch))
		if remaining > 0 {
			m.logger.Printf("Batch complete. %d cards remaining...", remaining)
		}
	}

	m.cards = all
	return all, nil
}

func (m *Manager) batch(ctx context.Context, size int) ([]card.Card, error) {
	m.base = m.pool.Len()
	if m.cfg.Workers == 1 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return m.pool.NextBatch(size)
	}
	return m.pool.Fill(ctx, size, m.cfg.Workers, m.workerBuilder)
}

// workerBuilder keeps one builder per worker across batches so that later
// batches continue each worker's sequence instead of replaying it.
func (m *Manager) workerBuilder(w int) pool.Builder {
	for len(m.workers) <= w {
		seed := m.cfg.Seed + int64(len(m.workers)) + 1
		src := rand.New(rand.NewSource(seed))
		m.workers = append(m.workers, builder.NewWithLimits(src, m.cfg.Limits))
	}
	return m.workers[w]
}

// Card returns the prepared card at index.
func (m *Manager) Card(index int) (card.Card, error) {
	if index < 0 || index >= len(m.cards) {
		return card.Card{}, fmt.Errorf("%w: %d (have %d cards)", ErrIndexOutOfRange, index, len(m.cards))
	}
	return m.cards[index], nil
}

// Cards returns the prepared cards.
func (m *Manager) Cards() []card.Card {
	return append([]card.Card(nil), m.cards...)
}

// ValidateUnique rechecks the prepared cards for duplicates without relying
// on the pool.
func (m *Manager) ValidateUnique() bool {
	return pool.IsAllUnique(m.cards)
}

// Stats returns the pool counters for the event.
func (m *Manager) Stats() pool.Stats {
	return m.pool.Stats()
}
