// Package builder lays out single bingo tickets.
//
// A ticket is built in three steps: choose how many numbers each column
// carries, fill each column with sorted numbers from its range, then move
// numbers between rows until every row holds exactly five. Candidates that
// cannot be balanced are thrown away and the whole layout is retried.
//
// # Determinism
//
// A Builder draws every random choice from the *rand.Rand it was created
// with. Two builders created from sources with the same seed produce the
// same sequence of cards.
//
// # Concurrency
//
// A Builder is not safe for concurrent use. Give each goroutine its own.
package builder

import (
	"errors"
	"fmt"
	"math/rand"
	"slices"

	"github.com/arcanaland/bingomancer/internal/card"
)

// ErrGenerationExhausted is returned when no valid card could be laid out
// within the attempt limit.
var ErrGenerationExhausted = errors.New("card generation exhausted")

const (
	DefaultAttempts = 1000
	DefaultPasses   = 100
)

// Limits bounds the work done for a single card.
type Limits struct {
	Attempts int // Full candidates tried before giving up
	Passes   int // Row balancing passes per candidate
}

// DefaultLimits returns the limits used by New.
func DefaultLimits() Limits {
	return Limits{Attempts: DefaultAttempts, Passes: DefaultPasses}
}

// Builder produces structurally valid cards.
type Builder struct {
	rng    *rand.Rand
	limits Limits
}

// New creates a Builder drawing from rng with the default limits.
func New(rng *rand.Rand) *Builder {
	return NewWithLimits(rng, DefaultLimits())
}

// NewSeeded creates a Builder with its own source seeded by seed.
func NewSeeded(seed int64) *Builder {
	return New(rand.New(rand.NewSource(seed)))
}

// NewWithLimits creates a Builder drawing from rng. Zero or negative limits
// fall back to the defaults.
func NewWithLimits(rng *rand.Rand, limits Limits) *Builder {
	if limits.Attempts <= 0 {
		limits.Attempts = DefaultAttempts
	}
	if limits.Passes <= 0 {
		limits.Passes = DefaultPasses
	}
	return &Builder{rng: rng, limits: limits}
}

// Limits returns the limits in effect.
func (b *Builder) Limits() Limits {
	return b.limits
}

// Build lays out one card.
func (b *Builder) Build() (card.Card, error) {
	for attempt := 0; attempt < b.limits.Attempts; attempt++ {
		var c card.Card
		counts := b.Distribution()
		b.fill(&c, counts)
		if b.balance(&c) {
			return c, nil
		}
	}
	return card.Card{}, fmt.Errorf("%w: no valid card after %d attempts", ErrGenerationExhausted, b.limits.Attempts)
}

// Distribution decides how many numbers each column carries. Every column
// starts with one and the six remaining numbers are handed out one at a
// time. When the drawn column is already full, the number goes to a column
// drawn from those that still have room.
func (b *Builder) Distribution() [card.Columns]int {
	var counts [card.Columns]int
	for col := range counts {
		counts[col] = card.MinPerCol
	}

	for range card.Numbers - card.Columns*card.MinPerCol {
		col := b.rng.Intn(card.Columns)
		if counts[col] < card.MaxPerCol {
			counts[col]++
			continue
		}

		open := make([]int, 0, card.Columns)
		for i, n := range counts {
			if n < card.MaxPerCol {
				open = append(open, i)
			}
		}
		if len(open) > 0 {
			counts[open[b.rng.Intn(len(open))]]++
		}
	}

	return counts
}

// fill places counts[col] sorted numbers from each column's range on rows
// chosen at random, smallest number on the topmost chosen row.
func (b *Builder) fill(c *card.Card, counts [card.Columns]int) {
	for col, k := range counts {
		if k == 0 {
			continue
		}
		lo, hi := card.ColumnRange(col)

		numbers := b.rng.Perm(hi - lo + 1)[:k]
		slices.Sort(numbers)

		rows := b.rng.Perm(card.Rows)[:k]
		slices.Sort(rows)

		for i, r := range rows {
			c[r][col] = lo + numbers[i]
		}
	}
}

// balance moves single numbers from rows holding more than five to rows
// holding fewer, within the same column, until every row holds five.
// It reports whether the card ended up balanced.
func (b *Builder) balance(c *card.Card) bool {
	for pass := 0; pass < b.limits.Passes; pass++ {
		var excess, deficit []int
		for r := 0; r < card.Rows; r++ {
			switch n := c.RowCount(r); {
			case n > card.PerRow:
				excess = append(excess, r)
			case n < card.PerRow:
				deficit = append(deficit, r)
			}
		}
		if len(excess) == 0 && len(deficit) == 0 {
			return true
		}
		if len(excess) == 0 || len(deficit) == 0 {
			break
		}

		from := excess[b.rng.Intn(len(excess))]
		to := deficit[b.rng.Intn(len(deficit))]

		// A pair with no movable column wastes the pass.
		for col := 0; col < card.Columns; col++ {
			if c[from][col] != card.Blank && c[to][col] == card.Blank {
				c[to][col] = c[from][col]
				c[from][col] = card.Blank
				break
			}
		}
	}

	for r := 0; r < card.Rows; r++ {
		if c.RowCount(r) != card.PerRow {
			return false
		}
	}
	return true
}
