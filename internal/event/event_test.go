package event

import (
	"bytes"
	"context"
	"errors"
	"log"
	"strings"
	"testing"

	"github.com/arcanaland/bingomancer/internal/card"
)

func TestPrepare(t *testing.T) {
	var buf bytes.Buffer
	m := NewManager(Config{Seed: 12345, BatchSize: 120}, log.New(&buf, "", 0))

	cards, err := m.Prepare(context.Background(), 250)
	if err != nil {
		t.Fatalf("Prepare: %v", err)
	}
	if len(cards) != 250 {
		t.Fatalf("Prepare returned %d cards, want 250", len(cards))
	}
	for i, c := range cards {
		if err := c.Validate(); err != nil {
			t.Fatalf("card %d invalid: %v", i, err)
		}
	}
	if !m.ValidateUnique() {
		t.Error("ValidateUnique() = false")
	}

	out := buf.String()
	for _, want := range []string{
		"Generating 120 unique bingo cards...",
		"Generating 10 unique bingo cards...",
		"Generated 100/120 cards (100 unique so far)",
		"Generated 100/120 cards (220 unique so far)",
		"Batch complete. 130 cards remaining...",
		"Batch complete. 10 cards remaining...",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("log missing %q:\n%s", want, out)
		}
	}

	if got := m.Stats().Accepted; got != 250 {
		t.Errorf("Stats().Accepted = %d, want 250", got)
	}
}

func TestPrepare_Determinism(t *testing.T) {
	a, err := NewManager(Config{Seed: 4, BatchSize: 30}, nil).Prepare(context.Background(), 100)
	if err != nil {
		t.Fatalf("Prepare: %v", err)
	}
	b, err := NewManager(Config{Seed: 4, BatchSize: 70}, nil).Prepare(context.Background(), 100)
	if err != nil {
		t.Fatalf("Prepare: %v", err)
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("card %d differs; batch size should not change the sequence", i)
		}
	}
}

func TestPrepare_Workers(t *testing.T) {
	m := NewManager(Config{Seed: 9, BatchSize: 200, Workers: 4}, nil)
	cards, err := m.Prepare(context.Background(), 600)
	if err != nil {
		t.Fatalf("Prepare: %v", err)
	}
	if len(cards) != 600 {
		t.Fatalf("Prepare returned %d cards, want 600", len(cards))
	}
	if !m.ValidateUnique() {
		t.Error("ValidateUnique() = false")
	}
}

func TestPrepare_RepeatedCallsStayUnique(t *testing.T) {
	m := NewManager(Config{Seed: 77}, nil)
	first, err := m.Prepare(context.Background(), 50)
	if err != nil {
		t.Fatalf("Prepare: %v", err)
	}
	second, err := m.Prepare(context.Background(), 50)
	if err != nil {
		t.Fatalf("Prepare: %v", err)
	}
	seen := make(map[card.Card]bool)
	for _, c := range append(first, second...) {
		if seen[c] {
			t.Fatal("second Prepare repeated a card from the first")
		}
		seen[c] = true
	}
	if len(m.Cards()) != 50 {
		t.Errorf("Cards() has %d cards, want the latest 50", len(m.Cards()))
	}
}

func TestPrepare_Zero(t *testing.T) {
	m := NewManager(Config{Seed: 1}, nil)
	cards, err := m.Prepare(context.Background(), 0)
	if err != nil {
		t.Fatalf("Prepare(0): %v", err)
	}
	if len(cards) != 0 {
		t.Errorf("Prepare(0) returned %d cards", len(cards))
	}
	if _, err := m.Prepare(context.Background(), -1); err == nil {
		t.Error("Prepare(-1) = nil error, want error")
	}
}

func TestPrepare_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	m := NewManager(Config{Seed: 1}, nil)
	if _, err := m.Prepare(ctx, 10); !errors.Is(err, context.Canceled) {
		t.Fatalf("Prepare() error = %v, want %v", err, context.Canceled)
	}
}

func TestCard(t *testing.T) {
	m := NewManager(Config{Seed: 12345}, nil)
	cards, err := m.Prepare(context.Background(), 10)
	if err != nil {
		t.Fatalf("Prepare: %v", err)
	}

	tests := []struct {
		name    string
		index   int
		wantErr bool
	}{
		{name: "first", index: 0},
		{name: "last", index: 9},
		{name: "one past end", index: 10, wantErr: true},
		{name: "far past end", index: 20, wantErr: true},
		{name: "negative", index: -1, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := m.Card(tt.index)
			if tt.wantErr {
				if !errors.Is(err, ErrIndexOutOfRange) {
					t.Fatalf("Card(%d) error = %v, want %v", tt.index, err, ErrIndexOutOfRange)
				}
				return
			}
			if err != nil {
				t.Fatalf("Card(%d): %v", tt.index, err)
			}
			if c != cards[tt.index] {
				t.Errorf("Card(%d) does not match prepared card", tt.index)
			}
		})
	}
}
