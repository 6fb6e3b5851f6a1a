package builder

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/arcanaland/bingomancer/internal/card"
)

// constSource always yields the same value, which makes every Intn call
// return zero and pins the layout down completely.
type constSource struct{}

func (constSource) Int63() int64 { return 0 }
func (constSource) Seed(int64)   {}

func TestBuild_ValidCards(t *testing.T) {
	b := NewSeeded(12345)
	for i := 0; i < 2000; i++ {
		c, err := b.Build()
		if err != nil {
			t.Fatalf("Build() card %d: %v", i, err)
		}
		if err := c.Validate(); err != nil {
			t.Fatalf("card %d invalid: %v\n%v", i, err, c)
		}
		if got := len(c.Values()); got != card.Numbers {
			t.Fatalf("card %d has %d numbers, want %d", i, got, card.Numbers)
		}
		for col := 0; col < card.Columns; col++ {
			n := c.ColumnCount(col)
			if n < card.MinPerCol || n > card.MaxPerCol {
				t.Fatalf("card %d column %d has %d numbers", i, col, n)
			}
		}
	}
}

func TestDistribution(t *testing.T) {
	b := NewSeeded(42)
	for i := 0; i < 5000; i++ {
		counts := b.Distribution()
		sum := 0
		for col, n := range counts {
			if n < card.MinPerCol || n > card.MaxPerCol {
				t.Fatalf("draw %d: column %d count %d out of [1, 3]", i, col, n)
			}
			sum += n
		}
		if sum != card.Numbers {
			t.Fatalf("draw %d: counts %v sum to %d, want %d", i, counts, sum, card.Numbers)
		}
	}
}

func TestDistribution_FullColumnRedraw(t *testing.T) {
	b := New(rand.New(constSource{}))
	got := b.Distribution()
	want := [card.Columns]int{3, 3, 3, 1, 1, 1, 1, 1, 1}
	if got != want {
		t.Errorf("Distribution() = %v, want %v", got, want)
	}
}

func TestBuild_Determinism(t *testing.T) {
	a := NewSeeded(777)
	b := NewSeeded(777)
	for i := 0; i < 50; i++ {
		ca, err := a.Build()
		if err != nil {
			t.Fatalf("Build() a: %v", err)
		}
		cb, err := b.Build()
		if err != nil {
			t.Fatalf("Build() b: %v", err)
		}
		if ca != cb {
			t.Fatalf("card %d differs for equal seeds:\n%v\n%v", i, ca, cb)
		}
	}
}

func TestBuild_DifferentSeeds(t *testing.T) {
	ca, err := NewSeeded(1111).Build()
	if err != nil {
		t.Fatalf("Build(): %v", err)
	}
	cb, err := NewSeeded(2222).Build()
	if err != nil {
		t.Fatalf("Build(): %v", err)
	}
	if ca == cb {
		t.Errorf("seeds 1111 and 2222 produced the same first card: %v", ca)
	}
}

func TestBuild_ConstantSourceConverges(t *testing.T) {
	c, err := New(rand.New(constSource{})).Build()
	if err != nil {
		t.Fatalf("Build(): %v", err)
	}
	if err := c.Validate(); err != nil {
		t.Fatalf("card invalid: %v", err)
	}
	// The fill puts columns 0-2 on every row and the rest on the bottom
	// row; balancing then lifts columns 3-4 to the top and 5-6 to the middle.
	for _, tt := range []struct{ row, col int }{{0, 3}, {0, 4}, {1, 5}, {1, 6}, {2, 7}, {2, 8}} {
		if c[tt.row][tt.col] == card.Blank {
			t.Errorf("expected row %d column %d to be filled:\n%v", tt.row, tt.col, c)
		}
	}
}

func TestBuild_Exhausted(t *testing.T) {
	b := NewWithLimits(rand.New(constSource{}), Limits{Attempts: 1, Passes: 1})
	_, err := b.Build()
	if !errors.Is(err, ErrGenerationExhausted) {
		t.Fatalf("Build() error = %v, want %v", err, ErrGenerationExhausted)
	}
}

func TestNewWithLimits_Defaults(t *testing.T) {
	tests := []struct {
		name   string
		limits Limits
		want   Limits
	}{
		{name: "zero", limits: Limits{}, want: DefaultLimits()},
		{name: "negative", limits: Limits{Attempts: -1, Passes: -5}, want: DefaultLimits()},
		{name: "custom", limits: Limits{Attempts: 5, Passes: 7}, want: Limits{Attempts: 5, Passes: 7}},
		{name: "partial", limits: Limits{Attempts: 5}, want: Limits{Attempts: 5, Passes: DefaultPasses}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewWithLimits(rand.New(rand.NewSource(1)), tt.limits).Limits()
			if got != tt.want {
				t.Errorf("Limits() = %+v, want %+v", got, tt.want)
			}
		})
	}
}
