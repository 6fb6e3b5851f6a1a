package card

import (
	"strings"
	"testing"
)

func validCard() Card {
	return Card{
		{1, 0, 21, 0, 41, 0, 61, 0, 81},
		{0, 11, 0, 31, 0, 51, 0, 71, 90},
		{10, 20, 0, 40, 0, 60, 70, 0, 0},
	}
}

func TestColumnRange(t *testing.T) {
	tests := []struct {
		col    int
		lo, hi int
	}{
		{0, 1, 10},
		{1, 11, 20},
		{4, 41, 50},
		{8, 81, 90},
	}
	for _, tt := range tests {
		lo, hi := ColumnRange(tt.col)
		if lo != tt.lo || hi != tt.hi {
			t.Errorf("ColumnRange(%d) = [%d, %d], want [%d, %d]", tt.col, lo, hi, tt.lo, tt.hi)
		}
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Card)
		wantErr string
	}{
		{name: "valid", mutate: func(c *Card) {}},
		{
			name:    "row with six numbers",
			mutate:  func(c *Card) { c[0][1] = 12 },
			wantErr: "row 0 has 6 numbers",
		},
		{
			name:    "row with four numbers",
			mutate:  func(c *Card) { c[1][8] = 0 },
			wantErr: "row 1 has 4 numbers",
		},
		{
			name:    "number outside column range",
			mutate:  func(c *Card) { c[0][0] = 11 },
			wantErr: "column 0 has 11 outside range [1, 10]",
		},
		{
			name: "duplicate number",
			mutate: func(c *Card) {
				c[2][2], c[2][6] = 21, 0
			},
			wantErr: "number 21 appears more than once",
		},
		{
			name: "empty column",
			mutate: func(c *Card) {
				c[0][0], c[2][0] = 0, 0
				c[0][7], c[2][2] = 72, 22
			},
			wantErr: "column 0 is empty",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validCard()
			tt.mutate(&c)
			err := c.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate() = %v, want nil", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("Validate() = %v, want error containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestFingerprint(t *testing.T) {
	a := validCard()
	b := validCard()
	if a.Fingerprint() != b.Fingerprint() {
		t.Fatal("equal cards have different fingerprints")
	}

	b[0][0], b[2][0] = 10, 1
	if a.Fingerprint() == b.Fingerprint() {
		t.Fatal("cards differing in one column share a fingerprint")
	}

	// Same numbers on different rows are different tickets.
	c := validCard()
	c[0][1], c[1][1] = 11, 0
	if a.Fingerprint() == c.Fingerprint() {
		t.Fatal("row placement is not part of the fingerprint")
	}

	if got := len(a.Fingerprint().String()); got != 16 {
		t.Errorf("Fingerprint().String() has length %d, want 16", got)
	}
}

func TestRowsRoundTrip(t *testing.T) {
	c := validCard()
	got, err := FromRows(c.ToRows())
	if err != nil {
		t.Fatalf("FromRows(): %v", err)
	}
	if got != c {
		t.Errorf("FromRows(ToRows()) = %v, want %v", got, c)
	}
}

func TestFromRows_Invalid(t *testing.T) {
	tests := []struct {
		name string
		rows [][]int
	}{
		{name: "no rows", rows: nil},
		{name: "two rows", rows: [][]int{make([]int, 9), make([]int, 9)}},
		{name: "short row", rows: [][]int{make([]int, 9), make([]int, 8), make([]int, 9)}},
		{name: "value too high", rows: [][]int{{91, 0, 0, 0, 0, 0, 0, 0, 0}, make([]int, 9), make([]int, 9)}},
		{name: "negative value", rows: [][]int{{-1, 0, 0, 0, 0, 0, 0, 0, 0}, make([]int, 9), make([]int, 9)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := FromRows(tt.rows); err == nil {
				t.Error("FromRows() = nil error, want error")
			}
		})
	}
}

func TestValues(t *testing.T) {
	c := validCard()
	values := c.Values()
	if len(values) != Numbers {
		t.Fatalf("Values() returned %d numbers, want %d", len(values), Numbers)
	}
	if values[0] != 1 || values[len(values)-1] != 70 {
		t.Errorf("Values() = %v, want row-major order", values)
	}
}
