package card

import (
	"fmt"

	"github.com/cespare/xxhash/v2"
)

const (
	Rows      = 3  // Rows on a ticket
	Columns   = 9  // Columns on a ticket, one per group of ten
	PerRow    = 5  // Numbers on every row
	Numbers   = 15 // Numbers on a ticket (Rows * PerRow)
	MaxNumber = 90 // Highest bingo number
	MaxPerCol = 3  // A column can be filled at most once per row
	MinPerCol = 1  // Every column carries at least one number
	Blank     = 0  // Value of an empty cell
)

// Card represents a UK 90-ball bingo ticket
type Card [Rows][Columns]int

// Fingerprint is a content hash of a card grid
type Fingerprint uint64

// ColumnRange returns the inclusive range of numbers allowed in column c.
// Column 0 holds 1-10, column 1 holds 11-20, ..., column 8 holds 81-90.
func ColumnRange(c int) (lo, hi int) {
	lo = c*10 + 1
	hi = min(c*10+10, MaxNumber)
	return lo, hi
}

// RowCount returns the number of filled cells in row r
func (c *Card) RowCount(r int) int {
	n := 0
	for col := 0; col < Columns; col++ {
		if c[r][col] != Blank {
			n++
		}
	}
	return n
}

// ColumnCount returns the number of filled cells in column col
func (c *Card) ColumnCount(col int) int {
	n := 0
	for r := 0; r < Rows; r++ {
		if c[r][col] != Blank {
			n++
		}
	}
	return n
}

// Values returns the filled cells in row-major order
func (c *Card) Values() []int {
	values := make([]int, 0, Numbers)
	for r := 0; r < Rows; r++ {
		for col := 0; col < Columns; col++ {
			if c[r][col] != Blank {
				values = append(values, c[r][col])
			}
		}
	}
	return values
}

// Fingerprint hashes all 27 cells in row-major order. Two cards share a
// fingerprint only if every cell matches (up to a 64-bit hash collision).
func (c *Card) Fingerprint() Fingerprint {
	var buf [Rows * Columns]byte
	for r := 0; r < Rows; r++ {
		for col := 0; col < Columns; col++ {
			buf[r*Columns+col] = byte(c[r][col])
		}
	}
	return Fingerprint(xxhash.Sum64(buf[:]))
}

// String returns the fingerprint as a fixed-width hex string
func (f Fingerprint) String() string {
	return fmt.Sprintf("%016x", uint64(f))
}

// Validate checks the card against the ticket rules and returns the first
// violation found.
func (c *Card) Validate() error {
	for r := 0; r < Rows; r++ {
		if n := c.RowCount(r); n != PerRow {
			return fmt.Errorf("row %d has %d numbers, expected %d", r, n, PerRow)
		}
	}

	seen := make(map[int]bool, Numbers)
	for col := 0; col < Columns; col++ {
		lo, hi := ColumnRange(col)
		n := 0
		for r := 0; r < Rows; r++ {
			v := c[r][col]
			if v == Blank {
				continue
			}
			n++
			if v < lo || v > hi {
				return fmt.Errorf("column %d has %d outside range [%d, %d]", col, v, lo, hi)
			}
			if seen[v] {
				return fmt.Errorf("number %d appears more than once", v)
			}
			seen[v] = true
		}
		if n < MinPerCol {
			return fmt.Errorf("column %d is empty", col)
		}
	}

	return nil
}

// FromRows builds a card from a slice-of-slices grid, as decoded from a
// sheet file.
func FromRows(rows [][]int) (Card, error) {
	var c Card
	if len(rows) != Rows {
		return c, fmt.Errorf("invalid dimensions: %d rows, expected %d", len(rows), Rows)
	}
	for r, row := range rows {
		if len(row) != Columns {
			return c, fmt.Errorf("invalid dimensions: row %d has %d cells, expected %d", r, len(row), Columns)
		}
		for col, v := range row {
			if v < Blank || v > MaxNumber {
				return c, fmt.Errorf("row %d column %d: value %d out of range", r, col, v)
			}
			c[r][col] = v
		}
	}
	return c, nil
}

// ToRows returns the grid as a slice-of-slices, as written to a sheet file
func (c *Card) ToRows() [][]int {
	rows := make([][]int, Rows)
	for r := 0; r < Rows; r++ {
		rows[r] = append([]int(nil), c[r][:]...)
	}
	return rows
}
