package sheet

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/arcanaland/bingomancer/internal/card"
)

// SchemaVersion is written to every sheet file
const SchemaVersion = "1.0"

// ErrIndexOutOfRange is returned for card lookups past the end of a sheet
var ErrIndexOutOfRange = errors.New("card index out of range")

// Sheet represents a saved set of bingo cards for one round of an event
type Sheet struct {
	Name  string
	Title string
	Round int
	Seed  int64
	Path  string
	Cards []card.Card
}

// New creates an unsaved sheet
func New(title string, round int, seed int64, cards []card.Card) *Sheet {
	return &Sheet{
		Title: title,
		Round: round,
		Seed:  seed,
		Cards: cards,
	}
}

// LoadSheet loads a sheet from a TOML file. Cards are checked for shape
// only; use the validator for the ticket rules.
func LoadSheet(sheetPath string) (*Sheet, error) {
	if _, err := os.Stat(sheetPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("sheet not found: %s", sheetPath)
	}

	config, err := DecodeFile(sheetPath)
	if err != nil {
		return nil, err
	}

	s := &Sheet{
		Name:  nameFromPath(sheetPath),
		Title: config.Sheet.Title,
		Round: config.Sheet.Round,
		Seed:  config.Sheet.Seed,
		Path:  sheetPath,
		Cards: make([]card.Card, 0, len(config.Cards)),
	}

	for i, section := range config.Cards {
		c, err := card.FromRows(section.Rows)
		if err != nil {
			return nil, fmt.Errorf("card %d: %w", i, err)
		}
		s.Cards = append(s.Cards, c)
	}

	return s, nil
}

// DecodeFile decodes a sheet file without interpreting the cards
func DecodeFile(sheetPath string) (*SheetConfig, error) {
	var config SheetConfig
	if _, err := toml.DecodeFile(sheetPath, &config); err != nil {
		return nil, fmt.Errorf("error parsing %s: %w", filepath.Base(sheetPath), err)
	}
	return &config, nil
}

// Save writes the sheet to sheetPath, creating parent directories
func (s *Sheet) Save(sheetPath string) error {
	if err := os.MkdirAll(filepath.Dir(sheetPath), 0755); err != nil {
		return fmt.Errorf("error creating sheet directory: %w", err)
	}

	config := &SheetConfig{
		Sheet: SheetSection{
			Title:         s.Title,
			Round:         s.Round,
			Seed:          s.Seed,
			Count:         len(s.Cards),
			SchemaVersion: SchemaVersion,
		},
		Cards: make([]CardSection, 0, len(s.Cards)),
	}
	for i := range s.Cards {
		config.Cards = append(config.Cards, CardSection{Rows: s.Cards[i].ToRows()})
	}

	file, err := os.Create(sheetPath)
	if err != nil {
		return fmt.Errorf("error creating sheet file: %w", err)
	}
	defer file.Close()

	if err := toml.NewEncoder(file).Encode(config); err != nil {
		return fmt.Errorf("error encoding sheet: %w", err)
	}

	s.Name = nameFromPath(sheetPath)
	s.Path = sheetPath
	return nil
}

// GetCard gets a card by its position on the sheet
func (s *Sheet) GetCard(index int) (card.Card, error) {
	if index < 0 || index >= len(s.Cards) {
		return card.Card{}, fmt.Errorf("%w: %d (have %d cards)", ErrIndexOutOfRange, index, len(s.Cards))
	}
	return s.Cards[index], nil
}

// Len returns the number of cards on the sheet
func (s *Sheet) Len() int {
	return len(s.Cards)
}

// nameFromPath strips the directory and .toml extension
func nameFromPath(sheetPath string) string {
	return strings.TrimSuffix(filepath.Base(sheetPath), ".toml")
}

// Sheet file structures
type SheetConfig struct {
	Sheet SheetSection  `toml:"sheet"`
	Cards []CardSection `toml:"cards"`
}

type SheetSection struct {
	Title         string `toml:"title"`
	Round         int    `toml:"round"`
	Seed          int64  `toml:"seed"`
	Count         int    `toml:"count"`
	SchemaVersion string `toml:"schema_version"`
}

type CardSection struct {
	Rows [][]int `toml:"rows"`
}
