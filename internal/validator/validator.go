package validator

import (
	"fmt"
	"os"
	"sort"

	"github.com/arcanaland/bingomancer/internal/card"
	"github.com/arcanaland/bingomancer/internal/pool"
	"github.com/arcanaland/bingomancer/internal/sheet"
)

type ValidationResults struct {
	Errors   []string
	Warnings []string
}

type Validator struct {
	SheetPath string
	Results   ValidationResults

	config *sheet.SheetConfig
	cards  []card.Card // Cards with a usable shape, in file order
	index  []int       // Position in the file of each entry in cards
}

func NewValidator(sheetPath string) *Validator {
	return &Validator{
		SheetPath: sheetPath,
		Results:   ValidationResults{},
	}
}

func (v *Validator) Validate() (ValidationResults, error) {
	if err := v.validateSheetToml(); err != nil {
		return v.Results, err
	}

	v.validateCards()
	v.validateUniqueness()

	return v.Results, nil
}

func (v *Validator) validateSheetToml() error {
	if _, err := os.Stat(v.SheetPath); os.IsNotExist(err) {
		return fmt.Errorf("sheet file not found: %s", v.SheetPath)
	}

	config, err := sheet.DecodeFile(v.SheetPath)
	if err != nil {
		return err
	}
	v.config = config

	if config.Sheet.SchemaVersion == "" {
		v.Results.Errors = append(v.Results.Errors, "sheet.schema_version is required")
	} else if config.Sheet.SchemaVersion != sheet.SchemaVersion {
		v.Results.Errors = append(v.Results.Errors,
			fmt.Sprintf("unsupported schema_version: %s (supported: %s)", config.Sheet.SchemaVersion, sheet.SchemaVersion))
	}

	if config.Sheet.Title == "" {
		v.Results.Warnings = append(v.Results.Warnings, "sheet.title is empty")
	}

	if config.Sheet.Seed == 0 {
		v.Results.Warnings = append(v.Results.Warnings, "sheet.seed is not recorded; the sheet cannot be regenerated")
	}

	if config.Sheet.Count != len(config.Cards) {
		v.Results.Errors = append(v.Results.Errors,
			fmt.Sprintf("sheet.count is %d but the file holds %d cards", config.Sheet.Count, len(config.Cards)))
	}

	if len(config.Cards) == 0 {
		v.Results.Warnings = append(v.Results.Warnings, "sheet holds no cards")
	}

	return nil
}

// validateCards checks every card against the ticket rules
func (v *Validator) validateCards() {
	for i, section := range v.config.Cards {
		c, err := card.FromRows(section.Rows)
		if err != nil {
			v.Results.Errors = append(v.Results.Errors, fmt.Sprintf("card %d: %v", i, err))
			continue
		}
		v.cards = append(v.cards, c)
		v.index = append(v.index, i)

		if err := c.Validate(); err != nil {
			v.Results.Errors = append(v.Results.Errors, fmt.Sprintf("card %d: %v", i, err))
		}
	}
}

// validateUniqueness reports every card that repeats an earlier one
func (v *Validator) validateUniqueness() {
	if pool.IsAllUnique(v.cards) {
		return
	}

	dups := pool.Duplicates(v.cards)
	positions := make([]int, 0, len(dups))
	for i := range dups {
		positions = append(positions, i)
	}
	sort.Ints(positions)

	for _, i := range positions {
		v.Results.Errors = append(v.Results.Errors,
			fmt.Sprintf("card %d duplicates card %d", v.index[i], v.index[dups[i]]))
	}
}
