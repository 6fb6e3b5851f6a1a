package cmd

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/term"

	"github.com/arcanaland/bingomancer/internal/card"
	"github.com/arcanaland/bingomancer/internal/config"
	"github.com/arcanaland/bingomancer/internal/sheet"

	colorize "github.com/fatih/color"
	"github.com/spf13/cobra"
)

const (
	cellWidth = 4
	cardWidth = card.Columns*cellWidth + card.Columns + 1
	cardGap   = 3
)

var showCmd = &cobra.Command{
	Use:   "show [position]",
	Short: "Display cards from a sheet in the terminal",
	Long: `Show draws bingo cards from a sheet as terminal grids, one colour per column.
Cards are numbered from 1 in sheet order.

You can specify a sheet using the --sheet flag, which will look for the sheet
in your sheet library (XDG_DATA_HOME/bingomancer/sheets) or as a path.
If no sheet is specified, the default sheet from your config will be used.

Examples:
  bingomancer show 1
  bingomancer show --sheet round-9 42
  bingomancer show --sheet ./cards.toml --all`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sheetFlag, _ := cmd.Flags().GetString("sheet")
		all, _ := cmd.Flags().GetBool("all")
		noColor, _ := cmd.Flags().GetBool("no-color")

		if len(args) == 0 && !all {
			return fmt.Errorf("specify a card position or --all")
		}
		if noColor {
			colorize.NoColor = true
		}

		sheetName := sheetFlag
		if sheetName == "" {
			defaultSheet, err := config.GetDefaultSheet()
			if err != nil {
				return fmt.Errorf("error getting default sheet: %w", err)
			}
			if defaultSheet == "" {
				return fmt.Errorf("no sheet given and no default sheet set (see 'bingomancer sheet set-default')")
			}
			sheetName = defaultSheet
		}

		sheetPath, err := config.GetSheetPath(sheetName)
		if err != nil {
			return err
		}

		s, err := sheet.LoadSheet(sheetPath)
		if err != nil {
			return fmt.Errorf("error loading sheet: %w", err)
		}

		hues := !colorize.NoColor
		out := cmd.OutOrStdout()

		if len(args) == 1 {
			position, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid card position %q", args[0])
			}
			c, err := s.GetCard(position - 1)
			if err != nil {
				return err
			}
			writeLines(out, renderCard(c, cardLabel(s, position), hues))
			return nil
		}

		blocks := make([][]string, 0, s.Len())
		for i, c := range s.Cards {
			blocks = append(blocks, renderCard(c, cardLabel(s, i+1), hues))
		}
		writeLines(out, layoutCards(blocks, terminalWidth()))
		return nil
	},
}

func init() {
	RootCmd.AddCommand(showCmd)

	showCmd.Flags().StringP("sheet", "s", "", "Specify a sheet from your sheet library or a path to a sheet file")
	showCmd.Flags().BoolP("all", "a", false, "Show every card on the sheet")
	showCmd.Flags().Bool("no-color", false, "Disable colour output")
}

// cardLabel builds the header line printed above a card
func cardLabel(s *sheet.Sheet, position int) string {
	label := fmt.Sprintf("%s · round %d · card %d/%d", s.Title, s.Round, position, s.Len())
	if s.Title == "" {
		label = fmt.Sprintf("round %d · card %d/%d", s.Round, position, s.Len())
	}
	return label
}

// terminalWidth returns the width of stdout, or 80 when it is not a terminal
func terminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 80
	}
	return width
}

// renderCard draws a card as a box grid with a label line on top
func renderCard(c card.Card, label string, hues bool) []string {
	lines := make([]string, 0, 2*card.Rows+2)
	lines = append(lines, colorize.CyanString("%s", truncate(label, cardWidth)))
	lines = append(lines, border("┌", "┬", "┐"))

	for r := 0; r < card.Rows; r++ {
		var b strings.Builder
		b.WriteString("│")
		for col := 0; col < card.Columns; col++ {
			cell := strings.Repeat(" ", cellWidth)
			if v := c[r][col]; v != card.Blank {
				cell = fmt.Sprintf(" %2d ", v)
				if hues {
					cell = columnColor(col, cell)
				}
			}
			b.WriteString(cell)
			b.WriteString("│")
		}
		lines = append(lines, b.String())

		if r < card.Rows-1 {
			lines = append(lines, border("├", "┼", "┤"))
		}
	}

	lines = append(lines, border("└", "┴", "┘"))
	return lines
}

// border draws one horizontal rule of the grid
func border(left, mid, right string) string {
	segment := strings.Repeat("─", cellWidth)
	parts := make([]string, card.Columns)
	for i := range parts {
		parts[i] = segment
	}
	return left + strings.Join(parts, mid) + right
}

// columnColor paints text in the hue of its column, spread evenly around
// the colour wheel
func columnColor(col int, text string) string {
	hue := float64(col) * 360 / card.Columns
	r, g, b := colorful.Hsv(hue, 0.55, 0.95).Clamped().RGB255()
	return fmt.Sprintf("\x1b[38;2;%d;%d;%dm%s\x1b[0m", r, g, b, text)
}

// layoutCards places rendered cards side by side, as many as fit in width
func layoutCards(blocks [][]string, width int) []string {
	perRow := max(1, (width+cardGap)/(cardWidth+cardGap))

	var lines []string
	for start := 0; start < len(blocks); start += perRow {
		end := min(start+perRow, len(blocks))
		row := blocks[start:end]

		height := 0
		for _, block := range row {
			height = max(height, len(block))
		}

		for i := 0; i < height; i++ {
			var b strings.Builder
			for j, block := range row {
				if j > 0 {
					b.WriteString(strings.Repeat(" ", cardGap))
				}
				line := ""
				if i < len(block) {
					line = block[i]
				}
				b.WriteString(line)
				if j < len(row)-1 {
					b.WriteString(strings.Repeat(" ", max(0, cardWidth-visibleWidth(line))))
				}
			}
			lines = append(lines, b.String())
		}
		lines = append(lines, "")
	}
	return lines
}

func writeLines(w io.Writer, lines []string) {
	for _, line := range lines {
		fmt.Fprintln(w, line)
	}
}

// truncate cuts s to at most width runes
func truncate(s string, width int) string {
	if utf8.RuneCountInString(s) <= width {
		return s
	}
	return string([]rune(s)[:width])
}

// visibleWidth counts the runes of s that reach the screen
func visibleWidth(s string) int {
	return utf8.RuneCountInString(stripAnsi(s))
}

// stripAnsi removes ANSI escape sequences from a string
func stripAnsi(s string) string {
	var result strings.Builder
	inEscape := false
	for _, c := range s {
		if inEscape {
			if c == 'm' {
				inEscape = false
			}
		} else if c == '\033' {
			inEscape = true
		} else {
			result.WriteRune(c)
		}
	}
	return result.String()
}
