package cmd

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/arcanaland/bingomancer/internal/builder"
	"github.com/arcanaland/bingomancer/internal/config"
	"github.com/arcanaland/bingomancer/internal/event"
	"github.com/arcanaland/bingomancer/internal/sheet"
	colorize "github.com/fatih/color"
	"github.com/spf13/cobra"
)

var generateCmd = &cobra.Command{
	Use:   "generate [name]",
	Short: "Generate a sheet of unique bingo cards",
	Long: `Generate lays out a batch of unique 90-ball bingo tickets and saves them as a
sheet in your sheet library (XDG_DATA_HOME/bingomancer/sheets), or at --out.

The same seed always produces the same sheet when --workers is 1. A seed of 0
draws a fresh one, which is printed so the sheet can be regenerated.

Examples:
  bingomancer generate round-9 --count 8000 --round 9
  bingomancer generate --seed 12345 --count 50 --out ./cards.toml
  bingomancer generate big-night --count 20000 --workers 8`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig()
		if err != nil {
			return fmt.Errorf("error loading config: %w", err)
		}

		flags := cmd.Flags()
		count, _ := flags.GetInt("count")
		round, _ := flags.GetInt("round")
		outPath, _ := flags.GetString("out")
		force, _ := flags.GetBool("force")
		if flags.Changed("seed") {
			cfg.Seed, _ = flags.GetInt64("seed")
		}
		if flags.Changed("batch-size") {
			cfg.BatchSize, _ = flags.GetInt("batch-size")
		}
		if flags.Changed("workers") {
			cfg.Workers, _ = flags.GetInt("workers")
		}
		if flags.Changed("title") {
			cfg.Title, _ = flags.GetString("title")
		}

		if count < 0 {
			return fmt.Errorf("--count must not be negative")
		}

		if outPath == "" {
			name := fmt.Sprintf("round-%d", round)
			if len(args) == 1 {
				name = args[0]
			}
			outPath = filepath.Join(config.GetSheetLibraryPath(), name+".toml")
		}
		if _, err := os.Stat(outPath); err == nil && !force {
			return fmt.Errorf("sheet already exists: %s (use --force to overwrite)", outPath)
		}

		if cfg.Seed == 0 {
			cfg.Seed, err = newSeed()
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "Using seed: %d\n", cfg.Seed)
		}

		logger := log.New(cmd.ErrOrStderr(), "", log.LstdFlags)
		m := event.NewManager(event.Config{
			Seed:      cfg.Seed,
			BatchSize: cfg.BatchSize,
			Workers:   cfg.Workers,
			Limits:    builder.Limits{Attempts: cfg.Attempts, Passes: cfg.Passes},
			Retries:   cfg.Retries,
		}, logger)

		cards, err := m.Prepare(cmd.Context(), count)
		if err != nil {
			return err
		}
		if !m.ValidateUnique() {
			return fmt.Errorf("generated sheet contains duplicate cards")
		}

		s := sheet.New(cfg.Title, round, cfg.Seed, cards)
		if err := s.Save(outPath); err != nil {
			return err
		}

		stats := m.Stats()
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, colorize.GreenString("✅ Generated %d unique cards", len(cards)))
		fmt.Fprintln(out, colorize.CyanString("Sheet: ")+colorize.HiWhiteString(outPath))
		fmt.Fprintln(out, colorize.CyanString("Seed:  ")+colorize.HiWhiteString("%d", cfg.Seed))
		fmt.Fprintln(out, colorize.CyanString("Stats: ")+
			colorize.HiWhiteString("%d rejected duplicates, ~%.2f MB fingerprints",
				stats.Rejected, float64(stats.MemoryBytes)/(1024*1024)))

		return nil
	},
}

func init() {
	RootCmd.AddCommand(generateCmd)

	generateCmd.Flags().IntP("count", "n", 100, "Number of cards to generate")
	generateCmd.Flags().Int64P("seed", "s", 0, "Random seed (0 draws a fresh seed)")
	generateCmd.Flags().Int("batch-size", event.DefaultBatchSize, "Cards per logged batch")
	generateCmd.Flags().IntP("workers", "w", 1, "Generate on this many goroutines (output order is no longer reproducible)")
	generateCmd.Flags().StringP("title", "t", "", "Event title stored on the sheet")
	generateCmd.Flags().IntP("round", "r", 1, "Round number stored on the sheet")
	generateCmd.Flags().StringP("out", "o", "", "Write the sheet to this path instead of the sheet library")
	generateCmd.Flags().BoolP("force", "f", false, "Overwrite an existing sheet")
}

// newSeed draws a non-zero seed from crypto/rand
func newSeed() (int64, error) {
	var b [8]byte
	for {
		if _, err := crand.Read(b[:]); err != nil {
			return 0, fmt.Errorf("read random seed: %w", err)
		}
		if seed := int64(binary.LittleEndian.Uint64(b[:])); seed != 0 {
			return seed, nil
		}
	}
}
