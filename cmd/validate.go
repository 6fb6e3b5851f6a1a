package cmd

import (
	"fmt"

	"github.com/arcanaland/bingomancer/internal/config"
	"github.com/arcanaland/bingomancer/internal/validator"
	colorize "github.com/fatih/color"
	"github.com/spf13/cobra"
)

// validateCmd represents the validate command
var validateCmd = &cobra.Command{
	Use:   "validate [sheet]",
	Short: "Validate a sheet of bingo cards",
	Long: `Validate checks that every card on a sheet follows the 90-ball ticket rules
and that no card appears twice. The sheet can be a name from your sheet library
or a path to a sheet file.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sheetPath, err := config.GetSheetPath(args[0])
		if err != nil {
			return err
		}

		// Create validator and run validation
		v := validator.NewValidator(sheetPath)
		results, err := v.Validate()
		if err != nil {
			return fmt.Errorf("validation error: %w", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "Validation Results:")
		fmt.Fprintln(out, "-------------------")

		if len(results.Errors) == 0 {
			fmt.Fprintln(out, colorize.GreenString("✅ Sheet '%s' is valid.", sheetPath))
		} else {
			fmt.Fprintln(out, colorize.RedString("❌ Sheet '%s' has %d validation errors:", sheetPath, len(results.Errors)))
			for i, err := range results.Errors {
				fmt.Fprintf(out, "%d. %s\n", i+1, err)
			}
			return fmt.Errorf("validation failed")
		}

		if len(results.Warnings) > 0 {
			fmt.Fprintln(out, colorize.YellowString("\nWarnings:"))
			for i, warn := range results.Warnings {
				fmt.Fprintf(out, "%d. %s\n", i+1, warn)
			}
		}

		return nil
	},
}
