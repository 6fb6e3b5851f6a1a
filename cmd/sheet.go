package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/arcanaland/bingomancer/internal/config"
	"github.com/arcanaland/bingomancer/internal/sheet"
	"github.com/spf13/cobra"
)

// sheetCmd represents the sheet command group
var sheetCmd = &cobra.Command{
	Use:   "sheet",
	Short: "Manage card sheets in your sheet library",
	Long:  `Commands for managing saved card sheets in your sheet library.`,
}

// sheetListCmd represents the sheet ls command
var sheetListCmd = &cobra.Command{
	Use:   "ls",
	Short: "List sheets in your sheet library",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		libraryPath := config.GetSheetLibraryPath()

		// Check if sheet library exists
		if _, err := os.Stat(libraryPath); os.IsNotExist(err) {
			fmt.Fprintf(out, "Sheet library at %s does not exist.\n", libraryPath)
			fmt.Fprintln(out, "Run 'bingomancer sheet init' to create it.")
			return nil
		}

		libraryPath, err := filepath.EvalSymlinks(libraryPath)
		if err != nil {
			return fmt.Errorf("error resolving symbolic link: %w", err)
		}

		defaultSheet, err := config.GetDefaultSheet()
		if err != nil {
			return fmt.Errorf("error getting default sheet: %w", err)
		}

		entries, err := os.ReadDir(libraryPath)
		if err != nil {
			return fmt.Errorf("error reading sheet library: %w", err)
		}

		found := 0
		for _, entry := range entries {
			if entry.IsDir() || filepath.Ext(entry.Name()) != ".toml" {
				continue
			}

			s, err := sheet.LoadSheet(filepath.Join(libraryPath, entry.Name()))
			if err != nil {
				// Not a valid sheet, skip
				continue
			}
			found++

			label := fmt.Sprintf("%s (%s, round %d, %d cards)", s.Name, s.Title, s.Round, s.Len())
			if s.Name == defaultSheet {
				fmt.Fprintf(out, "* %s [DEFAULT]\n", label)
			} else {
				fmt.Fprintf(out, "  %s\n", label)
			}
		}

		if found == 0 {
			fmt.Fprintln(out, "No sheets found in your sheet library.")
			fmt.Fprintln(out, "Create one with 'bingomancer generate <name>'.")
		}
		return nil
	},
}

// sheetSetDefaultCmd represents the sheet set-default command
var sheetSetDefaultCmd = &cobra.Command{
	Use:   "set-default [sheet_name]",
	Short: "Set the default sheet",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sheetName := strings.TrimSuffix(args[0], ".toml")

		sheetPath, err := config.GetSheetPath(sheetName)
		if err != nil {
			return err
		}

		// Try to load the sheet to make sure it's valid
		if _, err := sheet.LoadSheet(sheetPath); err != nil {
			return fmt.Errorf("not a valid sheet: %w", err)
		}

		if err := config.SetDefaultSheet(sheetName); err != nil {
			return fmt.Errorf("error setting default sheet: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Default sheet set to: %s\n", sheetName)
		return nil
	},
}

// sheetInitCmd represents the sheet init command
var sheetInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize the sheet library",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		libraryPath := config.GetSheetLibraryPath()

		if err := os.MkdirAll(libraryPath, 0755); err != nil {
			return fmt.Errorf("error creating sheet library: %w", err)
		}

		fmt.Fprintln(out, "Sheet library initialized at:", libraryPath)

		// Initialize config
		if _, err := config.LoadConfig(); err != nil {
			return fmt.Errorf("error initializing config: %w", err)
		}

		fmt.Fprintln(out, "Config file initialized at:", config.GetConfigFilePath())
		return nil
	},
}

func init() {
	RootCmd.AddCommand(sheetCmd)
	sheetCmd.AddCommand(sheetListCmd)
	sheetCmd.AddCommand(sheetSetDefaultCmd)
	sheetCmd.AddCommand(sheetInitCmd)
}
