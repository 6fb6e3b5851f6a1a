package cmd

import (
	"github.com/spf13/cobra"
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "bingomancer",
	Short: "Tool for generating and checking 90-ball bingo tickets",
	Long: `Bingomancer is a command-line tool for generating, validating and viewing UK-style
90-ball bingo tickets for live events. Every ticket has three rows of five numbers,
column-ranged from 1-10 through 81-90, and no ticket repeats within a sheet.`,
	SilenceUsage: true,
}

func init() {
	RootCmd.AddCommand(validateCmd)
}

