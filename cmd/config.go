package cmd

import (
	"fmt"

	"github.com/BurntSushi/toml"
	"github.com/arcanaland/bingomancer/internal/config"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect the bingomancer configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	Long: `Show prints the configuration after environment overrides
(BINGOMANCER_SEED, BINGOMANCER_WORKERS, ...) have been applied.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig()
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "# %s\n", config.GetConfigFilePath())
		return toml.NewEncoder(out).Encode(cfg)
	},
}

func init() {
	RootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
}
