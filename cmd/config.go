package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/conneroisu/ms2cc/internal/config"
)

// configCmd prints the effective configuration after merging flags,
// environment variables, config file, and defaults.
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration as YAML",
	Long: `Print the configuration ms2cc would run with, after merging
command-line flags, MS2CC_-prefixed environment variables, the .ms2cc.yml
config file, and built-in defaults.

The output is valid .ms2cc.yml content, so it can be used to bootstrap a
config file:
  ms2cc config > .ms2cc.yml`,
	RunE: runConfigCommand,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfigCommand(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to render configuration: %w", err)
	}
	fmt.Fprint(cmd.OutOrStdout(), string(data))
	return nil
}
