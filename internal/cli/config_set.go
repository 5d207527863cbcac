package cli

import (
	"fmt"

	"github.com/Flyrell/shopsum/internal/config"
	"github.com/spf13/cobra"
)

var configSetCmd = LeafCommand{
	Use:   "set KEY VALUE",
	Short: "Change a configuration value",
	Example: "  shopsum config set api_version 2024-04\n" +
		"  shopsum config set default_store OGTHREAD\n" +
		"  shopsum config set timeout 45s",
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runConfigSet(cmd, defaultEnvironment(), args[0], args[1])
	},
}.Build()

func runConfigSet(cmd *cobra.Command, env environment, key, value string) error {
	homeDir, err := env.homeDir()
	if err != nil {
		return err
	}
	cfg, err := config.ReadConfig(homeDir)
	if err != nil {
		return err
	}
	if err := cfg.Set(key, value); err != nil {
		return err
	}
	if err := config.WriteConfig(homeDir, cfg); err != nil {
		return err
	}

	v, _ := cfg.Get(key)
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\n", Text(fmt.Sprintf("%s set to '%s'", Primary(key), v)))
	return nil
}
