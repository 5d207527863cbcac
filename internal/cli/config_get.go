package cli

import (
	"fmt"

	"github.com/Flyrell/shopsum/internal/config"
	"github.com/spf13/cobra"
)

var configGetCmd = LeafCommand{
	Use:       "get [KEY]",
	Short:     "Print one configuration value, or all of them",
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: config.Keys(),
	RunE: func(cmd *cobra.Command, args []string) error {
		key := ""
		if len(args) > 0 {
			key = args[0]
		}
		return runConfigGet(cmd, defaultEnvironment(), key)
	},
}.Build()

func runConfigGet(cmd *cobra.Command, env environment, key string) error {
	homeDir, err := env.homeDir()
	if err != nil {
		return err
	}
	cfg, err := config.ReadConfig(homeDir)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	if key != "" {
		v, err := cfg.Get(key)
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintln(w, v)
		return nil
	}

	_, _ = fmt.Fprintf(w, "%s\n", Silent(config.Path(homeDir)))
	for _, k := range config.Keys() {
		v, _ := cfg.Get(k)
		_, _ = fmt.Fprintf(w, "  %s = %s\n", Primary(k), Text(v))
	}
	return nil
}
