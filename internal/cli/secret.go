package cli

import (
	"fmt"

	"github.com/Flyrell/shopsum/internal/stringutil"
	"github.com/spf13/cobra"
)

var secretCmd = GroupCommand{
	Use:   "secret",
	Short: "Manage stored Shopify credentials",
	Subcommands: []*cobra.Command{
		secretSetCmd,
		secretListCmd,
		secretRemoveCmd,
	},
}.Build()

// secretName normalizes a user-supplied secret name to its stored form.
func secretName(raw string) (string, error) {
	name := stringutil.EnvKey(raw)
	if name == "" {
		return "", fmt.Errorf("invalid secret name %q", raw)
	}
	return name, nil
}

// promptKitFor picks masked interactive prompts on a terminal and line-based
// prompts for piped input.
func promptKitFor(cmd *cobra.Command) PromptKit {
	if isTerminal(cmd.InOrStdin()) {
		return NewPromptKit()
	}
	return NewLinePromptKit(cmd.InOrStdin(), cmd.OutOrStdout())
}
