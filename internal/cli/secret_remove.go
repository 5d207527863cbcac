package cli

import (
	"errors"
	"fmt"

	"github.com/Flyrell/shopsum/internal/secret"
	"github.com/spf13/cobra"
)

var secretRemoveCmd = LeafCommand{
	Use:   "remove NAME",
	Short: "Remove a secret from ~/.shopsum/secrets.json",
	Args:  cobra.ExactArgs(1),
	BoolFlags: []BoolFlag{
		{Name: "yes", Short: "y", Usage: "remove without asking for confirmation"},
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		yes, _ := cmd.Flags().GetBool("yes")
		confirm := promptKitFor(cmd).Confirm
		if yes {
			confirm = AlwaysYes()
		}
		return runSecretRemove(cmd, defaultEnvironment(), confirm, args[0])
	},
}.Build()

func runSecretRemove(cmd *cobra.Command, env environment, confirm ConfirmFunc, rawName string) error {
	name, err := secretName(rawName)
	if err != nil {
		return err
	}

	ws, err := env.load()
	if err != nil {
		return err
	}
	if _, err := ws.files.Get(name); err != nil {
		if errors.Is(err, secret.ErrNotFound) {
			return fmt.Errorf("secret '%s' is not stored in %s", name, ws.files.Path)
		}
		return err
	}

	w := cmd.OutOrStdout()
	ok, err := confirm(fmt.Sprintf("Remove secret '%s'?", name))
	if err != nil {
		return err
	}
	if !ok {
		_, _ = fmt.Fprintf(w, "%s\n", Silent("cancelled"))
		return nil
	}

	if err := ws.files.Remove(name); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(w, "%s\n", Text(fmt.Sprintf("secret '%s' removed", Primary(name))))
	return nil
}
