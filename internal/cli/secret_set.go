package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var secretSetCmd = LeafCommand{
	Use:   "set NAME [VALUE]",
	Short: "Store a secret in ~/.shopsum/secrets.json",
	Long: "Store a secret such as SHOPIFY_OGTHREAD_ACCESS_TOKEN. When VALUE is\n" +
		"omitted it is read with a masked prompt, or from stdin when piped.",
	Example: "  shopsum secret set SHOPIFY_STORE_URL my-shop.myshopify.com\n" +
		"  shopsum secret set SHOPIFY_ACCESS_TOKEN\n" +
		"  echo $TOKEN | shopsum secret set SHOPIFY_OGTHREAD_ACCESS_TOKEN",
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		value, hasValue := "", false
		if len(args) == 2 {
			value, hasValue = args[1], true
		}
		return runSecretSet(cmd, defaultEnvironment(), promptKitFor(cmd), args[0], value, hasValue)
	},
}.Build()

func runSecretSet(cmd *cobra.Command, env environment, kit PromptKit, rawName, value string, hasValue bool) error {
	name, err := secretName(rawName)
	if err != nil {
		return err
	}

	ws, err := env.load()
	if err != nil {
		return err
	}

	if !hasValue {
		value, err = kit.Secret(fmt.Sprintf("Value for %s", name))
		if err != nil {
			return err
		}
	}
	value = strings.TrimSpace(value)
	if value == "" {
		return errors.New("secret value cannot be empty")
	}

	if err := ws.files.Set(name, value); err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	_, _ = fmt.Fprintf(w, "%s\n", Text(fmt.Sprintf("secret '%s' saved to %s", Primary(name), ws.files.Path)))
	if _, ok := env.lookupEnv(name); ok {
		_, _ = fmt.Fprintf(w, "%s\n", Warning(fmt.Sprintf("%s is also set in the environment, which takes precedence", name)))
	} else if _, ok := ws.dotenv[name]; ok {
		_, _ = fmt.Fprintf(w, "%s\n", Warning(fmt.Sprintf("%s is also set in .env, which takes precedence", name)))
	}
	return nil
}
