package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"
)

const (
	sourceEnv    = "environment"
	sourceDotenv = ".env"
	sourceFile   = "secrets.json"
)

var secretListCmd = LeafCommand{
	Use:   "list",
	Short: "List known secret names and where they resolve from",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSecretList(cmd, defaultEnvironment())
	},
}.Build()

// runSecretList prints secret names only. Values are never shown.
func runSecretList(cmd *cobra.Command, env environment) error {
	ws, err := env.load()
	if err != nil {
		return err
	}

	sources := map[string][]string{}
	add := func(name, source string) {
		sources[name] = append(sources[name], source)
	}

	prefix := strings.ToUpper(ws.cfg.SecretPrefix) + "_"
	for _, kv := range env.environ() {
		name, value, _ := strings.Cut(kv, "=")
		if value != "" && (strings.HasPrefix(name, prefix) || name == ws.cfg.Server.AuthSecretName) {
			add(name, sourceEnv)
		}
	}
	for _, name := range ws.dotenv.Names() {
		add(name, sourceDotenv)
	}
	names, err := ws.files.Names()
	if err != nil {
		return err
	}
	for _, name := range names {
		add(name, sourceFile)
	}

	w := cmd.OutOrStdout()
	if len(sources) == 0 {
		_, _ = fmt.Fprintf(w, "%s\n", Silent("no secrets found; add one with `shopsum secret set NAME`"))
		return nil
	}

	all := make([]string, 0, len(sources))
	width := 0
	for name := range sources {
		all = append(all, name)
		if len(name) > width {
			width = len(name)
		}
	}
	sort.Strings(all)

	// the first source wins, the rest are shadowed
	for _, name := range all {
		src := sources[name]
		line := padRight(name, width) + "  " + Info(src[0])
		if len(src) > 1 {
			line += " " + Silent("(shadows "+strings.Join(src[1:], ", ")+")")
		}
		_, _ = fmt.Fprintf(w, "%s\n", line)
	}
	return nil
}
