package cli

import (
	"regexp"
	"strings"

	"github.com/spf13/cobra"
)

// helpRule colorizes a help line when its pattern matches. Capture groups
// are rendered as indent, name and description.
type helpRule struct {
	re     *regexp.Regexp
	render func(m []string) string
}

var helpRules = []helpRule{
	// section headers: "Usage:", "Available Commands:", "Flags:"
	{regexp.MustCompile(`^\s*([A-Z][A-Za-z ]+:)\s*$`), func(m []string) string { return Info(m[0]) }},
	// footer: Use "shopsum [command] --help" ...
	{regexp.MustCompile(`^\s*Use ".*$`), func(m []string) string { return Silent(m[0]) }},
	// example invocations
	{regexp.MustCompile(`^(\s+)((?:shopsum|source|echo) .*)$`), func(m []string) string { return m[1] + Silent(m[2]) }},
	// flags: "  -y, --yes   description"
	{regexp.MustCompile(`^( +)(-.+?)( {2,}.*)$`), func(m []string) string { return m[1] + Primary(m[2]) + Text(m[3]) }},
	// command listings: "  summary   description"
	{regexp.MustCompile(`^( {2})(\S+)(\s{2,}.*)$`), func(m []string) string { return m[1] + Primary(m[2]) + Text(m[3]) }},
}

// colorizedHelpFunc returns a help function that colorizes cobra's default
// usage output line by line.
func colorizedHelpFunc() func(*cobra.Command, []string) {
	return func(cmd *cobra.Command, args []string) {
		origOut := cmd.OutOrStdout()

		var buf strings.Builder
		cmd.SetOut(&buf)
		cmd.InitDefaultHelpFlag()
		if cmd.Long != "" {
			buf.WriteString(cmd.Long + "\n\n")
		}
		_ = cmd.Usage()
		cmd.SetOut(origOut)

		var result strings.Builder
		for _, line := range strings.Split(buf.String(), "\n") {
			result.WriteString(colorizeLine(line))
			result.WriteString("\n")
		}
		cmd.Print(strings.TrimRight(result.String(), "\n") + "\n")
	}
}

// colorizeLine applies the first matching rule to a single line of help output.
func colorizeLine(line string) string {
	for _, rule := range helpRules {
		if m := rule.re.FindStringSubmatch(line); m != nil {
			return rule.render(m)
		}
	}
	return Text(line)
}
