package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "shopsum",
	Short: "Daily sales summaries of Shopify orders",
	Long: "shopsum fetches the orders of a Shopify store and aggregates them into\n" +
		"one row per day and customer type (New or Returning).",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.SetHelpFunc(colorizedHelpFunc())
	rootCmd.AddCommand(summaryCmd)
	rootCmd.AddCommand(secretCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(completionCmd)
	rootCmd.AddCommand(versionCmd)
}

func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		printError(rootCmd.ErrOrStderr(), err)
	}
	return err
}

func printError(w io.Writer, err error) {
	_, _ = fmt.Fprintln(w, Error("Error: "+err.Error()))
}
