package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/Flyrell/shopsum/internal/config"
	"github.com/Flyrell/shopsum/internal/export"
	"github.com/Flyrell/shopsum/internal/shopify"
	"github.com/Flyrell/shopsum/internal/stringutil"
	"github.com/Flyrell/shopsum/internal/tool"
	"github.com/spf13/cobra"
)

// summaryDeps bundles all side-effects for testability.
type summaryDeps struct {
	env        environment
	newFetcher func(cfg *config.Config, logger *log.Logger) tool.OrderFetcher
	isTTY      func(w any) bool
}

func defaultSummaryDeps() summaryDeps {
	return summaryDeps{
		env:        defaultEnvironment(),
		newFetcher: newShopifyFetcher,
		isTTY:      isTerminal,
	}
}

func newShopifyFetcher(cfg *config.Config, logger *log.Logger) tool.OrderFetcher {
	c := shopify.NewClient(cfg.APIVersion, cfg.Timeout)
	c.Fields = cfg.Fields
	c.Logger = logger
	return c
}

type summaryOptions struct {
	store   string
	json    bool
	export  string
	output  string
	verbose bool
	debug   bool
}

var summaryCmd = LeafCommand{
	Use:   "summary",
	Short: "Summarize the orders of a store by day",
	Long: "Fetch the orders of a Shopify store and aggregate them into one row per\n" +
		"day and customer type. Credentials are read from the environment, ./.env\n" +
		"or the secret store (see `shopsum secret set`).",
	Example: "  shopsum summary\n" +
		"  shopsum summary --store OGTHREAD --json\n" +
		"  shopsum summary --store OGTHREAD --export pdf -o ogthread.pdf",
	Args: cobra.NoArgs,
	BoolFlags: []BoolFlag{
		{Name: "json", Usage: "print the result object as JSON"},
		{Name: "verbose", Short: "v", Usage: "log progress to stderr"},
		{Name: "debug", Usage: "dump decoded orders to the log (implies --verbose)"},
	},
	StrFlags: []StringFlag{
		{Name: "store", Short: "s", Usage: "store key (reads SHOPIFY_<KEY>_URL and SHOPIFY_<KEY>_ACCESS_TOKEN)"},
		{Name: "export", Usage: "export format: csv or pdf"},
		{Name: "output", Short: "o", Usage: "export file path (default <store>-orders-summary.<format>)"},
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		var opts summaryOptions
		opts.store, _ = cmd.Flags().GetString("store")
		opts.json, _ = cmd.Flags().GetBool("json")
		opts.export, _ = cmd.Flags().GetString("export")
		opts.output, _ = cmd.Flags().GetString("output")
		opts.verbose, _ = cmd.Flags().GetBool("verbose")
		opts.debug, _ = cmd.Flags().GetBool("debug")

		return runSummary(cmd, defaultSummaryDeps(), opts)
	},
}.Build()

func runSummary(cmd *cobra.Command, deps summaryDeps, opts summaryOptions) error {
	format := strings.ToLower(strings.TrimSpace(opts.export))
	if format != "" && format != "csv" && format != "pdf" {
		return fmt.Errorf("unsupported export format %q (valid: csv, pdf)", opts.export)
	}
	if format != "" && opts.json {
		return errors.New("--json and --export cannot be combined")
	}

	ws, err := deps.env.load()
	if err != nil {
		return err
	}

	logger := newLogger(cmd.ErrOrStderr(), opts.verbose || opts.debug)
	t := &tool.Tool{
		Secrets:      ws.secrets,
		Fetcher:      deps.newFetcher(ws.cfg, logger),
		SecretPrefix: ws.cfg.SecretPrefix,
		DefaultStore: ws.cfg.DefaultStore,
		Logger:       logger,
		Debug:        opts.debug,
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	res := t.Run(ctx, opts.store)

	out := cmd.OutOrStdout()
	if opts.json {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	}
	if !res.OK() {
		return errors.New(res.Error)
	}

	if format != "" {
		path := opts.output
		if path == "" {
			path = exportFileName(res.Store, format)
		}
		if err := writeExport(format, path, res); err != nil {
			return err
		}
		_, _ = fmt.Fprintf(out, "%s\n", Text(fmt.Sprintf("exported %d rows to %s", len(res.Summary), Primary(path))))
		return nil
	}

	if len(res.Summary) == 0 {
		_, _ = fmt.Fprintf(out, "%s\n", Silent(fmt.Sprintf("no orders found for store '%s'", res.Store)))
		return nil
	}
	return runSummaryTable(cmd, res, deps.isTTY(out))
}

// exportFileName returns the default export file name for a store label.
func exportFileName(store, format string) string {
	slug := stringutil.Slugify(store)
	if slug == "" {
		slug = "store"
	}
	return fmt.Sprintf("%s-orders-summary.%s", slug, format)
}

func writeExport(format, path string, res tool.Result) error {
	switch format {
	case "pdf":
		return export.WritePDF(export.Report{Store: res.Store, Rows: res.Summary}, path)
	default:
		return export.WriteCSVFile(path, res.Summary)
	}
}
