package cli

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/Flyrell/shopsum/internal/secret"
	"github.com/Flyrell/shopsum/internal/server"
	"github.com/Flyrell/shopsum/internal/tool"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

// serveDeps bundles all side-effects for testability.
type serveDeps struct {
	env    environment
	listen func(ctx context.Context, s *server.Server, addr string) error
}

func defaultServeDeps() serveDeps {
	return serveDeps{
		env: defaultEnvironment(),
		listen: func(ctx context.Context, s *server.Server, addr string) error {
			return s.ListenAndServe(ctx, addr)
		},
	}
}

var serveCmd = LeafCommand{
	Use:   "serve",
	Short: "Run the summary as an HTTP worker",
	Long: "Serve GET /orders?store=KEY with the JSON result of the summary, a health\n" +
		"check on GET / and Prometheus metrics on GET /metrics. When the secret named\n" +
		"by server.auth_secret_name resolves, requests must send it as Authorization.",
	Args: cobra.NoArgs,
	StrFlags: []StringFlag{
		{Name: "addr", Usage: "listen address (default from server.addr)"},
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		addr, _ := cmd.Flags().GetString("addr")

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		return runServe(ctx, cmd, defaultServeDeps(), addr)
	},
}.Build()

func runServe(ctx context.Context, cmd *cobra.Command, deps serveDeps, addr string) error {
	ws, err := deps.env.load()
	if err != nil {
		return err
	}
	if addr == "" {
		addr = ws.cfg.Server.Addr
	}

	authSecret := ""
	if name := ws.cfg.Server.AuthSecretName; name != "" {
		authSecret, err = ws.secrets.Get(name)
		if err != nil && !errors.Is(err, secret.ErrNotFound) {
			return err
		}
	}

	w := cmd.ErrOrStderr()
	switch {
	case ws.cfg.Server.AuthSecretName == "":
		_, _ = fmt.Fprintf(w, "%s\n", Warning("server.auth_secret_name is empty; requests are not authenticated"))
	case authSecret == "":
		_, _ = fmt.Fprintf(w, "%s\n", Warning(fmt.Sprintf("%s is not set; requests are not authenticated", ws.cfg.Server.AuthSecretName)))
	}

	gin.SetMode(gin.ReleaseMode)
	logger := log.New(w, "", log.LstdFlags)
	t := &tool.Tool{
		Secrets:      ws.secrets,
		Fetcher:      newShopifyFetcher(ws.cfg, logger),
		SecretPrefix: ws.cfg.SecretPrefix,
		DefaultStore: ws.cfg.DefaultStore,
		Logger:       logger,
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\n", Text(fmt.Sprintf("shopsum worker listening on %s", Primary(addr))))
	return deps.listen(ctx, server.New(t, authSecret, logger), addr)
}
