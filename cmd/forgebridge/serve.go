package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/forgebridge/forgebridge/pkg/config"
	"github.com/forgebridge/forgebridge/pkg/github"
	"github.com/forgebridge/forgebridge/pkg/log"
	"github.com/forgebridge/forgebridge/pkg/serve"
	"github.com/forgebridge/forgebridge/pkg/tools"
	"github.com/forgebridge/forgebridge/pkg/tools/pr"
	"github.com/forgebridge/forgebridge/pkg/tools/repo"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the tool server on stdin/stdout",
	Long: `Run the tool server loop.

Requests arrive as line-delimited JSON-RPC on stdin; responses leave on
stdout, one line per request. The loop ends on stdin EOF or an interrupt.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		if err := log.Init(log.Config{Level: cfg.LogLevel}); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		defer log.Sync()

		if cfg.Token == "" {
			log.Warn("no token configured; calls will fail with an authentication error")
		}

		client, err := github.NewClient(github.ClientOptions{
			Token:   cfg.Token,
			BaseURL: cfg.APIBaseURL,
		})
		if err != nil {
			return fmt.Errorf("failed to create API client: %w", err)
		}

		registry := buildRegistry(client)
		srv, err := serve.NewServer(serve.Options{
			Registry:  registry,
			RateLimit: client.RateLimitTracker(),
		})
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		log.Infof("serving %d tools on stdin/stdout", len(registry.List()))
		return srv.Run(ctx, os.Stdin, os.Stdout)
	},
}

// buildRegistry wires every tool to the shared API client.
func buildRegistry(client *github.Client) *tools.Registry {
	registry := tools.NewRegistry()
	pr.Register(registry, client)
	repo.Register(registry, client)
	return registry
}
