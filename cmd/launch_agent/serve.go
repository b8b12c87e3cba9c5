package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jonathan/launch-orchestrator/internal/config"
	"github.com/jonathan/launch-orchestrator/internal/server"
	"github.com/jonathan/launch-orchestrator/internal/server/ratelimit"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long: `Start an HTTP server that exposes REST endpoints for creating startups,
running tasks, and streaming whole pipeline runs.

Without a database the server keeps records in memory.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Address to listen on (default :8080)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	jwtConfig, err := config.NewJWTConfig()
	if err != nil {
		return fmt.Errorf("failed to create JWT config: %w", err)
	}

	a, err := newApp(ctx, true)
	if err != nil {
		return err
	}
	defer a.Close()

	addr := a.cfg.Addr
	if serveAddr != "" {
		addr = serveAddr
	}

	srv, err := server.New(addr, server.Deps{
		Store:        a.store,
		Orchestrator: a.orchestrator,
		Runner:       a.runner,
		JWT:          server.NewJWTService(jwtConfig),
		Limiter:      ratelimit.NewLimiter(ratelimit.LoadConfig()),
		Logger:       a.logger.Named("server"),
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}
	return srv.Start(ctx)
}
