package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	chiTransport "github.com/kailas-cloud/hydrex/internal/transport/chi"
	"github.com/kailas-cloud/hydrex/internal/version"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	Long: `Run the HTTP API exposing mappings, document lookups and hydrated searches.
The server drains in-flight requests on SIGINT/SIGTERM.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "listen port (default: http.port from config)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	defer func() { _ = logger.Sync() }()

	port := cfg.HTTP.Port
	if servePort > 0 {
		port = servePort
	}

	logger.Info("Starting hydrex API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", port),
		zap.String("engine_driver", cfg.Engine.Driver),
		zap.Strings("engine_addrs", cfg.Engine.Addrs),
		zap.Int("mappings", len(cfg.Mappings)),
	)

	client, err := newClient(cfg, prometheus.DefaultRegisterer)
	if err != nil {
		return fmt.Errorf("connect engine: %w", err)
	}
	defer client.Close()
	logger.Info("Connected to search engine")

	server := chiTransport.NewServer(client, logger).
		WithPagination(cfg.Search.DefaultPageSize, cfg.Search.MaxPageSize)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      chiTransport.NewRouter(server, cfg.Auth.APIKeys),
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-cmd.Context().Done():
	}
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
		return fmt.Errorf("shutdown: %w", err)
	}
	logger.Info("Server stopped")
	return nil
}
