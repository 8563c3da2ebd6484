// Command server runs the normalization API: health, document parsing and
// day-level row retrieval over JSON, plus Prometheus metrics.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"entsocli/internal/cache"
	"entsocli/internal/config"
	"entsocli/internal/dataprocessing"
	"entsocli/internal/infrastructure"
	"entsocli/internal/transport/entsoe"
	transporthttp "entsocli/internal/transport/http"
	"entsocli/pkg/contracts"
)

func main() {
	if err := run(); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer infrastructure.CloseLogger()

	paths, err := config.NewPaths(cfg.Paths, cfg.Cache.Dir)
	if err != nil {
		return fmt.Errorf("failed to prepare directories: %w", err)
	}

	var clientOpts []entsoe.Option
	if cfg.Cache.Enabled {
		documentCache, err := cache.Open(paths.CacheDir, cfg.Cache.TTL)
		if err != nil {
			return fmt.Errorf("failed to open document cache: %w", err)
		}
		defer documentCache.Close()
		clientOpts = append(clientOpts, entsoe.WithCache(documentCache))
	}

	client := entsoe.NewClient(cfg.Client, logger, clientOpts...)
	processor := dataprocessing.NewProcessor(cfg.Location(), cfg.Pipeline.DefaultResolutionMinutes, logger)
	handler := transporthttp.NewRowsHandler(client, processor)
	router := transporthttp.NewRouter(handler, logger)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("server listening",
			slog.String("addr", server.Addr),
			slog.String("version", contracts.GetVersionString()),
			slog.String("timezone", cfg.Pipeline.Timezone))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case err := <-serverErr:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}

	logger.Info("server stopped")
	return nil
}
