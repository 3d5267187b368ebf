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
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/tendant/family-tree/pkg/familytree"
	"github.com/tendant/family-tree/pkg/familytree/api"
	"github.com/tendant/family-tree/pkg/familytree/config"
)

func buildHandler(cfg *config.ServerConfig, logger *slog.Logger, store familytree.Store) http.Handler {
	middlewares := []api.Middleware{
		api.RequestIDMiddleware,
		middleware.RealIP,
		api.LoggingMiddleware(logger),
		api.RecoveryMiddleware,
		api.RequestSizeLimitMiddleware(cfg.MaxBodyBytes),
		middleware.Timeout(60 * time.Second),
	}
	if cfg.Environment == "development" {
		middlewares = append(middlewares, api.CORSMiddleware())
	}
	return api.New(store, middlewares...)
}

func serve(ctx context.Context, cfg *config.ServerConfig) error {
	logger := cfg.BuildLogger(os.Stderr)
	slog.SetDefault(logger)

	store, closeStore, err := cfg.BuildStore(ctx)
	if err != nil {
		return err
	}
	defer closeStore()

	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Port),
		Handler:           buildHandler(cfg, logger, store),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Family tree server starting",
			"port", cfg.Port,
			"environment", cfg.Environment,
			"storage", cfg.StorageType,
		)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-quit:
	}
	slog.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	slog.Info("Server exiting")
	return nil
}
