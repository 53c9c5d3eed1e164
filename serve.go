package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/xiaot623/adgenie/internal/classifier"
	"github.com/xiaot623/adgenie/internal/config"
	"github.com/xiaot623/adgenie/internal/logging"
	"github.com/xiaot623/adgenie/internal/repository"
	"github.com/xiaot623/adgenie/internal/service"
	handler "github.com/xiaot623/adgenie/internal/transport/http"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run migrations and start the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve(cmd.Context())
	},
}

func serve(ctx context.Context) error {
	// Load configuration
	cfg := config.Load(v)
	logger := logging.New(cfg.LogLevel, cfg.IsDevelopment())
	ctx = logger.WithContext(ctx)

	logger.Info().
		Int("port", cfg.HTTPPort).
		Str("cors_origin", cfg.CORSOrigin).
		Str("llm_provider", cfg.LLMProvider).
		Bool("external_classifier", cfg.ExternalConfigured()).
		Msg("starting adgenie")

	// Initialize store
	db, err := store.Open(cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to initialize store: %w", err)
	}
	defer db.Close()

	if err := db.Migrate(ctx); err != nil {
		return err
	}
	logger.Info().Str("dialect", db.Dialect()).Msg("database ready")

	// Initialize classifier
	external, err := classifier.NewExternal(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize external classifier: %w", err)
	}
	fallback, err := classifier.NewDefaultFallback(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialize fallback policy: %w", err)
	}

	// Initialize service
	svc := service.New(db, classifier.New(external, fallback))

	e := handler.NewServer(svc, cfg, logger)

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		addr := fmt.Sprintf(":%d", cfg.HTTPPort)
		logger.Info().Str("addr", addr).Msg("HTTP server started")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("HTTP server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info().Msg("shutting down adgenie")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("failed to shutdown HTTP server gracefully")
	}

	logger.Info().Msg("adgenie stopped")
	return nil
}
