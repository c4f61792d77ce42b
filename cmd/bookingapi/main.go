// Command bookingapi serves an in-memory booking API for local development.
package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/MrSnakeDoc/bookingdash/internal/backend"
	"github.com/MrSnakeDoc/bookingdash/internal/config"
	"github.com/MrSnakeDoc/bookingdash/internal/domain"
	"github.com/MrSnakeDoc/bookingdash/internal/logger"
	"github.com/MrSnakeDoc/bookingdash/internal/version"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("❌ bookingapi failed: %v", err)
	}
}

func run() error {
	cfg := config.LoadBackend()
	loggerClient := logger.New(cfg.LogLevel, cfg.PrettyLog)
	defer func() { _ = loggerClient.Sync() }()
	loggerClient.Info(version.Info("bookingapi"))

	var seed []domain.Booking
	if cfg.SeedFile != "" {
		items, err := backend.NewSeedLoader(cfg.SeedFile).Load()
		if err != nil {
			return err
		}
		seed = items
		loggerClient.Info("seed loaded",
			logger.String("file", cfg.SeedFile),
			logger.Int("bookings", len(seed)))
	}

	repo := backend.NewRepository(seed)
	srv := &http.Server{
		Addr:              cfg.ListenPort,
		Handler:           backend.Router(repo, loggerClient),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		loggerClient.Infof("booking API listening on %s", cfg.ListenPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		loggerClient.Info("⏳ Shutting down gracefully...")
	case err := <-errCh:
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
