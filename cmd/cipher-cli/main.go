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

	"github.com/joho/godotenv"
	"golang.org/x/time/rate"

	"github.com/irgordon/cipher-cli/internal/adapters"
	"github.com/irgordon/cipher-cli/internal/cli"
	"github.com/irgordon/cipher-cli/internal/config"
	"github.com/irgordon/cipher-cli/internal/core/domain"
	"github.com/irgordon/cipher-cli/internal/core/services"
)

func main() {
	os.Exit(run())
}

func run() int {
	// --- 1. Configuration ---
	envErr := godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "cipher-cli: %v\n", err)
		return 1
	}

	logger := newLogger(cfg)
	slog.SetDefault(logger)
	if envErr != nil {
		logger.Debug("No .env file loaded, using process environment", slog.Any("error", envErr))
	}

	// --- 2. Outbound notifier (optional) ---
	// The limiter paces each HTTP attempt, so retries of one message are throttled too
	limiter := rate.NewLimiter(rate.Limit(cfg.Notify.RatePerSecond), cfg.Notify.Burst)
	var notifier domain.Notifier
	if cfg.Twilio.Enabled() {
		provider, err := adapters.NewTwilioProvider(
			cfg.Twilio,
			&http.Client{Timeout: cfg.Notify.Timeout},
			cfg.Notify.MaxRetries,
			logger,
		)
		if err != nil {
			logger.Error("Twilio provider unavailable", slog.Any("error", err))
		} else {
			notifier = provider.WithLimiter(limiter)
		}
	}

	// --- 3. Services ---
	cipherService := services.NewCipherService(logger)
	notificationService := services.NewNotificationService(notifier, nil, logger)

	// --- 4. Command tree ---
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := cli.NewRootCommand(cli.Dependencies{
		Ciphers:       cipherService,
		Notifications: notificationService,
		Logger:        logger,
	})

	if err := root.ExecuteContext(ctx); err != nil {
		if !errors.Is(err, cli.ErrReported) {
			cli.NewResponse(os.Stdout).Error(err.Error())
		}
		return 1
	}
	return 0
}

func newLogger(cfg *config.Config) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.LogLevel}
	if cfg.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}
