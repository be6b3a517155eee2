// Package initializer builds the process-wide dependencies from config.
package initializer

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/unas-org/unas-backend/infra"
	infraprovider "github.com/unas-org/unas-backend/infra/provider"
	"github.com/unas-org/unas-backend/infra/ratelimit"
	infrarepo "github.com/unas-org/unas-backend/infra/repository"
	"github.com/unas-org/unas-backend/pkg/app"
	"github.com/unas-org/unas-backend/pkg/config"
	"github.com/unas-org/unas-backend/pkg/provider"
)

// InitializeDependencies opens the database and picks the mailer and the
// rate limit storage. Only the database is mandatory.
func InitializeDependencies(ctx context.Context, cfg *config.App) (*app.Deps, error) {
	logger := NewLogger(cfg.Log)

	db, err := infra.OpenPostgres(ctx, cfg.DB, cfg.Env)
	if err != nil {
		logger.Error("Database unavailable", "error", err)
		return nil, err
	}

	mailer, err := newMailer(cfg, logger)
	if err != nil {
		return nil, err
	}

	return &app.Deps{
		Uow:              infrarepo.NewUoW(db),
		Mailer:           mailer,
		Logger:           logger,
		RateLimitStorage: newRateLimitStorage(cfg.Redis, logger),
	}, nil
}

// newMailer sends through SMTP when SMTP_HOST is set and logs mails otherwise.
func newMailer(cfg *config.App, logger *slog.Logger) (provider.Mailer, error) {
	if cfg.Smtp == nil || cfg.Smtp.Host == "" {
		logger.Warn("SMTP_HOST not set, mails will only be logged")
		return infraprovider.NewLogMailer(cfg, logger), nil
	}
	mailer, err := infraprovider.NewSMTPMailer(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("smtp mailer: %w", err)
	}
	logger.Info("Using SMTP mailer", "host", cfg.Smtp.Host, "port", cfg.Smtp.Port, "ssl", cfg.Smtp.SSL)
	return mailer, nil
}

// newRateLimitStorage returns nil, meaning in-memory counters, unless a
// reachable redis is configured.
func newRateLimitStorage(cfg *config.Redis, logger *slog.Logger) fiber.Storage {
	if cfg == nil || cfg.URL == "" {
		logger.Info("Rate limiter using in-memory storage")
		return nil
	}
	storage, err := ratelimit.NewRedisStorage(cfg.URL, cfg.KeyPrefix, cfg.DialTimeout, logger)
	if err != nil {
		logger.Warn("Redis unavailable, rate limiter falling back to memory", "error", err)
		return nil
	}
	logger.Info("Rate limiter using redis storage", "prefix", cfg.KeyPrefix)
	return storage
}
