package infra

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/unas-org/unas-backend/pkg/config"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var ErrMissingDatabaseURL = errors.New("DATABASE_URL is not set")

// OpenPostgres connects to cfg.Url, applies the pool limits and pings the
// server so a bad DSN fails at startup rather than on the first request.
func OpenPostgres(ctx context.Context, cfg *config.DB, env string) (*gorm.DB, error) {
	if cfg == nil || cfg.Url == "" {
		return nil, ErrMissingDatabaseURL
	}

	db, err := gorm.Open(postgres.Open(cfg.Url), &gorm.Config{
		Logger:                 logger.Default.LogMode(sqlLogLevel(env)),
		SkipDefaultTransaction: true,
		NowFunc:                func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	pool, err := db.DB()
	if err != nil {
		return nil, err
	}
	pool.SetMaxOpenConns(cfg.MaxOpenConns)
	pool.SetMaxIdleConns(cfg.MaxIdleConns)
	pool.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := pool.PingContext(pingCtx); err != nil {
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return db, nil
}

// sqlLogLevel prints statements while developing only.
func sqlLogLevel(env string) logger.LogLevel {
	switch env {
	case "development":
		return logger.Info
	case "test":
		return logger.Silent
	default:
		return logger.Error
	}
}
