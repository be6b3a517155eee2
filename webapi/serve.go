package webapi

import (
	"context"
	"fmt"
	"time"

	"github.com/unas-org/unas-backend/pkg/app"
)

const shutdownTimeout = 10 * time.Second

// Serve seeds the admin account in production, then listens until ctx is
// cancelled or the listener fails.
func Serve(ctx context.Context, a *app.App) error {
	cfg := a.Config
	logger := a.Deps.Logger

	if cfg.IsProduction() {
		admin, created, err := a.BootstrapService.EnsureAdmin(ctx)
		if err != nil {
			return fmt.Errorf("admin bootstrap: %w", err)
		}
		logger.Info("Admin bootstrap done", "user_id", admin.ID, "created", created)
	}
	if s := a.Deps.RateLimitStorage; s != nil {
		defer s.Close() //nolint:errcheck
	}

	fiberApp := SetupApp(a)
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("Starting server", "env", cfg.Env, "address", addr)

	errCh := make(chan error, 1)
	go func() { errCh <- fiberApp.Listen(addr) }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		logger.Info("Shutting down server")
		return fiberApp.ShutdownWithTimeout(shutdownTimeout)
	}
}
