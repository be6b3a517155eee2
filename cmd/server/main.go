package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	log "github.com/charmbracelet/log"
	_ "github.com/unas-org/unas-backend/docs"
	"github.com/unas-org/unas-backend/infra/initializer"
	"github.com/unas-org/unas-backend/pkg/app"
	"github.com/unas-org/unas-backend/pkg/config"
	"github.com/unas-org/unas-backend/webapi"
)

// @title UNAS API
// @version 1.0.0
// @description Backend of the UNAS units: stock, orders, budgets, attendance and reports
// @host localhost:3000
// @BasePath /
//
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Access token from /auth/login, sent as "Bearer <token>"
func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load(".env")
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	deps, err := initializer.InitializeDependencies(ctx, cfg)
	if err != nil {
		return fmt.Errorf("initialize dependencies: %w", err)
	}
	return webapi.Serve(ctx, app.New(deps, cfg))
}
