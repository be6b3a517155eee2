package app

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/unas-org/unas-backend/pkg/config"
	"github.com/unas-org/unas-backend/pkg/provider"
	"github.com/unas-org/unas-backend/pkg/repository"
	"github.com/unas-org/unas-backend/pkg/service/auth"
	"github.com/unas-org/unas-backend/pkg/service/bootstrap"
	"github.com/unas-org/unas-backend/pkg/service/budget"
	"github.com/unas-org/unas-backend/pkg/service/code"
	"github.com/unas-org/unas-backend/pkg/service/frequency"
	"github.com/unas-org/unas-backend/pkg/service/order"
	"github.com/unas-org/unas-backend/pkg/service/report"
	"github.com/unas-org/unas-backend/pkg/service/storage"
	"github.com/unas-org/unas-backend/pkg/service/unit"
	"github.com/unas-org/unas-backend/pkg/service/unituser"
	"github.com/unas-org/unas-backend/pkg/service/user"
)

// Deps contains the infrastructure the services are built from.
type Deps struct {
	Uow    repository.UnitOfWork
	Mailer provider.Mailer
	// RateLimitStorage backs the HTTP limiter; nil means in-memory.
	RateLimitStorage fiber.Storage
	Logger           *slog.Logger
}

type App struct {
	Deps             *Deps
	Config           *config.App
	AuthService      *auth.Service
	CodeService      *code.Service
	UserService      *user.Service
	UnitService      *unit.Service
	UnitUserService  *unituser.Service
	StorageService   *storage.Service
	OrderService     *order.Service
	BudgetService    *budget.Service
	FrequencyService *frequency.Service
	ReportService    *report.Service
	BootstrapService *bootstrap.Service
}

func New(deps *Deps, cfg *config.App) *App {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	codes := code.New(deps.Uow, cfg.Code, logger)

	return &App{
		Deps:             deps,
		Config:           cfg,
		CodeService:      codes,
		AuthService:      auth.New(deps.Uow, codes, deps.Mailer, cfg.Jwt, logger),
		UserService:      user.New(deps.Uow, codes, deps.Mailer, logger),
		UnitService:      unit.New(deps.Uow, logger),
		UnitUserService:  unituser.New(deps.Uow, logger),
		StorageService:   storage.New(deps.Uow, logger),
		OrderService:     order.New(deps.Uow, logger),
		BudgetService:    budget.New(deps.Uow, logger),
		FrequencyService: frequency.New(deps.Uow, logger),
		ReportService:    report.New(deps.Uow, cfg.Location(), logger),
		BootstrapService: bootstrap.New(deps.Uow, codes, deps.Mailer, cfg.Admin, logger),
	}
}
