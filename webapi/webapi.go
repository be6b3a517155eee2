// Package webapi provides the HTTP surface of the UNAS backend.
// It is organized into sub-packages per resource:
// - auth: login, security codes and password reset
// - storage, order, budget, frequency: unit operations
// - report: the monthly unit report
// - unit, user, unituser: registry of units, users and their links
package webapi

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"github.com/unas-org/unas-backend/pkg/app"
	authweb "github.com/unas-org/unas-backend/webapi/auth"
	budgetweb "github.com/unas-org/unas-backend/webapi/budget"
	"github.com/unas-org/unas-backend/webapi/common"
	frequencyweb "github.com/unas-org/unas-backend/webapi/frequency"
	orderweb "github.com/unas-org/unas-backend/webapi/order"
	reportweb "github.com/unas-org/unas-backend/webapi/report"
	storageweb "github.com/unas-org/unas-backend/webapi/storage"
	unitweb "github.com/unas-org/unas-backend/webapi/unit"
	userweb "github.com/unas-org/unas-backend/webapi/user"
	unituserweb "github.com/unas-org/unas-backend/webapi/unituser"
)

// SetupApp Initialize Fiber with custom configuration
func SetupApp(app *app.App) *fiber.App {
	cfg := app.Config

	fiberCfg := fiber.Config{
		AppName: cfg.Name,
		// unit names and addresses travel as path segments
		UnescapePath: true,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return common.ProblemDetailsJSON(c, "Internal Server Error", err)
		},
	}
	// c.IP() reads X-Forwarded-For only when the peer is a listed proxy.
	if proxies := cfg.Server.TrustedProxies; len(proxies) > 0 {
		fiberCfg.EnableTrustedProxyCheck = true
		fiberCfg.TrustedProxies = proxies
		fiberCfg.ProxyHeader = fiber.HeaderXForwardedFor
		fiberCfg.EnableIPValidation = true
	}
	fiberApp := fiber.New(fiberCfg)
	fiberApp.Get("/swagger/*", swagger.New(swagger.Config{
		TryItOutEnabled:      true,
		WithCredentials:      true,
		PersistAuthorization: true,
		OAuth2RedirectUrl:    "/auth/login",
	}))

	fiberApp.Use(recover.New())
	fiberApp.Use(cors.New())
	fiberApp.Use(limiter.New(limiter.Config{
		Max:          cfg.RateLimit.MaxRequests,
		Expiration:   cfg.RateLimit.Window,
		Storage:      app.Deps.RateLimitStorage,
		KeyGenerator: func(c *fiber.Ctx) string { return c.IP() },
		LimitReached: tooManyRequests("rate limit exceeded"),
	}))
	fiberApp.Use(logger.New())

	// Liveness
	fiberApp.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	authweb.Routes(fiberApp, app.AuthService, codeAttemptLimiter(app))
	storageweb.Routes(fiberApp, app.StorageService)
	unitweb.Routes(fiberApp, app.UnitService)
	orderweb.Routes(fiberApp, app.OrderService)
	unituserweb.Routes(fiberApp, app.UnitUserService)
	userweb.Routes(fiberApp, app.UserService)
	budgetweb.Routes(fiberApp, app.BudgetService)
	reportweb.Routes(fiberApp, app.ReportService, app.AuthService, cfg)
	frequencyweb.Routes(fiberApp, app.FrequencyService)
	return fiberApp
}

// codeAttemptLimiter caps failed security code submissions per client.
// Accepted codes do not count, so only guessing is slowed down.
func codeAttemptLimiter(app *app.App) fiber.Handler {
	cfg := app.Config.RateLimit
	return limiter.New(limiter.Config{
		Max:                    cfg.CodeAttempts,
		Expiration:             cfg.CodeWindow,
		Storage:                app.Deps.RateLimitStorage,
		SkipSuccessfulRequests: true,
		KeyGenerator:           func(c *fiber.Ctx) string { return "code:" + c.IP() },
		LimitReached:           tooManyRequests("too many failed code attempts"),
	})
}

func tooManyRequests(detail string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return common.ProblemDetailsJSON(c, "Too Many Requests", errors.New(detail), fiber.StatusTooManyRequests)
	}
}
