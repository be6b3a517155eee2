package report

import (
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/unas-org/unas-backend/pkg/config"
	"github.com/unas-org/unas-backend/pkg/middleware"
	authsvc "github.com/unas-org/unas-backend/pkg/service/auth"
	reportsvc "github.com/unas-org/unas-backend/pkg/service/report"
	"github.com/unas-org/unas-backend/webapi/common"
)

func Routes(app *fiber.App, reportSvc *reportsvc.Service, authSvc *authsvc.Service, cfg *config.App) {
	r := app.Group("/reports")
	r.Get("/unit/:unit_id", UnitReport(reportSvc))
	r.Get("/me", middleware.JwtProtected(cfg.Jwt), MyReport(reportSvc, authSvc))
}

// UnitReport builds the monthly report of a unit.
// @Summary Unit report
// @Description Spending, stock, attendance and pack estimates of one unit
// @Tags reports
// @Produce json
// @Param unit_id path string true "Unit ID"
// @Param month query string false "Month (YYYY-MM); empty means all time"
// @Success 200 {object} dto.UnitReport
// @Failure 400 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Router /reports/unit/{unit_id} [get]
func UnitReport(reportSvc *reportsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		unitID, ok, err := common.ParseID(c, "unit_id")
		if !ok {
			return err
		}
		r, err := reportSvc.ForUnit(c.Context(), unitID, c.Query("month"))
		if err != nil {
			return common.Fail(c, err)
		}
		return c.JSON(r)
	}
}

// MyReport builds the report of the caller's first unit.
// @Summary Report of the logged-in user's unit
// @Tags reports
// @Produce json
// @Param month query string false "Month (YYYY-MM)"
// @Success 200 {object} dto.UnitReport
// @Failure 400 {object} common.ProblemDetails
// @Failure 401 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Router /reports/me [get]
// @Security BearerAuth
func MyReport(reportSvc *reportsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, ok := c.Locals(middleware.ContextKey).(*jwt.Token)
		if !ok {
			return common.ProblemDetailsJSON(c, "Unauthorized", nil, "Missing token", fiber.StatusUnauthorized)
		}
		userID, err := authSvc.UserIDFromToken(token)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err, fiber.StatusUnauthorized)
		}
		r, err := reportSvc.ForUser(c.Context(), userID, c.Query("month"))
		if err != nil {
			return common.Fail(c, err)
		}
		return c.JSON(r)
	}
}
