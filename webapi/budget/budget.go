package budget

import (
	"github.com/gofiber/fiber/v2"
	"github.com/unas-org/unas-backend/pkg/dto"
	budgetsvc "github.com/unas-org/unas-backend/pkg/service/budget"
	"github.com/unas-org/unas-backend/webapi/common"
)

func Routes(app *fiber.App, svc *budgetsvc.Service) {
	r := app.Group("/budgets")
	r.Get("/", List(svc))
	r.Post("/", Create(svc))
	r.Get("/:id", Get(svc))
	r.Put("/:id", Update(svc))
	r.Delete("/:id", Delete(svc))
}

// List returns budgets inside the optional date window.
// @Summary List budgets
// @Tags budgets
// @Produce json
// @Param initial_date query string false "Earliest initial date (YYYY-MM-DD)"
// @Param final_date query string false "Latest final date (YYYY-MM-DD)"
// @Success 200 {array} dto.BudgetRead
// @Failure 400 {object} common.ProblemDetails
// @Router /budgets [get]
func List(svc *budgetsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		budgets, err := svc.List(c.Context(), dto.BudgetFilter{
			InitialDate: c.Query("initial_date"),
			FinalDate:   c.Query("final_date"),
		})
		if err != nil {
			return common.Fail(c, err)
		}
		return c.JSON(budgets)
	}
}

// @Summary Get budget
// @Tags budgets
// @Produce json
// @Param id path string true "Budget ID"
// @Success 200 {object} dto.BudgetRead
// @Failure 404 {object} common.ProblemDetails
// @Router /budgets/{id} [get]
func Get(svc *budgetsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok, err := common.ParseID(c, "id")
		if !ok {
			return err
		}
		b, err := svc.Get(c.Context(), id)
		if err != nil {
			return common.Fail(c, err)
		}
		return c.JSON(b)
	}
}

// @Summary Create budget
// @Tags budgets
// @Accept json
// @Produce json
// @Param request body dto.BudgetCreate true "Budget"
// @Success 201 {object} dto.BudgetRead
// @Failure 400 {object} common.ProblemDetails
// @Router /budgets [post]
func Create(svc *budgetsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[dto.BudgetCreate](c)
		if input == nil {
			return err
		}
		b, err := svc.Create(c.Context(), *input)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't create budget", err)
		}
		return c.Status(fiber.StatusCreated).JSON(b)
	}
}

// @Summary Update budget
// @Tags budgets
// @Accept json
// @Produce json
// @Param id path string true "Budget ID"
// @Param request body dto.BudgetUpdate true "Fields to change"
// @Success 200 {object} dto.BudgetRead
// @Failure 400 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Router /budgets/{id} [put]
func Update(svc *budgetsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok, err := common.ParseID(c, "id")
		if !ok {
			return err
		}
		input, err := common.BindAndValidate[dto.BudgetUpdate](c)
		if input == nil {
			return err
		}
		b, err := svc.Update(c.Context(), id, *input)
		if err != nil {
			return common.Fail(c, err)
		}
		return c.JSON(b)
	}
}

// Delete fails with 400 while an order still points at the budget.
// @Summary Delete budget
// @Tags budgets
// @Param id path string true "Budget ID"
// @Success 204
// @Failure 400 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Router /budgets/{id} [delete]
func Delete(svc *budgetsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok, err := common.ParseID(c, "id")
		if !ok {
			return err
		}
		if err := svc.Delete(c.Context(), id); err != nil {
			return common.Fail(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}
