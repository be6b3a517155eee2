package order

import (
	"github.com/gofiber/fiber/v2"
	"github.com/unas-org/unas-backend/pkg/dto"
	ordersvc "github.com/unas-org/unas-backend/pkg/service/order"
	"github.com/unas-org/unas-backend/webapi/common"
)

func Routes(app *fiber.App, svc *ordersvc.Service) {
	r := app.Group("/orders")
	r.Get("/", List(svc))
	r.Post("/", Create(svc))
	r.Get("/unit/:unit_id", ListByUnit(svc))
	r.Get("/budget/:budget_id", ListByBudget(svc))
	r.Get("/:id", Get(svc))
	r.Put("/:id", Update(svc))
	r.Delete("/:id", Delete(svc))
	r.Put("/:id/approve", Approve(svc))
	r.Put("/:id/reject", Reject(svc))
}

// List returns orders, newest first, optionally filtered.
// @Summary List orders
// @Tags orders
// @Produce json
// @Param unit_id query string false "Unit ID"
// @Param budget_id query string false "Budget ID"
// @Success 200 {array} dto.OrderRead
// @Failure 400 {object} common.ProblemDetails
// @Router /orders [get]
func List(svc *ordersvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		unitID, err := common.QueryUUID(c, "unit_id")
		if err != nil {
			return common.Fail(c, err)
		}
		budgetID, err := common.QueryUUID(c, "budget_id")
		if err != nil {
			return common.Fail(c, err)
		}
		orders, err := svc.List(c.Context(), unitID, budgetID)
		if err != nil {
			return common.Fail(c, err)
		}
		return c.JSON(orders)
	}
}

// Get returns one order with its items.
// @Summary Get order
// @Tags orders
// @Produce json
// @Param id path string true "Order ID"
// @Success 200 {object} dto.OrderRead
// @Failure 404 {object} common.ProblemDetails
// @Router /orders/{id} [get]
func Get(svc *ordersvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok, err := common.ParseID(c, "id")
		if !ok {
			return err
		}
		o, err := svc.Get(c.Context(), id)
		if err != nil {
			return common.Fail(c, err)
		}
		return c.JSON(o)
	}
}

// Create stores an order and its items.
// @Summary Create order
// @Description A missing or zero amount becomes the sum of the item amounts
// @Tags orders
// @Accept json
// @Produce json
// @Param request body dto.OrderCreate true "Order"
// @Success 201 {object} dto.OrderRead
// @Failure 400 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Router /orders [post]
func Create(svc *ordersvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[dto.OrderCreate](c)
		if input == nil {
			return err
		}
		o, err := svc.Create(c.Context(), *input)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't create order", err)
		}
		return c.Status(fiber.StatusCreated).JSON(o)
	}
}

// Update changes the given order fields.
// @Summary Update order
// @Tags orders
// @Accept json
// @Produce json
// @Param id path string true "Order ID"
// @Param request body dto.OrderUpdate true "Fields to change"
// @Success 200 {object} dto.OrderRead
// @Failure 400 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Router /orders/{id} [put]
func Update(svc *ordersvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok, err := common.ParseID(c, "id")
		if !ok {
			return err
		}
		input, err := common.BindAndValidate[dto.OrderUpdate](c)
		if input == nil {
			return err
		}
		o, err := svc.Update(c.Context(), id, *input)
		if err != nil {
			return common.Fail(c, err)
		}
		return c.JSON(o)
	}
}

// Delete removes an order and its items.
// @Summary Delete order
// @Tags orders
// @Param id path string true "Order ID"
// @Success 204
// @Failure 404 {object} common.ProblemDetails
// @Router /orders/{id} [delete]
func Delete(svc *ordersvc.Service) fiber.Handler {
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

// ListByUnit returns the orders of a unit.
// @Summary List orders of a unit
// @Tags orders
// @Produce json
// @Param unit_id path string true "Unit ID"
// @Success 200 {array} dto.OrderRead
// @Router /orders/unit/{unit_id} [get]
func ListByUnit(svc *ordersvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		unitID, ok, err := common.ParseID(c, "unit_id")
		if !ok {
			return err
		}
		orders, err := svc.ListByUnit(c.Context(), unitID)
		if err != nil {
			return common.Fail(c, err)
		}
		return c.JSON(orders)
	}
}

// ListByBudget returns the orders charged to a budget.
// @Summary List orders of a budget
// @Tags orders
// @Produce json
// @Param budget_id path string true "Budget ID"
// @Success 200 {array} dto.OrderRead
// @Router /orders/budget/{budget_id} [get]
func ListByBudget(svc *ordersvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		budgetID, ok, err := common.ParseID(c, "budget_id")
		if !ok {
			return err
		}
		orders, err := svc.ListByBudget(c.Context(), budgetID)
		if err != nil {
			return common.Fail(c, err)
		}
		return c.JSON(orders)
	}
}

// Approve marks an order approved.
// @Summary Approve order
// @Tags orders
// @Produce json
// @Param id path string true "Order ID"
// @Success 200 {object} dto.OrderRead
// @Failure 404 {object} common.ProblemDetails
// @Router /orders/{id}/approve [put]
func Approve(svc *ordersvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok, err := common.ParseID(c, "id")
		if !ok {
			return err
		}
		o, err := svc.Approve(c.Context(), id)
		if err != nil {
			return common.Fail(c, err)
		}
		return c.JSON(o)
	}
}

// Reject marks an order rejected.
// @Summary Reject order
// @Tags orders
// @Produce json
// @Param id path string true "Order ID"
// @Success 200 {object} dto.OrderRead
// @Failure 404 {object} common.ProblemDetails
// @Router /orders/{id}/reject [put]
func Reject(svc *ordersvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok, err := common.ParseID(c, "id")
		if !ok {
			return err
		}
		o, err := svc.Reject(c.Context(), id)
		if err != nil {
			return common.Fail(c, err)
		}
		return c.JSON(o)
	}
}
