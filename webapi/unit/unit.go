package unit

import (
	"github.com/gofiber/fiber/v2"
	"github.com/unas-org/unas-backend/pkg/dto"
	unitsvc "github.com/unas-org/unas-backend/pkg/service/unit"
	"github.com/unas-org/unas-backend/webapi/common"
)

func Routes(app *fiber.App, svc *unitsvc.Service) {
	r := app.Group("/units")
	r.Get("/", List(svc))
	r.Post("/", Create(svc))
	r.Get("/name/:name", GetByName(svc))
	r.Get("/address/:address", ListByAddress(svc))
	r.Get("/type/:type", ListByType(svc))
	r.Get("/:id", Get(svc))
	r.Put("/:id", Update(svc))
	r.Delete("/:id", Delete(svc))
}

// List returns all units ordered by name.
// @Summary List units
// @Tags units
// @Produce json
// @Param type query string false "Only units of this type"
// @Success 200 {array} dto.UnitRead
// @Router /units [get]
func List(svc *unitsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		units, err := svc.List(c.Context(), c.Query("type"))
		if err != nil {
			return common.Fail(c, err)
		}
		return c.JSON(units)
	}
}

// @Summary Get unit
// @Tags units
// @Produce json
// @Param id path string true "Unit ID"
// @Success 200 {object} dto.UnitRead
// @Failure 404 {object} common.ProblemDetails
// @Router /units/{id} [get]
func Get(svc *unitsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok, err := common.ParseID(c, "id")
		if !ok {
			return err
		}
		u, err := svc.Get(c.Context(), id)
		if err != nil {
			return common.Fail(c, err)
		}
		return c.JSON(u)
	}
}

// @Summary Create unit
// @Tags units
// @Accept json
// @Produce json
// @Param request body dto.UnitCreate true "Unit"
// @Success 201 {object} dto.UnitRead
// @Failure 400 {object} common.ProblemDetails
// @Router /units [post]
func Create(svc *unitsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[dto.UnitCreate](c)
		if input == nil {
			return err
		}
		u, err := svc.Create(c.Context(), *input)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't create unit", err)
		}
		return c.Status(fiber.StatusCreated).JSON(u)
	}
}

// @Summary Update unit
// @Tags units
// @Accept json
// @Produce json
// @Param id path string true "Unit ID"
// @Param request body dto.UnitUpdate true "Fields to change"
// @Success 200 {object} dto.UnitRead
// @Failure 400 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Router /units/{id} [put]
func Update(svc *unitsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok, err := common.ParseID(c, "id")
		if !ok {
			return err
		}
		input, err := common.BindAndValidate[dto.UnitUpdate](c)
		if input == nil {
			return err
		}
		u, err := svc.Update(c.Context(), id, *input)
		if err != nil {
			return common.Fail(c, err)
		}
		return c.JSON(u)
	}
}

// Delete answers 409 while members, stock, orders or attendance still
// reference the unit.
// @Summary Delete unit
// @Tags units
// @Param id path string true "Unit ID"
// @Success 204
// @Failure 404 {object} common.ProblemDetails
// @Failure 409 {object} common.ProblemDetails
// @Router /units/{id} [delete]
func Delete(svc *unitsvc.Service) fiber.Handler {
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

// @Summary Find unit by name
// @Tags units
// @Produce json
// @Param name path string true "Exact unit name"
// @Success 200 {object} dto.UnitRead
// @Failure 404 {object} common.ProblemDetails
// @Router /units/name/{name} [get]
func GetByName(svc *unitsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		u, err := svc.GetByName(c.Context(), c.Params("name"))
		if err != nil {
			return common.Fail(c, err)
		}
		return c.JSON(u)
	}
}

// @Summary List units at an address
// @Tags units
// @Produce json
// @Param address path string true "Exact address"
// @Success 200 {array} dto.UnitRead
// @Router /units/address/{address} [get]
func ListByAddress(svc *unitsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		units, err := svc.ListByAddress(c.Context(), c.Params("address"))
		if err != nil {
			return common.Fail(c, err)
		}
		return c.JSON(units)
	}
}

// @Summary List units of a type
// @Tags units
// @Produce json
// @Param type path string true "Unit type"
// @Success 200 {array} dto.UnitRead
// @Router /units/type/{type} [get]
func ListByType(svc *unitsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		units, err := svc.ListByType(c.Context(), c.Params("type"))
		if err != nil {
			return common.Fail(c, err)
		}
		return c.JSON(units)
	}
}
