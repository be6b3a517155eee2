package unituser

import (
	"github.com/gofiber/fiber/v2"
	"github.com/unas-org/unas-backend/pkg/dto"
	unitusersvc "github.com/unas-org/unas-backend/pkg/service/unituser"
	"github.com/unas-org/unas-backend/webapi/common"
)

func Routes(app *fiber.App, svc *unitusersvc.Service) {
	r := app.Group("/user-unit")
	r.Post("/", Create(svc))
	r.Get("/", List(svc))
	r.Get("/:user_id/units", ListUnitsOfUser(svc))
	r.Get("/:unit_id/users", ListUsersOfUnit(svc))
	r.Get("/:id", Get(svc))
	r.Put("/:id", Update(svc))
	r.Delete("/:id", Delete(svc))
}

// Create links a user to a unit.
// @Summary Link user to unit
// @Tags unit-users
// @Accept json
// @Produce json
// @Param request body dto.UnitUserCreate true "Link"
// @Success 201 {object} dto.UnitUserRead
// @Failure 400 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Failure 409 {object} common.ProblemDetails
// @Router /user-unit [post]
func Create(svc *unitusersvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[dto.UnitUserCreate](c)
		if input == nil {
			return err
		}
		link, err := svc.Create(c.Context(), *input)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't link user to unit", err)
		}
		return c.Status(fiber.StatusCreated).JSON(link)
	}
}

// @Summary List user-unit links
// @Tags unit-users
// @Produce json
// @Success 200 {array} dto.UnitUserRead
// @Router /user-unit [get]
func List(svc *unitusersvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		links, err := svc.List(c.Context())
		if err != nil {
			return common.Fail(c, err)
		}
		return c.JSON(links)
	}
}

// @Summary Get user-unit link
// @Tags unit-users
// @Produce json
// @Param id path string true "Link ID"
// @Success 200 {object} dto.UnitUserRead
// @Failure 404 {object} common.ProblemDetails
// @Router /user-unit/{id} [get]
func Get(svc *unitusersvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok, err := common.ParseID(c, "id")
		if !ok {
			return err
		}
		link, err := svc.Get(c.Context(), id)
		if err != nil {
			return common.Fail(c, err)
		}
		return c.JSON(link)
	}
}

// @Summary Change the role of a link
// @Tags unit-users
// @Accept json
// @Produce json
// @Param id path string true "Link ID"
// @Param request body dto.UnitUserUpdate true "Role"
// @Success 200 {object} dto.UnitUserRead
// @Failure 404 {object} common.ProblemDetails
// @Router /user-unit/{id} [put]
func Update(svc *unitusersvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok, err := common.ParseID(c, "id")
		if !ok {
			return err
		}
		input, err := common.BindAndValidate[dto.UnitUserUpdate](c)
		if input == nil {
			return err
		}
		link, err := svc.Update(c.Context(), id, *input)
		if err != nil {
			return common.Fail(c, err)
		}
		return c.JSON(link)
	}
}

// @Summary Unlink user from unit
// @Tags unit-users
// @Param id path string true "Link ID"
// @Success 204
// @Failure 404 {object} common.ProblemDetails
// @Router /user-unit/{id} [delete]
func Delete(svc *unitusersvc.Service) fiber.Handler {
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

// @Summary List the units of a user
// @Tags unit-users
// @Produce json
// @Param user_id path string true "User ID"
// @Success 200 {array} dto.UnitUserRead
// @Router /user-unit/{user_id}/units [get]
func ListUnitsOfUser(svc *unitusersvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, ok, err := common.ParseID(c, "user_id")
		if !ok {
			return err
		}
		links, err := svc.ListUnitsOfUser(c.Context(), userID)
		if err != nil {
			return common.Fail(c, err)
		}
		return c.JSON(links)
	}
}

// @Summary List the users of a unit
// @Tags unit-users
// @Produce json
// @Param unit_id path string true "Unit ID"
// @Success 200 {array} dto.UnitUserRead
// @Router /user-unit/{unit_id}/users [get]
func ListUsersOfUnit(svc *unitusersvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		unitID, ok, err := common.ParseID(c, "unit_id")
		if !ok {
			return err
		}
		links, err := svc.ListUsersOfUnit(c.Context(), unitID)
		if err != nil {
			return common.Fail(c, err)
		}
		return c.JSON(links)
	}
}
