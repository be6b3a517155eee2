package user

import (
	"github.com/gofiber/fiber/v2"
	"github.com/unas-org/unas-backend/pkg/dto"
	usersvc "github.com/unas-org/unas-backend/pkg/service/user"
	"github.com/unas-org/unas-backend/webapi/common"
)

func Routes(app *fiber.App, userSvc *usersvc.Service) {
	r := app.Group("/user")
	r.Post("/register", Register(userSvc))
	r.Get("/", List(userSvc))
	r.Get("/:id", Get(userSvc))
	r.Put("/:id", Update(userSvc))
	r.Delete("/:id", Delete(userSvc))
}

// Register creates a user account and mails an email verification code.
// @Summary Register a new user
// @Description Create a user with email, password, username and role
// @Tags users
// @Accept json
// @Produce json
// @Param request body dto.UserCreate true "User creation data"
// @Success 201 {object} dto.UserRead
// @Failure 400 {object} common.ProblemDetails
// @Failure 409 {object} common.ProblemDetails
// @Failure 429 {object} common.ProblemDetails
// @Router /user/register [post]
func Register(userSvc *usersvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[dto.UserCreate](c)
		if input == nil {
			return err // error response already written
		}
		u, err := userSvc.Register(c.Context(), *input)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't create user", err)
		}
		return c.Status(fiber.StatusCreated).JSON(u)
	}
}

// List returns users, optionally only those with a role.
// @Summary List users
// @Tags users
// @Produce json
// @Param role query string false "Role"
// @Success 200 {array} dto.UserRead
// @Router /user [get]
func List(userSvc *usersvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		users, err := userSvc.List(c.Context(), c.Query("role"))
		if err != nil {
			return common.Fail(c, err)
		}
		return c.JSON(users)
	}
}

// Get returns a user and the ids of its units.
// @Summary Get user by ID
// @Tags users
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} dto.UserRead
// @Failure 400 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Router /user/{id} [get]
func Get(userSvc *usersvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok, err := common.ParseID(c, "id")
		if !ok {
			return err
		}
		u, err := userSvc.Get(c.Context(), id)
		if err != nil {
			return common.Fail(c, err)
		}
		return c.JSON(u)
	}
}

// @Summary Update user
// @Tags users
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Param request body dto.UserUpdate true "Fields to change"
// @Success 200 {object} dto.UserRead
// @Failure 400 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Router /user/{id} [put]
func Update(userSvc *usersvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok, err := common.ParseID(c, "id")
		if !ok {
			return err
		}
		input, err := common.BindAndValidate[dto.UserUpdate](c)
		if input == nil {
			return err
		}
		u, err := userSvc.Update(c.Context(), id, *input)
		if err != nil {
			return common.Fail(c, err)
		}
		return c.JSON(u)
	}
}

// Delete deactivates the user; deactivated users cannot log in.
// @Summary Delete user
// @Tags users
// @Param id path string true "User ID"
// @Success 204
// @Failure 404 {object} common.ProblemDetails
// @Router /user/{id} [delete]
func Delete(userSvc *usersvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok, err := common.ParseID(c, "id")
		if !ok {
			return err
		}
		if err := userSvc.Delete(c.Context(), id); err != nil {
			return common.Fail(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}
