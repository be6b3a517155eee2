package storage

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/unas-org/unas-backend/pkg/domain"
	"github.com/unas-org/unas-backend/pkg/dto"
	storagesvc "github.com/unas-org/unas-backend/pkg/service/storage"
	"github.com/unas-org/unas-backend/webapi/common"
)

func Routes(app *fiber.App, svc *storagesvc.Service) {
	r := app.Group("/storage")
	r.Get("/", List(svc))
	r.Get("/item", GetItem(svc))
	r.Get("/movements", ListMovements(svc))
	r.Post("/entry", RegisterEntry(svc))
	r.Post("/exit", RegisterExit(svc))
	r.Patch("/:id/used", UpdateUsed(svc))
}

func requiredUnit(c *fiber.Ctx) (uuid.UUID, error) {
	id, err := common.QueryUUID(c, "unit_id")
	if err != nil {
		return uuid.Nil, err
	}
	if id == nil {
		return uuid.Nil, domain.Validationf("unit_id is required")
	}
	return *id, nil
}

// List returns the stock of one unit.
// @Summary List storage items of a unit
// @Tags storage
// @Produce json
// @Param unit_id query string true "Unit ID"
// @Success 200 {array} dto.StorageRead
// @Failure 400 {object} common.ProblemDetails
// @Router /storage [get]
func List(svc *storagesvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		unitID, err := requiredUnit(c)
		if err != nil {
			return common.Fail(c, err)
		}
		items, err := svc.List(c.Context(), unitID)
		if err != nil {
			return common.Fail(c, err)
		}
		return c.JSON(items)
	}
}

// GetItem finds an item by name within a unit.
// @Summary Get a storage item by name
// @Tags storage
// @Produce json
// @Param unit_id query string true "Unit ID"
// @Param name query string true "Item name"
// @Success 200 {object} dto.StorageRead
// @Failure 400 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Router /storage/item [get]
func GetItem(svc *storagesvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		unitID, err := requiredUnit(c)
		if err != nil {
			return common.Fail(c, err)
		}
		name := c.Query("name")
		if name == "" {
			return common.Fail(c, domain.Validationf("name is required"))
		}
		item, err := svc.GetByName(c.Context(), unitID, name)
		if err != nil {
			return common.Fail(c, err)
		}
		return c.JSON(item)
	}
}

// ListMovements returns the entry/exit history of a unit, newest first.
// @Summary List storage movements
// @Tags storage
// @Produce json
// @Param unit_id query string true "Unit ID"
// @Param kind query string false "entry or exit"
// @Success 200 {array} dto.StorageMovementRead
// @Failure 400 {object} common.ProblemDetails
// @Router /storage/movements [get]
func ListMovements(svc *storagesvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		unitID, err := requiredUnit(c)
		if err != nil {
			return common.Fail(c, err)
		}
		movements, err := svc.ListMovements(c.Context(), unitID, c.Query("kind"))
		if err != nil {
			return common.Fail(c, err)
		}
		return c.JSON(movements)
	}
}

// RegisterEntry adds stock to a unit.
// @Summary Register a storage entry
// @Tags storage
// @Accept json
// @Produce json
// @Param request body dto.StorageEntry true "Entry"
// @Success 201 {object} dto.StorageRead
// @Failure 400 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Router /storage/entry [post]
func RegisterEntry(svc *storagesvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[dto.StorageEntry](c)
		if input == nil {
			return err
		}
		item, err := svc.RegisterEntry(c.Context(), *input)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Storage entry rejected", err)
		}
		return c.Status(fiber.StatusCreated).JSON(item)
	}
}

// RegisterExit consumes stock. Either every item is applied or none.
// @Summary Register a storage exit
// @Tags storage
// @Accept json
// @Produce json
// @Param request body dto.StorageExit true "Exit"
// @Success 200 {array} dto.StorageRead
// @Failure 400 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Router /storage/exit [post]
func RegisterExit(svc *storagesvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[dto.StorageExit](c)
		if input == nil {
			return err
		}
		items, err := svc.RegisterExit(c.Context(), *input)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Storage exit rejected", err)
		}
		return c.JSON(items)
	}
}

// UpdateUsed sets the used quantity of an item.
// @Summary Set the used quantity of a storage item
// @Tags storage
// @Accept json
// @Produce json
// @Param id path string true "Storage item ID"
// @Param request body dto.StorageUsedUpdate true "Used quantity"
// @Success 200 {object} dto.StorageRead
// @Failure 400 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Router /storage/{id}/used [patch]
func UpdateUsed(svc *storagesvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok, err := common.ParseID(c, "id")
		if !ok {
			return err
		}
		input, err := common.BindAndValidate[dto.StorageUsedUpdate](c)
		if input == nil {
			return err
		}
		item, err := svc.UpdateUsedQuantity(c.Context(), id, input.UsedQuantity)
		if err != nil {
			return common.Fail(c, err)
		}
		return c.JSON(item)
	}
}
