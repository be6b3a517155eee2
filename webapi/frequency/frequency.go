package frequency

import (
	"github.com/gofiber/fiber/v2"
	"github.com/unas-org/unas-backend/pkg/dto"
	frequencysvc "github.com/unas-org/unas-backend/pkg/service/frequency"
	"github.com/unas-org/unas-backend/webapi/common"
)

func Routes(app *fiber.App, svc *frequencysvc.Service) {
	r := app.Group("/frequency")
	r.Get("/", List(svc))
	r.Post("/", Create(svc))
	r.Get("/:id", Get(svc))
	r.Put("/:id", Update(svc))
	r.Delete("/:id", Delete(svc))
}

// List returns daily attendance records, newest first.
// @Summary List attendance
// @Tags frequency
// @Produce json
// @Param initial_date query string false "First day (YYYY-MM-DD)"
// @Param final_date query string false "Last day (YYYY-MM-DD)"
// @Param unit_id query string false "Unit ID"
// @Success 200 {array} dto.FrequencyRead
// @Failure 400 {object} common.ProblemDetails
// @Router /frequency [get]
func List(svc *frequencysvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		unitID, err := common.QueryUUID(c, "unit_id")
		if err != nil {
			return common.Fail(c, err)
		}
		records, err := svc.List(c.Context(), dto.FrequencyFilter{
			InitialDate: c.Query("initial_date"),
			FinalDate:   c.Query("final_date"),
			UnitID:      unitID,
		})
		if err != nil {
			return common.Fail(c, err)
		}
		return c.JSON(records)
	}
}

// @Summary Get attendance record
// @Tags frequency
// @Produce json
// @Param id path string true "Frequency ID"
// @Success 200 {object} dto.FrequencyRead
// @Failure 404 {object} common.ProblemDetails
// @Router /frequency/{id} [get]
func Get(svc *frequencysvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok, err := common.ParseID(c, "id")
		if !ok {
			return err
		}
		f, err := svc.Get(c.Context(), id)
		if err != nil {
			return common.Fail(c, err)
		}
		return c.JSON(f)
	}
}

// Create records how many people a unit served on one day.
// @Summary Record attendance
// @Tags frequency
// @Accept json
// @Produce json
// @Param request body dto.FrequencyCreate true "Attendance"
// @Success 201 {object} dto.FrequencyRead
// @Failure 400 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Failure 409 {object} common.ProblemDetails
// @Router /frequency [post]
func Create(svc *frequencysvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[dto.FrequencyCreate](c)
		if input == nil {
			return err
		}
		f, err := svc.Create(c.Context(), *input)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't record attendance", err)
		}
		return c.Status(fiber.StatusCreated).JSON(f)
	}
}

// @Summary Update attendance record
// @Tags frequency
// @Accept json
// @Produce json
// @Param id path string true "Frequency ID"
// @Param request body dto.FrequencyUpdate true "Fields to change"
// @Success 200 {object} dto.FrequencyRead
// @Failure 400 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Failure 409 {object} common.ProblemDetails
// @Router /frequency/{id} [put]
func Update(svc *frequencysvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok, err := common.ParseID(c, "id")
		if !ok {
			return err
		}
		input, err := common.BindAndValidate[dto.FrequencyUpdate](c)
		if input == nil {
			return err
		}
		f, err := svc.Update(c.Context(), id, *input)
		if err != nil {
			return common.Fail(c, err)
		}
		return c.JSON(f)
	}
}

// @Summary Delete attendance record
// @Tags frequency
// @Param id path string true "Frequency ID"
// @Success 204
// @Failure 404 {object} common.ProblemDetails
// @Router /frequency/{id} [delete]
func Delete(svc *frequencysvc.Service) fiber.Handler {
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
