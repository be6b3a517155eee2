package common

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/unas-org/unas-backend/pkg/domain"
)

func TestErrorToStatusCode(t *testing.T) {
	t.Parallel()
	tests := []struct {
		err  error
		want int
	}{
		{domain.Validationf("bad"), fiber.StatusBadRequest},
		{fmt.Errorf("%w: nope", domain.ErrUnauthorized), fiber.StatusUnauthorized},
		{domain.ErrForbidden, fiber.StatusForbidden},
		{domain.NotFoundf("unit with ID '%s' not found", "x"), fiber.StatusNotFound},
		{&domain.ReferenceError{Column: "unit_id"}, fiber.StatusNotFound},
		{domain.ErrAlreadyExists, fiber.StatusConflict},
		{domain.Conflictf("taken"), fiber.StatusConflict},
		{errors.New("boom"), fiber.StatusInternalServerError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ErrorToStatusCode(tt.err), tt.err.Error())
	}
}

func TestStatusTitle(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "Not Found", StatusTitle(fiber.StatusNotFound))
	assert.Equal(t, "Conflict", StatusTitle(fiber.StatusConflict))
	assert.Equal(t, "Too Many Requests", StatusTitle(fiber.StatusTooManyRequests))
}

type payload struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"omitempty,email"`
}

func do(t *testing.T, app *fiber.App, req *http.Request) (int, string, map[string]any) {
	t.Helper()
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close() //nolint:errcheck
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var body map[string]any
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &body), string(raw))
	}
	return resp.StatusCode, resp.Header.Get(fiber.HeaderContentType), body
}

func TestProblemDetailsJSON(t *testing.T) {
	t.Parallel()
	app := fiber.New()
	app.Get("/missing", func(c *fiber.Ctx) error {
		return Fail(c, domain.NotFoundf("order with ID '42' not found"))
	})
	app.Get("/override", func(c *fiber.Ctx) error {
		return ProblemDetailsJSON(c, "Too Many Requests", errors.New("rate limit exceeded"), fiber.StatusTooManyRequests)
	})

	status, ctype, body := do(t, app, httptest.NewRequest(http.MethodGet, "/missing", nil))
	assert.Equal(t, fiber.StatusNotFound, status)
	assert.Equal(t, "application/problem+json", ctype)
	assert.Equal(t, "Not Found", body["title"])
	assert.Contains(t, body["detail"], "order with ID '42' not found")
	assert.Equal(t, "/missing", body["instance"])

	status, _, body = do(t, app, httptest.NewRequest(http.MethodGet, "/override", nil))
	assert.Equal(t, fiber.StatusTooManyRequests, status)
	assert.EqualValues(t, fiber.StatusTooManyRequests, body["status"])
}

func TestBindAndValidate(t *testing.T) {
	t.Parallel()
	app := fiber.New()
	app.Post("/", func(c *fiber.Ctx) error {
		input, err := BindAndValidate[payload](c)
		if input == nil {
			return err
		}
		return c.JSON(input)
	})
	post := func(body string) *http.Request {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		return req
	}

	status, _, body := do(t, app, post(`{"name":"Arroz"}`))
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "Arroz", body["name"])

	status, _, body = do(t, app, post(`{"email":"nope"}`))
	assert.Equal(t, fiber.StatusBadRequest, status)
	errs := body["errors"].([]any)
	require.Len(t, errs, 2)
	assert.Equal(t, "name", errs[0].(map[string]any)["field"])
	assert.Equal(t, "name is required", errs[0].(map[string]any)["message"])
	assert.Equal(t, "email", errs[1].(map[string]any)["field"])

	status, _, _ = do(t, app, post(`{"name":`))
	assert.Equal(t, fiber.StatusBadRequest, status)
}

func TestParseIDAndQueryUUID(t *testing.T) {
	t.Parallel()
	app := fiber.New()
	app.Get("/units/:id", func(c *fiber.Ctx) error {
		id, ok, err := ParseID(c, "id")
		if !ok {
			return err
		}
		unitID, err := QueryUUID(c, "unit_id")
		if err != nil {
			return Fail(c, err)
		}
		return c.JSON(fiber.Map{"id": id, "unit_id": unitID})
	})

	status, _, body := do(t, app, httptest.NewRequest(http.MethodGet, "/units/8b7e8f5c-0f6e-4f57-9b43-3c1f0b0f5b11", nil))
	assert.Equal(t, fiber.StatusOK, status)
	assert.Nil(t, body["unit_id"])

	status, _, _ = do(t, app, httptest.NewRequest(http.MethodGet, "/units/not-a-uuid", nil))
	assert.Equal(t, fiber.StatusBadRequest, status)

	status, _, body = do(t, app, httptest.NewRequest(http.MethodGet, "/units/8b7e8f5c-0f6e-4f57-9b43-3c1f0b0f5b11?unit_id=x", nil))
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "Bad Request", body["title"])
}
