package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-playground/validator"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gramseva/portal/internal/apperr"
)

func TestListPayloadPages(t *testing.T) {
	t.Parallel()

	tests := []struct {
		total     int64
		limit     int
		wantPages int64
	}{
		{0, 10, 0},
		{1, 10, 1},
		{10, 10, 1},
		{11, 10, 2},
		{25, 10, 3},
		{25, 0, 3}, // bad limit falls back to 10
	}
	for _, tt := range tests {
		payload := listPayload(5, tt.total, 1, tt.limit)
		assert.Equal(t, tt.wantPages, payload["pages"], "total=%d limit=%d", tt.total, tt.limit)
		assert.Equal(t, tt.total, payload["totalCount"])
		assert.Equal(t, 5, payload["count"])
	}
}

func TestValidationError(t *testing.T) {
	t.Parallel()

	validate := validator.New()
	type form struct {
		Name     string `validate:"required"`
		Email    string `validate:"omitempty,email"`
		Password string `validate:"omitempty,min=6"`
		Gender   string `validate:"omitempty,oneof=Male Female Other"`
	}

	tests := []struct {
		name string
		in   form
		want string
	}{
		{"missing required", form{}, "Field 'Name' is required"},
		{"bad email", form{Name: "a", Email: "nope"}, "Please provide a valid email"},
		{"short password", form{Name: "a", Password: "abc"}, "Field 'Password' must be at least 6 characters long"},
		{"bad gender", form{Name: "a", Gender: "x"}, "Field 'Gender' must be one of: Male Female Other"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validationError(validate.Struct(tt.in))
			assert.True(t, apperr.IsKind(err, apperr.KindInvalidInput))
			assert.Equal(t, tt.want, apperr.PublicMessage(err))
		})
	}
}

func TestFailEnvelope(t *testing.T) {
	app := fiber.New()
	app.Get("/notfound", func(c *fiber.Ctx) error {
		return fail(c, apperr.NotFound("Notice not found"))
	})
	app.Get("/internal", func(c *fiber.Ctx) error {
		return fail(c, apperr.Internal("db down", errors.New("connection refused")))
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/notfound", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Notice not found", body["error"])

	// Internal detail must not reach the client.
	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/internal", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "Internal server error", body["error"])
}

func TestOkEnvelope(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		return ok(c, fiber.StatusCreated, fiber.Map{"message": "done"})
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "done", body["message"])
}
