package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ChangePassword must reject a request with no bound user instead of
// dereferencing nil, matching the guard in Me.
func TestChangePassword_NoAuthenticatedUser(t *testing.T) {
	h := NewAuthHandler(nil, nil, nil)

	app := fiber.New()
	app.Put("/change-password", h.ChangePassword)

	req := httptest.NewRequest(http.MethodPut, "/change-password",
		strings.NewReader(`{"currentPassword":"old","newPassword":"longenough"}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
