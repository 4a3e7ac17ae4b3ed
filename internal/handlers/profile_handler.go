package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/gramseva/portal/internal/apperr"
	"github.com/gramseva/portal/internal/middleware"
	"github.com/gramseva/portal/internal/services"
)

type ProfileHandler struct {
	users *services.UserService
}

func NewProfileHandler(users *services.UserService) *ProfileHandler {
	return &ProfileHandler{users: users}
}

// GetMe handles GET /api/profile/me.
func (h *ProfileHandler) GetMe(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	return ok(c, fiber.StatusOK, fiber.Map{"user": user})
}

type updateProfileRequest struct {
	Name          *string `json:"name"`
	Gender        *string `json:"gender"`
	Age           *int    `json:"age"`
	DOB           *string `json:"dob"`
	MaritalStatus *string `json:"maritalStatus"`
	Occupation    *string `json:"occupation"`
}

// UpdateMe handles PUT /api/profile/me. Absent fields are left unchanged.
func (h *ProfileHandler) UpdateMe(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	var req updateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, apperr.InvalidInput("Invalid request body"))
	}

	upd := services.ProfileUpdate{
		Name:          req.Name,
		Gender:        req.Gender,
		Age:           req.Age,
		MaritalStatus: req.MaritalStatus,
		Occupation:    req.Occupation,
	}
	if req.DOB != nil {
		dob, err := time.Parse("2006-01-02", *req.DOB)
		if err != nil {
			return fail(c, apperr.InvalidInput("Field 'dob' must be a date in YYYY-MM-DD format"))
		}
		upd.DOB = &dob
	}

	updated, err := h.users.UpdateMyProfile(c.Context(), user, upd)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.StatusOK, fiber.Map{
		"message": "Profile updated successfully",
		"user":    updated,
	})
}
