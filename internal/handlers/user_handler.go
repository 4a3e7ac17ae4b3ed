package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/gramseva/portal/internal/apperr"
	"github.com/gramseva/portal/internal/middleware"
	"github.com/gramseva/portal/internal/services"
	"github.com/gramseva/portal/internal/utils"
)

// UserHandler serves the sarpanch's directory of people in their village.
type UserHandler struct {
	users   *services.UserService
	janitor *utils.Janitor
}

func NewUserHandler(users *services.UserService, janitor *utils.Janitor) *UserHandler {
	return &UserHandler{users: users, janitor: janitor}
}

// ListPeople handles GET /api/users/people.
func (h *UserHandler) ListPeople(c *fiber.Ctx) error {
	sarpanch := middleware.CurrentUser(c)
	page, limit := pageParams(c)

	people, total, err := h.users.ListPeople(c.Context(), sarpanch.VillageName, c.Query("search"), page, limit)
	if err != nil {
		return fail(c, err)
	}

	payload := listPayload(len(people), total, page, limit)
	payload["people"] = people
	return ok(c, fiber.StatusOK, payload)
}

// GetPerson handles GET /api/users/people/:id.
func (h *UserHandler) GetPerson(c *fiber.Ctx) error {
	sarpanch := middleware.CurrentUser(c)

	person, err := h.users.GetPerson(c.Context(), sarpanch.VillageName, c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.StatusOK, fiber.Map{"person": person})
}

type updatePersonRequest struct {
	Name          *string `json:"name"`
	Mobile        *string `json:"mobile"`
	Email         *string `json:"email"`
	Gender        *string `json:"gender"`
	Age           *int    `json:"age"`
	AadhaarNo     *string `json:"aadhaarNo"`
	DOB           *string `json:"dob"`
	MaritalStatus *string `json:"maritalStatus"`
	Occupation    *string `json:"occupation"`
}

// UpdatePerson handles PUT /api/users/people/:id.
func (h *UserHandler) UpdatePerson(c *fiber.Ctx) error {
	sarpanch := middleware.CurrentUser(c)

	var req updatePersonRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, apperr.InvalidInput("Invalid request body"))
	}

	upd := services.PersonUpdate{
		Name:          req.Name,
		Mobile:        req.Mobile,
		Email:         req.Email,
		Gender:        req.Gender,
		Age:           req.Age,
		AadhaarNo:     req.AadhaarNo,
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

	person, err := h.users.UpdatePerson(c.Context(), sarpanch.VillageName, c.Params("id"), upd)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.StatusOK, fiber.Map{
		"message": "Person details updated successfully",
		"person":  person,
	})
}

// DeletePerson handles DELETE /api/users/people/:id.
func (h *UserHandler) DeletePerson(c *fiber.Ctx) error {
	sarpanch := middleware.CurrentUser(c)

	person, err := h.users.DeletePerson(c.Context(), sarpanch.VillageName, c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	h.janitor.Discard(person.ProfilePhoto)

	return ok(c, fiber.StatusOK, fiber.Map{
		"message": "Person '" + person.Name + "' deleted successfully",
		"data":    fiber.Map{},
	})
}
