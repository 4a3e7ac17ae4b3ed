package handlers

import (
	"github.com/go-playground/validator"
	"github.com/gofiber/fiber/v2"

	"github.com/gramseva/portal/internal/apperr"
	"github.com/gramseva/portal/internal/middleware"
	"github.com/gramseva/portal/internal/models"
	"github.com/gramseva/portal/internal/services"
)

type ComplaintHandler struct {
	complaints *services.ComplaintService
	validate   *validator.Validate
}

func NewComplaintHandler(complaints *services.ComplaintService) *ComplaintHandler {
	return &ComplaintHandler{complaints: complaints, validate: validator.New()}
}

type submitComplaintRequest struct {
	Subject string `json:"subject" validate:"required,max=200"`
	Details string `json:"details" validate:"required"`
}

// Submit handles POST /api/complaints (people only).
func (h *ComplaintHandler) Submit(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	var req submitComplaintRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, apperr.InvalidInput("Invalid request body"))
	}
	if err := h.validate.Struct(req); err != nil {
		return fail(c, validationError(err))
	}

	complaint, err := h.complaints.Submit(c.Context(), user, req.Subject, req.Details)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.StatusCreated, fiber.Map{
		"message":   "Complaint submitted successfully",
		"complaint": complaint,
	})
}

// MyComplaints handles GET /api/complaints/my-complaints (people only).
func (h *ComplaintHandler) MyComplaints(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	page, limit := pageParams(c)

	complaints, total, err := h.complaints.ListMine(c.Context(), user.ID, page, limit)
	if err != nil {
		return fail(c, err)
	}

	payload := listPayload(len(complaints), total, page, limit)
	payload["complaints"] = complaints
	return ok(c, fiber.StatusOK, payload)
}

// VillageComplaints handles GET /api/complaints/village (sarpanch only).
func (h *ComplaintHandler) VillageComplaints(c *fiber.Ctx) error {
	sarpanch := middleware.CurrentUser(c)
	page, limit := pageParams(c)

	status := models.ComplaintStatus(c.Query("status"))
	complaints, total, err := h.complaints.ListVillage(c.Context(), sarpanch.VillageName, status, page, limit)
	if err != nil {
		return fail(c, err)
	}

	payload := listPayload(len(complaints), total, page, limit)
	payload["complaints"] = complaints
	return ok(c, fiber.StatusOK, payload)
}

type replyRequest struct {
	Reply string `json:"reply" validate:"required"`
}

// Reply handles PUT /api/complaints/reply/:id (sarpanch only).
func (h *ComplaintHandler) Reply(c *fiber.Ctx) error {
	sarpanch := middleware.CurrentUser(c)

	var req replyRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, apperr.InvalidInput("Invalid request body"))
	}
	if err := h.validate.Struct(req); err != nil {
		return fail(c, validationError(err))
	}

	complaint, err := h.complaints.Reply(c.Context(), sarpanch, c.Params("id"), req.Reply)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.StatusOK, fiber.Map{
		"message":   "Reply submitted successfully",
		"complaint": complaint,
	})
}

// MarkViewed handles PUT /api/complaints/viewed/:id (sarpanch only).
func (h *ComplaintHandler) MarkViewed(c *fiber.Ctx) error {
	sarpanch := middleware.CurrentUser(c)

	complaint, changed, err := h.complaints.MarkViewed(c.Context(), sarpanch, c.Params("id"))
	if err != nil {
		return fail(c, err)
	}

	message := "Complaint marked as viewed"
	if !changed {
		message = "Complaint status was already Viewed or Replied"
	}
	return ok(c, fiber.StatusOK, fiber.Map{
		"message":   message,
		"complaint": complaint,
	})
}
