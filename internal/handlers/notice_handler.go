package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/gramseva/portal/internal/apperr"
	"github.com/gramseva/portal/internal/middleware"
	"github.com/gramseva/portal/internal/services"
	"github.com/gramseva/portal/internal/storage"
	"github.com/gramseva/portal/internal/utils"
)

type NoticeHandler struct {
	notices *services.NoticeService
	store   storage.Store
	janitor *utils.Janitor
}

func NewNoticeHandler(notices *services.NoticeService, store storage.Store, janitor *utils.Janitor) *NoticeHandler {
	return &NoticeHandler{notices: notices, store: store, janitor: janitor}
}

// Add handles POST /api/notices (sarpanch only, multipart, image optional
// under field "noticeImage").
func (h *NoticeHandler) Add(c *fiber.Ctx) error {
	sarpanch := middleware.CurrentUser(c)

	heading := strings.TrimSpace(c.FormValue("heading"))
	details := strings.TrimSpace(c.FormValue("details"))
	if heading == "" || details == "" {
		return fail(c, apperr.InvalidInput("Notice heading and details are required"))
	}

	imagePath := ""
	if file, err := c.FormFile("noticeImage"); err == nil {
		imagePath, err = h.store.Save(c.Context(), storage.KindNotice, file)
		if err != nil {
			return fail(c, err)
		}
	}

	notice, err := h.notices.Add(c.Context(), sarpanch, heading, details, imagePath)
	if err != nil {
		h.janitor.Discard(imagePath)
		return fail(c, err)
	}
	return ok(c, fiber.StatusCreated, fiber.Map{"message": "Notice added", "notice": notice})
}

// List handles GET /api/notices for both roles, scoped to the caller's
// village.
func (h *NoticeHandler) List(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	page, limit := pageParams(c)

	notices, total, err := h.notices.ListByVillage(c.Context(), user.VillageName, page, limit)
	if err != nil {
		return fail(c, err)
	}

	payload := listPayload(len(notices), total, page, limit)
	payload["notices"] = notices
	return ok(c, fiber.StatusOK, payload)
}

// Get handles GET /api/notices/:id and bumps the view counter.
func (h *NoticeHandler) Get(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	notice, err := h.notices.GetAndCountView(c.Context(), user, c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.StatusOK, fiber.Map{"notice": notice})
}

// Delete handles DELETE /api/notices/:id (owner only).
func (h *NoticeHandler) Delete(c *fiber.Ctx) error {
	sarpanch := middleware.CurrentUser(c)

	imagePath, err := h.notices.Delete(c.Context(), sarpanch, c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	h.janitor.Discard(imagePath)

	return ok(c, fiber.StatusOK, fiber.Map{"message": "Notice deleted", "data": fiber.Map{}})
}
