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

type SchemeHandler struct {
	schemes *services.SchemeService
	store   storage.Store
	janitor *utils.Janitor
}

func NewSchemeHandler(schemes *services.SchemeService, store storage.Store, janitor *utils.Janitor) *SchemeHandler {
	return &SchemeHandler{schemes: schemes, store: store, janitor: janitor}
}

// Add handles POST /api/schemes (sarpanch only). Accepts an optional uploaded
// image under "schemeImage" or an external URL under "imageUrl".
func (h *SchemeHandler) Add(c *fiber.Ctx) error {
	sarpanch := middleware.CurrentUser(c)

	heading := strings.TrimSpace(c.FormValue("heading"))
	details := strings.TrimSpace(c.FormValue("details"))
	if heading == "" || details == "" {
		return fail(c, apperr.InvalidInput("Scheme heading and details are required"))
	}

	imagePath := strings.TrimSpace(c.FormValue("imageUrl"))
	uploaded := false
	if file, err := c.FormFile("schemeImage"); err == nil {
		imagePath, err = h.store.Save(c.Context(), storage.KindScheme, file)
		if err != nil {
			return fail(c, err)
		}
		uploaded = true
	}

	scheme, err := h.schemes.Add(c.Context(), sarpanch, heading, details, imagePath)
	if err != nil {
		if uploaded {
			h.janitor.Discard(imagePath)
		}
		return fail(c, err)
	}
	return ok(c, fiber.StatusCreated, fiber.Map{"message": "Scheme added successfully", "scheme": scheme})
}

// List handles GET /api/schemes for both roles.
func (h *SchemeHandler) List(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	page, limit := pageParams(c)

	schemes, total, err := h.schemes.ListByVillage(c.Context(), user.VillageName, page, limit)
	if err != nil {
		return fail(c, err)
	}

	payload := listPayload(len(schemes), total, page, limit)
	payload["schemes"] = schemes
	return ok(c, fiber.StatusOK, payload)
}

// Delete handles DELETE /api/schemes/:id (owner only).
func (h *SchemeHandler) Delete(c *fiber.Ctx) error {
	sarpanch := middleware.CurrentUser(c)

	imagePath, err := h.schemes.Delete(c.Context(), sarpanch, c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	if !strings.HasPrefix(imagePath, "http") {
		h.janitor.Discard(imagePath)
	}

	return ok(c, fiber.StatusOK, fiber.Map{"message": "Scheme deleted successfully", "data": fiber.Map{}})
}
