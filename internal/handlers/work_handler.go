package handlers

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/gramseva/portal/internal/apperr"
	"github.com/gramseva/portal/internal/middleware"
	"github.com/gramseva/portal/internal/services"
	"github.com/gramseva/portal/internal/storage"
	"github.com/gramseva/portal/internal/utils"
)

// maxWorkImages caps uploads per work record.
const maxWorkImages = 5

type WorkHandler struct {
	works   *services.WorkService
	store   storage.Store
	janitor *utils.Janitor
}

func NewWorkHandler(works *services.WorkService, store storage.Store, janitor *utils.Janitor) *WorkHandler {
	return &WorkHandler{works: works, store: store, janitor: janitor}
}

// Add handles POST /api/works (sarpanch only, multipart). Up to five images
// may be uploaded under "workImages"; additional external URLs may be pasted
// into the "imageUrls" field, separated by commas or newlines.
func (h *WorkHandler) Add(c *fiber.Ctx) error {
	sarpanch := middleware.CurrentUser(c)

	details := strings.TrimSpace(c.FormValue("details"))
	yearValue := strings.TrimSpace(c.FormValue("year"))
	if yearValue == "" || details == "" {
		return fail(c, apperr.InvalidInput("Year and details of work done are required"))
	}
	year, err := strconv.Atoi(yearValue)
	if err != nil {
		return fail(c, apperr.InvalidInput("Year must be a number"))
	}

	var saved []string
	if form, err := c.MultipartForm(); err == nil && form != nil {
		files := form.File["workImages"]
		if len(files) > maxWorkImages {
			return fail(c, apperr.Newf(apperr.KindInvalidInput, "At most %d work images are allowed", maxWorkImages))
		}
		for _, file := range files {
			path, err := h.store.Save(c.Context(), storage.KindWork, file)
			if err != nil {
				for _, p := range saved {
					h.janitor.Discard(p)
				}
				return fail(c, err)
			}
			saved = append(saved, path)
		}
	}

	imageURLs := append([]string(nil), saved...)
	for _, raw := range strings.FieldsFunc(c.FormValue("imageUrls"), func(r rune) bool {
		return r == ',' || r == '\n'
	}) {
		if url := strings.TrimSpace(raw); url != "" {
			imageURLs = append(imageURLs, url)
		}
	}

	work, err := h.works.Add(c.Context(), sarpanch, year, details, imageURLs)
	if err != nil {
		for _, p := range saved {
			h.janitor.Discard(p)
		}
		return fail(c, err)
	}
	return ok(c, fiber.StatusCreated, fiber.Map{
		"message":    "Work record added successfully",
		"workRecord": work,
	})
}

// List handles GET /api/works for both roles, optionally filtered by year.
func (h *WorkHandler) List(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	page, limit := pageParams(c)

	year := 0
	if yearValue := c.Query("year"); yearValue != "" {
		parsed, err := strconv.Atoi(yearValue)
		if err != nil {
			return fail(c, apperr.InvalidInput("Invalid year provided for filtering"))
		}
		year = parsed
	}

	works, total, err := h.works.ListByVillage(c.Context(), user.VillageName, year, page, limit)
	if err != nil {
		return fail(c, err)
	}

	payload := listPayload(len(works), total, page, limit)
	payload["workRecords"] = works
	return ok(c, fiber.StatusOK, payload)
}

// Delete handles DELETE /api/works/:id (owner only).
func (h *WorkHandler) Delete(c *fiber.Ctx) error {
	sarpanch := middleware.CurrentUser(c)

	imagePaths, err := h.works.Delete(c.Context(), sarpanch, c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	for _, path := range imagePaths {
		// Pasted external URLs are not ours to delete.
		if !strings.HasPrefix(path, "http") {
			h.janitor.Discard(path)
		}
	}

	return ok(c, fiber.StatusOK, fiber.Map{"message": "Work record deleted successfully", "data": fiber.Map{}})
}
