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

type JobHandler struct {
	jobs    *services.JobService
	store   storage.Store
	janitor *utils.Janitor
}

func NewJobHandler(jobs *services.JobService, store storage.Store, janitor *utils.Janitor) *JobHandler {
	return &JobHandler{jobs: jobs, store: store, janitor: janitor}
}

// Add handles POST /api/jobs (sarpanch only, multipart, image optional under
// field "jobImage").
func (h *JobHandler) Add(c *fiber.Ctx) error {
	sarpanch := middleware.CurrentUser(c)

	heading := strings.TrimSpace(c.FormValue("heading"))
	details := strings.TrimSpace(c.FormValue("details"))
	if heading == "" || details == "" {
		return fail(c, apperr.InvalidInput("Job posting heading and details are required"))
	}

	imagePath := ""
	if file, err := c.FormFile("jobImage"); err == nil {
		imagePath, err = h.store.Save(c.Context(), storage.KindJob, file)
		if err != nil {
			return fail(c, err)
		}
	}

	job, err := h.jobs.Add(c.Context(), sarpanch, heading, details, imagePath)
	if err != nil {
		h.janitor.Discard(imagePath)
		return fail(c, err)
	}
	return ok(c, fiber.StatusCreated, fiber.Map{"message": "Job posting added", "job": job})
}

// List handles GET /api/jobs for both roles.
func (h *JobHandler) List(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	page, limit := pageParams(c)

	jobs, total, err := h.jobs.ListByVillage(c.Context(), user.VillageName, page, limit)
	if err != nil {
		return fail(c, err)
	}

	payload := listPayload(len(jobs), total, page, limit)
	payload["jobs"] = jobs
	return ok(c, fiber.StatusOK, payload)
}

// Delete handles DELETE /api/jobs/:id (owner only).
func (h *JobHandler) Delete(c *fiber.Ctx) error {
	sarpanch := middleware.CurrentUser(c)

	imagePath, err := h.jobs.Delete(c.Context(), sarpanch, c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	h.janitor.Discard(imagePath)

	return ok(c, fiber.StatusOK, fiber.Map{"message": "Job posting deleted", "data": fiber.Map{}})
}
