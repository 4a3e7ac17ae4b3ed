package handlers

import (
	"fmt"

	"github.com/go-playground/validator"
	"github.com/gofiber/fiber/v2"

	"github.com/gramseva/portal/internal/apperr"
)

// fail converts any error into the uniform failure envelope.
func fail(c *fiber.Ctx, err error) error {
	return c.Status(apperr.StatusCode(err)).JSON(fiber.Map{
		"success": false,
		"error":   apperr.PublicMessage(err),
	})
}

// ok wraps a payload in the uniform success envelope.
func ok(c *fiber.Ctx, status int, payload fiber.Map) error {
	payload["success"] = true
	return c.Status(status).JSON(payload)
}

// pageParams reads pagination query parameters with the usual defaults.
func pageParams(c *fiber.Ctx) (int, int) {
	return c.QueryInt("page", 1), c.QueryInt("limit", 10)
}

// listPayload builds the shared list-response fields around a result page.
func listPayload(count int, total int64, page, limit int) fiber.Map {
	if limit < 1 {
		limit = 10
	}
	pages := (total + int64(limit) - 1) / int64(limit)
	return fiber.Map{
		"count":      count,
		"totalCount": total,
		"page":       page,
		"pages":      pages,
	}
}

// validationError turns the first struct-validation failure into an
// InvalidInput error naming the offending field.
func validationError(err error) error {
	if verrs, ok := err.(validator.ValidationErrors); ok && len(verrs) > 0 {
		fe := verrs[0]
		switch fe.Tag() {
		case "required":
			return apperr.Newf(apperr.KindInvalidInput, "Field '%s' is required", fe.Field())
		case "email":
			return apperr.InvalidInput("Please provide a valid email")
		case "min":
			return apperr.Newf(apperr.KindInvalidInput, "Field '%s' must be at least %s characters long", fe.Field(), fe.Param())
		case "oneof":
			return apperr.Newf(apperr.KindInvalidInput, "Field '%s' must be one of: %s", fe.Field(), fe.Param())
		default:
			return apperr.Newf(apperr.KindInvalidInput, "Field '%s' is invalid", fe.Field())
		}
	}
	return apperr.InvalidInput(fmt.Sprintf("Invalid input: %v", err))
}
