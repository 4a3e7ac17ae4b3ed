package services

import (
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/gramseva/portal/internal/apperr"
)

// DefaultPageSize is used when the caller does not supply a limit.
const DefaultPageSize = 10

// MaxPageSize caps a caller-supplied limit.
const MaxPageSize = 100

func parseObjectID(id string) (primitive.ObjectID, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, apperr.Newf(apperr.KindInvalidInput, "Invalid ID format: %s", id)
	}
	return objID, nil
}

// normalizePage clamps pagination parameters to sane values.
func normalizePage(page, limit int) (int64, int64) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = DefaultPageSize
	}
	if limit > MaxPageSize {
		limit = MaxPageSize
	}
	return int64(page), int64(limit)
}
