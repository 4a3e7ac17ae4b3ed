package services

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/gramseva/portal/internal/apperr"
	"github.com/gramseva/portal/internal/models"
)

type WorkService struct {
	works *mongo.Collection
}

func NewWorkService(db *mongo.Database) *WorkService {
	return &WorkService{works: db.Collection("works")}
}

// ValidWorkYear bounds the year of a work record to 1900..next year.
func ValidWorkYear(year int) bool {
	return year >= models.MinWorkYear && year <= time.Now().Year()+1
}

func (s *WorkService) Add(ctx context.Context, sarpanch *models.User, year int, details string, imageURLs []string) (*models.WorkDone, error) {
	if !ValidWorkYear(year) {
		return nil, apperr.Newf(apperr.KindInvalidInput, "Please provide a valid year between %d and %d", models.MinWorkYear, time.Now().Year()+1)
	}

	work := &models.WorkDone{
		ID:          primitive.NewObjectID(),
		VillageName: models.NormalizeVillage(sarpanch.VillageName),
		Year:        year,
		Details:     details,
		ImageURLs:   imageURLs,
		AddedBy:     sarpanch.ID,
		AddedAt:     time.Now(),
	}
	if _, err := s.works.InsertOne(ctx, work); err != nil {
		return nil, apperr.Internal("failed to add work record", err)
	}
	return work, nil
}

// ListByVillage returns the village's work records, optionally filtered by
// year, newest first.
func (s *WorkService) ListByVillage(ctx context.Context, villageName string, year, page, limit int) ([]models.WorkDone, int64, error) {
	filter := bson.M{"village_name": models.NormalizeVillage(villageName)}
	if year != 0 {
		filter["year"] = year
	}

	total, err := s.works.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, apperr.Internal("failed to count work records", err)
	}

	p, l := normalizePage(page, limit)
	opts := options.Find().
		SetSort(bson.D{{Key: "year", Value: -1}, {Key: "added_at", Value: -1}}).
		SetLimit(l).
		SetSkip(l * (p - 1))
	cursor, err := s.works.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, apperr.Internal("failed to fetch work records", err)
	}
	defer cursor.Close(ctx)

	var works []models.WorkDone
	if err := cursor.All(ctx, &works); err != nil {
		return nil, 0, apperr.Internal("failed to decode work records", err)
	}
	return works, total, nil
}

// Delete removes a work record owned by the requesting sarpanch and returns
// its image paths for cleanup.
func (s *WorkService) Delete(ctx context.Context, sarpanch *models.User, workID string) ([]string, error) {
	objID, err := parseObjectID(workID)
	if err != nil {
		return nil, err
	}

	var work models.WorkDone
	if err := s.works.FindOne(ctx, bson.M{"_id": objID}).Decode(&work); err != nil {
		return nil, apperr.Newf(apperr.KindNotFound, "Work record not found with ID %s", workID)
	}
	if !sarpanch.SameVillage(work.VillageName) {
		return nil, apperr.Newf(apperr.KindNotFound, "Work record not found with ID %s", workID)
	}
	if work.AddedBy != sarpanch.ID {
		return nil, apperr.Forbidden("Not authorized to delete this work record")
	}

	if _, err := s.works.DeleteOne(ctx, bson.M{"_id": objID}); err != nil {
		return nil, apperr.Internal("failed to delete work record", err)
	}
	return work.ImageURLs, nil
}
