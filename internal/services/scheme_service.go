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

type SchemeService struct {
	schemes *mongo.Collection
}

func NewSchemeService(db *mongo.Database) *SchemeService {
	return &SchemeService{schemes: db.Collection("schemes")}
}

func (s *SchemeService) Add(ctx context.Context, sarpanch *models.User, heading, details, imagePath string) (*models.Scheme, error) {
	scheme := &models.Scheme{
		ID:          primitive.NewObjectID(),
		VillageName: models.NormalizeVillage(sarpanch.VillageName),
		Heading:     heading,
		Details:     details,
		ImageURL:    imagePath,
		AddedBy:     sarpanch.ID,
		AddedAt:     time.Now(),
	}
	if _, err := s.schemes.InsertOne(ctx, scheme); err != nil {
		return nil, apperr.Internal("failed to add scheme", err)
	}
	return scheme, nil
}

func (s *SchemeService) ListByVillage(ctx context.Context, villageName string, page, limit int) ([]models.Scheme, int64, error) {
	filter := bson.M{"village_name": models.NormalizeVillage(villageName)}

	total, err := s.schemes.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, apperr.Internal("failed to count schemes", err)
	}

	p, l := normalizePage(page, limit)
	opts := options.Find().
		SetSort(bson.D{{Key: "added_at", Value: -1}}).
		SetLimit(l).
		SetSkip(l * (p - 1))
	cursor, err := s.schemes.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, apperr.Internal("failed to fetch schemes", err)
	}
	defer cursor.Close(ctx)

	var schemes []models.Scheme
	if err := cursor.All(ctx, &schemes); err != nil {
		return nil, 0, apperr.Internal("failed to decode schemes", err)
	}
	return schemes, total, nil
}

func (s *SchemeService) Delete(ctx context.Context, sarpanch *models.User, schemeID string) (string, error) {
	objID, err := parseObjectID(schemeID)
	if err != nil {
		return "", err
	}

	var scheme models.Scheme
	if err := s.schemes.FindOne(ctx, bson.M{"_id": objID}).Decode(&scheme); err != nil {
		return "", apperr.Newf(apperr.KindNotFound, "Scheme not found with ID %s", schemeID)
	}
	if !sarpanch.SameVillage(scheme.VillageName) {
		return "", apperr.Newf(apperr.KindNotFound, "Scheme not found with ID %s", schemeID)
	}
	if scheme.AddedBy != sarpanch.ID {
		return "", apperr.Forbidden("Not authorized to delete this scheme")
	}

	if _, err := s.schemes.DeleteOne(ctx, bson.M{"_id": objID}); err != nil {
		return "", apperr.Internal("failed to delete scheme", err)
	}
	return scheme.ImageURL, nil
}
