package services

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/gramseva/portal/internal/apperr"
	"github.com/gramseva/portal/internal/models"
)

type NoticeService struct {
	notices *mongo.Collection
}

func NewNoticeService(db *mongo.Database) *NoticeService {
	return &NoticeService{notices: db.Collection("notices")}
}

func (s *NoticeService) Add(ctx context.Context, sarpanch *models.User, heading, details, imagePath string) (*models.Notice, error) {
	notice := &models.Notice{
		ID:          primitive.NewObjectID(),
		VillageName: models.NormalizeVillage(sarpanch.VillageName),
		Heading:     heading,
		Details:     details,
		ImageURL:    imagePath,
		CreatedBy:   sarpanch.ID,
		PublishedAt: time.Now(),
	}
	if _, err := s.notices.InsertOne(ctx, notice); err != nil {
		return nil, apperr.Internal("failed to add notice", err)
	}
	return notice, nil
}

func (s *NoticeService) ListByVillage(ctx context.Context, villageName string, page, limit int) ([]models.Notice, int64, error) {
	filter := bson.M{"village_name": models.NormalizeVillage(villageName)}

	total, err := s.notices.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, apperr.Internal("failed to count notices", err)
	}

	p, l := normalizePage(page, limit)
	opts := options.Find().
		SetSort(bson.D{{Key: "published_at", Value: -1}}).
		SetLimit(l).
		SetSkip(l * (p - 1))
	cursor, err := s.notices.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, apperr.Internal("failed to fetch notices", err)
	}
	defer cursor.Close(ctx)

	var notices []models.Notice
	if err := cursor.All(ctx, &notices); err != nil {
		return nil, 0, apperr.Internal("failed to decode notices", err)
	}
	return notices, total, nil
}

// GetAndCountView returns one notice from the caller's village and bumps its
// view counter atomically. A notice from another village reads as not found.
func (s *NoticeService) GetAndCountView(ctx context.Context, user *models.User, noticeID string) (*models.Notice, error) {
	objID, err := parseObjectID(noticeID)
	if err != nil {
		return nil, err
	}

	filter := bson.M{"_id": objID, "village_name": models.NormalizeVillage(user.VillageName)}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var notice models.Notice
	err = s.notices.FindOneAndUpdate(ctx, filter, bson.M{"$inc": bson.M{"view_count": 1}}, opts).Decode(&notice)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperr.Newf(apperr.KindNotFound, "Notice not found with ID %s", noticeID)
		}
		return nil, apperr.Internal("failed to fetch notice", err)
	}
	return &notice, nil
}

// Delete removes a notice owned by the requesting sarpanch and returns the
// image path, if any, for cleanup.
func (s *NoticeService) Delete(ctx context.Context, sarpanch *models.User, noticeID string) (string, error) {
	objID, err := parseObjectID(noticeID)
	if err != nil {
		return "", err
	}

	var notice models.Notice
	if err := s.notices.FindOne(ctx, bson.M{"_id": objID}).Decode(&notice); err != nil {
		return "", apperr.Newf(apperr.KindNotFound, "Notice not found with ID %s", noticeID)
	}
	if !sarpanch.SameVillage(notice.VillageName) {
		return "", apperr.Newf(apperr.KindNotFound, "Notice not found with ID %s", noticeID)
	}
	if notice.CreatedBy != sarpanch.ID {
		return "", apperr.Forbidden("Not authorized to delete this notice")
	}

	if _, err := s.notices.DeleteOne(ctx, bson.M{"_id": objID}); err != nil {
		return "", apperr.Internal("failed to delete notice", err)
	}
	return notice.ImageURL, nil
}
