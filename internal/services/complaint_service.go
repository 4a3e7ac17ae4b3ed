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

type ComplaintService struct {
	complaints *mongo.Collection
}

func NewComplaintService(db *mongo.Database) *ComplaintService {
	return &ComplaintService{complaints: db.Collection("complaints")}
}

// Submit files a complaint for the submitter's own village.
func (s *ComplaintService) Submit(ctx context.Context, user *models.User, subject, details string) (*models.Complaint, error) {
	complaint := &models.Complaint{
		ID:          primitive.NewObjectID(),
		VillageName: models.NormalizeVillage(user.VillageName),
		Subject:     subject,
		Details:     details,
		Status:      models.StatusPending,
		SubmittedBy: user.ID,
		SubmittedAt: time.Now(),
	}
	if _, err := s.complaints.InsertOne(ctx, complaint); err != nil {
		return nil, apperr.Internal("failed to submit complaint", err)
	}
	return complaint, nil
}

// ListMine returns the caller's own complaints, newest first.
func (s *ComplaintService) ListMine(ctx context.Context, userID primitive.ObjectID, page, limit int) ([]models.Complaint, int64, error) {
	return s.list(ctx, bson.M{"submitted_by": userID},
		bson.D{{Key: "submitted_at", Value: -1}}, page, limit)
}

// ListVillage returns complaints for the sarpanch's village, pending first,
// optionally narrowed to one status.
func (s *ComplaintService) ListVillage(ctx context.Context, villageName string, status models.ComplaintStatus, page, limit int) ([]models.Complaint, int64, error) {
	filter := bson.M{"village_name": models.NormalizeVillage(villageName)}
	if status != "" {
		if !status.Valid() {
			return nil, 0, apperr.Newf(apperr.KindInvalidInput, "Invalid status filter: %s", status)
		}
		filter["status"] = status
	}
	return s.list(ctx, filter,
		bson.D{{Key: "status", Value: 1}, {Key: "submitted_at", Value: -1}}, page, limit)
}

// Reply sets the reply text and moves the complaint to Replied. Re-replying
// overwrites the text and timestamp; the status itself never regresses.
func (s *ComplaintService) Reply(ctx context.Context, sarpanch *models.User, complaintID, replyText string) (*models.Complaint, error) {
	complaint, err := s.findInVillage(ctx, sarpanch.VillageName, complaintID)
	if err != nil {
		return nil, err
	}
	if !complaint.Status.CanTransition(models.StatusReplied) {
		return nil, apperr.Newf(apperr.KindInvalidInput, "Complaint in status %s cannot be replied to", complaint.Status)
	}

	now := time.Now()
	set := bson.M{
		"reply":      replyText,
		"status":     models.StatusReplied,
		"replied_by": sarpanch.ID,
		"replied_at": now,
	}
	if complaint.ViewedAt == nil {
		set["viewed_at"] = now
	}
	return s.applyUpdate(ctx, complaint.ID, set)
}

// MarkViewed moves Pending to Viewed. Complaints already Viewed or Replied
// are returned unchanged.
func (s *ComplaintService) MarkViewed(ctx context.Context, sarpanch *models.User, complaintID string) (*models.Complaint, bool, error) {
	complaint, err := s.findInVillage(ctx, sarpanch.VillageName, complaintID)
	if err != nil {
		return nil, false, err
	}
	if complaint.Status != models.StatusPending {
		return complaint, false, nil
	}

	updated, err := s.applyUpdate(ctx, complaint.ID, bson.M{
		"status":    models.StatusViewed,
		"viewed_at": time.Now(),
	})
	if err != nil {
		return nil, false, err
	}
	return updated, true, nil
}

// findInVillage reports a village mismatch as not-found so the existence of
// another village's complaints is never disclosed.
func (s *ComplaintService) findInVillage(ctx context.Context, villageName, complaintID string) (*models.Complaint, error) {
	objID, err := parseObjectID(complaintID)
	if err != nil {
		return nil, err
	}

	var complaint models.Complaint
	if err := s.complaints.FindOne(ctx, bson.M{"_id": objID}).Decode(&complaint); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperr.Newf(apperr.KindNotFound, "Complaint not found with ID %s", complaintID)
		}
		return nil, apperr.Internal("failed to fetch complaint", err)
	}
	if models.NormalizeVillage(complaint.VillageName) != models.NormalizeVillage(villageName) {
		return nil, apperr.Newf(apperr.KindNotFound, "Complaint not found with ID %s", complaintID)
	}
	return &complaint, nil
}

func (s *ComplaintService) applyUpdate(ctx context.Context, id primitive.ObjectID, set bson.M) (*models.Complaint, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var updated models.Complaint
	if err := s.complaints.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&updated); err != nil {
		return nil, apperr.Internal("failed to update complaint", err)
	}
	return &updated, nil
}

func (s *ComplaintService) list(ctx context.Context, filter bson.M, sort bson.D, page, limit int) ([]models.Complaint, int64, error) {
	total, err := s.complaints.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, apperr.Internal("failed to count complaints", err)
	}

	p, l := normalizePage(page, limit)
	opts := options.Find().SetSort(sort).SetLimit(l).SetSkip(l * (p - 1))
	cursor, err := s.complaints.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, apperr.Internal("failed to fetch complaints", err)
	}
	defer cursor.Close(ctx)

	var complaints []models.Complaint
	if err := cursor.All(ctx, &complaints); err != nil {
		return nil, 0, apperr.Internal("failed to decode complaints", err)
	}
	return complaints, total, nil
}
