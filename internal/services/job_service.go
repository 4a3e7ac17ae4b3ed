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

type JobService struct {
	jobs *mongo.Collection
}

func NewJobService(db *mongo.Database) *JobService {
	return &JobService{jobs: db.Collection("jobs")}
}

func (s *JobService) Add(ctx context.Context, sarpanch *models.User, heading, details, imagePath string) (*models.Job, error) {
	job := &models.Job{
		ID:          primitive.NewObjectID(),
		VillageName: models.NormalizeVillage(sarpanch.VillageName),
		Heading:     heading,
		Details:     details,
		ImageURL:    imagePath,
		AddedBy:     sarpanch.ID,
		PostedAt:    time.Now(),
	}
	if _, err := s.jobs.InsertOne(ctx, job); err != nil {
		return nil, apperr.Internal("failed to add job posting", err)
	}
	return job, nil
}

func (s *JobService) ListByVillage(ctx context.Context, villageName string, page, limit int) ([]models.Job, int64, error) {
	filter := bson.M{"village_name": models.NormalizeVillage(villageName)}

	total, err := s.jobs.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, apperr.Internal("failed to count job postings", err)
	}

	p, l := normalizePage(page, limit)
	opts := options.Find().
		SetSort(bson.D{{Key: "posted_at", Value: -1}}).
		SetLimit(l).
		SetSkip(l * (p - 1))
	cursor, err := s.jobs.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, apperr.Internal("failed to fetch job postings", err)
	}
	defer cursor.Close(ctx)

	var jobs []models.Job
	if err := cursor.All(ctx, &jobs); err != nil {
		return nil, 0, apperr.Internal("failed to decode job postings", err)
	}
	return jobs, total, nil
}

func (s *JobService) Delete(ctx context.Context, sarpanch *models.User, jobID string) (string, error) {
	objID, err := parseObjectID(jobID)
	if err != nil {
		return "", err
	}

	var job models.Job
	if err := s.jobs.FindOne(ctx, bson.M{"_id": objID}).Decode(&job); err != nil {
		return "", apperr.Newf(apperr.KindNotFound, "Job posting not found with ID %s", jobID)
	}
	if !sarpanch.SameVillage(job.VillageName) {
		return "", apperr.Newf(apperr.KindNotFound, "Job posting not found with ID %s", jobID)
	}
	if job.AddedBy != sarpanch.ID {
		return "", apperr.Forbidden("Not authorized to delete this job posting")
	}

	if _, err := s.jobs.DeleteOne(ctx, bson.M{"_id": objID}); err != nil {
		return "", apperr.Internal("failed to delete job posting", err)
	}
	return job.ImageURL, nil
}
