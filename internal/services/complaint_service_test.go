package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"github.com/gramseva/portal/internal/apperr"
	"github.com/gramseva/portal/internal/models"
)

// A complaint from another village must read as not found, never as
// forbidden, so its existence is not disclosed.
func TestComplaintService_CrossVillageReadsAsNotFound(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	otherVillageComplaint := func(id primitive.ObjectID) bson.D {
		return bson.D{
			{Key: "_id", Value: id},
			{Key: "village_name", Value: "sitapur"},
			{Key: "subject", Value: "Street light broken"},
			{Key: "status", Value: string(models.StatusPending)},
			{Key: "submitted_by", Value: primitive.NewObjectID()},
		}
	}
	sarpanch := &models.User{
		ID:          primitive.NewObjectID(),
		Role:        models.RoleSarpanch,
		VillageName: "rampur",
	}

	mt.Run("reply", func(mt *mtest.T) {
		svc := &ComplaintService{complaints: mt.Coll}
		complaintID := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "gramseva.complaints",
			mtest.FirstBatch, otherVillageComplaint(complaintID)))

		_, err := svc.Reply(context.Background(), sarpanch, complaintID.Hex(), "We will fix it")
		assert.True(mt, apperr.IsKind(err, apperr.KindNotFound))

		// The complaint must not have been modified.
		for _, evt := range mt.GetAllStartedEvents() {
			assert.NotEqual(mt, "findAndModify", evt.CommandName)
		}
	})

	mt.Run("mark viewed", func(mt *mtest.T) {
		svc := &ComplaintService{complaints: mt.Coll}
		complaintID := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "gramseva.complaints",
			mtest.FirstBatch, otherVillageComplaint(complaintID)))

		_, _, err := svc.MarkViewed(context.Background(), sarpanch, complaintID.Hex())
		assert.True(mt, apperr.IsKind(err, apperr.KindNotFound))
	})
}
