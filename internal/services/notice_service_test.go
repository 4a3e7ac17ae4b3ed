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

func TestNoticeService_DeleteScope(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	sarpanch := &models.User{
		ID:          primitive.NewObjectID(),
		Role:        models.RoleSarpanch,
		VillageName: "rampur",
	}

	mt.Run("same village wrong owner is forbidden, notice retained", func(mt *mtest.T) {
		svc := &NoticeService{notices: mt.Coll}
		noticeID := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "gramseva.notices", mtest.FirstBatch, bson.D{
			{Key: "_id", Value: noticeID},
			{Key: "village_name", Value: "rampur"},
			{Key: "heading", Value: "Water supply"},
			{Key: "created_by", Value: primitive.NewObjectID()},
		}))

		_, err := svc.Delete(context.Background(), sarpanch, noticeID.Hex())
		assert.True(mt, apperr.IsKind(err, apperr.KindForbidden))

		// No delete may have reached the store.
		for _, evt := range mt.GetAllStartedEvents() {
			assert.NotEqual(mt, "delete", evt.CommandName)
		}
	})

	mt.Run("cross village is not found, not forbidden", func(mt *mtest.T) {
		svc := &NoticeService{notices: mt.Coll}
		noticeID := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "gramseva.notices", mtest.FirstBatch, bson.D{
			{Key: "_id", Value: noticeID},
			{Key: "village_name", Value: "sitapur"},
			{Key: "heading", Value: "Water supply"},
			{Key: "created_by", Value: sarpanch.ID},
		}))

		_, err := svc.Delete(context.Background(), sarpanch, noticeID.Hex())
		assert.True(mt, apperr.IsKind(err, apperr.KindNotFound))
		assert.False(mt, apperr.IsKind(err, apperr.KindForbidden))
	})
}
