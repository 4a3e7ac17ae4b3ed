package services

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"github.com/gramseva/portal/internal/apperr"
	"github.com/gramseva/portal/internal/models"
)

func newAuthServiceForValidation() *AuthService {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return &AuthService{jwtSecret: []byte("test"), log: log}
}

// Input validation runs before any database access, so underage and malformed
// registrations are rejected by a service with no collections wired.
func TestRegisterSarpanch_UnderageRejected(t *testing.T) {
	t.Parallel()
	svc := newAuthServiceForValidation()

	_, _, err := svc.RegisterSarpanch(context.Background(), RegisterInput{
		Name:        "Ravi Kumar",
		VillageName: "Rampur",
		Age:         models.MinAgeSarpanch - 1,
		Password:    "secret1",
	})
	assert.True(t, apperr.IsKind(err, apperr.KindInvalidInput))
}

func TestRegisterPeople_UnderageRejected(t *testing.T) {
	t.Parallel()
	svc := newAuthServiceForValidation()

	_, _, err := svc.RegisterPeople(context.Background(), RegisterInput{
		Name:      "Sita Devi",
		Age:       models.MinAgePeople - 1,
		AadhaarNo: "123456789012",
		Password:  "secret1",
	})
	assert.True(t, apperr.IsKind(err, apperr.KindInvalidInput))
}

func TestRegisterPeople_BadAadhaarRejected(t *testing.T) {
	t.Parallel()
	svc := newAuthServiceForValidation()

	for _, aadhaar := range []string{"", "12345678901", "1234567890123", "12345678901a"} {
		_, _, err := svc.RegisterPeople(context.Background(), RegisterInput{
			Name:      "Sita Devi",
			Age:       30,
			AadhaarNo: aadhaar,
			Password:  "secret1",
		})
		assert.True(t, apperr.IsKind(err, apperr.KindInvalidInput), "aadhaar %q", aadhaar)
	}
}

func TestChangePassword_TooShortRejected(t *testing.T) {
	t.Parallel()
	svc := newAuthServiceForValidation()

	err := svc.ChangePassword(context.Background(), primitive.NewObjectID(), "current", "short")
	assert.True(t, apperr.IsKind(err, apperr.KindInvalidInput))
}

func TestFindByID_MalformedID(t *testing.T) {
	t.Parallel()
	svc := newAuthServiceForValidation()

	_, err := svc.FindByID(context.Background(), "not-an-object-id")
	assert.True(t, apperr.IsKind(err, apperr.KindInvalidInput))
}

// When the village insert loses the race against another sarpanch, the user
// created just before it must be deleted again so no orphan remains.
func TestRegisterSarpanch_RollsBackUserWhenVillageTaken(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("village insert hits the unique index", func(mt *mtest.T) {
		log := logrus.New()
		log.SetOutput(io.Discard)
		svc := &AuthService{
			users:     mt.DB.Collection("users"),
			villages:  mt.DB.Collection("villages"),
			jwtSecret: []byte("test"),
			tokenTTL:  time.Hour,
			log:       log,
		}

		mt.AddMockResponses(
			// no user with this email or mobile
			mtest.CreateCursorResponse(0, "gramseva.users", mtest.FirstBatch),
			// village name still free at check time
			mtest.CreateCursorResponse(0, "gramseva.villages", mtest.FirstBatch,
				bson.D{{Key: "n", Value: int32(0)}}),
			// user insert succeeds
			mtest.CreateSuccessResponse(),
			// village insert loses the race
			mtest.CreateWriteErrorsResponse(mtest.WriteError{
				Index: 0, Code: 11000, Message: "E11000 duplicate key error",
			}),
			// compensating user delete
			mtest.CreateSuccessResponse(),
		)

		_, _, err := svc.RegisterSarpanch(context.Background(), RegisterInput{
			Name:        "Ravi Kumar",
			VillageName: "Rampur",
			Mobile:      "9876543210",
			Email:       "ravi@example.com",
			Gender:      "Male",
			Age:         30,
			Password:    "secret1",
		})
		assert.True(mt, apperr.IsKind(err, apperr.KindConflict))

		rolledBack := false
		for _, evt := range mt.GetAllStartedEvents() {
			if evt.CommandName == "delete" {
				rolledBack = true
			}
		}
		assert.True(mt, rolledBack, "orphaned user must be deleted")
	})
}

func TestIsValidAadhaar(t *testing.T) {
	t.Parallel()

	tests := []struct {
		aadhaar string
		want    bool
	}{
		{"123456789012", true},
		{"000000000000", true},
		{"12345678901", false},
		{"1234567890123", false},
		{"12345678 012", false},
		{"abcdefghijkl", false},
		{"", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, isValidAadhaar(tt.aadhaar), "aadhaar %q", tt.aadhaar)
	}
}
