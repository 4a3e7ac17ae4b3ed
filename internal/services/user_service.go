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

// UserService covers self-service profile updates and the sarpanch's
// directory of people registered in their village.
type UserService struct {
	users *mongo.Collection
}

func NewUserService(db *mongo.Database) *UserService {
	return &UserService{users: db.Collection("users")}
}

// ProfileUpdate holds the self-editable fields. Nil pointers mean "leave
// unchanged". The people-only fields are ignored for sarpanch users.
type ProfileUpdate struct {
	Name          *string
	Gender        *string
	Age           *int
	DOB           *time.Time
	MaritalStatus *string
	Occupation    *string
}

func (s *UserService) UpdateMyProfile(ctx context.Context, user *models.User, upd ProfileUpdate) (*models.User, error) {
	set := bson.M{}
	if upd.Name != nil {
		set["name"] = *upd.Name
	}
	if upd.Gender != nil {
		set["gender"] = *upd.Gender
	}
	if upd.Age != nil {
		minAge := models.MinAgePeople
		if user.Role == models.RoleSarpanch {
			minAge = models.MinAgeSarpanch
		}
		if *upd.Age < minAge {
			return nil, apperr.Newf(apperr.KindInvalidInput, "Age must be at least %d", minAge)
		}
		set["age"] = *upd.Age
	}
	if user.Role == models.RolePeople {
		if upd.DOB != nil {
			set["dob"] = *upd.DOB
		}
		if upd.MaritalStatus != nil {
			set["marital_status"] = *upd.MaritalStatus
		}
		if upd.Occupation != nil {
			set["occupation"] = *upd.Occupation
		}
	}
	if len(set) == 0 {
		return user, nil
	}

	opts := options.FindOneAndUpdate().
		SetReturnDocument(options.After).
		SetProjection(bson.M{"password": 0})
	var updated models.User
	err := s.users.FindOneAndUpdate(ctx, bson.M{"_id": user.ID}, bson.M{"$set": set}, opts).Decode(&updated)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperr.NotFound("User not found")
		}
		return nil, apperr.Internal("failed to update profile", err)
	}
	return &updated, nil
}

// ListPeople returns people of the sarpanch's village, optionally filtered by
// a case-insensitive search over name, mobile and aadhaar number.
func (s *UserService) ListPeople(ctx context.Context, villageName, search string, page, limit int) ([]models.User, int64, error) {
	filter := bson.M{
		"village_name": models.NormalizeVillage(villageName),
		"role":         models.RolePeople,
	}
	if search != "" {
		filter["$or"] = []bson.M{
			{"name": bson.M{"$regex": search, "$options": "i"}},
			{"mobile": bson.M{"$regex": search, "$options": "i"}},
			{"aadhaar_no": bson.M{"$regex": search, "$options": "i"}},
		}
	}

	total, err := s.users.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, apperr.Internal("failed to count people", err)
	}

	p, l := normalizePage(page, limit)
	opts := options.Find().
		SetProjection(bson.M{"password": 0}).
		SetSort(bson.D{{Key: "registered_at", Value: -1}}).
		SetLimit(l).
		SetSkip(l * (p - 1))

	cursor, err := s.users.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, apperr.Internal("failed to fetch people", err)
	}
	defer cursor.Close(ctx)

	var people []models.User
	if err := cursor.All(ctx, &people); err != nil {
		return nil, 0, apperr.Internal("failed to decode people", err)
	}
	return people, total, nil
}

// GetPerson fetches one person in the sarpanch's village. A record outside
// the village, or with the wrong role, reads as not found so cross-village
// existence is never disclosed.
func (s *UserService) GetPerson(ctx context.Context, villageName, personID string) (*models.User, error) {
	objID, err := parseObjectID(personID)
	if err != nil {
		return nil, err
	}

	var person models.User
	opts := options.FindOne().SetProjection(bson.M{"password": 0})
	if err := s.users.FindOne(ctx, bson.M{"_id": objID}, opts).Decode(&person); err != nil {
		return nil, apperr.Newf(apperr.KindNotFound, "Person not found with ID %s", personID)
	}
	if person.Role != models.RolePeople || !person.SameVillage(villageName) {
		return nil, apperr.Newf(apperr.KindNotFound, "Person not found with ID %s", personID)
	}
	return &person, nil
}

// PersonUpdate is the sarpanch-editable subset of a person's record.
type PersonUpdate struct {
	Name          *string
	Mobile        *string
	Email         *string
	Gender        *string
	Age           *int
	AadhaarNo     *string
	DOB           *time.Time
	MaritalStatus *string
	Occupation    *string
}

func (s *UserService) UpdatePerson(ctx context.Context, villageName, personID string, upd PersonUpdate) (*models.User, error) {
	person, err := s.GetPerson(ctx, villageName, personID)
	if err != nil {
		return nil, err
	}

	set := bson.M{}
	if upd.Name != nil {
		set["name"] = *upd.Name
	}
	if upd.Gender != nil {
		set["gender"] = *upd.Gender
	}
	if upd.Age != nil {
		if *upd.Age < models.MinAgePeople {
			return nil, apperr.InvalidInput("Age must be 18 or older")
		}
		set["age"] = *upd.Age
	}
	if upd.AadhaarNo != nil {
		if !isValidAadhaar(*upd.AadhaarNo) {
			return nil, apperr.InvalidInput("Aadhaar number must be exactly 12 digits")
		}
		set["aadhaar_no"] = *upd.AadhaarNo
	}
	if upd.Email != nil {
		email := models.NormalizeEmail(*upd.Email)
		if email != person.Email {
			if err := s.checkFieldTaken(ctx, "email", email, person.ID); err != nil {
				return nil, err
			}
		}
		set["email"] = email
	}
	if upd.Mobile != nil {
		if *upd.Mobile != person.Mobile {
			if err := s.checkFieldTaken(ctx, "mobile", *upd.Mobile, person.ID); err != nil {
				return nil, err
			}
		}
		set["mobile"] = *upd.Mobile
	}
	if upd.DOB != nil {
		set["dob"] = *upd.DOB
	}
	if upd.MaritalStatus != nil {
		set["marital_status"] = *upd.MaritalStatus
	}
	if upd.Occupation != nil {
		set["occupation"] = *upd.Occupation
	}
	if len(set) == 0 {
		return person, nil
	}

	opts := options.FindOneAndUpdate().
		SetReturnDocument(options.After).
		SetProjection(bson.M{"password": 0})
	var updated models.User
	err = s.users.FindOneAndUpdate(ctx, bson.M{"_id": person.ID}, bson.M{"$set": set}, opts).Decode(&updated)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, apperr.Conflict("Another user already uses this email or mobile number")
		}
		return nil, apperr.Internal("failed to update person", err)
	}
	return &updated, nil
}

// DeletePerson removes a people record from the sarpanch's village and
// returns the profile photo path for cleanup.
func (s *UserService) DeletePerson(ctx context.Context, villageName, personID string) (*models.User, error) {
	person, err := s.GetPerson(ctx, villageName, personID)
	if err != nil {
		return nil, err
	}
	if _, err := s.users.DeleteOne(ctx, bson.M{"_id": person.ID}); err != nil {
		return nil, apperr.Internal("failed to delete person", err)
	}
	return person, nil
}

func (s *UserService) checkFieldTaken(ctx context.Context, field, value string, selfID primitive.ObjectID) error {
	count, err := s.users.CountDocuments(ctx, bson.M{field: value, "_id": bson.M{"$ne": selfID}})
	if err != nil {
		return apperr.Internal("failed to check uniqueness", err)
	}
	if count > 0 {
		return apperr.Newf(apperr.KindConflict, "Another user already uses this %s", field)
	}
	return nil
}
