package services

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/gramseva/portal/internal/apperr"
	"github.com/gramseva/portal/internal/auth"
	"github.com/gramseva/portal/internal/models"
)

// AuthService owns the credential lifecycle: registration, login, password
// change and token-subject resolution for the authentication gate.
type AuthService struct {
	users     *mongo.Collection
	villages  *mongo.Collection
	jwtSecret []byte
	tokenTTL  time.Duration
	log       *logrus.Logger
}

func NewAuthService(db *mongo.Database, jwtSecret []byte, log *logrus.Logger) *AuthService {
	return &AuthService{
		users:     db.Collection("users"),
		villages:  db.Collection("villages"),
		jwtSecret: jwtSecret,
		tokenTTL:  auth.DefaultTokenTTL,
		log:       log,
	}
}

// RegisterInput carries the common, already shape-validated registration
// fields. Village and email are normalized here before persistence.
type RegisterInput struct {
	Name        string
	VillageName string
	Mobile      string
	Email       string
	Gender      string
	Age         int
	Password    string
	AadhaarNo   string // people only
	PhotoPath   string
}

// RegisterSarpanch creates the sarpanch user and the village binding. The two
// inserts are not atomic; if the village insert fails the user is rolled back
// best-effort, with the rollback failure logged rather than surfaced since
// the primary failure dominates the response.
func (s *AuthService) RegisterSarpanch(ctx context.Context, in RegisterInput) (*models.User, string, error) {
	if in.Age < models.MinAgeSarpanch {
		return nil, "", apperr.InvalidInput("Sarpanch age must be 21 or older")
	}

	if err := s.checkDuplicateUser(ctx, in.Email, in.Mobile); err != nil {
		return nil, "", err
	}

	village := models.NormalizeVillage(in.VillageName)
	count, err := s.villages.CountDocuments(ctx, bson.M{"name": village})
	if err != nil {
		return nil, "", apperr.Internal("failed to check village", err)
	}
	if count > 0 {
		return nil, "", apperr.Newf(apperr.KindConflict, "Village '%s' is already registered by another sarpanch", in.VillageName)
	}

	user, err := s.insertUser(ctx, models.RoleSarpanch, in)
	if err != nil {
		return nil, "", err
	}

	_, err = s.villages.InsertOne(ctx, models.Village{
		Name:         village,
		SarpanchID:   user.ID,
		RegisteredAt: time.Now(),
	})
	if err != nil {
		// Compensate: delete the user we just created so no orphan remains.
		if _, delErr := s.users.DeleteOne(ctx, bson.M{"_id": user.ID}); delErr != nil {
			s.log.WithError(delErr).WithField("user_id", user.ID.Hex()).
				Error("user rollback failed after village creation failure")
		}
		if mongo.IsDuplicateKeyError(err) {
			return nil, "", apperr.Newf(apperr.KindConflict, "Village '%s' is already registered by another sarpanch", in.VillageName)
		}
		return nil, "", apperr.Internal("failed to register village", err)
	}

	token, err := s.issueToken(user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// RegisterPeople creates a resident user. Many people may share a village, so
// there is no village-uniqueness constraint here.
func (s *AuthService) RegisterPeople(ctx context.Context, in RegisterInput) (*models.User, string, error) {
	if in.Age < models.MinAgePeople {
		return nil, "", apperr.InvalidInput("Age must be 18 or older")
	}
	if !isValidAadhaar(in.AadhaarNo) {
		return nil, "", apperr.InvalidInput("Aadhaar number must be exactly 12 digits")
	}

	if err := s.checkDuplicateUser(ctx, in.Email, in.Mobile); err != nil {
		return nil, "", err
	}

	user, err := s.insertUser(ctx, models.RolePeople, in)
	if err != nil {
		return nil, "", err
	}

	token, err := s.issueToken(user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// Login authenticates by email and password. Unknown email and wrong password
// fail identically so callers cannot probe which accounts exist.
func (s *AuthService) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	var user models.User
	err := s.users.FindOne(ctx, bson.M{"email": models.NormalizeEmail(email)}).Decode(&user)
	if err != nil {
		return nil, "", apperr.Unauthenticated("Invalid credentials")
	}
	if !auth.VerifyPassword(password, user.Password) {
		return nil, "", apperr.Unauthenticated("Invalid credentials")
	}

	// Best-effort side-write; login still succeeds if it fails.
	now := time.Now()
	if _, err := s.users.UpdateOne(ctx, bson.M{"_id": user.ID}, bson.M{"$set": bson.M{"last_login": now}}); err != nil {
		s.log.WithError(err).WithField("user_id", user.ID.Hex()).Warn("failed to update last login")
	} else {
		user.LastLogin = &now
	}

	token, err := s.issueToken(&user)
	if err != nil {
		return nil, "", err
	}
	user.Password = ""
	return &user, token, nil
}

// ChangePassword re-checks the current password before replacing the hash.
func (s *AuthService) ChangePassword(ctx context.Context, userID primitive.ObjectID, currentPassword, newPassword string) error {
	if len(newPassword) < 6 {
		return apperr.InvalidInput("New password must be at least 6 characters long")
	}

	var user models.User
	if err := s.users.FindOne(ctx, bson.M{"_id": userID}).Decode(&user); err != nil {
		return apperr.NotFound("User not found")
	}
	if !auth.VerifyPassword(currentPassword, user.Password) {
		return apperr.Unauthenticated("Incorrect current password")
	}

	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		return apperr.Internal("failed to hash password", err)
	}
	if _, err := s.users.UpdateOne(ctx, bson.M{"_id": userID}, bson.M{"$set": bson.M{"password": hash}}); err != nil {
		return apperr.Internal("failed to update password", err)
	}
	return nil
}

// FindByID resolves a token subject to its user record, password excluded.
// Used by the authentication gate on every protected request.
func (s *AuthService) FindByID(ctx context.Context, id string) (*models.User, error) {
	objID, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}

	var user models.User
	opts := options.FindOne().SetProjection(bson.M{"password": 0})
	if err := s.users.FindOne(ctx, bson.M{"_id": objID}, opts).Decode(&user); err != nil {
		return nil, apperr.NotFound("User not found")
	}
	return &user, nil
}

func (s *AuthService) issueToken(user *models.User) (string, error) {
	token, err := auth.GenerateToken(user.ID.Hex(), s.jwtSecret, s.tokenTTL)
	if err != nil {
		return "", apperr.Internal("failed to issue token", err)
	}
	return token, nil
}

func (s *AuthService) checkDuplicateUser(ctx context.Context, email, mobile string) error {
	var existing models.User
	err := s.users.FindOne(ctx, bson.M{"$or": []bson.M{
		{"email": models.NormalizeEmail(email)},
		{"mobile": mobile},
	}}).Decode(&existing)
	if err == nil {
		field := "mobile number"
		if existing.Email == models.NormalizeEmail(email) {
			field = "email"
		}
		return apperr.Newf(apperr.KindConflict, "User already exists with this %s", field)
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return apperr.Internal("failed to check existing user", err)
	}
	return nil
}

func (s *AuthService) insertUser(ctx context.Context, role string, in RegisterInput) (*models.User, error) {
	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, apperr.Internal("failed to hash password", err)
	}

	user := &models.User{
		ID:           primitive.NewObjectID(),
		Role:         role,
		Name:         in.Name,
		ProfilePhoto: in.PhotoPath,
		Mobile:       in.Mobile,
		Email:        models.NormalizeEmail(in.Email),
		Password:     hash,
		Gender:       in.Gender,
		Age:          in.Age,
		VillageName:  models.NormalizeVillage(in.VillageName),
		RegisteredAt: time.Now(),
	}
	if role == models.RolePeople {
		user.AadhaarNo = in.AadhaarNo
	}

	if _, err := s.users.InsertOne(ctx, user); err != nil {
		// The unique index may reject a race the earlier lookup missed.
		if mongo.IsDuplicateKeyError(err) {
			return nil, apperr.Conflict("User already exists with this email or mobile number")
		}
		return nil, apperr.Internal("failed to create user", err)
	}

	user.Password = ""
	return user, nil
}

func isValidAadhaar(aadhaar string) bool {
	if len(aadhaar) != 12 {
		return false
	}
	for _, r := range aadhaar {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
