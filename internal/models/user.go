package models

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User roles. The two roles are disjoint capability sets, there is no
// hierarchy between them.
const (
	RoleSarpanch = "sarpanch"
	RolePeople   = "people"
)

// Minimum registration ages per role.
const (
	MinAgePeople   = 18
	MinAgeSarpanch = 21
)

type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Role         string             `bson:"role" json:"role"`
	Name         string             `bson:"name" json:"name"`
	ProfilePhoto string             `bson:"profile_photo,omitempty" json:"profilePhoto,omitempty"`
	Mobile       string             `bson:"mobile" json:"mobile"`
	Email        string             `bson:"email" json:"email"`
	Password     string             `bson:"password,omitempty" json:"-"`
	Gender       string             `bson:"gender" json:"gender"`
	Age          int                `bson:"age" json:"age"`
	VillageName  string             `bson:"village_name" json:"villageName"`

	// People-only fields.
	AadhaarNo     string     `bson:"aadhaar_no,omitempty" json:"aadhaarNo,omitempty"`
	DOB           *time.Time `bson:"dob,omitempty" json:"dob,omitempty"`
	MaritalStatus string     `bson:"marital_status,omitempty" json:"maritalStatus,omitempty"`
	Occupation    string     `bson:"occupation,omitempty" json:"occupation,omitempty"`

	RegisteredAt time.Time  `bson:"registered_at" json:"registeredAt"`
	LastLogin    *time.Time `bson:"last_login,omitempty" json:"lastLogin,omitempty"`
}

// NormalizeEmail applies the canonical form used for lookups and uniqueness.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// NormalizeVillage applies one normalization rule, used at both write and
// compare time, so casing drift can never leak records across villages.
func NormalizeVillage(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// SameVillage reports whether a resource village matches the user's village
// under the canonical form.
func (u *User) SameVillage(villageName string) bool {
	return NormalizeVillage(u.VillageName) == NormalizeVillage(villageName)
}
