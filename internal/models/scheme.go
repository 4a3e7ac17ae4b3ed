package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Scheme struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	VillageName string             `bson:"village_name" json:"villageName"`
	Heading     string             `bson:"heading" json:"heading"`
	Details     string             `bson:"details" json:"details"`
	ImageURL    string             `bson:"image_url,omitempty" json:"imageUrl,omitempty"`
	AddedBy     primitive.ObjectID `bson:"added_by" json:"addedBy"`
	AddedAt     time.Time          `bson:"added_at" json:"addedAt"`
}
