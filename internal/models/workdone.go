package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MinWorkYear bounds the year field of a work record from below; the upper
// bound is next calendar year, checked at validation time.
const MinWorkYear = 1900

type WorkDone struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	VillageName string             `bson:"village_name" json:"villageName"`
	Year        int                `bson:"year" json:"year"`
	Details     string             `bson:"details" json:"details"`
	ImageURLs   []string           `bson:"image_urls,omitempty" json:"imageUrls,omitempty"`
	AddedBy     primitive.ObjectID `bson:"added_by" json:"addedBy"`
	AddedAt     time.Time          `bson:"added_at" json:"addedAt"`
}
