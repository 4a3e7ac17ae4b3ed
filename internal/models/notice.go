package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Notice struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	VillageName string             `bson:"village_name" json:"villageName"`
	Heading     string             `bson:"heading" json:"heading"`
	Details     string             `bson:"details" json:"details"`
	ImageURL    string             `bson:"image_url,omitempty" json:"imageUrl,omitempty"`
	CreatedBy   primitive.ObjectID `bson:"created_by" json:"createdBy"`
	PublishedAt time.Time          `bson:"published_at" json:"publishedAt"`
	ViewCount   int64              `bson:"view_count" json:"viewCount"`
}
