package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Village binds a unique village name to exactly one sarpanch. The record is
// created alongside sarpanch registration; both name and sarpanch_id carry
// unique indexes.
type Village struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name         string             `bson:"name" json:"name"`
	SarpanchID   primitive.ObjectID `bson:"sarpanch_id" json:"sarpanchId"`
	RegisteredAt time.Time          `bson:"registered_at" json:"registeredAt"`
}
