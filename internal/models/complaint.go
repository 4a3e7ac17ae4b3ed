package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ComplaintStatus is an ordered state: Pending < Viewed < Replied.
// Transitions never go backwards.
type ComplaintStatus string

const (
	StatusPending ComplaintStatus = "Pending"
	StatusViewed  ComplaintStatus = "Viewed"
	StatusReplied ComplaintStatus = "Replied"
)

var statusRank = map[ComplaintStatus]int{
	StatusPending: 0,
	StatusViewed:  1,
	StatusReplied: 2,
}

// Valid reports whether s is one of the known statuses.
func (s ComplaintStatus) Valid() bool {
	_, ok := statusRank[s]
	return ok
}

// CanTransition reports whether moving from s to next is allowed. Staying in
// place is allowed (re-reply overwrites text but not status ordering).
func (s ComplaintStatus) CanTransition(next ComplaintStatus) bool {
	from, ok := statusRank[s]
	if !ok {
		return false
	}
	to, ok := statusRank[next]
	if !ok {
		return false
	}
	return to >= from
}

type Complaint struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	VillageName string             `bson:"village_name" json:"villageName"`
	Subject     string             `bson:"subject" json:"subject"`
	Details     string             `bson:"details" json:"details"`
	Status      ComplaintStatus    `bson:"status" json:"status"`
	SubmittedBy primitive.ObjectID `bson:"submitted_by" json:"submittedBy"`
	SubmittedAt time.Time          `bson:"submitted_at" json:"submittedAt"`

	Reply     string              `bson:"reply,omitempty" json:"reply,omitempty"`
	RepliedBy *primitive.ObjectID `bson:"replied_by,omitempty" json:"repliedBy,omitempty"`
	RepliedAt *time.Time          `bson:"replied_at,omitempty" json:"repliedAt,omitempty"`
	ViewedAt  *time.Time          `bson:"viewed_at,omitempty" json:"viewedAt,omitempty"`
}
