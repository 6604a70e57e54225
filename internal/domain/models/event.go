// internal/domain/models/event.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Event is a community event users can RSVP to.
//
// Attendees is an ordered list of user ids with no duplicates. When
// MaxAttendees is non-nil, len(Attendees) never exceeds it; both
// invariants are enforced atomically by the event store's Enroll.
type Event struct {
	ID           primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Title        string               `bson:"title" json:"title"`
	Description  string               `bson:"description" json:"description"`
	Date         string               `bson:"date" json:"date"`
	Time         string               `bson:"time" json:"time"`
	Location     string               `bson:"location" json:"location"`
	ImageURL     string               `bson:"image_url,omitempty" json:"image_url,omitempty"`
	OrganizerID  primitive.ObjectID   `bson:"organizer_id" json:"organizer_id"`
	Attendees    []primitive.ObjectID `bson:"attendees" json:"attendees"`
	MaxAttendees *int                 `bson:"max_attendees,omitempty" json:"max_attendees,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
