// internal/domain/models/chatmessage.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ChatMessage is one entry in the community chat log. SenderName is
// denormalized from the sender's user record at send time; Message is
// sanitized before it is stored.
type ChatMessage struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	SenderID   primitive.ObjectID `bson:"sender_id" json:"sender_id"`
	SenderName string             `bson:"sender_name" json:"sender_name"`
	Message    string             `bson:"message" json:"message"`

	Timestamp time.Time `bson:"timestamp" json:"timestamp"`
}
