// internal/domain/models/pendinguser.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Pending user statuses. A pending user starts as StatusPending and is
// moved exactly once to StatusApproved or StatusRejected; there is no
// transition out of either terminal status and records are never deleted.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// PendingUser is a registration request awaiting admin review.
//
// At most one pending request may exist per email; the pending_users
// collection enforces this with a partial unique index on email scoped
// to status=pending (see system/indexes).
type PendingUser struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name           string             `bson:"name" json:"name"`
	Email          string             `bson:"email" json:"email"`
	Role           string             `bson:"role" json:"role"` // Student Developer | Project Leader | Mentor
	Interests      []string           `bson:"interests" json:"interests"`
	GitHubUsername string             `bson:"github_username,omitempty" json:"github_username,omitempty"`
	Status         string             `bson:"status" json:"status"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
