// internal/domain/models/user.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is an approved community member.
//
// UID is the subject id issued by the external identity provider and is
// bound 1:1 to the user record at approval time. Users are created only
// by the registration workflow, from a PendingUser snapshot.
type User struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UID            string             `bson:"uid" json:"uid"`
	Name           string             `bson:"name" json:"name"`
	Email          string             `bson:"email" json:"email"`
	Username       string             `bson:"username" json:"username"`
	Role           string             `bson:"role" json:"role"`
	Interests      []string           `bson:"interests" json:"interests"`
	GitHubUsername string             `bson:"github_username,omitempty" json:"github_username,omitempty"`
	Badges         []string           `bson:"badges" json:"badges"`
	Points         int                `bson:"points" json:"points"`

	JoinedAt time.Time `bson:"joined_at" json:"joined_at"`
}

// RoleAdmin marks users allowed to review registration requests.
// Regular community roles are free-form ("Student Developer", etc.);
// admin is assigned via the admin_email bootstrap setting.
const RoleAdmin = "admin"

// IsAdmin reports whether the user may act on the admin surface.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
