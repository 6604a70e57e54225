// internal/testutil/fixtures.go
package testutil

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/devcirclehq/devcircle/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

var seq atomic.Int64

// uniqueSuffix keeps seeded emails and uids distinct within a test db.
func uniqueSuffix() string {
	return fmt.Sprintf("%d", seq.Add(1))
}

// SeedUser inserts an approved member and returns it.
func SeedUser(t *testing.T, db *mongo.Database) models.User {
	t.Helper()
	n := uniqueSuffix()
	u := models.User{
		ID:       primitive.NewObjectID(),
		UID:      "uid-" + n,
		Name:     "Member " + n,
		Email:    "member" + n + "@example.com",
		Username: "member" + n,
		Role:     "Student Developer",
		Badges:   []string{},
		Points:   0,
		JoinedAt: time.Now(),
	}
	insert(t, db, "users", u)
	return u
}

// SeedAdmin inserts a user with the admin role and returns it.
func SeedAdmin(t *testing.T, db *mongo.Database) models.User {
	t.Helper()
	n := uniqueSuffix()
	u := models.User{
		ID:       primitive.NewObjectID(),
		UID:      "admin-uid-" + n,
		Name:     "Admin " + n,
		Email:    "admin" + n + "@example.com",
		Username: "admin" + n,
		Role:     models.RoleAdmin,
		Badges:   []string{},
		Points:   0,
		JoinedAt: time.Now(),
	}
	insert(t, db, "users", u)
	return u
}

// SeedPendingUser inserts a registration request with status pending.
func SeedPendingUser(t *testing.T, db *mongo.Database) models.PendingUser {
	t.Helper()
	n := uniqueSuffix()
	p := models.PendingUser{
		ID:        primitive.NewObjectID(),
		Name:      "Applicant " + n,
		Email:     "applicant" + n + "@example.com",
		Role:      "Student Developer",
		Interests: []string{"go", "backend"},
		Status:    models.StatusPending,
		CreatedAt: time.Now(),
	}
	insert(t, db, "pending_users", p)
	return p
}

// SeedEvent inserts an event. maxAttendees nil means unbounded.
func SeedEvent(t *testing.T, db *mongo.Database, organizer primitive.ObjectID, maxAttendees *int) models.Event {
	t.Helper()
	n := uniqueSuffix()
	e := models.Event{
		ID:           primitive.NewObjectID(),
		Title:        "Event " + n,
		Description:  "seeded event",
		Date:         "2026-09-15",
		Time:         "18:00",
		Location:     "Lab 2",
		OrganizerID:  organizer,
		Attendees:    []primitive.ObjectID{},
		MaxAttendees: maxAttendees,
		CreatedAt:    time.Now(),
	}
	insert(t, db, "events", e)
	return e
}

// SeedProject inserts an active project owned by owner.
func SeedProject(t *testing.T, db *mongo.Database, owner primitive.ObjectID) models.Project {
	t.Helper()
	n := uniqueSuffix()
	p := models.Project{
		ID:          primitive.NewObjectID(),
		Name:        "Project " + n,
		Description: "seeded project",
		OwnerID:     owner,
		Members:     []primitive.ObjectID{owner},
		TechStack:   []string{"go", "mongodb"},
		Status:      models.ProjectActive,
		CreatedAt:   time.Now(),
	}
	insert(t, db, "projects", p)
	return p
}

func insert(t *testing.T, db *mongo.Database, coll string, doc any) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if _, err := db.Collection(coll).InsertOne(ctx, doc); err != nil {
		t.Fatalf("seed %s: %v", coll, err)
	}
}
