// internal/app/store/pendingusers/pendingstore.go
package pendingstore

import (
	"context"
	"errors"
	"time"

	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/devcirclehq/devcircle/internal/app/system/normalize"
	"github.com/devcirclehq/devcircle/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	// ErrDuplicateRequest is returned when a pending request already
	// exists for the email. Backed by the partial unique index, so
	// concurrent submissions cannot both win.
	ErrDuplicateRequest = errors.New("a pending request for this email already exists")

	// ErrNotPending is returned by the status transitions when the
	// record is missing or already decided.
	ErrNotPending = errors.New("registration request is not pending")
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("pending_users")}
}

// Submit inserts a new registration request with status pending.
func (s *Store) Submit(ctx context.Context, p models.PendingUser) (models.PendingUser, error) {
	p.ID = primitive.NewObjectID()
	p.Name = normalize.Name(p.Name)
	p.Email = normalize.Email(p.Email)
	p.Status = models.StatusPending
	p.CreatedAt = time.Now()
	if p.Interests == nil {
		p.Interests = []string{}
	}

	if _, err := s.c.InsertOne(ctx, p); err != nil {
		if wafflemongo.IsDup(err) {
			return models.PendingUser{}, ErrDuplicateRequest
		}
		return models.PendingUser{}, err
	}
	return p, nil
}

// ListPending returns all pending requests, oldest first.
func (s *Store) ListPending(ctx context.Context) ([]models.PendingUser, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}})
	cur, err := s.c.Find(ctx, bson.M{"status": models.StatusPending}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.PendingUser{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetPending loads a request by id, returning mongo.ErrNoDocuments
// unless it exists with status pending.
func (s *Store) GetPending(ctx context.Context, id primitive.ObjectID) (*models.PendingUser, error) {
	var p models.PendingUser
	if err := s.c.FindOne(ctx, bson.M{"_id": id, "status": models.StatusPending}).Decode(&p); err != nil {
		return nil, err
	}
	return &p, nil
}

// MarkApproved moves a request from pending to approved. The filter
// includes the current status so a concurrent decision cannot flip the
// record twice; a lost race returns ErrNotPending.
func (s *Store) MarkApproved(ctx context.Context, id primitive.ObjectID) error {
	return s.transition(ctx, id, models.StatusApproved)
}

// MarkRejected moves a request from pending to rejected.
func (s *Store) MarkRejected(ctx context.Context, id primitive.ObjectID) error {
	return s.transition(ctx, id, models.StatusRejected)
}

func (s *Store) transition(ctx context.Context, id primitive.ObjectID, to string) error {
	res, err := s.c.UpdateOne(ctx,
		bson.M{"_id": id, "status": models.StatusPending},
		bson.M{"$set": bson.M{"status": to}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotPending
	}
	return nil
}
