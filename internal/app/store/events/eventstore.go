// internal/app/store/events/eventstore.go
package eventstore

import (
	"context"
	"errors"
	"time"

	"github.com/devcirclehq/devcircle/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	// ErrAlreadyEnrolled is returned when the user is already on the
	// attendee list.
	ErrAlreadyEnrolled = errors.New("user already enrolled in this event")

	// ErrEventFull is returned when the attendee list is at capacity.
	ErrEventFull = errors.New("event is at capacity")
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("events")}
}

// Create inserts a new event with an empty attendee list.
func (s *Store) Create(ctx context.Context, e models.Event) (models.Event, error) {
	e.ID = primitive.NewObjectID()
	e.Attendees = []primitive.ObjectID{}
	e.CreatedAt = time.Now()

	if _, err := s.c.InsertOne(ctx, e); err != nil {
		return models.Event{}, err
	}
	return e, nil
}

// List returns all events, newest first.
func (s *Store) List(ctx context.Context) ([]models.Event, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := s.c.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.Event{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetByID loads an event by ObjectID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Event, error) {
	var e models.Event
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&e); err != nil {
		return nil, err
	}
	return &e, nil
}

// Enroll adds userID to the event's attendee list.
//
// The membership and capacity checks live in the update filter, so one
// UpdateOne decides the outcome: under concurrent enrolls each user is
// appended at most once and the list never exceeds max_attendees. When
// the filter does not match, the event is re-read once to classify the
// refusal; that read is diagnostic only and cannot admit anyone.
func (s *Store) Enroll(ctx context.Context, eventID, userID primitive.ObjectID) (*models.Event, error) {
	filter := bson.M{
		"_id":       eventID,
		"attendees": bson.M{"$ne": userID},
		"$or": bson.A{
			bson.M{"max_attendees": nil},
			bson.M{"$expr": bson.M{"$lt": bson.A{
				bson.M{"$size": bson.M{"$ifNull": bson.A{"$attendees", bson.A{}}}},
				"$max_attendees",
			}}},
		},
	}

	res, err := s.c.UpdateOne(ctx, filter, bson.M{"$push": bson.M{"attendees": userID}})
	if err != nil {
		return nil, err
	}

	if res.MatchedCount == 0 {
		e, err := s.GetByID(ctx, eventID)
		if err != nil {
			return nil, err // includes mongo.ErrNoDocuments for a missing event
		}
		for _, a := range e.Attendees {
			if a == userID {
				return nil, ErrAlreadyEnrolled
			}
		}
		return nil, ErrEventFull
	}

	return s.GetByID(ctx, eventID)
}
