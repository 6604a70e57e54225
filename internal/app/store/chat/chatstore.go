// internal/app/store/chat/chatstore.go
package chatstore

import (
	"context"
	"time"

	"github.com/devcirclehq/devcircle/internal/app/system/htmlsanitize"
	"github.com/devcirclehq/devcircle/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("chat_messages")}
}

// Insert stores a message. The body is sanitized here so nothing unsafe
// ever reaches the collection, regardless of the caller.
func (s *Store) Insert(ctx context.Context, m models.ChatMessage) (models.ChatMessage, error) {
	m.ID = primitive.NewObjectID()
	m.Message = htmlsanitize.Sanitize(m.Message)
	m.Timestamp = time.Now()

	if _, err := s.c.InsertOne(ctx, m); err != nil {
		return models.ChatMessage{}, err
	}
	return m, nil
}

// ListRecent returns the newest limit messages in chronological order.
// The query walks the timestamp index newest-first and the page is
// reversed in memory, so old history is never scanned.
func (s *Store) ListRecent(ctx context.Context, limit int64) ([]models.ChatMessage, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "timestamp", Value: -1}, {Key: "_id", Value: -1}}).
		SetLimit(limit)
	cur, err := s.c.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.ChatMessage{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}

	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out, nil
}
