// Package activitystore persists ActivityEntry documents in the
// "activity_log" collection.
package activitystore

import (
	"context"
	"time"

	"github.com/dalemusser/assetdesk/internal/app/system/apperr"
	"github.com/dalemusser/assetdesk/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("activity_log")}
}

// Record appends one entry to the activity feed.
func (s *Store) Record(ctx context.Context, message, entryType string) (models.ActivityEntry, error) {
	e := models.ActivityEntry{
		Message:   message,
		Type:      entryType,
		Timestamp: time.Now().UTC(),
	}
	res, err := s.c.InsertOne(ctx, e)
	if err != nil {
		return e, apperr.Persistence("Unable to record activity.", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		e.ID = oid
	}
	return e, nil
}

// List returns the most recent entries, newest first. A limit <= 0
// defaults to 50.
func (s *Store) List(ctx context.Context, limit int64) ([]models.ActivityEntry, error) {
	if limit <= 0 {
		limit = 50
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "timestamp", Value: -1}}).
		SetLimit(limit)
	cur, err := s.c.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, apperr.Persistence("Unable to list activity.", err)
	}
	defer cur.Close(ctx)
	var out []models.ActivityEntry
	if err := cur.All(ctx, &out); err != nil {
		return nil, apperr.Persistence("Unable to list activity.", err)
	}
	return out, nil
}
