// Package alertstore persists Alert documents in the "alerts" collection.
package alertstore

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
	return &Store{c: db.Collection("alerts")}
}

// Create inserts a new alert.
func (s *Store) Create(ctx context.Context, a models.Alert) (models.Alert, error) {
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now().UTC()
	}

	res, err := s.c.InsertOne(ctx, a)
	if err != nil {
		return a, apperr.Persistence("Unable to save alert.", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		a.ID = oid
	}
	return a, nil
}

// List returns current (unexpired) alerts, newest first.
func (s *Store) List(ctx context.Context) ([]models.Alert, error) {
	now := time.Now().UTC()
	filter := bson.M{"$or": bson.A{
		bson.M{"expire_at": nil},
		bson.M{"expire_at": bson.M{"$exists": false}},
		bson.M{"expire_at": bson.M{"$gt": now}},
	}}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, apperr.Persistence("Unable to list alerts.", err)
	}
	defer cur.Close(ctx)
	var out []models.Alert
	if err := cur.All(ctx, &out); err != nil {
		return nil, apperr.Persistence("Unable to list alerts.", err)
	}
	return out, nil
}

// Delete removes the alert with the given _id.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return apperr.Persistence("Unable to delete alert.", err)
	}
	if res.DeletedCount == 0 {
		return apperr.NotFound("alert not found")
	}
	return nil
}

// DeleteExpired removes alerts whose expire_at is in the past and returns
// how many were deleted. Used by the background cleanup worker.
func (s *Store) DeleteExpired(ctx context.Context) (int64, error) {
	now := time.Now().UTC()
	res, err := s.c.DeleteMany(ctx, bson.M{"expire_at": bson.M{"$lte": now}})
	if err != nil {
		return 0, apperr.Persistence("Unable to delete expired alerts.", err)
	}
	return res.DeletedCount, nil
}
