// Package maintenancestore persists MaintenanceRecord documents in the
// "maintenance_records" collection.
package maintenancestore

import (
	"context"
	"time"

	"github.com/dalemusser/assetdesk/internal/app/system/apperr"
	"github.com/dalemusser/assetdesk/internal/app/system/mongoerr"
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
	return &Store{c: db.Collection("maintenance_records")}
}

// Create inserts a new maintenance record.
func (s *Store) Create(ctx context.Context, m models.MaintenanceRecord) (models.MaintenanceRecord, error) {
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now().UTC()
	}

	res, err := s.c.InsertOne(ctx, m)
	if err != nil {
		return m, apperr.Persistence("Unable to save maintenance record.", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		m.ID = oid
	}
	return m, nil
}

// GetByID returns a single maintenance record by its _id.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.MaintenanceRecord, error) {
	var m models.MaintenanceRecord
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&m)
	if mongoerr.IsNoDocuments(err) {
		return m, apperr.NotFound("maintenance record not found")
	}
	if err != nil {
		return m, apperr.Persistence("Unable to load maintenance record.", err)
	}
	return m, nil
}

// Update applies a partial $set update to the record with the given _id.
func (s *Store) Update(ctx context.Context, id primitive.ObjectID, patch bson.M) (models.MaintenanceRecord, error) {
	now := time.Now().UTC()
	patch["updated_at"] = now

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var m models.MaintenanceRecord
	err := s.c.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": patch}, opts).Decode(&m)
	if mongoerr.IsNoDocuments(err) {
		return m, apperr.NotFound("maintenance record not found")
	}
	if err != nil {
		return m, apperr.Persistence("Unable to update maintenance record.", err)
	}
	return m, nil
}

// Delete removes the record with the given _id.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return apperr.Persistence("Unable to delete maintenance record.", err)
	}
	if res.DeletedCount == 0 {
		return apperr.NotFound("maintenance record not found")
	}
	return nil
}

// List returns all maintenance records, newest scheduled date first.
func (s *Store) List(ctx context.Context) ([]models.MaintenanceRecord, error) {
	return s.find(ctx, bson.M{})
}

// ListByAsset returns all maintenance records for one asset,
// newest scheduled date first.
func (s *Store) ListByAsset(ctx context.Context, assetID primitive.ObjectID) ([]models.MaintenanceRecord, error) {
	return s.find(ctx, bson.M{"asset_id": assetID})
}

// ListByStatus returns all maintenance records with the given status.
func (s *Store) ListByStatus(ctx context.Context, status models.MaintenanceStatus) ([]models.MaintenanceRecord, error) {
	return s.find(ctx, bson.M{"status": status})
}

func (s *Store) find(ctx context.Context, filter bson.M) ([]models.MaintenanceRecord, error) {
	opts := options.Find().SetSort(bson.D{{Key: "scheduled_date", Value: -1}, {Key: "_id", Value: -1}})
	cur, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, apperr.Persistence("Unable to list maintenance records.", err)
	}
	defer cur.Close(ctx)
	var out []models.MaintenanceRecord
	if err := cur.All(ctx, &out); err != nil {
		return nil, apperr.Persistence("Unable to list maintenance records.", err)
	}
	return out, nil
}

// TotalCost sums the cost of all maintenance records.
func (s *Store) TotalCost(ctx context.Context) (float64, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{
			"_id":   nil,
			"total": bson.M{"$sum": "$cost"},
		}}},
	}
	cur, err := s.c.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, apperr.Persistence("Unable to total maintenance cost.", err)
	}
	defer cur.Close(ctx)

	var row struct {
		Total float64 `bson:"total"`
	}
	if cur.Next(ctx) {
		if err := cur.Decode(&row); err != nil {
			return 0, apperr.Persistence("Unable to total maintenance cost.", err)
		}
	}
	if err := cur.Err(); err != nil {
		return 0, apperr.Persistence("Unable to total maintenance cost.", err)
	}
	return row.Total, nil
}
