// Package vendorstore persists Vendor documents in the "vendors" collection.
package vendorstore

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
	return &Store{c: db.Collection("vendors")}
}

// Create inserts a new vendor. Vendor names are unique.
func (s *Store) Create(ctx context.Context, v models.Vendor) (models.Vendor, error) {
	if v.CreatedAt.IsZero() {
		v.CreatedAt = time.Now().UTC()
	}

	res, err := s.c.InsertOne(ctx, v)
	if err != nil {
		if mongoerr.IsDuplicateKey(err) {
			return v, apperr.Validation("a vendor with this name already exists")
		}
		return v, apperr.Persistence("Unable to save vendor.", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		v.ID = oid
	}
	return v, nil
}

// GetByID returns a single vendor by its _id.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Vendor, error) {
	var v models.Vendor
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&v)
	if mongoerr.IsNoDocuments(err) {
		return v, apperr.NotFound("vendor not found")
	}
	if err != nil {
		return v, apperr.Persistence("Unable to load vendor.", err)
	}
	return v, nil
}

// Update applies a partial $set update to the vendor with the given _id.
func (s *Store) Update(ctx context.Context, id primitive.ObjectID, patch bson.M) (models.Vendor, error) {
	now := time.Now().UTC()
	patch["updated_at"] = now

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var v models.Vendor
	err := s.c.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": patch}, opts).Decode(&v)
	if mongoerr.IsNoDocuments(err) {
		return v, apperr.NotFound("vendor not found")
	}
	if err != nil {
		if mongoerr.IsDuplicateKey(err) {
			return v, apperr.Validation("a vendor with this name already exists")
		}
		return v, apperr.Persistence("Unable to update vendor.", err)
	}
	return v, nil
}

// Delete removes the vendor with the given _id.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return apperr.Persistence("Unable to delete vendor.", err)
	}
	if res.DeletedCount == 0 {
		return apperr.NotFound("vendor not found")
	}
	return nil
}

// List returns all vendors sorted by name.
func (s *Store) List(ctx context.Context) ([]models.Vendor, error) {
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cur, err := s.c.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, apperr.Persistence("Unable to list vendors.", err)
	}
	defer cur.Close(ctx)
	var out []models.Vendor
	if err := cur.All(ctx, &out); err != nil {
		return nil, apperr.Persistence("Unable to list vendors.", err)
	}
	return out, nil
}

// Count returns the total number of vendors.
func (s *Store) Count(ctx context.Context) (int64, error) {
	n, err := s.c.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, apperr.Persistence("Unable to count vendors.", err)
	}
	return n, nil
}
