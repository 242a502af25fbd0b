// Package assetstore persists Asset documents in the "assets" collection.
package assetstore

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
	return &Store{c: db.Collection("assets")}
}

// Create inserts a new asset document.
//
// If ID is zero, a new ObjectID will be assigned. If CreatedAt is zero, it
// will be set to now (UTC). Duplicate tag or serial number surfaces as a
// validation error (backed by the unique indexes).
func (s *Store) Create(ctx context.Context, a models.Asset) (models.Asset, error) {
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now().UTC()
	}

	res, err := s.c.InsertOne(ctx, a)
	if err != nil {
		if mongoerr.IsDuplicateKey(err) {
			return a, apperr.Validation("an asset with this tag or serial number already exists")
		}
		return a, apperr.Persistence("Unable to save asset.", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		a.ID = oid
	}
	return a, nil
}

// GetByID returns a single asset by its _id.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Asset, error) {
	var a models.Asset
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&a)
	if mongoerr.IsNoDocuments(err) {
		return a, apperr.NotFound("asset not found")
	}
	if err != nil {
		return a, apperr.Persistence("Unable to load asset.", err)
	}
	return a, nil
}

// GetByTag returns a single asset by its unique tag.
func (s *Store) GetByTag(ctx context.Context, tag string) (models.Asset, error) {
	var a models.Asset
	err := s.c.FindOne(ctx, bson.M{"tag": tag}).Decode(&a)
	if mongoerr.IsNoDocuments(err) {
		return a, apperr.NotFound("asset not found")
	}
	if err != nil {
		return a, apperr.Persistence("Unable to load asset.", err)
	}
	return a, nil
}

// Update applies a partial $set update to the asset with the given _id.
// UpdatedAt is always stamped. Unknown id returns a not-found error.
func (s *Store) Update(ctx context.Context, id primitive.ObjectID, patch bson.M) (models.Asset, error) {
	now := time.Now().UTC()
	patch["updated_at"] = now

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var a models.Asset
	err := s.c.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": patch}, opts).Decode(&a)
	if mongoerr.IsNoDocuments(err) {
		return a, apperr.NotFound("asset not found")
	}
	if err != nil {
		if mongoerr.IsDuplicateKey(err) {
			return a, apperr.Validation("an asset with this tag or serial number already exists")
		}
		return a, apperr.Persistence("Unable to update asset.", err)
	}
	return a, nil
}

// UpdateStatusIf atomically flips the asset's status from `from` to `to`.
// It returns false when the asset exists but its status was not `from`
// (the compare-and-swap failed), which callers treat as a conflict.
func (s *Store) UpdateStatusIf(ctx context.Context, id primitive.ObjectID, from, to models.AssetStatus) (bool, error) {
	now := time.Now().UTC()
	res, err := s.c.UpdateOne(ctx,
		bson.M{"_id": id, "status": from},
		bson.M{"$set": bson.M{"status": to, "updated_at": now}},
	)
	if err != nil {
		return false, apperr.Persistence("Unable to update asset status.", err)
	}
	return res.MatchedCount == 1, nil
}

// SetStatus unconditionally sets the asset's status.
func (s *Store) SetStatus(ctx context.Context, id primitive.ObjectID, to models.AssetStatus) error {
	now := time.Now().UTC()
	res, err := s.c.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"status": to, "updated_at": now}},
	)
	if err != nil {
		return apperr.Persistence("Unable to update asset status.", err)
	}
	if res.MatchedCount == 0 {
		return apperr.NotFound("asset not found")
	}
	return nil
}

// Delete removes the asset with the given _id.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return apperr.Persistence("Unable to delete asset.", err)
	}
	if res.DeletedCount == 0 {
		return apperr.NotFound("asset not found")
	}
	return nil
}

// List returns all assets sorted by tag.
func (s *Store) List(ctx context.Context) ([]models.Asset, error) {
	opts := options.Find().SetSort(bson.D{{Key: "tag", Value: 1}})
	cur, err := s.c.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, apperr.Persistence("Unable to list assets.", err)
	}
	defer cur.Close(ctx)
	var out []models.Asset
	if err := cur.All(ctx, &out); err != nil {
		return nil, apperr.Persistence("Unable to list assets.", err)
	}
	return out, nil
}

// CountByStatus returns the number of assets with the given status.
func (s *Store) CountByStatus(ctx context.Context, status models.AssetStatus) (int64, error) {
	n, err := s.c.CountDocuments(ctx, bson.M{"status": status})
	if err != nil {
		return 0, apperr.Persistence("Unable to count assets.", err)
	}
	return n, nil
}
