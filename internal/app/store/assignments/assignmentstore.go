// Package assignmentstore persists Assignment documents in the
// "assignments" collection and serves the joined views the API exposes.
package assignmentstore

import (
	"context"
	"regexp"
	"time"

	"github.com/dalemusser/assetdesk/internal/app/system/apperr"
	"github.com/dalemusser/assetdesk/internal/app/system/mongoerr"
	"github.com/dalemusser/assetdesk/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// WithAsset is an assignment joined with its asset document.
// Asset is nil when the referenced asset no longer exists.
type WithAsset struct {
	models.Assignment `bson:",inline"`

	Asset *models.Asset `bson:"asset,omitempty" json:"asset,omitempty"`
}

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("assignments")}
}

// Create inserts a new assignment document.
func (s *Store) Create(ctx context.Context, a models.Assignment) (models.Assignment, error) {
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now().UTC()
	}

	res, err := s.c.InsertOne(ctx, a)
	if err != nil {
		if mongoerr.IsDuplicateKey(err) {
			return a, apperr.Validation("an identical assignment already exists")
		}
		return a, apperr.Persistence("Unable to save assignment.", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		a.ID = oid
	}
	return a, nil
}

// GetByID returns a single assignment by its _id.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Assignment, error) {
	var a models.Assignment
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&a)
	if mongoerr.IsNoDocuments(err) {
		return a, apperr.NotFound("assignment not found")
	}
	if err != nil {
		return a, apperr.Persistence("Unable to load assignment.", err)
	}
	return a, nil
}

// GetByIDWithAsset returns a single assignment joined with its asset.
func (s *Store) GetByIDWithAsset(ctx context.Context, id primitive.ObjectID) (WithAsset, error) {
	pipeline := append(mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"_id": id}}},
	}, lookupAssetStages()...)

	var out WithAsset
	cur, err := s.c.Aggregate(ctx, pipeline)
	if err != nil {
		return out, apperr.Persistence("Unable to load assignment.", err)
	}
	defer cur.Close(ctx)

	if !cur.Next(ctx) {
		if err := cur.Err(); err != nil {
			return out, apperr.Persistence("Unable to load assignment.", err)
		}
		return out, apperr.NotFound("assignment not found")
	}
	if err := cur.Decode(&out); err != nil {
		return out, apperr.Persistence("Unable to load assignment.", err)
	}
	return out, nil
}

// Update applies a partial $set update to the assignment with the given _id
// and returns the updated document. UpdatedAt is always stamped.
func (s *Store) Update(ctx context.Context, id primitive.ObjectID, patch bson.M) (models.Assignment, error) {
	now := time.Now().UTC()
	patch["updated_at"] = now

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var a models.Assignment
	err := s.c.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": patch}, opts).Decode(&a)
	if mongoerr.IsNoDocuments(err) {
		return a, apperr.NotFound("assignment not found")
	}
	if err != nil {
		return a, apperr.Persistence("Unable to update assignment.", err)
	}
	return a, nil
}

// Delete removes the assignment with the given _id.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return apperr.Persistence("Unable to delete assignment.", err)
	}
	if res.DeletedCount == 0 {
		return apperr.NotFound("assignment not found")
	}
	return nil
}

// ListWithAsset returns all assignments joined with their assets,
// newest assignment date first.
func (s *Store) ListWithAsset(ctx context.Context) ([]WithAsset, error) {
	return s.aggregateWithAsset(ctx, bson.M{})
}

// ListByStatusWithAsset returns assignments with the given status joined
// with their assets, newest assignment date first.
func (s *Store) ListByStatusWithAsset(ctx context.Context, status models.AssignmentStatus) ([]WithAsset, error) {
	return s.aggregateWithAsset(ctx, bson.M{"status": status})
}

// SearchWithAsset returns assignments whose employee name, employee id, or
// department matches the term (case-insensitive substring), joined with
// their assets.
func (s *Store) SearchWithAsset(ctx context.Context, term string) ([]WithAsset, error) {
	pattern := primitive.Regex{Pattern: regexp.QuoteMeta(term), Options: "i"}
	filter := bson.M{"$or": bson.A{
		bson.M{"employee_name": pattern},
		bson.M{"employee_id": pattern},
		bson.M{"department": pattern},
	}}
	return s.aggregateWithAsset(ctx, filter)
}

// CountByStatus returns the number of assignments with the given status.
func (s *Store) CountByStatus(ctx context.Context, status models.AssignmentStatus) (int64, error) {
	n, err := s.c.CountDocuments(ctx, bson.M{"status": status})
	if err != nil {
		return 0, apperr.Persistence("Unable to count assignments.", err)
	}
	return n, nil
}

// Count returns the total number of assignments.
func (s *Store) Count(ctx context.Context) (int64, error) {
	n, err := s.c.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, apperr.Persistence("Unable to count assignments.", err)
	}
	return n, nil
}

// CountActiveByAsset returns how many Active assignments reference the asset.
func (s *Store) CountActiveByAsset(ctx context.Context, assetID primitive.ObjectID) (int64, error) {
	n, err := s.c.CountDocuments(ctx, bson.M{
		"asset_id": assetID,
		"status":   models.AssignmentActive,
	})
	if err != nil {
		return 0, apperr.Persistence("Unable to count assignments.", err)
	}
	return n, nil
}

func (s *Store) aggregateWithAsset(ctx context.Context, filter bson.M) ([]WithAsset, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: filter}},
		{{Key: "$sort", Value: bson.D{{Key: "assignment_date", Value: -1}, {Key: "_id", Value: -1}}}},
	}
	pipeline = append(pipeline, lookupAssetStages()...)

	cur, err := s.c.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, apperr.Persistence("Unable to list assignments.", err)
	}
	defer cur.Close(ctx)

	var out []WithAsset
	if err := cur.All(ctx, &out); err != nil {
		return nil, apperr.Persistence("Unable to list assignments.", err)
	}
	return out, nil
}

// lookupAssetStages joins the referenced asset and flattens the result to a
// single optional "asset" field.
func lookupAssetStages() mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$lookup", Value: bson.M{
			"from":         "assets",
			"localField":   "asset_id",
			"foreignField": "_id",
			"as":           "asset",
		}}},
		{{Key: "$unwind", Value: bson.M{
			"path":                       "$asset",
			"preserveNullAndEmptyArrays": true,
		}}},
	}
}
