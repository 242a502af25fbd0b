// Package reportqueries runs the cross-collection aggregations behind the
// summary report. These are read-only and tolerate empty collections.
package reportqueries

import (
	"context"

	"github.com/dalemusser/assetdesk/internal/app/system/apperr"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type Queries struct {
	db *mongo.Database
}

func New(db *mongo.Database) *Queries {
	return &Queries{db: db}
}

// AssetCountsByStatus returns asset counts keyed by status.
func (q *Queries) AssetCountsByStatus(ctx context.Context) (map[string]int64, error) {
	return q.groupCounts(ctx, "assets", "$status")
}

// AssetCountsByCategory returns asset counts keyed by category.
func (q *Queries) AssetCountsByCategory(ctx context.Context) (map[string]int64, error) {
	return q.groupCounts(ctx, "assets", "$category")
}

// AssignmentCountsByDepartment returns active-assignment counts keyed by
// department. Assignments without a department are grouped under "".
func (q *Queries) AssignmentCountsByDepartment(ctx context.Context) (map[string]int64, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"status": "Active"}}},
		{{Key: "$group", Value: bson.M{
			"_id":   bson.M{"$ifNull": bson.A{"$department", ""}},
			"count": bson.M{"$sum": 1},
		}}},
	}
	return q.runGroup(ctx, "assignments", pipeline)
}

// TotalAssetCost sums the purchase cost of all assets.
func (q *Queries) TotalAssetCost(ctx context.Context) (float64, error) {
	return q.sumField(ctx, "assets", "$cost")
}

// TotalMaintenanceCost sums the cost of all maintenance records.
func (q *Queries) TotalMaintenanceCost(ctx context.Context) (float64, error) {
	return q.sumField(ctx, "maintenance_records", "$cost")
}

func (q *Queries) groupCounts(ctx context.Context, coll, field string) (map[string]int64, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{
			"_id":   field,
			"count": bson.M{"$sum": 1},
		}}},
	}
	return q.runGroup(ctx, coll, pipeline)
}

func (q *Queries) runGroup(ctx context.Context, coll string, pipeline mongo.Pipeline) (map[string]int64, error) {
	cur, err := q.db.Collection(coll).Aggregate(ctx, pipeline)
	if err != nil {
		return nil, apperr.Persistence("Unable to build report.", err)
	}
	defer cur.Close(ctx)

	out := make(map[string]int64)
	for cur.Next(ctx) {
		var row struct {
			ID    string `bson:"_id"`
			Count int64  `bson:"count"`
		}
		if err := cur.Decode(&row); err != nil {
			return nil, apperr.Persistence("Unable to build report.", err)
		}
		out[row.ID] = row.Count
	}
	if err := cur.Err(); err != nil {
		return nil, apperr.Persistence("Unable to build report.", err)
	}
	return out, nil
}

func (q *Queries) sumField(ctx context.Context, coll, field string) (float64, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{
			"_id":   nil,
			"total": bson.M{"$sum": field},
		}}},
	}
	cur, err := q.db.Collection(coll).Aggregate(ctx, pipeline)
	if err != nil {
		return 0, apperr.Persistence("Unable to build report.", err)
	}
	defer cur.Close(ctx)

	var row struct {
		Total float64 `bson:"total"`
	}
	if cur.Next(ctx) {
		if err := cur.Decode(&row); err != nil {
			return 0, apperr.Persistence("Unable to build report.", err)
		}
	}
	if err := cur.Err(); err != nil {
		return 0, apperr.Persistence("Unable to build report.", err)
	}
	return row.Total, nil
}
