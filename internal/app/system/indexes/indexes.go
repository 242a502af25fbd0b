// Package indexes reconciles the indexes every collection needs at startup.
package indexes

import (
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

/*
EnsureAll is called at startup. Each ensure* function is idempotent.
We aggregate errors so any problem is visible and startup can fail fast.
*/
func EnsureAll(ctx context.Context, db *mongo.Database) error {
	var problems []string

	if err := ensureAssets(ctx, db); err != nil {
		problems = append(problems, "assets: "+err.Error())
	}
	if err := ensureAssignments(ctx, db); err != nil {
		problems = append(problems, "assignments: "+err.Error())
	}
	if err := ensureVendors(ctx, db); err != nil {
		problems = append(problems, "vendors: "+err.Error())
	}
	if err := ensureMaintenance(ctx, db); err != nil {
		problems = append(problems, "maintenance_records: "+err.Error())
	}
	if err := ensureAlerts(ctx, db); err != nil {
		problems = append(problems, "alerts: "+err.Error())
	}
	if err := ensureActivityLog(ctx, db); err != nil {
		problems = append(problems, "activity_log: "+err.Error())
	}

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

func ensureAssets(ctx context.Context, db *mongo.Database) error {
	// Tag and serial number uniqueness back the createAsset validation; a
	// duplicate-key write error surfaces to the API as a 400.
	models := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "tag", Value: 1}},
			Options: options.Index().SetName("uniq_assets_tag").SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "serial_number", Value: 1}},
			Options: options.Index().SetName("uniq_assets_serial").SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "status", Value: 1}},
			Options: options.Index().SetName("idx_assets_status"),
		},
		{
			Keys:    bson.D{{Key: "category", Value: 1}},
			Options: options.Index().SetName("idx_assets_category"),
		},
	}
	return ensureIndexSet(ctx, db.Collection("assets"), models)
}

func ensureAssignments(ctx context.Context, db *mongo.Database) error {
	models := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "asset_id", Value: 1}, {Key: "status", Value: 1}},
			Options: options.Index().SetName("idx_assignments_asset_status"),
		},
		{
			Keys:    bson.D{{Key: "status", Value: 1}, {Key: "assignment_date", Value: -1}},
			Options: options.Index().SetName("idx_assignments_status_date"),
		},
		{
			Keys:    bson.D{{Key: "employee_id", Value: 1}},
			Options: options.Index().SetName("idx_assignments_employee"),
		},
	}
	return ensureIndexSet(ctx, db.Collection("assignments"), models)
}

func ensureVendors(ctx context.Context, db *mongo.Database) error {
	models := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "name", Value: 1}},
			Options: options.Index().SetName("uniq_vendors_name").SetUnique(true),
		},
	}
	return ensureIndexSet(ctx, db.Collection("vendors"), models)
}

func ensureMaintenance(ctx context.Context, db *mongo.Database) error {
	models := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "asset_id", Value: 1}, {Key: "scheduled_date", Value: -1}},
			Options: options.Index().SetName("idx_maintenance_asset_date"),
		},
		{
			Keys:    bson.D{{Key: "status", Value: 1}},
			Options: options.Index().SetName("idx_maintenance_status"),
		},
	}
	return ensureIndexSet(ctx, db.Collection("maintenance_records"), models)
}

func ensureAlerts(ctx context.Context, db *mongo.Database) error {
	models := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "created_at", Value: -1}},
			Options: options.Index().SetName("idx_alerts_created"),
		},
		{
			Keys:    bson.D{{Key: "expire_at", Value: 1}},
			Options: options.Index().SetName("idx_alerts_expire"),
		},
	}
	return ensureIndexSet(ctx, db.Collection("alerts"), models)
}

func ensureActivityLog(ctx context.Context, db *mongo.Database) error {
	models := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "timestamp", Value: -1}},
			Options: options.Index().SetName("idx_activity_timestamp"),
		},
	}
	return ensureIndexSet(ctx, db.Collection("activity_log"), models)
}

// ensureIndexSet creates the desired indexes, tolerating the cases where an
// equivalent index already exists under a different name (IndexOptionsConflict
// on some vendors).
func ensureIndexSet(ctx context.Context, coll *mongo.Collection, models []mongo.IndexModel) error {
	var errs []string
	for _, m := range models {
		if _, err := coll.Indexes().CreateOne(ctx, m); err != nil {
			if isOptionsConflictErr(err) {
				continue
			}
			errs = append(errs, err.Error())
		}
	}
	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

// Mongo/DocDB sometimes returns IndexOptionsConflict when an index with the
// same keys already exists under a different name (or options differ).
func isOptionsConflictErr(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "IndexOptionsConflict")
}
