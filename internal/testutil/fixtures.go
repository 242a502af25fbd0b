package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/dalemusser/assetdesk/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// CreateAsset creates an Available test asset with the given tag and serial.
func (f *Fixtures) CreateAsset(ctx context.Context, tag, serial string) models.Asset {
	f.t.Helper()
	return f.CreateAssetWithStatus(ctx, tag, serial, models.AssetAvailable)
}

// CreateAssetWithStatus creates a test asset with the given status.
func (f *Fixtures) CreateAssetWithStatus(ctx context.Context, tag, serial string, status models.AssetStatus) models.Asset {
	f.t.Helper()

	now := time.Now().UTC()
	a := models.Asset{
		ID:           primitive.NewObjectID(),
		Tag:          tag,
		SerialNumber: serial,
		Name:         "Test Asset " + tag,
		Category:     models.CategoryIT,
		Brand:        "TestBrand",
		PurchaseDate: now.AddDate(-1, 0, 0),
		Cost:         999.99,
		Status:       status,
		CreatedAt:    now,
	}

	if _, err := f.db.Collection("assets").InsertOne(ctx, a); err != nil {
		f.t.Fatalf("failed to create test asset: %v", err)
	}
	return a
}

// CreateAssignment creates an Active test assignment for the given asset.
func (f *Fixtures) CreateAssignment(ctx context.Context, assetID primitive.ObjectID, employeeName, employeeID, department string) models.Assignment {
	f.t.Helper()

	now := time.Now().UTC()
	a := models.Assignment{
		ID:             primitive.NewObjectID(),
		AssetID:        assetID,
		EmployeeName:   employeeName,
		EmployeeID:     employeeID,
		Department:     department,
		AssignmentDate: now,
		AssignedBy:     "test-admin",
		Status:         models.AssignmentActive,
		CreatedAt:      now,
	}

	if _, err := f.db.Collection("assignments").InsertOne(ctx, a); err != nil {
		f.t.Fatalf("failed to create test assignment: %v", err)
	}
	return a
}

// CreateVendor creates an active test vendor with the given name.
func (f *Fixtures) CreateVendor(ctx context.Context, name string) models.Vendor {
	f.t.Helper()

	now := time.Now().UTC()
	v := models.Vendor{
		ID:        primitive.NewObjectID(),
		Name:      name,
		Email:     "contact@example.com",
		Status:    "active",
		CreatedAt: now,
	}

	if _, err := f.db.Collection("vendors").InsertOne(ctx, v); err != nil {
		f.t.Fatalf("failed to create test vendor: %v", err)
	}
	return v
}

// CreateMaintenance creates a Scheduled test maintenance record for the
// given asset.
func (f *Fixtures) CreateMaintenance(ctx context.Context, assetID primitive.ObjectID, mType models.MaintenanceType, cost float64) models.MaintenanceRecord {
	f.t.Helper()

	now := time.Now().UTC()
	m := models.MaintenanceRecord{
		ID:            primitive.NewObjectID(),
		AssetID:       assetID,
		Type:          mType,
		Cost:          cost,
		ScheduledDate: now,
		Status:        models.MaintenanceScheduled,
		CreatedAt:     now,
	}

	if _, err := f.db.Collection("maintenance_records").InsertOne(ctx, m); err != nil {
		f.t.Fatalf("failed to create test maintenance record: %v", err)
	}
	return m
}
