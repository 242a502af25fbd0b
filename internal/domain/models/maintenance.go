package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MaintenanceType classifies maintenance work.
type MaintenanceType string

const (
	MaintenanceRepair     MaintenanceType = "Repair"
	MaintenanceService    MaintenanceType = "Service"
	MaintenanceInspection MaintenanceType = "Inspection"
)

// Valid reports whether t is a known maintenance type.
func (t MaintenanceType) Valid() bool {
	switch t {
	case MaintenanceRepair, MaintenanceService, MaintenanceInspection:
		return true
	}
	return false
}

// MaintenanceStatus is the progress state of a maintenance record.
type MaintenanceStatus string

const (
	MaintenanceScheduled  MaintenanceStatus = "Scheduled"
	MaintenanceInProgress MaintenanceStatus = "InProgress"
	MaintenanceCompleted  MaintenanceStatus = "Completed"
)

// Valid reports whether s is a known maintenance status.
func (s MaintenanceStatus) Valid() bool {
	switch s {
	case MaintenanceScheduled, MaintenanceInProgress, MaintenanceCompleted:
		return true
	}
	return false
}

// MaintenanceRecord tracks repair/service/inspection work on an asset.
// Records are kept as history after an asset is deleted, so AssetID is
// not cascade-cleaned.
type MaintenanceRecord struct {
	ID      primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	AssetID primitive.ObjectID `bson:"asset_id" json:"asset_id"`

	Type        MaintenanceType `bson:"type" json:"type"`
	Description string          `bson:"description,omitempty" json:"description,omitempty"`
	Cost        float64         `bson:"cost" json:"cost"`
	PerformedBy string          `bson:"performed_by,omitempty" json:"performed_by,omitempty"`

	ScheduledDate time.Time  `bson:"scheduled_date" json:"scheduled_date"`
	CompletedDate *time.Time `bson:"completed_date,omitempty" json:"completed_date,omitempty"`

	Status MaintenanceStatus `bson:"status" json:"status"`

	CreatedAt time.Time  `bson:"created_at" json:"created_at"`
	UpdatedAt *time.Time `bson:"updated_at,omitempty" json:"updated_at,omitempty"`
}
