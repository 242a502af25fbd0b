package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AssignmentStatus is the lifecycle state of an assignment.
type AssignmentStatus string

const (
	AssignmentActive   AssignmentStatus = "Active"
	AssignmentReturned AssignmentStatus = "Returned"
)

// Valid reports whether s is a known assignment status.
func (s AssignmentStatus) Valid() bool {
	return s == AssignmentActive || s == AssignmentReturned
}

// Assignment links one asset to one employee for a bounded period.
//
// AssetID is resolved from the asset's tag at creation time and never changes
// afterward. Status starts Active and moves to Returned when the asset comes
// back; the referenced asset's own status is kept in sync by the lifecycle
// service, never by editing the two records independently.
type Assignment struct {
	ID      primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	AssetID primitive.ObjectID `bson:"asset_id" json:"asset_id"`

	EmployeeName string `bson:"employee_name" json:"employee_name"`
	EmployeeID   string `bson:"employee_id" json:"employee_id"`
	Department   string `bson:"department,omitempty" json:"department,omitempty"`

	AssignmentDate time.Time  `bson:"assignment_date" json:"assignment_date"`
	ReturnedDate   *time.Time `bson:"returned_date,omitempty" json:"returned_date,omitempty"`

	Notes      string `bson:"notes,omitempty" json:"notes,omitempty"`
	AssignedBy string `bson:"assigned_by" json:"assigned_by"`

	Status AssignmentStatus `bson:"status" json:"status"`

	CreatedAt time.Time  `bson:"created_at" json:"created_at"`
	UpdatedAt *time.Time `bson:"updated_at,omitempty" json:"updated_at,omitempty"`
}

// IsActive returns true if the assignment is still open.
func (a *Assignment) IsActive() bool {
	return a.Status == AssignmentActive
}
