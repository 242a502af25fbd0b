package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Activity entry types.
const (
	ActivityAssetCreated       = "asset_created"
	ActivityAssetUpdated       = "asset_updated"
	ActivityAssetDeleted       = "asset_deleted"
	ActivityAssignmentCreated  = "assignment_created"
	ActivityAssignmentReturned = "assignment_returned"
	ActivityAssignmentDeleted  = "assignment_deleted"
	ActivityMaintenanceLogged  = "maintenance_logged"
	ActivityVendorCreated      = "vendor_created"
)

// ActivityEntry is one line in the dashboard's recent-activity feed.
type ActivityEntry struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Message   string             `bson:"message" json:"message"`
	Type      string             `bson:"type" json:"type"`
	Timestamp time.Time          `bson:"timestamp" json:"timestamp"`
}
