package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Alert levels.
const (
	AlertInfo     = "info"
	AlertWarning  = "warning"
	AlertCritical = "critical"
)

// Alert is a dashboard notification, e.g. an approaching warranty expiry.
// Alerts are written fire-and-forget; a failed alert write never fails the
// operation that triggered it.
type Alert struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	Level       string             `bson:"level" json:"level"`
	ExpireAt    *time.Time         `bson:"expire_at,omitempty" json:"expire_at,omitempty"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
}
