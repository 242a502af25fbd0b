package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Vendor is a supplier assets are purchased from or serviced by.
type Vendor struct {
	ID   primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name string             `bson:"name" json:"name"`

	ContactPerson string `bson:"contact_person,omitempty" json:"contact_person,omitempty"`
	Email         string `bson:"email,omitempty" json:"email,omitempty"`
	Phone         string `bson:"phone,omitempty" json:"phone,omitempty"`
	Address       string `bson:"address,omitempty" json:"address,omitempty"`
	Category      string `bson:"category,omitempty" json:"category,omitempty"`

	Status string `bson:"status" json:"status"` // "active" or "inactive"

	CreatedAt time.Time  `bson:"created_at" json:"created_at"`
	UpdatedAt *time.Time `bson:"updated_at,omitempty" json:"updated_at,omitempty"`
}
