package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AssetStatus is the lifecycle state of an asset.
type AssetStatus string

const (
	AssetAvailable   AssetStatus = "Available"
	AssetAssigned    AssetStatus = "Assigned"
	AssetUnderRepair AssetStatus = "UnderRepair"
)

// Valid reports whether s is a known asset status.
func (s AssetStatus) Valid() bool {
	switch s {
	case AssetAvailable, AssetAssigned, AssetUnderRepair:
		return true
	}
	return false
}

// CanTransition reports whether an asset status change from -> to is allowed.
//
// The table is deliberately closed: an asset under repair cannot jump straight
// to Assigned; it has to come back through Available first. A no-op transition
// (from == to) is always allowed so merge-updates that resubmit the current
// status don't fail.
func CanTransition(from, to AssetStatus) bool {
	if from == to {
		return true
	}
	switch from {
	case AssetAvailable:
		return to == AssetAssigned || to == AssetUnderRepair
	case AssetAssigned:
		return to == AssetAvailable || to == AssetUnderRepair
	case AssetUnderRepair:
		return to == AssetAvailable
	}
	return false
}

// AssetCategory classifies what kind of item an asset is.
type AssetCategory string

const (
	CategoryIT        AssetCategory = "IT"
	CategoryFurniture AssetCategory = "Furniture"
	CategoryVehicle   AssetCategory = "Vehicle"
)

// Valid reports whether c is a known asset category.
func (c AssetCategory) Valid() bool {
	switch c {
	case CategoryIT, CategoryFurniture, CategoryVehicle:
		return true
	}
	return false
}

// Asset represents a tracked physical or IT item.
//
// Tag and SerialNumber are both unique across the collection (enforced by
// unique indexes). Status is owned by the assignment lifecycle for the
// Available/Assigned pair and by maintenance/admin edits for UnderRepair.
type Asset struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Tag          string             `bson:"tag" json:"tag"`
	SerialNumber string             `bson:"serial_number" json:"serial_number"`

	Name     string        `bson:"name" json:"name"`
	Category AssetCategory `bson:"category" json:"category"`
	Brand    string        `bson:"brand" json:"brand"`
	Model    string        `bson:"model,omitempty" json:"model,omitempty"`

	PurchaseDate   time.Time  `bson:"purchase_date" json:"purchase_date"`
	Vendor         string     `bson:"vendor,omitempty" json:"vendor,omitempty"`
	Location       string     `bson:"location,omitempty" json:"location,omitempty"`
	WarrantyExpiry *time.Time `bson:"warranty_expiry,omitempty" json:"warranty_expiry,omitempty"`

	Description string  `bson:"description,omitempty" json:"description,omitempty"`
	Cost        float64 `bson:"cost" json:"cost"`

	Status AssetStatus `bson:"status" json:"status"`

	CreatedAt time.Time  `bson:"created_at" json:"created_at"`
	UpdatedAt *time.Time `bson:"updated_at,omitempty" json:"updated_at,omitempty"`
}

// HasWarranty returns true if the asset has a warranty expiry recorded.
func (a *Asset) HasWarranty() bool {
	return a.WarrantyExpiry != nil && !a.WarrantyExpiry.IsZero()
}
