// internal/app/features/assets/handler.go
package assets

import (
	"net/http"

	alertstore "github.com/dalemusser/assetdesk/internal/app/store/alerts"
	assetstore "github.com/dalemusser/assetdesk/internal/app/store/assets"
	assignmentstore "github.com/dalemusser/assetdesk/internal/app/store/assignments"
	"github.com/dalemusser/assetdesk/internal/app/system/activitylog"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// Handler owns the asset CRUD endpoints.
type Handler struct {
	Assets      *assetstore.Store
	Assignments *assignmentstore.Store
	Alerts      *alertstore.Store
	Activity    *activitylog.Logger

	// WarrantyWindowDays is how far ahead (inclusive) a warranty expiry
	// triggers a warning alert at create time.
	WarrantyWindowDays int

	Log *zap.Logger
}

// NewHandler creates a new assets Handler.
func NewHandler(assets *assetstore.Store, assignments *assignmentstore.Store, alerts *alertstore.Store, activity *activitylog.Logger, warrantyWindowDays int, logger *zap.Logger) *Handler {
	return &Handler{
		Assets:             assets,
		Assignments:        assignments,
		Alerts:             alerts,
		Activity:           activity,
		WarrantyWindowDays: warrantyWindowDays,
		Log:                logger,
	}
}

// pathID parses the {id} chi URL parameter as an ObjectID.
func pathID(r *http.Request) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	return id, err == nil
}
