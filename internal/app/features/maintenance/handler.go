// internal/app/features/maintenance/handler.go
package maintenance

import (
	"net/http"

	assetstore "github.com/dalemusser/assetdesk/internal/app/store/assets"
	maintenancestore "github.com/dalemusser/assetdesk/internal/app/store/maintenance"
	"github.com/dalemusser/assetdesk/internal/app/system/activitylog"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// Handler owns the maintenance endpoints. Scheduling repair work and
// completing it move the underlying asset between Available and UnderRepair.
type Handler struct {
	Maintenance *maintenancestore.Store
	Assets      *assetstore.Store
	Activity    *activitylog.Logger
	Log         *zap.Logger
}

// NewHandler creates a new maintenance Handler.
func NewHandler(maint *maintenancestore.Store, assets *assetstore.Store, activity *activitylog.Logger, logger *zap.Logger) *Handler {
	return &Handler{Maintenance: maint, Assets: assets, Activity: activity, Log: logger}
}

// Routes mounts the maintenance endpoints.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.HandleCreate)
	r.Get("/", h.HandleList)
	r.Get("/{id}", h.HandleGet)
	r.Put("/{id}", h.HandleUpdate)
	r.Delete("/{id}", h.HandleDelete)
	r.Post("/{id}/complete", h.HandleComplete)

	return r
}

func pathID(r *http.Request) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	return id, err == nil
}
