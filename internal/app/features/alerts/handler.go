// internal/app/features/alerts/handler.go
package alerts

import (
	"net/http"

	alertstore "github.com/dalemusser/assetdesk/internal/app/store/alerts"
	"github.com/dalemusser/assetdesk/internal/app/system/apperr"
	"github.com/dalemusser/assetdesk/internal/app/system/httpjson"
	"github.com/dalemusser/assetdesk/internal/app/system/timeouts"
	"github.com/dalemusser/assetdesk/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// Handler owns the alert endpoints.
type Handler struct {
	Alerts *alertstore.Store
	Log    *zap.Logger
}

// NewHandler creates a new alerts Handler.
func NewHandler(alerts *alertstore.Store, logger *zap.Logger) *Handler {
	return &Handler{Alerts: alerts, Log: logger}
}

// Routes mounts the alert endpoints.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.HandleList)
	r.Delete("/{id}", h.HandleDelete)
	return r
}

// HandleList handles GET /alerts (unexpired, newest first).
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "list alerts")
	defer cancel()

	out, err := h.Alerts.List(ctx)
	if err != nil {
		httpjson.WriteError(w, h.Log, "list alerts", err)
		return
	}
	if out == nil {
		out = []models.Alert{}
	}
	httpjson.Write(w, http.StatusOK, out)
}

// HandleDelete handles DELETE /alerts/{id} (dismiss).
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "delete alert")
	defer cancel()

	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.WriteError(w, h.Log, "delete alert", apperr.NotFound("alert not found"))
		return
	}

	if err := h.Alerts.Delete(ctx, id); err != nil {
		httpjson.WriteError(w, h.Log, "delete alert", err)
		return
	}
	httpjson.Write(w, http.StatusOK, map[string]string{"message": "alert deleted"})
}
