// internal/app/features/activity/handler.go
package activity

import (
	"net/http"
	"strconv"

	activitystore "github.com/dalemusser/assetdesk/internal/app/store/activity"
	"github.com/dalemusser/assetdesk/internal/app/system/httpjson"
	"github.com/dalemusser/assetdesk/internal/app/system/timeouts"
	"github.com/dalemusser/assetdesk/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Handler owns the recent-activity feed endpoint.
type Handler struct {
	Activity *activitystore.Store
	Log      *zap.Logger
}

// NewHandler creates a new activity Handler.
func NewHandler(store *activitystore.Store, logger *zap.Logger) *Handler {
	return &Handler{Activity: store, Log: logger}
}

// Routes mounts the activity endpoints.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.HandleList)
	return r
}

// HandleList handles GET /activity?limit=N (default 50, max 500).
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "list activity")
	defer cancel()

	limit := int64(50)
	if s := r.URL.Query().Get("limit"); s != "" {
		if n, err := strconv.ParseInt(s, 10, 64); err == nil && n > 0 {
			limit = n
		}
	}
	if limit > 500 {
		limit = 500
	}

	out, err := h.Activity.List(ctx, limit)
	if err != nil {
		httpjson.WriteError(w, h.Log, "list activity", err)
		return
	}
	if out == nil {
		out = []models.ActivityEntry{}
	}
	httpjson.Write(w, http.StatusOK, out)
}
