// internal/app/features/assignments/summary.go
package assignments

import (
	"net/http"
	"strings"

	"github.com/dalemusser/assetdesk/internal/app/system/apperr"
	"github.com/dalemusser/assetdesk/internal/app/system/httpjson"
	"github.com/dalemusser/assetdesk/internal/app/system/timeouts"
)

// HandleSummary handles GET /assignments/summary.
func (h *Handler) HandleSummary(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "assignment summary")
	defer cancel()

	sum, err := h.Lifecycle.GetAssignmentSummary(ctx)
	if err != nil {
		httpjson.WriteError(w, h.Log, "assignment summary", err)
		return
	}
	httpjson.Write(w, http.StatusOK, sum)
}

// HandleSearch handles GET /assignments/search?query=...
func (h *Handler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "search assignments")
	defer cancel()

	query := strings.TrimSpace(r.URL.Query().Get("query"))
	if query == "" {
		httpjson.WriteError(w, h.Log, "search assignments", apperr.Validation("query is required"))
		return
	}

	out, err := h.Lifecycle.SearchAssignments(ctx, query)
	if err != nil {
		httpjson.WriteError(w, h.Log, "search assignments", err)
		return
	}
	writeRows(w, out)
}

// HandleFilterByStatus handles GET /assignments/filter/status?status=...
// Status "All" (or empty) returns everything.
func (h *Handler) HandleFilterByStatus(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "filter assignments")
	defer cancel()

	status := strings.TrimSpace(r.URL.Query().Get("status"))
	out, err := h.Lifecycle.GetAssignmentsByStatus(ctx, status)
	if err != nil {
		httpjson.WriteError(w, h.Log, "filter assignments", err)
		return
	}
	writeRows(w, out)
}

// HandleReturned handles GET /assignments/returned.
func (h *Handler) HandleReturned(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "list returned assignments")
	defer cancel()

	out, err := h.Lifecycle.GetAssignmentsByStatus(ctx, "Returned")
	if err != nil {
		httpjson.WriteError(w, h.Log, "list returned assignments", err)
		return
	}
	writeRows(w, out)
}
