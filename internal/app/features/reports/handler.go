// internal/app/features/reports/handler.go
package reports

import (
	"net/http"

	"github.com/dalemusser/assetdesk/internal/app/store/queries/reportqueries"
	vendorstore "github.com/dalemusser/assetdesk/internal/app/store/vendors"
	"github.com/dalemusser/assetdesk/internal/app/system/httpjson"
	"github.com/dalemusser/assetdesk/internal/app/system/timeouts"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Handler owns the dashboard report endpoints.
type Handler struct {
	Queries *reportqueries.Queries
	Vendors *vendorstore.Store
	Log     *zap.Logger
}

// NewHandler creates a new reports Handler.
func NewHandler(queries *reportqueries.Queries, vendors *vendorstore.Store, logger *zap.Logger) *Handler {
	return &Handler{Queries: queries, Vendors: vendors, Log: logger}
}

// Routes mounts the report endpoints.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/summary", h.HandleSummary)
	return r
}

// summaryResponse is the GET /reports/summary body.
type summaryResponse struct {
	AssetsByStatus          map[string]int64 `json:"assets_by_status"`
	AssetsByCategory        map[string]int64 `json:"assets_by_category"`
	AssignmentsByDepartment map[string]int64 `json:"assignments_by_department"`
	TotalAssetCost          float64          `json:"total_asset_cost"`
	TotalMaintenanceCost    float64          `json:"total_maintenance_cost"`
	VendorCount             int64            `json:"vendor_count"`
}

// HandleSummary handles GET /reports/summary.
func (h *Handler) HandleSummary(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Long(), h.Log, "report summary")
	defer cancel()

	var (
		resp summaryResponse
		err  error
	)

	if resp.AssetsByStatus, err = h.Queries.AssetCountsByStatus(ctx); err != nil {
		httpjson.WriteError(w, h.Log, "report summary", err)
		return
	}
	if resp.AssetsByCategory, err = h.Queries.AssetCountsByCategory(ctx); err != nil {
		httpjson.WriteError(w, h.Log, "report summary", err)
		return
	}
	if resp.AssignmentsByDepartment, err = h.Queries.AssignmentCountsByDepartment(ctx); err != nil {
		httpjson.WriteError(w, h.Log, "report summary", err)
		return
	}
	if resp.TotalAssetCost, err = h.Queries.TotalAssetCost(ctx); err != nil {
		httpjson.WriteError(w, h.Log, "report summary", err)
		return
	}
	if resp.TotalMaintenanceCost, err = h.Queries.TotalMaintenanceCost(ctx); err != nil {
		httpjson.WriteError(w, h.Log, "report summary", err)
		return
	}
	if resp.VendorCount, err = h.Vendors.Count(ctx); err != nil {
		httpjson.WriteError(w, h.Log, "report summary", err)
		return
	}

	httpjson.Write(w, http.StatusOK, resp)
}
