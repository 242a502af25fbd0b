// internal/app/features/maintenance/crud.go
package maintenance

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/dalemusser/assetdesk/internal/app/system/apperr"
	"github.com/dalemusser/assetdesk/internal/app/system/htmlsanitize"
	"github.com/dalemusser/assetdesk/internal/app/system/httpjson"
	"github.com/dalemusser/assetdesk/internal/app/system/normalize"
	"github.com/dalemusser/assetdesk/internal/app/system/timeouts"
	"github.com/dalemusser/assetdesk/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// createRequest is the POST /maintenance payload. The asset is referenced by
// its id.
type createRequest struct {
	AssetID       string  `json:"asset_id"`
	Type          string  `json:"type"`
	Description   string  `json:"description"`
	Cost          float64 `json:"cost"`
	PerformedBy   string  `json:"performed_by"`
	ScheduledDate string  `json:"scheduled_date"`
}

// HandleCreate handles POST /maintenance. Scheduling a Repair on an
// Available asset moves the asset to UnderRepair; an Assigned asset cannot
// enter repair until it is returned.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "create maintenance")
	defer cancel()

	var req createRequest
	if err := httpjson.Decode(w, r, &req); err != nil {
		httpjson.WriteError(w, h.Log, "create maintenance", err)
		return
	}

	assetID, err := primitive.ObjectIDFromHex(req.AssetID)
	if err != nil {
		httpjson.WriteError(w, h.Log, "create maintenance", apperr.Validation("asset_id is not a valid id"))
		return
	}

	m := models.MaintenanceRecord{
		AssetID:     assetID,
		Type:        models.MaintenanceType(normalize.Text(req.Type)),
		Description: htmlsanitize.Sanitize(req.Description),
		Cost:        req.Cost,
		PerformedBy: normalize.Text(req.PerformedBy),
		Status:      models.MaintenanceScheduled,
	}

	if !m.Type.Valid() {
		httpjson.WriteError(w, h.Log, "create maintenance", apperr.Validation("type must be one of Repair, Service, Inspection"))
		return
	}
	if m.Cost < 0 {
		httpjson.WriteError(w, h.Log, "create maintenance", apperr.Validation("cost cannot be negative"))
		return
	}
	if req.ScheduledDate != "" {
		t, err := parseDate(req.ScheduledDate)
		if err != nil {
			httpjson.WriteError(w, h.Log, "create maintenance", apperr.Validation("scheduled_date: %v", err))
			return
		}
		m.ScheduledDate = t
	} else {
		m.ScheduledDate = time.Now().UTC()
	}

	asset, err := h.Assets.GetByID(ctx, assetID)
	if err != nil {
		httpjson.WriteError(w, h.Log, "create maintenance", err)
		return
	}

	if m.Type == models.MaintenanceRepair {
		if !models.CanTransition(asset.Status, models.AssetUnderRepair) {
			httpjson.WriteError(w, h.Log, "create maintenance",
				apperr.Conflict("asset %s cannot enter repair from status %s", asset.Tag, asset.Status))
			return
		}
		if asset.Status != models.AssetUnderRepair {
			if err := h.Assets.SetStatus(ctx, assetID, models.AssetUnderRepair); err != nil {
				httpjson.WriteError(w, h.Log, "create maintenance", err)
				return
			}
		}
	}

	created, err := h.Maintenance.Create(ctx, m)
	if err != nil {
		httpjson.WriteError(w, h.Log, "create maintenance", err)
		return
	}

	h.Activity.Record(ctx,
		fmt.Sprintf("%s scheduled for asset %s", created.Type, asset.Tag),
		models.ActivityMaintenanceLogged)
	httpjson.Write(w, http.StatusCreated, created)
}

// parseDate accepts RFC 3339 or a bare yyyy-mm-dd date.
func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), nil
	}
	return time.Parse("2006-01-02", s)
}

// HandleList handles GET /maintenance. Optional filters: ?asset_id=...,
// ?status=...
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "list maintenance")
	defer cancel()

	var (
		out []models.MaintenanceRecord
		err error
	)
	switch {
	case r.URL.Query().Get("asset_id") != "":
		assetID, perr := primitive.ObjectIDFromHex(r.URL.Query().Get("asset_id"))
		if perr != nil {
			httpjson.WriteError(w, h.Log, "list maintenance", apperr.Validation("asset_id is not a valid id"))
			return
		}
		out, err = h.Maintenance.ListByAsset(ctx, assetID)
	case r.URL.Query().Get("status") != "":
		status := models.MaintenanceStatus(r.URL.Query().Get("status"))
		if !status.Valid() {
			httpjson.WriteError(w, h.Log, "list maintenance", apperr.Validation("status must be one of Scheduled, InProgress, Completed"))
			return
		}
		out, err = h.Maintenance.ListByStatus(ctx, status)
	default:
		out, err = h.Maintenance.List(ctx)
	}
	if err != nil {
		httpjson.WriteError(w, h.Log, "list maintenance", err)
		return
	}
	if out == nil {
		out = []models.MaintenanceRecord{}
	}
	httpjson.Write(w, http.StatusOK, out)
}

// HandleGet handles GET /maintenance/{id}.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "get maintenance")
	defer cancel()

	id, ok := pathID(r)
	if !ok {
		httpjson.WriteError(w, h.Log, "get maintenance", apperr.NotFound("maintenance record not found"))
		return
	}

	m, err := h.Maintenance.GetByID(ctx, id)
	if err != nil {
		httpjson.WriteError(w, h.Log, "get maintenance", err)
		return
	}
	httpjson.Write(w, http.StatusOK, m)
}

// updateRequest is the PUT /maintenance/{id} merge-patch payload.
type updateRequest struct {
	Type          *string  `json:"type"`
	Description   *string  `json:"description"`
	Cost          *float64 `json:"cost"`
	PerformedBy   *string  `json:"performed_by"`
	ScheduledDate *string  `json:"scheduled_date"`
	Status        *string  `json:"status"`
}

// HandleUpdate handles PUT /maintenance/{id}. Moving status to Completed
// goes through HandleComplete semantics (asset released from repair).
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "update maintenance")
	defer cancel()

	id, ok := pathID(r)
	if !ok {
		httpjson.WriteError(w, h.Log, "update maintenance", apperr.NotFound("maintenance record not found"))
		return
	}

	var req updateRequest
	if err := httpjson.Decode(w, r, &req); err != nil {
		httpjson.WriteError(w, h.Log, "update maintenance", err)
		return
	}

	current, err := h.Maintenance.GetByID(ctx, id)
	if err != nil {
		httpjson.WriteError(w, h.Log, "update maintenance", err)
		return
	}

	patch := bson.M{}
	if req.Type != nil {
		mt := models.MaintenanceType(normalize.Text(*req.Type))
		if !mt.Valid() {
			httpjson.WriteError(w, h.Log, "update maintenance", apperr.Validation("type must be one of Repair, Service, Inspection"))
			return
		}
		patch["type"] = mt
	}
	if req.Description != nil {
		patch["description"] = htmlsanitize.Sanitize(*req.Description)
	}
	if req.Cost != nil {
		if *req.Cost < 0 {
			httpjson.WriteError(w, h.Log, "update maintenance", apperr.Validation("cost cannot be negative"))
			return
		}
		patch["cost"] = *req.Cost
	}
	if req.PerformedBy != nil {
		patch["performed_by"] = normalize.Text(*req.PerformedBy)
	}
	if req.ScheduledDate != nil && *req.ScheduledDate != "" {
		t, perr := parseDate(*req.ScheduledDate)
		if perr != nil {
			httpjson.WriteError(w, h.Log, "update maintenance", apperr.Validation("scheduled_date: %v", perr))
			return
		}
		patch["scheduled_date"] = t
	}

	completing := false
	if req.Status != nil {
		status := models.MaintenanceStatus(*req.Status)
		if !status.Valid() {
			httpjson.WriteError(w, h.Log, "update maintenance", apperr.Validation("status must be one of Scheduled, InProgress, Completed"))
			return
		}
		patch["status"] = status
		if status == models.MaintenanceCompleted && current.Status != models.MaintenanceCompleted {
			completing = true
			patch["completed_date"] = time.Now().UTC()
		}
	}

	updated, err := h.Maintenance.Update(ctx, id, patch)
	if err != nil {
		httpjson.WriteError(w, h.Log, "update maintenance", err)
		return
	}

	if completing {
		h.releaseFromRepair(ctx, updated)
	}
	httpjson.Write(w, http.StatusOK, updated)
}

// HandleComplete handles POST /maintenance/{id}/complete: marks the record
// Completed and, if the asset sits in UnderRepair, returns it to Available.
func (h *Handler) HandleComplete(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "complete maintenance")
	defer cancel()

	id, ok := pathID(r)
	if !ok {
		httpjson.WriteError(w, h.Log, "complete maintenance", apperr.NotFound("maintenance record not found"))
		return
	}

	current, err := h.Maintenance.GetByID(ctx, id)
	if err != nil {
		httpjson.WriteError(w, h.Log, "complete maintenance", err)
		return
	}
	if current.Status == models.MaintenanceCompleted {
		httpjson.WriteError(w, h.Log, "complete maintenance", apperr.Conflict("maintenance record is already completed"))
		return
	}

	updated, err := h.Maintenance.Update(ctx, id, bson.M{
		"status":         models.MaintenanceCompleted,
		"completed_date": time.Now().UTC(),
	})
	if err != nil {
		httpjson.WriteError(w, h.Log, "complete maintenance", err)
		return
	}

	h.releaseFromRepair(ctx, updated)
	httpjson.Write(w, http.StatusOK, updated)
}

// releaseFromRepair moves the record's asset UnderRepair -> Available.
// A deleted asset is fine; records are kept as history.
func (h *Handler) releaseFromRepair(ctx context.Context, m models.MaintenanceRecord) {
	asset, err := h.Assets.GetByID(ctx, m.AssetID)
	if apperr.KindOf(err) == apperr.KindNotFound {
		return
	}
	if err != nil {
		h.Log.Error("failed to load asset after maintenance completion", zap.Error(err))
		return
	}
	if asset.Status != models.AssetUnderRepair {
		return
	}
	if err := h.Assets.SetStatus(ctx, m.AssetID, models.AssetAvailable); err != nil {
		h.Log.Error("failed to release asset from repair", zap.Error(err))
	}
}

// HandleDelete handles DELETE /maintenance/{id}.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "delete maintenance")
	defer cancel()

	id, ok := pathID(r)
	if !ok {
		httpjson.WriteError(w, h.Log, "delete maintenance", apperr.NotFound("maintenance record not found"))
		return
	}

	if err := h.Maintenance.Delete(ctx, id); err != nil {
		httpjson.WriteError(w, h.Log, "delete maintenance", err)
		return
	}
	httpjson.Write(w, http.StatusOK, map[string]string{"message": "maintenance record deleted"})
}
