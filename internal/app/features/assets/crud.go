// internal/app/features/assets/crud.go
package assets

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
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

// createRequest is the POST /assets payload.
type createRequest struct {
	Tag          string  `json:"tag"`
	SerialNumber string  `json:"serial_number"`
	Name         string  `json:"name"`
	Category     string  `json:"category"`
	Brand        string  `json:"brand"`
	Model        string  `json:"model"`
	PurchaseDate string  `json:"purchase_date"`
	Vendor       string  `json:"vendor"`
	Location     string  `json:"location"`
	Warranty     string  `json:"warranty_expiry"`
	Description  string  `json:"description"`
	Cost         float64 `json:"cost"`
	Status       string  `json:"status"`
}

// HandleCreate handles POST /assets.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "create asset")
	defer cancel()

	var req createRequest
	if err := httpjson.Decode(w, r, &req); err != nil {
		httpjson.WriteError(w, h.Log, "create asset", err)
		return
	}

	a, err := h.assetFromCreate(req)
	if err != nil {
		httpjson.WriteError(w, h.Log, "create asset", err)
		return
	}

	created, err := h.Assets.Create(ctx, a)
	if err != nil {
		httpjson.WriteError(w, h.Log, "create asset", err)
		return
	}

	h.Activity.Record(ctx,
		fmt.Sprintf("Asset %s (%s) created", created.Tag, created.Name),
		models.ActivityAssetCreated)
	h.maybeWarrantyAlert(ctx, created)

	httpjson.Write(w, http.StatusCreated, created)
}

func (h *Handler) assetFromCreate(req createRequest) (models.Asset, error) {
	a := models.Asset{
		Tag:          normalize.Tag(req.Tag),
		SerialNumber: normalize.Serial(req.SerialNumber),
		Name:         normalize.Text(req.Name),
		Category:     models.AssetCategory(normalize.Text(req.Category)),
		Brand:        normalize.Text(req.Brand),
		Model:        normalize.Text(req.Model),
		Vendor:       normalize.Text(req.Vendor),
		Location:     normalize.Text(req.Location),
		Description:  htmlsanitize.Sanitize(req.Description),
		Cost:         req.Cost,
		Status:       models.AssetStatus(normalize.Text(req.Status)),
	}

	if a.Tag == "" {
		return a, apperr.Validation("tag is required")
	}
	if a.SerialNumber == "" {
		return a, apperr.Validation("serial_number is required")
	}
	if a.Name == "" {
		return a, apperr.Validation("name is required")
	}
	if !a.Category.Valid() {
		return a, apperr.Validation("category must be one of IT, Furniture, Vehicle")
	}
	if a.Brand == "" {
		return a, apperr.Validation("brand is required")
	}
	if a.Cost < 0 {
		return a, apperr.Validation("cost cannot be negative")
	}
	if !a.Status.Valid() {
		return a, apperr.Validation("status must be one of Available, Assigned, UnderRepair")
	}

	if req.PurchaseDate == "" {
		return a, apperr.Validation("purchase_date is required")
	}
	t, err := parseDate(req.PurchaseDate)
	if err != nil {
		return a, apperr.Validation("purchase_date: %v", err)
	}
	a.PurchaseDate = t
	if req.Warranty != "" {
		t, err := parseDate(req.Warranty)
		if err != nil {
			return a, apperr.Validation("warranty_expiry: %v", err)
		}
		a.WarrantyExpiry = &t
	}
	return a, nil
}

// parseDate accepts RFC 3339 or a bare yyyy-mm-dd date.
func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("expected RFC 3339 or yyyy-mm-dd")
	}
	return t.UTC(), nil
}

// maybeWarrantyAlert creates a warning alert when the asset's warranty
// expires within the configured window. Alert failures are logged only.
func (h *Handler) maybeWarrantyAlert(ctx context.Context, a models.Asset) {
	if !a.HasWarranty() || !warrantyExpiring(*a.WarrantyExpiry, time.Now().UTC(), h.WarrantyWindowDays) {
		return
	}
	_, err := h.Alerts.Create(ctx, models.Alert{
		Title:       fmt.Sprintf("Warranty expiring for %s", a.Tag),
		Description: fmt.Sprintf("Warranty for %s (%s) expires on %s", a.Tag, a.Name, a.WarrantyExpiry.Format("2006-01-02")),
		Level:       models.AlertWarning,
		ExpireAt:    a.WarrantyExpiry,
	})
	if err != nil {
		h.Log.Error("failed to create warranty alert", zap.Error(err), zap.String("tag", a.Tag))
	}
}

// warrantyExpiring reports whether expiry falls within windowDays of now,
// inclusive on both ends. Already-expired warranties also report true so a
// late-registered asset still raises the alert.
func warrantyExpiring(expiry, now time.Time, windowDays int) bool {
	cutoff := now.AddDate(0, 0, windowDays)
	return !expiry.After(cutoff)
}

// HandleList handles GET /assets.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "list assets")
	defer cancel()

	out, err := h.Assets.List(ctx)
	if err != nil {
		httpjson.WriteError(w, h.Log, "list assets", err)
		return
	}
	if out == nil {
		out = []models.Asset{}
	}
	httpjson.Write(w, http.StatusOK, out)
}

// HandleGet handles GET /assets/{id}.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "get asset")
	defer cancel()

	id, ok := pathID(r)
	if !ok {
		httpjson.WriteError(w, h.Log, "get asset", apperr.NotFound("asset not found"))
		return
	}

	a, err := h.Assets.GetByID(ctx, id)
	if err != nil {
		httpjson.WriteError(w, h.Log, "get asset", err)
		return
	}
	httpjson.Write(w, http.StatusOK, a)
}

// HandleGetByTag handles GET /assets/tag/{tag}.
func (h *Handler) HandleGetByTag(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "get asset by tag")
	defer cancel()

	tag := normalize.Tag(chi.URLParam(r, "tag"))
	a, err := h.Assets.GetByTag(ctx, tag)
	if err != nil {
		httpjson.WriteError(w, h.Log, "get asset by tag", err)
		return
	}
	httpjson.Write(w, http.StatusOK, a)
}

// updateRequest is the PUT /assets/{id} merge-patch payload. Nil fields are
// left unchanged.
type updateRequest struct {
	Tag          *string  `json:"tag"`
	SerialNumber *string  `json:"serial_number"`
	Name         *string  `json:"name"`
	Category     *string  `json:"category"`
	Brand        *string  `json:"brand"`
	Model        *string  `json:"model"`
	PurchaseDate *string  `json:"purchase_date"`
	Vendor       *string  `json:"vendor"`
	Location     *string  `json:"location"`
	Warranty     *string  `json:"warranty_expiry"`
	Description  *string  `json:"description"`
	Cost         *float64 `json:"cost"`
	Status       *string  `json:"status"`
}

// HandleUpdate handles PUT /assets/{id}. Status changes go through the
// transition table; everything else is a merge update.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "update asset")
	defer cancel()

	id, ok := pathID(r)
	if !ok {
		httpjson.WriteError(w, h.Log, "update asset", apperr.NotFound("asset not found"))
		return
	}

	var req updateRequest
	if err := httpjson.Decode(w, r, &req); err != nil {
		httpjson.WriteError(w, h.Log, "update asset", err)
		return
	}

	current, err := h.Assets.GetByID(ctx, id)
	if err != nil {
		httpjson.WriteError(w, h.Log, "update asset", err)
		return
	}

	patch, err := h.patchFromUpdate(req, current)
	if err != nil {
		httpjson.WriteError(w, h.Log, "update asset", err)
		return
	}

	updated, err := h.Assets.Update(ctx, id, patch)
	if err != nil {
		httpjson.WriteError(w, h.Log, "update asset", err)
		return
	}

	h.Activity.Record(ctx,
		fmt.Sprintf("Asset %s updated", updated.Tag),
		models.ActivityAssetUpdated)
	httpjson.Write(w, http.StatusOK, updated)
}

func (h *Handler) patchFromUpdate(req updateRequest, current models.Asset) (bson.M, error) {
	patch := bson.M{}

	if req.Tag != nil {
		tag := normalize.Tag(*req.Tag)
		if tag == "" {
			return nil, apperr.Validation("tag cannot be empty")
		}
		patch["tag"] = tag
	}
	if req.SerialNumber != nil {
		serial := normalize.Serial(*req.SerialNumber)
		if serial == "" {
			return nil, apperr.Validation("serial_number cannot be empty")
		}
		patch["serial_number"] = serial
	}
	if req.Name != nil {
		name := normalize.Text(*req.Name)
		if name == "" {
			return nil, apperr.Validation("name cannot be empty")
		}
		patch["name"] = name
	}
	if req.Category != nil {
		cat := models.AssetCategory(normalize.Text(*req.Category))
		if !cat.Valid() {
			return nil, apperr.Validation("category must be one of IT, Furniture, Vehicle")
		}
		patch["category"] = cat
	}
	if req.Brand != nil {
		patch["brand"] = normalize.Text(*req.Brand)
	}
	if req.Model != nil {
		patch["model"] = normalize.Text(*req.Model)
	}
	if req.Vendor != nil {
		patch["vendor"] = normalize.Text(*req.Vendor)
	}
	if req.Location != nil {
		patch["location"] = normalize.Text(*req.Location)
	}
	if req.Description != nil {
		patch["description"] = htmlsanitize.Sanitize(*req.Description)
	}
	if req.Cost != nil {
		if *req.Cost < 0 {
			return nil, apperr.Validation("cost cannot be negative")
		}
		patch["cost"] = *req.Cost
	}
	if req.PurchaseDate != nil && *req.PurchaseDate != "" {
		t, err := parseDate(*req.PurchaseDate)
		if err != nil {
			return nil, apperr.Validation("purchase_date: %v", err)
		}
		patch["purchase_date"] = t
	}
	if req.Warranty != nil && *req.Warranty != "" {
		t, err := parseDate(*req.Warranty)
		if err != nil {
			return nil, apperr.Validation("warranty_expiry: %v", err)
		}
		patch["warranty_expiry"] = t
	}
	if req.Status != nil {
		to := models.AssetStatus(*req.Status)
		if !to.Valid() {
			return nil, apperr.Validation("status must be one of Available, Assigned, UnderRepair")
		}
		if !models.CanTransition(current.Status, to) {
			return nil, apperr.Validation("cannot change status from %s to %s", current.Status, to)
		}
		patch["status"] = to
	}
	return patch, nil
}

// HandleDelete handles DELETE /assets/{id}. An asset with an Active
// assignment cannot be deleted.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "delete asset")
	defer cancel()

	id, ok := pathID(r)
	if !ok {
		httpjson.WriteError(w, h.Log, "delete asset", apperr.NotFound("asset not found"))
		return
	}

	a, err := h.Assets.GetByID(ctx, id)
	if err != nil {
		httpjson.WriteError(w, h.Log, "delete asset", err)
		return
	}

	active, err := h.Assignments.CountActiveByAsset(ctx, id)
	if err != nil {
		httpjson.WriteError(w, h.Log, "delete asset", err)
		return
	}
	if active > 0 {
		httpjson.WriteError(w, h.Log, "delete asset",
			apperr.Conflict("asset %s has an active assignment and cannot be deleted", a.Tag))
		return
	}

	if err := h.Assets.Delete(ctx, id); err != nil {
		httpjson.WriteError(w, h.Log, "delete asset", err)
		return
	}

	h.Activity.Record(ctx,
		fmt.Sprintf("Asset %s deleted", a.Tag),
		models.ActivityAssetDeleted)
	httpjson.Write(w, http.StatusOK, map[string]string{"message": "asset deleted"})
}
