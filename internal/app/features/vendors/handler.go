// internal/app/features/vendors/handler.go
package vendors

import (
	"fmt"
	"net/http"

	vendorstore "github.com/dalemusser/assetdesk/internal/app/store/vendors"
	"github.com/dalemusser/assetdesk/internal/app/system/activitylog"
	"github.com/dalemusser/assetdesk/internal/app/system/apperr"
	"github.com/dalemusser/assetdesk/internal/app/system/httpjson"
	"github.com/dalemusser/assetdesk/internal/app/system/inputval"
	"github.com/dalemusser/assetdesk/internal/app/system/normalize"
	"github.com/dalemusser/assetdesk/internal/app/system/timeouts"
	"github.com/dalemusser/assetdesk/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// Handler owns the vendor CRUD endpoints.
type Handler struct {
	Vendors  *vendorstore.Store
	Activity *activitylog.Logger
	Log      *zap.Logger
}

// NewHandler creates a new vendors Handler.
func NewHandler(vendors *vendorstore.Store, activity *activitylog.Logger, logger *zap.Logger) *Handler {
	return &Handler{Vendors: vendors, Activity: activity, Log: logger}
}

// Routes mounts the vendor endpoints.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.HandleCreate)
	r.Get("/", h.HandleList)
	r.Get("/{id}", h.HandleGet)
	r.Put("/{id}", h.HandleUpdate)
	r.Delete("/{id}", h.HandleDelete)

	return r
}

func pathID(r *http.Request) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	return id, err == nil
}

// createRequest is the POST /vendors payload.
type createRequest struct {
	Name          string `json:"name"`
	ContactPerson string `json:"contact_person"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	Address       string `json:"address"`
	Category      string `json:"category"`
	Status        string `json:"status"`
}

// HandleCreate handles POST /vendors.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "create vendor")
	defer cancel()

	var req createRequest
	if err := httpjson.Decode(w, r, &req); err != nil {
		httpjson.WriteError(w, h.Log, "create vendor", err)
		return
	}

	v := models.Vendor{
		Name:          normalize.Text(req.Name),
		ContactPerson: normalize.Text(req.ContactPerson),
		Email:         normalize.Email(req.Email),
		Phone:         normalize.Text(req.Phone),
		Address:       normalize.Text(req.Address),
		Category:      normalize.Text(req.Category),
		Status:        normalize.VendorStatus(req.Status),
	}
	if v.Status == "" {
		v.Status = "active"
	}

	if v.Name == "" {
		httpjson.WriteError(w, h.Log, "create vendor", apperr.Validation("name is required"))
		return
	}
	if v.Status != "active" && v.Status != "inactive" {
		httpjson.WriteError(w, h.Log, "create vendor", apperr.Validation("status must be active or inactive"))
		return
	}
	if v.Email != "" && !inputval.IsValidEmail(v.Email) {
		httpjson.WriteError(w, h.Log, "create vendor", apperr.Validation("email is not valid"))
		return
	}

	created, err := h.Vendors.Create(ctx, v)
	if err != nil {
		httpjson.WriteError(w, h.Log, "create vendor", err)
		return
	}

	h.Activity.Record(ctx,
		fmt.Sprintf("Vendor %s created", created.Name),
		models.ActivityVendorCreated)
	httpjson.Write(w, http.StatusCreated, created)
}

// HandleList handles GET /vendors.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "list vendors")
	defer cancel()

	out, err := h.Vendors.List(ctx)
	if err != nil {
		httpjson.WriteError(w, h.Log, "list vendors", err)
		return
	}
	if out == nil {
		out = []models.Vendor{}
	}
	httpjson.Write(w, http.StatusOK, out)
}

// HandleGet handles GET /vendors/{id}.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "get vendor")
	defer cancel()

	id, ok := pathID(r)
	if !ok {
		httpjson.WriteError(w, h.Log, "get vendor", apperr.NotFound("vendor not found"))
		return
	}

	v, err := h.Vendors.GetByID(ctx, id)
	if err != nil {
		httpjson.WriteError(w, h.Log, "get vendor", err)
		return
	}
	httpjson.Write(w, http.StatusOK, v)
}

// updateRequest is the PUT /vendors/{id} merge-patch payload.
type updateRequest struct {
	Name          *string `json:"name"`
	ContactPerson *string `json:"contact_person"`
	Email         *string `json:"email"`
	Phone         *string `json:"phone"`
	Address       *string `json:"address"`
	Category      *string `json:"category"`
	Status        *string `json:"status"`
}

// HandleUpdate handles PUT /vendors/{id}.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "update vendor")
	defer cancel()

	id, ok := pathID(r)
	if !ok {
		httpjson.WriteError(w, h.Log, "update vendor", apperr.NotFound("vendor not found"))
		return
	}

	var req updateRequest
	if err := httpjson.Decode(w, r, &req); err != nil {
		httpjson.WriteError(w, h.Log, "update vendor", err)
		return
	}

	patch := bson.M{}
	if req.Name != nil {
		name := normalize.Text(*req.Name)
		if name == "" {
			httpjson.WriteError(w, h.Log, "update vendor", apperr.Validation("name cannot be empty"))
			return
		}
		patch["name"] = name
	}
	if req.ContactPerson != nil {
		patch["contact_person"] = normalize.Text(*req.ContactPerson)
	}
	if req.Email != nil {
		email := normalize.Email(*req.Email)
		if email != "" && !inputval.IsValidEmail(email) {
			httpjson.WriteError(w, h.Log, "update vendor", apperr.Validation("email is not valid"))
			return
		}
		patch["email"] = email
	}
	if req.Phone != nil {
		patch["phone"] = normalize.Text(*req.Phone)
	}
	if req.Address != nil {
		patch["address"] = normalize.Text(*req.Address)
	}
	if req.Category != nil {
		patch["category"] = normalize.Text(*req.Category)
	}
	if req.Status != nil {
		status := normalize.VendorStatus(*req.Status)
		if status != "active" && status != "inactive" {
			httpjson.WriteError(w, h.Log, "update vendor", apperr.Validation("status must be active or inactive"))
			return
		}
		patch["status"] = status
	}

	updated, err := h.Vendors.Update(ctx, id, patch)
	if err != nil {
		httpjson.WriteError(w, h.Log, "update vendor", err)
		return
	}
	httpjson.Write(w, http.StatusOK, updated)
}

// HandleDelete handles DELETE /vendors/{id}.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "delete vendor")
	defer cancel()

	id, ok := pathID(r)
	if !ok {
		httpjson.WriteError(w, h.Log, "delete vendor", apperr.NotFound("vendor not found"))
		return
	}

	if err := h.Vendors.Delete(ctx, id); err != nil {
		httpjson.WriteError(w, h.Log, "delete vendor", err)
		return
	}
	httpjson.Write(w, http.StatusOK, map[string]string{"message": "vendor deleted"})
}
