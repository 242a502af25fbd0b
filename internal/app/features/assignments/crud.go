// internal/app/features/assignments/crud.go
package assignments

import (
	"net/http"
	"time"

	"github.com/dalemusser/assetdesk/internal/app/lifecycle"
	assignmentstore "github.com/dalemusser/assetdesk/internal/app/store/assignments"
	"github.com/dalemusser/assetdesk/internal/app/system/apperr"
	"github.com/dalemusser/assetdesk/internal/app/system/htmlsanitize"
	"github.com/dalemusser/assetdesk/internal/app/system/httpjson"
	"github.com/dalemusser/assetdesk/internal/app/system/normalize"
	"github.com/dalemusser/assetdesk/internal/app/system/timeouts"
	"github.com/dalemusser/assetdesk/internal/domain/models"
)

// createRequest is the POST /assignments payload. The asset is referenced by
// its tag, which is what dashboard users type.
type createRequest struct {
	AssetTag       string `json:"asset_tag"`
	EmployeeName   string `json:"employee_name"`
	EmployeeID     string `json:"employee_id"`
	Department     string `json:"department"`
	AssignmentDate string `json:"assignment_date"`
	Notes          string `json:"notes"`
	AssignedBy     string `json:"assigned_by"`
}

// HandleCreate handles POST /assignments.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "create assignment")
	defer cancel()

	var req createRequest
	if err := httpjson.Decode(w, r, &req); err != nil {
		httpjson.WriteError(w, h.Log, "create assignment", err)
		return
	}

	in := lifecycle.CreateInput{
		AssetTag:     normalize.Tag(req.AssetTag),
		EmployeeName: normalize.Text(req.EmployeeName),
		EmployeeID:   normalize.Text(req.EmployeeID),
		Department:   normalize.Text(req.Department),
		Notes:        htmlsanitize.Sanitize(req.Notes),
		AssignedBy:   normalize.Text(req.AssignedBy),
	}

	switch {
	case in.AssetTag == "":
		httpjson.WriteError(w, h.Log, "create assignment", apperr.Validation("asset_tag is required"))
		return
	case in.EmployeeName == "":
		httpjson.WriteError(w, h.Log, "create assignment", apperr.Validation("employee_name is required"))
		return
	case in.EmployeeID == "":
		httpjson.WriteError(w, h.Log, "create assignment", apperr.Validation("employee_id is required"))
		return
	case in.AssignedBy == "":
		httpjson.WriteError(w, h.Log, "create assignment", apperr.Validation("assigned_by is required"))
		return
	}

	if req.AssignmentDate != "" {
		t, err := parseDate(req.AssignmentDate)
		if err != nil {
			httpjson.WriteError(w, h.Log, "create assignment", apperr.Validation("assignment_date: %v", err))
			return
		}
		in.AssignmentDate = t
	}

	created, err := h.Lifecycle.CreateAssignment(ctx, in)
	if err != nil {
		httpjson.WriteError(w, h.Log, "create assignment", err)
		return
	}
	httpjson.Write(w, http.StatusCreated, created)
}

// parseDate accepts RFC 3339 or a bare yyyy-mm-dd date.
func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), nil
	}
	return time.Parse("2006-01-02", s)
}

// HandleList handles GET /assignments.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "list assignments")
	defer cancel()

	out, err := h.Lifecycle.ListAssignments(ctx)
	if err != nil {
		httpjson.WriteError(w, h.Log, "list assignments", err)
		return
	}
	writeRows(w, out)
}

// HandleGet handles GET /assignments/{id} (joined with its asset).
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "get assignment")
	defer cancel()

	id, ok := pathID(r)
	if !ok {
		httpjson.WriteError(w, h.Log, "get assignment", apperr.NotFound("assignment not found"))
		return
	}

	a, err := h.Lifecycle.GetAssignment(ctx, id)
	if err != nil {
		httpjson.WriteError(w, h.Log, "get assignment", err)
		return
	}
	httpjson.Write(w, http.StatusOK, a)
}

// updateRequest is the PUT /assignments/{id} merge-patch payload.
type updateRequest struct {
	EmployeeName   *string `json:"employee_name"`
	EmployeeID     *string `json:"employee_id"`
	Department     *string `json:"department"`
	AssignmentDate *string `json:"assignment_date"`
	ReturnedDate   *string `json:"returned_date"`
	Notes          *string `json:"notes"`
	AssignedBy     *string `json:"assigned_by"`
	Status         *string `json:"status"`
}

// HandleUpdate handles PUT /assignments/{id}.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "update assignment")
	defer cancel()

	id, ok := pathID(r)
	if !ok {
		httpjson.WriteError(w, h.Log, "update assignment", apperr.NotFound("assignment not found"))
		return
	}

	var req updateRequest
	if err := httpjson.Decode(w, r, &req); err != nil {
		httpjson.WriteError(w, h.Log, "update assignment", err)
		return
	}

	in, err := updateInput(req)
	if err != nil {
		httpjson.WriteError(w, h.Log, "update assignment", err)
		return
	}

	updated, err := h.Lifecycle.UpdateAssignment(ctx, id, in)
	if err != nil {
		httpjson.WriteError(w, h.Log, "update assignment", err)
		return
	}
	httpjson.Write(w, http.StatusOK, updated)
}

func updateInput(req updateRequest) (lifecycle.UpdateInput, error) {
	var in lifecycle.UpdateInput

	if req.EmployeeName != nil {
		v := normalize.Text(*req.EmployeeName)
		if v == "" {
			return in, apperr.Validation("employee_name cannot be empty")
		}
		in.EmployeeName = &v
	}
	if req.EmployeeID != nil {
		v := normalize.Text(*req.EmployeeID)
		if v == "" {
			return in, apperr.Validation("employee_id cannot be empty")
		}
		in.EmployeeID = &v
	}
	if req.Department != nil {
		v := normalize.Text(*req.Department)
		in.Department = &v
	}
	if req.Notes != nil {
		v := htmlsanitize.Sanitize(*req.Notes)
		in.Notes = &v
	}
	if req.AssignedBy != nil {
		v := normalize.Text(*req.AssignedBy)
		in.AssignedBy = &v
	}
	if req.AssignmentDate != nil && *req.AssignmentDate != "" {
		t, err := parseDate(*req.AssignmentDate)
		if err != nil {
			return in, apperr.Validation("assignment_date: %v", err)
		}
		in.AssignmentDate = &t
	}
	if req.ReturnedDate != nil && *req.ReturnedDate != "" {
		t, err := parseDate(*req.ReturnedDate)
		if err != nil {
			return in, apperr.Validation("returned_date: %v", err)
		}
		in.ReturnedDate = &t
	}
	if req.Status != nil {
		st := models.AssignmentStatus(*req.Status)
		if !st.Valid() {
			return in, apperr.Validation("status must be Active or Returned")
		}
		in.Status = &st
	}
	return in, nil
}

// HandleDelete handles DELETE /assignments/{id}.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "delete assignment")
	defer cancel()

	id, ok := pathID(r)
	if !ok {
		httpjson.WriteError(w, h.Log, "delete assignment", apperr.NotFound("assignment not found"))
		return
	}

	if err := h.Lifecycle.DeleteAssignment(ctx, id); err != nil {
		httpjson.WriteError(w, h.Log, "delete assignment", err)
		return
	}
	httpjson.Write(w, http.StatusOK, map[string]string{"message": "assignment deleted"})
}

// returnRequest is the optional POST /assignments/{id}/return payload.
type returnRequest struct {
	ReturnedDate string `json:"returned_date"`
}

// HandleReturn handles POST /assignments/{id}/return.
func (h *Handler) HandleReturn(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "return assignment")
	defer cancel()

	id, ok := pathID(r)
	if !ok {
		httpjson.WriteError(w, h.Log, "return assignment", apperr.NotFound("assignment not found"))
		return
	}

	var returnedDate time.Time
	if r.ContentLength > 0 {
		var req returnRequest
		if err := httpjson.Decode(w, r, &req); err != nil {
			httpjson.WriteError(w, h.Log, "return assignment", err)
			return
		}
		if req.ReturnedDate != "" {
			t, err := parseDate(req.ReturnedDate)
			if err != nil {
				httpjson.WriteError(w, h.Log, "return assignment", apperr.Validation("returned_date: %v", err))
				return
			}
			returnedDate = t
		}
	}

	updated, err := h.Lifecycle.ReturnAssignment(ctx, id, returnedDate)
	if err != nil {
		httpjson.WriteError(w, h.Log, "return assignment", err)
		return
	}
	httpjson.Write(w, http.StatusOK, updated)
}

// writeRows writes a joined-assignment list, never null.
func writeRows(w http.ResponseWriter, rows []assignmentstore.WithAsset) {
	if rows == nil {
		rows = []assignmentstore.WithAsset{}
	}
	httpjson.Write(w, http.StatusOK, rows)
}
