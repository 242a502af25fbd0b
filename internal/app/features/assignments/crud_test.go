package assignments

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dalemusser/assetdesk/internal/app/lifecycle"
	assetstore "github.com/dalemusser/assetdesk/internal/app/store/assets"
	assignmentstore "github.com/dalemusser/assetdesk/internal/app/store/assignments"
	"github.com/dalemusser/assetdesk/internal/domain/models"
	"github.com/dalemusser/assetdesk/internal/testutil"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// newTestRouter builds the assignments router against a live test database
// so the tests exercise the same routing the app mounts under /api.
func newTestRouter(t *testing.T) (chi.Router, *testutil.Fixtures) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	fx := testutil.NewFixtures(t, db)
	svc := lifecycle.New(assetstore.New(db), assignmentstore.New(db), nil, db, zap.NewNop())
	return Routes(NewHandler(svc, zap.NewNop())), fx
}

func postJSON(t *testing.T, r chi.Router, path string, payload map[string]any) *httptest.ResponseRecorder {
	t.Helper()
	body, _ := json.Marshal(payload)
	req := httptest.NewRequest("POST", path, bytes.NewReader(body))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestHandleCreate_HTTP(t *testing.T) {
	r, fx := newTestRouter(t)
	ctx := testutil.TestContext(t)

	fx.CreateAsset(ctx, "AST-001", "SN-001")

	rec := postJSON(t, r, "/", map[string]any{
		"asset_tag":     "AST-001",
		"employee_name": "Asha Rao",
		"employee_id":   "E100",
		"department":    "Engineering",
		"assigned_by":   "admin",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201: %s", rec.Code, rec.Body.String())
	}

	var created models.Assignment
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if created.Status != models.AssignmentActive {
		t.Errorf("status = %s, want Active", created.Status)
	}

	// The asset is now Assigned: a second create for the same tag conflicts.
	rec = postJSON(t, r, "/", map[string]any{
		"asset_tag":     "AST-001",
		"employee_name": "Bipin Kumar",
		"employee_id":   "E101",
		"assigned_by":   "admin",
	})
	if rec.Code != http.StatusConflict {
		t.Fatalf("second create: status = %d, want 409: %s", rec.Code, rec.Body.String())
	}
}

func TestHandleCreate_HTTPErrors(t *testing.T) {
	r, _ := newTestRouter(t)

	// Unknown tag.
	rec := postJSON(t, r, "/", map[string]any{
		"asset_tag":     "NOPE-404",
		"employee_name": "Asha Rao",
		"employee_id":   "E100",
		"assigned_by":   "admin",
	})
	if rec.Code != http.StatusNotFound {
		t.Errorf("unknown tag: status = %d, want 404", rec.Code)
	}

	// Missing required fields.
	rec = postJSON(t, r, "/", map[string]any{"asset_tag": "AST-001"})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("missing fields: status = %d, want 400", rec.Code)
	}

	// assigned_by is required too.
	rec = postJSON(t, r, "/", map[string]any{
		"asset_tag":     "AST-001",
		"employee_name": "Asha Rao",
		"employee_id":   "E100",
	})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("missing assigned_by: status = %d, want 400", rec.Code)
	}

	// Unknown JSON fields are rejected.
	rec = postJSON(t, r, "/", map[string]any{
		"asset_tag": "AST-001",
		"surprise":  true,
	})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("unknown field: status = %d, want 400", rec.Code)
	}
}

func TestReturnEndpoint(t *testing.T) {
	r, fx := newTestRouter(t)
	ctx := testutil.TestContext(t)

	fx.CreateAsset(ctx, "AST-001", "SN-001")

	rec := postJSON(t, r, "/", map[string]any{
		"asset_tag":     "AST-001",
		"employee_name": "Asha Rao",
		"employee_id":   "E100",
		"assigned_by":   "admin",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create: status = %d: %s", rec.Code, rec.Body.String())
	}
	var created models.Assignment
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode: %v", err)
	}

	req := httptest.NewRequest("POST", "/"+created.ID.Hex()+"/return", nil)
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("return: status = %d: %s", rec.Code, rec.Body.String())
	}

	var returned models.Assignment
	if err := json.Unmarshal(rec.Body.Bytes(), &returned); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if returned.Status != models.AssignmentReturned || returned.ReturnedDate == nil {
		t.Errorf("returned = %+v, want Returned with returned_date", returned)
	}
}

func TestSummaryAndFilterEndpoints(t *testing.T) {
	r, fx := newTestRouter(t)
	ctx := testutil.TestContext(t)

	asset := fx.CreateAsset(ctx, "AST-001", "SN-001")
	fx.CreateAssignment(ctx, asset.ID, "Asha Rao", "E100", "Engineering")

	req := httptest.NewRequest("GET", "/summary", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("summary: status = %d: %s", rec.Code, rec.Body.String())
	}
	var sum lifecycle.Summary
	if err := json.Unmarshal(rec.Body.Bytes(), &sum); err != nil {
		t.Fatalf("decode summary: %v", err)
	}
	if sum.TotalAssignments != sum.ActiveAssignments+sum.ReturnedAssignments {
		t.Errorf("summary invariant broken: %+v", sum)
	}

	req = httptest.NewRequest("GET", "/filter/status?status=Active", nil)
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("filter: status = %d: %s", rec.Code, rec.Body.String())
	}

	req = httptest.NewRequest("GET", "/filter/status?status=Bogus", nil)
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("bogus filter: status = %d, want 400", rec.Code)
	}

	req = httptest.NewRequest("GET", "/search?query=asha", nil)
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("search: status = %d: %s", rec.Code, rec.Body.String())
	}

	req = httptest.NewRequest("GET", "/search", nil)
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("empty search: status = %d, want 400", rec.Code)
	}
}
