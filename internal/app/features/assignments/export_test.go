package assignments

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/dalemusser/assetdesk/internal/app/lifecycle"
	assetstore "github.com/dalemusser/assetdesk/internal/app/store/assets"
	assignmentstore "github.com/dalemusser/assetdesk/internal/app/store/assignments"
	"github.com/dalemusser/assetdesk/internal/testutil"
	"go.uber.org/zap"
)

func TestSanitizeCSVField(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"normal text", "normal text"},
		{"", ""},
		{"=SUM(A1:A9)", "'=SUM(A1:A9)"},
		{"+1234", "'+1234"},
		{"-2", "'-2"},
		{"@cmd", "'@cmd"},
		{"a=b", "a=b"},
	}
	for _, tt := range tests {
		if got := sanitizeCSVField(tt.in); got != tt.want {
			t.Errorf("sanitizeCSVField(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestHandleExport(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fx := testutil.NewFixtures(t, db)
	ctx := testutil.TestContext(t)

	svc := lifecycle.New(assetstore.New(db), assignmentstore.New(db), nil, db, zap.NewNop())
	h := NewHandler(svc, zap.NewNop())

	asset := fx.CreateAsset(ctx, "AST-001", "SN-001")
	fx.CreateAssignment(ctx, asset.ID, "Asha Rao", "E100", "Engineering")

	req := httptest.NewRequest("GET", "/api/assignments/export", nil)
	rec := httptest.NewRecorder()
	h.HandleExport(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/csv") {
		t.Errorf("content-type = %q, want text/csv", ct)
	}
	if cd := rec.Header().Get("Content-Disposition"); !strings.Contains(cd, "attachment") {
		t.Errorf("content-disposition = %q, want attachment", cd)
	}

	body := rec.Body.Bytes()
	if !bytes.HasPrefix(body, []byte{0xEF, 0xBB, 0xBF}) {
		t.Error("body should start with a UTF-8 BOM")
	}

	text := string(bytes.TrimPrefix(body, []byte{0xEF, 0xBB, 0xBF}))
	lines := strings.Split(strings.TrimRight(text, "\r\n"), "\r\n")
	if len(lines) != 2 {
		t.Fatalf("lines = %d, want header + 1 row: %q", len(lines), text)
	}
	if !strings.HasPrefix(lines[0], "asset_tag,asset_name,employee_name") {
		t.Errorf("header = %q", lines[0])
	}
	if !strings.Contains(lines[1], "AST-001") || !strings.Contains(lines[1], "Asha Rao") {
		t.Errorf("row = %q, want AST-001 and Asha Rao", lines[1])
	}
	if !strings.Contains(lines[1], "Test Asset AST-001") {
		t.Errorf("row = %q, want joined asset name", lines[1])
	}
}
