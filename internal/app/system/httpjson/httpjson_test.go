package httpjson_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/dalemusser/assetdesk/internal/app/system/apperr"
	"github.com/dalemusser/assetdesk/internal/app/system/httpjson"
	"go.uber.org/zap"
)

func TestDecode_ValidBody(t *testing.T) {
	req := httptest.NewRequest("POST", "/", strings.NewReader(`{"name":"Dell Laptop"}`))
	rec := httptest.NewRecorder()

	var dst struct {
		Name string `json:"name"`
	}
	if err := httpjson.Decode(rec, req, &dst); err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if dst.Name != "Dell Laptop" {
		t.Errorf("Name: got %q, want %q", dst.Name, "Dell Laptop")
	}
}

func TestDecode_UnknownField(t *testing.T) {
	req := httptest.NewRequest("POST", "/", strings.NewReader(`{"nmae":"typo"}`))
	rec := httptest.NewRecorder()

	var dst struct {
		Name string `json:"name"`
	}
	err := httpjson.Decode(rec, req, &dst)
	if err == nil {
		t.Fatal("expected error for unknown field")
	}
	if apperr.KindOf(err) != apperr.KindValidation {
		t.Errorf("expected validation error, got kind %v", apperr.KindOf(err))
	}
}

func TestDecode_MalformedJSON(t *testing.T) {
	req := httptest.NewRequest("POST", "/", strings.NewReader(`{"name":`))
	rec := httptest.NewRecorder()

	var dst map[string]any
	if err := httpjson.Decode(rec, req, &dst); err == nil {
		t.Fatal("expected error for malformed JSON")
	}
}

func TestWriteError_StatusMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"validation", apperr.Validation("tag is required"), http.StatusBadRequest},
		{"not found", apperr.NotFound("asset not found"), http.StatusNotFound},
		{"conflict", apperr.Conflict("asset is not available"), http.StatusConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			httpjson.WriteError(rec, zap.NewNop(), "test op", tt.err)

			if rec.Code != tt.wantStatus {
				t.Errorf("status: got %d, want %d", rec.Code, tt.wantStatus)
			}

			var body struct {
				Message string `json:"message"`
			}
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("failed to parse body: %v", err)
			}
			if body.Message == "" {
				t.Error("expected a message in the error body")
			}
		})
	}
}

func TestWriteError_ServerErrorIncludesDetail(t *testing.T) {
	rec := httptest.NewRecorder()
	err := apperr.Persistence("Unable to save asset.", errTest("socket closed"))
	httpjson.WriteError(rec, zap.NewNop(), "create asset", err)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status: got %d, want 500", rec.Code)
	}

	var body struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to parse body: %v", err)
	}
	if body.Message != "Unable to save asset." {
		t.Errorf("message: got %q", body.Message)
	}
	if body.Error != "socket closed" {
		t.Errorf("error detail: got %q", body.Error)
	}
}

type errTest string

func (e errTest) Error() string { return string(e) }
