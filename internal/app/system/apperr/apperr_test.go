package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"nil", nil, KindUnknown},
		{"plain error", errors.New("boom"), KindUnknown},
		{"validation", Validation("tag is required"), KindValidation},
		{"not found", NotFound("asset not found"), KindNotFound},
		{"conflict", Conflict("asset is not available"), KindConflict},
		{"persistence", Persistence("insert failed", errors.New("io")), KindPersistence},
		{"wrapped", fmt.Errorf("create asset: %w", NotFound("asset not found")), KindNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := KindOf(tt.err); got != tt.want {
				t.Errorf("KindOf() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"validation", Validation("bad"), http.StatusBadRequest},
		{"not found", NotFound("missing"), http.StatusNotFound},
		{"conflict", Conflict("taken"), http.StatusConflict},
		{"persistence", Persistence("db", errors.New("io")), http.StatusInternalServerError},
		{"unclassified", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HTTPStatus(tt.err); got != tt.want {
				t.Errorf("HTTPStatus() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestMessage_DoesNotLeakInternalErrors(t *testing.T) {
	if got := Message(errors.New("pq: connection refused")); got != "An unexpected error occurred." {
		t.Errorf("Message() leaked internal error: %q", got)
	}

	if got := Message(Persistence("Unable to save asset.", errors.New("socket closed"))); got != "Unable to save asset." {
		t.Errorf("Message() = %q, want the user-facing message", got)
	}
}

func TestErrorUnwrap(t *testing.T) {
	inner := errors.New("disk full")
	err := Persistence("insert failed", inner)
	if !errors.Is(err, inner) {
		t.Error("expected errors.Is to reach the wrapped error")
	}
}
