// Package httpjson holds the JSON request/response helpers used by every
// API handler: body decoding with limits, response writing, and the mapping
// from the apperr taxonomy to HTTP status codes and error bodies.
package httpjson

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dalemusser/assetdesk/internal/app/system/apperr"
	"go.uber.org/zap"
)

// maxBodyBytes caps JSON request bodies. Asset and assignment payloads are
// small; anything near this limit is malformed or hostile.
const maxBodyBytes = 1 << 20

// Decode reads a JSON request body into dst. Unknown fields are rejected so
// clients find out about typos instead of silently losing data.
func Decode(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return apperr.Validation("invalid JSON body: %v", err)
	}
	return nil
}

// Write sends v as JSON with the given status code.
func Write(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// errorBody is the JSON error envelope: a human-readable message, plus the
// underlying error detail on server failures.
type errorBody struct {
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

// WriteError maps err through the apperr taxonomy and writes the JSON error
// body. Server errors (500s) are logged with the full cause; client errors
// are logged at debug since they are routine.
func WriteError(w http.ResponseWriter, log *zap.Logger, op string, err error) {
	status := apperr.HTTPStatus(err)
	body := errorBody{Message: apperr.Message(err)}

	if status >= http.StatusInternalServerError {
		log.Error(op+" failed", zap.Error(err))
		var ae *apperr.Error
		if errors.As(err, &ae) && ae.Err != nil {
			body.Error = ae.Err.Error()
		}
	} else {
		log.Debug(op+" rejected", zap.Int("status", status), zap.Error(err))
	}

	Write(w, status, body)
}
