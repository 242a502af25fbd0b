// internal/app/features/assignments/handler.go
package assignments

import (
	"net/http"

	"github.com/dalemusser/assetdesk/internal/app/lifecycle"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// Handler owns the assignment endpoints. All writes go through the lifecycle
// service so assignment and asset status stay consistent.
type Handler struct {
	Lifecycle *lifecycle.Service
	Log       *zap.Logger
}

// NewHandler creates a new assignments Handler.
func NewHandler(svc *lifecycle.Service, logger *zap.Logger) *Handler {
	return &Handler{Lifecycle: svc, Log: logger}
}

// pathID parses the {id} chi URL parameter as an ObjectID.
func pathID(r *http.Request) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	return id, err == nil
}
