package handler

import (
	"net/http"

	"github.com/mcoot/tilegame/internal/api/response"
	"github.com/mcoot/tilegame/internal/storage"
)

// HealthHandler reports whether the server can reach its storage
type HealthHandler struct {
	storage     storage.Storage
	storageKind string
}

// NewHealthHandler creates a new HealthHandler
func NewHealthHandler(storage storage.Storage, storageKind string) *HealthHandler {
	return &HealthHandler{storage: storage, storageKind: storageKind}
}

// Check handles GET /health
func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	ids, err := h.storage.ListGameIDs(r.Context())
	if err != nil {
		response.JSON(w, http.StatusServiceUnavailable, response.Health{
			Status:  "unavailable",
			Storage: h.storageKind,
		})
		return
	}
	response.JSON(w, http.StatusOK, response.Health{
		Status:  "ok",
		Storage: h.storageKind,
		Games:   len(ids),
	})
}
