package handler

import (
	"log/slog"
	"net/http"

	"arbor/internal/domain/services"
	"arbor/internal/httputil"
)

// ImportHandler handles bulk import HTTP requests
type ImportHandler struct {
	engine services.FolderEngine
	logger *slog.Logger
}

// NewImportHandler creates a new import handler
func NewImportHandler(engine services.FolderEngine, logger *slog.Logger) *ImportHandler {
	return &ImportHandler{
		engine: engine,
		logger: logger,
	}
}

// Import applies a batch of create/attach commands atomically
// POST /api/import
func (h *ImportHandler) Import(w http.ResponseWriter, r *http.Request) {
	var req services.ImportRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	views, err := h.engine.ImportViews(r.Context(), &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, views)
}
