package handler

import (
	"log/slog"
	"net/http"

	"arbor/internal/domain/services"
	"arbor/internal/httputil"
)

// TrashHandler handles trash HTTP requests
type TrashHandler struct {
	engine services.FolderEngine
	logger *slog.Logger
}

// NewTrashHandler creates a new trash handler
func NewTrashHandler(engine services.FolderEngine, logger *slog.Logger) *TrashHandler {
	return &TrashHandler{
		engine: engine,
		logger: logger,
	}
}

// List returns the trash ledger in the order views were trashed
// GET /api/trash
func (h *TrashHandler) List(w http.ResponseWriter, r *http.Request) {
	entries, err := h.engine.ListTrash(r.Context())
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, entries)
}

// Restore brings a trashed view back, subtree intact
// POST /api/trash/{id}/restore
func (h *TrashHandler) Restore(w http.ResponseWriter, r *http.Request) {
	viewID := r.PathValue("id")
	if viewID == "" {
		httputil.RespondError(w, http.StatusBadRequest, "View ID is required")
		return
	}

	if err := h.engine.RestoreTrash(r.Context(), viewID); err != nil {
		handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Purge permanently deletes one trashed view and its subtree
// DELETE /api/trash/{id}
func (h *TrashHandler) Purge(w http.ResponseWriter, r *http.Request) {
	viewID := r.PathValue("id")
	if viewID == "" {
		httputil.RespondError(w, http.StatusBadRequest, "View ID is required")
		return
	}

	if err := h.engine.PurgeTrashView(r.Context(), viewID); err != nil {
		handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// PurgeBatch permanently deletes a batch of trashed views
// POST /api/trash/purge
func (h *TrashHandler) PurgeBatch(w http.ResponseWriter, r *http.Request) {
	var req viewIDsRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.engine.PurgeTrash(r.Context(), req.ViewIDs); err != nil {
		handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// RestoreAll restores every trashed view
// POST /api/trash/restore-all
func (h *TrashHandler) RestoreAll(w http.ResponseWriter, r *http.Request) {
	if err := h.engine.RestoreAllTrash(r.Context()); err != nil {
		handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// PurgeAll permanently deletes everything in the trash
// DELETE /api/trash
func (h *TrashHandler) PurgeAll(w http.ResponseWriter, r *http.Request) {
	if err := h.engine.PurgeAllTrash(r.Context()); err != nil {
		handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
