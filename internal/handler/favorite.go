package handler

import (
	"log/slog"
	"net/http"

	"arbor/internal/domain/services"
	"arbor/internal/httputil"
)

// FavoriteHandler handles favorites HTTP requests
type FavoriteHandler struct {
	engine services.FolderEngine
	logger *slog.Logger
}

// NewFavoriteHandler creates a new favorite handler
func NewFavoriteHandler(engine services.FolderEngine, logger *slog.Logger) *FavoriteHandler {
	return &FavoriteHandler{
		engine: engine,
		logger: logger,
	}
}

// List returns the live favorite views in the order they were favorited
// GET /api/favorites
func (h *FavoriteHandler) List(w http.ResponseWriter, r *http.Request) {
	views, err := h.engine.ListFavorites(r.Context())
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, views)
}

// Toggle flips one view's favorite flag
// PUT /api/views/{id}/favorite
func (h *FavoriteHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	viewID := r.PathValue("id")
	if viewID == "" {
		httputil.RespondError(w, http.StatusBadRequest, "View ID is required")
		return
	}

	view, err := h.engine.ToggleFavorite(r.Context(), viewID)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, view)
}

// ToggleBatch flips a batch of favorite flags, skipping views it cannot
// POST /api/favorites/toggle
func (h *FavoriteHandler) ToggleBatch(w http.ResponseWriter, r *http.Request) {
	var req viewIDsRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.engine.ToggleFavorites(r.Context(), req.ViewIDs); err != nil {
		handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
