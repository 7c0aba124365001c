package handler

import (
	"log/slog"
	"net/http"

	"arbor/internal/domain/services"
	"arbor/internal/httputil"
)

// SessionHandler handles open-view session HTTP requests
type SessionHandler struct {
	engine services.FolderEngine
	logger *slog.Logger
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(engine services.FolderEngine, logger *slog.Logger) *SessionHandler {
	return &SessionHandler{
		engine: engine,
		logger: logger,
	}
}

// setCurrentViewRequest is the wire shape of a current-view PUT
type setCurrentViewRequest struct {
	ViewID string `json:"view_id"`
}

// SetCurrent marks a view as the one the session has open
// PUT /api/session/current-view
func (h *SessionHandler) SetCurrent(w http.ResponseWriter, r *http.Request) {
	var req setCurrentViewRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.ViewID == "" {
		httputil.RespondError(w, http.StatusBadRequest, "View ID is required")
		return
	}

	if err := h.engine.SetCurrentView(r.Context(), req.ViewID); err != nil {
		handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// GetCurrent returns the view the session has open
// GET /api/session/current-view
func (h *SessionHandler) GetCurrent(w http.ResponseWriter, r *http.Request) {
	view, err := h.engine.CurrentView(r.Context())
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, view)
}

// Close tells the engine the session closed a view
// POST /api/views/{id}/close
func (h *SessionHandler) Close(w http.ResponseWriter, r *http.Request) {
	viewID := r.PathValue("id")
	if viewID == "" {
		httputil.RespondError(w, http.StatusBadRequest, "View ID is required")
		return
	}

	if err := h.engine.CloseView(r.Context(), viewID); err != nil {
		handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
