package handler

import (
	"log/slog"
	"net/http"
	"time"

	"arbor/internal/domain/services"
	"arbor/internal/httputil"
)

// WorkspaceHandler handles workspace HTTP requests
type WorkspaceHandler struct {
	engine services.FolderEngine
	logger *slog.Logger
}

// NewWorkspaceHandler creates a new workspace handler
func NewWorkspaceHandler(engine services.FolderEngine, logger *slog.Logger) *WorkspaceHandler {
	return &WorkspaceHandler{
		engine: engine,
		logger: logger,
	}
}

// HealthCheck reports process liveness
// GET /health
func (h *WorkspaceHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	httputil.RespondJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"time":   time.Now(),
	})
}

// Create creates a workspace and opens it
// POST /api/workspaces
func (h *WorkspaceHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req services.CreateWorkspaceRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	workspace, err := h.engine.CreateWorkspace(r.Context(), &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, workspace)
}

// List returns every persisted workspace
// GET /api/workspaces
func (h *WorkspaceHandler) List(w http.ResponseWriter, r *http.Request) {
	workspaces, err := h.engine.ListWorkspaces(r.Context())
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, workspaces)
}

// Open loads a workspace and makes it the open one
// POST /api/workspaces/{id}/open
func (h *WorkspaceHandler) Open(w http.ResponseWriter, r *http.Request) {
	workspaceID := r.PathValue("id")
	if workspaceID == "" {
		httputil.RespondError(w, http.StatusBadRequest, "Workspace ID is required")
		return
	}

	workspace, err := h.engine.OpenWorkspace(r.Context(), workspaceID)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, workspace)
}

// Current returns the open workspace
// GET /api/workspaces/current
func (h *WorkspaceHandler) Current(w http.ResponseWriter, r *http.Request) {
	workspace, err := h.engine.CurrentWorkspace(r.Context())
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, workspace)
}

// Setting returns the open workspace together with the session's open view
// GET /api/workspaces/current/setting
func (h *WorkspaceHandler) Setting(w http.ResponseWriter, r *http.Request) {
	setting, err := h.engine.WorkspaceSetting(r.Context())
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, setting)
}

// Views returns a workspace's root-level views in order
// GET /api/workspaces/{id}/views
func (h *WorkspaceHandler) Views(w http.ResponseWriter, r *http.Request) {
	workspaceID := r.PathValue("id")
	if workspaceID == "" {
		httputil.RespondError(w, http.StatusBadRequest, "Workspace ID is required")
		return
	}

	views, err := h.engine.WorkspaceViews(r.Context(), workspaceID)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, views)
}
