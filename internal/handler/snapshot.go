package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"arbor/internal/config"
	"arbor/internal/domain/services"
	"arbor/internal/httputil"
)

// SnapshotHandler handles snapshot HTTP requests
type SnapshotHandler struct {
	engine services.FolderEngine
	logger *slog.Logger
}

// NewSnapshotHandler creates a new snapshot handler
func NewSnapshotHandler(engine services.FolderEngine, logger *slog.Logger) *SnapshotHandler {
	return &SnapshotHandler{
		engine: engine,
		logger: logger,
	}
}

// Capture captures a snapshot of the open workspace
// POST /api/snapshots
func (h *SnapshotHandler) Capture(w http.ResponseWriter, r *http.Request) {
	snapshot, err := h.engine.CaptureSnapshot(r.Context())
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, snapshot)
}

// List returns a workspace's snapshots, newest first
// GET /api/workspaces/{id}/snapshots?limit=10
func (h *SnapshotHandler) List(w http.ResponseWriter, r *http.Request) {
	workspaceID := r.PathValue("id")
	if workspaceID == "" {
		httputil.RespondError(w, http.StatusBadRequest, "Workspace ID is required")
		return
	}

	limit := config.DefaultSnapshotListLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			httputil.RespondError(w, http.StatusBadRequest, "Limit must be a positive integer")
			return
		}
		limit = n
	}

	snapshots, err := h.engine.ListSnapshots(r.Context(), workspaceID, limit)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, snapshots)
}

// Restore replaces a workspace's state with a snapshot
// POST /api/workspaces/{id}/snapshots/{snapshotID}/restore
func (h *SnapshotHandler) Restore(w http.ResponseWriter, r *http.Request) {
	workspaceID := r.PathValue("id")
	snapshotID := r.PathValue("snapshotID")
	if workspaceID == "" || snapshotID == "" {
		httputil.RespondError(w, http.StatusBadRequest, "Workspace ID and snapshot ID are required")
		return
	}

	if err := h.engine.RestoreSnapshot(r.Context(), workspaceID, snapshotID); err != nil {
		handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
