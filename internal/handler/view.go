package handler

import (
	"log/slog"
	"net/http"

	"arbor/internal/domain/services"
	"arbor/internal/httputil"
)

// ViewHandler handles view HTTP requests
type ViewHandler struct {
	engine services.FolderEngine
	logger *slog.Logger
}

// NewViewHandler creates a new view handler
func NewViewHandler(engine services.FolderEngine, logger *slog.Logger) *ViewHandler {
	return &ViewHandler{
		engine: engine,
		logger: logger,
	}
}

// updateViewRequest is the wire shape of a view PATCH. Icon carries
// tri-state semantics: absent keeps it, null clears it.
type updateViewRequest struct {
	Name       *string                 `json:"name"`
	Icon       httputil.OptionalString `json:"icon"`
	IsFavorite *bool                   `json:"is_favorite"`
}

// updateIconRequest is the wire shape of an icon PUT
type updateIconRequest struct {
	Icon httputil.OptionalString `json:"icon"`
}

// Create creates a view under a parent or at the workspace root
// POST /api/views
func (h *ViewHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req services.CreateViewRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	view, err := h.engine.CreateView(r.Context(), &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, view)
}

// CreateOrphan creates a view that is not attached anywhere
// POST /api/views/orphan
func (h *ViewHandler) CreateOrphan(w http.ResponseWriter, r *http.Request) {
	var req services.CreateOrphanViewRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	view, err := h.engine.CreateOrphanView(r.Context(), &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, view)
}

// Get returns a view with its live children
// GET /api/views/{id}
func (h *ViewHandler) Get(w http.ResponseWriter, r *http.Request) {
	viewID := r.PathValue("id")
	if viewID == "" {
		httputil.RespondError(w, http.StatusBadRequest, "View ID is required")
		return
	}

	detail, err := h.engine.GetView(r.Context(), viewID)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, detail)
}

// Update renames a view and/or updates its icon and favorite flag
// PATCH /api/views/{id}
func (h *ViewHandler) Update(w http.ResponseWriter, r *http.Request) {
	viewID := r.PathValue("id")
	if viewID == "" {
		httputil.RespondError(w, http.StatusBadRequest, "View ID is required")
		return
	}

	var req updateViewRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	view, err := h.engine.UpdateView(r.Context(), viewID, &services.UpdateViewRequest{
		Name: req.Name,
		Icon: services.OptionalIcon{
			Present: req.Icon.Present,
			Value:   req.Icon.Value,
		},
		IsFavorite: req.IsFavorite,
	})
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, view)
}

// UpdateIcon sets or clears a view's icon
// PUT /api/views/{id}/icon
func (h *ViewHandler) UpdateIcon(w http.ResponseWriter, r *http.Request) {
	viewID := r.PathValue("id")
	if viewID == "" {
		httputil.RespondError(w, http.StatusBadRequest, "View ID is required")
		return
	}

	var req updateIconRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if !req.Icon.Present {
		httputil.RespondError(w, http.StatusBadRequest, "Icon is required (null clears it)")
		return
	}

	view, err := h.engine.UpdateViewIcon(r.Context(), viewID, req.Icon.Value)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, view)
}

// Duplicate deep-copies a view and its subtree
// POST /api/views/{id}/duplicate
func (h *ViewHandler) Duplicate(w http.ResponseWriter, r *http.Request) {
	viewID := r.PathValue("id")
	if viewID == "" {
		httputil.RespondError(w, http.StatusBadRequest, "View ID is required")
		return
	}

	view, err := h.engine.DuplicateView(r.Context(), viewID)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, view)
}

// Move reparents a view
// POST /api/views/move
func (h *ViewHandler) Move(w http.ResponseWriter, r *http.Request) {
	var req services.MoveViewRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.engine.MoveView(r.Context(), &req); err != nil {
		handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Reorder moves a view among its siblings
// POST /api/views/reorder
func (h *ViewHandler) Reorder(w http.ResponseWriter, r *http.Request) {
	var req services.ReorderViewRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.engine.ReorderView(r.Context(), &req); err != nil {
		handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Trash soft-deletes a view
// DELETE /api/views/{id}
func (h *ViewHandler) Trash(w http.ResponseWriter, r *http.Request) {
	viewID := r.PathValue("id")
	if viewID == "" {
		httputil.RespondError(w, http.StatusBadRequest, "View ID is required")
		return
	}

	if err := h.engine.TrashView(r.Context(), viewID); err != nil {
		handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// TrashBatch soft-deletes a batch of views, skipping the ones it cannot
// POST /api/views/trash
func (h *ViewHandler) TrashBatch(w http.ResponseWriter, r *http.Request) {
	var req viewIDsRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.engine.TrashViews(r.Context(), req.ViewIDs); err != nil {
		handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
