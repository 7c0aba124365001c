package handler

import (
	"log/slog"
	"net/http"

	"arbor/internal/httputil"
	"arbor/internal/template"
)

// TemplateHandler handles workspace template HTTP requests
type TemplateHandler struct {
	registry *template.Registry
	logger   *slog.Logger
}

// NewTemplateHandler creates a new template handler
func NewTemplateHandler(registry *template.Registry, logger *slog.Logger) *TemplateHandler {
	return &TemplateHandler{
		registry: registry,
		logger:   logger,
	}
}

// List returns the available workspace templates
// GET /api/templates
func (h *TemplateHandler) List(w http.ResponseWriter, r *http.Request) {
	httputil.RespondJSON(w, http.StatusOK, h.registry.List())
}
