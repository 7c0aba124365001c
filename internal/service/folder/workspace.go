package folder

import (
	"context"
	"fmt"
	"strings"
	"time"

	"arbor/internal/config"
	"arbor/internal/domain"
	"arbor/internal/domain/models"
	"arbor/internal/domain/services"
	"arbor/internal/template"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

// CreateWorkspace creates a workspace, seeds it from the named template if
// one was requested, and makes it the open workspace.
func (s *engine) CreateWorkspace(ctx context.Context, req *services.CreateWorkspaceRequest) (*models.Workspace, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.guard(); err != nil {
		return nil, err
	}

	req.Name = strings.TrimSpace(req.Name)
	if err := s.validateCreateWorkspace(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidOperation, err)
	}

	var tpl *template.Template
	if req.Template != "" {
		if s.templates == nil {
			return nil, fmt.Errorf("%w: no workspace templates are configured", domain.ErrInvalidOperation)
		}
		found, err := s.templates.Get(req.Template)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrNotFound, err)
		}
		tpl = found
	}

	now := time.Now()
	ws := &models.Workspace{
		ID:        uuid.NewString(),
		Name:      req.Name,
		CreatedAt: now,
		UpdatedAt: now,
	}

	w := newWorkspaceContext(ws)
	if tpl != nil {
		for i := range tpl.Views {
			s.seedViewSpec(w, "", &tpl.Views[i])
		}
	}

	s.releaseCurrent(ctx)
	s.current = w

	if err := s.states.Save(ctx, w.snapshotState()); err != nil {
		s.logger.Error("failed to persist new workspace",
			"workspace_id", ws.ID,
			"error", err,
		)
	}

	s.logger.Info("workspace created",
		"id", ws.ID,
		"name", ws.Name,
		"template", req.Template,
		"views", len(w.views),
	)

	out := *ws
	return &out, nil
}

// seedViewSpec materializes one template view and its children under parentID.
func (s *engine) seedViewSpec(w *workspaceContext, parentID string, spec *template.ViewSpec) {
	now := time.Now()
	v := &models.View{
		ID:          uuid.NewString(),
		WorkspaceID: w.workspace.ID,
		Name:        spec.Name,
		Icon:        spec.Icon,
		Children:    []string{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	w.views[v.ID] = v
	w.attach(v, parentID, nil)

	for i := range spec.Children {
		s.seedViewSpec(w, v.ID, &spec.Children[i])
	}
}

// releaseCurrent persists and drops the open workspace context, clearing the
// open-view session with it. Callers must hold the write lock.
func (s *engine) releaseCurrent(ctx context.Context) {
	if s.current != nil {
		if err := s.states.Save(ctx, s.current.snapshotState()); err != nil {
			s.logger.Error("failed to persist workspace state on release",
				"workspace_id", s.current.workspace.ID,
				"error", err,
			)
		}
		s.current = nil
	}
	s.currentViewID = ""
}

// ListWorkspaces returns the metadata of every persisted workspace.
func (s *engine) ListWorkspaces(ctx context.Context) ([]models.Workspace, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.guard(); err != nil {
		return nil, err
	}

	return s.states.ListWorkspaces(ctx)
}

// OpenWorkspace loads a workspace from storage and makes it the open one.
// The previous workspace is persisted and released wholesale; nothing of its
// session carries over.
func (s *engine) OpenWorkspace(ctx context.Context, workspaceID string) (*models.Workspace, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.guard(); err != nil {
		return nil, err
	}

	if workspaceID == "" {
		return nil, fmt.Errorf("%w: workspace id is required", domain.ErrInvalidOperation)
	}

	if s.current != nil && s.current.workspace.ID == workspaceID {
		out := *s.current.workspace
		return &out, nil
	}

	state, err := s.states.Load(ctx, workspaceID)
	if err != nil {
		return nil, err
	}
	w, err := buildContext(state)
	if err != nil {
		return nil, fmt.Errorf("%w: workspace %s state is corrupt: %v", domain.ErrInternal, workspaceID, err)
	}

	s.releaseCurrent(ctx)
	s.current = w

	s.logger.Info("workspace opened",
		"id", workspaceID,
		"views", len(w.views),
		"trash", len(w.trash),
	)

	out := *w.workspace
	return &out, nil
}

// CurrentWorkspace returns the open workspace.
func (s *engine) CurrentWorkspace(ctx context.Context) (*models.Workspace, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.guard(); err != nil {
		return nil, err
	}

	w, err := s.open()
	if err != nil {
		return nil, err
	}

	out := *w.workspace
	return &out, nil
}

// WorkspaceSetting returns the open workspace and the session's view.
func (s *engine) WorkspaceSetting(ctx context.Context) (*services.WorkspaceSetting, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.guard(); err != nil {
		return nil, err
	}

	w, err := s.open()
	if err != nil {
		return nil, err
	}

	setting := &services.WorkspaceSetting{}
	ws := *w.workspace
	setting.Workspace = &ws

	if s.currentViewID != "" {
		if v, err := w.liveView(s.currentViewID); err == nil {
			setting.LatestView = v.Clone()
		}
	}

	return setting, nil
}

// WorkspaceViews returns the ordered root-level live views of a workspace.
// For the open workspace this reads the working set; for any other workspace
// the persisted state is loaded and validated first.
func (s *engine) WorkspaceViews(ctx context.Context, workspaceID string) ([]models.View, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.guard(); err != nil {
		return nil, err
	}

	if workspaceID == "" {
		return nil, fmt.Errorf("%w: workspace id is required", domain.ErrInvalidOperation)
	}

	if s.current != nil && s.current.workspace.ID == workspaceID {
		return s.current.rootViews(), nil
	}

	state, err := s.states.Load(ctx, workspaceID)
	if err != nil {
		return nil, err
	}
	w, err := buildContext(state)
	if err != nil {
		return nil, fmt.Errorf("%w: workspace %s state is corrupt: %v", domain.ErrInternal, workspaceID, err)
	}

	return w.rootViews(), nil
}

// validateCreateWorkspace validates a workspace creation request
func (s *engine) validateCreateWorkspace(req *services.CreateWorkspaceRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.Name,
			validation.Required,
			validation.Length(1, config.MaxWorkspaceNameLength),
		),
	)
}
