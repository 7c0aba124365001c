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

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

// resolveParent maps a parent reference onto an attach target: the open
// workspace's id means the root level (""), anything else must be a live
// view.
func (s *engine) resolveParent(w *workspaceContext, parentID string) (string, error) {
	if parentID == w.workspace.ID {
		return "", nil
	}
	v, err := w.liveView(parentID)
	if err != nil {
		return "", fmt.Errorf("%w: parent view %s not found", domain.ErrNotFound, parentID)
	}
	return v.ID, nil
}

// CreateView creates a view under a parent view or at the workspace root.
func (s *engine) CreateView(ctx context.Context, req *services.CreateViewRequest) (*models.View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.guard(); err != nil {
		return nil, err
	}

	w, err := s.open()
	if err != nil {
		return nil, err
	}
	req.Name = strings.TrimSpace(req.Name)
	if err := s.validateCreateView(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidOperation, err)
	}

	parent, err := s.resolveParent(w, req.ParentID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	v := &models.View{
		ID:          uuid.NewString(),
		WorkspaceID: w.workspace.ID,
		Name:        req.Name,
		Icon:        req.Icon,
		Children:    []string{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	w.views[v.ID] = v
	w.attach(v, parent, req.Position)

	if req.SetAsCurrent {
		s.currentViewID = v.ID
	}

	s.completeMutation(ctx, w)
	s.logger.Info("view created",
		"id", v.ID,
		"name", v.Name,
		"parent_id", req.ParentID,
	)

	return v.Clone(), nil
}

// CreateOrphanView creates a view that is not attached anywhere yet.
func (s *engine) CreateOrphanView(ctx context.Context, req *services.CreateOrphanViewRequest) (*models.View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.guard(); err != nil {
		return nil, err
	}

	w, err := s.open()
	if err != nil {
		return nil, err
	}
	req.Name = strings.TrimSpace(req.Name)
	if err := s.validateCreateOrphanView(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidOperation, err)
	}

	now := time.Now()
	v := &models.View{
		ID:          uuid.NewString(),
		WorkspaceID: w.workspace.ID,
		Name:        req.Name,
		Icon:        req.Icon,
		Children:    []string{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	w.views[v.ID] = v

	s.completeMutation(ctx, w)
	s.logger.Info("orphan view created", "id", v.ID, "name", v.Name)

	return v.Clone(), nil
}

// GetView retrieves a live view together with its live children. Orphans
// are readable by id like any other live view.
func (s *engine) GetView(ctx context.Context, viewID string) (*services.ViewDetail, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.guard(); err != nil {
		return nil, err
	}

	w, err := s.open()
	if err != nil {
		return nil, err
	}

	v, err := w.liveView(viewID)
	if err != nil {
		return nil, err
	}

	return &services.ViewDetail{
		View:     v.Clone(),
		Children: w.liveChildren(v),
	}, nil
}

// UpdateView renames a view and/or updates its icon and favorite flag.
func (s *engine) UpdateView(ctx context.Context, viewID string, req *services.UpdateViewRequest) (*models.View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.guard(); err != nil {
		return nil, err
	}

	w, err := s.open()
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		trimmed := strings.TrimSpace(*req.Name)
		req.Name = &trimmed
	}
	if err := s.validateUpdateView(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidOperation, err)
	}

	v, err := w.liveView(viewID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		v.Name = *req.Name
	}

	// Tri-state: only touch the icon if the field was present in the request
	if req.Icon.Present {
		if req.Icon.Value != nil {
			v.Icon = *req.Icon.Value
		} else {
			v.Icon = ""
		}
	}

	if req.IsFavorite != nil {
		w.setFavorite(v, *req.IsFavorite)
	}

	v.UpdatedAt = time.Now()

	s.completeMutation(ctx, w)
	s.logger.Info("view updated",
		"id", v.ID,
		"name", v.Name,
	)

	return v.Clone(), nil
}

// UpdateViewIcon sets or clears (nil) a view's icon.
func (s *engine) UpdateViewIcon(ctx context.Context, viewID string, icon *string) (*models.View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.guard(); err != nil {
		return nil, err
	}

	w, err := s.open()
	if err != nil {
		return nil, err
	}

	if icon != nil && len(*icon) > config.MaxIconLength {
		return nil, fmt.Errorf("%w: icon exceeds %d characters", domain.ErrInvalidOperation, config.MaxIconLength)
	}

	v, err := w.liveView(viewID)
	if err != nil {
		return nil, err
	}

	if icon == nil {
		v.Icon = ""
	} else {
		v.Icon = *icon
	}
	v.UpdatedAt = time.Now()

	s.completeMutation(ctx, w)
	s.logger.Info("view icon updated", "id", v.ID)

	return v.Clone(), nil
}

// DuplicateView deep-copies a view and its live descendants under fresh ids
// and inserts the copy immediately after the original. Duplicating an orphan
// yields another orphan. Favorite flags are not copied.
func (s *engine) DuplicateView(ctx context.Context, viewID string) (*models.View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.guard(); err != nil {
		return nil, err
	}

	w, err := s.open()
	if err != nil {
		return nil, err
	}

	v, err := w.liveView(viewID)
	if err != nil {
		return nil, err
	}

	copyRoot := w.duplicateSubtree(v, true)
	if w.siblings(v) != nil {
		parent := ""
		if v.ParentID != nil {
			parent = *v.ParentID
		}
		w.attachAfter(copyRoot, parent, v.ID)
	}

	s.completeMutation(ctx, w)
	s.logger.Info("view duplicated",
		"source_id", v.ID,
		"copy_id", copyRoot.ID,
	)

	return copyRoot.Clone(), nil
}

// duplicateSubtree deep-copies v and its live descendants under fresh ids.
// Trashed descendants are skipped. The copy is registered in the arena but
// not attached; rename appends the copy marker to the subtree root only.
func (w *workspaceContext) duplicateSubtree(v *models.View, rename bool) *models.View {
	now := time.Now()
	c := &models.View{
		ID:          uuid.NewString(),
		WorkspaceID: v.WorkspaceID,
		Name:        v.Name,
		Icon:        v.Icon,
		Children:    []string{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if rename {
		c.Name = v.Name + " (copy)"
	}
	w.views[c.ID] = c

	for _, childID := range v.Children {
		child, ok := w.views[childID]
		if !ok || child.IsTrashed {
			continue
		}
		cc := w.duplicateSubtree(child, false)
		pid := c.ID
		cc.ParentID = &pid
		c.Children = append(c.Children, cc.ID)
	}
	return c
}

// MoveView reparents a view, rejecting moves that would make it its own
// ancestor. The anchor sibling wins over the positional index when both are
// given.
func (s *engine) MoveView(ctx context.Context, req *services.MoveViewRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.guard(); err != nil {
		return err
	}

	w, err := s.open()
	if err != nil {
		return err
	}
	if err := s.validateMoveView(req); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidOperation, err)
	}

	v, err := w.liveView(req.ViewID)
	if err != nil {
		return err
	}

	parent, err := s.resolveParent(w, req.NewParentID)
	if err != nil {
		return err
	}

	if parent == v.ID {
		return fmt.Errorf("%w: cannot move a view under itself", domain.ErrInvalidOperation)
	}
	if parent != "" && w.hasAncestor(parent, v.ID) {
		return fmt.Errorf("%w: cannot move a view under its own descendant", domain.ErrInvalidOperation)
	}

	if req.AfterID != "" {
		if req.AfterID == v.ID {
			return fmt.Errorf("%w: a view cannot anchor its own move", domain.ErrInvalidOperation)
		}
		anchor, ok := w.views[req.AfterID]
		if !ok || anchor.IsTrashed || !isChildOf(w, anchor, parent) {
			return fmt.Errorf("%w: anchor view %s is not a child of the target parent", domain.ErrInvalidOperation, req.AfterID)
		}
	}

	w.detach(v)
	if req.AfterID != "" {
		if !w.attachAfter(v, parent, req.AfterID) {
			w.attach(v, parent, nil)
		}
	} else {
		w.attach(v, parent, req.Position)
	}
	v.UpdatedAt = time.Now()

	s.completeMutation(ctx, w)
	s.logger.Info("view moved",
		"id", v.ID,
		"new_parent_id", req.NewParentID,
	)

	return nil
}

// isChildOf reports whether the view sits directly under parentID ("" =
// workspace root).
func isChildOf(w *workspaceContext, v *models.View, parentID string) bool {
	if parentID == "" {
		return v.ParentID == nil && indexOf(w.root, v.ID) >= 0
	}
	return v.ParentID != nil && *v.ParentID == parentID
}

// ReorderView moves a view among its current siblings. From must be the
// view's current index so stale reorders from outdated clients are rejected
// instead of silently scrambling the order.
func (s *engine) ReorderView(ctx context.Context, req *services.ReorderViewRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.guard(); err != nil {
		return err
	}

	w, err := s.open()
	if err != nil {
		return err
	}
	if err := s.validateReorderView(req); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidOperation, err)
	}

	v, err := w.liveView(req.ViewID)
	if err != nil {
		return err
	}

	list := w.siblings(v)
	if list == nil {
		return fmt.Errorf("%w: view %s is not attached", domain.ErrInvalidOperation, req.ViewID)
	}

	idx := indexOf(*list, v.ID)
	if idx != req.From {
		return fmt.Errorf("%w: view %s is at index %d, not %d", domain.ErrInvalidOperation, req.ViewID, idx, req.From)
	}

	to := req.To
	if to > len(*list)-1 {
		to = len(*list) - 1
	}

	*list = removeID(*list, v.ID)
	*list = insertAt(*list, v.ID, to)
	v.UpdatedAt = time.Now()

	s.completeMutation(ctx, w)
	s.logger.Info("view reordered",
		"id", v.ID,
		"from", req.From,
		"to", to,
	)

	return nil
}

// TrashView soft-deletes one view. Its subtree stays hooked to it and goes
// unreachable with it; a restore brings the subtree back intact.
func (s *engine) TrashView(ctx context.Context, viewID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.guard(); err != nil {
		return err
	}

	w, err := s.open()
	if err != nil {
		return err
	}

	if err := s.trashLocked(w, viewID); err != nil {
		return err
	}

	s.completeMutation(ctx, w)
	s.logger.Info("view trashed", "id", viewID)

	return nil
}

// TrashViews soft-deletes a batch of views. The batch is best-effort by
// policy: views that cannot be trashed are skipped and logged while the rest
// proceed, and the call reports only aggregate success.
func (s *engine) TrashViews(ctx context.Context, viewIDs []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.guard(); err != nil {
		return err
	}

	w, err := s.open()
	if err != nil {
		return err
	}

	trashed := 0
	for _, id := range viewIDs {
		if err := s.trashLocked(w, id); err != nil {
			s.logger.Debug("skipping view in trash batch", "view_id", id, "error", err)
			continue
		}
		trashed++
	}

	if trashed > 0 {
		s.completeMutation(ctx, w)
	}
	s.logger.Info("views trashed",
		"requested", len(viewIDs),
		"trashed", trashed,
	)

	return nil
}

// validateCreateView validates a view creation request
func (s *engine) validateCreateView(req *services.CreateViewRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.ParentID, validation.Required),
		validation.Field(&req.Name,
			validation.Required,
			validation.Length(1, config.MaxViewNameLength),
		),
		validation.Field(&req.Icon, validation.Length(0, config.MaxIconLength)),
		validation.Field(&req.Position, validation.Min(0)),
	)
}

// validateCreateOrphanView validates an orphan view creation request
func (s *engine) validateCreateOrphanView(req *services.CreateOrphanViewRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.Name,
			validation.Required,
			validation.Length(1, config.MaxViewNameLength),
		),
		validation.Field(&req.Icon, validation.Length(0, config.MaxIconLength)),
	)
}

// validateUpdateView validates a view update request
func (s *engine) validateUpdateView(req *services.UpdateViewRequest) error {
	// At least one field must be provided
	if req.Name == nil && !req.Icon.Present && req.IsFavorite == nil {
		return fmt.Errorf("at least one field must be provided")
	}

	var rules []*validation.FieldRules
	if req.Name != nil {
		rules = append(rules,
			validation.Field(&req.Name,
				validation.Required,
				validation.Length(1, config.MaxViewNameLength),
			),
		)
	}
	if req.Icon.Present && req.Icon.Value != nil && len(*req.Icon.Value) > config.MaxIconLength {
		return fmt.Errorf("icon exceeds %d characters", config.MaxIconLength)
	}

	return validation.ValidateStruct(req, rules...)
}

// validateMoveView validates a reparent request
func (s *engine) validateMoveView(req *services.MoveViewRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.ViewID, validation.Required),
		validation.Field(&req.NewParentID, validation.Required),
		validation.Field(&req.Position, validation.Min(0)),
	)
}

// validateReorderView validates a reorder request
func (s *engine) validateReorderView(req *services.ReorderViewRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.ViewID, validation.Required),
		validation.Field(&req.From, validation.Min(0)),
		validation.Field(&req.To, validation.Min(0)),
	)
}
