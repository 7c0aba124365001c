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

	"github.com/google/uuid"
)

// ImportViews applies a batch of create/attach commands atomically. The
// commands run against a staged copy of the workspace; the copy replaces the
// live tree only when every command succeeds, so a failing command leaves no
// trace of the ones before it.
func (s *engine) ImportViews(ctx context.Context, req *services.ImportRequest) ([]models.View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.guard(); err != nil {
		return nil, err
	}

	w, err := s.open()
	if err != nil {
		return nil, err
	}

	if req == nil || len(req.Commands) == 0 {
		return nil, fmt.Errorf("%w: import requires at least one command", domain.ErrInvalidOperation)
	}
	if len(req.Commands) > config.MaxImportCommands {
		return nil, fmt.Errorf("%w: import exceeds %d commands", domain.ErrInvalidOperation, config.MaxImportCommands)
	}

	staged := w.cloneContext()
	refs := make(map[string]string)
	affected := make([]string, 0, len(req.Commands))

	for i := range req.Commands {
		id, err := applyImportCommand(staged, refs, &req.Commands[i])
		if err != nil {
			return nil, fmt.Errorf("%w: command %d: %v", domain.ErrInvalidOperation, i, err)
		}
		affected = append(affected, id)
	}

	s.current = staged
	s.completeMutation(ctx, staged)
	s.logger.Info("views imported",
		"workspace_id", staged.workspace.ID,
		"commands", len(req.Commands),
	)

	views := make([]models.View, 0, len(affected))
	for _, id := range affected {
		views = append(views, *staged.views[id].Clone())
	}
	return views, nil
}

// applyImportCommand runs one command against the staged workspace and
// returns the id of the view it created or attached.
func applyImportCommand(w *workspaceContext, refs map[string]string, cmd *services.ImportCommand) (string, error) {
	switch cmd.Op {
	case services.ImportOpCreate:
		name := strings.TrimSpace(cmd.Name)
		if name == "" {
			return "", fmt.Errorf("create requires a name")
		}
		if len(name) > config.MaxViewNameLength {
			return "", fmt.Errorf("name exceeds %d characters", config.MaxViewNameLength)
		}
		if len(cmd.Icon) > config.MaxIconLength {
			return "", fmt.Errorf("icon exceeds %d characters", config.MaxIconLength)
		}
		if cmd.Ref != "" {
			if _, exists := refs[cmd.Ref]; exists {
				return "", fmt.Errorf("duplicate ref %q", cmd.Ref)
			}
		}

		parent, err := resolveImportParent(w, refs, cmd.ParentRef)
		if err != nil {
			return "", err
		}

		now := time.Now()
		v := &models.View{
			ID:          uuid.NewString(),
			WorkspaceID: w.workspace.ID,
			Name:        name,
			Icon:        cmd.Icon,
			Children:    []string{},
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		w.views[v.ID] = v
		w.attach(v, parent, nil)
		if cmd.Ref != "" {
			refs[cmd.Ref] = v.ID
		}
		return v.ID, nil

	case services.ImportOpAttach:
		if cmd.ViewID == "" {
			return "", fmt.Errorf("attach requires a view id")
		}
		v, err := w.liveView(cmd.ViewID)
		if err != nil {
			return "", fmt.Errorf("view %s not found", cmd.ViewID)
		}
		if w.siblings(v) != nil {
			return "", fmt.Errorf("view %s is already attached", cmd.ViewID)
		}

		parent, err := resolveImportParent(w, refs, cmd.ParentRef)
		if err != nil {
			return "", err
		}
		if parent == v.ID || w.hasAncestor(parent, v.ID) {
			return "", fmt.Errorf("view %s cannot be attached under its own subtree", cmd.ViewID)
		}

		w.attach(v, parent, nil)
		v.UpdatedAt = time.Now()
		return v.ID, nil

	default:
		return "", fmt.Errorf("unknown op %q", cmd.Op)
	}
}

// resolveImportParent maps a command's parent reference onto an attach
// target. Refs minted earlier in the batch win over view ids, so a command
// can nest under a view created two lines up.
func resolveImportParent(w *workspaceContext, refs map[string]string, parentRef string) (string, error) {
	if parentRef == "" || parentRef == w.workspace.ID {
		return "", nil
	}
	if id, ok := refs[parentRef]; ok {
		return id, nil
	}
	v, err := w.liveView(parentRef)
	if err != nil {
		return "", fmt.Errorf("parent %s not found", parentRef)
	}
	return v.ID, nil
}
