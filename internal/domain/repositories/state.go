package repositories

import (
	"context"

	"arbor/internal/domain/models"
)

// StateRepository persists the complete folder state of workspaces.
// The engine treats its in-memory state as canonical and writes through
// after each successful mutation; Load is used when a workspace is opened.
type StateRepository interface {
	// Load retrieves the persisted state for a workspace.
	// Returns domain.ErrNotFound if the workspace has never been saved.
	Load(ctx context.Context, workspaceID string) (*models.State, error)

	// Save upserts the state of a workspace.
	Save(ctx context.Context, state *models.State) error

	// ListWorkspaces returns the workspace metadata of every persisted state.
	ListWorkspaces(ctx context.Context) ([]models.Workspace, error)
}
