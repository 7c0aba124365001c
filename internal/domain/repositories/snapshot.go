package repositories

import (
	"context"

	"arbor/internal/domain/models"
)

// SnapshotRepository persists point-in-time captures of workspace state.
// Each workspace keeps a bounded, newest-first history.
type SnapshotRepository interface {
	// Append stores a snapshot and evicts the oldest entries so that at most
	// keep snapshots remain for the workspace. Insert and eviction happen
	// atomically.
	Append(ctx context.Context, snapshot *models.Snapshot, keep int) error

	// List returns up to limit snapshots for a workspace, newest first.
	// An unknown workspace or a non-positive limit yields an empty slice.
	List(ctx context.Context, workspaceID string, limit int) ([]models.Snapshot, error)

	// Get retrieves one snapshot by id.
	// Returns domain.ErrNotFound if it does not exist for the workspace.
	Get(ctx context.Context, workspaceID, snapshotID string) (*models.Snapshot, error)
}
