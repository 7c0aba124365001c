package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"arbor/internal/domain"
	"arbor/internal/domain/models"
	"arbor/internal/domain/repositories"
)

type snapshotRepository struct {
	mu        sync.RWMutex
	snapshots map[string][]models.Snapshot // workspace id -> history, oldest first
}

// NewSnapshotRepository creates an in-memory snapshot repository.
func NewSnapshotRepository() repositories.SnapshotRepository {
	return &snapshotRepository{
		snapshots: make(map[string][]models.Snapshot),
	}
}

func (r *snapshotRepository) Append(ctx context.Context, snapshot *models.Snapshot, keep int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	history := append(r.snapshots[snapshot.WorkspaceID], cloneSnapshot(*snapshot))
	if keep > 0 && len(history) > keep {
		history = history[len(history)-keep:]
	}
	r.snapshots[snapshot.WorkspaceID] = history
	return nil
}

func (r *snapshotRepository) List(ctx context.Context, workspaceID string, limit int) ([]models.Snapshot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	history := r.snapshots[workspaceID]
	if limit <= 0 || len(history) == 0 {
		return []models.Snapshot{}, nil
	}
	if limit > len(history) {
		limit = len(history)
	}

	out := make([]models.Snapshot, 0, limit)
	for i := len(history) - 1; i >= len(history)-limit; i-- {
		out = append(out, cloneSnapshot(history[i]))
	}
	return out, nil
}

func (r *snapshotRepository) Get(ctx context.Context, workspaceID, snapshotID string) (*models.Snapshot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, snap := range r.snapshots[workspaceID] {
		if snap.ID == snapshotID {
			c := cloneSnapshot(snap)
			return &c, nil
		}
	}
	return nil, fmt.Errorf("%w: snapshot %s not found in workspace %s", domain.ErrNotFound, snapshotID, workspaceID)
}

func cloneSnapshot(s models.Snapshot) models.Snapshot {
	c := s
	c.Data = append(json.RawMessage{}, s.Data...)
	return c
}
