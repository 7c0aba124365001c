package folder

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"arbor/internal/domain"
	"arbor/internal/domain/models"

	"github.com/google/uuid"
)

// CaptureSnapshot captures the open workspace and appends it to the bounded
// snapshot history, evicting the oldest entries beyond the retention limit.
func (s *engine) CaptureSnapshot(ctx context.Context) (*models.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.guard(); err != nil {
		return nil, err
	}

	w, err := s.open()
	if err != nil {
		return nil, err
	}

	return s.captureLocked(ctx, w)
}

// ListSnapshots returns up to limit snapshots of a workspace, newest first.
// The workspace does not have to be open.
func (s *engine) ListSnapshots(ctx context.Context, workspaceID string, limit int) ([]models.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.guard(); err != nil {
		return nil, err
	}

	if limit <= 0 {
		return []models.Snapshot{}, nil
	}
	return s.snapshots.List(ctx, workspaceID, limit)
}

// RestoreSnapshot replaces a workspace's state with a decoded snapshot. When
// the workspace is open the in-memory tree is swapped out and the open-view
// session cleared; otherwise the stored state is overwritten directly.
func (s *engine) RestoreSnapshot(ctx context.Context, workspaceID, snapshotID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.guard(); err != nil {
		return err
	}

	snap, err := s.snapshots.Get(ctx, workspaceID, snapshotID)
	if err != nil {
		return err
	}

	var state models.State
	if err := json.Unmarshal(snap.Data, &state); err != nil {
		return fmt.Errorf("%w: snapshot %s is corrupt: %v", domain.ErrInternal, snapshotID, err)
	}
	if state.Workspace == nil || state.Workspace.ID != workspaceID {
		return fmt.Errorf("%w: snapshot %s does not belong to workspace %s", domain.ErrInternal, snapshotID, workspaceID)
	}

	w, err := buildContext(&state)
	if err != nil {
		return fmt.Errorf("%w: snapshot %s is corrupt: %v", domain.ErrInternal, snapshotID, err)
	}

	if s.current != nil && s.current.workspace.ID == workspaceID {
		s.current = w
		s.currentViewID = ""
		if err := s.states.Save(ctx, w.snapshotState()); err != nil {
			s.logger.Error("failed to persist restored workspace state",
				"workspace_id", workspaceID,
				"error", err,
			)
		}
	} else {
		if err := s.states.Save(ctx, w.snapshotState()); err != nil {
			return fmt.Errorf("%w: failed to persist restored state: %v", domain.ErrInternal, err)
		}
	}

	s.logger.Info("snapshot restored",
		"workspace_id", workspaceID,
		"snapshot_id", snapshotID,
	)
	return nil
}

// captureLocked encodes the workspace state and appends it to the history.
// The caller holds the write lock. The mutation counter driving automatic
// captures resets on success.
func (s *engine) captureLocked(ctx context.Context, w *workspaceContext) (*models.Snapshot, error) {
	data, err := json.Marshal(w.snapshotState())
	if err != nil {
		return nil, fmt.Errorf("%w: failed to encode workspace state: %v", domain.ErrInternal, err)
	}

	snap := &models.Snapshot{
		ID:          uuid.NewString(),
		WorkspaceID: w.workspace.ID,
		Data:        data,
		CreatedAt:   time.Now(),
	}
	if err := s.snapshots.Append(ctx, snap, s.snapshotKeep); err != nil {
		return nil, err
	}

	w.mutations = 0
	s.logger.Info("snapshot captured",
		"workspace_id", w.workspace.ID,
		"snapshot_id", snap.ID,
	)
	return snap, nil
}
