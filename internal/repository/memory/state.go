// Package memory provides in-process repository implementations. They back
// the default storage driver and keep tests free of external dependencies.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"arbor/internal/domain"
	"arbor/internal/domain/models"
	"arbor/internal/domain/repositories"
)

type stateRepository struct {
	mu     sync.RWMutex
	states map[string]*models.State
}

// NewStateRepository creates an in-memory state repository.
func NewStateRepository() repositories.StateRepository {
	return &stateRepository{
		states: make(map[string]*models.State),
	}
}

func (r *stateRepository) Load(ctx context.Context, workspaceID string) (*models.State, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	state, ok := r.states[workspaceID]
	if !ok {
		return nil, fmt.Errorf("%w: workspace %s has no saved state", domain.ErrNotFound, workspaceID)
	}
	return state.Clone(), nil
}

func (r *stateRepository) Save(ctx context.Context, state *models.State) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.states[state.Workspace.ID] = state.Clone()
	return nil
}

func (r *stateRepository) ListWorkspaces(ctx context.Context) ([]models.Workspace, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	workspaces := make([]models.Workspace, 0, len(r.states))
	for _, state := range r.states {
		workspaces = append(workspaces, *state.Workspace)
	}
	sort.Slice(workspaces, func(i, j int) bool {
		if workspaces[i].CreatedAt.Equal(workspaces[j].CreatedAt) {
			return workspaces[i].ID < workspaces[j].ID
		}
		return workspaces[i].CreatedAt.Before(workspaces[j].CreatedAt)
	})
	return workspaces, nil
}
