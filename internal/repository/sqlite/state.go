package sqlite

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"arbor/internal/domain"
	"arbor/internal/domain/models"
	"arbor/internal/domain/repositories"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type stateRepository struct {
	db *gorm.DB
}

// NewStateRepository creates a SQLite-backed state repository.
func NewStateRepository(db *gorm.DB) repositories.StateRepository {
	return &stateRepository{db: db}
}

func (r *stateRepository) Load(ctx context.Context, workspaceID string) (*models.State, error) {
	var rec StateRecord
	if err := r.db.WithContext(ctx).First(&rec, "workspace_id = ?", workspaceID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: workspace %s has no saved state", domain.ErrNotFound, workspaceID)
		}
		return nil, fmt.Errorf("%w: failed to load workspace state: %v", domain.ErrInternal, err)
	}

	var state models.State
	if err := json.Unmarshal([]byte(rec.State), &state); err != nil {
		return nil, fmt.Errorf("%w: workspace %s state is not valid JSON: %v", domain.ErrInternal, workspaceID, err)
	}
	return &state, nil
}

func (r *stateRepository) Save(ctx context.Context, state *models.State) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("%w: failed to encode workspace state: %v", domain.ErrInternal, err)
	}

	rec := &StateRecord{
		WorkspaceID: state.Workspace.ID,
		Name:        state.Workspace.Name,
		State:       string(data),
		CreatedAt:   state.Workspace.CreatedAt,
		UpdatedAt:   state.Workspace.UpdatedAt,
	}
	err = r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "workspace_id"}},
		UpdateAll: true,
	}).Create(rec).Error
	if err != nil {
		return fmt.Errorf("%w: failed to save workspace state: %v", domain.ErrInternal, err)
	}
	return nil
}

func (r *stateRepository) ListWorkspaces(ctx context.Context) ([]models.Workspace, error) {
	var recs []StateRecord
	err := r.db.WithContext(ctx).
		Select("workspace_id", "name", "created_at", "updated_at").
		Order("created_at ASC, workspace_id ASC").
		Find(&recs).Error
	if err != nil {
		return nil, fmt.Errorf("%w: failed to list workspaces: %v", domain.ErrInternal, err)
	}

	workspaces := make([]models.Workspace, 0, len(recs))
	for i := range recs {
		workspaces = append(workspaces, models.Workspace{
			ID:        recs[i].WorkspaceID,
			Name:      recs[i].Name,
			CreatedAt: recs[i].CreatedAt,
			UpdatedAt: recs[i].UpdatedAt,
		})
	}
	return workspaces, nil
}
