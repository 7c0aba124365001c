package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"arbor/internal/domain"
	"arbor/internal/domain/models"
	"arbor/internal/domain/repositories"
)

// PostgresStateRepository implements the StateRepository interface
type PostgresStateRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
	logger *slog.Logger
}

// NewStateRepository creates a new PostgresStateRepository
func NewStateRepository(config *RepositoryConfig) repositories.StateRepository {
	return &PostgresStateRepository{
		pool:   config.Pool,
		tables: config.Tables,
		logger: config.Logger,
	}
}

// Load retrieves the persisted state for a workspace
func (r *PostgresStateRepository) Load(ctx context.Context, workspaceID string) (*models.State, error) {
	query := fmt.Sprintf(`
		SELECT state
		FROM %s
		WHERE workspace_id = $1
	`, r.tables.States)

	var data []byte
	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query, workspaceID).Scan(&data)
	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("%w: workspace %s has no saved state", domain.ErrNotFound, workspaceID)
		}
		return nil, fmt.Errorf("%w: failed to load workspace state: %v", domain.ErrInternal, err)
	}

	var state models.State
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("%w: workspace %s state is not valid JSON: %v", domain.ErrInternal, workspaceID, err)
	}
	return &state, nil
}

// Save upserts the state of a workspace
func (r *PostgresStateRepository) Save(ctx context.Context, state *models.State) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("%w: failed to encode workspace state: %v", domain.ErrInternal, err)
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (workspace_id, name, state, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (workspace_id) DO UPDATE SET
			name = EXCLUDED.name,
			state = EXCLUDED.state,
			updated_at = EXCLUDED.updated_at
	`, r.tables.States)

	executor := GetExecutor(ctx, r.pool)
	_, err = executor.Exec(ctx, query,
		state.Workspace.ID,
		state.Workspace.Name,
		data,
		state.Workspace.CreatedAt,
		state.Workspace.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("%w: failed to save workspace state: %v", domain.ErrInternal, err)
	}
	return nil
}

// ListWorkspaces returns the workspace metadata of every persisted state
func (r *PostgresStateRepository) ListWorkspaces(ctx context.Context) ([]models.Workspace, error) {
	query := fmt.Sprintf(`
		SELECT workspace_id, name, created_at, updated_at
		FROM %s
		ORDER BY created_at ASC, workspace_id ASC
	`, r.tables.States)

	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to list workspaces: %v", domain.ErrInternal, err)
	}
	defer rows.Close()

	workspaces := []models.Workspace{}
	for rows.Next() {
		var ws models.Workspace
		if err := rows.Scan(&ws.ID, &ws.Name, &ws.CreatedAt, &ws.UpdatedAt); err != nil {
			return nil, fmt.Errorf("%w: failed to scan workspace row: %v", domain.ErrInternal, err)
		}
		workspaces = append(workspaces, ws)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: failed to iterate workspace rows: %v", domain.ErrInternal, err)
	}
	return workspaces, nil
}
