package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"arbor/internal/domain"
	"arbor/internal/domain/models"
	"arbor/internal/domain/repositories"
)

// PostgresSnapshotRepository implements the SnapshotRepository interface
type PostgresSnapshotRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
	logger *slog.Logger
	tm     repositories.TransactionManager
}

// NewSnapshotRepository creates a new PostgresSnapshotRepository
func NewSnapshotRepository(config *RepositoryConfig) repositories.SnapshotRepository {
	return &PostgresSnapshotRepository{
		pool:   config.Pool,
		tables: config.Tables,
		logger: config.Logger,
		tm:     NewTransactionManager(config.Pool),
	}
}

// Append stores a snapshot and evicts history beyond keep entries. Insert
// and eviction run in one transaction so a failure cannot leave the history
// over its bound with the new snapshot missing.
func (r *PostgresSnapshotRepository) Append(ctx context.Context, snapshot *models.Snapshot, keep int) error {
	err := r.tm.ExecTx(ctx, func(txCtx context.Context) error {
		executor := GetExecutor(txCtx, r.pool)

		insert := fmt.Sprintf(`
			INSERT INTO %s (id, workspace_id, data, created_at)
			VALUES ($1, $2, $3, $4)
		`, r.tables.Snapshots)
		_, err := executor.Exec(txCtx, insert,
			snapshot.ID,
			snapshot.WorkspaceID,
			[]byte(snapshot.Data),
			snapshot.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("insert snapshot: %w", err)
		}

		if keep <= 0 {
			return nil
		}
		evict := fmt.Sprintf(`
			DELETE FROM %s
			WHERE workspace_id = $1
			  AND id NOT IN (
				SELECT id FROM %s
				WHERE workspace_id = $1
				ORDER BY created_at DESC, id DESC
				LIMIT $2
			  )
		`, r.tables.Snapshots, r.tables.Snapshots)
		if _, err := executor.Exec(txCtx, evict, snapshot.WorkspaceID, keep); err != nil {
			return fmt.Errorf("evict snapshots: %w", err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("%w: failed to append snapshot: %v", domain.ErrInternal, err)
	}
	return nil
}

// List returns up to limit snapshots for a workspace, newest first
func (r *PostgresSnapshotRepository) List(ctx context.Context, workspaceID string, limit int) ([]models.Snapshot, error) {
	if limit <= 0 {
		return []models.Snapshot{}, nil
	}

	query := fmt.Sprintf(`
		SELECT id, workspace_id, data, created_at
		FROM %s
		WHERE workspace_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2
	`, r.tables.Snapshots)

	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, workspaceID, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to list snapshots: %v", domain.ErrInternal, err)
	}
	defer rows.Close()

	snapshots := []models.Snapshot{}
	for rows.Next() {
		var snap models.Snapshot
		var data []byte
		if err := rows.Scan(&snap.ID, &snap.WorkspaceID, &data, &snap.CreatedAt); err != nil {
			return nil, fmt.Errorf("%w: failed to scan snapshot row: %v", domain.ErrInternal, err)
		}
		snap.Data = data
		snapshots = append(snapshots, snap)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: failed to iterate snapshot rows: %v", domain.ErrInternal, err)
	}
	return snapshots, nil
}

// Get retrieves one snapshot by id
func (r *PostgresSnapshotRepository) Get(ctx context.Context, workspaceID, snapshotID string) (*models.Snapshot, error) {
	query := fmt.Sprintf(`
		SELECT id, workspace_id, data, created_at
		FROM %s
		WHERE workspace_id = $1 AND id = $2
	`, r.tables.Snapshots)

	var snap models.Snapshot
	var data []byte
	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query, workspaceID, snapshotID).Scan(
		&snap.ID,
		&snap.WorkspaceID,
		&data,
		&snap.CreatedAt,
	)
	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("%w: snapshot %s not found in workspace %s", domain.ErrNotFound, snapshotID, workspaceID)
		}
		return nil, fmt.Errorf("%w: failed to load snapshot: %v", domain.ErrInternal, err)
	}
	snap.Data = data
	return &snap, nil
}
