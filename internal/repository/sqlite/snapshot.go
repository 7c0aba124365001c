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
)

type snapshotRepository struct {
	db *gorm.DB
}

// NewSnapshotRepository creates a SQLite-backed snapshot repository.
func NewSnapshotRepository(db *gorm.DB) repositories.SnapshotRepository {
	return &snapshotRepository{db: db}
}

func (r *snapshotRepository) Append(ctx context.Context, snapshot *models.Snapshot, keep int) error {
	rec := &SnapshotRecord{
		ID:          snapshot.ID,
		WorkspaceID: snapshot.WorkspaceID,
		Data:        string(snapshot.Data),
		CreatedAt:   snapshot.CreatedAt,
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(rec).Error; err != nil {
			return err
		}
		if keep <= 0 {
			return nil
		}

		var keepIDs []string
		err := tx.Model(&SnapshotRecord{}).
			Where("workspace_id = ?", snapshot.WorkspaceID).
			Order("created_at DESC, id DESC").
			Limit(keep).
			Pluck("id", &keepIDs).Error
		if err != nil {
			return err
		}
		return tx.
			Where("workspace_id = ? AND id NOT IN ?", snapshot.WorkspaceID, keepIDs).
			Delete(&SnapshotRecord{}).Error
	})
	if err != nil {
		return fmt.Errorf("%w: failed to append snapshot: %v", domain.ErrInternal, err)
	}
	return nil
}

func (r *snapshotRepository) List(ctx context.Context, workspaceID string, limit int) ([]models.Snapshot, error) {
	if limit <= 0 {
		return []models.Snapshot{}, nil
	}

	var recs []SnapshotRecord
	err := r.db.WithContext(ctx).
		Where("workspace_id = ?", workspaceID).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&recs).Error
	if err != nil {
		return nil, fmt.Errorf("%w: failed to list snapshots: %v", domain.ErrInternal, err)
	}

	snapshots := make([]models.Snapshot, 0, len(recs))
	for i := range recs {
		snapshots = append(snapshots, *toSnapshotModel(&recs[i]))
	}
	return snapshots, nil
}

func (r *snapshotRepository) Get(ctx context.Context, workspaceID, snapshotID string) (*models.Snapshot, error) {
	var rec SnapshotRecord
	err := r.db.WithContext(ctx).
		First(&rec, "workspace_id = ? AND id = ?", workspaceID, snapshotID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: snapshot %s not found in workspace %s", domain.ErrNotFound, snapshotID, workspaceID)
		}
		return nil, fmt.Errorf("%w: failed to load snapshot: %v", domain.ErrInternal, err)
	}
	return toSnapshotModel(&rec), nil
}

func toSnapshotModel(rec *SnapshotRecord) *models.Snapshot {
	return &models.Snapshot{
		ID:          rec.ID,
		WorkspaceID: rec.WorkspaceID,
		Data:        json.RawMessage(rec.Data),
		CreatedAt:   rec.CreatedAt,
	}
}
