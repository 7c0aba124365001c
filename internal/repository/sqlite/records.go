package sqlite

import "time"

// StateRecord is the persistence model for one workspace's folder state.
// The state itself is stored as a JSON document; the workspace metadata is
// mirrored into columns so listing workspaces does not decode every tree.
// Table name: workspace_states
type StateRecord struct {
	WorkspaceID string    `gorm:"primaryKey;type:text;not null"`
	Name        string    `gorm:"type:text;not null"`
	State       string    `gorm:"type:text;not null"` // JSON encoded models.State
	CreatedAt   time.Time `gorm:"not null"`
	UpdatedAt   time.Time `gorm:"not null"`
}

func (StateRecord) TableName() string { return "workspace_states" }

// SnapshotRecord is the persistence model for one workspace snapshot.
// Table name: workspace_snapshots
type SnapshotRecord struct {
	ID          string    `gorm:"primaryKey;type:text;not null"`
	WorkspaceID string    `gorm:"type:text;not null;index"`
	Data        string    `gorm:"type:text;not null"` // JSON encoded models.State
	CreatedAt   time.Time `gorm:"not null"`
}

func (SnapshotRecord) TableName() string { return "workspace_snapshots" }
