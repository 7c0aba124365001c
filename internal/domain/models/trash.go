package models

import (
	"time"
)

// TrashEntry records a soft-deleted view. Name is captured at trash time
// (trashed views cannot be renamed, so it stays accurate).
type TrashEntry struct {
	ViewID    string    `json:"view_id"`
	Name      string    `json:"name"`
	TrashedAt time.Time `json:"trashed_at"`
}
