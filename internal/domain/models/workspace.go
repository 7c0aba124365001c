package models

import (
	"time"
)

// Workspace is the top-level container for a view tree. Each workspace owns
// its own views, trash ledger and favorites; at most one workspace is open
// in the engine at a time.
type Workspace struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
