package models

import (
	"encoding/json"
	"time"
)

// Snapshot is a point-in-time capture of one workspace's folder state.
// Data holds the JSON-encoded State; decoding it and loading the result
// yields a tree isomorphic to the one that was captured.
type Snapshot struct {
	ID          string          `json:"id"`
	WorkspaceID string          `json:"workspace_id"`
	Data        json.RawMessage `json:"data"`
	CreatedAt   time.Time       `json:"created_at"`
}
