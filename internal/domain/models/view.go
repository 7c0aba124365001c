package models

import (
	"time"
)

// View is a node in a workspace tree. Views nest arbitrarily deep; the
// ordered Children slice is the source of truth for sibling order, ParentID
// is the reverse index into it.
//
// A view is in exactly one of three placements:
//   - attached: listed in its parent's Children (or the workspace root list)
//   - trashed:  IsTrashed set, detached from its parent, recorded in the
//     trash ledger; ParentID is retained so a restore can put it back
//   - orphan:   ParentID nil and not on the root list (created detached,
//     attached later via move or import)
type View struct {
	ID          string    `json:"id"`
	WorkspaceID string    `json:"workspace_id"`
	ParentID    *string   `json:"parent_id,omitempty"` // nil = root level (or orphan)
	Name        string    `json:"name"`
	Icon        string    `json:"icon,omitempty"`
	Children    []string  `json:"children"`
	IsFavorite  bool      `json:"is_favorite"`
	IsTrashed   bool      `json:"is_trashed"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Clone returns a deep copy. The engine hands out clones so callers can
// never alias its internal state.
func (v *View) Clone() *View {
	c := *v
	if v.ParentID != nil {
		pid := *v.ParentID
		c.ParentID = &pid
	}
	c.Children = append([]string(nil), v.Children...)
	return &c
}
