package services

import (
	"context"

	"arbor/internal/domain/models"
)

// FolderEngine is the façade over a session's workspaces and their view
// trees. All operations are safe for concurrent use; mutations are serialized
// by a coarse engine lock. Once Close has been called every operation fails
// with domain.ErrGone.
//
// Operations that take no workspace id act on the currently open workspace
// and return domain.ErrNotFound when none is open.
type FolderEngine interface {
	// CreateWorkspace creates a workspace, optionally seeds it from a named
	// template, and opens it.
	CreateWorkspace(ctx context.Context, req *CreateWorkspaceRequest) (*models.Workspace, error)

	// ListWorkspaces returns the metadata of every known workspace.
	ListWorkspaces(ctx context.Context) ([]models.Workspace, error)

	// OpenWorkspace makes the given workspace the open one. The previous
	// workspace's state is persisted and released; the open-view session is
	// cleared. Opening the already-open workspace is a no-op.
	OpenWorkspace(ctx context.Context, workspaceID string) (*models.Workspace, error)

	// CurrentWorkspace returns the open workspace.
	CurrentWorkspace(ctx context.Context) (*models.Workspace, error)

	// WorkspaceSetting returns the open workspace together with the view the
	// session last opened (nil if none is set).
	WorkspaceSetting(ctx context.Context) (*WorkspaceSetting, error)

	// WorkspaceViews returns the root-level live views of a workspace, in
	// order. The workspace does not have to be open.
	WorkspaceViews(ctx context.Context, workspaceID string) ([]models.View, error)

	// CreateView creates a view under a parent. The parent may be the open
	// workspace's id, which places the view at the root level.
	CreateView(ctx context.Context, req *CreateViewRequest) (*models.View, error)

	// CreateOrphanView creates a view that is not attached anywhere. Orphans
	// are readable by id and can be attached later via MoveView or import.
	CreateOrphanView(ctx context.Context, req *CreateOrphanViewRequest) (*models.View, error)

	// GetView retrieves a live view together with its live children.
	GetView(ctx context.Context, viewID string) (*ViewDetail, error)

	// UpdateView renames a view, changes its icon and/or its favorite flag.
	UpdateView(ctx context.Context, viewID string, req *UpdateViewRequest) (*models.View, error)

	// UpdateViewIcon sets or clears (nil) a view's icon.
	UpdateViewIcon(ctx context.Context, viewID string, icon *string) (*models.View, error)

	// DuplicateView deep-copies a live view and its live descendants under
	// fresh ids and inserts the copy immediately after the original.
	DuplicateView(ctx context.Context, viewID string) (*models.View, error)

	// MoveView reparents a view. Moves that would make a view its own
	// ancestor are rejected with domain.ErrInvalidOperation.
	MoveView(ctx context.Context, req *MoveViewRequest) error

	// ReorderView moves a view among its current siblings. From must match
	// the view's current index; To is clamped.
	ReorderView(ctx context.Context, req *ReorderViewRequest) error

	// TrashView soft-deletes a view: it is detached and recorded in the
	// trash ledger, its subtree goes unreachable with it.
	TrashView(ctx context.Context, viewID string) error

	// TrashViews soft-deletes a batch of views. The batch is best-effort:
	// views that cannot be trashed are skipped and logged, the rest proceed.
	TrashViews(ctx context.Context, viewIDs []string) error

	// ListTrash returns the open workspace's trash ledger, oldest first.
	ListTrash(ctx context.Context) ([]models.TrashEntry, error)

	// RestoreTrash puts a trashed view back under its recorded parent, or at
	// the workspace root when that parent no longer accepts children.
	// Restoring a view that is not in the trash returns domain.ErrNotFound.
	RestoreTrash(ctx context.Context, viewID string) error

	// PurgeTrashView permanently deletes a trashed view and its subtree.
	// Descendants with their own trash entry survive, detached.
	PurgeTrashView(ctx context.Context, viewID string) error

	// PurgeTrash permanently deletes a batch of trashed views. Best-effort:
	// failures are skipped and logged.
	PurgeTrash(ctx context.Context, viewIDs []string) error

	// RestoreAllTrash restores every trash entry, oldest first. Entries that
	// fail are skipped and logged.
	RestoreAllTrash(ctx context.Context) error

	// PurgeAllTrash permanently deletes every trash entry.
	PurgeAllTrash(ctx context.Context) error

	// ListFavorites returns the open workspace's live favorite views in the
	// order they were favorited.
	ListFavorites(ctx context.Context) ([]models.View, error)

	// ToggleFavorite flips the favorite flag of a live view.
	ToggleFavorite(ctx context.Context, viewID string) (*models.View, error)

	// ToggleFavorites flips a batch of favorite flags. Best-effort: views
	// that cannot be toggled are skipped and logged.
	ToggleFavorites(ctx context.Context, viewIDs []string) error

	// SetCurrentView marks a live view as the one the session has open.
	SetCurrentView(ctx context.Context, viewID string) error

	// CurrentView returns the view the session has open.
	CurrentView(ctx context.Context) (*models.View, error)

	// CloseView tells the engine the session closed a view. If it was the
	// current view the session is cleared; otherwise this is a no-op.
	CloseView(ctx context.Context, viewID string) error

	// CaptureSnapshot captures the open workspace's state and appends it to
	// the bounded snapshot history.
	CaptureSnapshot(ctx context.Context) (*models.Snapshot, error)

	// ListSnapshots returns up to limit snapshots of a workspace, newest
	// first. The workspace does not have to be open.
	ListSnapshots(ctx context.Context, workspaceID string, limit int) ([]models.Snapshot, error)

	// RestoreSnapshot replaces a workspace's state with a decoded snapshot.
	// If the workspace is open, the in-memory tree is swapped and the
	// open-view session cleared.
	RestoreSnapshot(ctx context.Context, workspaceID, snapshotID string) error

	// ImportViews applies a batch of create/attach commands to the open
	// workspace atomically: either every command lands or none do.
	ImportViews(ctx context.Context, req *ImportRequest) ([]models.View, error)

	// Close persists the open workspace and shuts the engine down. Further
	// calls on any operation return domain.ErrGone.
	Close() error
}

// CreateWorkspaceRequest represents a workspace creation request
type CreateWorkspaceRequest struct {
	Name     string `json:"name"`
	Template string `json:"template,omitempty"` // optional seed template name
}

// CreateViewRequest represents a view creation request
type CreateViewRequest struct {
	ParentID     string `json:"parent_id"` // parent view id, or the open workspace's id for root level
	Name         string `json:"name"`
	Icon         string `json:"icon,omitempty"`
	Position     *int   `json:"position,omitempty"` // index among siblings; nil or out of range appends
	SetAsCurrent bool   `json:"set_as_current,omitempty"`
}

// CreateOrphanViewRequest represents an unattached view creation request
type CreateOrphanViewRequest struct {
	Name string `json:"name"`
	Icon string `json:"icon,omitempty"`
}

// OptionalIcon tracks tri-state semantics for icon updates (RFC 7396 PATCH).
// This is transport-agnostic (no JSON tags) - the handler maps it from
// httputil.OptionalString.
//   - Present=false: field absent from request (don't change)
//   - Present=true, Value=nil: field is null (clear)
//   - Present=true, Value=&"text": field has value
type OptionalIcon struct {
	Present bool
	Value   *string
}

// UpdateViewRequest represents a view update request
// Supports partial updates - only provided fields are changed
type UpdateViewRequest struct {
	Name       *string      `json:"name,omitempty"`
	Icon       OptionalIcon `json:"-"` // tri-state, mapped from handler DTO
	IsFavorite *bool        `json:"is_favorite,omitempty"`
}

// MoveViewRequest represents a reparent request
type MoveViewRequest struct {
	ViewID      string `json:"view_id"`
	NewParentID string `json:"new_parent_id"`        // target view id, or the open workspace's id for root level
	AfterID     string `json:"after_id,omitempty"`   // anchor sibling: insert immediately after it
	Position    *int   `json:"position,omitempty"`   // used when AfterID is empty; nil or out of range appends
}

// ReorderViewRequest represents a reorder-within-parent request
type ReorderViewRequest struct {
	ViewID string `json:"view_id"`
	From   int    `json:"from"` // the view's current index among its siblings
	To     int    `json:"to"`   // target index, clamped
}

// ImportOp identifies an import command kind
type ImportOp string

const (
	// ImportOpCreate creates a new view under the resolved parent
	ImportOpCreate ImportOp = "create"
	// ImportOpAttach attaches an existing orphan view under the resolved parent
	ImportOpAttach ImportOp = "attach"
)

// ImportCommand is one step of an import batch. ParentRef resolves, in
// order: empty (workspace root), the Ref of an earlier create command, the
// open workspace's id, an existing live view id.
type ImportCommand struct {
	Op        ImportOp `json:"op"`
	Ref       string   `json:"ref,omitempty"`        // create only: local handle for later ParentRef use
	ParentRef string   `json:"parent_ref,omitempty"`
	ViewID    string   `json:"view_id,omitempty"`    // attach only: the orphan to attach
	Name      string   `json:"name,omitempty"`       // create only
	Icon      string   `json:"icon,omitempty"`       // create only
}

// ImportRequest represents an atomic import batch
type ImportRequest struct {
	Commands []ImportCommand `json:"commands"`
}

// WorkspaceSetting is the open workspace together with the session's view
type WorkspaceSetting struct {
	Workspace  *models.Workspace `json:"workspace"`
	LatestView *models.View      `json:"latest_view,omitempty"`
}

// ViewDetail is a view together with its live children
type ViewDetail struct {
	View     *models.View  `json:"view"`
	Children []models.View `json:"children"`
}
