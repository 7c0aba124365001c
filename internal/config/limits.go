package config

const (
	// MaxWorkspaceNameLength is the maximum length for workspace names.
	// Limited to 255 to provide reasonable UX (names should be short and
	// descriptive).
	MaxWorkspaceNameLength = 255

	// MaxViewNameLength is the maximum length for view names.
	// Views double as page titles, so they get more room than workspaces.
	MaxViewNameLength = 512

	// MaxIconLength is the maximum length for a view icon. Icons are emoji
	// or short asset keys, never free text.
	MaxIconLength = 64

	// MaxImportCommands is the maximum number of commands in one import
	// batch. Imports are applied atomically on a full copy of the tree, so
	// the batch size is bounded.
	MaxImportCommands = 1000

	// DefaultSnapshotRetention is how many snapshots are kept per workspace
	// when SNAPSHOT_RETENTION is not set.
	DefaultSnapshotRetention = 10

	// DefaultSnapshotEvery is how many mutations pass between automatic
	// snapshot captures when SNAPSHOT_EVERY is not set.
	DefaultSnapshotEvery = 100

	// DefaultSnapshotListLimit is the snapshot page size handlers use when
	// the request does not carry an explicit limit.
	DefaultSnapshotListLimit = 10
)
