package folder

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"arbor/internal/config"
	"arbor/internal/domain"
	"arbor/internal/domain/repositories"
	"arbor/internal/domain/services"
	"arbor/internal/template"
)

// engine implements services.FolderEngine. A single coarse RWMutex
// serializes mutations against reads; the in-memory working set of the open
// workspace is canonical and is written through to the state repository
// after each successful mutation.
type engine struct {
	mu     sync.RWMutex
	closed bool

	states    repositories.StateRepository
	snapshots repositories.SnapshotRepository
	templates *template.Registry

	current       *workspaceContext // open workspace, nil when none
	currentViewID string            // session's open view, "" when none

	snapshotKeep  int
	snapshotEvery int

	logger *slog.Logger
}

// NewEngine creates a folder engine. templates may be nil when workspace
// seeding is not needed.
func NewEngine(
	states repositories.StateRepository,
	snapshots repositories.SnapshotRepository,
	templates *template.Registry,
	cfg *config.Config,
	logger *slog.Logger,
) services.FolderEngine {
	keep := cfg.SnapshotRetention
	if keep <= 0 {
		keep = config.DefaultSnapshotRetention
	}
	every := cfg.SnapshotEvery
	if every <= 0 {
		every = config.DefaultSnapshotEvery
	}

	return &engine{
		states:        states,
		snapshots:     snapshots,
		templates:     templates,
		snapshotKeep:  keep,
		snapshotEvery: every,
		logger:        logger,
	}
}

// guard rejects calls on a closed engine. Callers must hold the lock.
func (s *engine) guard() error {
	if s.closed {
		return &domain.GoneError{Message: "folder engine is closed"}
	}
	return nil
}

// open returns the open workspace context. Callers must hold the lock.
func (s *engine) open() (*workspaceContext, error) {
	if s.current == nil {
		return nil, fmt.Errorf("%w: no workspace is open", domain.ErrNotFound)
	}
	return s.current, nil
}

// completeMutation write-through persists the workspace and captures an
// automatic snapshot every snapshotEvery successful mutations. Both writes
// are best-effort: the in-memory state is canonical, and a storage failure
// must not roll back a mutation that has already happened.
func (s *engine) completeMutation(ctx context.Context, w *workspaceContext) {
	if err := s.states.Save(ctx, w.snapshotState()); err != nil {
		s.logger.Error("failed to persist workspace state",
			"workspace_id", w.workspace.ID,
			"error", err,
		)
	}

	w.mutations++
	if w.mutations < s.snapshotEvery {
		return
	}
	if _, err := s.captureLocked(ctx, w); err != nil {
		s.logger.Warn("automatic snapshot capture failed",
			"workspace_id", w.workspace.ID,
			"error", err,
		)
	}
}

// Close persists the open workspace and shuts the engine down. Close is
// idempotent; every other operation fails with domain.ErrGone afterwards.
func (s *engine) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true

	if s.current != nil {
		if err := s.states.Save(context.Background(), s.current.snapshotState()); err != nil {
			s.logger.Error("failed to persist workspace state on close",
				"workspace_id", s.current.workspace.ID,
				"error", err,
			)
		}
		s.current = nil
	}
	s.currentViewID = ""

	s.logger.Info("folder engine closed")
	return nil
}
