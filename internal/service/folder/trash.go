package folder

import (
	"context"
	"fmt"
	"time"

	"arbor/internal/domain"
	"arbor/internal/domain/models"
)

// ListTrash returns the trash ledger in the order views were trashed.
func (s *engine) ListTrash(ctx context.Context) ([]models.TrashEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.guard(); err != nil {
		return nil, err
	}

	w, err := s.open()
	if err != nil {
		return nil, err
	}

	entries := make([]models.TrashEntry, len(w.trash))
	copy(entries, w.trash)
	return entries, nil
}

// RestoreTrash brings a trashed view back, subtree intact. The view goes
// back under its recorded parent when that parent is still reachable,
// otherwise to the end of the workspace root.
func (s *engine) RestoreTrash(ctx context.Context, viewID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.guard(); err != nil {
		return err
	}

	w, err := s.open()
	if err != nil {
		return err
	}

	if err := s.restoreLocked(w, viewID); err != nil {
		return err
	}

	s.completeMutation(ctx, w)
	s.logger.Info("view restored from trash", "id", viewID)

	return nil
}

// PurgeTrashView permanently deletes one trashed view and its subtree.
func (s *engine) PurgeTrashView(ctx context.Context, viewID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.guard(); err != nil {
		return err
	}

	w, err := s.open()
	if err != nil {
		return err
	}

	if err := s.purgeLocked(w, viewID); err != nil {
		return err
	}

	s.completeMutation(ctx, w)
	s.logger.Info("trashed view purged", "id", viewID)

	return nil
}

// PurgeTrash permanently deletes a batch of trashed views. Ids without a
// trash entry are skipped and logged; the rest are purged.
func (s *engine) PurgeTrash(ctx context.Context, viewIDs []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.guard(); err != nil {
		return err
	}

	w, err := s.open()
	if err != nil {
		return err
	}

	purged := 0
	for _, id := range viewIDs {
		if err := s.purgeLocked(w, id); err != nil {
			s.logger.Debug("skipping view in purge batch", "view_id", id, "error", err)
			continue
		}
		purged++
	}

	if purged > 0 {
		s.completeMutation(ctx, w)
	}
	s.logger.Info("trashed views purged",
		"requested", len(viewIDs),
		"purged", purged,
	)

	return nil
}

// RestoreAllTrash restores every trashed view, oldest first.
func (s *engine) RestoreAllTrash(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.guard(); err != nil {
		return err
	}

	w, err := s.open()
	if err != nil {
		return err
	}

	entries := make([]models.TrashEntry, len(w.trash))
	copy(entries, w.trash)

	restored := 0
	for _, entry := range entries {
		if err := s.restoreLocked(w, entry.ViewID); err != nil {
			s.logger.Debug("skipping view in restore batch", "view_id", entry.ViewID, "error", err)
			continue
		}
		restored++
	}

	if restored > 0 {
		s.completeMutation(ctx, w)
	}
	s.logger.Info("trash restored", "restored", restored)

	return nil
}

// PurgeAllTrash permanently deletes everything in the trash.
func (s *engine) PurgeAllTrash(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.guard(); err != nil {
		return err
	}

	w, err := s.open()
	if err != nil {
		return err
	}

	purged := 0
	for len(w.trash) > 0 {
		if err := s.purgeLocked(w, w.trash[0].ViewID); err != nil {
			break
		}
		purged++
	}

	if purged > 0 {
		s.completeMutation(ctx, w)
	}
	s.logger.Info("trash purged", "purged", purged)

	return nil
}

// trashLocked soft-deletes one live view: detach from its sibling list, flag
// it, ledger it. ParentID is deliberately left in place so a restore can put
// the view back where it came from. The session view is cleared when it falls
// inside the trashed subtree.
func (s *engine) trashLocked(w *workspaceContext, viewID string) error {
	v, err := w.liveView(viewID)
	if err != nil {
		return err
	}

	w.detach(v)
	v.IsTrashed = true
	v.UpdatedAt = time.Now()
	w.trash = append(w.trash, models.TrashEntry{
		ViewID:    v.ID,
		Name:      v.Name,
		TrashedAt: time.Now(),
	})

	if s.currentViewID == viewID || w.hasAncestor(s.currentViewID, viewID) {
		s.currentViewID = ""
	}
	return nil
}

// restoreLocked reverses trashLocked for one ledger entry. The recorded
// parent may have been trashed or purged in the meantime; the workspace root
// is the fallback. Restored views append at the end of their sibling list.
func (s *engine) restoreLocked(w *workspaceContext, viewID string) error {
	if w.trashEntry(viewID) == nil {
		return &domain.NotFoundError{Message: fmt.Sprintf("view %s is not in the trash", viewID)}
	}

	v := w.views[viewID]
	w.removeTrashEntry(viewID)
	v.IsTrashed = false

	parent := ""
	if v.ParentID != nil {
		if p, err := w.liveView(*v.ParentID); err == nil {
			parent = p.ID
		}
	}
	w.attach(v, parent, nil)
	v.UpdatedAt = time.Now()
	return nil
}

// purgeLocked permanently deletes a trashed view and everything still hooked
// to it. Descendants that were trashed separately were detached at trash
// time, so the walk never reaches them; their recorded parent may now be
// gone, in which case their restore target falls back to the workspace root.
func (s *engine) purgeLocked(w *workspaceContext, viewID string) error {
	if w.trashEntry(viewID) == nil {
		return &domain.NotFoundError{Message: fmt.Sprintf("view %s is not in the trash", viewID)}
	}

	doomed := w.collectSubtree(viewID)
	w.removeTrashEntry(viewID)
	for _, id := range doomed {
		delete(w.views, id)
		w.favorites = removeID(w.favorites, id)
		if s.currentViewID == id {
			s.currentViewID = ""
		}
	}

	for _, v := range w.views {
		if v.ParentID != nil {
			if _, ok := w.views[*v.ParentID]; !ok {
				v.ParentID = nil
			}
		}
	}
	return nil
}
