package folder

import (
	"context"
	"time"

	"arbor/internal/domain/models"
)

// ListFavorites returns the live favorite views in the order they were
// favorited. Trashed favorites keep their flag and their ledger slot but are
// filtered out here until restored.
func (s *engine) ListFavorites(ctx context.Context) ([]models.View, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.guard(); err != nil {
		return nil, err
	}

	w, err := s.open()
	if err != nil {
		return nil, err
	}

	views := make([]models.View, 0, len(w.favorites))
	for _, id := range w.favorites {
		v, err := w.liveView(id)
		if err != nil {
			continue
		}
		views = append(views, *v.Clone())
	}
	return views, nil
}

// ToggleFavorite flips one view's favorite flag.
func (s *engine) ToggleFavorite(ctx context.Context, viewID string) (*models.View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.guard(); err != nil {
		return nil, err
	}

	w, err := s.open()
	if err != nil {
		return nil, err
	}

	v, err := w.liveView(viewID)
	if err != nil {
		return nil, err
	}

	w.setFavorite(v, !v.IsFavorite)
	v.UpdatedAt = time.Now()

	s.completeMutation(ctx, w)
	s.logger.Info("favorite toggled",
		"id", v.ID,
		"is_favorite", v.IsFavorite,
	)

	return v.Clone(), nil
}

// ToggleFavorites flips a batch of favorite flags. Views that cannot be
// resolved are skipped and logged while the rest proceed.
func (s *engine) ToggleFavorites(ctx context.Context, viewIDs []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.guard(); err != nil {
		return err
	}

	w, err := s.open()
	if err != nil {
		return err
	}

	toggled := 0
	for _, id := range viewIDs {
		v, err := w.liveView(id)
		if err != nil {
			s.logger.Debug("skipping view in favorite batch", "view_id", id, "error", err)
			continue
		}
		w.setFavorite(v, !v.IsFavorite)
		v.UpdatedAt = time.Now()
		toggled++
	}

	if toggled > 0 {
		s.completeMutation(ctx, w)
	}
	s.logger.Info("favorites toggled",
		"requested", len(viewIDs),
		"toggled", toggled,
	)

	return nil
}
