package folder

import (
	"context"
	"fmt"

	"arbor/internal/domain"
	"arbor/internal/domain/models"
)

// SetCurrentView marks a live view as the one the session has open. The
// marker is session state, not workspace state: it is never persisted and
// resets when the workspace is reopened.
func (s *engine) SetCurrentView(ctx context.Context, viewID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.guard(); err != nil {
		return err
	}

	w, err := s.open()
	if err != nil {
		return err
	}

	v, err := w.liveView(viewID)
	if err != nil {
		return err
	}

	s.currentViewID = v.ID
	s.logger.Debug("current view set", "id", v.ID)
	return nil
}

// CurrentView returns the view the session has open.
func (s *engine) CurrentView(ctx context.Context) (*models.View, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.guard(); err != nil {
		return nil, err
	}

	w, err := s.open()
	if err != nil {
		return nil, err
	}

	if s.currentViewID == "" {
		return nil, fmt.Errorf("%w: no view is currently open", domain.ErrNotFound)
	}
	v, err := w.liveView(s.currentViewID)
	if err != nil {
		return nil, err
	}
	return v.Clone(), nil
}

// CloseView clears the session marker if viewID is the current view.
// Closing any other view is a no-op.
func (s *engine) CloseView(ctx context.Context, viewID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.guard(); err != nil {
		return err
	}

	if _, err := s.open(); err != nil {
		return err
	}

	if s.currentViewID == viewID {
		s.currentViewID = ""
		s.logger.Debug("current view closed", "id", viewID)
	}
	return nil
}
