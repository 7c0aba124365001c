package folder

import (
	"context"
	"errors"
	"testing"

	"arbor/internal/domain"
)

func TestToggleFavorite(t *testing.T) {
	engine, _, _ := newTestEngine(t, nil)
	ctx := context.Background()
	ws := createTestWorkspace(t, engine, "Workspace")
	v := createTestView(t, engine, ws.ID, "View")

	on, err := engine.ToggleFavorite(ctx, v.ID)
	if err != nil {
		t.Fatalf("ToggleFavorite() error: %v", err)
	}
	if !on.IsFavorite {
		t.Error("view is not favorite after first toggle")
	}

	off, err := engine.ToggleFavorite(ctx, v.ID)
	if err != nil {
		t.Fatalf("ToggleFavorite() error: %v", err)
	}
	if off.IsFavorite {
		t.Error("view is still favorite after second toggle")
	}

	favorites, err := engine.ListFavorites(ctx)
	if err != nil {
		t.Fatalf("ListFavorites() error: %v", err)
	}
	if len(favorites) != 0 {
		t.Errorf("favorites = %v, want none", viewNames(favorites))
	}

	if _, err := engine.ToggleFavorite(ctx, "missing"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("ToggleFavorite(missing) = %v, want ErrNotFound", err)
	}
}

func TestListFavorites_KeepsToggleOrder(t *testing.T) {
	engine, _, _ := newTestEngine(t, nil)
	ctx := context.Background()
	ws := createTestWorkspace(t, engine, "Workspace")

	// Sibling order: A B C. Favorite order: C A B.
	a := createTestView(t, engine, ws.ID, "A")
	b := createTestView(t, engine, ws.ID, "B")
	c := createTestView(t, engine, ws.ID, "C")
	for _, id := range []string{c.ID, a.ID, b.ID} {
		if _, err := engine.ToggleFavorite(ctx, id); err != nil {
			t.Fatalf("ToggleFavorite() error: %v", err)
		}
	}

	favorites, err := engine.ListFavorites(ctx)
	if err != nil {
		t.Fatalf("ListFavorites() error: %v", err)
	}
	if !sameStrings(viewNames(favorites), []string{"C", "A", "B"}) {
		t.Errorf("favorites = %v, want [C A B]", viewNames(favorites))
	}

	// Re-favoriting after a toggle off moves the view to the back.
	if _, err := engine.ToggleFavorite(ctx, c.ID); err != nil {
		t.Fatalf("ToggleFavorite() error: %v", err)
	}
	if _, err := engine.ToggleFavorite(ctx, c.ID); err != nil {
		t.Fatalf("ToggleFavorite() error: %v", err)
	}

	favorites, err = engine.ListFavorites(ctx)
	if err != nil {
		t.Fatalf("ListFavorites() error: %v", err)
	}
	if !sameStrings(viewNames(favorites), []string{"A", "B", "C"}) {
		t.Errorf("favorites = %v, want [A B C]", viewNames(favorites))
	}
}

func TestListFavorites_FiltersTrashed(t *testing.T) {
	engine, _, _ := newTestEngine(t, nil)
	ctx := context.Background()
	ws := createTestWorkspace(t, engine, "Workspace")

	parent := createTestView(t, engine, ws.ID, "Parent")
	child := createTestView(t, engine, parent.ID, "Child")
	other := createTestView(t, engine, ws.ID, "Other")

	for _, id := range []string{child.ID, other.ID} {
		if _, err := engine.ToggleFavorite(ctx, id); err != nil {
			t.Fatalf("ToggleFavorite() error: %v", err)
		}
	}

	// Trashing the parent hides the favorited child without unfavoriting it.
	if err := engine.TrashView(ctx, parent.ID); err != nil {
		t.Fatalf("TrashView() error: %v", err)
	}

	favorites, err := engine.ListFavorites(ctx)
	if err != nil {
		t.Fatalf("ListFavorites() error: %v", err)
	}
	if !sameStrings(viewNames(favorites), []string{"Other"}) {
		t.Errorf("favorites = %v, want [Other]", viewNames(favorites))
	}

	// Restore brings it back in its original favorites slot.
	if err := engine.RestoreTrash(ctx, parent.ID); err != nil {
		t.Fatalf("RestoreTrash() error: %v", err)
	}

	favorites, err = engine.ListFavorites(ctx)
	if err != nil {
		t.Fatalf("ListFavorites() error: %v", err)
	}
	if !sameStrings(viewNames(favorites), []string{"Child", "Other"}) {
		t.Errorf("favorites = %v, want [Child Other]", viewNames(favorites))
	}
}

func TestToggleFavorites_BestEffort(t *testing.T) {
	engine, _, _ := newTestEngine(t, nil)
	ctx := context.Background()
	ws := createTestWorkspace(t, engine, "Workspace")

	a := createTestView(t, engine, ws.ID, "A")
	b := createTestView(t, engine, ws.ID, "B")

	if err := engine.ToggleFavorites(ctx, []string{a.ID, "missing", b.ID}); err != nil {
		t.Fatalf("ToggleFavorites() error: %v", err)
	}

	favorites, err := engine.ListFavorites(ctx)
	if err != nil {
		t.Fatalf("ListFavorites() error: %v", err)
	}
	if !sameStrings(viewNames(favorites), []string{"A", "B"}) {
		t.Errorf("favorites = %v, want [A B]", viewNames(favorites))
	}
}
