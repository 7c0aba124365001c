package folder

import (
	"context"
	"errors"
	"strings"
	"testing"

	"arbor/internal/domain"
	"arbor/internal/domain/models"
	"arbor/internal/domain/services"
)

func TestCreateView(t *testing.T) {
	engine, _, _ := newTestEngine(t, nil)
	ctx := context.Background()
	ws := createTestWorkspace(t, engine, "Workspace")

	t.Run("at workspace root", func(t *testing.T) {
		v, err := engine.CreateView(ctx, &services.CreateViewRequest{
			ParentID: ws.ID,
			Name:     "Root view",
			Icon:     "📄",
		})
		if err != nil {
			t.Fatalf("CreateView() error: %v", err)
		}
		if v.ParentID != nil {
			t.Errorf("root view parent = %v, want nil", *v.ParentID)
		}
		if v.Icon != "📄" {
			t.Errorf("icon = %q, want 📄", v.Icon)
		}

		roots, err := engine.WorkspaceViews(ctx, ws.ID)
		if err != nil {
			t.Fatalf("WorkspaceViews() error: %v", err)
		}
		if len(roots) != 1 || roots[0].ID != v.ID {
			t.Errorf("roots = %v, want the created view", viewNames(roots))
		}
	})

	t.Run("nested under a view", func(t *testing.T) {
		parent := createTestView(t, engine, ws.ID, "Parent")
		child, err := engine.CreateView(ctx, &services.CreateViewRequest{
			ParentID: parent.ID,
			Name:     "Child",
		})
		if err != nil {
			t.Fatalf("CreateView() error: %v", err)
		}
		if child.ParentID == nil || *child.ParentID != parent.ID {
			t.Fatalf("child parent = %v, want %s", child.ParentID, parent.ID)
		}

		detail, err := engine.GetView(ctx, parent.ID)
		if err != nil {
			t.Fatalf("GetView() error: %v", err)
		}
		if len(detail.Children) != 1 || detail.Children[0].ID != child.ID {
			t.Errorf("parent children = %v, want the child", viewNames(detail.Children))
		}
	})

	t.Run("at a position", func(t *testing.T) {
		parent := createTestView(t, engine, ws.ID, "Ordered")
		createTestView(t, engine, parent.ID, "First")
		createTestView(t, engine, parent.ID, "Third")

		pos := 1
		_, err := engine.CreateView(ctx, &services.CreateViewRequest{
			ParentID: parent.ID,
			Name:     "Second",
			Position: &pos,
		})
		if err != nil {
			t.Fatalf("CreateView() error: %v", err)
		}

		detail, err := engine.GetView(ctx, parent.ID)
		if err != nil {
			t.Fatalf("GetView() error: %v", err)
		}
		if !sameStrings(viewNames(detail.Children), []string{"First", "Second", "Third"}) {
			t.Errorf("children = %v, want [First Second Third]", viewNames(detail.Children))
		}
	})

	t.Run("set as current", func(t *testing.T) {
		v, err := engine.CreateView(ctx, &services.CreateViewRequest{
			ParentID:     ws.ID,
			Name:         "Opened on create",
			SetAsCurrent: true,
		})
		if err != nil {
			t.Fatalf("CreateView() error: %v", err)
		}

		current, err := engine.CurrentView(ctx)
		if err != nil {
			t.Fatalf("CurrentView() error: %v", err)
		}
		if current.ID != v.ID {
			t.Errorf("current view = %s, want %s", current.ID, v.ID)
		}
	})

	t.Run("unknown parent", func(t *testing.T) {
		_, err := engine.CreateView(ctx, &services.CreateViewRequest{
			ParentID: "missing",
			Name:     "Stray",
		})
		if !errors.Is(err, domain.ErrNotFound) {
			t.Errorf("CreateView(unknown parent) = %v, want ErrNotFound", err)
		}
	})

	t.Run("trashed parent", func(t *testing.T) {
		doomed := createTestView(t, engine, ws.ID, "Doomed")
		if err := engine.TrashView(ctx, doomed.ID); err != nil {
			t.Fatalf("TrashView() error: %v", err)
		}

		_, err := engine.CreateView(ctx, &services.CreateViewRequest{
			ParentID: doomed.ID,
			Name:     "Too late",
		})
		if !errors.Is(err, domain.ErrNotFound) {
			t.Errorf("CreateView(trashed parent) = %v, want ErrNotFound", err)
		}
	})
}

func TestCreateView_Validation(t *testing.T) {
	negative := -1
	tests := []struct {
		name string
		req  *services.CreateViewRequest
	}{
		{"missing parent", &services.CreateViewRequest{Name: "x"}},
		{"missing name", &services.CreateViewRequest{ParentID: "p"}},
		{"blank name", &services.CreateViewRequest{ParentID: "p", Name: "   "}},
		{"name too long", &services.CreateViewRequest{ParentID: "p", Name: strings.Repeat("a", 600)}},
		{"icon too long", &services.CreateViewRequest{ParentID: "p", Name: "x", Icon: strings.Repeat("i", 80)}},
		{"negative position", &services.CreateViewRequest{ParentID: "p", Name: "x", Position: &negative}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine, _, _ := newTestEngine(t, nil)
			ws := createTestWorkspace(t, engine, "Workspace")
			if tt.req.ParentID == "p" {
				tt.req.ParentID = ws.ID
			}

			_, err := engine.CreateView(context.Background(), tt.req)
			if !errors.Is(err, domain.ErrInvalidOperation) {
				t.Errorf("CreateView() = %v, want ErrInvalidOperation", err)
			}
		})
	}
}

func TestCreateOrphanView(t *testing.T) {
	engine, _, _ := newTestEngine(t, nil)
	ctx := context.Background()
	ws := createTestWorkspace(t, engine, "Workspace")

	orphan, err := engine.CreateOrphanView(ctx, &services.CreateOrphanViewRequest{Name: "Floating"})
	if err != nil {
		t.Fatalf("CreateOrphanView() error: %v", err)
	}
	if orphan.ParentID != nil {
		t.Errorf("orphan parent = %v, want nil", *orphan.ParentID)
	}

	// Orphans are readable but never appear at the root level.
	detail, err := engine.GetView(ctx, orphan.ID)
	if err != nil {
		t.Fatalf("GetView(orphan) error: %v", err)
	}
	if detail.View.Name != "Floating" {
		t.Errorf("orphan name = %q, want Floating", detail.View.Name)
	}

	roots, err := engine.WorkspaceViews(ctx, ws.ID)
	if err != nil {
		t.Fatalf("WorkspaceViews() error: %v", err)
	}
	if len(roots) != 0 {
		t.Errorf("roots = %v, want none", viewNames(roots))
	}
}

func TestGetView(t *testing.T) {
	engine, _, _ := newTestEngine(t, nil)
	ctx := context.Background()
	ws := createTestWorkspace(t, engine, "Workspace")

	parent := createTestView(t, engine, ws.ID, "Parent")
	first := createTestView(t, engine, parent.ID, "First")
	second := createTestView(t, engine, parent.ID, "Second")

	t.Run("children in order", func(t *testing.T) {
		detail, err := engine.GetView(ctx, parent.ID)
		if err != nil {
			t.Fatalf("GetView() error: %v", err)
		}
		if !sameStrings(viewNames(detail.Children), []string{"First", "Second"}) {
			t.Errorf("children = %v, want [First Second]", viewNames(detail.Children))
		}
	})

	t.Run("unknown view", func(t *testing.T) {
		_, err := engine.GetView(ctx, "missing")
		if !errors.Is(err, domain.ErrNotFound) {
			t.Errorf("GetView(missing) = %v, want ErrNotFound", err)
		}
	})

	t.Run("trashed subtree is unreachable", func(t *testing.T) {
		if err := engine.TrashView(ctx, parent.ID); err != nil {
			t.Fatalf("TrashView() error: %v", err)
		}

		// The trashed root and both descendants read as not found, even
		// though only the root carries the trashed flag.
		for _, id := range []string{parent.ID, first.ID, second.ID} {
			if _, err := engine.GetView(ctx, id); !errors.Is(err, domain.ErrNotFound) {
				t.Errorf("GetView(%s) = %v, want ErrNotFound", id, err)
			}
		}
	})
}

func TestUpdateView(t *testing.T) {
	engine, _, _ := newTestEngine(t, nil)
	ctx := context.Background()
	ws := createTestWorkspace(t, engine, "Workspace")

	t.Run("rename", func(t *testing.T) {
		v := createTestView(t, engine, ws.ID, "Old name")
		name := "  New name  "
		updated, err := engine.UpdateView(ctx, v.ID, &services.UpdateViewRequest{Name: &name})
		if err != nil {
			t.Fatalf("UpdateView() error: %v", err)
		}
		if updated.Name != "New name" {
			t.Errorf("name = %q, want %q", updated.Name, "New name")
		}
	})

	t.Run("icon tri-state", func(t *testing.T) {
		v, err := engine.CreateView(ctx, &services.CreateViewRequest{
			ParentID: ws.ID,
			Name:     "Icon holder",
			Icon:     "🌲",
		})
		if err != nil {
			t.Fatalf("CreateView() error: %v", err)
		}

		// Absent icon field leaves the icon alone.
		name := "Renamed"
		updated, err := engine.UpdateView(ctx, v.ID, &services.UpdateViewRequest{Name: &name})
		if err != nil {
			t.Fatalf("UpdateView() error: %v", err)
		}
		if updated.Icon != "🌲" {
			t.Errorf("icon after rename = %q, want 🌲", updated.Icon)
		}

		// Present with a value replaces it.
		icon := "🌳"
		updated, err = engine.UpdateView(ctx, v.ID, &services.UpdateViewRequest{
			Icon: services.OptionalIcon{Present: true, Value: &icon},
		})
		if err != nil {
			t.Fatalf("UpdateView() error: %v", err)
		}
		if updated.Icon != "🌳" {
			t.Errorf("icon = %q, want 🌳", updated.Icon)
		}

		// Present with null clears it.
		updated, err = engine.UpdateView(ctx, v.ID, &services.UpdateViewRequest{
			Icon: services.OptionalIcon{Present: true},
		})
		if err != nil {
			t.Fatalf("UpdateView() error: %v", err)
		}
		if updated.Icon != "" {
			t.Errorf("icon = %q, want cleared", updated.Icon)
		}
	})

	t.Run("favorite flag", func(t *testing.T) {
		v := createTestView(t, engine, ws.ID, "Starred")
		fav := true
		updated, err := engine.UpdateView(ctx, v.ID, &services.UpdateViewRequest{IsFavorite: &fav})
		if err != nil {
			t.Fatalf("UpdateView() error: %v", err)
		}
		if !updated.IsFavorite {
			t.Error("view is not favorite after update")
		}

		favorites, err := engine.ListFavorites(ctx)
		if err != nil {
			t.Fatalf("ListFavorites() error: %v", err)
		}
		if len(favorites) != 1 || favorites[0].ID != v.ID {
			t.Errorf("favorites = %v, want the updated view", viewNames(favorites))
		}
	})

	t.Run("no fields", func(t *testing.T) {
		v := createTestView(t, engine, ws.ID, "Unchanged")
		_, err := engine.UpdateView(ctx, v.ID, &services.UpdateViewRequest{})
		if !errors.Is(err, domain.ErrInvalidOperation) {
			t.Errorf("UpdateView(no fields) = %v, want ErrInvalidOperation", err)
		}
	})

	t.Run("rename to blank", func(t *testing.T) {
		v := createTestView(t, engine, ws.ID, "Keeps name")
		blank := "   "
		_, err := engine.UpdateView(ctx, v.ID, &services.UpdateViewRequest{Name: &blank})
		if !errors.Is(err, domain.ErrInvalidOperation) {
			t.Errorf("UpdateView(blank name) = %v, want ErrInvalidOperation", err)
		}
	})
}

func TestUpdateViewIcon(t *testing.T) {
	engine, _, _ := newTestEngine(t, nil)
	ctx := context.Background()
	ws := createTestWorkspace(t, engine, "Workspace")
	v := createTestView(t, engine, ws.ID, "View")

	icon := "🔔"
	updated, err := engine.UpdateViewIcon(ctx, v.ID, &icon)
	if err != nil {
		t.Fatalf("UpdateViewIcon() error: %v", err)
	}
	if updated.Icon != "🔔" {
		t.Errorf("icon = %q, want 🔔", updated.Icon)
	}

	updated, err = engine.UpdateViewIcon(ctx, v.ID, nil)
	if err != nil {
		t.Fatalf("UpdateViewIcon(nil) error: %v", err)
	}
	if updated.Icon != "" {
		t.Errorf("icon = %q, want cleared", updated.Icon)
	}

	long := strings.Repeat("i", 80)
	if _, err := engine.UpdateViewIcon(ctx, v.ID, &long); !errors.Is(err, domain.ErrInvalidOperation) {
		t.Errorf("UpdateViewIcon(too long) = %v, want ErrInvalidOperation", err)
	}
}

func TestDuplicateView(t *testing.T) {
	engine, _, _ := newTestEngine(t, nil)
	ctx := context.Background()
	ws := createTestWorkspace(t, engine, "Workspace")

	original := createTestView(t, engine, ws.ID, "Original")
	child := createTestView(t, engine, original.ID, "Child")
	grandchild := createTestView(t, engine, child.ID, "Grandchild")
	createTestView(t, engine, ws.ID, "Sibling")

	if _, err := engine.ToggleFavorite(ctx, original.ID); err != nil {
		t.Fatalf("ToggleFavorite() error: %v", err)
	}

	copyRoot, err := engine.DuplicateView(ctx, original.ID)
	if err != nil {
		t.Fatalf("DuplicateView() error: %v", err)
	}

	if copyRoot.Name != "Original (copy)" {
		t.Errorf("copy name = %q, want %q", copyRoot.Name, "Original (copy)")
	}
	if copyRoot.ID == original.ID {
		t.Error("copy shares the original's id")
	}
	if copyRoot.IsFavorite {
		t.Error("favorite flag was copied")
	}

	// The copy slots in immediately after the original.
	roots, err := engine.WorkspaceViews(ctx, ws.ID)
	if err != nil {
		t.Fatalf("WorkspaceViews() error: %v", err)
	}
	if !sameStrings(viewNames(roots), []string{"Original", "Original (copy)", "Sibling"}) {
		t.Errorf("roots = %v, want the copy after the original", viewNames(roots))
	}

	// Deep copy: children keep their names but get fresh ids.
	detail, err := engine.GetView(ctx, copyRoot.ID)
	if err != nil {
		t.Fatalf("GetView(copy) error: %v", err)
	}
	if len(detail.Children) != 1 || detail.Children[0].Name != "Child" {
		t.Fatalf("copy children = %v, want [Child]", viewNames(detail.Children))
	}
	if detail.Children[0].ID == child.ID {
		t.Error("copied child shares the original child's id")
	}

	copyChild, err := engine.GetView(ctx, detail.Children[0].ID)
	if err != nil {
		t.Fatalf("GetView(copy child) error: %v", err)
	}
	if len(copyChild.Children) != 1 || copyChild.Children[0].Name != "Grandchild" {
		t.Errorf("copy grandchildren = %v, want [Grandchild]", viewNames(copyChild.Children))
	}
	if copyChild.Children[0].ID == grandchild.ID {
		t.Error("copied grandchild shares the original grandchild's id")
	}
}

func TestDuplicateView_SkipsTrashedChildren(t *testing.T) {
	engine, _, _ := newTestEngine(t, nil)
	ctx := context.Background()
	ws := createTestWorkspace(t, engine, "Workspace")

	parent := createTestView(t, engine, ws.ID, "Parent")
	createTestView(t, engine, parent.ID, "Kept")
	doomed := createTestView(t, engine, parent.ID, "Trashed")
	if err := engine.TrashView(ctx, doomed.ID); err != nil {
		t.Fatalf("TrashView() error: %v", err)
	}

	copyRoot, err := engine.DuplicateView(ctx, parent.ID)
	if err != nil {
		t.Fatalf("DuplicateView() error: %v", err)
	}

	detail, err := engine.GetView(ctx, copyRoot.ID)
	if err != nil {
		t.Fatalf("GetView(copy) error: %v", err)
	}
	if !sameStrings(viewNames(detail.Children), []string{"Kept"}) {
		t.Errorf("copy children = %v, want only the live child", viewNames(detail.Children))
	}
}

func TestDuplicateView_OrphanYieldsOrphan(t *testing.T) {
	engine, _, _ := newTestEngine(t, nil)
	ctx := context.Background()
	ws := createTestWorkspace(t, engine, "Workspace")

	orphan, err := engine.CreateOrphanView(ctx, &services.CreateOrphanViewRequest{Name: "Floating"})
	if err != nil {
		t.Fatalf("CreateOrphanView() error: %v", err)
	}

	copyRoot, err := engine.DuplicateView(ctx, orphan.ID)
	if err != nil {
		t.Fatalf("DuplicateView() error: %v", err)
	}
	if copyRoot.ParentID != nil {
		t.Errorf("orphan copy parent = %v, want nil", *copyRoot.ParentID)
	}

	roots, err := engine.WorkspaceViews(ctx, ws.ID)
	if err != nil {
		t.Fatalf("WorkspaceViews() error: %v", err)
	}
	if len(roots) != 0 {
		t.Errorf("roots = %v, want none", viewNames(roots))
	}
}

func TestMoveView(t *testing.T) {
	ctx := context.Background()

	// newTree builds: root [A [A1 [A2]], B]
	newTree := func(t *testing.T) (services.FolderEngine, *models.Workspace, map[string]*models.View) {
		t.Helper()
		engine, _, _ := newTestEngine(t, nil)
		ws := createTestWorkspace(t, engine, "Workspace")
		a := createTestView(t, engine, ws.ID, "A")
		a1 := createTestView(t, engine, a.ID, "A1")
		a2 := createTestView(t, engine, a1.ID, "A2")
		b := createTestView(t, engine, ws.ID, "B")
		return engine, ws, map[string]*models.View{"A": a, "A1": a1, "A2": a2, "B": b}
	}

	t.Run("reparent", func(t *testing.T) {
		engine, _, views := newTree(t)
		err := engine.MoveView(ctx, &services.MoveViewRequest{
			ViewID:      views["A1"].ID,
			NewParentID: views["B"].ID,
		})
		if err != nil {
			t.Fatalf("MoveView() error: %v", err)
		}

		detail, err := engine.GetView(ctx, views["B"].ID)
		if err != nil {
			t.Fatalf("GetView(B) error: %v", err)
		}
		if !sameStrings(viewNames(detail.Children), []string{"A1"}) {
			t.Errorf("B children = %v, want [A1]", viewNames(detail.Children))
		}

		// The subtree moves with its root.
		moved, err := engine.GetView(ctx, views["A2"].ID)
		if err != nil {
			t.Fatalf("GetView(A2) error: %v", err)
		}
		if moved.View.ParentID == nil || *moved.View.ParentID != views["A1"].ID {
			t.Error("A2 no longer hangs under A1 after the move")
		}
	})

	t.Run("to workspace root", func(t *testing.T) {
		engine, ws, views := newTree(t)
		err := engine.MoveView(ctx, &services.MoveViewRequest{
			ViewID:      views["A1"].ID,
			NewParentID: ws.ID,
		})
		if err != nil {
			t.Fatalf("MoveView() error: %v", err)
		}

		roots, err := engine.WorkspaceViews(ctx, ws.ID)
		if err != nil {
			t.Fatalf("WorkspaceViews() error: %v", err)
		}
		if !sameStrings(viewNames(roots), []string{"A", "B", "A1"}) {
			t.Errorf("roots = %v, want [A B A1]", viewNames(roots))
		}
	})

	t.Run("under itself", func(t *testing.T) {
		engine, _, views := newTree(t)
		err := engine.MoveView(ctx, &services.MoveViewRequest{
			ViewID:      views["A"].ID,
			NewParentID: views["A"].ID,
		})
		if !errors.Is(err, domain.ErrInvalidOperation) {
			t.Errorf("MoveView(under itself) = %v, want ErrInvalidOperation", err)
		}
	})

	t.Run("under its own descendant", func(t *testing.T) {
		engine, _, views := newTree(t)
		err := engine.MoveView(ctx, &services.MoveViewRequest{
			ViewID:      views["A"].ID,
			NewParentID: views["A2"].ID,
		})
		if !errors.Is(err, domain.ErrInvalidOperation) {
			t.Errorf("MoveView(under descendant) = %v, want ErrInvalidOperation", err)
		}

		// The rejected move must leave the tree untouched.
		detail, err := engine.GetView(ctx, views["A"].ID)
		if err != nil {
			t.Fatalf("GetView(A) error: %v", err)
		}
		if !sameStrings(viewNames(detail.Children), []string{"A1"}) {
			t.Errorf("A children = %v, want [A1]", viewNames(detail.Children))
		}
	})

	t.Run("after an anchor sibling", func(t *testing.T) {
		engine, ws, views := newTree(t)
		err := engine.MoveView(ctx, &services.MoveViewRequest{
			ViewID:      views["A2"].ID,
			NewParentID: ws.ID,
			AfterID:     views["A"].ID,
		})
		if err != nil {
			t.Fatalf("MoveView() error: %v", err)
		}

		roots, err := engine.WorkspaceViews(ctx, ws.ID)
		if err != nil {
			t.Fatalf("WorkspaceViews() error: %v", err)
		}
		if !sameStrings(viewNames(roots), []string{"A", "A2", "B"}) {
			t.Errorf("roots = %v, want [A A2 B]", viewNames(roots))
		}
	})

	t.Run("anchor outside the target parent", func(t *testing.T) {
		engine, ws, views := newTree(t)
		err := engine.MoveView(ctx, &services.MoveViewRequest{
			ViewID:      views["A2"].ID,
			NewParentID: ws.ID,
			AfterID:     views["A1"].ID, // A1 is not a root view
		})
		if !errors.Is(err, domain.ErrInvalidOperation) {
			t.Errorf("MoveView(bad anchor) = %v, want ErrInvalidOperation", err)
		}
	})

	t.Run("view anchoring its own move", func(t *testing.T) {
		engine, ws, views := newTree(t)
		err := engine.MoveView(ctx, &services.MoveViewRequest{
			ViewID:      views["A"].ID,
			NewParentID: ws.ID,
			AfterID:     views["A"].ID,
		})
		if !errors.Is(err, domain.ErrInvalidOperation) {
			t.Errorf("MoveView(self anchor) = %v, want ErrInvalidOperation", err)
		}
	})

	t.Run("at a position", func(t *testing.T) {
		engine, ws, views := newTree(t)
		pos := 0
		err := engine.MoveView(ctx, &services.MoveViewRequest{
			ViewID:      views["A2"].ID,
			NewParentID: ws.ID,
			Position:    &pos,
		})
		if err != nil {
			t.Fatalf("MoveView() error: %v", err)
		}

		roots, err := engine.WorkspaceViews(ctx, ws.ID)
		if err != nil {
			t.Fatalf("WorkspaceViews() error: %v", err)
		}
		if !sameStrings(viewNames(roots), []string{"A2", "A", "B"}) {
			t.Errorf("roots = %v, want [A2 A B]", viewNames(roots))
		}
	})

	t.Run("attaches an orphan", func(t *testing.T) {
		engine, _, views := newTree(t)
		orphan, err := engine.CreateOrphanView(ctx, &services.CreateOrphanViewRequest{Name: "Floating"})
		if err != nil {
			t.Fatalf("CreateOrphanView() error: %v", err)
		}

		err = engine.MoveView(ctx, &services.MoveViewRequest{
			ViewID:      orphan.ID,
			NewParentID: views["B"].ID,
		})
		if err != nil {
			t.Fatalf("MoveView(orphan) error: %v", err)
		}

		detail, err := engine.GetView(ctx, views["B"].ID)
		if err != nil {
			t.Fatalf("GetView(B) error: %v", err)
		}
		if !sameStrings(viewNames(detail.Children), []string{"Floating"}) {
			t.Errorf("B children = %v, want [Floating]", viewNames(detail.Children))
		}
	})
}

func TestReorderView(t *testing.T) {
	ctx := context.Background()

	newSiblings := func(t *testing.T) (services.FolderEngine, *models.Workspace, []*models.View) {
		t.Helper()
		engine, _, _ := newTestEngine(t, nil)
		ws := createTestWorkspace(t, engine, "Workspace")
		a := createTestView(t, engine, ws.ID, "A")
		b := createTestView(t, engine, ws.ID, "B")
		c := createTestView(t, engine, ws.ID, "C")
		return engine, ws, []*models.View{a, b, c}
	}

	t.Run("moves among siblings", func(t *testing.T) {
		engine, ws, views := newSiblings(t)
		err := engine.ReorderView(ctx, &services.ReorderViewRequest{
			ViewID: views[0].ID,
			From:   0,
			To:     2,
		})
		if err != nil {
			t.Fatalf("ReorderView() error: %v", err)
		}

		roots, err := engine.WorkspaceViews(ctx, ws.ID)
		if err != nil {
			t.Fatalf("WorkspaceViews() error: %v", err)
		}
		if !sameStrings(viewNames(roots), []string{"B", "C", "A"}) {
			t.Errorf("roots = %v, want [B C A]", viewNames(roots))
		}
	})

	t.Run("stale from index", func(t *testing.T) {
		engine, _, views := newSiblings(t)
		err := engine.ReorderView(ctx, &services.ReorderViewRequest{
			ViewID: views[0].ID,
			From:   1, // A is at 0
			To:     2,
		})
		if !errors.Is(err, domain.ErrInvalidOperation) {
			t.Errorf("ReorderView(stale from) = %v, want ErrInvalidOperation", err)
		}
	})

	t.Run("to index clamps", func(t *testing.T) {
		engine, ws, views := newSiblings(t)
		err := engine.ReorderView(ctx, &services.ReorderViewRequest{
			ViewID: views[0].ID,
			From:   0,
			To:     99,
		})
		if err != nil {
			t.Fatalf("ReorderView() error: %v", err)
		}

		roots, err := engine.WorkspaceViews(ctx, ws.ID)
		if err != nil {
			t.Fatalf("WorkspaceViews() error: %v", err)
		}
		if !sameStrings(viewNames(roots), []string{"B", "C", "A"}) {
			t.Errorf("roots = %v, want [B C A]", viewNames(roots))
		}
	})

	t.Run("negative from", func(t *testing.T) {
		engine, _, views := newSiblings(t)
		err := engine.ReorderView(ctx, &services.ReorderViewRequest{
			ViewID: views[0].ID,
			From:   -1,
			To:     1,
		})
		if !errors.Is(err, domain.ErrInvalidOperation) {
			t.Errorf("ReorderView(negative from) = %v, want ErrInvalidOperation", err)
		}
	})

	t.Run("orphan cannot be reordered", func(t *testing.T) {
		engine, _, _ := newSiblings(t)
		orphan, err := engine.CreateOrphanView(ctx, &services.CreateOrphanViewRequest{Name: "Floating"})
		if err != nil {
			t.Fatalf("CreateOrphanView() error: %v", err)
		}

		err = engine.ReorderView(ctx, &services.ReorderViewRequest{ViewID: orphan.ID, From: 0, To: 1})
		if !errors.Is(err, domain.ErrInvalidOperation) {
			t.Errorf("ReorderView(orphan) = %v, want ErrInvalidOperation", err)
		}
	})
}
