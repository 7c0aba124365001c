package folder

import (
	"fmt"
	"sort"

	"arbor/internal/domain/models"
)

// snapshotState deep-copies the working set into its persistable form.
// Views are emitted in id order so encoding the same state twice produces
// the same bytes.
func (w *workspaceContext) snapshotState() *models.State {
	ids := make([]string, 0, len(w.views))
	for id := range w.views {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	views := make([]*models.View, 0, len(ids))
	for _, id := range ids {
		views = append(views, w.views[id].Clone())
	}

	ws := *w.workspace
	return &models.State{
		Workspace: &ws,
		Views:     views,
		Root:      append([]string(nil), w.root...),
		Trash:     append([]models.TrashEntry(nil), w.trash...),
		Favorites: append([]string(nil), w.favorites...),
	}
}

// cloneContext deep-copies the working set. Import batches mutate the clone
// and swap it in only once every command has landed.
func (w *workspaceContext) cloneContext() *workspaceContext {
	views := make(map[string]*models.View, len(w.views))
	for id, v := range w.views {
		views[id] = v.Clone()
	}

	ws := *w.workspace
	return &workspaceContext{
		workspace: &ws,
		views:     views,
		root:      append([]string(nil), w.root...),
		trash:     append([]models.TrashEntry(nil), w.trash...),
		favorites: append([]string(nil), w.favorites...),
		mutations: w.mutations,
	}
}

// buildContext rehydrates a working set from persisted state, verifying
// every structural invariant on the way in. States that fail here must never
// be attached; the engine surfaces them as domain.ErrInternal.
func buildContext(state *models.State) (*workspaceContext, error) {
	if state == nil || state.Workspace == nil || state.Workspace.ID == "" {
		return nil, fmt.Errorf("state has no workspace")
	}

	w := newWorkspaceContext(state.Workspace)
	for _, v := range state.Views {
		if v == nil || v.ID == "" {
			return nil, fmt.Errorf("state contains a view without an id")
		}
		if v.WorkspaceID != state.Workspace.ID {
			return nil, fmt.Errorf("view %s belongs to workspace %s", v.ID, v.WorkspaceID)
		}
		if _, dup := w.views[v.ID]; dup {
			return nil, fmt.Errorf("duplicate view id %s", v.ID)
		}
		w.views[v.ID] = v.Clone()
	}
	w.root = append([]string(nil), state.Root...)
	w.trash = append([]models.TrashEntry(nil), state.Trash...)
	w.favorites = append([]string(nil), state.Favorites...)

	if err := w.validate(); err != nil {
		return nil, err
	}
	return w, nil
}

// validate checks the structural invariants of the working set:
//   - ordered lists reference existing views, each view at most once
//   - list membership agrees with ParentID, root views carry no parent
//   - parent chains terminate (no cycles)
//   - trashed views are detached and ledgered exactly once, and vice versa
//   - the favorites list carries exactly the flagged views, once each
//   - unattached views are either trashed or genuine orphans (nil parent)
func (w *workspaceContext) validate() error {
	attachedIn := make(map[string]string, len(w.views)) // view id -> holder ("" = root)

	for _, id := range w.root {
		v, ok := w.views[id]
		if !ok {
			return fmt.Errorf("root references unknown view %s", id)
		}
		if _, dup := attachedIn[id]; dup {
			return fmt.Errorf("view %s is attached twice", id)
		}
		if v.ParentID != nil {
			return fmt.Errorf("root view %s has parent %s", id, *v.ParentID)
		}
		attachedIn[id] = ""
	}

	for _, v := range w.views {
		for _, childID := range v.Children {
			child, ok := w.views[childID]
			if !ok {
				return fmt.Errorf("view %s references unknown child %s", v.ID, childID)
			}
			if _, dup := attachedIn[childID]; dup {
				return fmt.Errorf("view %s is attached twice", childID)
			}
			if child.ParentID == nil || *child.ParentID != v.ID {
				return fmt.Errorf("view %s is listed under %s but does not point back", childID, v.ID)
			}
			attachedIn[childID] = v.ID
		}
	}

	// Parent chains must terminate within the arena.
	for id, v := range w.views {
		steps := 0
		for cursor := v; cursor.ParentID != nil; steps++ {
			if steps > len(w.views) {
				return fmt.Errorf("view %s sits on a parent cycle", id)
			}
			parent, ok := w.views[*cursor.ParentID]
			if !ok {
				return fmt.Errorf("view %s has unknown parent %s", cursor.ID, *cursor.ParentID)
			}
			cursor = parent
		}
	}

	ledgered := make(map[string]bool, len(w.trash))
	for _, entry := range w.trash {
		v, ok := w.views[entry.ViewID]
		if !ok {
			return fmt.Errorf("trash references unknown view %s", entry.ViewID)
		}
		if !v.IsTrashed {
			return fmt.Errorf("trash references live view %s", entry.ViewID)
		}
		if ledgered[entry.ViewID] {
			return fmt.Errorf("view %s is in the trash twice", entry.ViewID)
		}
		ledgered[entry.ViewID] = true
	}

	favorited := make(map[string]bool, len(w.favorites))
	for _, id := range w.favorites {
		v, ok := w.views[id]
		if !ok {
			return fmt.Errorf("favorites reference unknown view %s", id)
		}
		if !v.IsFavorite {
			return fmt.Errorf("favorites reference unflagged view %s", id)
		}
		if favorited[id] {
			return fmt.Errorf("view %s is favorited twice", id)
		}
		favorited[id] = true
	}

	for id, v := range w.views {
		_, attached := attachedIn[id]
		switch {
		case v.IsTrashed && attached:
			return fmt.Errorf("trashed view %s is still attached", id)
		case v.IsTrashed && !ledgered[id]:
			return fmt.Errorf("trashed view %s is missing from the trash ledger", id)
		case !v.IsTrashed && ledgered[id]:
			return fmt.Errorf("live view %s appears in the trash ledger", id)
		case !v.IsTrashed && !attached && v.ParentID != nil:
			return fmt.Errorf("view %s is unattached but still points at parent %s", id, *v.ParentID)
		case v.IsFavorite && !favorited[id]:
			return fmt.Errorf("favorite view %s is missing from the favorites order", id)
		}
	}

	return nil
}
