package folder

import (
	"fmt"

	"arbor/internal/domain"
	"arbor/internal/domain/models"
)

// workspaceContext is the in-memory working set of one workspace: a flat
// arena of views plus the ordered indexes over it. View.Children and the
// root list carry sibling order; ParentID is the reverse index into them.
type workspaceContext struct {
	workspace *models.Workspace
	views     map[string]*models.View
	root      []string // ordered root-level view ids
	trash     []models.TrashEntry
	favorites []string // view ids in the order they were favorited
	mutations int      // successful mutations since the last snapshot capture
}

func newWorkspaceContext(ws *models.Workspace) *workspaceContext {
	return &workspaceContext{
		workspace: ws,
		views:     make(map[string]*models.View),
		root:      []string{},
		trash:     []models.TrashEntry{},
		favorites: []string{},
	}
}

// liveView resolves an id to a reachable view. Missing views, trashed views,
// and views sitting under a trashed ancestor all read as not found.
func (w *workspaceContext) liveView(id string) (*models.View, error) {
	v, ok := w.views[id]
	if !ok || v.IsTrashed || w.underTrashed(v) {
		return nil, &domain.NotFoundError{Message: fmt.Sprintf("view %s not found", id)}
	}
	return v, nil
}

// underTrashed reports whether any ancestor of the view is trashed. Trashing
// flags only the subtree root, so a descendant's reachability depends on its
// parent chain.
func (w *workspaceContext) underTrashed(v *models.View) bool {
	for v.ParentID != nil {
		parent, ok := w.views[*v.ParentID]
		if !ok {
			return false
		}
		if parent.IsTrashed {
			return true
		}
		v = parent
	}
	return false
}

// siblings returns a pointer to the ordered list the view sits in: its
// parent's child list, or the workspace root list. Returns nil for views
// that are not attached anywhere (orphans, trashed views).
func (w *workspaceContext) siblings(v *models.View) *[]string {
	if v.IsTrashed {
		return nil
	}
	if v.ParentID != nil {
		parent, ok := w.views[*v.ParentID]
		if ok && indexOf(parent.Children, v.ID) >= 0 {
			return &parent.Children
		}
		return nil
	}
	if indexOf(w.root, v.ID) >= 0 {
		return &w.root
	}
	return nil
}

// attach places the view under parentID ("" = workspace root) at pos.
// A nil or out-of-range position appends.
func (w *workspaceContext) attach(v *models.View, parentID string, pos *int) {
	if parentID == "" {
		w.root = insertAt(w.root, v.ID, clampPos(pos, len(w.root)))
		v.ParentID = nil
		return
	}
	parent := w.views[parentID]
	parent.Children = insertAt(parent.Children, v.ID, clampPos(pos, len(parent.Children)))
	pid := parentID
	v.ParentID = &pid
}

// attachAfter inserts the view among parentID's children ("" = workspace
// root) immediately after anchorID. Reports whether the anchor was found;
// the view is not attached when it was not.
func (w *workspaceContext) attachAfter(v *models.View, parentID, anchorID string) bool {
	list := &w.root
	if parentID != "" {
		list = &w.views[parentID].Children
	}
	i := indexOf(*list, anchorID)
	if i < 0 {
		return false
	}
	*list = insertAt(*list, v.ID, i+1)
	if parentID == "" {
		v.ParentID = nil
	} else {
		pid := parentID
		v.ParentID = &pid
	}
	return true
}

// detach removes the view from whatever ordered list holds it. Detaching an
// unattached view is a no-op. ParentID is left untouched so a trash restore
// can find the old parent.
func (w *workspaceContext) detach(v *models.View) {
	if v.ParentID != nil {
		if parent, ok := w.views[*v.ParentID]; ok {
			parent.Children = removeID(parent.Children, v.ID)
		}
		return
	}
	w.root = removeID(w.root, v.ID)
}

// hasAncestor reports whether ancestorID appears on the view's parent chain.
func (w *workspaceContext) hasAncestor(viewID, ancestorID string) bool {
	v, ok := w.views[viewID]
	if !ok {
		return false
	}
	for v.ParentID != nil {
		if *v.ParentID == ancestorID {
			return true
		}
		parent, ok := w.views[*v.ParentID]
		if !ok {
			return false
		}
		v = parent
	}
	return false
}

// collectSubtree returns the view's id followed by its entire reachable
// subtree in depth-first order. Separately trashed descendants were detached
// when they were trashed, so the walk never reaches them.
func (w *workspaceContext) collectSubtree(id string) []string {
	out := []string{id}
	v, ok := w.views[id]
	if !ok {
		return out
	}
	for _, childID := range v.Children {
		out = append(out, w.collectSubtree(childID)...)
	}
	return out
}

// liveChildren returns clones of the view's live children, in order.
func (w *workspaceContext) liveChildren(v *models.View) []models.View {
	children := make([]models.View, 0, len(v.Children))
	for _, id := range v.Children {
		child, ok := w.views[id]
		if !ok || child.IsTrashed {
			continue
		}
		children = append(children, *child.Clone())
	}
	return children
}

// rootViews returns clones of the root-level live views, in order.
func (w *workspaceContext) rootViews() []models.View {
	views := make([]models.View, 0, len(w.root))
	for _, id := range w.root {
		v, ok := w.views[id]
		if !ok || v.IsTrashed {
			continue
		}
		views = append(views, *v.Clone())
	}
	return views
}

// setFavorite flips the view's flag and keeps the insertion-ordered
// favorites list in sync.
func (w *workspaceContext) setFavorite(v *models.View, fav bool) {
	if fav && !v.IsFavorite {
		w.favorites = append(w.favorites, v.ID)
	}
	if !fav && v.IsFavorite {
		w.favorites = removeID(w.favorites, v.ID)
	}
	v.IsFavorite = fav
}

// trashEntry returns the ledger entry for a view id, nil when absent.
func (w *workspaceContext) trashEntry(viewID string) *models.TrashEntry {
	for i := range w.trash {
		if w.trash[i].ViewID == viewID {
			return &w.trash[i]
		}
	}
	return nil
}

func (w *workspaceContext) removeTrashEntry(viewID string) {
	for i := range w.trash {
		if w.trash[i].ViewID == viewID {
			w.trash = append(w.trash[:i], w.trash[i+1:]...)
			return
		}
	}
}

func indexOf(ids []string, id string) int {
	for i, candidate := range ids {
		if candidate == id {
			return i
		}
	}
	return -1
}

func removeID(ids []string, id string) []string {
	i := indexOf(ids, id)
	if i < 0 {
		return ids
	}
	return append(ids[:i], ids[i+1:]...)
}

func insertAt(ids []string, id string, pos int) []string {
	ids = append(ids, "")
	copy(ids[pos+1:], ids[pos:])
	ids[pos] = id
	return ids
}

// clampPos resolves a requested sibling index against a list length:
// nil appends, negatives clamp to the front, overshoots clamp to the end.
func clampPos(pos *int, length int) int {
	if pos == nil {
		return length
	}
	if *pos < 0 {
		return 0
	}
	if *pos > length {
		return length
	}
	return *pos
}
