package models

// State is the complete persisted folder state of one workspace: the
// workspace itself, every view (attached, trashed and orphaned), the ordered
// root list, the trash ledger and the favorites order.
//
// The open-view session is deliberately not part of State; it is scoped to
// the engine session, not to the workspace.
//
// Views is a slice rather than a map so encoding the same state twice
// produces the same bytes.
type State struct {
	Workspace *Workspace   `json:"workspace"`
	Views     []*View      `json:"views"`
	Root      []string     `json:"root"`
	Trash     []TrashEntry `json:"trash"`
	Favorites []string     `json:"favorites"`
}

// Clone returns a deep copy of the state.
func (s *State) Clone() *State {
	c := &State{
		Root:      append([]string{}, s.Root...),
		Trash:     append([]TrashEntry{}, s.Trash...),
		Favorites: append([]string{}, s.Favorites...),
	}
	if s.Workspace != nil {
		ws := *s.Workspace
		c.Workspace = &ws
	}
	c.Views = make([]*View, 0, len(s.Views))
	for _, v := range s.Views {
		c.Views = append(c.Views, v.Clone())
	}
	return c
}
