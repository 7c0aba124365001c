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

func TestCreateWorkspace(t *testing.T) {
	tests := []struct {
		name    string
		req     *services.CreateWorkspaceRequest
		wantErr error
	}{
		{
			name: "plain workspace",
			req:  &services.CreateWorkspaceRequest{Name: "Notes"},
		},
		{
			name: "name is trimmed",
			req:  &services.CreateWorkspaceRequest{Name: "  Padded  "},
		},
		{
			name:    "empty name",
			req:     &services.CreateWorkspaceRequest{Name: ""},
			wantErr: domain.ErrInvalidOperation,
		},
		{
			name:    "blank name",
			req:     &services.CreateWorkspaceRequest{Name: "   "},
			wantErr: domain.ErrInvalidOperation,
		},
		{
			name:    "name too long",
			req:     &services.CreateWorkspaceRequest{Name: strings.Repeat("a", 300)},
			wantErr: domain.ErrInvalidOperation,
		},
		{
			name:    "unknown template",
			req:     &services.CreateWorkspaceRequest{Name: "Notes", Template: "no-such-template"},
			wantErr: domain.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine, _, _ := newTestEngine(t, nil)
			ws, err := engine.CreateWorkspace(context.Background(), tt.req)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("CreateWorkspace() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("CreateWorkspace() unexpected error: %v", err)
			}
			if ws.ID == "" {
				t.Error("CreateWorkspace() returned empty id")
			}
			if want := strings.TrimSpace(tt.req.Name); ws.Name != want {
				t.Errorf("workspace name = %q, want %q", ws.Name, want)
			}
		})
	}
}

func TestCreateWorkspace_BecomesCurrent(t *testing.T) {
	engine, _, _ := newTestEngine(t, nil)
	ws := createTestWorkspace(t, engine, "Workspace")

	current, err := engine.CurrentWorkspace(context.Background())
	if err != nil {
		t.Fatalf("CurrentWorkspace() error: %v", err)
	}
	if current.ID != ws.ID {
		t.Errorf("current workspace = %s, want %s", current.ID, ws.ID)
	}
}

func TestCreateWorkspace_SeedsTemplate(t *testing.T) {
	engine, _, _ := newTestEngine(t, nil)

	ws, err := engine.CreateWorkspace(context.Background(), &services.CreateWorkspaceRequest{
		Name:     "Seeded",
		Template: "getting-started",
	})
	if err != nil {
		t.Fatalf("CreateWorkspace() error: %v", err)
	}

	roots, err := engine.WorkspaceViews(context.Background(), ws.ID)
	if err != nil {
		t.Fatalf("WorkspaceViews() error: %v", err)
	}
	want := []string{"Getting started", "Shared"}
	if !sameStrings(viewNames(roots), want) {
		t.Fatalf("seeded roots = %v, want %v", viewNames(roots), want)
	}

	detail, err := engine.GetView(context.Background(), roots[0].ID)
	if err != nil {
		t.Fatalf("GetView() error: %v", err)
	}
	wantChildren := []string{"Quick start", "Tips and tricks"}
	if !sameStrings(viewNames(detail.Children), wantChildren) {
		t.Errorf("seeded children = %v, want %v", viewNames(detail.Children), wantChildren)
	}
}

func TestOpenWorkspace_RoundTrip(t *testing.T) {
	engine, _, _ := newTestEngine(t, nil)
	ctx := context.Background()

	first := createTestWorkspace(t, engine, "First")
	v := createTestView(t, engine, first.ID, "Kept view")

	// Switching away persists the first workspace and clears the session.
	second := createTestWorkspace(t, engine, "Second")
	current, err := engine.CurrentWorkspace(ctx)
	if err != nil {
		t.Fatalf("CurrentWorkspace() error: %v", err)
	}
	if current.ID != second.ID {
		t.Fatalf("current workspace = %s, want %s", current.ID, second.ID)
	}

	// Opening the first workspace again brings its tree back intact.
	reopened, err := engine.OpenWorkspace(ctx, first.ID)
	if err != nil {
		t.Fatalf("OpenWorkspace() error: %v", err)
	}
	if reopened.ID != first.ID || reopened.Name != "First" {
		t.Fatalf("OpenWorkspace() = %s %q, want the first workspace", reopened.ID, reopened.Name)
	}

	detail, err := engine.GetView(ctx, v.ID)
	if err != nil {
		t.Fatalf("GetView() after reopen error: %v", err)
	}
	if detail.View.Name != "Kept view" {
		t.Errorf("reopened view name = %q, want %q", detail.View.Name, "Kept view")
	}
}

func TestOpenWorkspace_SameIDIsNoOp(t *testing.T) {
	engine, _, _ := newTestEngine(t, nil)
	ctx := context.Background()

	ws := createTestWorkspace(t, engine, "Workspace")
	v := createTestView(t, engine, ws.ID, "View")
	if err := engine.SetCurrentView(ctx, v.ID); err != nil {
		t.Fatalf("SetCurrentView() error: %v", err)
	}

	if _, err := engine.OpenWorkspace(ctx, ws.ID); err != nil {
		t.Fatalf("OpenWorkspace() error: %v", err)
	}

	// Reopening the open workspace must not reset the session.
	current, err := engine.CurrentView(ctx)
	if err != nil {
		t.Fatalf("CurrentView() error: %v", err)
	}
	if current.ID != v.ID {
		t.Errorf("current view = %s, want %s", current.ID, v.ID)
	}
}

func TestOpenWorkspace_ClearsSession(t *testing.T) {
	engine, _, _ := newTestEngine(t, nil)
	ctx := context.Background()

	first := createTestWorkspace(t, engine, "First")
	v := createTestView(t, engine, first.ID, "View")
	if err := engine.SetCurrentView(ctx, v.ID); err != nil {
		t.Fatalf("SetCurrentView() error: %v", err)
	}

	second := createTestWorkspace(t, engine, "Second")
	if _, err := engine.OpenWorkspace(ctx, second.ID); err != nil {
		t.Fatalf("OpenWorkspace() error: %v", err)
	}

	if _, err := engine.CurrentView(ctx); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("CurrentView() after switch = %v, want ErrNotFound", err)
	}
}

func TestOpenWorkspace_Unknown(t *testing.T) {
	engine, _, _ := newTestEngine(t, nil)

	_, err := engine.OpenWorkspace(context.Background(), "missing")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("OpenWorkspace(missing) = %v, want ErrNotFound", err)
	}
}

func TestOpenWorkspace_CorruptState(t *testing.T) {
	engine, states, _ := newTestEngine(t, nil)
	ctx := context.Background()

	// A state whose root references a view that does not exist must never
	// be attached.
	corrupt := &models.State{
		Workspace: &models.Workspace{ID: "broken", Name: "Broken"},
		Views:     []*models.View{},
		Root:      []string{"ghost"},
	}
	if err := states.Save(ctx, corrupt); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	_, err := engine.OpenWorkspace(ctx, "broken")
	if !errors.Is(err, domain.ErrInternal) {
		t.Errorf("OpenWorkspace(corrupt) = %v, want ErrInternal", err)
	}
}

func TestListWorkspaces(t *testing.T) {
	engine, _, _ := newTestEngine(t, nil)
	ctx := context.Background()

	first := createTestWorkspace(t, engine, "First")
	second := createTestWorkspace(t, engine, "Second")

	workspaces, err := engine.ListWorkspaces(ctx)
	if err != nil {
		t.Fatalf("ListWorkspaces() error: %v", err)
	}
	if len(workspaces) != 2 {
		t.Fatalf("ListWorkspaces() returned %d workspaces, want 2", len(workspaces))
	}

	got := map[string]bool{workspaces[0].ID: true, workspaces[1].ID: true}
	if !got[first.ID] || !got[second.ID] {
		t.Errorf("ListWorkspaces() = %v, want both created workspaces", got)
	}
}

func TestWorkspaceViews_NotOpenWorkspace(t *testing.T) {
	engine, _, _ := newTestEngine(t, nil)
	ctx := context.Background()

	first := createTestWorkspace(t, engine, "First")
	createTestView(t, engine, first.ID, "Alpha")
	createTestView(t, engine, first.ID, "Beta")
	createTestWorkspace(t, engine, "Second")

	// Reading the first workspace's roots must not require opening it.
	views, err := engine.WorkspaceViews(ctx, first.ID)
	if err != nil {
		t.Fatalf("WorkspaceViews() error: %v", err)
	}
	if !sameStrings(viewNames(views), []string{"Alpha", "Beta"}) {
		t.Errorf("views = %v, want [Alpha Beta]", viewNames(views))
	}

	current, err := engine.CurrentWorkspace(ctx)
	if err != nil {
		t.Fatalf("CurrentWorkspace() error: %v", err)
	}
	if current.ID == first.ID {
		t.Error("WorkspaceViews() switched the open workspace")
	}
}

func TestWorkspaceSetting(t *testing.T) {
	engine, _, _ := newTestEngine(t, nil)
	ctx := context.Background()

	ws := createTestWorkspace(t, engine, "Workspace")

	setting, err := engine.WorkspaceSetting(ctx)
	if err != nil {
		t.Fatalf("WorkspaceSetting() error: %v", err)
	}
	if setting.Workspace.ID != ws.ID {
		t.Errorf("setting workspace = %s, want %s", setting.Workspace.ID, ws.ID)
	}
	if setting.LatestView != nil {
		t.Errorf("setting latest view = %v, want nil before any view is opened", setting.LatestView)
	}

	v := createTestView(t, engine, ws.ID, "View")
	if err := engine.SetCurrentView(ctx, v.ID); err != nil {
		t.Fatalf("SetCurrentView() error: %v", err)
	}

	setting, err = engine.WorkspaceSetting(ctx)
	if err != nil {
		t.Fatalf("WorkspaceSetting() error: %v", err)
	}
	if setting.LatestView == nil || setting.LatestView.ID != v.ID {
		t.Errorf("setting latest view = %v, want %s", setting.LatestView, v.ID)
	}
}
