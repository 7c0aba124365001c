package template

import (
	"strings"
	"testing"
)

func TestNewRegistry_LoadsEmbeddedTemplates(t *testing.T) {
	registry, err := NewRegistry()
	if err != nil {
		t.Fatalf("NewRegistry() error: %v", err)
	}

	templates := registry.List()
	if len(templates) != 2 {
		t.Fatalf("List() = %d templates, want 2", len(templates))
	}
	for i, want := range []string{"default", "getting-started"} {
		if templates[i].Name != want {
			t.Errorf("templates[%d] = %q, want %q", i, templates[i].Name, want)
		}
	}
	for _, tpl := range templates {
		if tpl.Description == "" {
			t.Errorf("template %q has no description", tpl.Name)
		}
	}
}

func TestRegistry_Get(t *testing.T) {
	registry, err := NewRegistry()
	if err != nil {
		t.Fatalf("NewRegistry() error: %v", err)
	}

	tpl, err := registry.Get("getting-started")
	if err != nil {
		t.Fatalf("Get(getting-started) error: %v", err)
	}
	if len(tpl.Views) != 2 {
		t.Fatalf("views = %d, want 2", len(tpl.Views))
	}
	if tpl.Views[0].Name != "Getting started" || tpl.Views[0].Icon != "⭐" {
		t.Errorf("first view = %q/%q, want Getting started/⭐", tpl.Views[0].Name, tpl.Views[0].Icon)
	}
	if len(tpl.Views[0].Children) != 2 {
		t.Fatalf("first view children = %d, want 2", len(tpl.Views[0].Children))
	}
	if tpl.Views[0].Children[0].Name != "Quick start" {
		t.Errorf("first child = %q, want Quick start", tpl.Views[0].Children[0].Name)
	}
	if tpl.Views[1].Name != "Shared" || len(tpl.Views[1].Children) != 1 {
		t.Errorf("second view = %q with %d children, want Shared with 1", tpl.Views[1].Name, len(tpl.Views[1].Children))
	}
}

func TestRegistry_GetDefault(t *testing.T) {
	registry, err := NewRegistry()
	if err != nil {
		t.Fatalf("NewRegistry() error: %v", err)
	}

	tpl, err := registry.Get("default")
	if err != nil {
		t.Fatalf("Get(default) error: %v", err)
	}
	if len(tpl.Views) != 1 || tpl.Views[0].Name != "General" {
		t.Errorf("views = %+v, want a single General view", tpl.Views)
	}
	if len(tpl.Views[0].Children) != 0 {
		t.Errorf("General has %d children, want none", len(tpl.Views[0].Children))
	}
}

func TestRegistry_GetUnknown(t *testing.T) {
	registry, err := NewRegistry()
	if err != nil {
		t.Fatalf("NewRegistry() error: %v", err)
	}

	_, err = registry.Get("nonexistent")
	if err == nil {
		t.Fatal("Get(nonexistent) succeeded, want error")
	}
	if !strings.Contains(err.Error(), "unknown template") {
		t.Errorf("error %q does not mention the unknown template", err)
	}
}
