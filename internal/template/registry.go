// Package template provides ready-made view hierarchies for seeding new
// workspaces. Templates are YAML files compiled into the binary.
package template

import (
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed templates/*.yaml
var templateFiles embed.FS

// Template seeds a new workspace with a view hierarchy.
type Template struct {
	Name        string     `yaml:"name" json:"name"`
	Description string     `yaml:"description" json:"description"`
	Views       []ViewSpec `yaml:"views" json:"views"`
}

// ViewSpec is one view in a template hierarchy.
type ViewSpec struct {
	Name     string     `yaml:"name" json:"name"`
	Icon     string     `yaml:"icon" json:"icon"`
	Children []ViewSpec `yaml:"children" json:"children,omitempty"`
}

// Registry holds the workspace templates by name
type Registry struct {
	templates map[string]*Template
	order     []string
	mu        sync.RWMutex
}

// NewRegistry creates a new template registry and loads embedded YAML files
func NewRegistry() (*Registry, error) {
	r := &Registry{
		templates: make(map[string]*Template),
	}

	names, err := fs.Glob(templateFiles, "templates/*.yaml")
	if err != nil {
		return nil, fmt.Errorf("failed to glob templates: %w", err)
	}
	sort.Strings(names)

	for _, filename := range names {
		if err := r.loadTemplateFile(filename); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// loadTemplateFile loads one template YAML file
func (r *Registry) loadTemplateFile(filename string) error {
	data, err := templateFiles.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", filename, err)
	}

	var tpl Template
	if err := yaml.Unmarshal(data, &tpl); err != nil {
		return fmt.Errorf("failed to unmarshal %s: %w", filename, err)
	}
	if tpl.Name == "" {
		return fmt.Errorf("template %s has no name", filename)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.templates[tpl.Name]; exists {
		return fmt.Errorf("duplicate template name %q in %s", tpl.Name, filename)
	}
	r.templates[tpl.Name] = &tpl
	r.order = append(r.order, tpl.Name)
	return nil
}

// Get returns the template with the given name
func (r *Registry) Get(name string) (*Template, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tpl, ok := r.templates[name]
	if !ok {
		return nil, fmt.Errorf("unknown template: %s", name)
	}
	return tpl, nil
}

// List returns all templates in load order
func (r *Registry) List() []Template {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Template, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, *r.templates[name])
	}
	return out
}
