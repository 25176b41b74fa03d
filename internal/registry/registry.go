// Package registry maps component names to the templates that define them.
package registry

import (
	"errors"
	"fmt"
	"io/fs"
	"maps"
	"path"
	"sort"
	"strings"
)

// Registry is an immutable component name → template ID mapping.
type Registry struct {
	components map[string]string
}

// New creates a Registry from a name → template ID map. The map is copied.
func New(components map[string]string) *Registry {
	return &Registry{components: maps.Clone(components)}
}

// Components returns a copy of the name → template ID mapping.
func (r *Registry) Components() map[string]string {
	if r.components == nil {
		return map[string]string{}
	}
	return maps.Clone(r.components)
}

// Names returns the component names in ascending order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.components))
	for name := range r.components {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Lookup returns the template ID registered for name.
func (r *Registry) Lookup(name string) (string, bool) {
	id, ok := r.components[name]
	return id, ok
}

// Len returns the number of registered components.
func (r *Registry) Len() int {
	return len(r.components)
}

// Discover walks dirs in fsys and registers every file with the given
// extension under its base name. Two files with the same base name are an
// error. Missing directories are skipped.
func Discover(fsys fs.FS, dirs []string, ext string) (map[string]string, error) {
	found := make(map[string]string)
	for _, dir := range dirs {
		dir = path.Clean(strings.TrimPrefix(dir, "./"))
		if _, err := fs.Stat(fsys, dir); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, fmt.Errorf("reading component directory %s: %w", dir, err)
		}

		err := fs.WalkDir(fsys, dir, func(p string, entry fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if entry.IsDir() || !strings.HasSuffix(entry.Name(), ext) {
				return nil
			}
			name := strings.TrimSuffix(entry.Name(), ext)
			if prev, exists := found[name]; exists && prev != p {
				return fmt.Errorf("component %q is provided by both %s and %s", name, prev, p)
			}
			found[name] = p
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("discovering components in %s: %w", dir, err)
		}
	}
	return found, nil
}

// Build combines discovered templates with explicit entries. Explicit
// entries take precedence over discovered ones with the same name.
func Build(fsys fs.FS, explicit map[string]string, dirs []string, ext string) (*Registry, error) {
	components, err := Discover(fsys, dirs, ext)
	if err != nil {
		return nil, err
	}
	for name, id := range explicit {
		if name == "" {
			return nil, fmt.Errorf("component for template %s has an empty name", id)
		}
		components[name] = path.Clean(strings.TrimPrefix(id, "./"))
	}
	return New(components), nil
}
