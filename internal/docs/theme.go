package docs

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Namespace is the engine namespace holding the documentation templates.
const Namespace = "docs"

// TemplateSuffix is stripped from a documentation template name to get the
// name of the file it produces.
const TemplateSuffix = ".tmpl"

// Documentation templates rendered by the generator.
const (
	IndexTemplate     = "index.html.tmpl"
	SidebarTemplate   = "_sidebar.md.tmpl"
	ComponentTemplate = "component.md.tmpl"
)

// ProjectTemplatesDir is the project-local override directory, relative to
// the project root.
const ProjectTemplatesDir = ".compdocs/templates"

// ProjectReadmeFile replaces the bundled README when present, relative to
// the project root.
const ProjectReadmeFile = ".compdocs/README.md"

//go:embed templates/*.tmpl
var builtinFS embed.FS

//go:embed README.md
var defaultReadme []byte

// Builtin returns the embedded documentation templates.
func Builtin() fs.FS {
	sub, err := fs.Sub(builtinFS, "templates")
	if err != nil {
		panic(err) // embedded directory is fixed at build time
	}
	return sub
}

// DefaultReadme returns the README copied into new documentation roots.
func DefaultReadme() []byte {
	return append([]byte(nil), defaultReadme...)
}

// ProjectReadme returns the README for new documentation roots of the
// project in projectDir, falling back to DefaultReadme.
func ProjectReadme(projectDir string) ([]byte, error) {
	data, err := os.ReadFile(filepath.Join(projectDir, ProjectReadmeFile))
	if errors.Is(err, fs.ErrNotExist) {
		return DefaultReadme(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading project README: %w", err)
	}
	return data, nil
}

// TemplateLayers returns the documentation template lookup order:
//  1. <projectDir>/.compdocs/templates (project-local)
//  2. userDir (per-user, usually config.TemplatesDir())
//  3. built-in templates
//
// Directories that do not exist are left out.
func TemplateLayers(projectDir, userDir string) []fs.FS {
	var layers []fs.FS
	for _, dir := range []string{filepath.Join(projectDir, ProjectTemplatesDir), userDir} {
		if dir == "" {
			continue
		}
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			layers = append(layers, os.DirFS(dir))
		}
	}
	return append(layers, Builtin())
}

// templateID returns the engine ID of a documentation template.
func templateID(name string) string {
	return "@" + Namespace + "/" + name
}
