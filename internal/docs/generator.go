package docs

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/gorewood/compdocs/internal/component"
	"github.com/gorewood/compdocs/internal/engine"
	"github.com/gorewood/compdocs/internal/logger"
)

// DefaultTitle is used when no title is given.
const DefaultTitle = "Template components"

// ComponentsDir is the output subdirectory holding one page per component.
const ComponentsDir = "components"

// Registry resolves component names to template IDs.
type Registry interface {
	Components() map[string]string
	Lookup(name string) (string, bool)
}

// Options controls a single Generate run.
type Options struct {
	// Path is the output root. It must be an existing directory.
	Path string
	// Title is shown on the index and sidebar; DefaultTitle when empty.
	Title string
	// Generic leaves the global variable out of component pages.
	Generic bool
	// Strict fails the run when a component name is defined twice.
	Strict bool
}

// Result describes what a Generate run wrote.
type Result struct {
	Path         string                `json:"path"`
	Components   []string              `json:"components"`
	Files        []string              `json:"files"`
	ReadmeCopied bool                  `json:"readme_copied"`
	Duplicates   []component.Duplicate `json:"duplicates,omitempty"`
}

// IndexData is passed to the index and sidebar templates.
type IndexData struct {
	Title      string
	Components []string
}

// PageData is passed to the component page template.
type PageData struct {
	Component  string
	Definition *component.Definition
	Template   string
	// Global is the global variable name, empty for generic pages.
	Global    string
	Usage     string
	Shorthand string
	Examples  []RenderedExample
}

// RenderedExample is a declared example together with its output.
type RenderedExample struct {
	Title  string
	Source string
	Output string
}

// Generator renders documentation for every component in a registry.
type Generator struct {
	registry Registry
	engine   *engine.Engine
	global   string
	readme   []byte
	log      *zap.SugaredLogger
	defs     map[string]*component.Definition
	depth    int
}

// Option configures a Generator.
type Option func(*Generator)

// WithGlobal sets the global variable name shown in shorthand examples.
func WithGlobal(name string) Option {
	return func(g *Generator) { g.global = name }
}

// WithReadme replaces the README copied into new documentation roots.
func WithReadme(data []byte) Option {
	return func(g *Generator) { g.readme = data }
}

// WithLogger sets the diagnostics logger.
func WithLogger(log *zap.SugaredLogger) Option {
	return func(g *Generator) { g.log = log }
}

// WithTemplateLayers sets where documentation templates are looked up.
// Defaults to the built-in templates only.
func WithTemplateLayers(layers ...fs.FS) Option {
	return func(g *Generator) { g.engine.Mount(Namespace, layers...) }
}

// NewGenerator creates a Generator. It registers the component keywords and
// the documentation helpers on eng and mounts the documentation templates.
func NewGenerator(reg Registry, eng *engine.Engine, opts ...Option) *Generator {
	g := &Generator{
		registry: reg,
		engine:   eng,
		global:   "component",
		readme:   DefaultReadme(),
		log:      logger.Nop(),
		defs:     map[string]*component.Definition{},
	}
	eng.Mount(Namespace, Builtin())
	for _, opt := range opts {
		opt(g)
	}

	eng.Funcs(component.Funcs())
	eng.Funcs(g.funcs())
	return g
}

// Global returns the configured global variable name.
func (g *Generator) Global() string {
	return g.global
}

// Extract parses every registered template and returns the definitions.
// The definitions also back render_component for later renders.
func (g *Generator) Extract() (*component.Extractor, error) {
	extractor, err := component.Extract(g.engine, g.registry)
	if err != nil {
		return nil, err
	}
	for _, dup := range extractor.Duplicates() {
		g.log.Warnw("component defined more than once; keeping the last definition",
			logger.FieldComponent, dup.Name,
			"replaced", dup.Replaced,
			"winner", dup.Winner)
	}
	g.defs = extractor.Definitions()
	g.log.Debugw("extracted component definitions", logger.FieldCount, len(g.defs))
	return extractor, nil
}

// Generate writes the documentation site into opts.Path.
//
// Every definition is extracted before anything is rendered. The README is
// only written when absent; all other pages are overwritten.
func (g *Generator) Generate(ctx context.Context, opts Options) (*Result, error) {
	title := opts.Title
	if title == "" {
		title = DefaultTitle
	}

	info, err := os.Stat(opts.Path)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrPathNotFound, opts.Path)
	}

	componentsDir := filepath.Join(opts.Path, ComponentsDir)
	if err := os.MkdirAll(componentsDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating components directory: %w", err)
	}

	extractor, err := g.Extract()
	if err != nil {
		return nil, err
	}
	result := &Result{
		Path:       opts.Path,
		Components: extractor.Names(),
		Duplicates: extractor.Duplicates(),
	}
	if opts.Strict && len(result.Duplicates) > 0 {
		dup := result.Duplicates[0]
		return nil, fmt.Errorf("%w: %q in %s and %s", ErrDuplicateDefinition, dup.Name, dup.Replaced, dup.Winner)
	}
	for _, name := range result.Components {
		if err := checkFileName(name); err != nil {
			return nil, err
		}
	}

	copied, err := g.ensureReadme(opts.Path)
	if err != nil {
		return nil, err
	}
	result.ReadmeCopied = copied
	if copied {
		result.Files = append(result.Files, "README.md")
	}

	index := IndexData{Title: title, Components: result.Components}
	for _, name := range []string{IndexTemplate, SidebarTemplate} {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		out, err := g.engine.Render(templateID(name), index)
		if err != nil {
			return nil, err
		}
		file := strings.TrimSuffix(name, TemplateSuffix)
		if err := g.write(opts.Path, file, out); err != nil {
			return nil, err
		}
		result.Files = append(result.Files, file)
	}

	for _, def := range extractor.Sorted() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		out, err := g.RenderPage(def, opts.Generic)
		if err != nil {
			return nil, err
		}
		file := filepath.ToSlash(filepath.Join(ComponentsDir, def.Name+".md"))
		if err := g.write(opts.Path, file, out); err != nil {
			return nil, err
		}
		result.Files = append(result.Files, file)
	}

	return result, nil
}

// RenderPage renders the documentation page of one component.
func (g *Generator) RenderPage(def *component.Definition, generic bool) (string, error) {
	page := PageData{
		Component:  def.Name,
		Definition: def,
		Template:   def.Template,
		Usage:      def.Invocation(""),
	}
	if !generic && g.global != "" {
		page.Global = g.global
		page.Shorthand = def.Invocation(g.global)
	}

	for i, example := range def.Examples {
		name := fmt.Sprintf("%s example %d", def.Name, i+1)
		out, err := g.engine.RenderString(name, example.Source, g.exampleData())
		if err != nil {
			return "", fmt.Errorf("component %q example %q: %w", def.Name, example.Title, err)
		}
		source := example.Source
		if generic {
			source = genericSource(source, g.global)
		}
		page.Examples = append(page.Examples, RenderedExample{
			Title:  example.Title,
			Source: strings.TrimSpace(source),
			Output: strings.TrimSpace(out),
		})
	}

	return g.engine.Render(templateID(ComponentTemplate), page)
}

// genericSource rewrites shorthand calls through the global variable into
// the equivalent render_component calls.
func genericSource(source, global string) string {
	if global == "" {
		return source
	}
	shorthand := regexp.MustCompile(`\bcall\s+\.` + regexp.QuoteMeta(global) + `\.([A-Za-z_][A-Za-z0-9_]*)`)
	return shorthand.ReplaceAllString(source, `render_component "${1}"`)
}

// ensureReadme copies the bundled README unless one already exists.
func (g *Generator) ensureReadme(root string) (bool, error) {
	path := filepath.Join(root, "README.md")
	if _, err := os.Lstat(path); err == nil {
		g.log.Debugw("keeping existing README", logger.FieldFile, path)
		return false, nil
	} else if !os.IsNotExist(err) {
		return false, fmt.Errorf("checking README: %w", err)
	}

	if err := os.WriteFile(path, g.readme, 0o644); err != nil {
		return false, fmt.Errorf("writing README: %w", err)
	}
	g.log.Debugw("copied default README", logger.FieldFile, path)
	return true, nil
}

// write stores content at root/file.
func (g *Generator) write(root, file, content string) error {
	path := filepath.Join(root, filepath.FromSlash(file))
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", file, err)
	}
	g.log.Debugw("wrote page", logger.FieldFile, path)
	return nil
}

// checkFileName rejects component names that would escape the components
// directory or cannot be written as a single file name.
func checkFileName(name string) error {
	if name == "." || name == ".." || strings.ContainsAny(name, `/\`) || strings.ContainsRune(name, 0) {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return nil
}
