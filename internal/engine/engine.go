package engine

import (
	"errors"
	"fmt"
	"io/fs"
	"maps"
	"sort"
	"strings"
	"text/template"
	"text/template/parse"
)

// ErrTemplateNotFound is returned when no file system layer holds a template ID.
var ErrTemplateNotFound = errors.New("template not found")

// Source is the raw text of a loaded template.
type Source struct {
	ID   string
	Code string
}

// Tree is a parsed Source: the top-level tree followed by every
// {{define}} block ordered by position. Walk interleaves them.
type Tree struct {
	Source Source
	Trees  []*parse.Tree
}

// Engine loads templates from file systems and renders them.
type Engine struct {
	fsys       fs.FS
	namespaces map[string][]fs.FS
	funcs      template.FuncMap
}

// New creates an Engine that resolves plain template IDs against fsys.
func New(fsys fs.FS) *Engine {
	return &Engine{
		fsys:       fsys,
		namespaces: make(map[string][]fs.FS),
		funcs:      make(template.FuncMap),
	}
}

// Mount registers a namespace. IDs of the form "@namespace/path" are looked
// up in each layer in order; the first layer holding the path wins.
func (e *Engine) Mount(namespace string, layers ...fs.FS) {
	var kept []fs.FS
	for _, layer := range layers {
		if layer != nil {
			kept = append(kept, layer)
		}
	}
	e.namespaces[namespace] = kept
}

// Funcs adds functions available to Render and RenderString.
// Later registrations replace earlier ones with the same name.
func (e *Engine) Funcs(funcs template.FuncMap) {
	maps.Copy(e.funcs, funcs)
}

// Load reads the source of a template ID.
func (e *Engine) Load(id string) (Source, error) {
	layers, name, err := e.resolve(id)
	if err != nil {
		return Source{}, err
	}

	for _, layer := range layers {
		data, err := fs.ReadFile(layer, name)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return Source{}, fmt.Errorf("reading template %s: %w", id, err)
		}
		return Source{ID: id, Code: string(data)}, nil
	}

	return Source{}, fmt.Errorf("%w: %s", ErrTemplateNotFound, id)
}

// Parse builds the parse trees for a source. Comments are kept and function
// names are not checked.
func (e *Engine) Parse(src Source) (*Tree, error) {
	root := parse.New(src.ID)
	root.ParseName = src.ID
	root.Mode = parse.ParseComments | parse.SkipFuncCheck

	set := make(map[string]*parse.Tree)
	if _, err := root.Parse(src.Code, "", "", set); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", src.ID, err)
	}

	trees := make([]*parse.Tree, 0, len(set))
	for _, tree := range set {
		if tree.Root != nil {
			trees = append(trees, tree)
		}
	}
	sort.Slice(trees, func(i, j int) bool {
		if top := trees[i].Name == src.ID; top != (trees[j].Name == src.ID) {
			return top
		}
		pi, pj := trees[i].Root.Position(), trees[j].Root.Position()
		if pi != pj {
			return pi < pj
		}
		return trees[i].Name < trees[j].Name
	})

	return &Tree{Source: src, Trees: trees}, nil
}

// Render loads and executes a template ID with data.
func (e *Engine) Render(id string, data any) (string, error) {
	src, err := e.Load(id)
	if err != nil {
		return "", err
	}
	return e.RenderString(id, src.Code, data)
}

// RenderString parses code as a template called name and executes it.
func (e *Engine) RenderString(name, code string, data any) (string, error) {
	tmpl, err := template.New(name).
		Funcs(e.funcs).
		Option("missingkey=error").
		Parse(code)
	if err != nil {
		return "", fmt.Errorf("parsing %s: %w", name, err)
	}

	var out strings.Builder
	if err := tmpl.Execute(&out, data); err != nil {
		return "", fmt.Errorf("rendering %s: %w", name, err)
	}
	return out.String(), nil
}

// resolve maps a template ID to its file system layers and in-layer path.
func (e *Engine) resolve(id string) ([]fs.FS, string, error) {
	if rest, ok := strings.CutPrefix(id, "@"); ok {
		namespace, name, found := strings.Cut(rest, "/")
		if !found || !fs.ValidPath(name) {
			return nil, "", fmt.Errorf("invalid template id %q", id)
		}
		layers, ok := e.namespaces[namespace]
		if !ok {
			return nil, "", fmt.Errorf("unknown template namespace %q in %q", namespace, id)
		}
		return layers, name, nil
	}

	if !fs.ValidPath(id) {
		return nil, "", fmt.Errorf("invalid template id %q", id)
	}
	if e.fsys == nil {
		return nil, "", fmt.Errorf("%w: %s", ErrTemplateNotFound, id)
	}
	return []fs.FS{e.fsys}, id, nil
}
