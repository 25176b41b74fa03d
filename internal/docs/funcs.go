package docs

import (
	"errors"
	"fmt"
	"maps"
	"net/url"
	"strings"
	"text/template"
)

// maxRenderDepth bounds nested render_component calls.
const maxRenderDepth = 32

// funcs returns the helpers available to component, example, and
// documentation templates.
func (g *Generator) funcs() template.FuncMap {
	return template.FuncMap{
		"render_component": g.renderComponent,
		"dict":             dict,
		"cell":             cell,
		"pathescape":       url.PathEscape,
	}
}

// renderComponent renders a component with params layered over its
// declared defaults.
func (g *Generator) renderComponent(name string, params ...map[string]any) (string, error) {
	id, ok := g.componentTemplate(name)
	if !ok {
		return "", fmt.Errorf("unknown component %q", name)
	}

	if g.depth >= maxRenderDepth {
		return "", fmt.Errorf("component %q: nesting deeper than %d", name, maxRenderDepth)
	}
	g.depth++
	defer func() { g.depth-- }()

	data := make(map[string]any)
	if g.global != "" {
		data[g.global] = g.componentFuncs()
	}
	if def, ok := g.defs[name]; ok {
		maps.Copy(data, def.Defaults())
	}
	for _, p := range params {
		maps.Copy(data, p)
	}
	return g.engine.Render(id, data)
}

// componentTemplate resolves the template defining name. Extracted
// definitions take precedence over registry keys.
func (g *Generator) componentTemplate(name string) (string, bool) {
	if def, ok := g.defs[name]; ok {
		return def.Template, true
	}
	return g.registry.Lookup(name)
}

// componentFuncs binds every known component to a render function for the
// shorthand call syntax.
func (g *Generator) componentFuncs() map[string]any {
	names := make(map[string]struct{})
	for name := range g.registry.Components() {
		names[name] = struct{}{}
	}
	for name := range g.defs {
		names[name] = struct{}{}
	}

	bound := make(map[string]any, len(names))
	for name := range names {
		bound[name] = func(params ...map[string]any) (string, error) {
			return g.renderComponent(name, params...)
		}
	}
	return bound
}

// exampleData is the data examples are rendered with.
func (g *Generator) exampleData() map[string]any {
	data := make(map[string]any)
	if g.global != "" {
		data[g.global] = g.componentFuncs()
	}
	return data
}

// dict builds a map from alternating keys and values.
func dict(pairs ...any) (map[string]any, error) {
	if len(pairs)%2 != 0 {
		return nil, errors.New("dict needs an even number of arguments")
	}
	m := make(map[string]any, len(pairs)/2)
	for i := 0; i < len(pairs); i += 2 {
		key, ok := pairs[i].(string)
		if !ok {
			return nil, fmt.Errorf("dict key %v is not a string", pairs[i])
		}
		m[key] = pairs[i+1]
	}
	return m, nil
}

// cell escapes text for a Markdown table cell.
func cell(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	return strings.ReplaceAll(strings.TrimSpace(s), "\n", "<br>")
}
