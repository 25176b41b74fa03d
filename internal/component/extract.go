package component

import (
	"fmt"
	"sort"
	"text/template"

	"github.com/gorewood/compdocs/internal/engine"
)

// Parser loads and parses template sources.
type Parser interface {
	Load(id string) (engine.Source, error)
	Parse(src engine.Source) (*engine.Tree, error)
}

// Catalog lists component templates by component name.
type Catalog interface {
	Components() map[string]string
}

// Extract parses every template in the catalog and collects its component
// definitions. Templates are visited in ascending component-name order, so
// duplicate names resolve the same way on every run. The first load, parse,
// or extraction failure aborts the whole pass. A template registered under
// several names is parsed once.
func Extract(parser Parser, catalog Catalog) (*Extractor, error) {
	templates := catalog.Components()
	names := make([]string, 0, len(templates))
	for name := range templates {
		names = append(names, name)
	}
	sort.Strings(names)

	extractor := NewExtractor()
	parsed := make(map[string]bool, len(names))
	for _, name := range names {
		id := templates[name]
		if parsed[id] {
			continue
		}
		parsed[id] = true

		src, err := parser.Load(id)
		if err != nil {
			return nil, fmt.Errorf("loading component %q: %w", name, err)
		}
		tree, err := parser.Parse(src)
		if err != nil {
			return nil, err
		}
		if err := engine.Walk(tree, extractor.Visitor(src)); err != nil {
			return nil, fmt.Errorf("extracting %s: %w", id, err)
		}
	}
	return extractor, nil
}

// Funcs returns the definition keywords as template functions that render
// nothing, so component templates can be executed as ordinary templates.
func Funcs() template.FuncMap {
	return template.FuncMap{
		Keyword: func(string, ...any) string { return "" },
		ParamKeyword: func(name string, _ ...any) Parameter {
			return Parameter{Name: name}
		},
		ExampleKeyword: func(title, source string) Example {
			return Example{Title: title, Source: source}
		},
	}
}
