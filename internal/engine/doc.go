// Package engine loads, parses, and renders Go text templates for compdocs.
//
// Template IDs are slash-separated paths inside the component file system
// ("components/alert.tmpl") or namespaced paths inside a mounted layer stack
// ("@docs/index.html.tmpl"). Namespaces are searched layer by layer, so a
// project can override a built-in template by shipping a file with the same
// name.
//
// Parsing and traversal are separate steps:
//
//	src, err := eng.Load("components/alert.tmpl")
//	tree, err := eng.Parse(src)
//	err = engine.Walk(tree, func(node parse.Node) error {
//		// inspect node
//		return nil
//	})
//
// Parse keeps comments in the tree and does not require template functions
// to be defined, so a tree can be inspected before any FuncMap is known.
// Render and RenderString execute templates with the functions registered
// through Funcs and fail on missing map keys.
package engine
