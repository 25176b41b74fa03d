// Package component extracts component definitions from parsed templates.
//
// A component template declares itself with a component action:
//
//	{{/* Displays a contextual feedback message. */}}
//	{{component "alert"
//		(param "title" "string" "Heading shown in bold")
//		(param "type" "string" "Visual style" "info")
//		(example "Basic" `{{render_component "alert" (dict "title" "Saved")}}`)}}
//
// The comment directly above the action becomes the description. Parameters
// take a name, an optional type hint, an optional description, and an
// optional default literal. A parameter without a default is required.
package component

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// Template keywords recognized by the extractor.
const (
	Keyword        = "component"
	ParamKeyword   = "param"
	ExampleKeyword = "example"
)

// Parameter is a declared component parameter.
type Parameter struct {
	Name        string `json:"name"                  jsonschema:"parameter name"`
	Type        string `json:"type,omitempty"        jsonschema:"type hint"`
	Description string `json:"description,omitempty" jsonschema:"parameter description"`
	Default     any    `json:"default,omitempty"     jsonschema:"default value"`
	HasDefault  bool   `json:"has_default"           jsonschema:"whether a default is declared"`
}

// Required reports whether the parameter has no default.
func (p Parameter) Required() bool {
	return !p.HasDefault
}

// DefaultLiteral returns the default formatted as a template literal.
// Returns an empty string when no default is declared.
func (p Parameter) DefaultLiteral() string {
	if !p.HasDefault {
		return ""
	}
	return literal(p.Default)
}

// Example is a usage snippet declared alongside a component.
type Example struct {
	Title  string `json:"title"  jsonschema:"example title"`
	Source string `json:"source" jsonschema:"template source of the example"`
}

// Definition is the metadata extracted for one component.
type Definition struct {
	Name        string      `json:"name"                  jsonschema:"component name"`
	Description string      `json:"description,omitempty" jsonschema:"doc comment above the component action"`
	Template    string      `json:"template"              jsonschema:"template id the definition was read from"`
	Parameters  []Parameter `json:"parameters,omitempty"  jsonschema:"declared parameters in order"`
	Examples    []Example   `json:"examples,omitempty"    jsonschema:"declared examples"`
}

// Parameter returns the declared parameter with the given name.
func (d *Definition) Parameter(name string) (Parameter, bool) {
	for _, param := range d.Parameters {
		if param.Name == name {
			return param, true
		}
	}
	return Parameter{}, false
}

// Defaults returns the declared default values keyed by parameter name.
func (d *Definition) Defaults() map[string]any {
	defaults := make(map[string]any)
	for _, param := range d.Parameters {
		if param.HasDefault {
			defaults[param.Name] = param.Default
		}
	}
	return defaults
}

// Invocation returns the template action that renders the component. With an
// empty global it uses render_component; otherwise it calls the component
// through the global variable. Parameters without a default get a
// placeholder value.
func (d *Definition) Invocation(global string) string {
	var b strings.Builder
	if global == "" {
		b.WriteString("{{render_component ")
		b.WriteString(strconv.Quote(d.Name))
	} else {
		b.WriteString("{{call ")
		b.WriteString(globalField(global, d.Name))
	}

	if len(d.Parameters) > 0 {
		b.WriteString(" (dict")
		for _, param := range d.Parameters {
			b.WriteString(" ")
			b.WriteString(strconv.Quote(param.Name))
			b.WriteString(" ")
			if param.HasDefault {
				b.WriteString(literal(param.Default))
			} else {
				b.WriteString(placeholder(param))
			}
		}
		b.WriteString(")")
	}

	b.WriteString("}}")
	return b.String()
}

// globalField returns the expression that selects a component from the
// global variable. Names that are not identifiers go through index.
func globalField(global, name string) string {
	if isIdentifier(name) {
		return "." + global + "." + name
	}
	return "(index ." + global + " " + strconv.Quote(name) + ")"
}

func isIdentifier(name string) bool {
	if name == "" {
		return false
	}
	for i, r := range name {
		if r == '_' || unicode.IsLetter(r) || (i > 0 && unicode.IsDigit(r)) {
			continue
		}
		return false
	}
	return true
}

// placeholder returns an example value for a required parameter.
func placeholder(param Parameter) string {
	switch strings.ToLower(param.Type) {
	case "int", "integer", "number", "float":
		return "0"
	case "bool", "boolean":
		return "false"
	default:
		return strconv.Quote("<" + param.Name + ">")
	}
}

// literal formats a default value the way it would be written in a template.
func literal(value any) string {
	switch v := value.(type) {
	case nil:
		return "nil"
	case string:
		return strconv.Quote(v)
	case bool:
		return strconv.FormatBool(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	default:
		return strconv.Quote(fmt.Sprint(v))
	}
}
