package component

import (
	"fmt"
	"sort"
	"strings"
	"text/template/parse"

	"github.com/gorewood/compdocs/internal/engine"
)

// Duplicate records a component name declared more than once. The winning
// definition is the last one observed.
type Duplicate struct {
	Name     string `json:"name"     jsonschema:"component name"`
	Replaced string `json:"replaced" jsonschema:"template id of the discarded definition"`
	Winner   string `json:"winner"   jsonschema:"template id of the kept definition"`
}

// Extractor accumulates component definitions while trees are walked.
// It only reads nodes and never changes the tree.
type Extractor struct {
	definitions map[string]*Definition
	duplicates  []Duplicate
	source      string
	pending     *parse.CommentNode
}

// NewExtractor creates an empty Extractor.
func NewExtractor() *Extractor {
	return &Extractor{definitions: make(map[string]*Definition)}
}

// Visitor returns a walk function that attributes definitions to src.
func (x *Extractor) Visitor(src engine.Source) engine.WalkFunc {
	x.source = src.Code
	x.pending = nil
	return func(node parse.Node) error {
		return x.Observe(src.ID, node)
	}
}

// Observe inspects a single node. Component actions are recorded under
// their declared name, replacing any earlier definition with that name.
// A comment directly above a component action becomes its description.
func (x *Extractor) Observe(templateID string, node parse.Node) error {
	switch n := node.(type) {
	case *parse.CommentNode:
		x.pending = n
		return nil
	case *parse.TextNode:
		if len(strings.TrimSpace(string(n.Text))) > 0 {
			x.pending = nil
		}
		return nil
	case *parse.ListNode:
		// A new list starts a new block or {{define}} body.
		x.pending = nil
		return nil
	case *parse.ActionNode:
		description := x.description(n)
		x.pending = nil
		def, err := definitionFromAction(n)
		if err != nil || def == nil {
			return err
		}
		def.Description = description
		def.Template = templateID
		x.record(def)
		return nil
	default:
		x.pending = nil
		return nil
	}
}

// description returns the pending comment text when only whitespace and
// action delimiters separate the comment from action in the source. An
// {{end}}, {{else}} or {{define}} in between detaches the comment.
func (x *Extractor) description(action *parse.ActionNode) string {
	if x.pending == nil {
		return ""
	}
	if x.source == "" {
		return commentText(x.pending.Text)
	}

	start := int(x.pending.Position()) + len(x.pending.Text)
	end := int(action.Position())
	if start > end || end > len(x.source) {
		return ""
	}
	if strings.TrimSpace(delimiters.Replace(x.source[start:end])) != "" {
		return ""
	}
	return commentText(x.pending.Text)
}

var delimiters = strings.NewReplacer("{{", "", "}}", "", "-", "")

// Definitions returns the accumulated definitions keyed by name.
func (x *Extractor) Definitions() map[string]*Definition {
	return x.definitions
}

// Sorted returns the definitions in ascending name order.
func (x *Extractor) Sorted() []*Definition {
	names := x.Names()
	defs := make([]*Definition, 0, len(names))
	for _, name := range names {
		defs = append(defs, x.definitions[name])
	}
	return defs
}

// Names returns the defined component names in ascending order.
func (x *Extractor) Names() []string {
	names := make([]string, 0, len(x.definitions))
	for name := range x.definitions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Duplicates returns every replaced definition in observation order.
func (x *Extractor) Duplicates() []Duplicate {
	return x.duplicates
}

func (x *Extractor) record(def *Definition) {
	if prev, ok := x.definitions[def.Name]; ok {
		x.duplicates = append(x.duplicates, Duplicate{
			Name:     def.Name,
			Replaced: prev.Template,
			Winner:   def.Template,
		})
	}
	x.definitions[def.Name] = def
}

// commentText strips comment delimiters and per-line indentation.
func commentText(raw string) string {
	text := strings.TrimSuffix(strings.TrimPrefix(raw, "/*"), "*/")
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

// definitionFromAction returns the definition declared by a component
// action, or nil when the action is something else.
func definitionFromAction(action *parse.ActionNode) (*Definition, error) {
	pipe := action.Pipe
	if pipe == nil || len(pipe.Cmds) == 0 || !isCall(pipe.Cmds[0], Keyword) {
		return nil, nil
	}
	if len(pipe.Cmds) > 1 || len(pipe.Decl) > 0 {
		return nil, fmt.Errorf("%s action must stand alone", Keyword)
	}

	args := pipe.Cmds[0].Args[1:]
	if len(args) == 0 {
		return nil, fmt.Errorf("%s action needs a name", Keyword)
	}
	name, ok := args[0].(*parse.StringNode)
	if !ok {
		return nil, fmt.Errorf("%s name must be a string literal, got %s", Keyword, args[0])
	}
	if name.Text == "" {
		return nil, fmt.Errorf("%s name must not be empty", Keyword)
	}

	def := &Definition{Name: name.Text, Parameters: []Parameter{}}
	for _, arg := range args[1:] {
		if err := addArgument(def, arg); err != nil {
			return nil, fmt.Errorf("component %q: %w", def.Name, err)
		}
	}
	return def, nil
}

// addArgument decodes one parenthesized param or example call.
func addArgument(def *Definition, arg parse.Node) error {
	pipe, ok := arg.(*parse.PipeNode)
	if !ok || len(pipe.Cmds) != 1 || len(pipe.Decl) > 0 {
		return fmt.Errorf("unexpected argument %s", arg)
	}
	cmd := pipe.Cmds[0]

	switch {
	case isCall(cmd, ParamKeyword):
		param, err := parameterFromArgs(cmd.Args[1:])
		if err != nil {
			return err
		}
		if _, exists := def.Parameter(param.Name); exists {
			return fmt.Errorf("parameter %q declared twice", param.Name)
		}
		def.Parameters = append(def.Parameters, param)
	case isCall(cmd, ExampleKeyword):
		example, err := exampleFromArgs(cmd.Args[1:])
		if err != nil {
			return err
		}
		def.Examples = append(def.Examples, example)
	default:
		return fmt.Errorf("unexpected argument %s", arg)
	}
	return nil
}

// parameterFromArgs decodes: name [type [description [default]]].
func parameterFromArgs(args []parse.Node) (Parameter, error) {
	if len(args) == 0 || len(args) > 4 {
		return Parameter{}, fmt.Errorf("%s takes a name, type, description, and default", ParamKeyword)
	}

	fields := make([]string, 3)
	for i, arg := range args[:min(len(args), 3)] {
		str, ok := arg.(*parse.StringNode)
		if !ok {
			return Parameter{}, fmt.Errorf("%s argument %s must be a string literal", ParamKeyword, arg)
		}
		fields[i] = str.Text
	}
	if fields[0] == "" {
		return Parameter{}, fmt.Errorf("%s name must not be empty", ParamKeyword)
	}

	param := Parameter{Name: fields[0], Type: fields[1], Description: fields[2]}
	if len(args) == 4 {
		value, err := literalValue(args[3])
		if err != nil {
			return Parameter{}, fmt.Errorf("%s %q: %w", ParamKeyword, param.Name, err)
		}
		param.Default = value
		param.HasDefault = true
	}
	return param, nil
}

// exampleFromArgs decodes: title source.
func exampleFromArgs(args []parse.Node) (Example, error) {
	if len(args) != 2 {
		return Example{}, fmt.Errorf("%s takes a title and a source", ExampleKeyword)
	}
	title, ok := args[0].(*parse.StringNode)
	if !ok {
		return Example{}, fmt.Errorf("%s title must be a string literal", ExampleKeyword)
	}
	source, ok := args[1].(*parse.StringNode)
	if !ok {
		return Example{}, fmt.Errorf("%s source must be a string literal", ExampleKeyword)
	}
	return Example{Title: title.Text, Source: source.Text}, nil
}

// literalValue converts a literal node into a Go value.
func literalValue(node parse.Node) (any, error) {
	switch n := node.(type) {
	case *parse.StringNode:
		return n.Text, nil
	case *parse.BoolNode:
		return n.True, nil
	case *parse.NilNode:
		return nil, nil
	case *parse.NumberNode:
		switch {
		case n.IsInt:
			return n.Int64, nil
		case n.IsFloat:
			return n.Float64, nil
		default:
			return nil, fmt.Errorf("unsupported number %s", n.Text)
		}
	default:
		return nil, fmt.Errorf("default must be a literal, got %s", node)
	}
}

// isCall reports whether cmd starts with the identifier name.
func isCall(cmd *parse.CommandNode, name string) bool {
	if cmd == nil || len(cmd.Args) == 0 {
		return false
	}
	ident, ok := cmd.Args[0].(*parse.IdentifierNode)
	return ok && ident.Ident == name
}
