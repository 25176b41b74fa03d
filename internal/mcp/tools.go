package mcp

import (
	"context"
	"errors"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/gorewood/compdocs/internal/component"
	"github.com/gorewood/compdocs/internal/docs"
)

// --- list_components ---

// ListInput is the input for list_components (no parameters).
type ListInput struct{}

// ComponentSummary is one row of list_components.
type ComponentSummary struct {
	Name        string `json:"name"                  jsonschema:"component name"`
	Template    string `json:"template"              jsonschema:"template the component is defined in"`
	Description string `json:"description,omitempty" jsonschema:"component description"`
	Parameters  int    `json:"parameters"            jsonschema:"number of declared parameters"`
	Required    int    `json:"required"              jsonschema:"number of parameters without a default"`
}

// ListOutput is the output of list_components.
type ListOutput struct {
	Count      int                   `json:"count"                jsonschema:"number of components"`
	Components []ComponentSummary    `json:"components"           jsonschema:"components sorted by name"`
	Duplicates []component.Duplicate `json:"duplicates,omitempty" jsonschema:"names defined more than once; the last definition wins"`
}

func handleList(load Loader) mcp.ToolHandlerFor[ListInput, ListOutput] {
	return func(_ context.Context, _ *mcp.CallToolRequest, _ ListInput) (*mcp.CallToolResult, ListOutput, error) {
		gen, err := load()
		if err != nil {
			return nil, ListOutput{}, fmt.Errorf("loading project: %w", err)
		}
		extractor, err := gen.Extract()
		if err != nil {
			return nil, ListOutput{}, err
		}

		out := ListOutput{
			Components: make([]ComponentSummary, 0),
			Duplicates: extractor.Duplicates(),
		}
		for _, def := range extractor.Sorted() {
			out.Components = append(out.Components, summarize(def))
		}
		out.Count = len(out.Components)
		return nil, out, nil
	}
}

// --- show_component ---

// ShowInput is the input for show_component.
type ShowInput struct {
	Name    string `json:"name"              jsonschema:"component name"`
	Generic bool   `json:"generic,omitempty" jsonschema:"leave the global variable shorthand out of the page"`
}

// ShowOutput is the output of show_component.
type ShowOutput struct {
	Component *component.Definition `json:"component"           jsonschema:"extracted definition"`
	Usage     string                `json:"usage"               jsonschema:"render_component invocation"`
	Shorthand string                `json:"shorthand,omitempty" jsonschema:"invocation through the global variable"`
	Page      string                `json:"page"                jsonschema:"rendered Markdown documentation page"`
}

func handleShow(load Loader) mcp.ToolHandlerFor[ShowInput, ShowOutput] {
	return func(_ context.Context, _ *mcp.CallToolRequest, input ShowInput) (*mcp.CallToolResult, ShowOutput, error) {
		if input.Name == "" {
			return nil, ShowOutput{}, errors.New("name is required")
		}

		gen, err := load()
		if err != nil {
			return nil, ShowOutput{}, fmt.Errorf("loading project: %w", err)
		}
		extractor, err := gen.Extract()
		if err != nil {
			return nil, ShowOutput{}, err
		}

		def, ok := extractor.Definitions()[input.Name]
		if !ok {
			return nil, ShowOutput{}, fmt.Errorf("component %q not found", input.Name)
		}
		page, err := gen.RenderPage(def, input.Generic)
		if err != nil {
			return nil, ShowOutput{}, err
		}

		out := ShowOutput{
			Component: def,
			Usage:     def.Invocation(""),
			Page:      page,
		}
		if !input.Generic && gen.Global() != "" {
			out.Shorthand = def.Invocation(gen.Global())
		}
		return nil, out, nil
	}
}

// --- generate_docs ---

// GenerateInput is the input for generate_docs.
type GenerateInput struct {
	Path    string `json:"path"              jsonschema:"existing output directory"`
	Title   string `json:"title,omitempty"   jsonschema:"documentation title (default: Template components)"`
	Generic bool   `json:"generic,omitempty" jsonschema:"leave the global variable shorthand out of component pages"`
	Strict  bool   `json:"strict,omitempty"  jsonschema:"fail when a component name is defined more than once"`
}

func handleGenerate(load Loader) mcp.ToolHandlerFor[GenerateInput, docs.Result] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input GenerateInput) (*mcp.CallToolResult, docs.Result, error) {
		if input.Path == "" {
			return nil, docs.Result{}, errors.New("path is required")
		}

		gen, err := load()
		if err != nil {
			return nil, docs.Result{}, fmt.Errorf("loading project: %w", err)
		}
		result, err := gen.Generate(ctx, docs.Options{
			Path:    input.Path,
			Title:   input.Title,
			Generic: input.Generic,
			Strict:  input.Strict,
		})
		if err != nil {
			return nil, docs.Result{}, err
		}
		return nil, *result, nil
	}
}

func summarize(def *component.Definition) ComponentSummary {
	summary := ComponentSummary{
		Name:        def.Name,
		Template:    def.Template,
		Description: def.Description,
		Parameters:  len(def.Parameters),
	}
	for _, param := range def.Parameters {
		if param.Required() {
			summary.Required++
		}
	}
	return summary
}
