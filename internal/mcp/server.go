// Package mcp provides a Model Context Protocol server for compdocs.
// It exposes component discovery and documentation generation as MCP tools.
package mcp

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/gorewood/compdocs/internal/docs"
)

// Loader builds a generator over the current project state. Tools call it
// on every request so edits to component templates are picked up.
type Loader func() (*docs.Generator, error)

// NewServer creates an MCP server with all compdocs tools registered.
func NewServer(version string, load Loader) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "compdocs",
		Version: version,
	}, nil)
	registerTools(server, load)
	return server
}

func boolPtr(b bool) *bool {
	return &b
}

// readOnlyAnnotations marks tools that only inspect templates.
func readOnlyAnnotations() *mcp.ToolAnnotations {
	return &mcp.ToolAnnotations{
		ReadOnlyHint:   true,
		IdempotentHint: true,
		OpenWorldHint:  boolPtr(false),
	}
}

// writeAnnotations marks tools that write documentation files. Rerunning
// them with the same input produces the same files.
func writeAnnotations() *mcp.ToolAnnotations {
	return &mcp.ToolAnnotations{
		DestructiveHint: boolPtr(false),
		IdempotentHint:  true,
		OpenWorldHint:   boolPtr(false),
	}
}

func registerTools(server *mcp.Server, load Loader) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_components",
		Description: "List every component defined in the project's templates with its template, description, and parameter count.",
		Annotations: readOnlyAnnotations(),
	}, handleList(load))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "show_component",
		Description: "Show one component's parameters, examples, usage snippets, and its rendered Markdown documentation page.",
		Annotations: readOnlyAnnotations(),
	}, handleShow(load))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "generate_docs",
		Description: "Generate the documentation site (index.html, _sidebar.md, README.md, components/*.md) into an existing directory.",
		Annotations: writeAnnotations(),
	}, handleGenerate(load))
}
