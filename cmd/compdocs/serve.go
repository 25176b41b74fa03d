package main

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	"github.com/gorewood/compdocs/internal/docs"
	compdocsmcp "github.com/gorewood/compdocs/internal/mcp"
)

// newServeCmd creates the serve command for running as an MCP server.
func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run as MCP server (stdio transport)",
		Long: `Run compdocs as a Model Context Protocol (MCP) server over stdio.

The project is reloaded on every tool call, so template edits are visible
without restarting the server.

Configure in your agent's MCP settings:
  {
    "mcpServers": {
      "compdocs": {
        "command": "compdocs",
        "args": ["serve"]
      }
    }
  }

Available tools: list_components, show_component, generate_docs`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			server := compdocsmcp.NewServer(buildVersion(), workspaceLoader(cmd))
			return server.Run(cmd.Context(), &mcp.StdioTransport{})
		},
	}
}

// workspaceLoader adapts loadWorkspace to the MCP server's loader.
func workspaceLoader(cmd *cobra.Command) compdocsmcp.Loader {
	return func() (*docs.Generator, error) {
		ws, err := loadWorkspace(cmd)
		if err != nil {
			return nil, err
		}
		return ws.generator, nil
	}
}
