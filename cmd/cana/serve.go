package main

import (
	"fmt"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	"github.com/canaworld/cana/internal/mcp"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the story bible over MCP on stdio",
		Long:  "Exposes the bible's read and mutation tools to MCP clients over stdin/stdout.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDeps(cmd.Context(), func(d *Deps) error {
				server := mcp.NewServer(d.Bible, d.Log, version)
				d.Log.Info("mcp server listening on stdio")
				if err := server.Run(cmd.Context(), &sdk.StdioTransport{}); err != nil {
					return fmt.Errorf("mcp server: %w", err)
				}
				return nil
			})
		},
	}
}
