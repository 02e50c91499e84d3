// ABOUTME: MCP command exposing the aggregator over stdio
// ABOUTME: Lets MCP clients fetch, filter, and manage saved articles

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/harper/threatwire/internal/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run as an MCP server",
	Long: `Run threatwire as a Model Context Protocol server over stdio.

Exposes tools for fetching the aggregated stream, listing sources, and
managing saved articles. Configure your MCP client to run 'threatwire mcp'.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		server := mcp.NewServer(aggregator, savedStore)
		if err := server.ServeStdio(); err != nil {
			return fmt.Errorf("MCP server error: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
