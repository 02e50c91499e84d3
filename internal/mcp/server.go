// ABOUTME: MCP server implementation for threatwire
// ABOUTME: Exposes the article stream and saved list to AI agents over stdio

package mcp

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/harper/threatwire/internal/aggregate"
	"github.com/harper/threatwire/internal/store"
)

// Server wraps the MCP server with threatwire-specific context
type Server struct {
	mcpServer  *server.MCPServer
	aggregator *aggregate.Aggregator
	store      store.Store
}

// NewServer creates a new MCP server instance
func NewServer(aggregator *aggregate.Aggregator, st store.Store) *Server {
	s := &Server{
		aggregator: aggregator,
		store:      st,
	}

	s.mcpServer = server.NewMCPServer(
		"threatwire",
		"1.0.0",
		server.WithToolCapabilities(true),
	)

	s.registerTools()

	return s
}

// ServeStdio starts the MCP server on stdio
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}
