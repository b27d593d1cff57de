// Package mcpserver exposes the marketplace catalog as read-only MCP tools.
package mcpserver

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"reflect"

	"github.com/hashicorp/go-hclog"
	"github.com/mark3labs/mcp-go/server"

	"github.com/mozilla-ai/mcpmarket/internal/cmd"
	"github.com/mozilla-ai/mcpmarket/internal/contracts"
)

// Server wraps the mcp-go server with the catalog tools registered.
type Server struct {
	logger    hclog.Logger
	catalog   contracts.CatalogReader
	mcpServer *server.MCPServer
}

// NewServer creates an MCP server serving the supplied catalog.
func NewServer(logger hclog.Logger, catalog contracts.CatalogReader) (*Server, error) {
	if logger == nil {
		return nil, fmt.Errorf("logger cannot be nil")
	}
	if catalog == nil || reflect.ValueOf(catalog).IsNil() {
		return nil, fmt.Errorf("catalog cannot be nil")
	}

	s := &Server{
		logger:  logger.Named("mcp"),
		catalog: catalog,
		mcpServer: server.NewMCPServer(
			cmd.AppName,
			cmd.Version(),
			server.WithToolCapabilities(false),
			server.WithRecovery(),
			server.WithInstructions(
				"MCP marketplace catalog: search, browse and inspect MCP servers that can be installed into a host application.",
			),
		),
	}
	s.registerTools()

	return s, nil
}

// ServeStdio serves MCP over the supplied reader and writer until ctx is done or the input is closed.
func (s *Server) ServeStdio(ctx context.Context, in io.Reader, out io.Writer) error {
	s.logger.Info("Serving catalog over stdio", "version", s.catalog.Version())

	stdio := server.NewStdioServer(s.mcpServer)
	stdio.SetErrorLogger(s.logger.StandardLogger(&hclog.StandardLoggerOptions{InferLevels: true}))

	return stdio.Listen(ctx, in, out)
}

// Handler returns an http.Handler serving MCP over the streamable HTTP transport.
func (s *Server) Handler() http.Handler {
	return server.NewStreamableHTTPServer(s.mcpServer)
}
