package mcpserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	errs "github.com/mozilla-ai/mcpmarket/internal/errors"
	"github.com/mozilla-ai/mcpmarket/internal/packages"
	"github.com/mozilla-ai/mcpmarket/internal/registry"
)

const (
	ToolSearchServers  = "search_servers"
	ToolGetServer      = "get_server"
	ToolListCategories = "list_categories"
	ToolListServers    = "list_servers"
)

func (s *Server) registerTools() {
	readOnly := mcp.WithReadOnlyHintAnnotation(true)

	s.mcpServer.AddTool(mcp.NewTool(ToolSearchServers,
		mcp.WithDescription("Search the marketplace for MCP servers by name, description, author or tag (case-insensitive)"),
		mcp.WithString("query", mcp.Description("Text to search for"), mcp.Required()),
		mcp.WithNumber("limit", mcp.Description("Max results (default: all)")),
		readOnly,
	), s.handleSearchServers)

	s.mcpServer.AddTool(mcp.NewTool(ToolGetServer,
		mcp.WithDescription("Get the details of a marketplace MCP server by ID"),
		mcp.WithString("id", mcp.Description("Server ID, e.g. 'github'"), mcp.Required()),
		readOnly,
	), s.handleGetServer)

	s.mcpServer.AddTool(mcp.NewTool(ToolListCategories,
		mcp.WithDescription("List the marketplace categories"),
		readOnly,
	), s.handleListCategories)

	s.mcpServer.AddTool(mcp.NewTool(ToolListServers,
		mcp.WithDescription("List marketplace MCP servers, optionally filtered by category or verification and ranked by downloads or rating"),
		mcp.WithString("category", mcp.Description("Only include servers in this category ID")),
		mcp.WithBoolean("verified", mcp.Description("Only include verified servers")),
		mcp.WithString("author", mcp.Description("Only include servers whose author contains this text")),
		mcp.WithBoolean("popular", mcp.Description("Order by downloads, highest first")),
		mcp.WithBoolean("top_rated", mcp.Description("Order by rating, highest first")),
		mcp.WithNumber("limit", mcp.Description("Max results (default: 10 when ranked, otherwise all)")),
		readOnly,
	), s.handleListServers)
}

func (s *Server) handleSearchServers(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query := strings.TrimSpace(request.GetString("query", ""))
	if query == "" {
		return mcp.NewToolResultError("query cannot be empty"), nil
	}

	servers, err := s.catalog.Find(registry.Query{
		Filters: map[string]string{registry.FilterKeyQuery: query},
		Limit:   request.GetInt("limit", 0),
	})
	if err != nil {
		return s.errorResult(ToolSearchServers, err), nil
	}

	return jsonResult(servers), nil
}

func (s *Server) handleGetServer(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := request.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	srv, err := s.catalog.Resolve(id)
	if err != nil {
		return s.errorResult(ToolGetServer, err), nil
	}

	return jsonResult(srv), nil
}

func (s *Server) handleListCategories(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	categories := s.catalog.ListCategories()
	if categories == nil {
		categories = packages.Categories{}
	}

	return jsonResult(categories), nil
}

func (s *Server) handleListServers(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	q := registry.Query{
		Filters: map[string]string{},
		Limit:   request.GetInt("limit", 0),
	}

	switch {
	case request.GetBool("popular", false):
		q.Sort = registry.SortPopular
	case request.GetBool("top_rated", false):
		q.Sort = registry.SortRating
	}

	if category := strings.TrimSpace(request.GetString("category", "")); category != "" {
		q.Filters[registry.FilterKeyCategory] = category
	}
	if author := strings.TrimSpace(request.GetString("author", "")); author != "" {
		q.Filters[registry.FilterKeyAuthor] = author
	}
	if request.GetBool("verified", false) {
		q.Filters[registry.FilterKeyVerified] = strconv.FormatBool(true)
	}

	servers, err := s.catalog.Find(q)
	if err != nil {
		return s.errorResult(ToolListServers, err), nil
	}

	return jsonResult(servers), nil
}

// errorResult reports domain errors to the client as tool errors, anything unexpected is also logged.
func (s *Server) errorResult(tool string, err error) *mcp.CallToolResult {
	if !errors.Is(err, errs.ErrServerNotFound) && !errors.Is(err, errs.ErrBadRequest) {
		s.logger.Error("Tool call failed", "tool", tool, "error", err)
	}
	return mcp.NewToolResultError(err.Error())
}

func jsonResult(v any) *mcp.CallToolResult {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal result: %v", err))
	}
	return mcp.NewToolResultText(string(data))
}
