// Package tools provides the geometry codec MCP tools implementations.
package tools

import (
	"context"
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// Registry holds all MCP tool registrations for the geometry codec service.
type Registry struct {
	logger *slog.Logger
}

// NewRegistry creates a new MCP tool registry.
func NewRegistry(logger *slog.Logger) *Registry {
	return &Registry{
		logger: logger,
	}
}

// ToolDefinition represents a geometry codec MCP tool definition.
type ToolDefinition struct {
	Name        string
	Description string
	Tool        mcp.Tool
	Handler     func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error)
}

// GetToolDefinitions returns all geometry codec MCP tool definitions.
func (r *Registry) GetToolDefinitions() []ToolDefinition {
	return []ToolDefinition{
		// Polyline Tools
		{
			Name:        "encode_route_geometry",
			Description: "Encode a coordinate sequence into an Encoded Polyline string",
			Tool:        EncodeRouteGeometryTool(),
			Handler:     HandleEncodeRouteGeometry,
		},
		{
			Name:        "decode_route_geometry",
			Description: "Decode an Encoded Polyline string into a coordinate sequence",
			Tool:        DecodeRouteGeometryTool(),
			Handler:     HandleDecodeRouteGeometry,
		},
		{
			Name:        "compare_route_geometry",
			Description: "Compare two polylines for equality at a given precision",
			Tool:        CompareRouteGeometryTool(),
			Handler:     HandleCompareRouteGeometry,
		},

		// Shortlink Tools
		{
			Name:        "create_shortlink",
			Description: "Encode a map viewport into an osm.org shortlink",
			Tool:        CreateShortlinkTool(),
			Handler:     HandleCreateShortlink,
		},
		{
			Name:        "expand_shortlink",
			Description: "Decode an osm.org shortlink back into a map viewport",
			Tool:        ExpandShortlinkTool(),
			Handler:     HandleExpandShortlink,
		},

		// Routing Tools
		{
			Name:        "fetch_route_geometry",
			Description: "Fetch a route from OSRM and return its decoded geometry",
			Tool:        FetchRouteGeometryTool(),
			Handler:     HandleFetchRouteGeometry,
		},
	}
}

// RegisterTools registers all tools with the MCP server.
func (r *Registry) RegisterTools(mcpServer *server.MCPServer) {
	for _, def := range r.GetToolDefinitions() {
		r.logger.Info("registering tool", "name", def.Name)
		mcpServer.AddTool(def.Tool, def.Handler)
	}
}
