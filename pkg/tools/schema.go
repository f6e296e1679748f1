// Package tools provides the geometry codec MCP tools implementations.
package tools

import (
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/openstreetmap-ng/geocodec/pkg/geo"
)

// ErrorResponse is used for consistent error reporting
func ErrorResponse(message string) *mcp.CallToolResult {
	return mcp.NewToolResultError(message)
}

// extractCoordinates extracts a coordinate array parameter from the
// CallToolRequest. The parameter is an array of objects with latitude and
// longitude fields, in path order.
func extractCoordinates(req mcp.CallToolRequest, paramName string) ([]geo.Location, error) {
	raw, ok := req.Params.Arguments[paramName]
	if !ok {
		return nil, fmt.Errorf("missing required %s parameter", paramName)
	}

	// Marshal and unmarshal to convert to our struct
	rawJSON, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s: %v", paramName, err)
	}

	var points []geo.Location
	if err := json.Unmarshal(rawJSON, &points); err != nil {
		return nil, fmt.Errorf("failed to parse %s array: %v", paramName, err)
	}

	return points, nil
}

// validPrecision reports whether a polyline precision parameter is in the
// supported range.
func validPrecision(precision int) bool {
	return precision >= 1 && precision <= 8
}
