// Package tools provides the geometry codec MCP tools implementations.
package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/openstreetmap-ng/geocodec/pkg/geo"
	"github.com/openstreetmap-ng/geocodec/pkg/shortlink"
)

const (
	// ShortlinkBaseURL is the base URL shortlink codes resolve under
	ShortlinkBaseURL = "https://osm.org/go/"

	// MapBaseURL is the base URL for full map permalinks
	MapBaseURL = "https://www.openstreetmap.org"
)

// Shortlink is the output of the create tool
type Shortlink struct {
	Code      string  `json:"code"`
	URL       string  `json:"url"`
	Longitude float64 `json:"longitude"`
	Latitude  float64 `json:"latitude"`
	Zoom      int     `json:"zoom"`
}

// Viewport is the output of the expand tool
type Viewport struct {
	Longitude float64 `json:"longitude"`
	Latitude  float64 `json:"latitude"`
	Zoom      int     `json:"zoom"`
	MapURL    string  `json:"map_url"`
}

// CreateShortlinkTool returns a tool definition for shortlink encoding
func CreateShortlinkTool() mcp.Tool {
	return mcp.NewTool("create_shortlink",
		mcp.WithDescription("Encode a map viewport (longitude, latitude, zoom) into a short osm.org URL"),
		mcp.WithNumber("longitude",
			mcp.Required(),
			mcp.Description("Longitude of the viewport center"),
		),
		mcp.WithNumber("latitude",
			mcp.Required(),
			mcp.Description("Latitude of the viewport center"),
		),
		mcp.WithNumber("zoom",
			mcp.Description("Map zoom level (0-25)"),
			mcp.DefaultNumber(15),
		),
	)
}

// HandleCreateShortlink implements shortlink encoding
func HandleCreateShortlink(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	logger := slog.Default().With("tool", "create_shortlink")

	lon := mcp.ParseFloat64(req, "longitude", 0)
	lat := mcp.ParseFloat64(req, "latitude", 0)
	zoom := mcp.ParseFloat64(req, "zoom", 15)

	if !geo.IsZoom(zoom) {
		return ErrorResponse("Zoom must be between 0 and 25"), nil
	}
	if math.IsNaN(lon) || math.IsInf(lon, 0) || math.IsNaN(lat) || math.IsInf(lat, 0) {
		return ErrorResponse("Coordinates must be finite numbers"), nil
	}

	// Normalize the viewport the way map state is normalized: longitude
	// wraps, latitude clamps to the Mercator bounds
	lon = geo.WrapLongitude(lon)
	lat = geo.ClampLatitude(lat)

	code := shortlink.Encode(lon, lat, int(zoom))
	result := Shortlink{
		Code:      code,
		URL:       ShortlinkBaseURL + code,
		Longitude: lon,
		Latitude:  lat,
		Zoom:      int(zoom),
	}

	resultBytes, err := json.Marshal(result)
	if err != nil {
		logger.Error("failed to marshal result", "error", err)
		return ErrorResponse("Failed to generate result"), nil
	}

	return mcp.NewToolResultText(string(resultBytes)), nil
}

// ExpandShortlinkTool returns a tool definition for shortlink decoding
func ExpandShortlinkTool() mcp.Tool {
	return mcp.NewTool("expand_shortlink",
		mcp.WithDescription("Decode an osm.org shortlink code or URL back into a map viewport"),
		mcp.WithString("code",
			mcp.Required(),
			mcp.Description("The shortlink code, or a full https://osm.org/go/ URL"),
		),
	)
}

// HandleExpandShortlink implements shortlink decoding
func HandleExpandShortlink(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	logger := slog.Default().With("tool", "expand_shortlink")

	code := strings.TrimSpace(mcp.ParseString(req, "code", ""))

	// Accept a pasted shortlink URL as well as the bare code
	if i := strings.Index(code, "/go/"); i >= 0 {
		code = code[i+len("/go/"):]
	}

	lon, lat, zoom, err := shortlink.Decode(code)
	if err != nil {
		logger.Debug("failed to decode shortlink", "code", code, "error", err)
		return ErrorResponse("Shortlink code must not be empty"), nil
	}

	result := Viewport{
		Longitude: lon,
		Latitude:  lat,
		Zoom:      zoom,
		MapURL:    buildMapURL(lon, lat, zoom),
	}

	resultBytes, err := json.Marshal(result)
	if err != nil {
		logger.Error("failed to marshal result", "error", err)
		return ErrorResponse("Failed to generate result"), nil
	}

	return mcp.NewToolResultText(string(resultBytes)), nil
}

// buildMapURL builds an openstreetmap.org permalink for a viewport
func buildMapURL(lon, lat float64, zoom int) string {
	return fmt.Sprintf("%s/#map=%d/%.5f/%.5f", MapBaseURL, zoom, lat, lon)
}
