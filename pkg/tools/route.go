// Package tools provides the geometry codec MCP tools implementations.
package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/openstreetmap-ng/geocodec/pkg/geo"
	"github.com/openstreetmap-ng/geocodec/pkg/osm"
	"github.com/openstreetmap-ng/geocodec/pkg/polyline"
)

// osrmGeometryPrecision is the decimal precision of OSRM's polyline6
// geometry encoding
const osrmGeometryPrecision = 6

// routeCache holds decoded OSRM responses keyed by request URL so repeated
// calls do not re-hit the rate-limited public endpoint
var routeCache = osm.NewTTLCache[string, RouteGeometry](5 * time.Minute)

// OSRMRouteResponse represents the response from the OSRM routing service
type OSRMRouteResponse struct {
	Code    string      `json:"code"`
	Message string      `json:"message,omitempty"`
	Routes  []OSRMRoute `json:"routes,omitempty"`
}

// OSRMRoute represents a single route in the OSRM response
type OSRMRoute struct {
	Distance float64 `json:"distance"`
	Duration float64 `json:"duration"`
	Geometry string  `json:"geometry"`
}

// RouteGeometry is the output of the route fetch tool
type RouteGeometry struct {
	Distance        float64          `json:"distance"` // in meters
	Duration        float64          `json:"duration"` // in seconds
	BeelineDistance float64          `json:"beeline_distance"`
	Coordinates     []geo.Location   `json:"coordinates"`
	Polyline        string           `json:"polyline"`
	Precision       int              `json:"precision"`
	BoundingBox     *geo.BoundingBox `json:"bounding_box,omitempty"`
}

// FetchRouteGeometryTool returns a tool definition for route geometry retrieval
func FetchRouteGeometryTool() mcp.Tool {
	return mcp.NewTool("fetch_route_geometry",
		mcp.WithDescription("Fetch a route between two points from OSRM and return its decoded geometry"),
		mcp.WithNumber("start_lat",
			mcp.Required(),
			mcp.Description("Starting point latitude"),
		),
		mcp.WithNumber("start_lon",
			mcp.Required(),
			mcp.Description("Starting point longitude"),
		),
		mcp.WithNumber("end_lat",
			mcp.Required(),
			mcp.Description("Ending point latitude"),
		),
		mcp.WithNumber("end_lon",
			mcp.Required(),
			mcp.Description("Ending point longitude"),
		),
		mcp.WithString("profile",
			mcp.Description("Routing profile (driving, walking, cycling)"),
		),
	)
}

// HandleFetchRouteGeometry implements route geometry retrieval
func HandleFetchRouteGeometry(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	logger := slog.Default().With("tool", "fetch_route_geometry")

	startLat := mcp.ParseFloat64(req, "start_lat", 0)
	startLon := mcp.ParseFloat64(req, "start_lon", 0)
	endLat := mcp.ParseFloat64(req, "end_lat", 0)
	endLon := mcp.ParseFloat64(req, "end_lon", 0)
	profile := mcp.ParseString(req, "profile", "driving")

	if !geo.IsLatitude(startLat) || !geo.IsLatitude(endLat) {
		return ErrorResponse("Latitude must be between -90 and 90"), nil
	}
	if !geo.IsLongitude(startLon) || !geo.IsLongitude(endLon) {
		return ErrorResponse("Longitude must be between -180 and 180"), nil
	}

	// Build request URL
	reqURL, err := url.Parse(osm.OSRMBaseURL)
	if err != nil {
		logger.Error("failed to parse URL", "error", err)
		return ErrorResponse("Internal server error"), nil
	}
	reqURL.Path = fmt.Sprintf("/route/v1/%s/%f,%f;%f,%f",
		profile,
		startLon, startLat,
		endLon, endLat,
	)
	q := reqURL.Query()
	q.Set("overview", "full")
	q.Set("geometries", "polyline6")
	q.Set("steps", "false")
	reqURL.RawQuery = q.Encode()

	// Serve from cache when the same route was fetched recently
	if cached, ok := routeCache.Get(reqURL.String()); ok {
		resultBytes, err := json.Marshal(cached)
		if err == nil {
			return mcp.NewToolResultText(string(resultBytes)), nil
		}
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		logger.Error("failed to create request", "error", err)
		return ErrorResponse("Failed to create request"), nil
	}

	resp, err := osm.DoRequest(ctx, httpReq)
	if err != nil {
		logger.Error("request failed", "error", err)
		return ErrorResponse(NewAPIError("OSRM", 0, "request failed", GuidanceNetworkError).Error()), nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		apiErr := NewAPIError("OSRM", resp.StatusCode, "routing request failed", "")
		logger.Error("service error", "status", resp.StatusCode)
		return ErrorResponse(apiErr.Error()), nil
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		logger.Error("failed to read response", "error", err)
		return ErrorResponse(GuidanceDataError), nil
	}

	var osrmResp OSRMRouteResponse
	if err := json.Unmarshal(body, &osrmResp); err != nil {
		logger.Error("failed to parse response", "error", err)
		return ErrorResponse(GuidanceDataError), nil
	}
	if osrmResp.Code != "Ok" || len(osrmResp.Routes) == 0 {
		logger.Info("no route found", "code", osrmResp.Code, "message", osrmResp.Message)
		return ErrorResponse(GuidanceRouteNotFound), nil
	}

	route := osrmResp.Routes[0]
	points, err := polyline.Decode(route.Geometry, osrmGeometryPrecision)
	if err != nil {
		logger.Error("failed to decode route geometry", "error", err)
		return ErrorResponse(GuidanceDataError), nil
	}

	result := RouteGeometry{
		Distance:        route.Distance,
		Duration:        route.Duration,
		BeelineDistance: geo.HaversineDistance(startLat, startLon, endLat, endLon),
		Coordinates:     points,
		Polyline:        route.Geometry,
		Precision:       osrmGeometryPrecision,
	}
	if len(points) > 0 {
		bbox := geo.NewBoundingBox()
		bbox.ExtendWithLocations(points)
		result.BoundingBox = bbox
	}

	routeCache.Set(reqURL.String(), result)

	resultBytes, err := json.Marshal(result)
	if err != nil {
		logger.Error("failed to marshal result", "error", err)
		return ErrorResponse("Failed to generate result"), nil
	}

	return mcp.NewToolResultText(string(resultBytes)), nil
}
