// Package tools provides the geometry codec MCP tools implementations.
package tools

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/openstreetmap-ng/geocodec/pkg/geo"
	"github.com/openstreetmap-ng/geocodec/pkg/polyline"
)

// EncodedGeometry is the output of the encode tool
type EncodedGeometry struct {
	Polyline   string `json:"polyline"`
	Precision  int    `json:"precision"`
	PointCount int    `json:"point_count"`
}

// DecodedGeometry is the output of the decode tool
type DecodedGeometry struct {
	Coordinates []geo.Location   `json:"coordinates"`
	Precision   int              `json:"precision"`
	BoundingBox *geo.BoundingBox `json:"bounding_box,omitempty"`
}

// GeometryComparison is the output of the compare tool
type GeometryComparison struct {
	Equal      bool `json:"equal"`
	Precision  int  `json:"precision"`
	PointCount int  `json:"point_count"`
}

// EncodeRouteGeometryTool returns a tool definition for polyline encoding
func EncodeRouteGeometryTool() mcp.Tool {
	return mcp.NewTool("encode_route_geometry",
		mcp.WithDescription("Encode a sequence of coordinates into a compact Encoded Polyline string"),
		mcp.WithArray("coordinates",
			mcp.Required(),
			mcp.Description("Array of {latitude, longitude} points in path order"),
		),
		mcp.WithNumber("precision",
			mcp.Description("Decimal digits of precision (5 for polyline5, 6 for polyline6)"),
			mcp.DefaultNumber(5),
		),
	)
}

// HandleEncodeRouteGeometry implements polyline encoding
func HandleEncodeRouteGeometry(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	logger := slog.Default().With("tool", "encode_route_geometry")

	points, err := extractCoordinates(req, "coordinates")
	if err != nil {
		logger.Error("failed to extract coordinates", "error", err)
		return ErrorResponse("Failed to parse coordinates: " + err.Error()), nil
	}

	precision := int(mcp.ParseFloat64(req, "precision", 5))
	if !validPrecision(precision) {
		return ErrorResponse("Precision must be between 1 and 8"), nil
	}

	for _, pt := range points {
		if !geo.IsLatitude(pt.Latitude) {
			return ErrorResponse("Latitude must be between -90 and 90"), nil
		}
		if !geo.IsLongitude(pt.Longitude) {
			return ErrorResponse("Longitude must be between -180 and 180"), nil
		}
	}

	result := EncodedGeometry{
		Polyline:   polyline.Encode(points, precision),
		Precision:  precision,
		PointCount: len(points),
	}

	resultBytes, err := json.Marshal(result)
	if err != nil {
		logger.Error("failed to marshal result", "error", err)
		return ErrorResponse("Failed to generate result"), nil
	}

	return mcp.NewToolResultText(string(resultBytes)), nil
}

// DecodeRouteGeometryTool returns a tool definition for polyline decoding
func DecodeRouteGeometryTool() mcp.Tool {
	return mcp.NewTool("decode_route_geometry",
		mcp.WithDescription("Decode an Encoded Polyline string into a sequence of coordinates"),
		mcp.WithString("polyline",
			mcp.Required(),
			mcp.Description("The encoded polyline string"),
		),
		mcp.WithNumber("precision",
			mcp.Description("Decimal digits of precision the polyline was encoded with"),
			mcp.DefaultNumber(5),
		),
	)
}

// HandleDecodeRouteGeometry implements polyline decoding
func HandleDecodeRouteGeometry(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	logger := slog.Default().With("tool", "decode_route_geometry")

	encoded := mcp.ParseString(req, "polyline", "")
	precision := int(mcp.ParseFloat64(req, "precision", 5))
	if !validPrecision(precision) {
		return ErrorResponse("Precision must be between 1 and 8"), nil
	}

	points, err := polyline.Decode(encoded, precision)
	if err != nil {
		if errors.Is(err, polyline.ErrTruncated) {
			return ErrorResponse("Malformed polyline: input ends mid-sequence"), nil
		}
		logger.Error("failed to decode polyline", "error", err)
		return ErrorResponse("Failed to decode polyline"), nil
	}

	result := DecodedGeometry{
		Coordinates: points,
		Precision:   precision,
	}
	if len(points) > 0 {
		bbox := geo.NewBoundingBox()
		bbox.ExtendWithLocations(points)
		result.BoundingBox = bbox
	}

	resultBytes, err := json.Marshal(result)
	if err != nil {
		logger.Error("failed to marshal result", "error", err)
		return ErrorResponse("Failed to generate result"), nil
	}

	return mcp.NewToolResultText(string(resultBytes)), nil
}

// CompareRouteGeometryTool returns a tool definition for polyline comparison
func CompareRouteGeometryTool() mcp.Tool {
	return mcp.NewTool("compare_route_geometry",
		mcp.WithDescription("Compare two encoded polylines for equality after quantizing both to a precision"),
		mcp.WithString("polyline_a",
			mcp.Required(),
			mcp.Description("The first encoded polyline string"),
		),
		mcp.WithString("polyline_b",
			mcp.Required(),
			mcp.Description("The second encoded polyline string"),
		),
		mcp.WithNumber("precision",
			mcp.Description("Decimal digits of precision both polylines were encoded with"),
			mcp.DefaultNumber(5),
		),
		mcp.WithNumber("compare_precision",
			mcp.Description("Decimal digits at which to compare; defaults to the encoding precision. A coarser value treats nearby paths as equal"),
		),
	)
}

// HandleCompareRouteGeometry implements quantized polyline comparison
func HandleCompareRouteGeometry(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	logger := slog.Default().With("tool", "compare_route_geometry")

	precision := int(mcp.ParseFloat64(req, "precision", 5))
	if !validPrecision(precision) {
		return ErrorResponse("Precision must be between 1 and 8"), nil
	}
	comparePrecision := int(mcp.ParseFloat64(req, "compare_precision", float64(precision)))
	if !validPrecision(comparePrecision) {
		return ErrorResponse("Comparison precision must be between 1 and 8"), nil
	}

	a, err := polyline.Decode(mcp.ParseString(req, "polyline_a", ""), precision)
	if err != nil {
		return ErrorResponse("Malformed polyline_a: input ends mid-sequence"), nil
	}
	b, err := polyline.Decode(mcp.ParseString(req, "polyline_b", ""), precision)
	if err != nil {
		return ErrorResponse("Malformed polyline_b: input ends mid-sequence"), nil
	}

	result := GeometryComparison{
		Equal:      polyline.Equal(a, b, comparePrecision),
		Precision:  comparePrecision,
		PointCount: len(a),
	}

	resultBytes, err := json.Marshal(result)
	if err != nil {
		logger.Error("failed to marshal result", "error", err)
		return ErrorResponse("Failed to generate result"), nil
	}

	return mcp.NewToolResultText(string(resultBytes)), nil
}
