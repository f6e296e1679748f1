package tools

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
)

// newToolRequest builds a CallToolRequest for handler tests
func newToolRequest(name string, args map[string]any) mcp.CallToolRequest {
	return mcp.CallToolRequest{
		Params: struct {
			Name      string         `json:"name"`
			Arguments map[string]any `json:"arguments,omitempty"`
			Meta      *struct {
				ProgressToken mcp.ProgressToken `json:"progressToken,omitempty"`
			} `json:"_meta,omitempty"`
		}{
			Name:      name,
			Arguments: args,
		},
	}
}

// resultText extracts the text content from a tool result
func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	if result == nil {
		t.Fatal("expected result, got nil")
	}
	for _, content := range result.Content {
		if text, ok := content.(mcp.TextContent); ok {
			return text.Text
		}
	}
	t.Fatal("result has no text content")
	return ""
}

func TestHandleEncodeRouteGeometry(t *testing.T) {
	tests := []struct {
		name         string
		args         map[string]any
		expectError  bool
		wantPolyline string
	}{
		{
			name: "Google reference vector",
			args: map[string]any{
				"coordinates": []any{
					map[string]any{"latitude": 38.5, "longitude": -120.2},
					map[string]any{"latitude": 40.7, "longitude": -120.95},
					map[string]any{"latitude": 43.252, "longitude": -126.453},
				},
				"precision": 5.0,
			},
			wantPolyline: "_p~iF~ps|U_ulLnnqC_mqNvxq`@",
		},
		{
			name: "Empty coordinate list",
			args: map[string]any{
				"coordinates": []any{},
			},
			wantPolyline: "",
		},
		{
			name: "Missing coordinates parameter",
			args: map[string]any{
				"precision": 5.0,
			},
			expectError: true,
		},
		{
			name: "Out of range latitude",
			args: map[string]any{
				"coordinates": []any{
					map[string]any{"latitude": 91.0, "longitude": 0.0},
				},
			},
			expectError: true,
		},
		{
			name: "Out of range precision",
			args: map[string]any{
				"coordinates": []any{
					map[string]any{"latitude": 38.5, "longitude": -120.2},
				},
				"precision": 12.0,
			},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := newToolRequest("encode_route_geometry", tt.args)
			result, err := HandleEncodeRouteGeometry(context.Background(), req)
			if err != nil {
				t.Fatalf("handler returned error: %v", err)
			}

			if tt.expectError {
				if !result.IsError {
					t.Errorf("expected error result, got %q", resultText(t, result))
				}
				return
			}
			if result.IsError {
				t.Fatalf("unexpected error result: %q", resultText(t, result))
			}

			var out EncodedGeometry
			if err := json.Unmarshal([]byte(resultText(t, result)), &out); err != nil {
				t.Fatalf("failed to parse result: %v", err)
			}
			if out.Polyline != tt.wantPolyline {
				t.Errorf("polyline = %q, want %q", out.Polyline, tt.wantPolyline)
			}
		})
	}
}

func TestHandleDecodeRouteGeometry(t *testing.T) {
	tests := []struct {
		name        string
		args        map[string]any
		expectError bool
		wantPoints  int
	}{
		{
			name: "Google reference vector",
			args: map[string]any{
				"polyline":  "_p~iF~ps|U_ulLnnqC_mqNvxq`@",
				"precision": 5.0,
			},
			wantPoints: 3,
		},
		{
			name: "Empty polyline",
			args: map[string]any{
				"polyline": "",
			},
			wantPoints: 0,
		},
		{
			name: "Truncated polyline",
			args: map[string]any{
				"polyline": "_p~iF",
			},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := newToolRequest("decode_route_geometry", tt.args)
			result, err := HandleDecodeRouteGeometry(context.Background(), req)
			if err != nil {
				t.Fatalf("handler returned error: %v", err)
			}

			if tt.expectError {
				if !result.IsError {
					t.Errorf("expected error result, got %q", resultText(t, result))
				}
				return
			}
			if result.IsError {
				t.Fatalf("unexpected error result: %q", resultText(t, result))
			}

			var out DecodedGeometry
			if err := json.Unmarshal([]byte(resultText(t, result)), &out); err != nil {
				t.Fatalf("failed to parse result: %v", err)
			}
			if len(out.Coordinates) != tt.wantPoints {
				t.Errorf("got %d coordinates, want %d", len(out.Coordinates), tt.wantPoints)
			}
			if tt.wantPoints > 0 && out.BoundingBox == nil {
				t.Error("expected bounding box for non-empty geometry")
			}
		})
	}
}

func TestHandleCompareRouteGeometry(t *testing.T) {
	tests := []struct {
		name      string
		args      map[string]any
		wantEqual bool
	}{
		{
			name: "Identical polylines",
			args: map[string]any{
				"polyline_a": "_p~iF~ps|U_ulLnnqC",
				"polyline_b": "_p~iF~ps|U_ulLnnqC",
				"precision":  5.0,
			},
			wantEqual: true,
		},
		{
			name: "Nearby paths equal at coarser comparison precision",
			args: map[string]any{
				// (38.5, -120.2) and (38.500004, -120.200004) encoded at
				// precision 6; they differ by one quantum there but agree
				// at precision 4
				"polyline_a":        "_izlhA~rlgdF",
				"polyline_b":        "gizlhAfslgdF",
				"precision":         6.0,
				"compare_precision": 4.0,
			},
			wantEqual: true,
		},
		{
			name: "Nearby paths differ at full precision",
			args: map[string]any{
				"polyline_a": "_izlhA~rlgdF",
				"polyline_b": "gizlhAfslgdF",
				"precision":  6.0,
			},
			wantEqual: false,
		},
		{
			name: "Different paths",
			args: map[string]any{
				"polyline_a": "_p~iF~ps|U",
				"polyline_b": "f{xyCwuy~W",
				"precision":  5.0,
			},
			wantEqual: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := newToolRequest("compare_route_geometry", tt.args)
			result, err := HandleCompareRouteGeometry(context.Background(), req)
			if err != nil {
				t.Fatalf("handler returned error: %v", err)
			}
			if result.IsError {
				t.Fatalf("unexpected error result: %q", resultText(t, result))
			}

			var out GeometryComparison
			if err := json.Unmarshal([]byte(resultText(t, result)), &out); err != nil {
				t.Fatalf("failed to parse result: %v", err)
			}
			if out.Equal != tt.wantEqual {
				t.Errorf("equal = %v, want %v", out.Equal, tt.wantEqual)
			}
		})
	}
}
