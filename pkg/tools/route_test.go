package tools

import (
	"context"
	"testing"

	"github.com/openstreetmap-ng/geocodec/pkg/testutil"
)

// TestHandleFetchRouteGeometryValidation covers the parameter validation
// paths, which never reach the network.
func TestHandleFetchRouteGeometryValidation(t *testing.T) {
	tests := []struct {
		name string
		args map[string]any
	}{
		{
			name: "Invalid start latitude",
			args: map[string]any{
				"start_lat": 91.0,
				"start_lon": 0.0,
				"end_lat":   0.0,
				"end_lon":   0.0,
			},
		},
		{
			name: "Invalid end longitude",
			args: map[string]any{
				"start_lat": 0.0,
				"start_lon": 0.0,
				"end_lat":   0.0,
				"end_lon":   -180.5,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := newToolRequest("fetch_route_geometry", tt.args)
			result, err := HandleFetchRouteGeometry(context.Background(), req)
			if err != nil {
				t.Fatalf("handler returned error: %v", err)
			}
			if !result.IsError {
				t.Errorf("expected error result, got %q", resultText(t, result))
			}
		})
	}
}

func TestRegistryDefinitions(t *testing.T) {
	registry := NewRegistry(testutil.DiscardLogger())
	defs := registry.GetToolDefinitions()

	if len(defs) == 0 {
		t.Fatal("registry returned no tool definitions")
	}

	seen := make(map[string]bool)
	for _, def := range defs {
		if def.Name == "" {
			t.Error("tool definition with empty name")
		}
		if seen[def.Name] {
			t.Errorf("duplicate tool name %q", def.Name)
		}
		seen[def.Name] = true

		if def.Handler == nil {
			t.Errorf("tool %q has no handler", def.Name)
		}
	}

	for _, name := range []string{
		"encode_route_geometry",
		"decode_route_geometry",
		"compare_route_geometry",
		"create_shortlink",
		"expand_shortlink",
		"fetch_route_geometry",
	} {
		if !seen[name] {
			t.Errorf("missing tool %q", name)
		}
	}
}
