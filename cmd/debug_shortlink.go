package main

import (
	"fmt"
	"os"

	"github.com/openstreetmap-ng/geocodec/pkg/geo"
	"github.com/openstreetmap-ng/geocodec/pkg/polyline"
	"github.com/openstreetmap-ng/geocodec/pkg/shortlink"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: debug_shortlink <code_or_polyline>")
		os.Exit(1)
	}
	input := os.Args[1]

	lon, lat, zoom, err := shortlink.Decode(input)
	if err != nil {
		fmt.Printf("Shortlink decode failed: %v\n", err)
	} else {
		fmt.Printf("Shortlink %q: Longitude: %.8f, Latitude: %.8f, Zoom: %d\n", input, lon, lat, zoom)
		fmt.Printf("Re-encoded: %s\n", shortlink.Encode(lon, lat, zoom))
	}

	// Try the input as an encoded polyline at both common precisions
	for _, precision := range []int{5, 6} {
		points, err := polyline.Decode(input, precision)
		if err != nil {
			fmt.Printf("\nPolyline decode (precision %d) failed: %v\n", precision, err)
			continue
		}
		fmt.Printf("\nPolyline (precision %d):\n", precision)
		for i, pt := range points {
			fmt.Printf("  Point %d: Latitude: %.8f, Longitude: %.8f\n", i, pt.Latitude, pt.Longitude)
		}
	}

	// Round-trip a known point through both codecs
	testPt := geo.Location{Latitude: -25.363882, Longitude: 131.044922}
	fmt.Printf("\nTest Point: {Latitude: %.8f, Longitude: %.8f}\n", testPt.Latitude, testPt.Longitude)
	fmt.Printf("Encoded (precision 5): %s\n", polyline.Encode([]geo.Location{testPt}, 5))
	fmt.Printf("Encoded (precision 6): %s\n", polyline.Encode([]geo.Location{testPt}, 6))
	fmt.Printf("Shortlink (zoom 12): %s\n", shortlink.Encode(testPt.Longitude, testPt.Latitude, 12))
}
