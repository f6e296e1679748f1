// Package polyline implements Google's Encoded Polyline Algorithm Format
// with a configurable decimal precision.
//
// Routing services disagree on the scale factor: OSRM and the original
// Google format use 5 decimal places, while the polyline6 variant used by
// OSRM's geometries=polyline6 option uses 6. The precision is therefore a
// parameter on every call and is never recoverable from the encoded string
// itself; callers must decode with the same precision used to encode.
//
// See https://developers.google.com/maps/documentation/utilities/polylinealgorithm
package polyline

import (
	"errors"
	"math"

	"github.com/openstreetmap-ng/geocodec/pkg/geo"
)

// ErrTruncated is returned by Decode when the input ends in the middle of
// a chunk sequence, i.e. the last character still has its continuation bit
// set. The partial sequence is discarded rather than returned.
var ErrTruncated = errors.New("polyline: truncated input")

// Encode encodes a slice of locations into a polyline string using the
// given number of decimal places of precision.
//
// Coordinates are quantized by rounding half away from zero, not by Go's
// math.Round-to-even semantics at the binary level or by truncation. The
// distinction matters: 0.000005 at precision 5 must quantize to 1, and
// -0.000005 to -1, to stay wire-compatible with the published algorithm.
func Encode(points []geo.Location, precision int) string {
	if len(points) == 0 {
		return ""
	}

	factor := math.Pow10(precision)

	// Estimate result size (6 bytes per point is common)
	result := make([]byte, 0, len(points)*6)

	// Delta encoding state, reset per call
	prevLat := 0
	prevLng := 0

	for _, point := range points {
		lat := quantize(point.Latitude, factor)
		lng := quantize(point.Longitude, factor)

		// Latitude delta first, then longitude
		result = appendSigned(result, lat-prevLat)
		result = appendSigned(result, lng-prevLng)

		prevLat = lat
		prevLng = lng
	}

	return string(result)
}

// Decode decodes an encoded polyline string into a slice of locations
// using the given number of decimal places of precision.
//
// An empty string decodes to an empty slice. A string that ends mid-chunk
// (dangling continuation bit, or a latitude delta with no matching
// longitude delta) returns ErrTruncated.
func Decode(encoded string, precision int) ([]geo.Location, error) {
	// Rough capacity estimate: 4 characters per point is typical
	count := len(encoded) / 4
	if count <= 0 {
		count = 1
	}
	points := make([]geo.Location, 0, count)

	factor := math.Pow10(precision)

	index := 0
	lat := 0
	lng := 0

	for index < len(encoded) {
		deltaLat, next, err := decodeSigned(encoded, index)
		if err != nil {
			return nil, err
		}
		lat += deltaLat

		deltaLng, next, err := decodeSigned(encoded, next)
		if err != nil {
			return nil, err
		}
		lng += deltaLng
		index = next

		points = append(points, geo.Location{
			Latitude:  float64(lat) / factor,
			Longitude: float64(lng) / factor,
		})
	}

	return points, nil
}

// Equal reports whether two polylines are equal after quantizing both to
// the given precision with the encoder's rounding rule. Sequences that
// differ only below the precision threshold compare equal; sequences of
// different lengths never do.
func Equal(a, b []geo.Location, precision int) bool {
	if len(a) != len(b) {
		return false
	}

	factor := math.Pow10(precision)
	for i := range a {
		if quantize(a[i].Latitude, factor) != quantize(b[i].Latitude, factor) ||
			quantize(a[i].Longitude, factor) != quantize(b[i].Longitude, factor) {
			return false
		}
	}
	return true
}

// quantize converts a coordinate to fixed-point, rounding half away from
// zero.
func quantize(value, factor float64) int {
	scaled := value * factor
	if scaled < 0 {
		return int(-math.Floor(-scaled + 0.5))
	}
	return int(math.Floor(scaled + 0.5))
}

// appendSigned appends the chunked encoding of a signed delta to dst.
// The delta is zigzag-transformed so small magnitudes of either sign stay
// small, then emitted in 5-bit groups, low bits first, with bit 5 as the
// continuation marker and every byte offset by 63 into printable ASCII.
func appendSigned(dst []byte, value int) []byte {
	// Convert to zigzag encoding
	s := value << 1
	if value < 0 {
		s = ^s
	}

	for s >= 0x20 {
		dst = append(dst, byte((0x20|(s&0x1f))+63))
		s >>= 5
	}
	return append(dst, byte(s+63))
}

// decodeSigned decodes a single signed delta starting at index. It returns
// the delta, the index of the next unread character and ErrTruncated if
// the string ends before a terminating chunk is seen.
func decodeSigned(encoded string, index int) (int, int, error) {
	result := 0
	shift := 0
	for {
		if index >= len(encoded) {
			return 0, index, ErrTruncated
		}
		b := int(encoded[index]) - 63
		index++
		result |= (b & 0x1f) << shift
		shift += 5
		if b < 0x20 {
			break
		}
	}

	// Undo the zigzag transform
	return (result >> 1) ^ (-(result & 1)), index, nil
}
