package geo

import "math"

// Coordinate and zoom bounds in degrees / zoom levels.
const (
	MinLongitude = -180.0
	MaxLongitude = 180.0

	MinLatitude = -90.0
	MaxLatitude = 90.0

	// MercatorMaxLatitude is the largest latitude representable in the
	// web-Mercator projection. Map view state is clamped to this bound,
	// while raw geographic data uses the full +/-90 range.
	MercatorMaxLatitude = 85.05112878

	MinZoom = 0.0
	MaxZoom = 25.0
)

// IsLongitude reports whether lon is a finite longitude in [-180, 180].
// NaN and infinities are not valid longitudes.
func IsLongitude(lon float64) bool {
	return MinLongitude <= lon && lon <= MaxLongitude
}

// IsLatitude reports whether lat is a finite latitude in [-90, 90].
func IsLatitude(lat float64) bool {
	return MinLatitude <= lat && lat <= MaxLatitude
}

// IsMercatorLatitude reports whether lat is a finite latitude within the
// web-Mercator projection bounds.
func IsMercatorLatitude(lat float64) bool {
	return -MercatorMaxLatitude <= lat && lat <= MercatorMaxLatitude
}

// IsZoom reports whether zoom is a finite zoom level in [0, 25].
func IsZoom(zoom float64) bool {
	return MinZoom <= zoom && zoom <= MaxZoom
}

// WrapLongitude maps any longitude into [-180, 180) by true modulo, so
// negative inputs wrap toward the positive side: WrapLongitude(-190) == 170
// and WrapLongitude(180) == -180.
func WrapLongitude(lon float64) float64 {
	m := math.Mod(lon+180, 360)
	if m < 0 {
		m += 360
	}
	return m - 180
}

// ClampLatitude clamps lat to the web-Mercator latitude bounds.
func ClampLatitude(lat float64) float64 {
	if lat < -MercatorMaxLatitude {
		return -MercatorMaxLatitude
	}
	if lat > MercatorMaxLatitude {
		return MercatorMaxLatitude
	}
	return lat
}
