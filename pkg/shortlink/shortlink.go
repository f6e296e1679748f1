// Package shortlink implements OpenStreetMap's shortlink code, a compact
// URL-safe encoding of a map viewport (longitude, latitude, zoom).
//
// The code interleaves the X and Y coordinates into a Morton/Z-order value
// and emits it through a 64-character alphabet chosen to need no percent
// escaping in URLs. Precision is tied to zoom: every three zoom levels add
// one character, and the zoom remainder is carried as 0-2 trailing dashes.
package shortlink

import (
	"errors"
	"strings"
)

// Alphabet is the 64-character digit set. It deliberately avoids '+', '/'
// and '=' so codes can be embedded in URLs verbatim.
const Alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789_~"

// ErrEmpty is returned by Decode for an empty code.
var ErrEmpty = errors.New("shortlink: empty code")

// Encode encodes a viewport into a shortlink code.
//
// The codec trusts the caller: longitude outside [-180, 180) wraps and
// out-of-range zoom still yields a deterministic code. Callers that want
// sensible links should validate or normalize with the geo package first.
func Encode(lon, lat float64, zoom int) string {
	// Normalize to unsigned 32-bit coordinate space. The conversion goes
	// through int64 so values outside the domain truncate toward zero and
	// then wrap, instead of hitting undefined float-to-unsigned behavior.
	x := uint32(int64((lon + 180) * (4294967296.0 / 360.0)))
	y := uint32(int64((lat + 90) * (4294967296.0 / 180.0)))

	// Morton interleave, X bit above Y bit, MSB first
	var c uint64
	for i := 31; i >= 0; i-- {
		c = (c << 2) | uint64((x>>i)&1)<<1 | uint64((y>>i)&1)
	}

	// One digit per three zoom levels, remainder as trailing dashes.
	// Integer division is floored so a zoom below -8 still behaves.
	z := zoom + 8
	digits := z / 3
	rem := z % 3
	if rem < 0 {
		rem += 3
		digits--
	}
	if rem > 0 { // ceil instead of floor
		digits++
	}
	if digits < 0 {
		digits = 0
	}

	buf := make([]byte, 0, digits+rem)
	for i := 0; i < digits; i++ {
		// Consume 6 bits from the top of the accumulator. Past the 64th
		// bit this pads with zeros, which is what deep-zoom codes need.
		buf = append(buf, Alphabet[(c>>58)&0x3F])
		c <<= 6
	}
	for i := 0; i < rem; i++ {
		buf = append(buf, '-')
	}

	return string(buf)
}

// Decode decodes a shortlink code back into a viewport.
//
// Every alphabet character contributes three bits per axis. Characters
// outside the alphabet, normally the trailing dashes, carry no coordinate
// bits but count toward the zoom remainder, matching how osm.org resolves
// codes found in the wild. '@' is accepted as a legacy alias for '~' from
// an earlier revision of the alphabet.
func Decode(code string) (lon, lat float64, zoom int, err error) {
	if code == "" {
		return 0, 0, 0, ErrEmpty
	}

	var x, y uint64
	bits := 0
	offset := 0

	for i := 0; i < len(code); i++ {
		t := digitValue(code[i])
		if t < 0 {
			offset--
			continue
		}
		for j := 0; j < 3; j++ {
			x = (x << 1) | uint64((t>>5)&1)
			y = (y << 1) | uint64((t>>4)&1)
			t = (t << 2) & 0x3F
		}
		bits += 3
	}

	// Align to the 32-bit coordinate space. Deep-zoom codes carry a 33rd
	// padding bit, which shifts out the other way.
	if shift := 32 - bits; shift >= 0 {
		x <<= uint(shift)
		y <<= uint(shift)
	} else {
		x >>= uint(-shift)
		y >>= uint(-shift)
	}

	lon = float64(x)*(360.0/4294967296.0) - 180
	lat = float64(y)*(180.0/4294967296.0) - 90
	zoom = bits - 8 - ((offset%3 + 3) % 3)
	return lon, lat, zoom, nil
}

// digitValue returns the 6-bit value of an alphabet character, or -1 for
// characters that carry no coordinate bits.
func digitValue(ch byte) int {
	if ch == '@' { // legacy alias
		return strings.IndexByte(Alphabet, '~')
	}
	return strings.IndexByte(Alphabet, ch)
}
