// Package polyline implements the Google encoded-polyline format: a compact,
// reversible text representation of an ordered coordinate sequence at 1e-5
// degree precision. The codec knows nothing about tracks, gaps or sampling.
package polyline

import (
	"fmt"
	"math"
	"strings"
)

const precision = 1e5

// Coordinate is one (lat, lon) pair in degrees.
type Coordinate struct {
	Lat float64
	Lon float64
}

// Encode serializes an ordered coordinate sequence. Each coordinate is scaled
// by 1e5, rounded, delta-encoded against the previous point, zig-zag encoded
// to unsigned, and emitted in 5-bit groups (least significant first) with a
// continuation bit, each group offset by 63 into printable ASCII.
func Encode(coords []Coordinate) string {
	var sb strings.Builder
	prevLat, prevLon := int64(0), int64(0)

	for _, c := range coords {
		lat := int64(math.Round(c.Lat * precision))
		lon := int64(math.Round(c.Lon * precision))

		encodeValue(&sb, lat-prevLat)
		encodeValue(&sb, lon-prevLon)

		prevLat, prevLon = lat, lon
	}

	return sb.String()
}

func encodeValue(sb *strings.Builder, delta int64) {
	// Zig-zag: shift left one bit, invert when negative.
	v := delta << 1
	if delta < 0 {
		v = ^v
	}
	for v >= 0x20 {
		sb.WriteByte(byte((0x20 | (v & 0x1f)) + 63))
		v >>= 5
	}
	sb.WriteByte(byte(v + 63))
}

// Decode is the exact inverse of Encode. It returns an error for a string
// that ends in the middle of a value or contains bytes outside the encoding
// alphabet.
func Decode(encoded string) ([]Coordinate, error) {
	var coords []Coordinate
	lat, lon := int64(0), int64(0)

	i := 0
	for i < len(encoded) {
		dLat, n, err := decodeValue(encoded[i:])
		if err != nil {
			return nil, err
		}
		i += n

		if i >= len(encoded) {
			return nil, fmt.Errorf("truncated polyline: latitude without longitude at byte %d", i)
		}
		dLon, n, err := decodeValue(encoded[i:])
		if err != nil {
			return nil, err
		}
		i += n

		lat += dLat
		lon += dLon
		coords = append(coords, Coordinate{
			Lat: float64(lat) / precision,
			Lon: float64(lon) / precision,
		})
	}

	return coords, nil
}

func decodeValue(s string) (int64, int, error) {
	var v int64
	shift := uint(0)

	for i := 0; i < len(s); i++ {
		b := int64(s[i]) - 63
		if b < 0 || b > 0x3f {
			return 0, 0, fmt.Errorf("invalid polyline byte %q at offset %d", s[i], i)
		}
		v |= (b & 0x1f) << shift
		if b < 0x20 {
			// Undo zig-zag.
			if v&1 != 0 {
				return ^(v >> 1), i + 1, nil
			}
			return v >> 1, i + 1, nil
		}
		shift += 5
	}

	return 0, 0, fmt.Errorf("truncated polyline value")
}
