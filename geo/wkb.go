// Package geo implements the WKB/GeoJSON codec (spec §4.G): decoding
// Well-Known-Binary geometries into GeoJSON strings for storage in a table
// cell, with a hex-sentinel fallback for anything it cannot (or chooses not
// to) decode.
package geo

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"math"

	"github.com/twpayne/go-geom/encoding/geojson"
	"github.com/twpayne/go-geom/encoding/wkb"
)

// undecodedTypes are the WKB geometry type codes this codec does not
// attempt to decode: MultiPoint(4), MultiLineString(5), MultiPolygon(6),
// GeometryCollection(7). They always fall to the hex sentinel, matching
// spec §4.G exactly rather than relying on go-geom's broader support, so
// the sentinel shape stays predictable for downstream callers.
var undecodedTypes = map[uint32]bool{4: true, 5: true, 6: true, 7: true}

// sentinel renders the fallback {"type":"WKB","wkb":"<hex>","geomType":N}
// shape used whenever a geometry cannot or should not be decoded.
func sentinel(data []byte, geomType uint32) string {
	return fmt.Sprintf(`{"type":"WKB","wkb":"%s","geomType":%d}`, hex.EncodeToString(data), geomType)
}

// wkbGeometryType reads the OGC WKB byte-order flag (byte 0: 0 big-endian, 1
// little-endian) and the following 4-byte geometry type code. ok is false
// when data is too short to contain a header.
func wkbGeometryType(data []byte) (geomType uint32, order binary.ByteOrder, ok bool) {
	if len(data) < 5 {
		return 0, nil, false
	}
	order = binary.BigEndian
	if data[0] == 1 {
		order = binary.LittleEndian
	}
	return order.Uint32(data[1:5]), order, true
}

// DecodeWKB decodes a raw WKB byte slice into a GeoJSON string, per spec
// §4.G / §6: Point and LineString and Polygon are decoded via go-geom;
// MultiPoint/MultiLineString/MultiPolygon/GeometryCollection and any
// decode/marshal failure fall back to the hex sentinel — DecodeWKB never
// returns an error, only ever a GeoJSON or sentinel string (spec §7: "Geometry
// decode errors degrade to the hex sentinel silently").
func DecodeWKB(data []byte) string {
	geomType, _, ok := wkbGeometryType(data)
	if !ok {
		return sentinel(data, 0)
	}
	if undecodedTypes[geomType] {
		return sentinel(data, geomType)
	}

	geom, err := wkb.Unmarshal(data)
	if err != nil {
		return sentinel(data, geomType)
	}
	out, err := geojson.Marshal(geom)
	if err != nil {
		return sentinel(data, geomType)
	}
	return string(out)
}

// EncodeWKBPoint renders (x, y) as a little-endian WKB Point: byte 0 = 1,
// followed by the little-endian uint32 type code 1, followed by x and y as
// little-endian float64s. Used by callers and tests that need to construct
// WKB fixtures to check the encode/decode round trip.
func EncodeWKBPoint(x, y float64) []byte {
	buf := make([]byte, 21)
	buf[0] = 1
	binary.LittleEndian.PutUint32(buf[1:5], 1)
	binary.LittleEndian.PutUint64(buf[5:13], math.Float64bits(x))
	binary.LittleEndian.PutUint64(buf[13:21], math.Float64bits(y))
	return buf
}
