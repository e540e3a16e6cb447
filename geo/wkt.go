package geo

import (
	"encoding/json"
	"regexp"
	"strconv"
)

// wktGeometryPrefix matches the leading keyword of a WKT literal, per spec
// §4.G: "WKT input (matches ^(POINT|LINESTRING|...)\\() is handled only for
// single POINT; others are wrapped".
var wktGeometryPrefix = regexp.MustCompile(`(?i)^\s*(POINT|LINESTRING|POLYGON|MULTIPOINT|MULTILINESTRING|MULTIPOLYGON|GEOMETRYCOLLECTION)\s*\(`)

var wktPoint = regexp.MustCompile(`(?i)^\s*POINT\s*\(\s*([-\d.eE]+)\s+([-\d.eE]+)\s*\)\s*$`)

// IsWKT reports whether s looks like a WKT geometry literal.
func IsWKT(s string) bool {
	return wktGeometryPrefix.MatchString(s)
}

// DecodeWKT renders a WKT literal as a GeoJSON string. Only POINT is
// actually decoded; every other WKT geometry type is passed through
// wrapped as {"type":"WKT","wkt":"<original>"} (spec §4.G).
func DecodeWKT(s string) string {
	if m := wktPoint.FindStringSubmatch(s); m != nil {
		x, errX := strconv.ParseFloat(m[1], 64)
		y, errY := strconv.ParseFloat(m[2], 64)
		if errX == nil && errY == nil {
			return `{"type":"Point","coordinates":[` + strconv.FormatFloat(x, 'f', -1, 64) + `,` + strconv.FormatFloat(y, 'f', -1, 64) + `]}`
		}
	}
	wrapped, _ := json.Marshal(map[string]string{"type": "WKT", "wkt": s})
	return string(wrapped)
}
