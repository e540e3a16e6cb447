package parquet

import "strings"

// geoColumnNames is the fixed set of conventional geometry column names
// (spec §4.H step 4), matched case-insensitively.
var geoColumnNames = map[string]bool{
	"geometry":     true,
	"geom":         true,
	"the_geom":     true,
	"wkb_geometry": true,
	"shape":        true,
}

// geoNameFragments additionally flags a column whose name merely contains
// one of these substrings (spec §4.H step 4: "or contains wkb|geojson|wkt|coordinates").
var geoNameFragments = []string{"wkb", "geojson", "wkt", "coordinates"}

// looksLikeGeoColumnName implements the GeoParquet detection heuristic over
// a single schema column name.
func looksLikeGeoColumnName(name string) bool {
	lower := strings.ToLower(name)
	if geoColumnNames[lower] {
		return true
	}
	for _, frag := range geoNameFragments {
		if strings.Contains(lower, frag) {
			return true
		}
	}
	return false
}

// detectGeoColumn returns the index of the first schema column recognized as
// a geometry column, and whether one was found (spec §4.H step 4: the whole
// file is classified GeoParquet/plain based on presence of such a column).
func detectGeoColumn(columnNames []string) (idx int, ok bool) {
	for i, name := range columnNames {
		if looksLikeGeoColumnName(name) {
			return i, true
		}
	}
	return -1, false
}

// CellType is the per-column conversion tag derived in spec §4.H step 5.
type CellType int

const (
	CellOther CellType = iota
	CellGeometry
	CellArray
	CellString
	CellNumber
	CellBoolean
	CellDate
)

// classifyColumn derives a column's CellType from its engine-reported SQL
// type string and its name, per spec §4.H step 5.
func classifyColumn(name, sqlType string) CellType {
	lowerType := strings.ToLower(sqlType)
	switch {
	case containsAny(lowerType, "geometry", "wkb", "wkt", "blob", "binary"):
		return CellGeometry
	case looksLikeGeoColumnName(name):
		return CellGeometry
	case containsAny(lowerType, "list", "array", "[]"):
		return CellArray
	case containsAny(lowerType, "varchar", "char", "text", "string"):
		return CellString
	case containsAny(lowerType, "int", "float", "double", "decimal", "numeric", "real", "hugeint"):
		return CellNumber
	case containsAny(lowerType, "bool"):
		return CellBoolean
	case containsAny(lowerType, "date", "timestamp", "time"):
		return CellDate
	default:
		return CellOther
	}
}

func containsAny(s string, substrs ...string) bool {
	for _, sub := range substrs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
