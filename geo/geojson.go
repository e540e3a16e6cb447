package geo

import "encoding/json"

// StringifyGeometry renders an already-decoded geometry value (as produced
// by a GeoJSON/TopoJSON/KML/GML parser) into its canonical compact JSON
// string form, for storage in a table cell (spec §4.F: "geometry cell is
// the feature's geometry JSON-stringified").
func StringifyGeometry(v any) string {
	out, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(out)
}
