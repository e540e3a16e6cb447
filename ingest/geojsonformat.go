package ingest

import (
	"fmt"

	"github.com/gjrichter/ixmaps-data/geo"
)

// ParseGeoJSON implements spec §4.F's GeoJSON ingestion rule: the header is
// the union (first-seen order) of every feature's properties keys, plus a
// trailing "geometry" column. Non-scalar property values are
// JSON-stringified; the geometry cell holds the feature's geometry,
// JSON-stringified.
func ParseGeoJSON(data []byte) ([][]string, error) {
	root, err := decodeOrdered(data)
	if err != nil {
		return nil, fmt.Errorf("ingest: geojson parse failure: %w", err)
	}
	obj, ok := root.(orderedObj)
	if !ok {
		return nil, fmt.Errorf("ingest: geojson root is not an object")
	}
	featuresRaw, ok := obj.get("features")
	if !ok {
		return nil, fmt.Errorf("ingest: geojson has no features array")
	}
	features, ok := featuresRaw.([]any)
	if !ok {
		return nil, fmt.Errorf("ingest: geojson features is not an array")
	}

	var header []string
	seen := map[string]bool{}
	for _, f := range features {
		feat, ok := f.(orderedObj)
		if !ok {
			continue
		}
		props, _ := feat.get("properties")
		propsObj, ok := props.(orderedObj)
		if !ok {
			continue
		}
		for _, e := range propsObj {
			if !seen[e.key] {
				seen[e.key] = true
				header = append(header, e.key)
			}
		}
	}
	header = append(header, "geometry")

	rows := [][]string{header}
	for _, f := range features {
		feat, ok := f.(orderedObj)
		if !ok {
			continue
		}
		props, _ := feat.get("properties")
		propsObj, _ := props.(orderedObj)

		rec := make([]string, len(header))
		for i, key := range header[:len(header)-1] {
			val, ok := propsObj.get(key)
			if !ok {
				rec[i] = ""
				continue
			}
			rec[i] = scalarOrJSON(val)
		}
		geomRaw, _ := feat.get("geometry")
		rec[len(header)-1] = geo.StringifyGeometry(unorder(geomRaw))
		rows = append(rows, rec)
	}
	return rows, nil
}

// scalarOrJSON stringifies leaf scalar values directly (matching toCell),
// and JSON-serializes composite (object/array) values, per spec §4.F:
// "non-scalar property values are JSON-stringified".
func scalarOrJSON(v any) string {
	switch v.(type) {
	case orderedObj, []any:
		return geo.StringifyGeometry(unorder(v))
	default:
		return toCell(v)
	}
}

// unorder converts the order-preserving decode tree back into plain
// map[string]any/[]any so encoding/json can marshal it normally; the
// leaf-path logic needs key order, but re-serialization does not.
func unorder(v any) any {
	switch t := v.(type) {
	case orderedObj:
		m := make(map[string]any, len(t))
		for _, e := range t {
			m[e.key] = unorder(e.val)
		}
		return m
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = unorder(e)
		}
		return out
	default:
		return t
	}
}
