package ingest

import (
	"encoding/json"
	"fmt"
)

// topoTransform mirrors a TopoJSON document's optional quantization
// transform: arcs are delta-encoded integers scaled/translated back to
// real coordinates.
type topoTransform struct {
	Scale     [2]float64 `json:"scale"`
	Translate [2]float64 `json:"translate"`
}

type topoGeometry struct {
	Type        string          `json:"type"`
	Arcs        json.RawMessage `json:"arcs"`        // LineString/Polygon/Multi* geometries
	Coordinates json.RawMessage `json:"coordinates"` // Point/MultiPoint geometries
	Properties  map[string]any  `json:"properties"`
	Geometries  []topoGeometry  `json:"geometries"`
}

type topoObject struct {
	Type       string         `json:"type"`
	Geometries []topoGeometry `json:"geometries"`
	// GeometryCollection objects with a single top-level geometry embed the
	// arcs/coordinates/type/properties directly instead of under "geometries".
	Arcs        json.RawMessage `json:"arcs"`
	Coordinates json.RawMessage `json:"coordinates"`
	Properties  map[string]any  `json:"properties"`
}

type topology struct {
	Type      string                `json:"type"`
	Transform *topoTransform        `json:"transform"`
	Arcs      [][][2]float64        `json:"arcs"`
	Objects   map[string]topoObject `json:"objects"`
}

// decodeArcs applies delta-decoding (when a transform is present) to every
// arc, returning each as an absolute-coordinate point sequence.
func decodeArcs(topo topology) [][][2]float64 {
	if topo.Transform == nil {
		return topo.Arcs
	}
	sx, sy := topo.Transform.Scale[0], topo.Transform.Scale[1]
	tx, ty := topo.Transform.Translate[0], topo.Transform.Translate[1]

	out := make([][][2]float64, len(topo.Arcs))
	for i, arc := range topo.Arcs {
		var x, y float64
		pts := make([][2]float64, len(arc))
		for j, d := range arc {
			x += d[0]
			y += d[1]
			pts[j] = [2]float64{x*sx + tx, y*sy + ty}
		}
		out[i] = pts
	}
	return out
}

// resolveArc returns the point sequence for a signed arc index: a negative
// index ~i (bitwise complement) selects arc i reversed, per the TopoJSON
// spec's shared-arc convention.
func resolveArc(arcs [][][2]float64, idx int) [][2]float64 {
	if idx >= 0 {
		return arcs[idx]
	}
	real := ^idx
	src := arcs[real]
	rev := make([][2]float64, len(src))
	for i, p := range src {
		rev[len(src)-1-i] = p
	}
	return rev
}

func joinArcsLine(arcs [][][2]float64, indices []int) [][2]float64 {
	var out [][2]float64
	for i, idx := range indices {
		seg := resolveArc(arcs, idx)
		if i > 0 && len(seg) > 0 {
			seg = seg[1:]
		}
		out = append(out, seg...)
	}
	return out
}

func topoGeometryToGeoJSON(arcs [][][2]float64, g topoGeometry) map[string]any {
	switch g.Type {
	case "Point":
		var pt [2]float64
		json.Unmarshal(g.Coordinates, &pt)
		return map[string]any{"type": "Point", "coordinates": pt}
	case "MultiPoint":
		var pts [][2]float64
		json.Unmarshal(g.Coordinates, &pts)
		return map[string]any{"type": "MultiPoint", "coordinates": pts}
	case "LineString":
		var indices []int
		json.Unmarshal(g.Arcs, &indices)
		return map[string]any{"type": "LineString", "coordinates": joinArcsLine(arcs, indices)}
	case "MultiLineString":
		var lines [][]int
		json.Unmarshal(g.Arcs, &lines)
		coords := make([][][2]float64, len(lines))
		for i, l := range lines {
			coords[i] = joinArcsLine(arcs, l)
		}
		return map[string]any{"type": "MultiLineString", "coordinates": coords}
	case "Polygon":
		var rings [][]int
		json.Unmarshal(g.Arcs, &rings)
		coords := make([][][2]float64, len(rings))
		for i, r := range rings {
			coords[i] = joinArcsLine(arcs, r)
		}
		return map[string]any{"type": "Polygon", "coordinates": coords}
	case "MultiPolygon":
		var polys [][][]int
		json.Unmarshal(g.Arcs, &polys)
		coords := make([][][][2]float64, len(polys))
		for i, poly := range polys {
			rings := make([][][2]float64, len(poly))
			for j, r := range poly {
				rings[j] = joinArcsLine(arcs, r)
			}
			coords[i] = rings
		}
		return map[string]any{"type": "MultiPolygon", "coordinates": coords}
	default:
		return map[string]any{"type": g.Type}
	}
}

// topoObjectToFeatureCollection converts one named TopoJSON object into a
// GeoJSON FeatureCollection document.
func topoObjectToFeatureCollection(topo topology, obj topoObject) ([]byte, error) {
	arcs := decodeArcs(topo)

	geoms := obj.Geometries
	if len(geoms) == 0 && (len(obj.Arcs) > 0 || len(obj.Coordinates) > 0) {
		geoms = []topoGeometry{{Type: obj.Type, Arcs: obj.Arcs, Coordinates: obj.Coordinates, Properties: obj.Properties}}
	}

	features := make([]map[string]any, 0, len(geoms))
	for _, g := range geoms {
		features = append(features, map[string]any{
			"type":       "Feature",
			"properties": g.Properties,
			"geometry":   topoGeometryToGeoJSON(arcs, g),
		})
	}
	fc := map[string]any{"type": "FeatureCollection", "features": features}
	return json.Marshal(fc)
}

// ParseTopoJSON implements spec §4.F's TopoJSON ingestion rule: pick the
// named object (or, if name is empty or names no object, whichever object
// map iteration yields first, which is not a fixed order),
// convert it to GeoJSON, then route through ParseGeoJSON.
func ParseTopoJSON(data []byte, name string) ([][]string, error) {
	var topo topology
	if err := json.Unmarshal(data, &topo); err != nil {
		return nil, fmt.Errorf("ingest: topojson parse failure: %w", err)
	}
	if len(topo.Objects) == 0 {
		return nil, fmt.Errorf("ingest: topojson document has no objects")
	}

	obj, ok := topo.Objects[name]
	if !ok {
		for _, v := range topo.Objects {
			obj = v
			ok = true
			break
		}
	}
	if !ok {
		return nil, fmt.Errorf("ingest: topojson object %q not found", name)
	}

	geojsonBytes, err := topoObjectToFeatureCollection(topo, obj)
	if err != nil {
		return nil, err
	}
	return ParseGeoJSON(geojsonBytes)
}
