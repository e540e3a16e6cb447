// Package ingest implements the Ingestion Dispatcher (spec §4.F): given a
// source-kind string and raw bytes/text, it produces a 2-D array of cells
// (first row = header) that table.FromRows turns into a Table. Parquet and
// GeoParquet are handled by package parquet instead — they need the
// embedded SQL engine, not a row-array parser.
package ingest

import (
	"fmt"
	"strings"

	"github.com/gjrichter/ixmaps-data/sink"
	"github.com/gjrichter/ixmaps-data/table"
)

// Options carries the feed-level knobs the dispatcher and its parsers
// consult (spec §6 "Feed options"): an explicit CSV delimiter/skip-empty
// setting, and the named TopoJSON object to select.
type Options struct {
	Delimiter      string
	SkipEmptyLines bool
	TopoObjectName string
}

// Dispatch routes data to the parser for kind (case-insensitive) and
// returns the resulting Table. Unknown kinds are a Format error (spec §7
// category 2). Parquet/GeoParquet are not handled here — callers should
// route those kinds to package parquet.
func Dispatch(kind string, data []byte, opts Options, s sink.Sink) (*table.Table, error) {
	s = sink.OrNoop(s)
	switch strings.ToLower(kind) {
	case "csv":
		rows, err := ParseCSV(data, opts.Delimiter, opts.SkipEmptyLines, s)
		if err != nil {
			return nil, err
		}
		return table.FromRows(rows), nil
	case "json":
		rows, err := ParseJSON(data)
		if err != nil {
			return nil, err
		}
		return table.FromRows(rows), nil
	case "geojson":
		rows, err := ParseGeoJSON(data)
		if err != nil {
			return nil, err
		}
		return table.FromRows(rows), nil
	case "topojson":
		rows, err := ParseTopoJSON(data, opts.TopoObjectName)
		if err != nil {
			return nil, err
		}
		return table.FromRows(rows), nil
	case "rss":
		rows, err := ParseRSS(data)
		if err != nil {
			return nil, err
		}
		return table.FromRows(rows), nil
	case "kml":
		rows, err := ParseKML(data)
		if err != nil {
			return nil, err
		}
		return table.FromRows(rows), nil
	case "gml":
		rows, err := ParseGML(data)
		if err != nil {
			return nil, err
		}
		return table.FromRows(rows), nil
	case "jsonstat":
		rows, err := ParseJSONStat(data)
		if err != nil {
			return nil, err
		}
		return table.FromRows(rows), nil
	case "jsondb":
		return ParseJSONDB(data)
	default:
		return nil, fmt.Errorf("ingest: unknown source kind %q", kind)
	}
}
