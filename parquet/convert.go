package parquet

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/gjrichter/ixmaps-data/geo"
)

// convertCell converts one scanned engine value to its cell string per the
// type tag precomputed for its column (spec §4.H step 7).
func convertCell(ct CellType, v any) string {
	if v == nil {
		return ""
	}
	switch ct {
	case CellGeometry:
		return convertGeometry(v)
	case CellArray:
		return convertArray(v)
	case CellString:
		return fmt.Sprint(v)
	case CellNumber, CellBoolean:
		return fmt.Sprint(v)
	case CellDate:
		return convertDate(v)
	default:
		return convertOther(v)
	}
}

func convertGeometry(v any) string {
	switch val := v.(type) {
	case []byte:
		return geo.DecodeWKB(val)
	case string:
		if geo.IsWKT(val) {
			return geo.DecodeWKT(val)
		}
		return geo.DecodeWKB([]byte(val))
	default:
		return geo.StringifyGeometry(val)
	}
}

func convertArray(v any) string {
	// Engine-native list values arrive already materialized as []any;
	// json.Marshal handles the nested element types directly.
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(b)
}

func convertDate(v any) string {
	if t, ok := v.(time.Time); ok {
		return t.UTC().Format(time.RFC3339)
	}
	return fmt.Sprint(v)
}

// convertOther runs a runtime type dispatch for columns whose
// engine type string didn't map to a known tag (spec §4.H step 7, "other").
func convertOther(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case bool, int, int32, int64, float32, float64:
		return fmt.Sprint(val)
	case time.Time:
		return val.UTC().Format(time.RFC3339)
	case []byte:
		return geo.DecodeWKB(val)
	case []any:
		b, err := json.Marshal(val)
		if err != nil {
			return fmt.Sprint(val)
		}
		return string(b)
	default:
		b, err := json.Marshal(val)
		if err != nil {
			return fmt.Sprint(val)
		}
		return string(b)
	}
}
