package parquet

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestConvertCell_NilIsEmptyString(t *testing.T) {
	assert.Equal(t, "", convertCell(CellString, nil))
}

func TestConvertCell_StringPassesThrough(t *testing.T) {
	assert.Equal(t, "hello", convertCell(CellString, "hello"))
}

func TestConvertCell_NumberAndBoolean(t *testing.T) {
	assert.Equal(t, "42", convertCell(CellNumber, int64(42)))
	assert.Equal(t, "true", convertCell(CellBoolean, true))
}

func TestConvertCell_DateIsISO8601(t *testing.T) {
	ts := time.Date(2024, 3, 5, 12, 30, 0, 0, time.UTC)
	assert.Equal(t, "2024-03-05T12:30:00Z", convertCell(CellDate, ts))
}

func TestConvertCell_ArrayIsJSONSerialized(t *testing.T) {
	assert.Equal(t, `["a","b"]`, convertCell(CellArray, []any{"a", "b"}))
}

func TestConvertCell_GeometryBlobDecodesToGeoJSON(t *testing.T) {
	wkb := []byte{0x01, 0x01, 0x00, 0x00, 0x00, 0, 0, 0, 0, 0, 0, 0xf0, 0x3f, 0, 0, 0, 0, 0, 0, 0, 0x40}
	out := convertCell(CellGeometry, wkb)
	assert.Contains(t, out, "Point")
}

func TestConvertOther_DispatchesByRuntimeType(t *testing.T) {
	assert.Equal(t, "abc", convertOther("abc"))
	assert.Equal(t, "7", convertOther(7))
	assert.Equal(t, "true", convertOther(true))
}
