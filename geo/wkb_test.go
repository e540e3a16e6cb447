package geo

import (
	"encoding/binary"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
)

// WKB Point decode.
func TestDecodeWKB_Point(t *testing.T) {
	raw, err := hex.DecodeString("0101000000000000000000F03F0000000000000040")
	assert.NoError(t, err)
	got := DecodeWKB(raw)
	assert.JSONEq(t, `{"type":"Point","coordinates":[1,2]}`, got)
}

// WKB round-trip for Point.
func TestDecodeWKB_RoundTrip(t *testing.T) {
	raw := EncodeWKBPoint(3.5, -7.25)
	got := DecodeWKB(raw)
	assert.JSONEq(t, `{"type":"Point","coordinates":[3.5,-7.25]}`, got)
}

func TestDecodeWKB_MultiTypeFallsToSentinel(t *testing.T) {
	data := make([]byte, 5)
	data[0] = 1
	binary.LittleEndian.PutUint32(data[1:5], 4) // MultiPoint
	got := DecodeWKB(data)
	assert.JSONEq(t, `{"type":"WKB","wkb":"`+hex.EncodeToString(data)+`","geomType":4}`, got)
}

func TestDecodeWKB_MalformedFallsToSentinel(t *testing.T) {
	got := DecodeWKB([]byte{1, 2})
	assert.Contains(t, got, `"type":"WKB"`)
}

func TestDecodeWKT_PointDecodedDirectly(t *testing.T) {
	got := DecodeWKT("POINT(1 2)")
	assert.JSONEq(t, `{"type":"Point","coordinates":[1,2]}`, got)
}

func TestDecodeWKT_OtherTypesWrapped(t *testing.T) {
	got := DecodeWKT("LINESTRING(0 0, 1 1)")
	assert.Contains(t, got, `"type":"WKT"`)
	assert.Contains(t, got, "LINESTRING")
}

func TestIsWKT(t *testing.T) {
	assert.True(t, IsWKT("POINT(1 2)"))
	assert.False(t, IsWKT(`{"type":"Point"}`))
}
