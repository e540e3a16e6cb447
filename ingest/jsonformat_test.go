package ingest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseJSON_ColumnsAndRowsShape(t *testing.T) {
	rows, err := ParseJSON([]byte(`{"data":{"columns":["a","b"],"rows":[[1,2],[3,4]]}}`))
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, rows[0])
	assert.Equal(t, []string{"1", "2"}, rows[1])
	assert.Equal(t, []string{"3", "4"}, rows[2])
}

func TestParseJSON_ArrayOfFlatObjects(t *testing.T) {
	rows, err := ParseJSON([]byte(`[{"name":"Alice","age":30},{"name":"Bob","age":17}]`))
	require.NoError(t, err)
	assert.Equal(t, []string{"name", "age"}, rows[0])
	assert.Equal(t, []string{"Alice", "30"}, rows[1])
	assert.Equal(t, []string{"Bob", "17"}, rows[2])
}

func TestParseJSON_ArrayOfNestedObjects_LeafPaths(t *testing.T) {
	rows, err := ParseJSON([]byte(`[{"name":"x","pos":{"lat":1,"lon":2}}]`))
	require.NoError(t, err)
	assert.Equal(t, []string{"name", "pos.lat", "pos.lon"}, rows[0])
	assert.Equal(t, []string{"x", "1", "2"}, rows[1])
}

func TestParseJSON_MissingLeafBecomesLiteralNull(t *testing.T) {
	rows, err := ParseJSON([]byte(`[{"name":"x","age":1},{"name":"y"}]`))
	require.NoError(t, err)
	assert.Equal(t, []string{"y", "null"}, rows[2])
}

func TestParseJSON_BFSFallbackFindsFirstArray(t *testing.T) {
	rows, err := ParseJSON([]byte(`{"meta":{"ok":true},"results":{"items":[{"a":1}]}}`))
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, rows[0])
	assert.Equal(t, []string{"1"}, rows[1])
}
