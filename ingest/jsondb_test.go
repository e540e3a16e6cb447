package ingest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseJSONDB_BuildsTableFromPersistedShape(t *testing.T) {
	doc := `{
		"fields":[{"id":"a","typ":0},{"id":"b","typ":1}],
		"records":[["x","1"],["y","2"]]
	}`
	out, err := ParseJSONDB([]byte(doc))
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, out.FieldNames())
	assert.Equal(t, 2, out.NumRecords())
	assert.Equal(t, []string{"x", "1"}, out.RecordAt(0))
}
