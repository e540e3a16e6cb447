package ingest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseJSONStat_FlattensTwoDimensions(t *testing.T) {
	doc := `{
		"version":"2.0",
		"id":["year","region"],
		"size":[2,2],
		"dimension":{
			"year":{"category":{"index":["2020","2021"],"label":{"2020":"2020","2021":"2021"}}},
			"region":{"category":{"index":["north","south"],"label":{"north":"North","south":"South"}}}
		},
		"value":[1,2,3,4]
	}`
	rows, err := ParseJSONStat([]byte(doc))
	require.NoError(t, err)
	assert.Equal(t, []string{"year", "region", "value"}, rows[0])
	assert.Equal(t, []string{"2020", "North", "1"}, rows[1])
	assert.Equal(t, []string{"2020", "South", "2"}, rows[2])
	assert.Equal(t, []string{"2021", "North", "3"}, rows[3])
	assert.Equal(t, []string{"2021", "South", "4"}, rows[4])
}
