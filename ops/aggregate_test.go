package ops

import (
	"testing"

	"github.com/gjrichter/ixmaps-data/table"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAggregate_SumByLeadColumn(t *testing.T) {
	tb := table.FromRows([][]string{
		{"region", "amt"},
		{"north", "10"},
		{"north", "5"},
		{"south", "2"},
	})
	out := Aggregate(tb, "amt", "region", "", nil)
	assert.Equal(t, []string{"region", "amt"}, out.FieldNames())
	require.Equal(t, 2, out.NumRecords())
	assert.Equal(t, []string{"north", "15"}, out.RecordAt(0))
	assert.Equal(t, []string{"south", "2"}, out.RecordAt(1))
}

func TestAggregate_MeanDividesByGroupCount(t *testing.T) {
	tb := table.FromRows([][]string{
		{"region", "amt"},
		{"north", "10"},
		{"north", "4"},
	})
	out := Aggregate(tb, "amt", "region", "mean", nil)
	assert.Equal(t, []string{"north", "7"}, out.RecordAt(0))
}

func TestAggregate_MultiColumnLeadSpec(t *testing.T) {
	tb := table.FromRows([][]string{
		{"region", "cat", "amt"},
		{"north", "A", "10"},
		{"north", "B", "1"},
		{"north", "A", "2"},
	})
	out := Aggregate(tb, "amt", "region|cat", "", nil)
	require.Equal(t, 2, out.NumRecords())
	assert.Equal(t, []string{"north", "A", "12"}, out.RecordAt(0))
	assert.Equal(t, []string{"north", "B", "1"}, out.RecordAt(1))
}

func TestAggregate_MissingColumnWarnsAndReturnsEmpty(t *testing.T) {
	tb := table.FromRows([][]string{{"region", "amt"}, {"north", "10"}})
	var warned bool
	out := Aggregate(tb, "nope", "region", "", warnSink(&warned))
	assert.True(t, warned)
	assert.Equal(t, 0, out.NumRecords())
}
