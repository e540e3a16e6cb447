package ops

import (
	"testing"

	"github.com/gjrichter/ixmaps-data/table"
	"github.com/stretchr/testify/assert"
)

func TestSort_NumericAscending(t *testing.T) {
	tb := table.FromRows([][]string{
		{"n"}, {"10"}, {"2"}, {"1 234,5"},
	})
	Sort(tb, "n", "", nil)
	assert.Equal(t, []string{"2"}, tb.RecordAt(0))
	assert.Equal(t, []string{"10"}, tb.RecordAt(1))
	assert.Equal(t, []string{"1 234,5"}, tb.RecordAt(2))
}

func TestSort_DescendingDirection(t *testing.T) {
	tb := table.FromRows([][]string{
		{"n"}, {"1"}, {"3"}, {"2"},
	})
	Sort(tb, "n", "DOWN", nil)
	assert.Equal(t, []string{"3"}, tb.RecordAt(0))
	assert.Equal(t, []string{"2"}, tb.RecordAt(1))
	assert.Equal(t, []string{"1"}, tb.RecordAt(2))
}

func TestSort_LexicographicWhenNotNumeric(t *testing.T) {
	tb := table.FromRows([][]string{
		{"name"}, {"banana"}, {"apple"}, {"cherry"},
	})
	Sort(tb, "name", "", nil)
	assert.Equal(t, []string{"apple"}, tb.RecordAt(0))
	assert.Equal(t, []string{"banana"}, tb.RecordAt(1))
	assert.Equal(t, []string{"cherry"}, tb.RecordAt(2))
}

// sort preserves the multiset of records.
func TestSort_PreservesMultiset(t *testing.T) {
	tb := table.FromRows([][]string{
		{"n"}, {"3"}, {"1"}, {"2"}, {"1"},
	})
	before := map[string]int{}
	for _, r := range tb.Records() {
		before[r[0]]++
	}
	Sort(tb, "n", "", nil)
	after := map[string]int{}
	for _, r := range tb.Records() {
		after[r[0]]++
	}
	assert.Equal(t, before, after)
}

func TestSort_MissingColumnWarnsAndLeavesUnchanged(t *testing.T) {
	tb := table.FromRows([][]string{{"n"}, {"2"}, {"1"}})
	var warned bool
	Sort(tb, "nope", "", warnSink(&warned))
	assert.True(t, warned)
	assert.Equal(t, []string{"2"}, tb.RecordAt(0))
}
