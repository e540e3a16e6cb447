package ops

import (
	"testing"

	"github.com/gjrichter/ixmaps-data/table"
	"github.com/stretchr/testify/assert"
)

func lookupFixture() *table.Table {
	return table.FromRows([][]string{
		{"id", "v"},
		{"1", "10"},
		{"1", "5"},
		{"2", "3"},
	})
}

func TestLookupArray_OverwriteDefault(t *testing.T) {
	m := LookupArray(lookupFixture(), "v", "id", "", nil)
	assert.Equal(t, "5", m["1"])
	assert.Equal(t, "3", m["2"])
}

func TestLookupArray_Sum(t *testing.T) {
	m := LookupArray(lookupFixture(), "v", "id", "sum", nil)
	assert.Equal(t, "15", m["1"])
}

func TestLookupArray_Max(t *testing.T) {
	m := LookupArray(lookupFixture(), "v", "id", "max", nil)
	assert.Equal(t, "10", m["1"])
}

func TestLookupStringArray_ConcatenatesWithComma(t *testing.T) {
	m := LookupStringArray(lookupFixture(), "v", "id", nil)
	assert.Equal(t, "10, 5", m["1"])
}

func TestLookup_CachesUntilTableMutates(t *testing.T) {
	tb := lookupFixture()
	a := Lookup(tb, "1", "v", "id", nil)
	assert.Equal(t, "5", a)

	// Any mutation drops the cache (table.touch), so a later Lookup call for
	// the same (value, lookup) pair reflects the updated data rather than a
	// stale map.
	tb.SetCell(1, 1, "7")
	b := Lookup(tb, "1", "v", "id", nil)
	assert.Equal(t, "7", b)
}

func TestGroupColumns_SumsNamedSources(t *testing.T) {
	tb := table.FromRows([][]string{
		{"a", "b", "c"},
		{"1", "2", "x"},
	})
	GroupColumns(tb, []string{"a", "b"}, "total", nil)
	assert.Equal(t, []string{"1", "2", "x", "3"}, tb.RecordAt(0))
}

func TestGroupColumns_MissingSourceWarnsAndReturnsNil(t *testing.T) {
	tb := table.FromRows([][]string{{"a"}, {"1"}})
	var warned bool
	out := GroupColumns(tb, []string{"nope"}, "total", warnSink(&warned))
	assert.True(t, warned)
	assert.Nil(t, out)
}
