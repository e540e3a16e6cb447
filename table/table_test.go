package table

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRows() [][]string {
	return [][]string{
		{"name", "age"},
		{"Alice", "30"},
		{"Bob", "17"},
		{"Cleo", "21"},
	}
}

func TestFromRowsToRows_RoundTrip(t *testing.T) {
	// from_rows(to_rows(t)) == t for uniform-length rows.
	tb := FromRows(sampleRows())
	rt := FromRows(tb.ToRows())
	assert.Equal(t, tb.ToRows(), rt.ToRows())
}

func TestFromRows_DropsWrongLengthRecords(t *testing.T) {
	rows := [][]string{
		{"name", "age"},
		{"Alice", "30"},
		{"Bob"}, // wrong length, must be dropped
		{"Cleo", "21", "extra"},
	}
	tb := FromRows(rows)
	require.Equal(t, 1, tb.NumRecords())
	assert.Equal(t, []string{"Alice", "30"}, tb.RecordAt(0))
}

func TestFromRows_TrimsFieldIds(t *testing.T) {
	rows := [][]string{{" name ", "age "}, {"Alice", "30"}}
	tb := FromRows(rows)
	assert.Equal(t, []string{"name", "age"}, tb.FieldNames())
}

func TestSummaryStaysInSync(t *testing.T) {
	// after any operator/mutation, summary.records/fields match.
	tb := FromRows(sampleRows())
	tb.AppendField(NewField("country"))
	tb.AppendRecord([]string{"Dee", "40", "DE"})
	s := tb.Summary()
	assert.Equal(t, tb.NumRecords(), s.Records)
	assert.Equal(t, tb.NumFields(), s.Fields)
}

func TestColumnIndex_FirstMatch(t *testing.T) {
	fields := []Field{NewField("a"), NewField("b"), NewField("a")}
	tb := New(fields, [][]string{{"1", "2", "3"}})
	idx, ok := tb.FieldIndex("a")
	require.True(t, ok)
	assert.Equal(t, 0, idx)
}

func TestReverseIsInvolution(t *testing.T) {
	// revert . revert == identity.
	tb := FromRows(sampleRows())
	before := tb.ToRows()
	tb.Reverse()
	tb.Reverse()
	assert.Equal(t, before, tb.ToRows())
}

func TestRemoveFieldAt(t *testing.T) {
	tb := FromRows(sampleRows())
	tb.RemoveFieldAt(0)
	assert.Equal(t, []string{"age"}, tb.FieldNames())
	assert.Equal(t, []string{"30"}, tb.RecordAt(0))
}

func TestAppendFieldPadsExistingRecords(t *testing.T) {
	tb := FromRows(sampleRows())
	tb.AppendField(NewField("country"))
	assert.Equal(t, 3, tb.NumFields())
	for i := 0; i < tb.NumRecords(); i++ {
		assert.Equal(t, "", tb.RecordAt(i)[2])
	}
}
