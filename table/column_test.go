package table

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestColumnValuesAndUnique(t *testing.T) {
	tb := New([]Field{NewField("cat")}, [][]string{{"A"}, {"B"}, {"A"}, {"C"}})
	col, ok := tb.Column("cat")
	require.True(t, ok)
	assert.Equal(t, []string{"A", "B", "A", "C"}, col.Values())
	assert.Equal(t, []string{"A", "B", "C"}, col.UniqueValues())
}

func TestColumnMap(t *testing.T) {
	tb := New([]Field{NewField("n")}, [][]string{{"1"}, {"2"}, {"3"}})
	col, _ := tb.Column("n")
	col.Map(func(current string, row []string, idx int) string {
		return current + "!"
	})
	assert.Equal(t, []string{"1!", "2!", "3!"}, col.Values())
}

func TestColumnRename(t *testing.T) {
	tb := New([]Field{NewField("old")}, [][]string{{"x"}})
	col, _ := tb.Column("old")
	col.Rename("new")
	assert.Equal(t, "new", tb.FieldNames()[0])
	assert.Equal(t, "new", col.Name())
}

func TestColumnRemoveInvalidatesHandle(t *testing.T) {
	tb := New([]Field{NewField("a"), NewField("b")}, [][]string{{"1", "2"}})
	col, _ := tb.Column("a")
	col.Remove()
	assert.False(t, col.Valid())
	assert.Equal(t, []string{"b"}, tb.FieldNames())
}

func TestColumnHandleSurvivesDataOnlyMutation(t *testing.T) {
	tb := New([]Field{NewField("a"), NewField("b")}, [][]string{{"1", "2"}})
	col, _ := tb.Column("b")
	tb.SetCell(0, 0, "99")
	// Cell mutations don't change field shape/order, so the handle stays
	// valid (spec only calls out removal/reorder as invalidating).
	assert.True(t, col.Valid())

	tb.AppendField(NewField("c"))
	// Appending a field changes the field vector's shape, so outstanding
	// handles are invalidated even though b's own index didn't move.
	assert.False(t, col.Valid())
}
