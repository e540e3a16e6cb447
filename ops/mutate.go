package ops

import (
	"github.com/gjrichter/ixmaps-data/sink"
	"github.com/gjrichter/ixmaps-data/table"
)

// CellFn computes a new column's value from the cell found at a source
// column, plus the full row (spec §4.E addColumn, fn+source form).
type CellFn func(sourceCell string, row []string) string

// RowFn computes a new column's value from the full row only (addColumn,
// fn-without-source form).
type RowFn func(row []string) string

// AddColumnFunc appends a field named destination, filled via fn(row[source], row)
// when source is non-empty, or via rowFn(row) otherwise. Exactly one of fn,
// rowFn should be non-nil. Mutator: modifies t in place and returns it, or
// returns nil if source is referenced but not found (spec §7).
func AddColumnFunc(t *table.Table, destination string, source string, fn CellFn, rowFn RowFn, s sink.Sink) *table.Table {
	s = sink.OrNoop(s)
	var srcIdx int
	hasSource := source != ""
	if hasSource {
		idx, ok := t.FieldIndex(source)
		if !ok {
			s.Warn("addColumn: referenced source column not found", "column", source)
			return nil
		}
		srcIdx = idx
	}

	newIdx := t.AppendField(table.NewField(destination))
	for _, row := range t.RawRecords() {
		var v string
		switch {
		case hasSource && fn != nil:
			v = fn(row[srcIdx], row)
		case rowFn != nil:
			v = rowFn(row)
		default:
			v = "0"
		}
		row[newIdx] = v
	}
	t.MarkMutated()
	return t
}

// AddColumnValues appends a field named destination, filled from values by
// row index; rows past len(values) (or an empty-string entry) get "0" (spec §4.E
// addColumn, values form).
func AddColumnValues(t *table.Table, destination string, values []string) *table.Table {
	newIdx := t.AppendField(table.NewField(destination))
	records := t.RawRecords()
	for i, row := range records {
		if i < len(values) && values[i] != "" {
			row[newIdx] = values[i]
		} else {
			row[newIdx] = "0"
		}
	}
	t.MarkMutated()
	return t
}

// AddColumnConstant appends a field named destination filled with "0" on
// every row (spec §4.E addColumn, no fn/values form).
func AddColumnConstant(t *table.Table, destination string) *table.Table {
	return AddColumnValues(t, destination, nil)
}

// AddRow appends a new record of empty cells, then overwrites the cells
// named by keys present in values. Unknown keys are reported via s but the
// row is still added for the known keys (spec §4.E).
func AddRow(t *table.Table, values map[string]string, s sink.Sink) *table.Table {
	s = sink.OrNoop(s)
	fi := fieldIndexMap(t.FieldNames())
	t.AppendRecord(nil)
	rowIdx := t.NumRecords() - 1
	var unknown []string
	for k, v := range values {
		if idx, ok := fi[k]; ok {
			t.SetCell(rowIdx, idx, v)
		} else {
			unknown = append(unknown, k)
		}
	}
	if len(unknown) > 0 {
		s.Warn("addRow: key does not match any column", "keys", unknown)
	}
	return t
}

// Append concatenates other's records onto t in place, requiring an
// identical schema (same length and same ids, in order). On mismatch it
// reports a warning and returns nil instead of an inconsistent Table.
func Append(t *table.Table, other *table.Table, s sink.Sink) *table.Table {
	s = sink.OrNoop(s)
	a, b := t.FieldNames(), other.FieldNames()
	if len(a) != len(b) {
		s.Warn("append: schema mismatch", "reason", "field count differs")
		return nil
	}
	for i := range a {
		if a[i] != b[i] {
			s.Warn("append: schema mismatch", "reason", "field order/ids differ")
			return nil
		}
	}
	for _, row := range other.Records() {
		t.AppendRecord(row)
	}
	return t
}

// Revert inverts t's record order in place and returns t (spec §4.E).
func Revert(t *table.Table) *table.Table {
	t.Reverse()
	return t
}

// Reverse is an alias for Revert (spec §4.E documents both names for the
// same in-place inversion).
func Reverse(t *table.Table) *table.Table {
	t.Reverse()
	return t
}

// JSON renders each record as a map from field id to cell value (spec §4.E
// json()).
func JSON(t *table.Table) []map[string]string {
	names := t.FieldNames()
	out := make([]map[string]string, 0, t.NumRecords())
	for _, row := range t.Records() {
		obj := make(map[string]string, len(names))
		for i, n := range names {
			if i < len(row) {
				obj[n] = row[i]
			}
		}
		out = append(out, obj)
	}
	return out
}
