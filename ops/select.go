package ops

import (
	"github.com/gjrichter/ixmaps-data/query"
	"github.com/gjrichter/ixmaps-data/sink"
	"github.com/gjrichter/ixmaps-data/table"
)

// Select parses and evaluates a WHERE clause against t, returning a fresh
// Table of the matching records (records are copied, not aliased — spec
// §4.E). A parse failure or a clause referencing a column absent from t's
// schema is fail-soft: a warning is reported through s and an
// empty-but-typed Table carrying t's schema is returned (spec §7).
func Select(t *table.Table, whereClause string, s sink.Sink) *table.Table {
	s = sink.OrNoop(s)

	q, err := query.Parse(whereClause)
	if err != nil {
		s.Warn("select: failed to parse WHERE clause", "clause", whereClause, "error", err.Error())
		return emptyLike(t)
	}

	fi := fieldIndexMap(t.FieldNames())
	if missing := missingFields(q.Fields(), fi); len(missing) > 0 {
		s.Warn("select: referenced column not found", "columns", missing)
		return emptyLike(t)
	}

	var matches [][]string
	for _, row := range t.RawRecords() {
		if query.EvaluateRow(row, fi, q) {
			matches = append(matches, append([]string(nil), row...))
		}
	}
	return table.New(t.Fields(), matches)
}

// Predicate is a host-language row predicate for Filter.
type Predicate func(row []string) bool

// Filter returns a fresh Table of the records for which pred returns true.
// Filter(func(_ []string) bool { return true }) yields a Table equal to the
// source.
func Filter(t *table.Table, pred Predicate) *table.Table {
	var matches [][]string
	for _, row := range t.RawRecords() {
		if pred(row) {
			matches = append(matches, append([]string(nil), row...))
		}
	}
	return table.New(t.Fields(), matches)
}

// SubtableByNames projects t onto the given column names, in the given order
// (records are copies). A name that doesn't resolve is fail-soft: a warning
// is reported through s and an empty-but-typed Table carrying t's schema is
// returned, rather than silently projecting onto whatever subset resolved
// (spec §7).
func SubtableByNames(t *table.Table, names []string, s sink.Sink) *table.Table {
	s = sink.OrNoop(s)
	fi := fieldIndexMap(t.FieldNames())
	if missing := missingFields(names, fi); len(missing) > 0 {
		s.Warn("subtable: referenced column not found", "columns", missing)
		return emptyLike(t)
	}
	indices := make([]int, len(names))
	for i, n := range names {
		indices[i] = fi[n]
	}
	return SubtableByIndices(t, indices)
}

// SubtableByIndices projects t onto the given field indices, in order.
func SubtableByIndices(t *table.Table, indices []int) *table.Table {
	srcFields := t.Fields()
	fields := make([]table.Field, 0, len(indices))
	for _, idx := range indices {
		if idx >= 0 && idx < len(srcFields) {
			fields = append(fields, srcFields[idx])
		}
	}
	records := make([][]string, 0, t.NumRecords())
	for _, row := range t.RawRecords() {
		rec := make([]string, 0, len(indices))
		for _, idx := range indices {
			if idx >= 0 && idx < len(row) {
				rec = append(rec, row[idx])
			}
		}
		records = append(records, rec)
	}
	return table.New(fields, records)
}
