package table

import "strings"

// Summary mirrors the source's {records, fields} counter pair. It is always
// computed fresh from the live vectors rather than cached, so invariant (ii)
// from spec §3 — summary.records == len(records), summary.fields ==
// len(fields) — holds by construction instead of by bookkeeping discipline.
type Summary struct {
	Records int
	Fields  int
}

// lookupKey identifies a cached lookup map built by ops.Lookup (spec §4.E): "lookup(value, {value, lookup}) caches
// the lookup map per (value,lookup) pair on the table instance."
type lookupKey struct {
	value  string
	lookup string
}

// Table is the uniform in-memory relational table: an ordered sequence of
// Fields plus an ordered sequence of Records, each Record a slice of Cells
// (strings) of length len(Fields). Tables are value objects from the caller's
// perspective — non-trivial operators in package ops return a fresh Table,
// mutators modify one in place — but a single Table is never shared across
// concurrent operators (spec §5 "Sharing").
type Table struct {
	fields  []Field
	records [][]string

	structVersion int // bumped only when the field vector changes shape/order; invalidates Column handles
	dataVersion   int // bumped on any mutation at all; invalidates the lookup cache
	cache         map[lookupKey]map[string]string
}

// New builds a Table from an explicit field/record set. Records whose length
// does not match len(fields) are dropped, mirroring FromRows's load-time
// invariant enforcement (spec §3, invariant i).
func New(fields []Field, records [][]string) *Table {
	t := &Table{fields: cloneFields(fields)}
	for _, r := range records {
		if len(r) == len(t.fields) {
			t.records = append(t.records, append([]string(nil), r...))
		}
	}
	return t
}

// NewEmpty returns a Table with the given schema and zero records. Used by
// the fail-soft paths in package ops (spec §4.D, §7:
// "referenced field is absent ... returns an empty Table with the parent's
// schema copied").
func NewEmpty(fields []Field) *Table {
	return &Table{fields: cloneFields(fields)}
}

// FromRows builds a Table from a 2-D string array: the first row becomes
// field ids (each trimmed of surrounding whitespace), subsequent rows are
// appended only if their length matches the field count (spec §4.B).
func FromRows(rows [][]string) *Table {
	if len(rows) == 0 {
		return &Table{}
	}
	header := rows[0]
	fields := make([]Field, len(header))
	for i, h := range header {
		fields[i] = NewField(strings.TrimSpace(h))
	}
	t := &Table{fields: fields}
	for _, r := range rows[1:] {
		if len(r) == len(fields) {
			t.records = append(t.records, append([]string(nil), r...))
		}
	}
	return t
}

// ToRows renders the Table back into a 2-D string array: header followed by
// records. FromRows(t.ToRows()) reproduces t.
func (t *Table) ToRows() [][]string {
	rows := make([][]string, 0, len(t.records)+1)
	rows = append(rows, fieldIds(t.fields))
	for _, r := range t.records {
		rows = append(rows, append([]string(nil), r...))
	}
	return rows
}

// Fields returns a defensive copy of the field descriptors in column order.
func (t *Table) Fields() []Field {
	return cloneFields(t.fields)
}

// FieldNames returns the column ids in order.
func (t *Table) FieldNames() []string {
	return fieldIds(t.fields)
}

// NumFields returns the current field count.
func (t *Table) NumFields() int { return len(t.fields) }

// NumRecords returns the current record count.
func (t *Table) NumRecords() int { return len(t.records) }

// Summary returns the {records, fields} pair (spec §3).
func (t *Table) Summary() Summary {
	return Summary{Records: len(t.records), Fields: len(t.fields)}
}

// FieldIndex returns the index of the first field whose id matches name
// (first-match semantics, no uniqueness enforcement — spec §3, invariant iv).
func (t *Table) FieldIndex(name string) (int, bool) {
	for i, f := range t.fields {
		if f.Id == name {
			return i, true
		}
	}
	return -1, false
}

// Records returns a defensive deep copy of every record.
func (t *Table) Records() [][]string {
	out := make([][]string, len(t.records))
	for i, r := range t.records {
		out[i] = append([]string(nil), r...)
	}
	return out
}

// RecordAt returns a defensive copy of the record at i.
func (t *Table) RecordAt(i int) []string {
	if i < 0 || i >= len(t.records) {
		return nil
	}
	return append([]string(nil), t.records[i]...)
}

// CellAt returns the cell at (row, col), or "" if out of range.
func (t *Table) CellAt(row, col int) string {
	if row < 0 || row >= len(t.records) {
		return ""
	}
	if col < 0 || col >= len(t.records[row]) {
		return ""
	}
	return t.records[row][col]
}

// Clone returns a deep, independent copy of the Table.
func (t *Table) Clone() *Table {
	return New(t.fields, t.records)
}

// touch drops the lookup cache — called by every in-place mutator so a
// cached lookup map never outlives the data it was built from (spec §4.E:
// "lookup(value, {value, lookup}) caches the lookup map ... on the table
// instance").
func (t *Table) touch() {
	t.dataVersion++
	t.cache = nil
}

// touchStructure additionally bumps the structural version, invalidating
// outstanding Column handles. Only called by mutators that change the field
// vector's shape or order (spec §3: "Column Handle ... invalidated if its
// field is removed"; spec §9: "operators that remove or reorder columns
// must invalidate outstanding handles").
func (t *Table) touchStructure() {
	t.structVersion++
	t.touch()
}

// StructVersion returns the current structural mutation counter, used by
// Column to detect a stale handle.
func (t *Table) StructVersion() int { return t.structVersion }

// SetFields replaces the field descriptors wholesale. Used by operators that
// rebuild a schema (e.g. pivot) without going through New.
func (t *Table) SetFields(fields []Field) {
	t.fields = cloneFields(fields)
	t.touchStructure()
}

// SetRecords replaces the record set wholesale; records of the wrong length
// are dropped, same as FromRows/New.
func (t *Table) SetRecords(records [][]string) {
	t.records = t.records[:0]
	for _, r := range records {
		if len(r) == len(t.fields) {
			t.records = append(t.records, append([]string(nil), r...))
		}
	}
	t.touch()
}

// AppendField appends a new field, padding every existing record with "" at
// the new column index. Used by ops.AddColumnFunc and ops.AddColumnValues.
func (t *Table) AppendField(f Field) int {
	t.fields = append(t.fields, f)
	for i := range t.records {
		t.records[i] = append(t.records[i], "")
	}
	t.touchStructure()
	return len(t.fields) - 1
}

// AppendRecord appends a record of the current field width. If values is
// shorter it is padded with ""; if longer it is truncated, matching the
// defensive behavior AddRow needs (it starts from an all-"" row and
// overwrites known keys).
func (t *Table) AppendRecord(values []string) {
	row := make([]string, len(t.fields))
	copy(row, values)
	t.records = append(t.records, row)
	t.touch()
}

// RemoveFieldAt removes the field at idx and the corresponding cell from
// every record (Column.Remove, spec §4.C).
func (t *Table) RemoveFieldAt(idx int) {
	if idx < 0 || idx >= len(t.fields) {
		return
	}
	t.fields = append(t.fields[:idx], t.fields[idx+1:]...)
	for i, r := range t.records {
		t.records[i] = append(r[:idx], r[idx+1:]...)
	}
	t.touchStructure()
}

// SetCell overwrites a single cell in place.
func (t *Table) SetCell(row, col int, value string) {
	if row < 0 || row >= len(t.records) {
		return
	}
	if col < 0 || col >= len(t.records[row]) {
		return
	}
	t.records[row][col] = value
	t.touch()
}

// RenameField rewrites the id of the field at idx (Column.Rename).
func (t *Table) RenameField(idx int, newID string) {
	if idx < 0 || idx >= len(t.fields) {
		return
	}
	t.fields[idx].Id = newID
	t.touch()
}

// Reverse inverts record order in place (ops.Revert / ops.Reverse).
func (t *Table) Reverse() {
	for i, j := 0, len(t.records)-1; i < j; i, j = i+1, j-1 {
		t.records[i], t.records[j] = t.records[j], t.records[i]
	}
	t.touch()
}

// RawRecords gives direct (non-cloned) access to the record vector for
// performance-sensitive callers within this module tree — package ops uses
// it to sort records in place (via sort.Slice) without an O(n*m) copy. Callers
// that reorder or mutate the returned slice must call MarkMutated
// afterwards so Column handles and the lookup cache observe the change.
func (t *Table) RawRecords() [][]string { return t.records }

// RawFields mirrors RawRecords for Fields.
func (t *Table) RawFields() []Field { return t.fields }

// MarkMutated bumps the mutation version and drops the lookup cache. Call
// after mutating the slice returned by RawRecords in place (e.g. sort.Sort).
func (t *Table) MarkMutated() { t.touch() }

// CachedLookup returns the cached map for (value, lookup) built by build, or
// builds and caches it on first use. The cache is invalidated whenever the
// table mutates (see touch).
func (t *Table) CachedLookup(value, lookupCol string, build func() map[string]string) map[string]string {
	key := lookupKey{value: value, lookup: lookupCol}
	if t.cache == nil {
		t.cache = make(map[lookupKey]map[string]string)
	}
	if m, ok := t.cache[key]; ok {
		return m
	}
	m := build()
	t.cache[key] = m
	return m
}
