package table

// Column is a transient (table, field index) handle. It never owns data and
// is invalidated if the underlying field is removed or the table's schema
// otherwise changes shape out from under it (spec §3 "Column Handle").
type Column struct {
	t       *Table
	index   int
	version int // table.structVersion at the time this handle was issued
}

// Column returns a handle for the first field matching name, or false if no
// such field exists.
func (t *Table) Column(name string) (*Column, bool) {
	idx, ok := t.FieldIndex(name)
	if !ok {
		return nil, false
	}
	return &Column{t: t, index: idx, version: t.structVersion}, true
}

// ColumnAt returns a handle for the field at idx, or false if out of range.
func (t *Table) ColumnAt(idx int) (*Column, bool) {
	if idx < 0 || idx >= len(t.fields) {
		return nil, false
	}
	return &Column{t: t, index: idx, version: t.structVersion}, true
}

// Valid reports whether the handle's field still exists at the same index
// it was issued for (i.e. no field has been added, removed, or reordered
// since).
func (c *Column) Valid() bool {
	return c.t.structVersion == c.version && c.index < len(c.t.fields)
}

// Name returns the column's current id.
func (c *Column) Name() string {
	if !c.Valid() {
		return ""
	}
	return c.t.fields[c.index].Id
}

// Index returns the column's field index.
func (c *Column) Index() int { return c.index }

// Values returns the full value sequence for this column, in row order.
func (c *Column) Values() []string {
	if !c.Valid() {
		return nil
	}
	out := make([]string, len(c.t.records))
	for i, r := range c.t.records {
		out[i] = r[c.index]
	}
	return out
}

// UniqueValues returns the column's values deduplicated, preserving the
// order of first occurrence.
func (c *Column) UniqueValues() []string {
	vals := c.Values()
	seen := make(map[string]struct{}, len(vals))
	out := make([]string, 0, len(vals))
	for _, v := range vals {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

// MapFunc receives the current cell value, the full row (defensive copy),
// and the column index, and returns the new cell value.
type MapFunc func(current string, row []string, columnIndex int) string

// Map remaps every cell in the column in place using fn.
func (c *Column) Map(fn MapFunc) {
	if !c.Valid() {
		return
	}
	for i, r := range c.t.records {
		row := append([]string(nil), r...)
		c.t.records[i][c.index] = fn(r[c.index], row, c.index)
	}
	c.t.touch()
}

// Rename rewrites the field's id. The handle remains valid — renaming does
// not change field shape or order.
func (c *Column) Rename(newID string) {
	if !c.Valid() {
		return
	}
	c.t.RenameField(c.index, newID)
}

// Remove deletes the field and the corresponding cell from every record,
// invalidating this handle (and any other handle into the same table whose
// index shifted).
func (c *Column) Remove() {
	if !c.Valid() {
		return
	}
	c.t.RemoveFieldAt(c.index)
	// Deliberately do not refresh c.version: removing a column must
	// invalidate this handle per spec §3, not keep it "valid but shifted".
}
