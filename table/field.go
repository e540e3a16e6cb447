package table

import "strings"

// FieldType is the type tag for a column. It is advisory only — all cells
// remain stored as strings. NewField sets TypeString, and only the jsondb
// loader carries a stored tag through; no ingestion path sniffs values to
// set it, and sort (see sort.go in package ops) sniffs the column's values
// itself instead of reading it.
type FieldType int

const (
	TypeString FieldType = iota
	TypeNumber
	TypeBoolean
	TypeDate
	TypeGeometry
)

// Field is a column descriptor. Field order defines column index; Id is the
// column name used for lookup.
type Field struct {
	Id       string
	Typ      FieldType
	Width    int
	Decimals int
	Created  bool // marks a synthesized column; only the jsondb loader sets it, from the stored document
}

// NewField builds a Field with the given id, defaulting Typ to TypeString.
func NewField(id string) Field {
	return Field{Id: strings.TrimSpace(id), Typ: TypeString}
}

func cloneFields(fields []Field) []Field {
	out := make([]Field, len(fields))
	copy(out, fields)
	return out
}

func fieldIds(fields []Field) []string {
	out := make([]string, len(fields))
	for i, f := range fields {
		out[i] = f.Id
	}
	return out
}
