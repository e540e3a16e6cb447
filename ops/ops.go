// Package ops implements the relational Operator Engine (spec §4.E): select,
// filter, aggregate, pivot, condense, subtable, sort, groupColumns, lookup,
// addColumn/addRow, append, json, revert/reverse, and addTimeColumns. Every
// non-trivial operator returns a fresh *table.Table; mutators modify their
// receiver in place and return it, matching the value-object/mutator split
// spec §3 calls out as part of the public contract.
package ops

import "github.com/gjrichter/ixmaps-data/table"

func fieldIndexMap(names []string) map[string]int {
	m := make(map[string]int, len(names))
	for i, n := range names {
		m[n] = i
	}
	return m
}

func missingFields(want []string, have map[string]int) []string {
	var missing []string
	for _, f := range want {
		if _, ok := have[f]; !ok {
			missing = append(missing, f)
		}
	}
	return missing
}

// emptyLike returns a zero-record Table carrying a copy of t's schema, used
// by the fail-soft paths of Select and SubtableByNames (spec §7 category 4: "Semantic
// errors emit a user-visible warning ... and return an empty-but-typed
// Table").
func emptyLike(t *table.Table) *table.Table {
	return table.NewEmpty(t.Fields())
}
