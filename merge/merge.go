// Package merge implements the Merger (N-way lookup-keyed join) described
// in spec §4.I: registered sources are joined on a per-source lookup
// column, with the first source driving row iteration and every other
// source resolved through a value→row map built from its own lookup
// column.
package merge

import (
	"fmt"
	"strconv"

	"github.com/gjrichter/ixmaps-data/sink"
	"github.com/gjrichter/ixmaps-data/table"
)

// Source is one registered input to a Merger. Columns and Labels are
// optional: Columns defaults to every column of Table, and Labels[i]
// defaults to Columns[i] + "." + the source's registration index (spec
// §4.I).
type Source struct {
	Table        *table.Table
	LookupColumn string
	Columns      []string
	Labels       []string
}

type resolvedLabel struct {
	sourceIdx int
	colIdx    int
}

// Merger holds the registered sources and the (optionally narrowed)
// output projection.
type Merger struct {
	sources       []Source
	labelIndex    map[string]resolvedLabel
	defaultOutput []string
	outputColumns []string
}

// NewMerger registers sources in join order; source 0 is the primary whose
// rows drive iteration. Each source's Columns/Labels are defaulted in
// place if left empty.
func NewMerger(sources []Source) *Merger {
	m := &Merger{
		sources:    make([]Source, len(sources)),
		labelIndex: map[string]resolvedLabel{},
	}
	for i, src := range sources {
		if len(src.Columns) == 0 {
			src.Columns = src.Table.FieldNames()
		}
		if len(src.Labels) == 0 {
			src.Labels = make([]string, len(src.Columns))
			for j, c := range src.Columns {
				src.Labels[j] = c + "." + strconv.Itoa(i)
			}
		}
		m.sources[i] = src

		fi := fieldIndexOf(src.Table)
		for j, col := range src.Columns {
			if colIdx, ok := fi[col]; ok {
				label := src.Labels[j]
				m.labelIndex[label] = resolvedLabel{sourceIdx: i, colIdx: colIdx}
				m.defaultOutput = append(m.defaultOutput, label)
			}
		}
	}
	m.outputColumns = append([]string{}, m.defaultOutput...)
	return m
}

func fieldIndexOf(t *table.Table) map[string]int {
	m := make(map[string]int)
	for i, n := range t.FieldNames() {
		m[n] = i
	}
	return m
}

// SetOutputColumns narrows/reorders the output projection to the given
// labels, which must each resolve via the registered sources' label index
// (spec §4.I step 2).
func (m *Merger) SetOutputColumns(labels []string) {
	m.outputColumns = labels
}

// Merge executes the join: source 0's rows are iterated in order; for each
// output label resolving to source 0, the cell is read directly; for every
// other source, the row is looked up by source 0's lookup-column value in
// that source's own lookup-column→row map, substituting a single space
// " " when the key is absent. A label in outputColumns that does not
// resolve to any registered (source, column) pair is a warning and aborts
// the merge (spec §4.I, "Ambiguity").
func (m *Merger) Merge(s sink.Sink) *table.Table {
	s = sink.OrNoop(s)
	if len(m.sources) == 0 {
		return table.NewEmpty(nil)
	}

	var missing []string
	resolved := make([]resolvedLabel, len(m.outputColumns))
	for i, label := range m.outputColumns {
		r, ok := m.labelIndex[label]
		if !ok {
			missing = append(missing, label)
			continue
		}
		resolved[i] = r
	}
	if len(missing) > 0 {
		s.Warn("merge: output column does not resolve to any source", "columns", missing)
		return nil
	}

	primary := m.sources[0]
	primaryFI := fieldIndexOf(primary.Table)
	primaryLookupIdx, ok := primaryFI[primary.LookupColumn]
	if !ok {
		s.Warn("merge: primary source lookup column not found", "column", primary.LookupColumn)
		return nil
	}

	// rowMaps[i] is nil for i == 0 (primary rows are read directly).
	rowMaps := make([]map[string][]string, len(m.sources))
	for i := 1; i < len(m.sources); i++ {
		src := m.sources[i]
		fi := fieldIndexOf(src.Table)
		lookupIdx, ok := fi[src.LookupColumn]
		if !ok {
			s.Warn("merge: source lookup column not found", "source", i, "column", src.LookupColumn)
			return nil
		}
		rm := make(map[string][]string)
		for _, row := range src.Table.RawRecords() {
			rm[row[lookupIdx]] = row
		}
		rowMaps[i] = rm
	}

	fields := make([]table.Field, len(m.outputColumns))
	for i, label := range m.outputColumns {
		fields[i] = table.NewField(label)
	}

	var records [][]string
	for _, prow := range primary.Table.RawRecords() {
		key := prow[primaryLookupIdx]
		rec := make([]string, len(resolved))
		for i, r := range resolved {
			if r.sourceIdx == 0 {
				rec[i] = prow[r.colIdx]
				continue
			}
			if row, ok := rowMaps[r.sourceIdx][key]; ok {
				rec[i] = row[r.colIdx]
			} else {
				rec[i] = " "
			}
		}
		records = append(records, rec)
	}
	return table.New(fields, records)
}

// String is a convenience Stringer for debugging/logging a Merger's
// resolved output projection.
func (m *Merger) String() string {
	return fmt.Sprintf("Merger(sources=%d, output=%v)", len(m.sources), m.outputColumns)
}
