package ops

import (
	"sort"
	"strings"

	"github.com/gjrichter/ixmaps-data/sink"
	"github.com/gjrichter/ixmaps-data/table"
)

// Sort reorders t's records in place by the named column (spec §4.E). The
// column's first up-to-10 values are sniffed: if at least one parses as a
// float (European-aware), comparison is numeric; otherwise lexicographic.
// direction == "DOWN" sorts descending, anything else ascending. Stability
// is not guaranteed, matching the source. Returns t for chaining, or t
// unchanged (with a warning) if the column does not exist.
func Sort(t *table.Table, column string, direction string, s sink.Sink) *table.Table {
	s = sink.OrNoop(s)
	idx, ok := t.FieldIndex(column)
	if !ok {
		s.Warn("sort: referenced column not found", "column", column)
		return t
	}

	numeric := looksNumeric(t, idx)
	desc := strings.EqualFold(direction, "DOWN")

	records := t.RawRecords()
	sort.Slice(records, func(i, j int) bool {
		a, b := records[i][idx], records[j][idx]
		var cmp int
		if numeric {
			na, nb := table.ScanNumber(a), table.ScanNumber(b)
			switch {
			case na < nb:
				cmp = -1
			case na > nb:
				cmp = 1
			}
		} else {
			cmp = strings.Compare(a, b)
		}
		if desc {
			return cmp > 0
		}
		return cmp < 0
	})
	t.MarkMutated()
	return t
}
