package ops

import (
	"github.com/gjrichter/ixmaps-data/sink"
	"github.com/gjrichter/ixmaps-data/table"
)

// LookupArray builds a map keyed by the stringified keyCol cell to a derived
// value from valueCol, combining repeats per calc: "overwrite" (last wins,
// the default), "sum", or "max" (spec §4.E).
func LookupArray(t *table.Table, valueCol, keyCol, calc string, s sink.Sink) map[string]string {
	s = sink.OrNoop(s)
	fi := fieldIndexMap(t.FieldNames())
	if missing := missingFields([]string{valueCol, keyCol}, fi); len(missing) > 0 {
		s.Warn("lookupArray: referenced column not found", "columns", missing)
		return nil
	}
	vi, ki := fi[valueCol], fi[keyCol]

	out := make(map[string]string)
	sums := make(map[string]float64)
	maxes := make(map[string]float64)
	hasMax := make(map[string]bool)

	for _, row := range t.RawRecords() {
		key := row[ki]
		val := row[vi]
		switch calc {
		case "sum":
			sums[key] += table.ScanNumber(val)
			out[key] = formatNumber(sums[key])
		case "max":
			n := table.ScanNumber(val)
			if !hasMax[key] || n > maxes[key] {
				maxes[key] = n
				hasMax[key] = true
			}
			out[key] = formatNumber(maxes[key])
		default:
			out[key] = val
		}
	}
	return out
}

// LookupStringArray is LookupArray's concatenating variant: every value
// observed for a key is joined with ", " instead of overwritten/summed.
func LookupStringArray(t *table.Table, valueCol, keyCol string, s sink.Sink) map[string]string {
	s = sink.OrNoop(s)
	fi := fieldIndexMap(t.FieldNames())
	if missing := missingFields([]string{valueCol, keyCol}, fi); len(missing) > 0 {
		s.Warn("lookupStringArray: referenced column not found", "columns", missing)
		return nil
	}
	vi, ki := fi[valueCol], fi[keyCol]

	out := make(map[string]string)
	for _, row := range t.RawRecords() {
		key := row[ki]
		if existing, ok := out[key]; ok {
			out[key] = existing + ", " + row[vi]
		} else {
			out[key] = row[vi]
		}
	}
	return out
}

// Lookup resolves value under the (valueCol, lookupCol) map built from t,
// caching that map on t's instance across repeated calls with the same pair
// (spec §4.E: "caches the lookup map per (value,lookup) pair on the table
// instance").
func Lookup(t *table.Table, value, valueCol, lookupCol string, s sink.Sink) string {
	m := t.CachedLookup(valueCol, lookupCol, func() map[string]string {
		return LookupArray(t, valueCol, lookupCol, "overwrite", s)
	})
	return m[value]
}

// GroupColumns derives a new column named destination holding the numeric
// sum of the named source columns, per row (spec §4.E groupColumns).
// Mutator: modifies t in place and returns it, or returns nil if any source
// column is not found (spec §7).
func GroupColumns(t *table.Table, sources []string, destination string, s sink.Sink) *table.Table {
	s = sink.OrNoop(s)
	fi := fieldIndexMap(t.FieldNames())
	if missing := missingFields(sources, fi); len(missing) > 0 {
		s.Warn("groupColumns: referenced column not found", "columns", missing)
		return nil
	}
	var indices []int
	for _, c := range sources {
		indices = append(indices, fi[c])
	}

	newIdx := t.AppendField(table.NewField(destination))
	for _, row := range t.RawRecords() {
		var sum float64
		for _, idx := range indices {
			sum += table.ScanNumber(row[idx])
		}
		row[newIdx] = formatNumber(sum)
	}
	t.MarkMutated()
	return t
}
