package ops

import (
	"fmt"

	"github.com/gjrichter/ixmaps-data/sink"
	"github.com/gjrichter/ixmaps-data/table"
)

// parseStrict behaves like table.ScanNumber's European-aware normalization
// but reports whether the value actually parsed, instead of silently
// defaulting to 0 — needed so condense and sort can tell "numeric column"
// apart from "column full of text that happens to scan to zero".
func parseStrict(s string) (float64, bool) {
	n := table.ScanNumber(s)
	if s == "" {
		return 0, false
	}
	// A value scans to exactly 0 both when it legitimately is "0" and when
	// ScanNumber gave up; re-parse defensively is unnecessary here since
	// ScanNumber's failure mode and "0" are indistinguishable by value
	// alone, so sniffing looks at whether the *trimmed* string consists
	// only of digits/sign/separators.
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
		case r == '.' || r == ',' || r == '-' || r == '+' || r == ' ':
		default:
			return n, false
		}
	}
	return n, true
}

// looksNumeric sniffs up to the first 10 non-empty values of a column: if
// at least one parses as a float (European-aware), the column is treated as
// numeric, mirroring the heuristic spec §4.E documents for sort.
func looksNumeric(t *table.Table, col int) bool {
	checked := 0
	for _, row := range t.RawRecords() {
		if col >= len(row) || row[col] == "" {
			continue
		}
		if _, ok := parseStrict(row[col]); ok {
			return true
		}
		checked++
		if checked >= 10 {
			break
		}
	}
	return false
}

// Condense groups t by the lead column's value. Keep columns are carried
// through using pivot's "last non-empty differing value wins" rule.
// Non-keep numeric columns are summed (or maxed, when calc == "max");
// non-keep non-numeric columns keep their first-seen value and, when later
// rows disagree with it, get a single "(+N) " suffix with N the number of
// disagreeing rows.
func Condense(t *table.Table, lead string, keep []string, calc string, s sink.Sink) *table.Table {
	s = sink.OrNoop(s)
	fi := fieldIndexMap(t.FieldNames())

	needed := append([]string{lead}, keep...)
	if missing := missingFields(needed, fi); len(missing) > 0 {
		s.Warn("condense: referenced column not found", "columns", missing)
		return table.NewEmpty(nil)
	}
	leadIdx := fi[lead]
	keepSet := map[int]bool{leadIdx: true}
	for _, k := range keep {
		keepSet[fi[k]] = true
	}

	fields := t.Fields()
	var otherIdx []int
	var numeric []bool
	for i := range fields {
		if keepSet[i] {
			continue
		}
		otherIdx = append(otherIdx, i)
		numeric = append(numeric, looksNumeric(t, i))
	}

	type group struct {
		leadVal   string
		keepVals  map[int]string
		sums      map[int]float64
		maxes     map[int]float64
		hasMax    map[int]bool
		firstVal  map[int]string
		diverge   map[int]int
		firstSeen map[int]bool
	}
	groups := map[string]*group{}
	var order []string

	for _, row := range t.RawRecords() {
		key := row[leadIdx]
		g, ok := groups[key]
		if !ok {
			g = &group{
				leadVal:   key,
				keepVals:  map[int]string{},
				sums:      map[int]float64{},
				maxes:     map[int]float64{},
				hasMax:    map[int]bool{},
				firstVal:  map[int]string{},
				diverge:   map[int]int{},
				firstSeen: map[int]bool{},
			}
			groups[key] = g
			order = append(order, key)
		}
		for idx := range keepSet {
			if idx == leadIdx {
				continue
			}
			v := row[idx]
			if v != "" && v != g.keepVals[idx] {
				g.keepVals[idx] = v
			}
		}
		for i, idx := range otherIdx {
			v := row[idx]
			if numeric[i] {
				n := table.ScanNumber(v)
				if calc == "max" {
					if !g.hasMax[idx] || n > g.maxes[idx] {
						g.maxes[idx] = n
						g.hasMax[idx] = true
					}
				} else {
					g.sums[idx] += n
				}
			} else {
				if !g.firstSeen[idx] {
					g.firstVal[idx] = v
					g.firstSeen[idx] = true
				} else if v != g.firstVal[idx] {
					g.diverge[idx]++
				}
			}
		}
	}

	outFields := make([]table.Field, 0, len(fields))
	outFields = append(outFields, table.NewField(lead))
	for _, k := range keep {
		outFields = append(outFields, table.NewField(k))
	}
	for i, idx := range otherIdx {
		_ = numeric[i]
		outFields = append(outFields, fields[idx])
	}

	records := make([][]string, 0, len(order))
	for _, key := range order {
		g := groups[key]
		rec := make([]string, 0, len(outFields))
		rec = append(rec, g.leadVal)
		for _, k := range keep {
			rec = append(rec, g.keepVals[fi[k]])
		}
		for i, idx := range otherIdx {
			if numeric[i] {
				if calc == "max" {
					rec = append(rec, formatNumber(g.maxes[idx]))
				} else {
					rec = append(rec, formatNumber(g.sums[idx]))
				}
				continue
			}
			if n := g.diverge[idx]; n > 0 {
				rec = append(rec, fmt.Sprintf("%s (+%d) ", g.firstVal[idx], n))
			} else {
				rec = append(rec, g.firstVal[idx])
			}
		}
		records = append(records, rec)
	}

	return table.New(outFields, records)
}
