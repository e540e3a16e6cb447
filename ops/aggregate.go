package ops

import (
	"strings"

	"github.com/gjrichter/ixmaps-data/sink"
	"github.com/gjrichter/ixmaps-data/table"
)

// Aggregate groups t by the concatenation of the pipe-separated leadSpec
// columns and sums ScanNumber(valueCol) within each group; if calc == "mean"
// the sum is divided by the group's row count. Output columns are the lead
// columns followed by valueCol (spec §4.E). Per the Open Question in spec
// §9, grouping is done with a hash map keyed on the lead concatenation, not
// by index into a list — the source's numeric-len iteration bug is not
// reproduced.
func Aggregate(t *table.Table, valueCol string, leadSpec string, calc string, s sink.Sink) *table.Table {
	s = sink.OrNoop(s)
	leadCols := strings.Split(leadSpec, "|")
	for i, c := range leadCols {
		leadCols[i] = strings.TrimSpace(c)
	}

	fi := fieldIndexMap(t.FieldNames())
	needed := append(append([]string{}, leadCols...), valueCol)
	if missing := missingFields(needed, fi); len(missing) > 0 {
		s.Warn("aggregate: referenced column not found", "columns", missing)
		return table.NewEmpty(nil)
	}

	type group struct {
		leadVals []string
		sum      float64
		count    int
	}
	groups := map[string]*group{}
	var order []string

	for _, row := range t.RawRecords() {
		leadVals := make([]string, len(leadCols))
		for i, c := range leadCols {
			leadVals[i] = row[fi[c]]
		}
		key := strings.Join(leadVals, "|")
		g, ok := groups[key]
		if !ok {
			g = &group{leadVals: leadVals}
			groups[key] = g
			order = append(order, key)
		}
		g.sum += table.ScanNumber(row[fi[valueCol]])
		g.count++
	}

	fields := make([]table.Field, 0, len(leadCols)+1)
	for _, c := range leadCols {
		fields = append(fields, table.NewField(c))
	}
	fields = append(fields, table.NewField(valueCol))

	records := make([][]string, 0, len(order))
	for _, key := range order {
		g := groups[key]
		v := g.sum
		if calc == "mean" && g.count > 0 {
			v /= float64(g.count)
		}
		rec := append(append([]string{}, g.leadVals...), formatNumber(v))
		records = append(records, rec)
	}

	return table.New(fields, records)
}
