package ops

import (
	"strings"

	"github.com/gjrichter/ixmaps-data/sink"
	"github.com/gjrichter/ixmaps-data/table"
)

// PivotOptions mirrors spec §4.E's pivot opts, with every field already
// coerced to a list (SplitList handles the comma/pipe scalar-string form the
// façade accepts from callers).
type PivotOptions struct {
	Lead   []string
	Cols   []string
	Keep   []string
	Sum    []string
	Value  []string
	Calc   string // "", "max", "mean", "string"
	Forced []string
}

// SplitList coerces a scalar option string into a list: pipe-separated if it
// contains a pipe, else comma-separated, trimming each element and dropping
// empties. An empty input yields a nil (zero-length) list.
func SplitList(s string) []string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	var parts []string
	if strings.Contains(s, "|") {
		parts = strings.Split(s, "|")
	} else {
		parts = strings.Split(s, ",")
	}
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// cellAgg accumulates one (row-key, column-key) pivot cell across every
// source row that lands in it.
type cellAgg struct {
	sum      float64
	count    int
	max      float64
	hasValue bool
	first    string
}

type pivotGroup struct {
	leadVals []string
	keepVals []string
	sumVals  []float64
	cols     map[string]*cellAgg
}

// Pivot reshapes t per spec §4.E: rows are keyed by the join of the lead
// columns with "|", the dynamic column set is keyed by the (stringified)
// first cols value, and each cell is a count, sum, max, mean, or verbatim
// first-value depending on opts.Calc. Output schema is
// lead... | keep... | sum... | <dynamic cols, first-seen order> | Total.
func Pivot(t *table.Table, opts PivotOptions, s sink.Sink) *table.Table {
	s = sink.OrNoop(s)

	fi := fieldIndexMap(t.FieldNames())
	var needed []string
	needed = append(needed, opts.Lead...)
	needed = append(needed, opts.Cols...)
	needed = append(needed, opts.Keep...)
	needed = append(needed, opts.Sum...)
	needed = append(needed, opts.Value...)
	if missing := missingFields(needed, fi); len(missing) > 0 {
		s.Warn("pivot: referenced column not found", "columns", missing)
		return table.NewEmpty(nil)
	}

	groups := map[string]*pivotGroup{}
	var groupOrder []string

	colSeen := map[string]bool{}
	var colOrder []string
	seeCol := func(c string) {
		if !colSeen[c] {
			colSeen[c] = true
			colOrder = append(colOrder, c)
		}
	}
	for _, c := range opts.Forced {
		seeCol(c)
	}

	for _, row := range t.RawRecords() {
		leadVals := make([]string, len(opts.Lead))
		for i, f := range opts.Lead {
			leadVals[i] = row[fi[f]]
		}
		rowKey := strings.Join(leadVals, "|")

		g, ok := groups[rowKey]
		if !ok {
			g = &pivotGroup{
				leadVals: leadVals,
				keepVals: make([]string, len(opts.Keep)),
				sumVals:  make([]float64, len(opts.Sum)),
				cols:     map[string]*cellAgg{},
			}
			groups[rowKey] = g
			groupOrder = append(groupOrder, rowKey)
		}

		for i, f := range opts.Keep {
			v := row[fi[f]]
			if v != "" && v != g.keepVals[i] {
				g.keepVals[i] = v
			}
		}
		for i, f := range opts.Sum {
			g.sumVals[i] += table.ScanNumber(row[fi[f]])
		}

		colKey := "undefined"
		if len(opts.Cols) > 0 {
			if v := row[fi[opts.Cols[0]]]; v != "" {
				colKey = v
			}
		}
		seeCol(colKey)

		agg, ok := g.cols[colKey]
		if !ok {
			agg = &cellAgg{}
			g.cols[colKey] = agg
		}

		if len(opts.Value) == 0 {
			agg.sum++
			agg.count++
			continue
		}

		var v float64
		var firstStr string
		for _, vf := range opts.Value {
			cell := row[fi[vf]]
			if firstStr == "" {
				firstStr = cell
			}
			v += table.ScanNumber(cell)
		}
		switch opts.Calc {
		case "max":
			if !agg.hasValue || v > agg.max {
				agg.max = v
			}
			agg.hasValue = true
		case "mean":
			agg.sum += v
			agg.count++
		case "string":
			if !agg.hasValue {
				agg.first = firstStr
				agg.hasValue = true
			}
		default:
			agg.sum += v
		}
	}

	fields := make([]table.Field, 0, len(opts.Lead)+len(opts.Keep)+len(opts.Sum)+len(colOrder)+1)
	for _, f := range opts.Lead {
		fields = append(fields, table.NewField(f))
	}
	for _, f := range opts.Keep {
		fields = append(fields, table.NewField(f))
	}
	for _, f := range opts.Sum {
		fields = append(fields, table.NewField(f))
	}
	for _, c := range colOrder {
		fields = append(fields, table.NewField(c))
	}
	fields = append(fields, table.NewField("Total"))

	records := make([][]string, 0, len(groupOrder))
	for _, key := range groupOrder {
		g := groups[key]
		rec := make([]string, 0, len(fields))
		rec = append(rec, g.leadVals...)
		rec = append(rec, g.keepVals...)
		for _, sv := range g.sumVals {
			rec = append(rec, formatNumber(sv))
		}

		total := 0.0
		for _, c := range colOrder {
			agg, ok := g.cols[c]
			var cellStr string
			if !ok {
				cellStr = "0"
			} else {
				switch opts.Calc {
				case "string":
					cellStr = agg.first
				case "max":
					cellStr = formatNumber(agg.max)
				case "mean":
					if agg.count > 0 {
						cellStr = formatNumber(agg.sum / float64(agg.count))
					} else {
						cellStr = "0"
					}
				default:
					cellStr = formatNumber(agg.sum)
				}
			}
			total += table.ScanNumber(cellStr)
			rec = append(rec, cellStr)
		}
		rec = append(rec, formatNumber(total))
		records = append(records, rec)
	}

	return table.New(fields, records)
}
