package ops

import (
	"fmt"
	"time"

	"github.com/gjrichter/ixmaps-data/sink"
	"github.com/gjrichter/ixmaps-data/table"
)

// timeLayouts are tried in order when parsing a source cell as a timestamp;
// addTimeColumns silently leaves a row's derived cells empty if none match.
var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"02.01.2006",
	"02.01.2006 15:04:05",
}

func parseTimestamp(s string) (time.Time, bool) {
	for _, layout := range timeLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}

// AddTimeColumns parses each row's source cell as a timestamp and appends
// the requested derived fields, chosen from {date, year, month, day, hour}
// (spec §4.E). date is rendered "D.M.YYYY"; day is day-of-week with Sunday
// = 0. Unparseable cells yield empty strings for every derived column on
// that row. Mutator: modifies t in place and returns it.
func AddTimeColumns(t *table.Table, source string, create []string, s sink.Sink) *table.Table {
	s = sink.OrNoop(s)
	srcIdx, ok := t.FieldIndex(source)
	if !ok {
		s.Warn("addTimeColumns: referenced source column not found", "column", source)
		return t
	}

	newIdx := make(map[string]int, len(create))
	for _, name := range create {
		newIdx[name] = t.AppendField(table.NewField(name))
	}

	for _, row := range t.RawRecords() {
		ts, ok := parseTimestamp(row[srcIdx])
		for _, name := range create {
			idx := newIdx[name]
			if !ok {
				row[idx] = ""
				continue
			}
			switch name {
			case "date":
				row[idx] = fmt.Sprintf("%d.%d.%d", ts.Day(), int(ts.Month()), ts.Year())
			case "year":
				row[idx] = fmt.Sprintf("%d", ts.Year())
			case "month":
				row[idx] = fmt.Sprintf("%d", int(ts.Month()))
			case "day":
				row[idx] = fmt.Sprintf("%d", int(ts.Weekday()))
			case "hour":
				row[idx] = fmt.Sprintf("%d", ts.Hour())
			}
		}
	}
	t.MarkMutated()
	return t
}
