package ingest

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"

	"github.com/gjrichter/ixmaps-data/sink"
)

// csvDelimiterCandidates are tried, in order, when no explicit delimiter was
// configured and the first guess produced unequal row lengths (spec §4.F:
// "retry with ; then ,").
var csvDelimiterCandidates = []rune{';', ','}

// ParseCSV parses data into a 2-D cell array (spec §4.F). When an explicit
// delimiter is given it is used as-is; a lone trailing row of the wrong
// length is dropped regardless. When no delimiter was configured and the
// default comma guess either leaves unequal row lengths throughout the file
// or yields a single column, the candidates are retried in order. A
// candidate that splits the rows into more than one column wins; a
// single-column comma result is kept when no candidate does better.
// Exhausting the candidates with no uniform result at all is a Format error
// ("CSV delimiter indeterminate", spec §7). A single trailing empty header
// column is trimmed either way.
func ParseCSV(data []byte, delimiter string, skipEmptyLines bool, s sink.Sink) ([][]string, error) {
	s = sink.OrNoop(s)

	if delimiter != "" {
		return parseCSVWithDelimiter(data, []rune(delimiter)[0], skipEmptyLines)
	}

	rows, err := parseCSVWithDelimiter(data, ',', skipEmptyLines)
	if err == nil && len(rows[0]) > 1 {
		return rows, nil
	}
	commaRows, lastErr := rows, err
	for _, d := range csvDelimiterCandidates {
		rows, err := parseCSVWithDelimiter(data, d, skipEmptyLines)
		if err == nil && (commaRows == nil || len(rows[0]) > 1) {
			s.Log("csv: retried with fallback delimiter", "delimiter", string(d))
			return rows, nil
		}
		if err != nil {
			lastErr = err
		}
	}
	if commaRows != nil {
		return commaRows, nil
	}
	return nil, fmt.Errorf("ingest: csv delimiter indeterminate: %w", lastErr)
}

// parseCSVWithDelimiter reads data with the given delimiter. It drops a
// lone trailing row whose length differs from the header; if any other
// (non-trailing) row still disagrees with the header width, it reports an
// error so the caller can retry with a different delimiter.
func parseCSVWithDelimiter(data []byte, delimiter rune, skipEmptyLines bool) ([][]string, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.Comma = delimiter
	r.FieldsPerRecord = -1

	var rows [][]string
	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		if skipEmptyLines && len(rec) == 1 && rec[0] == "" {
			continue
		}
		rows = append(rows, rec)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("ingest: empty csv input")
	}

	rawWidth := len(rows[0])

	if len(rows) > 1 && len(rows[len(rows)-1]) != rawWidth {
		rows = rows[:len(rows)-1]
	}
	for _, rec := range rows[1:] {
		if len(rec) != rawWidth {
			return nil, fmt.Errorf("ingest: csv rows of unequal length")
		}
	}

	trimmedHeader := trimTrailingEmptyHeader(rows[0])
	if len(trimmedHeader) != rawWidth {
		rows[0] = trimmedHeader
		for i := 1; i < len(rows); i++ {
			rows[i] = rows[i][:len(trimmedHeader)]
		}
	}
	return rows, nil
}

// trimTrailingEmptyHeader drops one trailing empty column name, matching a
// stray trailing delimiter in the header line (spec §4.F).
func trimTrailingEmptyHeader(header []string) []string {
	if len(header) > 1 && header[len(header)-1] == "" {
		return header[:len(header)-1]
	}
	return header
}
