// Package table implements the uniform row-oriented table model: cells are
// stored as strings at rest, with numeric/boolean/date views derived on
// demand by the operator and query packages.
package table

import (
	"strconv"
	"strings"
)

// ScanNumber parses a cell's string value into a float64 the way the rest of
// the engine needs it to behave: European comma-decimals are normalized to a
// dot, surrounding spaces (including the thousands-group spaces CSV exports
// often contain, e.g. "1 234,5") are stripped, and anything that still fails
// to parse yields 0 rather than an error. Every numeric comparison and sum in
// the query and ops packages goes through this function.
func ScanNumber(s string) float64 {
	if strings.Contains(s, ",") {
		s = strings.ReplaceAll(s, ".", "")
		s = strings.ReplaceAll(s, ",", ".")
	}
	s = strings.ReplaceAll(s, " ", "")
	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return n
}

// ScanBool reports the cell's boolean view: "true", "1", "yes" (case
// insensitive, trimmed) are true, everything else is false.
func ScanBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "1", "yes":
		return true
	default:
		return false
	}
}
