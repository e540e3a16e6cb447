package ops

import "strconv"

// formatNumber renders a computed numeric cell (pivot/aggregate/condense
// sums, means, maxes) back into the table's string-at-rest representation
// using the shortest round-trippable decimal form.
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
