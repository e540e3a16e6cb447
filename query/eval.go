package query

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/gjrichter/ixmaps-data/table"
)

// resolveValue returns the operand's effective string: the literal itself,
// or — when isRef is true — the row's cell for the referenced field (spec
// §4.D: "$<existing-field-id>$ ... evaluation substitutes the row's value
// of that field").
func resolveValue(row []string, fieldIndex map[string]int, value string, isRef bool) string {
	if !isRef {
		return value
	}
	idx, ok := fieldIndex[value]
	if !ok || idx >= len(row) {
		return ""
	}
	return row[idx]
}

// evaluateClause implements the per-operator semantics of spec §4.D. cell is
// the stringified value at the clause's field for the current row.
func evaluateClause(cell string, clause Clause, row []string, fieldIndex map[string]int) bool {
	v := resolveValue(row, fieldIndex, clause.Value, clause.ValueIsColumnRef)

	switch clause.Op {
	case OpEqual:
		if v == "*" {
			return strings.TrimSpace(cell) != ""
		}
		return cell == v || numericEqual(cell, v)

	case OpNotEqual:
		return !(cell == v || numericEqual(cell, v))

	case OpGreaterThan:
		return table.ScanNumber(cell) > table.ScanNumber(v)
	case OpLessThan:
		return table.ScanNumber(cell) < table.ScanNumber(v)
	case OpGreaterEq:
		return table.ScanNumber(cell) >= table.ScanNumber(v)
	case OpLessEq:
		return table.ScanNumber(cell) <= table.ScanNumber(v)

	case OpLike:
		if v == "*" {
			return strings.TrimSpace(cell) != ""
		}
		return likeMatch(cell, v)

	case OpNot:
		return !likeMatch(cell, v)

	case OpIn:
		for _, part := range strings.Split(clause.Value, ",") {
			if stripQuotes(strings.TrimSpace(part)) == cell {
				return true
			}
		}
		return false

	case OpBetween:
		v2 := resolveValue(row, fieldIndex, clause.Value2, clause.Value2IsColumnRef)
		n := table.ScanNumber(cell)
		return n >= table.ScanNumber(v) && n <= table.ScanNumber(v2)

	default:
		// Fallback (unknown op): behave as LIKE (spec §4.D).
		if v == "*" {
			return strings.TrimSpace(cell) != ""
		}
		return likeMatch(cell, v)
	}
}

// numericEqual compares the cell's numeric view with the literal parsed as a
// number; a literal that is not a number never matches numerically.
func numericEqual(cell, v string) bool {
	n, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		return false
	}
	return table.ScanNumber(cell) == n
}

func likeMatch(cell, pattern string) bool {
	re, err := regexp.Compile("(?i)" + regexp.QuoteMeta(pattern))
	if err != nil {
		return false
	}
	return re.MatchString(cell)
}

// EvaluateRow walks the query's clauses left-to-right against one row,
// seeding the accumulator with the first clause's result and combining every
// subsequent clause via its own preceding AND/OR — left-associative, no
// operator precedence (spec §4.D). An empty Query matches every row.
func EvaluateRow(row []string, fieldIndex map[string]int, q *Query) bool {
	if len(q.Clauses) == 0 {
		return true
	}

	results := make([]bool, len(q.Clauses))
	for i, c := range q.Clauses {
		idx, ok := fieldIndex[c.Field]
		var cell string
		if ok && idx < len(row) {
			cell = row[idx]
		}
		results[i] = evaluateClause(cell, c, row, fieldIndex)
	}

	acc := results[0]
	for i := 1; i < len(results); i++ {
		if q.Clauses[i].Combine == CombineOr {
			acc = acc || results[i]
		} else {
			acc = acc && results[i]
		}
	}
	return acc
}
