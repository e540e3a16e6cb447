package query

import (
	"fmt"
	"strings"
)

// Parse parses a WHERE clause body (the leading "WHERE" keyword, if present,
// is stripped) into a Query. Grammar (spec §4.D):
//
//	clause     := field op value ( "AND" value2 )?      -- BETWEEN only
//	            | field op value
//	combiner   := "AND" | "OR"
//	query      := clause ( combiner clause )*
func Parse(input string) (*Query, error) {
	trimmed := strings.TrimSpace(input)
	upper := strings.ToUpper(trimmed)
	if strings.HasPrefix(upper, "WHERE") {
		trimmed = strings.TrimSpace(trimmed[len("WHERE"):])
	}
	if trimmed == "" {
		return &Query{}, nil
	}

	tokens := tokenize(trimmed)
	q := &Query{}
	i := 0
	first := true

	for i < len(tokens) {
		combine := CombineNone
		if !first {
			tok := strings.ToUpper(tokens[i])
			switch tok {
			case "AND":
				combine = CombineAnd
			case "OR":
				combine = CombineOr
			default:
				return nil, fmt.Errorf("query: expected AND/OR combiner, got %q", tokens[i])
			}
			i++
		}

		if i+2 >= len(tokens) {
			return nil, fmt.Errorf("query: incomplete clause near token %d", i)
		}
		field := stripQuotes(tokens[i])
		op := Op(strings.ToUpper(tokens[i+1]))
		value := stripQuotes(tokens[i+2])
		i += 3

		clause := Clause{Field: field, Op: op, Combine: combine}

		if op == OpBetween {
			if i+1 >= len(tokens) || strings.ToUpper(tokens[i]) != "AND" {
				return nil, fmt.Errorf("query: incomplete BETWEEN clause for field %q", field)
			}
			value2 := stripQuotes(tokens[i+1])
			i += 2
			if f, ok := columnRef(value2); ok {
				clause.Value2, clause.Value2IsColumnRef = f, true
			} else {
				clause.Value2 = value2
			}
		}

		if op == OpIn {
			clause.Value = stripParens(value)
		} else if f, ok := columnRef(value); ok {
			clause.Value, clause.ValueIsColumnRef = f, true
		} else {
			clause.Value = value
		}

		q.Clauses = append(q.Clauses, clause)
		first = false
	}

	return q, nil
}
