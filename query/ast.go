// Package query implements the SQL-subset WHERE mini-language described in
// spec §4.D: tokenizer, parser, and per-record evaluator for the predicate
// AST package ops.Select builds result tables from.
package query

// Op is a predicate operator. It is intentionally a bare string rather than
// a closed enum: spec §4.D's operator table ends with "Fallback (unknown
// op): behave as LIKE", so an AST holding an operator this package doesn't
// recognize must still evaluate, not fail to parse.
type Op string

const (
	OpEqual       Op = "="
	OpNotEqual    Op = "<>"
	OpGreaterThan Op = ">"
	OpLessThan    Op = "<"
	OpGreaterEq   Op = ">="
	OpLessEq      Op = "<="
	OpLike        Op = "LIKE"
	OpNot         Op = "NOT"
	OpIn          Op = "IN"
	OpBetween     Op = "BETWEEN"
)

// Combiner joins a clause to the accumulator of everything evaluated so far.
// The first clause in a Query always carries CombineNone.
type Combiner string

const (
	CombineNone Combiner = ""
	CombineAnd  Combiner = "AND"
	CombineOr   Combiner = "OR"
)

// Clause is one predicate term: `field op value (AND value2)?`, optionally
// preceded by a combiner joining it to the previous clause.
type Clause struct {
	Field             string
	Op                Op
	Value             string
	Value2            string // only populated for BETWEEN
	ValueIsColumnRef  bool   // Value is "$<field>$" — substitute the row's value of that field
	Value2IsColumnRef bool
	Combine           Combiner
}

// Query is an ordered list of clauses, evaluated left-to-right with no
// operator precedence (spec §4.D).
type Query struct {
	Clauses []Clause
}

// Fields returns the distinct field names referenced by the query's clauses
// (including column-ref operands), in first-mention order. package ops uses
// this for the fail-soft "referenced field is absent" check (spec §7).
func (q *Query) Fields() []string {
	seen := map[string]struct{}{}
	var out []string
	add := func(f string) {
		if f == "" {
			return
		}
		if _, ok := seen[f]; ok {
			return
		}
		seen[f] = struct{}{}
		out = append(out, f)
	}
	for _, c := range q.Clauses {
		add(c.Field)
		if c.ValueIsColumnRef {
			add(c.Value)
		}
		if c.Value2IsColumnRef {
			add(c.Value2)
		}
	}
	return out
}
