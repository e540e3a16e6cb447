package query

import "strings"

// tokenize splits a WHERE clause on whitespace, then greedily re-joins any
// run of tokens that opens a `"..."` or `(...)` span but doesn't close it in
// the same whitespace-delimited token — exactly the rule spec §4.D describes
// for quoted field/value literals and IN's parenthesized multi-value set.
func tokenize(s string) []string {
	raw := strings.Fields(s)
	tokens := make([]string, 0, len(raw))

	for i := 0; i < len(raw); i++ {
		tok := raw[i]
		switch {
		case startsUnclosed(tok, '"', '"'):
			parts := []string{tok}
			i++
			for i < len(raw) && !strings.HasSuffix(raw[i], `"`) {
				parts = append(parts, raw[i])
				i++
			}
			if i < len(raw) {
				parts = append(parts, raw[i])
			}
			tokens = append(tokens, strings.Join(parts, " "))
		case startsUnclosed(tok, '(', ')'):
			parts := []string{tok}
			i++
			for i < len(raw) && !strings.HasSuffix(raw[i], ")") {
				parts = append(parts, raw[i])
				i++
			}
			if i < len(raw) {
				parts = append(parts, raw[i])
			}
			tokens = append(tokens, strings.Join(parts, " "))
		default:
			tokens = append(tokens, tok)
		}
	}
	return tokens
}

// startsUnclosed reports whether tok opens with open but does not already
// close with close within the same token (a single-rune token equal to
// open is considered unclosed, not a degenerate closed span).
func startsUnclosed(tok string, open, close byte) bool {
	if len(tok) == 0 || tok[0] != open {
		return false
	}
	if len(tok) > 1 && tok[len(tok)-1] == close {
		return false
	}
	return true
}

// stripQuotes removes a single layer of wrapping double quotes, if present.
func stripQuotes(tok string) string {
	if len(tok) >= 2 && tok[0] == '"' && tok[len(tok)-1] == '"' {
		return tok[1 : len(tok)-1]
	}
	return tok
}

// stripParens removes a single layer of wrapping parentheses, if present.
func stripParens(tok string) string {
	if len(tok) >= 2 && tok[0] == '(' && tok[len(tok)-1] == ')' {
		return tok[1 : len(tok)-1]
	}
	return tok
}

// columnRef reports whether value is of the form "$<field>$" and, if so,
// returns the referenced field id (spec §4.D: "If a value literally equals
// $<existing-field-id>$, mark it as a column reference").
func columnRef(value string) (field string, ok bool) {
	if len(value) >= 3 && value[0] == '$' && value[len(value)-1] == '$' {
		return value[1 : len(value)-1], true
	}
	return "", false
}
